package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() OrderCreated {
	return OrderCreated{
		OrderID:       "3f0c9a44-2a0e-4f53-9d55-0d3c7e1a9b10",
		OrderNumber:   "ORD-250101-A1B2C3",
		CustomerName:  "Rahim",
		CustomerPhone: "01700000000",
		Subtotal:      decimal.NewFromInt(1000),
		TotalAmount:   decimal.NewFromInt(1050),
		ItemCount:     2,
		PaymentMethod: "cod",
		CreatedAt:     time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []OrderCreated
	err    error
}

func (r *recordingPublisher) PublishOrderCreated(_ context.Context, evt OrderCreated) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return r.err
}

func TestFanout(t *testing.T) {
	ok := &recordingPublisher{}
	failing := &recordingPublisher{err: errors.New("broker down")}

	err := Fanout{ok, nil, failing, Nop{}}.PublishOrderCreated(context.Background(), sampleEvent())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Len(t, ok.events, 1)
	assert.Len(t, failing.events, 1)
}

func TestHub_BroadcastsToSockets(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.PublishOrderCreated(context.Background(), sampleEvent()))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type string       `json:"type"`
		Data OrderCreated `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "order.created", msg.Type)
	assert.Equal(t, "ORD-250101-A1B2C3", msg.Data.OrderNumber)
	assert.True(t, msg.Data.TotalAmount.Equal(decimal.NewFromInt(1050)))

	conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 10*time.Millisecond)
}

type fakeChannel struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

type fakeSource struct {
	ch       *fakeChannel
	err      error
	released int
}

func (s *fakeSource) acquire(context.Context) (amqpPublisher, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.ch, nil
}

func (s *fakeSource) release(amqpPublisher) { s.released++ }

func TestRabbitPublisher_PublishesPersistentJSON(t *testing.T) {
	src := &fakeSource{ch: &fakeChannel{}}
	pub := &RabbitPublisher{pool: src, queueName: "orders.created", logger: slog.Default()}

	require.NoError(t, pub.PublishOrderCreated(context.Background(), sampleEvent()))

	assert.Equal(t, "", src.ch.exchange)
	assert.Equal(t, "orders.created", src.ch.key)
	assert.Equal(t, amqp.Persistent, src.ch.msg.DeliveryMode)
	assert.Equal(t, "application/json", src.ch.msg.ContentType)
	assert.Equal(t, sampleEvent().OrderID, src.ch.msg.MessageId)
	assert.Equal(t, 1, src.released)

	var got OrderCreated
	require.NoError(t, json.Unmarshal(src.ch.msg.Body, &got))
	assert.Equal(t, "ORD-250101-A1B2C3", got.OrderNumber)
}

func TestRabbitPublisher_Errors(t *testing.T) {
	noChannel := &RabbitPublisher{pool: &fakeSource{err: errors.New("pool exhausted")}, queueName: "q", logger: slog.Default()}
	assert.ErrorContains(t, noChannel.PublishOrderCreated(context.Background(), sampleEvent()), "pool exhausted")

	src := &fakeSource{ch: &fakeChannel{err: errors.New("channel closed")}}
	failing := &RabbitPublisher{pool: src, queueName: "q", logger: slog.Default()}
	assert.ErrorContains(t, failing.PublishOrderCreated(context.Background(), sampleEvent()), "channel closed")
	assert.Equal(t, 1, src.released)
}
