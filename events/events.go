// Package events fans order notifications out to the admin live feed and the broker.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// OrderCreated is emitted once an order and its items are committed.
type OrderCreated struct {
	OrderID        string          `json:"order_id"`
	OrderNumber    string          `json:"order_number"`
	CustomerName   string          `json:"customer_name"`
	CustomerPhone  string          `json:"customer_phone"`
	CustomerCity   string          `json:"customer_city,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	ItemCount      int             `json:"item_count"`
	PaymentMethod  string          `json:"payment_method"`
	CreatedAt      time.Time       `json:"created_at"`
}

type Publisher interface {
	PublishOrderCreated(ctx context.Context, evt OrderCreated) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) PublishOrderCreated(context.Context, OrderCreated) error { return nil }

// Fanout delivers to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) PublishOrderCreated(ctx context.Context, evt OrderCreated) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.PublishOrderCreated(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
