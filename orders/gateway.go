// Package orders creates orders atomically and serves the back-office read side.
package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rifat2413010/e-commerce-bloom/events"
	"github.com/rifat2413010/e-commerce-bloom/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrOrderNotFound = errors.New("order not found")

// GatewayError is returned by CreateOrder. Message is safe to show to the buyer.
type GatewayError struct {
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Gateway persists an order header and its items as one unit.
type Gateway interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (string, error)
	OrderNumber(ctx context.Context, orderID string) (string, error)
}

const saveFailedMessage = "order could not be saved, please try again"

type GormGateway struct {
	db        *gorm.DB
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
	number    func(time.Time) string
}

func NewGormGateway(db *gorm.DB, publisher events.Publisher, logger *slog.Logger) *GormGateway {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GormGateway{db: db, publisher: publisher, logger: logger, now: time.Now, number: NewOrderNumber}
}

// CreateOrder upserts the customer by phone, then writes the order and all of
// its items in a single transaction. When IdempotencyKey matches an existing
// order, that order's id is returned and nothing is written.
func (g *GormGateway) CreateOrder(ctx context.Context, params CreateOrderParams) (string, error) {
	if msg := params.validate(); msg != "" {
		return "", &GatewayError{Message: msg}
	}
	key := strings.TrimSpace(params.IdempotencyKey)
	if key != "" {
		if id, ok, err := g.findByIdempotencyKey(ctx, key); err != nil {
			return "", &GatewayError{Message: saveFailedMessage, Err: err}
		} else if ok {
			g.logger.Info("replayed order submission", "order_id", id)
			return id, nil
		}
	}

	var (
		order models.Order
		err   error
	)
	// order numbers are short; a collision gets one fresh number
	for attempt := 0; attempt < 2; attempt++ {
		order = g.buildOrder(params, key)
		err = g.insertOrder(ctx, params, &order)
		if err == nil || !isOrderNumberConflict(err) {
			break
		}
		g.logger.Warn("order number collision, retrying", "order_number", order.OrderNumber)
	}
	if err != nil {
		// a concurrent submission with the same key won the race
		if key != "" {
			if id, ok, lookupErr := g.findByIdempotencyKey(ctx, key); lookupErr == nil && ok {
				return id, nil
			}
		}
		g.logger.Error("create order failed", "phone", params.CustomerPhone, "error", err)
		return "", &GatewayError{Message: saveFailedMessage, Err: err}
	}

	g.publish(ctx, order)
	return order.ID, nil
}

func (g *GormGateway) insertOrder(ctx context.Context, params CreateOrderParams, order *models.Order) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customerID, err := upsertCustomer(tx, params)
		if err != nil {
			return fmt.Errorf("upsert customer: %w", err)
		}
		order.CustomerID = &customerID

		items := order.Items
		order.Items = nil
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
		order.Items = items
		return nil
	})
}

func isOrderNumberConflict(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "order_number") &&
		(strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate"))
}

// OrderNumber reads back the human-readable number of an order.
func (g *GormGateway) OrderNumber(ctx context.Context, orderID string) (string, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return "", ErrOrderNotFound
	}
	var row struct {
		OrderNumber string
	}
	err := g.db.WithContext(ctx).Model(&models.Order{}).
		Select("order_number").
		Where("id = ?", orderID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrOrderNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read order number: %w", err)
	}
	return row.OrderNumber, nil
}

func (g *GormGateway) findByIdempotencyKey(ctx context.Context, key string) (string, bool, error) {
	var order models.Order
	err := g.db.WithContext(ctx).Select("id").Where("idempotency_key = ?", key).Take(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return order.ID, true, nil
}

func (g *GormGateway) buildOrder(p CreateOrderParams, key string) models.Order {
	subtotal := p.Subtotal()
	order := models.Order{
		ID:               uuid.NewString(),
		OrderNumber:      g.number(g.now()),
		CustomerName:     strings.TrimSpace(p.CustomerName),
		CustomerPhone:    strings.TrimSpace(p.CustomerPhone),
		CustomerEmail:    optional(p.CustomerEmail),
		CustomerAddress:  strings.TrimSpace(p.CustomerAddress),
		CustomerCity:     optional(p.CustomerCity),
		CustomerDistrict: optional(p.CustomerDistrict),
		Subtotal:         subtotal,
		DeliveryCharge:   p.DeliveryCharge,
		TotalAmount:      subtotal.Add(p.DeliveryCharge),
		Status:           models.OrderStatusPending,
		PaymentMethod:    models.PaymentMethodCOD,
		Notes:            optional(p.Notes),
		IdempotencyKey:   optional(key),
	}
	for _, item := range p.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:    CoerceProductID(item.ProductID),
			ProductName:  item.ProductName,
			ProductImage: optional(item.ProductImage),
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			SelectedSize: optional(item.SelectedSize),
			TotalPrice:   item.Total(),
		})
	}
	return order
}

// upsertCustomer inserts the customer or refreshes the existing row for the
// phone in one statement, so concurrent first orders from the same phone
// cannot both insert. Blank optional fields keep their stored value.
func upsertCustomer(tx *gorm.DB, p CreateOrderParams) (string, error) {
	phone := strings.TrimSpace(p.CustomerPhone)
	customer := models.Customer{
		Name:     strings.TrimSpace(p.CustomerName),
		Phone:    phone,
		Email:    optional(p.CustomerEmail),
		Address:  optional(p.CustomerAddress),
		City:     optional(p.CustomerCity),
		District: optional(p.CustomerDistrict),
	}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "phone"}},
		DoUpdates: clause.Set{
			{Column: clause.Column{Name: "name"}, Value: gorm.Expr("excluded.name")},
			{Column: clause.Column{Name: "email"}, Value: gorm.Expr("COALESCE(excluded.email, customers.email)")},
			{Column: clause.Column{Name: "address"}, Value: gorm.Expr("COALESCE(excluded.address, customers.address)")},
			{Column: clause.Column{Name: "city"}, Value: gorm.Expr("COALESCE(excluded.city, customers.city)")},
			{Column: clause.Column{Name: "district"}, Value: gorm.Expr("COALESCE(excluded.district, customers.district)")},
			{Column: clause.Column{Name: "updated_at"}, Value: gorm.Expr("excluded.updated_at")},
		},
	}).Create(&customer).Error
	if err != nil {
		return "", err
	}

	// on conflict the generated id was not stored
	var stored models.Customer
	if err := tx.Select("id").Where("phone = ?", phone).Take(&stored).Error; err != nil {
		return "", err
	}
	return stored.ID, nil
}

func (g *GormGateway) publish(ctx context.Context, order models.Order) {
	count := 0
	for _, item := range order.Items {
		count += item.Quantity
	}
	evt := events.OrderCreated{
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		CustomerName:   order.CustomerName,
		CustomerPhone:  order.CustomerPhone,
		CustomerCity:   deref(order.CustomerCity),
		Subtotal:       order.Subtotal,
		DeliveryCharge: order.DeliveryCharge,
		TotalAmount:    order.TotalAmount,
		ItemCount:      count,
		PaymentMethod:  order.PaymentMethod,
		CreatedAt:      order.CreatedAt,
	}
	// the order is committed; a lost notification is not a failed order
	if err := g.publisher.PublishOrderCreated(context.WithoutCancel(ctx), evt); err != nil {
		g.logger.Warn("publish order event failed", "order_number", order.OrderNumber, "error", err)
	}
}

// NewOrderNumber formats ORD-<yymmdd>-<6 upper-case hex>.
func NewOrderNumber(now time.Time) string {
	id := uuid.New()
	return fmt.Sprintf("ORD-%s-%X", now.Format("060102"), id[:3])
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
