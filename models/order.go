package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting confirmation
	OrderStatusProcessing OrderStatus = "processing" // Confirmed and being packed
	OrderStatusShipped    OrderStatus = "shipped"    // Handed to the courier
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received and paid
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before delivery
)

// PaymentMethodCOD is the only payment method the storefront accepts.
const PaymentMethodCOD = "cod"

var ErrInvalidOrderStatus = errors.New("invalid order status")

// ParseOrderStatus maps a case-insensitive string to an OrderStatus.
func ParseOrderStatus(status string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(strings.TrimSpace(status))) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusProcessing:
		return OrderStatusProcessing, nil
	case OrderStatusShipped:
		return OrderStatusShipped, nil
	case OrderStatusDelivered:
		return OrderStatusDelivered, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	default:
		return "", ErrInvalidOrderStatus
	}
}

// Order header. Everything except Status is written once at creation.
type Order struct {
	ID               string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber      string          `gorm:"not null;uniqueIndex" json:"order_number"`
	CustomerID       *string         `gorm:"type:uuid;index" json:"customer_id"`
	CustomerName     string          `gorm:"not null" json:"customer_name"`
	CustomerPhone    string          `gorm:"not null;index" json:"customer_phone"`
	CustomerEmail    *string         `json:"customer_email"`
	CustomerAddress  string          `gorm:"not null" json:"customer_address"`
	CustomerCity     *string         `json:"customer_city"`
	CustomerDistrict *string         `json:"customer_district"`
	Subtotal         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	DeliveryCharge   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"delivery_charge"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Status           OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentMethod    string          `gorm:"type:varchar(20);not null;default:'cod'" json:"payment_method"`
	Notes            *string         `json:"notes"`
	IdempotencyKey   *string         `gorm:"uniqueIndex" json:"-"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt        time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem snapshots the product at the time of ordering. ProductID is nil when
// the submitted id was not a valid product identifier.
type OrderItem struct {
	ID           string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID      string          `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID    *string         `gorm:"type:uuid;index" json:"product_id"`
	ProductName  string          `gorm:"not null" json:"product_name"`
	ProductImage *string         `json:"product_image"`
	Quantity     int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	SelectedSize *string         `json:"selected_size"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
