package orders

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rifat2413010/e-commerce-bloom/models"
	"github.com/shopspring/decimal"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// LineItem is one product snapshot submitted with an order.
type LineItem struct {
	ProductID    *string
	ProductName  string
	ProductImage string
	UnitPrice    decimal.Decimal
	Quantity     int
	SelectedSize string
}

// Total is unit price times quantity.
func (l LineItem) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type CreateOrderParams struct {
	CustomerName     string
	CustomerPhone    string
	CustomerEmail    string
	CustomerAddress  string
	CustomerCity     string
	CustomerDistrict string
	PaymentMethod    string
	DeliveryCharge   decimal.Decimal
	Notes            string
	Items            []LineItem
	IdempotencyKey   string
}

// Subtotal is the sum of line totals.
func (p CreateOrderParams) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range p.Items {
		sum = sum.Add(item.Total())
	}
	return sum
}

// CoerceProductID returns id when it is a canonical UUID and nil otherwise.
func CoerceProductID(id *string) *string {
	if id == nil {
		return nil
	}
	v := strings.TrimSpace(*id)
	if !uuidPattern.MatchString(v) {
		return nil
	}
	v = strings.ToLower(v)
	return &v
}

// validate returns the first problem as a readable message, or "".
func (p CreateOrderParams) validate() string {
	switch {
	case strings.TrimSpace(p.CustomerName) == "":
		return "customer name is required"
	case strings.TrimSpace(p.CustomerPhone) == "":
		return "customer phone is required"
	case strings.TrimSpace(p.CustomerAddress) == "":
		return "customer address is required"
	case p.PaymentMethod != "" && p.PaymentMethod != models.PaymentMethodCOD:
		return "only cash on delivery is supported"
	case p.DeliveryCharge.IsNegative():
		return "delivery charge must not be negative"
	case len(p.Items) == 0:
		return "order must contain at least one item"
	}
	for i, item := range p.Items {
		switch {
		case strings.TrimSpace(item.ProductName) == "":
			return fmt.Sprintf("item %d: product name is required", i+1)
		case item.Quantity < 1:
			return fmt.Sprintf("item %d: quantity must be at least 1", i+1)
		case item.UnitPrice.IsNegative():
			return fmt.Sprintf("item %d: unit price must not be negative", i+1)
		}
	}
	return ""
}
