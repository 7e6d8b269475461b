package orders

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrMalformedRequest = errors.New("malformed order request")

// RPCRequest is the create_order_with_items argument set as sent by clients.
type RPCRequest struct {
	CustomerName     *string          `json:"_customer_name"`
	CustomerPhone    *string          `json:"_customer_phone"`
	CustomerEmail    *string          `json:"_customer_email"`
	CustomerAddress  *string          `json:"_customer_address"`
	CustomerCity     *string          `json:"_customer_city"`
	CustomerDistrict *string          `json:"_customer_district"`
	PaymentMethod    *string          `json:"_payment_method"`
	Notes            *string          `json:"_notes"`
	DeliveryCharge   *decimal.Decimal `json:"_delivery_charge"`
	Items            []RPCItem        `json:"_items"`
}

type RPCItem struct {
	ProductID    *string          `json:"product_id"`
	ProductName  *string          `json:"product_name"`
	ProductImage *string          `json:"product_image"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	Quantity     *int             `json:"quantity"`
	SelectedSize *string          `json:"selected_size"`
}

// ToParams maps the request onto CreateOrderParams. Required fields that are
// absent or null fail here instead of being defaulted.
func (r RPCRequest) ToParams() (CreateOrderParams, error) {
	var missing []string
	required := func(name string, v *string) string {
		if v == nil || strings.TrimSpace(*v) == "" {
			missing = append(missing, name)
			return ""
		}
		return *v
	}

	p := CreateOrderParams{
		CustomerName:     required("_customer_name", r.CustomerName),
		CustomerPhone:    required("_customer_phone", r.CustomerPhone),
		CustomerAddress:  required("_customer_address", r.CustomerAddress),
		CustomerEmail:    value(r.CustomerEmail),
		CustomerCity:     value(r.CustomerCity),
		CustomerDistrict: value(r.CustomerDistrict),
		PaymentMethod:    value(r.PaymentMethod),
		Notes:            value(r.Notes),
	}
	if r.DeliveryCharge != nil {
		p.DeliveryCharge = *r.DeliveryCharge
	}
	if len(r.Items) == 0 {
		missing = append(missing, "_items")
	}
	if len(missing) > 0 {
		return CreateOrderParams{}, fmt.Errorf("%w: missing %s", ErrMalformedRequest, strings.Join(missing, ", "))
	}

	for i, item := range r.Items {
		line, err := item.toLineItem()
		if err != nil {
			return CreateOrderParams{}, fmt.Errorf("%w: _items[%d] %v", ErrMalformedRequest, i, err)
		}
		p.Items = append(p.Items, line)
	}
	return p, nil
}

func (it RPCItem) toLineItem() (LineItem, error) {
	switch {
	case it.ProductName == nil || strings.TrimSpace(*it.ProductName) == "":
		return LineItem{}, errors.New("product_name is required")
	case it.UnitPrice == nil:
		return LineItem{}, errors.New("unit_price is required")
	case it.Quantity == nil:
		return LineItem{}, errors.New("quantity is required")
	case *it.Quantity < 1:
		return LineItem{}, errors.New("quantity must be at least 1")
	}
	return LineItem{
		ProductID:    it.ProductID,
		ProductName:  *it.ProductName,
		ProductImage: value(it.ProductImage),
		UnitPrice:    *it.UnitPrice,
		Quantity:     *it.Quantity,
		SelectedSize: value(it.SelectedSize),
	}, nil
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
