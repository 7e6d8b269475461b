package checkout

import (
	"fmt"
	"strings"

	"github.com/rifat2413010/e-commerce-bloom/confirmation"
	"github.com/rifat2413010/e-commerce-bloom/settings"
	"github.com/shopspring/decimal"
)

// ValidationError lists the required fields that were blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

type CustomerInfo struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	City     string `json:"city"`
	District string `json:"district"`
	Notes    string `json:"notes"`
}

// Validate requires name, phone, address and city.
func (c CustomerInfo) Validate() error {
	missing := blankFields(
		"name", c.Name,
		"phone", c.Phone,
		"address", c.Address,
		"city", c.City,
	)
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

func (c CustomerInfo) confirmation() *confirmation.Customer {
	return &confirmation.Customer{
		Name:     strings.TrimSpace(c.Name),
		Phone:    strings.TrimSpace(c.Phone),
		Email:    strings.TrimSpace(c.Email),
		Address:  strings.TrimSpace(c.Address),
		City:     strings.TrimSpace(c.City),
		District: strings.TrimSpace(c.District),
	}
}

// DeliveryPolicy charges StandardCharge below FreeDeliveryMin and nothing at or above it.
type DeliveryPolicy struct {
	StandardCharge  decimal.Decimal
	FreeDeliveryMin decimal.Decimal
}

func PolicyFromSite(site settings.Site) DeliveryPolicy {
	return DeliveryPolicy{StandardCharge: site.DeliveryCharge, FreeDeliveryMin: site.FreeDeliveryMin}
}

func (p DeliveryPolicy) Charge(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeDeliveryMin) {
		return decimal.Zero
	}
	return p.StandardCharge
}

// Quote is the order summary shown next to the form.
type Quote struct {
	ItemCount         int             `json:"item_count"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	DeliveryCharge    decimal.Decimal `json:"delivery_charge"`
	Total             decimal.Decimal `json:"total"`
	FreeDeliveryMin   decimal.Decimal `json:"free_delivery_min"`
	UntilFreeDelivery decimal.Decimal `json:"until_free_delivery"`
}

func (p DeliveryPolicy) Quote(subtotal decimal.Decimal, itemCount int) Quote {
	charge := p.Charge(subtotal)
	until := p.FreeDeliveryMin.Sub(subtotal)
	if until.IsNegative() {
		until = decimal.Zero
	}
	return Quote{
		ItemCount:         itemCount,
		Subtotal:          subtotal,
		DeliveryCharge:    charge,
		Total:             subtotal.Add(charge),
		FreeDeliveryMin:   p.FreeDeliveryMin,
		UntilFreeDelivery: until,
	}
}

type DeliveryArea string

const (
	AreaInsideDhaka  DeliveryArea = "inside"
	AreaOutsideDhaka DeliveryArea = "outside"
)

// Fee returns the flat quick-order fee for the area.
func (a DeliveryArea) Fee(site settings.Site) (decimal.Decimal, bool) {
	switch a {
	case AreaInsideDhaka:
		return site.DeliveryInsideDhaka, true
	case AreaOutsideDhaka:
		return site.DeliveryOutsideDhaka, true
	}
	return decimal.Zero, false
}

// QuickOrderForm orders a single product straight from its page, without the cart.
type QuickOrderForm struct {
	ProductID    string       `json:"product_id"`
	Quantity     int          `json:"quantity"`
	SelectedSize string       `json:"selected_size"`
	Name         string       `json:"name"`
	Phone        string       `json:"phone"`
	Address      string       `json:"address"`
	DeliveryArea DeliveryArea `json:"delivery_area"`
	Notes        string       `json:"notes"`
}

func (f QuickOrderForm) Validate() error {
	fields := blankFields(
		"product_id", f.ProductID,
		"name", f.Name,
		"phone", f.Phone,
		"address", f.Address,
	)
	if f.DeliveryArea != AreaInsideDhaka && f.DeliveryArea != AreaOutsideDhaka {
		fields = append(fields, "delivery_area")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// blankFields takes name/value pairs and returns the names whose value is blank.
func blankFields(pairs ...string) []string {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	return missing
}
