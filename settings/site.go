// Package settings maps the key/value site_settings table to typed storefront settings.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	KeySiteName             = "site_name"
	KeyPhone                = "phone"
	KeyWhatsApp             = "whatsapp"
	KeyEmail                = "email"
	KeyAddress              = "address"
	KeyFooterText           = "footer_text"
	KeyLogo                 = "logo"
	KeyDeliveryCharge       = "delivery_charge"
	KeyFreeDeliveryMin      = "free_delivery_min"
	KeyDeliveryInsideDhaka  = "delivery_inside_dhaka"
	KeyDeliveryOutsideDhaka = "delivery_outside_dhaka"
)

var ErrInvalidValue = errors.New("invalid setting value")

var (
	DefaultDeliveryCharge       = decimal.NewFromInt(60)
	DefaultFreeDeliveryMin      = decimal.NewFromInt(1500)
	DefaultDeliveryInsideDhaka  = decimal.NewFromInt(50)
	DefaultDeliveryOutsideDhaka = decimal.NewFromInt(100)
)

// Site is the typed view of the storefront settings.
type Site struct {
	SiteName             string          `json:"site_name"`
	Phone                string          `json:"phone"`
	WhatsApp             string          `json:"whatsapp"`
	Email                string          `json:"email"`
	Address              string          `json:"address"`
	FooterText           string          `json:"footer_text"`
	Logo                 string          `json:"logo"`
	DeliveryCharge       decimal.Decimal `json:"delivery_charge"`
	FreeDeliveryMin      decimal.Decimal `json:"free_delivery_min"`
	DeliveryInsideDhaka  decimal.Decimal `json:"delivery_inside_dhaka"`
	DeliveryOutsideDhaka decimal.Decimal `json:"delivery_outside_dhaka"`
}

var numericKeys = map[string]decimal.Decimal{
	KeyDeliveryCharge:       DefaultDeliveryCharge,
	KeyFreeDeliveryMin:      DefaultFreeDeliveryMin,
	KeyDeliveryInsideDhaka:  DefaultDeliveryInsideDhaka,
	KeyDeliveryOutsideDhaka: DefaultDeliveryOutsideDhaka,
}

// FromValues builds a Site from raw key/value pairs. Missing numeric keys take
// their default; present values that are not non-negative numbers are an error.
func FromValues(values map[string]string) (Site, error) {
	site := Site{
		SiteName:   values[KeySiteName],
		Phone:      values[KeyPhone],
		WhatsApp:   values[KeyWhatsApp],
		Email:      values[KeyEmail],
		Address:    values[KeyAddress],
		FooterText: values[KeyFooterText],
		Logo:       values[KeyLogo],
	}

	amounts := make(map[string]decimal.Decimal, len(numericKeys))
	for key, def := range numericKeys {
		raw, ok := values[key]
		if !ok {
			amounts[key] = def
			continue
		}
		amount, err := ParseAmount(key, raw)
		if err != nil {
			return Site{}, err
		}
		amounts[key] = amount
	}

	site.DeliveryCharge = amounts[KeyDeliveryCharge]
	site.FreeDeliveryMin = amounts[KeyFreeDeliveryMin]
	site.DeliveryInsideDhaka = amounts[KeyDeliveryInsideDhaka]
	site.DeliveryOutsideDhaka = amounts[KeyDeliveryOutsideDhaka]
	return site, nil
}

// ParseAmount parses a money setting.
func ParseAmount(key, raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, raw)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s must not be negative", ErrInvalidValue, key)
	}
	return amount, nil
}

// IsNumeric reports whether key holds a money amount.
func IsNumeric(key string) bool {
	_, ok := numericKeys[key]
	return ok
}
