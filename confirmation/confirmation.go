// Package confirmation renders the order-success view from the state the
// checkout flow hands over. It never reads storage.
package confirmation

import (
	"strings"

	"github.com/rifat2413010/e-commerce-bloom/i18n"
)

type Customer struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address"`
	City     string `json:"city,omitempty"`
	District string `json:"district,omitempty"`
}

// State travels from a successful submission to the confirmation view.
type State struct {
	OrderNumber string    `json:"orderNumber"`
	Customer    *Customer `json:"customer,omitempty"`
}

type Page struct {
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	OrderNumber string    `json:"order_number,omitempty"`
	Customer    *Customer `json:"customer,omitempty"`
	AddressLine string    `json:"address_line,omitempty"`
	HasDetails  bool      `json:"has_details"`
}

// Build renders the page. Without an order number the page is shown without
// details rather than failing.
func Build(state *State, lang i18n.Lang) Page {
	page := Page{Title: i18n.T(lang, i18n.MsgOrderSuccessTitle)}

	if state == nil || strings.TrimSpace(state.OrderNumber) == "" {
		page.Message = i18n.T(lang, i18n.MsgOrderSuccessNoDetail)
		return page
	}

	page.Message = i18n.T(lang, i18n.MsgOrderSuccessMessage)
	page.OrderNumber = state.OrderNumber
	page.HasDetails = true
	if state.Customer != nil {
		c := *state.Customer
		page.Customer = &c
		page.AddressLine = joinNonEmpty(", ", c.Address, c.City)
	}
	return page
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
