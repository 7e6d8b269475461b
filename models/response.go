package models

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message"`
	Details  any    `json:"details,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// AllModels lists every table the service owns, in migration order.
func AllModels() []any {
	return []any{
		&Category{},
		&Product{},
		&Customer{},
		&Order{},
		&OrderItem{},
		&SiteSetting{},
		&ContentBlock{},
	}
}
