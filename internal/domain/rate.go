package domain

// DefaultCurrency is applied when a rate is created without one.
const DefaultCurrency = "PEN"

// Rate is a price catalog entry. Amount maps to a decimal(10,2) column.
type Rate struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Status      bool    `json:"status"`
	Audit
}

type RateDTO struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount" binding:"required"`
	Currency    string  `json:"currency,omitempty"`
	Status      *bool   `json:"status,omitempty"`
}
