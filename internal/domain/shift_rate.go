package domain

// ShiftRateConfig assigns a rate to a shift for one parking. At most one
// non-deleted row may exist per (parking, shift); replacing a parking's
// configuration soft-deletes the previous rows.
type ShiftRateConfig struct {
	ID        int  `json:"id"`
	ParkingID int  `json:"parking_id"`
	ShiftID   int  `json:"shift_id"`
	RateID    int  `json:"rate_id"`
	Status    bool `json:"status"`
	Audit
}

// Toggle flips the active flag without touching the shift/rate assignment.
func (c *ShiftRateConfig) Toggle() {
	c.Status = !c.Status
}

type ShiftRateEntryDTO struct {
	ShiftID int   `json:"shift_id" binding:"required"`
	RateID  int   `json:"rate_id" binding:"required"`
	Status  *bool `json:"status,omitempty"`
}

type ConfigureShiftRatesDTO struct {
	Configurations []ShiftRateEntryDTO `json:"configurations" binding:"required,min=1,dive"`
}

// ShiftRateView is a config row joined with its shift and rate names, the
// shape list and configure responses use.
type ShiftRateView struct {
	ID        int     `json:"id"`
	ParkingID int     `json:"parking_id"`
	ShiftID   int     `json:"shift_id"`
	ShiftCode string  `json:"shift_code,omitempty"`
	ShiftName string  `json:"shift_name,omitempty"`
	RateID    int     `json:"rate_id"`
	RateName  string  `json:"rate_name,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	Currency  string  `json:"currency,omitempty"`
	Status    bool    `json:"status"`
}

// ResolvedRate is the answer of the price resolver: which config row applies
// to a parking for a given shift and what it costs.
type ResolvedRate struct {
	ConfigID  int     `json:"config_id"`
	ParkingID int     `json:"parking_id"`
	ShiftID   int     `json:"shift_id"`
	ShiftCode string  `json:"shift_code"`
	ShiftName string  `json:"shift_name"`
	RateID    int     `json:"rate_id"`
	RateName  string  `json:"rate_name"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}
