package domain

import "gopkg.in/guregu/null.v4"

// Parking is a physical facility. It owns zones, which own spaces.
type Parking struct {
	ID        int      `json:"id"`
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Address   string   `json:"address,omitempty"`
	Latitude  float64  `json:"latitude,omitempty"`
	Longitude float64  `json:"longitude,omitempty"`
	ManagerID null.Int `json:"manager_id,omitempty"`
	Status    bool     `json:"status"`
	Audit
}

type ParkingDTO struct {
	Code      string   `json:"code" binding:"required,min=1,max=20"`
	Name      string   `json:"name" binding:"required,min=1,max=100"`
	Address   string   `json:"address,omitempty"`
	Latitude  float64  `json:"latitude,omitempty"`
	Longitude float64  `json:"longitude,omitempty"`
	ManagerID null.Int `json:"manager_id,omitempty"`
	Status    *bool    `json:"status,omitempty"`
}
