package domain

import "gopkg.in/guregu/null.v4"

// Zone is a section of a parking (a floor, a lettered area...).
type Zone struct {
	ID        int         `json:"id"`
	ParkingID int         `json:"parking_id"`
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Latitude  float64     `json:"latitude,omitempty"`
	Longitude float64     `json:"longitude,omitempty"`
	CameraID  null.String `json:"camera_id,omitempty"`
	CameraURL null.String `json:"camera_url,omitempty"`
	Status    bool        `json:"status"`
	Audit
}

type ZoneDTO struct {
	Code      string      `json:"code" binding:"required,min=1,max=20"`
	Name      string      `json:"name" binding:"required,min=1,max=100"`
	Latitude  float64     `json:"latitude,omitempty"`
	Longitude float64     `json:"longitude,omitempty"`
	CameraID  null.String `json:"camera_id,omitempty"`
	CameraURL null.String `json:"camera_url,omitempty"`
	Status    *bool       `json:"status,omitempty"`
}
