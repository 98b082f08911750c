package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type SpaceType string

const (
	SpaceTypeCar        SpaceType = "car"
	SpaceTypeMotorcycle SpaceType = "motorcycle"
	SpaceTypeDisabled   SpaceType = "disabled"
	SpaceTypeElectric   SpaceType = "electric"
)

type SpaceStatus string

const (
	SpaceStatusFree         SpaceStatus = "free"
	SpaceStatusOccupied     SpaceStatus = "occupied"
	SpaceStatusReserved     SpaceStatus = "reserved"
	SpaceStatusOutOfService SpaceStatus = "out_of_service"
)

func ValidSpaceType(t SpaceType) bool {
	switch t {
	case SpaceTypeCar, SpaceTypeMotorcycle, SpaceTypeDisabled, SpaceTypeElectric:
		return true
	}
	return false
}

func ValidSpaceStatus(s SpaceStatus) bool {
	switch s {
	case SpaceStatusFree, SpaceStatusOccupied, SpaceStatusReserved, SpaceStatusOutOfService:
		return true
	}
	return false
}

// Space is an individual stall inside a zone. SensorID identifies the IoT
// device reporting its occupancy; LastSensorAt is the timestamp of the last
// applied sensor event and guards against out-of-order delivery.
type Space struct {
	ID           int         `json:"id"`
	ZoneID       int         `json:"zone_id"`
	Code         string      `json:"code"`
	Type         SpaceType   `json:"type"`
	Status       SpaceStatus `json:"status"`
	SensorID     null.String `json:"sensor_id,omitempty"`
	LastSensorAt null.Time   `json:"last_sensor_at,omitempty"`
	Audit
}

type SpaceDTO struct {
	Code     string      `json:"code" binding:"required,min=1,max=20"`
	Type     SpaceType   `json:"type" binding:"required"`
	SensorID null.String `json:"sensor_id,omitempty"`
	Status   SpaceStatus `json:"status,omitempty"`
}

type SpaceStatusDTO struct {
	Status SpaceStatus `json:"status" binding:"required"`
}

// SpaceSensorEvent is the SQS payload emitted by an occupancy sensor.
type SpaceSensorEvent struct {
	DeviceID  string    `json:"device_id"`
	SpaceCode string    `json:"space_code"`
	Occupied  bool      `json:"occupied"`
	Timestamp time.Time `json:"timestamp"`
}
