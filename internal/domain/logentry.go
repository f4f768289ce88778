package domain

import (
	"time"

	"github.com/google/uuid"
)

// LogEntry is one day's regulatory driving log tied to a Trip.
//
// TotalHours is server-computed from Remarks by ValidateRemarks on every
// create and update; any client-supplied value is discarded before the
// entry reaches the repo layer.
type LogEntry struct {
	ID                uuid.UUID
	TripID            uuid.UUID
	Date              time.Time // calendar date; time-of-day is ignored
	TotalMiles        int
	TruckNumber       string
	CarrierName       string
	MainOfficeAddress string
	DriverSignature   string
	CoDriverName      *string
	ShippingDocument  *string
	TimeBase          string
	Remarks           []Remark
	TotalHours        float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
