// Package domain contains the core data types for the ELD trip logbook.
// This package has no dependency on the HTTP or storage layers and is
// imported by every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a single hauling job owned by a driver.
// A trip is the top-level aggregate; log entries belong to a trip.
//
// OwnerID is the opaque identity of the authenticated user who created the
// trip. It is set once at creation from the request principal, is never
// client-settable, and scopes every subsequent read and write.
type Trip struct {
	ID               uuid.UUID `json:"id"`
	OwnerID          string    `json:"-"`
	CurrentLocation  string    `json:"current_location"`
	PickupLocation   string    `json:"pickup_location"`
	DropoffLocation  string    `json:"dropoff_location"`
	CurrentCycleUsed float64   `json:"current_cycle_used"` // hours, 2 decimal places
	CreatedAt        time.Time `json:"created_at"`
}
