// Package domain contains the core data types for the Trip Mapper application.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (repo, service, planner, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a single planned trip.
// A trip is the top-level aggregate; locations belong to a trip and are
// deleted with it. The order of its location sequence defines the itinerary.
type Trip struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	StartDate *time.Time `json:"start_date,omitempty"` // date only; nil when the user has not picked one yet
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
