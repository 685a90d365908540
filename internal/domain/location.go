package domain

import (
	"time"

	"github.com/google/uuid"
)

// Location represents one waypoint in a trip's itinerary.
// Position is the zero-based index within the trip's sequence; positions are
// dense (no gaps) and unique per trip — the repo maintains this invariant.
type Location struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Name      string    `json:"name"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Notes     string    `json:"notes,omitempty"`
	StayDays  int       `json:"stay_days"` // whole days spent at this waypoint, always >= 1
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MoveDirection selects which neighbour a location swaps with when reordered.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"   // swap with the immediate predecessor
	MoveDown MoveDirection = "down" // swap with the immediate successor
)
