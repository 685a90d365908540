package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimelineEntry is the computed arrival/departure pair for one waypoint.
// Entries are derived state: they are rebuilt from the trip's start date,
// location sequence, and resolved travel durations, and are never authored
// or persisted directly.
type TimelineEntry struct {
	LocationID uuid.UUID `json:"location_id"`
	Name       string    `json:"name"`
	StayDays   int       `json:"stay_days"`
	Arrival    time.Time `json:"arrival"`
	Departure  time.Time `json:"departure"`

	// TravelToNext is the resolved duration to the next waypoint.
	// Nil for the last entry and for pairs that have not resolved yet.
	TravelToNext *TravelDuration `json:"travel_to_next,omitempty"`
}
