// Package directions talks to the external routing provider.
// It is the sole network dependency of the travel-time resolver: the rest of
// the core only sees the Provider interface and domain.TravelDuration values.
package directions

import "context"

// Point is a geographic coordinate passed to the provider.
type Point struct {
	Lat float64
	Lng float64
}

// Provider computes the travel duration of one leg between two coordinates.
// Implementations must treat any provider-side failure (non-OK status,
// unroutable pair, timeout) as a returned error; callers decide whether that
// error is fatal. The resolver treats it as the Unknown sentinel.
type Provider interface {
	Route(ctx context.Context, origin, destination Point) (Leg, error)
}

// Leg is the resolved travel estimate for one origin/destination pair.
type Leg struct {
	DurationSeconds int64
	DurationText    string // human-readable label, e.g. "1 hour 5 mins"
}
