package domain

// TravelDuration is the estimated transit time between two consecutive
// waypoints, keyed externally by the pair index (position i -> i+1).
// A failed lookup is represented by the Unknown sentinel rather than an
// error: the itinerary stays usable even when the directions provider
// cannot route a leg.
type TravelDuration struct {
	Seconds int64  `json:"seconds"`
	Text    string `json:"text"` // human-readable label from the provider, e.g. "1 hour 5 mins"
}

// UnknownDuration is the sentinel stored when a duration lookup fails.
var UnknownDuration = TravelDuration{Seconds: 0, Text: "Unknown"}

// Unknown reports whether d is the failed-lookup sentinel.
func (d TravelDuration) Unknown() bool {
	return d == UnknownDuration
}
