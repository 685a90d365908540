// Package timeline computes arrival and departure timestamps for an ordered
// waypoint sequence. Build is a pure function: given the same start date,
// locations, and resolved durations it always produces the same entries, so
// the planner can rerun it freely as duration lookups trickle in.
package timeline

import (
	"time"

	"github.com/tdnguyen/tripmapper/backend/internal/domain"
)

// Build chains arrival/departure timestamps through the location sequence.
//
// The running clock starts at midnight on start. For each location the
// arrival is the current clock, and the departure is the arrival advanced by
// the location's stay in calendar days (AddDate, not 24h blocks, so DST and
// leap days behave like a wall calendar). If durations contains an entry for
// the pair (i, i+1), the clock then advances by that many seconds of elapsed
// travel time — which can push the next arrival into a later time of day.
// A missing pair contributes zero travel time; the caller is expected to
// rebuild once the pair resolves.
//
// Stay counts below 1 are treated as 1, matching the validation floor.
// An empty location slice yields an empty (non-nil) result.
func Build(start time.Time, locs []domain.Location, durations map[int]domain.TravelDuration) []domain.TimelineEntry {
	entries := make([]domain.TimelineEntry, 0, len(locs))
	current := start

	for i, loc := range locs {
		stay := loc.StayDays
		if stay < 1 {
			stay = 1
		}

		arrival := current
		departure := arrival.AddDate(0, 0, stay)

		entry := domain.TimelineEntry{
			LocationID: loc.ID,
			Name:       loc.Name,
			StayDays:   stay,
			Arrival:    arrival,
			Departure:  departure,
		}

		current = departure
		if i < len(locs)-1 {
			if d, ok := durations[i]; ok {
				dc := d
				entry.TravelToNext = &dc
				current = departure.Add(time.Duration(d.Seconds) * time.Second)
			}
		}

		entries = append(entries, entry)
	}

	return entries
}

// TotalDays returns the full trip span — last departure minus first arrival —
// rounded up to whole days for display. Zero for an empty timeline.
func TotalDays(entries []domain.TimelineEntry) int {
	if len(entries) == 0 {
		return 0
	}
	span := entries[len(entries)-1].Departure.Sub(entries[0].Arrival)
	days := int(span / (24 * time.Hour))
	if span%(24*time.Hour) != 0 {
		days++
	}
	return days
}
