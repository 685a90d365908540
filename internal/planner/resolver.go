// Package planner owns the per-selection itinerary state: the travel-time
// resolver queue, the cached durations, and the recompute policy that keeps
// the timeline in sync with mutations and incoming lookup results.
package planner

import (
	"context"
	"time"

	"github.com/tdnguyen/tripmapper/backend/internal/directions"
	"github.com/tdnguyen/tripmapper/backend/internal/domain"
	"github.com/tdnguyen/tripmapper/backend/internal/metrics"
)

// Resolver resolves the N−1 travel durations of a location sequence, one
// consecutive pair at a time. The provider rate-limits requests, so lookups
// are strictly serialized: pair i+1 is not issued until pair i has settled,
// with a fixed delay in between. This is a deliberate ordering guarantee,
// not an accidental serialization.
type Resolver struct {
	provider directions.Provider
	delay    time.Duration
	metrics  *metrics.Collector
}

// NewResolver constructs a Resolver. delay is the pause between the
// settlement of one lookup and the issuance of the next.
func NewResolver(provider directions.Provider, delay time.Duration, m *metrics.Collector) *Resolver {
	return &Resolver{provider: provider, delay: delay, metrics: m}
}

// ResolveAll issues one lookup per consecutive pair in locs, in order,
// calling apply(pairIndex, duration) after each settles. A provider failure
// is not fatal: the pair gets domain.UnknownDuration and resolution moves
// on, so a completed run always applies exactly len(locs)-1 results.
//
// Cancelling ctx stops the queue: no further lookups are issued, and a
// result whose response arrives after cancellation is dropped rather than
// applied. Returns ctx.Err() when cancelled, nil when the queue ran to
// completion. Fewer than two locations is a completed empty run.
func (r *Resolver) ResolveAll(ctx context.Context, locs []domain.Location, apply func(pairIndex int, d domain.TravelDuration)) error {
	for i := 0; i+1 < len(locs); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		origin := directions.Point{Lat: locs[i].Lat, Lng: locs[i].Lng}
		dest := directions.Point{Lat: locs[i+1].Lat, Lng: locs[i+1].Lng}

		r.metrics.Lookups.Inc()
		start := time.Now()
		leg, err := r.provider.Route(ctx, origin, dest)
		r.metrics.LookupDuration.Observe(time.Since(start).Seconds())

		// A response that lost the race with cancellation is stale state
		// from a previous selection's perspective: drop it.
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}

		dur := domain.TravelDuration{Seconds: leg.DurationSeconds, Text: leg.DurationText}
		if err != nil {
			r.metrics.LookupFailures.Inc()
			dur = domain.UnknownDuration
		}
		apply(i, dur)

		// Inter-request delay, skipped after the final pair.
		if i+2 < len(locs) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.delay):
			}
		}
	}
	return nil
}
