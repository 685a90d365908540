package planner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tdnguyen/tripmapper/backend/internal/domain"
	"github.com/tdnguyen/tripmapper/backend/internal/metrics"
	"github.com/tdnguyen/tripmapper/backend/internal/timeline"
)

// TripSource supplies the trip record (for its start date) to the planner.
// Satisfied by repo.TripRepo; defined here so the planner can be unit-tested
// with an in-memory source.
type TripSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

// LocationSource supplies a trip's ordered location sequence to the planner.
// Satisfied by repo.LocationRepo.
type LocationSource interface {
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Location, error)
}

// Planner holds the single active trip selection and reacts to mutations and
// resolver results. All state is scoped to one selection at a time: selecting
// a different trip cancels the in-flight resolver queue and discards every
// result still owned by the previous selection.
type Planner struct {
	trips     TripSource
	locations LocationSource
	resolver  *Resolver
	metrics   *metrics.Collector
	logger    *slog.Logger

	mu     sync.Mutex
	active *session
}

// session is the mutable state of one trip selection.
// Everything in here is guarded by Planner.mu except the channels, which are
// only closed or cancelled while the lock is held.
type session struct {
	tripID    uuid.UUID
	startDate *time.Time
	locs      []domain.Location
	durations map[int]domain.TravelDuration // keyed by pair index (position i -> i+1)
	entries   []domain.TimelineEntry

	ctx       context.Context // parent of all resolver runs for this selection
	cancel    context.CancelFunc
	runCancel context.CancelFunc // cancels the current resolver run only

	dirty chan struct{} // capacity 1: pending rebuild requests coalesce here
	quit  chan struct{}
}

// notify schedules a rebuild. The capacity-1 channel collapses bursts of
// rapid changes into a single rebuild over the latest state.
func (s *session) notify() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// pairKey identifies a consecutive pair by endpoint identity and coordinates.
// A cached duration survives a mutation only while its key is unchanged —
// editing either endpoint's coordinates invalidates the pair.
type pairKey struct {
	originID, destID       uuid.UUID
	oLat, oLng, dLat, dLng float64
}

func keyFor(origin, dest domain.Location) pairKey {
	return pairKey{
		originID: origin.ID, destID: dest.ID,
		oLat: origin.Lat, oLng: origin.Lng,
		dLat: dest.Lat, dLng: dest.Lng,
	}
}

// New constructs a Planner. No selection is active until Select is called.
func New(trips TripSource, locations LocationSource, resolver *Resolver, m *metrics.Collector, logger *slog.Logger) *Planner {
	return &Planner{
		trips:     trips,
		locations: locations,
		resolver:  resolver,
		metrics:   m,
		logger:    logger,
	}
}

// Select makes tripID the active selection, replacing (and cancelling) any
// previous one. The trip's durations resolve asynchronously; an interim
// timeline is available immediately via Snapshot.
func (p *Planner) Select(ctx context.Context, tripID uuid.UUID) error {
	trip, locs, err := p.load(ctx, tripID)
	if err != nil {
		return fmt.Errorf("planner.Planner.Select: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active != nil {
		p.teardownLocked(p.active)
	}

	sctx, cancel := context.WithCancel(context.Background())
	s := &session{
		tripID:    tripID,
		startDate: trip.StartDate,
		locs:      locs,
		durations: make(map[int]domain.TravelDuration),
		ctx:       sctx,
		cancel:    cancel,
		dirty:     make(chan struct{}, 1),
		quit:      make(chan struct{}),
	}
	p.active = s
	p.metrics.SelectedTrips.Set(1)

	go p.rebuildWorker(s)
	p.startRunLocked(s)
	s.notify()

	p.logger.Info("trip selected", "trip_id", tripID, "locations", len(locs))
	return nil
}

// TripChanged tells the planner that tripID's record or location sequence
// was mutated. It is a no-op unless tripID is the active selection.
// Durations for pairs whose endpoints are unchanged are kept as interim
// values; the resolver queue restarts fresh either way.
//
// The mutation that triggered this call is already durable, so a failed
// reload is logged rather than returned: the timeline simply stays stale
// until the next change.
func (p *Planner) TripChanged(ctx context.Context, tripID uuid.UUID) {
	p.mu.Lock()
	if p.active == nil || p.active.tripID != tripID {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	trip, locs, err := p.load(ctx, tripID)
	if err != nil {
		p.logger.Error("planner reload failed", "trip_id", tripID, "error", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.active
	if s == nil || s.tripID != tripID {
		// Selection moved on while we were loading.
		return
	}

	// Re-key the cache and keep only pairs untouched by the mutation.
	byKey := make(map[pairKey]domain.TravelDuration, len(s.durations))
	for i, d := range s.durations {
		if i+1 < len(s.locs) {
			byKey[keyFor(s.locs[i], s.locs[i+1])] = d
		}
	}
	kept := make(map[int]domain.TravelDuration)
	for i := 0; i+1 < len(locs); i++ {
		if d, ok := byKey[keyFor(locs[i], locs[i+1])]; ok {
			kept[i] = d
		}
	}

	s.startDate = trip.StartDate
	s.locs = locs
	s.durations = kept

	p.startRunLocked(s)
	s.notify()
}

// TripDeleted drops the active selection if it was tripID.
func (p *Planner) TripDeleted(tripID uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active == nil || p.active.tripID != tripID {
		return
	}
	p.teardownLocked(p.active)
	p.active = nil
	p.metrics.SelectedTrips.Set(0)
	p.logger.Info("selection dropped", "trip_id", tripID)
}

// Close cancels the active selection, if any. Called on server shutdown.
func (p *Planner) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active != nil {
		p.teardownLocked(p.active)
		p.active = nil
		p.metrics.SelectedTrips.Set(0)
	}
}

// Snapshot is a point-in-time copy of the active selection's derived state.
type Snapshot struct {
	TripID        uuid.UUID
	HasStartDate  bool
	Entries       []domain.TimelineEntry
	Durations     map[int]domain.TravelDuration
	ResolvedPairs int
	TotalPairs    int
	TotalDays     int
}

// Snapshot returns the current timeline state for tripID.
// Returns domain.ErrNotSelected when tripID is not the active selection.
func (p *Planner) Snapshot(tripID uuid.UUID) (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.active
	if s == nil || s.tripID != tripID {
		return Snapshot{}, domain.ErrNotSelected
	}

	snap := Snapshot{
		TripID:        s.tripID,
		HasStartDate:  s.startDate != nil,
		Entries:       make([]domain.TimelineEntry, len(s.entries)),
		Durations:     make(map[int]domain.TravelDuration, len(s.durations)),
		ResolvedPairs: len(s.durations),
		TotalDays:     timeline.TotalDays(s.entries),
	}
	if len(s.locs) > 1 {
		snap.TotalPairs = len(s.locs) - 1
	}
	copy(snap.Entries, s.entries)
	for i, d := range s.durations {
		snap.Durations[i] = d
	}
	return snap, nil
}

// load fetches the trip record and its ordered locations.
func (p *Planner) load(ctx context.Context, tripID uuid.UUID) (domain.Trip, []domain.Location, error) {
	trip, err := p.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, err
	}
	locs, err := p.locations.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, err
	}
	return trip, locs, nil
}

// startRunLocked cancels the session's current resolver run, if any, and
// starts a fresh one over the session's current location sequence.
// Caller must hold p.mu.
func (p *Planner) startRunLocked(s *session) {
	if s.runCancel != nil {
		s.runCancel()
	}
	runCtx, cancel := context.WithCancel(s.ctx)
	s.runCancel = cancel

	locs := make([]domain.Location, len(s.locs))
	copy(locs, s.locs)

	p.metrics.QueuesStarted.Inc()

	go func() {
		err := p.resolver.ResolveAll(runCtx, locs, func(i int, d domain.TravelDuration) {
			p.mu.Lock()
			defer p.mu.Unlock()
			// The selection or the sequence may have changed while this
			// lookup was in flight; results from a superseded run must
			// never leak into the current state.
			if p.active != s || runCtx.Err() != nil {
				return
			}
			s.durations[i] = d
			s.notify()
		})
		if err != nil {
			p.metrics.QueuesCancelled.Inc()
		}
	}()
}

// rebuildWorker drains the session's dirty channel, rebuilding the timeline
// once per signal. Runs until the session is torn down.
func (p *Planner) rebuildWorker(s *session) {
	for {
		select {
		case <-s.quit:
			return
		case <-s.dirty:
			p.rebuild(s)
		}
	}
}

// rebuild recomputes the timeline from the session's current state.
// A trip without a start date has no timeline: the builder is never handed
// a fabricated default date.
func (p *Planner) rebuild(s *session) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active != s {
		return
	}
	if s.startDate == nil {
		s.entries = nil
	} else {
		s.entries = timeline.Build(*s.startDate, s.locs, s.durations)
	}
	p.metrics.TimelineRebuilds.Inc()
}

// teardownLocked cancels the session's resolver runs and stops its worker.
// Caller must hold p.mu; after this returns no goroutine owned by s will
// mutate planner state again.
func (p *Planner) teardownLocked(s *session) {
	if s.runCancel != nil {
		s.runCancel()
	}
	s.cancel()
	close(s.quit)
}
