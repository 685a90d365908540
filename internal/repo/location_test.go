package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdnguyen/tripmapper/backend/internal/domain"
	"github.com/tdnguyen/tripmapper/backend/internal/repo"
)

// newTestLocationRepos returns trip and location repos sharing one
// rollback-isolated transaction, plus a parent trip to hang locations on.
func newTestLocationRepos(t *testing.T) (repo.TripRepo, repo.LocationRepo, domain.Trip) {
	t.Helper()
	tx := newTestTx(t)
	trips := repo.NewTripRepo(tx)
	locs := repo.NewLocationRepo(tx)

	trip, err := trips.Create(context.Background(), tripFixture())
	require.NoError(t, err, "create parent trip")

	return trips, locs, trip
}

func locationFixture(tripID uuid.UUID, name string) domain.Location {
	return domain.Location{
		TripID:   tripID,
		Name:     name,
		Lat:      21.0278,
		Lng:      105.8342,
		StayDays: 2,
	}
}

// createSequence inserts n locations and returns them in itinerary order.
func createSequence(t *testing.T, r repo.LocationRepo, tripID uuid.UUID, names ...string) []domain.Location {
	t.Helper()
	ctx := context.Background()

	out := make([]domain.Location, 0, len(names))
	for _, name := range names {
		loc, err := r.Create(ctx, locationFixture(tripID, name))
		require.NoError(t, err, "create location %q", name)
		out = append(out, loc)
	}
	return out
}

func TestLocationRepo_Create_AppendsPositions(t *testing.T) {
	_, r, trip := newTestLocationRepos(t)

	locs := createSequence(t, r, trip.ID, "Hanoi", "Sapa", "Hue")

	for i, loc := range locs {
		assert.Equal(t, i, loc.Position, "positions must be assigned 0..n-1 in creation order")
		assert.Equal(t, trip.ID, loc.TripID)
		assert.NotEqual(t, uuid.Nil, loc.ID)
		assert.False(t, loc.CreatedAt.IsZero())
	}
}

func TestLocationRepo_Create_PositionsIndependentPerTrip(t *testing.T) {
	trips, r, trip := newTestLocationRepos(t)
	ctx := context.Background()

	other, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	createSequence(t, r, trip.ID, "Hanoi", "Sapa")
	second := createSequence(t, r, other.ID, "Lisbon")

	assert.Equal(t, 0, second[0].Position, "each trip's sequence starts at 0")
}

func TestLocationRepo_GetByID(t *testing.T) {
	_, r, trip := newTestLocationRepos(t)
	ctx := context.Background()

	created := createSequence(t, r, trip.ID, "Hanoi")[0]

	got, err := r.GetByID(ctx, trip.ID, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Hanoi", got.Name)
	assert.InDelta(t, 21.0278, got.Lat, 1e-9)
	assert.InDelta(t, 105.8342, got.Lng, 1e-9)
}

// TestLocationRepo_GetByID_WrongTrip: a location is only reachable through
// its own trip — a valid location ID under the wrong trip ID is a 404.
func TestLocationRepo_GetByID_WrongTrip(t *testing.T) {
	trips, r, trip := newTestLocationRepos(t)
	ctx := context.Background()

	other, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	created := createSequence(t, r, trip.ID, "Hanoi")[0]

	_, err = r.GetByID(ctx, other.ID, created.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocationRepo_ListByTripID_ItineraryOrder(t *testing.T) {
	_, r, trip := newTestLocationRepos(t)
	ctx := context.Background()

	createSequence(t, r, trip.ID, "Hanoi", "Sapa", "Hue")

	locs, err := r.ListByTripID(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, locs, 3)
	assert.Equal(t, []string{"Hanoi", "Sapa", "Hue"}, []string{locs[0].Name, locs[1].Name, locs[2].Name})
	for i, loc := range locs {
		assert.Equal(t, i, loc.Position)
	}
}

func TestLocationRepo_Update_KeepsPosition(t *testing.T) {
	_, r, trip := newTestLocationRepos(t)
	ctx := context.Background()

	locs := createSequence(t, r, trip.ID, "Hanoi", "Sapa")

	edit := locs[1]
	edit.Name = "Sa Pa"
	edit.StayDays = 7
	edit.Lat = 22.3364

	updated, err := r.Update(ctx, edit)

	require.NoError(t, err)
	assert.Equal(t, "Sa Pa", updated.Name)
	assert.Equal(t, 7, updated.StayDays)
	assert.Equal(t, 1, updated.Position, "editing fields must not move the location")
}

func TestLocationRepo_Update_NotFound(t *testing.T) {
	_, r, trip := newTestLocationRepos(t)
	ctx := context.Background()

	ghost := locationFixture(trip.ID, "Ghost")
	ghost.ID = uuid.New()

	_, err := r.Update(ctx, ghost)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestLocationRepo_Delete_CompactsPositions: removing a middle location must
// close the gap so positions stay dense 0..n-1.
func TestLocationRepo_Delete_CompactsPositions(t *testing.T) {
	_, r, trip := newTestLocationRepos(t)
	ctx := context.Background()

	locs := createSequence(t, r, trip.ID, "Hanoi", "Sapa", "Hue", "Hoi An")

	require.NoError(t, r.Delete(ctx, trip.ID, locs[1].ID))

	remaining, err := r.ListByTripID(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 3)

	assert.Equal(t, []string{"Hanoi", "Hue", "Hoi An"},
		[]string{remaining[0].Name, remaining[1].Name, remaining[2].Name})
	for i, loc := range remaining {
		assert.Equal(t, i, loc.Position, "positions must be compacted after delete")
	}
}

func TestLocationRepo_Delete_NotFound(t *testing.T) {
	_, r, trip := newTestLocationRepos(t)
	ctx := context.Background()

	err := r.Delete(ctx, trip.ID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocationRepo_SwapPositions(t *testing.T) {
	_, r, trip := newTestLocationRepos(t)
	ctx := context.Background()

	createSequence(t, r, trip.ID, "Hanoi", "Sapa", "Hue")

	require.NoError(t, r.SwapPositions(ctx, trip.ID, 0, 1))

	locs, err := r.ListByTripID(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, locs, 3)
	assert.Equal(t, []string{"Sapa", "Hanoi", "Hue"},
		[]string{locs[0].Name, locs[1].Name, locs[2].Name})
}

func TestLocationRepo_SwapPositions_UnoccupiedPosition(t *testing.T) {
	_, r, trip := newTestLocationRepos(t)
	ctx := context.Background()

	createSequence(t, r, trip.ID, "Hanoi")

	err := r.SwapPositions(ctx, trip.ID, 0, 5)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestLocationRepo_CascadeDelete: deleting the trip removes its locations via
// the foreign key cascade.
func TestLocationRepo_CascadeDelete(t *testing.T) {
	trips, r, trip := newTestLocationRepos(t)
	ctx := context.Background()

	createSequence(t, r, trip.ID, "Hanoi", "Sapa")

	require.NoError(t, trips.Delete(ctx, trip.ID))

	locs, err := r.ListByTripID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Empty(t, locs)
}
