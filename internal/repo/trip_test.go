package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdnguyen/tripmapper/backend/internal/domain"
	"github.com/tdnguyen/tripmapper/backend/internal/repo"
	"github.com/tdnguyen/tripmapper/backend/testutil"
)

// newTestTx opens a transaction against the test database. It is rolled back
// automatically when the test finishes, giving free per-test isolation —
// no cleanup SQL needed.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return tx
}

// newTestTripRepo returns a TripRepo backed by a rollback-isolated transaction.
func newTestTripRepo(t *testing.T) repo.TripRepo {
	t.Helper()
	return repo.NewTripRepo(newTestTx(t))
}

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func tripFixture() domain.Trip {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return domain.Trip{
		Name:      "Summer Tour",
		StartDate: &start,
		Notes:     "Test notes",
	}
}

func TestTripRepo_Create(t *testing.T) {
	r := newTestTripRepo(t)
	ctx := context.Background()

	input := tripFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, [16]byte{}, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input.Name, got.Name)
	require.NotNil(t, got.StartDate, "StartDate should not be nil")
	assert.True(t, got.StartDate.Equal(*input.StartDate), "StartDate mismatch")
	assert.Equal(t, input.Notes, got.Notes)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be set by DB")
}

func TestTripRepo_Create_NilStartDate(t *testing.T) {
	r := newTestTripRepo(t)
	ctx := context.Background()

	input := tripFixture()
	input.StartDate = nil // user has not picked a date yet

	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.Nil(t, got.StartDate, "StartDate should be nil when not provided")
}

func TestTripRepo_GetByID(t *testing.T) {
	r := newTestTripRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Name, got.Name)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := newTestTripRepo(t)
	ctx := context.Background()

	// Use a random UUID that was never inserted.
	id := [16]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

	_, err := r.GetByID(ctx, id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_List(t *testing.T) {
	r := newTestTripRepo(t)
	ctx := context.Background()

	t1 := tripFixture()
	t1.Name = "First Trip"

	t2 := tripFixture()
	t2.Name = "Second Trip"
	later := t1.StartDate.AddDate(0, 1, 0)
	t2.StartDate = &later

	t3 := tripFixture()
	t3.Name = "Undated Trip"
	t3.StartDate = nil

	for _, tr := range []domain.Trip{t1, t2, t3} {
		_, err := r.Create(ctx, tr)
		require.NoError(t, err)
	}

	trips, err := r.List(ctx)

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(trips), 3, "should return at least the three created trips")

	var names []string
	for _, tr := range trips {
		names = append(names, tr.Name)
	}
	assert.Contains(t, names, "First Trip")
	assert.Contains(t, names, "Second Trip")

	// Undated trips sort last (start_date DESC NULLS LAST).
	assert.Equal(t, "Undated Trip", trips[len(trips)-1].Name)
}

func TestTripRepo_Update(t *testing.T) {
	r := newTestTripRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	created.Name = "Updated Name"
	created.Notes = "Updated notes"
	created.StartDate = nil // clear the date again

	updated, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Updated Name", updated.Name)
	assert.Equal(t, "Updated notes", updated.Notes)
	assert.Nil(t, updated.StartDate)
	// updated_at may equal created_at in fast tests, but must not be zero.
	assert.False(t, updated.UpdatedAt.IsZero())
}

func TestTripRepo_Update_NotFound(t *testing.T) {
	r := newTestTripRepo(t)
	ctx := context.Background()

	ghost := tripFixture()
	ghost.ID = [16]byte{0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef,
		0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef}

	_, err := r.Update(ctx, ghost)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Delete(t *testing.T) {
	r := newTestTripRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	err = r.Delete(ctx, created.ID)
	require.NoError(t, err)

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "trip should be gone after delete")
}

func TestTripRepo_Delete_NotFound(t *testing.T) {
	r := newTestTripRepo(t)
	ctx := context.Background()

	id := [16]byte{0xca, 0xfe, 0xba, 0xbe, 0xca, 0xfe, 0xba, 0xbe,
		0xca, 0xfe, 0xba, 0xbe, 0xca, 0xfe, 0xba, 0xbe}

	err := r.Delete(ctx, id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
