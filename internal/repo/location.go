package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tdnguyen/tripmapper/backend/internal/domain"
)

// LocationRepo defines the persistence operations for a trip's ordered
// location sequence. All operations are scoped by tripID to enforce
// ownership, and the repo maintains the dense-position invariant: positions
// within a trip are always 0..n-1 with no gaps or duplicates.
type LocationRepo interface {
	// Create inserts a new location at the end of the trip's sequence and
	// returns the persisted record with its assigned position.
	Create(ctx context.Context, loc domain.Location) (domain.Location, error)

	// GetByID retrieves a single location, scoped to the given tripID.
	// Returns domain.ErrNotFound if it does not exist under that trip.
	GetByID(ctx context.Context, tripID, locID uuid.UUID) (domain.Location, error)

	// ListByTripID returns all locations for a trip ordered by position.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Location, error)

	// Update overwrites name, coordinates, notes, and stay length of a
	// location. Position is never changed here — use SwapPositions.
	// Returns domain.ErrNotFound if it does not exist under that trip.
	Update(ctx context.Context, loc domain.Location) (domain.Location, error)

	// Delete removes a location and closes the gap by shifting every later
	// position down by one. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, tripID, locID uuid.UUID) error

	// SwapPositions exchanges the locations at positions a and b within a
	// trip. Both positions must be occupied.
	SwapPositions(ctx context.Context, tripID uuid.UUID, a, b int) error
}

// pgLocationRepo is the Postgres implementation of LocationRepo.
type pgLocationRepo struct {
	db db
}

// NewLocationRepo constructs a LocationRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewLocationRepo(db db) LocationRepo {
	return &pgLocationRepo{db: db}
}

// Create appends the location to the trip's sequence. The position is
// assigned inside the insert so no separate read is needed.
func (r *pgLocationRepo) Create(ctx context.Context, loc domain.Location) (domain.Location, error) {
	const q = `
		INSERT INTO locations (trip_id, name, lat, lng, notes, stay_days, position)
		SELECT @trip_id, @name, @lat, @lng, @notes, @stay_days,
		       COALESCE(MAX(position) + 1, 0)
		FROM locations
		WHERE trip_id = @trip_id
		RETURNING id, trip_id, name, lat, lng, notes, stay_days, position, created_at, updated_at`

	args := pgx.NamedArgs{
		"trip_id":   loc.TripID,
		"name":      loc.Name,
		"lat":       loc.Lat,
		"lng":       loc.Lng,
		"notes":     loc.Notes,
		"stay_days": loc.StayDays,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanLocation(row)
	if err != nil {
		return domain.Location{}, fmt.Errorf("repo.LocationRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves one location scoped to its trip.
func (r *pgLocationRepo) GetByID(ctx context.Context, tripID, locID uuid.UUID) (domain.Location, error) {
	const q = `
		SELECT id, trip_id, name, lat, lng, notes, stay_days, position, created_at, updated_at
		FROM locations
		WHERE trip_id = @trip_id AND id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID, "id": locID})
	result, err := scanLocation(row)
	if err != nil {
		return domain.Location{}, fmt.Errorf("repo.LocationRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns the trip's full sequence in itinerary order.
func (r *pgLocationRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Location, error) {
	const q = `
		SELECT id, trip_id, name, lat, lng, notes, stay_days, position, created_at, updated_at
		FROM locations
		WHERE trip_id = @trip_id
		ORDER BY position ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.LocationRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var locs []domain.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LocationRepo.ListByTripID: scan: %w", err)
		}
		locs = append(locs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LocationRepo.ListByTripID: rows: %w", err)
	}

	return locs, nil
}

// Update overwrites the editable fields, leaving position untouched.
func (r *pgLocationRepo) Update(ctx context.Context, loc domain.Location) (domain.Location, error) {
	const q = `
		UPDATE locations
		SET name       = @name,
		    lat        = @lat,
		    lng        = @lng,
		    notes      = @notes,
		    stay_days  = @stay_days,
		    updated_at = now()
		WHERE trip_id = @trip_id AND id = @id
		RETURNING id, trip_id, name, lat, lng, notes, stay_days, position, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":        loc.ID,
		"trip_id":   loc.TripID,
		"name":      loc.Name,
		"lat":       loc.Lat,
		"lng":       loc.Lng,
		"notes":     loc.Notes,
		"stay_days": loc.StayDays,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanLocation(row)
	if err != nil {
		return domain.Location{}, fmt.Errorf("repo.LocationRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes the location and compacts later positions in one statement,
// so the dense-position invariant holds even without an explicit transaction.
func (r *pgLocationRepo) Delete(ctx context.Context, tripID, locID uuid.UUID) error {
	const q = `
		WITH removed AS (
			DELETE FROM locations
			WHERE trip_id = @trip_id AND id = @id
			RETURNING position
		),
		shifted AS (
			UPDATE locations
			SET position = position - 1
			WHERE trip_id = @trip_id
			  AND position > (SELECT position FROM removed)
		)
		SELECT position FROM removed`

	var pos int
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID, "id": locID}).Scan(&pos)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("repo.LocationRepo.Delete: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("repo.LocationRepo.Delete: %w", err)
	}
	return nil
}

// SwapPositions exchanges two occupied positions. The unique
// (trip_id, position) constraint is deferred, so the single-statement swap
// never trips it mid-update. The pair CTE makes the update all-or-nothing:
// if either position is unoccupied, zero rows move.
func (r *pgLocationRepo) SwapPositions(ctx context.Context, tripID uuid.UUID, a, b int) error {
	const q = `
		WITH pair AS (
			SELECT id, position
			FROM locations
			WHERE trip_id = @trip_id AND position IN (@a, @b)
		)
		UPDATE locations
		SET position   = CASE position WHEN @a THEN @b::int ELSE @a::int END,
		    updated_at = now()
		WHERE id IN (SELECT id FROM pair)
		  AND (SELECT COUNT(*) FROM pair) = 2`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "a": a, "b": b})
	if err != nil {
		return fmt.Errorf("repo.LocationRepo.SwapPositions: %w", err)
	}
	if tag.RowsAffected() != 2 {
		return fmt.Errorf("repo.LocationRepo.SwapPositions: %w", domain.ErrNotFound)
	}
	return nil
}

// scanLocation maps a single database row into a domain.Location.
func scanLocation(s scanner) (domain.Location, error) {
	var (
		l      domain.Location
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &l.Name, &l.Lat, &l.Lng, &l.Notes, &l.StayDays, &l.Position, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Location{}, domain.ErrNotFound
		}
		return domain.Location{}, err
	}

	l.ID = uuid.UUID(id.Bytes)
	l.TripID = uuid.UUID(tripID.Bytes)
	return l, nil
}
