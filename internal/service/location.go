package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tdnguyen/tripmapper/backend/internal/domain"
	"github.com/tdnguyen/tripmapper/backend/internal/repo"
)

// LocationService implements business logic for a trip's waypoint sequence.
// It holds both repos because creating a location requires verifying the
// parent trip exists.
type LocationService struct {
	trips     repo.TripRepo
	locations repo.LocationRepo
	recompute Recomputer
}

// NewLocationService constructs a LocationService backed by the provided repos.
func NewLocationService(trips repo.TripRepo, locations repo.LocationRepo, recompute Recomputer) *LocationService {
	return &LocationService{trips: trips, locations: locations, recompute: recompute}
}

// Create validates the location, verifies the parent trip exists, then
// appends it to the end of the trip's sequence.
// A zero StayDays is defaulted to 1 before validation.
// Returns domain.ErrValidation if input violates business rules.
// Returns domain.ErrNotFound if the parent trip does not exist.
func (s *LocationService) Create(ctx context.Context, loc domain.Location) (domain.Location, error) {
	if _, err := s.trips.GetByID(ctx, loc.TripID); err != nil {
		return domain.Location{}, fmt.Errorf("service.LocationService.Create: %w", err)
	}
	if loc.StayDays == 0 {
		loc.StayDays = 1
	}
	if err := validateLocation(loc); err != nil {
		return domain.Location{}, err
	}
	result, err := s.locations.Create(ctx, loc)
	if err != nil {
		return domain.Location{}, fmt.Errorf("service.LocationService.Create: %w", err)
	}
	s.recompute.TripChanged(ctx, loc.TripID)
	return result, nil
}

// GetByID returns a single location by ID, scoped to the given tripID.
// Returns domain.ErrNotFound if it does not exist under that trip.
func (s *LocationService) GetByID(ctx context.Context, tripID, locID uuid.UUID) (domain.Location, error) {
	result, err := s.locations.GetByID(ctx, tripID, locID)
	if err != nil {
		return domain.Location{}, fmt.Errorf("service.LocationService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns all locations for a trip in itinerary order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *LocationService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Location, error) {
	locs, err := s.locations.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.LocationService.ListByTripID: %w", err)
	}
	if locs == nil {
		return []domain.Location{}, nil
	}
	return locs, nil
}

// Update validates and persists changes to an existing location's name,
// coordinates, notes, or stay length. Position never changes here.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// location does not exist under the given trip.
func (s *LocationService) Update(ctx context.Context, loc domain.Location) (domain.Location, error) {
	if loc.StayDays == 0 {
		loc.StayDays = 1
	}
	if err := validateLocation(loc); err != nil {
		return domain.Location{}, err
	}
	result, err := s.locations.Update(ctx, loc)
	if err != nil {
		return domain.Location{}, fmt.Errorf("service.LocationService.Update: %w", err)
	}
	s.recompute.TripChanged(ctx, loc.TripID)
	return result, nil
}

// Delete removes a location by ID, scoped to the given tripID. Later
// positions shift down by one so the sequence stays dense.
// Returns domain.ErrNotFound if it does not exist under the given trip.
func (s *LocationService) Delete(ctx context.Context, tripID, locID uuid.UUID) error {
	if err := s.locations.Delete(ctx, tripID, locID); err != nil {
		return fmt.Errorf("service.LocationService.Delete: %w", err)
	}
	s.recompute.TripChanged(ctx, tripID)
	return nil
}

// Move swaps the location with its immediate predecessor (MoveUp) or
// successor (MoveDown). Moving past either end of the sequence is a no-op,
// not an error — mirroring the disabled arrow buttons in the UI.
// Returns domain.ErrNotFound if the location does not exist under the trip,
// domain.ErrValidation for an unknown direction.
func (s *LocationService) Move(ctx context.Context, tripID, locID uuid.UUID, dir domain.MoveDirection) error {
	if dir != domain.MoveUp && dir != domain.MoveDown {
		return fmt.Errorf("%w: direction must be %q or %q", domain.ErrValidation, domain.MoveUp, domain.MoveDown)
	}

	loc, err := s.locations.GetByID(ctx, tripID, locID)
	if err != nil {
		return fmt.Errorf("service.LocationService.Move: %w", err)
	}
	locs, err := s.locations.ListByTripID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.LocationService.Move: %w", err)
	}

	target := loc.Position - 1
	if dir == domain.MoveDown {
		target = loc.Position + 1
	}
	if target < 0 || target >= len(locs) {
		return nil // boundary move, nothing to do
	}

	if err := s.locations.SwapPositions(ctx, tripID, loc.Position, target); err != nil {
		return fmt.Errorf("service.LocationService.Move: %w", err)
	}
	s.recompute.TripChanged(ctx, tripID)
	return nil
}

// validateLocation enforces business rules common to Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - Coordinates must be a valid lat/lng pair.
//   - Stay length must be at least one day.
func validateLocation(loc domain.Location) error {
	if strings.TrimSpace(loc.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if loc.Lat < -90 || loc.Lat > 90 {
		return fmt.Errorf("%w: lat must be between -90 and 90", domain.ErrValidation)
	}
	if loc.Lng < -180 || loc.Lng > 180 {
		return fmt.Errorf("%w: lng must be between -180 and 180", domain.ErrValidation)
	}
	if loc.StayDays < 1 {
		return fmt.Errorf("%w: stay_days must be at least 1", domain.ErrValidation)
	}
	return nil
}
