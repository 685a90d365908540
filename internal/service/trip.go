// Package service contains the business logic for the Trip Mapper API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations. Every successful mutation is reported to the Recomputer
// so the active selection's timeline stays in sync.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tdnguyen/tripmapper/backend/internal/domain"
	"github.com/tdnguyen/tripmapper/backend/internal/repo"
)

// Recomputer receives change notifications after durable mutations.
// Satisfied by planner.Planner; defined here so services can be unit-tested
// with a recording stub.
type Recomputer interface {
	// TripChanged signals that the trip's record or location sequence was
	// mutated. Must be cheap and must not fail the mutation.
	TripChanged(ctx context.Context, tripID uuid.UUID)
	// TripDeleted signals that the trip no longer exists.
	TripDeleted(tripID uuid.UUID)
}

// TripService implements business logic for Trip operations.
type TripService struct {
	trips     repo.TripRepo
	recompute Recomputer
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(trips repo.TripRepo, recompute Recomputer) *TripService {
	return &TripService{trips: trips, recompute: recompute}
}

// Create validates and persists a new trip.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if it does not exist.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips, most recently starting first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update validates and persists changes to an existing trip, then triggers
// a recompute — a start date change shifts the entire timeline.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	s.recompute.TripChanged(ctx, result.ID)
	return result, nil
}

// Delete removes a trip by ID. Its locations cascade in the database, and
// the active selection is dropped if it pointed at this trip.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	s.recompute.TripDeleted(id)
	return nil
}

// validateTrip enforces business rules common to Create and Update.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return nil
}
