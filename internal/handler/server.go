// Package handler implements the HTTP handlers for the Trip Mapper API.
// All handlers are methods on Server, split into domain-specific files
// (health.go, trip.go, location.go, timeline.go) but sharing one struct so
// they can access the same dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tdnguyen/tripmapper/backend/internal/domain"
	"github.com/tdnguyen/tripmapper/backend/internal/planner"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LocationServicer defines the business operations the location handlers
// depend on.
type LocationServicer interface {
	Create(ctx context.Context, loc domain.Location) (domain.Location, error)
	GetByID(ctx context.Context, tripID, locID uuid.UUID) (domain.Location, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Location, error)
	Update(ctx context.Context, loc domain.Location) (domain.Location, error)
	Delete(ctx context.Context, tripID, locID uuid.UUID) error
	Move(ctx context.Context, tripID, locID uuid.UUID, dir domain.MoveDirection) error
}

// TimelinePlanner defines the selection and timeline operations the timeline
// handlers depend on. Satisfied by planner.Planner.
type TimelinePlanner interface {
	Select(ctx context.Context, tripID uuid.UUID) error
	Snapshot(tripID uuid.UUID) (planner.Snapshot, error)
}

// Server implements all API endpoints. Methods live in domain-specific files
// but all operate on this struct.
type Server struct {
	trips     TripServicer
	locations LocationServicer
	planner   TimelinePlanner
	logger    *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, locations LocationServicer, p TimelinePlanner, logger *slog.Logger) *Server {
	return &Server{trips: trips, locations: locations, planner: p, logger: logger}
}

// Routes returns the API router. Cross-cutting middleware (request ID,
// logging, CORS, body limits) is applied by the caller, not here.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleGetHealth)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.handleCreateTrip)
		r.Get("/", s.handleListTrips)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.handleGetTrip)
			r.Put("/", s.handleUpdateTrip)
			r.Delete("/", s.handleDeleteTrip)

			r.Post("/select", s.handleSelectTrip)
			r.Get("/timeline", s.handleGetTimeline)

			r.Route("/locations", func(r chi.Router) {
				r.Post("/", s.handleCreateLocation)
				r.Get("/", s.handleListLocations)

				r.Route("/{locID}", func(r chi.Router) {
					r.Get("/", s.handleGetLocation)
					r.Put("/", s.handleUpdateLocation)
					r.Delete("/", s.handleDeleteLocation)
					r.Post("/move", s.handleMoveLocation)
				})
			})
		})
	})

	return r
}

// pathUUID extracts and parses a UUID path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}
