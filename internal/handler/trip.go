package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tdnguyen/tripmapper/backend/internal/domain"
)

// dateLayout is the wire format for calendar dates. Trips carry a date, not
// an instant: the timeline derives clock times from it.
const dateLayout = "2006-01-02"

// tripRequest is the body for POST /trips and PUT /trips/{tripID}.
type tripRequest struct {
	Name      string  `json:"name"`
	StartDate *string `json:"start_date"` // YYYY-MM-DD, omitted when not yet chosen
	Notes     string  `json:"notes"`
}

// tripResponse mirrors domain.Trip with the start date rendered as a plain
// calendar date, matching what clients send.
type tripResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StartDate *string   `json:"start_date,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (req tripRequest) toDomain() (domain.Trip, error) {
	t := domain.Trip{Name: req.Name, Notes: req.Notes}
	if req.StartDate != nil {
		d, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return domain.Trip{}, err
		}
		t.StartDate = &d
	}
	return t, nil
}

func tripToResponse(t domain.Trip) tripResponse {
	resp := tripResponse{
		ID:        t.ID,
		Name:      t.Name,
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.StartDate != nil {
		d := t.StartDate.Format(dateLayout)
		resp.StartDate = &d
	}
	return resp
}

// handleCreateTrip handles POST /trips.
func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	trip, err := req.toDomain()
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "validation_error", "start_date must be YYYY-MM-DD")
		return
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		s.respondServiceError(w, err, "trip")
		return
	}
	s.respondJSON(w, http.StatusCreated, tripToResponse(created))
}

// handleListTrips handles GET /trips.
func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		s.respondServiceError(w, err, "trip")
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"data": data})
}

// handleGetTrip handles GET /trips/{tripID}.
func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "validation_error", "invalid trip id")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err, "trip")
		return
	}
	s.respondJSON(w, http.StatusOK, tripToResponse(trip))
}

// handleUpdateTrip handles PUT /trips/{tripID}.
func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "validation_error", "invalid trip id")
		return
	}

	var req tripRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	trip, err := req.toDomain()
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "validation_error", "start_date must be YYYY-MM-DD")
		return
	}
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		s.respondServiceError(w, err, "trip")
		return
	}
	s.respondJSON(w, http.StatusOK, tripToResponse(updated))
}

// handleDeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "validation_error", "invalid trip id")
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, err, "trip")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
