package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tdnguyen/tripmapper/backend/internal/domain"
)

// locationRequest is the body for POST and PUT on a trip's locations.
// Position is never client-settable: creates append, reorders go through
// the move endpoint.
type locationRequest struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Notes    string  `json:"notes"`
	StayDays int     `json:"stay_days"`
}

// moveRequest is the body for POST .../locations/{locID}/move.
type moveRequest struct {
	Direction string `json:"direction"` // "up" or "down"
}

// tripAndLocIDs parses both path UUIDs, writing the error response itself
// when either is malformed.
func (s *Server) tripAndLocIDs(w http.ResponseWriter, r *http.Request) (tripID, locID uuid.UUID, ok bool) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "validation_error", "invalid trip id")
		return uuid.Nil, uuid.Nil, false
	}
	locID, err = pathUUID(r, "locID")
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "validation_error", "invalid location id")
		return uuid.Nil, uuid.Nil, false
	}
	return tripID, locID, true
}

// handleCreateLocation handles POST /trips/{tripID}/locations.
// The new location is appended to the end of the trip's sequence.
func (s *Server) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "validation_error", "invalid trip id")
		return
	}

	var req locationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	created, err := s.locations.Create(r.Context(), domain.Location{
		TripID:   tripID,
		Name:     req.Name,
		Lat:      req.Lat,
		Lng:      req.Lng,
		Notes:    req.Notes,
		StayDays: req.StayDays,
	})
	if err != nil {
		s.respondServiceError(w, err, "trip")
		return
	}
	s.respondJSON(w, http.StatusCreated, created)
}

// handleListLocations handles GET /trips/{tripID}/locations.
// Locations come back in itinerary order.
func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "validation_error", "invalid trip id")
		return
	}

	locs, err := s.locations.ListByTripID(r.Context(), tripID)
	if err != nil {
		s.respondServiceError(w, err, "trip")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"data": locs})
}

// handleGetLocation handles GET /trips/{tripID}/locations/{locID}.
func (s *Server) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	tripID, locID, ok := s.tripAndLocIDs(w, r)
	if !ok {
		return
	}

	loc, err := s.locations.GetByID(r.Context(), tripID, locID)
	if err != nil {
		s.respondServiceError(w, err, "location")
		return
	}
	s.respondJSON(w, http.StatusOK, loc)
}

// handleUpdateLocation handles PUT /trips/{tripID}/locations/{locID}.
func (s *Server) handleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	tripID, locID, ok := s.tripAndLocIDs(w, r)
	if !ok {
		return
	}

	var req locationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	updated, err := s.locations.Update(r.Context(), domain.Location{
		ID:       locID,
		TripID:   tripID,
		Name:     req.Name,
		Lat:      req.Lat,
		Lng:      req.Lng,
		Notes:    req.Notes,
		StayDays: req.StayDays,
	})
	if err != nil {
		s.respondServiceError(w, err, "location")
		return
	}
	s.respondJSON(w, http.StatusOK, updated)
}

// handleDeleteLocation handles DELETE /trips/{tripID}/locations/{locID}.
func (s *Server) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	tripID, locID, ok := s.tripAndLocIDs(w, r)
	if !ok {
		return
	}

	if err := s.locations.Delete(r.Context(), tripID, locID); err != nil {
		s.respondServiceError(w, err, "location")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleMoveLocation handles POST /trips/{tripID}/locations/{locID}/move.
// A boundary move (first up, last down) succeeds without changing anything.
func (s *Server) handleMoveLocation(w http.ResponseWriter, r *http.Request) {
	tripID, locID, ok := s.tripAndLocIDs(w, r)
	if !ok {
		return
	}

	var req moveRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if err := s.locations.Move(r.Context(), tripID, locID, domain.MoveDirection(req.Direction)); err != nil {
		s.respondServiceError(w, err, "location")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
