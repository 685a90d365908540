package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tdnguyen/tripmapper/backend/internal/domain"
)

// timelineResponse is the body for GET /trips/{tripID}/timeline.
// Entries are empty until the trip has a start date; travel durations are
// reported separately as well so clients can show transit estimates while
// the date is still unset. ResolvedPairs/TotalPairs let the UI render
// resolution progress.
type timelineResponse struct {
	TripID        uuid.UUID                     `json:"trip_id"`
	HasStartDate  bool                          `json:"has_start_date"`
	Entries       []domain.TimelineEntry        `json:"entries"`
	Durations     map[int]domain.TravelDuration `json:"durations"`
	ResolvedPairs int                           `json:"resolved_pairs"`
	TotalPairs    int                           `json:"total_pairs"`
	TotalDays     int                           `json:"total_days"`
}

// handleSelectTrip handles POST /trips/{tripID}/select.
// Selecting makes the trip the single active itinerary: its travel durations
// begin resolving in the background and its timeline becomes available.
func (s *Server) handleSelectTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "validation_error", "invalid trip id")
		return
	}

	if err := s.planner.Select(r.Context(), tripID); err != nil {
		s.respondServiceError(w, err, "trip")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetTimeline handles GET /trips/{tripID}/timeline.
// Returns 409 unless the trip is the active selection.
func (s *Server) handleGetTimeline(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "validation_error", "invalid trip id")
		return
	}

	snap, err := s.planner.Snapshot(tripID)
	if err != nil {
		s.respondServiceError(w, err, "trip")
		return
	}
	s.respondJSON(w, http.StatusOK, timelineResponse{
		TripID:        snap.TripID,
		HasStartDate:  snap.HasStartDate,
		Entries:       snap.Entries,
		Durations:     snap.Durations,
		ResolvedPairs: snap.ResolvedPairs,
		TotalPairs:    snap.TotalPairs,
		TotalDays:     snap.TotalDays,
	})
}
