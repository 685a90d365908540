package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/tdnguyen/tripmapper/backend/internal/domain"
)

// errorResponse is the envelope for every non-2xx body:
// {"error":{"code":"...","message":"..."}}.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes v as the response body with the given status code.
// Encoding failures are logged, not surfaced: headers are already sent.
func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encoding failed", "error", err)
	}
}

// respondError writes the standard error envelope.
func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// respondServiceError maps a service or planner error onto the HTTP surface.
// resource names what was being looked up ("trip", "location") because the
// handler is the layer that knows.
func (s *Server) respondServiceError(w http.ResponseWriter, err error, resource string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "not_found", resource+" not found")
	case errors.Is(err, domain.ErrValidation):
		s.respondError(w, http.StatusUnprocessableEntity, "validation_error", validationMessage(err))
	case errors.Is(err, domain.ErrNotSelected):
		s.respondError(w, http.StatusConflict, "not_selected", "trip is not the active selection")
	default:
		s.logger.Error("request failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// decodeJSON decodes the request body into v, rejecting unknown fields so
// client typos fail loudly instead of silently dropping data.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body: "+err.Error())
		return false
	}
	return true
}

// validationMessage extracts the human-readable part from a wrapped
// validation error, e.g.
// "service.TripService.Create: validation error: name is required" → "name is required".
func validationMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
