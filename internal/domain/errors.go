package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. coordinates out of range, empty required field).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrNotSelected is returned by the planner when a timeline is requested for
// a trip that is not the active selection.
// Handlers should map this to HTTP 409 Conflict.
var ErrNotSelected = errors.New("trip is not selected")
