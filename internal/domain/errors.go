package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the caller's visible set. Records owned by a
// different user deliberately surface this same error, so a foreign record
// is indistinguishable from a missing one.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, negative cycle hours).
// RemarkError values also match it via errors.Is.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
