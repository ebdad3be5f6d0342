// Package repository implements MySQL persistence for the production
// coverage domain.  This file defines error values that are reused
// across multiple repositories. These sentinel values allow higher
// layers such as handlers to distinguish between different failure
// scenarios. For example, ErrEventNotFound maps to an HTTP 404
// response, while ErrConflict signals that an operation cannot
// proceed due to existing dependent records (e.g. deleting an event
// that still has shot requests).
package repository

import "errors"

// ErrProjectNotFound is returned when a project id does not exist.
var ErrProjectNotFound = errors.New("project not found")

// ErrEventNotFound is returned when an event id does not exist.
var ErrEventNotFound = errors.New("event not found")

// ErrShotNotFound is returned when a shot request id does not exist
// under the given event.
var ErrShotNotFound = errors.New("shot request not found")

// ErrPersonnelNotFound is returned when a personnel id does not exist.
var ErrPersonnelNotFound = errors.New("personnel not found")

// ErrJobNotFound is returned when an ingest job id does not exist.
var ErrJobNotFound = errors.New("ingest job not found")

// ErrConflict is returned when a delete or update cannot be performed
// because of conflicting state, such as attempting to delete an event
// that still has shot requests. Handlers should translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")
