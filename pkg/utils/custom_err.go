package utils

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")

	ErrTripNotFound     = errors.New("trip not found")
	ErrLandmarkNotFound = errors.New("landmark not found")

	// conversation pipeline
	ErrExtractionMiss        = errors.New("no intent pattern matched")
	ErrClarificationInvalid  = errors.New("day count reply is not a positive integer")
	ErrRouteUnavailable      = errors.New("route service unavailable")
	ErrModelEmptyResponse    = errors.New("language model returned no usable text")
	ErrSegmentPersistFailure = errors.New("path segment could not be persisted")
	ErrExportFailure         = errors.New("trip export failed")
)
