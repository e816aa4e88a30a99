package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrNotImplemented   = errors.New("not implemented")
	ErrNotTrained       = errors.New("model not trained")
	ErrStoreUnavailable = errors.New("store unavailable")
)
