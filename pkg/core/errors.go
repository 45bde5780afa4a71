package core

import "errors"

// Common errors.
var (
	// ErrValidation is returned by persistence entry points when the
	// validation hook rejected the proposed attributes. The verbatim
	// rejection travels on the error event, not on this sentinel.
	ErrValidation = errors.New("model validation failed")

	// ErrParse is returned when a sync response could not be decoded and
	// therefore was not applied.
	ErrParse = errors.New("sync response could not be parsed")

	// ErrNoDecoder marks a fatal configuration fault: the model has no
	// response decoder. Factories reject it at setup time.
	ErrNoDecoder = errors.New("model has no response decoder configured")

	// ErrReadOnly cancels writes to read-only attributes.
	ErrReadOnly = errors.New("attribute is read-only")

	// ErrNotFound is returned by syncers for ids with no stored state.
	ErrNotFound = errors.New("model not found")

	// ErrUnsupported is returned when the configured syncer lacks an
	// optional capability (listing, watching).
	ErrUnsupported = errors.New("operation not supported by syncer")
)
