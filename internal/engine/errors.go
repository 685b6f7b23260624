package engine

import "errors"

// Structural failures: the whole conversion fails for the document and no
// partial statement is returned. Everything softer travels as diagnostics.
var (
	// ErrExtractionFailed covers the structural cases: no table region
	// located, or zero valid transactions after normalization.
	ErrExtractionFailed = errors.New("extraction failed")
	// ErrUnsupportedKind is returned for a declared file kind the engine
	// has no adapter for.
	ErrUnsupportedKind = errors.New("unsupported file kind")
	// ErrInvalidInput is returned when the request carries neither document
	// bytes nor pre-extracted entries.
	ErrInvalidInput = errors.New("invalid input")
)
