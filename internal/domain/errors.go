package domain

import "errors"

// Error taxonomy for the scoring pipeline. ErrDataLoad is startup-fatal;
// the rest are per-request and map to client errors in the delivery layer.
var (
	// ErrDataLoad signals a malformed or incomplete incident dataset.
	ErrDataLoad = errors.New("incident dataset load failed")

	// ErrInvalidProfile signals missing or out-of-range traveler fields.
	ErrInvalidProfile = errors.New("invalid traveler profile")

	// ErrComputation signals a non-finite intermediate value, e.g. a
	// route with non-positive duration reaching the blender.
	ErrComputation = errors.New("non-finite score computation")

	// ErrEmptyCandidateSet signals zero routes supplied for scoring.
	ErrEmptyCandidateSet = errors.New("no candidate routes to score")
)
