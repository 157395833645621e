package nutrition

import (
	"errors"
	"fmt"
)

// ResolutionKind classifies a failed external lookup.
type ResolutionKind string

const (
	// KindUnavailable means the provider could not be reached or answered
	// with a non-success status.
	KindUnavailable ResolutionKind = "unavailable"
	// KindMalformedResponse means the provider answered but the payload did
	// not have the expected shape.
	KindMalformedResponse ResolutionKind = "malformed_response"
)

// ResolutionError is a per-ingredient lookup failure. It never aborts a
// recommendation request; the engine degrades the affected ingredient.
type ResolutionError struct {
	Kind  ResolutionKind
	Query string
	Err   error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("nutrient lookup %s for %q: %v", e.Kind, e.Query, e.Err)
	}
	return fmt.Sprintf("nutrient lookup %s for %q", e.Kind, e.Query)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// AsResolutionError extracts a ResolutionError from err, if any.
func AsResolutionError(err error) (*ResolutionError, bool) {
	var re *ResolutionError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
