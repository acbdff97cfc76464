package track

import (
	"errors"
	"fmt"
)

// Domain errors raised at element-parameter construction. Particle loss
// is not an error; it is a terminal per-particle state carried by the
// phase-space sentinel.
var (
	ErrNegativeLength = errors.New("track: element length must be >= 0")
	ErrNoSteps        = errors.New("track: NumIntSteps must be >= 1")
	ErrMaxOrder       = errors.New("track: MaxOrder out of range of polynom arrays")
	ErrBadShape       = errors.New("track: array field has wrong length")
	ErrBadFringeFlag  = errors.New("track: fringe flag must be 0, 1 or 2")
)

// ConfigError identifies the offending field of a malformed element.
type ConfigError struct {
	Field   string
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Wrapped)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

func configErr(field string, err error) error {
	return &ConfigError{Field: field, Wrapped: err}
}
