package avoidance

import "github.com/pkg/errors"

// Configuration errors. They are raised while a snapshot or a parameter set is
// built, before any per-agent work starts.
var (
	ErrInvalidSpeed   = errors.New("max speed must be positive and finite")
	ErrInvalidRadius  = errors.New("radius must be positive and finite")
	ErrInvalidRange   = errors.New("neighbor distance must be non-negative")
	ErrInvalidWeight  = errors.New("weight must be non-negative")
	ErrNonFinite      = errors.New("vector component is not finite")
	ErrLengthMismatch = errors.New("input arrays differ in length")
	ErrEmptyID        = errors.New("agent id is empty")
	ErrInvalidParams  = errors.New("invalid avoidance parameters")
	ErrUnknownSolver  = errors.New("unknown avoidance strategy")
)
