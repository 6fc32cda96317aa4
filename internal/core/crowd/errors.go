package crowd

import "github.com/pkg/errors"

var (
	ErrUnknownAgent = errors.New("agent not found")
	ErrStaleResult  = errors.New("result does not match the current agent set")
	ErrInvalidStep  = errors.New("time step must be positive and finite")
)
