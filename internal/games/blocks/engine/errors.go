package engine

import (
	"errors"
	"fmt"
)

// Rejection reasons. Every rejected command wraps exactly one of these.
var (
	// ErrInvalidPhase: the command is not allowed in the current phase.
	ErrInvalidPhase = errors.New("invalid phase")
	// ErrUnknownShape: the shape ID is not in the current batch.
	ErrUnknownShape = errors.New("unknown shape")
	// ErrIllegalPlacement: the shape does not fit at the requested cell.
	ErrIllegalPlacement = errors.New("illegal placement")
	// ErrEmptyBatch: a placement was requested while no batch is active.
	ErrEmptyBatch = errors.New("empty batch")
)

// CommandError reports a rejected command. The session is unchanged.
type CommandError struct {
	Command string
	Phase   Phase // phase at the time of rejection
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("engine: %s rejected in %s: %v", e.Command, e.Phase, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Reason returns the rejection sentinel wrapped by err, or nil if err is
// not a command rejection.
func Reason(err error) error {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Err
	}
	return nil
}
