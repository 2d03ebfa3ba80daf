package boot

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigMissing indicates the network credentials are not set.
	ErrConfigMissing = errors.New("boot: network credentials missing")

	// ErrTransient marks a network association attempt worth retrying.
	// Network implementations wrap it.
	ErrTransient = errors.New("boot: transient network error")

	// ErrHardwareInit indicates the display or network co-processor could
	// not be brought up.
	ErrHardwareInit = errors.New("boot: hardware initialization failed")

	// ErrClockSync indicates the time service gave no usable answer.
	ErrClockSync = errors.New("boot: clock sync failed")

	// ErrUnknownPhase indicates a phase value outside the state machine.
	ErrUnknownPhase = errors.New("boot: unknown phase")
)

// PhaseError is a fatal error together with the phase that raised it.
type PhaseError struct {
	Phase   Phase
	Wrapped error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Wrapped)
}

func (e *PhaseError) Unwrap() error {
	return e.Wrapped
}
