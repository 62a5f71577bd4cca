// Package task maps the host-supplied mode string onto a closed set of
// operations and runs the selected one against the remote API.
package task

import "fmt"

// Mode identifies one of the operations this plugin can run.
type Mode int

const (
	// ModeAddTag resolves or creates the configured tag and attaches it to a
	// random scene. This is the default when no mode is supplied.
	ModeAddTag Mode = iota
	// ModeRemoveTag destroys the configured tag if it exists.
	ModeRemoveTag
	// ModeLongTask runs a bounded simulated long task with progress reports.
	ModeLongTask
	// ModeIndefiniteTask sleeps until externally cancelled. It exists to
	// exercise the host's cancellation path and has no success path.
	ModeIndefiniteTask
)

func (m Mode) String() string {
	switch m {
	case ModeAddTag:
		return "add"
	case ModeRemoveTag:
		return "remove"
	case ModeLongTask:
		return "long"
	case ModeIndefiniteTask:
		return "indef"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// UnknownModeError reports a mode string outside the supported set. An
// unrecognized mode is a reported error, never a silent success.
type UnknownModeError struct {
	Mode string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unknown mode %q", e.Mode)
}

// NoTargetError reports an unmet operation precondition, such as no scenes
// existing to attach a tag to.
type NoTargetError struct {
	Reason string
}

func (e *NoTargetError) Error() string {
	return e.Reason
}

// ParseMode maps the host-supplied mode string to a Mode. The empty string
// selects the default operation.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "add":
		return ModeAddTag, nil
	case "remove":
		return ModeRemoveTag, nil
	case "long":
		return ModeLongTask, nil
	case "indef":
		return ModeIndefiniteTask, nil
	default:
		return 0, &UnknownModeError{Mode: s}
	}
}
