package media

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTargets is returned when discovery finds nothing to control.
	ErrNoTargets = errors.New("no media player found")
	// ErrTargetNotFound is returned when a named target is not reachable.
	ErrTargetNotFound = errors.New("media player not found")
)

// Error describes a failed call on a media target.
type Error struct {
	Op      string // "discover", "open", "command", "now playing"
	Target  string
	Command Command
	Err     error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Op == "command" {
		msg = fmt.Sprintf("command %s", e.Command)
	}
	if e.Target != "" {
		msg = fmt.Sprintf("%s on %q", msg, e.Target)
	}
	return fmt.Sprintf("%s failed: %v", msg, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
