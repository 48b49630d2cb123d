package apps

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownApp matches every *UnknownAppError.
	ErrUnknownApp = errors.New("unknown application")
	// ErrUninitialized is returned by handlers called before the state they
	// act on exists.
	ErrUninitialized = errors.New("application not initialized")
)

// UnknownAppError reports a name that does not resolve to an application.
type UnknownAppError struct {
	Name string
}

func (e *UnknownAppError) Error() string {
	return fmt.Sprintf("unknown application %q", e.Name)
}

func (e *UnknownAppError) Is(target error) bool {
	return target == ErrUnknownApp
}
