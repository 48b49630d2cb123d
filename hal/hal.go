package hal

import (
	"errors"
	"io"
	"strings"
)

// ErrDisconnected is returned when the button stream ends or breaks.
var ErrDisconnected = errors.New("device disconnected")

// ErrNotImplemented is returned by front-ends missing from this build.
var ErrNotImplemented = errors.New("not implemented")

// Button is one of the five logical keys routed to applications.
type Button uint8

const (
	ButtonUnknown Button = iota
	ButtonDismiss
	ButtonPrimary
	ButtonSecondary
	ButtonPrevious
	ButtonNext
)

var buttonTokens = [...]string{
	ButtonDismiss:   "BD",
	ButtonPrimary:   "L1",
	ButtonSecondary: "L2",
	ButtonPrevious:  "L3",
	ButtonNext:      "L4",
}

// ParseButton maps a driver token to a Button.
func ParseButton(token string) (Button, bool) {
	token = strings.TrimSpace(token)
	for b, t := range buttonTokens {
		if t != "" && t == token {
			return Button(b), true
		}
	}
	return ButtonUnknown, false
}

// Token returns the driver token for b, or "" for ButtonUnknown.
func (b Button) Token() string {
	if int(b) >= len(buttonTokens) {
		return ""
	}
	return buttonTokens[b]
}

func (b Button) String() string {
	switch b {
	case ButtonDismiss:
		return "dismiss"
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonPrevious:
		return "previous"
	case ButtonNext:
		return "next"
	default:
		return "unknown"
	}
}

// Device is the pair of byte streams shared with the keypad driver.
//
// Keys carries one button token per line. LCD receives whole serialized frames.
type Device interface {
	Keys() io.Reader
	LCD() io.Writer
	Close() error
}
