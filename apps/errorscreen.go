package apps

import (
	"context"
	"io"

	"g13lcd/display"
	"g13lcd/ui"
)

const (
	errorLineWidth = 26
	errorLines     = 3
)

const noErrorMessage = "Oops\nNo error has occurred\nSorry."

// ErrorScreen reports a failure until it is acknowledged with Dismiss.
type ErrorScreen struct {
	noop
	env      *Env
	message  string
	returnTo string
	end      bool
}

// NewErrorScreen shows message and resolves returnTo once dismissed.
func NewErrorScreen(env *Env, message, returnTo string) *ErrorScreen {
	if returnTo == "" {
		returnTo = KindMenu.String()
	}
	return &ErrorScreen{env: env, message: message, returnTo: returnTo}
}

// NewDefaultErrorScreen is what opening the error screen by name yields:
// there is nothing to report, so it returns to the menu straight away.
func NewDefaultErrorScreen(env *Env) *ErrorScreen {
	return &ErrorScreen{env: env, message: noErrorMessage, returnTo: KindMenu.String(), end: true}
}

func (e *ErrorScreen) Kind() Kind { return KindError }

func (e *ErrorScreen) Message() string { return e.message }

func (e *ErrorScreen) ReturnTo() string { return e.returnTo }

func (e *ErrorScreen) Render(ctx context.Context, out io.Writer) (Application, error) {
	fb := display.New(out)
	errorChrome().Draw(fb)
	for i, line := range ui.Wrap(e.message, errorLineWidth, errorLines) {
		ui.TextRegular.Draw(fb, 0, int16(12+i*ui.RowHeight), line)
	}
	if err := present(ctx, fb); err != nil {
		return nil, err
	}
	if err := idle(ctx, e.env.Ticks.of(KindError), func() bool { return e.end }); err != nil {
		return nil, err
	}
	return e.env.Open(e.returnTo)
}

func (e *ErrorScreen) Dismiss() error {
	e.end = true
	return nil
}
