package kernel

import (
	"context"
	"fmt"
	"io"

	"g13lcd/apps"
)

// PanicError is a panic recovered from an application.
type PanicError struct {
	App   apps.Kind
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.App, e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func safeRender(ctx context.Context, app apps.Application, out io.Writer) (next apps.Application, err error) {
	defer func() {
		if r := recover(); r != nil {
			next, err = nil, &PanicError{App: app.Kind(), Value: r, Stack: captureStack()}
		}
	}()
	return app.Render(ctx, out)
}

func safeCall(app apps.Application, h func(apps.Application) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{App: app.Kind(), Value: r, Stack: captureStack()}
		}
	}()
	return h(app)
}
