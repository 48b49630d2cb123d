// Package kernel runs the active application against the keypad.
//
// Rendering happens on its own goroutine under a cancellable context while the
// kernel waits for the next button. A button press cancels the render, waits
// for it to unwind, runs the matching handler and starts a fresh render, so a
// handler never runs concurrently with Render. Failures are turned into an
// error screen; only a lost device ends Run.
package kernel

import (
	"context"
	"errors"
	"io"

	"g13lcd/apps"
	"g13lcd/display"
	"g13lcd/hal"

	"go.uber.org/zap"
)

// handlers maps each button to the Application method it triggers.
var handlers = map[hal.Button]func(apps.Application) error{
	hal.ButtonPrimary:   apps.Application.Primary,
	hal.ButtonSecondary: apps.Application.Secondary,
	hal.ButtonPrevious:  apps.Application.Previous,
	hal.ButtonNext:      apps.Application.Next,
	hal.ButtonDismiss:   apps.Application.Dismiss,
}

type Config struct {
	Env *apps.Env
	Log *zap.Logger
	// Initial is the first application shown; nil means the menu.
	Initial apps.Application
}

type Kernel struct {
	env *apps.Env
	log *zap.Logger
	app apps.Application
}

func New(cfg Config) *Kernel {
	env := cfg.Env
	if env == nil {
		env = &apps.Env{}
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	app := cfg.Initial
	if app == nil {
		app = apps.NewMenu(env)
	}
	return &Kernel{env: env, log: log, app: app}
}

// Current returns the active application. It must not be called while Run
// is in progress.
func (k *Kernel) Current() apps.Application { return k.app }

type renderResult struct {
	next apps.Application
	err  error
}

// Run drives applications until ctx is done or a device stream fails.
// keys is read on a separate goroutine that exits once keys is closed.
func (k *Kernel) Run(ctx context.Context, keys io.Reader, lcd io.Writer) error {
	inputCtx, stopInput := context.WithCancel(ctx)
	defer stopInput()

	events := make(chan hal.Button)
	inputErr := make(chan error, 1)
	go func() { inputErr <- ReadButtons(inputCtx, keys, events) }()

	k.log.Info("Kernel started", zap.Stringer("app", k.app.Kind()))
	for {
		renderCtx, cancel := context.WithCancel(ctx)
		done := make(chan renderResult, 1)
		app := k.app
		go func() {
			next, err := safeRender(renderCtx, app, lcd)
			done <- renderResult{next: next, err: err}
		}()

		select {
		case res := <-done:
			cancel()
			if err := k.adopt(ctx, res); err != nil {
				return err
			}

		case b := <-events:
			cancel()
			res := <-done
			if !cancelled(renderCtx, res.err) {
				// The render finished before the press was seen.
				if err := k.adopt(ctx, res); err != nil {
					return err
				}
			}
			if err := k.dispatch(b); err != nil {
				return err
			}

		case err := <-inputErr:
			cancel()
			<-done
			k.log.Error("Input stream closed", zap.Error(err))
			return err

		case <-ctx.Done():
			cancel()
			<-done
			return ctx.Err()
		}
	}
}

// cancelled reports whether err is only the echo of cancelling ctx.
func cancelled(ctx context.Context, err error) bool {
	return err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err())
}

func (k *Kernel) adopt(ctx context.Context, res renderResult) error {
	if res.err != nil {
		if cancelled(ctx, res.err) {
			return ctx.Err()
		}
		return k.fail(res.err)
	}
	if res.next == nil {
		return k.fail(errors.New("application returned no successor"))
	}
	k.log.Info("Switching application",
		zap.Stringer("from", k.app.Kind()),
		zap.Stringer("to", res.next.Kind()))
	k.app = res.next
	return nil
}

func (k *Kernel) dispatch(b hal.Button) error {
	h, ok := handlers[b]
	if !ok {
		return nil
	}
	k.log.Debug("Button pressed", zap.Stringer("button", b), zap.Stringer("app", k.app.Kind()))
	if err := safeCall(k.app, h); err != nil {
		return k.fail(err)
	}
	return nil
}

// fail escalates err to an error screen unless a device is gone.
func (k *Kernel) fail(err error) error {
	if fatal(err) {
		k.log.Error("Device disconnected", zap.Error(err))
		return err
	}
	k.escalate(err)
	return nil
}

func fatal(err error) bool {
	return errors.Is(err, display.ErrDisconnected) || errors.Is(err, hal.ErrDisconnected)
}
