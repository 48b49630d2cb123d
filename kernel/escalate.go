package kernel

import (
	"errors"

	"g13lcd/apps"

	"go.uber.org/zap"
)

// escalate replaces the failed application with an error screen that returns
// to the failed application's fallback.
func (k *Kernel) escalate(err error) {
	failed := k.app
	fields := []zap.Field{
		zap.Stringer("app", failed.Kind()),
		zap.Error(err),
		zap.Strings("causes", Causes(err)),
	}
	var perr *PanicError
	if errors.As(err, &perr) {
		fields = append(fields, zap.ByteString("stack", perr.Stack))
	}
	k.log.Error("Application failed", fields...)

	k.app = apps.NewErrorScreen(k.env, err.Error(), apps.Fallback(failed))
}

// Causes lists the messages of err and of every error it wraps, outermost
// first.
func Causes(err error) []string {
	var out []string
	queue := []error{err}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if e == nil {
			continue
		}
		out = append(out, e.Error())
		switch u := e.(type) {
		case interface{ Unwrap() error }:
			queue = append(queue, u.Unwrap())
		case interface{ Unwrap() []error }:
			queue = append(queue, u.Unwrap()...)
		}
	}
	return out
}
