package hal

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	// Capture receives every frame, back to back; nil discards them.
	Capture io.Writer
	// Keys supplies button tokens, one per line; nil means no input.
	Keys io.Reader
	// Duration stops the run after this long; zero runs until ctx is done or
	// fn returns.
	Duration time.Duration
}

// RunHeadless runs fn on a virtual LCD without any front-end. Reaching
// cfg.Duration is a clean stop.
func RunHeadless(ctx context.Context, fn Runner, cfg HeadlessConfig) error {
	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)

	dev := newVirtualDevice()
	dev.capture = cfg.Capture
	errc := dev.run(ctx, fn)
	if cfg.Keys != nil {
		go feedKeys(dev, cfg.Keys)
	}

	var err error
	select {
	case err = <-errc:
		cancel()
	case <-ctx.Done():
		err = settle(cancel, errc)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// feedKeys presses the buttons named in r until r ends or dev closes.
// Unknown tokens are skipped.
func feedKeys(dev *virtualDevice, r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		select {
		case <-dev.done:
			return
		default:
		}
		if b, ok := ParseButton(sc.Text()); ok {
			dev.Press(b)
		}
	}
}
