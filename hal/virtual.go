package hal

import (
	"context"
	"errors"
	"io"
	"sync"

	"g13lcd/display"
)

// virtualDevice backs the preview front-ends: frames written by the kernel are
// kept for drawing and key presses are fed back as driver tokens.
type virtualDevice struct {
	mu    sync.Mutex
	frame []byte
	seq   uint64

	keysR *io.PipeReader
	keysW *io.PipeWriter
	ch    chan Button
	// frames is signalled, without blocking, after each new frame.
	frames chan struct{}
	done   chan struct{}
	once   sync.Once

	// capture, when set, receives a copy of every frame.
	capture io.Writer
}

func newVirtualDevice() *virtualDevice {
	r, w := io.Pipe()
	d := &virtualDevice{
		frame:  make([]byte, display.BufferSize),
		keysR:  r,
		keysW:  w,
		ch:     make(chan Button, 64),
		frames: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go d.pump()
	return d
}

func (d *virtualDevice) pump() {
	for {
		select {
		case <-d.done:
			return
		case b := <-d.ch:
			if _, err := io.WriteString(d.keysW, b.Token()+"\n"); err != nil {
				return
			}
		}
	}
}

func (d *virtualDevice) Keys() io.Reader { return d.keysR }
func (d *virtualDevice) LCD() io.Writer  { return d }

func (d *virtualDevice) Write(p []byte) (int, error) {
	d.mu.Lock()
	fresh := len(p) >= display.BufferSize
	var err error
	if fresh {
		copy(d.frame, p[len(p)-display.BufferSize:])
		d.seq++
		if d.capture != nil {
			_, err = d.capture.Write(d.frame)
		}
	}
	d.mu.Unlock()
	if err != nil {
		return 0, err
	}
	if fresh {
		select {
		case d.frames <- struct{}{}:
		default:
		}
	}
	return len(p), nil
}

// Press queues a button; presses are dropped when the queue is full.
func (d *virtualDevice) Press(b Button) {
	if b == ButtonUnknown {
		return
	}
	select {
	case d.ch <- b:
	default:
	}
}

// snapshot decodes the last frame. seq changes whenever a new frame arrived.
func (d *virtualDevice) snapshot() (*display.Framebuffer, uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fb, err := display.Decode(d.frame)
	if err != nil {
		return display.New(nil), d.seq
	}
	return fb, d.seq
}

// run starts fn on the device and returns a channel with its result.
// The device is closed once fn returns.
func (d *virtualDevice) run(ctx context.Context, fn Runner) <-chan error {
	errc := make(chan error, 1)
	go func() {
		err := fn(ctx, d)
		_ = d.Close()
		errc <- err
	}()
	return errc
}

func (d *virtualDevice) Close() error {
	d.once.Do(func() {
		close(d.done)
		_ = d.keysW.Close()
	})
	return nil
}

// Runner drives the applications on dev until ctx is done or dev fails.
type Runner func(ctx context.Context, dev Device) error

// settle stops the runner and reports its error, ignoring the cancellation
// caused by the front-end closing.
func settle(cancel context.CancelFunc, errc <-chan error) error {
	cancel()
	err := <-errc
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
