package kernel

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"g13lcd/hal"
)

// ReadButtons decodes one token per line from r and sends the buttons on out.
// Unknown tokens, blank lines and lines longer than the read buffer are
// skipped. It returns hal.ErrDisconnected when r ends or fails, and ctx.Err()
// once ctx is done.
func ReadButtons(ctx context.Context, r io.Reader, out chan<- hal.Button) error {
	br := bufio.NewReader(r)
	long := false
	for {
		line, more, err := br.ReadLine()
		if err == io.EOF {
			return hal.ErrDisconnected
		}
		if err != nil {
			return fmt.Errorf("%w: %w", hal.ErrDisconnected, err)
		}
		if more || long {
			// Drop the rest of an over-long line.
			long = more
			continue
		}
		b, ok := hal.ParseButton(string(line))
		if !ok {
			continue
		}
		select {
		case out <- b:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
