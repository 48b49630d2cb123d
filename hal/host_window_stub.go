//go:build !cgo

package hal

import (
	"context"
	"fmt"
)

func RunWindow(_ context.Context, _ Runner, _ int) error {
	return fmt.Errorf("window preview: %w (build with CGO_ENABLED=1, or use --terminal)", ErrNotImplemented)
}
