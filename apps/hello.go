package apps

import (
	"context"
	"io"

	"g13lcd/display"
	"g13lcd/ui"
)

// Hello shows a static greeting.
type Hello struct {
	noop
	env *Env
	end bool
}

func NewHello(env *Env) *Hello { return &Hello{env: env} }

func (h *Hello) Kind() Kind { return KindHello }

func (h *Hello) Render(ctx context.Context, out io.Writer) (Application, error) {
	fb := display.New(out)
	ui.TextRegular.Draw(fb, 5, display.Height/2-3, h.env.greeting())
	if err := present(ctx, fb); err != nil {
		return nil, err
	}
	if err := idle(ctx, h.env.Ticks.of(KindHello), func() bool { return h.end }); err != nil {
		return nil, err
	}
	return NewMenu(h.env), nil
}

func (h *Hello) Dismiss() error {
	h.end = true
	return nil
}
