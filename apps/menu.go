package apps

import (
	"context"
	"image"
	"io"
	"time"

	"g13lcd/display"
	"g13lcd/ui"

	"go.uber.org/zap"
)

// menuListRect sits right of the image placeholder, under the app bar.
var menuListRect = image.Rect(33, 10, display.Width, 34)

// Menu lets the user pick the next application.
type Menu struct {
	env  *Env
	list *ui.List
	end  bool
}

func NewMenu(env *Env) *Menu {
	list, err := ui.NewList(env.MenuEntries())
	if err != nil {
		// Only reachable with an explicitly empty configuration.
		list, _ = ui.NewList((&Env{}).MenuEntries())
	}
	return &Menu{env: env, list: list}
}

func (m *Menu) Kind() Kind { return KindMenu }

// Cursor returns the index of the highlighted entry.
func (m *Menu) Cursor() int { return m.list.Cursor() }

func (m *Menu) Render(ctx context.Context, out io.Writer) (Application, error) {
	fb := display.New(out)
	menuChrome().Draw(fb)

	t := time.NewTicker(m.env.Ticks.of(KindMenu))
	defer t.Stop()

	drawn := -1
	for !m.end {
		if c := m.list.Cursor(); c != drawn {
			m.list.DrawWithinBorder(fb, menuListRect)
			if err := present(ctx, fb); err != nil {
				return nil, err
			}
			drawn = c
		}
		if err := wait(ctx, t); err != nil {
			return nil, err
		}
	}

	name := m.list.Current()
	m.env.logger().Debug("Menu selection", zap.String("app", name))
	return m.env.Open(name)
}

func (m *Menu) Primary() error {
	m.end = true
	return nil
}

func (m *Menu) Secondary() error { return nil }

func (m *Menu) Previous() error {
	m.list.Previous()
	return nil
}

func (m *Menu) Next() error {
	m.list.Next()
	return nil
}

// Dismiss moves the cursor back to the first entry.
func (m *Menu) Dismiss() error {
	m.list.Reset()
	return nil
}
