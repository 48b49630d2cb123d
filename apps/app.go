// Package apps implements the screens shown on the LCD.
//
// Every screen is an Application: Render draws it until it decides which
// screen comes next, and the five handlers mutate its state in response to
// the keypad. Handlers never block and never touch the display; the kernel
// guarantees a handler never runs while Render is in progress.
package apps

import (
	"context"
	"io"
	"strings"
	"time"

	"g13lcd/display"
	"g13lcd/media"

	"go.uber.org/zap"
)

// Kind tags the closed set of applications.
type Kind uint8

const (
	KindMenu Kind = iota
	KindError
	KindHello
	KindClock
	KindMusic
	KindMusicPlayer
)

var kindNames = [...]string{
	KindMenu:        "menu",
	KindError:       "error",
	KindHello:       "hello",
	KindClock:       "clock",
	KindMusic:       "music",
	KindMusicPlayer: "music_player",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Hidden reports whether k is only reached through another application and
// so is left out of the default menu.
func (k Kind) Hidden() bool {
	return k == KindMenu || k == KindError || k == KindMusicPlayer
}

// Kinds lists every application kind in menu order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind resolves an application name. Case, surrounding blanks and
// inner spaces or dashes are ignored ("Music Player" is "music_player").
func ParseKind(name string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.Join(strings.FieldsFunc(norm, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '\t'
	}), "_")
	for i, n := range kindNames {
		if n == norm {
			return Kind(i), nil
		}
	}
	return 0, &UnknownAppError{Name: name}
}

// Application is one screen of the LCD.
type Application interface {
	Kind() Kind
	// Render draws to out until the application ends, then returns the
	// application to show next. It returns ctx.Err() when cancelled; a
	// cancelled Render never writes a partially updated frame.
	Render(ctx context.Context, out io.Writer) (Application, error)

	Primary() error
	Secondary() error
	Previous() error
	Next() error
	Dismiss() error
}

// Ticks are the redraw periods of each application.
type Ticks struct {
	Menu     time.Duration
	Clock    time.Duration
	Hello    time.Duration
	Error    time.Duration
	Selector time.Duration
	Player   time.Duration
}

func DefaultTicks() Ticks {
	return Ticks{
		Menu:     100 * time.Millisecond,
		Clock:    500 * time.Millisecond,
		Hello:    500 * time.Millisecond,
		Error:    500 * time.Millisecond,
		Selector: 100 * time.Millisecond,
		Player:   100 * time.Millisecond,
	}
}

func (t Ticks) of(k Kind) time.Duration {
	def := DefaultTicks()
	switch k {
	case KindClock:
		return orDefault(t.Clock, def.Clock)
	case KindHello:
		return orDefault(t.Hello, def.Hello)
	case KindError:
		return orDefault(t.Error, def.Error)
	case KindMusic:
		return orDefault(t.Selector, def.Selector)
	case KindMusicPlayer:
		return orDefault(t.Player, def.Player)
	}
	return orDefault(t.Menu, def.Menu)
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// DefaultGreeting is shown by the hello application.
const DefaultGreeting = "Hello, world!"

// Env carries the dependencies shared by every application.
// The zero value is usable: no media, default menu, greeting and ticks.
type Env struct {
	Media    media.Transport
	Menu     []string
	Greeting string
	Ticks    Ticks
	Now      func() time.Time
	Log      *zap.Logger
}

func (e *Env) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Env) greeting() string {
	if e.Greeting == "" {
		return DefaultGreeting
	}
	return e.Greeting
}

// MenuEntries returns the labels offered by the menu.
func (e *Env) MenuEntries() []string {
	if len(e.Menu) > 0 {
		return e.Menu
	}
	var out []string
	for _, k := range Kinds() {
		if !k.Hidden() {
			out = append(out, k.String())
		}
	}
	return out
}

// Open returns a fresh application for name.
func (e *Env) Open(name string) (Application, error) {
	k, err := ParseKind(name)
	if err != nil {
		return nil, err
	}
	return e.New(k), nil
}

// New returns an application of kind k in its initial state.
func (e *Env) New(k Kind) Application {
	switch k {
	case KindError:
		return NewDefaultErrorScreen(e)
	case KindHello:
		return NewHello(e)
	case KindClock:
		return NewClock(e)
	case KindMusic:
		return NewMusicSelector(e)
	case KindMusicPlayer:
		return NewMusicPlayer(e, "")
	default:
		return NewMenu(e)
	}
}

// Fallback names the application an error screen returns to when app fails.
func Fallback(app Application) string {
	if app != nil && app.Kind() == KindMusicPlayer {
		return KindMusic.String()
	}
	return KindMenu.String()
}

// present flushes fb unless ctx was cancelled.
func present(ctx context.Context, fb *display.Framebuffer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fb.Flush()
}

// wait blocks until the next tick or cancellation.
func wait(ctx context.Context, t *time.Ticker) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// idle waits for ticks until ended reports true.
func idle(ctx context.Context, period time.Duration, ended func() bool) error {
	t := time.NewTicker(period)
	defer t.Stop()
	for !ended() {
		if err := wait(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

// noop is embedded by applications that ignore some buttons.
type noop struct{}

func (noop) Primary() error   { return nil }
func (noop) Secondary() error { return nil }
func (noop) Previous() error  { return nil }
func (noop) Next() error      { return nil }
