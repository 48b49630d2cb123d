package apps

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"g13lcd/media"
	"g13lcd/media/mediatest"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMenuDismissResetsCursor(t *testing.T) {
	m := NewMenu(testEnv(nil))
	_ = m.Next()
	_ = m.Next()
	if m.Cursor() != 2 {
		t.Fatalf("Cursor() = %d, want 2", m.Cursor())
	}
	for i := 0; i < 2; i++ {
		_ = m.Dismiss()
		if m.Cursor() != 0 {
			t.Fatalf("Cursor() after Dismiss() = %d, want 0", m.Cursor())
		}
	}
}

func TestMenuOpensSelection(t *testing.T) {
	m := NewMenu(testEnv(nil))
	_ = m.Next()
	_ = m.Primary()

	res := render(t, m)
	if res.err != nil {
		t.Fatalf("Render() err = %v", res.err)
	}
	if res.next.Kind() != KindClock {
		t.Fatalf("Render() next = %v, want clock", res.next.Kind())
	}
}

func TestMenuUnknownEntry(t *testing.T) {
	env := testEnv(nil)
	env.Menu = []string{"bogus"}
	m := NewMenu(env)
	_ = m.Primary()

	if res := render(t, m); !errors.Is(res.err, ErrUnknownApp) {
		t.Fatalf("Render() err = %v, want ErrUnknownApp", res.err)
	}
}

func TestMenuRedrawsOnlyOnCursorChange(t *testing.T) {
	m := NewMenu(testEnv(nil))
	r := startRender(m)
	r.frames.waitFrames(t, 1)
	time.Sleep(30 * time.Millisecond)
	r.stop(t)

	if n := r.frames.count(); n != 1 {
		t.Fatalf("frames = %d, want 1 while the cursor is idle", n)
	}
	fb := r.frames.frame(t, 0)
	// Image placeholder corner and app bar.
	if !fb.Get(0, 0) || !fb.Get(32, 32) || !fb.Get(159, 0) {
		t.Fatalf("menu chrome missing")
	}
}

func TestCancelledRenderWritesNothingMore(t *testing.T) {
	m := NewMenu(testEnv(nil))
	r := startRender(m)
	r.frames.waitFrames(t, 1)
	r.stop(t)

	before := r.frames.count()
	_ = m.Next()
	time.Sleep(20 * time.Millisecond)
	if r.frames.count() != before {
		t.Fatalf("frames written after cancellation")
	}

	// A fresh render sees the handler's mutation.
	r = startRender(m)
	r.frames.waitFrames(t, 1)
	r.stop(t)
	if m.Cursor() != 1 {
		t.Fatalf("Cursor() = %d, want 1", m.Cursor())
	}
}

func TestHandEnd(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2024, 1, 1, h, m, 0, 0, time.UTC) }
	tests := []struct {
		name   string
		deg    float64
		length int
		x, y   int16
	}{
		{"3 o'clock", hourAngle(at(3, 0)), hourHand, 30, 20},
		{"noon", hourAngle(at(12, 0)), hourHand, 20, 10},
		{"9 pm", hourAngle(at(21, 0)), hourHand, 10, 20},
		{"half past", minuteAngle(at(1, 30)), minuteHand, 20, 35},
		{"quarter to", minuteAngle(at(1, 45)), minuteHand, 5, 20},
	}
	for _, tt := range tests {
		x, y := handEnd(tt.deg, tt.length)
		if x != tt.x || y != tt.y {
			t.Fatalf("%s: handEnd() = (%d, %d), want (%d, %d)", tt.name, x, y, tt.x, tt.y)
		}
	}
}

func TestClockDrawsFaceAndReturnsToMenu(t *testing.T) {
	c := NewClock(testEnv(nil))
	r := startRender(c)
	r.frames.waitFrames(t, 2)

	fb := r.frames.frame(t, 0)
	if !fb.Get(20, 0) || !fb.Get(0, 20) || !fb.Get(40, 20) {
		t.Fatalf("clock face not drawn")
	}
	r.stop(t)

	_ = c.Dismiss()
	res := render(t, c)
	if res.err != nil || res.next.Kind() != KindMenu {
		t.Fatalf("Render() after Dismiss() = %v, %v, want menu", res.next, res.err)
	}
}

func TestHelloDrawsGreetingOnce(t *testing.T) {
	h := NewHello(testEnv(nil))
	r := startRender(h)
	r.frames.waitFrames(t, 1)
	time.Sleep(20 * time.Millisecond)
	if n := r.frames.count(); n != 1 {
		t.Fatalf("frames = %d, want 1", n)
	}
	if lit(r.frames.frame(t, 0)) == 0 {
		t.Fatalf("greeting not drawn")
	}
	r.stop(t)

	_ = h.Dismiss()
	res := render(t, h)
	if res.err != nil || res.next.Kind() != KindMenu {
		t.Fatalf("Render() after Dismiss() = %v, %v, want menu", res.next, res.err)
	}
}

func TestErrorScreenReturns(t *testing.T) {
	e := NewErrorScreen(testEnv(nil), "command next failed: connection reset by peer", "music")
	r := startRender(e)
	r.frames.waitFrames(t, 1)
	if lit(r.frames.frame(t, 0)) == 0 {
		t.Fatalf("error screen empty")
	}
	r.stop(t)

	_ = e.Dismiss()
	res := render(t, e)
	if res.err != nil || res.next.Kind() != KindMusic {
		t.Fatalf("Render() after Dismiss() = %v, %v, want music", res.next, res.err)
	}
}

func TestErrorScreenBadReturn(t *testing.T) {
	e := NewErrorScreen(testEnv(nil), "boom", "nowhere")
	_ = e.Dismiss()
	if res := render(t, e); !errors.Is(res.err, ErrUnknownApp) {
		t.Fatalf("Render() err = %v, want ErrUnknownApp", res.err)
	}
}

func TestDefaultErrorScreenReturnsImmediately(t *testing.T) {
	app, err := testEnv(nil).Open("error")
	if err != nil {
		t.Fatalf("Open(error) err = %v", err)
	}
	res := render(t, app)
	if res.err != nil || res.next.Kind() != KindMenu {
		t.Fatalf("Render() = %v, %v, want menu", res.next, res.err)
	}
}

func TestSelectorDiscoversOnce(t *testing.T) {
	tr := mediatest.NewTransport(
		mediatest.NewPlayer("Kitchen", media.Song{}),
		mediatest.NewPlayer("Office", media.Song{}),
	)
	s := NewMusicSelector(testEnv(tr))
	if err := s.Next(); !errors.Is(err, ErrUninitialized) {
		t.Fatalf("Next() before discovery err = %v, want ErrUninitialized", err)
	}

	r := startRender(s)
	r.frames.waitFrames(t, 1)
	r.stop(t)

	if err := s.Next(); err != nil {
		t.Fatalf("Next() err = %v", err)
	}
	_ = s.Primary()
	res := render(t, s)
	if res.err != nil {
		t.Fatalf("Render() err = %v", res.err)
	}
	p, ok := res.next.(*MusicPlayer)
	if !ok || p.Target() != "Office" {
		t.Fatalf("Render() next = %#v, want player for Office", res.next)
	}
	if tr.Discoveries != 1 {
		t.Fatalf("Discoveries = %d, want 1", tr.Discoveries)
	}
}

func TestSelectorDismissSkipsDiscovery(t *testing.T) {
	tr := mediatest.NewTransport()
	s := NewMusicSelector(testEnv(tr))
	_ = s.Dismiss()
	res := render(t, s)
	if res.err != nil || res.next.Kind() != KindMenu {
		t.Fatalf("Render() = %v, %v, want menu", res.next, res.err)
	}
	if tr.Discoveries != 0 {
		t.Fatalf("Discoveries = %d, want 0", tr.Discoveries)
	}
}

func TestSelectorDiscoveryErrors(t *testing.T) {
	if res := render(t, NewMusicSelector(testEnv(mediatest.NewTransport()))); !errors.Is(res.err, media.ErrNoTargets) {
		t.Fatalf("Render() err = %v, want ErrNoTargets", res.err)
	}

	cause := errors.New("mDNS unavailable")
	tr := mediatest.NewTransport()
	tr.TargetsErr = cause
	if res := render(t, NewMusicSelector(testEnv(tr))); !errors.Is(res.err, cause) {
		t.Fatalf("Render() err = %v, want %v", res.err, cause)
	}
}

func TestPlayerDrainsCommandsInOrder(t *testing.T) {
	pl := mediatest.NewPlayer("Kitchen", media.Song{Title: "One", Artist: "A"})
	p := NewMusicPlayer(testEnv(mediatest.NewTransport(pl)), "Kitchen")
	_ = p.Next()
	_ = p.Previous()
	_ = p.Primary()
	_ = p.Secondary()

	r := startRender(p)
	r.frames.waitFrames(t, 1)

	want := []media.Command{media.Next, media.Previous, media.PlayPause, media.Stop}
	if got := pl.Commands(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Commands() = %v, want %v", got, want)
	}

	pl.SetSong(media.Song{Title: "Two", Artist: "B"})
	r.frames.waitFrames(t, 2)
	r.stop(t)
	if bytes.Equal(r.frames.raw(0), r.frames.raw(1)) {
		t.Fatalf("song change not redrawn")
	}

	_ = p.Dismiss()
	res := render(t, p)
	if res.err != nil || res.next.Kind() != KindMenu {
		t.Fatalf("Render() = %v, %v, want menu", res.next, res.err)
	}
	if !pl.Closed() {
		t.Fatalf("player not closed after Dismiss()")
	}
}

func TestPlayerRedrawsOnlyOnSongChange(t *testing.T) {
	pl := mediatest.NewPlayer("Kitchen", media.Song{Title: "One", Artist: "A"})
	p := NewMusicPlayer(testEnv(mediatest.NewTransport(pl)), "Kitchen")

	r := startRender(p)
	r.frames.waitFrames(t, 1)
	deadline := time.After(2 * time.Second)
	for pl.Polls() < 5 {
		select {
		case <-deadline:
			t.Fatalf("player polled %d times", pl.Polls())
		case <-time.After(5 * time.Millisecond):
		}
	}
	r.stop(t)
	if n := r.frames.count(); n != 1 {
		t.Fatalf("frames = %d, want 1 for an unchanged song", n)
	}
}

func TestPlayerLogsCommandsByPlayerName(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	pl := mediatest.NewPlayer("Kitchen", media.Song{})
	env := testEnv(mediatest.NewTransport(pl))
	env.Log = zap.New(core)
	p := NewMusicPlayer(env, "Kitchen")
	_ = p.Primary()

	r := startRender(p)
	r.frames.waitFrames(t, 1)
	r.stop(t)

	sent := logs.FilterMessage("Media command sent").All()
	if len(sent) != 1 {
		t.Fatalf("logged %d commands, want 1", len(sent))
	}
	fields := sent[0].ContextMap()
	if fields["player"] != pl.Name() || fields["command"] != media.PlayPause.String() {
		t.Fatalf("log fields = %v, want player %q and command %q", fields, pl.Name(), media.PlayPause)
	}
}

func TestPlayerCancelledAfterCommands(t *testing.T) {
	pl := mediatest.NewPlayer("Kitchen", media.Song{Title: "One", Artist: "A"})
	p := NewMusicPlayer(testEnv(mediatest.NewTransport(pl)), "Kitchen")
	_ = p.Next()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	frames := newFrameRecorder()
	if _, err := p.Render(ctx, frames); !errors.Is(err, context.Canceled) {
		t.Fatalf("Render() err = %v, want context.Canceled", err)
	}
	if got := pl.Commands(); !reflect.DeepEqual(got, []media.Command{media.Next}) {
		t.Fatalf("Commands() = %v, want [next]", got)
	}
	if n := pl.Polls(); n != 0 {
		t.Fatalf("Polls() = %d, want 0 after cancellation", n)
	}
	if n := frames.count(); n != 0 {
		t.Fatalf("frames = %d, want 0 after cancellation", n)
	}
	if pl.Closed() {
		t.Fatalf("player closed by a cancelled render")
	}
}

func TestPlayerUnknownTarget(t *testing.T) {
	p := NewMusicPlayer(testEnv(mediatest.NewTransport()), "Gone")
	if res := render(t, p); !errors.Is(res.err, media.ErrTargetNotFound) {
		t.Fatalf("Render() err = %v, want ErrTargetNotFound", res.err)
	}
}

func TestPlayerCommandFailure(t *testing.T) {
	pl := mediatest.NewPlayer("Kitchen", media.Song{})
	pl.Fail(errors.New("connection reset"), nil)
	p := NewMusicPlayer(testEnv(mediatest.NewTransport(pl)), "Kitchen")
	_ = p.Next()

	res := render(t, p)
	var merr *media.Error
	if !errors.As(res.err, &merr) || merr.Command != media.Next {
		t.Fatalf("Render() err = %v, want media.Error for next", res.err)
	}
	if !pl.Closed() {
		t.Fatalf("player not closed after failure")
	}
	if Fallback(p) != "music" {
		t.Fatalf("Fallback() = %q, want music", Fallback(p))
	}
}
