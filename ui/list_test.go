package ui

import (
	"image"
	"reflect"
	"testing"

	"g13lcd/display"

	"tinygo.org/x/tinydraw"
)

func newTestList(t *testing.T, entries ...string) *List {
	t.Helper()
	l, err := NewList(entries)
	if err != nil {
		t.Fatalf("NewList() err = %v", err)
	}
	return l
}

func TestNewListEmpty(t *testing.T) {
	if _, err := NewList(nil); err != ErrEmptyList {
		t.Fatalf("NewList(nil) err = %v, want ErrEmptyList", err)
	}
}

func TestListClamps(t *testing.T) {
	for n := 1; n <= 5; n++ {
		entries := make([]string, n)
		for i := range entries {
			entries[i] = string(rune('a' + i))
		}
		l := newTestList(t, entries...)

		l.Previous()
		if l.Cursor() != 0 {
			t.Fatalf("n=%d: Previous() at 0 moved cursor to %d", n, l.Cursor())
		}
		for i := 0; i < n; i++ {
			l.Next()
		}
		if l.Cursor() != n-1 {
			t.Fatalf("n=%d: cursor = %d after %d Next(), want %d", n, l.Cursor(), n, n-1)
		}
	}
}

func TestListScenario(t *testing.T) {
	l := newTestList(t, "a", "b", "c", "d")

	l.Next()
	if l.Cursor() != 1 || l.Current() != "b" {
		t.Fatalf("after Next(): cursor=%d current=%q, want 1 \"b\"", l.Cursor(), l.Current())
	}
	l.Previous()
	l.Previous()
	if l.Cursor() != 0 || l.Current() != "a" {
		t.Fatalf("after Previous() x2: cursor=%d current=%q, want 0 \"a\"", l.Cursor(), l.Current())
	}

	l.Next()
	l.Next()
	l.Reset()
	if l.Cursor() != 0 {
		t.Fatalf("Reset() cursor = %d, want 0", l.Cursor())
	}
}

func TestListWindow(t *testing.T) {
	l := newTestList(t, "a", "b", "c", "d")

	tests := []struct {
		cursor int
		want   []listRow
	}{
		{0, []listRow{{row: 1, index: 0, selected: true}, {row: 2, index: 1}}},
		{1, []listRow{{row: 0, index: 0}, {row: 1, index: 1, selected: true}, {row: 2, index: 2}}},
		{2, []listRow{{row: 0, index: 1}, {row: 1, index: 2, selected: true}, {row: 2, index: 3}}},
		{3, []listRow{{row: 0, index: 2}, {row: 1, index: 3, selected: true}}},
	}
	for _, tt := range tests {
		l.Reset()
		for i := 0; i < tt.cursor; i++ {
			l.Next()
		}
		if got := l.window(3); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("cursor %d: window(3) = %+v, want %+v", tt.cursor, got, tt.want)
		}
	}
}

func bandLit(fb *display.Framebuffer, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if fb.Get(x, y) {
				return true
			}
		}
	}
	return false
}

func TestDrawWithinBorderPinsSelection(t *testing.T) {
	l := newTestList(t, "alpha", "beta", "gamma", "delta")
	r := DefaultListRect
	row := func(i int) image.Rectangle {
		return image.Rect(r.Min.X, r.Min.Y+i*RowHeight, r.Max.X, r.Min.Y+(i+1)*RowHeight)
	}

	fb := display.New(nil)
	l.DrawWithinBorder(fb, r)
	if bandLit(fb, row(0)) {
		t.Fatalf("cursor 0: previous row drawn")
	}
	if !bandLit(fb, row(1)) || !bandLit(fb, row(2)) {
		t.Fatalf("cursor 0: selected or next row missing")
	}
	// '>' marker: second column of the glyph is lit on its first row.
	if !fb.Get(r.Min.X+2, r.Min.Y+RowHeight) {
		t.Fatalf("cursor 0: selection marker not on the second row")
	}

	l.Next()
	fb = display.New(nil)
	l.DrawWithinBorder(fb, r)
	for i := 0; i < 3; i++ {
		if !bandLit(fb, row(i)) {
			t.Fatalf("cursor 1: row %d empty", i)
		}
	}
	if !fb.Get(r.Min.X+2, r.Min.Y+RowHeight) {
		t.Fatalf("cursor 1: selection marker not on the second row")
	}
	if fb.Get(r.Min.X+2, r.Min.Y) {
		t.Fatalf("cursor 1: marker drawn on the context row")
	}
}

func TestDrawWithinBorderClips(t *testing.T) {
	l := newTestList(t, "a very long entry name", "another very long entry")
	l.Next()

	r := image.Rect(4, 12, 40, 21)
	fb := display.New(nil)
	_ = tinydraw.FilledRectangle(fb, 0, 0, display.Width, display.Height, display.Off)
	l.DrawWithinBorder(fb, r)

	for y := 0; y < display.Height; y++ {
		for x := 0; x < display.Width; x++ {
			if fb.Get(x, y) && !image.Pt(x, y).In(r) {
				t.Fatalf("pixel (%d, %d) drawn outside %v", x, y, r)
			}
		}
	}
	if !bandLit(fb, r) {
		t.Fatalf("nothing drawn inside %v", r)
	}
}

func TestDrawWithinBorderClearsArea(t *testing.T) {
	l := newTestList(t, "a", "b")
	fb := display.New(nil)
	_ = tinydraw.FilledRectangle(fb, 0, 0, display.Width, display.Height, display.On)

	l.DrawDefault(fb)
	if bandLit(fb, image.Rect(0, 10, display.Width, 18)) {
		t.Fatalf("empty first row not cleared")
	}
	if !fb.Get(0, 0) || !fb.Get(0, 40) {
		t.Fatalf("pixels outside the list area were cleared")
	}
}
