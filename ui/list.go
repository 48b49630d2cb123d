package ui

import (
	"errors"
	"image"

	"g13lcd/display"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
)

// ErrEmptyList is returned when a list is built without entries.
var ErrEmptyList = errors.New("list has no entries")

// DefaultListRect is the area between the app bar and the button bar.
var DefaultListRect = image.Rect(0, 10, display.Width, 35)

// List is a single-selection cursor over a fixed, ordered set of labels.
//
// The selected entry is always drawn on the second row of the list area, with
// one entry of context above it and the following entries below.
type List struct {
	cursor  int
	entries []string
}

func NewList(entries []string) (*List, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyList
	}
	return &List{entries: append([]string(nil), entries...)}, nil
}

func (l *List) Cursor() int { return l.cursor }

// Current returns the selected label.
func (l *List) Current() string { return l.entries[l.cursor] }

func (l *List) Next() {
	if l.cursor < len(l.entries)-1 {
		l.cursor++
	}
}

func (l *List) Previous() {
	if l.cursor > 0 {
		l.cursor--
	}
}

func (l *List) Reset() { l.cursor = 0 }

type listRow struct {
	row      int
	index    int
	selected bool
}

// window returns the entries visible in a list area of the given row count.
func (l *List) window(rows int) []listRow {
	var out []listRow
	for i := 0; i < rows; i++ {
		if l.cursor == 0 && i == 0 {
			continue
		}
		idx := l.cursor + i - 1
		if idx >= len(l.entries) {
			break
		}
		out = append(out, listRow{row: i, index: idx, selected: i == 1})
	}
	return out
}

// DrawWithinBorder clears r and draws the visible entries clipped to it.
func (l *List) DrawWithinBorder(d drivers.Displayer, r image.Rectangle) {
	_ = tinydraw.FilledRectangle(d, int16(r.Min.X), int16(r.Min.Y), int16(r.Dx()), int16(r.Dy()), display.Off)

	c := Clip(d, r)
	for _, row := range l.window(r.Dy() / RowHeight) {
		prefix := "  "
		if row.selected {
			prefix = "> "
		}
		TextRegular.Draw(c, int16(r.Min.X+1), int16(r.Min.Y+RowHeight*row.row), prefix+l.entries[row.index])
	}
}

// DrawDefault draws the list in DefaultListRect.
func (l *List) DrawDefault(d drivers.Displayer) {
	l.DrawWithinBorder(d, DefaultListRect)
}
