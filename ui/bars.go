package ui

import (
	"image"

	"g13lcd/display"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
)

// AppBar is a bold title drawn inverted on a filled bar.
type AppBar struct {
	Title string
	Rect  image.Rectangle
}

func NewAppBar(title string, r image.Rectangle) AppBar {
	return AppBar{Title: title, Rect: r}
}

func (a AppBar) Draw(d drivers.Displayer) {
	r := a.Rect
	_ = tinydraw.FilledRectangle(d, int16(r.Min.X), int16(r.Min.Y), int16(r.Dx()), int16(r.Dy()), display.On)
	TitleBold.Draw(Clip(d, r), int16(r.Min.X+1), int16(r.Min.Y+1), a.Title)
}

const (
	buttonWidth  = display.Width / 4
	buttonHeight = RowHeight
	// buttonTop is the first row of the bar, on the last text line of the panel.
	buttonTop = 35
)

// Button is a small sprite centered in one of the four button slots.
type Button struct {
	sprite Sprite
	w, h   int
}

// TextButton renders label in bold.
func TextButton(label string) *Button {
	s := Record(func(d drivers.Displayer) { TextBold.Draw(d, 0, 0, label) })
	return &Button{sprite: s, w: int(TextBold.Width(label)), h: RowHeight}
}

// IconButton wraps an arbitrary drawing placed at the origin.
func IconButton(draw func(d drivers.Displayer)) *Button {
	s := Record(draw)
	b := s.Bounds()
	return &Button{sprite: s, w: b.Max.X, h: b.Max.Y}
}

// ButtonBar labels the four keys under the panel. Nil slots are left blank.
type ButtonBar [4]*Button

func (bb ButtonBar) Draw(d drivers.Displayer) {
	for i, b := range bb {
		if b == nil {
			continue
		}
		fx := max(buttonWidth-b.w, 0)
		fy := max(buttonHeight-b.h, 0)
		x := i*buttonWidth + fx/2
		y := buttonTop + fy/2
		b.sprite.DrawAt(d, int16(x), int16(y))
	}
}
