// Package ui holds the drawing components shared by the LCD applications.
package ui

import (
	"image/color"

	"g13lcd/display"
	"g13lcd/fonts/font6x8"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// RowHeight is the height of one text row on the panel.
const RowHeight = 8

// TextStyle describes how a line of text is rasterized.
type TextStyle struct {
	Font   tinyfont.Fonter
	Ascent int16
	Color  color.RGBA
	Bold   bool
	// Opaque paints the text box with the inverse color first.
	Opaque bool
}

var (
	TextSmall = TextStyle{Font: &proggy.TinySZ8pt7b, Ascent: 6, Color: display.On}

	TextRegular = TextStyle{Font: font6x8.Font, Ascent: font6x8.Ascent, Color: display.On, Opaque: true}

	TextBold = TextStyle{Font: font6x8.Font, Ascent: font6x8.Ascent, Color: display.On, Bold: true, Opaque: true}

	TitleBold = TextStyle{Font: font6x8.Font, Ascent: font6x8.Ascent, Color: display.Off, Bold: true}
)

// Width returns the advance width of s in pixels.
func (s TextStyle) Width(text string) int16 {
	_, outbox := tinyfont.LineWidth(s.Font, text)
	if s.Bold && outbox > 0 {
		outbox++
	}
	return int16(outbox)
}

// Draw renders text with its top-left corner at (x, y).
func (s TextStyle) Draw(d drivers.Displayer, x, y int16, text string) {
	if text == "" {
		return
	}
	if s.Opaque {
		_ = tinydraw.FilledRectangle(d, x, y, s.Width(text), int16(s.Font.GetYAdvance()), inverse(s.Color))
	}
	tinyfont.WriteLine(d, s.Font, x, y+s.Ascent, text, s.Color)
	if s.Bold {
		tinyfont.WriteLine(d, s.Font, x+1, y+s.Ascent, text, s.Color)
	}
}

func inverse(c color.RGBA) color.RGBA {
	if display.IsOn(c) {
		return display.Off
	}
	return display.On
}
