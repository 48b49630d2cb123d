package display

import (
	"image/color"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*Framebuffer)(nil)

func (f *Framebuffer) Size() (x, y int16) {
	return Width, Height
}

func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	f.Set(int(x), int(y), IsOn(c))
}

func (f *Framebuffer) Display() error {
	return f.Flush()
}
