package ui

import (
	"image"
	"image/color"

	"g13lcd/display"

	"tinygo.org/x/drivers"
)

type pixel struct {
	x, y int16
	c    color.RGBA
}

// Sprite is a pre-rasterized, immutable list of pixels.
type Sprite struct {
	pixels []pixel
	bounds image.Rectangle
}

type recorder struct {
	pixels []pixel
	bounds image.Rectangle
}

func (r *recorder) Size() (x, y int16) { return display.Width, display.Height }
func (r *recorder) Display() error     { return nil }

func (r *recorder) SetPixel(x, y int16, c color.RGBA) {
	r.pixels = append(r.pixels, pixel{x: x, y: y, c: c})
	pt := image.Rect(int(x), int(y), int(x)+1, int(y)+1)
	if r.bounds.Empty() {
		r.bounds = pt
		return
	}
	r.bounds = r.bounds.Union(pt)
}

// Record captures every pixel draw emits into a Sprite.
func Record(draw func(d drivers.Displayer)) Sprite {
	r := &recorder{}
	draw(r)
	return Sprite{pixels: r.pixels, bounds: r.bounds}
}

// Draw replays the sprite at its recorded position.
func (s Sprite) Draw(d drivers.Displayer) {
	s.DrawAt(d, 0, 0)
}

// DrawAt replays the sprite shifted by (dx, dy).
func (s Sprite) DrawAt(d drivers.Displayer, dx, dy int16) {
	for _, p := range s.pixels {
		d.SetPixel(p.x+dx, p.y+dy, p.c)
	}
}

// Bounds is the smallest rectangle holding every recorded pixel.
func (s Sprite) Bounds() image.Rectangle { return s.bounds }

type clipped struct {
	d drivers.Displayer
	r image.Rectangle
}

// Clip returns a Displayer that drops pixels outside r.
func Clip(d drivers.Displayer, r image.Rectangle) drivers.Displayer {
	return &clipped{d: d, r: r}
}

func (c *clipped) Size() (x, y int16) { return c.d.Size() }
func (c *clipped) Display() error     { return c.d.Display() }

func (c *clipped) SetPixel(x, y int16, col color.RGBA) {
	if !image.Pt(int(x), int(y)).In(c.r) {
		return
	}
	c.d.SetPixel(x, y, col)
}
