// Package display implements the LCD framebuffer.
//
// The panel is 160x43 pixels, 1 bit per pixel. Memory is column-major in bands
// of 8 rows: byte x + (y/8)*Width holds column x of band y/8 and bit y%8 is the
// pixel at row y. A frame is always sent whole.
package display

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

const (
	Width  = 160
	Height = 43

	bands = (Height + 7) / 8

	// BufferSize is the size in bytes of one serialized frame.
	BufferSize = Width * bands
)

// Bounds is the panel area.
var Bounds = image.Rect(0, 0, Width, Height)

// ErrDisconnected is returned by Flush when the LCD stream is broken.
var ErrDisconnected = errors.New("display disconnected")

var (
	On  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Off = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
)

type flusher interface {
	Flush() error
}

// Framebuffer is the in-memory copy of the whole panel. Its pixels are a
// vertical LSB bitmap, which is the serialized frame format as is.
type Framebuffer struct {
	img *image1bit.VerticalLSB
	w   io.Writer
}

// New returns a cleared framebuffer that flushes to w.
func New(w io.Writer) *Framebuffer {
	return &Framebuffer{img: image1bit.NewVerticalLSB(Bounds), w: w}
}

// Decode rebuilds a framebuffer from one serialized frame.
func Decode(frame []byte) (*Framebuffer, error) {
	if len(frame) != BufferSize {
		return nil, fmt.Errorf("frame is %d bytes, want %d", len(frame), BufferSize)
	}
	f := New(nil)
	copy(f.img.Pix, frame)
	return f, nil
}

// Set turns the pixel at (x, y) on or off. Coordinates outside the panel are ignored.
func (f *Framebuffer) Set(x, y int, on bool) {
	f.img.SetBit(x, y, image1bit.Bit(on))
}

// Get reports whether the pixel at (x, y) is on.
func (f *Framebuffer) Get(x, y int) bool {
	return bool(f.img.BitAt(x, y))
}

// Bytes returns a copy of the serialized frame.
func (f *Framebuffer) Bytes() []byte {
	return append([]byte(nil), f.img.Pix...)
}

func (f *Framebuffer) Clear() {
	clear(f.img.Pix)
}

// Flush writes the whole frame in a single Write call.
func (f *Framebuffer) Flush() error {
	if f.w == nil {
		return fmt.Errorf("%w: no output", ErrDisconnected)
	}
	if _, err := f.w.Write(f.img.Pix); err != nil {
		return fmt.Errorf("%w: %w", ErrDisconnected, err)
	}
	if fl, ok := f.w.(flusher); ok {
		if err := fl.Flush(); err != nil {
			return fmt.Errorf("%w: %w", ErrDisconnected, err)
		}
	}
	return nil
}

// Image returns a grayscale copy of the frame (on pixels are white).
func (f *Framebuffer) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, Width, Height))
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if f.Get(x, y) {
				img.Pix[y*img.Stride+x] = 0xff
			}
		}
	}
	return img
}

// IsOn maps a drawing color to a pixel state.
func IsOn(c color.RGBA) bool {
	return (int(c.R)+int(c.G)+int(c.B))/3 >= 0x80
}
