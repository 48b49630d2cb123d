//go:build cgo

package hal

import (
	"context"
	"errors"
	"image"

	"g13lcd/display"
	"g13lcd/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow opens a desktop window showing a virtual LCD and runs fn against
// it. Keyboard input is mapped to the keypad. It blocks until the window is
// closed or fn returns.
func RunWindow(ctx context.Context, fn Runner, scale int) error {
	if scale <= 0 {
		scale = 4
	}
	ctx, cancel := context.WithCancel(ctx)
	dev := newVirtualDevice()
	errc := dev.run(ctx, fn)

	g := &hostGame{dev: dev, ctx: ctx, kbd: newHostKeyboard(dev)}
	ebiten.SetWindowTitle("g13lcd (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(display.Width*scale, display.Height*scale)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(g)
	if errors.Is(err, errStopped) || errors.Is(err, ebiten.Termination) {
		err = nil
	}
	if rerr := settle(cancel, errc); rerr != nil {
		return rerr
	}
	return err
}

var errStopped = errors.New("runner stopped")

type hostGame struct {
	dev   *virtualDevice
	ctx   context.Context
	kbd   *hostKeyboard
	img   *image.RGBA
	fbImg *ebiten.Image
	seq   uint64
}

func (g *hostGame) Update() error {
	select {
	case <-g.dev.done:
		return errStopped
	case <-g.ctx.Done():
		return errStopped
	default:
	}
	g.kbd.poll()
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, display.Width, display.Height))
		g.fbImg = ebiten.NewImage(display.Width, display.Height)
		g.seq = ^uint64(0)
	}

	fb, seq := g.dev.snapshot()
	if seq != g.seq {
		g.seq = seq
		dst := g.img.Pix
		for y := 0; y < display.Height; y++ {
			for x := 0; x < display.Width; x++ {
				r, gg, b := lcdOff()
				if fb.Get(x, y) {
					r, gg, b = lcdOn()
				}
				j := (y*display.Width + x) * 4
				dst[j+0] = r
				dst[j+1] = gg
				dst[j+2] = b
				dst[j+3] = 0xFF
			}
		}
		g.fbImg.WritePixels(g.img.Pix)
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return display.Width, display.Height
}

// Backlit G13 panel colours.
func lcdOn() (r, g, b uint8)  { return 0x10, 0x18, 0x10 }
func lcdOff() (r, g, b uint8) { return 0x9c, 0xc8, 0x6c }
