package apps

import (
	"context"
	"io"
	"math"
	"time"

	"g13lcd/display"
	"g13lcd/ui"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
)

const (
	clockCenterX = 20
	clockCenterY = 20
	clockRadius  = 20

	hourHand   = 10
	minuteHand = 15
)

// Clock shows an analog face next to the digital time and date.
type Clock struct {
	noop
	env *Env
	end bool
}

func NewClock(env *Env) *Clock { return &Clock{env: env} }

func (c *Clock) Kind() Kind { return KindClock }

func (c *Clock) Render(ctx context.Context, out io.Writer) (Application, error) {
	fb := display.New(out)
	t := time.NewTicker(c.env.Ticks.of(KindClock))
	defer t.Stop()

	for !c.end {
		fb.Clear()
		drawClock(fb, c.env.now())
		if err := present(ctx, fb); err != nil {
			return nil, err
		}
		if err := wait(ctx, t); err != nil {
			return nil, err
		}
	}
	return NewMenu(c.env), nil
}

func (c *Clock) Dismiss() error {
	c.end = true
	return nil
}

func drawClock(d drivers.Displayer, now time.Time) {
	tinydraw.Circle(d, clockCenterX, clockCenterY, clockRadius, display.On)
	ui.TextSmall.Draw(d, 16, 4, "12")
	ui.TextSmall.Draw(d, 34, 18, "3")
	ui.TextSmall.Draw(d, 18, 34, "6")
	ui.TextSmall.Draw(d, 3, 18, "9")

	hx, hy := handEnd(hourAngle(now), hourHand)
	tinydraw.Line(d, clockCenterX, clockCenterY, hx, hy, display.On)
	mx, my := handEnd(minuteAngle(now), minuteHand)
	tinydraw.Line(d, clockCenterX, clockCenterY, mx, my, display.On)

	ui.TextBold.Draw(d, 50, display.Height/2-10, now.Format("15:04:05"))
	ui.TextRegular.Draw(d, 50, display.Height/2+2, now.Format("02 January 2006"))
}

// hourAngle is measured in degrees clockwise from three o'clock.
func hourAngle(t time.Time) float64 {
	return float64(t.Hour()%12)*30 - 90
}

func minuteAngle(t time.Time) float64 {
	return float64(t.Minute())*6 - 90
}

// handEnd projects a hand of the given length from the clock center.
func handEnd(deg float64, length int) (x, y int16) {
	rad := deg * math.Pi / 180
	x = int16(math.Floor(math.Cos(rad)*float64(length) + clockCenterX))
	y = int16(math.Floor(math.Sin(rad)*float64(length) + clockCenterY))
	return x, y
}
