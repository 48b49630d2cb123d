package display

import (
	"bytes"
	"errors"
	"testing"
)

func TestSetCorners(t *testing.T) {
	var out bytes.Buffer
	f := New(&out)

	for _, pt := range [][2]int{{0, 0}, {159, 0}, {0, 42}, {159, 42}} {
		f.Set(pt[0], pt[1], true)
	}

	want := make([]byte, BufferSize)
	want[0] = 0b00000001
	want[159] = 0b00000001
	want[800] = 0b00000100
	want[959] = 0b00000100
	if got := f.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("Bytes() differs from expected corner layout")
	}

	if err := f.Flush(); err != nil {
		t.Fatalf("Flush() err = %v", err)
	}
	if !bytes.Equal(out.Bytes(), want) {
		t.Fatalf("flushed %d bytes, want the %d byte corner frame", out.Len(), len(want))
	}
}

func TestSetTouchesOneBit(t *testing.T) {
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			f := New(nil)
			f.Set(x, y, true)
			got := f.Bytes()
			idx := x + (y/8)*Width
			for i, b := range got {
				want := byte(0)
				if i == idx {
					want = 1 << (y % 8)
				}
				if b != want {
					t.Fatalf("Set(%d, %d): byte %d = %08b, want %08b", x, y, i, b, want)
				}
			}
		}
	}
}

func TestSetClearsBit(t *testing.T) {
	f := New(nil)
	f.Set(10, 9, true)
	f.Set(10, 10, true)
	f.Set(10, 9, false)
	if f.Get(10, 9) {
		t.Fatalf("Get(10, 9) = true after clearing")
	}
	if !f.Get(10, 10) {
		t.Fatalf("Get(10, 10) = false, neighbour was cleared")
	}
}

func TestSetOutOfRangeIgnored(t *testing.T) {
	f := New(nil)
	f.Set(3, 3, true)
	before := f.Bytes()

	for _, pt := range [][2]int{{-1, 0}, {0, -1}, {Width, 0}, {0, Height}, {1000, 1000}, {-5, 50}} {
		f.Set(pt[0], pt[1], true)
		f.SetPixel(int16(pt[0]), int16(pt[1]), On)
	}
	if !bytes.Equal(f.Bytes(), before) {
		t.Fatalf("out of range Set changed the buffer")
	}
	if f.Get(-1, 0) || f.Get(Width, 0) {
		t.Fatalf("Get out of range = true, want false")
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	f := New(nil)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if (x*7+y*13)%5 == 0 {
				f.Set(x, y, true)
			}
		}
	}

	g, err := Decode(f.Bytes())
	if err != nil {
		t.Fatalf("Decode() err = %v", err)
	}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if f.Get(x, y) != g.Get(x, y) {
				t.Fatalf("pixel (%d, %d) = %v after round trip, want %v", x, y, g.Get(x, y), f.Get(x, y))
			}
		}
	}
}

func TestDecodeWrongSize(t *testing.T) {
	if _, err := Decode(make([]byte, BufferSize-1)); err == nil {
		t.Fatalf("Decode() err = nil for short frame")
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("broken pipe") }

func TestFlushDisconnected(t *testing.T) {
	f := New(failWriter{})
	err := f.Flush()
	if !errors.Is(err, ErrDisconnected) {
		t.Fatalf("Flush() err = %v, want ErrDisconnected", err)
	}
}

type countingWriter struct {
	writes  int
	flushes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return len(p), nil
}

func (w *countingWriter) Flush() error {
	w.flushes++
	return nil
}

func TestFlushSingleWrite(t *testing.T) {
	w := &countingWriter{}
	f := New(w)
	if err := f.Display(); err != nil {
		t.Fatalf("Display() err = %v", err)
	}
	if w.writes != 1 || w.flushes != 1 {
		t.Fatalf("writes=%d flushes=%d, want 1 and 1", w.writes, w.flushes)
	}
}

func TestClear(t *testing.T) {
	f := New(nil)
	for x := 150; x < Width; x++ {
		f.Set(x, 41, true)
	}
	f.Clear()
	for x := 0; x < Width; x++ {
		if f.Get(x, 41) {
			t.Fatalf("Clear() left pixel (%d, 41) on", x)
		}
	}
}

func TestImage(t *testing.T) {
	f := New(nil)
	f.Set(5, 6, true)
	img := f.Image()
	if got := img.GrayAt(5, 6).Y; got != 0xff {
		t.Fatalf("GrayAt(5, 6) = %d, want 255", got)
	}
	if got := img.GrayAt(6, 6).Y; got != 0 {
		t.Fatalf("GrayAt(6, 6) = %d, want 0", got)
	}
}

func TestFrameLayoutMatchesPanel(t *testing.T) {
	f := New(nil)
	if len(f.img.Pix) != BufferSize || f.img.Stride != Width {
		t.Fatalf("bitmap is %d bytes with stride %d, want %d and %d", len(f.img.Pix), f.img.Stride, BufferSize, Width)
	}
	f.Set(3, 17, true)
	f.Clear()
	if f.Get(3, 17) {
		t.Fatalf("Get(3, 17) = true after Clear()")
	}
}
