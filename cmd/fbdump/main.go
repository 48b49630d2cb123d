// Fbdump converts captured LCD frame streams to images.
//
// A capture is what the daemon writes to the LCD pipe: whole frames, back to
// back. Point the daemon at a regular file to record one.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"g13lcd/display"
)

func main() {
	var (
		inPath  = flag.String("in", "", "Captured frame stream (- for stdin).")
		outPath = flag.String("out", "", "Output file (png mode) or - for stdout (ascii mode).")
		mode    = flag.String("mode", "png", "png|ascii.")
		index   = flag.Int("frame", -1, "Frame to convert, counted from 0 (-1 = last).")
		all     = flag.Bool("all", false, "Convert every frame; -out gets a frame number suffix.")
		scale   = flag.Int("scale", 4, "PNG pixels per LCD pixel.")
	)
	flag.Parse()

	if *inPath == "" || (*outPath == "" && strings.ToLower(*mode) == "png") {
		fatalf("usage: fbdump -in capture.bin -out frame.png [-frame N | -all] [-scale 4]\n       fbdump -mode ascii -in capture.bin [-out -] [-frame N | -all]")
	}
	if *scale <= 0 || *scale > 32 {
		fatalf("scale out of range: %d", *scale)
	}

	frames, err := readFrames(*inPath)
	if err != nil {
		fatalf("read: %v", err)
	}
	if len(frames) == 0 {
		fatalf("read: %s holds no complete frame", *inPath)
	}

	selected := map[int]*display.Framebuffer{}
	switch {
	case *all:
		for i, fb := range frames {
			selected[i] = fb
		}
	case *index < 0:
		selected[len(frames)-1] = frames[len(frames)-1]
	case *index < len(frames):
		selected[*index] = frames[*index]
	default:
		fatalf("frame %d out of range (capture has %d)", *index, len(frames))
	}

	for i := 0; i < len(frames); i++ {
		fb, ok := selected[i]
		if !ok {
			continue
		}
		out := *outPath
		if *all && out != "" && out != "-" {
			out = numbered(out, i)
		}
		switch strings.ToLower(*mode) {
		case "png":
			err = writePNG(out, fb, *scale)
		case "ascii":
			err = writeASCII(out, fb, *all, i)
		default:
			fatalf("unknown mode: %s", *mode)
		}
		if err != nil {
			fatalf("frame %d: %v", i, err)
		}
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

// readFrames splits a capture into frames. A trailing partial frame is ignored.
func readFrames(path string) ([]*display.Framebuffer, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	br := bufio.NewReader(r)
	var frames []*display.Framebuffer
	buf := make([]byte, display.BufferSize)
	for {
		_, err := io.ReadFull(br, buf)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return frames, nil
		}
		if err != nil {
			return nil, err
		}
		fb, err := display.Decode(buf)
		if err != nil {
			return nil, err
		}
		frames = append(frames, fb)
	}
}

func numbered(path string, i int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%04d%s", strings.TrimSuffix(path, ext), i, ext)
}

func writePNG(path string, fb *display.Framebuffer, scale int) error {
	src := fb.Image()
	dst := image.NewGray(image.Rect(0, 0, display.Width*scale, display.Height*scale))
	for y := 0; y < dst.Rect.Dy(); y++ {
		for x := 0; x < dst.Rect.Dx(); x++ {
			dst.Pix[y*dst.Stride+x] = src.Pix[(y/scale)*src.Stride+x/scale]
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, dst); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func writeASCII(path string, fb *display.Framebuffer, header bool, i int) error {
	var w io.Writer = os.Stdout
	if path != "" && path != "-" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)
	if header {
		fmt.Fprintf(bw, "frame %d\n", i)
	}
	bw.WriteString(ascii(fb))
	return bw.Flush()
}

// ascii draws one character per pixel: '#' on, '.' off.
func ascii(fb *display.Framebuffer) string {
	var sb strings.Builder
	sb.Grow((display.Width + 1) * display.Height)
	for y := 0; y < display.Height; y++ {
		for x := 0; x < display.Width; x++ {
			if fb.Get(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
