package hal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// pipeDevice talks to the keypad driver through its two named pipes.
type pipeDevice struct {
	mu   sync.Mutex
	keys *os.File
	lcd  *os.File
	bw   *bufio.Writer
}

// OpenPipes opens the driver's LCD pipe for writing and its key pipe for reading.
//
// Opening a FIFO blocks until the driver holds the other end.
func OpenPipes(lcdPath, keysPath string) (Device, error) {
	lcd, err := os.OpenFile(lcdPath, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open lcd pipe %s: %w", lcdPath, err)
	}
	keys, err := os.Open(keysPath)
	if err != nil {
		_ = lcd.Close()
		return nil, fmt.Errorf("open key pipe %s: %w", keysPath, err)
	}
	return &pipeDevice{keys: keys, lcd: lcd, bw: bufio.NewWriter(lcd)}, nil
}

func (d *pipeDevice) Keys() io.Reader { return d.keys }
func (d *pipeDevice) LCD() io.Writer  { return d }

// Write buffers p; the framebuffer calls Flush after every frame.
func (d *pipeDevice) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bw.Write(p)
}

func (d *pipeDevice) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bw.Flush()
}

func (d *pipeDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return errors.Join(d.bw.Flush(), d.lcd.Close(), d.keys.Close())
}
