//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostKeyboard turns key presses in the preview window into keypad buttons.
type hostKeyboard struct {
	dev *virtualDevice
}

func newHostKeyboard(dev *virtualDevice) *hostKeyboard {
	return &hostKeyboard{dev: dev}
}

var windowKeys = map[ebiten.Key]Button{
	ebiten.KeyEscape:     ButtonDismiss,
	ebiten.KeyBackspace:  ButtonDismiss,
	ebiten.KeyDigit0:     ButtonDismiss,
	ebiten.KeyEnter:      ButtonPrimary,
	ebiten.KeySpace:      ButtonPrimary,
	ebiten.KeyDigit1:     ButtonPrimary,
	ebiten.KeyS:          ButtonSecondary,
	ebiten.KeyDigit2:     ButtonSecondary,
	ebiten.KeyArrowUp:    ButtonPrevious,
	ebiten.KeyArrowLeft:  ButtonPrevious,
	ebiten.KeyDigit3:     ButtonPrevious,
	ebiten.KeyArrowDown:  ButtonNext,
	ebiten.KeyArrowRight: ButtonNext,
	ebiten.KeyDigit4:     ButtonNext,
}

func (k *hostKeyboard) poll() {
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		if b, ok := windowKeys[key]; ok {
			k.dev.Press(b)
		}
	}
}
