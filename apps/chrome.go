package apps

import (
	"image"
	"sync"

	"g13lcd/display"
	"g13lcd/ui"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
)

// Static parts of each screen, rasterized once.
var (
	menuChrome = sync.OnceValue(func() ui.Sprite {
		return ui.Record(func(d drivers.Displayer) {
			// Image placeholder.
			_ = tinydraw.Rectangle(d, 0, 0, 33, 33, display.On)
			ui.NewAppBar("↕ Menu", image.Rect(33, 0, display.Width, 9)).Draw(d)
			selectButtons.Draw(d)
		})
	})

	selectorChrome = sync.OnceValue(func() ui.Sprite {
		return ui.Record(func(d drivers.Displayer) {
			ui.NewAppBar("Select a player:", image.Rect(0, 0, display.Width, 9)).Draw(d)
			selectButtons.Draw(d)
		})
	})

	playerChrome = sync.OnceValue(func() ui.Sprite {
		return ui.Record(func(d drivers.Displayer) {
			ui.NewAppBar("♫ Playing:", image.Rect(0, 0, display.Width, 9)).Draw(d)
			ui.ButtonBar{
				ui.TextButton("►"),
				ui.IconButton(func(d drivers.Displayer) {
					_ = tinydraw.FilledRectangle(d, 0, 0, 7, 7, display.On)
				}),
				ui.TextButton("◄◄"),
				ui.TextButton("►►"),
			}.Draw(d)
		})
	})

	errorChrome = sync.OnceValue(func() ui.Sprite {
		return ui.Record(func(d drivers.Displayer) {
			ui.NewAppBar("An error occurred:", image.Rect(0, 0, display.Width, 11)).Draw(d)
			ui.TextSmall.Draw(d, 0, 37, "More info in logs... Use BD to continue...")
		})
	})
)

var selectButtons = ui.ButtonBar{ui.TextButton("OK"), nil, ui.TextButton("▲"), ui.TextButton("▼")}
