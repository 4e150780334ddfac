// Package terminal presents the software framebuffer on a tcell screen using
// upper half blocks (two pixels per cell) and maps key events to frame input
package terminal

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tile-lod/gfx"
	"github.com/lixenwraith/tile-lod/parameter"
)

// ColorMode selects how pixels are sent to the terminal
type ColorMode uint8

const (
	ColorModeAuto ColorMode = iota
	ColorMode256
	ColorModeTrueColor
)

// ParseColorMode maps the -color flag value
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorModeAuto, nil
	case "256":
		return ColorMode256, nil
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, nil
	}
	return ColorModeAuto, fmt.Errorf("unknown color mode %q", s)
}

const halfBlock = '▀'

// Terminal wraps a tcell screen
type Terminal struct {
	screen  tcell.Screen
	hudRows int
}

// New initializes the real terminal
// Color mode is applied through tcell's environment overrides before the screen is created
func New(mode ColorMode) (*Terminal, error) {
	switch mode {
	case ColorMode256:
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case ColorModeTrueColor:
		os.Setenv("COLORTERM", "truecolor")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen wraps an initialized screen
func NewWithScreen(screen tcell.Screen) *Terminal {
	screen.HideCursor()
	return &Terminal{screen: screen, hudRows: parameter.HUDRows}
}

// Screen returns the underlying screen
func (t *Terminal) Screen() tcell.Screen { return t.screen }

// Fini restores the terminal
func (t *Terminal) Fini() { t.screen.Fini() }

// Sync redraws the whole screen after a resize
func (t *Terminal) Sync() { t.screen.Sync() }

// PollEvent blocks for the next event, nil after Fini
func (t *Terminal) PollEvent() tcell.Event { return t.screen.PollEvent() }

// PixelSize returns the framebuffer size that fits the screen above the HUD
func (t *Terminal) PixelSize() (int, int) {
	cols, rows := t.screen.Size()
	return max(cols, 1), max(rows-t.hudRows, 1) * parameter.PixelsPerCellY
}

// Present draws img as half blocks and the HUD line below it, then shows the screen
func (t *Terminal) Present(img *gfx.SoftImage, hud string) {
	cols, rows := t.screen.Size()
	w, h := img.Size()
	gameRows := rows - t.hudRows

	for cy := 0; cy < gameRows; cy++ {
		py := cy * parameter.PixelsPerCellY
		for cx := 0; cx < cols; cx++ {
			if cx >= w || py >= h {
				t.screen.SetContent(cx, cy, ' ', nil, tcell.StyleDefault)
				continue
			}
			top := img.At(cx, py)
			bottom := top
			if py+1 < h {
				bottom = img.At(cx, py+1)
			}
			style := tcell.StyleDefault.Foreground(toColor(top)).Background(toColor(bottom))
			t.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}

	t.drawText(0, max(gameRows, 0), cols, hud)
	t.screen.Show()
}

// drawText writes s at row y, padded with spaces to width
func (t *Terminal) drawText(x, y, width int, s string) {
	style := tcell.StyleDefault.Reverse(true)
	runes := []rune(s)
	for i := 0; i < width; i++ {
		r := ' '
		if i < len(runes) {
			r = runes[i]
		}
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func toColor(c gfx.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
