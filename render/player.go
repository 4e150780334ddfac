package render

import (
	"math"

	"github.com/lixenwraith/tile-lod/gfx"
	"github.com/lixenwraith/tile-lod/player"
)

// PlayerLayer draws the viewer marker: an outlined square and a heading tick
type PlayerLayer struct {
	player  *player.Player
	size    float64
	outline gfx.RGB
}

// NewPlayerLayer creates the marker layer, size is the marker edge in world units
func NewPlayerLayer(p *player.Player, size float64, outline gfx.RGB) *PlayerLayer {
	return &PlayerLayer{player: p, size: size, outline: outline}
}

// Render draws the marker
func (l *PlayerLayer) Render(ctx Context, s *Surface) {
	x, y := l.player.Position()
	half := l.size / 2
	border := l.size / 5

	s.FillRect(gfx.Rect{X: x - half - border, Y: y - half - border, W: l.size + 2*border, H: l.size + 2*border}, l.outline)
	s.FillRect(gfx.Rect{X: x - half, Y: y - half, W: l.size, H: l.size}, l.player.Color())

	rad := l.player.Heading() * math.Pi / 180
	tx, ty := x+math.Sin(rad)*l.size, y-math.Cos(rad)*l.size
	s.FillRect(gfx.Rect{X: tx - border, Y: ty - border, W: 2 * border, H: 2 * border}, gfx.RGBWhite)
}
