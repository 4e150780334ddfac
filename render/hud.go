package render

import (
	"fmt"

	"github.com/lixenwraith/tile-lod/engine"
	"github.com/lixenwraith/tile-lod/status"
)

// HUDLine formats the one-line status display
func HUDLine(g *engine.Game, reg *status.Registry, fps float64) string {
	x, y := g.Player().Position()
	mode := "tex"
	if g.Debug() {
		mode = "lod"
	}
	return fmt.Sprintf("pos %.0f,%.0f  spd %.0f  zoom 2^%d  fps %.0f  upd %.2fms  drw %.2fms  vis %d  fb %d  bakes %d  pend %d  [%s]",
		x, y,
		g.Player().Speed(),
		g.Camera().ZoomPow(),
		fps,
		reg.Float(status.FrameUpdateMs),
		reg.Float(status.FrameDrawMs),
		reg.Int(status.RenderVisible),
		reg.Int(status.RenderFallback),
		reg.Int(status.LODBakes),
		reg.Int(status.LODPending),
		mode,
	)
}
