package engine

import (
	"time"

	"github.com/lixenwraith/tile-lod/player"
	"github.com/lixenwraith/tile-lod/world"
)

// Frame is the per-frame state shared by systems, owned by Game
type Frame struct {
	Number int64
	DT     time.Duration

	// Viewer state after movement
	ViewerX, ViewerY float64
	Speed            float64

	// Visible chunk range, valid in PhaseDraw only
	Visible world.Rect

	Debug bool
}

// Input is one frame of frontend intent, reset by the frontend every frame
type Input struct {
	Forward float64 // +1 forward, negative backward
	Strafe  float64 // +1 right, -1 left
	Sprint  bool

	// Turn rotates the desired heading by degrees, applied before HeadingSet
	Turn       float64
	HeadingSet bool
	Heading    float64

	ToggleDebug bool
	DebugHold   bool // debug view while held, on top of the toggle
	ZoomIn      bool
	ZoomOut     bool
	Quit        bool
}

// Move converts movement intent for the player integrator
func (in Input) Move() player.Move {
	return player.Move{Forward: in.Forward, Strafe: in.Strafe, Sprint: in.Sprint}
}
