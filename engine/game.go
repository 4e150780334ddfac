// Package engine runs the single-threaded frame: input and player movement,
// update-phase systems, then visible-rect resolution, draw-phase systems and rendering
package engine

import (
	"log"
	"sort"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tile-lod/camera"
	"github.com/lixenwraith/tile-lod/parameter"
	"github.com/lixenwraith/tile-lod/player"
	"github.com/lixenwraith/tile-lod/status"
	"github.com/lixenwraith/tile-lod/world"
)

// Renderer resolves visibility and draws a frame
type Renderer interface {
	Visible() world.Rect
	RenderFrame(f *Frame)
}

// Game holds the frame loop state
// All methods must be called from the goroutine that owns the graphics context
type Game struct {
	player   *player.Player
	camera   *camera.Camera
	renderer Renderer
	status   *status.Registry

	systems []System
	frame   Frame
	debug   bool

	statFrames   *atomic.Int64
	statUpdateMs *status.AtomicFloat
	statDrawMs   *status.AtomicFloat
}

// NewGame creates a game around an already built world, player and camera
func NewGame(p *player.Player, cam *camera.Camera, r Renderer, reg *status.Registry) *Game {
	g := &Game{
		player:   p,
		camera:   cam,
		renderer: r,
		status:   reg,

		statFrames:   reg.Ints.Get(status.FrameCount),
		statUpdateMs: reg.Floats.Get(status.FrameUpdateMs),
		statDrawMs:   reg.Floats.Get(status.FrameDrawMs),
	}
	g.syncViewer()
	return g
}

// AddSystem registers a system, keeping systems sorted by priority
// Equal priorities keep registration order
func (g *Game) AddSystem(s System) {
	g.systems = append(g.systems, s)
	sort.SliceStable(g.systems, func(i, j int) bool {
		return g.systems[i].Priority() < g.systems[j].Priority()
	})
	log.Printf("[engine] system %s registered (priority %d)", s.Name(), s.Priority())
}

// Systems returns a copy of the registered systems in run order
func (g *Game) Systems() []System {
	out := make([]System, len(g.systems))
	copy(out, g.systems)
	return out
}

// Frame returns the current frame state
func (g *Game) Frame() Frame { return g.frame }

// Player returns the viewer
func (g *Game) Player() *player.Player { return g.player }

// Camera returns the camera following the viewer
func (g *Game) Camera() *camera.Camera { return g.camera }

// Debug reports whether the LOD debug view is active
func (g *Game) Debug() bool { return g.frame.Debug }

// Update applies input, moves the player and runs update-phase systems
func (g *Game) Update(in Input, dt time.Duration) {
	start := time.Now()

	if dt > parameter.MaxFrameDelta {
		dt = parameter.MaxFrameDelta
	}
	if dt < 0 {
		dt = 0
	}

	if in.ToggleDebug {
		g.debug = !g.debug
	}
	g.frame.Debug = g.debug || in.DebugHold
	if in.ZoomIn {
		g.camera.ZoomIn()
	}
	if in.ZoomOut {
		g.camera.ZoomOut()
	}

	if in.Turn != 0 {
		g.player.Turn(in.Turn)
	}
	if in.HeadingSet {
		g.player.SetDesiredHeading(in.Heading)
	}
	g.player.Update(in.Move(), dt)

	g.frame.Number++
	g.frame.DT = dt
	g.syncViewer()

	g.run(PhaseUpdate)

	g.statFrames.Add(1)
	g.statUpdateMs.Smooth(msSince(start), 0.1)
}

// Draw resolves the visible rect, runs draw-phase systems and renders
func (g *Game) Draw() {
	start := time.Now()

	g.frame.Visible = g.renderer.Visible()
	g.run(PhaseDraw)
	g.renderer.RenderFrame(&g.frame)

	g.statDrawMs.Smooth(msSince(start), 0.1)
}

func (g *Game) run(phase Phase) {
	for _, s := range g.systems {
		if s.Phase() == phase {
			s.Update(&g.frame)
		}
	}
}

// syncViewer copies the player state into the frame and centers the camera
func (g *Game) syncViewer() {
	x, y := g.player.Position()
	g.frame.ViewerX, g.frame.ViewerY = x, y
	g.frame.Speed = g.player.Speed()
	g.camera.SetPosition(x, y)
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
