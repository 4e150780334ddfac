package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lixenwraith/tile-lod/app"
	"github.com/lixenwraith/tile-lod/config"
	"github.com/lixenwraith/tile-lod/engine"
	"github.com/lixenwraith/tile-lod/gfx/ebitengfx"
	"github.com/lixenwraith/tile-lod/parameter"
)

var (
	configFlag = flag.String("config", "", "YAML config file")
	debugFlag  = flag.Bool("debug", false, "Log to stderr")
	seedFlag   = flag.Uint64("seed", 0, "World seed, overrides config when non-zero")
	widthFlag  = flag.Int("width", 1280, "Window width")
	heightFlag = flag.Int("height", 720, "Window height")
)

// Game adapts app.App to ebiten's Update/Draw/Layout callbacks
// Setup runs on the first Update so that all GPU work happens inside the game loop
type Game struct {
	cfg   config.Config
	gfx   *ebitengfx.Graphics
	scene *app.App

	w, h int
}

func (g *Game) Update() error {
	if g.scene == nil {
		scene, err := app.New(g.cfg, g.gfx, g.w, g.h)
		if err != nil {
			return err
		}
		g.scene = scene
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	in := g.input()
	if in.Quit {
		return ebiten.Termination
	}
	g.scene.Game.Update(in, time.Second/time.Duration(ebiten.TPS()))
	return nil
}

func (g *Game) input() engine.Input {
	var in engine.Input
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		in.Forward += parameter.MoveForwardWeight
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		in.Forward -= parameter.MoveBackwardWeight
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		in.Strafe -= parameter.MoveStrafeWeight
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		in.Strafe += parameter.MoveStrafeWeight
	}
	in.Sprint = ebiten.IsKeyPressed(ebiten.KeyShift)

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		in.Turn -= parameter.TurnStepDegrees
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		in.Turn += parameter.TurnStepDegrees
	}

	// Face the cursor while the left button is held
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		wx, wy := g.scene.Camera.ScreenToWorld(float64(cx), float64(cy))
		px, py := g.scene.Player.Position()
		if dx, dy := wx-px, wy-py; dx != 0 || dy != 0 {
			in.HeadingSet = true
			in.Heading = math.Atan2(dx, -dy) * 180 / math.Pi
		}
	}

	in.DebugHold = ebiten.IsKeyPressed(ebiten.KeyL)
	in.ZoomIn = inpututil.IsKeyJustPressed(ebiten.KeyO)
	in.ZoomOut = inpututil.IsKeyJustPressed(ebiten.KeyP)
	in.Quit = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	return in
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.scene == nil {
		return
	}
	g.gfx.BeginFrame(screen)
	g.scene.Game.Draw()
	ebitenutil.DebugPrint(screen, g.scene.HUD(ebiten.ActualFPS()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		if g.scene != nil {
			g.scene.Resize(g.w, g.h)
		}
	}
	return g.w, g.h
}

func main() {
	flag.Parse()
	if !*debugFlag {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		cfg.World.Seed = *seedFlag
	}

	g := &Game{cfg: cfg, gfx: ebitengfx.New(), w: *widthFlag, h: *heightFlag}

	ebiten.SetWindowSize(*widthFlag, *heightFlag)
	ebiten.SetWindowTitle("tile-lod")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(g)
	if g.scene != nil {
		g.scene.Release()
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Fprintf(os.Stderr, "tile-lod: %v\n", err)
		os.Exit(1)
	}
}
