// Package app wires configuration into a running scene: palette, baker, chunk
// grid, player, camera, frame systems and render layers
package app

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/tile-lod/camera"
	"github.com/lixenwraith/tile-lod/chunk"
	"github.com/lixenwraith/tile-lod/config"
	"github.com/lixenwraith/tile-lod/engine"
	"github.com/lixenwraith/tile-lod/gfx"
	"github.com/lixenwraith/tile-lod/parameter"
	"github.com/lixenwraith/tile-lod/player"
	"github.com/lixenwraith/tile-lod/render"
	"github.com/lixenwraith/tile-lod/status"
	"github.com/lixenwraith/tile-lod/system"
	"github.com/lixenwraith/tile-lod/tile"
	"github.com/lixenwraith/tile-lod/world"
)

// App owns every long-lived object of one scene
type App struct {
	Config config.Config
	Status *status.Registry

	Palette *tile.Palette
	Baker   *chunk.Baker
	Grid    *world.Grid
	Player  *player.Player
	Camera  *camera.Camera

	LOD    *system.LODSystem
	Redraw *system.RedrawSystem
	Render *render.Orchestrator
	Game   *engine.Game

	g gfx.Graphics
}

// New builds the scene on g with a w x h pixel viewport
// Setup bake failures are returned; partially created resources are released
func New(cfg config.Config, g gfx.Graphics, w, h int) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	policy, err := world.PolicyByName(cfg.LOD.Policy)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	a := &App{Config: cfg, Status: status.NewRegistry(), g: g}

	if cfg.World.Atlas != "" {
		a.Palette, err = tile.LoadAtlas(g, cfg.World.Atlas, cfg.Chunk.TileSize)
	} else {
		a.Palette, err = tile.ProceduralPalette(g, cfg.World.TileVariants, cfg.Chunk.TileSize, cfg.World.Seed)
	}
	if err != nil {
		return nil, fmt.Errorf("app: palette: %w", err)
	}

	a.Baker = chunk.NewBaker(g, a.Palette, cfg.Chunk.RowLen, cfg.Chunk.TileSize, cfg.LOD.Max)

	start := time.Now()
	a.Grid, err = world.New(world.Config{
		Width:        cfg.World.Width,
		Height:       cfg.World.Height,
		RowLen:       cfg.Chunk.RowLen,
		TileVariants: a.Palette.Len(),
		WorldSize:    cfg.World.ChunkWorldSize,
		InitialLOD:   cfg.LOD.Initial,
		Seed:         cfg.World.Seed,
	}, a.Baker)
	if err != nil {
		a.Palette.Release(g)
		return nil, fmt.Errorf("app: %w", err)
	}
	log.Printf("[app] world setup took %v", time.Since(start))

	rng := rand.New(rand.NewPCG(cfg.World.Seed, cfg.World.Seed+1))
	a.Player, err = player.Config{
		DisplayName:   cfg.Player.Name,
		Color:         gfx.FromArray(cfg.Player.Color),
		RandomColor:   cfg.Player.RandomColor,
		X:             cfg.Player.X,
		Y:             cfg.Player.Y,
		MovementSpeed: cfg.Player.Speed,
		RotationSpeed: cfg.Player.RotationSpeed,
		SprintFactor:  cfg.Player.SprintFactor,
	}.Build(rng)
	if err != nil {
		a.Release()
		return nil, fmt.Errorf("app: %w", err)
	}

	px, py := a.Player.Position()
	a.Camera = camera.New(px, py, cfg.Camera.Zoom, cfg.Camera.MinZoom, cfg.Camera.MaxZoom)

	a.Render = render.NewOrchestrator(g, a.Camera, a.Grid, cfg.ClearColor())
	a.Render.Register(render.NewChunkLayer(a.Grid, chunk.Layout{
		WorldSize:  cfg.World.ChunkWorldSize,
		FarLOD:     cfg.LOD.Far,
		DebugColor: cfg.DebugColor(),
	}, a.Status), render.PriorityChunks)
	a.Render.Register(render.NewPlayerLayer(a.Player, cfg.Render.MarkerSize, gfx.FromArray(parameter.MarkerOutlineColor)), render.PriorityPlayer)
	a.Render.Register(render.NewGridLayer(cfg.World.ChunkWorldSize, cfg.ClearColor(), cfg.DebugColor(), parameter.ChunkGridAlpha, cfg.Render.ChunkGrid), render.PriorityDebug)
	a.Render.Resize(w, h)

	a.LOD = system.NewLODSystem(a.Grid, policy, cfg.LOD.SpeedGate, a.Status)
	a.LOD.Force(px, py)
	a.Redraw = system.NewRedrawSystem(a.Grid, a.Baker, cfg.LOD.Budget, cfg.ScanGrid(), a.Status)

	a.Game = engine.NewGame(a.Player, a.Camera, a.Render, a.Status)
	a.Game.AddSystem(a.LOD)
	a.Game.AddSystem(a.Redraw)

	return a, nil
}

// Resize updates the screen viewport
func (a *App) Resize(w, h int) {
	a.Render.Resize(w, h)
}

// Step runs one full frame: update then draw
func (a *App) Step(in engine.Input, dt time.Duration) {
	a.Game.Update(in, dt)
	a.Game.Draw()
}

// HUD returns the status line
func (a *App) HUD(fps float64) string {
	return render.HUDLine(a.Game, a.Status, fps)
}

// Release frees chunk images and the palette
func (a *App) Release() {
	if a.Grid != nil {
		a.Grid.Release()
		a.Grid = nil
	}
	if a.Palette != nil {
		a.Palette.Release(a.g)
		a.Palette = nil
	}
}
