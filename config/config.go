// Package config loads the YAML configuration, validates it against the embedded
// JSON schema and then against the cross-field LOD constraints
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tile-lod/gfx"
	"github.com/lixenwraith/tile-lod/parameter"
)

//go:embed config.schema.json
var schemaJSON []byte

const schemaURL = "https://github.com/lixenwraith/tile-lod/config.schema.json"

// Scan modes for the redraw scheduler
const (
	ScanVisible = "visible"
	ScanGrid    = "grid"
)

type Config struct {
	World  WorldConfig  `yaml:"world"`
	Chunk  ChunkConfig  `yaml:"chunk"`
	LOD    LODConfig    `yaml:"lod"`
	Camera CameraConfig `yaml:"camera"`
	Player PlayerConfig `yaml:"player"`
	Render RenderConfig `yaml:"render"`
}

type WorldConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	Seed           uint64  `yaml:"seed"`
	ChunkWorldSize float64 `yaml:"chunk_world_size"`
	TileVariants   int     `yaml:"tile_variants"`
	Atlas          string  `yaml:"atlas,omitempty"` // PNG atlas, procedural palette when empty
}

type ChunkConfig struct {
	RowLen   int `yaml:"row_len"`
	TileSize int `yaml:"tile_size"`
}

type LODConfig struct {
	Max       int     `yaml:"max"`
	Far       int     `yaml:"far"`
	Initial   int     `yaml:"initial"`
	Policy    string  `yaml:"policy"`
	Scan      string  `yaml:"scan"`
	Budget    int     `yaml:"budget"`
	SpeedGate float64 `yaml:"speed_gate"`
}

type CameraConfig struct {
	Zoom    int `yaml:"zoom"`
	MinZoom int `yaml:"min_zoom"`
	MaxZoom int `yaml:"max_zoom"`
}

type PlayerConfig struct {
	Name          string   `yaml:"name"`
	X             float64  `yaml:"x"`
	Y             float64  `yaml:"y"`
	Speed         float64  `yaml:"speed"`
	RotationSpeed float64  `yaml:"rotation_speed"`
	SprintFactor  float64  `yaml:"sprint_factor"`
	Color         [3]uint8 `yaml:"color"`
	RandomColor   bool     `yaml:"random_color"`
}

type RenderConfig struct {
	ClearColor [3]uint8 `yaml:"clear_color"`
	DebugColor [3]uint8 `yaml:"debug_color"`
	MarkerSize float64  `yaml:"marker_size"`
	ChunkGrid  bool     `yaml:"chunk_grid"` // chunk borders in the debug view
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		World: WorldConfig{
			Width:          parameter.GridWidth,
			Height:         parameter.GridHeight,
			Seed:           1,
			ChunkWorldSize: parameter.ChunkWorldSize,
			TileVariants:   parameter.TileVariants,
		},
		Chunk: ChunkConfig{
			RowLen:   parameter.ChunkRowLen,
			TileSize: parameter.TileSize,
		},
		LOD: LODConfig{
			Max:       parameter.MaxLOD,
			Far:       parameter.FarLOD,
			Initial:   parameter.InitialLOD,
			Policy:    "reference",
			Scan:      ScanVisible,
			Budget:    parameter.RedrawBudget,
			SpeedGate: parameter.LODSpeedGate,
		},
		Camera: CameraConfig{
			Zoom:    parameter.CameraZoomPow,
			MinZoom: parameter.CameraMinZoomPow,
			MaxZoom: parameter.CameraMaxZoomPow,
		},
		Player: PlayerConfig{
			Name:          parameter.PlayerDisplayName,
			X:             parameter.PlayerStartX,
			Y:             parameter.PlayerStartY,
			Speed:         parameter.PlayerMovementSpeed,
			RotationSpeed: parameter.PlayerRotationSpeed,
			SprintFactor:  parameter.PlayerSprintFactor,
			Color:         [3]uint8{0, 0, 255},
		},
		Render: RenderConfig{
			ClearColor: parameter.ClearColor,
			DebugColor: parameter.DebugLODColor,
			MarkerSize: parameter.PlayerMarkerSize,
			ChunkGrid:  true,
		},
	}
}

// Load reads path over the defaults; an empty path returns the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML over the defaults and validates the result
func Parse(b []byte) (Config, error) {
	cfg := Default()
	if err := checkSchema(b); err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks cross-field constraints the schema cannot express
func (c Config) Validate() error {
	var errs []error

	// Coarsest level must still give each tile at least one pixel
	if maxLOD := bits.Len(uint(c.Chunk.TileSize)) - 1; c.LOD.Max > maxLOD {
		errs = append(errs, fmt.Errorf("lod.max %d exceeds log2(chunk.tile_size %d) = %d", c.LOD.Max, c.Chunk.TileSize, maxLOD))
	}
	if c.Chunk.TileSize&(c.Chunk.TileSize-1) != 0 {
		errs = append(errs, fmt.Errorf("chunk.tile_size %d is not a power of two", c.Chunk.TileSize))
	}
	if c.LOD.Far > c.LOD.Max {
		errs = append(errs, fmt.Errorf("lod.far %d exceeds lod.max %d", c.LOD.Far, c.LOD.Max))
	}
	if c.LOD.Initial > c.LOD.Max {
		errs = append(errs, fmt.Errorf("lod.initial %d exceeds lod.max %d", c.LOD.Initial, c.LOD.Max))
	}
	if c.Camera.MinZoom > c.Camera.MaxZoom {
		errs = append(errs, fmt.Errorf("camera.min_zoom %d exceeds camera.max_zoom %d", c.Camera.MinZoom, c.Camera.MaxZoom))
	}
	if c.Camera.Zoom < c.Camera.MinZoom || c.Camera.Zoom > c.Camera.MaxZoom {
		errs = append(errs, fmt.Errorf("camera.zoom %d outside [%d, %d]", c.Camera.Zoom, c.Camera.MinZoom, c.Camera.MaxZoom))
	}
	if c.World.Atlas == "" && c.World.TileVariants < 1 {
		errs = append(errs, fmt.Errorf("world.tile_variants %d must be positive", c.World.TileVariants))
	}

	return errors.Join(errs...)
}

// BaseSize returns the pixel size of a LOD 0 composite
func (c Config) BaseSize() int {
	return c.Chunk.RowLen * c.Chunk.TileSize
}

// FallbackLOD returns the level of the permanent fallback composite
func (c Config) FallbackLOD() int {
	return c.LOD.Max
}

// ScanGrid reports whether the scheduler scans the whole grid
func (c Config) ScanGrid() bool {
	return c.LOD.Scan == ScanGrid
}

// ClearColor returns the background color
func (c Config) ClearColor() gfx.RGB { return gfx.FromArray(c.Render.ClearColor) }

// DebugColor returns the LOD 0 debug color
func (c Config) DebugColor() gfx.RGB { return gfx.FromArray(c.Render.DebugColor) }

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("config schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// checkSchema validates raw YAML against the embedded schema
// YAML is round-tripped through JSON so the validator sees JSON value types
func checkSchema(b []byte) error {
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if doc == nil {
		return nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	s, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
