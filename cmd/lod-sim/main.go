// Command lod-sim runs the LOD pipeline headless on the software backend:
// a scripted walk, then a PNG of the last frame and a metrics dump
package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"time"

	"github.com/lixenwraith/tile-lod/app"
	"github.com/lixenwraith/tile-lod/config"
	"github.com/lixenwraith/tile-lod/engine"
	"github.com/lixenwraith/tile-lod/gfx"
	"github.com/lixenwraith/tile-lod/parameter"
)

var (
	configFlag  = flag.String("config", "", "YAML config file")
	seedFlag    = flag.Uint64("seed", 0, "World seed, overrides config when non-zero")
	framesFlag  = flag.Int("frames", 600, "Frames to simulate")
	headingFlag = flag.Float64("heading", 90, "Walk heading in degrees, 0 faces -y")
	sprintFlag  = flag.Bool("sprint", false, "Sprint for the whole walk")
	debugFlag   = flag.Bool("lod", false, "Render the final frame in LOD debug view")
	widthFlag   = flag.Int("width", 640, "Viewport width")
	heightFlag  = flag.Int("height", 360, "Viewport height")
	outFlag     = flag.String("out", "frame.png", "Output PNG, empty to skip")
	verboseFlag = flag.Bool("v", false, "Log to stderr")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lod-sim: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *seedFlag != 0 {
		cfg.World.Seed = *seedFlag
	}

	soft := gfx.NewSoftware(*widthFlag, *heightFlag)
	scene, err := app.New(cfg, soft, *widthFlag, *heightFlag)
	if err != nil {
		return err
	}
	defer scene.Release()

	dt := parameter.FrameUpdateInterval
	start := time.Now()
	for i := 0; i < *framesFlag; i++ {
		in := engine.Input{
			Forward:    parameter.MoveForwardWeight,
			Sprint:     *sprintFlag,
			HeadingSet: true,
			Heading:    *headingFlag,
		}
		if i == *framesFlag-1 {
			in.DebugHold = *debugFlag
		}
		scene.Step(in, dt)
	}
	elapsed := time.Since(start)

	x, y := scene.Player.Position()
	fmt.Printf("frames=%d elapsed=%v viewer=%.1f,%.1f live_images=%d\n", *framesFlag, elapsed, x, y, soft.Live())
	if err := scene.Status.Dump(os.Stdout); err != nil {
		return err
	}

	if *outFlag == "" {
		return nil
	}
	f, err := os.Create(*outFlag)
	if err != nil {
		return err
	}
	if err := png.Encode(f, soft.Screen().RGBA()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", *outFlag, err)
	}
	return f.Close()
}
