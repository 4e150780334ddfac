package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tile-lod/app"
	"github.com/lixenwraith/tile-lod/config"
	"github.com/lixenwraith/tile-lod/gfx"
	"github.com/lixenwraith/tile-lod/parameter"
	"github.com/lixenwraith/tile-lod/terminal"
)

var (
	configFlag = flag.String("config", "", "YAML config file")
	debugFlag  = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
	seedFlag   = flag.Uint64("seed", 0, "World seed, overrides config when non-zero")
	colorFlag  = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
)

func crash(what string, r any) {
	terminal.EmergencyReset(os.Stdout)
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31m%s CRASHED: %v\x1b[0m\r\n", what, r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}

func main() {
	// Panic Recovery: ensure terminal is reset even if the loop crashes
	defer func() {
		if r := recover(); r != nil {
			crash("TILE-LOD", r)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		cfg.World.Seed = *seedFlag
	}

	colorMode, err := terminal.ParseColorMode(*colorFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	term, err := terminal.New(colorMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	w, h := term.PixelSize()
	soft := gfx.NewSoftware(w, h)
	scene, err := app.New(cfg, soft, w, h)
	if err != nil {
		term.Fini()
		log.Printf("[main] setup failed: %v", err)
		fmt.Fprintf(os.Stderr, "Setup failed: %v\n", err)
		os.Exit(1)
	}
	defer term.Fini()
	defer scene.Release()

	log.Printf("[main] %dx%d chunks, viewport %dx%d px", cfg.World.Width, cfg.World.Height, w, h)

	eventChan := make(chan tcell.Event, parameter.EventChannelSize)
	// Input polling uses raw goroutine as it interacts directly with the terminal
	go func() {
		defer func() {
			if r := recover(); r != nil {
				crash("EVENT POLLER", r)
			}
		}()
		for {
			ev := term.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	keys := terminal.NewKeys(parameter.KeyHoldWindow)
	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	last := time.Now()
	var fps float64

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				keys.Handle(ev, time.Now())
			case *tcell.EventResize:
				w, h := term.PixelSize()
				soft.Resize(w, h)
				scene.Resize(w, h)
				term.Sync()
			}

		case now := <-frameTicker.C:
			in := keys.Input(now)
			if in.Quit {
				return
			}

			dt := now.Sub(last)
			last = now
			if dt > 0 {
				fps += (1/dt.Seconds() - fps) * 0.1
			}

			scene.Step(in, dt)
			term.Present(soft.Screen(), scene.HUD(fps))
		}
	}
}
