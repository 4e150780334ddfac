package parameter

import "time"

// Frame Loop
const (
	// FrameUpdateInterval is the frame interval for the terminal frontend (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// EventChannelSize is the buffered input event channel capacity
	EventChannelSize = 100

	// MaxFrameDelta caps the integration step after a stall (debugger, resize)
	MaxFrameDelta = 100 * time.Millisecond
)

// Logging
const (
	// LogDir is the directory for debug log files
	LogDir = "logs"

	// LogFileName is the active log file name
	LogFileName = "tile-lod.log"

	// MaxLogSize triggers rotation of an existing log file at startup
	MaxLogSize = 10 * 1024 * 1024
)

// Terminal Input
const (
	// KeyHoldWindow is how long a movement key counts as held after its last press or repeat
	KeyHoldWindow = 200 * time.Millisecond
)
