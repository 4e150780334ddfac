package parameter

// Render colors (RGB 0-255)
var (
	// ClearColor is the background outside the world
	ClearColor = [3]uint8{0, 0, 0}

	// DebugLODColor is the full-intensity color of a LOD 0 chunk in debug view
	DebugLODColor = [3]uint8{255, 255, 255}

	// MarkerOutlineColor frames the viewer marker
	MarkerOutlineColor = [3]uint8{26, 26, 26}
)

// ChunkGridAlpha is the opacity of debug chunk borders over the clear color
const ChunkGridAlpha = 0.5

// Terminal presentation
const (
	// HUDRows is the number of terminal rows reserved for the status line
	HUDRows = 1

	// PixelsPerCellY is the vertical pixel count per terminal cell (upper half block)
	PixelsPerCellY = 2
)
