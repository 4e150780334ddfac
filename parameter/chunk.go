package parameter

// Chunk Geometry
// BaseSize = ChunkRowLen * TileSize: a LOD 0 composite is pixel-exact
const (
	// ChunkRowLen is the number of tiles per chunk row (chunk holds ChunkRowLen^2 tiles)
	ChunkRowLen = 16

	// TileSize is the pixel size of one palette tile at LOD 0
	TileSize = 32

	// BaseSize is the pixel size of a LOD 0 chunk composite
	BaseSize = ChunkRowLen * TileSize

	// ChunkWorldSize is the chunk footprint in world units
	ChunkWorldSize = 256

	// GridWidth and GridHeight are the default world dimensions in chunks
	GridWidth  = 16
	GridHeight = 16

	// TileVariants is the default palette size
	TileVariants = 6
)

// Level of Detail
const (
	// MaxLOD is the coarsest level; BaseSize >> MaxLOD must stay >= ChunkRowLen
	MaxLOD = 4

	// FarLOD is the last level drawn from the detail image
	// Chunks with active LOD above it draw the fallback composite
	FarLOD = 3

	// FallbackLOD is the level of the permanent fallback composite
	FallbackLOD = MaxLOD

	// InitialLOD is the active level of the detail image baked at setup
	InitialLOD = MaxLOD
)

// Redraw Scheduling
const (
	// RedrawBudget is the maximum number of chunk rebakes per frame
	RedrawBudget = 1

	// LODSpeedGate is the viewer speed (world units/s) at or above which desired LOD recompute is deferred
	LODSpeedGate = 120.0
)
