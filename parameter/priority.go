package parameter

// System Execution Priorities (lower runs first)
// Player movement is applied by the engine before any update-phase system
const (
	PriorityLOD    = 20
	PriorityRedraw = 30 // Draw phase, before render layers
)
