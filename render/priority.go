package render

// Priority determines layer order. Lower values render first
type Priority int

const (
	PriorityChunks Priority = iota
	PriorityPlayer
	PriorityDebug
)
