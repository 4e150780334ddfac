package parameter

// Camera zoom configuration
// Zoom is a power of two: the viewport spans 2^pow world units horizontally
const (
	// CameraZoomPow is the starting zoom power
	CameraZoomPow = 10

	// CameraMinZoomPow is the closest zoom (128 world units across)
	CameraMinZoomPow = 7

	// CameraMaxZoomPow is the farthest zoom
	CameraMaxZoomPow = 15
)
