package parameter

// Player defaults
const (
	// PlayerStartX and PlayerStartY place the viewer at the center of the default grid
	PlayerStartX = 2048.0
	PlayerStartY = 2048.0

	// PlayerMovementSpeed is the walking speed in world units per second
	PlayerMovementSpeed = 50.0

	// PlayerRotationSpeed is the heading smoothing rate in degrees per second
	PlayerRotationSpeed = 150.0

	// PlayerSprintFactor multiplies movement speed while sprinting
	PlayerSprintFactor = 6.0

	// PlayerMarkerSize is the world-space edge length of the viewer marker
	PlayerMarkerSize = 10.0

	// PlayerDisplayName is the default name for an unnamed player
	PlayerDisplayName = "Blank"
)

// Input weights per movement key (forward is faster than backward)
const (
	MoveForwardWeight  = 1.0
	MoveStrafeWeight   = 0.75
	MoveBackwardWeight = 0.5

	// TurnStepDegrees is the heading change per turn key press
	TurnStepDegrees = 15.0
)
