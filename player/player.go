// Package player integrates viewer movement: heading smoothing toward a desired
// heading and Euler position steps scaled by how far the heading still has to turn
package player

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/tile-lod/gfx"
	"github.com/lixenwraith/tile-lod/parameter"
)

// Config is the named-field description of a player, converted by Build
// Zero fields take defaults
type Config struct {
	ID          uint16
	DisplayName string
	Color       gfx.RGB
	RandomColor bool

	X, Y float64

	MovementSpeed float64 // world units per second
	RotationSpeed float64 // degrees per second
	SprintFactor  float64
}

// DefaultConfig returns a player at the default start position
func DefaultConfig() Config {
	return Config{
		DisplayName:   parameter.PlayerDisplayName,
		Color:         gfx.RGB{R: 0, G: 0, B: 255},
		X:             parameter.PlayerStartX,
		Y:             parameter.PlayerStartY,
		MovementSpeed: parameter.PlayerMovementSpeed,
		RotationSpeed: parameter.PlayerRotationSpeed,
		SprintFactor:  parameter.PlayerSprintFactor,
	}
}

// Build validates the config and creates the player
// rng is used only when RandomColor is set
func (c Config) Build(rng *rand.Rand) (*Player, error) {
	if c.DisplayName == "" {
		c.DisplayName = parameter.PlayerDisplayName
	}
	if c.MovementSpeed == 0 {
		c.MovementSpeed = parameter.PlayerMovementSpeed
	}
	if c.RotationSpeed == 0 {
		c.RotationSpeed = parameter.PlayerRotationSpeed
	}
	if c.SprintFactor == 0 {
		c.SprintFactor = parameter.PlayerSprintFactor
	}

	var errs []error
	if c.MovementSpeed < 0 {
		errs = append(errs, fmt.Errorf("movement speed %v is negative", c.MovementSpeed))
	}
	if c.RotationSpeed < 0 {
		errs = append(errs, fmt.Errorf("rotation speed %v is negative", c.RotationSpeed))
	}
	if c.SprintFactor < 1 {
		errs = append(errs, fmt.Errorf("sprint factor %v below 1", c.SprintFactor))
	}
	if math.IsNaN(c.X) || math.IsNaN(c.Y) {
		errs = append(errs, errors.New("start position is NaN"))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("player: %w", errors.Join(errs...))
	}

	color := c.Color
	if c.RandomColor && rng != nil {
		color = gfx.RGB{R: uint8(rng.IntN(256)), G: uint8(rng.IntN(256)), B: uint8(rng.IntN(256))}
	}

	return &Player{
		id:        c.ID,
		name:      c.DisplayName,
		color:     color,
		x:         c.X,
		y:         c.Y,
		moveSpeed: c.MovementSpeed,
		rotSpeed:  c.RotationSpeed,
		sprint:    c.SprintFactor,
	}, nil
}

// Move is a frame's movement intent in the player's local frame
// Forward is along the heading, Strafe is to its right
type Move struct {
	Forward float64
	Strafe  float64
	Sprint  bool
}

// Player is the viewer entity
// Heading is in degrees, 0 faces -y (up on screen), positive turns clockwise
type Player struct {
	id    uint16
	name  string
	color gfx.RGB

	x, y    float64
	heading float64
	desired float64
	speed   float64

	moveSpeed float64
	rotSpeed  float64
	sprint    float64
}

// ID returns the player id
func (p *Player) ID() uint16 { return p.id }

// Name returns the display name
func (p *Player) Name() string { return p.name }

// Color returns the marker color
func (p *Player) Color() gfx.RGB { return p.color }

// Position returns the world position
func (p *Player) Position() (float64, float64) { return p.x, p.y }

// Heading returns the current smoothed heading in [0, 360)
func (p *Player) Heading() float64 { return p.heading }

// DesiredHeading returns the heading being turned toward
func (p *Player) DesiredHeading() float64 { return p.desired }

// Speed returns the instantaneous speed of the last update in world units per second
func (p *Player) Speed() float64 { return p.speed }

// SetDesiredHeading sets the heading to turn toward
func (p *Player) SetDesiredHeading(deg float64) {
	p.desired = normalize(deg)
}

// Turn rotates the desired heading by delta degrees
func (p *Player) Turn(delta float64) {
	p.SetDesiredHeading(p.desired + delta)
}

// SetPosition teleports the player, speed is unaffected
func (p *Player) SetPosition(x, y float64) {
	p.x, p.y = x, y
}

// Update advances heading and position by dt
func (p *Player) Update(m Move, dt time.Duration) {
	sec := dt.Seconds()
	if sec <= 0 {
		p.speed = 0
		return
	}

	diff := p.turn(sec)
	if m.Forward == 0 && m.Strafe == 0 {
		p.speed = 0
		return
	}

	rad := p.heading * math.Pi / 180
	fx, fy := math.Sin(rad), -math.Cos(rad)
	rx, ry := math.Cos(rad), math.Sin(rad)

	// Moving while still turning is slower, proportional to the remaining turn
	scale := (360 - math.Abs(diff)) / 360 * p.moveSpeed * sec
	if m.Sprint {
		scale *= p.sprint
	}
	dx := (fx*m.Forward + rx*m.Strafe) * scale
	dy := (fy*m.Forward + ry*m.Strafe) * scale

	p.x += dx
	p.y += dy
	p.speed = math.Hypot(dx, dy) / sec
}

// turn moves heading toward desired and returns the remaining signed difference
func (p *Player) turn(sec float64) float64 {
	diff := shortestArc(p.heading, p.desired)
	if math.Abs(diff) < 1 {
		p.heading = p.desired
		return 0
	}
	step := math.Copysign(math.Min(p.rotSpeed*sec, math.Abs(diff)), diff)
	p.heading = normalize(p.heading + step)
	return shortestArc(p.heading, p.desired)
}

// shortestArc returns to-from in (-180, 180]
func shortestArc(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

func normalize(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}
