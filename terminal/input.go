package terminal

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tile-lod/engine"
	"github.com/lixenwraith/tile-lod/parameter"
)

// Movement directions tracked as held keys
const (
	dirForward = iota
	dirBackward
	dirLeft
	dirRight
	dirCount
)

// Keys turns key press events into per-frame input
// Terminals report presses and auto-repeat but no releases: a movement key counts
// as held for the hold window after its last press
type Keys struct {
	hold time.Duration

	lastPress   [dirCount]time.Time
	sprintUntil time.Time

	pending engine.Input // one-shot actions until the next Input call
}

// NewKeys creates the key state with the given hold window
func NewKeys(hold time.Duration) *Keys {
	return &Keys{hold: hold}
}

// Handle records a key event, false for keys without a binding
func (k *Keys) Handle(ev *tcell.EventKey, now time.Time) bool {
	shift := ev.Modifiers()&tcell.ModShift != 0
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		k.pending.Quit = true
		return true
	case tcell.KeyUp:
		k.press(dirForward, now, shift)
		return true
	case tcell.KeyDown:
		k.press(dirBackward, now, shift)
		return true
	case tcell.KeyLeft:
		k.press(dirLeft, now, shift)
		return true
	case tcell.KeyRight:
		k.press(dirRight, now, shift)
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	r := ev.Rune()
	shift = shift || unicode.IsUpper(r)
	switch unicode.ToLower(r) {
	case 'w':
		k.press(dirForward, now, shift)
	case 's':
		k.press(dirBackward, now, shift)
	case 'a':
		k.press(dirLeft, now, shift)
	case 'd':
		k.press(dirRight, now, shift)
	case 'q':
		k.pending.Turn -= parameter.TurnStepDegrees
	case 'e':
		k.pending.Turn += parameter.TurnStepDegrees
	case 'l':
		// Presses within one frame toggle once
		k.pending.ToggleDebug = true
	case 'o':
		k.pending.ZoomIn = true
	case 'p':
		k.pending.ZoomOut = true
	default:
		return false
	}
	return true
}

func (k *Keys) press(dir int, now time.Time, sprint bool) {
	k.lastPress[dir] = now
	if sprint {
		k.sprintUntil = now.Add(k.hold)
	}
}

func (k *Keys) held(dir int, now time.Time) bool {
	t := k.lastPress[dir]
	return !t.IsZero() && now.Sub(t) < k.hold
}

// Input returns the frame input at now and clears one-shot actions
func (k *Keys) Input(now time.Time) engine.Input {
	in := k.pending
	k.pending = engine.Input{}

	if k.held(dirForward, now) {
		in.Forward += parameter.MoveForwardWeight
	}
	if k.held(dirBackward, now) {
		in.Forward -= parameter.MoveBackwardWeight
	}
	if k.held(dirLeft, now) {
		in.Strafe -= parameter.MoveStrafeWeight
	}
	if k.held(dirRight, now) {
		in.Strafe += parameter.MoveStrafeWeight
	}
	in.Sprint = now.Before(k.sprintUntil)
	return in
}
