package engine

// Phase selects where in the frame a system runs
type Phase uint8

const (
	// PhaseUpdate runs during Game.Update, after input and player movement
	PhaseUpdate Phase = iota
	// PhaseDraw runs during Game.Draw, after the visible rect is known and before render layers
	PhaseDraw
)

// System is an interface that all frame systems must implement
type System interface {
	Name() string
	Priority() int // Lower values run first
	Phase() Phase
	Update(f *Frame)
}
