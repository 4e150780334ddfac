package render

import (
	"github.com/lixenwraith/tile-lod/camera"
	"github.com/lixenwraith/tile-lod/engine"
	"github.com/lixenwraith/tile-lod/world"
)

// Context provides frame state for layers, passed by value
type Context struct {
	Frame   int64
	Debug   bool
	Visible world.Rect
	Camera  *camera.Camera
}

// NewContext creates a Context from the engine frame
func NewContext(f *engine.Frame, cam *camera.Camera) Context {
	return Context{
		Frame:   f.Number,
		Debug:   f.Debug,
		Visible: f.Visible,
		Camera:  cam,
	}
}
