package world

// Rect is an inclusive range of chunk coordinates, empty when Max < Min
type Rect struct {
	MinX, MinY int
	MaxX, MaxY int
}

// EmptyRect contains no chunks
var EmptyRect = Rect{MinX: 0, MinY: 0, MaxX: -1, MaxY: -1}

// Empty reports whether r contains no chunks
func (r Rect) Empty() bool {
	return r.MaxX < r.MinX || r.MaxY < r.MinY
}

// Contains reports whether (x, y) lies in r
func (r Rect) Contains(x, y int) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Count returns the number of chunks in r
func (r Rect) Count() int {
	if r.Empty() {
		return 0
	}
	return (r.MaxX - r.MinX + 1) * (r.MaxY - r.MinY + 1)
}
