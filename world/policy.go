package world

import "fmt"

// Policy maps a chunk's offset from the viewer chunk to a raw LOD
// The result is clamped by the chunk; policies must be non-decreasing in |dx| and |dy|
type Policy func(dx, dy int) int

// ReferencePolicy is the asymmetric default: max(|dx|-1, |dy|) - 1
// The horizontal neighborhood kept at LOD 0 is one chunk wider than the vertical one
func ReferencePolicy(dx, dy int) int {
	return max(abs(dx)-1, abs(dy)) - 1
}

// ChebyshevPolicy is the symmetric variant: max(|dx|, |dy|) - 1
func ChebyshevPolicy(dx, dy int) int {
	return max(abs(dx), abs(dy)) - 1
}

// PolicyByName resolves a configured policy name
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "reference":
		return ReferencePolicy, nil
	case "chebyshev":
		return ChebyshevPolicy, nil
	}
	return nil, fmt.Errorf("unknown lod policy %q", name)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
