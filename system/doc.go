// Package system holds the frame systems of the LOD pipeline: viewer tracking
// with the speed-gated desired-LOD recompute, and the budgeted rebake scheduler
package system
