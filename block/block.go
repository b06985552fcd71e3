// Package block decodes section-indexed chunk storage into per-position
// block names: the legacy nibble-packed layout and the modern
// palette/BlockStates layout, unified behind one iterator.
package block

// Block is one decoded block position, in world (not chunk-local)
// coordinates.
type Block struct {
	X, Y, Z int
	Name    string
}
