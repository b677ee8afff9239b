// internal/nodeid/types.go
package nodeid

// Missing is returned by SegmentAt when the requested depth lies beyond the
// end of the address.
const Missing = -1

// Address is the structured representation of a node's position in the
// hierarchical graph. It is modeled as a path of slot indices, one per level.
//
// The zero value is the empty address; it never identifies a node and is used
// as the "no origin / no destination" marker in path caches.
type Address struct {
	Path []int
}

// New builds an address from the given segments. The slice is copied.
func New(segments ...int) Address {
	path := make([]int, len(segments))
	copy(path, segments)
	return Address{Path: path}
}

// Root returns the single-segment address of a root node occupying the given slot.
func Root(slot int) Address {
	return Address{Path: []int{slot}}
}

// Child returns a new address one level deeper, ending with the given local slot.
func (a Address) Child(local int) Address {
	path := make([]int, len(a.Path), len(a.Path)+1)
	copy(path, a.Path)
	return Address{Path: append(path, local)}
}

// IsZero reports whether the address has no segments.
func (a Address) IsZero() bool {
	return len(a.Path) == 0
}
