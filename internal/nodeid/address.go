// internal/nodeid/address.go
package nodeid

import (
	"slices"
	"strconv"
	"strings"
)

// String serializes the Address into its canonical path string representation.
func (a Address) String() string {
	var sb strings.Builder
	for i, segment := range a.Path {
		if i > 0 {
			sb.WriteRune('.')
		}
		sb.WriteString(strconv.Itoa(segment))
	}
	return sb.String()
}

// Key returns a string usable as a map key. It is the canonical string form.
func (a Address) Key() string {
	return a.String()
}

// Equal reports whether both addresses have the same length and segments.
func (a Address) Equal(other Address) bool {
	return slices.Equal(a.Path, other.Path)
}

// Depth is the number of parent levels above the addressed node. The root has
// depth 0 and the empty address has depth -1.
func (a Address) Depth() int {
	return len(a.Path) - 1
}

// Reaches reports whether the address has a segment at the given depth.
func (a Address) Reaches(depth int) bool {
	return depth >= 0 && len(a.Path) > depth
}

// SegmentAt returns the slot index at the given depth, or Missing when the
// address is not that deep.
func (a Address) SegmentAt(depth int) int {
	if !a.Reaches(depth) {
		return Missing
	}
	return a.Path[depth]
}

// Local returns the node's slot inside its immediate parent, or Missing for
// the empty address.
func (a Address) Local() int {
	return a.SegmentAt(a.Depth())
}

// Parent returns the address with its last segment dropped.
func (a Address) Parent() Address {
	if len(a.Path) == 0 {
		return Address{}
	}
	return New(a.Path[:len(a.Path)-1]...)
}

// CroppedTo returns the prefix holding at most length segments.
func (a Address) CroppedTo(length int) Address {
	if length <= 0 {
		return Address{}
	}
	if length > len(a.Path) {
		length = len(a.Path)
	}
	return New(a.Path[:length]...)
}

// EqualAtDepth reports whether both addresses agree on every segment from 0
// through depth inclusive. A segment missing on one side only compares equal
// to a segment missing on the other. A negative depth never matches.
func (a Address) EqualAtDepth(other Address, depth int) bool {
	if depth < 0 {
		return false
	}
	for i := 0; i <= depth; i++ {
		if a.SegmentAt(i) != other.SegmentAt(i) {
			return false
		}
	}
	return true
}

// Contains reports whether other lies inside the subtree rooted at a,
// including a itself.
func (a Address) Contains(other Address) bool {
	if a.IsZero() || len(other.Path) < len(a.Path) {
		return false
	}
	return a.EqualAtDepth(other, a.Depth())
}

// SameParent reports whether both addresses are siblings under one parent.
func (a Address) SameParent(other Address) bool {
	return a.Parent().Equal(other.Parent())
}
