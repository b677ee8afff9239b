package builder

import (
	"github.com/specialistvlad/jumpgridgo/internal/geom"
	"github.com/specialistvlad/jumpgridgo/internal/node"
)

// createPlatformNode adds the platform under root and lays out its leaves.
func createPlatformNode(root *node.Node, p Platform, radius float64) *node.Node {
	platform := root.AddChild(node.Platform, p.Position)
	if p.Anchor != nil {
		platform.SetAnchor(p.Anchor)
	}
	if p.Motion != nil {
		platform.SetMotion(*p.Motion)
	}

	for _, offset := range leafOffsets(p.Bounds, radius) {
		platform.AddChild(offset.kind, offset.pos)
	}
	return platform
}

type leafSpot struct {
	kind node.Kind
	pos  geom.Vec2
}

// leafOffsets places the drop points one radius plus one unit past each side
// and the floor points across the top, all hovering the same height above it.
func leafOffsets(bounds geom.AABB, radius float64) []leafSpot {
	y := bounds.Min.Y - (radius + 1)
	width := bounds.Width()
	count := int(width/(radius*2) + 0.5)
	step := 0.0
	if count > 0 {
		step = (width - radius) / float64(count)
	}

	spots := make([]leafSpot, 0, count+3)
	spots = append(spots, leafSpot{kind: node.Drop, pos: geom.V(bounds.Min.X-(radius+1), y)})

	x := bounds.Min.X + radius/2
	for i := 0; i <= count; i++ {
		spots = append(spots, leafSpot{kind: node.Floor, pos: geom.V(x, y)})
		x += step
	}

	spots = append(spots, leafSpot{kind: node.Drop, pos: geom.V(bounds.Max.X+(radius+1), y)})
	return spots
}

// linkInternal joins consecutive leaves with walk edges both ways.
func linkInternal(platform *node.Node, penalties node.Penalties) int {
	leaves := platform.Children()
	for i := 1; i < len(leaves); i++ {
		prev, cur := leaves[i-1], leaves[i]
		cost := penalties.Cost(prev.LocalOffset().Dist(cur.LocalOffset()), node.Walk)
		cur.AddEdge(node.NewEdge(prev.Address(), cost, node.Walk))
		prev.AddEdge(node.NewEdge(cur.Address(), cost, node.Walk))
	}
	return 2 * max(len(leaves)-1, 0)
}
