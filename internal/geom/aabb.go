package geom

import "math"

// AABB is an axis aligned box given by its minimum and maximum corners.
type AABB struct {
	Min Vec2 `json:"min"`
	Max Vec2 `json:"max"`
}

// Box builds the AABB of the given size centered on center.
func Box(center Vec2, width, height float64) AABB {
	half := Vec2{width / 2, height / 2}
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

func (b AABB) Width() float64  { return b.Max.X - b.Min.X }
func (b AABB) Height() float64 { return b.Max.Y - b.Min.Y }
func (b AABB) Center() Vec2    { return b.Min.Add(b.Max).Scale(0.5) }

// Translate shifts the box by d.
func (b AABB) Translate(d Vec2) AABB {
	return AABB{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Contains reports whether p lies inside or on the border of the box.
func (b AABB) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// ClosestPoint clamps p onto the box.
func (b AABB) ClosestPoint(p Vec2) Vec2 {
	return Vec2{
		X: math.Max(b.Min.X, math.Min(p.X, b.Max.X)),
		Y: math.Max(b.Min.Y, math.Min(p.Y, b.Max.Y)),
	}
}

// Overlaps reports whether two boxes intersect with positive area.
func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X < o.Max.X && b.Max.X > o.Min.X && b.Min.Y < o.Max.Y && b.Max.Y > o.Min.Y
}

// CircleHits reports whether a circle of radius r at c touches the box. A
// center inside the box always counts.
func (b AABB) CircleHits(c Vec2, r float64) bool {
	return b.ClosestPoint(c).Dist(c) <= r
}
