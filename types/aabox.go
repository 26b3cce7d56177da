package types

import "math"

// AABox is an axis aligned bounding box.
type AABox struct {
	Min Vec3
	Max Vec3
}

// Create an empty box. An empty box has its min corner at +MaxFloat32 and its
// max corner at -MaxFloat32 so that any union with a real box yields that box.
func EmptyAABox() AABox {
	return AABox{
		Min: Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Create a box from two corners.
func NewAABox(min, max Vec3) AABox {
	return AABox{Min: MinVec3(min, max), Max: MaxVec3(min, max)}
}

// Returns true if the box does not enclose any point.
func (b AABox) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Return the union of two boxes.
func (b AABox) Union(b2 AABox) AABox {
	return AABox{Min: MinVec3(b.Min, b2.Min), Max: MaxVec3(b.Max, b2.Max)}
}

// Grow the box so that it contains p.
func (b AABox) Extend(p Vec3) AABox {
	return AABox{Min: MinVec3(b.Min, p), Max: MaxVec3(b.Max, p)}
}

// Get the box center.
func (b AABox) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Get the box surface area. Empty boxes have zero area.
func (b AABox) SurfaceArea() float32 {
	if b.IsEmpty() {
		return 0
	}
	side := b.Max.Sub(b.Min)
	return 2 * (side[0]*side[1] + side[1]*side[2] + side[0]*side[2])
}

// Returns true if the two boxes overlap.
func (b AABox) Intersects(b2 AABox) bool {
	if b.IsEmpty() || b2.IsEmpty() {
		return false
	}
	for i := 0; i < 3; i++ {
		if b.Max[i] < b2.Min[i] || b2.Max[i] < b.Min[i] {
			return false
		}
	}
	return true
}

// Returns true if p lies inside the box (boundary included).
func (b AABox) Contains(p Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Transform all eight corners of the box and return the box enclosing them.
func (b AABox) Transform(m Mat4) AABox {
	if b.IsEmpty() {
		return b
	}

	out := EmptyAABox()
	for corner := 0; corner < 8; corner++ {
		p := b.Min
		if corner&1 != 0 {
			p[0] = b.Max[0]
		}
		if corner&2 != 0 {
			p[1] = b.Max[1]
		}
		if corner&4 != 0 {
			p[2] = b.Max[2]
		}
		out = out.Extend(m.MulPoint(p))
	}
	return out
}
