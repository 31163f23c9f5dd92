package viewport

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// rayEpsilon rejects near-parallel triangle hits and self-intersections.
const rayEpsilon = 1e-9

// Ray is a half-line in world space. Direction is not required to be unit
// length; parameters returned by intersection tests are in units of
// Direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// DistanceTo returns the distance from p to the infinite line through r.
func (r Ray) DistanceTo(p mgl64.Vec3) float64 {
	d := r.Direction
	l := d.Len()
	if l == 0 {
		return p.Sub(r.Origin).Len()
	}
	return p.Sub(r.Origin).Cross(d).Len() / l
}

// Transform maps the ray through an affine matrix. Parameters along the
// transformed ray match parameters along r.
func (r Ray) Transform(m mgl64.Mat4) Ray {
	return Ray{
		Origin:    m.Mul4x1(r.Origin.Vec4(1)).Vec3(),
		Direction: m.Mul4x1(r.Direction.Vec4(0)).Vec3(),
	}
}

// IntersectTriangle returns the ray parameter of the hit with triangle abc
// using the Möller–Trumbore test. Both faces are hit.
func (r Ray) IntersectTriangle(a, b, c mgl64.Vec3) (float64, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if det > -rayEpsilon && det < rayEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectBox runs the slab test against b and returns the entry and exit
// parameters. tmin may be negative when the origin is inside the box.
func (r Ray) IntersectBox(b Box) (tmin, tmax float64, ok bool) {
	if b.Empty() {
		return 0, 0, false
	}
	tmin = math.Inf(-1)
	tmax = math.Inf(1)
	for i := 0; i < 3; i++ {
		o, d := r.Origin[i], r.Direction[i]
		if d == 0 {
			if o < b.Min[i] || o > b.Max[i] {
				return 0, 0, false
			}
			continue
		}
		t1 := (b.Min[i] - o) / d
		t2 := (b.Max[i] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, 0, false
		}
	}
	return tmin, tmax, tmax >= 0
}

// Box is an axis-aligned bounding box. The zero value is a degenerate box at
// the origin; use EmptyBox for an accumulator.
type Box struct {
	Min, Max mgl64.Vec3
}

// EmptyBox returns a box that contains nothing and grows with Extend.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// Empty reports whether the box contains no points.
func (b Box) Empty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Extend returns b grown to contain p.
func (b Box) Extend(p mgl64.Vec3) Box {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	if o.Empty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Center returns the midpoint of the box.
func (b Box) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Diagonal returns the length of the box diagonal.
func (b Box) Diagonal() float64 {
	if b.Empty() {
		return 0
	}
	return b.Max.Sub(b.Min).Len()
}

// Corners returns the eight corners of the box.
func (b Box) Corners() [8]mgl64.Vec3 {
	var c [8]mgl64.Vec3
	for i := 0; i < 8; i++ {
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				c[i][axis] = b.Max[axis]
			} else {
				c[i][axis] = b.Min[axis]
			}
		}
	}
	return c
}

// Transform returns the axis-aligned box enclosing b mapped through m.
func (b Box) Transform(m mgl64.Mat4) Box {
	if b.Empty() {
		return b
	}
	out := EmptyBox()
	for _, c := range b.Corners() {
		out = out.Extend(m.Mul4x1(c.Vec4(1)).Vec3())
	}
	return out
}
