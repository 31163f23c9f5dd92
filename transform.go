package viewport

import "github.com/go-gl/mathgl/mgl64"

// rotationAbout returns the matrix rotating by angle degrees about axis
// through center: Translate(center) * Rotate(axis) * Translate(-center).
// A zero axis yields the identity.
func rotationAbout(center, axis mgl64.Vec3, degrees float64) mgl64.Mat4 {
	if axis.Len() == 0 || degrees == 0 {
		return mgl64.Ident4()
	}
	rot := mgl64.HomogRotate3D(mgl64.DegToRad(degrees), axis.Normalize())
	return mgl64.Translate3D(center[0], center[1], center[2]).
		Mul4(rot).
		Mul4(mgl64.Translate3D(-center[0], -center[1], -center[2]))
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// --- Transform property setters ---

// Transform returns the prop's world transform matrix.
func (p *Prop) Transform() mgl64.Mat4 {
	return p.transform
}

// SetTransform replaces the prop's world transform matrix.
func (p *Prop) SetTransform(m mgl64.Mat4) {
	p.transform = m
}

// Position returns the translation part of the transform.
func (p *Prop) Position() mgl64.Vec3 {
	return p.transform.Col(3).Vec3()
}

// SetPosition replaces the translation part of the transform.
func (p *Prop) SetPosition(v mgl64.Vec3) {
	p.transform.SetCol(3, v.Vec4(1))
}

// Translate moves the prop by v in world space.
func (p *Prop) Translate(v mgl64.Vec3) {
	p.transform = mgl64.Translate3D(v[0], v[1], v[2]).Mul4(p.transform)
}

// RotateAbout rotates the prop by degrees about a world-space axis through
// center.
func (p *Prop) RotateAbout(center, axis mgl64.Vec3, degrees float64) {
	p.transform = rotationAbout(center, axis, degrees).Mul4(p.transform)
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to the prop's local space.
func (p *Prop) WorldToLocal(w mgl64.Vec3) mgl64.Vec3 {
	return transformPoint(p.transform.Inv(), w)
}

// LocalToWorld converts a local-space point to world space.
func (p *Prop) LocalToWorld(l mgl64.Vec3) mgl64.Vec3 {
	return transformPoint(p.transform, l)
}
