package viewport

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// minNearRatio bounds the near plane as a fraction of the far plane when the
// clipping range is reset.
const minNearRatio = 0.001

// flyAnim holds active fly-to tweens for the camera position and focus.
type flyAnim struct {
	position [3]*gween.Tween
	focus    [3]*gween.Tween
	done     [6]bool
}

// cameraState is the orientation triple plus parallel scale, captured at
// gesture start and restored before each accumulated transform.
type cameraState struct {
	position, focus, up mgl64.Vec3
	parallelScale       float64
}

// Camera is a perspective or parallel camera looking from a position at a
// focal point. Setters keep the cached view matrix consistent.
type Camera struct {
	position mgl64.Vec3
	focus    mgl64.Vec3
	up       mgl64.Vec3

	// viewAngle is the vertical field of view in degrees.
	viewAngle     float64
	parallel      bool
	parallelScale float64
	near, far     float64

	viewMatrix mgl64.Mat4
	dirty      bool

	fly *flyAnim
}

// NewCamera creates a perspective camera at (0, 0, 1) looking at the origin
// with +Y up and a 30 degree view angle.
func NewCamera() *Camera {
	return &Camera{
		position:      mgl64.Vec3{0, 0, 1},
		focus:         mgl64.Vec3{0, 0, 0},
		up:            mgl64.Vec3{0, 1, 0},
		viewAngle:     30,
		parallelScale: 1,
		near:          0.01,
		far:           1000,
		dirty:         true,
	}
}

// Position returns the camera position.
func (c *Camera) Position() mgl64.Vec3 { return c.position }

// Focus returns the focal point.
func (c *Camera) Focus() mgl64.Vec3 { return c.focus }

// Up returns the view-up vector.
func (c *Camera) Up() mgl64.Vec3 { return c.up }

// ViewAngle returns the vertical field of view in degrees.
func (c *Camera) ViewAngle() float64 { return c.viewAngle }

// Parallel reports whether the camera uses a parallel projection.
func (c *Camera) Parallel() bool { return c.parallel }

// ParallelScale returns half the viewport height in world units for a
// parallel projection.
func (c *Camera) ParallelScale() float64 { return c.parallelScale }

// ClippingRange returns the near and far plane distances.
func (c *Camera) ClippingRange() (near, far float64) { return c.near, c.far }

// SetPosition moves the camera without changing the focal point.
func (c *Camera) SetPosition(p mgl64.Vec3) {
	c.position = p
	c.dirty = true
}

// SetFocus moves the focal point without changing the position.
func (c *Camera) SetFocus(f mgl64.Vec3) {
	c.focus = f
	c.dirty = true
}

// SetUp sets the view-up vector. It is normalized; a zero vector is ignored.
func (c *Camera) SetUp(u mgl64.Vec3) {
	if u.Len() == 0 {
		return
	}
	c.up = u.Normalize()
	c.dirty = true
}

// SetViewAngle sets the vertical field of view in degrees, clamped to
// (0, 179].
func (c *Camera) SetViewAngle(deg float64) {
	c.viewAngle = math.Max(1e-3, math.Min(deg, 179))
}

// SetParallel switches between parallel and perspective projection.
func (c *Camera) SetParallel(parallel bool) {
	c.parallel = parallel
}

// SetParallelScale sets the parallel projection half-height. Non-positive
// values are ignored.
func (c *Camera) SetParallelScale(s float64) {
	if s > 0 {
		c.parallelScale = s
	}
}

// SetClippingRange sets the near and far plane distances. The near plane is
// kept positive and in front of the far plane.
func (c *Camera) SetClippingRange(near, far float64) {
	if far <= 0 {
		return
	}
	if near <= 0 || near >= far {
		near = far * minNearRatio
	}
	c.near, c.far = near, far
}

// Distance returns the distance from the position to the focal point.
func (c *Camera) Distance() float64 {
	return c.focus.Sub(c.position).Len()
}

// DirectionOfProjection returns the unit vector from position to focus.
func (c *Camera) DirectionOfProjection() mgl64.Vec3 {
	d := c.focus.Sub(c.position)
	if d.Len() == 0 {
		return mgl64.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

// Right returns the unit vector pointing to the right of the view.
func (c *Camera) Right() mgl64.Vec3 {
	r := c.DirectionOfProjection().Cross(c.up)
	if r.Len() == 0 {
		return mgl64.Vec3{1, 0, 0}
	}
	return r.Normalize()
}

// Azimuth rotates the camera position about the view-up vector centred at
// the focal point.
func (c *Camera) Azimuth(deg float64) {
	q := mgl64.QuatRotate(mgl64.DegToRad(deg), c.up.Normalize())
	c.position = c.focus.Add(q.Rotate(c.position.Sub(c.focus)))
	c.dirty = true
}

// Elevation rotates the camera position about the view's right axis centred
// at the focal point. The view-up vector rotates with it, so elevations past
// the pole keep a continuous orientation.
func (c *Camera) Elevation(deg float64) {
	axis := c.DirectionOfProjection().Mul(-1).Cross(c.up)
	if axis.Len() == 0 {
		return
	}
	q := mgl64.QuatRotate(mgl64.DegToRad(deg), axis.Normalize())
	c.position = c.focus.Add(q.Rotate(c.position.Sub(c.focus)))
	c.up = q.Rotate(c.up).Normalize()
	c.dirty = true
}

// Roll rotates the view-up vector about the direction of projection.
func (c *Camera) Roll(deg float64) {
	q := mgl64.QuatRotate(mgl64.DegToRad(deg), c.DirectionOfProjection())
	c.up = q.Rotate(c.up).Normalize()
	c.dirty = true
}

// Dolly moves the camera toward the focal point by factor: the new distance
// is the current distance divided by factor. The focal point is never
// crossed. Non-positive factors are ignored.
func (c *Camera) Dolly(factor float64) {
	if factor <= 0 {
		return
	}
	d := c.Distance() / factor
	c.position = c.focus.Sub(c.DirectionOfProjection().Mul(d))
	c.dirty = true
}

// Zoom divides the parallel scale by factor. Non-positive factors are
// ignored.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.parallelScale /= factor
}

// OrthogonalizeViewUp makes the view-up vector perpendicular to the
// direction of projection.
func (c *Camera) OrthogonalizeViewUp() {
	dop := c.DirectionOfProjection()
	right := dop.Cross(c.up)
	if right.Len() < 1e-12 {
		return
	}
	c.up = right.Cross(dop).Normalize()
	c.dirty = true
}

// ResetClippingRange fits the near and far planes around b.
func (c *Camera) ResetClippingRange(b Box) {
	if b.Empty() {
		return
	}
	dop := c.DirectionOfProjection()
	near, far := math.Inf(1), math.Inf(-1)
	for _, corner := range b.Corners() {
		d := corner.Sub(c.position).Dot(dop)
		near = math.Min(near, d)
		far = math.Max(far, d)
	}
	// Pad so surfaces lying exactly on the bounds are not clipped.
	pad := math.Max((far-near)*0.01, 1e-6)
	near -= pad
	far += pad
	if far <= 0 {
		far = c.Distance() + pad
	}
	if near < far*minNearRatio {
		near = far * minNearRatio
	}
	c.near, c.far = near, far
}

// ViewMatrix returns the world-to-eye matrix, recomputed only when dirty.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	if c.dirty {
		c.viewMatrix = mgl64.LookAtV(c.position, c.focus, c.up)
		c.dirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the eye-to-clip matrix for the given aspect ratio
// (width / height).
func (c *Camera) ProjectionMatrix(aspect float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	if c.parallel {
		s := c.parallelScale
		return mgl64.Ortho(-s*aspect, s*aspect, -s, s, c.near, c.far)
	}
	return mgl64.Perspective(mgl64.DegToRad(c.viewAngle), aspect, c.near, c.far)
}

// MarkDirty forces a recomputation of the view matrix.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

func (c *Camera) state() cameraState {
	return cameraState{
		position:      c.position,
		focus:         c.focus,
		up:            c.up,
		parallelScale: c.parallelScale,
	}
}

func (c *Camera) restore(s cameraState) {
	c.position = s.position
	c.focus = s.focus
	c.up = s.up
	c.parallelScale = s.parallelScale
	c.dirty = true
}

// --- Animation ---

// FlyTo animates the camera to the given focal point and position over
// duration seconds. A nil easeFn uses ease.OutCubic.
func (c *Camera) FlyTo(focus, position mgl64.Vec3, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	if duration <= 0 {
		c.CancelFly()
		c.focus = focus
		c.position = position
		c.OrthogonalizeViewUp()
		c.dirty = true
		return
	}
	a := &flyAnim{}
	for i := 0; i < 3; i++ {
		a.position[i] = gween.New(float32(c.position[i]), float32(position[i]), duration, easeFn)
		a.focus[i] = gween.New(float32(c.focus[i]), float32(focus[i]), duration, easeFn)
	}
	c.fly = a
}

// Flying reports whether a FlyTo animation is in progress.
func (c *Camera) Flying() bool {
	return c.fly != nil
}

// CancelFly stops a FlyTo animation where it is.
func (c *Camera) CancelFly() {
	c.fly = nil
}

// update advances the fly-to animation by dt seconds.
func (c *Camera) update(dt float32) {
	a := c.fly
	if a == nil {
		return
	}
	for i := 0; i < 3; i++ {
		if !a.done[i] {
			v, done := a.position[i].Update(dt)
			c.position[i] = float64(v)
			a.done[i] = done
		}
		if !a.done[3+i] {
			v, done := a.focus[i].Update(dt)
			c.focus[i] = float64(v)
			a.done[3+i] = done
		}
	}
	c.OrthogonalizeViewUp()
	c.dirty = true
	for _, d := range a.done {
		if !d {
			return
		}
	}
	c.fly = nil
}
