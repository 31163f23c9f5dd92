package viewport

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// trackballDegrees is the rotation, in degrees per MotionFactor, produced by
// dragging across the full width or height of the surface.
const trackballDegrees = 20

// transformApplier applies the four drag gestures to one target. Every
// operation takes the current pointer position and recomputes the transform
// from the state captured by begin, so the result depends only on the
// displacement accumulated since the gesture started.
type transformApplier interface {
	begin(start PixelCoord)
	rotate(pos PixelCoord)
	pan(pos PixelCoord)
	dolly(pos PixelCoord)
	spin(pos PixelCoord)
	end()
	// dollyStep applies a single dolly by factor outside of a drag.
	dollyStep(factor float64)
}

// apply dispatches a gesture to the matching applier operation.
func apply(a transformApplier, g GestureState, pos PixelCoord) {
	switch g {
	case Rotating:
		a.rotate(pos)
	case Panning:
		a.pan(pos)
	case Dollying:
		a.dolly(pos)
	case Spinning:
		a.spin(pos)
	}
}

// dollyFactor converts a vertical drag from startY to y (top-left pixels)
// into a multiplicative dolly factor. Dragging up moves toward the focus.
func dollyFactor(cfg *Config, startY, y, height int) float64 {
	if height <= 0 {
		return 1
	}
	half := float64(height) / 2
	return math.Pow(cfg.DollyBase, cfg.MotionFactor*float64(startY-y)/half)
}

// spinAngle returns the angle in degrees swept from start to pos around
// centre, measured counterclockwise in display space.
func spinAngle(start, pos PixelCoord, cx, cy float64, height int) float64 {
	s := start.Display(height)
	p := pos.Display(height)
	a0 := math.Atan2(s.Y-cy, s.X-cx)
	a1 := math.Atan2(p.Y-cy, p.X-cx)
	return mgl64.RadToDeg(a1 - a0)
}

// --- Camera applier ---

// cameraApplier moves the surface camera.
type cameraApplier struct {
	surface Surface
	cfg     *Config
	debug   bool

	start PixelCoord
	saved cameraState
	began bool
}

func (a *cameraApplier) camera(op string) *Camera {
	if a.surface == nil || a.surface.Camera() == nil {
		if a.debug {
			debugAssert(false, "camera %s without a surface camera", op)
		}
		return nil
	}
	return a.surface.Camera()
}

func (a *cameraApplier) begin(start PixelCoord) {
	cam := a.camera("begin")
	if cam == nil {
		return
	}
	cam.CancelFly()
	a.start = start
	a.saved = cam.state()
	a.began = true
}

// prepare restores the gesture start state and returns the camera and
// surface size, or nil when the applier cannot operate.
func (a *cameraApplier) prepare(op string) (*Camera, int, int) {
	cam := a.camera(op)
	if cam == nil {
		return nil, 0, 0
	}
	if !a.began {
		if a.debug {
			debugAssert(false, "camera %s before begin", op)
		}
		return nil, 0, 0
	}
	w, h := a.surface.Size()
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	cam.restore(a.saved)
	return cam, w, h
}

func (a *cameraApplier) rotate(pos PixelCoord) {
	cam, w, h := a.prepare("rotate")
	if cam == nil {
		return
	}
	dx := float64(pos.X - a.start.X)
	dy := float64(pos.Y - a.start.Y)
	cam.Azimuth(-dx * trackballDegrees / float64(w) * a.cfg.MotionFactor)
	cam.Elevation(dy * trackballDegrees / float64(h) * a.cfg.MotionFactor)
	cam.OrthogonalizeViewUp()
}

func (a *cameraApplier) pan(pos PixelCoord) {
	cam, _, h := a.prepare("pan")
	if cam == nil {
		return
	}
	_, depth := WorldToDisplay(a.surface, cam.Focus())
	from := DisplayToWorld(a.surface, a.start.Display(h), depth)
	to := DisplayToWorld(a.surface, pos.Display(h), depth)
	motion := from.Sub(to)
	cam.SetFocus(cam.Focus().Add(motion))
	cam.SetPosition(cam.Position().Add(motion))
}

func (a *cameraApplier) dolly(pos PixelCoord) {
	cam, _, h := a.prepare("dolly")
	if cam == nil {
		return
	}
	a.dollyCamera(cam, dollyFactor(a.cfg, a.start.Y, pos.Y, h))
}

func (a *cameraApplier) dollyCamera(cam *Camera, factor float64) {
	if cam.Parallel() {
		cam.Zoom(factor)
		return
	}
	cam.Dolly(factor)
}

func (a *cameraApplier) spin(pos PixelCoord) {
	cam, w, h := a.prepare("spin")
	if cam == nil {
		return
	}
	cam.Roll(spinAngle(a.start, pos, float64(w)/2, float64(h)/2, h))
	cam.OrthogonalizeViewUp()
}

func (a *cameraApplier) end() {
	a.began = false
}

func (a *cameraApplier) dollyStep(factor float64) {
	cam := a.camera("dolly step")
	if cam == nil {
		return
	}
	cam.CancelFly()
	a.dollyCamera(cam, factor)
}

// --- Object applier ---

// objectApplier transforms a single target prop, viewed through the surface
// camera.
type objectApplier struct {
	surface Surface
	cfg     *Config
	debug   bool

	target *Prop
	start  PixelCoord
	saved  mgl64.Mat4
	center mgl64.Vec3
	began  bool
}

func (a *objectApplier) setTarget(p *Prop) {
	a.target = p
}

func (a *objectApplier) prop(op string) *Prop {
	if a.target == nil || a.surface == nil {
		if a.debug {
			debugAssert(false, "object %s without a target prop", op)
		}
		return nil
	}
	return a.target
}

func (a *objectApplier) begin(start PixelCoord) {
	p := a.prop("begin")
	if p == nil {
		return
	}
	a.start = start
	a.saved = p.Transform()
	a.center = p.Center()
	a.began = true
}

func (a *objectApplier) prepare(op string) (*Prop, int, int) {
	p := a.prop(op)
	if p == nil {
		return nil, 0, 0
	}
	if !a.began {
		if a.debug {
			debugAssert(false, "object %s before begin", op)
		}
		return nil, 0, 0
	}
	w, h := a.surface.Size()
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	p.SetTransform(a.saved)
	return p, w, h
}

func (a *objectApplier) rotate(pos PixelCoord) {
	p, w, h := a.prepare("rotate")
	if p == nil {
		return
	}
	cam := a.surface.Camera()
	dx := float64(pos.X - a.start.X)
	dy := float64(pos.Y - a.start.Y)
	aboutUp := dx * trackballDegrees / float64(w) * a.cfg.MotionFactor
	aboutRight := dy * trackballDegrees / float64(h) * a.cfg.MotionFactor
	m := rotationAbout(a.center, cam.Up(), aboutUp).
		Mul4(rotationAbout(a.center, cam.Right(), aboutRight))
	p.SetTransform(m.Mul4(a.saved))
}

func (a *objectApplier) pan(pos PixelCoord) {
	p, _, h := a.prepare("pan")
	if p == nil {
		return
	}
	_, depth := WorldToDisplay(a.surface, a.center)
	from := DisplayToWorld(a.surface, a.start.Display(h), depth)
	to := DisplayToWorld(a.surface, pos.Display(h), depth)
	p.Translate(to.Sub(from))
}

func (a *objectApplier) dolly(pos PixelCoord) {
	p, _, h := a.prepare("dolly")
	if p == nil {
		return
	}
	a.dollyProp(p, dollyFactor(a.cfg, a.start.Y, pos.Y, h))
}

// dollyProp moves p along the camera's focus-to-position line by
// (factor - 1) times its length, mirroring the camera dolly.
func (a *objectApplier) dollyProp(p *Prop, factor float64) {
	cam := a.surface.Camera()
	motion := cam.Position().Sub(cam.Focus()).Mul(factor - 1)
	p.Translate(motion)
}

func (a *objectApplier) spin(pos PixelCoord) {
	p, _, h := a.prepare("spin")
	if p == nil {
		return
	}
	cam := a.surface.Camera()
	c, _ := WorldToDisplay(a.surface, a.center)
	angle := spinAngle(a.start, pos, c.X, c.Y, h)
	axis := cam.Position().Sub(a.center)
	if cam.Parallel() || axis.Len() == 0 {
		axis = cam.DirectionOfProjection().Mul(-1)
	}
	p.RotateAbout(a.center, axis, angle)
}

func (a *objectApplier) end() {
	a.began = false
}

func (a *objectApplier) dollyStep(factor float64) {
	p := a.prop("dolly step")
	if p == nil {
		return
	}
	a.dollyProp(p, factor)
}
