package viewport

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PickResult describes what lies under a pixel. A nil Prop means nothing was
// hit; Ray and Pixel are still set for in-bounds pixels.
type PickResult struct {
	Prop *Prop
	// Cell is the index of the hit triangle in Prop.Mesh, or -1.
	Cell int
	// Position is the world-space hit point.
	Position mgl64.Vec3
	// Ray runs from the near clipping plane (t = 0) to the far clipping
	// plane (t = 1) through the pixel centre.
	Ray Ray
	// Distance is the distance from the camera position to Position.
	Distance float64
	Pixel    PixelCoord
}

// Hit reports whether a prop was picked.
func (r PickResult) Hit() bool {
	return r.Prop != nil
}

// surfaceMatrices returns the view and projection matrices of s.
func surfaceMatrices(s Surface) (view, proj mgl64.Mat4, width, height int) {
	width, height = s.Size()
	cam := s.Camera()
	return cam.ViewMatrix(), cam.ProjectionMatrix(aspectRatio(width, height)), width, height
}

// pixelRay unprojects display position d at the near and far planes. The
// ray is parameterized so t in [0, 1] spans the clipping range.
func pixelRay(view, proj mgl64.Mat4, width, height int, d DisplayCoord) (Ray, bool) {
	if width <= 0 || height <= 0 {
		return Ray{}, false
	}
	near, err := mgl64.UnProject(mgl64.Vec3{d.X, d.Y, 0}, view, proj, 0, 0, width, height)
	if err != nil {
		return Ray{}, false
	}
	far, err := mgl64.UnProject(mgl64.Vec3{d.X, d.Y, 1}, view, proj, 0, 0, width, height)
	if err != nil {
		return Ray{}, false
	}
	return Ray{Origin: near, Direction: far.Sub(near)}, true
}

// castRay returns the nearest visible prop hit by r within the clipping
// range. accept, if non-nil, filters candidate props.
func castRay(props []*Prop, r Ray, accept func(*Prop) bool) (hit *Prop, t float64, cell int) {
	best := math.Inf(1)
	cell = -1
	for _, p := range props {
		if p == nil || !p.Visible {
			continue
		}
		if accept != nil && !accept(p) {
			continue
		}
		tt, c, ok := p.IntersectRay(r)
		if !ok || tt > 1 || tt >= best {
			continue
		}
		best, hit, cell = tt, p, c
	}
	if hit == nil {
		return nil, 0, -1
	}
	return hit, best, cell
}

// PixelRay returns the ray from the near to the far clipping plane through
// the centre of pixel p. Pixels outside the surface still produce a ray; a
// zero-size surface yields the zero Ray.
func PixelRay(s Surface, p PixelCoord) Ray {
	view, proj, w, h := surfaceMatrices(s)
	r, _ := pixelRay(view, proj, w, h, p.Display(h))
	return r
}

// PickProp returns the first visible, pickable prop under pixel p.
// Out-of-bounds pixels and empty scenes pick nothing.
func PickProp(s Surface, p PixelCoord) PickResult {
	return pick(s, p, s.Props(), func(q *Prop) bool { return q.Pickable })
}

// PickPropFrom is PickProp restricted to candidates: props outside the set
// are neither returned nor treated as occluders.
func PickPropFrom(s Surface, p PixelCoord, candidates []*Prop) PickResult {
	return pick(s, p, candidates, func(q *Prop) bool { return q.Pickable })
}

func pick(s Surface, p PixelCoord, props []*Prop, accept func(*Prop) bool) PickResult {
	res := PickResult{Cell: -1, Pixel: p}
	view, proj, w, h := surfaceMatrices(s)
	if !p.In(w, h) {
		return res
	}
	r, ok := pixelRay(view, proj, w, h, p.Display(h))
	if !ok {
		return res
	}
	res.Ray = r
	hit, t, cell := castRay(props, r, accept)
	if hit == nil {
		return res
	}
	res.Prop = hit
	res.Cell = cell
	res.Position = r.At(t)
	res.Distance = res.Position.Sub(s.Camera().Position()).Len()
	return res
}

// PickWorldPosition returns the world point under pixel p. It always
// succeeds: the depth buffer is unprojected where a prop covers the pixel,
// and the far clipping plane point along the pixel ray is returned for
// background and out-of-bounds pixels. A zero-size surface returns the
// camera focus.
func PickWorldPosition(s Surface, p PixelCoord) mgl64.Vec3 {
	view, proj, w, h := surfaceMatrices(s)
	d := p.Display(h)
	r, ok := pixelRay(view, proj, w, h, d)
	if !ok {
		return s.Camera().Focus()
	}
	if !p.In(w, h) {
		return r.At(1)
	}
	depth := s.Snapshot().Depth(p)
	if depth >= 1 {
		return r.At(1)
	}
	world, err := mgl64.UnProject(mgl64.Vec3{d.X, d.Y, depth}, view, proj, 0, 0, w, h)
	if err != nil {
		return r.At(1)
	}
	return world
}

// PickWorldPositionOn returns the point where the ray through pixel p hits
// prop. It reports false, leaving the point zero, when prop is not hit.
// Other props do not occlude prop.
func PickWorldPositionOn(s Surface, p PixelCoord, prop *Prop) (mgl64.Vec3, bool) {
	if prop == nil {
		return mgl64.Vec3{}, false
	}
	res := pick(s, p, []*Prop{prop}, nil)
	if !res.Hit() {
		return mgl64.Vec3{}, false
	}
	return res.Position, true
}

// PickWorldPositionProportional is PickWorldPosition for a
// resolution-independent position. Fractions outside [0, 1] are treated as
// out-of-bounds pixels, not clamped to the edge.
func PickWorldPositionProportional(s Surface, q ProportionalCoord) mgl64.Vec3 {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return s.Camera().Focus()
	}
	if q.X < 0 || q.X > 1 || q.Y < 0 || q.Y > 1 {
		p := PixelCoord{X: int(math.Floor(q.X * float64(w))), Y: int(math.Floor(q.Y * float64(h)))}
		return PickWorldPosition(s, p)
	}
	return PickWorldPosition(s, q.Pixel(w, h))
}

// WorldToDisplay projects a world point to display coordinates and returns
// its normalized window depth.
func WorldToDisplay(s Surface, world mgl64.Vec3) (DisplayCoord, float64) {
	view, proj, w, h := surfaceMatrices(s)
	win := mgl64.Project(world, view, proj, 0, 0, w, h)
	return DisplayCoord{X: win[0], Y: win[1]}, win[2]
}

// DisplayToWorld unprojects display position d at the given normalized
// window depth. A zero-size surface or singular camera returns the focus.
func DisplayToWorld(s Surface, d DisplayCoord, depth float64) mgl64.Vec3 {
	view, proj, w, h := surfaceMatrices(s)
	if w <= 0 || h <= 0 {
		return s.Camera().Focus()
	}
	world, err := mgl64.UnProject(mgl64.Vec3{d.X, d.Y, depth}, view, proj, 0, 0, w, h)
	if err != nil {
		return s.Camera().Focus()
	}
	return world
}

// ProjectToPixel returns the top-left pixel containing the projection of a
// world point. The pixel may lie outside the surface.
func ProjectToPixel(s Surface, world mgl64.Vec3) PixelCoord {
	_, h := s.Size()
	d, _ := WorldToDisplay(s, world)
	return d.Pixel(h)
}

// ProjectToProportional returns the projection of a world point as a
// fraction of the surface size, top-left origin. Values are outside [0, 1]
// for points off the surface.
func ProjectToProportional(s Surface, world mgl64.Vec3) ProportionalCoord {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return ProportionalCoord{}
	}
	d, _ := WorldToDisplay(s, world)
	return ProportionalCoord{
		X: d.X / float64(w),
		Y: (float64(h) - d.Y) / float64(h),
	}
}

// PointedAt reports whether the first prop picked at p is exactly prop.
func PointedAt(s Surface, p PixelCoord, prop *Prop) bool {
	if prop == nil {
		return false
	}
	return PickProp(s, p).Prop == prop
}
