package viewport

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Scene is a software render surface: a camera, a list of props and a pixel
// size. Snapshots ray-cast the props to produce colour and depth, so picking
// works without a GPU. Draw renders a wireframe onto an ebiten image.
type Scene struct {
	camera *Camera
	props  []*Prop
	width  int
	height int

	// Background is the colour of pixels not covered by a prop.
	Background color.RGBA

	// OnRender, if set, is called at the end of every Render.
	OnRender func()

	renders int
}

// NewScene creates an empty scene of the given pixel size with a default
// camera.
func NewScene(width, height int) *Scene {
	return &Scene{
		camera:     NewCamera(),
		width:      max(width, 0),
		height:     max(height, 0),
		Background: color.RGBA{R: 26, G: 26, B: 38, A: 255},
	}
}

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Size returns the scene size in pixels.
func (s *Scene) Size() (width, height int) {
	return s.width, s.height
}

// Resize changes the pixel size. Negative sizes are treated as zero.
func (s *Scene) Resize(width, height int) {
	s.width = max(width, 0)
	s.height = max(height, 0)
}

// Props returns the scene props. The returned slice MUST NOT be mutated.
func (s *Scene) Props() []*Prop {
	return s.props
}

// AddProp appends p to the scene. Adding a prop twice is a no-op.
func (s *Scene) AddProp(p *Prop) {
	if p == nil {
		return
	}
	for _, q := range s.props {
		if q == p {
			return
		}
	}
	s.props = append(s.props, p)
}

// RemoveProp removes p from the scene. Removing an absent prop is a no-op.
func (s *Scene) RemoveProp(p *Prop) {
	for i, q := range s.props {
		if q == p {
			copy(s.props[i:], s.props[i+1:])
			s.props[len(s.props)-1] = nil
			s.props = s.props[:len(s.props)-1]
			return
		}
	}
}

// VisibleBounds returns the union of the bounds of all visible props.
func (s *Scene) VisibleBounds() Box {
	b := EmptyBox()
	for _, p := range s.props {
		if p.Visible {
			b = b.Union(p.Bounds())
		}
	}
	return b
}

// Render refits the camera clipping range to the visible props and counts
// the frame.
func (s *Scene) Render() {
	s.camera.ResetClippingRange(s.VisibleBounds())
	s.renders++
	if s.OnRender != nil {
		s.OnRender()
	}
}

// RenderCount returns how many times Render has been called.
func (s *Scene) RenderCount() int {
	return s.renders
}

// Update advances the camera fly-to animation by one tick.
func (s *Scene) Update() {
	if !s.camera.Flying() {
		return
	}
	dt := float32(1.0 / float64(ebiten.TPS()))
	s.camera.update(dt)
	s.Render()
}

// ResetCamera points the camera at the centre of the visible props and moves
// it back along the current view direction until they fill the view.
func (s *Scene) ResetCamera() {
	focus, position, scale, ok := s.framing()
	if !ok {
		return
	}
	s.camera.CancelFly()
	s.camera.SetFocus(focus)
	s.camera.SetPosition(position)
	s.camera.SetParallelScale(scale)
	s.camera.OrthogonalizeViewUp()
	s.Render()
}

// ResetCameraAnimated is ResetCamera as a fly-to over duration seconds.
func (s *Scene) ResetCameraAnimated(duration float32) {
	focus, position, scale, ok := s.framing()
	if !ok {
		return
	}
	s.camera.SetParallelScale(scale)
	s.camera.FlyTo(focus, position, duration, ease.InOutQuad)
}

func (s *Scene) framing() (focus, position mgl64.Vec3, scale float64, ok bool) {
	b := s.VisibleBounds()
	if b.Empty() {
		return focus, position, 0, false
	}
	radius := b.Diagonal() / 2
	if radius == 0 {
		radius = 0.5
	}
	half := mgl64.DegToRad(s.camera.ViewAngle()) / 2
	distance := radius / math.Sin(half)
	focus = b.Center()
	position = focus.Sub(s.camera.DirectionOfProjection().Mul(distance))
	return focus, position, radius, true
}

// Snapshot captures the current camera and prop transforms. Pixels are
// ray-cast on first access and cached.
func (s *Scene) Snapshot() Snapshot {
	w, h := s.width, s.height
	cam := s.camera
	f := &frameSnapshot{
		width:      w,
		height:     h,
		view:       cam.ViewMatrix(),
		proj:       cam.ProjectionMatrix(aspectRatio(w, h)),
		background: s.Background,
		samples:    make(map[int]pixelSample),
	}
	f.props = make([]*Prop, 0, len(s.props))
	for _, p := range s.props {
		if !p.Visible {
			continue
		}
		cp := *p
		f.props = append(f.props, &cp)
	}
	return f
}

// Draw fills screen with the background and strokes every visible prop's
// wireframe.
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(s.Background)
	DrawWireframe(screen, s, 1)
}

// frameSnapshot is the Snapshot produced by Scene.
type frameSnapshot struct {
	width, height int
	view, proj    mgl64.Mat4
	props         []*Prop
	background    color.RGBA

	samples map[int]pixelSample
}

type pixelSample struct {
	depth float64
	color color.RGBA
}

func (f *frameSnapshot) Size() (width, height int) {
	return f.width, f.height
}

func (f *frameSnapshot) Depth(p PixelCoord) float64 {
	px, ok := f.sample(p)
	if !ok {
		return 1
	}
	return px.depth
}

func (f *frameSnapshot) Color(p PixelCoord) color.RGBA {
	px, ok := f.sample(p)
	if !ok {
		return color.RGBA{}
	}
	return px.color
}

// sample ray-casts pixel p on first access.
func (f *frameSnapshot) sample(p PixelCoord) (pixelSample, bool) {
	if !p.In(f.width, f.height) {
		return pixelSample{}, false
	}
	i := p.Y*f.width + p.X
	if px, ok := f.samples[i]; ok {
		return px, true
	}
	px := pixelSample{depth: 1, color: f.background}
	if r, ok := pixelRay(f.view, f.proj, f.width, f.height, p.Display(f.height)); ok {
		if hit, t, cell := castRay(f.props, r, nil); hit != nil {
			win := mgl64.Project(r.At(t), f.view, f.proj, 0, 0, f.width, f.height)
			px.depth = mgl64.Clamp(win[2], 0, 1)
			px.color = shade(hit, cell, r)
		}
	}
	f.samples[i] = px
	return px, true
}

// shade returns the prop colour darkened by the angle between the ray and
// the hit triangle.
func shade(p *Prop, cell int, r Ray) color.RGBA {
	a, b, c, ok := p.Mesh.Triangle(cell)
	if !ok {
		return p.Color
	}
	a, b, c = p.LocalToWorld(a), p.LocalToWorld(b), p.LocalToWorld(c)
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 || r.Direction.Len() == 0 {
		return p.Color
	}
	k := 0.3 + 0.7*math.Abs(n.Normalize().Dot(r.Direction.Normalize()))
	return color.RGBA{
		R: uint8(float64(p.Color.R) * k),
		G: uint8(float64(p.Color.G) * k),
		B: uint8(float64(p.Color.B) * k),
		A: p.Color.A,
	}
}

func aspectRatio(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float64(width) / float64(height)
}
