package viewport

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func assertNear(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if !approxEqual(got, want, eps) {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, eps)
	}
}

func assertVecNear(t *testing.T, name string, got, want mgl64.Vec3, eps float64) {
	t.Helper()
	if got.Sub(want).Len() > eps {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, eps)
	}
}

// newBoxScene returns an 800x600 scene with a 2x2x2 box at the origin and
// the camera on +Z at distance 5, already rendered once.
func newBoxScene() (*Scene, *Prop) {
	s := NewScene(800, 600)
	box := NewProp("box", NewBoxMesh(2, 2, 2))
	s.AddProp(box)
	s.Camera().SetPosition(mgl64.Vec3{0, 0, 5})
	s.Render()
	return s, box
}

// newTwoBoxScene returns an 800x600 scene with unit boxes a (left) and b
// (right) and the camera on +Z at distance 6.
func newTwoBoxScene() (s *Scene, a, b *Prop) {
	s = NewScene(800, 600)
	a = NewProp("a", NewBoxMesh(1, 1, 1))
	a.SetPosition(mgl64.Vec3{-1.5, 0, 0})
	b = NewProp("b", NewBoxMesh(1, 1, 1))
	b.SetPosition(mgl64.Vec3{1.5, 0, 0})
	s.AddProp(a)
	s.AddProp(b)
	s.Camera().SetPosition(mgl64.Vec3{0, 0, 6})
	s.Render()
	return s, a, b
}

var centerPixel = PixelCoord{X: 400, Y: 300}

func sinDeg(d float64) float64 { return math.Sin(mgl64.DegToRad(d)) }
func cosDeg(d float64) float64 { return math.Cos(mgl64.DegToRad(d)) }
