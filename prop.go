package viewport

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// --- ID counter ---

// propIDCounter is a plain counter (no atomic; interaction is single-threaded).
var propIDCounter uint32

func nextPropID() uint32 {
	propIDCounter++
	return propIDCounter
}

// --- Prop ---

// Prop is a drawable object placed in the scene by a world transform matrix.
// Props are created and destroyed by the caller; surfaces and the interaction
// engine only hold references.
type Prop struct {
	// Identity
	ID   uint32
	Name string

	// Geometry in local space.
	Mesh *Mesh

	// Color is the flat shading colour used by the software Scene.
	Color color.RGBA

	// Visible props are drawn and considered by picking.
	Visible bool
	// Pickable props can be returned by picking. A visible, non-pickable prop
	// does not occlude pickable props behind it.
	Pickable bool

	// UserData is an arbitrary value for the caller.
	UserData any

	transform mgl64.Mat4
}

// NewProp creates a visible, pickable prop with an identity transform.
func NewProp(name string, mesh *Mesh) *Prop {
	return &Prop{
		ID:        nextPropID(),
		Name:      name,
		Mesh:      mesh,
		Color:     color.RGBA{R: 200, G: 200, B: 200, A: 255},
		Visible:   true,
		Pickable:  true,
		transform: mgl64.Ident4(),
	}
}

// Bounds returns the world-space bounding box of the prop.
func (p *Prop) Bounds() Box {
	if p.Mesh == nil {
		return EmptyBox()
	}
	return p.Mesh.Bounds().Transform(p.transform)
}

// Center returns the centre of the world-space bounding box.
func (p *Prop) Center() mgl64.Vec3 {
	b := p.Bounds()
	if b.Empty() {
		return p.Position()
	}
	return b.Center()
}

// IntersectRay returns the nearest hit of a world-space ray with the prop's
// triangles: the ray parameter and the cell (triangle) index.
func (p *Prop) IntersectRay(r Ray) (t float64, cell int, ok bool) {
	if p.Mesh == nil || len(p.Mesh.Triangles) == 0 {
		return 0, -1, false
	}
	if p.transform.Det() == 0 {
		return 0, -1, false
	}
	local := r.Transform(p.transform.Inv())
	if _, _, hit := local.IntersectBox(p.Mesh.Bounds()); !hit {
		return 0, -1, false
	}
	best := math.Inf(1)
	cell = -1
	for i := range p.Mesh.Triangles {
		a, b, c, valid := p.Mesh.Triangle(i)
		if !valid {
			continue
		}
		if tt, hit := local.IntersectTriangle(a, b, c); hit && tt < best {
			best = tt
			cell = i
		}
	}
	if cell < 0 {
		return 0, -1, false
	}
	return best, cell, true
}
