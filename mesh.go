package viewport

import "github.com/go-gl/mathgl/mgl64"

// Mesh is an indexed triangle mesh in a prop's local coordinate space.
// Each triangle is a cell; cell indices reported by picking index Triangles.
type Mesh struct {
	Vertices  []mgl64.Vec3
	Triangles [][3]int

	bounds      Box
	boundsDirty bool
}

// NewMesh creates a mesh from vertices and triangle indices. Indices out of
// range are skipped during intersection tests.
func NewMesh(vertices []mgl64.Vec3, triangles [][3]int) *Mesh {
	return &Mesh{
		Vertices:    vertices,
		Triangles:   triangles,
		boundsDirty: true,
	}
}

// NewBoxMesh creates an axis-aligned box centred on the origin with the given
// edge lengths. The box has 12 triangles.
func NewBoxMesh(sx, sy, sz float64) *Mesh {
	hx, hy, hz := sx/2, sy/2, sz/2
	v := []mgl64.Vec3{
		{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {-hx, hy, -hz},
		{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz},
	}
	t := [][3]int{
		{4, 5, 6}, {4, 6, 7}, // +Z
		{1, 0, 3}, {1, 3, 2}, // -Z
		{5, 1, 2}, {5, 2, 6}, // +X
		{0, 4, 7}, {0, 7, 3}, // -X
		{7, 6, 2}, {7, 2, 3}, // +Y
		{0, 1, 5}, {0, 5, 4}, // -Y
	}
	return NewMesh(v, t)
}

// NewPlaneMesh creates a w by h rectangle in the XY plane facing +Z,
// centred on the origin.
func NewPlaneMesh(w, h float64) *Mesh {
	hw, hh := w/2, h/2
	v := []mgl64.Vec3{
		{-hw, -hh, 0}, {hw, -hh, 0}, {hw, hh, 0}, {-hw, hh, 0},
	}
	return NewMesh(v, [][3]int{{0, 1, 2}, {0, 2, 3}})
}

// Bounds returns the local-space bounding box of the mesh.
func (m *Mesh) Bounds() Box {
	if m.boundsDirty {
		b := EmptyBox()
		for _, p := range m.Vertices {
			b = b.Extend(p)
		}
		m.bounds = b
		m.boundsDirty = false
	}
	return m.bounds
}

// MarkDirty forces the bounds to be recomputed. Call it after editing
// Vertices directly.
func (m *Mesh) MarkDirty() {
	m.boundsDirty = true
}

// Triangle returns the vertices of cell i.
func (m *Mesh) Triangle(i int) (a, b, c mgl64.Vec3, ok bool) {
	if i < 0 || i >= len(m.Triangles) {
		return a, b, c, false
	}
	t := m.Triangles[i]
	n := len(m.Vertices)
	if t[0] < 0 || t[0] >= n || t[1] < 0 || t[1] >= n || t[2] < 0 || t[2] >= n {
		return a, b, c, false
	}
	return m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]], true
}

// Edges returns each unique triangle edge once, as vertex index pairs.
func (m *Mesh) Edges() [][2]int {
	seen := make(map[[2]int]bool, len(m.Triangles)*3)
	edges := make([][2]int, 0, len(m.Triangles)*3/2)
	for _, t := range m.Triangles {
		for k := 0; k < 3; k++ {
			a, b := t[k], t[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			e := [2]int{a, b}
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
	}
	return edges
}
