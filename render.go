package viewport

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DrawWireframe strokes the triangle edges of every visible prop of s onto
// dst, projected through the surface camera. Edges with an endpoint outside
// the clipping range are skipped.
func DrawWireframe(dst *ebiten.Image, s Surface, strokeWidth float32) {
	_, h := s.Size()
	for _, p := range s.Props() {
		if !p.Visible || p.Mesh == nil {
			continue
		}
		drawPropEdges(dst, s, p, float64(h), strokeWidth)
	}
}

// DrawPropWireframe strokes a single prop, e.g. to highlight a pick result.
func DrawPropWireframe(dst *ebiten.Image, s Surface, p *Prop, strokeWidth float32) {
	if p == nil || p.Mesh == nil {
		return
	}
	_, h := s.Size()
	drawPropEdges(dst, s, p, float64(h), strokeWidth)
}

func drawPropEdges(dst *ebiten.Image, s Surface, p *Prop, height float64, strokeWidth float32) {
	verts := p.Mesh.Vertices
	screen := make([][2]float32, len(verts))
	valid := make([]bool, len(verts))
	for i, v := range verts {
		d, depth := WorldToDisplay(s, p.LocalToWorld(v))
		if depth < 0 || depth > 1 {
			continue
		}
		screen[i] = [2]float32{float32(d.X), float32(height - d.Y)}
		valid[i] = true
	}
	for _, e := range p.Mesh.Edges() {
		a, b := e[0], e[1]
		if a < 0 || b < 0 || a >= len(verts) || b >= len(verts) || !valid[a] || !valid[b] {
			continue
		}
		vector.StrokeLine(dst, screen[a][0], screen[a][1], screen[b][0], screen[b][1], strokeWidth, p.Color, true)
	}
}
