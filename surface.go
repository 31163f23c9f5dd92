package viewport

import "image/color"

// Surface is the render surface an interaction Manager is bound to. It owns
// the camera, the props and the pixel buffers. Scene is the software
// implementation shipped with this package; hosts embedding another renderer
// implement Surface over it.
type Surface interface {
	// Camera returns the surface camera. It is never nil.
	Camera() *Camera
	// Size returns the surface size in pixels.
	Size() (width, height int)
	// Props returns the props in draw order. The returned slice MUST NOT be
	// mutated.
	Props() []*Prop
	AddProp(p *Prop)
	RemoveProp(p *Prop)
	// Snapshot captures the colour and depth buffers for the current camera
	// and prop transforms. Later changes do not affect a taken snapshot.
	Snapshot() Snapshot
	// Render requests a redraw. The surface may adjust the camera clipping
	// range to fit the visible props.
	Render()
	Resize(width, height int)
}

// Snapshot is an immutable capture of a surface's pixel buffers, addressed
// with top-left pixel coordinates.
type Snapshot interface {
	Size() (width, height int)
	// Depth returns the normalized window depth in [0, 1] at p. 1 means
	// background. Out-of-bounds pixels return 1.
	Depth(p PixelCoord) float64
	// Color returns the colour at p. Out-of-bounds pixels return the zero
	// colour.
	Color(p PixelCoord) color.RGBA
}
