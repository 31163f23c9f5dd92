package viewport

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ebitenButtons maps ebiten mouse buttons to Manager buttons.
var ebitenButtons = [numMouseButtons]ebiten.MouseButton{
	MouseButtonLeft:   ebiten.MouseButtonLeft,
	MouseButtonMiddle: ebiten.MouseButtonMiddle,
	MouseButtonRight:  ebiten.MouseButtonRight,
}

// EbitenInput polls ebiten input state once per tick and feeds the events
// to a Manager. Call Update from the game's Update method.
type EbitenInput struct {
	manager *Manager

	// Origin is the screen position of the surface's top-left pixel.
	Origin image.Point

	inside   bool
	down     [numMouseButtons]bool
	lastPos  PixelCoord
	havePos  bool
	wheelAcc float64
	keyBuf   []ebiten.Key

	injectQueue []syntheticEvent
}

// NewEbitenInput creates an input adapter for m.
func NewEbitenInput(m *Manager) *EbitenInput {
	return &EbitenInput{manager: m}
}

// Manager returns the Manager events are delivered to.
func (in *EbitenInput) Manager() *Manager {
	return in.manager
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// pointerFrame is one tick of polled input.
type pointerFrame struct {
	pos      PixelCoord
	mods     KeyModifiers
	pressed  [numMouseButtons]bool // just pressed this tick
	released [numMouseButtons]bool // just released this tick
	wheelY   float64
	keys     []string
}

// Update processes one tick of input. A queued synthetic event, if any,
// replaces real mouse input for this tick.
func (in *EbitenInput) Update() {
	mods := readModifiers()
	if in.processInjected(mods) {
		return
	}
	cx, cy := ebiten.CursorPosition()
	f := pointerFrame{
		pos:  PixelCoord{X: cx - in.Origin.X, Y: cy - in.Origin.Y},
		mods: mods,
	}
	for b, eb := range ebitenButtons {
		f.pressed[b] = inpututil.IsMouseButtonJustPressed(eb)
		f.released[b] = inpututil.IsMouseButtonJustReleased(eb)
	}
	_, f.wheelY = ebiten.Wheel()
	in.keyBuf = inpututil.AppendJustPressedKeys(in.keyBuf[:0])
	for _, k := range in.keyBuf {
		f.keys = append(f.keys, k.String())
	}
	in.process(f)
}

// process delivers the events implied by one tick of input. Presses
// outside the surface are ignored but releases are always delivered so
// gestures can end off-surface. Fractional wheel deltas accumulate until
// they make a whole notch.
func (in *EbitenInput) process(f pointerFrame) {
	m := in.manager
	p := f.pos
	w, h := m.Surface().Size()
	inside := p.In(w, h)

	if inside && !in.inside {
		in.inside = true
		m.MouseEnter(p)
	}

	if !in.havePos || p != in.lastPos {
		if inside || in.anyDown() {
			m.MouseMove(p, f.mods)
		}
		in.lastPos = p
		in.havePos = true
	}

	for b := MouseButton(0); b < numMouseButtons; b++ {
		switch {
		case f.pressed[b] && inside && !in.down[b]:
			in.down[b] = true
			m.ButtonDown(b, p, f.mods)
		case f.released[b] && in.down[b]:
			in.down[b] = false
			m.ButtonUp(b, p, f.mods)
		}
	}

	in.wheelAcc += f.wheelY
	notches := int(in.wheelAcc)
	in.wheelAcc -= float64(notches)
	if inside {
		switch {
		case notches > 0:
			m.WheelForward(p, f.mods, notches)
		case notches < 0:
			m.WheelBackward(p, f.mods, -notches)
		}
		for _, k := range f.keys {
			m.KeyPress(k, f.mods)
		}
	}

	if !inside && in.inside {
		in.inside = false
		m.MouseLeave(p)
	}
}

func (in *EbitenInput) anyDown() bool {
	for _, d := range in.down {
		if d {
			return true
		}
	}
	return false
}
