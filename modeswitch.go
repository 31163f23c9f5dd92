package viewport

import "math"

// objectOffset maps a camera lifecycle notification to its object variant.
const objectOffset = ObjectStarted - CameraStarted

// classifyGesture maps a pressed button and modifier keys to a gesture.
// Alt and Meta do not affect the result.
func classifyGesture(b MouseButton, mods KeyModifiers) GestureState {
	switch b {
	case MouseButtonMiddle:
		return Dollying
	case MouseButtonRight:
		return Spinning
	}
	shift := mods&ModShift != 0
	ctrl := mods&ModCtrl != 0
	switch {
	case shift && ctrl:
		return Spinning
	case shift:
		return Panning
	case ctrl:
		return Dollying
	default:
		return Rotating
	}
}

// ongoingType returns the camera notification sent on each move of g.
func ongoingType(g GestureState) InteractionType {
	switch g {
	case Panning:
		return CameraPanning
	case Dollying:
		return CameraDollying
	case Spinning:
		return CameraSpinning
	default:
		return CameraRotating
	}
}

// modeSwitch owns both transform appliers and selects one per gesture. In
// object mode a press that does not land on an eligible prop runs the
// gesture on the camera.
type modeSwitch struct {
	surface Surface
	cfg     *Config
	notify  func(InteractionEvent)
	debug   bool

	mode    InteractionMode
	allowed *Prop

	state    GestureState
	button   MouseButton // button that started the gesture
	wheeling bool        // a wheel dolly is being dispatched
	canceled bool        // abort arrived during the wheel dolly
	target   *Prop       // nil for camera gestures
	active   transformApplier

	camera cameraApplier
	object objectApplier
}

func newModeSwitch(s Surface, cfg *Config, notify func(InteractionEvent)) *modeSwitch {
	return &modeSwitch{
		surface: s,
		cfg:     cfg,
		notify:  notify,
		camera:  cameraApplier{surface: s, cfg: cfg},
		object:  objectApplier{surface: s, cfg: cfg},
	}
}

func (m *modeSwitch) setDebug(enabled bool) {
	m.debug = enabled
	m.camera.debug = enabled
	m.object.debug = enabled
}

// setMode switches the interaction mode, ending any gesture in progress.
func (m *modeSwitch) setMode(mode InteractionMode, allowed *Prop, pos PixelCoord) {
	m.abort(pos)
	m.mode = mode
	if mode == CameraInteraction {
		allowed = nil
	}
	m.allowed = allowed
}

// eligibleTarget returns the prop an object gesture at pos would move, or
// nil when the gesture falls back to the camera. The first prop under the
// pointer must be the allowed prop when one is set; props behind it are not
// considered.
func (m *modeSwitch) eligibleTarget(pos PixelCoord) *Prop {
	if m.mode != ObjectInteraction {
		return nil
	}
	res := PickProp(m.surface, pos)
	if !res.Hit() {
		return nil
	}
	if m.allowed != nil && res.Prop != m.allowed {
		return nil
	}
	return res.Prop
}

func (m *modeSwitch) applierFor(target *Prop) transformApplier {
	if target != nil {
		m.object.setTarget(target)
		return &m.object
	}
	return &m.camera
}

func (m *modeSwitch) emit(t InteractionType, g GestureState, target *Prop, pos PixelCoord) {
	if target != nil {
		t += objectOffset
	}
	if m.debug {
		debugLogf("%s (%s) at (%d, %d)", t, g, pos.X, pos.Y)
	}
	if m.notify != nil {
		m.notify(InteractionEvent{Type: t, Gesture: g, Target: target, Pos: pos})
	}
}

// press starts a gesture bound to b. Presses while a gesture is in progress
// are ignored.
func (m *modeSwitch) press(b MouseButton, pos PixelCoord, mods KeyModifiers) {
	if m.state != Idle {
		return
	}
	g := classifyGesture(b, mods)
	m.target = m.eligibleTarget(pos)
	m.active = m.applierFor(m.target)
	m.button = b
	m.state = g
	m.active.begin(pos)
	m.emit(CameraStarted, g, m.target, pos)
}

// move applies the gesture in progress and reports whether there was one.
func (m *modeSwitch) move(pos PixelCoord) bool {
	if m.state == Idle {
		return false
	}
	g, target := m.state, m.target
	apply(m.active, g, pos)
	m.emit(ongoingType(g), g, target, pos)
	if m.state == Idle {
		// A listener aborted the gesture.
		return true
	}
	m.emit(CameraMoving, g, target, pos)
	return true
}

// release ends the gesture if b is the button that started it.
func (m *modeSwitch) release(b MouseButton, pos PixelCoord) {
	if m.state == Idle || b != m.button {
		return
	}
	m.finish(pos)
}

// abort ends any gesture in progress with its stop notification. A wheel
// dolly being dispatched is canceled before its step runs.
func (m *modeSwitch) abort(pos PixelCoord) {
	if m.wheeling {
		m.canceled = true
		return
	}
	if m.state == Idle {
		return
	}
	m.finish(pos)
}

func (m *modeSwitch) finish(pos PixelCoord) {
	g, target := m.state, m.target
	m.active.end()
	m.state = Idle
	m.target = nil
	m.active = nil
	m.object.setTarget(nil)
	m.emit(CameraStopped, g, target, pos)
}

// wheel runs a complete dolly gesture of notches steps: positive notches
// move toward the focus. Ignored while a drag gesture is in progress. If a
// listener locks or switches mode on the start notification the step is
// skipped and only the stop follows.
func (m *modeSwitch) wheel(pos PixelCoord, notches int) {
	if m.state != Idle || m.wheeling || notches == 0 {
		return
	}
	factor := math.Pow(m.cfg.WheelFactor, float64(notches))
	target := m.eligibleTarget(pos)
	a := m.applierFor(target)
	m.wheeling, m.canceled = true, false
	defer func() { m.wheeling, m.canceled = false, false }()

	m.emit(CameraStarted, Dollying, target, pos)
	if !m.canceled {
		a.dollyStep(factor)
		m.emit(CameraDollying, Dollying, target, pos)
	}
	m.emit(CameraStopped, Dollying, target, pos)
	m.object.setTarget(nil)
}
