package viewport

// Manager routes raw input events arriving on a Surface. Every event goes to
// the enabled mouse handlers first; unless one swallows it or interaction is
// locked, it then drives the camera or object gesture. Every entry point ends
// with a Render request on the surface.
//
// A Manager is bound to one surface for its lifetime and is not safe for
// concurrent use.
type Manager struct {
	surface   Surface
	cfg       Config
	modes     *modeSwitch
	locks     lockSet
	listeners listenerRegistry

	pressed [numMouseButtons]bool
	last    PixelCoord
	inside  bool
	debug   bool
}

// NewManager creates a Manager bound to s. Config fields that fail
// validation fall back to their defaults. It panics if s is nil.
func NewManager(s Surface, cfg Config) *Manager {
	if s == nil {
		panic("viewport: NewManager with nil surface")
	}
	m := &Manager{surface: s, cfg: sanitizeConfig(cfg)}
	m.modes = newModeSwitch(s, &m.cfg, m.listeners.notify)
	m.SetDebugMode(cfg.Debug)
	return m
}

// sanitizeConfig replaces invalid fields with defaults.
func sanitizeConfig(cfg Config) Config {
	def := DefaultConfig()
	if cfg.MotionFactor <= 0 {
		cfg.MotionFactor = def.MotionFactor
	}
	if cfg.DollyBase <= 1 {
		cfg.DollyBase = def.DollyBase
	}
	if cfg.WheelFactor <= 1 {
		cfg.WheelFactor = def.WheelFactor
	}
	if cfg.FlyDuration < 0 {
		cfg.FlyDuration = def.FlyDuration
	}
	return cfg
}

// Surface returns the bound surface.
func (m *Manager) Surface() Surface {
	return m.surface
}

// Config returns the effective configuration.
func (m *Manager) Config() Config {
	return m.cfg
}

// SetDebugMode enables or disables debug mode. When enabled, dispatch,
// swallow, lock and gesture transitions are logged to stderr and applier
// contract violations panic.
func (m *Manager) SetDebugMode(enabled bool) {
	m.debug = enabled
	m.cfg.Debug = enabled
	m.modes.setDebug(enabled)
}

// --- Mode ---

// SetInteractionMode switches between camera and object interaction. In
// object mode allowed, if non-nil, is the only prop gestures may move. Any
// gesture in progress ends first. Camera mode clears the allowed prop.
func (m *Manager) SetInteractionMode(mode InteractionMode, allowed *Prop) {
	if m.debug {
		debugLogf("mode %s", mode)
	}
	m.modes.setMode(mode, allowed, m.last)
}

// InteractionMode returns the current mode.
func (m *Manager) InteractionMode() InteractionMode {
	return m.modes.mode
}

// AllowedProp returns the object-mode allowed prop, or nil.
func (m *Manager) AllowedProp() *Prop {
	return m.modes.allowed
}

// GestureState returns the gesture in progress.
func (m *Manager) GestureState() GestureState {
	return m.modes.state
}

// GestureTarget returns the prop moved by the gesture in progress, or nil
// for camera gestures and when idle.
func (m *Manager) GestureTarget() *Prop {
	return m.modes.target
}

// --- Listeners ---

// AddInteractor registers a passive listener. Adding it twice is a no-op.
// Listeners that implement KeyPressHandler also receive KeyPress. l must be
// comparable; use InteractorFunc for plain functions.
func (m *Manager) AddInteractor(l Interactor) {
	if !m.listeners.addInteractor(l) {
		return
	}
	if m.debug {
		debugCheckListenerCount("interactors", len(m.listeners.interactors))
	}
}

// RemoveInteractor unregisters l. Removing an absent listener is a no-op.
func (m *Manager) RemoveInteractor(l Interactor) {
	m.listeners.removeInteractor(l)
}

// AddMouseHandler registers an active handler. Adding it twice is a no-op.
// Handlers that implement KeyPressHandler also receive KeyPress. h must be
// comparable; use MouseHandlerFunc for plain functions.
func (m *Manager) AddMouseHandler(h MouseHandler) {
	if !m.listeners.addHandler(h) {
		return
	}
	if m.debug {
		debugCheckListenerCount("mouse handlers", len(m.listeners.handlers))
	}
}

// RemoveMouseHandler unregisters h. Removing an absent handler is a no-op.
func (m *Manager) RemoveMouseHandler(h MouseHandler) {
	m.listeners.removeHandler(h)
}

// SetInteractorEnabled enables or disables a registered interactor without
// removing it.
func (m *Manager) SetInteractorEnabled(l Interactor, enabled bool) {
	m.listeners.setInteractorEnabled(l, enabled)
}

// SetMouseHandlerEnabled enables or disables a registered handler without
// removing it.
func (m *Manager) SetMouseHandlerEnabled(h MouseHandler, enabled bool) {
	m.listeners.setHandlerEnabled(h, enabled)
}

// --- Lock ---

// LockInteraction suppresses camera and object gestures until the returned
// key is released. Any gesture in progress ends first. Mouse handlers keep
// receiving events while locked.
func (m *Manager) LockInteraction() LockKey {
	m.modes.abort(m.last)
	k := m.locks.acquire()
	if m.debug {
		debugLogf("lock %d acquired (%d held)", k, m.locks.count())
		debugCheckLockCount(m.locks.count())
	}
	return k
}

// UnlockInteraction releases k and reports whether interaction is now
// unlocked. Releasing a key that is not held changes nothing.
func (m *Manager) UnlockInteraction(k LockKey) bool {
	held := m.locks.held(k)
	unlocked := m.locks.release(k)
	if m.debug {
		if held {
			debugLogf("lock %d released (%d held)", k, m.locks.count())
		} else {
			debugLogf("lock %d not held", k)
		}
	}
	return unlocked
}

// IsInteractionLocked reports whether any lock key is held.
func (m *Manager) IsInteractionLocked() bool {
	return m.locks.locked()
}

// --- State ---

// ButtonPressed reports whether b is down, as seen by this Manager.
func (m *Manager) ButtonPressed(b MouseButton) bool {
	if b >= numMouseButtons {
		return false
	}
	return m.pressed[b]
}

// LastPosition returns the pointer position of the most recent event.
func (m *Manager) LastPosition() PixelCoord {
	return m.last
}

// Inside reports whether the pointer is over the surface.
func (m *Manager) Inside() bool {
	return m.inside
}

// --- Event entry points ---

// LeftButtonDown reports a left button press.
func (m *Manager) LeftButtonDown(p PixelCoord, mods KeyModifiers) {
	m.buttonDown(MouseButtonLeft, p, mods)
}

// LeftButtonUp reports a left button release.
func (m *Manager) LeftButtonUp(p PixelCoord, mods KeyModifiers) {
	m.buttonUp(MouseButtonLeft, p, mods)
}

// MiddleButtonDown reports a middle button press.
func (m *Manager) MiddleButtonDown(p PixelCoord, mods KeyModifiers) {
	m.buttonDown(MouseButtonMiddle, p, mods)
}

// MiddleButtonUp reports a middle button release.
func (m *Manager) MiddleButtonUp(p PixelCoord, mods KeyModifiers) {
	m.buttonUp(MouseButtonMiddle, p, mods)
}

// RightButtonDown reports a right button press.
func (m *Manager) RightButtonDown(p PixelCoord, mods KeyModifiers) {
	m.buttonDown(MouseButtonRight, p, mods)
}

// RightButtonUp reports a right button release.
func (m *Manager) RightButtonUp(p PixelCoord, mods KeyModifiers) {
	m.buttonUp(MouseButtonRight, p, mods)
}

// ButtonDown is the button-generic form of LeftButtonDown and friends.
func (m *Manager) ButtonDown(b MouseButton, p PixelCoord, mods KeyModifiers) {
	m.buttonDown(b, p, mods)
}

// ButtonUp is the button-generic form of LeftButtonUp and friends.
func (m *Manager) ButtonUp(b MouseButton, p PixelCoord, mods KeyModifiers) {
	m.buttonUp(b, p, mods)
}

// WheelForward dollies toward the focus by notches steps. Non-positive
// counts are treated as one notch.
func (m *Manager) WheelForward(p PixelCoord, mods KeyModifiers, notches int) {
	m.wheel(EventWheelForward, p, mods, max(notches, 1))
}

// WheelBackward dollies away from the focus by notches steps. Non-positive
// counts are treated as one notch.
func (m *Manager) WheelBackward(p PixelCoord, mods KeyModifiers, notches int) {
	m.wheel(EventWheelBackward, p, mods, max(notches, 1))
}

// MouseMove reports a pointer move.
func (m *Manager) MouseMove(p PixelCoord, mods KeyModifiers) {
	m.last = p
	e := MouseEvent{Type: EventMove, Pos: p, Modifiers: mods}
	if m.forward(e) {
		if m.modes.state != Idle && !m.pressed[m.modes.button] {
			// The release was swallowed; end the gesture instead of
			// dragging with no button held.
			m.modes.abort(p)
		} else {
			m.modes.move(p)
		}
	}
	m.surface.Render()
}

// MouseEnter reports the pointer entering the surface. Every enabled
// handler and interactor is told, whatever the gesture or lock state.
func (m *Manager) MouseEnter(p PixelCoord) {
	m.crossing(EventEnter, MouseEntered, p)
}

// MouseLeave reports the pointer leaving the surface.
func (m *Manager) MouseLeave(p PixelCoord) {
	m.crossing(EventLeave, MouseLeft, p)
}

// KeyPress delivers a key press to every wired KeyPressHandler.
func (m *Manager) KeyPress(key string, mods KeyModifiers) {
	m.listeners.keyPress(KeyEvent{Key: key, Modifiers: mods})
	m.surface.Render()
}

func (m *Manager) buttonDown(b MouseButton, p PixelCoord, mods KeyModifiers) {
	if b >= numMouseButtons {
		return
	}
	m.pressed[b] = true
	m.last = p
	e := MouseEvent{Type: EventButtonDown, Pos: p, Button: b, Modifiers: mods}
	if m.forward(e) {
		m.modes.press(b, p, mods)
	}
	m.surface.Render()
}

func (m *Manager) buttonUp(b MouseButton, p PixelCoord, mods KeyModifiers) {
	if b >= numMouseButtons {
		return
	}
	m.pressed[b] = false
	m.last = p
	e := MouseEvent{Type: EventButtonUp, Pos: p, Button: b, Modifiers: mods}
	if m.forward(e) {
		m.modes.release(b, p)
	}
	m.surface.Render()
}

func (m *Manager) wheel(t EventType, p PixelCoord, mods KeyModifiers, notches int) {
	m.last = p
	e := MouseEvent{Type: t, Pos: p, Modifiers: mods, Notches: notches}
	if m.forward(e) {
		if t == EventWheelBackward {
			notches = -notches
		}
		m.modes.wheel(p, notches)
	}
	m.surface.Render()
}

// forward offers e to the mouse handlers and reports whether the default
// behaviour should run.
func (m *Manager) forward(e MouseEvent) bool {
	if m.listeners.dispatch(e) {
		if m.debug {
			debugLogf("%s at (%d, %d) swallowed by handler", e.Type, e.Pos.X, e.Pos.Y)
		}
		return false
	}
	if m.locks.locked() {
		if m.debug && e.Type != EventMove {
			debugLogf("%s at (%d, %d) suppressed by %d lock(s)", e.Type, e.Pos.X, e.Pos.Y, m.locks.count())
		}
		return false
	}
	return true
}

func (m *Manager) crossing(t EventType, it InteractionType, p PixelCoord) {
	m.last = p
	m.inside = t == EventEnter
	if m.debug {
		debugLogf("%s at (%d, %d)", it, p.X, p.Y)
	}
	m.listeners.broadcast(MouseEvent{Type: t, Pos: p})
	m.listeners.notify(InteractionEvent{Type: it, Gesture: m.modes.state, Pos: p})
	m.surface.Render()
}
