package viewport

// injectKind identifies a queued synthetic event.
type injectKind uint8

const (
	injectDown injectKind = iota
	injectMove
	injectUp
	injectWheel
	injectEnter
	injectLeave
	injectKey
)

// syntheticEvent represents a single injected input event. Positions are
// surface pixels, so scripts match what is seen in snapshots.
type syntheticEvent struct {
	kind    injectKind
	pos     PixelCoord
	button  MouseButton
	mods    KeyModifiers
	notches int // signed; positive is forward
	key     string
}

// InjectPress queues a button press at p. Queued events are consumed one
// per Update, in place of real mouse input.
func (in *EbitenInput) InjectPress(p PixelCoord, b MouseButton, mods KeyModifiers) {
	in.injectQueue = append(in.injectQueue, syntheticEvent{kind: injectDown, pos: p, button: b, mods: mods})
}

// InjectMove queues a pointer move to p.
func (in *EbitenInput) InjectMove(p PixelCoord, mods KeyModifiers) {
	in.injectQueue = append(in.injectQueue, syntheticEvent{kind: injectMove, pos: p, mods: mods})
}

// InjectRelease queues a button release at p.
func (in *EbitenInput) InjectRelease(p PixelCoord, b MouseButton, mods KeyModifiers) {
	in.injectQueue = append(in.injectQueue, syntheticEvent{kind: injectUp, pos: p, button: b, mods: mods})
}

// InjectWheel queues a wheel turn of notches at p; negative notches turn
// backward.
func (in *EbitenInput) InjectWheel(p PixelCoord, mods KeyModifiers, notches int) {
	if notches == 0 {
		return
	}
	in.injectQueue = append(in.injectQueue, syntheticEvent{kind: injectWheel, pos: p, mods: mods, notches: notches})
}

// InjectEnter queues the pointer entering the surface at p.
func (in *EbitenInput) InjectEnter(p PixelCoord) {
	in.injectQueue = append(in.injectQueue, syntheticEvent{kind: injectEnter, pos: p})
}

// InjectLeave queues the pointer leaving the surface at p.
func (in *EbitenInput) InjectLeave(p PixelCoord) {
	in.injectQueue = append(in.injectQueue, syntheticEvent{kind: injectLeave, pos: p})
}

// InjectKey queues a key press.
func (in *EbitenInput) InjectKey(key string, mods KeyModifiers) {
	in.injectQueue = append(in.injectQueue, syntheticEvent{kind: injectKey, key: key, mods: mods})
}

// InjectDrag queues a full drag sequence: press at from, frames-2 linearly
// interpolated moves ending at to, and a release at to. The sequence
// consumes frames frames. Minimum frames is 2 (press + release).
func (in *EbitenInput) InjectDrag(from, to PixelCoord, b MouseButton, mods KeyModifiers, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectPress(from, b, mods)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		in.InjectMove(PixelCoord{
			X: from.X + int(float64(to.X-from.X)*t),
			Y: from.Y + int(float64(to.Y-from.Y)*t),
		}, mods)
	}
	in.InjectRelease(to, b, mods)
}

// Pending returns the number of queued synthetic events.
func (in *EbitenInput) Pending() int {
	return len(in.injectQueue)
}

// processInjected pops one event from the inject queue and delivers
// it. Returns true if an event was consumed (real input should be skipped).
func (in *EbitenInput) processInjected(mods KeyModifiers) bool {
	if len(in.injectQueue) == 0 {
		return false
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	if evt.mods == 0 {
		evt.mods = mods
	}
	in.deliver(evt)
	return true
}

func (in *EbitenInput) deliver(evt syntheticEvent) {
	m := in.manager
	if evt.button >= numMouseButtons {
		return
	}
	switch evt.kind {
	case injectDown:
		in.down[evt.button] = true
		m.ButtonDown(evt.button, evt.pos, evt.mods)
	case injectMove:
		m.MouseMove(evt.pos, evt.mods)
	case injectUp:
		in.down[evt.button] = false
		m.ButtonUp(evt.button, evt.pos, evt.mods)
	case injectWheel:
		if evt.notches > 0 {
			m.WheelForward(evt.pos, evt.mods, evt.notches)
		} else {
			m.WheelBackward(evt.pos, evt.mods, -evt.notches)
		}
	case injectEnter:
		in.inside = true
		m.MouseEnter(evt.pos)
	case injectLeave:
		in.inside = false
		m.MouseLeave(evt.pos)
	case injectKey:
		m.KeyPress(evt.key, evt.mods)
	}
	if evt.kind != injectKey {
		in.lastPos = evt.pos
		in.havePos = true
	}
}
