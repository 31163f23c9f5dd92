package viewport

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// scriptStep represents a single action in an interaction script.
type scriptStep struct {
	Action  string `json:"action"`
	Label   string `json:"label,omitempty"`
	X       int    `json:"x,omitempty"`
	Y       int    `json:"y,omitempty"`
	FromX   int    `json:"fromX,omitempty"`
	FromY   int    `json:"fromY,omitempty"`
	ToX     int    `json:"toX,omitempty"`
	ToY     int    `json:"toY,omitempty"`
	Frames  int    `json:"frames,omitempty"`
	Button  string `json:"button,omitempty"`
	Mods    string `json:"mods,omitempty"`
	Notches int    `json:"notches,omitempty"`
	Key     string `json:"key,omitempty"`
	Mode    string `json:"mode,omitempty"`
	Prop    string `json:"prop,omitempty"`
}

// scriptFile is the top-level JSON structure for an interaction script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script is a parsed interaction script: a sequence of input events, lock
// operations, mode switches and snapshots. Run replays it directly against a
// Manager; Runner replays it through an EbitenInput one frame at a time.
//
// Actions: press, release, move, drag, wheel, enter, leave, key, lock,
// unlock, mode, snapshot, wait.
type Script struct {
	// SnapshotDir receives PNGs for snapshot steps. Snapshot steps are
	// skipped when empty.
	SnapshotDir string

	steps []scriptStep
	locks map[string]LockKey
}

// ParseScript parses and validates a JSON interaction script.
func ParseScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	return &Script{steps: f.Steps, locks: make(map[string]LockKey)}, nil
}

// LoadScript reads and parses a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	return ParseScript(data)
}

// Len returns the number of steps.
func (s *Script) Len() int {
	return len(s.steps)
}

func (st scriptStep) validate() error {
	if _, err := parseButton(st.Button); err != nil {
		return err
	}
	if _, err := parseModifiers(st.Mods); err != nil {
		return err
	}
	switch st.Action {
	case "press", "release", "move", "drag", "enter", "leave", "snapshot", "wait":
	case "wheel":
		if st.Notches == 0 {
			return fmt.Errorf("wheel: notches must be non-zero")
		}
	case "key":
		if st.Key == "" {
			return fmt.Errorf("key: missing key")
		}
	case "lock", "unlock":
		if st.Label == "" {
			return fmt.Errorf("%s: missing label", st.Action)
		}
	case "mode":
		if _, err := parseMode(st.Mode); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

func parseButton(s string) (MouseButton, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return MouseButtonLeft, nil
	case "middle":
		return MouseButtonMiddle, nil
	case "right":
		return MouseButtonRight, nil
	}
	return 0, fmt.Errorf("unknown button %q", s)
}

// parseModifiers parses a "+"-separated modifier list such as "shift+ctrl".
func parseModifiers(s string) (KeyModifiers, error) {
	var mods KeyModifiers
	if s == "" || s == "none" {
		return 0, nil
	}
	for _, part := range strings.Split(strings.ToLower(s), "+") {
		switch strings.TrimSpace(part) {
		case "shift":
			mods |= ModShift
		case "ctrl", "control":
			mods |= ModCtrl
		case "alt":
			mods |= ModAlt
		case "meta", "cmd":
			mods |= ModMeta
		default:
			return 0, fmt.Errorf("unknown modifier %q", part)
		}
	}
	return mods, nil
}

func parseMode(s string) (InteractionMode, error) {
	switch s {
	case "camera":
		return CameraInteraction, nil
	case "object":
		return ObjectInteraction, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// scriptDriver delivers input events either immediately or through an
// injection queue.
type scriptDriver interface {
	press(p PixelCoord, b MouseButton, mods KeyModifiers)
	move(p PixelCoord, mods KeyModifiers)
	release(p PixelCoord, b MouseButton, mods KeyModifiers)
	drag(from, to PixelCoord, b MouseButton, mods KeyModifiers, frames int)
	wheel(p PixelCoord, mods KeyModifiers, notches int)
	enter(p PixelCoord)
	leave(p PixelCoord)
	key(k string, mods KeyModifiers)
}

// managerDriver calls Manager entry points directly.
type managerDriver struct{ m *Manager }

func (d managerDriver) press(p PixelCoord, b MouseButton, mods KeyModifiers) {
	d.m.ButtonDown(b, p, mods)
}

func (d managerDriver) move(p PixelCoord, mods KeyModifiers) { d.m.MouseMove(p, mods) }

func (d managerDriver) release(p PixelCoord, b MouseButton, mods KeyModifiers) {
	d.m.ButtonUp(b, p, mods)
}

func (d managerDriver) drag(from, to PixelCoord, b MouseButton, mods KeyModifiers, frames int) {
	// Replays the same event sequence InjectDrag queues.
	in := &EbitenInput{manager: d.m}
	in.InjectDrag(from, to, b, mods, frames)
	for len(in.injectQueue) > 0 {
		in.processInjected(mods)
	}
}

func (d managerDriver) wheel(p PixelCoord, mods KeyModifiers, notches int) {
	if notches > 0 {
		d.m.WheelForward(p, mods, notches)
	} else {
		d.m.WheelBackward(p, mods, -notches)
	}
}

func (d managerDriver) enter(p PixelCoord)              { d.m.MouseEnter(p) }
func (d managerDriver) leave(p PixelCoord)              { d.m.MouseLeave(p) }
func (d managerDriver) key(k string, mods KeyModifiers) { d.m.KeyPress(k, mods) }

// injectDriver queues events on an EbitenInput.
type injectDriver struct{ in *EbitenInput }

func (d injectDriver) press(p PixelCoord, b MouseButton, mods KeyModifiers) {
	d.in.InjectPress(p, b, mods)
}

func (d injectDriver) move(p PixelCoord, mods KeyModifiers) { d.in.InjectMove(p, mods) }

func (d injectDriver) release(p PixelCoord, b MouseButton, mods KeyModifiers) {
	d.in.InjectRelease(p, b, mods)
}

func (d injectDriver) drag(from, to PixelCoord, b MouseButton, mods KeyModifiers, frames int) {
	d.in.InjectDrag(from, to, b, mods, frames)
}

func (d injectDriver) wheel(p PixelCoord, mods KeyModifiers, notches int) {
	d.in.InjectWheel(p, mods, notches)
}

func (d injectDriver) enter(p PixelCoord)              { d.in.InjectEnter(p) }
func (d injectDriver) leave(p PixelCoord)              { d.in.InjectLeave(p) }
func (d injectDriver) key(k string, mods KeyModifiers) { d.in.InjectKey(k, mods) }

// Run replays every step against m immediately. Wait steps are ignored.
func (s *Script) Run(m *Manager) error {
	d := managerDriver{m: m}
	for i, st := range s.steps {
		if err := s.exec(m, d, st); err != nil {
			return fmt.Errorf("run script: step %d (%s): %w", i, st.Action, err)
		}
	}
	return nil
}

// exec performs one step. Validation has already run, so parse errors
// cannot occur here.
func (s *Script) exec(m *Manager, d scriptDriver, st scriptStep) error {
	b, _ := parseButton(st.Button)
	mods, _ := parseModifiers(st.Mods)
	p := PixelCoord{X: st.X, Y: st.Y}

	switch st.Action {
	case "press":
		d.press(p, b, mods)
	case "release":
		d.release(p, b, mods)
	case "move":
		d.move(p, mods)
	case "drag":
		d.drag(PixelCoord{X: st.FromX, Y: st.FromY}, PixelCoord{X: st.ToX, Y: st.ToY}, b, mods, st.Frames)
	case "wheel":
		d.wheel(p, mods, st.Notches)
	case "enter":
		d.enter(p)
	case "leave":
		d.leave(p)
	case "key":
		d.key(st.Key, mods)
	case "lock":
		if _, ok := s.locks[st.Label]; ok {
			return fmt.Errorf("lock %q already held", st.Label)
		}
		s.locks[st.Label] = m.LockInteraction()
	case "unlock":
		k, ok := s.locks[st.Label]
		if !ok {
			return fmt.Errorf("lock %q not held", st.Label)
		}
		delete(s.locks, st.Label)
		m.UnlockInteraction(k)
	case "mode":
		mode, _ := parseMode(st.Mode)
		var allowed *Prop
		if st.Prop != "" {
			allowed = findProp(m.Surface(), st.Prop)
			if allowed == nil {
				return fmt.Errorf("no prop named %q", st.Prop)
			}
		}
		m.SetInteractionMode(mode, allowed)
	case "snapshot":
		if s.SnapshotDir == "" {
			return nil
		}
		if _, err := SaveSnapshot(s.SnapshotDir, st.Label, m.Surface().Snapshot()); err != nil {
			return err
		}
	}
	return nil
}

// findProp returns the first prop of s with the given name.
func findProp(s Surface, name string) *Prop {
	for _, p := range s.Props() {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ScriptRunner replays a Script through an EbitenInput, one step per frame.
// Call Step from the game's Update before EbitenInput.Update.
type ScriptRunner struct {
	script    *Script
	in        *EbitenInput
	cursor    int
	waitCount int
	done      bool
	err       error
}

// Runner creates a frame-stepped runner delivering s through in.
func (s *Script) Runner(in *EbitenInput) *ScriptRunner {
	return &ScriptRunner{script: s, in: in}
}

// Done reports whether all steps have been executed and their events
// consumed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Err returns the error that stopped the runner, if any.
func (r *ScriptRunner) Err() error {
	return r.err
}

// Step advances the runner by one frame.
func (r *ScriptRunner) Step() {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if r.in.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.script.steps) {
		r.done = true
		return
	}

	st := r.script.steps[r.cursor]
	r.cursor++

	if st.Action == "wait" {
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	} else if err := r.script.exec(r.in.manager, injectDriver{in: r.in}, st); err != nil {
		r.err = fmt.Errorf("run script: step %d (%s): %w", r.cursor-1, st.Action, err)
		r.done = true
		return
	}

	if r.cursor >= len(r.script.steps) && r.waitCount == 0 && r.in.Pending() == 0 {
		r.done = true
	}
}
