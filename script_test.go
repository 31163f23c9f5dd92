package viewport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestParseScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "snapshot", "label": "initial"},
			{"action": "drag", "fromX": 400, "fromY": 300, "toX": 450, "toY": 300, "frames": 4},
			{"action": "wait", "frames": 3},
			{"action": "wheel", "x": 400, "y": 300, "notches": -2, "mods": "shift+ctrl"}
		]
	}`)
	s, err := ParseScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 4 {
		t.Fatalf("expected 4 steps, got %d", s.Len())
	}
	if s.steps[1].Action != "drag" || s.steps[1].ToX != 450 || s.steps[1].Frames != 4 {
		t.Errorf("step 1 mismatch: %+v", s.steps[1])
	}
	if s.steps[3].Notches != -2 {
		t.Errorf("step 3 notches = %d", s.steps[3].Notches)
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"invalid json", `not json`, "parse script"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "teleport"}]}`, "unknown action"},
		{"bad button", `{"steps": [{"action": "press", "button": "fourth"}]}`, "unknown button"},
		{"bad mods", `{"steps": [{"action": "press", "mods": "hyper"}]}`, "unknown modifier"},
		{"zero wheel", `{"steps": [{"action": "wheel"}]}`, "notches"},
		{"missing key", `{"steps": [{"action": "key"}]}`, "missing key"},
		{"lock without label", `{"steps": [{"action": "lock"}]}`, "missing label"},
		{"bad mode", `{"steps": [{"action": "mode", "mode": "fly"}]}`, "unknown mode"},
		{"second step", `{"steps": [{"action": "move"}, {"action": "nope"}]}`, "step 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestParseModifiers(t *testing.T) {
	tests := []struct {
		in   string
		want KeyModifiers
	}{
		{"", 0},
		{"none", 0},
		{"shift", ModShift},
		{"Shift+Ctrl", ModShift | ModCtrl},
		{"control + alt", ModCtrl | ModAlt},
		{"cmd", ModMeta},
	}
	for _, tt := range tests {
		got, err := parseModifiers(tt.in)
		if err != nil {
			t.Errorf("parseModifiers(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseModifiers(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestScriptRunGesture(t *testing.T) {
	m, s, _, rec := newTestManager()
	script, err := ParseScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 400, "fromY": 300, "toX": 450, "toY": 300, "frames": 4},
		{"action": "wheel", "x": 400, "y": 300, "notches": 1}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	before := s.Camera().Position()
	if err := script.Run(m); err != nil {
		t.Fatal(err)
	}
	want := "camera-start camera-rotate camera-move camera-rotate camera-move camera-stop " +
		"camera-start camera-dolly camera-stop"
	if got := rec.String(); got != want {
		t.Errorf("events = %q, want %q", got, want)
	}
	if s.Camera().Position() == before {
		t.Error("camera did not move")
	}
}

func TestScriptRunLocks(t *testing.T) {
	m, _, _, rec := newTestManager()
	script, err := ParseScript([]byte(`{"steps": [
		{"action": "lock", "label": "menu"},
		{"action": "press", "x": 400, "y": 300},
		{"action": "release", "x": 400, "y": 300},
		{"action": "unlock", "label": "menu"},
		{"action": "press", "x": 400, "y": 300, "button": "middle"},
		{"action": "release", "x": 400, "y": 300, "button": "middle"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := script.Run(m); err != nil {
		t.Fatal(err)
	}
	if got := rec.String(); got != "camera-start camera-stop" {
		t.Errorf("events = %q", got)
	}
	if rec.Events[0].Gesture != Dollying {
		t.Errorf("gesture = %v, want dollying", rec.Events[0].Gesture)
	}
	if m.IsInteractionLocked() {
		t.Error("script left the interaction locked")
	}
}

func TestScriptRunLockErrors(t *testing.T) {
	tests := []struct {
		name, doc, want string
	}{
		{"double lock", `{"steps": [{"action": "lock", "label": "a"}, {"action": "lock", "label": "a"}]}`, "already held"},
		{"unknown unlock", `{"steps": [{"action": "unlock", "label": "a"}]}`, "not held"},
		{"missing prop", `{"steps": [{"action": "mode", "mode": "object", "prop": "ghost"}]}`, "no prop named"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _, _ := newTestManager()
			script, err := ParseScript([]byte(tt.doc))
			if err != nil {
				t.Fatal(err)
			}
			err = script.Run(m)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) || !strings.Contains(err.Error(), "run script") {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestScriptRunMode(t *testing.T) {
	m, _, box, rec := newTestManager()
	script, err := ParseScript([]byte(`{"steps": [
		{"action": "mode", "mode": "object", "prop": "box"},
		{"action": "wheel", "x": 400, "y": 300, "notches": 1},
		{"action": "mode", "mode": "camera"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := script.Run(m); err != nil {
		t.Fatal(err)
	}
	if got := rec.String(); got != "object-start object-dolly object-stop" {
		t.Errorf("events = %q", got)
	}
	if box.Position() == (mgl64.Vec3{}) {
		t.Error("box did not move")
	}
	if m.InteractionMode() != CameraInteraction {
		t.Errorf("mode = %v, want camera", m.InteractionMode())
	}
}

func TestScriptSnapshot(t *testing.T) {
	s := NewScene(40, 30)
	s.AddProp(NewProp("box", NewBoxMesh(2, 2, 2)))
	s.Camera().SetPosition(mgl64.Vec3{0, 0, 5})
	s.Render()
	m := NewManager(s, DefaultConfig())

	script, err := ParseScript([]byte(`{"steps": [{"action": "snapshot", "label": "after drag"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := script.Run(m); err != nil {
		t.Fatalf("snapshot without a directory should be skipped: %v", err)
	}

	script.SnapshotDir = filepath.Join(t.TempDir(), "shots")
	if err := script.Run(m); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(script.SnapshotDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), "_after_drag.png") {
		t.Errorf("snapshot files = %v", entries)
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.json")
	if err := os.WriteFile(path, []byte(`{"steps": [{"action": "enter", "x": 1, "y": 1}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScript(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	if _, err := LoadScript(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestScriptRunnerSteps(t *testing.T) {
	s, _ := newBoxScene()
	m := NewManager(s, DefaultConfig())
	rec := &Recorder{}
	m.AddInteractor(rec)
	in := NewEbitenInput(m)

	script, err := ParseScript([]byte(`{"steps": [
		{"action": "enter", "x": 400, "y": 300},
		{"action": "drag", "fromX": 400, "fromY": 300, "toX": 420, "toY": 300, "frames": 3},
		{"action": "wait", "frames": 2},
		{"action": "leave", "x": -1, "y": 300}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	r := script.Runner(in)
	frames := 0
	for !r.Done() && frames < 50 {
		r.Step()
		in.processInjected(0)
		frames++
	}
	if !r.Done() {
		t.Fatal("runner did not finish")
	}
	if r.Err() != nil {
		t.Fatal(r.Err())
	}
	want := "mouse-enter camera-start camera-rotate camera-move camera-stop mouse-leave"
	if got := rec.String(); got != want {
		t.Errorf("events = %q, want %q", got, want)
	}
	if frames < 7 {
		t.Errorf("runner finished in %d frames, want at least 7", frames)
	}
}

func TestScriptRunnerError(t *testing.T) {
	s, _ := newBoxScene()
	m := NewManager(s, DefaultConfig())
	in := NewEbitenInput(m)
	script, err := ParseScript([]byte(`{"steps": [{"action": "unlock", "label": "x"}, {"action": "enter"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	r := script.Runner(in)
	r.Step()
	if !r.Done() || r.Err() == nil {
		t.Fatalf("Done = %v, Err = %v; want a stopped runner with an error", r.Done(), r.Err())
	}
	if in.Pending() != 0 {
		t.Error("steps after the error should not run")
	}
}
