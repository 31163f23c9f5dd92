package viewport

import "testing"

// keyListener is an interactor, mouse handler and key-press handler at once.
type keyListener struct {
	keys    []string
	events  int
	handled int
}

func (k *keyListener) OnInteraction(InteractionEvent) { k.events++ }
func (k *keyListener) HandleMouse(MouseEvent) bool    { k.handled++; return false }
func (k *keyListener) OnKeyPress(e KeyEvent)          { k.keys = append(k.keys, e.Key) }

// sliceInteractor is not comparable and cannot be registered.
type sliceInteractor []InteractionEvent

func (sliceInteractor) OnInteraction(InteractionEvent) {}

func TestAddInteractorIdempotent(t *testing.T) {
	s, _ := newBoxScene()
	m := NewManager(s, DefaultConfig())
	rec := &Recorder{}
	m.AddInteractor(rec)
	m.AddInteractor(rec)
	m.WheelForward(centerPixel, 0, 1)
	if got := rec.Count(CameraStarted); got != 1 {
		t.Errorf("start received %d times, want 1", got)
	}

	m.RemoveInteractor(rec)
	m.RemoveInteractor(rec)
	rec.Reset()
	m.WheelForward(centerPixel, 0, 1)
	if len(rec.Events) != 0 {
		t.Errorf("removed interactor received %s", rec)
	}
}

func TestAddMouseHandlerIdempotent(t *testing.T) {
	s, _ := newBoxScene()
	m := NewManager(s, DefaultConfig())
	n := 0
	h := MouseHandlerFunc(func(MouseEvent) bool { n++; return false })
	m.AddMouseHandler(h)
	m.AddMouseHandler(h)
	m.MouseMove(centerPixel, 0)
	if n != 1 {
		t.Errorf("handler called %d times, want 1", n)
	}
	m.RemoveMouseHandler(h)
	m.MouseMove(centerPixel, 0)
	if n != 1 {
		t.Errorf("removed handler called, n = %d", n)
	}
}

func TestFuncAdaptersAreDistinct(t *testing.T) {
	fn := func(InteractionEvent) {}
	a, b := InteractorFunc(fn), InteractorFunc(fn)
	if a == b {
		t.Error("each InteractorFunc call should be a distinct listener")
	}
	var r listenerRegistry
	r.addInteractor(a)
	r.addInteractor(b)
	if len(r.interactors) != 2 {
		t.Errorf("registered %d, want 2", len(r.interactors))
	}
}

func TestNonComparableListenerRejected(t *testing.T) {
	var r listenerRegistry
	if r.addInteractor(sliceInteractor{}) {
		t.Error("non-comparable listener should be rejected")
	}
	if r.removeInteractor(sliceInteractor{}) {
		t.Error("remove of non-comparable listener should report false")
	}
	if r.setInteractorEnabled(sliceInteractor{}, false) {
		t.Error("enable of non-comparable listener should report false")
	}
	if r.addInteractor(nil) {
		t.Error("nil listener should be rejected")
	}
}

func TestDisabledListeners(t *testing.T) {
	s, _ := newBoxScene()
	m := NewManager(s, DefaultConfig())
	rec := &Recorder{}
	m.AddInteractor(rec)
	swallow := MouseHandlerFunc(func(MouseEvent) bool { return true })
	m.AddMouseHandler(swallow)

	m.SetMouseHandlerEnabled(swallow, false)
	m.SetInteractorEnabled(rec, false)
	m.WheelForward(centerPixel, 0, 1)
	if len(rec.Events) != 0 {
		t.Errorf("disabled interactor received %s", rec)
	}
	if !approxEqual(s.Camera().Distance(), 5/1.1, 1e-9) {
		t.Errorf("disabled handler still swallowed: distance %v", s.Camera().Distance())
	}

	m.SetInteractorEnabled(rec, true)
	m.SetMouseHandlerEnabled(swallow, true)
	m.WheelForward(centerPixel, 0, 1)
	if len(rec.Events) != 0 {
		t.Errorf("swallowed wheel notified %s", rec)
	}
	m.RemoveMouseHandler(swallow)
	m.WheelForward(centerPixel, 0, 1)
	if rec.String() != "camera-start camera-dolly camera-stop" {
		t.Errorf("events = %q", rec.String())
	}
}

func TestKeyPressWiring(t *testing.T) {
	s, _ := newBoxScene()
	m := NewManager(s, DefaultConfig())
	k := &keyListener{}

	m.AddInteractor(k)
	m.AddMouseHandler(k)
	m.KeyPress("a", 0)
	if len(k.keys) != 1 {
		t.Fatalf("key delivered %d times to a listener in both sets, want 1", len(k.keys))
	}

	m.RemoveInteractor(k)
	m.KeyPress("b", 0)
	if len(k.keys) != 2 {
		t.Fatalf("still a mouse handler, key should arrive; got %v", k.keys)
	}

	m.RemoveMouseHandler(k)
	m.KeyPress("c", 0)
	if len(k.keys) != 2 {
		t.Errorf("removed from both sets, got %v", k.keys)
	}
}

func TestKeyPressRenders(t *testing.T) {
	s, _ := newBoxScene()
	m := NewManager(s, DefaultConfig())
	before := s.RenderCount()
	m.KeyPress("x", ModCtrl)
	if s.RenderCount() != before+1 {
		t.Errorf("RenderCount = %d, want %d", s.RenderCount(), before+1)
	}
}

func TestRemoveDuringNotify(t *testing.T) {
	s, _ := newBoxScene()
	m := NewManager(s, DefaultConfig())
	var self Interactor
	calls := 0
	self = InteractorFunc(func(InteractionEvent) {
		calls++
		m.RemoveInteractor(self)
	})
	rec := &Recorder{}
	m.AddInteractor(self)
	m.AddInteractor(rec)

	m.WheelForward(centerPixel, 0, 1)
	if calls != 1 {
		t.Errorf("self-removing listener called %d times, want 1", calls)
	}
	if len(rec.Events) != 3 {
		t.Errorf("other listener got %s, want all three notifications", rec)
	}
}

func TestAddDuringDispatch(t *testing.T) {
	s, _ := newBoxScene()
	m := NewManager(s, DefaultConfig())
	late := 0
	lateHandler := MouseHandlerFunc(func(MouseEvent) bool { late++; return false })
	m.AddMouseHandler(MouseHandlerFunc(func(MouseEvent) bool {
		m.AddMouseHandler(lateHandler)
		return false
	}))
	m.MouseMove(centerPixel, 0)
	if late != 0 {
		t.Errorf("handler added during dispatch ran in the same dispatch")
	}
	m.MouseMove(centerPixel, 0)
	if late != 1 {
		t.Errorf("late handler calls = %d, want 1", late)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.OnInteraction(InteractionEvent{Type: CameraStarted})
	r.OnInteraction(InteractionEvent{Type: CameraMoving})
	r.OnInteraction(InteractionEvent{Type: CameraMoving})
	if r.Count(CameraMoving) != 2 {
		t.Errorf("Count = %d, want 2", r.Count(CameraMoving))
	}
	if got := r.String(); got != "camera-start camera-move camera-move" {
		t.Errorf("String = %q", got)
	}
	if types := r.Types(); len(types) != 3 || types[0] != CameraStarted {
		t.Errorf("Types = %v", types)
	}
	r.Reset()
	if len(r.Events) != 0 {
		t.Error("Reset should clear events")
	}
}
