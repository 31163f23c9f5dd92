package viewport

import (
	"strings"
	"testing"
)

func TestDebugAssertPasses(t *testing.T) {
	// Must not panic.
	debugAssert(true, "unused %d", 1)
}

func TestDebugAssertPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		msg, ok := r.(string)
		if !ok || !strings.HasPrefix(msg, "viewport debug: ") || !strings.Contains(msg, "rotate 3") {
			t.Errorf("panic = %v", r)
		}
	}()
	debugAssert(false, "rotate %d", 3)
}

func TestDebugCountChecksDoNotPanic(t *testing.T) {
	debugCheckListenerCount("interactors", debugMaxListeners+1)
	debugCheckListenerCount("interactors", 1)
	debugCheckLockCount(debugMaxLocks + 1)
	debugCheckLockCount(0)
}

func TestDebugManyLocks(t *testing.T) {
	s, _ := newBoxScene()
	m := NewManager(s, DefaultConfig())
	m.SetDebugMode(true)
	keys := make([]LockKey, 0, debugMaxLocks+2)
	for i := 0; i < debugMaxLocks+2; i++ {
		keys = append(keys, m.LockInteraction())
	}
	for _, k := range keys {
		m.UnlockInteraction(k)
	}
	if m.IsInteractionLocked() {
		t.Error("all keys released, should be unlocked")
	}
}
