package viewport

// LockKey identifies one holder of the interaction lock. Keys are never zero
// and never reused by the Manager that minted them.
type LockKey uint64

// lockSet is a cooperative, keyed lock: interaction is locked while any key
// is held. It is not a thread synchronization primitive.
type lockSet struct {
	keys map[LockKey]struct{}
	last LockKey
}

// acquire mints a fresh key and holds it.
func (l *lockSet) acquire() LockKey {
	if l.keys == nil {
		l.keys = make(map[LockKey]struct{})
	}
	l.last++
	l.keys[l.last] = struct{}{}
	return l.last
}

// release drops k if held and reports whether no keys remain. Unknown keys
// are ignored.
func (l *lockSet) release(k LockKey) bool {
	delete(l.keys, k)
	return len(l.keys) == 0
}

func (l *lockSet) held(k LockKey) bool {
	_, ok := l.keys[k]
	return ok
}

func (l *lockSet) locked() bool {
	return len(l.keys) > 0
}

func (l *lockSet) count() int {
	return len(l.keys)
}
