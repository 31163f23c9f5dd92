package viewport

import "reflect"

// Interactor is a passive observer of interaction lifecycle notifications.
type Interactor interface {
	OnInteraction(e InteractionEvent)
}

// MouseHandler is an active handler tried before the default camera/object
// behaviour. Returning true swallows the event.
type MouseHandler interface {
	HandleMouse(e MouseEvent) bool
}

// KeyPressHandler is implemented by interactors and mouse handlers that also
// want key presses.
type KeyPressHandler interface {
	OnKeyPress(e KeyEvent)
}

// InteractorFunc adapts a function to an Interactor. The returned value is a
// distinct listener each call; keep it to remove it later.
func InteractorFunc(fn func(InteractionEvent)) Interactor {
	return &interactorFunc{fn: fn}
}

type interactorFunc struct {
	fn func(InteractionEvent)
}

func (f *interactorFunc) OnInteraction(e InteractionEvent) { f.fn(e) }

// MouseHandlerFunc adapts a function to a MouseHandler. The returned value
// is a distinct listener each call; keep it to remove it later.
func MouseHandlerFunc(fn func(MouseEvent) bool) MouseHandler {
	return &mouseHandlerFunc{fn: fn}
}

type mouseHandlerFunc struct {
	fn func(MouseEvent) bool
}

func (f *mouseHandlerFunc) HandleMouse(e MouseEvent) bool { return f.fn(e) }

// --- Registry ---

type interactorEntry struct {
	l       Interactor
	enabled bool
}

type handlerEntry struct {
	h       MouseHandler
	enabled bool
}

type keyEntry struct {
	owner any
	h     KeyPressHandler
}

// listenerRegistry holds non-owning references to both listener sets and
// the key-press handlers wired from them. Dispatch iterates over copies so
// listeners may add or remove listeners while being notified.
type listenerRegistry struct {
	interactors []interactorEntry
	handlers    []handlerEntry
	keys        []keyEntry
}

// isComparable reports whether v can be used as a registry key.
func isComparable(v any) bool {
	return v != nil && reflect.TypeOf(v).Comparable()
}

func (r *listenerRegistry) interactorIndex(l Interactor) int {
	for i := range r.interactors {
		if r.interactors[i].l == l {
			return i
		}
	}
	return -1
}

func (r *listenerRegistry) handlerIndex(h MouseHandler) int {
	for i := range r.handlers {
		if r.handlers[i].h == h {
			return i
		}
	}
	return -1
}

func (r *listenerRegistry) keyIndex(owner any) int {
	for i := range r.keys {
		if r.keys[i].owner == owner {
			return i
		}
	}
	return -1
}

// addInteractor reports whether l was added.
func (r *listenerRegistry) addInteractor(l Interactor) bool {
	if !isComparable(l) || r.interactorIndex(l) >= 0 {
		return false
	}
	r.interactors = append(r.interactors, interactorEntry{l: l, enabled: true})
	r.wireKeys(l)
	return true
}

// removeInteractor reports whether l was removed.
func (r *listenerRegistry) removeInteractor(l Interactor) bool {
	if !isComparable(l) {
		return false
	}
	i := r.interactorIndex(l)
	if i < 0 {
		return false
	}
	copy(r.interactors[i:], r.interactors[i+1:])
	r.interactors[len(r.interactors)-1] = interactorEntry{}
	r.interactors = r.interactors[:len(r.interactors)-1]
	if h, ok := l.(MouseHandler); !ok || !isComparable(h) || r.handlerIndex(h) < 0 {
		r.unwireKeys(l)
	}
	return true
}

func (r *listenerRegistry) addHandler(h MouseHandler) bool {
	if !isComparable(h) || r.handlerIndex(h) >= 0 {
		return false
	}
	r.handlers = append(r.handlers, handlerEntry{h: h, enabled: true})
	r.wireKeys(h)
	return true
}

func (r *listenerRegistry) removeHandler(h MouseHandler) bool {
	if !isComparable(h) {
		return false
	}
	i := r.handlerIndex(h)
	if i < 0 {
		return false
	}
	copy(r.handlers[i:], r.handlers[i+1:])
	r.handlers[len(r.handlers)-1] = handlerEntry{}
	r.handlers = r.handlers[:len(r.handlers)-1]
	if l, ok := h.(Interactor); !ok || !isComparable(l) || r.interactorIndex(l) < 0 {
		r.unwireKeys(h)
	}
	return true
}

// wireKeys registers owner's key-press handler once, however many sets owner
// belongs to.
func (r *listenerRegistry) wireKeys(owner any) {
	k, ok := owner.(KeyPressHandler)
	if !ok || r.keyIndex(owner) >= 0 {
		return
	}
	r.keys = append(r.keys, keyEntry{owner: owner, h: k})
}

func (r *listenerRegistry) unwireKeys(owner any) {
	i := r.keyIndex(owner)
	if i < 0 {
		return
	}
	copy(r.keys[i:], r.keys[i+1:])
	r.keys[len(r.keys)-1] = keyEntry{}
	r.keys = r.keys[:len(r.keys)-1]
}

func (r *listenerRegistry) setInteractorEnabled(l Interactor, enabled bool) bool {
	if !isComparable(l) {
		return false
	}
	i := r.interactorIndex(l)
	if i < 0 {
		return false
	}
	r.interactors[i].enabled = enabled
	return true
}

func (r *listenerRegistry) setHandlerEnabled(h MouseHandler, enabled bool) bool {
	if !isComparable(h) {
		return false
	}
	i := r.handlerIndex(h)
	if i < 0 {
		return false
	}
	r.handlers[i].enabled = enabled
	return true
}

// notify delivers e to every enabled interactor.
func (r *listenerRegistry) notify(e InteractionEvent) {
	if len(r.interactors) == 0 {
		return
	}
	snapshot := append([]interactorEntry(nil), r.interactors...)
	for _, entry := range snapshot {
		if entry.enabled {
			entry.l.OnInteraction(e)
		}
	}
}

// dispatch tries enabled mouse handlers in registration order and reports
// whether one swallowed e.
func (r *listenerRegistry) dispatch(e MouseEvent) bool {
	if len(r.handlers) == 0 {
		return false
	}
	snapshot := append([]handlerEntry(nil), r.handlers...)
	for _, entry := range snapshot {
		if entry.enabled && entry.h.HandleMouse(e) {
			return true
		}
	}
	return false
}

// broadcast delivers e to every enabled mouse handler, ignoring the results.
func (r *listenerRegistry) broadcast(e MouseEvent) {
	if len(r.handlers) == 0 {
		return
	}
	snapshot := append([]handlerEntry(nil), r.handlers...)
	for _, entry := range snapshot {
		if entry.enabled {
			entry.h.HandleMouse(e)
		}
	}
}

// keyPress delivers e to every wired key-press handler.
func (r *listenerRegistry) keyPress(e KeyEvent) {
	if len(r.keys) == 0 {
		return
	}
	snapshot := append([]keyEntry(nil), r.keys...)
	for _, entry := range snapshot {
		entry.h.OnKeyPress(e)
	}
}
