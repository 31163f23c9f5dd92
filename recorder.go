package viewport

import "strings"

// Recorder is an Interactor that keeps every notification it receives, for
// event-order assertions and replay diagnostics.
type Recorder struct {
	Events []InteractionEvent
}

// OnInteraction implements Interactor.
func (r *Recorder) OnInteraction(e InteractionEvent) {
	r.Events = append(r.Events, e)
}

// Types returns the recorded notification types in order.
func (r *Recorder) Types() []InteractionType {
	out := make([]InteractionType, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Type
	}
	return out
}

// Count returns how many notifications of type t were recorded.
func (r *Recorder) Count(t InteractionType) int {
	n := 0
	for _, e := range r.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// String returns the recorded types joined by spaces, e.g.
// "camera-start camera-rotate camera-move camera-stop".
func (r *Recorder) String() string {
	parts := make([]string, len(r.Events))
	for i, e := range r.Events {
		parts[i] = e.Type.String()
	}
	return strings.Join(parts, " ")
}

// Reset discards recorded notifications.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}
