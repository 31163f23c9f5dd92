package viewport

import (
	"math"
	"strings"
)

// PixelCoord is an integer pixel position on a surface with its origin at the
// top-left corner and Y increasing downward. It is the only coordinate type
// accepted by the picking and interaction APIs.
type PixelCoord struct {
	X, Y int
}

// In reports whether p lies inside a surface of the given size.
func (p PixelCoord) In(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// Display converts p to native buffer coordinates for a surface of the given
// height. The result addresses the pixel centre.
func (p PixelCoord) Display(height int) DisplayCoord {
	return DisplayCoord{
		X: float64(p.X) + 0.5,
		Y: float64(height-p.Y) - 0.5,
	}
}

// Proportional expresses p as a fraction of the surface size.
func (p PixelCoord) Proportional(width, height int) ProportionalCoord {
	if width <= 0 || height <= 0 {
		return ProportionalCoord{}
	}
	return ProportionalCoord{
		X: (float64(p.X) + 0.5) / float64(width),
		Y: (float64(p.Y) + 0.5) / float64(height),
	}
}

// DisplayCoord is a position in native buffer space: origin at the
// bottom-left corner, Y increasing upward, continuous values. Depth buffer
// reads and projection matrices work in this space.
type DisplayCoord struct {
	X, Y float64
}

// Pixel converts d to a top-left pixel for a surface of the given height.
func (d DisplayCoord) Pixel(height int) PixelCoord {
	return PixelCoord{
		X: int(math.Floor(d.X)),
		Y: int(math.Floor(float64(height) - d.Y)),
	}
}

// ProportionalCoord is a resolution-independent position: X and Y are
// fractions of the surface width and height in [0, 1], top-left origin.
type ProportionalCoord struct {
	X, Y float64
}

// Pixel converts q to the pixel containing it on a surface of the given size.
// Values outside [0, 1] are clamped to the surface edge.
func (q ProportionalCoord) Pixel(width, height int) PixelCoord {
	x := int(math.Floor(q.X * float64(width)))
	y := int(math.Floor(q.Y * float64(height)))
	return PixelCoord{X: clampInt(x, 0, width-1), Y: clampInt(y, 0, height-1)}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// InteractionMode selects whether drag gestures move the camera or a single
// picked object.
type InteractionMode uint8

const (
	CameraInteraction InteractionMode = iota // gestures transform the camera
	ObjectInteraction                        // gestures transform the picked prop
)

func (m InteractionMode) String() string {
	switch m {
	case CameraInteraction:
		return "camera"
	case ObjectInteraction:
		return "object"
	default:
		return "unknown"
	}
}

// GestureState is the gesture in progress for the current press-to-release
// sequence.
type GestureState uint8

const (
	Idle GestureState = iota
	Rotating
	Panning
	Dollying
	Spinning
)

func (g GestureState) String() string {
	switch g {
	case Idle:
		return "idle"
	case Rotating:
		return "rotating"
	case Panning:
		return "panning"
	case Dollying:
		return "dollying"
	case Spinning:
		return "spinning"
	default:
		return "unknown"
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonMiddle                    // middle mouse button (wheel click)
	MouseButtonRight                     // secondary (right) mouse button
	numMouseButtons
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonRight:
		return "right"
	default:
		return "unknown"
	}
}

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

func (m KeyModifiers) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	if m&ModShift != 0 {
		parts = append(parts, "shift")
	}
	if m&ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if m&ModMeta != 0 {
		parts = append(parts, "meta")
	}
	return strings.Join(parts, "+")
}

// EventType identifies a raw input event delivered to the Manager.
type EventType uint8

const (
	EventButtonDown    EventType = iota // a mouse button was pressed
	EventButtonUp                       // a mouse button was released
	EventMove                           // the pointer moved
	EventWheelForward                   // the wheel turned away from the user
	EventWheelBackward                  // the wheel turned toward the user
	EventEnter                          // the pointer entered the surface
	EventLeave                          // the pointer left the surface
)

func (t EventType) String() string {
	switch t {
	case EventButtonDown:
		return "button-down"
	case EventButtonUp:
		return "button-up"
	case EventMove:
		return "move"
	case EventWheelForward:
		return "wheel-forward"
	case EventWheelBackward:
		return "wheel-backward"
	case EventEnter:
		return "enter"
	case EventLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// MouseEvent carries a raw input event to active mouse handlers.
type MouseEvent struct {
	Type      EventType
	Pos       PixelCoord
	Button    MouseButton // valid for EventButtonDown and EventButtonUp
	Modifiers KeyModifiers
	Notches   int // wheel notch count, always positive; direction is in Type
}

// KeyEvent carries a key press. Key is the key name as reported by the
// platform ("r", "Escape", "F1").
type KeyEvent struct {
	Key       string
	Modifiers KeyModifiers
}

// InteractionType identifies a lifecycle notification sent to passive
// interactors.
type InteractionType uint8

const (
	CameraStarted InteractionType = iota
	CameraRotating
	CameraPanning
	CameraDollying
	CameraSpinning
	CameraMoving
	CameraStopped
	ObjectStarted
	ObjectRotating
	ObjectPanning
	ObjectDollying
	ObjectSpinning
	ObjectMoving
	ObjectStopped
	MouseEntered
	MouseLeft
)

var interactionNames = [...]string{
	CameraStarted:  "camera-start",
	CameraRotating: "camera-rotate",
	CameraPanning:  "camera-pan",
	CameraDollying: "camera-dolly",
	CameraSpinning: "camera-spin",
	CameraMoving:   "camera-move",
	CameraStopped:  "camera-stop",
	ObjectStarted:  "object-start",
	ObjectRotating: "object-rotate",
	ObjectPanning:  "object-pan",
	ObjectDollying: "object-dolly",
	ObjectSpinning: "object-spin",
	ObjectMoving:   "object-move",
	ObjectStopped:  "object-stop",
	MouseEntered:   "mouse-enter",
	MouseLeft:      "mouse-leave",
}

func (t InteractionType) String() string {
	if int(t) < len(interactionNames) {
		return interactionNames[t]
	}
	return "unknown"
}

// InteractionEvent is a read-only lifecycle notification.
type InteractionEvent struct {
	Type    InteractionType
	Gesture GestureState
	// Target is the prop being transformed. Nil for camera gestures and
	// enter/leave notifications.
	Target *Prop
	Pos    PixelCoord
}
