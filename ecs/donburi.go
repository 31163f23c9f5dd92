package ecs

import (
	"github.com/phanxgames/viewport"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for viewport lifecycle
// notifications.
var InteractionEventType = events.NewEventType[viewport.InteractionEvent]()

// MouseEventType is the Donburi event type for raw viewport mouse events.
var MouseEventType = events.NewEventType[viewport.MouseEvent]()

type donburiInteractor struct {
	world donburi.World
}

// NewDonburiInteractor creates an Interactor backed by a Donburi world.
// Notifications are published to InteractionEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiInteractor(world donburi.World) viewport.Interactor {
	return &donburiInteractor{world: world}
}

func (d *donburiInteractor) OnInteraction(e viewport.InteractionEvent) {
	InteractionEventType.Publish(d.world, e)
}

type donburiMouseHandler struct {
	world donburi.World
}

// NewDonburiMouseHandler creates a MouseHandler that publishes every mouse
// event to MouseEventType. It never swallows events.
func NewDonburiMouseHandler(world donburi.World) viewport.MouseHandler {
	return &donburiMouseHandler{world: world}
}

func (d *donburiMouseHandler) HandleMouse(e viewport.MouseEvent) bool {
	MouseEventType.Publish(d.world, e)
	return false
}
