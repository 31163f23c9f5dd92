// Package viewport is the interaction and picking engine of a 3D render
// surface, with a software [Scene] and [Ebitengine] adapters.
//
// A [Manager] is bound to one [Surface]. Feed it raw input events (button
// down/up, wheel, move, enter, leave, key) and it turns drags into camera or
// object transforms, trackball style:
//
//	scene := viewport.NewScene(800, 600)
//	scene.AddProp(viewport.NewProp("cube", viewport.NewBoxMesh(1, 1, 1)))
//	scene.ResetCamera()
//
//	m := viewport.NewManager(scene, viewport.DefaultConfig())
//	m.LeftButtonDown(viewport.PixelCoord{X: 400, Y: 300}, 0)
//	m.MouseMove(viewport.PixelCoord{X: 450, Y: 300}, 0)
//	m.LeftButtonUp(viewport.PixelCoord{X: 450, Y: 300}, 0)
//
// # Gestures
//
// The left button rotates; with Shift it pans, with Ctrl it dollies and with
// Ctrl+Shift it spins. The middle button dollies and the right button
// spins. The wheel dollies by [Config.WheelFactor] per notch, as a complete
// gesture within one event.
//
// In [ObjectInteraction] mode a gesture that starts over an eligible prop
// moves that prop instead of the camera. Gestures that start anywhere else
// fall back to the camera.
//
// # Listeners
//
// [MouseHandler]s see every event first and can swallow it by returning
// true. [Interactor]s receive read-only lifecycle notifications such as
// [CameraStarted], [CameraRotating] and [ObjectStopped]. Either can also
// implement [KeyPressHandler].
//
// # Locking
//
// [Manager.LockInteraction] returns a key; gestures are suppressed until
// every outstanding key is released with [Manager.UnlockInteraction].
// Mouse handlers keep receiving events while locked.
//
// # Picking
//
// [PickProp], [PickWorldPosition], [ProjectToPixel] and friends answer
// spatial queries against any Surface. Pixels are always [PixelCoord]s with
// a top-left origin; [DisplayCoord] is the bottom-left buffer space and
// [ProportionalCoord] is resolution independent.
//
// # Running
//
// [Run] opens an ebiten window for a Scene. For full control implement
// [ebiten.Game] yourself and call [EbitenInput.Update], [Scene.Update] and
// [Scene.Draw]. Camera fly-to animations use [gween]; lifecycle
// notifications can be bridged to a [Donburi] world with the viewport/ecs
// package.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package viewport
