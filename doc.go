// Package scrollscape is a tick-driven procedural animation and
// scroll-synchronized focus engine.
//
// Scrollscape owns no loop and no thread. The host (a game loop, a renderer,
// a test) calls [Scene.Tick] once per frame with elapsed and delta seconds.
// Within that call motion entities write poses into their nodes, the scroll
// offset is sampled once, and a focus change, if any, is published to the
// single subscriber before Tick returns.
//
// # Quick start
//
//	scene := scrollscape.NewScene()
//	scene.SetLandmarks(scrollscape.MustRegistry(landmarks...))
//	scene.SetScroll(scrollscape.NewScrollControls(3, 0.3))
//	scene.OnFocusChange(func(lm scrollscape.Landmark) {
//		fmt.Println("now showing", lm.Title)
//	})
//
//	car := scrollscape.NewNode("car")
//	scene.Root().AddChild(car)
//	scene.Attach(car, scrollscape.Orbit{Radius: 7, AngularSpeed: 0.35})
//
//	for each frame {
//		scene.Tick(elapsed, delta)
//	}
//
// # Motions
//
// [Orbit] and [Oscillation] are pure functions of elapsed time and replay
// identically after a pause. [Spin] integrates delta time, so its angle after
// a given total time does not depend on frame rate but cannot be recomputed
// from elapsed time alone.
//
// # Focus
//
// The resolver maps the scroll ratio to a landmark index with
// min(N-1, floor(ratio*N*K)), K defaulting to [DefaultOvershoot]. It is
// edge-triggered: the subscriber fires only when the index changes. A large
// single-tick jump delivers only the final landmark.
//
// # Lifecycle
//
// [Entity.Detach] and [Handle.Detach] are idempotent and take effect
// immediately, even mid-tick. Disposing a node detaches the entities that
// write to it.
//
// Focus changes can also be forwarded to a [Donburi] world through the
// adapter in scrollscape/ecs.
//
// [Donburi]: https://github.com/yohamta/donburi
package scrollscape
