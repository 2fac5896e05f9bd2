// Package howitzer is a small 3D artillery game for [Ebitengine]: a tank
// built from a hierarchical scene graph, a camera with several projection
// families, and a projectile/target scoring loop.
//
// # Quick start
//
// The simplest way to play is [Run], which creates a window and game loop
// for you:
//
//	scene := howitzer.NewScene(nil) // nil uses the bundled tank
//	howitzer.Run(scene, howitzer.RunConfig{
//		Title: "Howitzer", Width: 1024, Height: 768,
//	})
//
// For full control, implement [ebiten.Game] yourself, call [Scene.Update]
// once per tick and [Scene.Draw] with any [Drawer]. [ScreenDrawer] draws to
// an [ebiten.Image]:
//
//	d := howitzer.NewScreenDrawer(screen)
//	scene.Draw(d, float64(w), float64(h))
//
// # Scene graph
//
// The tank is a [Graph] of [Node] values addressed by [NodeID]. Each node
// has a translation, rotation in degrees, scale, optional color and a
// [Primitive]. World transforms compose root-first; a node with
// InheritScale false keeps its parent's translation and rotation but not
// its scale.
//
// Graphs are usually loaded from JSON with [LoadDescription]:
//
//	g, err := howitzer.LoadDescription(data)
//	scene := howitzer.NewScene(g)
//
// # Commands
//
// Every state change goes through a [Command]. [Scene.Apply] runs one
// immediately; [Scene.Queue] defers it to the next Update, which is where
// keyboard input and [TestRunner] scripts feed in.
//
// # Camera
//
// [Camera] holds four presets (front, left, top, playground), orthographic
// and perspective projections, an axonometric/oblique family switch for the
// playground view, zoom, wireframe and a four-way multi-view. Preset changes
// tween over Camera.TransitionSeconds (via [gween]).
//
// # Scoring
//
// Fired projectiles follow a ballistic arc. Landing on the target scores
// [HitPoints]; leaving the playing area ends the streak. The best score is
// kept in a [KeyValueStore] (see howitzer/store) and game events can be
// forwarded to an [EventSink] (see howitzer/ecs for the [Donburi] adapter).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package howitzer
