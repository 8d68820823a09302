// Package ember is a layered particle-scene engine for [Ebitengine].
//
// Ember animates three kinds of procedural scenes on a 2D canvas: a drifting
// depth-projected particle field, an interactive field whose particles connect
// to nearby neighbors and react to the pointer, and a falling-glyph "digital
// rain" effect. Scenes are frame-gated to a target rate and degrade visual
// quality automatically when the host cannot keep up, so the engine stays
// usable on constrained devices without unbounded memory or CPU growth.
//
// # Quick start
//
// Create a [Config] for the device class and hand it to a [SceneOrchestrator]
// together with the host environment:
//
//	cfg := ember.ConfigFor(ember.DeviceDesktop)
//	orc := ember.NewOrchestrator(cfg, 960, 540, ember.Env{
//		NewCanvas: func(w, h int) ember.Canvas { return ember.NewImageCanvas(w, h, 1) },
//		Clock:     ember.NewSystemClock(),
//		Frames:    requester,
//	})
//	orc.Start()
//
// The requester is the host's "run this on the next frame" primitive; in an
// [ebiten.Game] it is typically pumped from Update. See examples/landing.
//
// # Scenes and scheduling
//
// Each scene owns its entities, its own frame gate, and a cancellable
// animation loop. A shared [Tuning] carries the quality scalar and entity
// counts; the scheduler lowers both under sustained low frame rates and lets
// quality (but not counts) recover. The [Lifecycle] pauses scenes when the
// host reports the surface hidden, reclaims oversized buffers periodically,
// and rebuilds scenes after a canvas loss.
//
// Tweens for the intro handoff use [gween].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package ember
