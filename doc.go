// Package marionette is a keyframe animation sampling and blending library
// for 3D transform hierarchies.
//
// Marionette does not render anything. It owns exactly one problem: given
// pre-baked keyframe tracks and a playback time, compute interpolated local
// transforms for the nodes of a [Skeleton] and either write them directly or
// blend several animations together with per-animation weights. The host
// application (renderer, asset loader, game loop) supplies everything else.
//
// # Skeletons and nodes
//
// A [Skeleton] is a flat table of [Node] values forming a tree. Animations
// address nodes by table index, so an [Animation] built for a skeleton layout
// can be shared between any number of skeleton instances with that layout:
//
//	sk := marionette.NewSkeleton()
//	hips := sk.NewNode("hips", nil)
//	spine := sk.NewNode("spine", hips)
//
// After sampling, [Skeleton.CalculateTransforms] composes global transforms
// down the tree.
//
// # Sampling and blending
//
// A [Mixer] applies animations to one skeleton. Single-animation playback is
// one call:
//
//	mixer := marionette.NewMixer(sk)
//	mixer.ApplyDirect(walk, t)
//
// Blending several animations uses a bracket:
//
//	mixer.Begin()
//	mixer.Apply(walk, t, 1.0)
//	mixer.Apply(wave, t, 0.4)
//	mixer.End()
//
// [Player] layers playback management on top: looping, speed, queueing, and
// eased crossfades (via [gween]) between clips.
//
// # Threading
//
// Marionette is single-threaded by design, matching a game frame loop. A
// Mixer or Player must not be shared between goroutines without external
// synchronization; independent skeletons with independent mixers are safe.
//
// [gween]: https://github.com/tanema/gween
package marionette
