package marionette

// blendEpsilon is the weight tolerance inside which a blend is treated as a
// full overwrite rather than an interpolation.
const blendEpsilon = 1e-6

// EventType distinguishes playback notifications emitted by a Player.
type EventType uint8

const (
	// EventAnimationLoop fires each time a looping clip wraps past its end.
	EventAnimationLoop EventType = iota
	// EventAnimationEnd fires once when a clip finishes its final loop.
	EventAnimationEnd
)

// AnimationEvent carries playback notification data.
type AnimationEvent struct {
	Type      EventType
	Animation string  // Animation.Name of the clip
	Time      float32 // clip-local time at which the event fired
	LoopsLeft int     // remaining loops, -1 when looping forever
}

// EventSink receives playback events from a Player. Set one via
// Player.SetEventSink to observe loops and completions; the ecs submodule
// provides a Donburi-backed implementation.
type EventSink interface {
	EmitEvent(event AnimationEvent)
}
