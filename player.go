package marionette

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// LoopForever makes a clip repeat until replaced.
const LoopForever = -1

// clip is one playing (or queued) animation with its playback state.
type clip struct {
	anim  *Animation
	time  float32
	speed float32
	loops int // plays remaining, LoopForever for endless
}

// advance moves the clip's local time by dt*speed, wrapping or clamping at
// the clip boundary. It returns the number of wraps that occurred and
// whether the clip has finished its final play. Negative speeds wrap at 0.
func (c *clip) advance(dt float32) (wraps int, finished bool) {
	d := c.anim.Duration
	if d <= 0 {
		return 0, c.loops != LoopForever
	}
	c.time += dt * c.speed

	for c.time >= d || c.time < 0 {
		if c.loops != LoopForever {
			c.loops--
			if c.loops <= 0 {
				if c.time >= d {
					c.time = d
				} else {
					c.time = 0
				}
				return wraps, true
			}
		}
		if c.time >= d {
			c.time -= d
		} else {
			c.time += d
		}
		wraps++
	}
	return wraps, false
}

// Player manages clip playback on top of a Mixer: looping, speed, queueing,
// and eased crossfades. Call Update once per frame with the elapsed seconds.
//
// There is no global player registry — users call Update themselves, same as
// driving a Mixer by hand.
type Player struct {
	mixer *Mixer

	current  *clip
	previous *clip // fading out during a crossfade
	queued   *clip
	fade     *gween.Tween
	weight   float32 // current crossfade weight toward current

	// Paused freezes Update without losing playback state.
	Paused bool

	sink EventSink
}

// NewPlayer creates a player driving the given skeleton through its own
// mixer.
func NewPlayer(skeleton *Skeleton) *Player {
	return &Player{mixer: NewMixer(skeleton)}
}

// Mixer returns the underlying mixer. Do not open brackets on it while the
// player is mid-crossfade.
func (p *Player) Mixer() *Mixer {
	return p.mixer
}

// SetEventSink sets the destination for loop/end events. A nil sink disables
// notifications.
func (p *Player) SetEventSink(sink EventSink) {
	p.sink = sink
}

// Current returns the animation currently playing, or nil.
func (p *Player) Current() *Animation {
	if p.current == nil {
		return nil
	}
	return p.current.anim
}

// Time returns the current clip's local playback time.
func (p *Player) Time() float32 {
	if p.current == nil {
		return 0
	}
	return p.current.time
}

// Fading reports whether a crossfade is in flight.
func (p *Player) Fading() bool {
	return p.fade != nil
}

// FadeWeight returns the current blend weight toward the fade target: 0 at
// the start of a crossfade, 1 once it completes (or when no fade is active).
func (p *Player) FadeWeight() float32 {
	if p.fade == nil {
		return 1
	}
	return p.weight
}

// Play starts anim immediately, replacing whatever is playing. loops is the
// number of times to play the clip (LoopForever for endless); speed scales
// playback rate and may be negative to play backwards (negative playback
// starts at the clip end).
func (p *Player) Play(anim *Animation, loops int, speed float32) {
	p.clearCurrent()
	p.current = newClip(anim, loops, speed)
}

// Queue schedules anim to start once the current clip finishes. Only one
// clip can be queued; queueing again replaces it. With nothing playing,
// Queue behaves as Play.
func (p *Player) Queue(anim *Animation, loops int, speed float32) {
	if p.current == nil {
		p.Play(anim, loops, speed)
		return
	}
	p.queued = newClip(anim, loops, speed)
}

// CrossFade starts anim and blends from the currently playing clip to it
// over duration seconds, shaping the blend weight with fn (nil means
// ease.Linear, matching a plain linear fade). With nothing playing it
// behaves as Play.
func (p *Player) CrossFade(anim *Animation, loops int, speed, duration float32, fn ease.TweenFunc) {
	if p.current == nil || duration <= 0 {
		p.Play(anim, loops, speed)
		return
	}
	if fn == nil {
		fn = ease.Linear
	}
	if p.previous != nil {
		// Fade already in flight: drop the outgoing clip and fade from the
		// mid-blend current instead of tracking N-deep fade chains.
		p.mixer.Remove(p.previous.anim)
	}
	p.previous = p.current
	p.current = newClip(anim, loops, speed)
	p.fade = gween.New(0, 1, duration, fn)
	p.weight = 0
}

// Stop halts playback and clears any queued clip. Nodes return to their
// static pose on the skeleton's next CalculateTransforms.
func (p *Player) Stop() {
	p.clearCurrent()
}

// Update advances playback by dt seconds and applies the result to the
// skeleton. Does nothing while paused or stopped.
func (p *Player) Update(dt float32) {
	if p.Paused || p.current == nil {
		return
	}

	wraps, finished := p.current.advance(dt)
	for i := 0; i < wraps; i++ {
		p.emit(EventAnimationLoop)
	}

	if p.previous != nil {
		// The outgoing clip keeps advancing during the fade, wrapping
		// silently.
		p.previous.advance(dt)
		w, done := p.fade.Update(dt)
		p.weight = w
		p.mixer.ApplyPair(p.previous.anim, p.previous.time, p.current.anim, p.current.time, w)
		if done {
			p.mixer.Remove(p.previous.anim)
			p.previous = nil
			p.fade = nil
		}
	} else {
		p.mixer.ApplyDirect(p.current.anim, p.current.time)
	}

	if finished {
		p.emit(EventAnimationEnd)
		next := p.queued
		p.queued = nil
		p.clearCurrent()
		if next != nil {
			p.current = next
		}
	}
}

func newClip(anim *Animation, loops int, speed float32) *clip {
	c := &clip{anim: anim, speed: speed, loops: loops}
	if loops != LoopForever && loops < 1 {
		c.loops = 1
	}
	if speed < 0 {
		c.time = anim.Duration
	}
	return c
}

func (p *Player) clearCurrent() {
	if p.previous != nil {
		p.mixer.Remove(p.previous.anim)
		p.previous = nil
		p.fade = nil
	}
	if p.current != nil {
		p.mixer.Remove(p.current.anim)
		p.current = nil
	}
}

func (p *Player) emit(kind EventType) {
	if p.sink == nil {
		return
	}
	p.sink.EmitEvent(AnimationEvent{
		Type:      kind,
		Animation: p.current.anim.Name,
		Time:      p.current.time,
		LoopsLeft: p.current.loops,
	})
}
