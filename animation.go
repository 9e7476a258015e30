package marionette

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// frameStride is the number of floats per keyframe entry in a track's Data
// array. Translation and scale keyframes pack 3 components into a 4-wide
// slot so every channel indexes Data uniformly.
const frameStride = 4

// Channel locates one animated property's keyframes inside a track's shared
// Times and Data arrays. A negative Offset means the property is not
// animated and the node's static pose value is used instead.
type Channel struct {
	Offset int32 // first keyframe entry, or -1 when absent
	Count  int32 // number of keyframes
}

// Present reports whether the channel carries keyframes.
func (c Channel) Present() bool {
	return c.Offset >= 0
}

// Track holds the keyframes animating a single node: up to three channels
// (translation, rotation, scale) indexing into shared time and data arrays.
// Times is sorted ascending within each channel; Data holds one 4-float
// entry per time entry (xyz_ for vectors, xyzw for quaternions).
type Track struct {
	NodeIndex   int
	Translation Channel
	Rotation    Channel
	Scale       Channel
	Times       []float32
	Data        []float32
}

// Animation is a named, immutable collection of tracks, one per animated
// node. Tracks address nodes by skeleton table index, so one Animation can
// drive any skeleton sharing the layout it was built for.
type Animation struct {
	Name     string
	Duration float32
	Tracks   []Track
}

// --- Channel sampling ---

// keyframeIndexAt locates the first keyframe of the interval containing time
// by linear scan from the channel base. Times outside the channel's range
// fall back to entry 0 and callers interpolate from there, extrapolating
// rather than clamping. Do not change this to clamp — existing animations
// depend on the boundary behavior.
func keyframeIndexAt(times []float32, base, count int, time float32) int {
	last := base + count - 1
	for i := base; i < last; i++ {
		if time >= times[i] && time <= times[i+1] {
			return i
		}
	}
	return 0
}

// vec3At reads the 3-component entry at the given keyframe index.
func vec3At(data []float32, index int) mgl32.Vec3 {
	base := index * frameStride
	return mgl32.Vec3{data[base], data[base+1], data[base+2]}
}

// quatAt reads the 4-component entry at the given keyframe index.
func quatAt(data []float32, index int) mgl32.Quat {
	base := index * frameStride
	return mgl32.Quat{
		V: mgl32.Vec3{data[base], data[base+1], data[base+2]},
		W: data[base+3],
	}
}

// fraction returns the normalized position of time within [start, end],
// treating a degenerate interval as 0.
func fraction(time, start, end float32) float32 {
	if end == start {
		return 0
	}
	return (time - start) / (end - start)
}

// sampleVec3 samples a vector channel at time, falling back to static when
// the channel is absent.
func sampleVec3(c Channel, times, data []float32, time float32, static mgl32.Vec3) mgl32.Vec3 {
	if !c.Present() {
		return static
	}
	base, count := int(c.Offset), int(c.Count)
	if count == 1 {
		return vec3At(data, base)
	}
	index := keyframeIndexAt(times, base, count, time)
	v := vec3At(data, index)
	if index+1 < base+count {
		t := fraction(time, times[index], times[index+1])
		return lerpVec3(v, vec3At(data, index+1), t)
	}
	return v
}

// sampleQuat samples a rotation channel at time, falling back to static when
// the channel is absent.
func sampleQuat(c Channel, times, data []float32, time float32, static mgl32.Quat) mgl32.Quat {
	if !c.Present() {
		return static
	}
	base, count := int(c.Offset), int(c.Count)
	if count == 1 {
		return quatAt(data, base)
	}
	index := keyframeIndexAt(times, base, count, time)
	q := quatAt(data, index)
	if index+1 < base+count {
		t := fraction(time, times[index], times[index+1])
		return slerp(q, quatAt(data, index+1), t)
	}
	return q
}

// sampleTrack samples all three channels of a track at time. Absent channels
// read through to the node's static pose.
func sampleTrack(tr *Track, node *Node, time float32) Transform {
	return Transform{
		Translation: sampleVec3(tr.Translation, tr.Times, tr.Data, time, node.Translation),
		Rotation:    sampleQuat(tr.Rotation, tr.Times, tr.Data, time, node.Rotation),
		Scale:       sampleVec3(tr.Scale, tr.Times, tr.Data, time, node.Scale),
	}
}

// --- Builders ---

// vecKey and quatKey are builder-side staging keyframes.
type vecKey struct {
	time  float32
	value mgl32.Vec3
}

type quatKey struct {
	time  float32
	value mgl32.Quat
}

// TrackBuilder assembles one track's keyframes and packs them into the
// shared Times/Data layout. Keyframes may be added in any order per channel;
// Build sorts each channel by time and rejects duplicate keytimes.
type TrackBuilder struct {
	nodeIndex    int
	translations []vecKey
	rotations    []quatKey
	scales       []vecKey
}

// NewTrackBuilder creates a builder for the node at the given skeleton table
// index.
func NewTrackBuilder(nodeIndex int) *TrackBuilder {
	return &TrackBuilder{nodeIndex: nodeIndex}
}

// Translation adds a translation keyframe.
func (b *TrackBuilder) Translation(time float32, value mgl32.Vec3) *TrackBuilder {
	b.translations = append(b.translations, vecKey{time, value})
	return b
}

// Rotation adds a rotation keyframe.
func (b *TrackBuilder) Rotation(time float32, value mgl32.Quat) *TrackBuilder {
	b.rotations = append(b.rotations, quatKey{time, value})
	return b
}

// Scale adds a scale keyframe.
func (b *TrackBuilder) Scale(time float32, value mgl32.Vec3) *TrackBuilder {
	b.scales = append(b.scales, vecKey{time, value})
	return b
}

// Build packs the staged keyframes into a Track. A channel with no staged
// keyframes is marked absent (offset -1). Returns an error if any channel
// carries duplicate keytimes.
func (b *TrackBuilder) Build() (Track, error) {
	tr := Track{
		NodeIndex:   b.nodeIndex,
		Translation: Channel{Offset: -1},
		Rotation:    Channel{Offset: -1},
		Scale:       Channel{Offset: -1},
	}

	packVec := func(name string, keys []vecKey) (Channel, error) {
		if len(keys) == 0 {
			return Channel{Offset: -1}, nil
		}
		sort.SliceStable(keys, func(i, j int) bool { return keys[i].time < keys[j].time })
		c := Channel{Offset: int32(len(tr.Times)), Count: int32(len(keys))}
		for i, k := range keys {
			if i > 0 && k.time == keys[i-1].time {
				return Channel{}, fmt.Errorf("build track for node %d: duplicate %s keytime %v", b.nodeIndex, name, k.time)
			}
			tr.Times = append(tr.Times, k.time)
			tr.Data = append(tr.Data, k.value[0], k.value[1], k.value[2], 0)
		}
		return c, nil
	}

	var err error
	if tr.Translation, err = packVec("translation", b.translations); err != nil {
		return Track{}, err
	}

	if len(b.rotations) > 0 {
		keys := b.rotations
		sort.SliceStable(keys, func(i, j int) bool { return keys[i].time < keys[j].time })
		tr.Rotation = Channel{Offset: int32(len(tr.Times)), Count: int32(len(keys))}
		for i, k := range keys {
			if i > 0 && k.time == keys[i-1].time {
				return Track{}, fmt.Errorf("build track for node %d: duplicate rotation keytime %v", b.nodeIndex, k.time)
			}
			tr.Times = append(tr.Times, k.time)
			tr.Data = append(tr.Data, k.value.V[0], k.value.V[1], k.value.V[2], k.value.W)
		}
	}

	if tr.Scale, err = packVec("scale", b.scales); err != nil {
		return Track{}, err
	}

	return tr, nil
}

// AnimationBuilder assembles an Animation from tracks. Duration is the
// largest keytime across all tracks unless overridden.
type AnimationBuilder struct {
	name     string
	duration float32
	tracks   []*TrackBuilder
}

// NewAnimationBuilder creates a builder for a named animation.
func NewAnimationBuilder(name string) *AnimationBuilder {
	return &AnimationBuilder{name: name}
}

// Track returns a TrackBuilder for the node at the given skeleton table
// index, creating one on first use.
func (b *AnimationBuilder) Track(nodeIndex int) *TrackBuilder {
	for _, tb := range b.tracks {
		if tb.nodeIndex == nodeIndex {
			return tb
		}
	}
	tb := NewTrackBuilder(nodeIndex)
	b.tracks = append(b.tracks, tb)
	return tb
}

// SetDuration overrides the computed duration.
func (b *AnimationBuilder) SetDuration(d float32) *AnimationBuilder {
	b.duration = d
	return b
}

// Build packs all tracks into an immutable Animation. An animation with zero
// tracks is valid and samples as a no-op.
func (b *AnimationBuilder) Build() (*Animation, error) {
	anim := &Animation{Name: b.name, Duration: b.duration}
	for _, tb := range b.tracks {
		tr, err := tb.Build()
		if err != nil {
			return nil, fmt.Errorf("build animation %q: %w", b.name, err)
		}
		for _, t := range tr.Times {
			if t > anim.Duration && b.duration == 0 {
				anim.Duration = t
			}
		}
		anim.Tracks = append(anim.Tracks, tr)
	}
	return anim, nil
}
