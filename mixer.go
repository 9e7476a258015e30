package marionette

// transformPool is a free list of blend-buffer transforms. Entries are reset
// to identity on obtain and must not be retained past the End of the bracket
// that obtained them. Exists to keep per-frame blending allocation-free
// after warmup.
type transformPool struct {
	free []*Transform
}

func (p *transformPool) obtain() *Transform {
	if n := len(p.free); n > 0 {
		t := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		t.SetIdentity()
		return t
	}
	t := &Transform{}
	t.SetIdentity()
	return t
}

func (p *transformPool) release(t *Transform) {
	p.free = append(p.free, t)
}

// Mixer samples animations and writes the results into one skeleton's node
// table. It supports two modes: ApplyDirect for a single animation, and a
// Begin/Apply.../End bracket that accumulates several weighted animations in
// a per-node blend buffer before committing them.
//
// Calling a bracket method out of order is a programmer error and panics.
// At most one bracket is open per mixer at a time, enforced by that state
// machine rather than by locking; use one mixer per goroutine.
type Mixer struct {
	skeleton *Skeleton
	applying bool
	blend    map[int]*Transform // node table index -> accumulated transform
	pool     transformPool
}

// NewMixer creates a mixer targeting the given skeleton. The blend buffer
// and its pool are owned by this mixer; independent mixers never share
// state.
func NewMixer(skeleton *Skeleton) *Mixer {
	return &Mixer{
		skeleton: skeleton,
		blend:    make(map[int]*Transform),
	}
}

// Skeleton returns the skeleton this mixer writes into.
func (m *Mixer) Skeleton() *Skeleton {
	return m.skeleton
}

// Applying reports whether a blend bracket is currently open.
func (m *Mixer) Applying() bool {
	return m.applying
}

// ApplyDirect samples every track of anim at time and writes the resulting
// local transforms straight into the skeleton, then recomputes global
// transforms. Touched nodes are marked animated. Panics if a blend bracket
// is open.
func (m *Mixer) ApplyDirect(anim *Animation, time float32) {
	if m.applying {
		panic("marionette: ApplyDirect inside an open blend bracket")
	}
	for i := range anim.Tracks {
		m.applyTrackDirect(&anim.Tracks[i], time)
	}
	m.skeleton.CalculateTransforms()
}

// Begin opens a blend bracket. Must be followed by one or more Apply calls
// and then End. Panics if a bracket is already open.
func (m *Mixer) Begin() {
	if m.applying {
		panic("marionette: Begin while a blend bracket is already open")
	}
	m.applying = true
}

// Apply samples anim at time and accumulates it into the blend buffer with
// the given weight. Panics if no bracket is open.
//
// Apply is not commutative: a node touched by an earlier Apply in the same
// bracket but absent from this animation is decayed toward its static pose
// by weight, so lower-weight animations applied later soften earlier ones
// rather than freezing them.
func (m *Mixer) Apply(anim *Animation, time, weight float32) {
	if !m.applying {
		panic("marionette: Apply outside a blend bracket")
	}

	for index := range m.blend {
		m.skeleton.nodes[index].animated = false
	}

	for i := range anim.Tracks {
		m.applyTrackBlended(&anim.Tracks[i], time, weight)
	}

	// Nodes accumulated by earlier Apply calls that this animation does not
	// reference decay toward their static pose instead of keeping a stale
	// full-weight value.
	for index, t := range m.blend {
		node := m.skeleton.nodes[index]
		if !node.animated {
			node.animated = true
			t.LerpTRS(node.Translation, node.Rotation, node.Scale, weight)
		}
	}
}

// End commits the blend buffer: every accumulated transform is composed into
// its node's local transform, buffer entries are returned to the pool, the
// buffer is cleared, and global transforms are recomputed. Panics if no
// bracket is open.
func (m *Mixer) End() {
	if !m.applying {
		panic("marionette: End outside a blend bracket")
	}
	for index, t := range m.blend {
		m.skeleton.nodes[index].LocalTransform = t.Mat4()
		m.pool.release(t)
		delete(m.blend, index)
	}
	m.skeleton.CalculateTransforms()
	m.applying = false
}

// ApplyPair blends animB at timeB onto animA at timeA by weight. A weight of
// 0 (or nil animB) is exactly ApplyDirect(animA, timeA); a weight of 1 (or
// nil animA) is exactly ApplyDirect(animB, timeB). Anything between runs a
// full Begin/Apply/End bracket with animA at weight 1.
func (m *Mixer) ApplyPair(animA *Animation, timeA float32, animB *Animation, timeB, weight float32) {
	switch {
	case animB == nil || weight == 0:
		m.ApplyDirect(animA, timeA)
	case animA == nil || weight == 1:
		m.ApplyDirect(animB, timeB)
	default:
		m.Begin()
		m.Apply(animA, timeA, 1)
		m.Apply(animB, timeB, weight)
		m.End()
	}
}

// Remove clears the animated marker on every node anim references. Call when
// switching away from an animation so CalculateTransforms resumes composing
// those nodes from their static pose.
func (m *Mixer) Remove(anim *Animation) {
	for i := range anim.Tracks {
		m.skeleton.nodes[anim.Tracks[i].NodeIndex].animated = false
	}
}

// applyTrackDirect writes one sampled track straight into its node.
func (m *Mixer) applyTrackDirect(tr *Track, time float32) {
	node := m.skeleton.nodes[tr.NodeIndex]
	node.animated = true
	sampled := sampleTrack(tr, node, time)
	node.LocalTransform = sampled.Mat4()
}

// applyTrackBlended accumulates one sampled track into the blend buffer.
// The first animation to touch a node establishes the baseline: at full
// weight the sample is taken verbatim, otherwise the node's static pose is
// interpolated toward the sample. Later animations interpolate the buffered
// value toward their sample.
func (m *Mixer) applyTrackBlended(tr *Track, time, weight float32) {
	node := m.skeleton.nodes[tr.NodeIndex]
	node.animated = true
	sampled := sampleTrack(tr, node, time)

	full := weight > 1-blendEpsilon
	if t, ok := m.blend[tr.NodeIndex]; ok {
		if full {
			t.Set(sampled)
		} else {
			t.Lerp(sampled, weight)
		}
		return
	}

	t := m.pool.obtain()
	if full {
		t.Set(sampled)
	} else {
		t.SetTRS(node.Translation, node.Rotation, node.Scale)
		t.Lerp(sampled, weight)
	}
	m.blend[tr.NodeIndex] = t
}
