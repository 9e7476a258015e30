package marionette

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Node is one joint in a skeleton's transform hierarchy. A single flat struct
// is used for all nodes to avoid interface dispatch on the per-frame sampling
// path.
//
// Translation, Rotation, and Scale are the node's current static pose — the
// values a sampler reads through when an animation has no channel for the
// node, and the values the node falls back to when no animation touches it.
// LocalTransform is the matrix slot samplers write into; GlobalTransform is
// derived from it by Skeleton.CalculateTransforms.
type Node struct {
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node
	index    int // position in the owning skeleton's node table

	// Static pose
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3

	// Computed
	LocalTransform  mgl32.Mat4
	GlobalTransform mgl32.Mat4

	// animated marks nodes whose LocalTransform was written by a sampler
	// this pass. CalculateTransforms skips recomposing their local matrix
	// from the static pose.
	animated bool
}

// Index returns the node's position in its skeleton's node table. Tracks
// address nodes by this index.
func (n *Node) Index() int {
	return n.index
}

// Animated reports whether a sampler touched this node in the most recent
// apply pass.
func (n *Node) Animated() bool {
	return n.animated
}

// Children returns the child list. The returned slice MUST NOT be mutated by
// the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// SetPose sets the node's static pose and refreshes its local transform.
func (n *Node) SetPose(translation mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) {
	n.Translation = translation
	n.Rotation = rotation
	n.Scale = scale
	n.calculateLocalTransform()
}

// poseTransform returns the static pose as a decomposed Transform.
func (n *Node) poseTransform() Transform {
	return Transform{Translation: n.Translation, Rotation: n.Rotation, Scale: n.Scale}
}

// calculateLocalTransform recomposes LocalTransform from the static pose.
// Skipped for animated nodes, whose LocalTransform was written by a sampler.
func (n *Node) calculateLocalTransform() {
	if n.animated {
		return
	}
	pose := n.poseTransform()
	n.LocalTransform = pose.Mat4()
}
