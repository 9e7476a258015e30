package marionette

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func globalTranslation(n *Node) mgl32.Vec3 {
	return mgl32.Vec3{
		n.GlobalTransform.At(0, 3),
		n.GlobalTransform.At(1, 3),
		n.GlobalTransform.At(2, 3),
	}
}

func TestSkeletonNodeDefaults(t *testing.T) {
	sk := NewSkeleton()
	n := sk.NewNode("root", nil)

	vec3Near(t, n.Scale, mgl32.Vec3{1, 1, 1}, "Scale")
	quatNear(t, n.Rotation, mgl32.QuatIdent(), "Rotation")
	if n.LocalTransform != mgl32.Ident4() {
		t.Error("new node's local transform should be identity")
	}
	if n.Index() != 0 {
		t.Errorf("Index = %d, want 0", n.Index())
	}
}

func TestSkeletonIndicesAreTablePositions(t *testing.T) {
	sk := NewSkeleton()
	a := sk.NewNode("a", nil)
	b := sk.NewNode("b", a)
	c := sk.NewNode("c", b)

	for i, n := range []*Node{a, b, c} {
		if n.Index() != i {
			t.Errorf("node %q Index = %d, want %d", n.Name, n.Index(), i)
		}
		if sk.Node(i) != n {
			t.Errorf("Node(%d) != %q", i, n.Name)
		}
	}
	if sk.Len() != 3 {
		t.Errorf("Len = %d, want 3", sk.Len())
	}
}

func TestSkeletonFind(t *testing.T) {
	sk := NewSkeleton()
	sk.NewNode("hips", nil)
	spine := sk.NewNode("spine", sk.Find("hips"))

	if sk.Find("spine") != spine {
		t.Error("Find(spine) returned wrong node")
	}
	if sk.Find("missing") != nil {
		t.Error("Find(missing) should be nil")
	}
}

func TestSkeletonHierarchy(t *testing.T) {
	sk := NewSkeleton()
	root := sk.NewNode("root", nil)
	child := sk.NewNode("child", root)
	orphan := sk.NewNode("orphan", nil)

	if len(sk.Roots()) != 2 {
		t.Fatalf("Roots = %d, want 2", len(sk.Roots()))
	}
	if len(root.Children()) != 1 || root.Children()[0] != child {
		t.Error("root should have exactly [child]")
	}
	if child.Parent != root {
		t.Error("child.Parent != root")
	}
	if orphan.Parent != nil {
		t.Error("orphan should have no parent")
	}
}

func TestNewNodeForeignParentPanics(t *testing.T) {
	sk1 := NewSkeleton()
	sk2 := NewSkeleton()
	foreign := sk1.NewNode("foreign", nil)

	expectPanic(t, func() { sk2.NewNode("child", foreign) })
}

func TestCalculateTransformsComposesGlobals(t *testing.T) {
	sk := NewSkeleton()
	root := sk.NewNode("root", nil)
	child := sk.NewNode("child", root)

	root.Translation = mgl32.Vec3{10, 0, 0}
	child.Translation = mgl32.Vec3{5, 0, 0}
	sk.CalculateTransforms()

	vec3Near(t, globalTranslation(root), mgl32.Vec3{10, 0, 0}, "root global")
	vec3Near(t, globalTranslation(child), mgl32.Vec3{15, 0, 0}, "child global")
}

func TestCalculateTransformsRotatesChildren(t *testing.T) {
	sk := NewSkeleton()
	root := sk.NewNode("root", nil)
	child := sk.NewNode("child", root)

	root.Translation = mgl32.Vec3{10, 0, 0}
	root.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1})
	child.Translation = mgl32.Vec3{1, 0, 0}
	sk.CalculateTransforms()

	// Child's local +X offset rotates into the parent's +Y.
	vec3Near(t, globalTranslation(child), mgl32.Vec3{10, 1, 0}, "child global")
}

func TestCalculateTransformsSkipsAnimatedLocals(t *testing.T) {
	sk := NewSkeleton()
	n := sk.NewNode("n", nil)
	n.Translation = mgl32.Vec3{1, 2, 3}

	// Pretend a sampler wrote this local transform.
	n.animated = true
	n.LocalTransform = mgl32.Translate3D(9, 9, 9)
	sk.CalculateTransforms()

	vec3Near(t, globalTranslation(n), mgl32.Vec3{9, 9, 9}, "animated global")

	// Once the marker clears, the static pose takes over again.
	n.animated = false
	sk.CalculateTransforms()
	vec3Near(t, globalTranslation(n), mgl32.Vec3{1, 2, 3}, "rest global")
}

func TestSetPoseRefreshesLocalTransform(t *testing.T) {
	sk := NewSkeleton()
	n := sk.NewNode("n", nil)

	n.SetPose(mgl32.Vec3{4, 5, 6}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})

	if n.LocalTransform.At(0, 3) != 4 || n.LocalTransform.At(1, 3) != 5 || n.LocalTransform.At(2, 3) != 6 {
		t.Errorf("LocalTransform translation column = %v", n.LocalTransform.Col(3))
	}
}

func TestDeepChainGlobals(t *testing.T) {
	sk := NewSkeleton()
	parent := sk.NewNode("0", nil)
	parent.Translation = mgl32.Vec3{1, 0, 0}
	for i := 1; i < 10; i++ {
		n := sk.NewNode("n", parent)
		n.Translation = mgl32.Vec3{1, 0, 0}
		parent = n
	}
	sk.CalculateTransforms()

	vec3Near(t, globalTranslation(parent), mgl32.Vec3{10, 0, 0}, "leaf global")
}
