package howitzer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec3(t *testing.T, name string, got, want mgl64.Vec3) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s = %v, want %v", name, got, want)
			return
		}
	}
}

func assertMatrix(t *testing.T, name string, got, want mgl64.Mat4) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func vec3(x, y, z float64) *mgl64.Vec3 {
	return &mgl64.Vec3{x, y, z}
}

func boolPtr(b bool) *bool {
	return &b
}

func transformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// --- LocalTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	n := &Node{Scale: mgl64.Vec3{1, 1, 1}}
	assertMatrix(t, "local", LocalTransform(n), mgl64.Ident4())
}

func TestLocalTransformTranslation(t *testing.T) {
	n := &Node{Translation: mgl64.Vec3{3, -2, 5}, Scale: mgl64.Vec3{1, 1, 1}}
	assertVec3(t, "origin", transformPoint(LocalTransform(n), mgl64.Vec3{}), mgl64.Vec3{3, -2, 5})
}

func TestLocalTransformScaleAppliedBeforeTranslation(t *testing.T) {
	n := &Node{Translation: mgl64.Vec3{5, 0, 0}, Scale: mgl64.Vec3{2, 1, 1}}
	assertVec3(t, "point", transformPoint(LocalTransform(n), mgl64.Vec3{1, 0, 0}), mgl64.Vec3{7, 0, 0})
}

func TestLocalTransformRotationZ(t *testing.T) {
	n := &Node{Rotation: mgl64.Vec3{0, 0, 90}, Scale: mgl64.Vec3{1, 1, 1}}
	assertVec3(t, "x axis", transformPoint(LocalTransform(n), mgl64.Vec3{1, 0, 0}), mgl64.Vec3{0, 1, 0})
}

func TestLocalTransformOrder(t *testing.T) {
	n := &Node{
		Translation: mgl64.Vec3{1, 2, 3},
		Rotation:    mgl64.Vec3{10, 20, 30},
		Scale:       mgl64.Vec3{2, 3, 4},
	}
	want := mgl64.Translate3D(1, 2, 3).
		Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(30))).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(20))).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(10))).
		Mul4(mgl64.Scale3D(2, 3, 4))
	assertMatrix(t, "local", LocalTransform(n), want)
}

func TestLocalTransformRotationAppliesXFirst(t *testing.T) {
	// X by 90 takes +Y to +Z, then Z by 90 leaves +Z alone.
	n := &Node{Rotation: mgl64.Vec3{90, 0, 90}, Scale: mgl64.Vec3{1, 1, 1}}
	assertVec3(t, "y axis", transformPoint(LocalTransform(n), mgl64.Vec3{0, 1, 0}), mgl64.Vec3{0, 0, 1})
}

// --- WorldTransform ---

func buildChain(t *testing.T) (*Graph, NodeID, NodeID) {
	t.Helper()
	g, err := NewGraph(NodeSpec{Name: "root", Translation: mgl64.Vec3{1, 0, 0}, Rotation: mgl64.Vec3{0, 45, 0}})
	if err != nil {
		t.Fatal(err)
	}
	parent, err := g.AddChild(g.Root(), NodeSpec{Name: "parent", Translation: mgl64.Vec3{0, 2, 0}, Scale: vec3(3, 3, 3)})
	if err != nil {
		t.Fatal(err)
	}
	child, err := g.AddChild(parent, NodeSpec{Name: "child", Translation: mgl64.Vec3{1, 0, 0}, Rotation: mgl64.Vec3{0, 0, 30}})
	if err != nil {
		t.Fatal(err)
	}
	return g, parent, child
}

func TestWorldTransformRootEqualsLocal(t *testing.T) {
	g, _, _ := buildChain(t)
	assertMatrix(t, "root", g.WorldTransform(g.Root()), LocalTransform(g.Node(g.Root())))
}

func TestWorldTransformComposesRootFirst(t *testing.T) {
	g, parent, child := buildChain(t)
	want := g.WorldTransform(parent).Mul4(LocalTransform(g.Node(child)))
	assertMatrix(t, "child", g.WorldTransform(child), want)

	// The reversed product is a different matrix for this chain.
	reversed := LocalTransform(g.Node(child)).Mul4(g.WorldTransform(parent))
	same := true
	for i := range want {
		if math.Abs(want[i]-reversed[i]) > 1e-6 {
			same = false
		}
	}
	if same {
		t.Fatal("test chain does not distinguish composition order")
	}
}

func TestWorldTransformReadsCurrentState(t *testing.T) {
	g, parent, child := buildChain(t)
	before := g.WorldTransform(child)
	g.Node(parent).Translation[1] = 10
	after := g.WorldTransform(child)
	assertNear(t, "dy", after[13]-before[13], 8)
}

func TestWorldTransformUnknownHandle(t *testing.T) {
	g, _, _ := buildChain(t)
	assertMatrix(t, "unknown", g.WorldTransform(99), mgl64.Ident4())
	assertMatrix(t, "negative", g.WorldTransform(NoParent), mgl64.Ident4())
}

// --- Scale inheritance ---

func buildScaleExample(t *testing.T, parentScale float64) (*Graph, NodeID, NodeID) {
	t.Helper()
	g, err := NewGraph(NodeSpec{Name: "root"})
	if err != nil {
		t.Fatal(err)
	}
	parent, _ := g.AddChild(g.Root(), NodeSpec{
		Name:        "parent",
		Translation: mgl64.Vec3{4, 1, 0},
		Rotation:    mgl64.Vec3{0, 90, 0},
		Scale:       vec3(parentScale, parentScale*2, parentScale),
	})
	child, _ := g.AddChild(parent, NodeSpec{
		Name:         "child",
		Translation:  mgl64.Vec3{1, 0, 0},
		Scale:        vec3(0.5, 0.5, 0.5),
		InheritScale: boolPtr(false),
	})
	return g, parent, child
}

func TestNonInheritedScaleIndependentOfParentScale(t *testing.T) {
	for _, k := range []float64{0.25, 1, 3, 10} {
		g, _, child := buildScaleExample(t, k)
		ref, _, refChild := buildScaleExample(t, 1)
		assertMatrix(t, "child world", g.WorldTransform(child), ref.WorldTransform(refChild))
	}
}

func TestNonInheritedScaleFollowsParentTranslationAndRotation(t *testing.T) {
	g, parent, child := buildScaleExample(t, 3)

	// Parent yaw 90 maps the child's +X offset onto -Z.
	assertVec3(t, "position", transformPoint(g.WorldTransform(child), mgl64.Vec3{}), mgl64.Vec3{4, 1, -1})

	g.Node(parent).Translation = mgl64.Vec3{-2, 0, 6}
	assertVec3(t, "moved", transformPoint(g.WorldTransform(child), mgl64.Vec3{}), mgl64.Vec3{-2, 0, 5})

	// Child's own scale still applies: a unit X vector is half length.
	w := g.WorldTransform(child)
	assertNear(t, "x scale", w.Mul4x1(mgl64.Vec4{1, 0, 0, 0}).Vec3().Len(), 0.5)
}

func TestInheritedScaleCompounds(t *testing.T) {
	g, err := NewGraph(NodeSpec{Name: "root", Scale: vec3(2, 2, 2)})
	if err != nil {
		t.Fatal(err)
	}
	child, _ := g.AddChild(g.Root(), NodeSpec{Name: "child", Scale: vec3(3, 3, 3)})
	assertNear(t, "scale", g.WorldTransform(child).Mul4x1(mgl64.Vec4{1, 0, 0, 0}).Vec3().Len(), 6)
}

func TestNonInheritedScaleZeroParentScale(t *testing.T) {
	g, parent, child := buildScaleExample(t, 1)
	g.Node(parent).Scale = mgl64.Vec3{0, 1, 1}
	w := g.WorldTransform(child)
	for i, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("world[%d] = %v", i, v)
		}
	}
}

// --- WorldPose ---

func TestWorldPoseMuzzle(t *testing.T) {
	g := DefaultTank()
	id, ok := g.Lookup(NodeCannon)
	if !ok {
		t.Fatal("no cannon")
	}
	pose := g.WorldPose(id, muzzleOffset, muzzleDirection)
	assertVec3(t, "position", pose.Position, mgl64.Vec3{2.7, 1.65, 0})
	assertVec3(t, "direction", pose.Direction, mgl64.Vec3{1, 0, 0})
}

func TestWorldPoseFollowsPitchAndCabin(t *testing.T) {
	g := DefaultTank()
	id, _ := g.Lookup(NodeCannon)
	g.Find(NodeCannonBase).Rotation[2] = 90
	pose := g.WorldPose(id, muzzleOffset, muzzleDirection)
	assertVec3(t, "pitched up", pose.Direction, mgl64.Vec3{0, 1, 0})

	g.Find(NodeCannonBase).Rotation[2] = 0
	g.Find(NodeCabin).Rotation[1] = 90
	pose = g.WorldPose(id, muzzleOffset, muzzleDirection)
	assertVec3(t, "yawed", pose.Direction, mgl64.Vec3{0, 0, -1})
}

func TestWorldPoseDirectionIsUnit(t *testing.T) {
	g, _, child := buildScaleExample(t, 7)
	pose := g.WorldPose(child, mgl64.Vec3{}, mgl64.Vec3{3, 4, 0})
	assertNear(t, "len", pose.Direction.Len(), 1)
}

func TestWorldPoseZeroDirection(t *testing.T) {
	g, _, child := buildScaleExample(t, 2)
	pose := g.WorldPose(child, mgl64.Vec3{}, mgl64.Vec3{})
	if pose.Direction != (mgl64.Vec3{}) {
		t.Errorf("direction = %v, want zero", pose.Direction)
	}

	g.Node(child).Scale = mgl64.Vec3{}
	pose = g.WorldPose(child, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	if pose.Direction != (mgl64.Vec3{}) {
		t.Errorf("degenerate direction = %v, want zero", pose.Direction)
	}
}

// --- helpers ---

func TestWrapDegrees(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0}, {359, 359}, {360, 0}, {380, 20}, {-20, 340}, {-360, 0}, {725, 5},
	}
	for _, tt := range tests {
		assertNear(t, "wrap", wrapDegrees(tt.in), tt.want)
	}
}

func TestNormalize(t *testing.T) {
	assertVec3(t, "unit", normalize(mgl64.Vec3{0, 0, 5}), mgl64.Vec3{0, 0, 1})
	assertVec3(t, "tiny", normalize(mgl64.Vec3{1e-15, 0, 0}), mgl64.Vec3{})
	assertVec3(t, "nan", normalize(mgl64.Vec3{math.NaN(), 0, 0}), mgl64.Vec3{})
}
