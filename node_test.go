package howitzer

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewGraphRoot(t *testing.T) {
	g, err := NewGraph(NodeSpec{Name: "root"})
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 1 {
		t.Fatalf("Len = %d, want 1", g.Len())
	}
	root := g.Node(g.Root())
	if root.Parent() != NoParent {
		t.Errorf("root parent = %d, want NoParent", root.Parent())
	}
	if root.Scale != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("default scale = %v", root.Scale)
	}
	if !root.InheritScale {
		t.Error("InheritScale should default to true")
	}
	if root.Color != nil {
		t.Error("Color should default to nil")
	}
}

func TestAddChild(t *testing.T) {
	g, _ := NewGraph(NodeSpec{Name: "root"})
	a, err := g.AddChild(g.Root(), NodeSpec{Name: "a"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.AddChild(g.Root(), NodeSpec{Name: "b", InheritScale: boolPtr(false), Scale: vec3(2, 3, 4)})
	if err != nil {
		t.Fatal(err)
	}
	c, err := g.AddChild(a, NodeSpec{Name: "c"})
	if err != nil {
		t.Fatal(err)
	}

	kids := g.Node(g.Root()).Children()
	if len(kids) != 2 || kids[0] != a || kids[1] != b {
		t.Errorf("root children = %v, want [%d %d]", kids, a, b)
	}
	if g.Node(c).Parent() != a {
		t.Errorf("c parent = %d, want %d", g.Node(c).Parent(), a)
	}
	nb := g.Node(b)
	if nb.InheritScale {
		t.Error("b should not inherit scale")
	}
	if nb.Scale != (mgl64.Vec3{2, 3, 4}) {
		t.Errorf("b scale = %v", nb.Scale)
	}
}

func TestAddChildDuplicateName(t *testing.T) {
	g, _ := NewGraph(NodeSpec{Name: "root"})
	if _, err := g.AddChild(g.Root(), NodeSpec{Name: "a"}); err != nil {
		t.Fatal(err)
	}
	_, err := g.AddChild(g.Root(), NodeSpec{Name: "a"})
	if !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("err = %v, want ErrDuplicateNode", err)
	}
	_, err = g.AddChild(g.Root(), NodeSpec{Name: "root"})
	if !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("err = %v, want ErrDuplicateNode for root name", err)
	}
	if g.Len() != 2 {
		t.Errorf("Len = %d, want 2 after rejected adds", g.Len())
	}
}

func TestAddChildUnknownParent(t *testing.T) {
	g, _ := NewGraph(NodeSpec{Name: "root"})
	for _, p := range []NodeID{NoParent, 1, 42} {
		if _, err := g.AddChild(p, NodeSpec{Name: "x"}); !errors.Is(err, ErrUnknownParent) {
			t.Errorf("parent %d: err = %v, want ErrUnknownParent", p, err)
		}
	}
}

func TestLookupAndFind(t *testing.T) {
	g, _ := NewGraph(NodeSpec{Name: "root"})
	a, _ := g.AddChild(g.Root(), NodeSpec{Name: "a"})

	id, ok := g.Lookup("a")
	if !ok || id != a {
		t.Errorf("Lookup(a) = %d, %v", id, ok)
	}
	if _, ok := g.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}
	if n := g.Find("a"); n == nil || n.Name != "a" {
		t.Errorf("Find(a) = %v", n)
	}
	if n := g.Find("missing"); n != nil {
		t.Errorf("Find(missing) = %v, want nil", n)
	}
	if n := g.Node(7); n != nil {
		t.Errorf("Node(7) = %v, want nil", n)
	}
}

func TestFindReturnsLiveNode(t *testing.T) {
	g, _ := NewGraph(NodeSpec{Name: "root"})
	a, _ := g.AddChild(g.Root(), NodeSpec{Name: "a"})
	g.Find("a").Rotation[1] = 30
	assertNear(t, "rotation", g.Node(a).Rotation[1], 30)
}

func TestWalkDepthFirst(t *testing.T) {
	g, _ := NewGraph(NodeSpec{Name: "root"})
	a, _ := g.AddChild(g.Root(), NodeSpec{Name: "a"})
	g.AddChild(g.Root(), NodeSpec{Name: "b"})
	g.AddChild(a, NodeSpec{Name: "a1"})
	g.AddChild(a, NodeSpec{Name: "a2"})

	var names []string
	g.Walk(func(_ NodeID, n *Node) { names = append(names, n.Name) })
	want := []string{"root", "a", "a1", "a2", "b"}
	if len(names) != len(want) {
		t.Fatalf("walk = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("walk = %v, want %v", names, want)
		}
	}
}

func TestDepth(t *testing.T) {
	g, _ := NewGraph(NodeSpec{Name: "root"})
	a, _ := g.AddChild(g.Root(), NodeSpec{Name: "a"})
	b, _ := g.AddChild(a, NodeSpec{Name: "b"})
	if d := g.Depth(g.Root()); d != 0 {
		t.Errorf("root depth = %d", d)
	}
	if d := g.Depth(b); d != 2 {
		t.Errorf("b depth = %d, want 2", d)
	}
}

func TestParentChainTerminates(t *testing.T) {
	g := DefaultTank()
	g.Walk(func(id NodeID, _ *Node) {
		steps := 0
		for p := id; p != NoParent; p = g.Node(p).Parent() {
			steps++
			if steps > g.Len() {
				t.Fatalf("parent chain from %d does not terminate", id)
			}
		}
	})
}
