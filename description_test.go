package howitzer

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDefaultTankNodes(t *testing.T) {
	g := DefaultTank()
	for _, name := range []string{"tank", "hull", NodeCabin, NodeCannonBase, NodeCannon, NodeWheelsLeft, NodeWheelsRight, "turret", "mantlet"} {
		if g.Find(name) == nil {
			t.Errorf("missing node %q", name)
		}
	}
	if g.Node(g.Root()).Name != "tank" {
		t.Errorf("root = %q, want tank", g.Node(g.Root()).Name)
	}
}

func TestDefaultTankWheels(t *testing.T) {
	g := DefaultTank()
	for _, group := range []string{NodeWheelsLeft, NodeWheelsRight} {
		n := g.Find(group)
		if n.InheritScale {
			t.Errorf("%s should not inherit the hull scale", group)
		}
		if len(n.Children()) != 4 {
			t.Errorf("%s has %d wheels, want 4", group, len(n.Children()))
		}
		for _, id := range n.Children() {
			if g.Node(id).Primitive != PrimitiveCylinder {
				t.Errorf("wheel %q primitive = %v", g.Node(id).Name, g.Node(id).Primitive)
			}
		}
	}
}

func TestDefaultTankIndependentGraphs(t *testing.T) {
	a := DefaultTank()
	b := DefaultTank()
	a.Find(NodeCabin).Rotation[1] = 45
	if b.Find(NodeCabin).Rotation[1] != 0 {
		t.Error("DefaultTank graphs share state")
	}
}

func TestLoadDescriptionFields(t *testing.T) {
	g, err := LoadDescription([]byte(`{
		"name": "root",
		"children": [{
			"name": "box",
			"translation": [1, 2, 3],
			"rotation": [0, 90, 0],
			"scale": [2, 2, 2],
			"color": [1, 0, 0, 1],
			"primitive": "Cube",
			"inheritScale": false
		}, {
			"name": "bare"
		}]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	box := g.Find("box")
	if box.Translation != (mgl64.Vec3{1, 2, 3}) || box.Rotation != (mgl64.Vec3{0, 90, 0}) || box.Scale != (mgl64.Vec3{2, 2, 2}) {
		t.Errorf("box transform = %v %v %v", box.Translation, box.Rotation, box.Scale)
	}
	if box.Color == nil || *box.Color != (Color{1, 0, 0, 1}) {
		t.Errorf("box color = %v", box.Color)
	}
	if box.Primitive != PrimitiveCube || box.InheritScale {
		t.Errorf("box primitive = %v inherit = %v", box.Primitive, box.InheritScale)
	}

	bare := g.Find("bare")
	if bare.Scale != (mgl64.Vec3{1, 1, 1}) || bare.Color != nil || bare.Primitive != PrimitiveNone || !bare.InheritScale {
		t.Errorf("bare defaults = %+v", bare)
	}
}

func TestLoadDescriptionErrors(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		target  error
		message string
	}{
		{"malformed", `{"name":`, nil, "parse scene description"},
		{"no name", `{"primitive": "cube"}`, nil, "node without a name"},
		{"unknown primitive", `{"name": "r", "primitive": "cone"}`, ErrUnknownPrimitive, "cone"},
		{"nested unknown primitive", `{"name": "r", "children": [{"name": "c", "primitive": "torus"}]}`, ErrUnknownPrimitive, `node "c"`},
		{"duplicate", `{"name": "r", "children": [{"name": "a"}, {"name": "a"}]}`, ErrDuplicateNode, "build scene graph"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := LoadDescription([]byte(tt.json))
			if err == nil {
				t.Fatalf("expected error, got graph with %d nodes", g.Len())
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("err = %v, want %v", err, tt.target)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("err = %q, want it to contain %q", err, tt.message)
			}
		})
	}
}

func TestParsePrimitive(t *testing.T) {
	for _, p := range []Primitive{PrimitiveNone, PrimitiveCube, PrimitiveCylinder, PrimitiveSphere} {
		got, err := ParsePrimitive(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePrimitive(%q) = %v, %v", p.String(), got, err)
		}
	}
	if got, err := ParsePrimitive(""); err != nil || got != PrimitiveNone {
		t.Errorf("empty = %v, %v", got, err)
	}
	if _, err := ParsePrimitive("pyramid"); !errors.Is(err, ErrUnknownPrimitive) {
		t.Errorf("err = %v", err)
	}
}
