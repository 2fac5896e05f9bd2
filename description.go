package howitzer

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Names of the tank nodes that commands and the projectile simulator look up.
const (
	NodeCabin       = "cabin"
	NodeCannonBase  = "cannon-base"
	NodeCannon      = "cannon"
	NodeWheelsLeft  = "wheels-left"
	NodeWheelsRight = "wheels-right"
)

//go:embed tank.json
var tankDescription []byte

// nodeDesc is one node of a JSON scene description. Optional fields are
// pointers so an absent field is distinguishable from a zero value.
type nodeDesc struct {
	Name         string      `json:"name"`
	Translation  *[3]float64 `json:"translation,omitempty"`
	Rotation     *[3]float64 `json:"rotation,omitempty"`
	Scale        *[3]float64 `json:"scale,omitempty"`
	Color        *[4]float64 `json:"color,omitempty"`
	Primitive    string      `json:"primitive,omitempty"`
	InheritScale *bool       `json:"inheritScale,omitempty"`
	Children     []nodeDesc  `json:"children,omitempty"`
}

// LoadDescription parses a JSON scene description and builds its graph.
// The top-level object is the root node.
func LoadDescription(jsonData []byte) (*Graph, error) {
	var root nodeDesc
	if err := json.Unmarshal(jsonData, &root); err != nil {
		return nil, fmt.Errorf("parse scene description: %w", err)
	}
	spec, err := root.spec()
	if err != nil {
		return nil, fmt.Errorf("parse scene description: %w", err)
	}
	g, err := NewGraph(spec)
	if err != nil {
		return nil, fmt.Errorf("build scene graph: %w", err)
	}
	if err := g.addDescChildren(g.Root(), root.Children); err != nil {
		return nil, fmt.Errorf("build scene graph: %w", err)
	}
	return g, nil
}

// DefaultTank builds the bundled tank: a hull with two wheel groups and a
// rotating cabin carrying the cannon base and cannon.
func DefaultTank() *Graph {
	g, err := LoadDescription(tankDescription)
	if err != nil {
		panic("howitzer: bundled tank description is invalid: " + err.Error())
	}
	return g
}

func (g *Graph) addDescChildren(parent NodeID, children []nodeDesc) error {
	for i := range children {
		d := &children[i]
		spec, err := d.spec()
		if err != nil {
			return err
		}
		id, err := g.AddChild(parent, spec)
		if err != nil {
			return err
		}
		if err := g.addDescChildren(id, d.Children); err != nil {
			return err
		}
	}
	return nil
}

func (d *nodeDesc) spec() (NodeSpec, error) {
	if d.Name == "" {
		return NodeSpec{}, fmt.Errorf("node without a name")
	}
	prim, err := ParsePrimitive(d.Primitive)
	if err != nil {
		return NodeSpec{}, fmt.Errorf("node %q: %w", d.Name, err)
	}
	spec := NodeSpec{
		Name:         d.Name,
		Primitive:    prim,
		InheritScale: d.InheritScale,
	}
	if d.Translation != nil {
		spec.Translation = mgl64.Vec3(*d.Translation)
	}
	if d.Rotation != nil {
		spec.Rotation = mgl64.Vec3(*d.Rotation)
	}
	if d.Scale != nil {
		s := mgl64.Vec3(*d.Scale)
		spec.Scale = &s
	}
	if d.Color != nil {
		c := d.Color
		spec.Color = &Color{c[0], c[1], c[2], c[3]}
	}
	return spec, nil
}
