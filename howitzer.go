package howitzer

import (
	"fmt"
	"image/color"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the color used when neither a node nor any of its ancestors
// sets one.
var ColorWhite = Color{1, 1, 1, 1}

// Scaled returns the color with its RGB components multiplied by f. Alpha is
// left untouched.
func (c Color) Scaled(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f, c.A}
}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Rect is an axis-aligned rectangle in screen pixels with its origin at the
// top-left and Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Primitive selects the unit mesh a node is drawn with.
type Primitive uint8

const (
	PrimitiveNone     Primitive = iota // group node with no visual output
	PrimitiveCube                      // unit cube centered on the origin
	PrimitiveCylinder                  // radius 0.5, height 1, axis along +Y
	PrimitiveSphere                    // radius 0.5
)

var primitiveNames = [...]string{
	PrimitiveNone:     "none",
	PrimitiveCube:     "cube",
	PrimitiveCylinder: "cylinder",
	PrimitiveSphere:   "sphere",
}

// String returns the name used for the primitive in scene descriptions.
func (p Primitive) String() string {
	if int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return fmt.Sprintf("Primitive(%d)", p)
}

// ParsePrimitive converts a scene-description primitive name. The empty
// string maps to PrimitiveNone.
func ParsePrimitive(name string) (Primitive, error) {
	if name == "" {
		return PrimitiveNone, nil
	}
	for i, n := range primitiveNames {
		if strings.EqualFold(n, name) {
			return Primitive(i), nil
		}
	}
	return PrimitiveNone, fmt.Errorf("%w: %q", ErrUnknownPrimitive, name)
}

// DrawMode distinguishes filled-triangle draws from outline draws.
type DrawMode uint8

const (
	DrawFilled  DrawMode = iota // filled triangles
	DrawOutline                 // mesh edges as lines
)

// ProjectionFamily is the tunable projection used by the playground view.
type ProjectionFamily uint8

const (
	FamilyAxonometric ProjectionFamily = iota // rotated view, standard projection
	FamilyOblique                             // orthographic projection with a depth shear
)

func (f ProjectionFamily) String() string {
	if f == FamilyOblique {
		return "oblique"
	}
	return "axonometric"
}

// TargetPhase says which way the target radius moves on the next hit.
type TargetPhase uint8

const (
	PhaseShrinking TargetPhase = iota // radius decreases toward the floor
	PhaseGrowing                      // radius increases toward the original size
)

func (p TargetPhase) String() string {
	if p == PhaseGrowing {
		return "growing"
	}
	return "shrinking"
}
