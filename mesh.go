package howitzer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is unit-sized primitive geometry in local space. Every primitive fits
// the cube [-0.5, 0.5]^3, so a node's Scale is the drawn size in each axis.
// Indices are counter-clockwise triangles seen from outside; Edges are the
// line segments drawn in outline mode.
type Mesh struct {
	Positions []mgl64.Vec3
	Indices   []uint16
	Edges     [][2]uint16
}

// Tessellation of the round primitives.
const (
	cylinderSegments = 20
	sphereSlices     = 16
	sphereStacks     = 10
)

// Meshes are built once on first use and never mutated afterwards.
var primitiveMeshes [PrimitiveSphere + 1]*Mesh

// MeshFor returns the shared geometry of p, or nil for PrimitiveNone and
// unknown values. The returned mesh MUST NOT be modified.
func MeshFor(p Primitive) *Mesh {
	if p <= PrimitiveNone || int(p) >= len(primitiveMeshes) {
		return nil
	}
	if primitiveMeshes[p] == nil {
		switch p {
		case PrimitiveCube:
			primitiveMeshes[p] = buildCube()
		case PrimitiveCylinder:
			primitiveMeshes[p] = buildCylinder(cylinderSegments)
		case PrimitiveSphere:
			primitiveMeshes[p] = buildSphere(sphereSlices, sphereStacks)
		}
	}
	return primitiveMeshes[p]
}

func buildCube() *Mesh {
	m := &Mesh{Positions: make([]mgl64.Vec3, 8)}
	// Bit 0 selects +X, bit 1 +Y, bit 2 +Z.
	for i := range m.Positions {
		m.Positions[i] = mgl64.Vec3{
			float64(i&1) - 0.5,
			float64(i>>1&1) - 0.5,
			float64(i>>2&1) - 0.5,
		}
	}
	faces := [6][4]uint16{
		{1, 3, 7, 5}, // +X
		{0, 4, 6, 2}, // -X
		{2, 6, 7, 3}, // +Y
		{0, 1, 5, 4}, // -Y
		{4, 5, 7, 6}, // +Z
		{0, 2, 3, 1}, // -Z
	}
	for _, f := range faces {
		m.Indices = append(m.Indices, f[0], f[1], f[2], f[0], f[2], f[3])
	}
	for i := uint16(0); i < 8; i++ {
		for _, bit := range [...]uint16{1, 2, 4} {
			if i&bit == 0 {
				m.Edges = append(m.Edges, [2]uint16{i, i | bit})
			}
		}
	}
	return m
}

// buildCylinder makes a Y-aligned cylinder of diameter 1 and height 1.
func buildCylinder(segments int) *Mesh {
	m := &Mesh{Positions: make([]mgl64.Vec3, 0, 2*segments+2)}
	for _, y := range [...]float64{-0.5, 0.5} {
		for i := 0; i < segments; i++ {
			a := 2 * math.Pi * float64(i) / float64(segments)
			m.Positions = append(m.Positions, mgl64.Vec3{0.5 * math.Cos(a), y, -0.5 * math.Sin(a)})
		}
	}
	bottomCenter := uint16(len(m.Positions))
	m.Positions = append(m.Positions, mgl64.Vec3{0, -0.5, 0}, mgl64.Vec3{0, 0.5, 0})
	topCenter := bottomCenter + 1

	n := uint16(segments)
	for i := uint16(0); i < n; i++ {
		j := (i + 1) % n
		b0, b1, t0, t1 := i, j, i+n, j+n
		m.Indices = append(m.Indices,
			b0, b1, t1, b0, t1, t0, // side
			topCenter, t0, t1, // top cap
			bottomCenter, b1, b0, // bottom cap
		)
		m.Edges = append(m.Edges, [2]uint16{b0, b1}, [2]uint16{t0, t1})
		if i%(n/4) == 0 {
			m.Edges = append(m.Edges, [2]uint16{b0, t0})
		}
	}
	return m
}

// buildSphere makes a UV sphere of diameter 1.
func buildSphere(slices, stacks int) *Mesh {
	m := &Mesh{}
	// Pole vertices first, then (stacks-1) rings of slices vertices.
	m.Positions = append(m.Positions, mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0, -0.5, 0})
	for st := 1; st < stacks; st++ {
		phi := math.Pi * float64(st) / float64(stacks)
		y, r := 0.5*math.Cos(phi), 0.5*math.Sin(phi)
		for sl := 0; sl < slices; sl++ {
			theta := 2 * math.Pi * float64(sl) / float64(slices)
			m.Positions = append(m.Positions, mgl64.Vec3{r * math.Cos(theta), y, -r * math.Sin(theta)})
		}
	}

	ring := func(st, sl int) uint16 {
		return uint16(2 + (st-1)*slices + sl%slices)
	}
	const north, south = 0, 1
	for sl := 0; sl < slices; sl++ {
		m.Indices = append(m.Indices, north, ring(1, sl), ring(1, sl+1))
		m.Indices = append(m.Indices, south, ring(stacks-1, sl+1), ring(stacks-1, sl))
		for st := 1; st < stacks-1; st++ {
			a, b := ring(st, sl), ring(st, sl+1)
			c, d := ring(st+1, sl), ring(st+1, sl+1)
			m.Indices = append(m.Indices, a, c, d, a, d, b)
		}
	}

	// Outline: every ring plus four meridians.
	for st := 1; st < stacks; st++ {
		for sl := 0; sl < slices; sl++ {
			m.Edges = append(m.Edges, [2]uint16{ring(st, sl), ring(st, sl+1)})
		}
	}
	for sl := 0; sl < slices; sl += slices / 4 {
		m.Edges = append(m.Edges, [2]uint16{north, ring(1, sl)}, [2]uint16{ring(stacks-1, sl), south})
		for st := 1; st < stacks-1; st++ {
			m.Edges = append(m.Edges, [2]uint16{ring(st, sl), ring(st+1, sl)})
		}
	}
	return m
}
