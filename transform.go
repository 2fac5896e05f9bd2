package howitzer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// normalizeEpsilon is the length below which a vector is treated as zero.
const normalizeEpsilon = 1e-12

// Pose is a world-space position and unit direction.
type Pose struct {
	Position  mgl64.Vec3
	Direction mgl64.Vec3
}

// LocalTransform computes the node's local matrix including its own scale.
//
// Composition order:
//
//	Translate -> RotateZ -> RotateY -> RotateX -> Scale
//
// so scale is applied first to the geometry and translation last.
func LocalTransform(n *Node) mgl64.Mat4 {
	return localRigid(n).Mul4(mgl64.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2]))
}

// localRigid is the local transform without the node's scale.
func localRigid(n *Node) mgl64.Mat4 {
	m := mgl64.Translate3D(n.Translation[0], n.Translation[1], n.Translation[2])
	m = m.Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(n.Rotation[2])))
	m = m.Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(n.Rotation[1])))
	m = m.Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(n.Rotation[0])))
	return m
}

// inverseScale returns the matrix that cancels a node's scale. Zero scale
// components cannot be inverted and are left at 1.
func inverseScale(s mgl64.Vec3) mgl64.Mat4 {
	inv := func(v float64) float64 {
		if math.Abs(v) < normalizeEpsilon {
			return 1
		}
		return 1 / v
	}
	return mgl64.Scale3D(inv(s[0]), inv(s[1]), inv(s[2]))
}

// childBasis returns the matrix a child of parent composes its local
// transform onto: parentWorld itself, or parentWorld with the parent's scale
// cancelled when the child does not inherit scale.
func childBasis(parentWorld mgl64.Mat4, parent, child *Node) mgl64.Mat4 {
	if child.InheritScale {
		return parentWorld
	}
	return parentWorld.Mul4(inverseScale(parent.Scale))
}

// WorldTransform composes the local transforms from the root down to id.
// The product is taken root first: W(root) = L(root) and
// W(child) = W(parent) * L(child). Nothing is cached; every call reads the
// node fields as they are now. Returns the identity for unknown handles.
func (g *Graph) WorldTransform(id NodeID) mgl64.Mat4 {
	if !g.valid(id) {
		return mgl64.Ident4()
	}

	// Collect the chain node -> root, then fold it root -> node.
	var buf [32]NodeID
	chain := buf[:0]
	for p := id; p != NoParent; p = g.nodes[p].parent {
		chain = append(chain, p)
	}

	world := mgl64.Ident4()
	var prev *Node
	for i := len(chain) - 1; i >= 0; i-- {
		n := &g.nodes[chain[i]]
		if prev != nil {
			world = childBasis(world, prev, n)
		}
		world = world.Mul4(LocalTransform(n))
		prev = n
	}
	return world
}

// WorldPose transforms a fixed local offset (as a point) and a fixed local
// direction (as a vector) by the node's world matrix. The returned direction
// is unit length, or zero when the transformed direction degenerates.
func (g *Graph) WorldPose(id NodeID, offset, dir mgl64.Vec3) Pose {
	w := g.WorldTransform(id)
	pos := w.Mul4x1(offset.Vec4(1)).Vec3()
	d := w.Mul4x1(dir.Vec4(0)).Vec3()
	return Pose{Position: pos, Direction: normalize(d)}
}

// normalize returns v scaled to unit length, or the zero vector when v is too
// short to normalize.
func normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < normalizeEpsilon || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// wrapDegrees maps an angle into [0, 360).
func wrapDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
