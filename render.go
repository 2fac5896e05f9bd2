package howitzer

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Drawer receives draw requests with the transform and color already
// resolved. BeginView is called once per viewport before that viewport's
// primitives.
type Drawer interface {
	BeginView(v View)
	DrawPrimitive(p Primitive, mode DrawMode, model mgl64.Mat4, c Color)
}

// viewEnder is implemented by drawers that buffer a view's primitives and
// need to know when the view is complete.
type viewEnder interface {
	EndView()
}

// CommandLayer records which pass of the frame emitted a command.
type CommandLayer uint8

const (
	LayerGround     CommandLayer = iota // ground plane
	LayerGraph                          // tank scene graph
	LayerProjectile                     // live projectiles
	LayerTarget                         // target disc
)

// RenderCommand is a single draw instruction emitted during a frame.
type RenderCommand struct {
	Primitive Primitive
	Mode      DrawMode
	Model     mgl64.Mat4
	Color     Color
	Layer     CommandLayer
	Node      NodeID // NoParent for commands not emitted by the graph
}

// traversal carries the accumulated state down the tree by value, so there
// is no shared matrix stack to push or pop.
type traversal struct {
	world mgl64.Mat4
	color Color
}

// emitPrimitive appends the draws for one primitive. The outline is always
// drawn; the filled pass is skipped in wireframe mode.
func emitPrimitive(cmds []RenderCommand, p Primitive, model mgl64.Mat4, c Color, layer CommandLayer, node NodeID, wireframe bool) []RenderCommand {
	if p == PrimitiveNone {
		return cmds
	}
	if !wireframe {
		cmds = append(cmds, RenderCommand{Primitive: p, Mode: DrawFilled, Model: model, Color: c, Layer: layer, Node: node})
	}
	return append(cmds, RenderCommand{Primitive: p, Mode: DrawOutline, Model: model, Color: c, Layer: layer, Node: node})
}

// traverseGraph walks the graph depth-first from the root and appends the
// draw commands for every node with a primitive.
func traverseGraph(g *Graph, cmds []RenderCommand, wireframe bool) []RenderCommand {
	if g == nil || g.Len() == 0 {
		return cmds
	}
	return g.traverse(g.Root(), traversal{world: mgl64.Ident4(), color: ColorWhite}, cmds, wireframe)
}

func (g *Graph) traverse(id NodeID, acc traversal, cmds []RenderCommand, wireframe bool) []RenderCommand {
	n := &g.nodes[id]

	acc.world = acc.world.Mul4(LocalTransform(n))
	if n.Color != nil {
		acc.color = *n.Color
	}

	cmds = emitPrimitive(cmds, n.Primitive, acc.world, acc.color, LayerGraph, id, wireframe)

	for _, cid := range n.children {
		child := traversal{world: childBasis(acc.world, n, &g.nodes[cid]), color: acc.color}
		cmds = g.traverse(cid, child, cmds, wireframe)
	}
	return cmds
}

// submitCommands replays the command buffer into d for one view.
func submitCommands(d Drawer, v View, cmds []RenderCommand) {
	d.BeginView(v)
	for i := range cmds {
		c := &cmds[i]
		d.DrawPrimitive(c.Primitive, c.Mode, c.Model, c.Color)
	}
	if e, ok := d.(viewEnder); ok {
		e.EndView()
	}
}

// minClipW is the smallest clip-space w accepted before a point counts as
// behind the eye.
const minClipW = 1e-6

// projectToViewport maps a local-space point through mvp into viewport
// pixels. z is the normalized depth in [-1, 1], smaller is nearer. ok is false
// for points behind a perspective eye.
func projectToViewport(mvp mgl64.Mat4, p mgl64.Vec3, vp Rect) (x, y, z float64, ok bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	if clip[3] < minClipW {
		return 0, 0, 0, false
	}
	nx, ny, nz := clip[0]/clip[3], clip[1]/clip[3], clip[2]/clip[3]
	x = vp.X + (nx+1)/2*vp.Width
	y = vp.Y + (1-ny)/2*vp.Height
	return x, y, nz, true
}
