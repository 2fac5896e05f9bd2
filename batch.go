package howitzer

import (
	"cmp"
	"image"
	"image/color"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Flat shading parameters for filled triangles.
var lightDir = mgl64.Vec3{0.4, 0.8, 0.45}.Normalize()

const (
	ambientShade  = 0.45
	diffuseShade  = 0.55
	outlineShade  = 0.35 // outline color relative to the fill
	outlineWidth  = 1
	maxBatchVerts = 1 << 16
)

// screenTri is a projected, shaded triangle waiting for the depth sort.
type screenTri struct {
	x, y  [3]float32
	depth float64
	color Color
}

// screenLine is a projected outline segment.
type screenLine struct {
	x0, y0, x1, y1 float32
	color          Color
}

// projected is one mesh vertex after projection.
type projected struct {
	x, y, z float64
	ok      bool
}

// viewBatch accumulates one view's primitives in screen space. Filled
// triangles are drawn back to front, then every outline on top.
type viewBatch struct {
	view     View
	viewProj mgl64.Mat4
	tris     []screenTri
	lines    []screenLine
	scratch  []projected
}

func (b *viewBatch) begin(v View) {
	b.view = v
	b.viewProj = v.Projection.Mul4(v.View)
	b.tris = b.tris[:0]
	b.lines = b.lines[:0]
}

// add projects primitive p and appends its triangles or edges.
func (b *viewBatch) add(p Primitive, mode DrawMode, model mgl64.Mat4, c Color) {
	m := MeshFor(p)
	if m == nil {
		return
	}
	mvp := b.viewProj.Mul4(model)
	b.scratch = b.scratch[:0]
	for _, pos := range m.Positions {
		x, y, z, ok := projectToViewport(mvp, pos, b.view.Viewport)
		b.scratch = append(b.scratch, projected{x, y, z, ok})
	}
	pts := b.scratch

	if mode == DrawOutline {
		lc := c.Scaled(outlineShade)
		for _, e := range m.Edges {
			a, z := pts[e[0]], pts[e[1]]
			if !a.ok || !z.ok {
				continue
			}
			b.lines = append(b.lines, screenLine{float32(a.x), float32(a.y), float32(z.x), float32(z.y), lc})
		}
		return
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		p0, p1, p2 := pts[i0], pts[i1], pts[i2]
		if !p0.ok || !p1.ok || !p2.ok {
			continue
		}
		shade := faceShade(model, m.Positions[i0], m.Positions[i1], m.Positions[i2])
		b.tris = append(b.tris, screenTri{
			x:     [3]float32{float32(p0.x), float32(p1.x), float32(p2.x)},
			y:     [3]float32{float32(p0.y), float32(p1.y), float32(p2.y)},
			depth: (p0.z + p1.z + p2.z) / 3,
			color: c.Scaled(shade),
		})
	}
}

// sortTris orders triangles far to near.
func (b *viewBatch) sortTris() {
	slices.SortStableFunc(b.tris, func(a, c screenTri) int {
		return cmp.Compare(c.depth, a.depth)
	})
}

// faceShade lights a triangle by its world-space normal.
func faceShade(model mgl64.Mat4, a, b, c mgl64.Vec3) float64 {
	wa := model.Mul4x1(a.Vec4(1)).Vec3()
	wb := model.Mul4x1(b.Vec4(1)).Vec3()
	wc := model.Mul4x1(c.Vec4(1)).Vec3()
	n := wb.Sub(wa).Cross(wc.Sub(wa))
	if l := n.Len(); l > 1e-12 {
		n = n.Mul(1 / l)
	} else {
		return ambientShade + diffuseShade/2
	}
	return ambientShade + diffuseShade*max(0, n.Dot(lightDir))
}

// ScreenDrawer renders views onto an ebiten image with DrawTriangles32 for
// filled primitives and vector strokes for outlines.
type ScreenDrawer struct {
	target *ebiten.Image
	batch  viewBatch

	batchVerts []ebiten.Vertex
	batchInds  []uint32
}

// NewScreenDrawer returns a drawer that renders onto target.
func NewScreenDrawer(target *ebiten.Image) *ScreenDrawer {
	return &ScreenDrawer{target: target}
}

// SetTarget replaces the destination image, typically once per frame.
func (d *ScreenDrawer) SetTarget(target *ebiten.Image) {
	d.target = target
}

// BeginView implements Drawer.
func (d *ScreenDrawer) BeginView(v View) {
	d.batch.begin(v)
}

// DrawPrimitive implements Drawer.
func (d *ScreenDrawer) DrawPrimitive(p Primitive, mode DrawMode, model mgl64.Mat4, c Color) {
	d.batch.add(p, mode, model, c)
}

// EndView flushes the view's triangles and outlines, clipped to its viewport.
func (d *ScreenDrawer) EndView() {
	if d.target == nil {
		return
	}
	vp := d.batch.view.Viewport
	dst, ok := d.target.SubImage(image.Rect(int(vp.X), int(vp.Y), int(vp.X+vp.Width), int(vp.Y+vp.Height))).(*ebiten.Image)
	if !ok {
		return
	}

	d.batch.sortTris()
	for _, t := range d.batch.tris {
		if len(d.batchVerts)+3 > maxBatchVerts {
			d.flushTriangles(dst)
		}
		base := uint32(len(d.batchVerts))
		r, g, b, a := float32(t.color.R*t.color.A), float32(t.color.G*t.color.A), float32(t.color.B*t.color.A), float32(t.color.A)
		for k := 0; k < 3; k++ {
			d.batchVerts = append(d.batchVerts, ebiten.Vertex{
				DstX: t.x[k], DstY: t.y[k],
				SrcX: 0.5, SrcY: 0.5,
				ColorR: r, ColorG: g, ColorB: b, ColorA: a,
			})
		}
		d.batchInds = append(d.batchInds, base, base+1, base+2)
	}
	d.flushTriangles(dst)

	for _, l := range d.batch.lines {
		vector.StrokeLine(dst, l.x0, l.y0, l.x1, l.y1, outlineWidth, l.color.toRGBA(), true)
	}
}

// flushTriangles submits accumulated vertices as a single DrawTriangles32 call.
func (d *ScreenDrawer) flushTriangles(dst *ebiten.Image) {
	if len(d.batchVerts) == 0 {
		return
	}
	var triOp ebiten.DrawTrianglesOptions
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	dst.DrawTriangles32(d.batchVerts, d.batchInds, ensureWhitePixel(), &triOp)
	d.batchVerts = d.batchVerts[:0]
	d.batchInds = d.batchInds[:0]
}

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used
// as the source for untextured triangles.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}
