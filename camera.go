package howitzer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera and projection tuning.
const (
	ViewCount      = 4 // number of camera presets
	PlaygroundView = 3 // preset that exposes the tunable projection families

	baseFieldOfView = 45.0  // degrees at Zoom == 1
	maxFieldOfView  = 120.0 // degrees
	perspectiveNear = 0.1
	perspectiveFar  = 200.0
	orthoHalfHeight = 10.0 // world units at Zoom == 1
	orthoNear       = -100.0
	orthoFar        = 100.0

	zoomStep = 1.1
	minZoom  = 0.1
	maxZoom  = 10.0

	axonometricStep      = 5.0 // degrees
	obliqueAngleStep     = 5.0 // degrees
	obliqueMagnitudeStep = 0.05
	minObliqueMagnitude  = 0.1
	maxObliqueMagnitude  = 1.0

	defaultAxonometricX     = 0.0
	defaultAxonometricY     = 0.0
	defaultObliqueAngle     = 45.0
	defaultObliqueMagnitude = 0.5
)

// Axis selects which projection parameter AdjustProjection changes.
type Axis uint8

const (
	AxisHorizontal Axis = iota // axonometric Y rotation, oblique angle
	AxisVertical               // axonometric X rotation, oblique magnitude
)

// CameraPreset is a fixed look-at pose.
type CameraPreset struct {
	Name   string
	Eye    mgl64.Vec3
	Center mgl64.Vec3
	Up     mgl64.Vec3
}

// CameraPresets are the four selectable views: front, left, top and the
// playground view used by the projection families.
var CameraPresets = [ViewCount]CameraPreset{
	{Name: "front", Eye: mgl64.Vec3{0, 4, 22}, Center: mgl64.Vec3{0, 1, 0}, Up: mgl64.Vec3{0, 1, 0}},
	{Name: "left", Eye: mgl64.Vec3{-22, 4, 0}, Center: mgl64.Vec3{0, 1, 0}, Up: mgl64.Vec3{0, 1, 0}},
	{Name: "top", Eye: mgl64.Vec3{0, 30, 0}, Center: mgl64.Vec3{0, 0, 0}, Up: mgl64.Vec3{0, 0, -1}},
	{Name: "playground", Eye: mgl64.Vec3{16, 12, 16}, Center: mgl64.Vec3{0, 0, 0}, Up: mgl64.Vec3{0, 1, 0}},
}

// View is one viewport with the matrices it is rendered with.
type View struct {
	Viewport   Rect
	Preset     int
	View       mgl64.Mat4
	Projection mgl64.Mat4
}

// presetAnim holds an active tween between two camera poses.
type presetAnim struct {
	tween    *gween.Tween
	from, to CameraPreset
}

// Camera holds the view selection and projection parameters. All fields are
// mutated by commands between frames.
type Camera struct {
	// ViewIndex is the selected preset (0-3).
	ViewIndex int
	// Family is the projection family used by the playground view.
	Family ProjectionFamily

	// AxonometricX and AxonometricY rotate the playground view matrix, in
	// degrees, about X and Y.
	AxonometricX float64
	AxonometricY float64

	// ObliqueAngle (degrees) and ObliqueMagnitude parameterize the depth shear.
	ObliqueAngle     float64
	ObliqueMagnitude float64

	// Zoom scales the field of view and orthographic extent (1 = default,
	// smaller = closer).
	Zoom float64

	Perspective bool
	Wireframe   bool
	MultiView   bool

	// TransitionSeconds is how long the camera takes to move to a newly
	// selected preset. Zero snaps immediately.
	TransitionSeconds float64

	pose CameraPreset
	anim *presetAnim
}

// NewCamera creates a camera on the front preset with default parameters.
func NewCamera() *Camera {
	c := &Camera{
		Zoom: 1,
		pose: CameraPresets[0],
	}
	c.resetAxonometric()
	c.resetOblique()
	return c
}

// SelectView switches to preset i. Leaving the playground view turns
// perspective off. Returns false for an out-of-range index.
func (c *Camera) SelectView(i int) bool {
	if i < 0 || i >= ViewCount {
		return false
	}
	if c.ViewIndex == PlaygroundView && i != PlaygroundView {
		c.Perspective = false
	}
	c.ViewIndex = i
	c.moveTo(CameraPresets[i])
	return true
}

// ToggleMultiView switches between the single selected view and the four
// quadrant layout. Perspective is always turned off.
func (c *Camera) ToggleMultiView() {
	c.MultiView = !c.MultiView
	c.Perspective = false
}

// ToggleFamily flips the playground projection family. Selecting the oblique
// family turns perspective off.
func (c *Camera) ToggleFamily() {
	if c.Family == FamilyAxonometric {
		c.Family = FamilyOblique
		c.Perspective = false
		return
	}
	c.Family = FamilyAxonometric
}

// TogglePerspective flips between perspective and orthographic projection.
// It is rejected (returns false) while the oblique family is active and in
// multi-view.
func (c *Camera) TogglePerspective() bool {
	if c.Family == FamilyOblique || c.MultiView {
		return false
	}
	c.Perspective = !c.Perspective
	return true
}

// ToggleWireframe flips outline-only rendering.
func (c *Camera) ToggleWireframe() {
	c.Wireframe = !c.Wireframe
}

// AdjustProjection steps one parameter of the active family. Oblique
// magnitude is clamped; angles are left to wrap through trigonometry.
func (c *Camera) AdjustProjection(axis Axis, sign int) {
	s := float64(signOf(sign))
	switch c.Family {
	case FamilyAxonometric:
		if axis == AxisVertical {
			c.AxonometricX += s * axonometricStep
		} else {
			c.AxonometricY += s * axonometricStep
		}
	case FamilyOblique:
		if axis == AxisVertical {
			c.ObliqueMagnitude = clamp(c.ObliqueMagnitude+s*obliqueMagnitudeStep, minObliqueMagnitude, maxObliqueMagnitude)
		} else {
			c.ObliqueAngle += s * obliqueAngleStep
		}
	}
}

// ResetProjection restores the active family's parameters to their defaults.
func (c *Camera) ResetProjection() {
	if c.Family == FamilyOblique {
		c.resetOblique()
		return
	}
	c.resetAxonometric()
}

func (c *Camera) resetAxonometric() {
	c.AxonometricX = defaultAxonometricX
	c.AxonometricY = defaultAxonometricY
}

func (c *Camera) resetOblique() {
	c.ObliqueAngle = defaultObliqueAngle
	c.ObliqueMagnitude = defaultObliqueMagnitude
}

// ZoomBy applies one multiplicative zoom step. Positive signs zoom in.
func (c *Camera) ZoomBy(sign int) {
	switch {
	case sign > 0:
		c.Zoom /= zoomStep
	case sign < 0:
		c.Zoom *= zoomStep
	}
	c.Zoom = clamp(c.Zoom, minZoom, maxZoom)
}

// FieldOfView returns the perspective vertical field of view in radians.
func (c *Camera) FieldOfView() float64 {
	return mgl64.DegToRad(math.Min(baseFieldOfView*c.Zoom, maxFieldOfView))
}

// OrthoBounds returns the symmetric orthographic extents for aspect.
func (c *Camera) OrthoBounds(aspect float64) (halfWidth, halfHeight float64) {
	halfHeight = orthoHalfHeight * c.Zoom
	return halfHeight * aspect, halfHeight
}

// ObliqueShear returns the shear that maps view-space depth into x/y offsets
// of -m*cos(a) and -m*sin(a) per unit z.
func (c *Camera) ObliqueShear() mgl64.Mat4 {
	a := mgl64.DegToRad(c.ObliqueAngle)
	m := mgl64.Ident4()
	m.Set(0, 2, -c.ObliqueMagnitude*math.Cos(a))
	m.Set(1, 2, -c.ObliqueMagnitude*math.Sin(a))
	return m
}

// ViewMatrix returns the view matrix of the selected single view.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	m := mgl64.LookAtV(c.pose.Eye, c.pose.Center, c.pose.Up)
	if c.ViewIndex == PlaygroundView && c.Family == FamilyAxonometric {
		m = m.Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(c.AxonometricX)))
		m = m.Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(c.AxonometricY)))
	}
	return m
}

// ProjectionMatrix returns the projection of the selected single view.
func (c *Camera) ProjectionMatrix(aspect float64) mgl64.Mat4 {
	if c.ViewIndex == PlaygroundView && c.Family == FamilyOblique {
		return c.orthographic(aspect).Mul4(c.ObliqueShear())
	}
	if c.Perspective {
		return mgl64.Perspective(c.FieldOfView(), aspect, perspectiveNear, perspectiveFar)
	}
	return c.orthographic(aspect)
}

func (c *Camera) orthographic(aspect float64) mgl64.Mat4 {
	hw, hh := c.OrthoBounds(aspect)
	return mgl64.Ortho(-hw, hw, -hh, hh, orthoNear, orthoFar)
}

// Views returns the viewports to render for a screen of the given size:
// the selected view full screen, or the four presets in equal quadrants.
func (c *Camera) Views(width, height float64) []View {
	if width <= 0 || height <= 0 {
		return nil
	}
	if !c.MultiView {
		return []View{{
			Viewport:   Rect{Width: width, Height: height},
			Preset:     c.ViewIndex,
			View:       c.ViewMatrix(),
			Projection: c.ProjectionMatrix(width / height),
		}}
	}
	hw, hh := width/2, height/2
	views := make([]View, 0, ViewCount)
	for i, p := range CameraPresets {
		views = append(views, View{
			Viewport:   Rect{X: float64(i%2) * hw, Y: float64(i/2) * hh, Width: hw, Height: hh},
			Preset:     i,
			View:       mgl64.LookAtV(p.Eye, p.Center, p.Up),
			Projection: c.orthographic(hw / hh),
		})
	}
	return views
}

// Pose returns the camera's current, possibly mid-transition, look-at pose.
func (c *Camera) Pose() CameraPreset {
	return c.pose
}

// Transitioning reports whether a preset transition is in progress.
func (c *Camera) Transitioning() bool {
	return c.anim != nil
}

func (c *Camera) moveTo(target CameraPreset) {
	if c.TransitionSeconds <= 0 {
		c.pose = target
		c.anim = nil
		return
	}
	c.anim = &presetAnim{
		tween: gween.New(0, 1, float32(c.TransitionSeconds), ease.OutCubic),
		from:  c.pose,
		to:    target,
	}
}

// Update advances an active preset transition by dt seconds.
func (c *Camera) Update(dt float64) {
	if c.anim == nil {
		return
	}
	t, done := c.anim.tween.Update(float32(dt))
	if done {
		c.pose = c.anim.to
		c.anim = nil
		return
	}
	f := float64(t)
	from, to := c.anim.from, c.anim.to
	c.pose = CameraPreset{
		Name:   to.Name,
		Eye:    lerpVec3(from.Eye, to.Eye, f),
		Center: lerpVec3(from.Center, to.Center, f),
		Up:     normalizeOr(lerpVec3(from.Up, to.Up, f), to.Up),
	}
}

func lerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// normalizeOr normalizes v, falling back to def when v is degenerate.
func normalizeOr(v, def mgl64.Vec3) mgl64.Vec3 {
	n := normalize(v)
	if n == (mgl64.Vec3{}) {
		return def
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func signOf(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
