package howitzer

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// Target tuning.
const (
	TargetRadius     = 2.0  // original (and maximum) radius
	TargetMinRadius  = 0.5  // floor reached while shrinking
	TargetRadiusStep = 0.25 // change per hit
	TargetBound      = 15.0 // target centers stay within [-bound, bound] on X and Z

	// HitTolerance is how far above or below ground level a projectile may
	// be and still count as landing on the target.
	HitTolerance = 0.5

	radiusEpsilon = 1e-9
)

// Target is the disc on the ground that projectiles score against.
type Target struct {
	Position mgl64.Vec3
	Radius   float64
	Phase    TargetPhase
}

// newTarget creates a full-size shrinking target at a random position.
func newTarget(rng *rand.Rand) *Target {
	t := &Target{Radius: TargetRadius, Phase: PhaseShrinking}
	t.relocate(rng)
	return t
}

// Hit reports whether p is close enough to the ground and within the disc.
func (t *Target) Hit(p mgl64.Vec3) bool {
	if p[1] < -HitTolerance || p[1] > HitTolerance {
		return false
	}
	dx := p[0] - t.Position[0]
	dz := p[2] - t.Position[2]
	return dx*dx+dz*dz <= t.Radius*t.Radius
}

// advance resizes the target after a hit. The phase flips only when the
// radius reaches the floor (shrinking) or the original size (growing).
func (t *Target) advance() {
	switch t.Phase {
	case PhaseShrinking:
		t.Radius -= TargetRadiusStep
		if t.Radius <= TargetMinRadius+radiusEpsilon {
			t.Radius = TargetMinRadius
			t.Phase = PhaseGrowing
		}
	case PhaseGrowing:
		t.Radius += TargetRadiusStep
		if t.Radius >= TargetRadius-radiusEpsilon {
			t.Radius = TargetRadius
			t.Phase = PhaseShrinking
		}
	}
}

// relocate moves the target to a uniformly random point within the bound.
func (t *Target) relocate(rng *rand.Rand) {
	t.Position = mgl64.Vec3{
		(rng.Float64()*2 - 1) * TargetBound,
		0,
		(rng.Float64()*2 - 1) * TargetBound,
	}
}

// model returns the matrix the target disc is drawn with.
func (t *Target) model() mgl64.Mat4 {
	d := t.Radius * 2
	return mgl64.Translate3D(t.Position[0], 0.02, t.Position[2]).Mul4(mgl64.Scale3D(d, 0.04, d))
}
