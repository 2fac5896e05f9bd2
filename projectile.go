package howitzer

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Projectile tuning.
const (
	Gravity         = 9.8 // downward acceleration, units/s^2
	ProjectileSpeed = 20.0
	SpawnOffset     = 0.2 // distance past the muzzle a projectile appears at
	ProjectileSize  = 0.3 // drawn diameter
	TickSeconds     = 1.0 / 60.0

	// Out-of-bounds limits.
	MinHeight   = -5.0
	PlanarBound = 25.0
)

// Muzzle point and barrel direction in the cannon's local space.
var (
	muzzleOffset    = mgl64.Vec3{0, 0.5, 0}
	muzzleDirection = mgl64.Vec3{0, 1, 0}
)

// Projectile is a fired shell. Scored and OutOfBounds mark it for removal at
// the end of the tick.
type Projectile struct {
	Position    mgl64.Vec3
	Velocity    mgl64.Vec3
	Scored      bool
	OutOfBounds bool
}

// spawnProjectile creates a projectile leaving the muzzle described by pose.
func spawnProjectile(pose Pose) Projectile {
	return Projectile{
		Position: pose.Position.Add(pose.Direction.Mul(SpawnOffset)),
		Velocity: pose.Direction.Mul(ProjectileSpeed),
	}
}

// integrate advances one step of semi-implicit Euler: velocity first, then
// position with the new velocity.
func (p *Projectile) integrate(dt float64) {
	p.Velocity[1] -= Gravity * dt
	p.Position = p.Position.Add(p.Velocity.Mul(dt))
}

// outOfBounds reports whether p has fallen below the floor limit or left the
// playing area.
func (p *Projectile) outOfBounds() bool {
	return p.Position[1] < MinHeight ||
		p.Position[0] > PlanarBound || p.Position[0] < -PlanarBound ||
		p.Position[2] > PlanarBound || p.Position[2] < -PlanarBound
}

// removed reports whether the projectile leaves the active set.
func (p *Projectile) removed() bool {
	return p.Scored || p.OutOfBounds
}

// model returns the matrix the projectile is drawn with.
func (p *Projectile) model() mgl64.Mat4 {
	return mgl64.Translate3D(p.Position[0], p.Position[1], p.Position[2]).
		Mul4(mgl64.Scale3D(ProjectileSize, ProjectileSize, ProjectileSize))
}

// stepResult summarizes what happened during one physics tick.
type stepResult struct {
	hits   int
	misses int
}

// stepProjectiles advances every projectile, resolves hits and misses, then
// drops resolved projectiles in a single pass. A projectile that scores is
// never also counted as a miss in the same tick.
func (s *Scene) stepProjectiles(dt float64) stepResult {
	var res stepResult
	for i := range s.projectiles {
		p := &s.projectiles[i]
		p.integrate(dt)

		if s.target != nil && s.target.Hit(p.Position) {
			p.Scored = true
			s.resolveHit(p)
			res.hits++
			continue
		}
		if p.outOfBounds() {
			p.OutOfBounds = true
			s.resolveMiss(p)
			res.misses++
		}
	}

	live := s.projectiles[:0]
	for _, p := range s.projectiles {
		if !p.removed() {
			live = append(live, p)
		}
	}
	clear(s.projectiles[len(live):])
	s.projectiles = live
	return res
}
