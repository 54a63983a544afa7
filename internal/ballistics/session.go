package ballistics

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/chewxy/math32"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"artillery-engine/internal/engineconfig"
	"artillery-engine/internal/gamemath"
	"artillery-engine/internal/logger"
	"artillery-engine/internal/physics"
	"artillery-engine/internal/terrain"
)

const (
	projectileSize = 4
	projectileMass = 1
	// fragmentSpeedFactor scales a child shell's launch speed relative to
	// the parent's impact speed.
	fragmentSpeedFactor = 0.6
	// fragmentSpawnOffset pushes children out of the fresh crater so they
	// don't detonate in place.
	fragmentSpawnOffset = 6
)

// Vehicle is a player-controlled body with hit points. Its physics body
// stays registered until the vehicle is destroyed.
type Vehicle struct {
	Body      *physics.Body
	Health    int
	MaxHealth int
}

// ID returns the vehicle's entity ID (its body's ID).
func (v *Vehicle) ID() uuid.UUID { return v.Body.ID }

// Alive reports whether the vehicle still has hit points.
func (v *Vehicle) Alive() bool { return v.Health > 0 }

// AffectedEntity names one entity damaged by an impact.
type AffectedEntity struct {
	ID        uuid.UUID
	Damage    int
	Destroyed bool
}

// ImpactResult is the terminal outcome of one projectile, returned upward as
// a plain value: the turn layer applies it to game state, no event bus
// involved. The projectile that produced it has already been retired.
type ImpactResult struct {
	Position gamemath.Vec2
	Damage   int
	Affected []AffectedEntity
}

// Session owns one match's simulation state: the physics world, the
// destructible terrain, the vehicles, and the shells in flight. One
// Update(dt) call advances everything synchronously; there is no internal
// concurrency, and a multi-threaded host must treat Update as a single
// critical section.
type Session struct {
	cfg  engineconfig.Config
	wld  *physics.World
	terr *terrain.Terrain

	vehicles    []*Vehicle
	projectiles []*Projectile
	wind        float32

	rng *rand.Rand
	log *logger.Logger
}

// NewSession builds a session from the given configuration, generating the
// initial terrain. Pass a nil logger to discard logs.
func NewSession(cfg engineconfig.Config, log *logger.Logger) (*Session, error) {
	if log == nil {
		log = logger.Nop()
	}
	terr, err := terrain.New(cfg.Terrain)
	if err != nil {
		return nil, err
	}
	terr.Generate()
	s := &Session{
		cfg:  cfg,
		wld:  physics.NewWorld(cfg.Gravity, cfg.Restitution),
		terr: terr,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		log:  log,
	}
	s.log.Info("session created",
		zap.Int("terrain_width", terr.Width()),
		zap.Float32("gravity", cfg.Gravity))
	return s, nil
}

// World exposes the physics world for placement and queries.
func (s *Session) World() *physics.World { return s.wld }

// Terrain exposes the destructible heightmap.
func (s *Session) Terrain() *terrain.Terrain { return s.terr }

// Vehicles returns the registered vehicles, dead ones included.
func (s *Session) Vehicles() []*Vehicle {
	out := make([]*Vehicle, len(s.vehicles))
	copy(out, s.vehicles)
	return out
}

// InFlight returns the number of shells still flying. The turn layer waits
// for zero before handing over.
func (s *Session) InFlight() int { return len(s.projectiles) }

// Wind returns the current wind force.
func (s *Session) Wind() float32 { return s.wind }

// SetWind sets the wind force for subsequent steps and predictions.
func (s *Session) SetWind(w float32) { s.wind = w }

// RollWind picks a random wind force within the configured bound, typically
// once per turn, and returns it.
func (s *Session) RollWind() float32 {
	s.wind = (s.rng.Float32()*2 - 1) * s.cfg.MaxWind
	return s.wind
}

// SpawnVehicle registers a vehicle standing on the terrain surface at
// column x, with its box centered horizontally on x.
func (s *Session) SpawnVehicle(x, width, height, mass float32, health int) (*Vehicle, error) {
	if health <= 0 {
		return nil, fmt.Errorf("ballistics: vehicle health must be > 0, got %d", health)
	}
	pos := gamemath.Vec2{X: x - width/2, Y: s.terr.HeightAt(x) - height}
	body, err := physics.NewBody(physics.KindVehicle, pos, width, height, mass, false)
	if err != nil {
		return nil, err
	}
	if err := s.wld.AddBody(body); err != nil {
		return nil, err
	}
	v := &Vehicle{Body: body, Health: health, MaxHealth: health}
	s.vehicles = append(s.vehicles, v)
	s.log.Info("vehicle spawned", zap.String("id", v.ID().String()), zap.Float32("x", x))
	return v, nil
}

// launch converts an aim (angle in degrees, 0 pointing right and 90 straight
// up, power on the 0-100 scale) into a muzzle position just outside the
// owner's box and an initial velocity vector.
func (s *Session) launch(owner *Vehicle, angleDeg, power float32) (start, velocity gamemath.Vec2) {
	rad := gamemath.Deg2Rad(angleDeg)
	dir := gamemath.Vec2{X: math32.Cos(rad), Y: -math32.Sin(rad)}
	speed := power * s.cfg.PowerScale
	muzzle := math32.Hypot(owner.Body.Width, owner.Body.Height)/2 + projectileSize
	return owner.Body.Center().Add(dir.Scale(muzzle)), dir.Scale(speed)
}

// Fire launches a shell from the vehicle with the given aim and round. The
// shell is a dynamic sensor body integrated by the world like any other; the
// session adds the per-step wind and terrain checks the generic world does
// not know about.
func (s *Session) Fire(owner *Vehicle, angleDeg, power float32, spec RoundSpec) (*Projectile, error) {
	if owner == nil || !owner.Alive() {
		return nil, fmt.Errorf("ballistics: cannot fire from a destroyed vehicle")
	}
	start, velocity := s.launch(owner, angleDeg, power)
	p, err := s.fireVelocity(owner.ID(), physics.KindProjectile, start, velocity, spec)
	if err != nil {
		return nil, err
	}
	s.log.Info("shell fired",
		zap.String("owner", owner.ID().String()),
		zap.String("round", spec.Kind.String()),
		zap.Float32("angle", angleDeg),
		zap.Float32("power", power))
	return p, nil
}

// fireVelocity registers a shell at the given center with an explicit
// velocity vector. Fragmentation children reuse it directly.
func (s *Session) fireVelocity(owner uuid.UUID, kind physics.Kind, center, velocity gamemath.Vec2, spec RoundSpec) (*Projectile, error) {
	pos := center.Sub(gamemath.Vec2{X: projectileSize / 2, Y: projectileSize / 2})
	body, err := physics.NewBody(kind, pos, projectileSize, projectileSize, projectileMass, false)
	if err != nil {
		return nil, err
	}
	body.Velocity = velocity
	body.Sensor = true
	if err := s.wld.AddBody(body); err != nil {
		return nil, err
	}
	p := &Projectile{Body: body, Owner: owner, Spec: spec}
	s.projectiles = append(s.projectiles, p)
	return p, nil
}

// Predict returns the aim-assist trajectory from the given start and
// velocity under current wind. It never mutates simulation state.
func (s *Session) Predict(start, velocity gamemath.Vec2, maxSteps int) []gamemath.Vec2 {
	if maxSteps <= 0 {
		maxSteps = s.cfg.PredictSteps
	}
	return Predict(s.terr, s.cfg.Gravity, s.wind*s.cfg.WindScale, 1, start, velocity, maxSteps)
}

// PredictShot returns the trajectory the vehicle's current aim would fly,
// using the same launch math as Fire.
func (s *Session) PredictShot(owner *Vehicle, angleDeg, power float32) []gamemath.Vec2 {
	start, velocity := s.launch(owner, angleDeg, power)
	return s.Predict(start, velocity, 0)
}

// Update advances the match by one step: guided steering and wind on shells,
// one world step (integration, detection, resolution), vehicle ground
// support, then impact resolution. Impacts are returned as values; the
// error aggregates any invariant violations the world reported (affected
// bodies are quarantined, the rest of the match keeps running).
func (s *Session) Update(dt float32) ([]ImpactResult, error) {
	for _, p := range s.projectiles {
		p.steer()
		p.Body.Velocity.X += s.wind * s.cfg.WindScale * dt
	}

	contacts, err := s.wld.Step(dt)
	s.supportVehicles()

	var results []ImpactResult

	// Shell-versus-vehicle hits come from the world's contact list.
	for _, c := range contacts {
		p, target := s.matchShellHit(c)
		if p == nil || p.retired {
			continue
		}
		p.retired = true
		results = append(results, s.detonate(p, target))
	}

	// Ground contact is a terrain query, not a body collision.
	for _, p := range s.projectiles {
		if p.retired || p.Body.Faulted() {
			continue
		}
		center := p.Body.Center()
		if s.terr.Collides(center.X, center.Y, 1) {
			p.retired = true
			results = append(results, s.detonate(p, nil))
		}
	}

	s.expireProjectiles()
	s.removeRetired()
	return results, err
}

// matchShellHit maps a contact to (projectile, opposing vehicle). Contacts
// that are not a shell hitting someone else's vehicle return nil.
func (s *Session) matchShellHit(c physics.Contact) (*Projectile, *Vehicle) {
	p := s.projectileFor(c.A.ID)
	other := c.B
	if p == nil {
		p = s.projectileFor(c.B.ID)
		other = c.A
	}
	if p == nil {
		return nil, nil
	}
	v := s.vehicleFor(other.ID)
	if v == nil || !v.Alive() || v.ID() == p.Owner {
		return nil, nil
	}
	return p, v
}

func (s *Session) projectileFor(id uuid.UUID) *Projectile {
	for _, p := range s.projectiles {
		if p.Body.ID == id {
			return p
		}
	}
	return nil
}

func (s *Session) vehicleFor(id uuid.UUID) *Vehicle {
	for _, v := range s.vehicles {
		if v.Body.ID == id {
			return v
		}
	}
	return nil
}

// detonate resolves one impact: damage from contact-time speed, terrain
// carving or vehicle damage, and fragmentation children. The projectile is
// already marked retired; its body is removed afterwards.
func (s *Session) detonate(p *Projectile, target *Vehicle) ImpactResult {
	pos := p.Body.Center()
	speed := p.Body.Velocity.Length()
	damage := int(math32.Floor(speed * s.cfg.DamageScale))
	res := ImpactResult{Position: pos, Damage: damage}

	if target != nil {
		target.Health -= damage
		destroyed := target.Health <= 0
		res.Affected = append(res.Affected, AffectedEntity{ID: target.ID(), Damage: damage, Destroyed: destroyed})
		if destroyed {
			target.Health = 0
			s.wld.RemoveBody(target.Body.ID)
			s.log.Info("vehicle destroyed", zap.String("id", target.ID().String()))
		} else {
			s.log.Info("vehicle hit",
				zap.String("id", target.ID().String()),
				zap.Int("damage", damage),
				zap.Int("health", target.Health))
		}
	} else {
		s.terr.DestroyAt(pos.X, pos.Y, p.Spec.BlastRadius)
		s.log.Debug("terrain hit",
			zap.Float32("x", pos.X),
			zap.Float32("y", pos.Y),
			zap.Float32("radius", p.Spec.BlastRadius))
	}

	if p.Spec.Kind == RoundFragmentation && p.Spec.FragmentCount > 0 {
		s.spawnFragments(p, pos, speed)
	}
	return res
}

// spawnFragments launches the fragmentation children at spread angles around
// the parent's impact velocity. A child whose spawn point is already inside
// terrain is skipped rather than detonated in place.
func (s *Session) spawnFragments(p *Projectile, pos gamemath.Vec2, speed float32) {
	base := math32.Atan2(p.Body.Velocity.Y, p.Body.Velocity.X)
	n := p.Spec.FragmentCount
	spread := gamemath.Deg2Rad(p.Spec.FragmentSpread)
	childSpec := RoundSpec{Kind: RoundStandard, BlastRadius: p.Spec.BlastRadius * 0.6}

	for i := 0; i < n; i++ {
		frac := float32(0.5)
		if n > 1 {
			frac = float32(i) / float32(n-1)
		}
		angle := base + spread*(frac-0.5)
		dir := gamemath.Vec2{X: math32.Cos(angle), Y: math32.Sin(angle)}
		spawn := pos.Add(dir.Scale(fragmentSpawnOffset))
		if s.terr.Collides(spawn.X, spawn.Y, 1) {
			continue
		}
		if _, err := s.fireVelocity(p.Owner, physics.KindFragment, spawn, dir.Scale(speed*fragmentSpeedFactor), childSpec); err != nil {
			s.log.Warn("fragment spawn failed", zap.Error(err))
		}
	}
}

// supportVehicles rests vehicles on the terrain surface: terrain is not a
// physics body, so the generic resolver never sees it. A vehicle whose box
// bottom is at or past the surface is clamped to it and stops falling; when
// carving changes the surface under it, it falls again on the next step.
func (s *Session) supportVehicles() {
	for _, v := range s.vehicles {
		if !v.Alive() || v.Body.Faulted() {
			continue
		}
		centerX := v.Body.Center().X
		bottom := v.Body.Position.Y + v.Body.Height
		surface := s.terr.HeightAt(centerX)
		if bottom >= surface {
			v.Body.Position.Y = surface - v.Body.Height
			if v.Body.Velocity.Y > 0 {
				v.Body.Velocity.Y = 0
			}
		}
	}
}

// expireProjectiles retires shells that outlived the configured step budget
// or drifted far outside the world without ever making contact. Expiry is
// silent: no impact, no damage.
func (s *Session) expireProjectiles() {
	for _, p := range s.projectiles {
		if p.retired {
			continue
		}
		p.age++
		center := p.Body.Center()
		switch {
		case p.Body.Faulted():
			p.retired = true
		case p.age > s.cfg.ProjectileMaxAge:
			p.retired = true
			s.log.Debug("shell expired", zap.String("id", p.Body.ID.String()))
		case center.X < -predictMargin || center.X > float32(s.terr.Width()-1)+predictMargin:
			p.retired = true
		}
	}
}

// removeRetired drops retired projectiles from the session and the world.
func (s *Session) removeRetired() {
	kept := s.projectiles[:0]
	for _, p := range s.projectiles {
		if p.retired {
			s.wld.RemoveBody(p.Body.ID)
			continue
		}
		kept = append(kept, p)
	}
	s.projectiles = kept
}
