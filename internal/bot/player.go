package bot

import (
	"github.com/duskfall/core/internal/core/arena"
	"github.com/duskfall/core/internal/geom"
	"github.com/duskfall/core/internal/match"
	"github.com/duskfall/core/internal/navigation"
	"github.com/duskfall/core/internal/world"
	"go.uber.org/zap"
)

const (
	pickupRadius     = 0.6 // under the stealth light
	darkPickupRadius = 0.3
	combatSpeedBoost = 1.25
)

// Player is a scripted stand-in for player control: it gathers moonlight in
// stealth and fights the nearest actor in battle. It moves the player
// directly, so it is also the player's physics.
type Player struct {
	level *world.State
	paths navigation.Pathfinder
	log   *zap.Logger

	switched bool
	kills    int
}

var _ match.Player = (*Player)(nil)

func New(level *world.State, paths navigation.Pathfinder, log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{level: level, paths: paths, log: log}
}

func (b *Player) ResourceCollected() int { return b.level.ResourceCollected() }

// Kills returns the number of actors this player finished off.
func (b *Player) Kills() int { return b.kills }

// SwitchToCombatForm turns the player into its battle form. Only the first
// call has an effect.
func (b *Player) SwitchToCombatForm() {
	if b.switched {
		return
	}
	b.switched = true
	p := b.level.Player()
	p.CombatForm = true
	p.Speed *= combatSpeedBoost
	b.log.Debug("player switched to combat form")
}

func (b *Player) Update(dt float64, phase match.Phase, lighting world.Lighting) {
	p := b.level.Player()
	p.Attack.Process(dt)
	switch phase {
	case match.PhaseStealth:
		b.gather(dt, lighting)
	case match.PhaseBattle:
		b.fight(dt)
	}
}

func (b *Player) gather(dt float64, lighting world.Lighting) {
	p := b.level.Player()
	radius := darkPickupRadius
	if lighting != nil && lighting.Active() {
		radius = pickupRadius
	}
	if b.level.Collect(radius) > 0 {
		return
	}
	c, ok := b.level.NearestCollectible(p.Pos)
	if !ok {
		return
	}
	b.step(dt, c.Pos)
}

func (b *Player) fight(dt float64) {
	p := b.level.Player()
	var target *world.Actor
	best := 0.0
	b.level.Actors().Each(func(_ arena.Handle, a *world.Actor) {
		if !a.Alive || a.HP <= 0 {
			return
		}
		d := a.Pos.Dist(p.Pos)
		if target == nil || d < best || (d == best && a.ID < target.ID) {
			target, best = a, d
		}
	})
	if target == nil {
		return
	}
	if best > p.AttackRange {
		b.step(dt, target.Pos)
		return
	}
	if !p.Attack.CanStart() {
		return
	}
	p.Attack.Initiate()
	target.HP -= p.Damage
	if target.HP <= 0 {
		b.kills++
	}
}

// step moves the player toward goal along a refined path.
func (b *Player) step(dt float64, goal geom.Vec2) {
	p := b.level.Player()
	next := goal
	if b.paths != nil {
		path := b.paths.Refine([]geom.Vec2{p.Pos, goal})
		for i := 1; i < len(path); i++ {
			if path[i].Dist(p.Pos) > 1e-6 {
				next = path[i]
				break
			}
		}
	}
	delta := next.Sub(p.Pos)
	dist := delta.Len()
	if dist == 0 {
		return
	}
	move := p.Speed * dt
	if move > dist {
		move = dist
	}
	to := p.Pos.Add(delta.Scale(move / dist))
	if b.level.Blocked(to) {
		return
	}
	p.Pos = to
}
