package tactics

import (
	"math"
	"sort"

	"github.com/duskfall/core/internal/geom"
	"github.com/duskfall/core/internal/world"
	"go.uber.org/zap"
)

// Config holds squad tuning. Zero fields take the defaults below.
type Config struct {
	MaxAttackers    int
	FlankDistance   float64
	SurroundRadius  float64
	SurroundSlots   int
	RegroupRadius   float64
	RetreatHealth   float64 // health ratio under which an actor retreats
	RetreatDistance float64
}

func (c Config) withDefaults() Config {
	if c.MaxAttackers <= 0 {
		c.MaxAttackers = 3
	}
	if c.FlankDistance <= 0 {
		c.FlankDistance = 3
	}
	if c.SurroundRadius <= 0 {
		c.SurroundRadius = 4
	}
	if c.SurroundSlots <= 0 {
		c.SurroundSlots = 8
	}
	if c.RegroupRadius <= 0 {
		c.RegroupRadius = 10
	}
	if c.RetreatHealth <= 0 {
		c.RetreatHealth = 0.25
	}
	if c.RetreatDistance <= 0 {
		c.RetreatDistance = 6
	}
	return c
}

// Coordinator hands out squad roles. Every call re-derives all assignments
// from scratch; nothing from the previous window survives.
type Coordinator struct {
	cfg Config
	log *zap.Logger
}

func NewCoordinator(cfg Config, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{cfg: cfg.withDefaults(), log: log}
}

type ranked struct {
	a    *world.Actor
	dist float64
}

// Update assigns roles to the live actors for the given cadence window.
// Precedence: retreat, attack (closest first), a flank pair, regroup
// for stragglers, surround for the rest. Ties break by actor ID, so the
// result does not depend on input order.
func (c *Coordinator) Update(actors []*world.Actor, player geom.Vec2, window uint64) {
	pool := make([]ranked, 0, len(actors))
	for _, a := range actors {
		if a == nil || !a.Alive {
			continue
		}
		a.Assignment = world.Assignment{}
		pool = append(pool, ranked{a: a, dist: a.Pos.Dist(player)})
	}
	if len(pool) == 0 {
		return
	}
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].dist != pool[j].dist {
			return pool[i].dist < pool[j].dist
		}
		return pool[i].a.ID < pool[j].a.ID
	})

	assign := func(a *world.Actor, role world.Role, target geom.Vec2, slot int) {
		a.Assignment = world.Assignment{Role: role, Target: target, Slot: slot, Window: window}
	}

	rest := pool[:0:0]
	for _, r := range pool {
		if r.a.HealthRatio() < c.cfg.RetreatHealth {
			assign(r.a, world.RoleRetreat, c.retreatPoint(r.a.Pos, player), -1)
			continue
		}
		rest = append(rest, r)
	}

	n := min(c.cfg.MaxAttackers, len(rest))
	for _, r := range rest[:n] {
		assign(r.a, world.RoleAttack, player, -1)
	}
	rest = rest[n:]
	if len(rest) == 0 {
		c.logWindow(window, len(pool))
		return
	}

	positions := make([]geom.Vec2, len(rest))
	for i, r := range rest {
		positions[i] = r.a.Pos
	}
	centroid := geom.Centroid(positions)

	left, right := c.flankPoints(player, centroid)
	if li, ri, ok := cheapestPair(rest, left, right); ok {
		assign(rest[li].a, world.RoleFlankLeft, left, -1)
		assign(rest[ri].a, world.RoleFlankRight, right, -1)
		kept := rest[:0:0]
		for i, r := range rest {
			if i != li && i != ri {
				kept = append(kept, r)
			}
		}
		rest = kept
	}

	ring := rest[:0:0]
	for _, r := range rest {
		if r.a.Pos.Dist(centroid) > c.cfg.RegroupRadius {
			assign(r.a, world.RoleRegroup, centroid, -1)
			continue
		}
		ring = append(ring, r)
	}

	slots := c.ringSlots(player, len(ring))
	taken := make([]bool, len(slots))
	for _, r := range ring {
		best := -1
		bestDist := math.Inf(1)
		for i, s := range slots {
			if taken[i] {
				continue
			}
			if d := r.a.Pos.Dist(s); d < bestDist {
				best, bestDist = i, d
			}
		}
		taken[best] = true
		assign(r.a, world.RoleSurround, slots[best], best)
	}

	c.logWindow(window, len(pool))
}

func (c *Coordinator) logWindow(window uint64, n int) {
	c.log.Debug("tactics window", zap.Uint64("window", window), zap.Int("actors", n))
}

// cheapestPair picks the two distinct actors whose combined walk to the left
// and right flank points is shortest. Ties keep the earlier (closer) actors.
// Fewer than two candidates means no flank pair.
func cheapestPair(rest []ranked, left, right geom.Vec2) (li, ri int, ok bool) {
	if len(rest) < 2 {
		return 0, 0, false
	}
	best := math.Inf(1)
	for i, l := range rest {
		dl := l.a.Pos.Dist(left)
		for j, r := range rest {
			if i == j {
				continue
			}
			if cost := dl + r.a.Pos.Dist(right); cost < best {
				best, li, ri = cost, i, j
			}
		}
	}
	return li, ri, true
}

// retreatPoint lies RetreatDistance further from the player along the line
// through the actor.
func (c *Coordinator) retreatPoint(pos, player geom.Vec2) geom.Vec2 {
	away := pos.Sub(player).Normalize()
	if away.IsZero() {
		away = geom.V(1, 0)
	}
	return pos.Add(away.Scale(c.cfg.RetreatDistance))
}

// flankPoints are either side of the player, perpendicular to the line from
// the player to the pack.
func (c *Coordinator) flankPoints(player, pack geom.Vec2) (left, right geom.Vec2) {
	axis := pack.Sub(player).Normalize()
	if axis.IsZero() {
		axis = geom.V(1, 0)
	}
	side := axis.Perp().Scale(c.cfg.FlankDistance)
	return player.Add(side), player.Sub(side)
}

// ringSlots spaces slots evenly around the player. There are always at least
// as many slots as actors so every actor gets its own.
func (c *Coordinator) ringSlots(player geom.Vec2, n int) []geom.Vec2 {
	count := max(c.cfg.SurroundSlots, n)
	out := make([]geom.Vec2, count)
	for i := range out {
		ang := 2 * math.Pi * float64(i) / float64(count)
		out[i] = player.Add(geom.FromAngle(ang).Scale(c.cfg.SurroundRadius))
	}
	return out
}
