package ai

import (
	"github.com/duskfall/core/internal/geom"
	"github.com/duskfall/core/internal/navigation"
	"github.com/duskfall/core/internal/scripting"
	"github.com/duskfall/core/internal/world"
	"go.uber.org/zap"
)

// arriveRadius is how close an actor must get to a waypoint or slot to count
// as being there.
const arriveRadius = 0.5

// View is the read-only world an actor controller may look at.
type View interface {
	PlayerPosition() geom.Vec2
	Blocked(p geom.Vec2) bool
}

// Scripter decides actor actions. *scripting.Engine implements it.
type Scripter interface {
	RunActorAI(ctx scripting.ActorContext) []scripting.Command
}

// Controller turns one actor's situation into an Intent. It reads the view
// and the actor's own assignment and writes only that actor, so actors can
// be updated in any order.
type Controller struct {
	paths  navigation.Pathfinder
	script Scripter
	log    *zap.Logger
}

// NewController builds a controller. paths and script may be nil: without a
// pathfinder actors steer straight, without a script the built-in rules run.
func NewController(paths navigation.Pathfinder, script Scripter, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{paths: paths, script: script, log: log}
}

// SetScripter swaps the decision script, e.g. after a hot reload.
func (c *Controller) SetScripter(s Scripter) { c.script = s }

// Update runs one tick of decision making for a.
func (c *Controller) Update(view View, a *world.Actor, dt float64) {
	if a == nil || !a.Alive {
		return
	}
	a.Attack.Process(dt)
	a.Intent = world.Intent{}

	if c.script != nil {
		if cmds := c.script.RunActorAI(c.context(view, a)); cmds != nil {
			c.execute(view, a, cmds)
			return
		}
	}
	c.decide(view, a)
}

func (c *Controller) context(view View, a *world.Actor) scripting.ActorContext {
	player := view.PlayerPosition()
	ctx := scripting.ActorContext{
		Kind:        a.Kind,
		X:           a.Pos.X,
		Y:           a.Pos.Y,
		HP:          a.HP,
		MaxHP:       a.MaxHP,
		Speed:       a.Speed,
		AttackRange: a.AttackRange,
		DetectRange: a.DetectRange,
		InBattle:    a.InBattleMode,
		CanAttack:   a.Attack.CanStart(),
		Role:        a.Assignment.Role.String(),
		TargetX:     a.Assignment.Target.X,
		TargetY:     a.Assignment.Target.Y,
		PlayerX:     player.X,
		PlayerY:     player.Y,
		PlayerDist:  a.Pos.Dist(player),
	}
	if wp, ok := patrolPoint(a); ok {
		ctx.HasPatrol = true
		ctx.PatrolX, ctx.PatrolY = wp.X, wp.Y
	}
	return ctx
}

func (c *Controller) execute(view View, a *world.Actor, cmds []scripting.Command) {
	for _, cmd := range cmds {
		switch cmd.Type {
		case "move_to":
			c.moveTo(view, a, geom.V(cmd.X, cmd.Y), movingBehavior(a))
		case "attack":
			c.attack(a)
		case "patrol":
			c.patrol(view, a)
		case "idle":
			a.Intent.Move = geom.Vec2{}
			a.Intent.Behavior = world.BehaviorIdle
		default:
			c.log.Debug("unknown actor command", zap.String("type", cmd.Type), zap.Stringer("actor", a.ID))
		}
	}
}

// decide is the built-in rule set used when no script is loaded.
func (c *Controller) decide(view View, a *world.Actor) {
	player := view.PlayerPosition()
	dist := a.Pos.Dist(player)
	inReach := dist <= a.AttackRange

	if !a.InBattleMode {
		if dist > a.DetectRange {
			c.patrol(view, a)
			return
		}
		if inReach {
			c.attack(a)
			return
		}
		c.moveTo(view, a, player, world.BehaviorChase)
		return
	}

	as := a.Assignment
	switch as.Role {
	case world.RoleNone:
		c.patrol(view, a)
		return
	case world.RoleRetreat, world.RoleRegroup:
		c.moveTo(view, a, as.Target, movingBehavior(a))
		return
	}
	if inReach {
		c.attack(a)
		return
	}
	if as.Role != world.RoleAttack && a.Pos.Dist(as.Target) > arriveRadius {
		c.moveTo(view, a, as.Target, world.BehaviorReposition)
		return
	}
	c.moveTo(view, a, player, world.BehaviorChase)
}

func movingBehavior(a *world.Actor) world.Behavior {
	switch a.Assignment.Role {
	case world.RoleRetreat:
		return world.BehaviorRetreat
	case world.RoleFlankLeft, world.RoleFlankRight, world.RoleSurround, world.RoleRegroup:
		return world.BehaviorReposition
	}
	return world.BehaviorChase
}

// attack starts an attack when the counters allow it. Intent.Attack is set
// only on the tick the attack begins.
func (c *Controller) attack(a *world.Actor) {
	a.Intent.Move = geom.Vec2{}
	a.Intent.Behavior = world.BehaviorChase
	if !a.Attack.CanStart() {
		return
	}
	a.Attack.Initiate()
	a.Intent.Attack = true
}

func patrolPoint(a *world.Actor) (geom.Vec2, bool) {
	if len(a.Patrol) == 0 {
		return geom.Vec2{}, false
	}
	return a.Patrol[a.PatrolIndex%len(a.Patrol)], true
}

// patrol walks the route in a loop. Actors without a route idle.
func (c *Controller) patrol(view View, a *world.Actor) {
	wp, ok := patrolPoint(a)
	if !ok {
		a.Intent.Move = geom.Vec2{}
		a.Intent.Behavior = world.BehaviorIdle
		return
	}
	if a.Pos.Dist(wp) <= arriveRadius {
		a.PatrolIndex = (a.PatrolIndex + 1) % len(a.Patrol)
		wp = a.Patrol[a.PatrolIndex]
	}
	c.moveTo(view, a, wp, world.BehaviorPatrol)
}

// moveTo sets a unit move direction toward the next node of a refined path.
func (c *Controller) moveTo(view View, a *world.Actor, target geom.Vec2, b world.Behavior) {
	a.Intent.Behavior = b
	next := target
	if c.paths != nil {
		path := c.paths.Refine([]geom.Vec2{a.Pos, target})
		for i := 1; i < len(path); i++ {
			p := path[i]
			if p.Dist(a.Pos) > 1e-6 {
				next = p
				break
			}
		}
	}
	dir := next.Sub(a.Pos).Normalize()
	if dir.IsZero() {
		a.Intent.Move = geom.Vec2{}
		return
	}
	if c.paths == nil && view.Blocked(a.Pos.Add(dir.Scale(arriveRadius))) {
		a.Intent.Move = geom.Vec2{}
		return
	}
	a.Intent.Move = dir
}
