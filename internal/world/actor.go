package world

import (
	"github.com/duskfall/core/internal/core/arena"
	"github.com/duskfall/core/internal/geom"
)

// Role is a coarse squad role handed out by the tactical coordinator.
type Role uint8

const (
	RoleNone Role = iota
	RoleAttack
	RoleFlankLeft
	RoleFlankRight
	RoleSurround
	RoleRegroup
	RoleRetreat
)

var roleNames = [...]string{"none", "attack", "flank_left", "flank_right", "surround", "regroup", "retreat"}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// Assignment is written only by the coordinator. The zero value means the
// actor has no assignment and falls back to idle/patrol.
type Assignment struct {
	Role   Role
	Target geom.Vec2
	Slot   int    // surround ring slot, -1 when the role has none
	Window uint64 // cadence window that produced it
}

func (a Assignment) IsZero() bool { return a.Role == RoleNone }

// Behavior records which branch produced the current intent.
type Behavior uint8

const (
	BehaviorIdle Behavior = iota
	BehaviorPatrol
	BehaviorChase
	BehaviorReposition
	BehaviorRetreat
)

var behaviorNames = [...]string{"idle", "patrol", "chase", "reposition", "retreat"}

func (b Behavior) String() string {
	if int(b) < len(behaviorNames) {
		return behaviorNames[b]
	}
	return "unknown"
}

// Intent is the per-tick output of an actor controller. Move is a unit
// direction (or zero); Attack is true only on the tick an attack starts.
type Intent struct {
	Move     geom.Vec2
	Attack   bool
	Behavior Behavior
}

// Actor is one hostile entity. Owned by the level state, referenced by handle.
// Accessed only from the game loop goroutine, no locks.
type Actor struct {
	ID   arena.Handle
	Kind string

	Pos   geom.Vec2
	HP    float64
	MaxHP float64
	Speed float64

	Damage      float64
	AttackRange float64
	DetectRange float64

	Alive        bool
	InBattleMode bool

	// Patrol route walked in stealth or when no assignment exists.
	Patrol      []geom.Vec2
	PatrolIndex int

	Assignment Assignment
	Intent     Intent
	Attack     AttackState
}

// HealthRatio returns HP/MaxHP clamped to [0, 1]; 1 when MaxHP is unset.
func (a *Actor) HealthRatio() float64 {
	if a.MaxHP <= 0 {
		return 1
	}
	r := a.HP / a.MaxHP
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
