package match

//go:generate go run go.uber.org/mock/mockgen -destination=./mocks/match_mock.go -package=mocks . EffectSink,Player

import (
	"github.com/duskfall/core/internal/core/arena"
	"github.com/duskfall/core/internal/geom"
	"github.com/duskfall/core/internal/world"
)

// World is the level collaborator. Every query is re-issued each tick; nothing
// is cached across ticks.
type World interface {
	RemainingCollectibles() int
	PlayerHealth() float64
	PlayerPosition() geom.Vec2
	Actors() *arena.Arena[world.Actor]
	Lighting() world.Lighting
	Blocked(p geom.Vec2) bool

	AmbientColor() geom.Color
	SetAmbientColor(c geom.Color)
	ShadowShear() float64
	SetShadowShear(v float64)
	ShadowScale() float64
	SetShadowScale(v float64)
	SetEnemyDamage(factor float64)

	ResourceCollected() int
	SetResourceCollected(n int)
	AllocationReady() bool
}

// Player is the player-control collaborator.
type Player interface {
	Update(dt float64, phase Phase, lighting world.Lighting)
	SwitchToCombatForm()
	ResourceCollected() int
}

// EffectSink executes side-effect descriptors (audio, visuals). Effects are
// advisory: the match advances the same whether or not a sink is attached.
type EffectSink interface {
	Consume(effects []Effect)
}

// Spawner adds actors during battle. Returns the number spawned.
type Spawner interface {
	Update(dt float64, actors *arena.Arena[world.Actor]) int
}
