package world

import (
	"github.com/duskfall/core/internal/core/arena"
	"github.com/duskfall/core/internal/geom"
	"github.com/duskfall/core/internal/navigation"
)

// Player holds the player's in-level data.
type Player struct {
	Pos         geom.Vec2
	HP          float64
	MaxHP       float64
	Speed       float64
	Damage      float64
	AttackRange float64
	Resource    int
	CombatForm  bool
	Attack      AttackState
}

// State is the in-memory level: player, actors, collectibles, environment
// parameters and passability. It is the world collaborator of a match.
// Accessed only from the game loop goroutine, no locks.
type State struct {
	player       Player
	actors       *arena.Arena[Actor]
	collectibles *CollectibleGrid
	grid         *navigation.Grid
	light        *StealthLight

	ambient     geom.Color
	shadowShear float64
	shadowScale float64
	enemyDamage float64

	allocationReady bool
}

func NewState(grid *navigation.Grid, player Player) *State {
	return &State{
		player:       player,
		actors:       arena.New[Actor](),
		collectibles: NewCollectibleGrid(),
		grid:         grid,
		light:        &StealthLight{Radius: 3},
		shadowShear:  1,
		shadowScale:  1,
		enemyDamage:  1,
	}
}

func (s *State) Player() *Player             { return &s.player }
func (s *State) Grid() *navigation.Grid      { return s.grid }
func (s *State) Actors() *arena.Arena[Actor] { return s.actors }
func (s *State) Lighting() Lighting          { return s.light }

// SpawnActor inserts an actor and stamps its handle into a.ID.
func (s *State) SpawnActor(a Actor) arena.Handle {
	a.Alive = true
	ptr := &a
	ptr.ID = s.actors.Insert(ptr)
	return ptr.ID
}

func (s *State) AddCollectible(pos geom.Vec2, value int) int {
	return s.collectibles.Add(pos, value)
}

func (s *State) NearestCollectible(p geom.Vec2) (*Collectible, bool) {
	return s.collectibles.Nearest(p)
}

// Collect picks up every collectible within radius of the player and returns
// the amount gained.
func (s *State) Collect(radius float64) int {
	gained := 0
	for _, c := range s.collectibles.Nearby(s.player.Pos) {
		if c.Pos.Dist(s.player.Pos) <= radius {
			s.collectibles.Remove(c.ID)
			gained += c.Value
		}
	}
	s.player.Resource += gained
	return gained
}

func (s *State) RemainingCollectibles() int   { return s.collectibles.Len() }
func (s *State) PlayerHealth() float64        { return s.player.HP }
func (s *State) PlayerPosition() geom.Vec2    { return s.player.Pos }
func (s *State) AmbientColor() geom.Color     { return s.ambient }
func (s *State) SetAmbientColor(c geom.Color) { s.ambient = c }
func (s *State) ShadowShear() float64         { return s.shadowShear }
func (s *State) SetShadowShear(v float64)     { s.shadowShear = v }
func (s *State) ShadowScale() float64         { return s.shadowScale }
func (s *State) SetShadowScale(v float64)     { s.shadowScale = v }
func (s *State) ResourceCollected() int       { return s.player.Resource }
func (s *State) SetResourceCollected(n int)   { s.player.Resource = n }
func (s *State) AllocationReady() bool        { return s.allocationReady }
func (s *State) EnemyDamage() float64         { return s.enemyDamage }
func (s *State) SetEnemyDamage(f float64)     { s.enemyDamage = f }

// Blocked reports whether p is impassable. A level without a grid is open.
func (s *State) Blocked(p geom.Vec2) bool {
	if s.grid == nil {
		return false
	}
	return s.grid.Blocked(p)
}

// Allocate spends the collected resource on max health and marks allocation
// as complete.
func (s *State) Allocate(hpPerUnit float64) {
	bonus := float64(s.player.Resource) * hpPerUnit
	s.player.MaxHP += bonus
	s.player.HP += bonus
	s.player.Resource = 0
	s.allocationReady = true
}

// Integrate applies actor intents: movement against passability and attacks
// that started this tick. It stands in for the physics and combat engine and
// runs after the match tick.
func (s *State) Integrate(dt float64) {
	if dt <= 0 {
		return
	}
	s.actors.Each(func(_ arena.Handle, a *Actor) {
		if !a.Alive {
			return
		}
		if !a.Intent.Move.IsZero() {
			next := a.Pos.Add(a.Intent.Move.Scale(a.Speed * dt))
			if !s.Blocked(next) {
				a.Pos = next
			}
		}
		if a.Intent.Attack {
			if a.Pos.Dist(s.player.Pos) <= a.AttackRange {
				s.player.HP -= a.Damage * s.enemyDamage
			}
			a.Intent.Attack = false
		}
	})
}
