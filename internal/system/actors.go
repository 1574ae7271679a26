package system

import (
	"github.com/duskfall/core/internal/core/arena"
	coresys "github.com/duskfall/core/internal/core/system"
	"github.com/duskfall/core/internal/world"
)

// ActorSystem runs the controller for every active actor. Controllers write
// only their own actor, so iteration order does not matter.
// Phase 4 (Actors).
type ActorSystem struct {
	deps *Deps
}

func NewActorSystem(deps *Deps) *ActorSystem {
	return &ActorSystem{deps: deps}
}

func (s *ActorSystem) Phase() coresys.Phase { return coresys.PhaseActors }

func (s *ActorSystem) Update(dt float64) coresys.Flow {
	view := s.deps.World
	s.deps.World.Actors().Each(func(_ arena.Handle, a *world.Actor) {
		if a.Alive {
			s.deps.Controller.Update(view, a, dt)
		}
	})
	return coresys.Continue
}
