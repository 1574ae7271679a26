package system

import (
	coresys "github.com/duskfall/core/internal/core/system"
	"github.com/duskfall/core/internal/match"
)

// PlayerSystem hands the tick to player control with the current phase and
// lighting. Phase 5 (Player).
type PlayerSystem struct {
	state *match.State
	deps  *Deps
}

func NewPlayerSystem(state *match.State, deps *Deps) *PlayerSystem {
	return &PlayerSystem{state: state, deps: deps}
}

func (s *PlayerSystem) Phase() coresys.Phase { return coresys.PhasePlayer }

func (s *PlayerSystem) Update(dt float64) coresys.Flow {
	s.deps.Player.Update(dt, s.state.Phase, s.deps.World.Lighting())
	return coresys.Continue
}
