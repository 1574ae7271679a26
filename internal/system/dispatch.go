package system

import (
	coresys "github.com/duskfall/core/internal/core/system"
	"github.com/duskfall/core/internal/match"
)

// DispatchSystem swaps the event bus buffers and delivers last tick's events,
// then reaps actors that died between ticks so the scheduler never counts
// them. Phase 0 (Dispatch).
type DispatchSystem struct {
	deps  *Deps
	state *match.State
}

func NewDispatchSystem(state *match.State, deps *Deps) *DispatchSystem {
	return &DispatchSystem{deps: deps, state: state}
}

func (s *DispatchSystem) Phase() coresys.Phase { return coresys.PhaseDispatch }

func (s *DispatchSystem) Update(_ float64) coresys.Flow {
	s.deps.Bus.SwapBuffers()
	s.deps.Bus.DispatchAll()
	reap(s.deps.World.Actors())
	flush(s.deps, s.state)
	return coresys.Continue
}
