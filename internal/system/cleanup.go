package system

import (
	coresys "github.com/duskfall/core/internal/core/system"
	"github.com/duskfall/core/internal/match"
)

// CleanupSystem reaps actors killed this tick and flushes the deferred
// destroy queue at tick end. Phase 6 (Cleanup).
type CleanupSystem struct {
	state *match.State
	deps  *Deps
}

func NewCleanupSystem(state *match.State, deps *Deps) *CleanupSystem {
	return &CleanupSystem{state: state, deps: deps}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ float64) coresys.Flow {
	reap(s.deps.World.Actors())
	flush(s.deps, s.state)
	return coresys.Continue
}
