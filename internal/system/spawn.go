package system

import (
	"github.com/duskfall/core/internal/core/event"
	coresys "github.com/duskfall/core/internal/core/system"
	"github.com/duskfall/core/internal/match"
	"go.uber.org/zap"
)

// SpawnSystem drives the external spawner, during battle only.
// Phase 2 (Spawn).
type SpawnSystem struct {
	state *match.State
	deps  *Deps
}

func NewSpawnSystem(state *match.State, deps *Deps) *SpawnSystem {
	return &SpawnSystem{state: state, deps: deps}
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

func (s *SpawnSystem) Update(dt float64) coresys.Flow {
	if s.deps.Spawner == nil || s.state.Phase != match.PhaseBattle {
		return coresys.Continue
	}
	if n := s.deps.Spawner.Update(dt, s.deps.World.Actors()); n > 0 {
		s.deps.Log.Info("wave spawned", zap.Int("count", n), zap.Uint64("tick", s.state.Tick))
		event.Emit(s.deps.Bus, event.WaveSpawned{Count: n, Tick: s.state.Tick})
	}
	return coresys.Continue
}
