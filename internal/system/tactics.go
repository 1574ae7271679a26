package system

import (
	coresys "github.com/duskfall/core/internal/core/system"
	"github.com/duskfall/core/internal/match"
)

// DefaultCadence is the number of battle ticks between coordinator runs.
const DefaultCadence = 60

// TacticsSystem runs the coordinator on the battle entry tick and every
// cadence ticks after it. Phase 3 (Tactics).
type TacticsSystem struct {
	state   *match.State
	deps    *Deps
	cadence uint64
	runs    int
}

func NewTacticsSystem(state *match.State, deps *Deps, cadence uint64) *TacticsSystem {
	if cadence == 0 {
		cadence = DefaultCadence
	}
	return &TacticsSystem{state: state, deps: deps, cadence: cadence}
}

func (s *TacticsSystem) Phase() coresys.Phase { return coresys.PhaseTactics }

// Runs returns how many windows the coordinator has processed.
func (s *TacticsSystem) Runs() int { return s.runs }

func (s *TacticsSystem) Update(_ float64) coresys.Flow {
	if s.state.Phase != match.PhaseBattle || s.state.BattleTicks%s.cadence != 0 {
		return coresys.Continue
	}
	actors := s.deps.World.Actors().Values()
	live := actors[:0]
	for _, a := range actors {
		if a.Alive {
			live = append(live, a)
		}
	}
	s.deps.Coordinator.Update(live, s.deps.World.PlayerPosition(), s.state.BattleTicks/s.cadence)
	s.runs++
	return coresys.Continue
}
