package system

import (
	"github.com/duskfall/core/internal/core/arena"
	"github.com/duskfall/core/internal/core/event"
	coresys "github.com/duskfall/core/internal/core/system"
	"github.com/duskfall/core/internal/match"
	"github.com/duskfall/core/internal/world"
	"go.uber.org/zap"
)

// ScheduleSystem advances the phase scheduler, applies the state-affecting
// effects to the world and player, and forwards every effect to the sink.
// It halts the tick once the match is over or while actors are frozen.
// Phase 1 (Schedule).
type ScheduleSystem struct {
	sched *match.Scheduler
	deps  *Deps
}

func NewScheduleSystem(sched *match.Scheduler, deps *Deps) *ScheduleSystem {
	return &ScheduleSystem{sched: sched, deps: deps}
}

func (s *ScheduleSystem) Phase() coresys.Phase { return coresys.PhaseSchedule }

func (s *ScheduleSystem) Update(dt float64) coresys.Flow {
	st := s.sched.State()
	from := st.Phase
	effects := s.sched.Advance(dt)
	if len(effects) > 0 {
		Apply(s.deps, effects)
		if s.deps.Sink != nil {
			s.deps.Sink.Consume(effects)
		}
	}
	if st.Phase != from {
		event.Emit(s.deps.Bus, event.PhaseChanged{From: from, To: st.Phase, Tick: st.Tick})
	}
	if !st.Playing() {
		event.Emit(s.deps.Bus, event.MatchEnded{Outcome: st.Outcome, Phase: st.Phase, Tick: st.Tick})
		return coresys.Halt
	}
	if st.Phase.Frozen() {
		return coresys.Halt
	}
	return coresys.Continue
}

// Apply performs the effects that change match-visible state. Audio effects
// are left to the sink.
func Apply(d *Deps, effects []match.Effect) {
	w := d.World
	for _, e := range effects {
		switch e.Kind {
		case match.EffectDisposeStealthLighting:
			if l := w.Lighting(); l != nil {
				l.Dispose()
			}
		case match.EffectSwitchPlayerForm:
			d.Player.SwitchToCombatForm()
		case match.EffectScaleShadows:
			w.SetShadowShear(w.ShadowShear() * e.Factor)
			w.SetShadowScale(w.ShadowScale() * e.Factor)
		case match.EffectSetEnemyDamage:
			w.SetEnemyDamage(e.Factor)
		case match.EffectSetAmbientColor:
			w.SetAmbientColor(e.Color)
		case match.EffectSwitchActorMode:
			n := 0
			w.Actors().Each(func(_ arena.Handle, a *world.Actor) {
				if a.Alive && !a.InBattleMode {
					a.InBattleMode = true
					n++
				}
			})
			d.Log.Debug("actors switched to battle mode", zap.Int("count", n))
		}
	}
}
