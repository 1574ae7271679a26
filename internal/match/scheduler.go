package match

import (
	"github.com/duskfall/core/internal/core/arena"
	"github.com/duskfall/core/internal/geom"
	"github.com/duskfall/core/internal/world"
	"go.uber.org/zap"
)

// Settings are the per-match tuning values the scheduler reads.
type Settings struct {
	PhaseLength       float64 // stealth seconds
	TransitionSeconds float64
	StealthAmbience   geom.Color
	BattleAmbience    geom.Color
	ShadowFactor      float64 // applied to shadow shear and scale at night-fall
	EnemyDamageFactor float64 // enemy damage multiplier from night-fall on
}

// rule is one row of the transition table. Rules are evaluated in order and
// the first whose guard holds is applied; nothing else runs that tick.
type rule struct {
	name  string
	when  func(s *Scheduler) bool
	apply func(s *Scheduler, dt float64) []Effect
}

var transitionTable = []rule{
	{name: "player_down", when: (*Scheduler).playerDown, apply: (*Scheduler).lose},
	{name: "stealth", when: inPhase(PhaseStealth), apply: (*Scheduler).stealth},
	{name: "transition", when: inPhase(PhaseTransition), apply: (*Scheduler).transition},
	{name: "allocate", when: (*Scheduler).allocationDone, apply: (*Scheduler).startBattle},
	{name: "battle", when: inPhase(PhaseBattle), apply: (*Scheduler).battle},
}

func inPhase(p Phase) func(*Scheduler) bool {
	return func(s *Scheduler) bool { return s.state.Phase == p }
}

// Scheduler owns phase and outcome transitions. It performs no I/O: side
// effects come back as descriptors for the caller to apply.
type Scheduler struct {
	state *State
	world World
	cfg   Settings
	log   *zap.Logger
}

// NewScheduler evaluates transitions over state, which the caller owns.
func NewScheduler(state *State, w World, cfg Settings, log *zap.Logger) *Scheduler {
	if cfg.ShadowFactor <= 0 {
		cfg.ShadowFactor = 0.5
	}
	if cfg.EnemyDamageFactor <= 0 {
		cfg.EnemyDamageFactor = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{state: state, world: w, cfg: cfg, log: log}
}

func (s *Scheduler) State() *State { return s.state }

// Advance evaluates one tick of the transition table. Ticks with dt <= 0 and
// ticks after the match has ended change nothing and return no effects.
func (s *Scheduler) Advance(dt float64) []Effect {
	if dt <= 0 || !s.state.Playing() {
		return nil
	}
	s.state.Tick++
	for _, r := range transitionTable {
		if r.when(s) {
			return r.apply(s, dt)
		}
	}
	return nil
}

func (s *Scheduler) enter(p Phase) {
	s.log.Info("phase changed",
		zap.Stringer("from", s.state.Phase),
		zap.Stringer("to", p),
		zap.Uint64("tick", s.state.Tick))
	s.state.Phase = p
}

func (s *Scheduler) end(o Outcome) {
	s.state.Outcome = o
	s.log.Info("match over",
		zap.Stringer("outcome", o),
		zap.Stringer("phase", s.state.Phase),
		zap.Uint64("tick", s.state.Tick))
}

func (s *Scheduler) playerDown() bool {
	return s.state.Playing() && s.world.PlayerHealth() <= 0
}

func (s *Scheduler) lose(float64) []Effect {
	s.end(OutcomeLost)
	return []Effect{{Kind: EffectPlayFailSound}}
}

func (s *Scheduler) stealth(dt float64) []Effect {
	s.state.PhaseTimer -= dt
	s.state.CollectedResource = s.world.ResourceCollected()
	if s.world.RemainingCollectibles() > 0 && s.state.PhaseTimer > 0 {
		return nil
	}
	s.enter(PhaseTransition)
	s.state.TransitionElapsed = 0
	return []Effect{
		{Kind: EffectDisposeStealthLighting},
		{Kind: EffectSwitchPlayerForm},
		{Kind: EffectScaleShadows, Factor: s.cfg.ShadowFactor},
		{Kind: EffectSetEnemyDamage, Factor: s.cfg.EnemyDamageFactor},
	}
}

func (s *Scheduler) transition(dt float64) []Effect {
	dur := s.cfg.TransitionSeconds
	if s.state.TransitionElapsed < dur {
		s.state.TransitionElapsed += dt
		if s.state.TransitionElapsed > dur {
			s.state.TransitionElapsed = dur
		}
	}
	progress := 1.0
	if dur > 0 {
		progress = min(s.state.TransitionElapsed/dur, 1)
	}
	fx := []Effect{{
		Kind:  EffectSetAmbientColor,
		Color: FadeColor(s.cfg.StealthAmbience, s.cfg.BattleAmbience, progress),
	}}
	if progress < 1 {
		return fx
	}
	if s.state.CollectedResource == 0 {
		return append(fx, s.startBattle(dt)...)
	}
	s.enter(PhaseAllocate)
	return fx
}

func (s *Scheduler) allocationDone() bool {
	return s.state.Phase == PhaseAllocate && s.world.AllocationReady()
}

func (s *Scheduler) startBattle(float64) []Effect {
	s.enter(PhaseBattle)
	s.state.BattleTicks = 0
	return []Effect{
		{Kind: EffectPlayBattleMusic},
		{Kind: EffectSwitchActorMode},
	}
}

func (s *Scheduler) battle(float64) []Effect {
	s.state.BattleTicks++
	if ActiveCount(s.world.Actors()) > 0 {
		return nil
	}
	s.end(OutcomeWon)
	return []Effect{{Kind: EffectPlayWinSound}}
}

// ActiveCount returns the number of live actors.
func ActiveCount(actors *arena.Arena[world.Actor]) int {
	n := 0
	actors.Each(func(_ arena.Handle, a *world.Actor) {
		if a.Alive {
			n++
		}
	})
	return n
}
