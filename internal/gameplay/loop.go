package gameplay

import (
	"errors"
	"fmt"

	"github.com/duskfall/core/internal/core/event"
	coresys "github.com/duskfall/core/internal/core/system"
	"github.com/duskfall/core/internal/match"
	"github.com/duskfall/core/internal/system"
	"go.uber.org/zap"
)

// ErrMissingCollaborator is returned by New when a required collaborator is nil.
var ErrMissingCollaborator = errors.New("gameplay: missing collaborator")

// Deps are the loop's collaborators. World, Player, Controller and
// Coordinator are required.
type Deps = system.Deps

// Loop runs one match tick at a time: scheduler, spawner, coordinator,
// controllers, player control, cleanup. Single goroutine, no clock access;
// the driver supplies dt.
type Loop struct {
	state   *match.State
	sched   *match.Scheduler
	runner  *coresys.Runner
	tactics *system.TacticsSystem
	deps    *Deps
	log     *zap.Logger
}

// New wires the tick systems around state. state is owned by the loop from
// here on.
func New(state *match.State, cfg match.Settings, deps Deps, cadence uint64) (*Loop, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: match state", ErrMissingCollaborator)
	}
	switch {
	case deps.World == nil:
		return nil, fmt.Errorf("%w: world", ErrMissingCollaborator)
	case deps.Player == nil:
		return nil, fmt.Errorf("%w: player", ErrMissingCollaborator)
	case deps.Controller == nil:
		return nil, fmt.Errorf("%w: actor controller", ErrMissingCollaborator)
	case deps.Coordinator == nil:
		return nil, fmt.Errorf("%w: tactical coordinator", ErrMissingCollaborator)
	}
	if deps.Bus == nil {
		deps.Bus = event.NewBus()
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	l := &Loop{
		state: state,
		deps:  &deps,
		log:   deps.Log,
	}
	l.sched = match.NewScheduler(state, deps.World, cfg, deps.Log)
	l.tactics = system.NewTacticsSystem(state, l.deps, cadence)

	l.runner = coresys.NewRunner()
	l.runner.Register(system.NewDispatchSystem(state, l.deps))
	l.runner.Register(system.NewScheduleSystem(l.sched, l.deps))
	l.runner.Register(system.NewSpawnSystem(state, l.deps))
	l.runner.Register(l.tactics)
	l.runner.Register(system.NewActorSystem(l.deps))
	l.runner.Register(system.NewPlayerSystem(state, l.deps))
	l.runner.Register(system.NewCleanupSystem(state, l.deps))
	return l, nil
}

// Tick advances the match by dt seconds and returns the outcome. Ticks with
// dt <= 0 do nothing. Once the outcome is decided further ticks are refused.
func (l *Loop) Tick(dt float64) match.Outcome {
	if !l.state.Playing() {
		l.log.Debug("tick refused, match over", zap.Stringer("outcome", l.state.Outcome))
		return l.state.Outcome
	}
	if dt <= 0 {
		return l.state.Outcome
	}
	l.runner.Tick(dt)
	return l.state.Outcome
}

// State returns a copy of the match state.
func (l *Loop) State() match.State { return *l.state }

func (l *Loop) Phase() match.Phase     { return l.state.Phase }
func (l *Loop) Outcome() match.Outcome { return l.state.Outcome }
func (l *Loop) Bus() *event.Bus        { return l.deps.Bus }

// RemainingTime is the stealth time left, or 0 outside stealth.
func (l *Loop) RemainingTime() float64 {
	if l.state.Phase != match.PhaseStealth || l.state.PhaseTimer < 0 {
		return 0
	}
	return l.state.PhaseTimer
}

// RemainingEnemies is the number of live actors.
func (l *Loop) RemainingEnemies() int {
	return match.ActiveCount(l.deps.World.Actors())
}

// TacticsRuns returns how many coordinator windows have been processed.
func (l *Loop) TacticsRuns() int { return l.tactics.Runs() }

// Flush delivers events still queued on the bus. Call after the last tick.
func (l *Loop) Flush() { l.deps.Bus.Flush() }
