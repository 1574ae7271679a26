package match

// Phase is the rule regime a match is in. Phases only move forward.
type Phase uint8

const (
	PhaseStealth    Phase = iota // collect moonlight unseen
	PhaseTransition              // night falls
	PhaseAllocate                // spend collected moonlight
	PhaseBattle                  // fight until one side is gone
)

var phaseNames = [...]string{"stealth", "transition", "allocate", "battle"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Frozen reports whether actors and player control are suspended.
func (p Phase) Frozen() bool {
	return p == PhaseTransition || p == PhaseAllocate
}

// Outcome is the match result. It leaves OutcomePlaying exactly once.
type Outcome uint8

const (
	OutcomePlaying Outcome = iota
	OutcomeLost
	OutcomeWon
)

var outcomeNames = [...]string{"playing", "lost", "won"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// State is the root aggregate of one match. Owned by the gameplay loop and
// mutated only by the scheduler.
type State struct {
	Phase   Phase   `msgpack:"phase"`
	Outcome Outcome `msgpack:"outcome"`

	PhaseTimer        float64 `msgpack:"phase_timer"`        // stealth seconds left
	BattleTicks       uint64  `msgpack:"battle_ticks"`       // ticks since battle began
	TransitionElapsed float64 `msgpack:"transition_elapsed"` // clamped to the transition length
	CollectedResource int     `msgpack:"collected_resource"` // frozen when night falls

	Tick uint64 `msgpack:"tick"` // accepted ticks, for logs and replay
}

// NewState starts a match in stealth with the given stealth duration.
func NewState(phaseLength float64) State {
	return State{
		Phase:      PhaseStealth,
		Outcome:    OutcomePlaying,
		PhaseTimer: phaseLength,
	}
}

// Playing reports whether the match is still running.
func (s *State) Playing() bool { return s.Outcome == OutcomePlaying }
