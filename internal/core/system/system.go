package system

// Phase defines execution ordering within a single match tick.
type Phase int

const (
	PhaseDispatch Phase = iota // 0: deliver last tick's events, reap the dead
	PhaseSchedule              // 1: advance match phase, apply effects
	PhaseSpawn                 // 2: external spawner (battle only)
	PhaseTactics               // 3: squad-level assignments on cadence
	PhaseActors                // 4: per-actor behaviour
	PhasePlayer                // 5: player control
	PhaseCleanup               // 6: destroy dead actors
)

// Flow tells the Runner whether the rest of the tick should run.
type Flow int

const (
	Continue Flow = iota
	Halt
)

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt float64) Flow
}
