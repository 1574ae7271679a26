package system

import "sort"

// Runner executes systems in phase order each tick. A system returning Halt
// ends the tick; later phases do not run.
type Runner struct {
	systems []System
	sorted  bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 8),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick runs one pass and reports the phase that halted it, if any.
func (r *Runner) Tick(dt float64) (Phase, bool) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Update(dt) == Halt {
			return s.Phase(), true
		}
	}
	return 0, false
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
