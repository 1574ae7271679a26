package system

import "testing"

type recordSystem struct {
	phase Phase
	flow  Flow
	log   *[]Phase
}

func (s recordSystem) Phase() Phase { return s.phase }

func (s recordSystem) Update(float64) Flow {
	*s.log = append(*s.log, s.phase)
	return s.flow
}

func TestRunnerOrdersByPhase(t *testing.T) {
	var log []Phase
	r := NewRunner()
	r.Register(recordSystem{phase: PhaseCleanup, log: &log})
	r.Register(recordSystem{phase: PhaseSchedule, log: &log})
	r.Register(recordSystem{phase: PhaseActors, log: &log})

	if _, halted := r.Tick(0.016); halted {
		t.Fatal("unexpected halt")
	}
	want := []Phase{PhaseSchedule, PhaseActors, PhaseCleanup}
	if len(log) != len(want) {
		t.Fatalf("ran %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("ran %v, want %v", log, want)
		}
	}
}

func TestRunnerHaltStopsLaterPhases(t *testing.T) {
	var log []Phase
	r := NewRunner()
	r.Register(recordSystem{phase: PhasePlayer, log: &log})
	r.Register(recordSystem{phase: PhaseSchedule, flow: Halt, log: &log})

	phase, halted := r.Tick(0.016)
	if !halted || phase != PhaseSchedule {
		t.Fatalf("halt = %v at %v", halted, phase)
	}
	if len(log) != 1 {
		t.Fatalf("ran %v after halt", log)
	}
}
