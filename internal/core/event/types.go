package event

import (
	"github.com/duskfall/core/internal/core/arena"
	"github.com/duskfall/core/internal/match"
)

// Match lifecycle events.

type PhaseChanged struct {
	From match.Phase
	To   match.Phase
	Tick uint64
}

type MatchEnded struct {
	Outcome match.Outcome
	Phase   match.Phase
	Tick    uint64
}

// Actor events.

type ActorRemoved struct {
	ID   arena.Handle
	Kind string
	Tick uint64
}

type WaveSpawned struct {
	Count int
	Tick  uint64
}
