package match

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// EncodeSnapshot serializes match state. Restoring it with DecodeSnapshot and
// replaying the same inputs reproduces the same transitions.
func EncodeSnapshot(s State) ([]byte, error) {
	b, err := msgpack.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

func DecodeSnapshot(b []byte) (State, error) {
	var s State
	if err := msgpack.Unmarshal(b, &s); err != nil {
		return State{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Phase > PhaseBattle || s.Outcome > OutcomeWon {
		return State{}, fmt.Errorf("decode snapshot: phase %d outcome %d out of range", s.Phase, s.Outcome)
	}
	return s, nil
}
