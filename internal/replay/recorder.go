package replay

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/duskfall/core/internal/match"
	"golang.org/x/crypto/blake2b"
)

// Recorder folds every tick into a BLAKE2b-256 hash chain. Two runs with the
// same inputs end with the same digest, so a digest pins a match replay.
type Recorder struct {
	digest [blake2b.Size256]byte
	frames uint64
}

func NewRecorder(seed string) *Recorder {
	return &Recorder{digest: blake2b.Sum256([]byte(seed))}
}

// Record chains one tick: its delta, the resulting match state and the
// effects it produced.
func (r *Recorder) Record(dt float64, st match.State, effects []match.Effect) error {
	snap, err := match.EncodeSnapshot(st)
	if err != nil {
		return fmt.Errorf("replay frame %d: %w", r.frames, err)
	}
	h, err := blake2b.New256(nil)
	if err != nil {
		return err
	}
	var num [8]byte
	h.Write(r.digest[:])
	binary.LittleEndian.PutUint64(num[:], math.Float64bits(dt))
	h.Write(num[:])
	h.Write(snap)
	for _, e := range effects {
		h.Write([]byte(e.String()))
	}
	copy(r.digest[:], h.Sum(nil))
	r.frames++
	return nil
}

func (r *Recorder) Frames() uint64 { return r.frames }

// Digest returns the chain head as hex.
func (r *Recorder) Digest() string { return hex.EncodeToString(r.digest[:]) }
