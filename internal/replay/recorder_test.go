package replay

import (
	"testing"

	"github.com/duskfall/core/internal/match"
)

func run(seed string, dts []float64, twist int) *Recorder {
	r := NewRecorder(seed)
	st := match.NewState(5)
	for i, dt := range dts {
		st.Tick++
		st.PhaseTimer -= dt
		if i == twist {
			st.PhaseTimer -= 0.001
		}
		var fx []match.Effect
		if i == 2 {
			fx = []match.Effect{{Kind: match.EffectPlayBattleMusic}}
		}
		if err := r.Record(dt, st, fx); err != nil {
			panic(err)
		}
	}
	return r
}

func TestDigestIsReproducible(t *testing.T) {
	dts := []float64{0.016, 0.016, 0.02, 0.016}
	a, b := run("m1", dts, -1), run("m1", dts, -1)
	if a.Digest() != b.Digest() || a.Frames() != 4 {
		t.Fatalf("digests %s / %s frames %d", a.Digest(), b.Digest(), a.Frames())
	}
	if len(a.Digest()) != 64 {
		t.Fatalf("digest length %d", len(a.Digest()))
	}
}

func TestDigestDetectsDivergence(t *testing.T) {
	dts := []float64{0.016, 0.016, 0.02, 0.016}
	base := run("m1", dts, -1).Digest()
	cases := map[string]string{
		"seed":  run("m2", dts, -1).Digest(),
		"state": run("m1", dts, 1).Digest(),
		"dt":    run("m1", []float64{0.016, 0.016, 0.02, 0.017}, -1).Digest(),
	}
	for name, d := range cases {
		if d == base {
			t.Errorf("%s change not reflected in digest", name)
		}
	}
}
