package world

import (
	"github.com/duskfall/core/internal/core/arena"
	"github.com/duskfall/core/internal/data"
	"github.com/duskfall/core/internal/geom"
)

// WaveSpawner releases battle waves on a timer. Spawned actors enter already
// in battle mode. Driven only during battle.
type WaveSpawner struct {
	waves []data.Wave
	tbl   *data.LevelTable
	next  int
	timer float64
}

func NewWaveSpawner(waves []data.Wave, tbl *data.LevelTable) *WaveSpawner {
	sp := &WaveSpawner{waves: waves, tbl: tbl}
	if len(waves) > 0 {
		sp.timer = waves[0].Delay
	}
	return sp
}

// Pending returns the number of waves not yet released.
func (sp *WaveSpawner) Pending() int {
	return len(sp.waves) - sp.next
}

// Update counts down to the next wave and inserts its actors. At most one wave
// is released per call.
func (sp *WaveSpawner) Update(dt float64, actors *arena.Arena[Actor]) int {
	if dt <= 0 || sp.next >= len(sp.waves) {
		return 0
	}
	sp.timer -= dt
	if sp.timer > 0 {
		return 0
	}
	w := sp.waves[sp.next]
	sp.next++
	if sp.next < len(sp.waves) {
		sp.timer = sp.waves[sp.next].Delay
	}

	t := sp.tbl.Template(w.Kind)
	if t == nil {
		return 0
	}
	for i := 0; i < w.Count; i++ {
		a := NewActor(t, w.At.Add(geom.V(float64(i)*0.5, 0)))
		a.Alive = true
		a.InBattleMode = true
		ptr := &a
		ptr.ID = actors.Insert(ptr)
	}
	return w.Count
}
