package world

import (
	"fmt"

	"github.com/duskfall/core/internal/data"
	"github.com/duskfall/core/internal/geom"
	"github.com/duskfall/core/internal/navigation"
)

// NewActor builds an actor from a template at pos.
func NewActor(t *data.EnemyTemplate, pos geom.Vec2) Actor {
	return Actor{
		Kind:        t.Kind,
		Pos:         pos,
		HP:          t.HP,
		MaxHP:       t.HP,
		Speed:       t.Speed,
		Damage:      t.Damage,
		AttackRange: t.AttackRange,
		DetectRange: t.DetectRange,
		Attack:      NewAttackState(t.AttackLength, t.AttackCooldown),
	}
}

// FromLevel builds the in-memory level state for lvl.
func FromLevel(lvl *data.Level, tbl *data.LevelTable) (*State, error) {
	if lvl == nil {
		return nil, fmt.Errorf("nil level")
	}
	var grid *navigation.Grid
	if len(lvl.Tiles) > 0 {
		grid = navigation.ParseRows(lvl.Tiles, lvl.CellSize)
	}
	p := lvl.Player
	s := NewState(grid, Player{
		Pos:         p.At,
		HP:          p.HP,
		MaxHP:       p.HP,
		Speed:       p.Speed,
		Damage:      p.Damage,
		AttackRange: p.AttackRange,
		Attack:      NewAttackState(0.3, 0.5),
	})
	s.ambient = lvl.StealthAmbience
	if lvl.Shadow.Shear != 0 {
		s.shadowShear = lvl.Shadow.Shear
	}
	if lvl.Shadow.Scale != 0 {
		s.shadowScale = lvl.Shadow.Scale
	}

	for _, c := range lvl.Collectibles {
		s.AddCollectible(c.At, c.Value)
	}
	for _, e := range lvl.Enemies {
		t := tbl.Template(e.Kind)
		if t == nil {
			return nil, fmt.Errorf("level %q: unknown enemy kind %q", lvl.Name, e.Kind)
		}
		a := NewActor(t, e.At)
		a.Patrol = append([]geom.Vec2(nil), e.Patrol...)
		s.SpawnActor(a)
	}
	return s, nil
}
