package match

import (
	"github.com/duskfall/core/internal/core/arena"
	"github.com/duskfall/core/internal/geom"
	"github.com/duskfall/core/internal/world"
)

// fakeWorld answers scheduler queries from plain fields.
type fakeWorld struct {
	remaining   int
	health      float64
	resource    int
	ready       bool
	actors      *arena.Arena[world.Actor]
	ambient     geom.Color
	shear       float64
	scale       float64
	enemyDamage float64
	light       world.StealthLight
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		remaining:   3,
		health:      100,
		actors:      arena.New[world.Actor](),
		shear:       1,
		scale:       1,
		enemyDamage: 1,
	}
}

func (w *fakeWorld) addActors(n int) {
	for i := 0; i < n; i++ {
		a := &world.Actor{Alive: true, HP: 10, MaxHP: 10}
		a.ID = w.actors.Insert(a)
	}
}

func (w *fakeWorld) killAll() {
	w.actors.Each(func(h arena.Handle, a *world.Actor) {
		a.Alive = false
		w.actors.MarkForRemoval(h)
	})
	w.actors.Flush()
}

func (w *fakeWorld) RemainingCollectibles() int        { return w.remaining }
func (w *fakeWorld) PlayerHealth() float64             { return w.health }
func (w *fakeWorld) PlayerPosition() geom.Vec2         { return geom.Vec2{} }
func (w *fakeWorld) Actors() *arena.Arena[world.Actor] { return w.actors }
func (w *fakeWorld) Lighting() world.Lighting          { return &w.light }
func (w *fakeWorld) Blocked(geom.Vec2) bool            { return false }
func (w *fakeWorld) AmbientColor() geom.Color          { return w.ambient }
func (w *fakeWorld) SetAmbientColor(c geom.Color)      { w.ambient = c }
func (w *fakeWorld) ShadowShear() float64              { return w.shear }
func (w *fakeWorld) SetShadowShear(v float64)          { w.shear = v }
func (w *fakeWorld) ShadowScale() float64              { return w.scale }
func (w *fakeWorld) SetShadowScale(v float64)          { w.scale = v }
func (w *fakeWorld) SetEnemyDamage(f float64)          { w.enemyDamage = f }
func (w *fakeWorld) ResourceCollected() int            { return w.resource }
func (w *fakeWorld) SetResourceCollected(n int)        { w.resource = n }
func (w *fakeWorld) AllocationReady() bool             { return w.ready }
