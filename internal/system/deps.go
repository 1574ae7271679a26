package system

import (
	"github.com/duskfall/core/internal/ai"
	"github.com/duskfall/core/internal/core/arena"
	"github.com/duskfall/core/internal/core/event"
	"github.com/duskfall/core/internal/match"
	"github.com/duskfall/core/internal/tactics"
	"github.com/duskfall/core/internal/world"
	"go.uber.org/zap"
)

// Deps bundles the collaborators the tick systems share. Sink and Spawner
// are optional; everything else is required by the gameplay loop.
type Deps struct {
	World       match.World
	Player      match.Player
	Sink        match.EffectSink
	Spawner     match.Spawner
	Controller  *ai.Controller
	Coordinator *tactics.Coordinator
	Bus         *event.Bus
	Log         *zap.Logger
}

// reap retires actors whose health has run out: they stop counting as active
// at once and are destroyed at the next flush.
func reap(actors *arena.Arena[world.Actor]) {
	actors.Each(func(h arena.Handle, a *world.Actor) {
		if a.HP <= 0 {
			a.Alive = false
		}
		if !a.Alive {
			actors.MarkForRemoval(h)
		}
	})
}

// flush destroys reaped actors and reports each removal on the bus.
func flush(d *Deps, state *match.State) int {
	actors := d.World.Actors()
	kinds := make(map[arena.Handle]string)
	actors.Each(func(h arena.Handle, a *world.Actor) {
		if !a.Alive {
			kinds[h] = a.Kind
		}
	})
	removed := actors.Flush()
	for _, h := range removed {
		event.Emit(d.Bus, event.ActorRemoved{ID: h, Kind: kinds[h], Tick: state.Tick})
	}
	return len(removed)
}
