package gameplay

import (
	"errors"
	"testing"

	"github.com/duskfall/core/internal/ai"
	"github.com/duskfall/core/internal/core/arena"
	"github.com/duskfall/core/internal/core/event"
	"github.com/duskfall/core/internal/geom"
	"github.com/duskfall/core/internal/match"
	"github.com/duskfall/core/internal/match/mocks"
	"github.com/duskfall/core/internal/tactics"
	"github.com/duskfall/core/internal/world"
	"go.uber.org/mock/gomock"
)

const dt = 1.0 / 60

func settings() match.Settings {
	return match.Settings{
		PhaseLength:       10,
		TransitionSeconds: 0.01,
		StealthAmbience:   geom.Color{B: 0.5, A: 1},
		BattleAmbience:    geom.Color{R: 0.5, A: 1},
		EnemyDamageFactor: 0.5,
	}
}

type fixture struct {
	world  *world.State
	player *mocks.MockPlayer
	sink   *mocks.MockEffectSink
	state  *match.State
	loop   *Loop
}

func newFixture(t *testing.T, actors int) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		world:  world.NewState(nil, world.Player{HP: 100, MaxHP: 100}),
		player: mocks.NewMockPlayer(ctrl),
		sink:   mocks.NewMockEffectSink(ctrl),
	}
	f.world.AddCollectible(geom.V(20, 20), 1)
	for i := 0; i < actors; i++ {
		f.world.SpawnActor(world.Actor{
			Pos:         geom.V(30+float64(i), 30),
			HP:          10,
			MaxHP:       10,
			Speed:       1,
			AttackRange: 1,
			DetectRange: 2,
			Attack:      world.NewAttackState(0.2, 1),
		})
	}
	st := match.NewState(settings().PhaseLength)
	f.state = &st
	loop, err := New(f.state, settings(), Deps{
		World:       f.world,
		Player:      f.player,
		Sink:        f.sink,
		Controller:  ai.NewController(nil, nil, nil),
		Coordinator: tactics.NewCoordinator(tactics.Config{}, nil),
	}, 60)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.loop = loop
	return f
}

// nightfall removes the last collectible so the next tick leaves stealth.
func (f *fixture) nightfall() {
	c, ok := f.world.NearestCollectible(geom.V(0, 0))
	if ok {
		f.world.Player().Pos = c.Pos
		f.world.Collect(0.5)
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	ctrl := gomock.NewController(t)
	full := Deps{
		World:       world.NewState(nil, world.Player{HP: 1}),
		Player:      mocks.NewMockPlayer(ctrl),
		Controller:  ai.NewController(nil, nil, nil),
		Coordinator: tactics.NewCoordinator(tactics.Config{}, nil),
	}
	cases := map[string]func(d *Deps){
		"world":       func(d *Deps) { d.World = nil },
		"player":      func(d *Deps) { d.Player = nil },
		"controller":  func(d *Deps) { d.Controller = nil },
		"coordinator": func(d *Deps) { d.Coordinator = nil },
	}
	for name, drop := range cases {
		t.Run(name, func(t *testing.T) {
			d := full
			drop(&d)
			st := match.NewState(1)
			if _, err := New(&st, settings(), d, 0); !errors.Is(err, ErrMissingCollaborator) {
				t.Fatalf("err = %v", err)
			}
		})
	}
	if _, err := New(nil, settings(), full, 0); !errors.Is(err, ErrMissingCollaborator) {
		t.Fatalf("nil state: err = %v", err)
	}
	st := match.NewState(1)
	if _, err := New(&st, settings(), full, 0); err != nil {
		t.Fatalf("sink and spawner are optional: %v", err)
	}
}

func TestFullMatchToVictory(t *testing.T) {
	f := newFixture(t, 2)

	var got []match.EffectKind
	f.sink.EXPECT().Consume(gomock.Any()).Do(func(fx []match.Effect) {
		got = append(got, match.Kinds(fx)...)
	}).AnyTimes()
	stealthTicks := f.player.EXPECT().Update(gomock.Any(), match.PhaseStealth, gomock.Any()).Times(3)
	f.player.EXPECT().SwitchToCombatForm().Times(1).After(stealthTicks)
	f.player.EXPECT().Update(gomock.Any(), match.PhaseBattle, gomock.Any()).Times(4)

	var phases []match.Phase
	event.Subscribe(f.loop.Bus(), func(e event.PhaseChanged) { phases = append(phases, e.To) })
	ended := 0
	event.Subscribe(f.loop.Bus(), func(e event.MatchEnded) { ended++ })

	for i := 0; i < 3; i++ {
		f.loop.Tick(dt)
	}
	if f.loop.RemainingTime() <= 0 || f.loop.RemainingTime() >= 10 {
		t.Fatalf("remaining time = %v", f.loop.RemainingTime())
	}

	f.nightfall()
	f.loop.Tick(dt) // → transition, frozen
	if f.loop.Phase() != match.PhaseTransition {
		t.Fatalf("phase = %v", f.loop.Phase())
	}
	if f.world.ShadowShear() != 0.5 || f.world.ShadowScale() != 0.5 || f.world.EnemyDamage() != 0.5 {
		t.Fatalf("night-fall not applied: shear %v scale %v dmg %v",
			f.world.ShadowShear(), f.world.ShadowScale(), f.world.EnemyDamage())
	}
	if f.world.Lighting().Active() {
		t.Fatal("stealth lighting still active")
	}

	// Collected 1, so the transition ends in allocation.
	f.loop.Tick(dt)
	if f.loop.Phase() != match.PhaseAllocate {
		t.Fatalf("phase = %v", f.loop.Phase())
	}
	f.loop.Tick(dt) // waits
	f.world.Allocate(10)
	for i := 0; i < 4; i++ {
		f.loop.Tick(dt)
	}
	if f.loop.Phase() != match.PhaseBattle {
		t.Fatalf("phase = %v", f.loop.Phase())
	}
	f.world.Actors().Each(func(_ arena.Handle, a *world.Actor) {
		if !a.InBattleMode {
			t.Fatal("actor not switched to battle mode")
		}
	})
	if f.loop.RemainingEnemies() != 2 {
		t.Fatalf("enemies = %d", f.loop.RemainingEnemies())
	}

	f.world.Actors().Each(func(_ arena.Handle, a *world.Actor) { a.HP = 0 })
	if out := f.loop.Tick(dt); out != match.OutcomeWon {
		t.Fatalf("outcome = %v", out)
	}
	// Refused from here on: no further player updates are expected.
	for i := 0; i < 5; i++ {
		if out := f.loop.Tick(dt); out != match.OutcomeWon {
			t.Fatalf("outcome changed to %v", out)
		}
	}
	f.loop.Flush()

	wantFx := []match.EffectKind{
		match.EffectDisposeStealthLighting, match.EffectSwitchPlayerForm,
		match.EffectScaleShadows, match.EffectSetEnemyDamage,
		match.EffectSetAmbientColor,
		match.EffectPlayBattleMusic, match.EffectSwitchActorMode,
		match.EffectPlayWinSound,
	}
	if len(got) != len(wantFx) {
		t.Fatalf("effects = %v, want %v", got, wantFx)
	}
	for i := range wantFx {
		if got[i] != wantFx[i] {
			t.Fatalf("effects = %v, want %v", got, wantFx)
		}
	}
	wantPhases := []match.Phase{match.PhaseTransition, match.PhaseAllocate, match.PhaseBattle}
	if len(phases) != len(wantPhases) {
		t.Fatalf("phase events = %v", phases)
	}
	if ended != 1 {
		t.Fatalf("match ended events = %d", ended)
	}
}

func TestCoordinatorCadence(t *testing.T) {
	f := newFixture(t, 3)
	f.sink.EXPECT().Consume(gomock.Any()).AnyTimes()
	f.player.EXPECT().SwitchToCombatForm()
	f.player.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	f.nightfall()
	f.world.SetResourceCollected(0) // straight to battle
	f.loop.Tick(dt)                 // → transition
	f.loop.Tick(dt)                 // → battle, entry window
	if f.loop.Phase() != match.PhaseBattle {
		t.Fatalf("phase = %v", f.loop.Phase())
	}
	if f.loop.TacticsRuns() != 1 {
		t.Fatalf("runs on entry = %d", f.loop.TacticsRuns())
	}
	var firstWindow world.Assignment
	f.world.Actors().Each(func(_ arena.Handle, a *world.Actor) {
		if a.Assignment.IsZero() {
			t.Fatal("actor without assignment after entry window")
		}
		firstWindow = a.Assignment
	})
	if firstWindow.Window != 0 {
		t.Fatalf("entry window = %d", firstWindow.Window)
	}

	for i := 0; i < 59; i++ {
		f.loop.Tick(dt)
	}
	if f.loop.TacticsRuns() != 1 {
		t.Fatalf("runs before boundary = %d", f.loop.TacticsRuns())
	}
	f.loop.Tick(dt)
	if f.loop.TacticsRuns() != 2 {
		t.Fatalf("runs at tick 60 = %d", f.loop.TacticsRuns())
	}
	for i := 0; i < 60; i++ {
		f.loop.Tick(dt)
	}
	if f.loop.TacticsRuns() != 3 || f.state.BattleTicks != 120 {
		t.Fatalf("runs = %d at battle tick %d", f.loop.TacticsRuns(), f.state.BattleTicks)
	}
}

func TestCoordinatorIdleUntilBattle(t *testing.T) {
	f := newFixture(t, 3)
	f.sink.EXPECT().Consume(gomock.Any()).AnyTimes()
	f.player.EXPECT().SwitchToCombatForm()
	f.player.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	for i := 0; i < 70; i++ {
		f.loop.Tick(dt)
	}
	if f.loop.Phase() != match.PhaseStealth || f.loop.TacticsRuns() != 0 {
		t.Fatalf("stealth: phase %v, runs %d", f.loop.Phase(), f.loop.TacticsRuns())
	}

	f.nightfall()   // collects 1, so night-fall leads to allocation
	f.loop.Tick(dt) // → transition
	f.loop.Tick(dt) // → allocate
	if f.loop.Phase() != match.PhaseAllocate {
		t.Fatalf("phase = %v", f.loop.Phase())
	}
	for i := 0; i < 70; i++ {
		f.loop.Tick(dt)
	}
	if f.loop.Phase() != match.PhaseAllocate || f.loop.TacticsRuns() != 0 {
		t.Fatalf("allocate: phase %v, runs %d", f.loop.Phase(), f.loop.TacticsRuns())
	}
	f.world.Actors().Each(func(_ arena.Handle, a *world.Actor) {
		if !a.Assignment.IsZero() {
			t.Fatal("assignment handed out before battle")
		}
	})

	f.world.Allocate(10)
	f.loop.Tick(dt)
	if f.loop.Phase() != match.PhaseBattle {
		t.Fatalf("phase = %v", f.loop.Phase())
	}
	if f.loop.TacticsRuns() != 1 {
		t.Fatalf("runs on battle entry = %d", f.loop.TacticsRuns())
	}
}

func TestPlayerDeathStopsTheTick(t *testing.T) {
	f := newFixture(t, 1)
	f.sink.EXPECT().Consume([]match.Effect{{Kind: match.EffectPlayFailSound}})
	f.player.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)

	f.loop.Tick(dt)
	f.nightfall() // would otherwise end stealth this tick
	f.world.Player().HP = 0
	if out := f.loop.Tick(dt); out != match.OutcomeLost {
		t.Fatalf("outcome = %v", out)
	}
	if f.loop.Phase() != match.PhaseStealth {
		t.Fatalf("phase = %v", f.loop.Phase())
	}
}

func TestNonPositiveDeltaDoesNothing(t *testing.T) {
	f := newFixture(t, 1)
	before := f.loop.State()
	for _, d := range []float64{0, -dt} {
		f.loop.Tick(d)
	}
	if f.loop.State() != before {
		t.Fatalf("state moved: %+v", f.loop.State())
	}
}

func TestDeadActorsReapedAtTickStart(t *testing.T) {
	f := newFixture(t, 2)
	f.player.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	var removed []arena.Handle
	event.Subscribe(f.loop.Bus(), func(e event.ActorRemoved) { removed = append(removed, e.ID) })

	f.loop.Tick(dt)
	victim := f.world.Actors().Handles()[0]
	a, _ := f.world.Actors().Get(victim)
	a.HP = -3

	f.loop.Tick(dt)
	if f.world.Actors().Contains(victim) {
		t.Fatal("dead actor still stored")
	}
	if f.loop.RemainingEnemies() != 1 {
		t.Fatalf("enemies = %d", f.loop.RemainingEnemies())
	}
	f.loop.Tick(dt)
	if len(removed) != 1 || removed[0] != victim {
		t.Fatalf("removed events = %v", removed)
	}
}
