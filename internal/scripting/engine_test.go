package scripting

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newRepoEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestActorAIStealth(t *testing.T) {
	e := newRepoEngine(t)
	cases := []struct {
		name string
		ctx  ActorContext
		want string
	}{
		{"far with patrol", ActorContext{PlayerDist: 20, DetectRange: 5, HasPatrol: true}, "patrol"},
		{"far without patrol", ActorContext{PlayerDist: 20, DetectRange: 5}, "idle"},
		{"detected", ActorContext{PlayerDist: 3, DetectRange: 5, AttackRange: 1, PlayerX: 3}, "move_to"},
		{"in reach", ActorContext{PlayerDist: 0.5, DetectRange: 5, AttackRange: 1, CanAttack: true}, "attack"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cmds := e.RunActorAI(c.ctx)
			if len(cmds) != 1 || cmds[0].Type != c.want {
				t.Fatalf("commands = %+v, want %s", cmds, c.want)
			}
		})
	}
}

func TestActorAIBattleRoles(t *testing.T) {
	e := newRepoEngine(t)
	base := ActorContext{InBattle: true, AttackRange: 1, PlayerX: 10, PlayerDist: 10, TargetX: 4, TargetY: 4}

	retreat := base
	retreat.Role = "retreat"
	cmds := e.RunActorAI(retreat)
	if len(cmds) != 1 || cmds[0].Type != "move_to" || cmds[0].X != 4 || cmds[0].Y != 4 {
		t.Fatalf("retreat = %+v", cmds)
	}

	attack := base
	attack.Role = "attack"
	cmds = e.RunActorAI(attack)
	if len(cmds) != 1 || cmds[0].X != 10 {
		t.Fatalf("attack = %+v", cmds)
	}

	none := base
	none.Role = "none"
	cmds = e.RunActorAI(none)
	if len(cmds) != 1 || cmds[0].Type != "idle" {
		t.Fatalf("unassigned = %+v", cmds)
	}
}

func TestMissingOrBrokenActorAI(t *testing.T) {
	dir := t.TempDir()
	e, err := NewEngine(dir, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()
	if cmds := e.RunActorAI(ActorContext{}); cmds != nil {
		t.Fatalf("no script: %+v", cmds)
	}

	writeScript(t, dir, "ai/broken.lua", `function actor_ai(ctx) error("boom") end`)
	if err := e.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if cmds := e.RunActorAI(ActorContext{}); cmds != nil {
		t.Fatalf("runtime error should yield nil, got %+v", cmds)
	}
}

func TestBrokenActorAILoggedOncePerLoad(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "ai/broken.lua", `function actor_ai(ctx) error("boom") end`)
	core, logs := observer.New(zapcore.ErrorLevel)
	e, err := NewEngine(dir, zap.New(core))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	for i := 0; i < 5; i++ {
		e.RunActorAI(ActorContext{Kind: "wolf"})
	}
	if n := logs.Len(); n != 1 {
		t.Fatalf("error logs = %d, want 1", n)
	}

	if err := e.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	for i := 0; i < 3; i++ {
		e.RunActorAI(ActorContext{Kind: "wolf"})
	}
	if n := logs.Len(); n != 2 {
		t.Fatalf("error logs after reload = %d, want 2", n)
	}
}

func TestEmptyCommandTableIsADecision(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "ai/still.lua", `function actor_ai(ctx) return {} end`)
	e, err := NewEngine(dir, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	cmds := e.RunActorAI(ActorContext{})
	if cmds == nil || len(cmds) != 0 {
		t.Fatalf("commands = %#v, want empty non-nil", cmds)
	}

	writeScript(t, dir, "ai/still.lua", `function actor_ai(ctx) return nil end`)
	if err := e.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if cmds := e.RunActorAI(ActorContext{}); cmds != nil {
		t.Fatalf("non-table result = %#v, want nil", cmds)
	}
}

func TestReloadKeepsVMOnSyntaxError(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "ai/a.lua", `function actor_ai(ctx) return {{type="idle"}} end`)
	e, err := NewEngine(dir, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	writeScript(t, dir, "ai/a.lua", `function actor_ai(ctx) return {{type=`)
	if err := e.Reload(); err == nil {
		t.Fatal("expected syntax error")
	}
	if cmds := e.RunActorAI(ActorContext{}); len(cmds) != 1 || cmds[0].Type != "idle" {
		t.Fatalf("old VM lost: %+v", cmds)
	}

	writeScript(t, dir, "ai/a.lua", `function actor_ai(ctx) return {{type="patrol"}} end`)
	if err := e.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if cmds := e.RunActorAI(ActorContext{}); len(cmds) != 1 || cmds[0].Type != "patrol" {
		t.Fatalf("new VM not used: %+v", cmds)
	}
}

func TestAllocationBonus(t *testing.T) {
	e := newRepoEngine(t)
	if got := e.AllocationBonus(3, 100, 1); got != 30 {
		t.Fatalf("scripted bonus = %v", got)
	}

	bare, err := NewEngine(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer bare.Close()
	if got := bare.AllocationBonus(3, 100, 2); got != 6 {
		t.Fatalf("fallback bonus = %v", got)
	}
}

func TestWatchSignalsScriptChanges(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "ai"), 0o755); err != nil {
		t.Fatal(err)
	}
	w, err := Watch(dir, nil)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	writeScript(t, dir, "ai/notes.txt", "ignored")
	writeScript(t, dir, "ai/x.lua", "-- x")

	select {
	case name := <-w.Changes:
		if filepath.Ext(name) != ".lua" {
			t.Fatalf("change for %s", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change signalled")
	}
}

func TestWatchMissingDir(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "nope"), nil)
	var nd *NoDirError
	if !errors.As(err, &nd) {
		t.Fatalf("err = %v, want NoDirError", err)
	}
}
