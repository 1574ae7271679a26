package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for actor decision scripts.
// Single-goroutine access only (game loop). Reload swaps the VM between ticks.
type Engine struct {
	vm  *lua.LState
	dir string
	log *zap.Logger

	aiErrors int // actor_ai failures since the last (re)load
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{dir: scriptsDir, log: log}
	vm, err := e.load()
	if err != nil {
		return nil, err
	}
	e.vm = vm
	return e, nil
}

// load builds a fresh VM: core scripts first, then ai scripts.
func (e *Engine) load() (*lua.LState, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	for _, sub := range []string{"core", "ai"} {
		p := filepath.Join(e.dir, sub)
		if err := e.loadDir(vm, p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return vm, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(vm *lua.LState, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Reload rebuilds the VM from disk. On error the current VM stays in place.
func (e *Engine) Reload() error {
	vm, err := e.load()
	if err != nil {
		return err
	}
	e.vm.Close()
	e.vm = vm
	e.aiErrors = 0
	e.log.Info("lua scripts reloaded", zap.String("dir", e.dir))
	return nil
}

// Dir returns the scripts root.
func (e *Engine) Dir() string { return e.dir }

// HasFunc reports whether a global function is defined.
func (e *Engine) HasFunc(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// ActorContext holds pre-packed data for one actor decision.
type ActorContext struct {
	Kind        string
	X, Y        float64
	HP, MaxHP   float64
	Speed       float64
	AttackRange float64
	DetectRange float64
	InBattle    bool
	CanAttack   bool

	Role             string // coordinator role, "none" without assignment
	TargetX, TargetY float64

	PlayerX, PlayerY float64
	PlayerDist       float64

	HasPatrol        bool
	PatrolX, PatrolY float64 // current patrol waypoint
}

// Command is one action returned by actor_ai.
//
//	move_to: walk to (x, y)
//	attack:  start an attack if possible
//	patrol:  continue the patrol route
//	idle:    stand still
type Command struct {
	Type string
	X, Y float64
}

// RunActorAI calls Lua actor_ai(ctx) and returns a list of commands.
// A nil result means no script decision; the caller falls back to Go logic.
// An empty table is a decision to do nothing and yields an empty slice.
func (e *Engine) RunActorAI(ctx ActorContext) []Command {
	fn := e.vm.GetGlobal("actor_ai")
	if fn == lua.LNil {
		return nil
	}

	// Build context table
	t := e.vm.NewTable()
	t.RawSetString("kind", lua.LString(ctx.Kind))
	t.RawSetString("x", lua.LNumber(ctx.X))
	t.RawSetString("y", lua.LNumber(ctx.Y))
	t.RawSetString("hp", lua.LNumber(ctx.HP))
	t.RawSetString("max_hp", lua.LNumber(ctx.MaxHP))
	t.RawSetString("speed", lua.LNumber(ctx.Speed))
	t.RawSetString("attack_range", lua.LNumber(ctx.AttackRange))
	t.RawSetString("detect_range", lua.LNumber(ctx.DetectRange))
	t.RawSetString("in_battle", lua.LBool(ctx.InBattle))
	t.RawSetString("can_attack", lua.LBool(ctx.CanAttack))

	t.RawSetString("role", lua.LString(ctx.Role))
	t.RawSetString("target_x", lua.LNumber(ctx.TargetX))
	t.RawSetString("target_y", lua.LNumber(ctx.TargetY))

	t.RawSetString("player_x", lua.LNumber(ctx.PlayerX))
	t.RawSetString("player_y", lua.LNumber(ctx.PlayerY))
	t.RawSetString("player_dist", lua.LNumber(ctx.PlayerDist))

	t.RawSetString("has_patrol", lua.LBool(ctx.HasPatrol))
	t.RawSetString("patrol_x", lua.LNumber(ctx.PatrolX))
	t.RawSetString("patrol_y", lua.LNumber(ctx.PatrolY))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		// Logged once per load.
		e.aiErrors++
		if e.aiErrors == 1 {
			e.log.Error("lua actor_ai error, repeats suppressed until reload",
				zap.Error(err), zap.String("kind", ctx.Kind))
		}
		return nil
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return nil
	}

	// Parse commands array
	cmds := make([]Command, 0, rt.Len())
	rt.ForEach(func(_, v lua.LValue) {
		if row, ok := v.(*lua.LTable); ok {
			cmds = append(cmds, Command{
				Type: lStr(row, "type"),
				X:    lFloat(row, "x"),
				Y:    lFloat(row, "y"),
			})
		}
	})
	return cmds
}

// AllocationBonus calls Lua allocation_bonus(resource, max_hp) and returns
// the max health gained from spending the collected resource. Falls back to
// perUnit health per resource unit when the script does not define it.
func (e *Engine) AllocationBonus(resource int, maxHP, perUnit float64) float64 {
	if !e.HasFunc("allocation_bonus") {
		return float64(resource) * perUnit
	}
	v, err := e.callFloatFunc("allocation_bonus", float64(resource), maxHP)
	if err != nil {
		return float64(resource) * perUnit
	}
	return v
}

// lFloat reads a number field from a Lua table.
func lFloat(t *lua.LTable, key string) float64 {
	return float64(lua.LVAsNumber(t.RawGetString(key)))
}

// lStr reads a string field from a Lua table.
func lStr(t *lua.LTable, key string) string {
	return lua.LVAsString(t.RawGetString(key))
}

// callFloatFunc calls a Lua function with number args and returns a number result.
func (e *Engine) callFloatFunc(name string, args ...float64) (float64, error) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return 0, fmt.Errorf("lua function %s not found", name)
	}

	lArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lArgs[i] = lua.LNumber(a)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0, err
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return float64(lua.LVAsNumber(result)), nil
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
