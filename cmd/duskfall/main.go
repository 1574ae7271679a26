package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/duskfall/core/internal/ai"
	"github.com/duskfall/core/internal/bot"
	"github.com/duskfall/core/internal/config"
	"github.com/duskfall/core/internal/core/event"
	"github.com/duskfall/core/internal/data"
	"github.com/duskfall/core/internal/gameplay"
	"github.com/duskfall/core/internal/match"
	"github.com/duskfall/core/internal/navigation"
	"github.com/duskfall/core/internal/persist"
	"github.com/duskfall/core/internal/replay"
	"github.com/duskfall/core/internal/scripting"
	"github.com/duskfall/core/internal/session"
	"github.com/duskfall/core/internal/tactics"
	"github.com/duskfall/core/internal/world"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

var printer = message.NewPrinter(language.English)

func printBanner(level string, matchID uuid.UUID) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              duskfall  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m         headless match driver             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mlevel:\033[0m %s \033[90m(match %s)\033[0m\n\n", level, matchID)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	printValue(label, printer.Sprintf("%d", count))
}

func printValue(label, value string) {
	dotsLen := 42 - len(label) - len(value)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), value)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Effect capture ─────────────────────────────────────────────────

// tickEffects forwards effects to the session and keeps the current tick's
// effects for the replay recorder.
type tickEffects struct {
	next match.EffectSink
	buf  []match.Effect
}

func (t *tickEffects) Consume(effects []match.Effect) {
	t.buf = append(t.buf, effects...)
	t.next.Consume(effects)
}

// ── Main driver logic ──────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfg, err := config.Load(config.Path("config/duskfall.toml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Load level data
	tbl, err := data.LoadLevelTable(cfg.Data.Levels)
	if err != nil {
		return fmt.Errorf("level table: %w", err)
	}
	lvl := tbl.Get(cfg.Match.Level)
	if lvl == nil {
		return fmt.Errorf("level %q not found (have %s)", cfg.Match.Level, strings.Join(tbl.Names(), ", "))
	}
	level, err := world.FromLevel(lvl, tbl)
	if err != nil {
		return fmt.Errorf("build level: %w", err)
	}

	sess := session.New(session.NewLogBackend(log), session.AudioSettings{
		MusicEnabled: cfg.Audio.MusicEnabled,
		SoundEnabled: cfg.Audio.SoundEnabled,
		MusicVolume:  cfg.Audio.MusicVolume,
		SoundVolume:  cfg.Audio.SoundVolume,
	}, log)
	matchID := sess.ID()
	log = log.With(zap.Stringer("match", matchID))

	printBanner(lvl.Name, matchID)

	printSection("level")
	printStat("levels loaded", tbl.Count())
	printStat("collectibles", level.RemainingCollectibles())
	printStat("actors", level.Actors().Len())
	printStat("battle waves", len(lvl.Waves))
	fmt.Println()

	// 4. Scripts
	var paths navigation.Pathfinder
	if g := level.Grid(); g != nil {
		paths = navigation.NewGridPathfinder(g, 0)
	}
	var (
		engine  *scripting.Engine
		watcher *scripting.Watcher
	)
	controller := ai.NewController(paths, nil, log)
	if cfg.Scripting.Enabled {
		printSection("scripts")
		engine, err = scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer engine.Close()
		controller.SetScripter(engine)
		printOK(fmt.Sprintf("lua engine loaded from %s/", engine.Dir()))
		if cfg.Scripting.HotReload {
			watcher, err = scripting.Watch(cfg.Scripting.Dir, log)
			if err != nil {
				return fmt.Errorf("script watch: %w", err)
			}
			defer watcher.Close()
			printOK("hot reload enabled")
		}
		fmt.Println()
	}

	// 5. Database (optional)
	var (
		matches *persist.MatchRepo
		events  *persist.EventLogRepo
	)
	if cfg.Database.Enabled {
		printSection("database")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			cancel()
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		version, err := persist.RunMigrations(ctx, db.Pool)
		if err != nil {
			cancel()
			return fmt.Errorf("migrations: %w", err)
		}
		printOK(fmt.Sprintf("migrations applied (version %d)", version))

		matches = persist.NewMatchRepo(db)
		events = persist.NewEventLogRepo(db)
		if err := matches.Create(ctx, matchID, lvl.Name); err != nil {
			cancel()
			return err
		}
		cancel()
		fmt.Println()
	}

	// 6. Match
	settings := match.Settings{
		PhaseLength:       lvl.PhaseLength,
		TransitionSeconds: lvl.Transition,
		StealthAmbience:   lvl.StealthAmbience,
		BattleAmbience:    lvl.BattleAmbience,
		ShadowFactor:      cfg.Match.ShadowFactor,
		EnemyDamageFactor: cfg.Match.EnemyDamageFactor,
	}
	if cfg.Match.PhaseLength > 0 {
		settings.PhaseLength = cfg.Match.PhaseLength
	}
	if cfg.Match.TransitionSeconds > 0 {
		settings.TransitionSeconds = cfg.Match.TransitionSeconds
	}

	player := bot.New(level, paths, log)
	sink := &tickEffects{next: sess}
	bus := event.NewBus()
	state := match.NewState(settings.PhaseLength)
	loop, err := gameplay.New(&state, settings, gameplay.Deps{
		World:      level,
		Player:     player,
		Sink:       sink,
		Spawner:    world.NewWaveSpawner(lvl.Waves, tbl),
		Controller: controller,
		Coordinator: tactics.NewCoordinator(tactics.Config{
			MaxAttackers:    cfg.Tactics.MaxAttackers,
			FlankDistance:   cfg.Tactics.FlankDistance,
			SurroundRadius:  cfg.Tactics.SurroundRadius,
			SurroundSlots:   cfg.Tactics.SurroundSlots,
			RegroupRadius:   cfg.Tactics.RegroupRadius,
			RetreatHealth:   cfg.Tactics.RetreatHealth,
			RetreatDistance: cfg.Tactics.RetreatDistance,
		}, log),
		Bus: bus,
		Log: log,
	}, cfg.Tactics.Cadence)
	if err != nil {
		return fmt.Errorf("gameplay: %w", err)
	}

	var pending []persist.EventRow
	removed := 0
	event.Subscribe(bus, func(e event.PhaseChanged) {
		pending = append(pending, persist.EventRow{Tick: e.Tick, Kind: "phase", Detail: e.To.String()})
	})
	event.Subscribe(bus, func(e event.MatchEnded) {
		pending = append(pending, persist.EventRow{Tick: e.Tick, Kind: "outcome", Detail: e.Outcome.String()})
	})
	event.Subscribe(bus, func(e event.WaveSpawned) {
		pending = append(pending, persist.EventRow{Tick: e.Tick, Kind: "wave", Detail: fmt.Sprint(e.Count)})
	})
	event.Subscribe(bus, func(e event.ActorRemoved) {
		removed++
		pending = append(pending, persist.EventRow{Tick: e.Tick, Kind: "actor_removed", Detail: e.Kind})
	})

	flushEvents := func() {
		if events == nil || len(pending) == 0 {
			pending = pending[:0]
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := events.Write(ctx, matchID, pending); err != nil {
			log.Error("event log write failed", zap.Error(err), zap.Int("events", len(pending)))
			return
		}
		pending = pending[:0]
	}

	saveSnapshot := func() {
		if matches == nil {
			return
		}
		st := loop.State()
		raw, err := match.EncodeSnapshot(st)
		if err != nil {
			log.Error("snapshot encode failed", zap.Error(err))
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := matches.SaveSnapshot(ctx, matchID, persist.SnapshotRow{Tick: st.Tick, Phase: st.Phase.String(), State: raw}); err != nil {
			log.Error("snapshot save failed", zap.Error(err), zap.Uint64("tick", st.Tick))
		}
	}

	recorder := replay.NewRecorder(matchID.String())
	dt := cfg.Match.TickRate.Seconds()

	// 7. Start game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Match.TickRate)
	defer ticker.Stop()

	var reloads <-chan string
	if watcher != nil {
		reloads = watcher.Changes
	}

	printSection("match")
	printReady(fmt.Sprintf("game loop started (tick: %s)", cfg.Match.TickRate))
	fmt.Println()
	sess.Start()

	var ticks uint64
	outcome := match.OutcomePlaying
ticking:
	for outcome == match.OutcomePlaying {
		select {
		case <-ticker.C:
			sink.buf = sink.buf[:0]
			outcome = loop.Tick(dt)
			if outcome == match.OutcomePlaying && !loop.Phase().Frozen() {
				level.Integrate(dt)
			}
			if loop.Phase() == match.PhaseAllocate && !level.AllocationReady() {
				allocate(level, engine, cfg.Match.HPPerResource, log)
			}
			if err := recorder.Record(dt, loop.State(), sink.buf); err != nil {
				log.Error("replay record failed", zap.Error(err))
			}

			ticks++
			if n := cfg.Database.SnapshotInterval; n > 0 && ticks%n == 0 {
				saveSnapshot()
				flushEvents()
			}
			if cfg.Match.MaxTicks > 0 && ticks >= cfg.Match.MaxTicks {
				log.Warn("tick limit reached", zap.Uint64("ticks", ticks))
				break ticking
			}
		case name := <-reloads:
			if err := engine.Reload(); err != nil {
				log.Error("script reload failed", zap.String("file", name), zap.Error(err))
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			break ticking
		}
	}

	loop.Flush()
	saveSnapshot()
	flushEvents()
	st := loop.State()
	if matches != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := matches.Finish(ctx, matchID, persist.ResultRow{
			Outcome:      st.Outcome.String(),
			FinalPhase:   st.Phase.String(),
			Ticks:        st.Tick,
			ReplayDigest: recorder.Digest(),
		})
		cancel()
		if err != nil {
			log.Error("result save failed", zap.Error(err))
		}
	}

	printSection("result")
	printValue("outcome", st.Outcome.String())
	printValue("final phase", st.Phase.String())
	printStat("ticks", int(st.Tick))
	printStat("battle ticks", int(st.BattleTicks))
	printStat("moonlight collected", st.CollectedResource)
	printStat("tactics windows", loop.TacticsRuns())
	printStat("actors removed", removed)
	printStat("enemies left", loop.RemainingEnemies())
	printStat("player kills", player.Kills())
	printValue("replay", recorder.Digest()[:16])
	fmt.Println()

	log.Info("match finished",
		zap.Stringer("outcome", st.Outcome),
		zap.Uint64("ticks", st.Tick),
		zap.String("replay", recorder.Digest()))
	return nil
}

// allocate spends the collected moonlight on max health, via the script
// when one is loaded.
func allocate(level *world.State, engine *scripting.Engine, perUnit float64, log *zap.Logger) {
	res := level.ResourceCollected()
	if engine != nil && res > 0 {
		bonus := engine.AllocationBonus(res, level.Player().MaxHP, perUnit)
		perUnit = bonus / float64(res)
	}
	level.Allocate(perUnit)
	log.Info("moonlight allocated",
		zap.Int("resource", res),
		zap.Float64("max_hp", level.Player().MaxHP))
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
