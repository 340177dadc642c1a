// Command mazeworld generates maze arenas, runs matches on them and exports
// the result as region files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OCharnyshevich/mazeworld/internal/arena"
	"github.com/OCharnyshevich/mazeworld/internal/catalog"
	"github.com/OCharnyshevich/mazeworld/internal/config"
	"github.com/OCharnyshevich/mazeworld/internal/match"
	"github.com/OCharnyshevich/mazeworld/internal/server"
	"github.com/OCharnyshevich/mazeworld/internal/statsdb"
	"github.com/OCharnyshevich/mazeworld/internal/storage"
	"github.com/OCharnyshevich/mazeworld/internal/world"
	"github.com/OCharnyshevich/mazeworld/internal/world/gen"
	"github.com/OCharnyshevich/mazeworld/pkg/layout"
)

type mode int

const (
	modeBuild mode = iota
	modeSimulate
	modeServe
)

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "mazeworld.yaml", "config file path")
	flag.IntVar(&cfg.MazeSize, "size", cfg.MazeSize, "maze size, odd, 29..199")
	flag.IntVar(&cfg.PlayerCount, "players", cfg.PlayerCount, "number of spawns")
	flag.StringVar(&cfg.TowerDifficulty, "towers", cfg.TowerDifficulty, "tower difficulty: easy, hard or both")
	flag.StringVar(&cfg.WaterZone, "water", cfg.WaterZone, "water zone: on or off")
	flag.Float64Var(&cfg.StormFactor, "storm-factor", cfg.StormFactor, "storm slowdown exponent")
	flag.StringVar(&cfg.WallType, "walls", cfg.WallType, "wall type: glass or stonebrick")
	flag.StringVar(&cfg.LootQuality, "loot", cfg.LootQuality, "maze chest loot: weak, strong or blicky")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 = time based")
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "state and stats directory")
	flag.StringVar(&cfg.PackDir, "pack", cfg.PackDir, "structure pack directory")
	flag.StringVar(&cfg.OutDir, "out", cfg.OutDir, "region file output directory")
	simulate := flag.Bool("simulate", false, "play a bot match on the arena before exporting")
	serve := flag.Bool("serve", false, "run the match loop, reading events from stdin")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	fromFile, err := config.Load(*configPath)
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}
	config.Merge(cfg, fromFile, explicit)
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(2)
	}

	m := modeBuild
	switch {
	case *serve:
		m = modeServe
	case *simulate:
		m = modeSimulate
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, m, log); err != nil {
		log.Error("mazeworld", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, m mode, log *slog.Logger) error {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	log.Info("mazeworld starting",
		"mazeSize", cfg.MazeSize,
		"players", cfg.PlayerCount,
		"towers", cfg.TowerDifficulty,
		"water", cfg.WaterZone,
		"walls", cfg.WallType,
		"loot", cfg.LootQuality,
		"seed", cfg.Seed,
	)

	cat, err := catalog.Load(cfg.PackDir)
	if err != nil {
		return err
	}
	store, err := storage.New(cfg.DataDir, log)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	w := world.NewWorld(gen.NewArenaGenerator(cfg.Surface))
	r := arena.NewWorldRenderer(w, cat, rng, log)
	b := arena.NewBuilder(r, cat, rng, world.BlockPos{Y: cfg.OriginY}, log)

	if m == modeBuild {
		if _, err := b.Build(ctx, arena.Options{
			MazeSize:    cfg.MazeSize,
			PlayerCount: cfg.PlayerCount,
			Difficulty:  layout.ParseDifficulty(cfg.TowerDifficulty),
			Glass:       cfg.WallType == config.WallGlass,
			LootQuality: cfg.LootQuality,
		}); err != nil {
			return err
		}
		return export(ctx, w, cfg.OutDir, log)
	}

	deps := match.Deps{
		Renderer:  r,
		Builder:   b,
		Catalog:   cat,
		Stats:     store,
		State:     store,
		Broadcast: chatLog{log: log},
		Teleport:  chatLog{log: log},
		Log:       log,
	}
	if cfg.Database.Enabled {
		db, err := openStatsDB(ctx, cfg.Database.DSN(), log)
		if err != nil {
			return err
		}
		defer db.Close()
		deps.Stats = db
		deps.Matches = db
	}

	engine, err := match.NewEngine(match.SettingsFromConfig(cfg), deps)
	if err != nil {
		return err
	}

	switch m {
	case modeSimulate:
		res, err := simulateMatch(ctx, engine, cfg.PlayerCount, rng, log)
		if err != nil {
			return err
		}
		log.Info("simulation finished", "winner", res.winner, "seconds", res.seconds, "stormCount", res.stormCount)
	case modeServe:
		srv := server.New(engine, time.Second, log)
		go func() {
			if err := srv.ReadConsole(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("console", "error", err)
			}
		}()
		if err := srv.Run(ctx); err != nil {
			return err
		}
	}

	// Export even after an interrupt so the arena built so far is kept.
	return export(context.WithoutCancel(ctx), w, cfg.OutDir, log)
}

func openStatsDB(ctx context.Context, dsn string, log *slog.Logger) (*statsdb.DB, error) {
	if err := statsdb.RunMigrations(ctx, dsn); err != nil {
		return nil, fmt.Errorf("stats database: %w", err)
	}
	db, err := statsdb.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("stats database: %w", err)
	}
	log.Info("stats database connected")
	return db, nil
}

func export(ctx context.Context, w *world.World, dir string, log *slog.Logger) error {
	start := time.Now()
	n, err := arena.Export(ctx, w, dir, log)
	if err != nil {
		return fmt.Errorf("export arena: %w", err)
	}
	log.Info("export finished", "regions", n, "took", time.Since(start))
	return nil
}
