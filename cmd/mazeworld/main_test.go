package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/mazeworld/internal/arena"
	"github.com/OCharnyshevich/mazeworld/internal/catalog"
	"github.com/OCharnyshevich/mazeworld/internal/config"
	"github.com/OCharnyshevich/mazeworld/internal/match"
	"github.com/OCharnyshevich/mazeworld/internal/storage"
	"github.com/OCharnyshevich/mazeworld/internal/world"
	"github.com/OCharnyshevich/mazeworld/internal/world/gen"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.MazeSize = 29
	cfg.PlayerCount = 2
	cfg.WaterZone = config.WaterOn
	cfg.Seed = 3
	cfg.DataDir = filepath.Join(dir, "data")
	cfg.PackDir = filepath.Join(dir, "pack")
	cfg.OutDir = filepath.Join(dir, "region")
	cfg.Normalize()
	require.NoError(t, cfg.Validate())
	return cfg
}

func regionFiles(t *testing.T, dir string) []string {
	t.Helper()
	names, err := filepath.Glob(filepath.Join(dir, "r.*.mca"))
	require.NoError(t, err)
	return names
}

func TestRunBuild(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, run(context.Background(), cfg, modeBuild, slog.New(slog.DiscardHandler)))
	assert.Len(t, regionFiles(t, cfg.OutDir), 4)
}

func TestRunSimulate(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, run(context.Background(), cfg, modeSimulate, slog.New(slog.DiscardHandler)))
	assert.NotEmpty(t, regionFiles(t, cfg.OutDir))

	data, err := os.ReadFile(filepath.Join(cfg.DataDir, "state.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"last_maze_size":29,"storm_count":0}`, string(data))
}

func TestSimulateMatch(t *testing.T) {
	log := slog.New(slog.DiscardHandler)
	store, err := storage.New(t.TempDir(), log)
	require.NoError(t, err)

	cat := catalog.Default()
	rng := rand.New(rand.NewSource(5))
	r := arena.NewWorldRenderer(world.NewWorld(gen.NewArenaGenerator(4)), cat, rng, log)
	e, err := match.NewEngine(match.SettingsFromConfig(testConfig(t)), match.Deps{
		Renderer:  r,
		Builder:   arena.NewBuilder(r, cat, rng, world.BlockPos{Y: 16}, log),
		Catalog:   cat,
		Stats:     store,
		State:     store,
		Broadcast: chatLog{log: log},
		Teleport:  chatLog{log: log},
		Log:       log,
	})
	require.NoError(t, err)

	res, err := simulateMatch(context.Background(), e, 3, rng, log)
	require.NoError(t, err)
	assert.Equal(t, 2*killInterval, res.seconds)
	assert.Contains(t, []string{"bot1", "bot2", "bot3"}, res.winner)
	assert.Equal(t, match.Lobby, e.State())

	st, err := store.Stats(context.Background(), res.winner)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Wins)
}
