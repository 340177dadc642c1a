package main

import (
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/mazeworld/internal/arena"
	"github.com/OCharnyshevich/mazeworld/internal/catalog"
	"github.com/OCharnyshevich/mazeworld/pkg/geom"
	"github.com/OCharnyshevich/mazeworld/pkg/layout"
)

func newTestView(size int) *view {
	return &view{
		opts: arena.Options{
			MazeSize:    size,
			PlayerCount: 2,
			Difficulty:  layout.Easy,
			LootQuality: catalog.LootWeak,
		},
		cat:  catalog.Default(),
		rng:  rand.New(rand.NewSource(4)),
		log:  slog.New(slog.DiscardHandler),
		bell: &chime{},
	}
}

func TestPreviewGenerate(t *testing.T) {
	v := newTestView(51)
	require.NoError(t, v.generate())

	// Every column of the maze has a tile; the corners are walls.
	half := 25
	for x := -half; x <= half; x++ {
		for z := -half; z <= half; z++ {
			require.NotEqual(t, tileNone, v.prev.tiles[geom.Pos{X: x, Z: z}], "column %d,%d", x, z)
		}
	}
	assert.Equal(t, tileWall, v.prev.tiles[geom.Pos{X: -half, Z: -half}])

	// A 51 maze has the large tower in the middle.
	assert.Equal(t, tileTower, v.prev.tiles[geom.Pos{X: 0, Z: 0}])
	assert.Equal(t, len(v.layout.MazeChests)+len(v.layout.LargeChests), v.prev.chests)

	r, _ := v.cell(geom.Pos{X: 0, Z: 0})
	assert.Equal(t, '#', r)
}

func TestPreviewFlood(t *testing.T) {
	v := newTestView(29)
	require.NoError(t, v.generate())

	v.flood()
	assert.Equal(t, 1, v.ring)
	assert.NotEmpty(t, v.prev.flooded)

	for !v.closed {
		v.flood()
	}
	assert.Equal(t, 8, v.ring)
	assert.Equal(t, "water zone closed after 7 rings", v.status)

	v.flood()
	assert.Equal(t, 8, v.ring)
}

func TestPan(t *testing.T) {
	v := newTestView(29)
	require.NoError(t, v.generate())

	v.pan(-10, 4)
	assert.Equal(t, 0, v.panX)
	assert.Equal(t, 4, v.panZ)
	v.pan(100, 100)
	assert.Equal(t, 29, v.panX)
	assert.Equal(t, 29, v.panZ)
}
