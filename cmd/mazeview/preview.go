package main

import (
	"github.com/OCharnyshevich/mazeworld/internal/arena"
	"github.com/OCharnyshevich/mazeworld/internal/world"
	"github.com/OCharnyshevich/mazeworld/pkg/geom"
	"github.com/OCharnyshevich/mazeworld/pkg/layout"
	"github.com/OCharnyshevich/mazeworld/pkg/maze"
)

type tile uint8

const (
	tileNone tile = iota
	tileFloor
	tileWall
	tileGlass
	tileChest
	tileTower
	tileSpawn
)

// preview is a top-down Renderer: it keeps the highest interesting thing
// placed in every column.
type preview struct {
	tiles   map[geom.Pos]tile
	zones   map[geom.Pos]maze.Nanont
	flooded map[geom.Pos]bool
	chests  int
}

var _ arena.Renderer = (*preview)(nil)

func newPreview() *preview {
	return &preview{
		tiles:   make(map[geom.Pos]tile),
		zones:   make(map[geom.Pos]maze.Nanont),
		flooded: make(map[geom.Pos]bool),
	}
}

func column(pos world.BlockPos) geom.Pos { return geom.Pos{X: pos.X, Z: pos.Z} }

func (p *preview) raise(pos world.BlockPos, t tile) {
	c := column(pos)
	if t > p.tiles[c] {
		p.tiles[c] = t
	}
}

func (p *preview) PlaceWall(pos world.BlockPos, b arena.Block) {
	if b == arena.BlockGlass {
		p.raise(pos, tileGlass)
		return
	}
	p.raise(pos, tileWall)
}

func (p *preview) PlaceFloor(pos world.BlockPos) { p.raise(pos, tileFloor) }

func (p *preview) PlaceChest(pos world.BlockPos, _ maze.Facing) { p.raise(pos, tileChest) }

func (p *preview) PlaceStructure(_ string, anchor world.BlockPos, rot layout.Rotation, size layout.Dims) error {
	dx, dz := size.X, size.Z
	if rot == layout.Rotate90 || rot == layout.Rotate270 {
		dx, dz = dz, dx
	}
	t := tileTower
	if c, _ := layout.ClassOf(size); c == layout.ClassSpawn {
		t = tileSpawn
	}
	for x := 0; x < dx; x++ {
		for z := 0; z < dz; z++ {
			// Structures replace whatever was in the column.
			p.tiles[geom.Pos{X: anchor.X + x, Z: anchor.Z + z}] = t
		}
	}
	return nil
}

func (p *preview) ClearRegion(a, b world.BlockPos) {
	for x := a.X; x <= b.X; x++ {
		for z := a.Z; z <= b.Z; z++ {
			c := geom.Pos{X: x, Z: z}
			delete(p.tiles, c)
			delete(p.zones, c)
			delete(p.flooded, c)
		}
	}
}

func (p *preview) FloodCell(pos world.BlockPos, _ int) { p.flooded[column(pos)] = true }

func (p *preview) DecorateCell(pos world.BlockPos, zone maze.Nanont) {
	p.zones[column(pos)] = zone
}

func (p *preview) FindChest(world.BlockPos, layout.Dims) (world.BlockPos, bool) {
	return world.BlockPos{}, false
}

func (p *preview) FillChest(world.BlockPos, string, int) error {
	p.chests++
	return nil
}
