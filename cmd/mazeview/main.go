// Command mazeview previews generated arenas in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/OCharnyshevich/mazeworld/internal/arena"
	"github.com/OCharnyshevich/mazeworld/internal/catalog"
	"github.com/OCharnyshevich/mazeworld/internal/world"
	"github.com/OCharnyshevich/mazeworld/pkg/geom"
	"github.com/OCharnyshevich/mazeworld/pkg/layout"
	"github.com/OCharnyshevich/mazeworld/pkg/maze"
)

const panStep = 4

// zoneColors mirrors the stained clay colours of the nine zones.
var zoneColors = [3][3]tcell.Color{
	{tcell.ColorRed, tcell.ColorOrange, tcell.ColorYellow},
	{tcell.ColorPurple, tcell.ColorWhite, tcell.ColorLime},
	{tcell.ColorBlue, tcell.ColorAqua, tcell.ColorGreen},
}

type view struct {
	opts arena.Options
	cat  *catalog.Catalog
	rng  *rand.Rand
	log  *slog.Logger
	bell *chime

	prev   *preview
	layout *arena.Layout
	ring   int
	closed bool
	panX   int
	panZ   int
	status string
}

func main() {
	var (
		size    = flag.Int("size", 61, "maze size")
		players = flag.Int("players", 4, "number of spawns")
		towers  = flag.String("towers", "easy", "tower difficulty: easy, hard or both")
		glass   = flag.Bool("glass", true, "glass band in the walls")
		seed    = flag.Int64("seed", 0, "random seed, 0 = time based")
		pack    = flag.String("pack", "pack", "structure pack directory")
		sound   = flag.Bool("sound", true, "chime when a ring floods")
		logPath = flag.String("log", "", "write logs to this file")
	)
	flag.Parse()

	log := slog.New(slog.DiscardHandler)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	cat, err := catalog.Load(*pack)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load catalog: %v\n", err)
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	v := &view{
		opts: arena.Options{
			MazeSize:    *size,
			PlayerCount: *players,
			Difficulty:  layout.ParseDifficulty(*towers),
			Glass:       *glass,
			LootQuality: catalog.LootStrong,
		},
		cat:  cat,
		rng:  rand.New(rand.NewSource(*seed)),
		log:  log,
		bell: &chime{},
	}
	if *sound {
		if v.bell, err = newChime(); err != nil {
			log.Warn("audio disabled", "error", err)
		}
	}

	if err := run(v); err != nil {
		fmt.Fprintf(os.Stderr, "mazeview: %v\n", err)
		os.Exit(1)
	}
}

func run(v *view) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	if err := v.generate(); err != nil {
		return err
	}

	for {
		v.draw(screen)
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return nil
			case tcell.KeyLeft:
				v.pan(-panStep, 0)
			case tcell.KeyRight:
				v.pan(panStep, 0)
			case tcell.KeyUp:
				v.pan(0, -panStep)
			case tcell.KeyDown:
				v.pan(0, panStep)
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'q':
					return nil
				case 'n':
					if err := v.generate(); err != nil {
						v.status = err.Error()
					}
				case 'f':
					v.flood()
				}
			}
		}
	}
}

// generate builds a fresh arena into a new preview.
func (v *view) generate() error {
	v.prev = newPreview()
	b := arena.NewBuilder(v.prev, v.cat, v.rng, world.BlockPos{}, v.log)
	l, err := b.Build(context.Background(), v.opts)
	if err != nil {
		return fmt.Errorf("build arena: %w", err)
	}
	v.layout = l
	v.ring = 0
	v.closed = false
	v.status = fmt.Sprintf("%d towers, %d spawns, %d chests", len(l.Plan.Towers), len(l.Plan.Spawns), v.prev.chests)
	return nil
}

// flood applies the next storm ring.
func (v *view) flood() {
	if v.closed {
		return
	}
	v.ring++
	rg := arena.Flood(v.prev, v.layout, v.ring)
	if !rg.DidFlood {
		v.closed = true
		v.status = fmt.Sprintf("water zone closed after %d rings", v.ring-1)
		return
	}
	v.status = fmt.Sprintf("ring %d flooded %d cells", v.ring, len(rg.Flood))
	v.bell.flood()
}

func (v *view) pan(dx, dz int) {
	size := v.layout.MazeSize()
	v.panX = geom.Clamp(v.panX+dx, 0, size)
	v.panZ = geom.Clamp(v.panZ+dz, 0, size)
}

func (v *view) draw(s tcell.Screen) {
	s.Clear()
	w, h := s.Size()
	size := v.layout.MazeSize()
	half := size / 2

	for z := -half; z <= half; z++ {
		sy := z + half - v.panZ
		if sy < 0 || sy >= h-1 {
			continue
		}
		for x := -half; x <= half; x++ {
			sx := (x + half - v.panX) * 2
			if sx < 0 || sx+1 >= w {
				continue
			}
			r, style := v.cell(geom.Pos{X: x, Z: z})
			s.SetContent(sx, sy, r, nil, style)
			s.SetContent(sx+1, sy, r, nil, style)
		}
	}

	line := fmt.Sprintf(" size %d  %s | n new  f flood  arrows pan  q quit", size, v.status)
	for i, r := range line {
		if i >= w {
			break
		}
		s.SetContent(i, h-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	s.Show()
}

func (v *view) cell(c geom.Pos) (rune, tcell.Style) {
	t := v.prev.tiles[c]
	if v.prev.flooded[c] && (t == tileFloor || t == tileChest) {
		return '~', tcell.StyleDefault.Foreground(tcell.ColorBlue)
	}
	switch t {
	case tileWall, tileGlass:
		z := v.prev.zones[c]
		if z.Col < 0 || z.Col > 2 || z.Row < 0 || z.Row > 2 {
			z = maze.Nanont{Col: 1, Row: 1}
		}
		r := '█'
		if t == tileGlass {
			r = '▓'
		}
		return r, tcell.StyleDefault.Foreground(zoneColors[z.Col][z.Row])
	case tileChest:
		return 'C', tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	case tileTower:
		return '#', tcell.StyleDefault.Foreground(tcell.ColorGray)
	case tileSpawn:
		return 'S', tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	}
	return ' ', tcell.StyleDefault
}
