package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/OCharnyshevich/mazeworld/internal/match"
	"github.com/OCharnyshevich/mazeworld/pkg/geom"
)

const (
	// A bot falls every killInterval seconds of match time.
	killInterval = 45
	// maxSimSeconds stops a simulation that cannot end.
	maxSimSeconds = 24 * 60 * 60
)

var errSimStuck = errors.New("simulated match did not end")

// chatLog writes chat and teleports to the log.
type chatLog struct {
	log *slog.Logger
}

func (c chatLog) Broadcast(msg string) { c.log.Info("chat", "msg", msg) }
func (c chatLog) Tell(name, msg string) { c.log.Info("chat", "to", name, "msg", msg) }
func (c chatLog) Teleport(name string, to geom.Vec3) {
	c.log.Debug("teleport", "player", name, "x", to.X, "y", to.Y, "z", to.Z)
}

type simResult struct {
	winner     string
	seconds    int
	stormCount int
}

// simulateMatch plays a match between bots without waiting for real time:
// the bots join and ready up, the match starts, and every killInterval
// seconds a random bot is eliminated by another one.
func simulateMatch(ctx context.Context, e *match.Engine, bots int, rng *rand.Rand, log *slog.Logger) (simResult, error) {
	bots = max(bots, 2)
	for i := 1; i <= bots; i++ {
		name := fmt.Sprintf("bot%d", i)
		if err := e.Join(name); err != nil {
			return simResult{}, err
		}
		if _, err := e.SetReady(name, true); err != nil {
			return simResult{}, err
		}
	}

	m, err := e.Start(ctx)
	if err != nil {
		return simResult{}, err
	}
	log.Info("simulating match", "match", m.ID, "bots", bots)

	for e.State() == match.Active {
		if err := ctx.Err(); err != nil {
			return simResult{}, err
		}
		if m.Elapsed >= maxSimSeconds {
			return simResult{}, errSimStuck
		}
		e.Tick(ctx)
		if m.Elapsed%killInterval != 0 {
			continue
		}

		alive := m.Alive()
		victim := alive[rng.Intn(len(alive))]
		killer := alive[rng.Intn(len(alive))]
		if killer == victim {
			killer = ""
		}
		if _, err := e.Eliminate(ctx, victim, killer); err != nil {
			return simResult{}, err
		}
	}

	res := simResult{seconds: m.Elapsed, stormCount: m.StormCount}
	if alive := m.Alive(); len(alive) == 1 {
		res.winner = alive[0]
	}
	return res, nil
}
