// Package sim benchmarks the targeting AI by letting it fire at randomly
// generated fleets until every ship is sunk.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-battleship/internal/games/battleship/core"
)

// Options configures a benchmark run.
type Options struct {
	Games int   // Number of boards to clear
	Seed  int64 // Game i uses Seed+i

	Rows              int
	Cols              int
	Fleet             []core.ShipSpec
	PlacementAttempts int
	AI                core.AIConfig

	Logger *log.Logger
}

// DefaultOptions returns a 100-game run on the standard board.
func DefaultOptions() Options {
	opts := core.DefaultOptions()
	return Options{
		Games:             100,
		Seed:              1,
		Rows:              opts.Rows,
		Cols:              opts.Cols,
		Fleet:             opts.Fleet,
		PlacementAttempts: opts.PlacementAttempts,
		AI:                opts.AI,
	}
}

// Report aggregates the shots the AI needed per board.
type Report struct {
	Games     int
	Shots     []int // Shots per game, in game order
	MinShots  int
	MaxShots  int
	AvgShots  float64
	Hits      int // Total hits, equal to Games times the fleet size
	Abandoned int // Games whose board could not be generated
}

// Accuracy returns hits over shots across the run.
func (r Report) Accuracy() float64 {
	total := 0
	for _, s := range r.Shots {
		total += s
	}
	if total == 0 {
		return 0
	}
	return float64(r.Hits) / float64(total)
}

// Run plays opts.Games boards. It stops early when ctx is cancelled and
// returns the partial report along with the context error.
func Run(ctx context.Context, opts Options) (Report, error) {
	if opts.Games <= 0 {
		return Report{}, fmt.Errorf("sim: games must be positive, got %d", opts.Games)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	var rep Report
	for i := range opts.Games {
		if err := ctx.Err(); err != nil {
			return rep.finish(), err
		}

		seed := opts.Seed + int64(i)
		shots, hits, err := playBoard(opts, seed)
		if errors.Is(err, core.ErrPlacementExhausted) {
			opts.Logger.Warn("board generation failed", "game", i, "seed", seed, "err", err)
			rep.Abandoned++
			continue
		}
		if err != nil {
			return rep.finish(), fmt.Errorf("sim: game %d (seed %d): %w", i, seed, err)
		}

		opts.Logger.Debug("board cleared", "game", i, "seed", seed, "shots", shots)
		rep.Shots = append(rep.Shots, shots)
		rep.Hits += hits
	}
	return rep.finish(), nil
}

// finish fills in the aggregates from the per-game shots.
func (r Report) finish() Report {
	r.Games = len(r.Shots)
	if r.Games == 0 {
		return r
	}
	r.MinShots, r.MaxShots = r.Shots[0], r.Shots[0]
	total := 0
	for _, s := range r.Shots {
		r.MinShots = min(r.MinShots, s)
		r.MaxShots = max(r.MaxShots, s)
		total += s
	}
	r.AvgShots = float64(total) / float64(r.Games)
	return r
}

// playBoard lets a fresh AI clear one board and returns its shot and hit
// counts.
func playBoard(opts Options, seed int64) (shots, hits int, err error) {
	rng := rand.New(rand.NewSource(seed))
	board, err := core.GenerateBoard(opts.Rows, opts.Cols, opts.Fleet, rng, opts.PlacementAttempts)
	if err != nil {
		return 0, 0, err
	}
	ai := core.NewTargetingAI(opts.Fleet, rng, opts.AI, opts.Logger)

	limit := opts.Rows * opts.Cols
	for !board.AllShipsSunk() {
		if shots >= limit {
			return shots, hits, fmt.Errorf("fleet still afloat after %d shots", shots)
		}
		target, err := ai.ChooseTarget(board)
		if err != nil {
			return shots, hits, err
		}
		res, err := board.ReceiveShot(target)
		if err != nil {
			return shots, hits, err
		}
		ai.RecordResult(res)
		shots++
		if res.Hit() {
			hits++
		}
	}
	return shots, hits, nil
}
