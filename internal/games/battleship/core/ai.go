package core

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
)

// Mode is the AI search phase.
type Mode int

const (
	// ModeHunt searches for a ship with no known location.
	ModeHunt Mode = iota
	// ModeTarget pursues a ship after a confirmed hit.
	ModeTarget
)

func (m Mode) String() string {
	if m == ModeTarget {
		return "target"
	}
	return "hunt"
}

// DefaultAbandonProbability is the chance a miss ends a multi-hit streak.
const DefaultAbandonProbability = 0.3

// AIConfig tunes the targeting heuristics.
type AIConfig struct {
	// AbandonProbability is the chance that a miss during a streak of two or
	// more hits drops back to hunting.
	AbandonProbability float64

	// ParityHunt restricts hunting to cells with (row+col) even while any
	// remain.
	ParityHunt bool

	// ResetOnSink returns to hunting as soon as a ship is confirmed sunk.
	// When false the streak and direction survive the sinking, so the AI
	// keeps probing the same line.
	ResetOnSink bool
}

// DefaultAIConfig returns the standard heuristic settings.
func DefaultAIConfig() AIConfig {
	return AIConfig{
		AbandonProbability: DefaultAbandonProbability,
		ParityHunt:         true,
		ResetOnSink:        false,
	}
}

// BoardView is the read-only board access the AI needs to choose targets.
type BoardView interface {
	Rows() int
	Cols() int
	Unknown(c Coord) bool
}

// AIState is a snapshot of the AI's beliefs.
type AIState struct {
	Mode         Mode
	LastHit      Coord
	HasLastHit   bool
	Streak       []Coord
	Direction    Delta
	HasDirection bool
	HitCount     map[ShipKind]int
	Sunk         []ShipKind // in the order they were sunk
	Remaining    []ShipSpec
}

// TargetingAI decides where the computer fires next.
type TargetingAI struct {
	cfg    AIConfig
	rng    Rand
	logger *log.Logger

	lengths map[ShipKind]int

	mode         Mode
	lastHit      Coord
	hasLastHit   bool
	streak       []Coord
	direction    Delta
	hasDirection bool
	hitCount     map[ShipKind]int
	sunk         []ShipKind
	remaining    []ShipSpec
}

// NewTargetingAI creates an AI that hunts the given fleet.
// A nil logger discards output.
func NewTargetingAI(fleet []ShipSpec, rng Rand, cfg AIConfig, logger *log.Logger) *TargetingAI {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ai := &TargetingAI{
		cfg:       cfg,
		rng:       rng,
		logger:    logger,
		lengths:   make(map[ShipKind]int, len(fleet)),
		mode:      ModeHunt,
		hitCount:  make(map[ShipKind]int, len(fleet)),
		remaining: slices.Clone(fleet),
	}
	for _, s := range fleet {
		ai.lengths[s.Kind] = s.Length
		ai.hitCount[s.Kind] = 0
	}
	return ai
}

// Mode returns the current search phase.
func (ai *TargetingAI) Mode() Mode {
	return ai.mode
}

// Sunk reports whether the AI has confirmed the given ship as sunk.
func (ai *TargetingAI) Sunk(kind ShipKind) bool {
	return slices.Contains(ai.sunk, kind)
}

// State returns a copy of the AI's beliefs.
func (ai *TargetingAI) State() AIState {
	hits := make(map[ShipKind]int, len(ai.hitCount))
	for k, v := range ai.hitCount {
		hits[k] = v
	}
	return AIState{
		Mode:         ai.mode,
		LastHit:      ai.lastHit,
		HasLastHit:   ai.hasLastHit,
		Streak:       slices.Clone(ai.streak),
		Direction:    ai.direction,
		HasDirection: ai.hasDirection,
		HitCount:     hits,
		Sunk:         slices.Clone(ai.sunk),
		Remaining:    slices.Clone(ai.remaining),
	}
}

// ChooseTarget returns the next cell to fire at. It only ever returns
// in-bounds cells the view reports as unknown, or ErrNoTargets.
func (ai *TargetingAI) ChooseTarget(view BoardView) (Coord, error) {
	if ai.mode == ModeTarget && ai.hasLastHit {
		if c, ok := ai.pursue(view); ok {
			return c, nil
		}
	}
	return ai.hunt(view)
}

// pursue extends the inferred direction from the last hit, or else picks a
// random untried neighbour of it.
func (ai *TargetingAI) pursue(view BoardView) (Coord, bool) {
	if ai.hasDirection {
		next := ai.lastHit.Add(ai.direction)
		if view.Unknown(next) {
			return next, true
		}
	}

	candidates := make([]Coord, 0, 4)
	for _, n := range ai.lastHit.Neighbors() {
		if view.Unknown(n) {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return Coord{}, false
	}
	return pick(ai.rng, candidates), true
}

// hunt picks a random parity cell, falling back to any unknown cell once the
// checkerboard is exhausted.
func (ai *TargetingAI) hunt(view BoardView) (Coord, error) {
	var parity, all []Coord
	for r := range view.Rows() {
		for c := range view.Cols() {
			cell := C(r, c)
			if !view.Unknown(cell) {
				continue
			}
			all = append(all, cell)
			if ai.cfg.ParityHunt && cell.Parity() {
				parity = append(parity, cell)
			}
		}
	}

	if len(parity) > 0 {
		return pick(ai.rng, parity), nil
	}
	if len(all) == 0 {
		return Coord{}, ErrNoTargets
	}
	return pick(ai.rng, all), nil
}

// RecordResult updates the AI's beliefs with the outcome of its own shot.
func (ai *TargetingAI) RecordResult(res ShotResult) {
	switch res.Outcome {
	case OutcomeHit:
		ai.recordHit(res)
	case OutcomeMiss:
		if ai.mode == ModeTarget && len(ai.streak) > 1 {
			if ai.rng.Float64() < ai.cfg.AbandonProbability {
				ai.logger.Debug("AI abandoned streak", "streak", len(ai.streak), "at", res.Coord)
				ai.resetToHunt()
			}
		}
	}
}

func (ai *TargetingAI) recordHit(res ShotResult) {
	ai.mode = ModeTarget
	ai.lastHit = res.Coord
	ai.hasLastHit = true
	ai.streak = append(ai.streak, res.Coord)
	if len(ai.streak) >= 2 {
		ai.direction = ai.streak[1].Sub(ai.streak[0])
		ai.hasDirection = true
	}

	length, known := ai.lengths[res.Ship]
	if !known || ai.Sunk(res.Ship) {
		return
	}
	ai.hitCount[res.Ship]++
	if ai.hitCount[res.Ship] != length {
		return
	}

	ai.sunk = append(ai.sunk, res.Ship)
	ai.remaining = slices.DeleteFunc(ai.remaining, func(s ShipSpec) bool {
		return s.Kind == res.Ship
	})
	ai.logger.Info("AI sank ship", "ship", res.Ship, "at", res.Coord.Label(), "remaining", len(ai.remaining))

	if ai.cfg.ResetOnSink {
		ai.resetToHunt()
	}
}

func (ai *TargetingAI) resetToHunt() {
	ai.mode = ModeHunt
	ai.hasLastHit = false
	ai.lastHit = Coord{}
	ai.streak = nil
	ai.hasDirection = false
	ai.direction = Delta{}
}
