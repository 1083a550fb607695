package core

// DefaultTickRate is used when a RuntimeConfig leaves TickRate unset.
const DefaultTickRate = 30

// RuntimeConfig is what the front end knows when a match starts: the
// terminal size, the tick rate and the seed for fleet placement and AI
// choices.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int   // Ticks per second
	Seed     int64 // Zero lets the CLI pick one from the clock
}

// GameState is the status a game reports to the front end after each step.
type GameState struct {
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
}
