package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Platform ticks per second (default 30)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each input frame.
type StepResult struct {
	State GameState
}

// RunStats summarizes a run for the run log.
type RunStats struct {
	Score       int
	BestToken   int
	Moves       int
	Crafts      int
	GoalReached bool
}
