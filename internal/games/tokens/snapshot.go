package tokens

import "github.com/vovakirdan/tokengrid/internal/world"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGoalReached GameStateType = "goal_reached"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and run summaries.
type Snapshot struct {
	Tick    uint64
	Variant string
	Cursor  world.Coord
	Tiles   int // Cells in the view model
	Status  string
	State   GameStateType
	World   world.Snapshot
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.session.GoalReached():
		state = StateGoalReached
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:    g.tick,
		Variant: string(g.variant),
		Cursor:  g.Cursor(),
		Tiles:   len(g.tiles),
		Status:  g.Status(),
		State:   state,
		World:   g.session.Snapshot(),
	}
}
