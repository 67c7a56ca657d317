package world

// Snapshot captures the session state for tests and run summaries.
type Snapshot struct {
	Position    Coord
	Held        int
	Moves       int
	Pickups     int
	Crafts      int
	Score       int
	BestCrafted int
	GoalReached bool
	LiveCells   int
	Remembered  int // Mutated cells kept across evictions
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Position:    s.pos,
		Held:        s.held,
		Moves:       s.moves,
		Pickups:     s.pickups,
		Crafts:      s.crafts,
		Score:       s.score,
		BestCrafted: s.bestCrafted,
		GoalReached: s.goalReached,
		LiveCells:   s.cells.Len(),
		Remembered:  s.cells.Mutated(),
	}
}
