package world

import "fmt"

// Config holds the session constants. They are fixed for the life of a session.
type Config struct {
	WindowRadius      int
	InteractionRadius int
	GoalValue         int
	Spawn             SpawnRules
	Reentry           ReentryPolicy
}

// DefaultConfig returns the stock game constants.
func DefaultConfig() Config {
	return Config{
		WindowRadius:      8,
		InteractionRadius: 3,
		GoalValue:         32,
		Spawn:             DefaultSpawnRules(),
		Reentry:           ReentryKeep,
	}
}

// Validate checks the constants for consistency.
func (c Config) Validate() error {
	switch {
	case c.WindowRadius < 1:
		return fmt.Errorf("world: window radius must be positive, got %d", c.WindowRadius)
	case c.InteractionRadius < 0:
		return fmt.Errorf("world: interaction radius must not be negative, got %d", c.InteractionRadius)
	case c.InteractionRadius > c.WindowRadius:
		return fmt.Errorf("world: interaction radius %d exceeds window radius %d", c.InteractionRadius, c.WindowRadius)
	case c.Spawn.Probability < 0 || c.Spawn.Probability > 1:
		return fmt.Errorf("world: spawn probability %g outside [0,1]", c.Spawn.Probability)
	case c.Spawn.MaxExponent < 1 || c.Spawn.MaxExponent > 30:
		return fmt.Errorf("world: max exponent %d outside [1,30]", c.Spawn.MaxExponent)
	case !IsToken(c.GoalValue) || c.GoalValue < 4:
		return fmt.Errorf("world: goal value %d must be a power of two >= 4", c.GoalValue)
	}
	if _, err := ParseReentryPolicy(string(c.Reentry)); err != nil {
		return err
	}
	return nil
}

// Option customizes a Session.
type Option func(*Session)

// WithGenerator replaces the spawn oracle, mainly for test fixtures.
func WithGenerator(gen Generator) Option {
	return func(s *Session) {
		s.gen = gen
	}
}

// WithStart places the player somewhere other than the origin.
func WithStart(c Coord) Option {
	return func(s *Session) {
		s.pos = c
	}
}

// Session owns the player position, the held-token slot and the cells
// around the player. It is not safe for concurrent use; commands are meant
// to be applied one at a time in arrival order.
type Session struct {
	rules Rules
	gen   Generator
	cells *CellRegistry
	view  *Viewport

	pos     Coord
	held    int
	started bool

	// Run statistics
	moves       int
	pickups     int
	crafts      int
	score       int
	bestCrafted int
	goalReached bool
}

// NewSession creates a session. The window is materialized by Start, or
// implicitly by the first command.
func NewSession(cfg Config, opts ...Option) *Session {
	s := &Session{
		rules: Rules{
			InteractionRadius: cfg.InteractionRadius,
			GoalValue:         cfg.GoalValue,
		},
		gen: cfg.Spawn.Generator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cells = NewCellRegistry(s.gen, cfg.Reentry)
	s.view = NewViewport(s.cells, cfg.WindowRadius)
	return s
}

// Start materializes the initial window. Only the first call emits events.
func (s *Session) Start() []Event {
	if s.started {
		return nil
	}
	s.started = true
	return s.recenter(nil)
}

// Move shifts the player one cell. It cannot fail: the grid is unbounded.
func (s *Session) Move(dir Direction) []Event {
	events := s.Start()

	s.pos = s.pos.Step(dir)
	s.moves++
	events = s.recenter(events)

	return append(events, PlayerMoved{Position: s.pos, Direction: dir})
}

// recenter refreshes the window around the player and appends the
// resulting cell events.
func (s *Session) recenter(events []Event) []Event {
	evicted, materialized := s.view.Recenter(s.pos)
	for _, c := range evicted {
		events = append(events, CellEvicted{Coord: c})
	}
	for _, cell := range materialized {
		events = append(events, CellMaterialized{Coord: cell.Coord, Value: cell.Value})
	}
	return events
}

// Interact applies the token rules to the cell at c. Rejections only
// produce a status message.
func (s *Session) Interact(c Coord) []Event {
	events := s.Start()

	distance := s.pos.Chebyshev(c)
	if !s.view.Contains(c) {
		// Only cells inside the window can be reached.
		distance = max(distance, s.rules.InteractionRadius+1)
	}
	if distance > s.rules.InteractionRadius {
		d := s.rules.Resolve(s.held, 0, distance)
		return append(events, status(d))
	}

	cell, _ := s.cells.Get(c)
	d := s.rules.Resolve(s.held, cell.Value, distance)
	if d.Outcome.Rejected() {
		return append(events, status(d))
	}

	s.cells.SetValue(c, d.Cell)
	s.held = d.Held
	events = append(events,
		CellValueChanged{Coord: c, Value: d.Cell},
		HeldTokenChanged{Value: d.Held},
	)

	switch d.Outcome {
	case OutcomePickup:
		s.pickups++
	case OutcomeCraft:
		s.crafts++
		s.score += d.Cell
		if d.Cell > s.bestCrafted {
			s.bestCrafted = d.Cell
		}
		if d.GoalReached {
			s.goalReached = true
		}
	}

	return append(events, status(d))
}

func status(d Decision) StatusMessage {
	return StatusMessage{
		Text:        d.Message(),
		Outcome:     d.Outcome,
		GoalReached: d.GoalReached,
	}
}

// Position returns the player's coordinate.
func (s *Session) Position() Coord {
	return s.pos
}

// Held returns the held token value, or NoToken.
func (s *Session) Held() int {
	return s.held
}

// InRange reports whether c is within interaction range of the player.
func (s *Session) InRange(c Coord) bool {
	return s.pos.Chebyshev(c) <= s.rules.InteractionRadius
}

// Cell returns the live cell at c, if it is inside the window.
func (s *Session) Cell(c Coord) (Cell, bool) {
	return s.cells.Get(c)
}

// Cells returns every live cell in layout order.
func (s *Session) Cells() []Cell {
	return s.cells.All()
}

// GoalReached reports whether any craft has reached the goal value.
func (s *Session) GoalReached() bool {
	return s.goalReached
}

// Score returns the sum of all crafted token values.
func (s *Session) Score() int {
	return s.score
}
