package world

import (
	"errors"
	"testing"
)

func newFixtureSession(layout map[Coord]int, opts ...Option) *Session {
	opts = append([]Option{WithGenerator(fixture(layout))}, opts...)
	s := NewSession(DefaultConfig(), opts...)
	s.Start()
	return s
}

// lastStatus returns the trailing status message of an event batch.
func lastStatus(t *testing.T, events []Event) StatusMessage {
	t.Helper()
	if len(events) == 0 {
		t.Fatal("no events emitted")
	}
	msg, ok := events[len(events)-1].(StatusMessage)
	if !ok {
		t.Fatalf("last event is %T, want StatusMessage", events[len(events)-1])
	}
	return msg
}

func TestStartMaterializesWindowOnce(t *testing.T) {
	s := NewSession(DefaultConfig())

	events := s.Start()
	if len(events) != 289 {
		t.Fatalf("Start() emitted %d events, want 289", len(events))
	}
	for _, ev := range events {
		if _, ok := ev.(CellMaterialized); !ok {
			t.Fatalf("Start() emitted %T, want only CellMaterialized", ev)
		}
	}

	if again := s.Start(); again != nil {
		t.Errorf("second Start() emitted %d events, want none", len(again))
	}
}

func TestPickupScenario(t *testing.T) {
	s := newFixtureSession(map[Coord]int{C(2, 0): 4})

	events := s.Interact(C(2, 0))
	msg := lastStatus(t, events)
	if msg.Outcome != OutcomePickup {
		t.Fatalf("outcome = %v, want pickup", msg.Outcome)
	}
	if s.Held() != 4 {
		t.Errorf("Held() = %d, want 4", s.Held())
	}
	if cell, _ := s.Cell(C(2, 0)); cell.Value != 0 {
		t.Errorf("cell value = %d, want 0", cell.Value)
	}

	wantChanged := CellValueChanged{Coord: C(2, 0), Value: 0}
	if events[0] != Event(wantChanged) {
		t.Errorf("first event = %#v, want %#v", events[0], wantChanged)
	}
	if events[1] != Event(HeldTokenChanged{Value: 4}) {
		t.Errorf("second event = %#v, want HeldTokenChanged{4}", events[1])
	}

	// Crafting onto the now empty cell is rejected and changes nothing.
	events = s.Interact(C(2, 0))
	msg = lastStatus(t, events)
	if len(events) != 1 {
		t.Errorf("rejected craft emitted %d events, want only the status", len(events))
	}
	if !errors.Is(msg.Outcome.Err(), ErrInvalidCraft) {
		t.Errorf("outcome = %v, want InvalidCraft", msg.Outcome)
	}
	if s.Held() != 4 {
		t.Errorf("Held() = %d after rejected craft, want 4", s.Held())
	}
}

func TestEmptyPickupLeavesStateUnchanged(t *testing.T) {
	s := newFixtureSession(nil)

	msg := lastStatus(t, s.Interact(C(1, 1)))
	if !errors.Is(msg.Outcome.Err(), ErrInvalidPickup) {
		t.Errorf("outcome = %v, want InvalidPickup", msg.Outcome)
	}
	if s.Held() != NoToken {
		t.Errorf("Held() = %d, want none", s.Held())
	}
}

func TestCraftScenario(t *testing.T) {
	s := newFixtureSession(map[Coord]int{C(1, 0): 16, C(0, 1): 16, C(-1, -1): 2})

	s.Interact(C(1, 0))
	events := s.Interact(C(0, 1))
	msg := lastStatus(t, events)

	if msg.Outcome != OutcomeCraft || !msg.GoalReached {
		t.Fatalf("status = %+v, want craft with goal reached", msg)
	}
	if cell, _ := s.Cell(C(0, 1)); cell.Value != 32 {
		t.Errorf("crafted cell = %d, want 32", cell.Value)
	}
	if s.Held() != NoToken {
		t.Errorf("Held() = %d, want none", s.Held())
	}

	snap := s.Snapshot()
	if snap.Crafts != 1 || snap.Pickups != 1 || snap.Score != 32 || snap.BestCrafted != 32 || !snap.GoalReached {
		t.Errorf("snapshot = %+v", snap)
	}

	// Mismatch: hold 2, target 32.
	s.Interact(C(-1, -1))
	msg = lastStatus(t, s.Interact(C(0, 1)))
	if msg.Outcome != OutcomeMismatch {
		t.Errorf("outcome = %v, want mismatch", msg.Outcome)
	}
}

func TestInteractionRangeGating(t *testing.T) {
	s := newFixtureSession(map[Coord]int{C(3, 3): 2, C(4, 0): 2})

	if msg := lastStatus(t, s.Interact(C(3, 3))); msg.Outcome != OutcomePickup {
		t.Errorf("(3,3) outcome = %v, want pickup (in range)", msg.Outcome)
	}

	s = newFixtureSession(map[Coord]int{C(4, 0): 2})
	events := s.Interact(C(4, 0))
	if len(events) != 1 || lastStatus(t, events).Outcome != OutcomeTooFar {
		t.Errorf("(4,0) events = %#v, want a single too-far status", events)
	}
	if cell, _ := s.Cell(C(4, 0)); cell.Value != 2 {
		t.Errorf("out-of-range cell changed to %d", cell.Value)
	}
}

func TestInteractOutsideWindowDoesNotMaterialize(t *testing.T) {
	s := newFixtureSession(nil)
	before := s.Snapshot().LiveCells

	s.Interact(C(50, 50))
	if _, ok := s.Cell(C(50, 50)); ok {
		t.Error("far cell should not be materialized")
	}
	if after := s.Snapshot().LiveCells; after != before {
		t.Errorf("live cells %d -> %d", before, after)
	}
}

func TestReachBeyondWindowDoesNotLeakCells(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindowRadius = 2
	cfg.InteractionRadius = 4
	s := NewSession(cfg, WithGenerator(fixture(map[Coord]int{C(4, 4): 8})))
	s.Start()
	before := s.Snapshot().LiveCells

	events := s.Interact(C(4, 4))
	if len(events) != 1 || lastStatus(t, events).Outcome != OutcomeTooFar {
		t.Errorf("events = %#v, want a single too-far status", events)
	}
	if s.Held() != NoToken {
		t.Errorf("Held() = %d, cells outside the window must not be picked up", s.Held())
	}

	for i := 0; i < 20; i++ {
		s.Move(South)
	}
	if _, ok := s.Cell(C(4, 4)); ok {
		t.Error("(4,4) is still live after the window moved away")
	}
	if after := s.Snapshot().LiveCells; after != before {
		t.Errorf("LiveCells = %d, want %d", after, before)
	}
}

func TestMoveEmitsWindowDiffThenMoved(t *testing.T) {
	s := NewSession(DefaultConfig())
	s.Start()

	events := s.Move(North)
	if len(events) != 17+17+1 {
		t.Fatalf("Move emitted %d events, want 35", len(events))
	}
	for i := 0; i < 17; i++ {
		if _, ok := events[i].(CellEvicted); !ok {
			t.Fatalf("event %d is %T, want CellEvicted", i, events[i])
		}
	}
	for i := 17; i < 34; i++ {
		if _, ok := events[i].(CellMaterialized); !ok {
			t.Fatalf("event %d is %T, want CellMaterialized", i, events[i])
		}
	}
	moved, ok := events[34].(PlayerMoved)
	if !ok || moved.Position != C(1, 0) || moved.Direction != North {
		t.Errorf("last event = %#v, want PlayerMoved to (1,0)", events[34])
	}
}

func TestMoveStartsImplicitly(t *testing.T) {
	s := NewSession(DefaultConfig())

	events := s.Move(East)
	if s.Snapshot().LiveCells != 289 {
		t.Errorf("live cells = %d, want 289", s.Snapshot().LiveCells)
	}
	if _, ok := events[len(events)-1].(PlayerMoved); !ok {
		t.Errorf("last event is %T, want PlayerMoved", events[len(events)-1])
	}
}

func TestNorthSouthReproducesBoundaryCells(t *testing.T) {
	s := NewSession(DefaultConfig())
	s.Start()

	original := make(map[Coord]int)
	for _, cell := range s.Cells() {
		original[cell.Coord] = cell.Value
	}

	s.Move(North)
	events := s.Move(South)
	if s.Position() != C(0, 0) {
		t.Fatalf("Position() = %v, want origin", s.Position())
	}

	rematerialized := 0
	for _, ev := range events {
		m, ok := ev.(CellMaterialized)
		if !ok {
			continue
		}
		rematerialized++
		if m.Value != original[m.Coord] {
			t.Errorf("cell %v came back as %d, originally %d", m.Coord, m.Value, original[m.Coord])
		}
	}
	if rematerialized != 17 {
		t.Errorf("re-materialized %d cells, want 17", rematerialized)
	}
}

func TestMutationSurvivesReentry(t *testing.T) {
	tests := []struct {
		policy ReentryPolicy
		want   int
	}{
		{ReentryKeep, 0},
		{ReentryRegenerate, 8},
	}

	for _, tc := range tests {
		t.Run(string(tc.policy), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Reentry = tc.policy
			s := NewSession(cfg, WithGenerator(fixture(map[Coord]int{C(-3, 0): 8})))

			s.Interact(C(-3, 0))
			if s.Held() != 8 {
				t.Fatalf("Held() = %d, want 8", s.Held())
			}

			// Walk far enough north that (-3,0) leaves the window, then return.
			for i := 0; i < 6; i++ {
				s.Move(North)
			}
			if _, ok := s.Cell(C(-3, 0)); ok {
				t.Fatal("cell should have been evicted")
			}
			for i := 0; i < 6; i++ {
				s.Move(South)
			}

			cell, ok := s.Cell(C(-3, 0))
			if !ok || cell.Value != tc.want {
				t.Errorf("cell after re-entry = %+v (live=%v), want value %d", cell, ok, tc.want)
			}
		})
	}
}

func TestWithStart(t *testing.T) {
	s := NewSession(DefaultConfig(), WithStart(C(10, -10)))
	s.Start()

	if s.Position() != C(10, -10) {
		t.Errorf("Position() = %v, want (10,-10)", s.Position())
	}
	if _, ok := s.Cell(C(18, -2)); !ok {
		t.Error("window should be centered on the start position")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero window", func(c *Config) { c.WindowRadius = 0 }, true},
		{"reach beyond window", func(c *Config) { c.InteractionRadius = 9 }, true},
		{"probability above one", func(c *Config) { c.Spawn.Probability = 1.5 }, true},
		{"zero exponent", func(c *Config) { c.Spawn.MaxExponent = 0 }, true},
		{"goal not power of two", func(c *Config) { c.GoalValue = 24 }, true},
		{"goal too small", func(c *Config) { c.GoalValue = 2 }, true},
		{"unknown reentry", func(c *Config) { c.Reentry = "sometimes" }, true},
		{"goal sixteen", func(c *Config) { c.GoalValue = 16 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
