package tokens

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tokengrid/internal/core"
	"github.com/vovakirdan/tokengrid/internal/registry"
	"github.com/vovakirdan/tokengrid/internal/world"
)

// newTestGame builds a standard-variant game over a fixed layout; every
// coordinate not in layout is empty.
func newTestGame(t *testing.T, layout map[world.Coord]int, mutate func(*world.Config)) *Game {
	t.Helper()
	cfg := world.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	gen := func(c world.Coord) int { return layout[c] }
	g := NewWithConfig(VariantStandard, cfg, world.WithGenerator(gen))
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30})
	return g
}

func step(g *Game, actions ...core.Action) {
	for _, a := range actions {
		g.Step(core.ActionFrame(a))
	}
}

func TestResetMaterializesWindow(t *testing.T) {
	g := newTestGame(t, nil, nil)

	snap := g.Snapshot()
	if snap.Tiles != 289 {
		t.Errorf("Tiles = %d, want 289", snap.Tiles)
	}
	if snap.World.LiveCells != 289 {
		t.Errorf("LiveCells = %d, want 289", snap.World.LiveCells)
	}
	if snap.State != StatePlaying {
		t.Errorf("State = %s, want playing", snap.State)
	}
	if g.Status() == "" {
		t.Error("a fresh run should show a greeting")
	}
}

func TestInvalidConfigFallsBackToDefaults(t *testing.T) {
	g := newTestGame(t, nil, func(c *world.Config) {
		c.WindowRadius = 2
		c.InteractionRadius = 4
	})

	if g.LoadError() == nil {
		t.Fatal("reach beyond the window should be reported")
	}
	if g.cfg != world.DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", g.cfg)
	}
	if len(g.tiles) != 289 {
		t.Errorf("view has %d cells, want 289", len(g.tiles))
	}
	if g.statusColor != core.ColorRed {
		t.Errorf("status color = %v, want red", g.statusColor)
	}
}

func TestViewModelFollowsSession(t *testing.T) {
	layout := map[world.Coord]int{
		world.C(9, 0):  8,
		world.C(-8, 0): 2,
	}
	g := newTestGame(t, layout, nil)

	step(g, core.ActionNorth)

	if got := g.Snapshot().World.Position; got != world.C(1, 0) {
		t.Fatalf("Position = %v, want (1,0)", got)
	}
	if len(g.tiles) != 289 {
		t.Errorf("view has %d cells, want 289", len(g.tiles))
	}
	if _, ok := g.tiles[world.C(-8, 0)]; ok {
		t.Error("southern row should have been evicted from the view")
	}
	if g.tiles[world.C(9, 0)] != 8 {
		t.Errorf("materialized cell (9,0) = %d, want 8", g.tiles[world.C(9, 0)])
	}
	for _, cell := range g.Session().Cells() {
		if g.tiles[cell.Coord] != cell.Value {
			t.Fatalf("view %v = %d, session has %d", cell.Coord, g.tiles[cell.Coord], cell.Value)
		}
	}
}

func TestCursorPickupAndRejectedCraft(t *testing.T) {
	layout := map[world.Coord]int{
		world.C(1, 0): 4,
		world.C(0, 1): 2,
	}
	g := newTestGame(t, layout, nil)

	step(g, core.ActionCursorUp, core.ActionInteract)

	if g.held != 4 {
		t.Fatalf("held = %d, want 4", g.held)
	}
	if g.tiles[world.C(1, 0)] != 0 {
		t.Error("picked-up cell should be empty in the view")
	}
	if !strings.Contains(g.Status(), "Picked up a 4 token") {
		t.Errorf("Status() = %q", g.Status())
	}

	step(g, core.ActionCursorDown, core.ActionCursorRight, core.ActionInteract)

	if g.Cursor() != world.C(0, 1) {
		t.Fatalf("Cursor() = %v, want (0,1)", g.Cursor())
	}
	if g.held != 4 || g.tiles[world.C(0, 1)] != 2 {
		t.Error("mismatched craft must not change state")
	}
	if g.statusColor != core.ColorRed {
		t.Errorf("rejection status color = %v, want red", g.statusColor)
	}
	if !strings.Contains(g.Status(), "you hold 4 but the cell has 2") {
		t.Errorf("Status() = %q", g.Status())
	}
}

func TestCraftToGoalEndsRun(t *testing.T) {
	layout := map[world.Coord]int{
		world.C(0, 1): 2,
		world.C(0, 2): 2,
	}
	g := newTestGame(t, layout, func(c *world.Config) { c.GoalValue = 4 })

	step(g, core.ActionCursorRight, core.ActionInteract, core.ActionCursorRight, core.ActionInteract)

	state := g.State()
	if !state.GameOver {
		t.Fatal("crafting the goal value should end the run")
	}
	if state.Score != 4 {
		t.Errorf("Score = %d, want 4", state.Score)
	}
	if g.Snapshot().State != StateGoalReached {
		t.Errorf("State = %s, want goal_reached", g.Snapshot().State)
	}

	step(g, core.ActionNorth)
	if g.Snapshot().World.Position != world.C(0, 0) {
		t.Error("a finished run should ignore further moves")
	}

	stats := g.Stats()
	want := core.RunStats{Score: 4, BestToken: 4, Moves: 0, Crafts: 1, GoalReached: true}
	if stats != want {
		t.Errorf("Stats() = %+v, want %+v", stats, want)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GOAL REACHED!") {
		t.Error("goal overlay not rendered")
	}
}

func TestCoordAt(t *testing.T) {
	g := newTestGame(t, nil, nil)
	step(g, core.ActionEast) // player at (0,1)

	// 80 wide: board is 70 wide at x=5, cells start at (6,3)
	tests := []struct {
		name string
		p    core.Point
		want world.Coord
		ok   bool
	}{
		{"north-west corner", core.Point{X: 6, Y: 3}, world.C(8, -7), true},
		{"player cell", core.Point{X: 6 + 8*cellWidth, Y: 11}, world.C(0, 1), true},
		{"player cell value column", core.Point{X: 6 + 8*cellWidth + 3, Y: 11}, world.C(0, 1), true},
		{"south-east corner", core.Point{X: 6 + 16*cellWidth + 3, Y: 19}, world.C(-8, 9), true},
		{"board border", core.Point{X: 5, Y: 3}, world.Coord{}, false},
		{"hud", core.Point{X: 10, Y: 0}, world.Coord{}, false},
		{"below board", core.Point{X: 10, Y: 20}, world.Coord{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := g.CoordAt(tc.p)
			if ok != tc.ok || (ok && got != tc.want) {
				t.Errorf("CoordAt(%v) = %v, %v, want %v, %v", tc.p, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestClickInteracts(t *testing.T) {
	layout := map[world.Coord]int{
		world.C(1, 0): 8,
		world.C(5, 0): 2,
	}
	g := newTestGame(t, layout, nil)

	// (1,0) is one row above the player cell
	g.Step(core.ClickFrame(6+8*cellWidth+2, 10))
	if g.held != 8 {
		t.Fatalf("held = %d after click, want 8", g.held)
	}
	if g.Cursor() != world.C(1, 0) {
		t.Errorf("click should move the cursor, got %v", g.Cursor())
	}

	// (5,0) is visible but out of reach
	g.Step(core.ClickFrame(6+8*cellWidth+2, 6))
	if !strings.Contains(g.Status(), "too far") {
		t.Errorf("Status() = %q, want too-far message", g.Status())
	}
	if g.tiles[world.C(5, 0)] != 2 {
		t.Error("out-of-range click must not change the cell")
	}
}

func TestCursorClampedToWindow(t *testing.T) {
	g := newTestGame(t, nil, nil)

	for i := 0; i < 20; i++ {
		step(g, core.ActionCursorUp, core.ActionCursorLeft)
	}
	if got := g.Cursor(); got != world.C(8, -8) {
		t.Errorf("Cursor() = %v, want (8,-8)", got)
	}

	step(g, core.ActionSouth)
	if got := g.Cursor(); got != world.C(7, -8) {
		t.Errorf("cursor should follow the player, got %v", got)
	}
}

func TestStatusExpires(t *testing.T) {
	g := NewWithConfig(VariantStandard, world.DefaultConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 1})

	for i := 0; i < statusSeconds-1; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Status() == "" {
		t.Fatal("status expired early")
	}
	g.Step(core.NewInputFrame())
	if g.Status() != "" {
		t.Errorf("Status() = %q, want expired", g.Status())
	}
}

func TestPauseBlocksCommands(t *testing.T) {
	g := newTestGame(t, nil, nil)

	step(g, core.ActionPause, core.ActionNorth)
	if g.Snapshot().World.Position != world.C(0, 0) {
		t.Error("moves should be ignored while paused")
	}
	if !g.State().Paused {
		t.Error("State().Paused should be set")
	}

	step(g, core.ActionPause, core.ActionNorth)
	if g.Snapshot().World.Position != world.C(1, 0) {
		t.Error("moves should resume after unpausing")
	}
}

func TestTooSmallWindow(t *testing.T) {
	g := NewWithConfig(VariantStandard, world.DefaultConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 30})

	if g.Snapshot().State != StatePausedSmall {
		t.Fatalf("State = %s, want paused_small_window", g.Snapshot().State)
	}

	screen := core.NewScreen(40, 12)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too-small message not rendered")
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("resizing up should resume the game")
	}
	if g.Snapshot().Tiles != 289 {
		t.Error("resize must not restart the run")
	}
}

func TestRenderBoard(t *testing.T) {
	layout := map[world.Coord]int{
		world.C(0, 1): 16, // in reach
		world.C(0, 8): 2,  // out of reach
	}
	g := newTestGame(t, layout, nil)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Token Grid") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(0), "Goal: 32") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}

	playerX, playerY := 6+8*cellWidth, 11
	if screen.Get(playerX, playerY) != '@' {
		t.Errorf("player marker = %q, want '@'", screen.Get(playerX, playerY))
	}

	// 16 is right-aligned in the cell east of the player
	cellX := playerX + cellWidth
	if got := string([]rune{screen.Get(cellX+2, playerY), screen.Get(cellX+3, playerY)}); got != "16" {
		t.Errorf("cell text = %q, want 16", got)
	}
	if screen.GetCell(cellX+3, playerY).Color != core.TokenColor(16) {
		t.Error("in-range token should use its token color")
	}

	farX := playerX + 8*cellWidth
	if screen.GetCell(farX+3, playerY).Color != core.ColorGray {
		t.Error("out-of-range token should be gray")
	}
}

func TestVariantsLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokens.yaml")
	if err := os.WriteFile(path, []byte("craft:\n  goal_value: 64\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	rc := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}

	std := New(VariantStandard)
	std.Reset(rc)
	if std.LoadError() != nil {
		t.Fatalf("LoadError() = %v", std.LoadError())
	}
	if std.cfg.GoalValue != 64 || std.cfg.Reentry != world.ReentryKeep {
		t.Errorf("standard config = %+v", std.cfg)
	}

	classic := New(VariantClassic)
	classic.Reset(rc)
	if classic.cfg.Reentry != world.ReentryRegenerate {
		t.Errorf("classic reentry = %s, want regenerate", classic.cfg.Reentry)
	}

	SetConfigPath(filepath.Join(dir, "missing.yaml"))
	broken := New(VariantStandard)
	broken.Reset(rc)
	if broken.LoadError() == nil {
		t.Error("missing config should be reported")
	}
	if broken.cfg != world.DefaultConfig() {
		t.Errorf("fallback config = %+v, want defaults", broken.cfg)
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"tokens", "tokens_classic"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, want %q", g.ID(), id)
		}
	}
}
