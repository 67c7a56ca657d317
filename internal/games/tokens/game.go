// Package tokens implements the token grid game on top of world.Session.
// The player walks an unbounded grid, picks up tokens from nearby cells and
// crafts equal tokens into one of double value until the goal is reached.
package tokens

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tokengrid/internal/config"
	"github.com/vovakirdan/tokengrid/internal/core"
	"github.com/vovakirdan/tokengrid/internal/registry"
	"github.com/vovakirdan/tokengrid/internal/world"
)

// Variant identifies a registered rule variant.
type Variant string

const (
	// VariantStandard remembers crafted and emptied cells after they scroll away.
	VariantStandard Variant = "tokens"
	// VariantClassic regenerates every cell from the oracle on re-entry.
	VariantClassic Variant = "tokens_classic"
)

// statusSeconds is how long a status message stays on screen.
const statusSeconds = 4

// Settings are the process-wide knobs set by the CLI before a run starts.
type Settings struct {
	ConfigPath string
	Preset     config.Preset
	Start      world.Coord
}

// Package-level settings, shared by every game instance (local or SSH).
var (
	settingsMu sync.RWMutex
	settings   = Settings{Preset: config.PresetStandard}
)

// SetConfigPath sets the YAML config file path. Empty uses the search path.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings.ConfigPath = path
}

// SetPreset sets the rule preset applied over the loaded config.
func SetPreset(p config.Preset) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings.Preset = p
}

// SetStart sets the player's starting coordinate for new runs.
func SetStart(c world.Coord) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings.Start = c
}

// CurrentSettings returns a copy of the package-level settings.
func CurrentSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// Game adapts a world.Session to the platform's Game interface.
// It keeps its own view of the grid, built only from session events.
type Game struct {
	variant Variant
	fixed   *fixedConfig // set by NewWithConfig; nil means load per Reset

	session     *world.Session
	cfg         world.Config
	tileDegrees float64
	loadErr     error

	// View model, fed by world events
	tiles    map[world.Coord]int
	position world.Coord
	held     int

	// Selection cursor, as an offset from the player
	cursorI int
	cursorJ int

	// Status line
	status      string
	statusColor core.Color
	statusTicks int

	tick     uint64
	tickRate int
	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

type fixedConfig struct {
	cfg         world.Config
	tileDegrees float64
	opts        []world.Option
}

// New creates a game for the given variant. Config is loaded on Reset.
func New(v Variant) *Game {
	return &Game{variant: v}
}

// NewWithConfig creates a game with fixed session constants, bypassing
// the config search path. Options are passed through to every session.
func NewWithConfig(v Variant, cfg world.Config, opts ...world.Option) *Game {
	return &Game{
		variant: v,
		fixed: &fixedConfig{
			cfg:         cfg,
			tileDegrees: config.DefaultTokensConfig().Grid.TileDegrees,
			opts:        opts,
		},
	}
}

func init() {
	registry.Register(string(VariantStandard), func() registry.Game {
		return New(VariantStandard)
	})
	registry.Register(string(VariantClassic), func() registry.Game {
		return New(VariantClassic)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantClassic {
		return "Token Grid (Classic)"
	}
	return "Token Grid"
}

// Description returns a one-line summary.
func (g *Game) Description() string {
	if g.variant == VariantClassic {
		return "Collect and craft tokens; cells forget your changes once out of sight"
	}
	return "Collect and craft tokens on an endless grid"
}

// LoadError returns the config error from the last Reset, if any.
// The game falls back to built-in defaults when loading fails.
func (g *Game) LoadError() error {
	return g.loadErr
}

// Reset starts a fresh run with a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.tickRate = max(cfg.TickRate, 1)
	g.paused = false
	g.cursorI, g.cursorJ = 0, 0
	g.held = world.NoToken
	g.tiles = make(map[world.Coord]int)
	g.status = ""
	g.statusTicks = 0

	var opts []world.Option
	if g.fixed != nil {
		g.cfg = g.fixed.cfg
		g.tileDegrees = g.fixed.tileDegrees
		g.loadErr = g.cfg.Validate()
		if g.loadErr != nil {
			g.cfg = world.DefaultConfig()
		}
		opts = g.fixed.opts
	} else {
		s := CurrentSettings()
		g.cfg, g.tileDegrees, g.loadErr = g.loadConfig(s)
		opts = []world.Option{world.WithStart(s.Start)}
	}

	g.session = world.NewSession(g.cfg, opts...)
	g.position = g.session.Position()
	g.apply(g.session.Start())

	if g.loadErr != nil {
		g.setStatus("Config error, using defaults: "+g.loadErr.Error(), core.ColorRed)
	} else {
		g.setStatus(fmt.Sprintf("Craft a %d token. Arrows move, hjkl aim, enter to interact.", g.cfg.GoalValue), core.ColorWhite)
	}

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// loadConfig resolves the session constants for this variant.
func (g *Game) loadConfig(s Settings) (world.Config, float64, error) {
	tc, err := config.LoadTokens(s.ConfigPath)
	if err != nil {
		tc = config.DefaultTokensConfig()
	}
	config.ApplyPreset(&tc, s.Preset)
	if g.variant == VariantClassic {
		tc.World.Reentry = string(world.ReentryRegenerate)
	}

	wc, serr := tc.Session()
	if serr != nil {
		// Built-in defaults always validate
		tc = config.DefaultTokensConfig()
		wc, _ = tc.Session()
		if err == nil {
			err = serr
		}
	}
	return wc, tc.Grid.TileDegrees, err
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	l := g.layout()
	g.tooSmall = width < l.minW || height < l.minH
}

// Step applies one input frame. Empty frames are timer ticks.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Empty() {
		g.tick++
		if g.statusTicks > 0 {
			g.statusTicks--
		}
		return core.StepResult{State: g.State()}
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Restart is handled by the platform; a finished run takes no more commands
	if g.session.GoalReached() {
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionNorth):
		g.apply(g.session.Move(world.North))
	case in.Has(core.ActionSouth):
		g.apply(g.session.Move(world.South))
	case in.Has(core.ActionEast):
		g.apply(g.session.Move(world.East))
	case in.Has(core.ActionWest):
		g.apply(g.session.Move(world.West))
	case in.Has(core.ActionCursorUp):
		g.moveCursor(1, 0)
	case in.Has(core.ActionCursorDown):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionCursorRight):
		g.moveCursor(0, 1)
	case in.Has(core.ActionCursorLeft):
		g.moveCursor(0, -1)
	case in.Has(core.ActionInteract):
		g.apply(g.session.Interact(g.Cursor()))
	}

	for _, p := range in.Clicks {
		c, ok := g.CoordAt(p)
		if !ok {
			continue
		}
		g.cursorI = c.I - g.position.I
		g.cursorJ = c.J - g.position.J
		g.apply(g.session.Interact(c))
	}

	return core.StepResult{State: g.State()}
}

// apply folds session events into the view model.
func (g *Game) apply(events []world.Event) {
	for _, ev := range events {
		switch e := ev.(type) {
		case world.CellMaterialized:
			g.tiles[e.Coord] = e.Value
		case world.CellEvicted:
			delete(g.tiles, e.Coord)
		case world.CellValueChanged:
			g.tiles[e.Coord] = e.Value
		case world.PlayerMoved:
			g.position = e.Position
		case world.HeldTokenChanged:
			g.held = e.Value
		case world.StatusMessage:
			g.setStatus(e.Text, statusColor(e))
		}
	}
}

func statusColor(m world.StatusMessage) core.Color {
	switch {
	case m.GoalReached:
		return core.ColorBrightGreen
	case m.Outcome.Rejected():
		return core.ColorRed
	case m.Outcome == world.OutcomeCraft:
		return core.ColorMagenta
	default:
		return core.ColorYellow
	}
}

func (g *Game) setStatus(text string, c core.Color) {
	g.status = text
	g.statusColor = c
	g.statusTicks = statusSeconds * max(g.tickRate, 1)
}

// moveCursor shifts the cursor, keeping it inside the window.
func (g *Game) moveCursor(di, dj int) {
	r := g.cfg.WindowRadius
	g.cursorI = core.Clamp(g.cursorI+di, -r, r)
	g.cursorJ = core.Clamp(g.cursorJ+dj, -r, r)
}

// Cursor returns the coordinate under the selection cursor.
func (g *Game) Cursor() world.Coord {
	return g.position.Add(g.cursorI, g.cursorJ)
}

// Status returns the current status line, or "" once it has expired.
func (g *Game) Status() string {
	if g.statusTicks == 0 {
		return ""
	}
	return g.status
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.GoalReached(),
		Paused:   g.paused || g.tooSmall,
	}
}

// Stats summarizes the run for the run log.
func (g *Game) Stats() core.RunStats {
	snap := g.session.Snapshot()
	return core.RunStats{
		Score:       snap.Score,
		BestToken:   snap.BestCrafted,
		Moves:       snap.Moves,
		Crafts:      snap.Crafts,
		GoalReached: snap.GoalReached,
	}
}

// Session exposes the underlying session.
func (g *Game) Session() *world.Session {
	return g.session
}
