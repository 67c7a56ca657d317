package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tokengrid/internal/core"
	"github.com/vovakirdan/tokengrid/internal/registry"
	"github.com/vovakirdan/tokengrid/internal/storage"
)

// Model is the Bubble Tea model for running a game.
// Every key press or click becomes exactly one Game.Step call, so commands
// are applied in arrival order. Ticks only age timed UI such as the status line.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model
	player    string
	runID     string
	gameState core.GameState
	quitting  bool
	runSaved  bool // Whether the current run has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if logger == nil {
		logger = discardLogger()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:      game,
		store:     store,
		logger:    logger,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      h,
		player:    player,
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.gameHeight())
	m.startRun()
	return m
}

// Init starts the tick loop. The run itself is started by NewModel.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// startRun resets the game for a new run.
func (m *Model) startRun() {
	cfg := m.config
	cfg.ScreenH = m.gameHeight()
	m.game.Reset(cfg)
	m.gameState = m.game.State()
	m.runID = uuid.NewString()
	m.runSaved = false

	if le, ok := m.game.(interface{ LoadError() error }); ok && le.LoadError() != nil {
		m.logger.Warn("config not loaded, using defaults", "game", m.game.ID(), "error", le.LoadError())
	}
	m.logger.Info("run started", "game", m.game.ID(), "run", m.runID, "player", m.player)
}

// gameHeight is the screen height left for the game above the help footer.
func (m Model) gameHeight() int {
	return max(m.config.ScreenH-m.footerHeight(), 0)
}

func (m Model) footerHeight() int {
	if !m.help.ShowAll {
		return 1
	}
	rows := 0
	for _, col := range m.keyMapper.Keys().FullHelp() {
		rows = max(rows, len(col))
	}
	return rows
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if p, ok := m.keyMapper.MapMouse(msg); ok {
			m.step(core.ClickFrame(p.X, p.Y))
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		m.step(core.NewInputFrame())
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeGame()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.recordRun("quit")
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.startRun()
		}
		return m, nil
	}

	m.step(core.ActionFrame(action))
	return m, nil
}

// step runs one game step and records the run once it ends.
func (m *Model) step(in core.InputFrame) {
	result := m.game.Step(in)
	m.gameState = result.State

	if m.gameState.GameOver {
		m.recordRun("goal")
	}
}

// recordRun saves the current run summary once. Runs without any craft are
// not worth a row.
func (m *Model) recordRun(reason string) {
	if m.runSaved {
		return
	}
	rep, ok := m.game.(registry.Reporter)
	if !ok {
		return
	}
	stats := rep.Stats()
	if stats.Crafts == 0 {
		return
	}
	m.runSaved = true

	m.logger.Info("run ended",
		"game", m.game.ID(),
		"run", m.runID,
		"reason", reason,
		"score", stats.Score,
		"best", stats.BestToken,
		"moves", stats.Moves,
	)

	if m.store == nil {
		return
	}
	_, err := m.store.SaveRun(storage.Run{
		ID:          m.runID,
		Variant:     m.game.ID(),
		Player:      m.player,
		Score:       stats.Score,
		BestToken:   stats.BestToken,
		Moves:       stats.Moves,
		Crafts:      stats.Crafts,
		GoalReached: stats.GoalReached,
	})
	if err != nil {
		m.logger.Error("could not save run", "run", m.runID, "error", err)
	}
}

// handleResize processes window resize events without restarting the run.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.resizeGame()
	return m, nil
}

func (m *Model) resizeGame() {
	h := m.gameHeight()
	m.screen.Resize(m.config.ScreenW, h)
	m.game.Resize(m.config.ScreenW, h)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".tokengrid", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Debug("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keyMapper.Keys())))
	return b.String()
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) error {
	model := NewModel(game, store, cfg, player, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks select cells
	)

	_, err := p.Run()
	return err
}
