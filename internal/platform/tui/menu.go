package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tokengrid/internal/config"
	"github.com/vovakirdan/tokengrid/internal/core"
	"github.com/vovakirdan/tokengrid/internal/registry"
	"github.com/vovakirdan/tokengrid/internal/storage"
)

// MenuItem represents a selectable variant in the menu.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	Best        int // Best token recorded for the variant, 0 if none
}

// MenuModel is the Bubble Tea model for the setup menu. The first page
// picks a variant, the second a rule preset.
type MenuModel struct {
	items          []MenuItem
	presets        []config.Preset
	cursor         int
	presetCursor   int
	inPresetSelect bool
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	preset         config.Preset
	openScoreboard bool
}

// NewMenuModel creates a new menu model. The store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, preset config.Preset) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))

	for _, g := range games {
		item := MenuItem{
			GameID:      g.ID,
			Title:       g.Title,
			Description: g.Description,
		}
		if store != nil {
			if best, err := store.BestToken(g.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}

	presets := config.Presets()
	presetCursor := 0
	for i, p := range presets {
		if p == preset {
			presetCursor = i
		}
	}

	return MenuModel{
		items:        items,
		presets:      presets,
		presetCursor: presetCursor,
		width:        cfg.ScreenW,
		height:       cfg.ScreenH,
		config:       cfg,
		keyMapper:    NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if action == MenuActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inPresetSelect {
		return m.handlePresetKey(action)
	}

	switch action {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			m.inPresetSelect = true
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

func (m MenuModel) handlePresetKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.presetCursor > 0 {
			m.presetCursor--
		}
	case MenuActionDown:
		if m.presetCursor < len(m.presets)-1 {
			m.presetCursor++
		}
	case MenuActionSelect:
		selected := m.items[m.cursor]
		m.selected = &selected
		m.preset = m.presets[m.presetCursor]
		return m, tea.Quit
	case MenuActionBack:
		m.inPresetSelect = false
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inPresetSelect {
		return m.viewPresetSelect()
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  T O K E N   G R I D  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a variant", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		best := ""
		if item.Best > 0 {
			best = fmt.Sprintf(" (best %d)", item.Best)
		}

		line := fmt.Sprintf("%s%s%s", cursor, item.Title, best)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(m.items[m.cursor].Description, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: Runs  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewPresetSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.items[m.cursor].Title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select rules:", m.width))
	b.WriteString("\n\n")

	for i, p := range m.presets {
		cursor := "  "
		if i == m.presetCursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-10s", cursor, p), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Play  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Preset returns the chosen preset. Only meaningful once Selected is set.
func (m MenuModel) Preset() config.Preset {
	return m.preset
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the run log.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Preset          config.Preset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// menuResult converts a finished menu model into a MenuResult.
func menuResult(m MenuModel) MenuResult {
	result := MenuResult{
		Config: m.Config(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.Selected().GameID
		result.Preset = m.Preset()
	}

	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, preset config.Preset) (MenuResult, error) {
	model := NewMenuModel(store, cfg, preset)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return menuResult(m), nil
}
