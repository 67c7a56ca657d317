package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tokengrid/internal/core"
)

// KeyMap defines the key bindings for a run. It doubles as the help.KeyMap
// rendered in the footer.
type KeyMap struct {
	North       key.Binding
	South       key.Binding
	East        key.Binding
	West        key.Binding
	CursorUp    key.Binding
	CursorDown  key.Binding
	CursorLeft  key.Binding
	CursorRight key.Binding
	Interact    key.Binding
	Pause       key.Binding
	Restart     key.Binding
	Screenshot  key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		North: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "north"),
		),
		South: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "south"),
		),
		East: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "east"),
		),
		West: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "west"),
		),
		CursorUp: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "aim up"),
		),
		CursorDown: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "aim down"),
		),
		CursorLeft: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "aim left"),
		),
		CursorRight: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "aim right"),
		),
		Interact: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/click", "pick up / craft"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	move := key.NewBinding(
		key.WithKeys("up", "down", "left", "right", "w", "a", "s", "d"),
		key.WithHelp("arrows/wasd", "move"),
	)
	aim := key.NewBinding(
		key.WithKeys("h", "j", "k", "l"),
		key.WithHelp("hjkl", "aim"),
	)
	act := key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "act"),
	)
	return []key.Binding{k.Quit, k.Help, move, aim, act, k.Pause}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.North, k.South, k.East, k.West},
		{k.CursorUp, k.CursorDown, k.CursorLeft, k.CursorRight},
		{k.Interact, k.Pause, k.Restart},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// KeyMapper translates Bubble Tea messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings, for help rendering.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.North):
		return core.ActionNorth, false
	case key.Matches(msg, k.South):
		return core.ActionSouth, false
	case key.Matches(msg, k.East):
		return core.ActionEast, false
	case key.Matches(msg, k.West):
		return core.ActionWest, false
	case key.Matches(msg, k.CursorUp):
		return core.ActionCursorUp, false
	case key.Matches(msg, k.CursorDown):
		return core.ActionCursorDown, false
	case key.Matches(msg, k.CursorLeft):
		return core.ActionCursorLeft, false
	case key.Matches(msg, k.CursorRight):
		return core.ActionCursorRight, false
	case key.Matches(msg, k.Interact):
		return core.ActionInteract, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MapMouse translates a mouse message to a click position.
// Only left-button presses count; motion and releases are ignored.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) (core.Point, bool) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return core.Point{}, false
	}
	return core.Point{X: msg.X, Y: msg.Y}, true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
