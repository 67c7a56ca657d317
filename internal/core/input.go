package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionNorth              // Up arrow, W - move the player north
	ActionSouth              // Down arrow, S - move the player south
	ActionEast               // Right arrow, D - move the player east
	ActionWest               // Left arrow, A - move the player west
	ActionCursorUp           // K - move the selection cursor
	ActionCursorDown         // J
	ActionCursorLeft         // H
	ActionCursorRight        // L
	ActionInteract           // Enter, Space - pick up or craft at the cursor
	ActionRestart            // R - start a new run after the goal
	ActionPause              // P - pause/unpause
	ActionQuit               // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionNorth:
		return "North"
	case ActionSouth:
		return "South"
	case ActionEast:
		return "East"
	case ActionWest:
		return "West"
	case ActionCursorUp:
		return "CursorUp"
	case ActionCursorDown:
		return "CursorDown"
	case ActionCursorLeft:
		return "CursorLeft"
	case ActionCursorRight:
		return "CursorRight"
	case ActionInteract:
		return "Interact"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is one batch of input delivered to Game.Step.
// The platform sends one frame per key press or click so commands are
// applied strictly in arrival order.
type InputFrame struct {
	Actions map[Action]bool

	// Clicks holds left-button presses in screen coordinates.
	Clicks []Point
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// ActionFrame creates a frame holding a single action.
func ActionFrame(a Action) InputFrame {
	f := NewInputFrame()
	f.Set(a)
	return f
}

// ClickFrame creates a frame holding a single click.
func ClickFrame(x, y int) InputFrame {
	f := NewInputFrame()
	f.Clicks = append(f.Clicks, Point{X: x, Y: y})
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether the frame carries no input.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.Clicks) == 0
}
