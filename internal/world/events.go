package world

// Event is an outcome produced by the session for the presentation layer.
type Event interface {
	worldEvent()
}

// CellMaterialized is emitted when a coordinate enters the window.
type CellMaterialized struct {
	Coord Coord
	Value int
}

func (CellMaterialized) worldEvent() {}

// CellEvicted is emitted when a coordinate leaves the window.
type CellEvicted struct {
	Coord Coord
}

func (CellEvicted) worldEvent() {}

// CellValueChanged is emitted after a pickup or craft.
type CellValueChanged struct {
	Coord Coord
	Value int
}

func (CellValueChanged) worldEvent() {}

// PlayerMoved is emitted after every move, once the window is refreshed.
type PlayerMoved struct {
	Position  Coord
	Direction Direction
}

func (PlayerMoved) worldEvent() {}

// HeldTokenChanged is emitted when the held slot changes.
type HeldTokenChanged struct {
	Value int // NoToken when empty
}

func (HeldTokenChanged) worldEvent() {}

// StatusMessage carries the status line for an interaction.
type StatusMessage struct {
	Text        string
	Outcome     Outcome
	GoalReached bool
}

func (StatusMessage) worldEvent() {}
