// Package registry provides a global registry for game variants.
// Variants register themselves in init() functions, allowing the CLI and the
// SSH server to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tokengrid/internal/core"
)

// Game is the interface the platform drives.
// Games contain pure logic with no Bubble Tea dependency; the platform
// handles input mapping, timing and terminal output.
type Game interface {
	// ID returns a unique identifier (e.g., "tokens").
	// Used for CLI commands and the run log.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description returns a one-line summary for listings.
	Description() string

	// Reset starts a fresh run sized to the given screen.
	Reset(cfg core.RuntimeConfig)

	// Resize adapts the layout to a new screen size without restarting.
	Resize(width, height int)

	// Step applies one input frame. An empty frame is a timer tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// Reporter is implemented by games that can summarize the current run.
// The platform records the summary in the run log when a run ends.
type Reporter interface {
	Stats() core.RunStats
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	g := f()
	infos[id] = GameInfo{ID: id, Title: g.Title(), Description: g.Description()}
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
