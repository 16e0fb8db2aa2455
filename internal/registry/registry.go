// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/input"
	"github.com/vovakirdan/retro-arcade/internal/particles"
)

// Game is the core interface that all arcade games must implement.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The engine loop handles timing, phase control, particles and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "snake", "tetris").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Space Invaders").
	Title() string

	// Bind attaches the session's particle engine. Called before Reset.
	Bind(fx *particles.Engine)

	// Reset initializes or resets the game state to the Ready phase.
	// Called once at start and again when restarting after game over.
	Reset(cfg core.RuntimeConfig)

	// Tick advances the simulation by dt seconds. Only called while the
	// phase is Running.
	Tick(dt float64, in *input.Manager)

	// Render draws the current game state. The surface is pre-cleared.
	Render(dst core.Surface)

	// State returns score, lives, level and phase.
	State() core.GameState

	// Phase exposes the round's state machine to the loop.
	Phase() *core.Machine

	// Effects exposes the round's timed effects so the loop can clear them.
	Effects() *core.Effects

	// DrainCues returns sound cues emitted since the last call.
	DrainCues() []core.Cue
}

// Transitioner is implemented by games that use the Transitioning phase.
// FinishTransition is called once when the countdown ends.
type Transitioner interface {
	FinishTransition()
}

// ConfigReporter is implemented by games that load a config file on Reset.
// A non-nil error means the game fell back to defaults.
type ConfigReporter interface {
	ConfigError() error
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
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
