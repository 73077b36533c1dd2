// Package registry provides a global registry for drill factories.
// Drills register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dmerkulov/tui-reflex/internal/trial"
)

// Drill is the interface every training drill must implement.
// Drills contain level definitions with no rendering dependencies
// (especially no Bubble Tea). The platform handles input mapping,
// timers, and rendering.
type Drill interface {
	// ID returns a unique identifier for this drill (e.g., "bounce").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Bounce Recall").
	Title() string

	// Levels returns the per-level trial configurations in play order.
	// Level numbers shown to the player are 1-based indices into this slice.
	Levels() ([]trial.Config, error)
}

// DrillInfo contains metadata about a registered drill.
type DrillInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a drill.
type Factory func() Drill

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a drill factory to the registry.
// Typically called from a drill's init() function.
// Panics if a drill with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: drill %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	d := f()
	titles[id] = d.Title()
}

// List returns information about all registered drills, sorted by ID.
func List() []DrillInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]DrillInfo, 0, len(factories))
	for id := range factories {
		result = append(result, DrillInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new drill by its ID.
// Returns an error if the drill ID is not registered.
func Create(id string) (Drill, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown drill %q", id)
	}

	return f(), nil
}

// Exists checks if a drill with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
