package plugins

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Plugin runs once at startup, before the server accepts requests.
type Plugin func(ctx context.Context, app App) error

// Registry manages the startup plugins that configuration may refer to by name
type Registry interface {
	// Register adds a new named plugin
	Register(name string, plugin Plugin) error
	// Run executes the named plugins in the given order, stopping at the first failure
	Run(ctx context.Context, app App, names []string) error
	// ListPlugins returns the registered plugin names, sorted
	ListPlugins() []string
}

type registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewRegistry creates a registry seeded with the given plugins
func NewRegistry(plugins map[string]Plugin) Registry {
	r := &registry{
		plugins: make(map[string]Plugin, len(plugins)),
	}
	for name, p := range plugins {
		r.plugins[name] = p
	}
	return r
}

func (r *registry) Register(name string, plugin Plugin) error {
	if name == "" {
		return fmt.Errorf("plugin name cannot be empty")
	}
	if plugin == nil {
		return fmt.Errorf("plugin cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("plugin %q is already registered", name)
	}

	r.plugins[name] = plugin
	return nil
}

func (r *registry) Run(ctx context.Context, app App, names []string) error {
	logger := zerolog.Ctx(ctx)

	// Resolve everything up front so a typo fails before any plugin has run.
	resolved := make([]Plugin, 0, len(names))
	r.mu.RLock()
	for _, name := range names {
		p, exists := r.plugins[name]
		if !exists {
			r.mu.RUnlock()
			return fmt.Errorf("plugin %q is not registered", name)
		}
		resolved = append(resolved, p)
	}
	r.mu.RUnlock()

	for i, p := range resolved {
		if err := p(ctx, app); err != nil {
			return fmt.Errorf("plugin %q failed: %w", names[i], err)
		}
		logger.Debug().Str("plugin", names[i]).Msg("plugin executed")
	}
	return nil
}

func (r *registry) ListPlugins() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
