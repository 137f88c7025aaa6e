package service

import (
	"fmt"
)

// Plugin is a named capability object. Capabilities are discovered by type
// assertion against the provider interfaces in capabilities.go; a plugin
// implements whichever subset it supports.
type Plugin interface {
	Name() string
}

// RuntimeHandle is a late-bound accessor to the LanguageService a plugin is
// being installed into. The service does not exist yet while its plugins are
// configured, so factories must hold the handle and resolve it only when an
// operation actually needs to call back into the runtime.
type RuntimeHandle func() *LanguageService

// PluginFactory builds a plugin against the runtime context. A factory error
// is a configuration error: it is reported from every registry access and
// never retried.
type PluginFactory func(ctx *Context, runtime RuntimeHandle) (Plugin, error)

// PluginEntry configures one plugin, either as a factory or as a ready-made
// instance. Instance wins when both are set.
type PluginEntry struct {
	ID       string
	New      PluginFactory
	Instance Plugin
}

type registryState uint8

const (
	registryNotBuilt registryState = iota
	registryBuilding
	registryBuilt
)

// pluginRegistry instantiates configured plugins lazily, each exactly once,
// in configuration order. There is no transition back from built; a fresh
// Context is required to rebuild.
type pluginRegistry struct {
	entries []PluginEntry
	handle  RuntimeHandle

	state registryState
	order []Plugin
	byID  map[string]Plugin
	err   error
}

func newPluginRegistry(entries []PluginEntry) *pluginRegistry {
	return &pluginRegistry{entries: entries}
}

// build populates the registry on first access. The backing storage is
// installed before any factory runs: a factory that reads the registry
// during its own construction sees the partially populated state instead of
// re-entering construction.
func (r *pluginRegistry) build(ctx *Context) {
	if r.state != registryNotBuilt {
		return
	}
	r.state = registryBuilding
	r.byID = make(map[string]Plugin, len(r.entries))

	for _, entry := range r.entries {
		plugin := entry.Instance
		if plugin == nil {
			if entry.New == nil {
				continue
			}
			built, err := entry.New(ctx, r.handle)
			if err != nil {
				r.err = fmt.Errorf("plugin %q: %w", entry.ID, err)
				r.state = registryBuilt
				return
			}
			plugin = built
		}
		r.order = append(r.order, plugin)
		r.byID[entry.ID] = plugin
	}
	r.state = registryBuilt
}

// all returns the built plugins in configuration order. During construction
// it returns the plugins built so far, which is what a re-entrant factory
// observes.
func (r *pluginRegistry) all(ctx *Context) ([]Plugin, error) {
	r.build(ctx)
	return r.order, r.err
}

func (r *pluginRegistry) lookup(ctx *Context, id string) (Plugin, bool) {
	r.build(ctx)
	p, ok := r.byID[id]
	return p, ok
}
