package service

import (
	"github.com/chazu/fathom/analysis"
	"github.com/chazu/fathom/host"
)

// RuleEntry is one configured rule. The runtime carries rules opaquely;
// diagnostics plugins interpret them.
type RuleEntry struct {
	ID       string
	Severity string
	Options  map[string]any
}

// Config assembles a runtime. All collections are ordered slices: iteration
// order throughout the runtime equals configuration order.
type Config struct {
	Languages []LanguageEntry
	Plugins   []PluginEntry
	Rules     []RuleEntry
}

// AnalyzerProvider is implemented by hosts that can supply an analyzer
// module. Absence of the interface, or a nil module, is non-fatal: the
// runtime simply runs without an analyzer.
type AnalyzerProvider interface {
	AnalyzerModule() analysis.Module
}

// Context is the aggregate passed by reference to every operation handler
// and plugin. It owns the document cache and the plugin registry; both live
// exactly as long as the Context.
type Context struct {
	host      host.Host
	languages *LanguageSet
	docs      *documentCache
	registry  *pluginRegistry
	analyzer  analysis.Service
	rules     []RuleEntry
}

func newContext(h host.Host, cfg Config) *Context {
	languages := newLanguageSet(cfg.Languages)
	return &Context{
		host:      h,
		languages: languages,
		docs:      newDocumentCache(h, languages),
		registry:  newPluginRegistry(cfg.Plugins),
		rules:     cfg.Rules,
	}
}

// Host returns the host adapter the context was built against.
func (c *Context) Host() host.Host {
	return c.host
}

// Languages returns the configured language set.
func (c *Context) Languages() *LanguageSet {
	return c.languages
}

// Rules returns the configured rule set in configuration order. The slice
// is shared; callers must not mutate it.
func (c *Context) Rules() []RuleEntry {
	return c.rules
}

// Analyzer returns the analyzer service, or nil if the host supplied none.
func (c *Context) Analyzer() analysis.Service {
	return c.analyzer
}

// Document resolves uri through the document identity cache. The second
// result is false when the host has no snapshot for the uri; callers must
// not assume a document exists.
func (c *Context) Document(uri string) (*Document, bool) {
	return c.docs.get(uri)
}

// DocumentVersion reports the last version issued for uri, 0 if the uri has
// never resolved to a document.
func (c *Context) DocumentVersion(uri string) int32 {
	return c.docs.version(uri)
}

// Plugins returns all plugin instances in configuration order, building the
// registry on first access. A plugin factory error is returned from this
// and every later call; construction is never retried.
func (c *Context) Plugins() ([]Plugin, error) {
	return c.registry.all(c)
}

// Plugin looks up a plugin instance by its configured id.
func (c *Context) Plugin(id string) (Plugin, bool) {
	return c.registry.lookup(c, id)
}
