// Package config handles fathom.toml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/chazu/fathom/service"
)

// File represents a fathom.toml project configuration.
type File struct {
	Project   Project                   `toml:"project" json:"project"`
	Languages map[string]LanguageConfig `toml:"languages" json:"languages"`
	Rules     map[string]RuleConfig     `toml:"rules" json:"rules"`
	Plugins   map[string]PluginConfig   `toml:"plugins" json:"plugins"`

	// Dir is the directory containing the fathom.toml file (set at load time).
	Dir string `toml:"-" json:"-"`
}

// Project contains project metadata.
type Project struct {
	Name    string `toml:"name" json:"name"`
	Version string `toml:"version" json:"version"`
}

// LanguageConfig declares one source language by its file extensions.
type LanguageConfig struct {
	Extensions []string `toml:"extensions" json:"extensions"`
}

// RuleConfig configures a single diagnostic rule.
type RuleConfig struct {
	Severity string         `toml:"severity" json:"severity"`
	Options  map[string]any `toml:"options,omitempty" json:"options,omitempty"`
}

// PluginConfig declares a plugin loaded from a Lua source file.
type PluginConfig struct {
	Path string `toml:"path" json:"path"`
}

// Load parses a fathom.toml file from the given directory and validates the
// rule set.
func Load(dir string) (*File, error) {
	path := filepath.Join(dir, "fathom.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	f.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	for id, rc := range f.Rules {
		if rc.Severity == "" {
			rc.Severity = "warning"
			f.Rules[id] = rc
		}
	}

	if err := validateRules(f.Rules); err != nil {
		return nil, fmt.Errorf("invalid rules in %s: %w", path, err)
	}

	return &f, nil
}

// FindAndLoad walks up from startDir to find a fathom.toml file, then loads
// and returns it. Returns nil if no configuration is found.
func FindAndLoad(startDir string) (*File, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "fathom.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// PluginLoader builds a runtime plugin entry from its configuration. The
// path handed to the loader is already resolved against the config dir.
type PluginLoader func(id, path string) (service.PluginEntry, error)

// ServiceConfig converts the file to a runtime configuration. Collections
// are emitted in sorted-id order so a given file always produces the same
// plugin construction order. A nil loader skips configured plugins.
func (f *File) ServiceConfig(loadPlugin PluginLoader) (service.Config, error) {
	var cfg service.Config

	for _, id := range sortedKeys(f.Languages) {
		lc := f.Languages[id]
		cfg.Languages = append(cfg.Languages, service.LanguageEntry{
			ID:       id,
			Language: &service.Language{Extensions: lc.Extensions},
		})
	}

	for _, id := range sortedKeys(f.Rules) {
		rc := f.Rules[id]
		cfg.Rules = append(cfg.Rules, service.RuleEntry{
			ID:       id,
			Severity: rc.Severity,
			Options:  rc.Options,
		})
	}

	if loadPlugin != nil {
		for _, id := range sortedKeys(f.Plugins) {
			pc := f.Plugins[id]
			path := pc.Path
			if !filepath.IsAbs(path) {
				path = filepath.Join(f.Dir, path)
			}
			entry, err := loadPlugin(id, path)
			if err != nil {
				return service.Config{}, fmt.Errorf("plugin %q: %w", id, err)
			}
			cfg.Plugins = append(cfg.Plugins, entry)
		}
	}

	return cfg, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
