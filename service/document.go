package service

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/chazu/fathom/host"
)

// Document is a stable, versioned view of one file, derived from a host
// snapshot. For a given Context there is exactly one Document per distinct
// snapshot identity.
type Document struct {
	URI        string
	LanguageID string
	Version    int32
	Text       string

	lines []int
}

// Language describes one configured source language.
type Language struct {
	// Extensions lists file extensions (including the dot) that map to
	// this language.
	Extensions []string
}

// LanguageEntry pairs a language id with its definition. Entries with a nil
// definition are ignored.
type LanguageEntry struct {
	ID       string
	Language *Language
}

// LanguageSet resolves file names to language ids.
type LanguageSet struct {
	order []string
	byExt map[string]string
}

// Extensions the set falls back to when no configured language matches.
var defaultLanguageIDs = map[string]string{
	".go":   "go",
	".js":   "javascript",
	".json": "json",
	".lua":  "lua",
	".md":   "markdown",
	".py":   "python",
	".toml": "toml",
	".ts":   "typescript",
}

func newLanguageSet(entries []LanguageEntry) *LanguageSet {
	s := &LanguageSet{byExt: make(map[string]string)}
	for _, e := range entries {
		if e.Language == nil {
			continue
		}
		s.order = append(s.order, e.ID)
		for _, ext := range e.Language.Extensions {
			ext = strings.ToLower(ext)
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			if _, taken := s.byExt[ext]; !taken {
				s.byExt[ext] = e.ID
			}
		}
	}
	return s
}

// IDs returns the configured language ids in configuration order.
func (s *LanguageSet) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// IDForFileName derives a language id from the file's extension, falling
// back to a small built-in table and finally to "plaintext".
func (s *LanguageSet) IDForFileName(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if id, ok := s.byExt[ext]; ok {
		return id
	}
	if id, ok := defaultLanguageIDs[ext]; ok {
		return id
	}
	return "plaintext"
}

// documentCache memoizes Documents by snapshot identity. A file's superseded
// snapshot is released as soon as a new identity is observed for it, so the
// cache holds at most one Document per live file. The per-uri version counter
// is keyed separately by the lower-cased uri; note the asymmetry: snapshot
// lookup ignores uri casing entirely, while two uris differing only in case
// share one version sequence (an accommodation for case-insensitive
// filesystems).
type documentCache struct {
	host       host.Host
	languages  *LanguageSet
	bySnapshot map[host.Snapshot]*Document
	current    map[string]host.Snapshot
	versions   map[string]int32
}

func newDocumentCache(h host.Host, languages *LanguageSet) *documentCache {
	return &documentCache{
		host:       h,
		languages:  languages,
		bySnapshot: make(map[host.Snapshot]*Document),
		current:    make(map[string]host.Snapshot),
		versions:   make(map[string]int32),
	}
}

// get resolves uri to a Document. A uri the host has no snapshot for yields
// (nil, false) without consuming a version. An unchanged snapshot yields the
// identical Document; a new snapshot identity strictly increments the uri's
// version counter before the new Document is built.
func (c *documentCache) get(uri string) (*Document, bool) {
	fileName := UriToFileName(uri)
	snap := c.host.GetScriptSnapshot(fileName)
	if snap == nil {
		return nil, false
	}
	if doc, ok := c.bySnapshot[snap]; ok {
		return doc, true
	}

	// The file has a new snapshot identity; drop the Document built for the
	// superseded one. Callers holding the old *Document keep it alive, the
	// cache does not.
	if prev, ok := c.current[fileName]; ok {
		delete(c.bySnapshot, prev)
	}
	c.current[fileName] = snap

	key := strings.ToLower(uri)
	c.versions[key]++
	doc := &Document{
		URI:        uri,
		LanguageID: c.languages.IDForFileName(fileName),
		Version:    c.versions[key],
		Text:       snap.GetText(0, snap.GetLength()),
	}
	c.bySnapshot[snap] = doc
	return doc, true
}

// version reports the last issued version for uri, 0 if none.
func (c *documentCache) version(uri string) int32 {
	return c.versions[strings.ToLower(uri)]
}

// UriToFileName converts a file:// uri to a filesystem path. Non-file uris
// pass through unchanged.
func UriToFileName(uri string) string {
	rest, ok := strings.CutPrefix(uri, "file://")
	if !ok {
		return uri
	}
	if unescaped, err := url.PathUnescape(rest); err == nil {
		return unescaped
	}
	return rest
}

// FileNameToUri converts a filesystem path to a file:// uri. Paths already
// in uri form pass through unchanged.
func FileNameToUri(fileName string) string {
	if strings.HasPrefix(fileName, "file://") {
		return fileName
	}
	path := filepath.ToSlash(fileName)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "file://" + path
}
