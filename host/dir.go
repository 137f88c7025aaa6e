package host

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// DirHost serves files from a directory tree on disk. Snapshot identity is
// tied to (mtime, size): as long as a file is unchanged on disk the same
// snapshot is returned, and a modified file yields a fresh one.
type DirHost struct {
	root string

	mu    sync.Mutex
	cache map[string]dirEntry
}

type dirEntry struct {
	snap  *StringSnapshot
	mtime int64
	size  int64
}

// NewDirHost returns a host rooted at dir. File names outside the root are
// out of scope and resolve to no snapshot.
func NewDirHost(dir string) *DirHost {
	return &DirHost{
		root:  filepath.Clean(dir),
		cache: make(map[string]dirEntry),
	}
}

// Root returns the directory this host serves from.
func (h *DirHost) Root() string {
	return h.root
}

// GetScriptSnapshot implements Host.
func (h *DirHost) GetScriptSnapshot(fileName string) Snapshot {
	path := filepath.Clean(fileName)
	if !h.inRoot(path) {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.cache[path]; ok && e.mtime == info.ModTime().UnixNano() && e.size == info.Size() {
		return e.snap
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	e := dirEntry{
		snap:  NewStringSnapshot(string(data)),
		mtime: info.ModTime().UnixNano(),
		size:  info.Size(),
	}
	h.cache[path] = e
	return e.snap
}

// FileNames walks the root and returns every regular file whose extension is
// in exts (or all files when exts is empty), sorted.
func (h *DirHost) FileNames(exts ...string) ([]string, error) {
	want := make(map[string]bool, len(exts))
	for _, ext := range exts {
		want[ext] = true
	}

	var names []string
	err := filepath.WalkDir(h.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != h.root {
				return filepath.SkipDir
			}
			return nil
		}
		if len(want) > 0 && !want[filepath.Ext(path)] {
			return nil
		}
		names = append(names, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (h *DirHost) inRoot(path string) bool {
	rel, err := filepath.Rel(h.root, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}
