package host

import (
	"sort"
	"sync"
)

// MemoryHost keeps file contents in memory. It is the natural host for an
// editor overlay: Set installs a brand-new snapshot for the file, so the
// runtime's document cache sees every update as a content change.
type MemoryHost struct {
	mu    sync.Mutex
	files map[string]*StringSnapshot
}

// NewMemoryHost returns an empty MemoryHost.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		files: make(map[string]*StringSnapshot),
	}
}

// Set installs text as the current content of fileName. The previous
// snapshot, if any, is abandoned; callers holding it keep a consistent view
// of the old content.
func (h *MemoryHost) Set(fileName, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.files[fileName] = NewStringSnapshot(text)
}

// Delete removes fileName from the host.
func (h *MemoryHost) Delete(fileName string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.files, fileName)
}

// GetScriptSnapshot implements Host.
func (h *MemoryHost) GetScriptSnapshot(fileName string) Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	snap, ok := h.files[fileName]
	if !ok {
		return nil
	}
	return snap
}

// FileNames returns the names of all files currently held, sorted.
func (h *MemoryHost) FileNames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, 0, len(h.files))
	for name := range h.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
