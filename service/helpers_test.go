package service

import (
	"sort"

	"github.com/chazu/fathom/analysis"
	"github.com/chazu/fathom/host"
)

// ---------------------------------------------------------------------------
// Shared test fakes
// ---------------------------------------------------------------------------

// fakeHost hands out whatever snapshots the test installed. Set replaces the
// snapshot object, which is how a real host signals a content change.
type fakeHost struct {
	snaps map[string]host.Snapshot
}

func newFakeHost() *fakeHost {
	return &fakeHost{snaps: make(map[string]host.Snapshot)}
}

func (h *fakeHost) set(fileName, text string) host.Snapshot {
	snap := host.NewStringSnapshot(text)
	h.snaps[fileName] = snap
	return snap
}

func (h *fakeHost) remove(fileName string) {
	delete(h.snaps, fileName)
}

func (h *fakeHost) GetScriptSnapshot(fileName string) host.Snapshot {
	snap, ok := h.snaps[fileName]
	if !ok {
		return nil
	}
	return snap
}

// analyzerFakeHost additionally advertises the symbolic analyzer over the
// installed files.
type analyzerFakeHost struct {
	*fakeHost
}

func (h *analyzerFakeHost) AnalyzerModule() analysis.Module {
	return analysis.Symbolic(func() []string {
		names := make([]string, 0, len(h.snaps))
		for name := range h.snaps {
			names = append(names, name)
		}
		sort.Strings(names)
		return names
	})
}

// namedPlugin is the minimal plugin.
type namedPlugin struct {
	name string
}

func (p *namedPlugin) Name() string { return p.name }
