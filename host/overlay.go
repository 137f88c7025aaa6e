package host

// Overlay layers one host over another. Lookups hit the primary host first
// and fall back to the secondary, which is how an editor's open-buffer
// overlay shadows the on-disk workspace.
type Overlay struct {
	Primary  Host
	Fallback Host
}

// NewOverlay returns a host that consults primary before fallback.
func NewOverlay(primary, fallback Host) *Overlay {
	return &Overlay{Primary: primary, Fallback: fallback}
}

// GetScriptSnapshot implements Host.
func (h *Overlay) GetScriptSnapshot(fileName string) Snapshot {
	if snap := h.Primary.GetScriptSnapshot(fileName); snap != nil {
		return snap
	}
	return h.Fallback.GetScriptSnapshot(fileName)
}
