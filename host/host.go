// Package host defines the adapter contract between a language-service
// runtime and whatever supplies it with file content.
//
// A host hands out content snapshots. A Snapshot is an immutable view of one
// file at one point in time; the runtime keys its document cache on snapshot
// identity, so a host must return the *same* Snapshot value for as long as
// the file is unchanged and a *new* one as soon as it changes.
package host

// Snapshot is an immutable view of a file's content.
type Snapshot interface {
	// GetText returns the text in the half-open range [start, end).
	GetText(start, end int) string
	// GetLength returns the total length of the content in bytes.
	GetLength() int
}

// Host supplies file content snapshots by file name.
type Host interface {
	// GetScriptSnapshot returns the current snapshot for fileName, or nil
	// if the file does not exist or is out of scope for this host.
	GetScriptSnapshot(fileName string) Snapshot
}

// StringSnapshot is the trivial Snapshot over an in-memory string.
type StringSnapshot struct {
	text string
}

// NewStringSnapshot wraps text in a fresh Snapshot. Every call produces a
// distinct identity even for equal text.
func NewStringSnapshot(text string) *StringSnapshot {
	return &StringSnapshot{text: text}
}

func (s *StringSnapshot) GetText(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s.text) {
		end = len(s.text)
	}
	if start >= end {
		return ""
	}
	return s.text[start:end]
}

func (s *StringSnapshot) GetLength() int {
	return len(s.text)
}
