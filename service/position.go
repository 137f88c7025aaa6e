package service

import (
	"sort"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// lineOffsets returns the byte offset of each line start, built lazily and
// cached for the lifetime of the Document (its text never changes).
func (d *Document) lineOffsets() []int {
	if d.lines == nil {
		offsets := []int{0}
		for i := 0; i < len(d.Text); i++ {
			if d.Text[i] == '\n' {
				offsets = append(offsets, i+1)
			}
		}
		d.lines = offsets
	}
	return d.lines
}

// OffsetAt converts a protocol position to a byte offset, clamped to the
// position's line.
func (d *Document) OffsetAt(pos protocol.Position) int {
	lines := d.lineOffsets()
	if int(pos.Line) >= len(lines) {
		return len(d.Text)
	}
	start := lines[pos.Line]
	end := len(d.Text)
	if int(pos.Line)+1 < len(lines) {
		// Stay on the queried line: overshoot clamps to just before the
		// terminating newline, not onto the next line's first byte.
		end = lines[pos.Line+1] - 1
	}
	off := start + int(pos.Character)
	if off > end {
		off = end
	}
	return off
}

// PositionAt converts a byte offset to a protocol position.
func (d *Document) PositionAt(offset int) protocol.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.Text) {
		offset = len(d.Text)
	}
	lines := d.lineOffsets()
	line := sort.Search(len(lines), func(i int) bool { return lines[i] > offset }) - 1
	return protocol.Position{
		Line:      uint32(line),
		Character: uint32(offset - lines[line]),
	}
}

// RangeOf converts a byte-offset span to a protocol range.
func (d *Document) RangeOf(start, end int) protocol.Range {
	return protocol.Range{
		Start: d.PositionAt(start),
		End:   d.PositionAt(end),
	}
}
