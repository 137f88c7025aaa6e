package service

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/chazu/fathom/analysis"
)

// resolve fetches the document for uri and the plugin set. A missing
// document is the soft-failure case: (nil, nil, nil), and the operation
// reports its zero result. A plugin construction error propagates.
func resolve(ctx *Context, uri string) (*Document, []Plugin, error) {
	doc, ok := ctx.Document(uri)
	if !ok {
		return nil, nil, nil
	}
	plugins, err := ctx.Plugins()
	if err != nil {
		return nil, nil, err
	}
	return doc, plugins, nil
}

// protocolLocations converts analyzer byte-offset locations to protocol
// locations, resolving each target file through the document cache for its
// line table. Locations in files the host no longer serves are dropped.
func protocolLocations(ctx *Context, locs []analysis.Location) []protocol.Location {
	var out []protocol.Location
	for _, loc := range locs {
		doc, ok := ctx.Document(FileNameToUri(loc.FileName))
		if !ok {
			continue
		}
		out = append(out, protocol.Location{
			URI:   protocol.DocumentUri(doc.URI),
			Range: doc.RangeOf(loc.Start, loc.End),
		})
	}
	return out
}
