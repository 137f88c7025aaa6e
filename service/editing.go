package service

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func registerFormat(ctx *Context) func(string, protocol.FormattingOptions) ([]protocol.TextEdit, error) {
	return func(uri string, options protocol.FormattingOptions) ([]protocol.TextEdit, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		var out []protocol.TextEdit
		for _, p := range plugins {
			if prov, ok := p.(FormattingProvider); ok {
				edits, err := prov.Format(doc, options)
				if err != nil {
					return nil, err
				}
				out = append(out, edits...)
			}
		}
		return out, nil
	}
}

func registerPrepareRename(ctx *Context) func(string, protocol.Position) (*protocol.Range, error) {
	return func(uri string, pos protocol.Position) (*protocol.Range, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		for _, p := range plugins {
			if prov, ok := p.(RenameProvider); ok {
				rng, err := prov.PrepareRename(doc, pos)
				if err != nil {
					return nil, err
				}
				if rng != nil {
					return rng, nil
				}
			}
		}
		return nil, nil
	}
}

// registerRename builds a workspace edit from the analyzer's rename
// locations and merges in edits contributed by rename-capable plugins.
func registerRename(ctx *Context) func(string, protocol.Position, string) (*protocol.WorkspaceEdit, error) {
	return func(uri string, pos protocol.Position, newName string) (*protocol.WorkspaceEdit, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		var merged *protocol.WorkspaceEdit
		if ctx.analyzer != nil {
			locs, err := ctx.analyzer.RenameLocations(UriToFileName(uri), doc.OffsetAt(pos))
			if err != nil {
				return nil, err
			}
			for _, loc := range protocolLocations(ctx, locs) {
				if merged == nil {
					merged = &protocol.WorkspaceEdit{Changes: map[protocol.DocumentUri][]protocol.TextEdit{}}
				}
				merged.Changes[loc.URI] = append(merged.Changes[loc.URI], protocol.TextEdit{
					Range:   loc.Range,
					NewText: newName,
				})
			}
		}
		for _, p := range plugins {
			if prov, ok := p.(RenameProvider); ok {
				edit, err := prov.Rename(doc, pos, newName)
				if err != nil {
					return nil, err
				}
				merged = mergeWorkspaceEdits(merged, edit)
			}
		}
		return merged, nil
	}
}

func registerEditsForFileRename(ctx *Context) func(string, string) (*protocol.WorkspaceEdit, error) {
	return func(oldURI, newURI string) (*protocol.WorkspaceEdit, error) {
		plugins, err := ctx.Plugins()
		if err != nil {
			return nil, err
		}
		var merged *protocol.WorkspaceEdit
		for _, p := range plugins {
			if prov, ok := p.(FileRenameProvider); ok {
				edit, err := prov.EditsForFileRename(oldURI, newURI)
				if err != nil {
					return nil, err
				}
				merged = mergeWorkspaceEdits(merged, edit)
			}
		}
		return merged, nil
	}
}

func mergeWorkspaceEdits(into, from *protocol.WorkspaceEdit) *protocol.WorkspaceEdit {
	if from == nil {
		return into
	}
	if into == nil {
		into = &protocol.WorkspaceEdit{Changes: map[protocol.DocumentUri][]protocol.TextEdit{}}
	}
	if into.Changes == nil {
		into.Changes = map[protocol.DocumentUri][]protocol.TextEdit{}
	}
	for uri, edits := range from.Changes {
		into.Changes[uri] = append(into.Changes[uri], edits...)
	}
	return into
}
