package service

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Navigation operations. For definition-like queries the first non-empty
// answer wins, with plugins consulted in configuration order ahead of the
// analyzer. Reference-like queries concatenate every contribution.

func registerDefinition(ctx *Context) func(string, protocol.Position) ([]protocol.Location, error) {
	return func(uri string, pos protocol.Position) ([]protocol.Location, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		for _, p := range plugins {
			if prov, ok := p.(DefinitionProvider); ok {
				locs, err := prov.Definition(doc, pos)
				if err != nil {
					return nil, err
				}
				if len(locs) > 0 {
					return locs, nil
				}
			}
		}
		if ctx.analyzer != nil {
			locs, err := ctx.analyzer.DefinitionAt(UriToFileName(uri), doc.OffsetAt(pos))
			if err != nil {
				return nil, err
			}
			return protocolLocations(ctx, locs), nil
		}
		return nil, nil
	}
}

func registerTypeDefinition(ctx *Context) func(string, protocol.Position) ([]protocol.Location, error) {
	return func(uri string, pos protocol.Position) ([]protocol.Location, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		for _, p := range plugins {
			if prov, ok := p.(TypeDefinitionProvider); ok {
				locs, err := prov.TypeDefinition(doc, pos)
				if err != nil {
					return nil, err
				}
				if len(locs) > 0 {
					return locs, nil
				}
			}
		}
		if ctx.analyzer != nil {
			locs, err := ctx.analyzer.TypeDefinitionAt(UriToFileName(uri), doc.OffsetAt(pos))
			if err != nil {
				return nil, err
			}
			return protocolLocations(ctx, locs), nil
		}
		return nil, nil
	}
}

func registerImplementations(ctx *Context) func(string, protocol.Position) ([]protocol.Location, error) {
	return func(uri string, pos protocol.Position) ([]protocol.Location, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		var out []protocol.Location
		for _, p := range plugins {
			if prov, ok := p.(ImplementationProvider); ok {
				locs, err := prov.Implementations(doc, pos)
				if err != nil {
					return nil, err
				}
				out = append(out, locs...)
			}
		}
		if ctx.analyzer != nil {
			locs, err := ctx.analyzer.ImplementationsAt(UriToFileName(uri), doc.OffsetAt(pos))
			if err != nil {
				return nil, err
			}
			out = append(out, protocolLocations(ctx, locs)...)
		}
		return out, nil
	}
}

func registerReferences(ctx *Context) func(string, protocol.Position) ([]protocol.Location, error) {
	return func(uri string, pos protocol.Position) ([]protocol.Location, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		var out []protocol.Location
		for _, p := range plugins {
			if prov, ok := p.(ReferenceProvider); ok {
				locs, err := prov.References(doc, pos)
				if err != nil {
					return nil, err
				}
				out = append(out, locs...)
			}
		}
		if ctx.analyzer != nil {
			locs, err := ctx.analyzer.ReferencesAt(UriToFileName(uri), doc.OffsetAt(pos))
			if err != nil {
				return nil, err
			}
			out = append(out, protocolLocations(ctx, locs)...)
		}
		return out, nil
	}
}

func registerFileReferences(ctx *Context) func(string) ([]protocol.Location, error) {
	return func(uri string) ([]protocol.Location, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		var out []protocol.Location
		for _, p := range plugins {
			if prov, ok := p.(FileReferenceProvider); ok {
				locs, err := prov.FileReferences(doc)
				if err != nil {
					return nil, err
				}
				out = append(out, locs...)
			}
		}
		if ctx.analyzer != nil {
			locs, err := ctx.analyzer.FileReferences(UriToFileName(uri))
			if err != nil {
				return nil, err
			}
			out = append(out, protocolLocations(ctx, locs)...)
		}
		return out, nil
	}
}

func registerCallHierarchy(ctx *Context) func(string, protocol.Position) ([]protocol.CallHierarchyItem, error) {
	return func(uri string, pos protocol.Position) ([]protocol.CallHierarchyItem, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		var out []protocol.CallHierarchyItem
		for _, p := range plugins {
			if prov, ok := p.(CallHierarchyProvider); ok {
				items, err := prov.PrepareCallHierarchy(doc, pos)
				if err != nil {
					return nil, err
				}
				out = append(out, items...)
			}
		}
		return out, nil
	}
}
