package service

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Collection operations: every providing plugin contributes, results are
// concatenated in configuration order.

func registerDocumentSymbols(ctx *Context) func(string) ([]protocol.DocumentSymbol, error) {
	return func(uri string) ([]protocol.DocumentSymbol, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		var out []protocol.DocumentSymbol
		for _, p := range plugins {
			if prov, ok := p.(SymbolProvider); ok {
				symbols, err := prov.DocumentSymbols(doc)
				if err != nil {
					return nil, err
				}
				out = append(out, symbols...)
			}
		}
		return out, nil
	}
}

func registerWorkspaceSymbols(ctx *Context) func(string) ([]protocol.SymbolInformation, error) {
	return func(query string) ([]protocol.SymbolInformation, error) {
		plugins, err := ctx.Plugins()
		if err != nil {
			return nil, err
		}
		var out []protocol.SymbolInformation
		for _, p := range plugins {
			if prov, ok := p.(WorkspaceSymbolProvider); ok {
				symbols, err := prov.WorkspaceSymbols(query)
				if err != nil {
					return nil, err
				}
				out = append(out, symbols...)
			}
		}
		return out, nil
	}
}

func registerDocumentHighlights(ctx *Context) func(string, protocol.Position) ([]protocol.DocumentHighlight, error) {
	return func(uri string, pos protocol.Position) ([]protocol.DocumentHighlight, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		var out []protocol.DocumentHighlight
		for _, p := range plugins {
			if prov, ok := p.(HighlightProvider); ok {
				highlights, err := prov.DocumentHighlights(doc, pos)
				if err != nil {
					return nil, err
				}
				out = append(out, highlights...)
			}
		}
		return out, nil
	}
}

func registerDocumentLinks(ctx *Context) func(string) ([]protocol.DocumentLink, error) {
	return func(uri string) ([]protocol.DocumentLink, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		var out []protocol.DocumentLink
		for _, p := range plugins {
			if prov, ok := p.(LinkProvider); ok {
				links, err := prov.DocumentLinks(doc)
				if err != nil {
					return nil, err
				}
				out = append(out, links...)
			}
		}
		return out, nil
	}
}

func registerFoldingRanges(ctx *Context) func(string) ([]protocol.FoldingRange, error) {
	return func(uri string) ([]protocol.FoldingRange, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		var out []protocol.FoldingRange
		for _, p := range plugins {
			if prov, ok := p.(FoldingProvider); ok {
				ranges, err := prov.FoldingRanges(doc)
				if err != nil {
					return nil, err
				}
				out = append(out, ranges...)
			}
		}
		return out, nil
	}
}

func registerSelectionRanges(ctx *Context) func(string, []protocol.Position) ([]protocol.SelectionRange, error) {
	return func(uri string, positions []protocol.Position) ([]protocol.SelectionRange, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		var out []protocol.SelectionRange
		for _, p := range plugins {
			if prov, ok := p.(SelectionProvider); ok {
				ranges, err := prov.SelectionRanges(doc, positions)
				if err != nil {
					return nil, err
				}
				out = append(out, ranges...)
			}
		}
		return out, nil
	}
}

func registerDocumentColors(ctx *Context) func(string) ([]protocol.ColorInformation, error) {
	return func(uri string) ([]protocol.ColorInformation, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		var out []protocol.ColorInformation
		for _, p := range plugins {
			if prov, ok := p.(ColorProvider); ok {
				colors, err := prov.DocumentColors(doc)
				if err != nil {
					return nil, err
				}
				out = append(out, colors...)
			}
		}
		return out, nil
	}
}

func registerColorPresentations(ctx *Context) func(string, protocol.Color, protocol.Range) ([]protocol.ColorPresentation, error) {
	return func(uri string, color protocol.Color, rng protocol.Range) ([]protocol.ColorPresentation, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		var out []protocol.ColorPresentation
		for _, p := range plugins {
			if prov, ok := p.(ColorProvider); ok {
				presentations, err := prov.ColorPresentations(doc, color, rng)
				if err != nil {
					return nil, err
				}
				out = append(out, presentations...)
			}
		}
		return out, nil
	}
}

func registerInlayHints(ctx *Context) func(string, protocol.Range) ([]InlayHint, error) {
	return func(uri string, rng protocol.Range) ([]InlayHint, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		var out []InlayHint
		for _, p := range plugins {
			if prov, ok := p.(InlayHintProvider); ok {
				hints, err := prov.InlayHints(doc, rng)
				if err != nil {
					return nil, err
				}
				out = append(out, hints...)
			}
		}
		return out, nil
	}
}
