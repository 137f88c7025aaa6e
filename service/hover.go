package service

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// First-answer-wins operations: the first plugin (in configuration order)
// with a non-nil result answers.

func registerHover(ctx *Context) func(string, protocol.Position) (*protocol.Hover, error) {
	return func(uri string, pos protocol.Position) (*protocol.Hover, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		for _, p := range plugins {
			if prov, ok := p.(HoverProvider); ok {
				hover, err := prov.Hover(doc, pos)
				if err != nil {
					return nil, err
				}
				if hover != nil {
					return hover, nil
				}
			}
		}
		return nil, nil
	}
}

func registerSignatureHelp(ctx *Context) func(string, protocol.Position) (*protocol.SignatureHelp, error) {
	return func(uri string, pos protocol.Position) (*protocol.SignatureHelp, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		for _, p := range plugins {
			if prov, ok := p.(SignatureHelpProvider); ok {
				help, err := prov.SignatureHelp(doc, pos)
				if err != nil {
					return nil, err
				}
				if help != nil {
					return help, nil
				}
			}
		}
		return nil, nil
	}
}

func registerAutoInsert(ctx *Context) func(string, protocol.Position, string) (*string, error) {
	return func(uri string, pos protocol.Position, insertedText string) (*string, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		for _, p := range plugins {
			if prov, ok := p.(AutoInsertProvider); ok {
				text, err := prov.AutoInsert(doc, pos, insertedText)
				if err != nil {
					return nil, err
				}
				if text != nil {
					return text, nil
				}
			}
		}
		return nil, nil
	}
}

func registerLinkedEditingRanges(ctx *Context) func(string, protocol.Position) (*protocol.LinkedEditingRanges, error) {
	return func(uri string, pos protocol.Position) (*protocol.LinkedEditingRanges, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		for _, p := range plugins {
			if prov, ok := p.(LinkedEditingProvider); ok {
				ranges, err := prov.LinkedEditingRanges(doc, pos)
				if err != nil {
					return nil, err
				}
				if ranges != nil {
					return ranges, nil
				}
			}
		}
		return nil, nil
	}
}

func registerSemanticTokens(ctx *Context) func(string) (*protocol.SemanticTokens, error) {
	return func(uri string) (*protocol.SemanticTokens, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		// Token data is a single relative-encoded stream; contributions
		// cannot be merged, so the first provider answers.
		for _, p := range plugins {
			if prov, ok := p.(SemanticTokensProvider); ok {
				tokens, err := prov.SemanticTokens(doc)
				if err != nil {
					return nil, err
				}
				if tokens != nil {
					return tokens, nil
				}
			}
		}
		return nil, nil
	}
}
