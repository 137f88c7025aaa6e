package service

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// registerCompletion merges completion lists from every providing plugin.
// IsIncomplete is true if any contributor reported an incomplete list.
func registerCompletion(ctx *Context) func(string, protocol.Position) (*protocol.CompletionList, error) {
	return func(uri string, pos protocol.Position) (*protocol.CompletionList, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		merged := &protocol.CompletionList{}
		for _, p := range plugins {
			if prov, ok := p.(CompletionProvider); ok {
				list, err := prov.Complete(doc, pos)
				if err != nil {
					return nil, err
				}
				if list == nil {
					continue
				}
				merged.IsIncomplete = merged.IsIncomplete || list.IsIncomplete
				merged.Items = append(merged.Items, list.Items...)
			}
		}
		return merged, nil
	}
}

// registerCompletionResolve passes the item through each resolver in order;
// an item no plugin enriches comes back unchanged.
func registerCompletionResolve(ctx *Context) func(protocol.CompletionItem) (protocol.CompletionItem, error) {
	return func(item protocol.CompletionItem) (protocol.CompletionItem, error) {
		plugins, err := ctx.Plugins()
		if err != nil {
			return item, err
		}
		for _, p := range plugins {
			if resolver, ok := p.(CompletionResolver); ok {
				resolved, err := resolver.ResolveCompletion(item)
				if err != nil {
					return item, err
				}
				item = resolved
			}
		}
		return item, nil
	}
}
