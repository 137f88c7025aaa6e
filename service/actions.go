package service

import (
	"errors"
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ErrUnknownCommand reports an execute-command request no plugin claims.
var ErrUnknownCommand = errors.New("unknown command")

func registerCodeActions(ctx *Context) func(string, protocol.Range, []protocol.Diagnostic) ([]protocol.CodeAction, error) {
	return func(uri string, rng protocol.Range, diagnostics []protocol.Diagnostic) ([]protocol.CodeAction, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		var out []protocol.CodeAction
		for _, p := range plugins {
			if prov, ok := p.(CodeActionProvider); ok {
				actions, err := prov.CodeActions(doc, rng, diagnostics)
				if err != nil {
					return nil, err
				}
				out = append(out, actions...)
			}
		}
		return out, nil
	}
}

func registerCodeActionResolve(ctx *Context) func(protocol.CodeAction) (protocol.CodeAction, error) {
	return func(action protocol.CodeAction) (protocol.CodeAction, error) {
		plugins, err := ctx.Plugins()
		if err != nil {
			return action, err
		}
		for _, p := range plugins {
			if resolver, ok := p.(CodeActionResolver); ok {
				resolved, err := resolver.ResolveCodeAction(action)
				if err != nil {
					return action, err
				}
				action = resolved
			}
		}
		return action, nil
	}
}

func registerCodeLens(ctx *Context) func(string) ([]protocol.CodeLens, error) {
	return func(uri string) ([]protocol.CodeLens, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		var out []protocol.CodeLens
		for _, p := range plugins {
			if prov, ok := p.(CodeLensProvider); ok {
				lenses, err := prov.CodeLenses(doc)
				if err != nil {
					return nil, err
				}
				out = append(out, lenses...)
			}
		}
		return out, nil
	}
}

func registerCodeLensResolve(ctx *Context) func(protocol.CodeLens) (protocol.CodeLens, error) {
	return func(lens protocol.CodeLens) (protocol.CodeLens, error) {
		plugins, err := ctx.Plugins()
		if err != nil {
			return lens, err
		}
		for _, p := range plugins {
			if resolver, ok := p.(CodeLensResolver); ok {
				resolved, err := resolver.ResolveCodeLens(lens)
				if err != nil {
					return lens, err
				}
				lens = resolved
			}
		}
		return lens, nil
	}
}

// registerExecuteCommand routes the command to the first plugin claiming its
// id, in configuration order.
func registerExecuteCommand(ctx *Context) func(string, []any) (any, error) {
	return func(command string, args []any) (any, error) {
		plugins, err := ctx.Plugins()
		if err != nil {
			return nil, err
		}
		for _, p := range plugins {
			prov, ok := p.(CommandProvider)
			if !ok {
				continue
			}
			for _, id := range prov.Commands() {
				if id == command {
					return prov.ExecuteCommand(command, args)
				}
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}
