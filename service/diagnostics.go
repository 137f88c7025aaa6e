package service

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// registerValidation concatenates diagnostics from every lint-capable
// plugin. Plugins consult ctx.Rules() themselves for rule configuration.
func registerValidation(ctx *Context) func(string) ([]protocol.Diagnostic, error) {
	return func(uri string) ([]protocol.Diagnostic, error) {
		doc, plugins, err := resolve(ctx, uri)
		if doc == nil || err != nil {
			return nil, err
		}
		var out []protocol.Diagnostic
		for _, p := range plugins {
			if prov, ok := p.(DiagnosticsProvider); ok {
				diagnostics, err := prov.Lint(doc)
				if err != nil {
					return nil, err
				}
				out = append(out, diagnostics...)
			}
		}
		return out, nil
	}
}
