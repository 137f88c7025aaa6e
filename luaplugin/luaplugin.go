// Package luaplugin adapts Lua-scripted plugins to the language-service
// runtime. A plugin script declares a global `plugin` table:
//
//	plugin = {
//	    name = "my-plugin",
//	    hover = function(uri, text, line, character) ... end,
//	    complete = function(uri, text, line, character) ... end,
//	    lint = function(uri, text) ... end,
//	}
//
// hover returns a markdown string or nil; complete returns an array of
// strings or of {label=..., detail=...} tables; lint returns an array of
// {line=..., character=..., message=..., severity=...} tables. Severity is
// one of "error", "warning", "information", "hint" (default "warning").
package luaplugin

import (
	"errors"
	"fmt"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"
	lua "github.com/yuin/gopher-lua"

	"github.com/chazu/fathom/service"
)

// ErrNoPluginTable reports a script that does not declare a plugin table.
var ErrNoPluginTable = errors.New("script does not define a global 'plugin' table")

// Plugin is a service plugin backed by one Lua state. Calls into the state
// are serialized; the state is released by Close (which the runtime's
// dispose operation invokes).
type Plugin struct {
	name string

	mu       sync.Mutex
	state    *lua.LState
	hover    lua.LValue
	complete lua.LValue
	lint     lua.LValue
}

// Load runs the script at path and adapts its plugin table. The fallback
// name is used when the table carries no name field.
func Load(name, path string) (*Plugin, error) {
	state := lua.NewState()
	if err := state.DoFile(path); err != nil {
		state.Close()
		return nil, fmt.Errorf("running %s: %w", path, err)
	}

	table, ok := state.GetGlobal("plugin").(*lua.LTable)
	if !ok {
		state.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrNoPluginTable)
	}
	if declared, ok := table.RawGetString("name").(lua.LString); ok {
		name = string(declared)
	}

	return &Plugin{
		name:     name,
		state:    state,
		hover:    table.RawGetString("hover"),
		complete: table.RawGetString("complete"),
		lint:     table.RawGetString("lint"),
	}, nil
}

// Entry wraps Load as a config.PluginLoader-compatible constructor.
func Entry(id, path string) (service.PluginEntry, error) {
	plugin, err := Load(id, path)
	if err != nil {
		return service.PluginEntry{}, err
	}
	return service.PluginEntry{ID: id, Instance: plugin}, nil
}

func (p *Plugin) Name() string {
	return p.name
}

// Close releases the Lua state. Safe to call more than once.
func (p *Plugin) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != nil {
		p.state.Close()
		p.state = nil
	}
	return nil
}

// call invokes fn with args, returning its single result.
func (p *Plugin) call(fn lua.LValue, args ...lua.LValue) (lua.LValue, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == nil {
		return lua.LNil, errors.New("plugin is closed")
	}
	err := p.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...)
	if err != nil {
		return lua.LNil, fmt.Errorf("plugin %s: %w", p.name, err)
	}
	ret := p.state.Get(-1)
	p.state.Pop(1)
	return ret, nil
}

// Hover implements service.HoverProvider.
func (p *Plugin) Hover(doc *service.Document, pos protocol.Position) (*protocol.Hover, error) {
	if p.hover == lua.LNil {
		return nil, nil
	}
	ret, err := p.call(p.hover,
		lua.LString(doc.URI),
		lua.LString(doc.Text),
		lua.LNumber(pos.Line),
		lua.LNumber(pos.Character),
	)
	if err != nil {
		return nil, err
	}
	text, ok := ret.(lua.LString)
	if !ok || text == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: string(text),
		},
	}, nil
}

// Complete implements service.CompletionProvider.
func (p *Plugin) Complete(doc *service.Document, pos protocol.Position) (*protocol.CompletionList, error) {
	if p.complete == lua.LNil {
		return nil, nil
	}
	ret, err := p.call(p.complete,
		lua.LString(doc.URI),
		lua.LString(doc.Text),
		lua.LNumber(pos.Line),
		lua.LNumber(pos.Character),
	)
	if err != nil {
		return nil, err
	}
	table, ok := ret.(*lua.LTable)
	if !ok {
		return nil, nil
	}

	list := &protocol.CompletionList{}
	table.ForEach(func(_, value lua.LValue) {
		switch v := value.(type) {
		case lua.LString:
			list.Items = append(list.Items, protocol.CompletionItem{Label: string(v)})
		case *lua.LTable:
			item := protocol.CompletionItem{}
			if label, ok := v.RawGetString("label").(lua.LString); ok {
				item.Label = string(label)
			}
			if detail, ok := v.RawGetString("detail").(lua.LString); ok {
				s := string(detail)
				item.Detail = &s
			}
			if item.Label != "" {
				list.Items = append(list.Items, item)
			}
		}
	})
	return list, nil
}

// Lint implements service.DiagnosticsProvider.
func (p *Plugin) Lint(doc *service.Document) ([]protocol.Diagnostic, error) {
	if p.lint == lua.LNil {
		return nil, nil
	}
	ret, err := p.call(p.lint, lua.LString(doc.URI), lua.LString(doc.Text))
	if err != nil {
		return nil, err
	}
	table, ok := ret.(*lua.LTable)
	if !ok {
		return nil, nil
	}

	var diagnostics []protocol.Diagnostic
	table.ForEach(func(_, value lua.LValue) {
		entry, ok := value.(*lua.LTable)
		if !ok {
			return
		}
		message, ok := entry.RawGetString("message").(lua.LString)
		if !ok {
			return
		}
		pos := protocol.Position{
			Line:      luaUint(entry, "line"),
			Character: luaUint(entry, "character"),
		}
		severity := severityFor(entry.RawGetString("severity"))
		source := p.name
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    protocol.Range{Start: pos, End: pos},
			Severity: &severity,
			Source:   &source,
			Message:  string(message),
		})
	})
	return diagnostics, nil
}

func luaUint(t *lua.LTable, key string) uint32 {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok && n >= 0 {
		return uint32(n)
	}
	return 0
}

func severityFor(v lua.LValue) protocol.DiagnosticSeverity {
	name, _ := v.(lua.LString)
	switch string(name) {
	case "error":
		return protocol.DiagnosticSeverityError
	case "information":
		return protocol.DiagnosticSeverityInformation
	case "hint":
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityWarning
	}
}
