package service

import (
	"errors"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ---------------------------------------------------------------------------
// Operation dispatch table
// ---------------------------------------------------------------------------

func TestOperationCatalogue(t *testing.T) {
	ls := New(newFakeHost(), Config{})

	names := ls.Operations()
	if len(names) != 33 {
		t.Fatalf("catalogue has %d operations, want 33", len(names))
	}
	if names[0] != "format" || names[len(names)-1] != "dispose" {
		t.Errorf("catalogue order: first %q, last %q", names[0], names[len(names)-1])
	}
	for _, name := range names {
		op, ok := ls.Operation(name)
		if !ok {
			t.Errorf("operation %q not bound", name)
			continue
		}
		if op == nil {
			t.Errorf("operation %q bound to nil", name)
		}
	}
	if _, ok := ls.Operation("doNonsense"); ok {
		t.Error("unknown operation name resolved")
	}
}

func TestOperationCatalogue_IsACopy(t *testing.T) {
	ls := New(newFakeHost(), Config{})
	names := ls.Operations()
	names[0] = "mutated"
	if ls.Operations()[0] != "format" {
		t.Error("mutating the returned slice leaked into the catalogue")
	}
}

// ---------------------------------------------------------------------------
// Disposal
// ---------------------------------------------------------------------------

type closerPlugin struct {
	namedPlugin
	closes int
}

func (p *closerPlugin) Close() error {
	p.closes++
	return nil
}

func TestDispose_Bare(t *testing.T) {
	ls := New(newFakeHost(), Config{})
	// No analyzer, no plugins, registry never built: repeated disposal is a
	// safe no-op.
	ls.Dispose()
	ls.Dispose()
}

func TestDispose_ClosesBuiltPlugins(t *testing.T) {
	closer := &closerPlugin{namedPlugin: namedPlugin{name: "closer"}}
	ls := New(newFakeHost(), Config{
		Plugins: []PluginEntry{{ID: "closer", Instance: closer}},
	})

	ls.Dispose()
	if closer.closes != 0 {
		t.Fatal("disposal built the registry just to close it")
	}

	if _, err := ls.Context.Plugins(); err != nil {
		t.Fatal(err)
	}
	ls.Dispose()
	if closer.closes != 1 {
		t.Errorf("closes = %d, want 1", closer.closes)
	}
}

// ---------------------------------------------------------------------------
// Aggregation semantics
// ---------------------------------------------------------------------------

type hoverPlugin struct {
	namedPlugin
	hover *protocol.Hover
	calls int
}

func (p *hoverPlugin) Hover(doc *Document, pos protocol.Position) (*protocol.Hover, error) {
	p.calls++
	return p.hover, nil
}

func TestHover_FirstAnswerWins(t *testing.T) {
	h := newFakeHost()
	h.set("/a.ts", "text")
	silent := &hoverPlugin{namedPlugin: namedPlugin{name: "silent"}}
	answering := &hoverPlugin{
		namedPlugin: namedPlugin{name: "answering"},
		hover:       &protocol.Hover{Contents: "answer"},
	}
	shadowed := &hoverPlugin{
		namedPlugin: namedPlugin{name: "shadowed"},
		hover:       &protocol.Hover{Contents: "never seen"},
	}
	ls := New(h, Config{
		Plugins: []PluginEntry{
			{ID: "silent", Instance: silent},
			{ID: "answering", Instance: answering},
			{ID: "shadowed", Instance: shadowed},
		},
	})

	hover, err := ls.DoHover("file:///a.ts", protocol.Position{})
	if err != nil {
		t.Fatal(err)
	}
	if hover != answering.hover {
		t.Errorf("hover = %v", hover)
	}
	if silent.calls != 1 || answering.calls != 1 || shadowed.calls != 0 {
		t.Errorf("calls = %d, %d, %d; want 1, 1, 0",
			silent.calls, answering.calls, shadowed.calls)
	}
}

func TestHover_MissingDocumentIsSoft(t *testing.T) {
	probe := &hoverPlugin{
		namedPlugin: namedPlugin{name: "probe"},
		hover:       &protocol.Hover{Contents: "x"},
	}
	ls := New(newFakeHost(), Config{
		Plugins: []PluginEntry{{ID: "probe", Instance: probe}},
	})

	hover, err := ls.DoHover("file:///absent.ts", protocol.Position{})
	if hover != nil || err != nil {
		t.Errorf("hover, err = %v, %v; want nil, nil", hover, err)
	}
	if probe.calls != 0 {
		t.Error("plugin consulted for a missing document")
	}
}

type completionPlugin struct {
	namedPlugin
	list *protocol.CompletionList
}

func (p *completionPlugin) Complete(doc *Document, pos protocol.Position) (*protocol.CompletionList, error) {
	return p.list, nil
}

func TestComplete_MergesLists(t *testing.T) {
	h := newFakeHost()
	h.set("/a.ts", "text")
	ls := New(h, Config{
		Plugins: []PluginEntry{
			{ID: "one", Instance: &completionPlugin{
				namedPlugin: namedPlugin{name: "one"},
				list: &protocol.CompletionList{
					Items: []protocol.CompletionItem{{Label: "alpha"}},
				},
			}},
			{ID: "quiet", Instance: &completionPlugin{
				namedPlugin: namedPlugin{name: "quiet"},
			}},
			{ID: "two", Instance: &completionPlugin{
				namedPlugin: namedPlugin{name: "two"},
				list: &protocol.CompletionList{
					IsIncomplete: true,
					Items:        []protocol.CompletionItem{{Label: "beta"}},
				},
			}},
		},
	})

	list, err := ls.DoComplete("file:///a.ts", protocol.Position{})
	if err != nil {
		t.Fatal(err)
	}
	if !list.IsIncomplete {
		t.Error("IsIncomplete not propagated from any contributor")
	}
	if len(list.Items) != 2 || list.Items[0].Label != "alpha" || list.Items[1].Label != "beta" {
		t.Errorf("items = %v", list.Items)
	}
}

type lintPlugin struct {
	namedPlugin
	message string
}

func (p *lintPlugin) Lint(doc *Document) ([]protocol.Diagnostic, error) {
	return []protocol.Diagnostic{{Message: p.message}}, nil
}

func TestValidation_Concatenates(t *testing.T) {
	h := newFakeHost()
	h.set("/a.ts", "text")
	ls := New(h, Config{
		Plugins: []PluginEntry{
			{ID: "first", Instance: &lintPlugin{namedPlugin{name: "first"}, "d1"}},
			{ID: "second", Instance: &lintPlugin{namedPlugin{name: "second"}, "d2"}},
		},
	})

	diags, err := ls.DoValidation("file:///a.ts")
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 2 || diags[0].Message != "d1" || diags[1].Message != "d2" {
		t.Errorf("diagnostics = %v", diags)
	}
}

// ---------------------------------------------------------------------------
// Command routing
// ---------------------------------------------------------------------------

type commandPlugin struct {
	namedPlugin
	claimed []string
	got     []any
}

func (p *commandPlugin) Commands() []string { return p.claimed }

func (p *commandPlugin) ExecuteCommand(command string, args []any) (any, error) {
	p.got = args
	return p.name + ":" + command, nil
}

func TestExecuteCommand_Routing(t *testing.T) {
	first := &commandPlugin{namedPlugin: namedPlugin{name: "first"}, claimed: []string{"x.run"}}
	second := &commandPlugin{namedPlugin: namedPlugin{name: "second"}, claimed: []string{"x.run", "y.run"}}
	ls := New(newFakeHost(), Config{
		Plugins: []PluginEntry{
			{ID: "first", Instance: first},
			{ID: "second", Instance: second},
		},
	})

	result, err := ls.DoExecuteCommand("x.run", []any{"arg"})
	if err != nil {
		t.Fatal(err)
	}
	if result != "first:x.run" {
		t.Errorf("result = %v, want the first claimant's", result)
	}
	if len(first.got) != 1 || first.got[0] != "arg" {
		t.Errorf("args = %v", first.got)
	}
	if second.got != nil {
		t.Error("later claimant was invoked")
	}

	if result, err := ls.DoExecuteCommand("y.run", nil); err != nil || result != "second:y.run" {
		t.Errorf("y.run = %v, %v", result, err)
	}

	_, err = ls.DoExecuteCommand("z.unknown", nil)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("err = %v, want ErrUnknownCommand", err)
	}
}

// ---------------------------------------------------------------------------
// Analyzer-backed navigation
// ---------------------------------------------------------------------------

func TestAnalyzerNavigation(t *testing.T) {
	h := newFakeHost()
	h.set("/a.txt", "alpha beta alpha")
	h.set("/b.txt", "alpha")
	ls := New(&analyzerFakeHost{fakeHost: h}, Config{})

	// The definition of an identifier is its first occurrence across the
	// file set, here the start of /a.txt.
	locs, err := ls.FindDefinition("file:///b.txt", protocol.Position{Line: 0, Character: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(locs) != 1 {
		t.Fatalf("definitions = %v", locs)
	}
	if string(locs[0].URI) != "file:///a.txt" {
		t.Errorf("definition uri = %q", locs[0].URI)
	}
	if locs[0].Range.Start.Character != 0 || locs[0].Range.End.Character != 5 {
		t.Errorf("definition range = %v", locs[0].Range)
	}

	locs, err = ls.FindReferences("file:///a.txt", protocol.Position{Line: 0, Character: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(locs) != 3 {
		t.Errorf("references = %v, want 3 occurrences", locs)
	}

	edit, err := ls.DoRename("file:///a.txt", protocol.Position{Line: 0, Character: 1}, "gamma")
	if err != nil {
		t.Fatal(err)
	}
	if edit == nil {
		t.Fatal("rename produced no edit")
	}
	if got := len(edit.Changes[protocol.DocumentUri("file:///a.txt")]); got != 2 {
		t.Errorf("edits in a.txt = %d, want 2", got)
	}
	changes := edit.Changes[protocol.DocumentUri("file:///b.txt")]
	if len(changes) != 1 {
		t.Fatalf("edits in b.txt = %d, want 1", len(changes))
	}
	if changes[0].NewText != "gamma" {
		t.Errorf("new text = %q", changes[0].NewText)
	}
}

func TestAnalyzerAbsent_NavigationIsEmpty(t *testing.T) {
	h := newFakeHost()
	h.set("/a.txt", "alpha")
	ls := New(h, Config{})

	locs, err := ls.FindDefinition("file:///a.txt", protocol.Position{})
	if err != nil || locs != nil {
		t.Errorf("definition without analyzer = %v, %v; want nil, nil", locs, err)
	}
}
