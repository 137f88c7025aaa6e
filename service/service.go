// Package service is the composition root of the fathom language-tooling
// runtime. Given a host that supplies file content snapshots (and optionally
// an analyzer module), it assembles one shared runtime Context and binds the
// fixed catalogue of editor-facing operations against it.
package service

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/chazu/fathom/analysis"
	"github.com/chazu/fathom/host"
)

// operationNames is the fixed, exhaustive operation catalogue. Configuration
// cannot add or remove entries.
var operationNames = []string{
	"format",
	"getFoldingRanges",
	"getSelectionRanges",
	"findLinkedEditingRanges",
	"findDocumentSymbols",
	"findDocumentColors",
	"getColorPresentations",
	"doValidation",
	"findReferences",
	"findFileReferences",
	"findDefinition",
	"findTypeDefinition",
	"findImplementations",
	"prepareRename",
	"doRename",
	"getEditsForFileRename",
	"getSemanticTokens",
	"doHover",
	"doComplete",
	"doCodeActions",
	"doCodeActionResolve",
	"doCompletionResolve",
	"getSignatureHelp",
	"doCodeLens",
	"doCodeLensResolve",
	"findDocumentHighlights",
	"findDocumentLinks",
	"findWorkspaceSymbols",
	"doAutoInsert",
	"doExecuteCommand",
	"getInlayHints",
	"callHierarchy",
	"dispose",
}

// LanguageService is the externally callable surface: one bound function per
// catalogue operation, each closing over the shared Context. The table is
// assembled once at construction and not mutated afterwards.
type LanguageService struct {
	Context *Context

	Format                  func(uri string, options protocol.FormattingOptions) ([]protocol.TextEdit, error)
	GetFoldingRanges        func(uri string) ([]protocol.FoldingRange, error)
	GetSelectionRanges      func(uri string, positions []protocol.Position) ([]protocol.SelectionRange, error)
	FindLinkedEditingRanges func(uri string, pos protocol.Position) (*protocol.LinkedEditingRanges, error)
	FindDocumentSymbols     func(uri string) ([]protocol.DocumentSymbol, error)
	FindDocumentColors      func(uri string) ([]protocol.ColorInformation, error)
	GetColorPresentations   func(uri string, color protocol.Color, rng protocol.Range) ([]protocol.ColorPresentation, error)
	DoValidation            func(uri string) ([]protocol.Diagnostic, error)
	FindReferences          func(uri string, pos protocol.Position) ([]protocol.Location, error)
	FindFileReferences      func(uri string) ([]protocol.Location, error)
	FindDefinition          func(uri string, pos protocol.Position) ([]protocol.Location, error)
	FindTypeDefinition      func(uri string, pos protocol.Position) ([]protocol.Location, error)
	FindImplementations     func(uri string, pos protocol.Position) ([]protocol.Location, error)
	PrepareRename           func(uri string, pos protocol.Position) (*protocol.Range, error)
	DoRename                func(uri string, pos protocol.Position, newName string) (*protocol.WorkspaceEdit, error)
	GetEditsForFileRename   func(oldURI, newURI string) (*protocol.WorkspaceEdit, error)
	GetSemanticTokens       func(uri string) (*protocol.SemanticTokens, error)
	DoHover                 func(uri string, pos protocol.Position) (*protocol.Hover, error)
	DoComplete              func(uri string, pos protocol.Position) (*protocol.CompletionList, error)
	DoCodeActions           func(uri string, rng protocol.Range, diagnostics []protocol.Diagnostic) ([]protocol.CodeAction, error)
	DoCodeActionResolve     func(action protocol.CodeAction) (protocol.CodeAction, error)
	DoCompletionResolve     func(item protocol.CompletionItem) (protocol.CompletionItem, error)
	GetSignatureHelp        func(uri string, pos protocol.Position) (*protocol.SignatureHelp, error)
	DoCodeLens              func(uri string) ([]protocol.CodeLens, error)
	DoCodeLensResolve       func(lens protocol.CodeLens) (protocol.CodeLens, error)
	FindDocumentHighlights  func(uri string, pos protocol.Position) ([]protocol.DocumentHighlight, error)
	FindDocumentLinks       func(uri string) ([]protocol.DocumentLink, error)
	FindWorkspaceSymbols    func(query string) ([]protocol.SymbolInformation, error)
	DoAutoInsert            func(uri string, pos protocol.Position, insertedText string) (*string, error)
	DoExecuteCommand        func(command string, args []any) (any, error)
	GetInlayHints           func(uri string, rng protocol.Range) ([]InlayHint, error)
	CallHierarchy           func(uri string, pos protocol.Position) ([]protocol.CallHierarchyItem, error)
	Dispose                 func()

	operations map[string]any
}

// Option adjusts runtime construction.
type Option func(*options)

type options struct {
	noQueryMemo bool
}

// WithoutQueryMemo disables the LRU decoration of analyzer navigation
// queries, for analyzers that do their own caching.
func WithoutQueryMemo() Option {
	return func(o *options) { o.noQueryMemo = true }
}

// New assembles a runtime Context from the host and configuration and binds
// the operation dispatch table against it. Every registration happens here,
// exactly once, whether or not the operation is ever invoked.
func New(h host.Host, cfg Config, opts ...Option) *LanguageService {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	ctx := newContext(h, cfg)
	ls := &LanguageService{Context: ctx}

	// Late-bound runtime handle: plugin factories run lazily, after this
	// function returns, so by the time a factory resolves the handle the
	// service is fully constructed.
	ctx.registry.handle = func() *LanguageService { return ls }

	if provider, ok := h.(AnalyzerProvider); ok {
		if mod := provider.AnalyzerModule(); mod != nil {
			svc := mod.NewService(h)
			if !o.noQueryMemo {
				svc = analysis.Decorate(svc, func(fileName string) int32 {
					return ctx.DocumentVersion(FileNameToUri(fileName))
				})
			}
			ctx.analyzer = svc
		}
	}

	ls.bind()
	return ls
}

// Operations returns the operation catalogue in its fixed order.
func (ls *LanguageService) Operations() []string {
	out := make([]string, len(operationNames))
	copy(out, operationNames)
	return out
}

// Operation returns the bound handler for name, for introspection.
func (ls *LanguageService) Operation(name string) (any, bool) {
	op, ok := ls.operations[name]
	return op, ok
}

func (ls *LanguageService) bind() {
	ctx := ls.Context

	ls.Format = registerFormat(ctx)
	ls.GetFoldingRanges = registerFoldingRanges(ctx)
	ls.GetSelectionRanges = registerSelectionRanges(ctx)
	ls.FindLinkedEditingRanges = registerLinkedEditingRanges(ctx)
	ls.FindDocumentSymbols = registerDocumentSymbols(ctx)
	ls.FindDocumentColors = registerDocumentColors(ctx)
	ls.GetColorPresentations = registerColorPresentations(ctx)
	ls.DoValidation = registerValidation(ctx)
	ls.FindReferences = registerReferences(ctx)
	ls.FindFileReferences = registerFileReferences(ctx)
	ls.FindDefinition = registerDefinition(ctx)
	ls.FindTypeDefinition = registerTypeDefinition(ctx)
	ls.FindImplementations = registerImplementations(ctx)
	ls.PrepareRename = registerPrepareRename(ctx)
	ls.DoRename = registerRename(ctx)
	ls.GetEditsForFileRename = registerEditsForFileRename(ctx)
	ls.GetSemanticTokens = registerSemanticTokens(ctx)
	ls.DoHover = registerHover(ctx)
	ls.DoComplete = registerCompletion(ctx)
	ls.DoCodeActions = registerCodeActions(ctx)
	ls.DoCodeActionResolve = registerCodeActionResolve(ctx)
	ls.DoCompletionResolve = registerCompletionResolve(ctx)
	ls.GetSignatureHelp = registerSignatureHelp(ctx)
	ls.DoCodeLens = registerCodeLens(ctx)
	ls.DoCodeLensResolve = registerCodeLensResolve(ctx)
	ls.FindDocumentHighlights = registerDocumentHighlights(ctx)
	ls.FindDocumentLinks = registerDocumentLinks(ctx)
	ls.FindWorkspaceSymbols = registerWorkspaceSymbols(ctx)
	ls.DoAutoInsert = registerAutoInsert(ctx)
	ls.DoExecuteCommand = registerExecuteCommand(ctx)
	ls.GetInlayHints = registerInlayHints(ctx)
	ls.CallHierarchy = registerCallHierarchy(ctx)
	ls.Dispose = registerDispose(ctx)

	ls.operations = map[string]any{
		"format":                  ls.Format,
		"getFoldingRanges":        ls.GetFoldingRanges,
		"getSelectionRanges":      ls.GetSelectionRanges,
		"findLinkedEditingRanges": ls.FindLinkedEditingRanges,
		"findDocumentSymbols":     ls.FindDocumentSymbols,
		"findDocumentColors":      ls.FindDocumentColors,
		"getColorPresentations":   ls.GetColorPresentations,
		"doValidation":            ls.DoValidation,
		"findReferences":          ls.FindReferences,
		"findFileReferences":      ls.FindFileReferences,
		"findDefinition":          ls.FindDefinition,
		"findTypeDefinition":      ls.FindTypeDefinition,
		"findImplementations":     ls.FindImplementations,
		"prepareRename":           ls.PrepareRename,
		"doRename":                ls.DoRename,
		"getEditsForFileRename":   ls.GetEditsForFileRename,
		"getSemanticTokens":       ls.GetSemanticTokens,
		"doHover":                 ls.DoHover,
		"doComplete":              ls.DoComplete,
		"doCodeActions":           ls.DoCodeActions,
		"doCodeActionResolve":     ls.DoCodeActionResolve,
		"doCompletionResolve":     ls.DoCompletionResolve,
		"getSignatureHelp":        ls.GetSignatureHelp,
		"doCodeLens":              ls.DoCodeLens,
		"doCodeLensResolve":       ls.DoCodeLensResolve,
		"findDocumentHighlights":  ls.FindDocumentHighlights,
		"findDocumentLinks":       ls.FindDocumentLinks,
		"findWorkspaceSymbols":    ls.FindWorkspaceSymbols,
		"doAutoInsert":            ls.DoAutoInsert,
		"doExecuteCommand":        ls.DoExecuteCommand,
		"getInlayHints":           ls.GetInlayHints,
		"callHierarchy":           ls.CallHierarchy,
		"dispose":                 ls.Dispose,
	}
}

// registerDispose binds the dispose operation: it releases the analyzer if
// one was constructed and closes any built plugin that holds resources.
// With neither present it is a no-op, and it is safe to call repeatedly.
func registerDispose(ctx *Context) func() {
	return func() {
		if ctx.analyzer != nil {
			ctx.analyzer.Dispose()
		}
		if ctx.registry.state == registryBuilt {
			for _, p := range ctx.registry.order {
				if closer, ok := p.(interface{ Close() error }); ok {
					_ = closer.Close()
				}
			}
		}
	}
}
