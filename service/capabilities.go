package service

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Per-operation capability interfaces. A plugin opts into an operation by
// implementing the matching interface; handlers discover capabilities by
// type assertion and aggregate results in registry order.

type HoverProvider interface {
	Hover(doc *Document, pos protocol.Position) (*protocol.Hover, error)
}

type CompletionProvider interface {
	Complete(doc *Document, pos protocol.Position) (*protocol.CompletionList, error)
}

type CompletionResolver interface {
	ResolveCompletion(item protocol.CompletionItem) (protocol.CompletionItem, error)
}

type DiagnosticsProvider interface {
	Lint(doc *Document) ([]protocol.Diagnostic, error)
}

type DefinitionProvider interface {
	Definition(doc *Document, pos protocol.Position) ([]protocol.Location, error)
}

type TypeDefinitionProvider interface {
	TypeDefinition(doc *Document, pos protocol.Position) ([]protocol.Location, error)
}

type ImplementationProvider interface {
	Implementations(doc *Document, pos protocol.Position) ([]protocol.Location, error)
}

type ReferenceProvider interface {
	References(doc *Document, pos protocol.Position) ([]protocol.Location, error)
}

type FileReferenceProvider interface {
	FileReferences(doc *Document) ([]protocol.Location, error)
}

type RenameProvider interface {
	PrepareRename(doc *Document, pos protocol.Position) (*protocol.Range, error)
	Rename(doc *Document, pos protocol.Position, newName string) (*protocol.WorkspaceEdit, error)
}

type FileRenameProvider interface {
	EditsForFileRename(oldURI, newURI string) (*protocol.WorkspaceEdit, error)
}

type SymbolProvider interface {
	DocumentSymbols(doc *Document) ([]protocol.DocumentSymbol, error)
}

type WorkspaceSymbolProvider interface {
	WorkspaceSymbols(query string) ([]protocol.SymbolInformation, error)
}

type ColorProvider interface {
	DocumentColors(doc *Document) ([]protocol.ColorInformation, error)
	ColorPresentations(doc *Document, color protocol.Color, rng protocol.Range) ([]protocol.ColorPresentation, error)
}

type FoldingProvider interface {
	FoldingRanges(doc *Document) ([]protocol.FoldingRange, error)
}

type SelectionProvider interface {
	SelectionRanges(doc *Document, positions []protocol.Position) ([]protocol.SelectionRange, error)
}

type LinkedEditingProvider interface {
	LinkedEditingRanges(doc *Document, pos protocol.Position) (*protocol.LinkedEditingRanges, error)
}

type HighlightProvider interface {
	DocumentHighlights(doc *Document, pos protocol.Position) ([]protocol.DocumentHighlight, error)
}

type LinkProvider interface {
	DocumentLinks(doc *Document) ([]protocol.DocumentLink, error)
}

type SemanticTokensProvider interface {
	SemanticTokens(doc *Document) (*protocol.SemanticTokens, error)
}

type CodeActionProvider interface {
	CodeActions(doc *Document, rng protocol.Range, diagnostics []protocol.Diagnostic) ([]protocol.CodeAction, error)
}

type CodeActionResolver interface {
	ResolveCodeAction(action protocol.CodeAction) (protocol.CodeAction, error)
}

type CodeLensProvider interface {
	CodeLenses(doc *Document) ([]protocol.CodeLens, error)
}

type CodeLensResolver interface {
	ResolveCodeLens(lens protocol.CodeLens) (protocol.CodeLens, error)
}

type SignatureHelpProvider interface {
	SignatureHelp(doc *Document, pos protocol.Position) (*protocol.SignatureHelp, error)
}

type AutoInsertProvider interface {
	AutoInsert(doc *Document, pos protocol.Position, insertedText string) (*string, error)
}

// CommandProvider executes workspace commands. Commands lists the command
// ids the plugin claims; ExecuteCommand is only invoked for claimed ids.
type CommandProvider interface {
	Commands() []string
	ExecuteCommand(command string, args []any) (any, error)
}

type InlayHintProvider interface {
	InlayHints(doc *Document, rng protocol.Range) ([]InlayHint, error)
}

type CallHierarchyProvider interface {
	PrepareCallHierarchy(doc *Document, pos protocol.Position) ([]protocol.CallHierarchyItem, error)
}

type FormattingProvider interface {
	Format(doc *Document, options protocol.FormattingOptions) ([]protocol.TextEdit, error)
}

// InlayHintKind follows the LSP 3.17 encoding, which the wire protocol
// package predates.
type InlayHintKind int32

const (
	InlayHintKindType      InlayHintKind = 1
	InlayHintKindParameter InlayHintKind = 2
)

// InlayHint is an inline annotation anchored to a position.
type InlayHint struct {
	Position     protocol.Position
	Label        string
	Kind         InlayHintKind
	PaddingLeft  bool
	PaddingRight bool
}
