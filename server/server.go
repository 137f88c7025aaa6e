// Package server exposes a language-service runtime over LSP on stdio.
package server

import (
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/chazu/fathom/host"
	"github.com/chazu/fathom/service"

	_ "github.com/tliron/commonlog/simple"
)

const lspName = "fathom-lsp"

var log = commonlog.GetLogger("fathom.server")

// LspServer bridges LSP editor requests to a language-service runtime.
// Document synchronization feeds the editor's open buffers into the overlay
// host, so every change surfaces to the runtime as a fresh snapshot.
type LspServer struct {
	ls      *service.LanguageService
	overlay *host.MemoryHost

	handler protocol.Handler
	server  *glspserver.Server
	version string
}

// New creates an LSP server in front of the given runtime. The overlay must
// be the MemoryHost the runtime's host consults first (see host.Overlay);
// open-buffer contents are written into it.
func New(ls *service.LanguageService, overlay *host.MemoryHost) *LspServer {
	s := &LspServer{
		ls:      ls,
		overlay: overlay,
		version: "0.1.0",
	}

	s.handler = protocol.Handler{
		Initialize:  s.initialize,
		Initialized: s.initialized,
		Shutdown:    s.shutdown,
		SetTrace:    s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentCompletion:        s.textDocumentCompletion,
		TextDocumentHover:             s.textDocumentHover,
		TextDocumentDefinition:        s.textDocumentDefinition,
		TextDocumentReferences:        s.textDocumentReferences,
		TextDocumentDocumentSymbol:    s.textDocumentDocumentSymbol,
		TextDocumentFormatting:        s.textDocumentFormatting,
		TextDocumentFoldingRange:      s.textDocumentFoldingRange,
		TextDocumentRename:            s.textDocumentRename,
		TextDocumentSignatureHelp:     s.textDocumentSignatureHelp,
		TextDocumentCodeAction:        s.textDocumentCodeAction,
		TextDocumentDocumentHighlight: s.textDocumentDocumentHighlight,
		TextDocumentDocumentLink:      s.textDocumentDocumentLink,
		WorkspaceSymbol:               s.workspaceSymbol,
	}

	s.server = glspserver.NewServer(&s.handler, lspName, false)

	return s
}

// Run starts the LSP server on stdio. Blocks until the client disconnects.
func (s *LspServer) Run() error {
	return s.server.RunStdio()
}

// --- LSP lifecycle handlers ---

func (s *LspServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initializing")

	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{".", ":"},
	}
	capabilities.SignatureHelpProvider = &protocol.SignatureHelpOptions{
		TriggerCharacters: []string{"(", ","},
	}

	capabilities.HoverProvider = true
	capabilities.DefinitionProvider = true
	capabilities.ReferencesProvider = true
	capabilities.DocumentSymbolProvider = true
	capabilities.DocumentFormattingProvider = true
	capabilities.FoldingRangeProvider = true
	capabilities.RenameProvider = true
	capabilities.CodeActionProvider = true
	capabilities.DocumentHighlightProvider = true
	capabilities.WorkspaceSymbolProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lspName,
			Version: &s.version,
		},
	}, nil
}

func (s *LspServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *LspServer) shutdown(ctx *glsp.Context) error {
	s.ls.Dispose()
	return nil
}

func (s *LspServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// --- Document synchronization ---

func (s *LspServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.overlay.Set(service.UriToFileName(string(uri)), params.TextDocument.Text)
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *LspServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI

	// With Full sync, the last change event contains the full text
	if len(params.ContentChanges) > 0 {
		last := params.ContentChanges[len(params.ContentChanges)-1]
		if whole, ok := last.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.overlay.Set(service.UriToFileName(string(uri)), whole.Text)
			s.publishDiagnostics(ctx, uri)
		}
	}
	return nil
}

func (s *LspServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.overlay.Delete(service.UriToFileName(string(uri)))

	// Clear diagnostics for the closed document
	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *LspServer) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri) {
	diagnostics, err := s.ls.DoValidation(string(uri))
	if err != nil {
		log.Errorf("validation of %s failed: %s", uri, err.Error())
		return
	}
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// --- Language features ---

func (s *LspServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	list, err := s.ls.DoComplete(string(params.TextDocument.URI), params.Position)
	if err != nil || list == nil || len(list.Items) == 0 {
		return nil, err
	}
	return list, nil
}

func (s *LspServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	return s.ls.DoHover(string(params.TextDocument.URI), params.Position)
}

func (s *LspServer) textDocumentDefinition(ctx *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	locations, err := s.ls.FindDefinition(string(params.TextDocument.URI), params.Position)
	if err != nil || len(locations) == 0 {
		return nil, err
	}
	return locations, nil
}

func (s *LspServer) textDocumentReferences(ctx *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	return s.ls.FindReferences(string(params.TextDocument.URI), params.Position)
}

func (s *LspServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	symbols, err := s.ls.FindDocumentSymbols(string(params.TextDocument.URI))
	if err != nil || len(symbols) == 0 {
		return nil, err
	}
	return symbols, nil
}

func (s *LspServer) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	return s.ls.Format(string(params.TextDocument.URI), params.Options)
}

func (s *LspServer) textDocumentFoldingRange(ctx *glsp.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	return s.ls.GetFoldingRanges(string(params.TextDocument.URI))
}

func (s *LspServer) textDocumentRename(ctx *glsp.Context, params *protocol.RenameParams) (*protocol.WorkspaceEdit, error) {
	return s.ls.DoRename(string(params.TextDocument.URI), params.Position, params.NewName)
}

func (s *LspServer) textDocumentSignatureHelp(ctx *glsp.Context, params *protocol.SignatureHelpParams) (*protocol.SignatureHelp, error) {
	return s.ls.GetSignatureHelp(string(params.TextDocument.URI), params.Position)
}

func (s *LspServer) textDocumentCodeAction(ctx *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	actions, err := s.ls.DoCodeActions(string(params.TextDocument.URI), params.Range, params.Context.Diagnostics)
	if err != nil || len(actions) == 0 {
		return nil, err
	}
	return actions, nil
}

func (s *LspServer) textDocumentDocumentHighlight(ctx *glsp.Context, params *protocol.DocumentHighlightParams) ([]protocol.DocumentHighlight, error) {
	return s.ls.FindDocumentHighlights(string(params.TextDocument.URI), params.Position)
}

func (s *LspServer) textDocumentDocumentLink(ctx *glsp.Context, params *protocol.DocumentLinkParams) ([]protocol.DocumentLink, error) {
	return s.ls.FindDocumentLinks(string(params.TextDocument.URI))
}

func (s *LspServer) workspaceSymbol(ctx *glsp.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	return s.ls.FindWorkspaceSymbols(params.Query)
}

func boolPtr(b bool) *bool {
	return &b
}
