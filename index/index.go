// Package index maintains a workspace symbol index in SQLite. The store is
// exposed to the language-service runtime as a plugin answering workspace
// symbol queries, and its full contents can be exported to and restored from
// a canonical-CBOR snapshot.
package index

import (
	"database/sql"
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"
	_ "modernc.org/sqlite"

	"github.com/chazu/fathom/service"
)

const schema = `
CREATE TABLE IF NOT EXISTS symbols (
	uri       TEXT    NOT NULL,
	name      TEXT    NOT NULL,
	kind      INTEGER NOT NULL,
	line      INTEGER NOT NULL,
	character INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS symbols_name ON symbols(name);
CREATE INDEX IF NOT EXISTS symbols_uri ON symbols(uri);
`

// Symbol is one indexed symbol occurrence.
type Symbol struct {
	Name      string
	Kind      uint32
	Line      uint32
	Character uint32
}

// Store is a workspace symbol index backed by a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the index database at path. Use
// ":memory:" for an ephemeral index.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put replaces the indexed symbols for uri.
func (s *Store) Put(uri string, symbols []Symbol) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM symbols WHERE uri = ?", uri); err != nil {
		return fmt.Errorf("clearing symbols for %s: %w", uri, err)
	}
	for _, sym := range symbols {
		_, err := tx.Exec(
			"INSERT INTO symbols (uri, name, kind, line, character) VALUES (?, ?, ?, ?, ?)",
			uri, sym.Name, sym.Kind, sym.Line, sym.Character,
		)
		if err != nil {
			return fmt.Errorf("inserting symbol %s: %w", sym.Name, err)
		}
	}
	return tx.Commit()
}

// Delete drops every indexed symbol for uri.
func (s *Store) Delete(uri string) error {
	if _, err := s.db.Exec("DELETE FROM symbols WHERE uri = ?", uri); err != nil {
		return fmt.Errorf("deleting symbols for %s: %w", uri, err)
	}
	return nil
}

// Query returns symbols whose name contains query, case-insensitively. An
// empty query matches everything.
func (s *Store) Query(query string) ([]protocol.SymbolInformation, error) {
	rows, err := s.db.Query(
		"SELECT uri, name, kind, line, character FROM symbols WHERE lower(name) LIKE '%' || lower(?) || '%' ORDER BY name, uri, line, character",
		query,
	)
	if err != nil {
		return nil, fmt.Errorf("querying symbols: %w", err)
	}
	defer rows.Close()

	var out []protocol.SymbolInformation
	for rows.Next() {
		var uri, name string
		var kind, line, character uint32
		if err := rows.Scan(&uri, &name, &kind, &line, &character); err != nil {
			return nil, fmt.Errorf("scanning symbol row: %w", err)
		}
		pos := protocol.Position{Line: line, Character: character}
		out = append(out, protocol.SymbolInformation{
			Name: name,
			Kind: protocol.SymbolKind(kind),
			Location: protocol.Location{
				URI:   protocol.DocumentUri(uri),
				Range: protocol.Range{Start: pos, End: pos},
			},
		})
	}
	return out, rows.Err()
}

// FromDocumentSymbols flattens a document-symbol tree into index symbols.
func FromDocumentSymbols(symbols []protocol.DocumentSymbol) []Symbol {
	var out []Symbol
	for _, sym := range symbols {
		out = append(out, Symbol{
			Name:      sym.Name,
			Kind:      uint32(sym.Kind),
			Line:      sym.SelectionRange.Start.Line,
			Character: sym.SelectionRange.Start.Character,
		})
		out = append(out, FromDocumentSymbols(sym.Children)...)
	}
	return out
}

// AsPlugin adapts the store to the runtime's workspace-symbol capability.
func (s *Store) AsPlugin() service.Plugin {
	return &indexPlugin{store: s}
}

type indexPlugin struct {
	store *Store
}

func (p *indexPlugin) Name() string {
	return "workspace-index"
}

func (p *indexPlugin) WorkspaceSymbols(query string) ([]protocol.SymbolInformation, error) {
	return p.store.Query(query)
}
