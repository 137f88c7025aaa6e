package index

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical options so that equal index contents always
// serialize to identical bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("index: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

type snapshotEntry struct {
	URI       string `cbor:"1,keyasint"`
	Name      string `cbor:"2,keyasint"`
	Kind      uint32 `cbor:"3,keyasint"`
	Line      uint32 `cbor:"4,keyasint"`
	Character uint32 `cbor:"5,keyasint"`
}

// WriteSnapshot serializes the full index contents to w as canonical CBOR.
func (s *Store) WriteSnapshot(w io.Writer) error {
	rows, err := s.db.Query("SELECT uri, name, kind, line, character FROM symbols ORDER BY uri, name, line, character")
	if err != nil {
		return fmt.Errorf("reading index: %w", err)
	}
	defer rows.Close()

	var entries []snapshotEntry
	for rows.Next() {
		var e snapshotEntry
		if err := rows.Scan(&e.URI, &e.Name, &e.Kind, &e.Line, &e.Character); err != nil {
			return fmt.Errorf("scanning index row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	data, err := cborEncMode.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ReadSnapshot replaces the index contents with a snapshot previously
// produced by WriteSnapshot.
func (s *Store) ReadSnapshot(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	var entries []snapshotEntry
	if err := cbor.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("unmarshaling snapshot: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM symbols"); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}
	for _, e := range entries {
		_, err := tx.Exec(
			"INSERT INTO symbols (uri, name, kind, line, character) VALUES (?, ?, ?, ?, ?)",
			e.URI, e.Name, e.Kind, e.Line, e.Character,
		)
		if err != nil {
			return fmt.Errorf("restoring symbol %s: %w", e.Name, err)
		}
	}
	return tx.Commit()
}
