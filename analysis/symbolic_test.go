package analysis

import (
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/chazu/fathom/host"
)

// fixtureHost loads a txtar archive into a memory host and returns it with
// the sorted file list.
func fixtureHost(t *testing.T, archive string) (*host.MemoryHost, func() []string) {
	t.Helper()
	h := host.NewMemoryHost()
	for _, f := range txtar.Parse([]byte(archive)).Files {
		h.Set(f.Name, string(f.Data))
	}
	return h, h.FileNames
}

func TestSymbolic_DefinitionAndReferences(t *testing.T) {
	h, files := fixtureHost(t, `
-- /lib.src --
fn greet(name)
-- /main.src --
greet("world")
greet("again")
`)
	svc := Symbolic(files).NewService(h)
	defer svc.Dispose()

	// Query from the call site; the definition is the first occurrence in
	// file order, which lands in /lib.src.
	defs, err := svc.DefinitionAt("/main.src", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(defs) != 1 {
		t.Fatalf("definitions = %v", defs)
	}
	want := Location{FileName: "/lib.src", Start: 3, End: 8}
	if defs[0] != want {
		t.Errorf("definition = %v, want %v", defs[0], want)
	}

	refs, err := svc.ReferencesAt("/main.src", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 3 {
		t.Fatalf("references = %v, want 3", refs)
	}
	if refs[0] != want {
		t.Errorf("first reference = %v, want the definition site", refs[0])
	}

	impls, err := svc.ImplementationsAt("/main.src", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(impls) != 2 {
		t.Errorf("implementations = %v, want the non-definition occurrences", impls)
	}

	renames, err := svc.RenameLocations("/main.src", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(renames) != 3 {
		t.Errorf("rename locations = %v, want every occurrence", renames)
	}
}

func TestSymbolic_WholeWordMatching(t *testing.T) {
	h, files := fixtureHost(t, `
-- /a.src --
foo foobar barfoo foo_x foo
`)
	svc := Symbolic(files).NewService(h)

	refs, err := svc.ReferencesAt("/a.src", 1)
	if err != nil {
		t.Fatal(err)
	}
	// foobar, barfoo and foo_x must not match "foo".
	if len(refs) != 2 {
		t.Errorf("references = %v, want only the standalone occurrences", refs)
	}
}

func TestSymbolic_NoIdentifierAtOffset(t *testing.T) {
	h, files := fixtureHost(t, `
-- /a.src --
x ( ) y
`)
	svc := Symbolic(files).NewService(h)

	refs, err := svc.ReferencesAt("/a.src", 3)
	if err != nil {
		t.Fatal(err)
	}
	if refs != nil {
		t.Errorf("references at punctuation = %v, want none", refs)
	}

	defs, err := svc.DefinitionAt("/missing.src", 0)
	if err != nil || defs != nil {
		t.Errorf("definition in unknown file = %v, %v", defs, err)
	}
}

func TestSymbolic_FileReferences(t *testing.T) {
	h, files := fixtureHost(t, `
-- /util.src --
util helpers live here
-- /main.src --
import util
use util
`)
	svc := Symbolic(files).NewService(h)

	refs, err := svc.FileReferences("/util.src")
	if err != nil {
		t.Fatal(err)
	}
	// Mentions of "util" in other files count; the self-mention does not.
	if len(refs) != 2 {
		t.Fatalf("file references = %v, want 2", refs)
	}
	for _, ref := range refs {
		if ref.FileName != "/main.src" {
			t.Errorf("reference in %s, want /main.src", ref.FileName)
		}
	}
}

func TestIdentifierAt(t *testing.T) {
	cases := []struct {
		text   string
		offset int
		want   string
	}{
		{"hello world", 0, "hello"},
		{"hello world", 3, "hello"},
		{"hello world", 5, "hello"}, // immediately after the word
		{"hello world", 6, "world"},
		{"a+b", 1, "a"},
		{"  ", 1, ""},
		{"word", 99, "word"}, // clamped
		{"word", -1, ""},
	}
	for _, c := range cases {
		if got := identifierAt(c.text, c.offset); got != c.want {
			t.Errorf("identifierAt(%q, %d) = %q, want %q", c.text, c.offset, got, c.want)
		}
	}
}
