package service

import (
	"testing"
)

// ---------------------------------------------------------------------------
// Document identity cache
// ---------------------------------------------------------------------------

func TestDocument_ReferenceStability(t *testing.T) {
	h := newFakeHost()
	h.set("/a.ts", "let x = 1")
	ls := New(h, Config{})

	d1, ok := ls.Context.Document("file:///a.ts")
	if !ok {
		t.Fatal("first lookup failed")
	}
	d2, ok := ls.Context.Document("file:///a.ts")
	if !ok {
		t.Fatal("second lookup failed")
	}
	if d1 != d2 {
		t.Error("same snapshot produced distinct Documents")
	}
	if d1.Version != 1 {
		t.Errorf("version = %d, want 1", d1.Version)
	}
	if d1.Text != "let x = 1" {
		t.Errorf("text = %q", d1.Text)
	}
}

func TestDocument_VersionMonotonicity(t *testing.T) {
	h := newFakeHost()
	h.set("/a.ts", "one")
	ls := New(h, Config{})

	d1, _ := ls.Context.Document("file:///a.ts")
	// A new snapshot object, even with identical text, is a content change.
	h.set("/a.ts", "one")
	d2, ok := ls.Context.Document("file:///a.ts")
	if !ok {
		t.Fatal("lookup after update failed")
	}
	if d1 == d2 {
		t.Error("new snapshot returned the old Document")
	}
	if d2.Version <= d1.Version {
		t.Errorf("version did not increase: %d then %d", d1.Version, d2.Version)
	}
	if d2.Version != 2 {
		t.Errorf("version = %d, want 2", d2.Version)
	}
}

func TestDocument_MissingDoesNotConsumeVersion(t *testing.T) {
	h := newFakeHost()
	ls := New(h, Config{})

	if _, ok := ls.Context.Document("file:///missing.ts"); ok {
		t.Fatal("lookup of missing file succeeded")
	}
	h.set("/missing.ts", "now it exists")
	d, ok := ls.Context.Document("file:///missing.ts")
	if !ok {
		t.Fatal("lookup after creation failed")
	}
	if d.Version != 1 {
		t.Errorf("version = %d, want 1 (failed attempt must not advance the counter)", d.Version)
	}
}

// Each content update supersedes the previous snapshot; the cache must let
// go of the stale Document instead of accumulating one per update.
func TestDocument_CacheReleasesSupersededSnapshots(t *testing.T) {
	h := newFakeHost()
	ls := New(h, Config{})

	for i := 0; i < 100; i++ {
		h.set("/a.ts", "revision")
		if _, ok := ls.Context.Document("file:///a.ts"); !ok {
			t.Fatal("lookup failed")
		}
	}
	if n := len(ls.Context.docs.bySnapshot); n != 1 {
		t.Errorf("cache holds %d Documents for one live file, want 1", n)
	}

	// Distinct files each keep their own entry; supersession is per file.
	h.set("/b.ts", "other")
	if _, ok := ls.Context.Document("file:///b.ts"); !ok {
		t.Fatal("lookup failed")
	}
	if n := len(ls.Context.docs.bySnapshot); n != 2 {
		t.Errorf("cache holds %d Documents for two live files, want 2", n)
	}

	d, _ := ls.Context.Document("file:///a.ts")
	if d.Version != 100 {
		t.Errorf("version = %d, want 100", d.Version)
	}
}

func TestDocument_RemovedFileStopsResolving(t *testing.T) {
	h := newFakeHost()
	h.set("/a.ts", "present")
	ls := New(h, Config{})

	d1, ok := ls.Context.Document("file:///a.ts")
	if !ok {
		t.Fatal("lookup failed")
	}

	h.remove("/a.ts")
	if _, ok := ls.Context.Document("file:///a.ts"); ok {
		t.Fatal("removed file still resolves")
	}
	// The caller's Document stays usable after removal.
	if d1.Text != "present" {
		t.Errorf("text = %q", d1.Text)
	}

	h.set("/a.ts", "back")
	d2, ok := ls.Context.Document("file:///a.ts")
	if !ok {
		t.Fatal("lookup after recreation failed")
	}
	if d2.Version != 2 {
		t.Errorf("version = %d, want 2 (failed lookups must not advance the counter)", d2.Version)
	}
}

// The version counter folds uri case while the snapshot cache does not: two
// uris differing only in case are distinct documents sharing one version
// sequence. This mirrors case-insensitive filesystem handling; the test
// pins the asymmetry down.
func TestDocument_VersionCounterFoldsUriCase(t *testing.T) {
	h := newFakeHost()
	h.set("/a.ts", "lower")
	h.set("/A.ts", "upper")
	ls := New(h, Config{})

	d1, ok := ls.Context.Document("file:///a.ts")
	if !ok {
		t.Fatal("lower-case lookup failed")
	}
	d2, ok := ls.Context.Document("file:///A.ts")
	if !ok {
		t.Fatal("upper-case lookup failed")
	}
	if d1 == d2 {
		t.Error("distinct snapshots produced one Document")
	}
	if d1.Version != 1 || d2.Version != 2 {
		t.Errorf("versions = %d, %d; want 1, 2 (shared counter)", d1.Version, d2.Version)
	}
}

func TestDocument_LanguageID(t *testing.T) {
	h := newFakeHost()
	h.set("/script.qx", "")
	h.set("/main.go", "")
	h.set("/notes.xyz", "")
	ls := New(h, Config{
		Languages: []LanguageEntry{
			{ID: "quix", Language: &Language{Extensions: []string{".qx"}}},
			{ID: "ignored", Language: nil}, // undefined entries are filtered
		},
	})

	cases := []struct {
		uri  string
		want string
	}{
		{"file:///script.qx", "quix"},
		{"file:///main.go", "go"},
		{"file:///notes.xyz", "plaintext"},
	}
	for _, c := range cases {
		doc, ok := ls.Context.Document(c.uri)
		if !ok {
			t.Fatalf("lookup of %s failed", c.uri)
		}
		if doc.LanguageID != c.want {
			t.Errorf("languageId of %s = %q, want %q", c.uri, doc.LanguageID, c.want)
		}
	}

	if ids := ls.Context.Languages().IDs(); len(ids) != 1 || ids[0] != "quix" {
		t.Errorf("language ids = %v, want [quix]", ids)
	}
}

func TestDocumentVersion_Unseen(t *testing.T) {
	h := newFakeHost()
	ls := New(h, Config{})
	if v := ls.Context.DocumentVersion("file:///nothing.ts"); v != 0 {
		t.Errorf("version of unseen uri = %d, want 0", v)
	}
}

// ---------------------------------------------------------------------------
// URI conversion
// ---------------------------------------------------------------------------

func TestUriFileNameRoundtrip(t *testing.T) {
	cases := []struct {
		uri      string
		fileName string
	}{
		{"file:///a/b.ts", "/a/b.ts"},
		{"file:///with%20space.ts", "/with space.ts"},
	}
	for _, c := range cases {
		if got := UriToFileName(c.uri); got != c.fileName {
			t.Errorf("UriToFileName(%q) = %q, want %q", c.uri, got, c.fileName)
		}
	}
	if got := FileNameToUri("/a/b.ts"); got != "file:///a/b.ts" {
		t.Errorf("FileNameToUri = %q", got)
	}
	if got := FileNameToUri("file:///a/b.ts"); got != "file:///a/b.ts" {
		t.Errorf("FileNameToUri of uri = %q, want passthrough", got)
	}
}
