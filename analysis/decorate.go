package analysis

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// memoCacheSize bounds the decorated query cache. Navigation queries repeat
// heavily while a document is unchanged, so a small cache covers the hot set.
const memoCacheSize = 512

type queryKind uint8

const (
	queryDefinition queryKind = iota
	queryTypeDefinition
	queryImplementations
	queryReferences
	queryFileReferences
	queryRename
)

type memoKey struct {
	kind    queryKind
	file    string
	offset  int
	version int32
}

// decorated memoizes navigation queries of an underlying Service. Keys carry
// the document version supplied by the version function, so results computed
// against stale content are never served for updated documents.
type decorated struct {
	inner   Service
	version func(fileName string) int32
	cache   *lru.Cache[memoKey, []Location]
}

// Decorate wraps svc with an LRU memo over its navigation queries. version
// reports the current document version for a file name; results are cached
// per (query, file, offset, version). Errors are not cached.
func Decorate(svc Service, version func(fileName string) int32) Service {
	cache, err := lru.New[memoKey, []Location](memoCacheSize)
	if err != nil {
		// lru.New fails only for a non-positive size.
		panic(err)
	}
	return &decorated{inner: svc, version: version, cache: cache}
}

func (d *decorated) query(kind queryKind, fileName string, offset int, run func() ([]Location, error)) ([]Location, error) {
	key := memoKey{kind: kind, file: fileName, offset: offset, version: d.version(fileName)}
	if locs, ok := d.cache.Get(key); ok {
		return locs, nil
	}
	locs, err := run()
	if err != nil {
		return nil, err
	}
	d.cache.Add(key, locs)
	return locs, nil
}

func (d *decorated) DefinitionAt(fileName string, offset int) ([]Location, error) {
	return d.query(queryDefinition, fileName, offset, func() ([]Location, error) {
		return d.inner.DefinitionAt(fileName, offset)
	})
}

func (d *decorated) TypeDefinitionAt(fileName string, offset int) ([]Location, error) {
	return d.query(queryTypeDefinition, fileName, offset, func() ([]Location, error) {
		return d.inner.TypeDefinitionAt(fileName, offset)
	})
}

func (d *decorated) ImplementationsAt(fileName string, offset int) ([]Location, error) {
	return d.query(queryImplementations, fileName, offset, func() ([]Location, error) {
		return d.inner.ImplementationsAt(fileName, offset)
	})
}

func (d *decorated) ReferencesAt(fileName string, offset int) ([]Location, error) {
	return d.query(queryReferences, fileName, offset, func() ([]Location, error) {
		return d.inner.ReferencesAt(fileName, offset)
	})
}

func (d *decorated) FileReferences(fileName string) ([]Location, error) {
	return d.query(queryFileReferences, fileName, 0, func() ([]Location, error) {
		return d.inner.FileReferences(fileName)
	})
}

func (d *decorated) RenameLocations(fileName string, offset int) ([]Location, error) {
	return d.query(queryRename, fileName, offset, func() ([]Location, error) {
		return d.inner.RenameLocations(fileName, offset)
	})
}

func (d *decorated) Dispose() {
	d.cache.Purge()
	d.inner.Dispose()
}
