package analysis

import (
	"path/filepath"
	"strings"

	"github.com/chazu/fathom/host"
)

// Symbolic returns a Module whose service answers navigation queries from a
// plain identifier scan over the given file set: the definition of an
// identifier is its first occurrence, references are every occurrence. It
// carries no type information and is meant for hosts without a real
// compiler service, and for exercising the analyzer seam in tests.
func Symbolic(files func() []string) Module {
	return &symbolicModule{files: files}
}

type symbolicModule struct {
	files func() []string
}

func (m *symbolicModule) NewService(h host.Host) Service {
	return &symbolicService{h: h, files: m.files}
}

type symbolicService struct {
	h     host.Host
	files func() []string
}

func (s *symbolicService) text(fileName string) (string, bool) {
	snap := s.h.GetScriptSnapshot(fileName)
	if snap == nil {
		return "", false
	}
	return snap.GetText(0, snap.GetLength()), true
}

func (s *symbolicService) wordAt(fileName string, offset int) string {
	text, ok := s.text(fileName)
	if !ok {
		return ""
	}
	return identifierAt(text, offset)
}

// occurrences collects every occurrence of word across the file set, in file
// order, then occurrence order.
func (s *symbolicService) occurrences(word string) []Location {
	if word == "" {
		return nil
	}
	var locs []Location
	for _, name := range s.files() {
		text, ok := s.text(name)
		if !ok {
			continue
		}
		for _, start := range occurrencesIn(text, word) {
			locs = append(locs, Location{FileName: name, Start: start, End: start + len(word)})
		}
	}
	return locs
}

func (s *symbolicService) DefinitionAt(fileName string, offset int) ([]Location, error) {
	locs := s.occurrences(s.wordAt(fileName, offset))
	if len(locs) == 0 {
		return nil, nil
	}
	return locs[:1], nil
}

func (s *symbolicService) TypeDefinitionAt(fileName string, offset int) ([]Location, error) {
	return s.DefinitionAt(fileName, offset)
}

func (s *symbolicService) ImplementationsAt(fileName string, offset int) ([]Location, error) {
	locs := s.occurrences(s.wordAt(fileName, offset))
	if len(locs) <= 1 {
		return nil, nil
	}
	return locs[1:], nil
}

func (s *symbolicService) ReferencesAt(fileName string, offset int) ([]Location, error) {
	return s.occurrences(s.wordAt(fileName, offset)), nil
}

// FileReferences reports mentions of the file's base name (extension
// stripped) in the other files of the set.
func (s *symbolicService) FileReferences(fileName string) ([]Location, error) {
	base := filepath.Base(fileName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		return nil, nil
	}
	var locs []Location
	for _, loc := range s.occurrences(base) {
		if loc.FileName != fileName {
			locs = append(locs, loc)
		}
	}
	return locs, nil
}

func (s *symbolicService) RenameLocations(fileName string, offset int) ([]Location, error) {
	return s.occurrences(s.wordAt(fileName, offset)), nil
}

func (s *symbolicService) Dispose() {}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// identifierAt returns the identifier containing or immediately preceding
// offset, or "" if there is none.
func identifierAt(text string, offset int) string {
	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		return ""
	}
	start := offset
	for start > 0 && isIdentByte(text[start-1]) {
		start--
	}
	end := offset
	for end < len(text) && isIdentByte(text[end]) {
		end++
	}
	if start == end {
		return ""
	}
	return text[start:end]
}

// occurrencesIn returns the start offsets of whole-word occurrences of word.
func occurrencesIn(text, word string) []int {
	var starts []int
	for from := 0; ; {
		i := strings.Index(text[from:], word)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(word)
		leftOK := start == 0 || !isIdentByte(text[start-1])
		rightOK := end == len(text) || !isIdentByte(text[end])
		if leftOK && rightOK {
			starts = append(starts, start)
		}
		from = start + 1
	}
	return starts
}
