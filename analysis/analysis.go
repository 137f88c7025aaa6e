// Package analysis defines the seam between the language-service runtime and
// an underlying code analyzer (a compiler service). The runtime consumes the
// Service interface opaquely; hosts that can supply an analyzer advertise a
// Module from which the service is constructed.
package analysis

import "github.com/chazu/fathom/host"

// Location is a byte-offset range within a file.
type Location struct {
	FileName string
	Start    int
	End      int
}

// Service answers navigation queries against the host's current file state.
// All offsets are byte offsets into the file's snapshot text.
type Service interface {
	DefinitionAt(fileName string, offset int) ([]Location, error)
	TypeDefinitionAt(fileName string, offset int) ([]Location, error)
	ImplementationsAt(fileName string, offset int) ([]Location, error)
	ReferencesAt(fileName string, offset int) ([]Location, error)
	FileReferences(fileName string) ([]Location, error)
	RenameLocations(fileName string, offset int) ([]Location, error)

	// Dispose releases any resources held by the service. It must be safe
	// to call more than once.
	Dispose()
}

// Module constructs a Service bound to a host.
type Module interface {
	NewService(h host.Host) Service
}
