// Package empdir defines the employee directory contract shared by
// every transport.
//
// A single in-memory directory is served over two independent
// transports: gRPC with a deterministic binary codec (package
// dirgrpc) and JSON over HTTP (package rest). Both hand requests to
// an implementation of [Directory] and expect records or typed
// errors back.
package empdir

import (
	"context"

	"github.com/gauravscripts/empdir/types"
)

// Directory is the core interface every directory service implements.
//
// Implementations guarantee:
//  1. AddEmployee ignores the candidate's ID and returns the stored
//     record with a freshly assigned, never reused ID.
//  2. GetEmployee returns a *NotFoundError for unknown IDs, never a
//     zero-value record.
//  3. All methods are safe for concurrent use.
type Directory interface {
	// GetEmployee returns the record stored under id.
	GetEmployee(ctx context.Context, id int32) (types.Employee, error)

	// AddEmployee stores a copy of e under a new ID.
	//
	// Any ID present on e is ignored. The returned record carries the
	// assigned ID and the join date the store recorded.
	AddEmployee(ctx context.Context, e types.Employee) (types.Employee, error)

	// ListEmployees returns a snapshot of every stored record.
	//
	// The order is stable for a given directory state. Mutating the
	// returned slice never affects the directory.
	ListEmployees(ctx context.Context) ([]types.Employee, error)
}

// Greeter is the liveness service served next to the directory on the
// binary transport.
type Greeter interface {
	SayHello(ctx context.Context, name string) (string, error)
}

// Connection represents a transport-agnostic connection to a
// directory. The gRPC client, the REST client and the in-process
// server all implement it.
type Connection interface {
	Directory

	// Close terminates the connection.
	Close() error
}
