// Package backend implements the runtime compute-backend selector, the
// static capability registry and the fail-fast kernel dispatcher that
// every numeric operation routes through.
//
// Backends register their kernels at package init (the database/sql
// driver pattern); the registry is never populated dynamically after
// startup. Dispatch checks the capability table for the exact
// (operation, backend) pair and fails with an ErrNotImplemented error on
// a miss. It never retries with a different backend.
package backend

import (
	"fmt"

	"github.com/arrgo-ml/arrgo/array"
)

// ID identifies a compute backend.
type ID int

// The three interchangeable backends. Reference implements every
// operation with straightforward loops; Scalar carries a subset of
// hand-optimized scalar kernels; Native carries only the throughput
// critical matrix kernels.
const (
	Reference ID = iota
	Scalar
	Native
	numBackends
)

// String returns the backend's canonical name.
func (id ID) String() string {
	switch id {
	case Reference:
		return "reference"
	case Scalar:
		return "scalar"
	case Native:
		return "native"
	default:
		return "unknown"
	}
}

// Parse resolves a backend by name.
func Parse(name string) (ID, error) {
	switch name {
	case "reference":
		return Reference, nil
	case "scalar":
		return Scalar, nil
	case "native":
		return Native, nil
	default:
		return 0, fmt.Errorf("unknown backend %q (valid: reference, scalar, native): %w",
			name, array.ErrValue)
	}
}

// active is the process-wide backend selector. It carries no
// synchronization; callers that switch backends from multiple goroutines
// must serialize externally.
var active = Reference

// Set selects the active backend by name.
func Set(name string) error {
	id, err := Parse(name)
	if err != nil {
		return err
	}
	active = id
	return nil
}

// Use selects the active backend by ID.
func Use(id ID) {
	active = id
}

// Active returns the currently selected backend.
func Active() ID {
	return active
}
