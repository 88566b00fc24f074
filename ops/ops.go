// Package ops exposes the dispatched array operations: elementwise
// arithmetic, unary maps and reductions. Every entry point resolves the
// active backend, consults the capability registry and invokes exactly
// that backend's kernel; a capability miss surfaces as an error and is
// never rescued by another backend.
package ops

import (
	// Backend kernel sets register themselves at init, driver-style.
	_ "github.com/arrgo-ml/arrgo/backend/native"
	_ "github.com/arrgo-ml/arrgo/backend/reference"
	_ "github.com/arrgo-ml/arrgo/backend/scalar"
)
