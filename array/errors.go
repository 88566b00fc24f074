package array

import "errors"

// Error taxonomy shared by every package in the module. All failures wrap
// one of these sentinels with context; classify with errors.Is.
var (
	// ErrValue covers shape mismatches, broadcast failures, invalid
	// reshape sizes and numerically ill-conditioned linalg inputs.
	ErrValue = errors.New("invalid value")

	// ErrIndex covers out-of-bounds element access and index arity
	// violations.
	ErrIndex = errors.New("index out of range")

	// ErrType covers invalid construction input and invalid index or
	// scalar types.
	ErrType = errors.New("invalid type")

	// ErrNotImplemented covers capability-registry misses and code paths
	// that are deliberate extension points (higher-rank slicing,
	// axis reductions beyond 2-D, N-D transpose permutations).
	ErrNotImplemented = errors.New("not implemented")
)
