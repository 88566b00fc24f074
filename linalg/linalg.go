// Package linalg implements the dense decomposition and solver suite:
// LU with partial pivoting, QR via modified Gram-Schmidt, Cholesky,
// eigenvalues by unshifted QR iteration, an eigen-based singular value
// approximation, and the solve/inv/det/rank entry points built on them.
//
// Decomposition routines run on the reference numeric algorithms over
// plain float64 buffers regardless of the active backend; only the
// matmul and dot entry points are backend-dispatched.
package linalg

import (
	"fmt"

	"github.com/arrgo-ml/arrgo/array"
)

// pivotTol is the threshold below which a post-pivot diagonal entry, a
// Gram-Schmidt column norm or a singular value is treated as zero.
const pivotTol = 1e-10

// asMatrix validates a 2-D operand and returns its elements as a flat
// row-major float64 slice together with its dimensions.
func asMatrix(name string, a *array.NDArray) ([]float64, int, int, error) {
	if a.Rank() != 2 {
		return nil, 0, 0, fmt.Errorf("%s: expected a 2-D array, got rank %d: %w",
			name, a.Rank(), array.ErrValue)
	}
	return a.Float64Values(), a.Shape()[0], a.Shape()[1], nil
}

// asSquare is asMatrix restricted to square operands.
func asSquare(name string, a *array.NDArray) ([]float64, int, error) {
	data, m, n, err := asMatrix(name, a)
	if err != nil {
		return nil, 0, err
	}
	if m != n {
		return nil, 0, fmt.Errorf("%s: expected a square matrix, got %v: %w",
			name, a.Shape(), array.ErrValue)
	}
	return data, n, nil
}

func asVector(name string, a *array.NDArray, want int) ([]float64, error) {
	if a.Rank() != 1 {
		return nil, fmt.Errorf("%s: expected a 1-D array, got rank %d: %w",
			name, a.Rank(), array.ErrValue)
	}
	if a.Shape()[0] != want {
		return nil, fmt.Errorf("%s: dimension mismatch: got %d elements, expected %d: %w",
			name, a.Shape()[0], want, array.ErrValue)
	}
	return a.Float64Values(), nil
}
