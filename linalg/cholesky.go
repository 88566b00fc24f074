package linalg

import (
	"fmt"
	"math"

	"github.com/arrgo-ml/arrgo/array"
)

// symTol is the tolerance for the symmetry precheck.
const symTol = 1e-10

// Cholesky decomposes a symmetric positive-definite matrix into a lower
// triangular L with A = L·Lᵀ, using the Cholesky-Banachiewicz
// recurrence. Asymmetric or non-positive-definite input is an error.
func Cholesky(a *array.NDArray) (*array.NDArray, error) {
	data, n, err := asSquare("cholesky", a)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(data[i*n+j]-data[j*n+i]) > symTol {
				return nil, fmt.Errorf("cholesky: matrix must be symmetric: %w", array.ErrValue)
			}
		}
	}

	l := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := 0.0
			for k := 0; k < j; k++ {
				sum += l[i*n+k] * l[j*n+k]
			}
			if i == j {
				v := data[i*n+i] - sum
				if v <= 0 {
					return nil, fmt.Errorf("cholesky: matrix is not positive definite: %w", array.ErrValue)
				}
				l[i*n+j] = math.Sqrt(v)
			} else {
				l[i*n+j] = (data[i*n+j] - sum) / l[j*n+j]
			}
		}
	}

	return array.FromFloat64s(l, array.Shape{n, n})
}
