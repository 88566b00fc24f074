package linalg

import (
	"fmt"
	"math"

	"github.com/arrgo-ml/arrgo/array"
)

// qrFactor runs modified Gram-Schmidt on a flat row-major m by n matrix
// with m >= n, producing Q (m by n, orthonormal columns) and R (n by n,
// upper triangular) with A = Q·R.
//
// With zeroDependent set, a column whose residual norm vanishes becomes
// a zero Q column with a zero R diagonal entry instead of an error;
// A = Q·R still holds exactly, and the QR iteration relies on this to
// surface the zero eigenvalues of singular matrices.
func qrFactor(a []float64, m, n int, zeroDependent bool) (q, r []float64, err error) {
	if m < n {
		return nil, nil, fmt.Errorf("qr: requires rows >= cols, got %d x %d: %w", m, n, array.ErrValue)
	}

	q = make([]float64, m*n)
	r = make([]float64, n*n)

	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			q[i*n+j] = a[i*n+j]
		}

		// Orthogonalize column j against every previous column.
		for k := 0; k < j; k++ {
			dot := 0.0
			for i := 0; i < m; i++ {
				dot += q[i*n+k] * q[i*n+j]
			}
			r[k*n+j] = dot
			for i := 0; i < m; i++ {
				q[i*n+j] -= dot * q[i*n+k]
			}
		}

		norm := 0.0
		for i := 0; i < m; i++ {
			norm += q[i*n+j] * q[i*n+j]
		}
		norm = math.Sqrt(norm)
		if norm < pivotTol {
			if !zeroDependent {
				return nil, nil, fmt.Errorf("qr: matrix has linearly dependent columns: %w", array.ErrValue)
			}
			// Discard the sub-tolerance residual; R[j][j] stays 0.
			for i := 0; i < m; i++ {
				q[i*n+j] = 0
			}
			continue
		}

		r[j*n+j] = norm
		for i := 0; i < m; i++ {
			q[i*n+j] /= norm
		}
	}

	return q, r, nil
}

// QR decomposes an m by n matrix with m >= n into Q with orthonormal
// columns and upper-triangular R such that A = Q·R. Linearly dependent
// columns are an error.
func QR(a *array.NDArray) (q, r *array.NDArray, err error) {
	data, m, n, err := asMatrix("qr", a)
	if err != nil {
		return nil, nil, err
	}
	qf, rf, err := qrFactor(data, m, n, false)
	if err != nil {
		return nil, nil, err
	}
	q, err = array.FromFloat64s(qf, array.Shape{m, n})
	if err != nil {
		return nil, nil, err
	}
	r, err = array.FromFloat64s(rf, array.Shape{n, n})
	if err != nil {
		return nil, nil, err
	}
	return q, r, nil
}
