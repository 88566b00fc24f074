package linalg

import (
	"math"

	"github.com/arrgo-ml/arrgo/array"
)

type eigConfig struct {
	maxIter int
	tol     float64
}

// EigOption configures the QR iteration.
type EigOption func(*eigConfig)

// MaxIter caps the number of QR iterations (default 1000).
func MaxIter(n int) EigOption {
	return func(c *eigConfig) { c.maxIter = n }
}

// Tol sets the convergence threshold on the strict lower triangle
// (default 1e-10).
func Tol(tol float64) EigOption {
	return func(c *eigConfig) { c.tol = tol }
}

// eigenvalues runs the unshifted QR iteration A <- R·Q until the strict
// lower triangle falls below tol or the iteration budget is spent, and
// returns the final diagonal.
func eigenvalues(a []float64, n int, cfg eigConfig) ([]float64, error) {
	cur := append([]float64(nil), a...)

	for iter := 0; iter < cfg.maxIter; iter++ {
		// Singular iterates factor with zeroed dependent columns so
		// their zero eigenvalues land on the diagonal.
		q, r, err := qrFactor(cur, n, n, true)
		if err != nil {
			return nil, err
		}

		// A <- R·Q for the next iteration.
		next := make([]float64, n*n)
		for i := 0; i < n; i++ {
			for k := i; k < n; k++ { // R is upper triangular
				rik := r[i*n+k]
				if rik == 0 {
					continue
				}
				for j := 0; j < n; j++ {
					next[i*n+j] += rik * q[k*n+j]
				}
			}
		}
		cur = next

		converged := true
		for i := 1; i < n && converged; i++ {
			for j := 0; j < i; j++ {
				if math.Abs(cur[i*n+j]) > cfg.tol {
					converged = false
					break
				}
			}
		}
		if converged {
			break
		}
	}

	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		diag[i] = cur[i*n+i]
	}
	return diag, nil
}

// Eig computes eigenvalues by unshifted QR iteration and returns them
// as a 1-D array (the diagonal of the iteration limit).
//
// The iteration converges reliably only for matrices with real,
// well-separated eigenvalues, which includes symmetric matrices.
// Complex or clustered spectra may exhaust the iteration budget and
// return the best diagonal reached. Eigenvectors are not computed.
func Eig(a *array.NDArray, opts ...EigOption) (*array.NDArray, error) {
	data, n, err := asSquare("eig", a)
	if err != nil {
		return nil, err
	}
	cfg := eigConfig{maxIter: 1000, tol: pivotTol}
	for _, opt := range opts {
		opt(&cfg)
	}
	vals, err := eigenvalues(data, n, cfg)
	if err != nil {
		return nil, err
	}
	return array.FromFloat64s(vals, array.Shape{n})
}
