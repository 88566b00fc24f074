package linalg

import (
	"math"
	"sort"

	"github.com/arrgo-ml/arrgo/array"
)

// SVD computes the singular values of an m by n matrix as the square
// roots of the eigenvalues of AᵀA, sorted descending.
//
// This is a partial SVD: the U and V factors are not computed.
func SVD(a *array.NDArray) (*array.NDArray, error) {
	data, m, n, err := asMatrix("svd", a)
	if err != nil {
		return nil, err
	}

	// Gram matrix AᵀA, n by n.
	ata := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum := 0.0
			for k := 0; k < m; k++ {
				sum += data[k*n+i] * data[k*n+j]
			}
			ata[i*n+j] = sum
		}
	}

	eigs, err := eigenvalues(ata, n, eigConfig{maxIter: 1000, tol: pivotTol})
	if err != nil {
		return nil, err
	}

	sv := make([]float64, len(eigs))
	for i, ev := range eigs {
		sv[i] = math.Sqrt(math.Max(0, ev))
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sv)))

	return array.FromFloat64s(sv, array.Shape{len(sv)})
}

// MatrixRank counts the singular values above tol; pass a non-positive
// tol for the default 1e-10.
func MatrixRank(a *array.NDArray, tol float64) (int, error) {
	if tol <= 0 {
		tol = pivotTol
	}
	sv, err := SVD(a)
	if err != nil {
		return 0, err
	}
	rank := 0
	for _, v := range sv.Float64s() {
		if v > tol {
			rank++
		}
	}
	return rank, nil
}
