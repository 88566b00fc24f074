package linalg

import (
	"fmt"
	"math"

	"github.com/arrgo-ml/arrgo/array"
)

// luFactor performs LU decomposition with partial pivoting on a flat
// row-major n by n matrix. It returns L (unit lower triangular), U
// (upper triangular), the permutation as an index vector P with
// P·A = L·U, and the number of row swaps performed.
func luFactor(a []float64, n int) (l, u []float64, perm []int, swaps int, err error) {
	u = append([]float64(nil), a...)
	l = make([]float64, n*n)
	perm = make([]int, n)
	for i := range perm {
		perm[i] = i
		l[i*n+i] = 1
	}

	for k := 0; k < n-1; k++ {
		// Select the largest-magnitude pivot at or below row k.
		maxVal := math.Abs(u[k*n+k])
		maxRow := k
		for i := k + 1; i < n; i++ {
			if v := math.Abs(u[i*n+k]); v > maxVal {
				maxVal = v
				maxRow = i
			}
		}

		if maxRow != k {
			swapRows(u, n, k, maxRow)
			perm[k], perm[maxRow] = perm[maxRow], perm[k]
			// Swap the multipliers already stored left of column k.
			for j := 0; j < k; j++ {
				l[k*n+j], l[maxRow*n+j] = l[maxRow*n+j], l[k*n+j]
			}
			swaps++
		}

		if math.Abs(u[k*n+k]) < pivotTol {
			return nil, nil, nil, 0, fmt.Errorf("lu: matrix is singular or nearly singular: %w", array.ErrValue)
		}

		for i := k + 1; i < n; i++ {
			m := u[i*n+k] / u[k*n+k]
			l[i*n+k] = m
			for j := k + 1; j < n; j++ {
				u[i*n+j] -= m * u[k*n+j]
			}
			u[i*n+k] = 0
		}
	}

	return l, u, perm, swaps, nil
}

func swapRows(a []float64, n, i, j int) {
	for c := 0; c < n; c++ {
		a[i*n+c], a[j*n+c] = a[j*n+c], a[i*n+c]
	}
}

// LU decomposes a square matrix A into L, U and a permutation index
// vector P such that the rows of A reordered by P equal L·U. L has a
// unit diagonal; U is upper triangular. Singular matrices are an error.
func LU(a *array.NDArray) (l, u *array.NDArray, perm []int, err error) {
	data, n, err := asSquare("lu", a)
	if err != nil {
		return nil, nil, nil, err
	}
	lf, uf, perm, _, err := luFactor(data, n)
	if err != nil {
		return nil, nil, nil, err
	}
	l, err = array.FromFloat64s(lf, array.Shape{n, n})
	if err != nil {
		return nil, nil, nil, err
	}
	u, err = array.FromFloat64s(uf, array.Shape{n, n})
	if err != nil {
		return nil, nil, nil, err
	}
	return l, u, perm, nil
}

// Det computes the determinant as the product of U's diagonal times
// (-1)^swaps from the pivoted LU factorization.
//
// Det is the single routine that converts the singular-matrix error
// into a value: a singular input returns 0.0 instead of failing. Every
// sibling routine propagates the error.
func Det(a *array.NDArray) (float64, error) {
	data, n, err := asSquare("det", a)
	if err != nil {
		return 0, err
	}
	_, u, _, swaps, err := luFactor(data, n)
	if err != nil {
		return 0, nil // Singular matrix: determinant is exactly zero.
	}
	det := 1.0
	if swaps%2 == 1 {
		det = -1.0
	}
	for i := 0; i < n; i++ {
		det *= u[i*n+i]
	}
	return det, nil
}
