package linalg

import (
	"fmt"
	"math"

	"github.com/arrgo-ml/arrgo/array"
)

// solveFactored solves Ax = b given A's pivoted LU factors: permute b,
// forward-substitute Ly = Pb, back-substitute Ux = y. A vanishing
// diagonal entry of U means the factorization's pivot checks could not
// see the singularity; it is rejected here rather than divided through.
func solveFactored(l, u []float64, perm []int, b []float64, n int) ([]float64, error) {
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		y[i] = b[perm[i]]
		for j := 0; j < i; j++ {
			y[i] -= l[i*n+j] * y[j]
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		x[i] = y[i]
		for j := i + 1; j < n; j++ {
			x[i] -= u[i*n+j] * x[j]
		}
		if math.Abs(u[i*n+i]) < pivotTol {
			return nil, fmt.Errorf("solve: matrix is singular or nearly singular: %w", array.ErrValue)
		}
		x[i] /= u[i*n+i]
	}
	return x, nil
}

// Solve solves the linear system Ax = b for a square A and a 1-D right
// hand side of matching length. Singular systems are an error.
func Solve(a, b *array.NDArray) (*array.NDArray, error) {
	aData, n, err := asSquare("solve", a)
	if err != nil {
		return nil, err
	}
	bData, err := asVector("solve", b, n)
	if err != nil {
		return nil, err
	}
	l, u, perm, _, err := luFactor(aData, n)
	if err != nil {
		return nil, err
	}
	x, err := solveFactored(l, u, perm, bData, n)
	if err != nil {
		return nil, err
	}
	return array.FromFloat64s(x, array.Shape{n})
}

// Inv computes the matrix inverse by solving against each column of
// the identity with a single shared factorization.
func Inv(a *array.NDArray) (*array.NDArray, error) {
	aData, n, err := asSquare("inv", a)
	if err != nil {
		return nil, err
	}
	l, u, perm, _, err := luFactor(aData, n)
	if err != nil {
		return nil, err
	}

	inv := make([]float64, n*n)
	e := make([]float64, n)
	for col := 0; col < n; col++ {
		for i := range e {
			e[i] = 0
		}
		e[col] = 1
		x, err := solveFactored(l, u, perm, e, n)
		if err != nil {
			return nil, err
		}
		for row := 0; row < n; row++ {
			inv[row*n+col] = x[row]
		}
	}
	return array.FromFloat64s(inv, array.Shape{n, n})
}
