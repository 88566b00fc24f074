package linalg_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrgo-ml/arrgo/array"
	"github.com/arrgo-ml/arrgo/backend"
	"github.com/arrgo-ml/arrgo/linalg"
)

func matrix(t *testing.T, data []float64, rows, cols int) *array.NDArray {
	t.Helper()
	a, err := array.FromFloat64s(data, array.Shape{rows, cols})
	require.NoError(t, err)
	return a
}

func vector(t *testing.T, data []float64) *array.NDArray {
	t.Helper()
	a, err := array.FromFloat64s(data, array.Shape{len(data)})
	require.NoError(t, err)
	return a
}

// mulFlat multiplies two flat row-major matrices for reconstruction
// checks without involving the dispatched matmul under test elsewhere.
func mulFlat(a, b []float64, m, k, n int) []float64 {
	c := make([]float64, m*n)
	for i := 0; i < m; i++ {
		for kk := 0; kk < k; kk++ {
			for j := 0; j < n; j++ {
				c[i*n+j] += a[i*k+kk] * b[kk*n+j]
			}
		}
	}
	return c
}

func TestLUReconstruction(t *testing.T) {
	a := matrix(t, []float64{
		2, 1, 1,
		4, -6, 0,
		-2, 7, 2,
	}, 3, 3)

	l, u, perm, err := linalg.LU(a)
	require.NoError(t, err)
	require.Len(t, perm, 3)

	lf, uf := l.Float64s(), u.Float64s()

	// L is unit lower triangular, U upper triangular.
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1, lf[i*3+i], 1e-12)
		for j := i + 1; j < 3; j++ {
			assert.InDelta(t, 0, lf[i*3+j], 1e-12)
			assert.InDelta(t, 0, uf[j*3+i], 1e-12)
		}
	}

	// Rows of A reordered by perm must equal L·U.
	lu := mulFlat(lf, uf, 3, 3, 3)
	src := a.Float64s()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, src[perm[i]*3+j], lu[i*3+j], 1e-8, "row %d col %d", i, j)
		}
	}
}

func TestLUSingular(t *testing.T) {
	// A zero pivot column that partial pivoting cannot repair.
	a := matrix(t, []float64{
		0, 1, 2,
		0, 3, 4,
		0, 5, 6,
	}, 3, 3)

	_, _, _, err := linalg.LU(a)
	require.Error(t, err)
	assert.ErrorIs(t, err, array.ErrValue)
}

func TestLUNonSquare(t *testing.T) {
	a := matrix(t, make([]float64, 6), 2, 3)
	_, _, _, err := linalg.LU(a)
	assert.ErrorIs(t, err, array.ErrValue)
}

func TestDet(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		eye, err := array.Eye(n, array.Float64)
		require.NoError(t, err)
		d, err := linalg.Det(eye)
		require.NoError(t, err)
		assert.InDelta(t, 1, d, 1e-12, "det(I_%d)", n)
	}

	d, err := linalg.Det(matrix(t, []float64{3, 8, 4, 6}, 2, 2))
	require.NoError(t, err)
	assert.InDelta(t, -14, d, 1e-10)

	// Rank-deficient input yields determinant zero, not an error.
	d, err = linalg.Det(matrix(t, []float64{1, 2, 2, 4}, 2, 2))
	require.NoError(t, err)
	assert.InDelta(t, 0, d, 1e-12)

	_, err = linalg.Det(matrix(t, make([]float64, 6), 2, 3))
	assert.ErrorIs(t, err, array.ErrValue)
}

func TestSolve(t *testing.T) {
	a := matrix(t, []float64{3, 1, 1, 2}, 2, 2)
	b := vector(t, []float64{10, 8})

	x, err := linalg.Solve(a, b)
	require.NoError(t, err)
	assert.Equal(t, array.Shape{2}, x.Shape())
	assert.InDeltaSlice(t, []float64{2.4, 2.8}, x.Float64s(), 1e-10)

	// Verify by substitution.
	xf := x.Float64s()
	assert.InDelta(t, 10, 3*xf[0]+1*xf[1], 1e-10)
	assert.InDelta(t, 8, 1*xf[0]+2*xf[1], 1e-10)

	x, err = linalg.Solve(a, vector(t, []float64{9, 8}))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 3}, x.Float64s(), 1e-10)
}

func TestSolveErrors(t *testing.T) {
	a := matrix(t, []float64{3, 1, 1, 2}, 2, 2)

	_, err := linalg.Solve(a, vector(t, []float64{1, 2, 3}))
	assert.ErrorIs(t, err, array.ErrValue)

	singular := matrix(t, []float64{1, 2, 2, 4}, 2, 2)
	_, err = linalg.Solve(singular, vector(t, []float64{1, 2}))
	assert.ErrorIs(t, err, array.ErrValue)
}

func TestInv(t *testing.T) {
	a := matrix(t, []float64{4, 7, 2, 6}, 2, 2)

	inv, err := linalg.Inv(a)
	require.NoError(t, err)

	prod := mulFlat(a.Float64s(), inv.Float64s(), 2, 2, 2)
	want := []float64{1, 0, 0, 1}
	assert.InDeltaSlice(t, want, prod, 1e-10)

	_, err = linalg.Inv(matrix(t, []float64{1, 2, 2, 4}, 2, 2))
	assert.ErrorIs(t, err, array.ErrValue)
}

func TestQR(t *testing.T) {
	a := matrix(t, []float64{
		1, -1, 4,
		1, 4, -2,
		1, 4, 2,
		1, -1, 0,
	}, 4, 3)

	q, r, err := linalg.QR(a)
	require.NoError(t, err)
	assert.Equal(t, array.Shape{4, 3}, q.Shape())
	assert.Equal(t, array.Shape{3, 3}, r.Shape())

	qf, rf := q.Float64s(), r.Float64s()

	// R upper triangular with positive diagonal.
	for i := 0; i < 3; i++ {
		assert.Greater(t, rf[i*3+i], 0.0)
		for j := 0; j < i; j++ {
			assert.InDelta(t, 0, rf[i*3+j], 1e-12)
		}
	}

	// QᵀQ = I.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dot := 0.0
			for k := 0; k < 4; k++ {
				dot += qf[k*3+i] * qf[k*3+j]
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, dot, 1e-10)
		}
	}

	// Q·R = A.
	assert.InDeltaSlice(t, a.Float64s(), mulFlat(qf, rf, 4, 3, 3), 1e-10)
}

func TestQRErrors(t *testing.T) {
	wide := matrix(t, make([]float64, 6), 2, 3)
	_, _, err := linalg.QR(wide)
	assert.ErrorIs(t, err, array.ErrValue)

	dependent := matrix(t, []float64{
		1, 2,
		2, 4,
		3, 6,
	}, 3, 2)
	_, _, err = linalg.QR(dependent)
	require.Error(t, err)
	assert.ErrorIs(t, err, array.ErrValue)
	assert.Contains(t, err.Error(), "linearly dependent")
}

func TestCholesky(t *testing.T) {
	a := matrix(t, []float64{
		4, 12, -16,
		12, 37, -43,
		-16, -43, 98,
	}, 3, 3)

	l, err := linalg.Cholesky(a)
	require.NoError(t, err)

	lf := l.Float64s()
	// Known factor of this classic example.
	assert.InDeltaSlice(t, []float64{
		2, 0, 0,
		6, 1, 0,
		-8, 5, 3,
	}, lf, 1e-10)

	// L·Lᵀ = A.
	lt := make([]float64, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			lt[j*3+i] = lf[i*3+j]
		}
	}
	assert.InDeltaSlice(t, a.Float64s(), mulFlat(lf, lt, 3, 3, 3), 1e-10)
}

func TestCholeskyErrors(t *testing.T) {
	notPD := matrix(t, []float64{1, 2, 2, 1}, 2, 2)
	_, err := linalg.Cholesky(notPD)
	require.Error(t, err)
	assert.ErrorIs(t, err, array.ErrValue)
	assert.Contains(t, err.Error(), "positive definite")

	asym := matrix(t, []float64{1, 2, 3, 4}, 2, 2)
	_, err = linalg.Cholesky(asym)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symmetric")
}

func TestEigSymmetric(t *testing.T) {
	a := matrix(t, []float64{2, 1, 1, 2}, 2, 2)

	vals, err := linalg.Eig(a)
	require.NoError(t, err)
	assert.Equal(t, array.Shape{2}, vals.Shape())

	got := append([]float64(nil), vals.Float64s()...)
	sort.Float64s(got)
	assert.InDeltaSlice(t, []float64{1, 3}, got, 1e-8)
}

func TestEigDiagonal(t *testing.T) {
	a := matrix(t, []float64{
		5, 0, 0,
		0, -2, 0,
		0, 0, 7,
	}, 3, 3)

	vals, err := linalg.Eig(a, linalg.MaxIter(50))
	require.NoError(t, err)

	got := append([]float64(nil), vals.Float64s()...)
	sort.Float64s(got)
	assert.InDeltaSlice(t, []float64{-2, 5, 7}, got, 1e-8)
}

func TestSVD(t *testing.T) {
	a := matrix(t, []float64{3, 0, 0, 4}, 2, 2)

	sv, err := linalg.SVD(a)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{4, 3}, sv.Float64s(), 1e-8)

	// Singular values come out sorted descending for any input.
	b := matrix(t, []float64{
		1, 0,
		0, 2,
		0, 0,
	}, 3, 2)
	sv, err = linalg.SVD(b)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 1}, sv.Float64s(), 1e-8)
}

// Rank-deficient input is the normal case for SVD and rank, not an
// error: zero singular values must come out as zeros.
func TestSVDRankDeficient(t *testing.T) {
	a := matrix(t, []float64{1, 2, 2, 4}, 2, 2)
	sv, err := linalg.SVD(a)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{5, 0}, sv.Float64s(), 1e-8)

	zero := matrix(t, make([]float64, 4), 2, 2)
	sv, err = linalg.SVD(zero)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0}, sv.Float64s(), 1e-12)
}

func TestEigSingularSymmetric(t *testing.T) {
	a := matrix(t, []float64{1, 2, 2, 4}, 2, 2)

	vals, err := linalg.Eig(a)
	require.NoError(t, err)

	got := append([]float64(nil), vals.Float64s()...)
	sort.Float64s(got)
	assert.InDeltaSlice(t, []float64{0, 5}, got, 1e-8)
}

func TestMatrixRank(t *testing.T) {
	full := matrix(t, []float64{1, 2, 3, 4}, 2, 2)
	r, err := linalg.MatrixRank(full, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, r)

	deficient := matrix(t, []float64{1, 2, 2, 4}, 2, 2)
	r, err = linalg.MatrixRank(deficient, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, r)

	zero := matrix(t, make([]float64, 4), 2, 2)
	r, err = linalg.MatrixRank(zero, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, r)
}

func TestMatMulAcrossBackends(t *testing.T) {
	t.Cleanup(func() { backend.Use(backend.Reference) })

	a := matrix(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	b := matrix(t, []float64{7, 8, 9, 10, 11, 12}, 3, 2)
	want := []float64{58, 64, 139, 154}

	for _, id := range []backend.ID{backend.Reference, backend.Scalar, backend.Native} {
		backend.Use(id)
		out, err := linalg.MatMul(a, b)
		require.NoError(t, err, "backend %s", id)
		assert.Equal(t, array.Shape{2, 2}, out.Shape())
		assert.InDeltaSlice(t, want, out.Float64s(), 1e-12, "backend %s", id)
	}
}

func TestMatMulShapeMismatch(t *testing.T) {
	a := matrix(t, make([]float64, 6), 2, 3)
	b := matrix(t, make([]float64, 8), 4, 2)

	_, err := linalg.MatMul(a, b)
	assert.ErrorIs(t, err, array.ErrValue)
}

func TestDot(t *testing.T) {
	t.Cleanup(func() { backend.Use(backend.Reference) })

	u := vector(t, []float64{1, 2, 3})
	v := vector(t, []float64{4, 5, 6})

	for _, id := range []backend.ID{backend.Reference, backend.Native} {
		backend.Use(id)
		out, err := linalg.Dot(u, v)
		require.NoError(t, err, "backend %s", id)
		assert.Equal(t, array.Shape{}, out.Shape())
		assert.InDelta(t, 32, out.Float64s()[0], 1e-12, "backend %s", id)
	}

	backend.Use(backend.Reference)
	m := matrix(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	mv, err := linalg.Dot(m, u)
	require.NoError(t, err)
	assert.Equal(t, array.Shape{2}, mv.Shape())
	assert.InDeltaSlice(t, []float64{14, 32}, mv.Float64s(), 1e-12)

	vm, err := linalg.Dot(u, matrix(t, []float64{1, 0, 0, 1, 1, 1}, 3, 2))
	require.NoError(t, err)
	assert.Equal(t, array.Shape{2}, vm.Shape())
	assert.InDeltaSlice(t, []float64{4, 5}, vm.Float64s(), 1e-12)

	// Integer operands promote and still multiply exactly.
	iu, err := array.FromInt64s([]int64{1, 2}, array.Shape{2})
	require.NoError(t, err)
	out, err := linalg.Dot(iu, vector(t, []float64{0.5, 0.25}))
	require.NoError(t, err)
	assert.InDelta(t, 1, out.Float64s()[0], 1e-12)
}

func TestLUSingularDuringElimination(t *testing.T) {
	// Rank one: every row collapses after the first elimination step.
	a := matrix(t, []float64{
		1, 2, 3,
		2, 4, 6,
		3, 6, 9,
	}, 3, 3)

	_, _, _, err := linalg.LU(a)
	require.Error(t, err)
	assert.ErrorIs(t, err, array.ErrValue)
}
