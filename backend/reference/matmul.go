package reference

import (
	"fmt"

	"github.com/arrgo-ml/arrgo/array"
)

// matmulShapes validates the 2-D matrix product operands.
func matmulShapes(name string, a, b *array.NDArray) (m, k, n int, err error) {
	if a.Rank() != 2 || b.Rank() != 2 {
		return 0, 0, 0, fmt.Errorf("%s: expected 2-D operands, got ranks %d and %d: %w",
			name, a.Rank(), b.Rank(), array.ErrValue)
	}
	m, k = a.Shape()[0], a.Shape()[1]
	if b.Shape()[0] != k {
		return 0, 0, 0, fmt.Errorf("%s: shape mismatch %v @ %v: %w",
			name, a.Shape(), b.Shape(), array.ErrValue)
	}
	return m, k, b.Shape()[1], nil
}

func matmulLoop[T number](c, a, b []T, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum T
			for kk := 0; kk < k; kk++ {
				sum += a[i*k+kk] * b[kk*n+j]
			}
			c[i*n+j] = sum
		}
	}
}

func matmul(a, b *array.NDArray) (*array.NDArray, error) {
	if a.DType() != b.DType() {
		return nil, fmt.Errorf("matmul: operands have dtypes %s and %s: %w",
			a.DType(), b.DType(), array.ErrType)
	}
	m, k, n, err := matmulShapes("matmul", a, b)
	if err != nil {
		return nil, err
	}
	out, err := array.Empty(array.Shape{m, n}, a.DType())
	if err != nil {
		return nil, err
	}
	switch a.DType() {
	case array.Float64:
		matmulLoop(out.Float64s(), a.Float64s(), b.Float64s(), m, k, n)
	case array.Float32:
		matmulLoop(out.Float32s(), a.Float32s(), b.Float32s(), m, k, n)
	case array.Int64:
		matmulLoop(out.Int64s(), a.Int64s(), b.Int64s(), m, k, n)
	case array.Int32:
		matmulLoop(out.Int32s(), a.Int32s(), b.Int32s(), m, k, n)
	default:
		return nil, fmt.Errorf("matmul: unsupported dtype %s: %w", a.DType(), array.ErrType)
	}
	return out, nil
}

// dot handles the four rank combinations: 1-D·1-D yields a scalar,
// 1-D·2-D and 2-D·1-D contract the shared axis, 2-D·2-D is matmul.
func dot(a, b *array.NDArray) (*array.NDArray, error) {
	switch {
	case a.Rank() == 1 && b.Rank() == 1:
		if a.Shape()[0] != b.Shape()[0] {
			return nil, fmt.Errorf("dot: shape mismatch %v · %v: %w",
				a.Shape(), b.Shape(), array.ErrValue)
		}
		av, bv := a.Float64Values(), b.Float64Values()
		sum := 0.0
		for i := range av {
			sum += av[i] * bv[i]
		}
		return array.FromFloat64s([]float64{sum}, array.Shape{})
	case a.Rank() == 1 && b.Rank() == 2:
		am, err := a.Reshape(1, a.Shape()[0])
		if err != nil {
			return nil, err
		}
		out, err := matmul(am, b)
		if err != nil {
			return nil, err
		}
		return out.Reshape(out.Shape()[1])
	case a.Rank() == 2 && b.Rank() == 1:
		bm, err := b.Reshape(b.Shape()[0], 1)
		if err != nil {
			return nil, err
		}
		out, err := matmul(a, bm)
		if err != nil {
			return nil, err
		}
		return out.Reshape(out.Shape()[0])
	case a.Rank() == 2 && b.Rank() == 2:
		return matmul(a, b)
	default:
		return nil, fmt.Errorf("dot: unsupported ranks %d and %d: %w",
			a.Rank(), b.Rank(), array.ErrValue)
	}
}
