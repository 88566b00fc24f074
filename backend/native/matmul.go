package native

import (
	"fmt"
	"unsafe"

	"github.com/arrgo-ml/arrgo/array"
)

// blockSize is sized so three float64 tiles fit comfortably in L1.
const blockSize = 64

// matmulBlockedFloat64 computes C += A·B with i-k-j tiling. Row slices
// are taken once per tile through unsafe.Add to avoid repeated bounds
// checks in the hot loop.
func matmulBlockedFloat64(c, a, b []float64, m, k, n int) {
	ap := unsafe.Pointer(&a[0])
	bp := unsafe.Pointer(&b[0])
	cp := unsafe.Pointer(&c[0])
	for ii := 0; ii < m; ii += blockSize {
		iMax := min(ii+blockSize, m)
		for kk := 0; kk < k; kk += blockSize {
			kMax := min(kk+blockSize, k)
			for jj := 0; jj < n; jj += blockSize {
				jMax := min(jj+blockSize, n)
				for i := ii; i < iMax; i++ {
					arow := unsafe.Slice((*float64)(unsafe.Add(ap, uintptr(i*k)*8)), k)
					crow := unsafe.Slice((*float64)(unsafe.Add(cp, uintptr(i*n)*8)), n)
					for kx := kk; kx < kMax; kx++ {
						aik := arow[kx]
						if aik == 0 {
							continue
						}
						brow := unsafe.Slice((*float64)(unsafe.Add(bp, uintptr(kx*n)*8)), n)
						for j := jj; j < jMax; j++ {
							crow[j] += aik * brow[j]
						}
					}
				}
			}
		}
	}
}

func matmulBlockedFloat32(c, a, b []float32, m, k, n int) {
	for ii := 0; ii < m; ii += blockSize {
		iMax := min(ii+blockSize, m)
		for kk := 0; kk < k; kk += blockSize {
			kMax := min(kk+blockSize, k)
			for i := ii; i < iMax; i++ {
				crow := c[i*n : (i+1)*n]
				for kx := kk; kx < kMax; kx++ {
					aik := a[i*k+kx]
					if aik == 0 {
						continue
					}
					brow := b[kx*n : (kx+1)*n]
					for j, bv := range brow {
						crow[j] += aik * bv
					}
				}
			}
		}
	}
}

func matmulNaiveInt64(c, a, b []int64, m, k, n int) {
	for i := 0; i < m; i++ {
		for kk := 0; kk < k; kk++ {
			aik := a[i*k+kk]
			if aik == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				c[i*n+j] += aik * b[kk*n+j]
			}
		}
	}
}

func matmulNaiveInt32(c, a, b []int32, m, k, n int) {
	for i := 0; i < m; i++ {
		for kk := 0; kk < k; kk++ {
			aik := a[i*k+kk]
			if aik == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				c[i*n+j] += aik * b[kk*n+j]
			}
		}
	}
}

func matmul(a, b *array.NDArray) (*array.NDArray, error) {
	if a.DType() != b.DType() {
		return nil, fmt.Errorf("matmul: operands have dtypes %s and %s: %w",
			a.DType(), b.DType(), array.ErrType)
	}
	if a.Rank() != 2 || b.Rank() != 2 {
		return nil, fmt.Errorf("matmul: expected 2-D operands, got ranks %d and %d: %w",
			a.Rank(), b.Rank(), array.ErrValue)
	}
	m, k := a.Shape()[0], a.Shape()[1]
	if b.Shape()[0] != k {
		return nil, fmt.Errorf("matmul: shape mismatch %v @ %v: %w",
			a.Shape(), b.Shape(), array.ErrValue)
	}
	n := b.Shape()[1]

	out, err := array.Empty(array.Shape{m, n}, a.DType())
	if err != nil {
		return nil, err
	}
	if m == 0 || k == 0 || n == 0 {
		return out, nil
	}
	switch a.DType() {
	case array.Float64:
		matmulBlockedFloat64(out.Float64s(), a.Float64s(), b.Float64s(), m, k, n)
	case array.Float32:
		matmulBlockedFloat32(out.Float32s(), a.Float32s(), b.Float32s(), m, k, n)
	case array.Int64:
		matmulNaiveInt64(out.Int64s(), a.Int64s(), b.Int64s(), m, k, n)
	case array.Int32:
		matmulNaiveInt32(out.Int32s(), a.Int32s(), b.Int32s(), m, k, n)
	default:
		return nil, fmt.Errorf("matmul: unsupported dtype %s: %w", a.DType(), array.ErrType)
	}
	return out, nil
}

// dotFlat is an unrolled float64 dot product with four independent
// accumulators.
func dotFlat(a, b []float64) float64 {
	var s0, s1, s2, s3 float64
	n := len(a)
	i := 0
	for ; i+4 <= n; i += 4 {
		s0 += a[i] * b[i]
		s1 += a[i+1] * b[i+1]
		s2 += a[i+2] * b[i+2]
		s3 += a[i+3] * b[i+3]
	}
	for ; i < n; i++ {
		s0 += a[i] * b[i]
	}
	return s0 + s1 + s2 + s3
}

func dot(a, b *array.NDArray) (*array.NDArray, error) {
	switch {
	case a.Rank() == 1 && b.Rank() == 1:
		if a.Shape()[0] != b.Shape()[0] {
			return nil, fmt.Errorf("dot: shape mismatch %v · %v: %w",
				a.Shape(), b.Shape(), array.ErrValue)
		}
		return array.FromFloat64s([]float64{dotFlat(a.Float64Values(), b.Float64Values())}, array.Shape{})
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
