package scalar

import (
	"fmt"
	"math"

	"github.com/arrgo-ml/arrgo/array"
	"github.com/arrgo-ml/arrgo/backend"
)

type number interface {
	~int32 | ~int64 | ~float32 | ~float64
}

// addUnrolled and mulUnrolled process four elements per iteration to
// help the compiler keep accumulators in registers.
func addUnrolled[T number](dst, a, b []T) {
	n := len(dst)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = a[i] + b[i]
		dst[i+1] = a[i+1] + b[i+1]
		dst[i+2] = a[i+2] + b[i+2]
		dst[i+3] = a[i+3] + b[i+3]
	}
	for ; i < n; i++ {
		dst[i] = a[i] + b[i]
	}
}

func mulUnrolled[T number](dst, a, b []T) {
	n := len(dst)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = a[i] * b[i]
		dst[i+1] = a[i+1] * b[i+1]
		dst[i+2] = a[i+2] * b[i+2]
		dst[i+3] = a[i+3] * b[i+3]
	}
	for ; i < n; i++ {
		dst[i] = a[i] * b[i]
	}
}

func broadcastLoop[T number](dst, a, b []T, aShape, bShape, outShape array.Shape, f func(T, T) T) {
	outStrides := outShape.Strides()
	aStrides := array.BroadcastStrides(aShape, outShape)
	bStrides := array.BroadcastStrides(bShape, outShape)
	for i := range dst {
		dst[i] = f(a[array.FlatIndex(i, outStrides, aStrides)], b[array.FlatIndex(i, outStrides, bStrides)])
	}
}

func binaryOp(name string, a, b *array.NDArray,
	fast func(dst, a, b []float64), fastF32 func(dst, a, b []float32),
	fastI64 func(dst, a, b []int64), fastI32 func(dst, a, b []int32),
	ff func(x, y float64) float64) (*array.NDArray, error) {

	if a.DType() != b.DType() {
		return nil, fmt.Errorf("%s: operands have dtypes %s and %s: %w",
			name, a.DType(), b.DType(), array.ErrType)
	}
	outShape, _, err := array.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	out, err := array.Empty(outShape, a.DType())
	if err != nil {
		return nil, err
	}

	same := a.Shape().Equal(b.Shape())
	switch a.DType() {
	case array.Float64:
		if same {
			fast(out.Float64s(), a.Float64s(), b.Float64s())
		} else {
			broadcastLoop(out.Float64s(), a.Float64s(), b.Float64s(), a.Shape(), b.Shape(), outShape, ff)
		}
	case array.Float32:
		if same {
			fastF32(out.Float32s(), a.Float32s(), b.Float32s())
		} else {
			broadcastLoop(out.Float32s(), a.Float32s(), b.Float32s(), a.Shape(), b.Shape(), outShape,
				func(x, y float32) float32 { return float32(ff(float64(x), float64(y))) })
		}
	case array.Int64:
		if same {
			fastI64(out.Int64s(), a.Int64s(), b.Int64s())
		} else {
			broadcastLoop(out.Int64s(), a.Int64s(), b.Int64s(), a.Shape(), b.Shape(), outShape,
				func(x, y int64) int64 { return int64(ff(float64(x), float64(y))) })
		}
	case array.Int32:
		if same {
			fastI32(out.Int32s(), a.Int32s(), b.Int32s())
		} else {
			broadcastLoop(out.Int32s(), a.Int32s(), b.Int32s(), a.Shape(), b.Shape(), outShape,
				func(x, y int32) int32 { return int32(ff(float64(x), float64(y))) })
		}
	default:
		return nil, fmt.Errorf("%s: unsupported dtype %s: %w", name, a.DType(), array.ErrType)
	}
	return out, nil
}

func add(a, b *array.NDArray) (*array.NDArray, error) {
	return binaryOp("add", a, b,
		addUnrolled[float64], addUnrolled[float32], addUnrolled[int64], addUnrolled[int32],
		func(x, y float64) float64 { return x + y })
}

func mul(a, b *array.NDArray) (*array.NDArray, error) {
	return binaryOp("multiply", a, b,
		mulUnrolled[float64], mulUnrolled[float32], mulUnrolled[int64], mulUnrolled[int32],
		func(x, y float64) float64 { return x * y })
}

// matmul uses the i-k-j loop order so the inner loop walks both B and C
// rows sequentially.
func matmulIKJ[T number](c, a, b []T, m, k, n int) {
	for i := 0; i < m; i++ {
		ci := c[i*n : (i+1)*n]
		for kk := 0; kk < k; kk++ {
			aik := a[i*k+kk]
			if aik == 0 {
				continue
			}
			bk := b[kk*n : (kk+1)*n]
			for j := range bk {
				ci[j] += aik * bk[j]
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
	switch a.DType() {
	case array.Float64:
		matmulIKJ(out.Float64s(), a.Float64s(), b.Float64s(), m, k, n)
	case array.Float32:
		matmulIKJ(out.Float32s(), a.Float32s(), b.Float32s(), m, k, n)
	case array.Int64:
		matmulIKJ(out.Int64s(), a.Int64s(), b.Int64s(), m, k, n)
	case array.Int32:
		matmulIKJ(out.Int32s(), a.Int32s(), b.Int32s(), m, k, n)
	default:
		return nil, fmt.Errorf("matmul: unsupported dtype %s: %w", a.DType(), array.ErrType)
	}
	return out, nil
}

// sumFlat accumulates with four independent partial sums.
func sumFlat[T number](src []T) T {
	var s0, s1, s2, s3 T
	n := len(src)
	i := 0
	for ; i+4 <= n; i += 4 {
		s0 += src[i]
		s1 += src[i+1]
		s2 += src[i+2]
		s3 += src[i+3]
	}
	for ; i < n; i++ {
		s0 += src[i]
	}
	return s0 + s1 + s2 + s3
}

func sumReduce(x *array.NDArray, axis int, keepDims bool) (*array.NDArray, error) {
	if axis != backend.NoAxis {
		rank := x.Rank()
		if axis < 0 {
			axis += rank
		}
		if axis < 0 || axis >= rank {
			return nil, fmt.Errorf("sum: axis out of range for rank %d: %w", rank, array.ErrValue)
		}
		if rank > 2 {
			return nil, fmt.Errorf("sum along an axis of a rank-%d array: %w", rank, array.ErrNotImplemented)
		}
	}

	outShape := sumOutShape(x.Shape(), axis, keepDims)
	out, err := array.Empty(outShape, x.DType())
	if err != nil {
		return nil, err
	}
	switch x.DType() {
	case array.Float64:
		sumInto(out.Float64s(), x.Float64s(), x.Shape(), axis)
	case array.Float32:
		sumInto(out.Float32s(), x.Float32s(), x.Shape(), axis)
	case array.Int64:
		sumInto(out.Int64s(), x.Int64s(), x.Shape(), axis)
	case array.Int32:
		sumInto(out.Int32s(), x.Int32s(), x.Shape(), axis)
	default:
		return nil, fmt.Errorf("sum: unsupported dtype %s: %w", x.DType(), array.ErrType)
	}
	return out, nil
}

func sumOutShape(shape array.Shape, axis int, keepDims bool) array.Shape {
	if axis == backend.NoAxis {
		if !keepDims {
			return array.Shape{}
		}
		out := make(array.Shape, len(shape))
		for i := range out {
			out[i] = 1
		}
		return out
	}
	if keepDims {
		out := shape.Clone()
		out[axis] = 1
		return out
	}
	out := make(array.Shape, 0, len(shape)-1)
	for i, dim := range shape {
		if i != axis {
			out = append(out, dim)
		}
	}
	return out
}

func sumInto[T number](dst, src []T, shape array.Shape, axis int) {
	if axis == backend.NoAxis || len(shape) <= 1 {
		dst[0] = sumFlat(src)
		return
	}
	rows, cols := shape[0], shape[1]
	if axis == 0 {
		for j := range dst {
			dst[j] = 0
		}
		for i := 0; i < rows; i++ {
			row := src[i*cols : (i+1)*cols]
			for j, v := range row {
				dst[j] += v
			}
		}
		return
	}
	for i := 0; i < rows; i++ {
		dst[i] = sumFlat(src[i*cols : (i+1)*cols])
	}
}

func sqrt(x *array.NDArray) (*array.NDArray, error) {
	out, err := array.Empty(x.Shape(), x.DType())
	if err != nil {
		return nil, err
	}
	switch x.DType() {
	case array.Float64:
		dst, src := out.Float64s(), x.Float64s()
		for i := range src {
			dst[i] = math.Sqrt(src[i])
		}
	case array.Float32:
		dst, src := out.Float32s(), x.Float32s()
		for i := range src {
			dst[i] = float32(math.Sqrt(float64(src[i])))
		}
	case array.Int64:
		dst, src := out.Int64s(), x.Int64s()
		for i := range src {
			dst[i] = int64(math.Sqrt(float64(src[i])))
		}
	case array.Int32:
		dst, src := out.Int32s(), x.Int32s()
		for i := range src {
			dst[i] = int32(math.Sqrt(float64(src[i])))
		}
	default:
		return nil, fmt.Errorf("sqrt: unsupported dtype %s: %w", x.DType(), array.ErrType)
	}
	return out, nil
}
