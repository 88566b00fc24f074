package reference

import (
	"fmt"
	"math"

	"github.com/arrgo-ml/arrgo/array"
)

type number interface {
	~int32 | ~int64 | ~float32 | ~float64
}

// binaryLoop applies f over two operands already validated to share a
// dtype, broadcasting them to their common shape. Same-shape inputs
// take the flat fast path.
func binaryLoop[T number](dst, a, b []T, aShape, bShape, outShape array.Shape, f func(T, T) T) {
	if aShape.Equal(bShape) {
		for i := range dst {
			dst[i] = f(a[i], b[i])
		}
		return
	}
	outStrides := outShape.Strides()
	aStrides := array.BroadcastStrides(aShape, outShape)
	bStrides := array.BroadcastStrides(bShape, outShape)
	for i := range dst {
		dst[i] = f(a[array.FlatIndex(i, outStrides, aStrides)], b[array.FlatIndex(i, outStrides, bStrides)])
	}
}

// binaryOp dispatches a binary elementwise kernel by dtype. Operands
// arrive with matching dtypes (the ops layer promotes first); bool
// operands never reach arithmetic kernels.
func binaryOp(name string, a, b *array.NDArray,
	ff func(x, y float64) float64, fi func(x, y int64) int64) (*array.NDArray, error) {
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

	switch a.DType() {
	case array.Float64:
		binaryLoop(out.Float64s(), a.Float64s(), b.Float64s(), a.Shape(), b.Shape(), outShape, ff)
	case array.Float32:
		binaryLoop(out.Float32s(), a.Float32s(), b.Float32s(), a.Shape(), b.Shape(), outShape,
			func(x, y float32) float32 { return float32(ff(float64(x), float64(y))) })
	case array.Int64:
		binaryLoop(out.Int64s(), a.Int64s(), b.Int64s(), a.Shape(), b.Shape(), outShape, fi)
	case array.Int32:
		binaryLoop(out.Int32s(), a.Int32s(), b.Int32s(), a.Shape(), b.Shape(), outShape,
			func(x, y int32) int32 { return int32(fi(int64(x), int64(y))) })
	default:
		return nil, fmt.Errorf("%s: unsupported dtype %s: %w", name, a.DType(), array.ErrType)
	}
	return out, nil
}

// unaryOp dispatches a unary elementwise kernel by dtype.
func unaryOp(name string, x *array.NDArray,
	ff func(v float64) float64, fi func(v int64) int64) (*array.NDArray, error) {
	out, err := array.Empty(x.Shape(), x.DType())
	if err != nil {
		return nil, err
	}
	switch x.DType() {
	case array.Float64:
		dst, src := out.Float64s(), x.Float64s()
		for i := range src {
			dst[i] = ff(src[i])
		}
	case array.Float32:
		dst, src := out.Float32s(), x.Float32s()
		for i := range src {
			dst[i] = float32(ff(float64(src[i])))
		}
	case array.Int64:
		dst, src := out.Int64s(), x.Int64s()
		for i := range src {
			dst[i] = fi(src[i])
		}
	case array.Int32:
		dst, src := out.Int32s(), x.Int32s()
		for i := range src {
			dst[i] = int32(fi(int64(src[i])))
		}
	default:
		return nil, fmt.Errorf("%s: unsupported dtype %s: %w", name, x.DType(), array.ErrType)
	}
	return out, nil
}

func add(a, b *array.NDArray) (*array.NDArray, error) {
	return binaryOp("add", a, b,
		func(x, y float64) float64 { return x + y },
		func(x, y int64) int64 { return x + y })
}

func sub(a, b *array.NDArray) (*array.NDArray, error) {
	return binaryOp("subtract", a, b,
		func(x, y float64) float64 { return x - y },
		func(x, y int64) int64 { return x - y })
}

func mul(a, b *array.NDArray) (*array.NDArray, error) {
	return binaryOp("multiply", a, b,
		func(x, y float64) float64 { return x * y },
		func(x, y int64) int64 { return x * y })
}

func div(a, b *array.NDArray) (*array.NDArray, error) {
	return binaryOp("divide", a, b,
		func(x, y float64) float64 { return x / y },
		func(x, y int64) int64 { return x / y })
}

func neg(x *array.NDArray) (*array.NDArray, error) {
	return unaryOp("negate", x,
		func(v float64) float64 { return -v },
		func(v int64) int64 { return -v })
}

func abs(x *array.NDArray) (*array.NDArray, error) {
	return unaryOp("absolute", x,
		math.Abs,
		func(v int64) int64 {
			if v < 0 {
				return -v
			}
			return v
		})
}

func sqrt(x *array.NDArray) (*array.NDArray, error) {
	return unaryOp("sqrt", x,
		math.Sqrt,
		func(v int64) int64 { return int64(math.Sqrt(float64(v))) })
}
