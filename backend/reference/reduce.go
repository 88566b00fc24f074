package reference

import (
	"fmt"
	"math"

	"github.com/arrgo-ml/arrgo/array"
	"github.com/arrgo-ml/arrgo/backend"
)

// reduceOutShape resolves the output shape of a reduction. A NoAxis
// reduction collapses everything; with keepDims every reduced axis
// stays with size 1.
func reduceOutShape(shape array.Shape, axis int, keepDims bool) array.Shape {
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

// checkAxis normalizes a (possibly negative) reduction axis. Axis
// reductions on arrays of rank above 2 are a deliberate gap: they fail
// instead of silently reducing over the wrong axis.
func checkAxis(name string, x *array.NDArray, axis int) (int, error) {
	if axis == backend.NoAxis {
		return axis, nil
	}
	rank := x.Rank()
	if axis < 0 {
		axis += rank
	}
	if axis < 0 || axis >= rank {
		return 0, fmt.Errorf("%s: axis out of range for rank %d: %w", name, rank, array.ErrValue)
	}
	if rank > 2 {
		return 0, fmt.Errorf("%s along an axis of a rank-%d array: %w", name, rank, array.ErrNotImplemented)
	}
	return axis, nil
}

// foldReduce runs a generic reduction: init seeds each output cell,
// fold accumulates one input element into it.
func foldReduce[T number](dst, src []T, shape array.Shape, axis int, init T, seedFirst bool, fold func(acc, v T) T) {
	if axis == backend.NoAxis {
		acc := init
		for i, v := range src {
			if seedFirst && i == 0 {
				acc = v
				continue
			}
			acc = fold(acc, v)
		}
		dst[0] = acc
		return
	}

	// Only rank 1 and 2 reach here.
	if len(shape) == 1 {
		acc := init
		for i, v := range src {
			if seedFirst && i == 0 {
				acc = v
				continue
			}
			acc = fold(acc, v)
		}
		dst[0] = acc
		return
	}

	rows, cols := shape[0], shape[1]
	if axis == 0 {
		for j := 0; j < cols; j++ {
			acc := init
			for i := 0; i < rows; i++ {
				v := src[i*cols+j]
				if seedFirst && i == 0 {
					acc = v
					continue
				}
				acc = fold(acc, v)
			}
			dst[j] = acc
		}
		return
	}
	for i := 0; i < rows; i++ {
		acc := init
		for j := 0; j < cols; j++ {
			v := src[i*cols+j]
			if seedFirst && j == 0 {
				acc = v
				continue
			}
			acc = fold(acc, v)
		}
		dst[i] = acc
	}
}

// reduceOp dispatches a reduction by dtype. seedFirst reductions
// (min/max) seed each cell from the first element and reject empty
// input.
func reduceOp(name string, x *array.NDArray, axis int, keepDims bool,
	initF float64, initI int64, seedFirst bool,
	ff func(acc, v float64) float64, fi func(acc, v int64) int64) (*array.NDArray, error) {

	axis, err := checkAxis(name, x, axis)
	if err != nil {
		return nil, err
	}
	if seedFirst && x.NumElements() == 0 {
		return nil, fmt.Errorf("%s of an empty array: %w", name, array.ErrValue)
	}

	out, err := array.Empty(reduceOutShape(x.Shape(), axis, keepDims), x.DType())
	if err != nil {
		return nil, err
	}

	switch x.DType() {
	case array.Float64:
		foldReduce(out.Float64s(), x.Float64s(), x.Shape(), axis, initF, seedFirst, ff)
	case array.Float32:
		foldReduce(out.Float32s(), x.Float32s(), x.Shape(), axis, float32(initF), seedFirst,
			func(acc, v float32) float32 { return float32(ff(float64(acc), float64(v))) })
	case array.Int64:
		foldReduce(out.Int64s(), x.Int64s(), x.Shape(), axis, initI, seedFirst, fi)
	case array.Int32:
		foldReduce(out.Int32s(), x.Int32s(), x.Shape(), axis, int32(initI), seedFirst,
			func(acc, v int32) int32 { return int32(fi(int64(acc), int64(v))) })
	default:
		return nil, fmt.Errorf("%s: unsupported dtype %s: %w", name, x.DType(), array.ErrType)
	}
	return out, nil
}

func sumReduce(x *array.NDArray, axis int, keepDims bool) (*array.NDArray, error) {
	return reduceOp("sum", x, axis, keepDims, 0, 0, false,
		func(acc, v float64) float64 { return acc + v },
		func(acc, v int64) int64 { return acc + v })
}

func prodReduce(x *array.NDArray, axis int, keepDims bool) (*array.NDArray, error) {
	return reduceOp("prod", x, axis, keepDims, 1, 1, false,
		func(acc, v float64) float64 { return acc * v },
		func(acc, v int64) int64 { return acc * v })
}

func minReduce(x *array.NDArray, axis int, keepDims bool) (*array.NDArray, error) {
	return reduceOp("min", x, axis, keepDims, 0, 0, true,
		math.Min,
		func(acc, v int64) int64 {
			if v < acc {
				return v
			}
			return acc
		})
}

func maxReduce(x *array.NDArray, axis int, keepDims bool) (*array.NDArray, error) {
	return reduceOp("max", x, axis, keepDims, 0, 0, true,
		math.Max,
		func(acc, v int64) int64 {
			if v > acc {
				return v
			}
			return acc
		})
}

// meanReduce always yields float64.
func meanReduce(x *array.NDArray, axis int, keepDims bool) (*array.NDArray, error) {
	xf := x
	if x.DType() != array.Float64 {
		var err error
		xf, err = x.Cast(array.Float64)
		if err != nil {
			return nil, err
		}
	}
	sum, err := sumReduce(xf, axis, keepDims)
	if err != nil {
		return nil, fmt.Errorf("mean: %w", err)
	}

	count := xf.NumElements()
	if axis != backend.NoAxis {
		ax := axis
		if ax < 0 {
			ax += xf.Rank()
		}
		count = xf.Shape()[ax]
	}
	if count == 0 {
		return nil, fmt.Errorf("mean of an empty array: %w", array.ErrValue)
	}
	data := sum.Float64s()
	for i := range data {
		data[i] /= float64(count)
	}
	return sum, nil
}
