package ops

import (
	"github.com/arrgo-ml/arrgo/array"
	"github.com/arrgo-ml/arrgo/backend"
)

type reduceConfig struct {
	axis     int
	keepDims bool
}

// ReduceOption configures a reduction call.
type ReduceOption func(*reduceConfig)

// Axis reduces along a single axis instead of over all elements.
// Negative values count from the last axis.
func Axis(axis int) ReduceOption {
	return func(c *reduceConfig) { c.axis = axis }
}

// KeepDims keeps reduced axes in the result with size 1.
func KeepDims() ReduceOption {
	return func(c *reduceConfig) { c.keepDims = true }
}

func reduce(op backend.Op, x *array.NDArray, opts []ReduceOption) (*array.NDArray, error) {
	cfg := reduceConfig{axis: backend.NoAxis}
	for _, opt := range opts {
		opt(&cfg)
	}
	k, err := backend.LookupReduce(op, backend.Active())
	if err != nil {
		return nil, err
	}
	xc, err := castIfNeeded(x, array.Promote(x.DType(), x.DType()))
	if err != nil {
		return nil, err
	}
	return k(xc, cfg.axis, cfg.keepDims)
}

// Sum reduces by addition. Without options it totals all elements into
// a scalar array.
func Sum(x *array.NDArray, opts ...ReduceOption) (*array.NDArray, error) {
	return reduce(backend.OpSum, x, opts)
}

// Mean reduces by arithmetic mean; the result is always float64.
func Mean(x *array.NDArray, opts ...ReduceOption) (*array.NDArray, error) {
	return reduce(backend.OpMean, x, opts)
}

// Min reduces by minimum.
func Min(x *array.NDArray, opts ...ReduceOption) (*array.NDArray, error) {
	return reduce(backend.OpMin, x, opts)
}

// Max reduces by maximum.
func Max(x *array.NDArray, opts ...ReduceOption) (*array.NDArray, error) {
	return reduce(backend.OpMax, x, opts)
}

// Prod reduces by multiplication.
func Prod(x *array.NDArray, opts ...ReduceOption) (*array.NDArray, error) {
	return reduce(backend.OpProd, x, opts)
}
