package ops

import (
	"github.com/arrgo-ml/arrgo/array"
	"github.com/arrgo-ml/arrgo/backend"
)

// promotePair casts both operands to their common dtype so kernels only
// ever see matching element types.
func promotePair(a, b *array.NDArray) (*array.NDArray, *array.NDArray, error) {
	common := array.Promote(a.DType(), b.DType())
	ac, err := castIfNeeded(a, common)
	if err != nil {
		return nil, nil, err
	}
	bc, err := castIfNeeded(b, common)
	if err != nil {
		return nil, nil, err
	}
	return ac, bc, nil
}

func castIfNeeded(a *array.NDArray, dt array.DType) (*array.NDArray, error) {
	if a.DType() == dt {
		return a, nil
	}
	return a.Cast(dt)
}

func binary(op backend.Op, a, b *array.NDArray) (*array.NDArray, error) {
	k, err := backend.LookupBinary(op, backend.Active())
	if err != nil {
		return nil, err
	}
	ac, bc, err := promotePair(a, b)
	if err != nil {
		return nil, err
	}
	return k(ac, bc)
}

func unary(op backend.Op, x *array.NDArray) (*array.NDArray, error) {
	k, err := backend.LookupUnary(op, backend.Active())
	if err != nil {
		return nil, err
	}
	// Arithmetic on bool arrays happens in the default integer type.
	xc, err := castIfNeeded(x, array.Promote(x.DType(), x.DType()))
	if err != nil {
		return nil, err
	}
	return k(xc)
}

// Add computes the broadcast elementwise sum a + b.
func Add(a, b *array.NDArray) (*array.NDArray, error) {
	return binary(backend.OpAdd, a, b)
}

// Sub computes the broadcast elementwise difference a - b.
func Sub(a, b *array.NDArray) (*array.NDArray, error) {
	return binary(backend.OpSub, a, b)
}

// Mul computes the broadcast elementwise product a * b.
func Mul(a, b *array.NDArray) (*array.NDArray, error) {
	return binary(backend.OpMul, a, b)
}

// Div computes the broadcast elementwise true division a / b. Both
// operands are promoted to float64 first, so integer inputs divide
// exactly rather than truncating.
func Div(a, b *array.NDArray) (*array.NDArray, error) {
	k, err := backend.LookupBinary(backend.OpDiv, backend.Active())
	if err != nil {
		return nil, err
	}
	ac, err := castIfNeeded(a, array.Float64)
	if err != nil {
		return nil, err
	}
	bc, err := castIfNeeded(b, array.Float64)
	if err != nil {
		return nil, err
	}
	return k(ac, bc)
}

// Neg negates every element.
func Neg(x *array.NDArray) (*array.NDArray, error) {
	return unary(backend.OpNeg, x)
}

// Abs takes the absolute value of every element.
func Abs(x *array.NDArray) (*array.NDArray, error) {
	return unary(backend.OpAbs, x)
}

// Sqrt computes the elementwise square root in float64.
func Sqrt(x *array.NDArray) (*array.NDArray, error) {
	k, err := backend.LookupUnary(backend.OpSqrt, backend.Active())
	if err != nil {
		return nil, err
	}
	xc, err := castIfNeeded(x, array.Float64)
	if err != nil {
		return nil, err
	}
	return k(xc)
}
