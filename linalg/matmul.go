package linalg

import (
	"github.com/arrgo-ml/arrgo/array"
	"github.com/arrgo-ml/arrgo/backend"

	// Backend kernel sets register themselves at init, driver-style.
	_ "github.com/arrgo-ml/arrgo/backend/native"
	_ "github.com/arrgo-ml/arrgo/backend/reference"
	_ "github.com/arrgo-ml/arrgo/backend/scalar"
)

// MatMul multiplies two 2-D arrays through the active backend's matmul
// kernel. Operands are promoted to a common dtype first.
func MatMul(a, b *array.NDArray) (*array.NDArray, error) {
	k, err := backend.LookupBinary(backend.OpMatMul, backend.Active())
	if err != nil {
		return nil, err
	}
	ac, bc, err := promotePair(a, b)
	if err != nil {
		return nil, err
	}
	return k(ac, bc)
}

// Dot computes the generalized dot product through the active backend:
// 1-D·1-D is a scalar, 1-D·2-D and 2-D·1-D contract the shared axis,
// 2-D·2-D is the matrix product.
func Dot(a, b *array.NDArray) (*array.NDArray, error) {
	k, err := backend.LookupBinary(backend.OpDot, backend.Active())
	if err != nil {
		return nil, err
	}
	ac, bc, err := promotePair(a, b)
	if err != nil {
		return nil, err
	}
	return k(ac, bc)
}

func promotePair(a, b *array.NDArray) (*array.NDArray, *array.NDArray, error) {
	common := array.Promote(a.DType(), b.DType())
	ac := a
	if a.DType() != common {
		var err error
		ac, err = a.Cast(common)
		if err != nil {
			return nil, nil, err
		}
	}
	bc := b
	if b.DType() != common {
		var err error
		bc, err = b.Cast(common)
		if err != nil {
			return nil, nil, err
		}
	}
	return ac, bc, nil
}
