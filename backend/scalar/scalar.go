// Package scalar implements the optimized-scalar backend: a subset of
// hand-tuned pure-Go kernels (unrolled flat loops, cache-friendly
// matmul loop order). Operations outside the subset are declared
// unimplemented so that dispatch fails fast instead of falling back.
package scalar

import "github.com/arrgo-ml/arrgo/backend"

func init() {
	backend.RegisterBinary(backend.OpAdd, backend.Scalar, add)
	backend.RegisterBinary(backend.OpMul, backend.Scalar, mul)
	backend.RegisterBinary(backend.OpMatMul, backend.Scalar, matmul)
	backend.RegisterReduce(backend.OpSum, backend.Scalar, sumReduce)
	backend.RegisterUnary(backend.OpSqrt, backend.Scalar, sqrt)

	for _, op := range []backend.Op{
		backend.OpSub, backend.OpDiv, backend.OpNeg, backend.OpAbs,
		backend.OpMean, backend.OpMin, backend.OpMax, backend.OpProd,
		backend.OpDot,
	} {
		backend.Declare(op, backend.Scalar, false)
	}
}
