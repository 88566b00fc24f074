// Package reference implements the reference compute backend: a
// complete, straightforward kernel set that every operation can fall
// back on for correctness. It implements the full capability table.
package reference

import "github.com/arrgo-ml/arrgo/backend"

func init() {
	backend.RegisterBinary(backend.OpAdd, backend.Reference, add)
	backend.RegisterBinary(backend.OpSub, backend.Reference, sub)
	backend.RegisterBinary(backend.OpMul, backend.Reference, mul)
	backend.RegisterBinary(backend.OpDiv, backend.Reference, div)
	backend.RegisterUnary(backend.OpNeg, backend.Reference, neg)
	backend.RegisterUnary(backend.OpAbs, backend.Reference, abs)
	backend.RegisterUnary(backend.OpSqrt, backend.Reference, sqrt)

	backend.RegisterReduce(backend.OpSum, backend.Reference, sumReduce)
	backend.RegisterReduce(backend.OpMean, backend.Reference, meanReduce)
	backend.RegisterReduce(backend.OpMin, backend.Reference, minReduce)
	backend.RegisterReduce(backend.OpMax, backend.Reference, maxReduce)
	backend.RegisterReduce(backend.OpProd, backend.Reference, prodReduce)

	backend.RegisterBinary(backend.OpMatMul, backend.Reference, matmul)
	backend.RegisterBinary(backend.OpDot, backend.Reference, dot)
}
