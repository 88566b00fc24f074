// Package native implements the optimized-native backend. It carries
// only the throughput-critical matrix kernels (matmul, dot), written
// with cache blocking and unchecked pointer arithmetic over the flat
// buffers. Every other operation is declared unimplemented; dispatch
// reports the miss instead of falling back.
package native

import "github.com/arrgo-ml/arrgo/backend"

func init() {
	backend.RegisterBinary(backend.OpMatMul, backend.Native, matmul)
	backend.RegisterBinary(backend.OpDot, backend.Native, dot)

	for _, op := range []backend.Op{
		backend.OpAdd, backend.OpSub, backend.OpMul, backend.OpDiv,
		backend.OpNeg, backend.OpAbs, backend.OpSqrt,
		backend.OpSum, backend.OpMean, backend.OpMin, backend.OpMax, backend.OpProd,
	} {
		backend.Declare(op, backend.Native, false)
	}
}
