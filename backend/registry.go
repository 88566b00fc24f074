package backend

import (
	"fmt"
	"math"
	"sort"

	"github.com/arrgo-ml/arrgo/array"
)

// Op names a dispatched operation.
type Op string

// Dispatched operations.
const (
	OpAdd  Op = "add"
	OpSub  Op = "subtract"
	OpMul  Op = "multiply"
	OpDiv  Op = "divide"
	OpNeg  Op = "negate"
	OpAbs  Op = "absolute"
	OpSqrt Op = "sqrt"

	OpSum  Op = "sum"
	OpMean Op = "mean"
	OpMin  Op = "min"
	OpMax  Op = "max"
	OpProd Op = "prod"

	OpMatMul Op = "matmul"
	OpDot    Op = "dot"
)

// AllOps lists every dispatched operation, in registry order.
var AllOps = []Op{
	OpAdd, OpSub, OpMul, OpDiv, OpNeg, OpAbs, OpSqrt,
	OpSum, OpMean, OpMin, OpMax, OpProd,
	OpMatMul, OpDot,
}

// BinaryKernel computes a two-operand operation (elementwise with
// broadcasting, or a matrix product) into a fresh array.
type BinaryKernel func(a, b *array.NDArray) (*array.NDArray, error)

// UnaryKernel computes a one-operand elementwise operation into a fresh
// array.
type UnaryKernel func(x *array.NDArray) (*array.NDArray, error)

// NoAxis requests a full reduction over all elements. It sits outside
// the negative-axis range so it can never alias a count-from-the-end
// axis like -1.
const NoAxis = math.MinInt

// ReduceKernel reduces x over one axis (or all elements when axis is
// NoAxis), optionally keeping the reduced axis with size 1.
type ReduceKernel func(x *array.NDArray, axis int, keepDims bool) (*array.NDArray, error)

type capKey struct {
	op      Op
	backend ID
}

// The capability table and the typed kernel tables. Populated once at
// startup by backend package init functions; queried, never inferred.
var (
	capabilities  = map[capKey]bool{}
	binaryKernels = map[capKey]BinaryKernel{}
	unaryKernels  = map[capKey]UnaryKernel{}
	reduceKernels = map[capKey]ReduceKernel{}
)

// Declare records whether a backend implements an operation without
// attaching a kernel. Backends use it to state their gaps explicitly.
func Declare(op Op, id ID, implemented bool) {
	capabilities[capKey{op, id}] = implemented
}

// RegisterBinary attaches a binary kernel and marks the capability.
func RegisterBinary(op Op, id ID, k BinaryKernel) {
	key := capKey{op, id}
	binaryKernels[key] = k
	capabilities[key] = true
}

// RegisterUnary attaches a unary kernel and marks the capability.
func RegisterUnary(op Op, id ID, k UnaryKernel) {
	key := capKey{op, id}
	unaryKernels[key] = k
	capabilities[key] = true
}

// RegisterReduce attaches a reduction kernel and marks the capability.
func RegisterReduce(op Op, id ID, k ReduceKernel) {
	key := capKey{op, id}
	reduceKernels[key] = k
	capabilities[key] = true
}

// Implemented reports whether the (operation, backend) pair is present
// and true in the capability table.
func Implemented(op Op, id ID) bool {
	return capabilities[capKey{op, id}]
}

// Implementors returns the backends that implement op, in ID order.
func Implementors(op Op) []ID {
	var ids []ID
	for id := ID(0); id < numBackends; id++ {
		if capabilities[capKey{op, id}] {
			ids = append(ids, id)
		}
	}
	return ids
}

// Capabilities returns the capability row for one backend, keyed by
// operation name.
func Capabilities(id ID) map[Op]bool {
	caps := make(map[Op]bool, len(AllOps))
	for _, op := range AllOps {
		caps[op] = capabilities[capKey{op, id}]
	}
	return caps
}

// notImplemented builds the dispatch-miss error, naming the operation,
// the requested backend and the backends that do implement it.
func notImplemented(op Op, id ID) error {
	impl := Implementors(op)
	names := make([]string, len(impl))
	for i, b := range impl {
		names[i] = b.String()
	}
	sort.Strings(names)
	return fmt.Errorf("operation %q is not implemented by the %s backend (implemented by: %v): %w",
		op, id, names, array.ErrNotImplemented)
}

// LookupBinary resolves the binary kernel for (op, id). A capability
// miss is an error; dispatch never falls back to another backend.
func LookupBinary(op Op, id ID) (BinaryKernel, error) {
	key := capKey{op, id}
	if !capabilities[key] {
		return nil, notImplemented(op, id)
	}
	k, ok := binaryKernels[key]
	if !ok {
		return nil, notImplemented(op, id)
	}
	return k, nil
}

// LookupUnary resolves the unary kernel for (op, id).
func LookupUnary(op Op, id ID) (UnaryKernel, error) {
	key := capKey{op, id}
	if !capabilities[key] {
		return nil, notImplemented(op, id)
	}
	k, ok := unaryKernels[key]
	if !ok {
		return nil, notImplemented(op, id)
	}
	return k, nil
}

// LookupReduce resolves the reduction kernel for (op, id).
func LookupReduce(op Op, id ID) (ReduceKernel, error) {
	key := capKey{op, id}
	if !capabilities[key] {
		return nil, notImplemented(op, id)
	}
	k, ok := reduceKernels[key]
	if !ok {
		return nil, notImplemented(op, id)
	}
	return k, nil
}
