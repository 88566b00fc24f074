// Package arrgo is a small NumPy-like n-dimensional array library with
// three interchangeable compute backends selected at runtime. It
// re-exports the public surface of the array substrate, the dispatched
// operations, the dense linear algebra suite and the binary persistence
// layer.
//
// The active backend is process-wide mutable state and is not safe for
// concurrent switching; see package backend.
package arrgo

import (
	"github.com/arrgo-ml/arrgo/array"
	"github.com/arrgo-ml/arrgo/backend"
	arrio "github.com/arrgo-ml/arrgo/io"
	"github.com/arrgo-ml/arrgo/linalg"
	"github.com/arrgo-ml/arrgo/ops"
)

// Core types.
type (
	NDArray = array.NDArray
	Shape   = array.Shape
	DType   = array.DType
)

// Element types.
const (
	Int32   = array.Int32
	Int64   = array.Int64
	Float32 = array.Float32
	Float64 = array.Float64
	Bool    = array.Bool
)

// Construction.
var (
	New          = array.New
	NewWithDType = array.NewWithDType
	Zeros        = array.Zeros
	Ones         = array.Ones
	Full         = array.Full
	Eye          = array.Eye
	Arange       = array.Arange
	Linspace     = array.Linspace
)

// Elementwise arithmetic and reductions.
var (
	Add  = ops.Add
	Sub  = ops.Sub
	Mul  = ops.Mul
	Div  = ops.Div
	Neg  = ops.Neg
	Abs  = ops.Abs
	Sqrt = ops.Sqrt
	Sum  = ops.Sum
	Mean = ops.Mean
	Min  = ops.Min
	Max  = ops.Max
	Prod = ops.Prod
)

// Linear algebra.
var (
	MatMul     = linalg.MatMul
	Dot        = linalg.Dot
	Solve      = linalg.Solve
	Inv        = linalg.Inv
	Det        = linalg.Det
	LUDecomp   = linalg.LU
	QR         = linalg.QR
	Cholesky   = linalg.Cholesky
	Eig        = linalg.Eig
	SVD        = linalg.SVD
	MatrixRank = linalg.MatrixRank
)

// Persistence.
var (
	Save = arrio.Save
	Load = arrio.Load
)

// SetBackend selects the active compute backend by name: "reference",
// "scalar" or "native".
func SetBackend(name string) error {
	return backend.Set(name)
}

// GetBackend returns the name of the active backend.
func GetBackend() string {
	return backend.Active().String()
}

// Capabilities reports which operations the named backend implements.
// An empty name queries the active backend.
func Capabilities(name string) (map[string]bool, error) {
	id := backend.Active()
	if name != "" {
		var err error
		id, err = backend.Parse(name)
		if err != nil {
			return nil, err
		}
	}
	caps := make(map[string]bool)
	for op, ok := range backend.Capabilities(id) {
		caps[string(op)] = ok
	}
	return caps, nil
}
