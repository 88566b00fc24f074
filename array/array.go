package array

import (
	"fmt"
	"reflect"
	"unsafe"
)

// NDArray is an n-dimensional array over a single contiguous, owned,
// dtype-homogeneous buffer. Shape and dtype are fixed at construction;
// only Reshape and Transpose derive arrays with a different layout.
//
// Arrays are not safe for concurrent mutation; each array is owned by
// one logical computation at a time.
type NDArray struct {
	data    []byte
	shape   Shape
	strides []int
	dtype   DType
}

// Empty allocates a zero-initialized array with the given shape and
// dtype. It is the allocation primitive every kernel builds results on.
func Empty(shape Shape, dtype DType) (*NDArray, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &NDArray{
		data:    make([]byte, shape.NumElements()*dtype.Size()),
		shape:   shape.Clone(),
		strides: shape.Strides(),
		dtype:   dtype,
	}, nil
}

// New builds an array from nested Go slices (or a single scalar),
// inferring shape by walking the nesting depth and dtype from the
// flattened values: all bool gives Bool, all integral gives Int64,
// anything else gives Float64.
func New(data any) (*NDArray, error) {
	shape, flat, err := walkNested(data)
	if err != nil {
		return nil, err
	}
	return fromFlat(shape, flat, inferDType(flat))
}

// NewWithDType is New with an explicit element type; values are
// converted on the way in.
func NewWithDType(data any, dtype DType) (*NDArray, error) {
	shape, flat, err := walkNested(data)
	if err != nil {
		return nil, err
	}
	return fromFlat(shape, flat, dtype)
}

func fromFlat(shape Shape, flat []any, dtype DType) (*NDArray, error) {
	a, err := Empty(shape, dtype)
	if err != nil {
		return nil, err
	}
	for i, v := range flat {
		if err := a.setFlat(i, v); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// walkNested infers the shape of nested slice data by descending first
// elements, then flattens depth-first in row-major order. Any
// substructure whose length disagrees with the inferred shape is
// rejected as ragged.
func walkNested(data any) (Shape, []any, error) {
	shape := Shape{}
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		shape = append(shape, v.Len())
		if v.Len() == 0 {
			break
		}
		v = v.Index(0)
		if v.Kind() == reflect.Interface {
			v = v.Elem()
		}
	}

	flat := make([]any, 0, shape.NumElements())
	if err := flatten(reflect.ValueOf(data), shape, 0, &flat); err != nil {
		return nil, nil, err
	}
	return shape, flat, nil
}

func flatten(v reflect.Value, shape Shape, depth int, out *[]any) error {
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if depth == len(shape) {
		s, err := normalizeScalar(v)
		if err != nil {
			return err
		}
		*out = append(*out, s)
		return nil
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return fmt.Errorf("expected a sequence at depth %d, got %T: %w", depth, v.Interface(), ErrType)
	}
	if v.Len() != shape[depth] {
		return fmt.Errorf("ragged input: axis %d has length %d, expected %d: %w",
			depth, v.Len(), shape[depth], ErrValue)
	}
	for i := 0; i < v.Len(); i++ {
		if err := flatten(v.Index(i), shape, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}

// normalizeScalar reduces any supported scalar kind to bool, int64 or
// float64 for dtype inference and packing.
func normalizeScalar(v reflect.Value) (any, error) {
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(v.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	default:
		if !v.IsValid() {
			return nil, fmt.Errorf("nil element: %w", ErrType)
		}
		return nil, fmt.Errorf("unsupported element type %s: %w", v.Type(), ErrType)
	}
}

// Shape returns the array's shape. Callers must not mutate it.
func (a *NDArray) Shape() Shape { return a.shape }

// Strides returns the array's row-major strides, in elements.
func (a *NDArray) Strides() []int { return a.strides }

// DType returns the array's element type.
func (a *NDArray) DType() DType { return a.dtype }

// NumElements returns the total number of elements.
func (a *NDArray) NumElements() int { return a.shape.NumElements() }

// Rank returns the number of dimensions; 0 for scalars.
func (a *NDArray) Rank() int { return len(a.shape) }

// Bytes returns the raw backing buffer in row-major element order.
func (a *NDArray) Bytes() []byte { return a.data }

// Float64s interprets the buffer as []float64.
// Panics if the dtype is not Float64.
func (a *NDArray) Float64s() []float64 {
	a.mustBe(Float64)
	if len(a.data) == 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(&a.data[0])), a.NumElements())
}

// Float32s interprets the buffer as []float32.
// Panics if the dtype is not Float32.
func (a *NDArray) Float32s() []float32 {
	a.mustBe(Float32)
	if len(a.data) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&a.data[0])), a.NumElements())
}

// Int64s interprets the buffer as []int64.
// Panics if the dtype is not Int64.
func (a *NDArray) Int64s() []int64 {
	a.mustBe(Int64)
	if len(a.data) == 0 {
		return nil
	}
	return unsafe.Slice((*int64)(unsafe.Pointer(&a.data[0])), a.NumElements())
}

// Int32s interprets the buffer as []int32.
// Panics if the dtype is not Int32.
func (a *NDArray) Int32s() []int32 {
	a.mustBe(Int32)
	if len(a.data) == 0 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&a.data[0])), a.NumElements())
}

// Bools interprets the buffer as []bool.
// Panics if the dtype is not Bool.
func (a *NDArray) Bools() []bool {
	a.mustBe(Bool)
	if len(a.data) == 0 {
		return nil
	}
	return unsafe.Slice((*bool)(unsafe.Pointer(&a.data[0])), a.NumElements())
}

func (a *NDArray) mustBe(dt DType) {
	if a.dtype != dt {
		panic(fmt.Sprintf("array dtype is %s, not %s", a.dtype, dt))
	}
}

// Clone creates a deep copy of the array.
func (a *NDArray) Clone() *NDArray {
	data := make([]byte, len(a.data))
	copy(data, a.data)
	return &NDArray{
		data:    data,
		shape:   a.shape.Clone(),
		strides: append([]int(nil), a.strides...),
		dtype:   a.dtype,
	}
}

// Cast returns a new array with every element converted to dtype.
// Numeric values convert by the usual Go conversions; bool converts to
// 0/1 and non-zero converts to true.
func (a *NDArray) Cast(dtype DType) (*NDArray, error) {
	if dtype == a.dtype {
		return a.Clone(), nil
	}
	out, err := Empty(a.shape, dtype)
	if err != nil {
		return nil, err
	}
	n := a.NumElements()
	for i := 0; i < n; i++ {
		if err := out.setFlat(i, a.getFlat(i)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// getFlat reads the element at a row-major flat position as a
// normalized scalar (bool, int64 or float64).
func (a *NDArray) getFlat(i int) any {
	switch a.dtype {
	case Int32:
		return int64(a.Int32s()[i])
	case Int64:
		return a.Int64s()[i]
	case Float32:
		return float64(a.Float32s()[i])
	case Float64:
		return a.Float64s()[i]
	case Bool:
		return a.Bools()[i]
	default:
		panic("unknown data type")
	}
}

// setFlat writes a scalar at a row-major flat position, converting
// to the array's dtype. Integer values reach integer buffers without
// a float64 round trip, so the full int64 range survives.
func (a *NDArray) setFlat(i int, value any) error {
	s, err := coerceScalar(value)
	if err != nil {
		return err
	}
	switch a.dtype {
	case Int32:
		a.Int32s()[i] = int32(s.integer())
	case Int64:
		a.Int64s()[i] = s.integer()
	case Float32:
		a.Float32s()[i] = float32(s.float())
	case Float64:
		a.Float64s()[i] = s.float()
	case Bool:
		if s.kind == scalarBool {
			a.Bools()[i] = s.b
		} else {
			a.Bools()[i] = s.float() != 0
		}
	}
	return nil
}

type scalarKind int

const (
	scalarFloat scalarKind = iota
	scalarInt
	scalarBool
)

// scalar is a dtype-agnostic element value. The original kind is kept
// so integer magnitudes beyond float64's 2^53 mantissa are not damaged
// on the way into an integer buffer.
type scalar struct {
	kind scalarKind
	f    float64
	i    int64
	b    bool
}

// coerceScalar accepts any supported Go scalar.
func coerceScalar(value any) (scalar, error) {
	switch v := value.(type) {
	case bool:
		return scalar{kind: scalarBool, b: v}, nil
	case int:
		return scalar{kind: scalarInt, i: int64(v)}, nil
	case int32:
		return scalar{kind: scalarInt, i: int64(v)}, nil
	case int64:
		return scalar{kind: scalarInt, i: v}, nil
	case float32:
		return scalar{kind: scalarFloat, f: float64(v)}, nil
	case float64:
		return scalar{kind: scalarFloat, f: v}, nil
	default:
		return scalar{}, fmt.Errorf("unsupported scalar type %T: %w", value, ErrType)
	}
}

func (s scalar) float() float64 {
	switch s.kind {
	case scalarInt:
		return float64(s.i)
	case scalarBool:
		if s.b {
			return 1
		}
		return 0
	default:
		return s.f
	}
}

func (s scalar) integer() int64 {
	switch s.kind {
	case scalarInt:
		return s.i
	case scalarBool:
		if s.b {
			return 1
		}
		return 0
	default:
		return int64(s.f)
	}
}

// Float64Values converts the array's elements to a fresh []float64 in
// row-major order, regardless of dtype. Used by the linalg routines.
func (a *NDArray) Float64Values() []float64 {
	n := a.NumElements()
	out := make([]float64, n)
	switch a.dtype {
	case Float64:
		copy(out, a.Float64s())
	case Float32:
		for i, v := range a.Float32s() {
			out[i] = float64(v)
		}
	case Int32:
		for i, v := range a.Int32s() {
			out[i] = float64(v)
		}
	case Int64:
		for i, v := range a.Int64s() {
			out[i] = float64(v)
		}
	case Bool:
		for i, v := range a.Bools() {
			if v {
				out[i] = 1
			}
		}
	}
	return out
}

// String returns a short diagnostic representation.
func (a *NDArray) String() string {
	return fmt.Sprintf("NDArray[%s]%v", a.dtype, a.shape)
}
