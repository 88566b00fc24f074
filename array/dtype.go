// Package array implements the strided n-dimensional array substrate:
// the shape/stride/dtype model, construction from nested data,
// broadcasting, indexing and shape manipulation.
package array

import "fmt"

// DType represents runtime type information for array elements.
// It is resolved once at construction and never re-inferred.
type DType int

// Supported element types.
const (
	Int32 DType = iota
	Int64
	Float32
	Float64
	Bool
)

// Size returns the byte size of one element of the data type.
func (dt DType) Size() int {
	switch dt {
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	case Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DType) String() string {
	switch dt {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// ParseDType resolves a dtype name as it appears in persisted metadata.
func ParseDType(s string) (DType, error) {
	switch s {
	case "int32":
		return Int32, nil
	case "int64":
		return Int64, nil
	case "float32":
		return Float32, nil
	case "float64":
		return Float64, nil
	case "bool":
		return Bool, nil
	default:
		return 0, fmt.Errorf("unknown dtype %q: %w", s, ErrValue)
	}
}

// IsFloat reports whether the data type is a floating point type.
func (dt DType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// Promote returns the common data type of a binary operation between
// operands of types a and b. Float wins over int, wider wins over
// narrower, and bool promotes to the other operand. Arithmetic between
// two bool operands is carried out in the default integer type.
func Promote(a, b DType) DType {
	if a == b {
		if a == Bool {
			return Int64
		}
		return a
	}
	if a == Bool {
		return Promote(b, b)
	}
	if b == Bool {
		return Promote(a, a)
	}
	if a == Float64 || b == Float64 {
		return Float64
	}
	if a == Float32 || b == Float32 {
		return Float32
	}
	// Both integral.
	if a == Int64 || b == Int64 {
		return Int64
	}
	return Int32
}

// inferDType applies the construction-time inference rule to flattened
// input: all bool values yield Bool, all integral values yield the
// default integer type, anything else yields the default float type.
func inferDType(flat []any) DType {
	allBool := true
	allInt := true
	for _, v := range flat {
		switch v.(type) {
		case bool:
			allInt = false
		case int64:
			allBool = false
		default:
			allBool = false
			allInt = false
		}
	}
	switch {
	case len(flat) == 0:
		return Float64
	case allBool:
		return Bool
	case allInt:
		return Int64
	default:
		return Float64
	}
}
