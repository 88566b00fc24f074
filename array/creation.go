package array

import (
	"fmt"
	"math"
)

// Zeros creates an array of the given shape filled with zeros.
func Zeros(shape Shape, dtype DType) (*NDArray, error) {
	return Empty(shape, dtype)
}

// Ones creates an array of the given shape filled with ones.
func Ones(shape Shape, dtype DType) (*NDArray, error) {
	return Full(shape, 1, dtype)
}

// Full creates an array of the given shape with every element set to
// value.
func Full(shape Shape, value any, dtype DType) (*NDArray, error) {
	a, err := Empty(shape, dtype)
	if err != nil {
		return nil, err
	}
	n := a.NumElements()
	for i := 0; i < n; i++ {
		if err := a.setFlat(i, value); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Eye creates an n by n identity matrix.
func Eye(n int, dtype DType) (*NDArray, error) {
	a, err := Empty(Shape{n, n}, dtype)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err := a.setFlat(i*n+i, 1); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Arange creates a 1-D array of values in the half-open interval
// [start, stop) spaced by step.
func Arange(start, stop, step float64, dtype DType) (*NDArray, error) {
	if step == 0 {
		return nil, fmt.Errorf("arange: step must be non-zero: %w", ErrValue)
	}
	n := int(math.Ceil((stop - start) / step))
	if n < 0 {
		n = 0
	}
	a, err := Empty(Shape{n}, dtype)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err := a.setFlat(i, start+float64(i)*step); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Linspace creates a 1-D float64 array of num evenly spaced values from
// start to stop inclusive.
func Linspace(start, stop float64, num int) (*NDArray, error) {
	if num < 0 {
		return nil, fmt.Errorf("linspace: num must be non-negative, got %d: %w", num, ErrValue)
	}
	a, err := Empty(Shape{num}, Float64)
	if err != nil {
		return nil, err
	}
	data := a.Float64s()
	if num == 1 {
		data[0] = start
		return a, nil
	}
	step := (stop - start) / float64(num-1)
	for i := range data {
		data[i] = start + float64(i)*step
	}
	return a, nil
}

// FromFloat64s wraps a float64 slice into an array of the given shape.
// The data is copied.
func FromFloat64s(data []float64, shape Shape) (*NDArray, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, got %d: %w",
			shape, shape.NumElements(), len(data), ErrValue)
	}
	a, err := Empty(shape, Float64)
	if err != nil {
		return nil, err
	}
	copy(a.Float64s(), data)
	return a, nil
}

// FromInt64s wraps an int64 slice into an array of the given shape.
// The data is copied.
func FromInt64s(data []int64, shape Shape) (*NDArray, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, got %d: %w",
			shape, shape.NumElements(), len(data), ErrValue)
	}
	a, err := Empty(shape, Int64)
	if err != nil {
		return nil, err
	}
	copy(a.Int64s(), data)
	return a, nil
}

// FromBools wraps a bool slice into an array of the given shape.
// The data is copied.
func FromBools(data []bool, shape Shape) (*NDArray, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, got %d: %w",
			shape, shape.NumElements(), len(data), ErrValue)
	}
	a, err := Empty(shape, Bool)
	if err != nil {
		return nil, err
	}
	copy(a.Bools(), data)
	return a, nil
}
