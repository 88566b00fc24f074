package array

import "fmt"

// Reshape returns a view of the array with a new shape. The element
// count must be preserved; at most one dimension may be -1 and is
// inferred from the remainder. The view shares the backing buffer.
func (a *NDArray) Reshape(newShape ...int) (*NDArray, error) {
	shape := Shape(newShape).Clone()

	wildcard := -1
	known := 1
	for i, dim := range shape {
		switch {
		case dim == -1:
			if wildcard != -1 {
				return nil, fmt.Errorf("reshape %v: more than one -1 dimension: %w", shape, ErrValue)
			}
			wildcard = i
		case dim < 0:
			return nil, fmt.Errorf("reshape %v: invalid dimension %d: %w", shape, dim, ErrValue)
		default:
			known *= dim
		}
	}

	size := a.NumElements()
	if wildcard != -1 {
		if known == 0 || size%known != 0 {
			return nil, fmt.Errorf("cannot infer -1 dimension reshaping %v to %v: %w",
				a.shape, shape, ErrValue)
		}
		shape[wildcard] = size / known
	} else if known != size {
		return nil, fmt.Errorf("cannot reshape %v (%d elements) to %v (%d elements): %w",
			a.shape, size, shape, shape.NumElements(), ErrValue)
	}

	return &NDArray{
		data:    a.data,
		shape:   shape,
		strides: shape.Strides(),
		dtype:   a.dtype,
	}, nil
}

// Flatten returns a 1-D view over the same buffer.
func (a *NDArray) Flatten() *NDArray {
	out, _ := a.Reshape(a.NumElements())
	return out
}

// Transpose permutes the array's axes. Without arguments the axis order
// is reversed. The 2-D case is the supported fast path; arbitrary N-D
// permutations are an extension point and currently fail.
func (a *NDArray) Transpose(axes ...int) (*NDArray, error) {
	rank := len(a.shape)

	if len(axes) == 0 {
		axes = make([]int, rank)
		for i := range axes {
			axes[i] = rank - 1 - i
		}
	}
	if len(axes) != rank {
		return nil, fmt.Errorf("transpose: got %d axes for array of rank %d: %w",
			len(axes), rank, ErrValue)
	}
	seen := make([]bool, rank)
	for _, ax := range axes {
		if ax < 0 || ax >= rank {
			return nil, fmt.Errorf("transpose: axis %d out of range for rank %d: %w", ax, rank, ErrValue)
		}
		if seen[ax] {
			return nil, fmt.Errorf("transpose: duplicate axis %d: %w", ax, ErrValue)
		}
		seen[ax] = true
	}

	if rank <= 1 {
		return a.Clone(), nil
	}
	if rank != 2 {
		return nil, fmt.Errorf("transpose of rank-%d arrays: %w", rank, ErrNotImplemented)
	}
	if axes[0] == 0 && axes[1] == 1 {
		return a.Clone(), nil
	}

	rows, cols := a.shape[0], a.shape[1]
	out, err := Empty(Shape{cols, rows}, a.dtype)
	if err != nil {
		return nil, err
	}
	es := a.dtype.Size()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			src := (i*cols + j) * es
			dst := (j*rows + i) * es
			copy(out.data[dst:dst+es], a.data[src:src+es])
		}
	}
	return out, nil
}

// BroadcastTo materializes the array expanded to target per the
// broadcasting rules: every read of an axis whose source dimension is 1
// is clamped to index 0.
func (a *NDArray) BroadcastTo(target Shape) (*NDArray, error) {
	result, _, err := BroadcastShapes(a.shape, target)
	if err != nil {
		return nil, err
	}
	if !result.Equal(target) {
		return nil, fmt.Errorf("cannot broadcast %v to %v: %w", a.shape, target, ErrValue)
	}

	out, err := Empty(target, a.dtype)
	if err != nil {
		return nil, err
	}
	outStrides := target.Strides()
	srcStrides := BroadcastStrides(a.shape, target)
	es := a.dtype.Size()
	n := target.NumElements()
	for i := 0; i < n; i++ {
		src := FlatIndex(i, outStrides, srcStrides) * es
		copy(out.data[i*es:(i+1)*es], a.data[src:src+es])
	}
	return out, nil
}
