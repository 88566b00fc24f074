package array

import "fmt"

// normalizeIndex applies negative wraparound and bounds-checks idx
// against the dimension of the given axis.
func (a *NDArray) normalizeIndex(idx, axis int) (int, error) {
	dim := a.shape[axis]
	if idx < 0 {
		idx += dim
	}
	if idx < 0 || idx >= dim {
		return 0, fmt.Errorf("index %d out of bounds for axis %d with size %d: %w",
			idx, axis, dim, ErrIndex)
	}
	return idx, nil
}

// flatOffset resolves a full multi-index to a flat buffer position.
func (a *NDArray) flatOffset(indices []int) (int, error) {
	if len(indices) != len(a.shape) {
		return 0, fmt.Errorf("got %d indices for array of rank %d: %w",
			len(indices), len(a.shape), ErrIndex)
	}
	offset := 0
	for axis, idx := range indices {
		idx, err := a.normalizeIndex(idx, axis)
		if err != nil {
			return 0, err
		}
		offset += idx * a.strides[axis]
	}
	return offset, nil
}

// At returns the element at the given multi-index as one of bool, int64
// or float64. The index arity must match the rank; negative indices
// wrap around.
func (a *NDArray) At(indices ...int) (any, error) {
	offset, err := a.flatOffset(indices)
	if err != nil {
		return nil, err
	}
	return a.getFlat(offset), nil
}

// Float64At reads the element at the given multi-index converted to
// float64.
func (a *NDArray) Float64At(indices ...int) (float64, error) {
	v, err := a.At(indices...)
	if err != nil {
		return 0, err
	}
	s, err := coerceScalar(v)
	if err != nil {
		return 0, err
	}
	return s.float(), nil
}

// SetAt writes value at the given multi-index, converting it to the
// array's dtype. This is the only mutation path after construction.
func (a *NDArray) SetAt(value any, indices ...int) error {
	offset, err := a.flatOffset(indices)
	if err != nil {
		return err
	}
	return a.setFlat(offset, value)
}

type specKind int

const (
	specPick specKind = iota
	specRange
	specAll
)

// Spec selects elements along one axis in a Slice call.
type Spec struct {
	kind   specKind
	pick   int
	lo, hi int
}

// Pick selects a single position along an axis, removing the axis from
// the result. Negative positions wrap around.
func Pick(i int) Spec { return Spec{kind: specPick, pick: i} }

// Range selects the half-open interval [lo, hi) along an axis.
// Negative bounds wrap around; out-of-range bounds are clamped.
func Range(lo, hi int) Spec { return Spec{kind: specRange, lo: lo, hi: hi} }

// All keeps an axis unchanged.
func All() Spec { return Spec{kind: specAll} }

// Slice extracts a sub-array using a mix of Pick, Range and All specs,
// one per axis (missing trailing axes default to All). Pick specs
// remove their axis; the result owns a fresh buffer.
//
// Slicing is fully supported for 1-D and 2-D arrays. Higher ranks are a
// deliberate extension point and fail rather than silently truncating.
func (a *NDArray) Slice(specs ...Spec) (*NDArray, error) {
	rank := len(a.shape)
	if len(specs) > rank {
		return nil, fmt.Errorf("got %d slice specs for array of rank %d: %w",
			len(specs), rank, ErrIndex)
	}
	if rank > 2 {
		return nil, fmt.Errorf("slicing arrays of rank %d: %w", rank, ErrNotImplemented)
	}
	for len(specs) < rank {
		specs = append(specs, All())
	}

	// Resolve each spec to a start offset and kept length per axis.
	starts := make([]int, rank)
	lengths := make([]int, rank)
	outShape := Shape{}
	for axis, sp := range specs {
		switch sp.kind {
		case specPick:
			idx, err := a.normalizeIndex(sp.pick, axis)
			if err != nil {
				return nil, err
			}
			starts[axis] = idx
			lengths[axis] = 1
		case specRange:
			lo, hi := clampRange(sp.lo, sp.hi, a.shape[axis])
			starts[axis] = lo
			lengths[axis] = hi - lo
			outShape = append(outShape, hi-lo)
		case specAll:
			lengths[axis] = a.shape[axis]
			outShape = append(outShape, a.shape[axis])
		}
	}

	out, err := Empty(outShape, a.dtype)
	if err != nil {
		return nil, err
	}
	es := a.dtype.Size()

	switch rank {
	case 0:
		copy(out.data, a.data)
	case 1:
		src := starts[0] * es
		copy(out.data, a.data[src:src+lengths[0]*es])
	case 2:
		dst := 0
		for i := 0; i < lengths[0]; i++ {
			src := ((starts[0]+i)*a.strides[0] + starts[1]) * es
			copy(out.data[dst:], a.data[src:src+lengths[1]*es])
			dst += lengths[1] * es
		}
	}
	return out, nil
}

// clampRange normalizes python-style slice bounds against a dimension.
func clampRange(lo, hi, dim int) (int, int) {
	if lo < 0 {
		lo += dim
	}
	if hi < 0 {
		hi += dim
	}
	lo = min(max(lo, 0), dim)
	hi = min(max(hi, 0), dim)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
