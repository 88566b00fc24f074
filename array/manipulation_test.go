package array

import "testing"

func TestReshape(t *testing.T) {
	a, _ := New([]float64{0, 1, 2, 3, 4, 5})

	b, err := a.Reshape(2, 3)
	if err != nil {
		t.Fatalf("Reshape: %v", err)
	}
	assertShape(t, Shape{2, 3}, b.Shape(), "reshape 6 -> 2x3")
	v, _ := b.Float64At(1, 2)
	assertFloat(t, 5, v, "reshape preserves row-major order")

	// Reshape is a view: writes are visible through the source.
	_ = b.SetAt(42.0, 0, 0)
	v, _ = a.Float64At(0)
	assertFloat(t, 42, v, "reshape shares the buffer")
}

func TestReshapeWildcard(t *testing.T) {
	a, _ := New([]float64{0, 1, 2, 3, 4, 5})

	b, err := a.Reshape(-1, 2)
	if err != nil {
		t.Fatalf("Reshape(-1, 2): %v", err)
	}
	assertShape(t, Shape{3, 2}, b.Shape(), "wildcard inference")

	_, err = a.Reshape(-1, -1)
	assertErrIs(t, err, ErrValue, "two wildcards")
	_, err = a.Reshape(-1, 4)
	assertErrIs(t, err, ErrValue, "non-divisible wildcard")
}

func TestReshapeSizeMismatch(t *testing.T) {
	a, _ := New([]float64{0, 1, 2, 3})
	_, err := a.Reshape(3, 2)
	assertErrIs(t, err, ErrValue, "element count change")
}

func TestTranspose2D(t *testing.T) {
	a, _ := New([][]float64{{1, 2, 3}, {4, 5, 6}})
	at, err := a.Transpose()
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	assertShape(t, Shape{3, 2}, at.Shape(), "transpose shape")
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			orig, _ := a.Float64At(i, j)
			swapped, _ := at.Float64At(j, i)
			assertFloat(t, orig, swapped, "transpose element")
		}
	}
}

func TestTranspose1DAndErrors(t *testing.T) {
	v, _ := New([]float64{1, 2, 3})
	vt, err := v.Transpose()
	if err != nil {
		t.Fatalf("1-D transpose: %v", err)
	}
	assertShape(t, Shape{3}, vt.Shape(), "1-D transpose is identity")

	a, _ := Zeros(Shape{2, 3}, Float64)
	_, err = a.Transpose(0, 0)
	assertErrIs(t, err, ErrValue, "duplicate axes")
	_, err = a.Transpose(0, 2)
	assertErrIs(t, err, ErrValue, "axis out of range")

	cube, _ := Zeros(Shape{2, 2, 2}, Float64)
	_, err = cube.Transpose()
	assertErrIs(t, err, ErrNotImplemented, "rank-3 transpose")
}

func TestSlice1D(t *testing.T) {
	a, _ := New([]float64{0, 1, 2, 3, 4})

	s, err := a.Slice(Range(1, 4))
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	assertShape(t, Shape{3}, s.Shape(), "1-D range")
	v, _ := s.Float64At(0)
	assertFloat(t, 1, v, "range start")

	s, err = a.Slice(Range(-3, -1))
	if err != nil {
		t.Fatalf("Slice negative bounds: %v", err)
	}
	v, _ = s.Float64At(0)
	assertFloat(t, 2, v, "negative range bounds")
}

func TestSlice2D(t *testing.T) {
	a, _ := New([][]float64{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}})

	row, err := a.Slice(Pick(1))
	if err != nil {
		t.Fatalf("Slice(Pick): %v", err)
	}
	assertShape(t, Shape{3}, row.Shape(), "pick removes the axis")
	v, _ := row.Float64At(2)
	assertFloat(t, 5, v, "picked row")

	col, err := a.Slice(All(), Pick(0))
	if err != nil {
		t.Fatalf("Slice(All, Pick): %v", err)
	}
	assertShape(t, Shape{3}, col.Shape(), "column extraction")
	v, _ = col.Float64At(2)
	assertFloat(t, 6, v, "picked column")

	block, err := a.Slice(Range(0, 2), Range(1, 3))
	if err != nil {
		t.Fatalf("Slice(Range, Range): %v", err)
	}
	assertShape(t, Shape{2, 2}, block.Shape(), "2-D block")
	v, _ = block.Float64At(1, 0)
	assertFloat(t, 4, v, "block element")
}

func TestSliceErrors(t *testing.T) {
	a, _ := Zeros(Shape{2, 2}, Float64)
	_, err := a.Slice(Pick(0), Pick(0), Pick(0))
	assertErrIs(t, err, ErrIndex, "too many specs")
	_, err = a.Slice(Pick(5))
	assertErrIs(t, err, ErrIndex, "pick out of bounds")

	cube, _ := Zeros(Shape{2, 2, 2}, Float64)
	_, err = cube.Slice(Pick(0))
	assertErrIs(t, err, ErrNotImplemented, "rank-3 slicing")
}
