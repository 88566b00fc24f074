package backend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrgo-ml/arrgo/array"
	"github.com/arrgo-ml/arrgo/backend"
	_ "github.com/arrgo-ml/arrgo/backend/native"
	_ "github.com/arrgo-ml/arrgo/backend/reference"
	_ "github.com/arrgo-ml/arrgo/backend/scalar"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want backend.ID
	}{
		{"reference", backend.Reference},
		{"scalar", backend.Scalar},
		{"native", backend.Native},
	}
	for _, tt := range tests {
		id, err := backend.Parse(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, id)
		assert.Equal(t, tt.name, id.String())
	}

	_, err := backend.Parse("gpu")
	require.Error(t, err)
	assert.ErrorIs(t, err, array.ErrValue)
	assert.Contains(t, err.Error(), "gpu")
}

func TestSetAndActive(t *testing.T) {
	t.Cleanup(func() { backend.Use(backend.Reference) })

	require.NoError(t, backend.Set("scalar"))
	assert.Equal(t, backend.Scalar, backend.Active())

	// A failed Set must leave the selection untouched.
	require.Error(t, backend.Set("nope"))
	assert.Equal(t, backend.Scalar, backend.Active())

	backend.Use(backend.Native)
	assert.Equal(t, backend.Native, backend.Active())
}

func TestCapabilityTable(t *testing.T) {
	// Reference implements everything.
	for _, op := range backend.AllOps {
		assert.True(t, backend.Implemented(op, backend.Reference), "reference %s", op)
	}

	// Scalar carries only its hand-optimized subset.
	scalarOps := map[backend.Op]bool{
		backend.OpAdd:    true,
		backend.OpMul:    true,
		backend.OpMatMul: true,
		backend.OpSum:    true,
		backend.OpSqrt:   true,
	}
	for _, op := range backend.AllOps {
		assert.Equal(t, scalarOps[op], backend.Implemented(op, backend.Scalar), "scalar %s", op)
	}

	// Native carries only the matrix kernels.
	nativeOps := map[backend.Op]bool{
		backend.OpMatMul: true,
		backend.OpDot:    true,
	}
	for _, op := range backend.AllOps {
		assert.Equal(t, nativeOps[op], backend.Implemented(op, backend.Native), "native %s", op)
	}
}

func TestImplementors(t *testing.T) {
	assert.Equal(t, []backend.ID{backend.Reference, backend.Scalar, backend.Native},
		backend.Implementors(backend.OpMatMul))
	assert.Equal(t, []backend.ID{backend.Reference, backend.Native},
		backend.Implementors(backend.OpDot))
	assert.Equal(t, []backend.ID{backend.Reference},
		backend.Implementors(backend.OpSub))
}

func TestCapabilitiesRow(t *testing.T) {
	caps := backend.Capabilities(backend.Native)
	assert.Len(t, caps, len(backend.AllOps))
	assert.True(t, caps[backend.OpMatMul])
	assert.False(t, caps[backend.OpAdd])
}

// Dispatch must fail on a capability miss, never silently run another
// backend's kernel.
func TestLookupFailFast(t *testing.T) {
	k, err := backend.LookupBinary(backend.OpAdd, backend.Reference)
	require.NoError(t, err)
	require.NotNil(t, k)

	_, err = backend.LookupBinary(backend.OpSub, backend.Native)
	require.Error(t, err)
	assert.ErrorIs(t, err, array.ErrNotImplemented)
	assert.Contains(t, err.Error(), "subtract")
	assert.Contains(t, err.Error(), "native")
	assert.Contains(t, err.Error(), "reference")

	_, err = backend.LookupUnary(backend.OpNeg, backend.Scalar)
	assert.ErrorIs(t, err, array.ErrNotImplemented)

	_, err = backend.LookupReduce(backend.OpMean, backend.Native)
	assert.ErrorIs(t, err, array.ErrNotImplemented)
}

func TestLookupRunsKernel(t *testing.T) {
	add, err := backend.LookupBinary(backend.OpAdd, backend.Reference)
	require.NoError(t, err)

	a, err := array.FromFloat64s([]float64{1, 2, 3}, array.Shape{3})
	require.NoError(t, err)
	b, err := array.FromFloat64s([]float64{10, 20, 30}, array.Shape{3})
	require.NoError(t, err)

	out, err := add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 22, 33}, out.Float64s())
}
