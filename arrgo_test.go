package arrgo_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrgo-ml/arrgo"
)

func TestEndToEnd(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, arrgo.SetBackend("reference")) })

	a, err := arrgo.New([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, arrgo.Shape{2, 2}, a.Shape())
	assert.Equal(t, arrgo.Float64, a.DType())

	b, err := arrgo.Eye(2, arrgo.Float64)
	require.NoError(t, err)

	sum, err := arrgo.Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2, 3, 5}, sum.Float64s())

	prod, err := arrgo.MatMul(a, b)
	require.NoError(t, err)
	assert.Equal(t, a.Float64s(), prod.Float64s())

	total, err := arrgo.Sum(a)
	require.NoError(t, err)
	assert.InDelta(t, 10, total.Float64s()[0], 1e-12)

	d, err := arrgo.Det(a)
	require.NoError(t, err)
	assert.InDelta(t, -2, d, 1e-10)

	path := filepath.Join(t.TempDir(), "a.agz")
	require.NoError(t, arrgo.Save(path, a))
	back, err := arrgo.Load(path)
	require.NoError(t, err)
	assert.Equal(t, a.Float64s(), back.Float64s())
}

func TestBackendSelection(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, arrgo.SetBackend("reference")) })

	assert.Equal(t, "reference", arrgo.GetBackend())

	require.NoError(t, arrgo.SetBackend("native"))
	assert.Equal(t, "native", arrgo.GetBackend())

	err := arrgo.SetBackend("cuda")
	require.Error(t, err)
	assert.Equal(t, "native", arrgo.GetBackend())
}

func TestCapabilities(t *testing.T) {
	caps, err := arrgo.Capabilities("native")
	require.NoError(t, err)
	assert.True(t, caps["matmul"])
	assert.False(t, caps["add"])

	all, err := arrgo.Capabilities("reference")
	require.NoError(t, err)
	for op, ok := range all {
		assert.True(t, ok, op)
	}

	_, err = arrgo.Capabilities("gpu")
	require.Error(t, err)

	// Empty name queries whatever is active.
	active, err := arrgo.Capabilities("")
	require.NoError(t, err)
	assert.Len(t, active, len(all))
}
