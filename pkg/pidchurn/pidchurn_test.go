package pidchurn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainReachesDepth(t *testing.T) {
	const depth = 20

	var peak int32
	var countErr error
	p := &Probe{
		Depth: depth,
		OnDeepest: func() {
			peak, countErr = ThreadCount()
		},
	}
	require.NoError(t, p.Run(nil))
	require.NoError(t, countErr)
	assert.GreaterOrEqual(t, peak, int32(depth))
}

func TestChainCallsDeepestOnce(t *testing.T) {
	calls := 0
	p := &Probe{
		Depth:     5,
		OnDeepest: func() { calls++ },
	}
	assert.NoError(t, p.Run(nil))
	assert.Equal(t, 1, calls)
}

func TestZeroDepth(t *testing.T) {
	p := &Probe{}
	assert.NoError(t, p.Run(nil))
}

func TestDefaultDepth(t *testing.T) {
	p := New()
	assert.Equal(t, DefaultDepth, p.Depth)
	assert.NoError(t, p.Run(nil))
}
