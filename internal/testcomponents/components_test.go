package testcomponents_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/gwr-engine"
	"github.com/joeycumines/gwr-engine/internal/testcomponents"
)

func TestSourceToSink(t *testing.T) {
	e := gwr.NewEngine()
	values := make([]int, 100)
	for i := range values {
		values[i] = 0x123
	}
	src := testcomponents.NewSource(e, e.Top(), "source", values)
	snk := testcomponents.NewSink(e, e.Top(), "sink", len(values))
	gwr.ConnectPort(e, src.Tx, snk.Rx)

	require.NoError(t, gwr.RunSimulation(e, src, snk))
	assert.Equal(t, 100, snk.NumSunk())
}

func TestRouterFanOut(t *testing.T) {
	e := gwr.NewEngine()
	const n = 50
	values := make([]int, n)
	for i := range values {
		values[i] = i % 2
	}
	src := testcomponents.NewSource(e, e.Top(), "source", values)
	router := testcomponents.NewRouter(e, e.Top(), "router", 2, n, nil)
	sinkA := testcomponents.NewSink(e, e.Top(), "sink_a", n/2)
	sinkB := testcomponents.NewSink(e, e.Top(), "sink_b", n/2)

	gwr.ConnectPort(e, src.Tx, router.Rx)
	gwr.ConnectPort(e, router.Outputs[0], sinkA.Rx)
	gwr.ConnectPort(e, router.Outputs[1], sinkB.Rx)

	require.NoError(t, gwr.RunSimulation(e, src, router, sinkA, sinkB))
	assert.Equal(t, 25, sinkA.NumSunk())
	assert.Equal(t, 25, sinkB.NumSunk())
}

// survivorCount replicates DropFilter's keep/drop decision against the same
// seed, so the test can size the downstream sink without the topology ever
// needing to forward a count it hasn't computed itself.
func survivorCount(n int, dropProb float64, seed int64) int {
	rng := rand.New(rand.NewSource(seed))
	count := 0
	for i := 0; i < n; i++ {
		if rng.Float64() >= dropProb {
			count++
		}
	}
	return count
}

func TestDropFilter_DeterministicForFixedSeed(t *testing.T) {
	const n = 100
	want := survivorCount(n, 0.5, 42)
	assert.Less(t, want, 55)

	run := func() int {
		e := gwr.NewEngine()
		values := make([]int, n)
		src := testcomponents.NewSource(e, e.Top(), "source", values)
		filter := testcomponents.NewDropFilter(e, e.Top(), "filter", 0.5, 42, n)
		snk := testcomponents.NewSink(e, e.Top(), "sink", want)
		gwr.ConnectPort(e, src.Tx, filter.Rx)
		gwr.ConnectPort(e, filter.Tx, snk.Rx)
		require.NoError(t, gwr.RunSimulation(e, src, filter, snk))
		assert.Equal(t, want, filter.NumDelivered())
		return snk.NumSunk()
	}

	first := run()
	assert.Equal(t, want, first)
	second := run()
	assert.Equal(t, first, second)
}
