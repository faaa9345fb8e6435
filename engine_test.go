package gwr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/gwr-engine"
)

func TestEngine_EmptyConstructionTerminatesCleanly(t *testing.T) {
	e := gwr.NewEngine()
	require.NoError(t, e.Run())
}

func TestClock_WaitTicksZero_DoesNotSuspendOrAdvance(t *testing.T) {
	e := gwr.NewEngine()
	clk := e.DefaultClock()
	ran := false
	e.Spawn(e.Top(), func() error {
		clk.WaitTicks(0)
		ran = true
		assert.Equal(t, uint64(0), clk.TickNow())
		return nil
	})
	require.NoError(t, e.Run())
	assert.True(t, ran)
	assert.Equal(t, uint64(0), clk.TickNow())
}

type traceEntry struct {
	which int
	ns    float64
}

func TestDualClockInterleave(t *testing.T) {
	e := gwr.NewEngine()
	clk1000 := e.DefaultClock()
	clk1800 := e.ClockMHz(1800)

	var trace []traceEntry

	e.Spawn(e.NewEntity(e.Top(), "task1"), func() error {
		for i := 0; i < 5; i++ {
			clk1000.WaitTicks(1)
			trace = append(trace, traceEntry{which: 1, ns: clk1000.TimeNowNS()})
		}
		return nil
	})
	e.Spawn(e.NewEntity(e.Top(), "task2"), func() error {
		for i := 0; i < 5; i++ {
			clk1800.WaitTicks(1)
			trace = append(trace, traceEntry{which: 2, ns: clk1800.TimeNowNS()})
		}
		return nil
	})

	require.NoError(t, e.Run())

	expectedWhich := []int{2, 1, 2, 2, 1, 2, 2, 1, 1, 1}
	require.Len(t, trace, 10)
	for i, want := range expectedWhich {
		assert.Equalf(t, want, trace[i].which, "entry %d", i)
	}
	expectedNS := []float64{
		1000.0 / 1800, 1000.0 / 1000,
		2000.0 / 1800, 3000.0 / 1800, 2000.0 / 1000,
		4000.0 / 1800, 5000.0 / 1800,
		3000.0 / 1000, 4000.0 / 1000, 5000.0 / 1000,
	}
	for i, want := range expectedNS {
		assert.InDeltaf(t, want, trace[i].ns, 1e-9, "entry %d", i)
	}
}

func TestPort_UnconnectedInPort_AbortsWithPathQualifiedMessage(t *testing.T) {
	e := gwr.NewEngine()
	rx := gwr.NewInPort[int](e.Top(), "rx")
	e.Spawn(e.Top(), func() error {
		rx.Get()
		return nil
	})
	err := e.Run()
	require.Error(t, err)
	assert.Equal(t, "top::rx not connected", err.Error())
}

func TestPort_UnconnectedOutPort_AbortsWithPathQualifiedMessage(t *testing.T) {
	e := gwr.NewEngine()
	tx := gwr.NewOutPort[int](e.Top(), "tx")
	e.Spawn(e.Top(), func() error {
		tx.Put(1)
		return nil
	})
	err := e.Run()
	require.Error(t, err)
	assert.Equal(t, "top::tx not connected", err.Error())
}

func TestPort_UnconnectedOutPort_TryPutAbortsWithPathQualifiedMessage(t *testing.T) {
	e := gwr.NewEngine()
	tx := gwr.NewOutPort[int](e.Top(), "tx")
	e.Spawn(e.Top(), func() error {
		tx.TryPut()
		return nil
	})
	err := e.Run()
	require.Error(t, err)
	assert.Equal(t, "top::tx not connected", err.Error())
}

func TestPort_UnconnectedInPort_StartGetAbortsWithPathQualifiedMessage(t *testing.T) {
	e := gwr.NewEngine()
	rx := gwr.NewInPort[int](e.Top(), "rx")
	e.Spawn(e.Top(), func() error {
		rx.StartGet()
		return nil
	})
	err := e.Run()
	require.Error(t, err)
	assert.Equal(t, "top::rx not connected", err.Error())
}

func TestPort_TryPut_SucceedsWhileIdle(t *testing.T) {
	e := gwr.NewEngine()
	src := e.NewEntity(e.Top(), "source")
	snk := e.NewEntity(e.Top(), "sink")
	tx := gwr.NewOutPort[int](src, "tx")
	rx := gwr.NewInPort[int](snk, "rx")
	gwr.ConnectPort(e, tx, rx)

	e.Spawn(src, func() error {
		tx.TryPut() // idle: succeeds without committing a value
		tx.Put(1)
		return nil
	})
	e.Spawn(snk, func() error {
		assert.Equal(t, 1, rx.Get())
		return nil
	})
	require.NoError(t, e.Run())
}

func TestPort_TryPut_PanicsWhileProducerParked(t *testing.T) {
	e := gwr.NewEngine()
	src := e.NewEntity(e.Top(), "source")
	snk := e.NewEntity(e.Top(), "sink")
	tx := gwr.NewOutPort[int](src, "tx")
	rx := gwr.NewInPort[int](snk, "rx")
	gwr.ConnectPort(e, tx, rx)

	// No consumer ever runs, so the put below leaves the pair
	// ProducerParked for the rest of the run.
	e.Spawn(src, func() error {
		tx.Put(1)
		return nil
	})
	e.Spawn(e.Top(), func() error {
		tx.TryPut()
		return nil
	})
	err := e.Run()
	require.Error(t, err)
	assert.Equal(t, "top::source::tx: try_put called while a put is already outstanding", err.Error())
}

func TestEngine_TaskErrorWrappedWithSimErrorCarriesEntityPath(t *testing.T) {
	e := gwr.NewEngine()
	worker := e.NewEntity(e.Top(), "worker")
	boom := errors.New("boom")
	e.Spawn(worker, func() error {
		return gwr.WrapError(worker.Path(), boom)
	})

	err := e.Run()
	require.Error(t, err)
	assert.Equal(t, "top::worker: boom", err.Error())

	var simErr *gwr.SimError
	require.ErrorAs(t, err, &simErr)
	assert.Equal(t, "top::worker", simErr.Path)
	assert.ErrorIs(t, err, boom)
}

func TestConnectPort_DoubleConnect_Panics(t *testing.T) {
	e := gwr.NewEngine()
	src := e.NewEntity(e.Top(), "source")
	snk := e.NewEntity(e.Top(), "sink")
	tx := gwr.NewOutPort[int](src, "tx")
	rx := gwr.NewInPort[int](snk, "rx")
	gwr.ConnectPort(e, tx, rx)

	rx2 := gwr.NewInPort[int](snk, "rx2")
	assert.PanicsWithError(t, "top::source::tx already connected", func() {
		gwr.ConnectPort(e, tx, rx2)
	})
}

func TestPort_TwoPhaseReceivePreservesFIFO(t *testing.T) {
	e := gwr.NewEngine()
	src := e.NewEntity(e.Top(), "source")
	snk := e.NewEntity(e.Top(), "sink")
	tx := gwr.NewOutPort[int](src, "tx")
	rx := gwr.NewInPort[int](snk, "rx")
	gwr.ConnectPort(e, tx, rx)

	var received []int
	e.Spawn(src, func() error {
		tx.Put(1)
		tx.Put(2)
		return nil
	})
	e.Spawn(snk, func() error {
		v := rx.StartGet()
		received = append(received, v)
		rx.FinishGet()
		received = append(received, rx.Get())
		return nil
	})
	require.NoError(t, e.Run())
	assert.Equal(t, []int{1, 2}, received)
}
