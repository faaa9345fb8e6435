package gwr

import "container/heap"

// Clock is a named virtual timebase with a frequency in MHz. Tasks await
// integer tick counts against a specific clock; tick_counter is
// monotonically non-decreasing and is recomputed by the scheduler from the
// shared virtual-time cursor every time it advances (see Engine.Run).
type Clock struct {
	name     string
	mhz      float64
	ticks    uint64
	regIndex int
	engine   *Engine
}

// Name returns the clock's name.
func (c *Clock) Name() string { return c.name }

// MHz returns the clock's frequency.
func (c *Clock) MHz() float64 { return c.mhz }

// TickNow returns the clock's current tick count.
func (c *Clock) TickNow() uint64 { return c.ticks }

// TimeNowNS returns the clock's current time in fractional nanoseconds:
// tick_counter / mhz * 1000.0, not rounded.
func (c *Clock) TimeNowNS() float64 {
	return float64(c.ticks) / c.mhz * 1000.0
}

// WaitTicks suspends the calling task until this clock has advanced n more
// ticks. WaitTicks(0) returns immediately without suspending and without
// advancing any clock.
func (c *Clock) WaitTicks(n uint64) {
	if n == 0 {
		return
	}
	target := c.ticks + n
	atNS := float64(target) / c.mhz * 1000.0
	c.engine.suspend(func(t *taskHandle) {
		seq := c.engine.nextSeq
		c.engine.nextSeq++
		heap.Push(&c.engine.wake, &wakeEntry{
			atNS:     atNS,
			clockReg: c.regIndex,
			seq:      seq,
			clock:    c,
			ticks:    target,
			task:     t,
		})
	})
}
