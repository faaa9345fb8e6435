package gwr

import "container/heap"

// Engine owns the registry, the tracker handle, the default clock,
// additional clocks, the task set, and the root entity. It exposes the
// public construction/run API and doubles as the cooperative scheduler.
type Engine struct {
	registry     *Registry
	tracker      Tracker
	top          *Entity
	clocks       []*Clock
	defaultClock *Clock

	ready []*taskHandle
	wake  wakeHeap

	nextSeq uint64
	current *taskHandle
	nowNS   float64
	err     error
}

// NewEngine constructs an Engine, applying opts in order. With no options,
// the engine uses a NullTracker and a single default clock at 1000 MHz.
func NewEngine(opts ...EngineOption) *Engine {
	cfg := resolveEngineOptions(opts)

	e := &Engine{tracker: cfg.tracker}
	e.registry = newRegistry(e.tracker)
	e.top = e.registry.Root()
	e.defaultClock = e.newClock("default", cfg.defaultClockMHz)

	return e
}

// Top returns the engine's unique root entity.
func (e *Engine) Top() *Entity { return e.top }

// Registry returns the engine's entity registry, for components that need
// to allocate ids for objects outside the entity tree (e.g. Create/Destroy
// tracker records for memory allocations).
func (e *Engine) Registry() *Registry { return e.registry }

// Tracker returns the engine's tracker handle.
func (e *Engine) Tracker() Tracker { return e.tracker }

// DefaultClock returns the engine's implementer-chosen default clock.
func (e *Engine) DefaultClock() *Clock { return e.defaultClock }

// NewEntity creates a named child entity under parent.
func (e *Engine) NewEntity(parent *Entity, name string) *Entity {
	return e.registry.NewEntity(parent, name)
}

// ClockMHz registers and returns a new clock running at the given
// frequency.
func (e *Engine) ClockMHz(mhz float64) *Clock {
	return e.newClock("", mhz)
}

func (e *Engine) newClock(name string, mhz float64) *Clock {
	c := &Clock{name: name, mhz: mhz, regIndex: len(e.clocks), engine: e}
	e.clocks = append(e.clocks, c)
	return c
}

// Spawn adds a cooperative task to the ready set, tracing it as running as
// entity. fn is the task's lazy computation; a non-nil return terminates
// the whole run. Spawn may be called before Run, or from within a running
// task — in both cases the new task is appended to the tail of the ready
// set, preserving determinism.
func (e *Engine) Spawn(entity *Entity, fn func() error) {
	t := &taskHandle{
		id:     e.registry.allocID(),
		entity: entity,
		turn:   make(chan struct{}),
		yield:  make(chan taskYield),
	}
	e.makeReady(t)
	go e.runTask(t, fn)
}

// Run drives the scheduler to quiescence: it alternates between running
// every ready task to its next suspension or completion, and — once the
// ready set is empty — popping the earliest wake queue entry (and any
// other entry sharing its (absolute_ns, clock) key), advancing every
// clock's tick_counter to match, and making the woken task(s) ready. Run
// returns the first error returned or panicked by any task, once the ready
// set it was drained from has run dry; it otherwise returns nil.
func (e *Engine) Run() error {
	for len(e.ready) > 0 || e.wake.Len() > 0 {
		for len(e.ready) > 0 {
			t := e.ready[0]
			e.ready = e.ready[1:]
			e.current = t
			t.turn <- struct{}{}
			y := <-t.yield
			e.current = nil
			if y.done && e.err == nil && y.err != nil {
				e.err = y.err
			}
		}
		if e.err != nil {
			break
		}
		if e.wake.Len() > 0 {
			top := heap.Pop(&e.wake).(*wakeEntry)
			e.advanceClocksTo(top)
			e.makeReady(top.task)
			for e.wake.Len() > 0 && e.wake[0].atNS == top.atNS && e.wake[0].clockReg == top.clockReg {
				next := heap.Pop(&e.wake).(*wakeEntry)
				e.makeReady(next.task)
			}
		}
	}
	e.tracker.Shutdown()
	return e.err
}

// advanceClocksTo moves the shared virtual-time cursor forward to the
// winning wake entry's absolute ns, sets that entry's own clock to its
// exact target tick (avoiding float round-trip error), and recomputes
// every other registered clock's tick_counter from the shared cursor, so
// every clock — not only the one whose wait just fired — reflects elapsed
// time.
func (e *Engine) advanceClocksTo(entry *wakeEntry) {
	e.nowNS = entry.atNS
	for _, c := range e.clocks {
		if c == entry.clock {
			c.ticks = entry.ticks
			continue
		}
		c.ticks = uint64(entry.atNS * c.mhz / 1000.0)
	}
}

// Component is the shape RunSimulation expects: a named entity plus a
// single task body.
type Component interface {
	Entity() *Entity
	Run() error
}

// RunSimulation spawns each component's Run method, in order, then drives
// the engine to quiescence.
func RunSimulation(e *Engine, components ...Component) error {
	for _, c := range components {
		e.Spawn(c.Entity(), c.Run)
	}
	return e.Run()
}
