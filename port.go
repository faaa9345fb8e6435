package gwr

// portState models the state of a connected port pair.
type portState int

const (
	portIdle portState = iota
	portProducerParked
	portConsumerParked
)

// portCore is the shared rendezvous slot a connected OutPort/InPort pair
// hand values through. It does not exist until ConnectPort links a pair.
type portCore[T any] struct {
	engine *Engine
	state  portState
	value  T

	producerWaiter *taskHandle // parked via Put, waiting for a Get to arrive
	consumerWaiter *taskHandle // parked via StartGet/Get, waiting for a Put to arrive

	peeked     bool        // the consumer holds the value (via StartGet or a direct Put hand-off) until FinishGet
	finishWake *taskHandle // producer to release once FinishGet runs
}

// OutPort is the producer end of a capacity-1 rendezvous channel. It is
// Unconnected until paired with an InPort via ConnectPort.
type OutPort[T any] struct {
	path    string
	ownerID Id
	core    *portCore[T]
}

// InPort is the consumer end of a capacity-1 rendezvous channel. It is
// Unconnected until paired with an OutPort via ConnectPort.
type InPort[T any] struct {
	path    string
	ownerID Id
	core    *portCore[T]
}

// NewOutPort declares a producer port named name on owner. It is
// Unconnected until passed to ConnectPort.
func NewOutPort[T any](owner *Entity, name string) *OutPort[T] {
	return &OutPort[T]{path: owner.Path() + "::" + name, ownerID: owner.ID()}
}

// NewInPort declares a consumer port named name on owner. It is
// Unconnected until passed to ConnectPort.
func NewInPort[T any](owner *Entity, name string) *InPort[T] {
	return &InPort[T]{path: owner.Path() + "::" + name, ownerID: owner.ID()}
}

// Path returns the port's full, path-qualified name, used in diagnostics.
func (p *OutPort[T]) Path() string { return p.path }

// Path returns the port's full, path-qualified name, used in diagnostics.
func (p *InPort[T]) Path() string { return p.path }

// ConnectPort asserts both out and in are Unconnected and pairs them,
// transitioning both to Connected. Repeated connection on either end is a
// fatal configuration error. The pair is registered with the engine's
// tracker via Connect.
func ConnectPort[T any](e *Engine, out *OutPort[T], in *InPort[T]) {
	if out.core != nil {
		panic(configErrorf("%s already connected", out.path))
	}
	if in.core != nil {
		panic(configErrorf("%s already connected", in.path))
	}
	core := &portCore[T]{engine: e}
	out.core = core
	in.core = core
	e.tracker.Connect(out.ownerID, in.ownerID)
}

// Put places v into the pair's slot. If a consumer is already parked, the
// value is delivered immediately and Put returns without suspending the
// caller. Otherwise Put suspends the caller until a Get/FinishGet commits
// the value.
func (p *OutPort[T]) Put(v T) {
	c := p.requireConnected()
	switch c.state {
	case portConsumerParked:
		consumer := c.consumerWaiter
		c.consumerWaiter = nil
		c.value = v
		c.peeked = true // the consumer owns this value until its FinishGet
		c.state = portIdle
		c.engine.makeReady(consumer)
	case portIdle:
		if c.peeked {
			// The previous value is still with the consumer: wait for its
			// FinishGet before placing the next one.
			c.engine.suspend(func(t *taskHandle) {
				c.finishWake = t
			})
			p.Put(v)
			return
		}
		c.value = v
		c.state = portProducerParked
		c.engine.suspend(func(t *taskHandle) {
			c.producerWaiter = t
		})
	default:
		panic(configErrorf("%s: put called while a put is already outstanding", p.path))
	}
}

// TryPut checks that the pair is ready to accept a value (i.e. not already
// ProducerParked) without committing one; a subsequent Put must follow.
// TryPut never suspends: it returns at once when the pair is not
// ProducerParked, and panics with a configuration error when it is.
func (p *OutPort[T]) TryPut() {
	c := p.requireConnected()
	if c.state == portProducerParked {
		panic(configErrorf("%s: try_put called while a put is already outstanding", p.path))
	}
}

func (p *OutPort[T]) requireConnected() *portCore[T] {
	if p.core == nil {
		panic(configErrorf("%s not connected", p.path))
	}
	return p.core
}

func (p *InPort[T]) requireConnected() *portCore[T] {
	if p.core == nil {
		panic(configErrorf("%s not connected", p.path))
	}
	return p.core
}

// Get removes and returns the next value in FIFO order, suspending the
// caller if none is yet available.
func (p *InPort[T]) Get() T {
	v := p.StartGet()
	p.FinishGet()
	return v
}

// StartGet returns the next value without removing it from the port,
// suspending the caller if none is yet available. FinishGet must be called
// before any other operation on the port.
func (p *InPort[T]) StartGet() T {
	c := p.requireConnected()
	switch c.state {
	case portProducerParked:
		if c.peeked {
			panic(configErrorf("%s: start_get called while a get is already outstanding", p.path))
		}
		c.peeked = true
		c.finishWake = c.producerWaiter
		c.producerWaiter = nil
		return c.value
	case portIdle:
		c.state = portConsumerParked
		c.engine.suspend(func(t *taskHandle) {
			c.consumerWaiter = t
		})
		c.peeked = true
		return c.value
	default:
		panic(configErrorf("%s: start_get called while a get is already outstanding", p.path))
	}
}

// FinishGet completes the two-phase receive started by StartGet, releasing
// the producer if one is still parked waiting on this value.
func (p *InPort[T]) FinishGet() {
	c := p.requireConnected()
	if !c.peeked {
		panic(configErrorf("%s: finish_get called without a preceding start_get", p.path))
	}
	c.peeked = false
	c.state = portIdle
	if c.finishWake != nil {
		c.engine.makeReady(c.finishWake)
		c.finishWake = nil
	}
}
