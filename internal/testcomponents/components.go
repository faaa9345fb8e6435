// Package testcomponents provides small component implementations used
// only to exercise the engine's public contracts in tests: a source, a
// sink, an n-output router, and a stochastic drop filter. None of these are
// part of the engine's public surface — concrete reusable components are
// explicitly out of the engine's scope.
package testcomponents

import (
	"math/rand"

	"github.com/joeycumines/gwr-engine"
)

// Source emits a fixed sequence of values on Tx, once each, in order.
type Source struct {
	entity *gwr.Entity
	Tx     *gwr.OutPort[int]
	values []int
}

// NewSource creates a Source under parent emitting values in order.
func NewSource(e *gwr.Engine, parent *gwr.Entity, name string, values []int) *Source {
	ent := e.NewEntity(parent, name)
	return &Source{entity: ent, Tx: gwr.NewOutPort[int](ent, "tx"), values: values}
}

func (s *Source) Entity() *gwr.Entity { return s.entity }

func (s *Source) Run() error {
	for _, v := range s.values {
		s.Tx.Put(v)
	}
	return nil
}

// Sink counts every value it receives on Rx.
type Sink struct {
	entity  *gwr.Entity
	Rx      *gwr.InPort[int]
	count   int
	limit   int // stop after this many receives; 0 means unbounded (caller must close the topology another way)
}

// NewSink creates a Sink under parent that stops after limit receives.
func NewSink(e *gwr.Engine, parent *gwr.Entity, name string, limit int) *Sink {
	ent := e.NewEntity(parent, name)
	return &Sink{entity: ent, Rx: gwr.NewInPort[int](ent, "rx"), limit: limit}
}

func (s *Sink) Entity() *gwr.Entity { return s.entity }

func (s *Sink) NumSunk() int { return s.count }

func (s *Sink) Run() error {
	for i := 0; s.limit == 0 || i < s.limit; i++ {
		s.Rx.Get()
		s.count++
	}
	return nil
}

// Router reads from Rx and forwards each value to Outputs[selector(v)].
type Router struct {
	entity   *gwr.Entity
	Rx       *gwr.InPort[int]
	Outputs  []*gwr.OutPort[int]
	selector func(v int) int
	limit    int
}

// NewRouter creates an n-output Router under parent, forwarding each of
// limit received values to Outputs[selector(v)]. The default selector
// (pass nil) is identity: output index i = value.
func NewRouter(e *gwr.Engine, parent *gwr.Entity, name string, outputs int, limit int, selector func(int) int) *Router {
	ent := e.NewEntity(parent, name)
	r := &Router{entity: ent, Rx: gwr.NewInPort[int](ent, "rx"), limit: limit, selector: selector}
	if r.selector == nil {
		r.selector = func(v int) int { return v }
	}
	for i := 0; i < outputs; i++ {
		r.Outputs = append(r.Outputs, gwr.NewOutPort[int](ent, portName(i)))
	}
	return r
}

func portName(i int) string {
	return "tx" + string(rune('0'+i))
}

func (r *Router) Entity() *gwr.Entity { return r.entity }

func (r *Router) Run() error {
	for i := 0; i < r.limit; i++ {
		v := r.Rx.Get()
		r.Outputs[r.selector(v)].Put(v)
	}
	return nil
}

// DropFilter reads from Rx, dropping each value independently with
// probability dropProb according to a seeded PRNG (deterministic for a
// given seed), and forwards the values it keeps on Tx.
type DropFilter struct {
	entity    *gwr.Entity
	Rx        *gwr.InPort[int]
	Tx        *gwr.OutPort[int]
	dropProb  float64
	rng       *rand.Rand
	limit     int
	delivered int
}

// NewDropFilter creates a DropFilter under parent that reads limit values
// from Rx, forwarding the undropped ones on Tx.
func NewDropFilter(e *gwr.Engine, parent *gwr.Entity, name string, dropProb float64, seed int64, limit int) *DropFilter {
	ent := e.NewEntity(parent, name)
	return &DropFilter{
		entity:   ent,
		Rx:       gwr.NewInPort[int](ent, "rx"),
		Tx:       gwr.NewOutPort[int](ent, "tx"),
		dropProb: dropProb,
		rng:      rand.New(rand.NewSource(seed)),
		limit:    limit,
	}
}

func (f *DropFilter) Entity() *gwr.Entity { return f.entity }

func (f *DropFilter) NumDelivered() int { return f.delivered }

func (f *DropFilter) Run() error {
	for i := 0; i < f.limit; i++ {
		v := f.Rx.Get()
		if f.rng.Float64() >= f.dropProb {
			f.delivered++
			f.Tx.Put(v)
		}
	}
	return nil
}
