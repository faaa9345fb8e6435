// Package gwr implements a cooperative, single-threaded discrete-event
// simulation engine.
//
// # Architecture
//
// The engine is built around an [Engine] core that owns an entity registry,
// a [Tracker] handle, a default [Clock] plus any additional clocks, and the
// set of cooperative tasks it schedules. Component authors build a tree of
// [Entity] values rooted at [Engine.Top], create [OutPort]/[InPort] pairs on
// their components, wire producers to consumers with [ConnectPort], and
// spawn one task per component with [Engine.Spawn] (or use [RunSimulation]
// to spawn a whole component list and drive the run in one call).
//
// Tasks exchange values exclusively through ports; a put/get rendezvous
// advances no virtual time. Tasks may additionally suspend on a [Clock] wait
// or an [Signal]/[Once] event to model latency. [Engine.Run] drives the
// scheduler until no task is runnable and no wake is scheduled.
//
// # Concurrency model
//
// Tasks are cooperative and never run concurrently with one another or with
// the scheduler loop: each task owns a goroutine that is parked on a channel
// receive except for the single instant the scheduler hands it the turn.
// Suspension happens exclusively at a clock wait, an event await, or a port
// operation; no other Go code in a task body may block.
//
// # Tracking
//
// The [Tracker] interface is the causal record of entity creation, task
// entry/exit, logs, timestamps, and port wiring. [NullTracker] discards
// everything; [StreamTracker] serializes records onto an io.Writer and may
// additionally mirror log records through a structured logiface logger.
//
// # Usage
//
//	e := gwr.NewEngine(gwr.WithTracker(gwr.NewNullTracker()))
//	src := newSource(e, e.Top(), "source")
//	snk := newSink(e, e.Top(), "sink")
//	gwr.ConnectPort(e, src.Tx, snk.Rx)
//	if err := gwr.RunSimulation(e, src, snk); err != nil {
//	    log.Fatal(err)
//	}
package gwr
