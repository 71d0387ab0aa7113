// Package carousel implements the auto-advancing slide carousel.
//
// The carousel is a two-state machine. It is Running while exactly one
// timer is pending and Idle otherwise. Every event goes through a single
// transition table:
//
//	Init, PointerLeave, Visible   Idle    -> Running (guarded)
//	PointerEnter, Hidden          Running -> Idle
//	Tick                          Running -> Running, index+1
//	Prev, Next, GoTo(k)           cancel, move, re-arm (guarded)
//
// The guard keeps the machine Idle for good when reduced motion is requested
// or the interval is not positive.
//
// # Timers
//
// Timers come from a Scheduler. A timer never touches carousel state; when
// it fires it only posts a Tick. The owner delivers that Tick back through
// HandleTick on the same goroutine that delivers every other event. Ticks
// from released timers carry an old generation and are dropped.
//
//	c, err := carousel.New(slides, slideView, dotView,
//	    carousel.WithInterval(8*time.Second),
//	)
//	defer c.Close()
//
//	for t := range c.Ticks() {
//	    c.HandleTick(t)
//	}
package carousel
