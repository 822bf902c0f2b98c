package bus

// init.go implements the initialization state machine: power/INIT edge
// detection and the event hand-off that blocks the CPU from the bus while INIT propagates to every
// emulated device.

import (
	"context"
	"time"
)

// InitState is one state of the initialization state machine.
type InitState uint8

const (
	InitIdle InitState = iota
	InitAsserted
	InitNegated
)

func (s InitState) String() string {
	switch s {
	case InitIdle:
		return "idle"
	case InitAsserted:
		return "init-asserted"
	case InitNegated:
		return "init-negated"
	default:
		return "state(?)"
	}
}

// sampleInit runs one pass of the initialization state machine: it samples
// the power and INIT lines, raises a power event on any change, on the rising INIT edge clears every
// priority request and resets the register descriptors, and on each INIT edge raises an init
// event and holds the CPU-blocking dummy DMA request until the
// adapter acknowledges the event or the elongation timeout is reached.
func (e *Engine) sampleInit(ctx context.Context) {
	if e.powerOK != e.lastPowerOK {
		e.lastPowerOK = e.powerOK
		e.mailbox.Events.Pair(EventPower).Signal()
	}

	switch e.initState {
	case InitIdle:
		if e.initLine {
			e.enterInitAsserted(ctx)
		}

	case InitAsserted:
		if !e.initLine {
			e.enterInitNegated(ctx)
		}

	case InitNegated:
		if e.initLine {
			e.enterInitAsserted(ctx)
		} else {
			e.initState = InitIdle
		}
	}
}

func (e *Engine) enterInitAsserted(ctx context.Context) {
	e.initState = InitAsserted

	e.requested.ClearAll()
	e.accepted.ClearAll()
	e.forwarded.ClearAll()

	e.addrmap.ResetAll()

	e.holdInitBlock(ctx)
}

func (e *Engine) enterInitNegated(ctx context.Context) {
	e.initState = InitNegated

	e.holdInitBlock(ctx)
}

// holdInitBlock raises an init event and holds the CPU-blocking dummy request until the adapter
// acknowledges it or InitElongation elapses, logging if the timeout is reached.
func (e *Engine) holdInitBlock(ctx context.Context) {
	e.inhibit |= InhibitInitElongation
	e.dummyHeld = true

	defer func() {
		e.inhibit &^= InhibitInitElongation
		e.dummyHeld = false
	}()

	pair := e.mailbox.Events.Pair(EventInit)
	pair.Signal()

	e.waitInitAck(ctx, pair)
}

func (e *Engine) waitInitAck(ctx context.Context, pair *EventPair) {
	timeout := e.cfg.InitElongation
	deadline := time.Now().Add(timeout)

	for pair.Pending() {
		if time.Now().After(deadline) {
			e.log.Warn("init elongation timeout reached", "timeout", timeout)
			return
		}

		if ctx.Err() != nil {
			return
		}

		time.Sleep(time.Microsecond)
	}
}
