package adapter

// intr.go implements the adapter's interrupt submission API: request
// an interrupt level, wait for the grant, load the vector, issue OpcodeIntr, and wait for the
// matching intr-master event. A per-level FIFO is responsibility for the
// adapter to keep; here there is no queue: every request blocks on mboxMu, which serializes
// requests of all levels one at a time, in no guaranteed order.

import (
	"context"
	"fmt"

	"github.com/qunibone/busengine/internal/bus"
)

// InterruptRequest describes one interrupt vector a device model wants transmitted.
type InterruptRequest struct {
	Level  bus.Priority // PriorityLevel4..PriorityLevel7.
	Vector uint8
}

func eventSourceForLevel(level bus.Priority) (bus.EventSource, error) {
	switch level {
	case bus.PriorityLevel4:
		return bus.EventIntrMaster4, nil
	case bus.PriorityLevel5:
		return bus.EventIntrMaster5, nil
	case bus.PriorityLevel6:
		return bus.EventIntrMaster6, nil
	case bus.PriorityLevel7:
		return bus.EventIntrMaster7, nil
	default:
		return 0, fmt.Errorf("adapter: interrupt request: invalid level %s", level)
	}
}

// SubmitInterrupt requests req.Level, waits for the grant, and blocks until the vector has been
// transmitted. It holds mboxMu for the whole cycle, so concurrent requests, for the same or
// different levels, run one after another like every other mailbox opcode.
func (a *Adapter) SubmitInterrupt(ctx context.Context, req InterruptRequest) error {
	src, err := eventSourceForLevel(req.Level)
	if err != nil {
		return err
	}

	a.mboxMu.Lock()
	defer a.mboxMu.Unlock()

	mb := a.engine.Mailbox()
	mb.Intr.RequestedLevel = req.Level
	mb.Intr.Vectors[req.Level-bus.PriorityLevel4] = req.Vector

	a.engine.RequestLevel(req.Level)

	if err := a.waitGranted(ctx, req.Level); err != nil {
		return fmt.Errorf("adapter: interrupt request: waiting for grant: %w", err)
	}

	mb.Issue(bus.OpcodeIntr)
	a.dispatched.Add(1)

	if err := a.waitEvent(ctx, src); err != nil {
		return fmt.Errorf("adapter: interrupt request: waiting for completion: %w", err)
	}

	return a.waitIdle(ctx)
}

// CancelInterrupt withdraws a previously-requested level before it has been granted (the
// intr-cancel opcode). It is a programming error to call this after SubmitInterrupt has already
// returned for the same level.
func (a *Adapter) CancelInterrupt(ctx context.Context, level bus.Priority) error {
	a.mboxMu.Lock()
	defer a.mboxMu.Unlock()

	mb := a.engine.Mailbox()
	mb.Intr.RequestedLevel = level

	mb.Issue(bus.OpcodeIntrCancel)
	a.dispatched.Add(1)

	return a.waitIdle(ctx)
}
