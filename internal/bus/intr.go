package bus

// intr.go implements the interrupt-master half of the bus engine: transmitting a vector once a
// grant has been accepted for an interrupt level, and cancelling a request before it is granted.
// The interrupt-slave half (receiving a vector in the emulated-CPU variant) is not implemented;
// nothing signals EventIntrSlave. The per-level FIFOs themselves are adapter state; the
// engine only executes the single in-flight request the adapter has already loaded into the
// mailbox's interrupt sub-record.

import "context"

// eventSourceForLevel maps an interrupt priority level to its mailbox event source.
func eventSourceForLevel(p Priority) EventSource {
	switch p {
	case PriorityLevel4:
		return EventIntrMaster4
	case PriorityLevel5:
		return EventIntrMaster5
	case PriorityLevel6:
		return EventIntrMaster6
	case PriorityLevel7:
		return EventIntrMaster7
	default:
		return EventIntrMaster4
	}
}

// runInterrupt executes the prepared interrupt sub-record's interrupt branch: place the vector on
// the data lines, assert INTR, wait for the CPU's reply, then deassert and release the accepted
// grant so the arbitrator may proceed.
func (e *Engine) runInterrupt(ctx context.Context) {
	rec := &e.mailbox.Intr
	level := rec.RequestedLevel

	vectorIdx := int(level) - int(PriorityLevel4)
	if vectorIdx < 0 || vectorIdx >= len(rec.Vectors) {
		e.log.Warn("interrupt opcode with invalid level", "level", level)
		return
	}

	e.arbSub = arbIntrVector

	if err := e.driveVector(Word(rec.Vectors[vectorIdx])); err != nil {
		e.log.Warn("latch fabric: drive vector failed", "level", level, "err", err)
	}

	e.arbSub = arbIntrComplete

	e.holdReplyForEvent(ctx, eventSourceForLevel(level))

	e.clearVectorLines()

	e.releaseGrant(level)
	e.arbSub = arbNoop
}

// cancelInterrupt implements OpcodeIntrCancel: withdraws a prepared interrupt request before it is
// granted, clearing the request bit without transmitting a vector.
func (e *Engine) cancelInterrupt() {
	e.releaseGrant(e.mailbox.Intr.RequestedLevel)
}
