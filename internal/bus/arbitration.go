package bus

// arbitration.go implements the three arbitration workers: the device-side
// client worker, the CPU-side arbitrator worker, and the diagnostic no-arbitration worker. Exactly
// one runs at a time, selected by Config.ArbitrationMode.

import "time"

// arbSubState is the device worker's sub-state enum.
type arbSubState uint8

const (
	arbGrantCheck arbSubState = iota
	arbDMAGrantRplySyncWait
	arbIntrVector
	arbIntrComplete
	arbNoop
)

func (s arbSubState) String() string {
	switch s {
	case arbGrantCheck:
		return "grant-check"
	case arbDMAGrantRplySyncWait:
		return "dma-grant-rply-sync-wait"
	case arbIntrVector:
		return "intr-vector"
	case arbIntrComplete:
		return "intr-complete"
	case arbNoop:
		return "noop"
	default:
		return "substate(?)"
	}
}

// grantLines is the incoming grant mask observed on the bus this tick. In the absence of real
// hardware, it is whatever the CPU worker asserted into e.cpuGranted on a prior tick, translated
// into a mask; a standalone client-mode engine (no local CPU worker) has nothing to observe and
// never receives a grant unless an external arbitrator drives the grant lines through
// SetGrantLine.
func (e *Engine) grantLines() RequestMask {
	if e.externalGrant.Empty() && e.cpuGranted != PriorityNone {
		var m RequestMask
		m.Set(e.cpuGranted)

		return m
	}

	return e.externalGrant
}

// SetGrantLine drives an externally-arbitrated grant line, used by tests and by an adapter bridging
// to a real bus where another participant is the arbitrator.
func (e *Engine) SetGrantLine(p Priority, asserted bool) {
	if asserted {
		e.externalGrant.Set(p)
	} else {
		e.externalGrant.Clear(p)
	}
}

// RequestLevel asserts this engine's request for a priority level or DMA, raising the
// corresponding outgoing request line based on the adapter's request mask.
func (e *Engine) RequestLevel(p Priority) { e.requested.Set(p) }

// tickClientWorker runs the device worker's one-tick logic.
func (e *Engine) tickClientWorker() {
	grants := e.grantLines()

	for p := PriorityDMA; ; {
		if grants.Has(p) {
			if e.requested.Has(p) {
				e.acceptGrant(p)
			} else if !e.forwarded.Has(p) {
				e.forwarded.Set(p)
				e.log.Debug("grant pass-through", "level", p)
			}
		} else {
			e.forwarded.Clear(p)
		}

		if p == PriorityLevel4 {
			break
		}

		if p == PriorityDMA {
			p = PriorityLevel7
		} else {
			p--
		}
	}
}

// acceptGrant implements the device worker's "grant for a level we did request is accepted"
// branch: assert SACK and let the DMA or interrupt opcode dispatch (already prepared by the
// adapter before requesting) proceed. The request bit stays set until releaseGrant clears it.
func (e *Engine) acceptGrant(p Priority) {
	if e.accepted.Has(p) {
		return
	}

	e.accepted.Set(p)
	e.arbSub = arbGrantCheck

	e.log.Debug("grant accepted", "level", p)
}

// tickCPUWorker runs the CPU-arbitrator worker's one-tick logic: grant DMA unconditionally absent
// an active SACK wait, grant the highest pending interrupt request only between instructions and
// only if it strictly exceeds CPUPriority, and retract an ungranted SACK after the configured
// timeout.
func (e *Engine) tickCPUWorker() {
	if !e.cpuSackWait.IsZero() {
		if time.Now().After(e.cpuSackWait) {
			e.log.Warn("arbitration sack timeout, retracting grant", "level", e.cpuGranted)
			e.cpuGranted = PriorityNone
			e.cpuSackWait = time.Time{}
		}

		return
	}

	if e.requested.Has(PriorityDMA) {
		e.grantAndArmSackWait(PriorityDMA)
		return
	}

	if e.mailbox.Arb.ArbitrationPending {
		// "Fetching a new program status word" sentinel: no interrupt grants mid-fetch.
		return
	}

	level, ok := e.highestInterruptRequest()
	if !ok || level <= e.mailbox.Arb.CPUPriority {
		return
	}

	e.grantAndArmSackWait(level)
}

func (e *Engine) grantAndArmSackWait(p Priority) {
	e.cpuGranted = p
	e.cpuSackWait = time.Now().Add(e.cfg.SackTimeout)
}

// highestInterruptRequest returns the highest pending interrupt-level request (excluding DMA).
func (e *Engine) highestInterruptRequest() (Priority, bool) {
	for p := PriorityLevel7; p >= PriorityLevel4; p-- {
		if e.requested.Has(p) {
			return p, true
		}
	}

	return PriorityNone, false
}

// tickNoneWorker runs the diagnostic no-arbitration worker:
// forwards every grant and accepts DMA unconditionally.
func (e *Engine) tickNoneWorker() {
	e.accepted.Set(PriorityDMA)
	e.requested.Clear(PriorityDMA)

	grants := e.grantLines()
	e.forwarded = grants
}
