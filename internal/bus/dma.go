package bus

// dma.go implements the DMA-master state machine: multi-word block transfers
// driven by this engine once arbitration has granted the DMA request. Internal targets (memory or
// an emulated register) are served locally through the data-slave logic, bypassing external bus
// timing; external targets are not served in this software model (there is no second bus
// participant), so they always time out, matching the bus-timeout scenario exercised in tests.

import (
	"context"
	"time"
)

// DMAState is one state of the DMA-master state machine.
type DMAState uint8

const (
	DMAStateAddr DMAState = iota
	DMAStateDinStart
	DMAStateDinComplete
	DMAStateDoutStart
	DMAStateDoutComplete
	DMAStateFinish
)

func (s DMAState) String() string {
	switch s {
	case DMAStateAddr:
		return "addr"
	case DMAStateDinStart:
		return "din-start"
	case DMAStateDinComplete:
		return "din-complete"
	case DMAStateDoutStart:
		return "dout-start"
	case DMAStateDoutComplete:
		return "dout-complete"
	case DMAStateFinish:
		return "finish"
	default:
		return "state(?)"
	}
}

// dmaBlockGrantPollInterval is how often waitNextBlockGrant re-checks the grant while reasserting
// the DMA request between blocks, mirroring adapter.grantPollInterval's wall-clock-tick rationale.
const dmaBlockGrantPollInterval = 50 * time.Microsecond

// runDMA executes the DMA sub-record currently prepared in the mailbox, driven by the OpcodeDMA
// dispatch. It transfers at most Config.DMABlockSize words per block, deasserting SACK (releasing
// the accepted request bit) one handshake before the last word of each block, so the arbitrator
// may grant another requester in the gap before this engine reasserts its request and is granted
// the bus again for the next block. A transfer of WordCount <= DMABlockSize words runs as a single
// block, same as before block pacing existed.
func (e *Engine) runDMA(ctx context.Context) {
	rec := &e.mailbox.DMA
	rec.Status = DMARunning
	rec.CurrentAddr = rec.StartAddr

	addr := rec.StartAddr
	if rec.Cycle == CycleDATI && rec.Origin == OriginCPU {
		addr |= e.cfg.AddressOverlay
	}

	e.acceptCPUGrant()

	wordIdx := 0

	for wordIdx < rec.WordCount {
		blockWords := rec.WordCount - wordIdx
		if blockWords > e.cfg.DMABlockSize {
			blockWords = e.cfg.DMABlockSize
		}

		for j := 0; j < blockWords; j++ {
			if e.initLine {
				rec.Status = DMAInitStop
				e.releaseSack()
				e.mailbox.Events.Pair(EventDMA).Signal()

				return
			}

			if j == blockWords-1 {
				e.releaseSack()
			}

			wordAddr := addr + Addr(2*wordIdx)

			decoded := e.addrmap.Decode(wordAddr)

			var (
				value Word
				err   error
			)

			if decoded.Kind != DecodeForeign {
				if rec.Cycle == CycleDATI {
					value, err = e.DataCycle(ctx, wordAddr, CycleDATI, 0)
					rec.Buffer[wordIdx] = value
				} else {
					_, err = e.DataCycle(ctx, wordAddr, rec.Cycle, rec.Buffer[wordIdx])
				}
			} else {
				err = e.waitExternalReply(ctx, wordAddr)
			}

			rec.CurrentAddr = wordAddr

			if err != nil {
				rec.Status = DMATimedOutStop
				e.releaseSack()
				e.mailbox.Events.Pair(EventDMA).Signal()

				return
			}

			wordIdx++
		}

		if wordIdx >= rec.WordCount {
			break
		}

		if err := e.waitNextBlockGrant(ctx); err != nil {
			rec.Status = DMATimedOutStop
			e.mailbox.Events.Pair(EventDMA).Signal()

			return
		}
	}

	rec.Status = DMAReady
	e.mailbox.Events.Pair(EventDMA).Signal()
}

// waitNextBlockGrant reasserts the DMA request for the next block and blocks until this engine is
// granted the bus again or ctx is done. It ticks the configured arbitration worker itself rather
// than waiting for a future call to Run's own loop, since runDMA executes synchronously within the
// dispatch pass that invoked it. It ticks arbitration once before reasserting its own request, so
// any other requester left pending at the block boundary is the one considered first; this is what
// gives it a real chance to be granted during the gap before DMA resumes. It returns early, without
// an error, if INIT is asserted during the wait: the next block's own initLine check unwinds the
// transfer.
func (e *Engine) waitNextBlockGrant(ctx context.Context) error {
	e.tickArbitration()

	e.RequestLevel(PriorityDMA)

	if e.Granted(PriorityDMA) {
		e.acceptCPUGrant()
		return nil
	}

	ticker := time.NewTicker(dmaBlockGrantPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if e.initLine {
				return nil
			}

			e.tickArbitration()

			if e.Granted(PriorityDMA) {
				e.acceptCPUGrant()
				return nil
			}
		}
	}
}

// acceptCPUGrant cancels the CPU-arbitrator's SACK-acceptance timeout for a grant this engine is
// about to use. In the CPU-arbitration mode, this engine is both the arbitrator and the DMA
// master, so the timeout (meant to retract a grant a separate device never takes up) would
// otherwise stay armed across the whole SackTimeout window and block every later grant, including
// this engine's own next block. It is a no-op under the other arbitration modes, which never arm
// cpuSackWait.
func (e *Engine) acceptCPUGrant() {
	e.cpuSackWait = time.Time{}
}

// waitExternalReply blocks for the configured reply timeout, simulating an external bus slave that
// never answers (this software model has no second bus participant to answer on its behalf). It
// always returns ErrBusTimeout; the wait itself exists so elapsed-time assertions in tests observe
// a real timeout rather than an instant failure.
func (e *Engine) waitExternalReply(ctx context.Context, addr Addr) error {
	timer := time.NewTimer(e.cfg.ReplyTimeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return &TimeoutError{Addr: addr, Elapsed: e.cfg.ReplyTimeout}
	}
}

// releaseSack clears the DMA request/accepted bit, letting the arbitrator grant the next requester.
func (e *Engine) releaseSack() {
	e.releaseGrant(PriorityDMA)
}
