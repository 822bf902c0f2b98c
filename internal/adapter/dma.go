package adapter

// dma.go implements the adapter's DMA submission API: request a
// priority grant, load the mailbox's DMA sub-record, issue OpcodeDMA, and wait for the matching
// dma event, following the same issue-wait-ack cycle as every other mailbox opcode.

import (
	"context"
	"fmt"

	"github.com/qunibone/busengine/internal/bus"
)

// DMARequest describes one block transfer a device model wants the engine to perform.
type DMARequest struct {
	Addr      bus.Addr
	Cycle     bus.CycleKind // CycleDATI reads into Result.Buffer; CycleDATO/CycleDATOB write Buffer.
	Origin    bus.Origin
	Buffer    []bus.Word // Write data for DATO/DATOB; for DATI only its length is used and it is not modified.
}

// DMAResult reports the outcome of a submitted DMA request.
type DMAResult struct {
	Status      bus.DMAStatus
	CurrentAddr bus.Addr
	Buffer      []bus.Word
}

// SubmitDMA requests the DMA priority level, waits for it to be granted, runs the transfer, and
// returns once the engine has signalled completion. It blocks the calling goroutine for the
// duration of the transfer; callers that want concurrency should submit from their own goroutine.
func (a *Adapter) SubmitDMA(ctx context.Context, req DMARequest) (DMAResult, error) {
	if len(req.Buffer) == 0 {
		return DMAResult{}, fmt.Errorf("adapter: dma request: empty buffer")
	}

	if len(req.Buffer) > bus.MaxDMAWords {
		return DMAResult{}, fmt.Errorf("adapter: dma request: %d words exceeds max %d", len(req.Buffer), bus.MaxDMAWords)
	}

	a.mboxMu.Lock()
	defer a.mboxMu.Unlock()

	a.engine.RequestLevel(bus.PriorityDMA)

	if err := a.waitGranted(ctx, bus.PriorityDMA); err != nil {
		return DMAResult{}, fmt.Errorf("adapter: dma request: waiting for grant: %w", err)
	}

	mb := a.engine.Mailbox()
	rec := &mb.DMA
	rec.StartAddr = req.Addr
	rec.WordCount = len(req.Buffer)
	rec.Cycle = req.Cycle
	rec.Origin = req.Origin

	if req.Cycle != bus.CycleDATI {
		copy(rec.Buffer[:len(req.Buffer)], req.Buffer)
	}

	mb.Issue(bus.OpcodeDMA)
	a.dispatched.Add(1)

	if err := a.waitEvent(ctx, bus.EventDMA); err != nil {
		return DMAResult{}, fmt.Errorf("adapter: dma request: waiting for completion: %w", err)
	}

	if err := a.waitIdle(ctx); err != nil {
		return DMAResult{}, fmt.Errorf("adapter: dma request: waiting for mailbox idle: %w", err)
	}

	result := DMAResult{
		Status:      rec.Status,
		CurrentAddr: rec.CurrentAddr,
	}

	if req.Cycle == bus.CycleDATI {
		result.Buffer = make([]bus.Word, len(req.Buffer))
		copy(result.Buffer, rec.Buffer[:len(req.Buffer)])
	}

	var err error
	if rec.Status == bus.DMATimedOutStop {
		err = &bus.TimeoutError{Addr: rec.CurrentAddr, Elapsed: a.engine.Config().ReplyTimeout}
	}

	return result, err
}
