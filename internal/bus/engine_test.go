package bus

import (
	"context"
	"testing"
	"time"
)

func newTestEngine(t *testing.T, configure func(*Config)) *Engine {
	t.Helper()

	cfg := DefaultConfig()
	if configure != nil {
		configure(&cfg)
	}

	e, err := New(WithConfig(cfg))
	if err != nil {
		t.Fatalf("New: %s", err)
	}

	return e
}

// TestRegisterWriteReadBack is scenario 1: a device register write followed by
// a read-back, with a deviceregister event raised on each access.
func TestRegisterWriteReadBack(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	h, err := e.AddressMap().Install(e.Config().IOPageStart, RegisterDescriptor{
		WritableMask: 0xffff,
		Flags:        EventOnRead | EventOnWrite,
	})
	if err != nil {
		t.Fatalf("Install: %s", err)
	}

	ctx := context.Background()
	addr := e.Config().IOPageStart

	if _, err := e.DataCycle(ctx, addr, CycleDATO, 0o123456); err != nil {
		t.Fatalf("write: %s", err)
	}

	pair := e.Mailbox().Events.Pair(EventDeviceRegister)
	if !pair.Pending() {
		t.Errorf("expected deviceregister event pending after write")
	}
	pair.Ack()

	got, err := e.DataCycle(ctx, addr, CycleDATI, 0)
	if err != nil {
		t.Fatalf("read: %s", err)
	}

	if got != 0o123456 {
		t.Errorf("read back %s, want %s", got, Word(0o123456))
	}

	if !pair.Pending() {
		t.Errorf("expected deviceregister event pending after read")
	}

	if h == HandleNone {
		t.Errorf("got HandleNone for a real register")
	}
}

func TestDataCycleForeignAddress(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	_, err := e.DataCycle(context.Background(), e.Config().MemoryLimit, CycleDATI, 0)
	if err == nil {
		t.Fatalf("expected ErrNoResponder for a foreign address")
	}
}

func TestDataBlockAbortsOnInit(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	e.SetInitLine(true)

	_, err := e.DataBlock(context.Background(), 0, CycleDATI, make([]Word, 4))
	if err == nil {
		t.Fatalf("expected ErrInitAbort while INIT is asserted")
	}
}

// TestMemoryDMA is scenario 2.
func TestMemoryDMA(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, func(cfg *Config) {
		cfg.ArbitrationMode = ArbitrationCPU
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	go func() { _ = e.Run(ctx) }()

	words := [4]Word{0xAAAA, 0x5555, 0x0001, 0xFFFF}

	mb := e.Mailbox()
	mb.DMA.StartAddr = 0o1000
	mb.DMA.WordCount = len(words)
	mb.DMA.Cycle = CycleDATO
	mb.DMA.Origin = OriginDevice
	copy(mb.DMA.Buffer[:], words[:])

	e.RequestLevel(PriorityDMA)
	mb.Issue(OpcodeDMA)

	waitForIdle(t, mb)

	if mb.DMA.Status != DMAReady {
		t.Fatalf("DMA status = %s, want %s", mb.DMA.Status, DMAReady)
	}

	for i, w := range words {
		got, err := e.DataCycle(ctx, Addr(0o1000+2*i), CycleDATI, 0)
		if err != nil {
			t.Fatalf("read back word %d: %s", i, err)
		}

		if got != w {
			t.Errorf("word %d = %s, want %s", i, got, w)
		}
	}
}

// TestDMABusTimeout is scenario 3.
func TestDMABusTimeout(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, func(cfg *Config) {
		cfg.ArbitrationMode = ArbitrationCPU
		cfg.ReplyTimeout = time.Millisecond
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	go func() { _ = e.Run(ctx) }()

	mb := e.Mailbox()
	mb.DMA.StartAddr = 0o200000
	mb.DMA.WordCount = 1
	mb.DMA.Cycle = CycleDATI
	mb.DMA.Origin = OriginDevice

	start := time.Now()

	e.RequestLevel(PriorityDMA)
	mb.Issue(OpcodeDMA)

	waitForIdle(t, mb)

	elapsed := time.Since(start)

	if mb.DMA.Status != DMATimedOutStop {
		t.Fatalf("DMA status = %s, want %s", mb.DMA.Status, DMATimedOutStop)
	}

	if mb.DMA.CurrentAddr != 0o200000 {
		t.Errorf("current-address = %s, want %s", mb.DMA.CurrentAddr, Addr(0o200000))
	}

	if bound := 2 * e.Config().ReplyTimeout; elapsed > bound+100*time.Millisecond {
		t.Errorf("elapsed %s exceeds 2x reply timeout bound %s", elapsed, bound)
	}
}

// TestInitResetsRegistersAndRequests is scenario 4.
func TestInitResetsRegistersAndRequests(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, func(cfg *Config) {
		cfg.ArbitrationMode = ArbitrationClient
	})

	h, err := e.AddressMap().Install(e.Config().IOPageStart, RegisterDescriptor{
		Reset:        0o100000,
		WritableMask: 0o177777,
	})
	if err != nil {
		t.Fatalf("Install: %s", err)
	}

	e.AddressMap().Descriptor(h).Value = 0
	e.RequestLevel(PriorityLevel5)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	go func() { _ = e.Run(ctx) }()

	e.SetInitLine(true)

	// Acknowledge the init event as soon as it is raised, so holdInitBlock does not wait out
	// the full elongation timeout.
	ackInitEvents(ctx, e)

	time.Sleep(5 * time.Millisecond)
	e.SetInitLine(false)
	ackInitEvents(ctx, e)
	time.Sleep(5 * time.Millisecond)

	if got := e.AddressMap().Descriptor(h).Value; got != 0o100000 {
		t.Errorf("register value after init = %s, want %s", got, Word(0o100000))
	}

	if e.Requested(PriorityLevel5) {
		t.Errorf("level 5 request still asserted after init")
	}
}

func ackInitEvents(ctx context.Context, e *Engine) {
	go func() {
		pair := e.Mailbox().Events.Pair(EventInit)
		deadline := time.Now().Add(200 * time.Millisecond)

		for time.Now().Before(deadline) {
			if ctx.Err() != nil {
				return
			}

			if pair.Pending() {
				pair.Ack()
				return
			}

			time.Sleep(time.Microsecond)
		}
	}()
}

func waitForIdle(t *testing.T, mb *Mailbox) {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for !mb.Idle() {
		if time.Now().After(deadline) {
			t.Fatalf("mailbox did not return to idle in time")
		}

		time.Sleep(time.Microsecond)
	}
}

func TestGrantedChecksBothAcceptedAndCPUGrant(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, func(cfg *Config) {
		cfg.ArbitrationMode = ArbitrationCPU
	})

	if e.Granted(PriorityDMA) {
		t.Fatalf("nothing granted yet")
	}

	e.cpuGranted = PriorityDMA

	if !e.Granted(PriorityDMA) {
		t.Errorf("Granted should observe cpuGranted")
	}

	e.releaseGrant(PriorityDMA)

	if e.Granted(PriorityDMA) {
		t.Errorf("releaseGrant should clear cpuGranted")
	}
}
