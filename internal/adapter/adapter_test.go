package adapter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/qunibone/busengine/internal/bus"
)

// fakeDevice records every callback the adapter delivers, for assertions.
type fakeDevice struct {
	mu sync.Mutex

	accesses []int
	inits    []bool
	power    []bool
}

func (f *fakeDevice) OnRegisterAccess(devRegIdx int, _ *bus.RegisterDescriptor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accesses = append(f.accesses, devRegIdx)
}

func (f *fakeDevice) OnInit(asserted bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inits = append(f.inits, asserted)
}

func (f *fakeDevice) OnPowerChange(ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.power = append(f.power, ok)
}

func (f *fakeDevice) accessCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.accesses)
}

func newTestAdapter(t *testing.T, configure func(*bus.Config)) (*Adapter, context.Context, context.CancelFunc) {
	t.Helper()

	cfg := bus.DefaultConfig()
	cfg.ArbitrationMode = bus.ArbitrationCPU
	if configure != nil {
		configure(&cfg)
	}

	engine, err := bus.New(bus.WithConfig(cfg))
	if err != nil {
		t.Fatalf("bus.New: %s", err)
	}

	a := New(engine)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	go func() { _ = a.Run(ctx) }()

	return a, ctx, cancel
}

func TestRegisterDeregisterDevice(t *testing.T) {
	t.Parallel()

	a, _, cancel := newTestAdapter(t, nil)
	defer cancel()

	dev := &fakeDevice{}
	h := a.RegisterDevice(dev)

	if h == 0 {
		t.Fatalf("expected a non-zero device handle")
	}

	a.DeregisterDevice(h)
}

func TestInstallRegisterRoutesEventsToOwningDevice(t *testing.T) {
	t.Parallel()

	a, ctx, cancel := newTestAdapter(t, nil)
	defer cancel()

	dev := &fakeDevice{}
	devHandle := a.RegisterDevice(dev)

	addr := a.Engine().Config().IOPageStart

	h, err := a.InstallRegister(addr, devHandle, 3, bus.RegisterDescriptor{WritableMask: 0xffff, Flags: bus.EventOnWrite})
	if err != nil {
		t.Fatalf("InstallRegister: %s", err)
	}

	if _, err := a.Engine().DataCycle(ctx, addr, bus.CycleDATO, 0o42); err != nil {
		t.Fatalf("DataCycle: %s", err)
	}

	deadline := time.Now().Add(time.Second)
	for dev.accessCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	if dev.accessCount() == 0 {
		t.Fatalf("device model never received OnRegisterAccess")
	}

	if got := a.Descriptor(h).Value; got != 0o42 {
		t.Errorf("descriptor value = %s, want %s", got, bus.Word(0o42))
	}

	if err := a.UninstallRegister(addr); err != nil {
		t.Fatalf("UninstallRegister: %s", err)
	}
}

func TestInitEventBroadcastsToAllDevices(t *testing.T) {
	t.Parallel()

	a, _, cancel := newTestAdapter(t, nil)
	defer cancel()

	dev1 := &fakeDevice{}
	dev2 := &fakeDevice{}
	a.RegisterDevice(dev1)
	a.RegisterDevice(dev2)

	a.Engine().SetInitLine(true)

	deadline := time.Now().Add(time.Second)
	for len(dev1.inits) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	dev1.mu.Lock()
	dev2.mu.Lock()
	ok1, ok2 := len(dev1.inits) > 0, len(dev2.inits) > 0
	dev1.mu.Unlock()
	dev2.mu.Unlock()

	if !ok1 || !ok2 {
		t.Fatalf("init event not delivered to both devices: dev1=%v dev2=%v", ok1, ok2)
	}
}

func TestSubmitDMARoundTrip(t *testing.T) {
	t.Parallel()

	a, ctx, cancel := newTestAdapter(t, nil)
	defer cancel()

	write := DMARequest{
		Addr:   0o2000,
		Cycle:  bus.CycleDATO,
		Origin: bus.OriginDevice,
		Buffer: []bus.Word{0o1, 0o2, 0o3},
	}

	if _, err := a.SubmitDMA(ctx, write); err != nil {
		t.Fatalf("SubmitDMA write: %s", err)
	}

	read := DMARequest{
		Addr:   0o2000,
		Cycle:  bus.CycleDATI,
		Origin: bus.OriginDevice,
		Buffer: make([]bus.Word, 3),
	}

	result, err := a.SubmitDMA(ctx, read)
	if err != nil {
		t.Fatalf("SubmitDMA read: %s", err)
	}

	want := []bus.Word{0o1, 0o2, 0o3}
	for i, w := range want {
		if result.Buffer[i] != w {
			t.Errorf("word %d = %s, want %s", i, result.Buffer[i], w)
		}
	}

	dispatched, _ := a.Stats()
	if dispatched < 2 {
		t.Errorf("dispatched = %d, want at least 2", dispatched)
	}
}

func TestSubmitDMARejectsOversizedBuffer(t *testing.T) {
	t.Parallel()

	a, ctx, cancel := newTestAdapter(t, nil)
	defer cancel()

	req := DMARequest{
		Addr:   0,
		Cycle:  bus.CycleDATO,
		Buffer: make([]bus.Word, bus.MaxDMAWords+1),
	}

	if _, err := a.SubmitDMA(ctx, req); err == nil {
		t.Fatalf("expected an error for a buffer exceeding MaxDMAWords")
	}
}

func TestSubmitDMARejectsEmptyBuffer(t *testing.T) {
	t.Parallel()

	a, ctx, cancel := newTestAdapter(t, nil)
	defer cancel()

	if _, err := a.SubmitDMA(ctx, DMARequest{}); err == nil {
		t.Fatalf("expected an error for an empty buffer")
	}
}

func TestSubmitInterrupt(t *testing.T) {
	t.Parallel()

	a, ctx, cancel := newTestAdapter(t, nil)
	defer cancel()

	if err := a.SubmitInterrupt(ctx, InterruptRequest{Level: bus.PriorityLevel5, Vector: 0o250}); err != nil {
		t.Fatalf("SubmitInterrupt: %s", err)
	}
}

func TestCancelInterruptUsesRequestedLevel(t *testing.T) {
	t.Parallel()

	a, ctx, cancel := newTestAdapter(t, nil)
	defer cancel()

	a.Engine().RequestLevel(bus.PriorityLevel6)

	if err := a.CancelInterrupt(ctx, bus.PriorityLevel6); err != nil {
		t.Fatalf("CancelInterrupt: %s", err)
	}

	if a.Engine().Mailbox().Intr.RequestedLevel != bus.PriorityLevel6 {
		t.Errorf("mailbox did not retain the cancelled level before dispatch")
	}
}

func TestEventSourceForLevelRejectsInvalidLevel(t *testing.T) {
	t.Parallel()

	if _, err := eventSourceForLevel(bus.PriorityDMA); err == nil {
		t.Fatalf("expected an error for a non-interrupt level")
	}
}
