package bus

import (
	"testing"
	"time"
)

func TestTickCPUWorkerGrantsDMAUnconditionally(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, func(cfg *Config) { cfg.ArbitrationMode = ArbitrationCPU })

	e.RequestLevel(PriorityDMA)
	e.tickCPUWorker()

	if e.cpuGranted != PriorityDMA {
		t.Fatalf("cpuGranted = %s, want %s", e.cpuGranted, PriorityDMA)
	}

	if e.cpuSackWait.IsZero() {
		t.Errorf("expected a sack-wait deadline to be armed")
	}
}

func TestTickCPUWorkerGrantsHighestInterruptAboveCPUPriority(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, func(cfg *Config) { cfg.ArbitrationMode = ArbitrationCPU })

	e.mailbox.Arb.CPUPriority = PriorityLevel4
	e.RequestLevel(PriorityLevel5)
	e.RequestLevel(PriorityLevel7)

	e.tickCPUWorker()

	if e.cpuGranted != PriorityLevel7 {
		t.Errorf("cpuGranted = %s, want highest pending level %s", e.cpuGranted, PriorityLevel7)
	}
}

func TestTickCPUWorkerWithholdsGrantAtOrBelowCPUPriority(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, func(cfg *Config) { cfg.ArbitrationMode = ArbitrationCPU })

	e.mailbox.Arb.CPUPriority = PriorityLevel7
	e.RequestLevel(PriorityLevel5)

	e.tickCPUWorker()

	if e.cpuGranted != PriorityNone {
		t.Errorf("cpuGranted = %s, want no grant when request does not exceed CPUPriority", e.cpuGranted)
	}
}

func TestTickCPUWorkerRetractsOnSackTimeout(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, func(cfg *Config) { cfg.ArbitrationMode = ArbitrationCPU })

	e.cpuGranted = PriorityLevel5
	e.cpuSackWait = time.Now().Add(-time.Millisecond)

	e.tickCPUWorker()

	if e.cpuGranted != PriorityNone {
		t.Errorf("cpuGranted = %s, want PriorityNone after sack timeout", e.cpuGranted)
	}

	if !e.cpuSackWait.IsZero() {
		t.Errorf("expected cpuSackWait to be cleared")
	}
}

func TestTickCPUWorkerWithholdsInterruptsDuringArbitrationPending(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, func(cfg *Config) { cfg.ArbitrationMode = ArbitrationCPU })

	e.mailbox.Arb.ArbitrationPending = true
	e.RequestLevel(PriorityLevel6)

	e.tickCPUWorker()

	if e.cpuGranted != PriorityNone {
		t.Errorf("cpuGranted = %s, want no interrupt grant while arbitration is pending", e.cpuGranted)
	}
}

func TestTickClientWorkerAcceptsRequestedGrant(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, func(cfg *Config) { cfg.ArbitrationMode = ArbitrationClient })

	e.RequestLevel(PriorityLevel5)
	e.SetGrantLine(PriorityLevel5, true)

	e.tickClientWorker()

	if !e.accepted.Has(PriorityLevel5) {
		t.Errorf("expected PriorityLevel5 to be accepted")
	}
}

func TestTickClientWorkerForwardsUnrequestedGrant(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, func(cfg *Config) { cfg.ArbitrationMode = ArbitrationClient })

	e.SetGrantLine(PriorityLevel6, true)

	e.tickClientWorker()

	if e.accepted.Has(PriorityLevel6) {
		t.Errorf("unrequested grant should not be accepted")
	}

	if !e.forwarded.Has(PriorityLevel6) {
		t.Errorf("unrequested grant should be forwarded")
	}
}

func TestTickNoneWorkerAcceptsDMAUnconditionally(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, func(cfg *Config) { cfg.ArbitrationMode = ArbitrationNone })

	e.RequestLevel(PriorityDMA)
	e.tickNoneWorker()

	if !e.accepted.Has(PriorityDMA) {
		t.Errorf("ArbitrationNone must accept DMA unconditionally")
	}

	if e.requested.Has(PriorityDMA) {
		t.Errorf("ArbitrationNone should clear the DMA request bit once accepted")
	}
}

func TestTickNoneWorkerForwardsAllGrants(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, func(cfg *Config) { cfg.ArbitrationMode = ArbitrationNone })

	e.SetGrantLine(PriorityLevel4, true)
	e.SetGrantLine(PriorityLevel7, true)

	e.tickNoneWorker()

	if !e.forwarded.Has(PriorityLevel4) || !e.forwarded.Has(PriorityLevel7) {
		t.Errorf("expected both externally-driven grants to be forwarded")
	}
}

func TestRequestMaskHighestPrefersDMA(t *testing.T) {
	t.Parallel()

	var m RequestMask
	m.Set(PriorityLevel7)
	m.Set(PriorityDMA)

	p, ok := m.Highest()
	if !ok || p != PriorityDMA {
		t.Errorf("Highest() = %s, %v, want DMA", p, ok)
	}
}

func TestRequestMaskHighestFallsBackToLevels(t *testing.T) {
	t.Parallel()

	var m RequestMask
	m.Set(PriorityLevel4)
	m.Set(PriorityLevel6)

	p, ok := m.Highest()
	if !ok || p != PriorityLevel6 {
		t.Errorf("Highest() = %s, %v, want level 6", p, ok)
	}
}

func TestRequestMaskClearAll(t *testing.T) {
	t.Parallel()

	var m RequestMask
	m.Set(PriorityLevel5)
	m.Set(PriorityDMA)

	m.ClearAll()

	if !m.Empty() {
		t.Errorf("expected mask to be empty after ClearAll")
	}
}
