package bus

import (
	"context"
	"testing"
)

func TestEventSourceForLevelMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		level Priority
		want  EventSource
	}{
		{PriorityLevel4, EventIntrMaster4},
		{PriorityLevel5, EventIntrMaster5},
		{PriorityLevel6, EventIntrMaster6},
		{PriorityLevel7, EventIntrMaster7},
	}

	for _, c := range cases {
		if got := eventSourceForLevel(c.level); got != c.want {
			t.Errorf("eventSourceForLevel(%s) = %s, want %s", c.level, got, c.want)
		}
	}
}

func TestRunInterruptReleasesGrantAfterAck(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	e.mailbox.Intr.RequestedLevel = PriorityLevel6
	e.mailbox.Intr.Vectors[PriorityLevel6-PriorityLevel4] = 0o300
	e.accepted.Set(PriorityLevel6)

	pair := e.Mailbox().Events.Pair(EventIntrMaster6)

	go func() {
		waitUntilPendingNoT(pair)
		pair.Ack()
	}()

	e.runInterrupt(context.Background())

	if e.accepted.Has(PriorityLevel6) {
		t.Errorf("expected the accepted grant to be released after the interrupt completes")
	}

	if e.arbSub != arbNoop {
		t.Errorf("arbSub = %s, want %s", e.arbSub, arbNoop)
	}
}

func TestRunInterruptWarnsOnInvalidLevel(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	e.mailbox.Intr.RequestedLevel = PriorityDMA

	// Should return promptly without blocking on an event that will never be signalled.
	e.runInterrupt(context.Background())
}

func TestRunInterruptDrivesVectorOnLatchFabricThenClears(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	e.mailbox.Intr.RequestedLevel = PriorityLevel5
	e.mailbox.Intr.Vectors[PriorityLevel5-PriorityLevel4] = 0o200
	e.accepted.Set(PriorityLevel5)

	pair := e.Mailbox().Events.Pair(EventIntrMaster5)

	driven := make(chan [2]byte, 1)

	go func() {
		waitUntilPendingNoT(pair)

		lo, hi := vectorRegisters(e.cfg.Variant)

		got0, _ := e.LatchFabric().GetByte(lo)
		got1, _ := e.LatchFabric().GetByte(hi)
		driven <- [2]byte{got0, got1}

		pair.Ack()
	}()

	e.runInterrupt(context.Background())

	got := <-driven
	if want := [2]byte{Word(0o200).LoByte(), Word(0o200).HiByte()}; got != want {
		t.Errorf("vector on fabric while held = %v, want %v", got, want)
	}

	lo, hi := vectorRegisters(e.cfg.Variant)

	afterLo, _ := e.LatchFabric().GetByte(lo)
	afterHi, _ := e.LatchFabric().GetByte(hi)

	if afterLo != 0 || afterHi != 0 {
		t.Errorf("vector registers not cleared after runInterrupt: lo=%#02x hi=%#02x", afterLo, afterHi)
	}
}

func TestCancelInterruptReleasesRequestedLevel(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	e.RequestLevel(PriorityLevel5)
	e.accepted.Set(PriorityLevel5)
	e.mailbox.Intr.RequestedLevel = PriorityLevel5

	e.cancelInterrupt()

	if e.accepted.Has(PriorityLevel5) || e.requested.Has(PriorityLevel5) {
		t.Errorf("expected cancelInterrupt to release the requested level")
	}
}
