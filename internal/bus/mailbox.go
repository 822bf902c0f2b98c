package bus

// mailbox.go implements the shared mailbox record and its opcode set. In the real hardware this
// lives in memory shared between two coprocessors and the host; here it is a plain struct shared
// between the Engine goroutine (the "coprocessor domain") and whatever owns the Engine (the
// adapter, in the "host domain"). The single-writer discipline is unchanged: only the Engine
// writes Opcode back to none and the Signalled half of an EventPair; only the Mailbox's owner
// writes arguments, issues a new Opcode, and the Acked half of an EventPair.
//
// The discipline is enforced with atomics rather than a mutex: a plain atomic store from the
// writer side is a release, and a plain atomic load on the reader side is an acquire. The adapter
// must issue a memory fence between writing argument fields and writing the opcode; the
// coprocessor must likewise fence between clearing its outputs and clearing the opcode.

import (
	"fmt"
	"sync/atomic"
)

// Opcode identifies an operation requested of the coprocessor domain.
// Opcode zero means idle; the owner writes the opcode last, the Engine clears it to zero when done.
type Opcode uint8

const (
	OpcodeNone Opcode = iota
	OpcodeHalt
	OpcodeMailboxTest

	OpcodeLatchInit
	OpcodeLatchSet
	OpcodeLatchGet
	OpcodeLatchExerciser
	OpcodeLatchTimingTest

	OpcodeInitSignalSet
	OpcodeAddressOverlay
	OpcodeArbitrationMode

	OpcodeDMA
	OpcodeIntr
	OpcodeIntrCancel

	OpcodeCPUEnable
	OpcodeCPUBusAccess

	OpcodeDDRFillPattern
	OpcodeDDRSlaveMemory
)

func (op Opcode) String() string {
	switch op {
	case OpcodeNone:
		return "NONE"
	case OpcodeHalt:
		return "HALT"
	case OpcodeMailboxTest:
		return "MAILBOX-TEST"
	case OpcodeLatchInit:
		return "LATCH-INIT"
	case OpcodeLatchSet:
		return "LATCH-SET"
	case OpcodeLatchGet:
		return "LATCH-GET"
	case OpcodeLatchExerciser:
		return "LATCH-EXERCISER"
	case OpcodeLatchTimingTest:
		return "LATCH-TIMING-TEST"
	case OpcodeInitSignalSet:
		return "INIT-SIGNAL-SET"
	case OpcodeAddressOverlay:
		return "ADDRESS-OVERLAY"
	case OpcodeArbitrationMode:
		return "ARBITRATION-MODE"
	case OpcodeDMA:
		return "DMA"
	case OpcodeIntr:
		return "INTR"
	case OpcodeIntrCancel:
		return "INTR-CANCEL"
	case OpcodeCPUEnable:
		return "CPU-ENABLE"
	case OpcodeCPUBusAccess:
		return "CPU-BUS-ACCESS"
	case OpcodeDDRFillPattern:
		return "DDR-FILL-PATTERN"
	case OpcodeDDRSlaveMemory:
		return "DDR-SLAVE-MEMORY"
	default:
		return fmt.Sprintf("OPCODE(%d)", uint8(op))
	}
}

// EventSource names an asynchronous notification channel.
type EventSource int

const (
	EventDeviceRegister EventSource = iota
	EventDMA
	EventIntrMaster4
	EventIntrMaster5
	EventIntrMaster6
	EventIntrMaster7
	EventIntrSlave
	EventInit
	EventPower

	numEventSources
)

func (s EventSource) String() string {
	names := [...]string{
		"deviceregister", "dma",
		"intr-master[4]", "intr-master[5]", "intr-master[6]", "intr-master[7]",
		"intr-slave", "init", "power",
	}
	if int(s) < len(names) {
		return names[s]
	}

	return "event(?)"
}

// EventPair is a lock-free pending-notification flag: two rollover counters, Signalled (written
// only by the coprocessor side) and Acked (written only by the adapter side). An event is pending
// iff the two differ.
type EventPair struct {
	signalled atomic.Uint32
	acked     atomic.Uint32
}

// Signal increments the signalled counter. Only the coprocessor domain (the Engine) may call this.
func (p *EventPair) Signal() {
	p.signalled.Add(1)
}

// Ack brings the acked counter up to the signalled counter's value at the time of the call. Only
// the adapter may call this.
func (p *EventPair) Ack() {
	p.acked.Store(p.signalled.Load())
}

// Pending reports whether the event has been signalled since it was last acked.
func (p *EventPair) Pending() bool {
	return p.signalled.Load() != p.acked.Load()
}

// Drift returns signalled-acked, accounting for uint32 rollover. It should never exceed 1 in
// practice; a larger drift means the adapter has fallen behind.
func (p *EventPair) Drift() uint32 {
	return p.signalled.Load() - p.acked.Load()
}

// DMAStatus is the lifecycle state of a DMA sub-record.
type DMAStatus uint8

const (
	DMAReady DMAStatus = iota
	DMAArbitrating
	DMARunning
	DMATimedOutStop
	DMAInitStop
)

func (s DMAStatus) String() string {
	switch s {
	case DMAReady:
		return "ready"
	case DMAArbitrating:
		return "arbitrating"
	case DMARunning:
		return "running"
	case DMATimedOutStop:
		return "timed-out-stop"
	case DMAInitStop:
		return "init-stop"
	default:
		return "status(?)"
	}
}

// MaxDMAWords bounds the mailbox's DMA word buffer ("a word buffer up to a few thousand words",
//).
const MaxDMAWords = 4096

// DMASubRecord is the mailbox's DMA argument block.
type DMASubRecord struct {
	StartAddr   Addr
	WordCount   int
	CurrentAddr Addr
	Status      DMAStatus
	Cycle       CycleKind
	Origin      Origin
	Buffer      [MaxDMAWords]Word
}

// InterruptSubRecord is the mailbox's interrupt argument block. Vectors are
// indexed by priority level 4-7 (index = level-4); RequestedLevel/RequestedHandle name the request
// currently being executed by the interrupt-master state machine.
type InterruptSubRecord struct {
	Vectors         [4]uint8
	RequestedLevel  Priority
	RequestedHandle int
}

// ArbitratorSubRecord is the mailbox's arbitration argument block, consulted by
// the CPU-arbitrator worker.
type ArbitratorSubRecord struct {
	CPUPriority        Priority
	ArbitrationPending bool
}

// EventsBlock holds one EventPair per EventSource.
type EventsBlock struct {
	pairs [numEventSources]EventPair
}

// Pair returns the event pair for a source.
func (b *EventsBlock) Pair(src EventSource) *EventPair {
	return &b.pairs[src]
}

// Mailbox is the single shared record between the Engine (coprocessor domain) and its owner (the
// adapter, host domain). Its lifetime equals the Engine's lifetime; it is always accessed through
// an *Engine or *adapter.Adapter, never as a free-standing value.
type Mailbox struct {
	opcode atomic.Uint32 // Holds an Opcode; the sole cross-domain synchronization primitive.

	DMA  DMASubRecord
	Intr InterruptSubRecord
	Arb  ArbitratorSubRecord
	DDR  DDRSubRecord

	Events EventsBlock
}

// NewMailbox creates a mailbox in its idle state.
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Opcode reads the current opcode (acquire semantics via atomic load).
func (mb *Mailbox) Opcode() Opcode {
	return Opcode(mb.opcode.Load())
}

// Issue writes a new opcode. Callers must have finished writing every argument field the opcode
// depends on before calling Issue: the atomic store is the release fence that makes those writes
// visible before the coprocessor side observes the new opcode. Issue panics if the mailbox is not
// idle, since the adapter is required to wait for opcode-none before issuing the next request.
func (mb *Mailbox) Issue(op Opcode) {
	if mb.opcode.Load() != uint32(OpcodeNone) {
		panic("bus: mailbox: issue while busy")
	}

	mb.opcode.Store(uint32(op))
}

// Complete clears the opcode back to none. Only the Engine (coprocessor domain) calls this.
func (mb *Mailbox) Complete() {
	mb.opcode.Store(uint32(OpcodeNone))
}

// Idle reports whether the mailbox is ready to accept the next opcode.
func (mb *Mailbox) Idle() bool {
	return mb.opcode.Load() == uint32(OpcodeNone)
}
