package bus

// config.go collects the engine's configuration knobs and the functional
// options used to build an Engine.

import (
	"time"
)

// ArbitrationMode selects which arbitration worker runs.
type ArbitrationMode uint8

const (
	// ArbitrationNone forwards every grant and accepts DMA requests unconditionally; used in
	// diagnostic modes where the real CPU is disabled.
	ArbitrationNone ArbitrationMode = iota

	// ArbitrationClient runs the device-side worker: requests levels, forwards grants it did
	// not ask for, accepts grants it did.
	ArbitrationClient

	// ArbitrationCPU runs the CPU-side arbitrator worker.
	ArbitrationCPU
)

func (m ArbitrationMode) String() string {
	switch m {
	case ArbitrationNone:
		return "none"
	case ArbitrationClient:
		return "client"
	case ArbitrationCPU:
		return "cpu"
	default:
		return "mode(?)"
	}
}

// InhibitReason is a bit in the CPU bus-access inhibit mask.
type InhibitReason uint8

const (
	InhibitARMInitiated   InhibitReason = 1 << 0
	InhibitInitElongation InhibitReason = 1 << 1
)

// Config holds every engine tunable. A zero Config is invalid; use DefaultConfig and override
// fields, or New with OptionFns.
type Config struct {
	AddressWidth AddressWidth
	Variant      Variant

	// MemoryStart and MemoryLimit bound the emulated-memory window: [MemoryStart, MemoryLimit).
	MemoryStart Addr
	MemoryLimit Addr

	// IOPageStart is the first address of the I/O page (the register handle table); everything
	// from here to the top of the address space is I/O-page space. It is fixed per address
	// width: the I/O page is always the top 8 KiB of the address space.
	IOPageStart Addr

	ArbitrationMode ArbitrationMode

	// CPUPriority is the CPU's current priority level, consulted by the CPU-arbitrator worker.
	// It is mutated at runtime through the mailbox's arbitrator sub-record.
	CPUPriority Priority

	// DMABlockSize is the number of words transferred per block before the arbitrator may grant
	// the next requester; 1..8 for the QBUS variant, fixed at 8 for UNIBUS.
	DMABlockSize int

	// AddressOverlay is OR'd onto outgoing DMA addresses for plain memory reads when the
	// emulated-CPU variant is active with a boot ROM.
	AddressOverlay Addr

	// Timeouts
	ReplyTimeout   time.Duration // Bus-level reply timeout during external DMA (microseconds).
	SackTimeout    time.Duration // Arbitration SACK-acceptance timeout (milliseconds).
	InitElongation time.Duration // INIT event-ack elongation timeout (milliseconds).
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() Config {
	return Config{
		AddressWidth:    AddressWidth16,
		Variant:         VariantQbus,
		MemoryStart:     0,
		MemoryLimit:     0xe000,
		IOPageStart:     0xe000, // Top 8 KiB of a 16-bit (65536-byte) address space.
		ArbitrationMode: ArbitrationClient,
		CPUPriority:     PriorityLevel4,
		DMABlockSize:    8,
		ReplyTimeout:    10 * time.Microsecond,
		SackTimeout:     10 * time.Millisecond,
		InitElongation:  10 * time.Millisecond,
	}
}

// Validate checks the configuration for invalid-configuration errors: address width not set,
// variant/DMA-block-size mismatch, and overlapping memory/I/O regions.
func (c Config) Validate() error {
	switch c.AddressWidth {
	case AddressWidth16, AddressWidth18, AddressWidth22:
	default:
		return &ConfigError{Field: "AddressWidth", Value: c.AddressWidth}
	}

	if c.MemoryLimit > c.IOPageStart {
		return &ConfigError{Field: "MemoryLimit/IOPageStart", Value: c.MemoryLimit}
	}

	if c.MemoryStart >= c.MemoryLimit {
		return &ConfigError{Field: "MemoryStart/MemoryLimit", Value: c.MemoryStart}
	}

	if c.Variant == VariantUnibus && c.DMABlockSize != 8 {
		return &ConfigError{Field: "DMABlockSize", Value: c.DMABlockSize}
	}

	if c.DMABlockSize < 1 || c.DMABlockSize > 8 {
		return &ConfigError{Field: "DMABlockSize", Value: c.DMABlockSize}
	}

	return nil
}

// An OptionFn modifies an Engine during construction in two phases: each function is called once
// before the state machines are wired up and once after.
type OptionFn func(e *Engine, late bool)

// WithConfig overrides the engine's configuration wholesale.
func WithConfig(cfg Config) OptionFn {
	return func(e *Engine, late bool) {
		if !late {
			e.cfg = cfg
		}
	}
}

// WithArbitrationMode overrides the arbitration worker selection.
func WithArbitrationMode(mode ArbitrationMode) OptionFn {
	return func(e *Engine, late bool) {
		if !late {
			e.cfg.ArbitrationMode = mode
		}
	}
}

// WithAddressOverlay configures the DMA address overlay mask.
func WithAddressOverlay(mask Addr) OptionFn {
	return func(e *Engine, late bool) {
		if late {
			e.cfg.AddressOverlay = mask
		}
	}
}
