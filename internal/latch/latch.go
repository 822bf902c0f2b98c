// Package latch implements the latch fabric: the bank of eight 8-bit
// registers that multiplex backplane signals onto the coprocessor's narrow I/O interface.
//
// A small controller wraps a backing store behind a handful of primitives (SetByte, SetBits,
// GetByte), with the actual hardware access abstracted behind an injected LineDriver interface:
// get/set primitives, a cached last-written value, and an explicit contract about what has and
// hasn't settled.
package latch

import (
	"fmt"

	"github.com/qunibone/busengine/internal/log"
)

// NumRegisters is the number of 8-bit latch registers.
const NumRegisters = 8

// Selector addresses one of the eight latch registers.
type Selector uint8

func (s Selector) String() string { return fmt.Sprintf("REG%d", uint8(s)) }

// LineDriver is the hardware-facing seam: it sequences a byte to the data-out coprocessor, drives
// the selector and write pulse, and waits for propagation. Production code backs this with the
// real PRU/GPIO path (out of scope); tests and the in-process Engine back it
// with an in-memory fake.
//
// The contract is preserved across any implementation: after DriveByte
// returns, the bus line has reached its target level; after SampleByte returns, the value reflects
// the bus at an earlier stable moment.
type LineDriver interface {
	// DriveByte writes a data byte to the given register through the selector/write-pulse
	// sequence and blocks until propagation is complete.
	DriveByte(sel Selector, data byte) error

	// SampleByte reads the combinational value currently on a register's lines.
	SampleByte(sel Selector) (byte, error)

	// OutputEnable gates all outgoing drivers. Used to tri-state the backplane before and after
	// a diagnostic session.
	OutputEnable(enabled bool) error
}

// RegisterInfo describes one latch register's valid and testable bits, and which bits its output
// driver inverts.
type RegisterInfo struct {
	// Valid is the mask of bit positions that correspond to real wires.
	Valid byte

	// Testable is the mask of bits that may be exercised in loopback (a subset of Valid).
	Testable byte

	// Invert is the mask of bits the register's output driver inverts.
	Invert byte
}

// Fabric is the latch register bank: it provides SetByte, SetBits, and GetByte, each guaranteeing
// the before/after contract LineDriver's doc comment describes, and caches the last value written
// to each register so SetBits can perform a read-modify-write without an actual bus read.
type Fabric struct {
	driver LineDriver
	info   [NumRegisters]RegisterInfo
	cache  [NumRegisters]byte
	valid  [NumRegisters]bool // Whether cache[i] reflects a value actually driven this session.

	log *log.Logger
}

// NewFabric creates a latch fabric over a driver, using the given per-register info (typically one
// of the per-variant wire tables' RegisterInfo arrays).
func NewFabric(driver LineDriver, info [NumRegisters]RegisterInfo) *Fabric {
	return &Fabric{
		driver: driver,
		info:   info,
		log:    log.DefaultLogger(),
	}
}

// SetByte drives a full byte onto a register, respecting the register's inversion flag, and
// updates the write cache.
func (f *Fabric) SetByte(sel Selector, data byte) error {
	out := data ^ f.info[sel].Invert

	if err := f.driver.DriveByte(sel, out); err != nil {
		return fmt.Errorf("latch: set byte: %s: %w", sel, err)
	}

	f.cache[sel] = data
	f.valid[sel] = true

	f.log.Debug("latch set", "REG", sel, "DATA", fmt.Sprintf("%#02x", data))

	return nil
}

// SetBits performs a read-modify-write on a register using a bitmask, without an actual bus read:
// the cached last-written value stands in for the read. If the register has
// never been written, it is first read through the driver to seed the cache.
func (f *Fabric) SetBits(sel Selector, mask byte, value byte) error {
	if !f.valid[sel] {
		cur, err := f.GetByte(sel)
		if err != nil {
			return fmt.Errorf("latch: set bits: seed cache: %w", err)
		}

		f.cache[sel] = cur
		f.valid[sel] = true
	}

	next := (f.cache[sel] &^ mask) | (value & mask)

	return f.SetByte(sel, next)
}

// GetByte reads the combinational value on a register's lines, undoing the register's inversion
// flag.
func (f *Fabric) GetByte(sel Selector) (byte, error) {
	raw, err := f.driver.SampleByte(sel)
	if err != nil {
		return 0, fmt.Errorf("latch: get byte: %s: %w", sel, err)
	}

	return raw ^ f.info[sel].Invert, nil
}

// Init resets every register to the protocol's neutral state (all zero bits, the latch-init
// opcode). Each register's write cache is left holding zero, so subsequent SetBits calls modify
// zero rather than re-reading the driver.
func (f *Fabric) Init() error {
	for sel := Selector(0); sel < NumRegisters; sel++ {
		if err := f.SetByte(sel, 0); err != nil {
			return err
		}
	}

	return nil
}

// OutputEnable gates all outgoing drivers.
func (f *Fabric) OutputEnable(enabled bool) error {
	return f.driver.OutputEnable(enabled)
}
