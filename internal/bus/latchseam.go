package bus

// latchseam.go is the seam between a bus cycle's already-resolved Addr/Word (decided one layer up,
// by the mailbox/adapter protocol) and the latch registers a real coprocessor actually drives to
// put that address and vector onto the wire. DataCycle and runInterrupt call through here so the
// fabric's SetByte/SetBits/GetByte primitives are genuinely exercised on every cycle, not only
// from the standalone selftest exerciser.

import "github.com/qunibone/busengine/internal/latch"

// muxAddress latches addr onto the fabric the way the variant's physical address path works: QBUS
// multiplexes address and data onto the same DAL lines and must strobe SYNC to latch the address
// before the data cycle can use those lines for the word value; UNIBUS carries address and data on
// separate registers and has no such trick to perform.
func (e *Engine) muxAddress(addr Addr) error {
	if e.cfg.Variant != VariantQbus {
		return nil
	}

	_, err := e.fabric.MuxAddress(uint32(addr), addr >= e.cfg.IOPageStart)

	return err
}

// vectorRegisters returns the pair of fabric registers a variant carries an interrupt vector's
// low/high bytes on: QBUS reuses the multiplexed DAL registers (0-1), UNIBUS has dedicated
// D<15:0> registers (3-4).
func vectorRegisters(v Variant) (lo, hi latch.Selector) {
	if v == VariantQbus {
		return 0, 1
	}

	return 3, 4
}

// driveVector places an interrupt vector's two bytes onto the fabric's vector-carrying registers.
func (e *Engine) driveVector(vec Word) error {
	lo, hi := vectorRegisters(e.cfg.Variant)

	if err := e.fabric.SetByte(lo, vec.LoByte()); err != nil {
		return err
	}

	return e.fabric.SetByte(hi, vec.HiByte())
}

// clearVectorLines restores the vector-carrying registers to idle once the interrupt-acknowledge
// cycle has completed.
func (e *Engine) clearVectorLines() {
	lo, hi := vectorRegisters(e.cfg.Variant)

	_ = e.fabric.SetByte(lo, 0)
	_ = e.fabric.SetByte(hi, 0)
}
