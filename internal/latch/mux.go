package latch

// mux.go implements the QBUS variant's address-latching trick: SYNC strobes the multiplexed
// DAL<21:0>/BS7 lines into the CPLD's own address latch (register 3 read back confirms the
// strobe), after which the DAL registers are free again to carry the data cycle's actual word.
// UNIBUS carries address and data on separate registers (wiretable_unibus.go) and has no use for
// this trick; callers gate on variant before calling it.

// MuxAddress drives a 22-bit address and the BS7 flag onto the DAL registers (0-2), pulses SYNC
// (register 4, bit 0) to strobe it into the CPLD's address latch, then restores the DAL registers
// to idle so the data cycle that follows can drive the actual word value without the address bits
// left on the lines. It returns whether the latch-readback register (3) confirmed the SYNC
// strobe.
func (f *Fabric) MuxAddress(addr uint32, bs7 bool) (bool, error) {
	lo := byte(addr)
	mid := byte(addr >> 8)
	hi := byte(addr>>16) & 0x3f

	if bs7 {
		hi |= 1 << 6
	}

	if err := f.SetByte(0, lo); err != nil {
		return false, err
	}

	if err := f.SetByte(1, mid); err != nil {
		return false, err
	}

	if err := f.SetByte(2, hi); err != nil {
		return false, err
	}

	if err := f.SetBits(4, 0x01, 0x01); err != nil {
		return false, err
	}

	if err := f.SetBits(4, 0x01, 0x00); err != nil {
		return false, err
	}

	latched, err := f.GetByte(3)
	if err != nil {
		return false, err
	}

	if err := f.SetByte(0, 0); err != nil {
		return false, err
	}

	if err := f.SetByte(1, 0); err != nil {
		return false, err
	}

	if err := f.SetByte(2, 0); err != nil {
		return false, err
	}

	return latched&0x01 != 0, nil
}
