package bus

// ddr.go implements the memory-window diagnostic opcodes: fill the emulated-memory window with a
// known pattern, then read it back through the same DataCycle path an external bus master would
// use, to confirm the slave-memory path and the raw memory backing agree.

import "context"

// DDRSubRecord is the mailbox's memory-diagnostic argument block.
type DDRSubRecord struct {
	Pattern    Word
	Mismatches int
	LastAddr   Addr
	LastExpect Word
	LastActual Word
}

// ddrFillPattern implements OpcodeDDRFillPattern: writes the configured pattern word to
// every word of the emulated-memory window, directly through the address map (not
// through DataCycle, since no bus master is involved in a diagnostic fill).
func (e *Engine) ddrFillPattern() {
	rec := &e.mailbox.DDR
	for addr := e.cfg.MemoryStart; addr < e.cfg.MemoryLimit; addr += 2 {
		e.addrmap.StoreMemory(addr, rec.Pattern)
	}

	e.log.Debug("ddr fill pattern", "pattern", rec.Pattern)
}

// ddrSlaveMemory implements OpcodeDDRSlaveMemory: reads every word of the emulated-memory
// window back through DataCycle (the same path an external DATI would take) and records
// the first mismatch against the configured pattern, plus a running mismatch count.
func (e *Engine) ddrSlaveMemory() {
	rec := &e.mailbox.DDR
	rec.Mismatches = 0

	for addr := e.cfg.MemoryStart; addr < e.cfg.MemoryLimit; addr += 2 {
		value, err := e.DataCycle(context.Background(), addr, CycleDATI, 0)
		if err != nil {
			continue
		}

		if value != rec.Pattern {
			if rec.Mismatches == 0 {
				rec.LastAddr = addr
				rec.LastExpect = rec.Pattern
				rec.LastActual = value
			}

			rec.Mismatches++
		}
	}

	if rec.Mismatches > 0 {
		e.log.Warn("ddr slave memory mismatch",
			"count", rec.Mismatches, "addr", rec.LastAddr, "want", rec.LastExpect, "got", rec.LastActual)
	}
}
