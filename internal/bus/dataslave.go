package bus

// dataslave.go implements the data-slave state machine: the coprocessor
// answering an external master's address/data cycle addressed to emulated memory or an emulated
// device register. States are encoded as an enum dispatched with a switch, rather than as a table
// of function pointers.

import (
	"context"
	"fmt"
	"time"
)

// DataSlaveState is one state of the data-slave state machine.
type DataSlaveState uint8

const (
	DataSlaveStop DataSlaveState = iota
	DataSlaveStart
	DataSlaveDinDoutStart
	DataSlaveDinSingleComplete
	DataSlaveDoutSingleComplete
	DataSlaveDinBlockComplete
	DataSlaveDoutBlockComplete
)

func (s DataSlaveState) String() string {
	switch s {
	case DataSlaveStop:
		return "stop"
	case DataSlaveStart:
		return "start"
	case DataSlaveDinDoutStart:
		return "dindout-start"
	case DataSlaveDinSingleComplete:
		return "din-single-complete"
	case DataSlaveDoutSingleComplete:
		return "dout-single-complete"
	case DataSlaveDinBlockComplete:
		return "din-block-complete"
	case DataSlaveDoutBlockComplete:
		return "dout-block-complete"
	default:
		return "state(?)"
	}
}

// DataCycle answers one address/data handshake addressed to this engine.
// cycle selects DATI (read), DATO (word write), or DATOB (byte write, using addr's low bit to pick
// the half per the writable mask combination rule). It returns ErrNoResponder if the address is
// foreign, the value read back for DATI, and raises a deviceregister event for register accesses,
// holding the reply until the adapter acknowledges it or eventAckTimeout elapses.
func (e *Engine) DataCycle(ctx context.Context, addr Addr, cycle CycleKind, writeValue Word) (Word, error) {
	state := DataSlaveStart

	for {
		switch state {
		case DataSlaveStart:
			if e.initLine {
				return 0, ErrInitAbort
			}

			if err := e.muxAddress(addr); err != nil {
				return 0, fmt.Errorf("latch fabric: mux address: %w", err)
			}

			state = DataSlaveDinDoutStart

		case DataSlaveDinDoutStart:
			decoded := e.addrmap.Decode(addr)

			switch decoded.Kind {
			case DecodeForeign:
				return 0, ErrNoResponder

			case DecodeMemory:
				return e.dataCycleMemory(addr, cycle, writeValue, state)

			case DecodeROM:
				if cycle != CycleDATI {
					// ROM does not accept writes; the real hardware simply does not
					// drive a reply for write cycles to a ROM slot.
					return 0, ErrNoResponder
				}

				return e.addrmap.LoadROM(addr), nil

			case DecodeRegister:
				return e.dataCycleRegister(ctx, decoded.Handle, addr, cycle, writeValue)
			}
		}
	}
}

func (e *Engine) dataCycleMemory(addr Addr, cycle CycleKind, writeValue Word, _ DataSlaveState) (Word, error) {
	if cycle == CycleDATI {
		return e.addrmap.LoadMemory(addr), nil
	}

	next := writeValue
	if cycle == CycleDATOB {
		hiByte := addr&1 != 0
		addr &^= 1
		next = combineByteWrite(e.addrmap.LoadMemory(addr), writeValue, hiByte)
	}

	e.addrmap.StoreMemory(addr, next)

	return 0, nil
}

func (e *Engine) dataCycleRegister(ctx context.Context, h Handle, addr Addr, cycle CycleKind, writeValue Word) (Word, error) {
	rd := e.addrmap.Descriptor(h)

	var result Word

	var raise bool

	switch cycle {
	case CycleDATI:
		result = rd.Value
		raise = rd.Flags&EventOnRead != 0

	case CycleDATO:
		rd.Write(writeValue, false, false)
		raise = rd.Flags&EventOnWrite != 0

	case CycleDATOB:
		rd.Write(writeValue, true, addr&1 != 0)
		raise = rd.Flags&EventOnWrite != 0
	}

	if !raise {
		return result, nil
	}

	e.lastRegHandle.Store(uint32(h))
	e.holdReplyForEvent(ctx, EventDeviceRegister)

	return result, nil
}

// holdReplyForEvent signals an event and blocks (simulating the held reply line) until the
// adapter acknowledges it or eventAckTimeout elapses, logging if the bound is reached.
func (e *Engine) holdReplyForEvent(ctx context.Context, src EventSource) {
	pair := e.mailbox.Events.Pair(src)
	pair.Signal()

	deadline := time.Now().Add(eventAckTimeout)

	for pair.Pending() {
		if time.Now().After(deadline) {
			e.log.Warn("event ack timeout, releasing reply anyway", "source", src)
			return
		}

		if ctx.Err() != nil {
			return
		}

		time.Sleep(time.Microsecond)
	}
}

// DataBlock runs a multi-word block transfer: after each word, if INIT has
// gone active, the partial results are returned with ErrInitAbort; otherwise the address advances
// by two (one word) and the next portion runs without releasing (simulated) bus ownership.
func (e *Engine) DataBlock(ctx context.Context, addr Addr, cycle CycleKind, values []Word) ([]Word, error) {
	out := make([]Word, len(values))

	for i := range values {
		if e.initLine {
			return out[:i], ErrInitAbort
		}

		var wv Word
		if cycle != CycleDATI {
			wv = values[i]
		}

		result, err := e.DataCycle(ctx, addr+Addr(2*i), cycle, wv)
		if err != nil {
			return out[:i], err
		}

		out[i] = result
	}

	return out, nil
}

// combineByteWrite applies byte-write combination rule: the half selected by
// A00 (the low address bit) is replaced, the other half is left unchanged.
func combineByteWrite(old, value Word, hiByte bool) Word {
	if hiByte {
		return Word(old.LoByte()) | Word(value.LoByte())<<8
	}

	return Word(old.HiByte())<<8 | Word(value.LoByte())
}
