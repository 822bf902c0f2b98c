package latch

// wiretable.go implements the backplane wire table: a per-variant, build-time
// constant mapping of every bus signal to a (register, bit, direction) tuple plus a name and trace
// string, expressed as a []Wire slice rather than a fixed-size array.

import "fmt"

// Direction of a wire relative to the host: Output means the host drives the line, Input means the
// host samples it.
type Direction uint8

const (
	DirOutput Direction = iota
	DirInput
)

func (d Direction) String() string {
	if d == DirOutput {
		return "out"
	}

	return "in"
}

// Wire describes one backplane signal's mapping into the latch fabric.
type Wire struct {
	Register  Selector
	Bit       uint8
	Direction Direction
	Inverted  bool
	Name      string
	Trace     string // Human-readable trace string, for diagnostic printing.
}

// WireTable is the full per-variant signal list plus derived per-register info. Construction
// validates bit ranges and that no physical position is claimed by two signal names (see
// NewWireTable); it does not check how many tuples a signal has (QBUS BS7, for one, is written
// through both register 2 and register 4).
type WireTable struct {
	Variant string
	Wires   []Wire
	Info    [NumRegisters]RegisterInfo
}

// physPosition identifies one physical (register, bit, direction) latch position.
type physPosition struct {
	reg Selector
	bit uint8
	dir Direction
}

// NewWireTable builds a WireTable from a wire list, deriving each register's valid/testable/invert
// masks and checking that every physical latch bit position is claimed by at most one signal (a
// register position may legitimately expose the same named signal more than once, e.g. a live
// copy and a SYNC-latched copy, but it must never be ambiguous about which signal it is driving or
// sampling).
func NewWireTable(variant string, wires []Wire) (*WireTable, error) {
	wt := &WireTable{Variant: variant, Wires: wires}

	seen := map[physPosition]string{}

	for _, w := range wires {
		if w.Bit > 7 {
			return nil, fmt.Errorf("latch: wire table: %s: bit %d out of range", w.Name, w.Bit)
		}

		pos := physPosition{reg: w.Register, bit: w.Bit, dir: w.Direction}

		if existing, ok := seen[pos]; ok && existing != w.Name {
			return nil, fmt.Errorf("latch: wire table: %s/%d/%s: claimed by both %q and %q",
				w.Register, w.Bit, w.Direction, existing, w.Name)
		}

		seen[pos] = w.Name

		bitmask := byte(1) << w.Bit

		wt.Info[w.Register].Valid |= bitmask
		wt.Info[w.Register].Testable |= bitmask

		if w.Inverted {
			wt.Info[w.Register].Invert |= bitmask
		}
	}

	return wt, nil
}

// Find returns the wire tuple for a signal name and direction, and whether it was found.
func (wt *WireTable) Find(name string, dir Direction) (Wire, bool) {
	for _, w := range wt.Wires {
		if w.Name == name && w.Direction == dir {
			return w, true
		}
	}

	return Wire{}, false
}
