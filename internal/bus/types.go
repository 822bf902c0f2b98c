package bus

// types.go defines the basic data types shared by the mailbox and the state machines.

import "fmt"

// Addr is a bus address. It is wide enough to hold the largest supported address space (22 bits,
// the QBUS variant); narrower variants simply leave the high bits clear.
type Addr uint32

func (a Addr) String() string {
	return fmt.Sprintf("%0#8x", uint32(a))
}

// Word is a single bus data word: 16 bits, transferred a word or a byte at a time.
type Word uint16

func (w Word) String() string {
	return fmt.Sprintf("%0#4x", uint16(w))
}

// LoByte and HiByte split a word into its two bytes, used for byte-granularity DATOB cycles.
func (w Word) LoByte() byte { return byte(w & 0x00ff) }
func (w Word) HiByte() byte { return byte(w >> 8) }

// Priority is a bus request priority level. Interrupt levels run 4 through 7; level 0 is used as
// "no request". DMA requests are arbitrated above all interrupt levels.
type Priority uint8

const (
	PriorityNone Priority = 0
	PriorityDMA  Priority = 8 // Arbitrates above every interrupt level.

	PriorityLevel4 Priority = 4
	PriorityLevel5 Priority = 5
	PriorityLevel6 Priority = 6
	PriorityLevel7 Priority = 7

	NumPL = 5 // Number of distinct priority levels, including DMA's pseudo-level.
)

func (p Priority) String() string {
	switch p {
	case PriorityNone:
		return "PL-"
	case PriorityDMA:
		return "DMA"
	default:
		return fmt.Sprintf("PL%d", uint8(p))
	}
}

// Variant selects the backplane family. Wire tables are chosen at build time, not at runtime,
// since selection is fixed by the physical hardware a given binary is built for.
type Variant uint8

const (
	VariantUnibus Variant = iota
	VariantQbus
)

func (v Variant) String() string {
	switch v {
	case VariantUnibus:
		return "UNIBUS"
	case VariantQbus:
		return "QBUS"
	default:
		return "VARIANT(?)"
	}
}

// AddressWidth is a runtime-selected bus address width
type AddressWidth uint8

const (
	AddressWidth16 AddressWidth = 16
	AddressWidth18 AddressWidth = 18
	AddressWidth22 AddressWidth = 22
)

// Mask returns the address mask for the width, used to validate and normalize addresses.
func (w AddressWidth) Mask() Addr {
	return Addr(1)<<uint(w) - 1
}

// CycleKind distinguishes the bus transaction type driven onto the control lines.
type CycleKind uint8

const (
	CycleDATI  CycleKind = iota // Word read.
	CycleDATO                   // Word write.
	CycleDATOB                  // Byte write.
)

func (c CycleKind) String() string {
	switch c {
	case CycleDATI:
		return "DATI"
	case CycleDATO:
		return "DATO"
	case CycleDATOB:
		return "DATOB"
	default:
		return "CYCLE(?)"
	}
}

// Origin distinguishes whether a DMA request originates from an emulated device model or, in the
// CPU-emulation variant, from the CPU's own data path.
type Origin uint8

const (
	OriginDevice Origin = iota
	OriginCPU
)
