package bus

import "fmt"

// RequestMask is a bitset over the five arbitration request lines: interrupt levels 4-7 plus DMA
// ( "currently-asserted request mask... one bit per level + DMA"). Bit N
// corresponds to Priority(N); PriorityDMA (8) and PriorityLevel4..7 (4-7) are the only bits ever
// set.
type RequestMask uint16

// Set asserts a priority's request bit.
func (m *RequestMask) Set(p Priority) { *m |= RequestMask(1) << p }

// Clear negates a priority's request bit.
func (m *RequestMask) Clear(p Priority) { *m &^= RequestMask(1) << p }

// Has reports whether a priority's request bit is asserted.
func (m RequestMask) Has(p Priority) bool { return m&(RequestMask(1)<<p) != 0 }

// ClearAll negates every request bit, applied on the rising edge of INIT.
func (m *RequestMask) ClearAll() { *m = 0 }

// Empty reports whether no request bit is asserted.
func (m RequestMask) Empty() bool { return m == 0 }

// Highest returns the highest-priority asserted request, scanning DMA first and then interrupt
// levels 7 down to 4, and whether any request was asserted at all.
func (m RequestMask) Highest() (Priority, bool) {
	if m.Has(PriorityDMA) {
		return PriorityDMA, true
	}

	for p := PriorityLevel7; p >= PriorityLevel4; p-- {
		if m.Has(p) {
			return p, true
		}
	}

	return PriorityNone, false
}

func (m RequestMask) String() string {
	return fmt.Sprintf("REQ(%#03x)", uint16(m))
}
