package latch

// loopback.go implements a diagnostic loopback LineDriver: an in-memory stand-in for the real
// PRU/GPIO path, used by tests and by the selftest command's latch exerciser. A plain byte array
// behind a small interface, no real hardware underneath.

import "sync"

// LoopbackDriver is a LineDriver whose SampleByte returns whatever was last driven by DriveByte,
// i.e. every register wraps its output straight back to its input. It is safe for concurrent use.
type LoopbackDriver struct {
	mu      sync.Mutex
	regs    [NumRegisters]byte
	enabled bool
}

// NewLoopbackDriver creates a LoopbackDriver with outputs enabled.
func NewLoopbackDriver() *LoopbackDriver {
	return &LoopbackDriver{enabled: true}
}

func (d *LoopbackDriver) DriveByte(sel Selector, data byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.regs[sel] = data

	return nil
}

func (d *LoopbackDriver) SampleByte(sel Selector) (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.regs[sel], nil
}

func (d *LoopbackDriver) OutputEnable(enabled bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.enabled = enabled

	return nil
}

// Enabled reports the last value passed to OutputEnable, for tests asserting the fabric tri-states
// correctly around a diagnostic session.
func (d *LoopbackDriver) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.enabled
}
