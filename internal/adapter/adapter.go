// Package adapter implements the host-domain dispatch loop: the thread that
// owns the device-register table, submits DMA and interrupt requests on a device model's behalf,
// and delivers the mailbox's asynchronous events (deviceregister, init, power) back to device
// models.
//
// The dispatch loop is generalized from "run one CPU, one instruction at a time" to "poll one
// mailbox, fan out events to N device models", built over the same device-map-and-handle shape a
// memory-mapped I/O table uses, and constructed with the package's functional-options style.
package adapter

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/qunibone/busengine/internal/bus"
	"github.com/qunibone/busengine/internal/log"
)

// pollInterval is how often Run's loop checks for pending asynchronous events when nothing is
// outstanding. It is the same interval as the engine's own dispatch tick (bus pollInterval).
const pollInterval = 200 * time.Microsecond

// grantPollInterval is how often a blocked Submit call re-checks Engine.Granted while waiting for
// arbitration, grounded on the same wall-clock-tick idea as Engine.Run's own pollInterval since
// neither side of this software model has a hardware cycle counter to block on instead.
const grantPollInterval = 50 * time.Microsecond

// DeviceModel is the adapter-facing half of an emulated device (device models themselves are out
// of scope; this is the seam they plug into).
type DeviceModel interface {
	// OnRegisterAccess is called after a bus master's access to devRegIdx (the device-relative
	// register index passed to InstallRegister) has already been applied to desc. The device
	// model may perform side effects (updating other registers, submitting a DMA) but must
	// return promptly: the data-slave's reply is held open until the adapter acknowledges the
	// event, and OnRegisterAccess runs inline with that acknowledgement, so adapter-side event
	// processing must not block the bus indefinitely.
	OnRegisterAccess(devRegIdx int, desc *bus.RegisterDescriptor)

	// OnInit is called on each INIT edge (rising and falling), after register descriptors have
	// already been reset to their power-up values by the engine.
	OnInit(asserted bool)

	// OnPowerChange is called whenever the POK/DCOK line changes.
	OnPowerChange(ok bool)
}

// device holds one registered device model together with the bookkeeping needed to route a
// deviceregister event back to it.
type device struct {
	model DeviceModel
}

// Adapter is the host domain: it owns an *bus.Engine, the device-model registry, and serializes
// every mailbox opcode issuance through mboxMu ( "mailbox access is
// serialised ... opcode issuance is the sole synchronisation point").
type Adapter struct {
	engine *bus.Engine
	log    *log.Logger

	mboxMu sync.Mutex // Held for the full issue-wait-ack cycle of one opcode.

	devicesMu sync.Mutex
	devices   map[int]*device
	nextDev   int

	dispatched atomic.Uint64 // Opcodes successfully issued, for diagnostics/tests.
	timeouts   atomic.Uint64 // Submissions that gave up waiting for a grant or completion.
}

// An OptionFn configures an Adapter during construction, mirroring bus.OptionFn's shape.
type OptionFn func(a *Adapter)

// New creates an Adapter over an already-configured Engine.
func New(engine *bus.Engine, opts ...OptionFn) *Adapter {
	a := &Adapter{
		engine:  engine,
		log:     log.DefaultLogger(),
		devices: make(map[int]*device),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// WithLogger overrides the adapter's logger.
func WithLogger(l *log.Logger) OptionFn {
	return func(a *Adapter) { a.log = l }
}

// Engine returns the underlying bus engine, for callers that need direct access (tests, the
// diagnostic exerciser) alongside the adapter's higher-level submission API.
func (a *Adapter) Engine() *bus.Engine { return a.engine }

// RegisterDevice assigns a device handle to a device model. The returned handle is used as
// RegisterDescriptor.DeviceHandle when installing the device's registers.
func (a *Adapter) RegisterDevice(model DeviceModel) int {
	a.devicesMu.Lock()
	defer a.devicesMu.Unlock()

	a.nextDev++
	a.devices[a.nextDev] = &device{model: model}

	return a.nextDev
}

// DeregisterDevice removes a device model. Registers it installed are not automatically
// uninstalled; callers should uninstall them first.
func (a *Adapter) DeregisterDevice(deviceHandle int) {
	a.devicesMu.Lock()
	defer a.devicesMu.Unlock()

	delete(a.devices, deviceHandle)
}

// InstallRegister allocates a register handle at addr and stores its descriptor. deviceHandle and
// devRegIdx are stamped into the descriptor's back-reference fields so a later deviceregister
// event can be routed to the right device model.
func (a *Adapter) InstallRegister(addr bus.Addr, deviceHandle, devRegIdx int, desc bus.RegisterDescriptor) (bus.Handle, error) {
	desc.DeviceHandle = deviceHandle
	desc.DeviceRegIdx = devRegIdx

	return a.engine.AddressMap().Install(addr, desc)
}

// InstallROM marks an I/O page slot as ROM-backed, delegating to the address map.
func (a *Adapter) InstallROM(addr bus.Addr, content bus.Word) error {
	return a.engine.AddressMap().InstallROM(addr, content)
}

// UninstallRegister reverses InstallRegister.
func (a *Adapter) UninstallRegister(addr bus.Addr) error {
	return a.engine.AddressMap().Uninstall(addr)
}

// Descriptor returns the live register descriptor for a handle, for device models that want to
// read or mutate their own register state outside of a bus access.
func (a *Adapter) Descriptor(h bus.Handle) *bus.RegisterDescriptor {
	return a.engine.AddressMap().Descriptor(h)
}

// Stats reports the adapter's running dispatch/timeout counters.
func (a *Adapter) Stats() (dispatched, timeouts uint64) {
	return a.dispatched.Load(), a.timeouts.Load()
}

// Run is the adapter's dispatch loop: it starts the engine's own dispatch
// loop and then, every pollInterval, delivers pending asynchronous events to registered device
// models. It returns when ctx is cancelled or the engine stops.
func (a *Adapter) Run(ctx context.Context) error {
	engineErr := make(chan error, 1)

	go func() {
		engineErr <- a.engine.Run(ctx)
	}()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-engineErr:
			return fmt.Errorf("adapter: engine stopped: %w", err)
		case <-ticker.C:
		}

		a.pollEvents()
	}
}

// waitGranted blocks until the engine grants p or ctx is done, polling at grantPollInterval since
// grants are asserted by the engine's own ticking goroutine, not signalled through a channel.
func (a *Adapter) waitGranted(ctx context.Context, p bus.Priority) error {
	if a.engine.Granted(p) {
		return nil
	}

	ticker := time.NewTicker(grantPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.timeouts.Add(1)
			return ctx.Err()
		case <-ticker.C:
			if a.engine.Granted(p) {
				return nil
			}
		}
	}
}

// waitIdle blocks until the mailbox returns to idle (the issued opcode has completed) or ctx is
// done.
func (a *Adapter) waitIdle(ctx context.Context) error {
	if a.engine.Mailbox().Idle() {
		return nil
	}

	ticker := time.NewTicker(grantPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.timeouts.Add(1)
			return ctx.Err()
		case <-ticker.C:
			if a.engine.Mailbox().Idle() {
				return nil
			}
		}
	}
}

// waitEvent blocks until src's event pair is pending (or ctx is done), then acknowledges it.
func (a *Adapter) waitEvent(ctx context.Context, src bus.EventSource) error {
	pair := a.engine.Mailbox().Events.Pair(src)

	ticker := time.NewTicker(grantPollInterval)
	defer ticker.Stop()

	for !pair.Pending() {
		select {
		case <-ctx.Done():
			a.timeouts.Add(1)
			return ctx.Err()
		case <-ticker.C:
		}
	}

	pair.Ack()

	return nil
}
