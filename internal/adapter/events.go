package adapter

// events.go delivers the mailbox's unsolicited asynchronous events (deviceregister, init, power)
// to registered device models: a broadcast-to-observers shape generalized from "one event source"
// to "one mailbox, N installed devices".

import "github.com/qunibone/busengine/internal/bus"

// pollEvents checks the three event sources a device model can receive unprompted (as opposed to
// the ones a Submit call already waits on directly) and delivers + acknowledges each one pending.
func (a *Adapter) pollEvents() {
	mb := a.engine.Mailbox()

	if pair := mb.Events.Pair(bus.EventDeviceRegister); pair.Pending() {
		a.deliverRegisterEvent()
		pair.Ack()
	}

	if pair := mb.Events.Pair(bus.EventInit); pair.Pending() {
		a.deliverInitEvent()
		pair.Ack()
	}

	if pair := mb.Events.Pair(bus.EventPower); pair.Pending() {
		a.deliverPowerEvent()
		pair.Ack()
	}
}

// deliverRegisterEvent resolves the register handle that raised the pending deviceregister event
// and, if it belongs to a known device, calls the device model's OnRegisterAccess.
func (a *Adapter) deliverRegisterEvent() {
	h := a.engine.LastRegisterHandle()
	if h == bus.HandleNone {
		return
	}

	desc := a.engine.AddressMap().Descriptor(h)

	a.devicesMu.Lock()
	dev, ok := a.devices[desc.DeviceHandle]
	a.devicesMu.Unlock()

	if !ok {
		a.log.Warn("deviceregister event for unknown device", "handle", desc.DeviceHandle)
		return
	}

	dev.model.OnRegisterAccess(desc.DeviceRegIdx, desc)
}

// deliverInitEvent broadcasts an INIT edge to every registered device model.
func (a *Adapter) deliverInitEvent() {
	asserted := a.engine.InitAsserted()

	a.devicesMu.Lock()
	devs := make([]*device, 0, len(a.devices))
	for _, d := range a.devices {
		devs = append(devs, d)
	}
	a.devicesMu.Unlock()

	for _, d := range devs {
		d.model.OnInit(asserted)
	}
}

// deliverPowerEvent broadcasts a POK/DCOK change to every registered device model.
func (a *Adapter) deliverPowerEvent() {
	ok := a.engine.PowerOK()

	a.devicesMu.Lock()
	devs := make([]*device, 0, len(a.devices))
	for _, d := range a.devices {
		devs = append(devs, d)
	}
	a.devicesMu.Unlock()

	for _, d := range devs {
		d.model.OnPowerChange(ok)
	}
}
