package bus

import "testing"

func TestDecodeMemoryBoundaries(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	am, err := NewAddressMap(cfg)
	if err != nil {
		t.Fatalf("NewAddressMap: %s", err)
	}

	if d := am.Decode(cfg.MemoryLimit - 2); d.Kind != DecodeMemory {
		t.Errorf("memory_limit-2 decoded as %s, want memory", d.Kind)
	}

	if d := am.Decode(cfg.MemoryLimit); d.Kind == DecodeMemory {
		t.Errorf("memory_limit decoded as memory, want an I/O-page check")
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	am, err := NewAddressMap(cfg)
	if err != nil {
		t.Fatalf("NewAddressMap: %s", err)
	}

	for _, addr := range []Addr{0, 2, cfg.MemoryLimit - 2} {
		am.StoreMemory(addr, 0x1234)

		if got := am.LoadMemory(addr); got != 0x1234 {
			t.Errorf("addr %s: got %s, want %s", addr, got, Word(0x1234))
		}
	}
}

func TestInstallUninstallRegister(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	am, err := NewAddressMap(cfg)
	if err != nil {
		t.Fatalf("NewAddressMap: %s", err)
	}

	h, err := am.Install(cfg.IOPageStart, RegisterDescriptor{WritableMask: 0xffff})
	if err != nil {
		t.Fatalf("Install: %s", err)
	}

	d := am.Decode(cfg.IOPageStart)
	if d.Kind != DecodeRegister || d.Handle != h {
		t.Fatalf("decode after install = %+v, want register handle %d", d, h)
	}

	if err := am.Uninstall(cfg.IOPageStart); err != nil {
		t.Fatalf("Uninstall: %s", err)
	}

	if d := am.Decode(cfg.IOPageStart); d.Kind != DecodeForeign {
		t.Errorf("decode after uninstall = %s, want foreign", d.Kind)
	}
}

func TestInstallRejectsOccupiedSlot(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	am, err := NewAddressMap(cfg)
	if err != nil {
		t.Fatalf("NewAddressMap: %s", err)
	}

	if _, err := am.Install(cfg.IOPageStart, RegisterDescriptor{}); err != nil {
		t.Fatalf("first Install: %s", err)
	}

	if _, err := am.Install(cfg.IOPageStart, RegisterDescriptor{}); err == nil {
		t.Fatalf("expected error installing into an occupied slot")
	}
}

func TestInstallRejectsAddressBelowIOPage(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	am, err := NewAddressMap(cfg)
	if err != nil {
		t.Fatalf("NewAddressMap: %s", err)
	}

	if _, err := am.Install(cfg.IOPageStart-2, RegisterDescriptor{}); err == nil {
		t.Fatalf("expected error installing below the I/O page")
	}
}

func TestROMRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	am, err := NewAddressMap(cfg)
	if err != nil {
		t.Fatalf("NewAddressMap: %s", err)
	}

	if err := am.InstallROM(cfg.IOPageStart, 0o123456); err != nil {
		t.Fatalf("InstallROM: %s", err)
	}

	if d := am.Decode(cfg.IOPageStart); d.Kind != DecodeROM {
		t.Fatalf("decode after InstallROM = %s, want rom", d.Kind)
	}

	if got := am.LoadROM(cfg.IOPageStart); got != 0o123456 {
		t.Errorf("LoadROM = %s, want %s", got, Word(0o123456))
	}
}

func TestRegisterWriteMask(t *testing.T) {
	t.Parallel()

	rd := RegisterDescriptor{Value: 0o123456, WritableMask: 0o170707}

	prev := rd.Value
	write := Word(0o165432)

	rd.Write(write, false, false)

	want := (prev &^ rd.WritableMask) | (write & rd.WritableMask)
	if rd.Value != want {
		t.Errorf("Write() = %s, want %s", rd.Value, want)
	}
}

func TestRegisterByteWriteCombination(t *testing.T) {
	t.Parallel()

	rd := RegisterDescriptor{Value: 0xabcd, WritableMask: 0xffff}

	rd.Write(0x00ff, true, false) // Low byte, A00 == 0.
	if rd.Value != 0xabff {
		t.Fatalf("low byte write = %s, want %s", rd.Value, Word(0xabff))
	}

	rd.Write(0x0012, true, true) // High byte, A00 == 1.
	if rd.Value != 0x12ff {
		t.Errorf("high byte write = %s, want %s", rd.Value, Word(0x12ff))
	}
}

func TestResetAll(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	am, err := NewAddressMap(cfg)
	if err != nil {
		t.Fatalf("NewAddressMap: %s", err)
	}

	h, err := am.Install(cfg.IOPageStart, RegisterDescriptor{Reset: 0o100000, WritableMask: 0o177777})
	if err != nil {
		t.Fatalf("Install: %s", err)
	}

	am.Descriptor(h).Value = 0

	am.ResetAll()

	if got := am.Descriptor(h).Value; got != 0o100000 {
		t.Errorf("value after ResetAll = %s, want %s", got, Word(0o100000))
	}
}
