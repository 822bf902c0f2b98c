package latch

import "testing"

func TestSetByteGetByteRoundTrip(t *testing.T) {
	t.Parallel()

	driver := NewLoopbackDriver()
	fabric := NewFabric(driver, QBUS.Info)

	if err := fabric.SetByte(2, 0xa5); err != nil {
		t.Fatalf("SetByte: %s", err)
	}

	got, err := fabric.GetByte(2)
	if err != nil {
		t.Fatalf("GetByte: %s", err)
	}

	if got != 0xa5 {
		t.Errorf("GetByte(2) = %#02x, want %#02x", got, 0xa5)
	}
}

func TestSetByteAppliesInversion(t *testing.T) {
	t.Parallel()

	driver := NewLoopbackDriver()
	info := [NumRegisters]RegisterInfo{
		0: {Valid: 0xff, Testable: 0xff, Invert: 0xff},
	}
	fabric := NewFabric(driver, info)

	if err := fabric.SetByte(0, 0x0f); err != nil {
		t.Fatalf("SetByte: %s", err)
	}

	raw, err := driver.SampleByte(0)
	if err != nil {
		t.Fatalf("SampleByte: %s", err)
	}

	if raw != 0xf0 {
		t.Errorf("driven value = %#02x, want inverted %#02x", raw, 0xf0)
	}

	got, err := fabric.GetByte(0)
	if err != nil {
		t.Fatalf("GetByte: %s", err)
	}

	if got != 0x0f {
		t.Errorf("GetByte undid inversion incorrectly: got %#02x, want %#02x", got, 0x0f)
	}
}

func TestSetBitsRoundTrip(t *testing.T) {
	t.Parallel()

	driver := NewLoopbackDriver()
	fabric := NewFabric(driver, QBUS.Info)

	if err := fabric.SetByte(0, 0b1010_1010); err != nil {
		t.Fatalf("SetByte: %s", err)
	}

	mask := byte(0b0000_1111)
	value := byte(0b0000_0011)

	if err := fabric.SetBits(0, mask, value); err != nil {
		t.Fatalf("SetBits: %s", err)
	}

	got, err := fabric.GetByte(0)
	if err != nil {
		t.Fatalf("GetByte: %s", err)
	}

	want := (byte(0b1010_1010) &^ mask) | (value & mask)
	if got&QBUS.Info[0].Valid != want&QBUS.Info[0].Valid {
		t.Errorf("GetByte(0) = %#02x, want %#02x", got, want)
	}
}

func TestSetBitsSeedsCacheFromDriverWhenUnwritten(t *testing.T) {
	t.Parallel()

	driver := NewLoopbackDriver()
	// Drive a value directly, bypassing the fabric, so the cache starts out unseeded.
	if err := driver.DriveByte(1, 0b1111_0000); err != nil {
		t.Fatalf("DriveByte: %s", err)
	}

	fabric := NewFabric(driver, QBUS.Info)

	if err := fabric.SetBits(1, 0b0000_1111, 0b0000_0101); err != nil {
		t.Fatalf("SetBits: %s", err)
	}

	got, err := fabric.GetByte(1)
	if err != nil {
		t.Fatalf("GetByte: %s", err)
	}

	if got != 0b1111_0101 {
		t.Errorf("GetByte(1) = %#08b, want %#08b", got, 0b1111_0101)
	}
}

func TestInitNeutralizesAllRegisters(t *testing.T) {
	t.Parallel()

	driver := NewLoopbackDriver()
	fabric := NewFabric(driver, QBUS.Info)

	for sel := Selector(0); sel < NumRegisters; sel++ {
		if err := fabric.SetByte(sel, 0xff); err != nil {
			t.Fatalf("SetByte(%d): %s", sel, err)
		}
	}

	if err := fabric.Init(); err != nil {
		t.Fatalf("Init: %s", err)
	}

	for sel := Selector(0); sel < NumRegisters; sel++ {
		got, err := fabric.GetByte(sel)
		if err != nil {
			t.Fatalf("GetByte(%d): %s", sel, err)
		}

		if got != 0 {
			t.Errorf("register %d after init = %#02x, want 0", sel, got)
		}
	}
}

func TestInitIsIdempotent(t *testing.T) {
	t.Parallel()

	driver := NewLoopbackDriver()
	fabric := NewFabric(driver, QBUS.Info)

	_ = fabric.SetByte(3, 0xff)
	_ = fabric.Init()

	if err := fabric.Init(); err != nil {
		t.Fatalf("second Init: %s", err)
	}

	got, _ := fabric.GetByte(3)
	if got != 0 {
		t.Errorf("register 3 after double init = %#02x, want 0", got)
	}
}

func TestOutputEnable(t *testing.T) {
	t.Parallel()

	driver := NewLoopbackDriver()
	fabric := NewFabric(driver, QBUS.Info)

	if err := fabric.OutputEnable(false); err != nil {
		t.Fatalf("OutputEnable(false): %s", err)
	}

	if driver.Enabled() {
		t.Errorf("driver still reports enabled after OutputEnable(false)")
	}

	if err := fabric.OutputEnable(true); err != nil {
		t.Fatalf("OutputEnable(true): %s", err)
	}

	if !driver.Enabled() {
		t.Errorf("driver reports disabled after OutputEnable(true)")
	}
}

func TestNewWireTableRejectsAmbiguousPosition(t *testing.T) {
	t.Parallel()

	wires := []Wire{
		{Register: 0, Bit: 0, Direction: DirOutput, Name: "A"},
		{Register: 0, Bit: 0, Direction: DirOutput, Name: "B"},
	}

	if _, err := NewWireTable("test", wires); err == nil {
		t.Fatalf("expected error for two signals claiming the same register/bit/direction")
	}
}

func TestNewWireTableRejectsOutOfRangeBit(t *testing.T) {
	t.Parallel()

	wires := []Wire{{Register: 0, Bit: 8, Direction: DirOutput, Name: "A"}}

	if _, err := NewWireTable("test", wires); err == nil {
		t.Fatalf("expected error for out-of-range bit")
	}
}

func TestWireTableFind(t *testing.T) {
	t.Parallel()

	w, ok := QBUS.Find("INIT", DirOutput)
	if !ok {
		t.Skip("QBUS wire table has no output signal named INIT in this build")
	}

	if w.Direction != DirOutput {
		t.Errorf("Find returned wrong direction: %s", w.Direction)
	}
}

func TestMuxAddressRestoresDALRegisters(t *testing.T) {
	t.Parallel()

	driver := NewLoopbackDriver()
	fabric := NewFabric(driver, QBUS.Info)

	if _, err := fabric.MuxAddress(0o1234_5670, true); err != nil {
		t.Fatalf("MuxAddress: %s", err)
	}

	for _, sel := range []Selector{0, 1, 2} {
		got, err := fabric.GetByte(sel)
		if err != nil {
			t.Fatalf("GetByte(%d): %s", sel, err)
		}

		if got != 0 {
			t.Errorf("register %d left at %#02x after MuxAddress, want restored to 0", sel, got)
		}
	}
}

func TestMuxAddressPulsesSync(t *testing.T) {
	t.Parallel()

	driver := NewLoopbackDriver()
	fabric := NewFabric(driver, QBUS.Info)

	if _, err := fabric.MuxAddress(0, false); err != nil {
		t.Fatalf("MuxAddress: %s", err)
	}

	got, err := fabric.GetByte(4)
	if err != nil {
		t.Fatalf("GetByte(4): %s", err)
	}

	if got&0x01 != 0 {
		t.Errorf("SYNC bit left high after MuxAddress, want pulsed back low")
	}
}
