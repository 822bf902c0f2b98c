package latch

// wiretable_unibus.go is the UNIBUS variant's wire table. Unlike QBUS, UNIBUS does not multiplex
// address and data onto shared DAL lines, so address (A<17:00>) and data (D<15:00>) each get their
// own registers; handshake (MSYN/SSYN/BBSY), arbitration (BR4-7/BG4-7 IN+OUT/NPR/NPG IN+OUT/SACK),
// and system (INIT/ACLO/DCLO/LTC/INTR) signals round out the remaining registers.

func init() {
	var err error

	UNIBUS, err = NewWireTable("UNIBUS", unibusWires)
	if err != nil {
		panic(err)
	}
}

// UNIBUS is the build-time wire table for the UNIBUS variant.
var UNIBUS *WireTable

var unibusWires = []Wire{
	// Register 0: A<7:0>
	{Register: 0, Bit: 0, Direction: DirOutput, Name: "A00", Trace: "CPLD1 -> BA00"},
	{Register: 0, Bit: 1, Direction: DirOutput, Name: "A01", Trace: "CPLD1 -> BA01"},
	{Register: 0, Bit: 2, Direction: DirOutput, Name: "A02", Trace: "CPLD1 -> BA02"},
	{Register: 0, Bit: 3, Direction: DirOutput, Name: "A03", Trace: "CPLD1 -> BA03"},
	{Register: 0, Bit: 4, Direction: DirOutput, Name: "A04", Trace: "CPLD1 -> BA04"},
	{Register: 0, Bit: 5, Direction: DirOutput, Name: "A05", Trace: "CPLD1 -> BA05"},
	{Register: 0, Bit: 6, Direction: DirOutput, Name: "A06", Trace: "CPLD1 -> BA06"},
	{Register: 0, Bit: 7, Direction: DirOutput, Name: "A07", Trace: "CPLD1 -> BA07"},
	{Register: 0, Bit: 0, Direction: DirInput, Name: "A00", Trace: "BA00 -> CPLD1"},
	{Register: 0, Bit: 1, Direction: DirInput, Name: "A01", Trace: "BA01 -> CPLD1"},
	{Register: 0, Bit: 2, Direction: DirInput, Name: "A02", Trace: "BA02 -> CPLD1"},
	{Register: 0, Bit: 3, Direction: DirInput, Name: "A03", Trace: "BA03 -> CPLD1"},
	{Register: 0, Bit: 4, Direction: DirInput, Name: "A04", Trace: "BA04 -> CPLD1"},
	{Register: 0, Bit: 5, Direction: DirInput, Name: "A05", Trace: "BA05 -> CPLD1"},
	{Register: 0, Bit: 6, Direction: DirInput, Name: "A06", Trace: "BA06 -> CPLD1"},
	{Register: 0, Bit: 7, Direction: DirInput, Name: "A07", Trace: "BA07 -> CPLD1"},

	// Register 1: A<15:8>
	{Register: 1, Bit: 0, Direction: DirOutput, Name: "A08", Trace: "CPLD1 -> BA08"},
	{Register: 1, Bit: 1, Direction: DirOutput, Name: "A09", Trace: "CPLD1 -> BA09"},
	{Register: 1, Bit: 2, Direction: DirOutput, Name: "A10", Trace: "CPLD1 -> BA10"},
	{Register: 1, Bit: 3, Direction: DirOutput, Name: "A11", Trace: "CPLD1 -> BA11"},
	{Register: 1, Bit: 4, Direction: DirOutput, Name: "A12", Trace: "CPLD1 -> BA12"},
	{Register: 1, Bit: 5, Direction: DirOutput, Name: "A13", Trace: "CPLD1 -> BA13"},
	{Register: 1, Bit: 6, Direction: DirOutput, Name: "A14", Trace: "CPLD1 -> BA14"},
	{Register: 1, Bit: 7, Direction: DirOutput, Name: "A15", Trace: "CPLD1 -> BA15"},
	{Register: 1, Bit: 0, Direction: DirInput, Name: "A08", Trace: "BA08 -> CPLD1"},
	{Register: 1, Bit: 1, Direction: DirInput, Name: "A09", Trace: "BA09 -> CPLD1"},
	{Register: 1, Bit: 2, Direction: DirInput, Name: "A10", Trace: "BA10 -> CPLD1"},
	{Register: 1, Bit: 3, Direction: DirInput, Name: "A11", Trace: "BA11 -> CPLD1"},
	{Register: 1, Bit: 4, Direction: DirInput, Name: "A12", Trace: "BA12 -> CPLD1"},
	{Register: 1, Bit: 5, Direction: DirInput, Name: "A13", Trace: "BA13 -> CPLD1"},
	{Register: 1, Bit: 6, Direction: DirInput, Name: "A14", Trace: "BA14 -> CPLD1"},
	{Register: 1, Bit: 7, Direction: DirInput, Name: "A15", Trace: "BA15 -> CPLD1"},

	// Register 2: A<17:16>, C0/C1, MSYN, SSYN, BBSY.
	{Register: 2, Bit: 0, Direction: DirOutput, Name: "A16", Trace: "CPLD1 -> BA16"},
	{Register: 2, Bit: 1, Direction: DirOutput, Name: "A17", Trace: "CPLD1 -> BA17"},
	{Register: 2, Bit: 2, Direction: DirOutput, Name: "C0", Trace: "CPLD1 -> BC0"},
	{Register: 2, Bit: 3, Direction: DirOutput, Name: "C1", Trace: "CPLD1 -> BC1"},
	{Register: 2, Bit: 4, Direction: DirOutput, Name: "MSYN", Trace: "CPLD1 -> BMSYN"},
	{Register: 2, Bit: 5, Direction: DirOutput, Name: "SSYN", Trace: "CPLD1 -> BSSYN"},
	{Register: 2, Bit: 6, Direction: DirOutput, Name: "BBSY", Trace: "CPLD1 -> BBBSY"},
	{Register: 2, Bit: 0, Direction: DirInput, Name: "A16", Trace: "BA16 -> CPLD1"},
	{Register: 2, Bit: 1, Direction: DirInput, Name: "A17", Trace: "BA17 -> CPLD1"},
	{Register: 2, Bit: 2, Direction: DirInput, Name: "C0", Trace: "BC0 -> CPLD1"},
	{Register: 2, Bit: 3, Direction: DirInput, Name: "C1", Trace: "BC1 -> CPLD1"},
	{Register: 2, Bit: 4, Direction: DirInput, Name: "MSYN", Trace: "BMSYN -> CPLD1"},
	{Register: 2, Bit: 5, Direction: DirInput, Name: "SSYN", Trace: "BSSYN -> CPLD1"},
	{Register: 2, Bit: 6, Direction: DirInput, Name: "BBSY", Trace: "BBBSY -> CPLD1"},

	// Register 3: D<7:0>
	{Register: 3, Bit: 0, Direction: DirOutput, Name: "D00", Trace: "CPLD1 -> BD00"},
	{Register: 3, Bit: 1, Direction: DirOutput, Name: "D01", Trace: "CPLD1 -> BD01"},
	{Register: 3, Bit: 2, Direction: DirOutput, Name: "D02", Trace: "CPLD1 -> BD02"},
	{Register: 3, Bit: 3, Direction: DirOutput, Name: "D03", Trace: "CPLD1 -> BD03"},
	{Register: 3, Bit: 4, Direction: DirOutput, Name: "D04", Trace: "CPLD1 -> BD04"},
	{Register: 3, Bit: 5, Direction: DirOutput, Name: "D05", Trace: "CPLD1 -> BD05"},
	{Register: 3, Bit: 6, Direction: DirOutput, Name: "D06", Trace: "CPLD1 -> BD06"},
	{Register: 3, Bit: 7, Direction: DirOutput, Name: "D07", Trace: "CPLD1 -> BD07"},
	{Register: 3, Bit: 0, Direction: DirInput, Name: "D00", Trace: "BD00 -> CPLD1"},
	{Register: 3, Bit: 1, Direction: DirInput, Name: "D01", Trace: "BD01 -> CPLD1"},
	{Register: 3, Bit: 2, Direction: DirInput, Name: "D02", Trace: "BD02 -> CPLD1"},
	{Register: 3, Bit: 3, Direction: DirInput, Name: "D03", Trace: "BD03 -> CPLD1"},
	{Register: 3, Bit: 4, Direction: DirInput, Name: "D04", Trace: "BD04 -> CPLD1"},
	{Register: 3, Bit: 5, Direction: DirInput, Name: "D05", Trace: "BD05 -> CPLD1"},
	{Register: 3, Bit: 6, Direction: DirInput, Name: "D06", Trace: "BD06 -> CPLD1"},
	{Register: 3, Bit: 7, Direction: DirInput, Name: "D07", Trace: "BD07 -> CPLD1"},

	// Register 4: D<15:8>
	{Register: 4, Bit: 0, Direction: DirOutput, Name: "D08", Trace: "CPLD1 -> BD08"},
	{Register: 4, Bit: 1, Direction: DirOutput, Name: "D09", Trace: "CPLD1 -> BD09"},
	{Register: 4, Bit: 2, Direction: DirOutput, Name: "D10", Trace: "CPLD1 -> BD10"},
	{Register: 4, Bit: 3, Direction: DirOutput, Name: "D11", Trace: "CPLD1 -> BD11"},
	{Register: 4, Bit: 4, Direction: DirOutput, Name: "D12", Trace: "CPLD1 -> BD12"},
	{Register: 4, Bit: 5, Direction: DirOutput, Name: "D13", Trace: "CPLD1 -> BD13"},
	{Register: 4, Bit: 6, Direction: DirOutput, Name: "D14", Trace: "CPLD1 -> BD14"},
	{Register: 4, Bit: 7, Direction: DirOutput, Name: "D15", Trace: "CPLD1 -> BD15"},
	{Register: 4, Bit: 0, Direction: DirInput, Name: "D08", Trace: "BD08 -> CPLD1"},
	{Register: 4, Bit: 1, Direction: DirInput, Name: "D09", Trace: "BD09 -> CPLD1"},
	{Register: 4, Bit: 2, Direction: DirInput, Name: "D10", Trace: "BD10 -> CPLD1"},
	{Register: 4, Bit: 3, Direction: DirInput, Name: "D11", Trace: "BD11 -> CPLD1"},
	{Register: 4, Bit: 4, Direction: DirInput, Name: "D12", Trace: "BD12 -> CPLD1"},
	{Register: 4, Bit: 5, Direction: DirInput, Name: "D13", Trace: "BD13 -> CPLD1"},
	{Register: 4, Bit: 6, Direction: DirInput, Name: "D14", Trace: "BD14 -> CPLD1"},
	{Register: 4, Bit: 7, Direction: DirInput, Name: "D15", Trace: "BD15 -> CPLD1"},

	// Register 5: system signals.
	{Register: 5, Bit: 0, Direction: DirOutput, Name: "INIT", Trace: "CPLD2 -> BINIT"},
	{Register: 5, Bit: 1, Direction: DirOutput, Name: "ACLO", Trace: "CPLD2 -> BACLO"},
	{Register: 5, Bit: 2, Direction: DirOutput, Name: "DCLO", Trace: "CPLD2 -> BDCLO"},
	{Register: 5, Bit: 3, Direction: DirOutput, Name: "INTR", Trace: "CPLD2 -> BINTR"},
	{Register: 5, Bit: 0, Direction: DirInput, Name: "INIT", Trace: "BINIT -> CPLD2"},
	{Register: 5, Bit: 1, Direction: DirInput, Name: "ACLO", Trace: "BACLO -> CPLD2"},
	{Register: 5, Bit: 2, Direction: DirInput, Name: "DCLO", Trace: "BDCLO -> CPLD2"},
	{Register: 5, Bit: 3, Direction: DirInput, Name: "INTR", Trace: "BINTR -> CPLD2"},
	{Register: 5, Bit: 4, Direction: DirInput, Name: "LTC", Trace: "BLTC -> CPLD2"},

	// Register 6: DMA/interrupt arbitration request lines.
	{Register: 6, Bit: 0, Direction: DirOutput, Name: "BR4", Trace: "CPLD2 -> BBR4"},
	{Register: 6, Bit: 1, Direction: DirOutput, Name: "BR5", Trace: "CPLD2 -> BBR5"},
	{Register: 6, Bit: 2, Direction: DirOutput, Name: "BR6", Trace: "CPLD2 -> BBR6"},
	{Register: 6, Bit: 3, Direction: DirOutput, Name: "BR7", Trace: "CPLD2 -> BBR7"},
	{Register: 6, Bit: 4, Direction: DirOutput, Name: "NPR", Trace: "CPLD2 -> BNPR"},
	{Register: 6, Bit: 5, Direction: DirOutput, Name: "SACK", Trace: "CPLD2 -> BSACK"},
	{Register: 6, Bit: 0, Direction: DirInput, Name: "BR4", Trace: "BBR4 -> CPLD2"},
	{Register: 6, Bit: 1, Direction: DirInput, Name: "BR5", Trace: "BBR5 -> CPLD2"},
	{Register: 6, Bit: 2, Direction: DirInput, Name: "BR6", Trace: "BBR6 -> CPLD2"},
	{Register: 6, Bit: 3, Direction: DirInput, Name: "BR7", Trace: "BBR7 -> CPLD2"},
	{Register: 6, Bit: 4, Direction: DirInput, Name: "NPR", Trace: "BNPR -> CPLD2"},
	{Register: 6, Bit: 5, Direction: DirInput, Name: "SACK", Trace: "BSACK -> CPLD2"},

	// Register 7: grant-chain lines, one in/out pair per level plus NPG (DMA grant).
	{Register: 7, Bit: 0, Direction: DirOutput, Name: "BG4_OUT", Trace: "CPLD2 -> BG4_OUT"},
	{Register: 7, Bit: 1, Direction: DirOutput, Name: "BG5_OUT", Trace: "CPLD2 -> BG5_OUT"},
	{Register: 7, Bit: 2, Direction: DirOutput, Name: "BG6_OUT", Trace: "CPLD2 -> BG6_OUT"},
	{Register: 7, Bit: 3, Direction: DirOutput, Name: "BG7_OUT", Trace: "CPLD2 -> BG7_OUT"},
	{Register: 7, Bit: 4, Direction: DirOutput, Name: "NPG_OUT", Trace: "CPLD2 -> NPG_OUT"},
	{Register: 7, Bit: 0, Direction: DirInput, Name: "BG4_IN", Trace: "BG4_IN -> CPLD2"},
	{Register: 7, Bit: 1, Direction: DirInput, Name: "BG5_IN", Trace: "BG5_IN -> CPLD2"},
	{Register: 7, Bit: 2, Direction: DirInput, Name: "BG6_IN", Trace: "BG6_IN -> CPLD2"},
	{Register: 7, Bit: 3, Direction: DirInput, Name: "BG7_IN", Trace: "BG7_IN -> CPLD2"},
	{Register: 7, Bit: 4, Direction: DirInput, Name: "NPG_IN", Trace: "NPG_IN -> CPLD2"},
}
