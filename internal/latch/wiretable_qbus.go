package latch

// wiretable_qbus.go is the QBUS variant's wire table: registers 0-2 carry the multiplexed
// DAL<21:0> address/data lines (with BS7 and the latched SYNC address trick folded into register
// 2/3), register 4 carries the data-cycle control signals, register 5 the system signals
// (INIT/HALT/EVNT/POK/DCOK/SRUN), and register 6 the interrupt/DMA request-grant-acknowledge lines.

func init() {
	var err error

	QBUS, err = NewWireTable("QBUS", qbusWires)
	if err != nil {
		panic(err)
	}
}

// QBUS is the build-time wire table for the QBUS variant.
var QBUS *WireTable

var qbusWires = []Wire{
	// Register 0: DAL<7:0>
	{Register: 0, Bit: 0, Direction: DirOutput, Name: "DAL00", Trace: "P9.x -> CPLD1 -> BDAL00"},
	{Register: 0, Bit: 1, Direction: DirOutput, Name: "DAL01", Trace: "P9.x -> CPLD1 -> BDAL01"},
	{Register: 0, Bit: 2, Direction: DirOutput, Name: "DAL02", Trace: "P9.x -> CPLD1 -> BDAL02"},
	{Register: 0, Bit: 3, Direction: DirOutput, Name: "DAL03", Trace: "P9.x -> CPLD1 -> BDAL03"},
	{Register: 0, Bit: 4, Direction: DirOutput, Name: "DAL04", Trace: "P9.x -> CPLD1 -> BDAL04"},
	{Register: 0, Bit: 5, Direction: DirOutput, Name: "DAL05", Trace: "P9.x -> CPLD1 -> BDAL05"},
	{Register: 0, Bit: 6, Direction: DirOutput, Name: "DAL06", Trace: "P9.x -> CPLD1 -> BDAL06"},
	{Register: 0, Bit: 7, Direction: DirOutput, Name: "DAL07", Trace: "P9.x -> CPLD1 -> BDAL07"},
	{Register: 0, Bit: 0, Direction: DirInput, Name: "DAL00", Trace: "BDAL00 -> CPLD1 -> P8.x"},
	{Register: 0, Bit: 1, Direction: DirInput, Name: "DAL01", Trace: "BDAL01 -> CPLD1 -> P8.x"},
	{Register: 0, Bit: 2, Direction: DirInput, Name: "DAL02", Trace: "BDAL02 -> CPLD1 -> P8.x"},
	{Register: 0, Bit: 3, Direction: DirInput, Name: "DAL03", Trace: "BDAL03 -> CPLD1 -> P8.x"},
	{Register: 0, Bit: 4, Direction: DirInput, Name: "DAL04", Trace: "BDAL04 -> CPLD1 -> P8.x"},
	{Register: 0, Bit: 5, Direction: DirInput, Name: "DAL05", Trace: "BDAL05 -> CPLD1 -> P8.x"},
	{Register: 0, Bit: 6, Direction: DirInput, Name: "DAL06", Trace: "BDAL06 -> CPLD1 -> P8.x"},
	{Register: 0, Bit: 7, Direction: DirInput, Name: "DAL07", Trace: "BDAL07 -> CPLD1 -> P8.x"},

	// Register 1: DAL<15:8>
	{Register: 1, Bit: 0, Direction: DirOutput, Name: "DAL08", Trace: "P9.x -> CPLD1 -> BDAL08"},
	{Register: 1, Bit: 1, Direction: DirOutput, Name: "DAL09", Trace: "P9.x -> CPLD1 -> BDAL09"},
	{Register: 1, Bit: 2, Direction: DirOutput, Name: "DAL10", Trace: "P9.x -> CPLD1 -> BDAL10"},
	{Register: 1, Bit: 3, Direction: DirOutput, Name: "DAL11", Trace: "P9.x -> CPLD1 -> BDAL11"},
	{Register: 1, Bit: 4, Direction: DirOutput, Name: "DAL12", Trace: "P9.x -> CPLD1 -> BDAL12"},
	{Register: 1, Bit: 5, Direction: DirOutput, Name: "DAL13", Trace: "P9.x -> CPLD1 -> BDAL13"},
	{Register: 1, Bit: 6, Direction: DirOutput, Name: "DAL14", Trace: "P9.x -> CPLD1 -> BDAL14"},
	{Register: 1, Bit: 7, Direction: DirOutput, Name: "DAL15", Trace: "P9.x -> CPLD1 -> BDAL15"},
	{Register: 1, Bit: 0, Direction: DirInput, Name: "DAL08", Trace: "BDAL08 -> CPLD1 -> P8.x"},
	{Register: 1, Bit: 1, Direction: DirInput, Name: "DAL09", Trace: "BDAL09 -> CPLD1 -> P8.x"},
	{Register: 1, Bit: 2, Direction: DirInput, Name: "DAL10", Trace: "BDAL10 -> CPLD1 -> P8.x"},
	{Register: 1, Bit: 3, Direction: DirInput, Name: "DAL11", Trace: "BDAL11 -> CPLD1 -> P8.x"},
	{Register: 1, Bit: 4, Direction: DirInput, Name: "DAL12", Trace: "BDAL12 -> CPLD1 -> P8.x"},
	{Register: 1, Bit: 5, Direction: DirInput, Name: "DAL13", Trace: "BDAL13 -> CPLD1 -> P8.x"},
	{Register: 1, Bit: 6, Direction: DirInput, Name: "DAL14", Trace: "BDAL14 -> CPLD1 -> P8.x"},
	{Register: 1, Bit: 7, Direction: DirInput, Name: "DAL15", Trace: "BDAL15 -> CPLD1 -> P8.x"},

	// Register 2: DAL<21:16>, BS7 (write and read)
	{Register: 2, Bit: 0, Direction: DirOutput, Name: "DAL16", Trace: "P9.x -> CPLD1 -> BDAL16"},
	{Register: 2, Bit: 1, Direction: DirOutput, Name: "DAL17", Trace: "P9.x -> CPLD1 -> BDAL17"},
	{Register: 2, Bit: 2, Direction: DirOutput, Name: "DAL18", Trace: "P9.x -> CPLD1 -> BDAL18"},
	{Register: 2, Bit: 3, Direction: DirOutput, Name: "DAL19", Trace: "P9.x -> CPLD1 -> BDAL19"},
	{Register: 2, Bit: 4, Direction: DirOutput, Name: "DAL20", Trace: "P9.x -> CPLD1 -> BDAL20"},
	{Register: 2, Bit: 5, Direction: DirOutput, Name: "DAL21", Trace: "P9.x -> CPLD1 -> BDAL21"},
	{Register: 2, Bit: 6, Direction: DirOutput, Inverted: true, Name: "BS7", Trace: "P9.x -> CPLD1 -> BBS7*"},
	{Register: 2, Bit: 0, Direction: DirInput, Name: "DAL16", Trace: "BDAL16 -> CPLD1 -> P8.x"},
	{Register: 2, Bit: 1, Direction: DirInput, Name: "DAL17", Trace: "BDAL17 -> CPLD1 -> P8.x"},
	{Register: 2, Bit: 2, Direction: DirInput, Name: "DAL18", Trace: "BDAL18 -> CPLD1 -> P8.x"},
	{Register: 2, Bit: 3, Direction: DirInput, Name: "DAL19", Trace: "BDAL19 -> CPLD1 -> P8.x"},
	{Register: 2, Bit: 4, Direction: DirInput, Name: "DAL20", Trace: "BDAL20 -> CPLD1 -> P8.x"},
	{Register: 2, Bit: 5, Direction: DirInput, Name: "DAL21", Trace: "BDAL21 -> CPLD1 -> P8.x"},
	{Register: 2, Bit: 6, Direction: DirInput, Inverted: true, Name: "BS7", Trace: "BBS7* -> CPLD1 -> P8.x"},

	// Register 3: latched address readback (SYNClatch/BS7*/WTBT*/REF*); otherwise idle on QBUS.
	{Register: 3, Bit: 0, Direction: DirInput, Name: "SYNClatch", Trace: "BSYNC (latched on CPLD) -> P8.x"},
	{Register: 3, Bit: 1, Direction: DirInput, Inverted: true, Name: "BS7latch", Trace: "BBS7* (latched) -> P8.x"},
	{Register: 3, Bit: 2, Direction: DirInput, Inverted: true, Name: "WTBTlatch", Trace: "BWTBT* (latched) -> P8.x"},
	{Register: 3, Bit: 3, Direction: DirInput, Inverted: true, Name: "REFlatch", Trace: "BREF* (latched) -> P8.x"},

	// Register 4: data-cycle control signals.
	{Register: 4, Bit: 0, Direction: DirOutput, Name: "SYNC", Trace: "P9.x -> CPLD2 -> BSYNC"},
	{Register: 4, Bit: 1, Direction: DirOutput, Name: "DIN", Trace: "P9.x -> CPLD2 -> BDIN"},
	{Register: 4, Bit: 2, Direction: DirOutput, Name: "DOUT", Trace: "P9.x -> CPLD2 -> BDOUT"},
	{Register: 4, Bit: 3, Direction: DirOutput, Name: "RPLY", Trace: "P9.x -> CPLD2 -> BRPLY"},
	{Register: 4, Bit: 4, Direction: DirOutput, Name: "WTBT", Trace: "P9.x -> CPLD2 -> BWTBT"},
	{Register: 4, Bit: 5, Direction: DirOutput, Name: "BS7", Trace: "P9.x -> CPLD2 -> BBS7"},
	{Register: 4, Bit: 6, Direction: DirOutput, Name: "REF", Trace: "P9.x -> CPLD2 -> BREF"},
	{Register: 4, Bit: 0, Direction: DirInput, Name: "SYNC", Trace: "BSYNC -> CPLD2 -> P8.x"},
	{Register: 4, Bit: 1, Direction: DirInput, Name: "DIN", Trace: "BDIN -> CPLD2 -> P8.x"},
	{Register: 4, Bit: 2, Direction: DirInput, Name: "DOUT", Trace: "BDOUT -> CPLD2 -> P8.x"},
	{Register: 4, Bit: 3, Direction: DirInput, Name: "RPLY", Trace: "BRPLY -> CPLD2 -> P8.x"},
	{Register: 4, Bit: 4, Direction: DirInput, Name: "WTBT", Trace: "BWTBT -> CPLD2 -> P8.x"},
	{Register: 4, Bit: 5, Direction: DirInput, Name: "BS7", Trace: "BBS7 -> CPLD2 -> P8.x"},
	{Register: 4, Bit: 6, Direction: DirInput, Name: "REF", Trace: "BREF -> CPLD2 -> P8.x"},

	// Register 5: system signals.
	{Register: 5, Bit: 0, Direction: DirOutput, Name: "INIT", Trace: "P9.x -> CPLD2 -> BINIT"},
	{Register: 5, Bit: 1, Direction: DirOutput, Name: "HALT", Trace: "P9.x -> CPLD2 -> BHALT"},
	{Register: 5, Bit: 2, Direction: DirOutput, Name: "EVNT", Trace: "P9.x -> CPLD2 -> BEVNT"},
	{Register: 5, Bit: 3, Direction: DirOutput, Name: "POK", Trace: "P9.x -> CPLD2 -> BPOK"},
	{Register: 5, Bit: 4, Direction: DirOutput, Name: "DCOK", Trace: "P9.x -> CPLD2 -> BDCOK"},
	{Register: 5, Bit: 0, Direction: DirInput, Name: "INIT", Trace: "BINIT -> CPLD2 -> P8.x"},
	{Register: 5, Bit: 1, Direction: DirInput, Name: "HALT", Trace: "BHALT -> CPLD2 -> P8.x"},
	{Register: 5, Bit: 2, Direction: DirInput, Name: "EVNT", Trace: "BEVNT -> CPLD2 -> P8.x"},
	{Register: 5, Bit: 3, Direction: DirInput, Name: "POK", Trace: "BPOK -> CPLD2 -> P8.x"},
	{Register: 5, Bit: 4, Direction: DirInput, Name: "DCOK", Trace: "BDCOK -> CPLD2 -> P8.x"},
	{Register: 5, Bit: 5, Direction: DirInput, Name: "SRUN", Trace: "BSRUN -> CPLD2 -> P8.x"},

	// Register 6: interrupt/DMA request-grant-acknowledge lines.
	{Register: 6, Bit: 0, Direction: DirOutput, Name: "IRQ4", Trace: "P9.x -> CPLD2 -> BIRQ4"},
	{Register: 6, Bit: 1, Direction: DirOutput, Name: "IRQ5", Trace: "P9.x -> CPLD2 -> BIRQ5"},
	{Register: 6, Bit: 2, Direction: DirOutput, Name: "IRQ6", Trace: "P9.x -> CPLD2 -> BIRQ6"},
	{Register: 6, Bit: 3, Direction: DirOutput, Name: "IRQ7", Trace: "P9.x -> CPLD2 -> BIRQ7"},
	{Register: 6, Bit: 4, Direction: DirOutput, Name: "DMR", Trace: "P9.x -> CPLD2 -> BDMR"},
	{Register: 6, Bit: 5, Direction: DirOutput, Name: "IAKO", Trace: "P9.x -> CPLD2 -> BIAKO"},
	{Register: 6, Bit: 6, Direction: DirOutput, Name: "DMGO", Trace: "P9.x -> CPLD2 -> BDMGO"},
	{Register: 6, Bit: 7, Direction: DirOutput, Name: "SACK", Trace: "P9.x -> CPLD2 -> BSACK"},
	{Register: 6, Bit: 0, Direction: DirInput, Name: "IRQ4", Trace: "BIRQ4 -> CPLD2 -> P8.x"},
	{Register: 6, Bit: 1, Direction: DirInput, Name: "IRQ5", Trace: "BIRQ5 -> CPLD2 -> P8.x"},
	{Register: 6, Bit: 2, Direction: DirInput, Name: "IRQ6", Trace: "BIRQ6 -> CPLD2 -> P8.x"},
	{Register: 6, Bit: 3, Direction: DirInput, Name: "IRQ7", Trace: "BIRQ7 -> CPLD2 -> P8.x"},
	{Register: 6, Bit: 4, Direction: DirInput, Name: "DMR", Trace: "BDMR -> CPLD2 -> P8.x"},
	{Register: 6, Bit: 5, Direction: DirInput, Name: "IAKI", Trace: "BIAKI -> CPLD2 -> P8.x"},
	{Register: 6, Bit: 6, Direction: DirInput, Name: "DMGI", Trace: "BDMGI -> CPLD2 -> P8.x"},
	{Register: 6, Bit: 7, Direction: DirInput, Name: "SACK", Trace: "BSACK -> CPLD2 -> P8.x"},
}
