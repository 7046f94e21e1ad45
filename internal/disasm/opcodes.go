package disasm

// Mnemonic identifies a 65816 instruction independent of its addressing mode.
type Mnemonic uint8

const (
	ADC Mnemonic = iota // add with carry
	AND                 // and accumulator with memory
	ASL                 // arithmetic shift left
	BCC                 // branch if carry clear
	BCS                 // branch if carry set
	BEQ                 // branch if equal
	BIT                 // test bits
	BMI                 // branch if minus
	BNE                 // branch if not equal
	BPL                 // branch if plus
	BRA                 // branch always
	BRK                 // break
	BRL                 // branch always long
	BVC                 // branch if overflow clear
	BVS                 // branch if overflow set
	CLC                 // clear carry
	CLD                 // clear decimal mode
	CLI                 // clear interrupt disable
	CLV                 // clear overflow
	CMP                 // compare accumulator
	COP                 // co-processor enable
	CPX                 // compare X
	CPY                 // compare Y
	DEC                 // decrement
	DEX                 // decrement X
	DEY                 // decrement Y
	EOR                 // exclusive or
	INC                 // increment
	INX                 // increment X
	INY                 // increment Y
	JML                 // jump long
	JMP                 // jump
	JSL                 // jump to subroutine long
	JSR                 // jump to subroutine
	LDA                 // load accumulator
	LDX                 // load X
	LDY                 // load Y
	LSR                 // logical shift right
	MVN                 // block move negative
	MVP                 // block move positive
	NOP                 // no operation
	ORA                 // or accumulator
	PEA                 // push effective address
	PEI                 // push effective indirect address
	PER                 // push program counter relative
	PHA                 // push accumulator
	PHB                 // push data bank
	PHD                 // push direct page
	PHK                 // push program bank
	PHP                 // push processor status
	PHX                 // push X
	PHY                 // push Y
	PLA                 // pull accumulator
	PLB                 // pull data bank
	PLD                 // pull direct page
	PLP                 // pull processor status
	PLX                 // pull X
	PLY                 // pull Y
	REP                 // reset status bits
	ROL                 // rotate left
	ROR                 // rotate right
	RTI                 // return from interrupt
	RTL                 // return from subroutine long
	RTS                 // return from subroutine
	SBC                 // subtract with carry
	SEC                 // set carry
	SED                 // set decimal mode
	SEI                 // set interrupt disable
	SEP                 // set status bits
	STA                 // store accumulator
	STP                 // stop the processor
	STX                 // store X
	STY                 // store Y
	STZ                 // store zero
	TAX                 // transfer A to X
	TAY                 // transfer A to Y
	TCD                 // transfer A to direct page
	TCS                 // transfer A to stack pointer
	TDC                 // transfer direct page to A
	TRB                 // test and reset bits
	TSB                 // test and set bits
	TSC                 // transfer stack pointer to A
	TSX                 // transfer stack pointer to X
	TXA                 // transfer X to A
	TXS                 // transfer X to stack pointer
	TXY                 // transfer X to Y
	TYA                 // transfer Y to A
	TYX                 // transfer Y to X
	WAI                 // wait for interrupt
	WDM                 // reserved
	XBA                 // exchange accumulator bytes
	XCE                 // exchange carry and emulation
)

var mnemonicNames = [...]string{
	ADC: "ADC",
	AND: "AND",
	ASL: "ASL",
	BCC: "BCC",
	BCS: "BCS",
	BEQ: "BEQ",
	BIT: "BIT",
	BMI: "BMI",
	BNE: "BNE",
	BPL: "BPL",
	BRA: "BRA",
	BRK: "BRK",
	BRL: "BRL",
	BVC: "BVC",
	BVS: "BVS",
	CLC: "CLC",
	CLD: "CLD",
	CLI: "CLI",
	CLV: "CLV",
	CMP: "CMP",
	COP: "COP",
	CPX: "CPX",
	CPY: "CPY",
	DEC: "DEC",
	DEX: "DEX",
	DEY: "DEY",
	EOR: "EOR",
	INC: "INC",
	INX: "INX",
	INY: "INY",
	JML: "JML",
	JMP: "JMP",
	JSL: "JSL",
	JSR: "JSR",
	LDA: "LDA",
	LDX: "LDX",
	LDY: "LDY",
	LSR: "LSR",
	MVN: "MVN",
	MVP: "MVP",
	NOP: "NOP",
	ORA: "ORA",
	PEA: "PEA",
	PEI: "PEI",
	PER: "PER",
	PHA: "PHA",
	PHB: "PHB",
	PHD: "PHD",
	PHK: "PHK",
	PHP: "PHP",
	PHX: "PHX",
	PHY: "PHY",
	PLA: "PLA",
	PLB: "PLB",
	PLD: "PLD",
	PLP: "PLP",
	PLX: "PLX",
	PLY: "PLY",
	REP: "REP",
	ROL: "ROL",
	ROR: "ROR",
	RTI: "RTI",
	RTL: "RTL",
	RTS: "RTS",
	SBC: "SBC",
	SEC: "SEC",
	SED: "SED",
	SEI: "SEI",
	SEP: "SEP",
	STA: "STA",
	STP: "STP",
	STX: "STX",
	STY: "STY",
	STZ: "STZ",
	TAX: "TAX",
	TAY: "TAY",
	TCD: "TCD",
	TCS: "TCS",
	TDC: "TDC",
	TRB: "TRB",
	TSB: "TSB",
	TSC: "TSC",
	TSX: "TSX",
	TXA: "TXA",
	TXS: "TXS",
	TXY: "TXY",
	TYA: "TYA",
	TYX: "TYX",
	WAI: "WAI",
	WDM: "WDM",
	XBA: "XBA",
	XCE: "XCE",
}

func (m Mnemonic) String() string {
	if int(m) < len(mnemonicNames) {
		return mnemonicNames[m]
	}
	return "???"
}

// Opcode is an entry of the opcode table.
type Opcode struct {
	Mnemonic Mnemonic
	Mode     AddressingMode
}

// Opcodes maps every opcode byte to its mnemonic and addressing mode.
var Opcodes = [256]Opcode{
	/* 00 */ {BRK, Constant8}, {ORA, DirectPageXIndexIndirect}, {COP, Constant8}, {ORA, DirectPageSIndex},
	/* 04 */ {TSB, DirectPage}, {ORA, DirectPage}, {ASL, DirectPage}, {ORA, DirectPageLongIndirect},
	/* 08 */ {PHP, Implied}, {ORA, ImmediateMFlagDependent}, {ASL, Accumulator}, {PHD, Implied},
	/* 0C */ {TSB, Address}, {ORA, Address}, {ASL, Address}, {ORA, Long},
	/* 10 */ {BPL, Relative8}, {ORA, DirectPageIndirectYIndex}, {ORA, DirectPageIndirect}, {ORA, DirectPageSIndexIndirectYIndex},
	/* 14 */ {TRB, DirectPage}, {ORA, DirectPageXIndex}, {ASL, DirectPageXIndex}, {ORA, DirectPageLongIndirectYIndex},
	/* 18 */ {CLC, Implied}, {ORA, AddressYIndex}, {INC, Accumulator}, {TCS, Implied},
	/* 1C */ {TRB, Address}, {ORA, AddressXIndex}, {ASL, AddressXIndex}, {ORA, LongXIndex},
	/* 20 */ {JSR, Address}, {AND, DirectPageXIndexIndirect}, {JSL, Long}, {AND, DirectPageSIndex},
	/* 24 */ {BIT, DirectPage}, {AND, DirectPage}, {ROL, DirectPage}, {AND, DirectPageLongIndirect},
	/* 28 */ {PLP, Implied}, {AND, ImmediateMFlagDependent}, {ROL, Accumulator}, {PLD, Implied},
	/* 2C */ {BIT, Address}, {AND, Address}, {ROL, Address}, {AND, Long},
	/* 30 */ {BMI, Relative8}, {AND, DirectPageIndirectYIndex}, {AND, DirectPageIndirect}, {AND, DirectPageSIndexIndirectYIndex},
	/* 34 */ {BIT, DirectPageXIndex}, {AND, DirectPageXIndex}, {ROL, DirectPageXIndex}, {AND, DirectPageLongIndirectYIndex},
	/* 38 */ {SEC, Implied}, {AND, AddressYIndex}, {DEC, Accumulator}, {TSC, Implied},
	/* 3C */ {BIT, AddressXIndex}, {AND, AddressXIndex}, {ROL, AddressXIndex}, {AND, LongXIndex},
	/* 40 */ {RTI, Implied}, {EOR, DirectPageXIndexIndirect}, {WDM, Constant8}, {EOR, DirectPageSIndex},
	/* 44 */ {MVP, BlockMove}, {EOR, DirectPage}, {LSR, DirectPage}, {EOR, DirectPageLongIndirect},
	/* 48 */ {PHA, Implied}, {EOR, ImmediateMFlagDependent}, {LSR, Accumulator}, {PHK, Implied},
	/* 4C */ {JMP, Address}, {EOR, Address}, {LSR, Address}, {EOR, Long},
	/* 50 */ {BVC, Relative8}, {EOR, DirectPageIndirectYIndex}, {EOR, DirectPageIndirect}, {EOR, DirectPageSIndexIndirectYIndex},
	/* 54 */ {MVN, BlockMove}, {EOR, DirectPageXIndex}, {LSR, DirectPageXIndex}, {EOR, DirectPageLongIndirectYIndex},
	/* 58 */ {CLI, Implied}, {EOR, AddressYIndex}, {PHY, Implied}, {TCD, Implied},
	/* 5C */ {JML, Long}, {EOR, AddressXIndex}, {LSR, AddressXIndex}, {EOR, LongXIndex},
	/* 60 */ {RTS, Implied}, {ADC, DirectPageXIndexIndirect}, {PER, Relative16}, {ADC, DirectPageSIndex},
	/* 64 */ {STZ, DirectPage}, {ADC, DirectPage}, {ROR, DirectPage}, {ADC, DirectPageLongIndirect},
	/* 68 */ {PLA, Implied}, {ADC, ImmediateMFlagDependent}, {ROR, Accumulator}, {RTL, Implied},
	/* 6C */ {JMP, AddressIndirect}, {ADC, Address}, {ROR, Address}, {ADC, Long},
	/* 70 */ {BVS, Relative8}, {ADC, DirectPageIndirectYIndex}, {ADC, DirectPageIndirect}, {ADC, DirectPageSIndexIndirectYIndex},
	/* 74 */ {STZ, DirectPageXIndex}, {ADC, DirectPageXIndex}, {ROR, DirectPageXIndex}, {ADC, DirectPageLongIndirectYIndex},
	/* 78 */ {SEI, Implied}, {ADC, AddressYIndex}, {PLY, Implied}, {TDC, Implied},
	/* 7C */ {JMP, AddressXIndexIndirect}, {ADC, AddressXIndex}, {ROR, AddressXIndex}, {ADC, LongXIndex},
	/* 80 */ {BRA, Relative8}, {STA, DirectPageXIndexIndirect}, {BRL, Relative16}, {STA, DirectPageSIndex},
	/* 84 */ {STY, DirectPage}, {STA, DirectPage}, {STX, DirectPage}, {STA, DirectPageLongIndirect},
	/* 88 */ {DEY, Implied}, {BIT, ImmediateMFlagDependent}, {TXA, Implied}, {PHB, Implied},
	/* 8C */ {STY, Address}, {STA, Address}, {STX, Address}, {STA, Long},
	/* 90 */ {BCC, Relative8}, {STA, DirectPageIndirectYIndex}, {STA, DirectPageIndirect}, {STA, DirectPageSIndexIndirectYIndex},
	/* 94 */ {STY, DirectPageXIndex}, {STA, DirectPageXIndex}, {STX, DirectPageYIndex}, {STA, DirectPageLongIndirectYIndex},
	/* 98 */ {TYA, Implied}, {STA, AddressYIndex}, {TXS, Implied}, {TXY, Implied},
	/* 9C */ {STZ, Address}, {STA, AddressXIndex}, {STZ, AddressXIndex}, {STA, LongXIndex},
	/* A0 */ {LDY, ImmediateXFlagDependent}, {LDA, DirectPageXIndexIndirect}, {LDX, ImmediateXFlagDependent}, {LDA, DirectPageSIndex},
	/* A4 */ {LDY, DirectPage}, {LDA, DirectPage}, {LDX, DirectPage}, {LDA, DirectPageLongIndirect},
	/* A8 */ {TAY, Implied}, {LDA, ImmediateMFlagDependent}, {TAX, Implied}, {PLB, Implied},
	/* AC */ {LDY, Address}, {LDA, Address}, {LDX, Address}, {LDA, Long},
	/* B0 */ {BCS, Relative8}, {LDA, DirectPageIndirectYIndex}, {LDA, DirectPageIndirect}, {LDA, DirectPageSIndexIndirectYIndex},
	/* B4 */ {LDY, DirectPageXIndex}, {LDA, DirectPageXIndex}, {LDX, DirectPageYIndex}, {LDA, DirectPageLongIndirectYIndex},
	/* B8 */ {CLV, Implied}, {LDA, AddressYIndex}, {TSX, Implied}, {TYX, Implied},
	/* BC */ {LDY, AddressXIndex}, {LDA, AddressXIndex}, {LDX, AddressYIndex}, {LDA, LongXIndex},
	/* C0 */ {CPY, ImmediateXFlagDependent}, {CMP, DirectPageXIndexIndirect}, {REP, Constant8}, {CMP, DirectPageSIndex},
	/* C4 */ {CPY, DirectPage}, {CMP, DirectPage}, {DEC, DirectPage}, {CMP, DirectPageLongIndirect},
	/* C8 */ {INY, Implied}, {CMP, ImmediateMFlagDependent}, {DEX, Implied}, {WAI, Implied},
	/* CC */ {CPY, Address}, {CMP, Address}, {DEC, Address}, {CMP, Long},
	/* D0 */ {BNE, Relative8}, {CMP, DirectPageIndirectYIndex}, {CMP, DirectPageIndirect}, {CMP, DirectPageSIndexIndirectYIndex},
	/* D4 */ {PEI, DirectPageIndirect}, {CMP, DirectPageXIndex}, {DEC, DirectPageXIndex}, {CMP, DirectPageLongIndirectYIndex},
	/* D8 */ {CLD, Implied}, {CMP, AddressYIndex}, {PHX, Implied}, {STP, Implied},
	/* DC */ {JML, AddressLongIndirect}, {CMP, AddressXIndex}, {DEC, AddressXIndex}, {CMP, LongXIndex},
	/* E0 */ {CPX, ImmediateXFlagDependent}, {SBC, DirectPageXIndexIndirect}, {SEP, Constant8}, {SBC, DirectPageSIndex},
	/* E4 */ {CPX, DirectPage}, {SBC, DirectPage}, {INC, DirectPage}, {SBC, DirectPageLongIndirect},
	/* E8 */ {INX, Implied}, {SBC, ImmediateMFlagDependent}, {NOP, Implied}, {XBA, Implied},
	/* EC */ {CPX, Address}, {SBC, Address}, {INC, Address}, {SBC, Long},
	/* F0 */ {BEQ, Relative8}, {SBC, DirectPageIndirectYIndex}, {SBC, DirectPageIndirect}, {SBC, DirectPageSIndexIndirectYIndex},
	/* F4 */ {PEA, Address}, {SBC, DirectPageXIndex}, {INC, DirectPageXIndex}, {SBC, DirectPageLongIndirectYIndex},
	/* F8 */ {SED, Implied}, {SBC, AddressYIndex}, {PLX, Implied}, {XCE, Implied},
	/* FC */ {JSR, AddressXIndexIndirect}, {SBC, AddressXIndex}, {INC, AddressXIndex}, {SBC, LongXIndex},
}
