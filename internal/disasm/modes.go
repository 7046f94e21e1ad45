package disasm

// AddressingMode is the operand form of an opcode.
type AddressingMode uint8

const (
	Accumulator AddressingMode = iota
	Address
	AddressIndirect
	AddressLongIndirect
	AddressXIndex
	AddressYIndex
	AddressXIndexIndirect
	BlockMove
	Constant8
	DirectPage
	DirectPageIndirect
	DirectPageIndirectYIndex
	DirectPageLongIndirect
	DirectPageLongIndirectYIndex
	DirectPageXIndex
	DirectPageXIndexIndirect
	DirectPageYIndex
	DirectPageSIndex
	DirectPageSIndexIndirectYIndex
	Implied
	Immediate8
	Immediate16
	ImmediateXFlagDependent
	ImmediateMFlagDependent
	Long
	LongXIndex
	Relative8
	Relative16
)

// OperandSize returns the number of operand bytes following the opcode.
// Flag dependent immediates must be resolved with Resolve first, they
// report their 16-bit size otherwise.
func (m AddressingMode) OperandSize() int {
	switch m {
	case Accumulator, Implied:
		return 0
	case Long, LongXIndex:
		return 3
	case Address, AddressIndirect, AddressLongIndirect, AddressXIndex, AddressYIndex, AddressXIndexIndirect,
		BlockMove, Immediate16, ImmediateXFlagDependent, ImmediateMFlagDependent, Relative16:
		return 2
	default:
		return 1
	}
}

// Resolve replaces a flag dependent immediate mode by its fixed width form.
func (m AddressingMode) Resolve(p PRegister) AddressingMode {
	switch {
	case m == ImmediateMFlagDependent && p.M(), m == ImmediateXFlagDependent && p.X():
		return Immediate8
	case m == ImmediateMFlagDependent, m == ImmediateXFlagDependent:
		return Immediate16
	default:
		return m
	}
}

// IsImmediateJumpTarget returns whether the operand encodes a fixed jump destination.
func (m AddressingMode) IsImmediateJumpTarget() bool {
	return m == Address || m == Long || m == Relative8 || m == Relative16
}
