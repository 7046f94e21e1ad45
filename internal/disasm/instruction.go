package disasm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SMW-Editor/smw-editor-sub001/internal/jumpengine"
	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
)

var (
	ErrInputEmpty    = errors.New("no bytes to decode")
	ErrInputTooShort = errors.New("instruction operands exceed input")
)

// DecodeError reports an instruction that could not be decoded.
type DecodeError struct {
	Offset mapper.PhysicalAddress
	Opcode byte
	Err    error
}

func (e *DecodeError) Error() string {
	if errors.Is(e.Err, ErrInputEmpty) {
		return fmt.Sprintf("decoding instruction at %s: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("decoding opcode $%02X at %s: %v", e.Opcode, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Instruction is a decoded instruction together with the register widths it
// was decoded with.
type Instruction struct {
	Offset   mapper.PhysicalAddress
	Address  mapper.LogicalAddress
	Code     byte
	Opcode   Opcode // immediate modes are resolved to their fixed width
	MFlag    bool
	XFlag    bool
	Operands [3]byte
}

// Decode decodes the instruction at the start of data. The operand width of
// flag dependent immediates is taken from p.
func Decode(data []byte, offset mapper.PhysicalAddress, addr mapper.LogicalAddress, p PRegister) (Instruction, error) {
	if len(data) == 0 {
		return Instruction{}, &DecodeError{Offset: offset, Err: ErrInputEmpty}
	}

	code := data[0]
	opcode := Opcodes[code]
	opcode.Mode = opcode.Mode.Resolve(p)

	size := opcode.Mode.OperandSize()
	if len(data)-1 < size {
		return Instruction{}, &DecodeError{Offset: offset, Opcode: code, Err: ErrInputTooShort}
	}

	ins := Instruction{
		Offset:  offset,
		Address: addr,
		Code:    code,
		Opcode:  opcode,
		MFlag:   p.M(),
		XFlag:   p.X(),
	}
	copy(ins.Operands[:], data[1:1+size])
	return ins, nil
}

// Size returns the instruction length in bytes.
func (i Instruction) Size() int {
	return 1 + i.Opcode.Mode.OperandSize()
}

// OperandBytes returns the operand bytes.
func (i Instruction) OperandBytes() []byte {
	return i.Operands[:i.Opcode.Mode.OperandSize()]
}

func (i Instruction) operandWord() uint16 {
	return uint16(i.Operands[0]) | uint16(i.Operands[1])<<8
}

func (i Instruction) operandLong() uint32 {
	return uint32(i.Operands[0]) | uint32(i.Operands[1])<<8 | uint32(i.Operands[2])<<16
}

// CanChangeProgramCounter returns whether the instruction ends a basic block.
func (i Instruction) CanChangeProgramCounter() bool {
	switch i.Opcode.Mnemonic {
	case BCC, BCS, BEQ, BMI, BNE, BPL, BVC, BVS, BRA, BRL, BRK, COP, JMP, JML, JSR, JSL, RTI, RTS, RTL:
		return true
	default:
		return false
	}
}

// IsConditionalBranch returns whether the instruction has a taken and a fall-through path.
func (i Instruction) IsConditionalBranch() bool {
	switch i.Opcode.Mnemonic {
	case BCC, BCS, BEQ, BMI, BNE, BPL, BVC, BVS:
		return true
	default:
		return false
	}
}

// IsSinglePathLeap returns whether execution never continues with the next instruction.
func (i Instruction) IsSinglePathLeap() bool {
	switch i.Opcode.Mnemonic {
	case BRA, BRL, JMP, JML, RTS, RTL, RTI, BRK, COP:
		return true
	default:
		return false
	}
}

// IsSubroutineCall returns whether the instruction calls a subroutine.
func (i Instruction) IsSubroutineCall() bool {
	return i.Opcode.Mnemonic == JSR || i.Opcode.Mnemonic == JSL
}

// IsSubroutineReturn returns whether the instruction returns from a subroutine or interrupt.
func (i Instruction) IsSubroutineReturn() bool {
	switch i.Opcode.Mnemonic {
	case RTS, RTL, RTI:
		return true
	default:
		return false
	}
}

// NextAddress returns the logical address directly following the instruction
// in the same bank.
func (i Instruction) NextAddress() mapper.LogicalAddress {
	return i.Address.WithAbsolute(i.Address.Absolute() + uint16(i.Size()))
}

// ReturnAddress returns where execution continues after a call or interrupt
// returns. The second value is false for other instructions.
func (i Instruction) ReturnAddress() (mapper.LogicalAddress, bool) {
	switch i.Opcode.Mnemonic {
	case JSR, JSL, BRK, COP:
		return i.NextAddress(), true
	default:
		return 0, false
	}
}

// NextInstructions returns the statically known addresses execution can
// continue at. Indirect jumps and returns have no known successors.
func (i Instruction) NextInstructions() []mapper.LogicalAddress {
	immediate := i.Opcode.Mode.IsImmediateJumpTarget()
	next := i.NextAddress()

	switch {
	case i.IsConditionalBranch():
		if immediate {
			return []mapper.LogicalAddress{i.Target(), next}
		}
		return []mapper.LogicalAddress{next}

	case i.Opcode.Mnemonic == BRA, i.Opcode.Mnemonic == BRL, i.Opcode.Mnemonic == JMP,
		i.Opcode.Mnemonic == JML, i.IsSubroutineCall():
		if immediate {
			return []mapper.LogicalAddress{i.Target()}
		}
		return nil

	case i.CanChangeProgramCounter():
		// returns and interrupts, handler addresses come from the vectors
		return nil

	default:
		return []mapper.LogicalAddress{next}
	}
}

// UsesJumpTable returns whether the instruction dispatches through a pointer
// table trampoline.
func (i Instruction) UsesJumpTable() bool {
	for _, addr := range i.NextInstructions() {
		if jumpengine.IsTrampoline(addr) {
			return true
		}
	}
	return false
}

// Target returns the address referenced by the operand without applying
// index or direct page registers.
func (i Instruction) Target() mapper.LogicalAddress {
	switch i.Opcode.Mode {
	case DirectPage, DirectPageIndirect, DirectPageIndirectYIndex, DirectPageLongIndirect,
		DirectPageLongIndirectYIndex, DirectPageXIndex, DirectPageXIndexIndirect, DirectPageYIndex,
		DirectPageSIndex, DirectPageSIndexIndirectYIndex:
		return mapper.LogicalAddress(i.Operands[0])

	case Address, AddressXIndex, AddressYIndex, AddressXIndexIndirect:
		return i.Address.WithAbsolute(i.operandWord())

	case AddressIndirect, AddressLongIndirect:
		return mapper.LogicalAddress(i.operandWord())

	case Long, LongXIndex:
		return mapper.LogicalAddress(i.operandLong())

	case Relative8, Relative16:
		pc := i.NextAddress()
		var distance int32
		if i.Opcode.Mode == Relative8 {
			distance = int32(int8(i.Operands[0]))
		} else {
			distance = int32(int16(i.operandWord()))
		}
		// the program counter wraps inside the bank
		return pc.WithAbsolute(uint16(int32(pc.Absolute()) + distance))

	default:
		return 0
	}
}

// String renders the instruction in assembler syntax.
func (i Instruction) String() string {
	var sb strings.Builder
	sb.WriteString(i.Opcode.Mnemonic.String())

	target := uint32(i.Target())
	switch i.Opcode.Mode {
	case Implied:
	case Accumulator:
		sb.WriteString(" A")
	case Constant8, Immediate8:
		fmt.Fprintf(&sb, " #$%02X", i.Operands[0])
	case Immediate16:
		fmt.Fprintf(&sb, " #$%04X", i.operandWord())
	case DirectPage:
		fmt.Fprintf(&sb, " $%02X", target)
	case Relative8, Relative16, Long:
		fmt.Fprintf(&sb, " $%06X", target)
	case Address:
		fmt.Fprintf(&sb, " $%04X", target&mapper.MaskAbsolute)
	case DirectPageXIndex:
		fmt.Fprintf(&sb, " $%02X, X", target)
	case AddressXIndex:
		fmt.Fprintf(&sb, " $%04X, X", target&mapper.MaskAbsolute)
	case LongXIndex:
		fmt.Fprintf(&sb, " $%06X, X", target)
	case DirectPageYIndex:
		fmt.Fprintf(&sb, " $%02X, Y", target)
	case AddressYIndex:
		fmt.Fprintf(&sb, " $%04X, Y", target&mapper.MaskAbsolute)
	case DirectPageSIndex:
		fmt.Fprintf(&sb, " $%02X, S", target)
	case DirectPageIndirect:
		fmt.Fprintf(&sb, " ($%02X)", target)
	case AddressIndirect:
		fmt.Fprintf(&sb, " ($%04X)", target)
	case DirectPageXIndexIndirect:
		fmt.Fprintf(&sb, " ($%02X, X)", target)
	case AddressXIndexIndirect:
		fmt.Fprintf(&sb, " ($%04X, X)", target&mapper.MaskAbsolute)
	case DirectPageIndirectYIndex:
		fmt.Fprintf(&sb, " ($%02X), Y", target)
	case DirectPageSIndexIndirectYIndex:
		fmt.Fprintf(&sb, " ($%02X, S), Y", target)
	case DirectPageLongIndirect:
		fmt.Fprintf(&sb, " [$%02X]", target)
	case AddressLongIndirect:
		fmt.Fprintf(&sb, " [$%04X]", target)
	case DirectPageLongIndirectYIndex:
		fmt.Fprintf(&sb, " [$%02X], Y", target)
	case BlockMove:
		fmt.Fprintf(&sb, " $%02X, $%02X", i.Operands[0], i.Operands[1])
	}
	return sb.String()
}

// StringWithFlags prefixes the instruction with the register widths, [MX] for 8-bit.
func (i Instruction) StringWithFlags() string {
	m, x := 'm', 'x'
	if i.MFlag {
		m = 'M'
	}
	if i.XFlag {
		x = 'X'
	}
	return fmt.Sprintf("[%c%c] %s", m, x, i)
}
