package emu

import (
	"github.com/SMW-Editor/smw-editor-sub001/internal/disasm"
	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
)

type handler func(c *CPU, mode disasm.AddressingMode)

var handlers = [...]handler{
	disasm.ADC: (*CPU).adc,
	disasm.AND: (*CPU).and,
	disasm.ASL: (*CPU).asl,
	disasm.BCC: branchIf(disasm.FlagCarry, false),
	disasm.BCS: branchIf(disasm.FlagCarry, true),
	disasm.BEQ: branchIf(disasm.FlagZero, true),
	disasm.BIT: (*CPU).bit,
	disasm.BMI: branchIf(disasm.FlagNegative, true),
	disasm.BNE: branchIf(disasm.FlagZero, false),
	disasm.BPL: branchIf(disasm.FlagNegative, false),
	disasm.BRA: (*CPU).bra,
	disasm.BRK: interrupt(vectorNativeBRK, vectorEmulationBRK),
	disasm.BRL: (*CPU).brl,
	disasm.BVC: branchIf(disasm.FlagOverflow, false),
	disasm.BVS: branchIf(disasm.FlagOverflow, true),
	disasm.CLC: setFlag(disasm.FlagCarry, false),
	disasm.CLD: setFlag(disasm.FlagDecimal, false),
	disasm.CLI: setFlag(disasm.FlagIRQDisable, false),
	disasm.CLV: setFlag(disasm.FlagOverflow, false),
	disasm.CMP: (*CPU).cmp,
	disasm.COP: interrupt(vectorNativeCOP, vectorEmulationCOP),
	disasm.CPX: (*CPU).cpx,
	disasm.CPY: (*CPU).cpy,
	disasm.DEC: (*CPU).dec,
	disasm.DEX: func(c *CPU, _ disasm.AddressingMode) { c.setIndex(&c.X, c.X-1) },
	disasm.DEY: func(c *CPU, _ disasm.AddressingMode) { c.setIndex(&c.Y, c.Y-1) },
	disasm.EOR: (*CPU).eor,
	disasm.INC: (*CPU).inc,
	disasm.INX: func(c *CPU, _ disasm.AddressingMode) { c.setIndex(&c.X, c.X+1) },
	disasm.INY: func(c *CPU, _ disasm.AddressingMode) { c.setIndex(&c.Y, c.Y+1) },
	disasm.JML: (*CPU).jml,
	disasm.JMP: (*CPU).jmp,
	disasm.JSL: (*CPU).jsl,
	disasm.JSR: (*CPU).jsr,
	disasm.LDA: (*CPU).lda,
	disasm.LDX: func(c *CPU, mode disasm.AddressingMode) { c.setIndex(&c.X, c.operand(mode, !c.x8())) },
	disasm.LDY: func(c *CPU, mode disasm.AddressingMode) { c.setIndex(&c.Y, c.operand(mode, !c.x8())) },
	disasm.LSR: (*CPU).lsr,
	disasm.MVN: blockMove(1),
	disasm.MVP: blockMove(0xFFFF),
	disasm.NOP: func(*CPU, disasm.AddressingMode) {},
	disasm.ORA: (*CPU).ora,
	disasm.PEA: func(c *CPU, _ disasm.AddressingMode) { c.push16(c.fetch16()) },
	disasm.PEI: (*CPU).pei,
	disasm.PER: (*CPU).per,
	disasm.PHA: func(c *CPU, _ disasm.AddressingMode) { c.pushWidth(c.A, !c.m8()) },
	disasm.PHB: func(c *CPU, _ disasm.AddressingMode) { c.push8(c.DBR) },
	disasm.PHD: func(c *CPU, _ disasm.AddressingMode) { c.push16(c.D) },
	disasm.PHK: func(c *CPU, _ disasm.AddressingMode) { c.push8(c.PBR) },
	disasm.PHP: func(c *CPU, _ disasm.AddressingMode) { c.push8(uint8(c.P)) },
	disasm.PHX: func(c *CPU, _ disasm.AddressingMode) { c.pushWidth(c.X, !c.x8()) },
	disasm.PHY: func(c *CPU, _ disasm.AddressingMode) { c.pushWidth(c.Y, !c.x8()) },
	disasm.PLA: func(c *CPU, _ disasm.AddressingMode) { c.setAccumulator(c.pullWidth(!c.m8())) },
	disasm.PLB: (*CPU).plb,
	disasm.PLD: (*CPU).pld,
	disasm.PLP: func(c *CPU, _ disasm.AddressingMode) { c.setP(disasm.PRegister(c.pull8())) },
	disasm.PLX: func(c *CPU, _ disasm.AddressingMode) { c.setIndex(&c.X, c.pullWidth(!c.x8())) },
	disasm.PLY: func(c *CPU, _ disasm.AddressingMode) { c.setIndex(&c.Y, c.pullWidth(!c.x8())) },
	disasm.REP: func(c *CPU, _ disasm.AddressingMode) { c.setP(c.P &^ disasm.PRegister(c.fetch8())) },
	disasm.ROL: (*CPU).rol,
	disasm.ROR: (*CPU).ror,
	disasm.RTI: (*CPU).rti,
	disasm.RTL: (*CPU).rtl,
	disasm.RTS: func(c *CPU, _ disasm.AddressingMode) { c.PC = c.pull16() + 1 },
	disasm.SBC: (*CPU).sbc,
	disasm.SEC: setFlag(disasm.FlagCarry, true),
	disasm.SED: setFlag(disasm.FlagDecimal, true),
	disasm.SEI: setFlag(disasm.FlagIRQDisable, true),
	disasm.SEP: func(c *CPU, _ disasm.AddressingMode) { c.setP(c.P | disasm.PRegister(c.fetch8())) },
	disasm.STA: func(c *CPU, mode disasm.AddressingMode) { c.write(c.address(mode), c.A, !c.m8()) },
	disasm.STP: func(c *CPU, _ disasm.AddressingMode) { c.stopped = true },
	disasm.STX: func(c *CPU, mode disasm.AddressingMode) { c.write(c.address(mode), c.X, !c.x8()) },
	disasm.STY: func(c *CPU, mode disasm.AddressingMode) { c.write(c.address(mode), c.Y, !c.x8()) },
	disasm.STZ: func(c *CPU, mode disasm.AddressingMode) { c.write(c.address(mode), 0, !c.m8()) },
	disasm.TAX: func(c *CPU, _ disasm.AddressingMode) { c.setIndex(&c.X, c.A) },
	disasm.TAY: func(c *CPU, _ disasm.AddressingMode) { c.setIndex(&c.Y, c.A) },
	disasm.TCD: func(c *CPU, _ disasm.AddressingMode) { c.D = c.A; c.setNZ(c.D, true) },
	disasm.TCS: func(c *CPU, _ disasm.AddressingMode) { c.setStack(c.A) },
	disasm.TDC: func(c *CPU, _ disasm.AddressingMode) { c.A = c.D; c.setNZ(c.A, true) },
	disasm.TRB: (*CPU).trb,
	disasm.TSB: (*CPU).tsb,
	disasm.TSC: func(c *CPU, _ disasm.AddressingMode) { c.A = c.S; c.setNZ(c.A, true) },
	disasm.TSX: func(c *CPU, _ disasm.AddressingMode) { c.setIndex(&c.X, c.S) },
	disasm.TXA: func(c *CPU, _ disasm.AddressingMode) { c.setAccumulator(c.X) },
	disasm.TXS: func(c *CPU, _ disasm.AddressingMode) { c.setStack(c.X) },
	disasm.TXY: func(c *CPU, _ disasm.AddressingMode) { c.setIndex(&c.Y, c.X) },
	disasm.TYA: func(c *CPU, _ disasm.AddressingMode) { c.setAccumulator(c.Y) },
	disasm.TYX: func(c *CPU, _ disasm.AddressingMode) { c.setIndex(&c.X, c.Y) },
	disasm.WAI: func(c *CPU, _ disasm.AddressingMode) { c.stopped = true },
	disasm.WDM: func(c *CPU, _ disasm.AddressingMode) { c.fetch8() },
	disasm.XBA: (*CPU).xba,
	disasm.XCE: (*CPU).xce,
}

func setFlag(flag disasm.PRegister, set bool) handler {
	return func(c *CPU, _ disasm.AddressingMode) {
		c.setFlag(flag, set)
	}
}

func branchIf(flag disasm.PRegister, set bool) handler {
	return func(c *CPU, _ disasm.AddressingMode) {
		offset := int8(c.fetch8())
		if (c.P&flag != 0) == set {
			c.PC = uint16(int(c.PC) + int(offset))
		}
	}
}

func interrupt(native, emulation uint16) handler {
	return func(c *CPU, _ disasm.AddressingMode) {
		c.fetch8() // signature byte
		vector := emulation
		if !c.Emulation {
			c.push8(c.PBR)
			vector = native
		}
		c.push16(c.PC)
		c.push8(uint8(c.P))
		c.P |= disasm.FlagIRQDisable
		c.P &^= disasm.FlagDecimal
		c.PBR = 0
		c.PC = c.mem.Load16(mapper.LogicalAddress(vector))
	}
}

// blockMove moves one byte per step and repeats the instruction until the
// accumulator underflows.
func blockMove(step uint16) handler {
	return func(c *CPU, _ disasm.AddressingMode) {
		dest := c.fetch8()
		source := c.fetch8()
		c.DBR = dest

		value := c.mem.Load(mapper.LogicalAddress(source)<<16 | mapper.LogicalAddress(c.X))
		c.mem.Store(mapper.LogicalAddress(dest)<<16|mapper.LogicalAddress(c.Y), value)
		c.X += step
		c.Y += step
		if c.x8() {
			c.X &= 0xFF
			c.Y &= 0xFF
		}

		c.A--
		if c.A != 0xFFFF {
			c.PC -= 3
		}
	}
}

func (c *CPU) pushWidth(value uint16, wide bool) {
	if wide {
		c.push16(value)
		return
	}
	c.push8(uint8(value))
}

func (c *CPU) pullWidth(wide bool) uint16 {
	if wide {
		return c.pull16()
	}
	return uint16(c.pull8())
}

func (c *CPU) setStack(value uint16) {
	if c.Emulation {
		value = 0x0100 | value&0xFF
	}
	c.S = value
}

func (c *CPU) lda(mode disasm.AddressingMode) {
	c.setAccumulator(c.operand(mode, !c.m8()))
}

func (c *CPU) and(mode disasm.AddressingMode) {
	c.setAccumulator(c.accumulator() & c.operand(mode, !c.m8()))
}

func (c *CPU) ora(mode disasm.AddressingMode) {
	c.setAccumulator(c.accumulator() | c.operand(mode, !c.m8()))
}

func (c *CPU) eor(mode disasm.AddressingMode) {
	c.setAccumulator(c.accumulator() ^ c.operand(mode, !c.m8()))
}

func (c *CPU) bit(mode disasm.AddressingMode) {
	wide := !c.m8()
	value := c.operand(mode, wide)
	_, sign := widthMask(wide)
	c.setFlag(disasm.FlagZero, c.accumulator()&value == 0)
	if mode == disasm.Immediate8 || mode == disasm.Immediate16 {
		return
	}
	c.setFlag(disasm.FlagNegative, value&sign != 0)
	c.setFlag(disasm.FlagOverflow, value&(sign>>1) != 0)
}

func (c *CPU) compare(reg, value uint16, wide bool) {
	mask, _ := widthMask(wide)
	reg &= mask
	value &= mask
	c.setFlag(disasm.FlagCarry, reg >= value)
	c.setNZ(reg-value, wide)
}

func (c *CPU) cmp(mode disasm.AddressingMode) {
	c.compare(c.A, c.operand(mode, !c.m8()), !c.m8())
}

func (c *CPU) cpx(mode disasm.AddressingMode) {
	c.compare(c.X, c.operand(mode, !c.x8()), !c.x8())
}

func (c *CPU) cpy(mode disasm.AddressingMode) {
	c.compare(c.Y, c.operand(mode, !c.x8()), !c.x8())
}

func (c *CPU) adc(mode disasm.AddressingMode) {
	c.add(c.operand(mode, !c.m8()))
}

func (c *CPU) sbc(mode disasm.AddressingMode) {
	value := c.operand(mode, !c.m8())
	if c.P.D() {
		c.subtractDecimal(value)
		return
	}
	mask, _ := widthMask(!c.m8())
	c.add(^value & mask)
}

func (c *CPU) add(value uint16) {
	wide := !c.m8()
	mask, sign := widthMask(wide)
	a := uint32(c.accumulator())
	carry := uint32(0)
	if c.P.C() {
		carry = 1
	}

	var result uint32
	if c.P.D() {
		digits := 2
		if wide {
			digits = 4
		}
		result = decimalAdd(a, uint32(value), carry, digits)
	} else {
		result = a + uint32(value) + carry
	}

	c.setFlag(disasm.FlagCarry, result > uint32(mask))
	overflow := ^(uint16(a) ^ value) & (uint16(a) ^ uint16(result)) & sign
	c.setFlag(disasm.FlagOverflow, overflow != 0)
	c.setAccumulator(uint16(result) & mask)
}

// decimalAdd adds two BCD numbers. A carry out of the top digit is returned
// in the next higher digit position.
func decimalAdd(a, b, carry uint32, digits int) uint32 {
	var result uint32
	for i := range digits {
		shift := uint(i * 4)
		digit := (a>>shift)&0xF + (b>>shift)&0xF + carry
		carry = 0
		if digit > 9 {
			digit = (digit + 6) & 0xF
			carry = 1
		}
		result |= digit << shift
	}
	return result | carry<<uint(digits*4)
}

func (c *CPU) subtractDecimal(value uint16) {
	wide := !c.m8()
	mask, sign := widthMask(wide)
	a := c.accumulator()
	digits := 2
	if wide {
		digits = 4
	}

	borrow := 1
	if c.P.C() {
		borrow = 0
	}
	var result uint16
	for i := range digits {
		shift := uint(i * 4)
		digit := int(a>>shift&0xF) - int(value>>shift&0xF) - borrow
		borrow = 0
		if digit < 0 {
			digit += 10
			borrow = 1
		}
		result |= uint16(digit) << shift
	}

	c.setFlag(disasm.FlagCarry, borrow == 0)
	overflow := (a ^ value) & (a ^ result) & sign
	c.setFlag(disasm.FlagOverflow, overflow != 0)
	c.setAccumulator(result & mask)
}

func (c *CPU) inc(mode disasm.AddressingMode) {
	c.modify(mode, func(value uint16, _ bool) uint16 { return value + 1 })
}

func (c *CPU) dec(mode disasm.AddressingMode) {
	c.modify(mode, func(value uint16, _ bool) uint16 { return value - 1 })
}

func (c *CPU) asl(mode disasm.AddressingMode) {
	c.modify(mode, func(value uint16, wide bool) uint16 {
		_, sign := widthMask(wide)
		c.setFlag(disasm.FlagCarry, value&sign != 0)
		return value << 1
	})
}

func (c *CPU) lsr(mode disasm.AddressingMode) {
	c.modify(mode, func(value uint16, _ bool) uint16 {
		c.setFlag(disasm.FlagCarry, value&1 != 0)
		return value >> 1
	})
}

func (c *CPU) rol(mode disasm.AddressingMode) {
	c.modify(mode, func(value uint16, wide bool) uint16 {
		_, sign := widthMask(wide)
		carry := uint16(0)
		if c.P.C() {
			carry = 1
		}
		c.setFlag(disasm.FlagCarry, value&sign != 0)
		return value<<1 | carry
	})
}

func (c *CPU) ror(mode disasm.AddressingMode) {
	c.modify(mode, func(value uint16, wide bool) uint16 {
		_, sign := widthMask(wide)
		carry := uint16(0)
		if c.P.C() {
			carry = sign
		}
		c.setFlag(disasm.FlagCarry, value&1 != 0)
		return value>>1 | carry
	})
}

func (c *CPU) tsb(mode disasm.AddressingMode) {
	c.testBits(mode, func(value, a uint16) uint16 { return value | a })
}

func (c *CPU) trb(mode disasm.AddressingMode) {
	c.testBits(mode, func(value, a uint16) uint16 { return value &^ a })
}

func (c *CPU) testBits(mode disasm.AddressingMode, op func(value, a uint16) uint16) {
	wide := !c.m8()
	addr := c.address(mode)
	value := c.read(addr, wide)
	a := c.accumulator()
	c.setFlag(disasm.FlagZero, value&a == 0)
	c.write(addr, op(value, a), wide)
}

func (c *CPU) bra(_ disasm.AddressingMode) {
	offset := int8(c.fetch8())
	c.PC = uint16(int(c.PC) + int(offset))
}

func (c *CPU) brl(_ disasm.AddressingMode) {
	offset := c.fetch16()
	c.PC += offset
}

func (c *CPU) jmp(mode disasm.AddressingMode) {
	ptr := c.fetch16()
	switch mode {
	case disasm.AddressIndirect:
		c.PC = c.mem.Load16(mapper.LogicalAddress(ptr))
	case disasm.AddressXIndexIndirect:
		c.PC = c.mem.Load16(mapper.LogicalAddress(c.PBR)<<16 | mapper.LogicalAddress(ptr+c.X))
	default:
		c.PC = ptr
	}
}

func (c *CPU) jml(mode disasm.AddressingMode) {
	var target mapper.LogicalAddress
	if mode == disasm.AddressLongIndirect {
		target = c.mem.Load24(mapper.LogicalAddress(c.fetch16()))
	} else {
		target = c.fetch24()
	}
	c.PBR = target.Bank()
	c.PC = target.Absolute()
}

func (c *CPU) jsr(mode disasm.AddressingMode) {
	ptr := c.fetch16()
	c.push16(c.PC - 1)
	if mode == disasm.AddressXIndexIndirect {
		c.PC = c.mem.Load16(mapper.LogicalAddress(c.PBR)<<16 | mapper.LogicalAddress(ptr+c.X))
		return
	}
	c.PC = ptr
}

func (c *CPU) jsl(_ disasm.AddressingMode) {
	target := c.fetch24()
	c.push8(c.PBR)
	c.push16(c.PC - 1)
	c.PBR = target.Bank()
	c.PC = target.Absolute()
}

func (c *CPU) rtl(_ disasm.AddressingMode) {
	c.PC = c.pull16() + 1
	c.PBR = c.pull8()
}

func (c *CPU) rti(_ disasm.AddressingMode) {
	c.setP(disasm.PRegister(c.pull8()))
	c.PC = c.pull16()
	if !c.Emulation {
		c.PBR = c.pull8()
	}
}

func (c *CPU) pei(_ disasm.AddressingMode) {
	ptr := c.direct(uint16(c.fetch8()))
	c.push16(c.mem.Load16(ptr))
}

func (c *CPU) per(_ disasm.AddressingMode) {
	offset := c.fetch16()
	c.push16(c.PC + offset)
}

func (c *CPU) plb(_ disasm.AddressingMode) {
	c.DBR = c.pull8()
	c.setNZ(uint16(c.DBR), false)
}

func (c *CPU) pld(_ disasm.AddressingMode) {
	c.D = c.pull16()
	c.setNZ(c.D, true)
}

func (c *CPU) xba(_ disasm.AddressingMode) {
	c.A = c.A<<8 | c.A>>8
	c.setNZ(c.A, false)
}

func (c *CPU) xce(_ disasm.AddressingMode) {
	carry := c.P.C()
	c.setFlag(disasm.FlagCarry, c.Emulation)
	c.SetNative(!carry)
}
