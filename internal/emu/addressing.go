package emu

import (
	"github.com/SMW-Editor/smw-editor-sub001/internal/disasm"
	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
)

// direct returns the bank 0 address of a direct page offset.
func (c *CPU) direct(offset uint16) mapper.LogicalAddress {
	return mapper.LogicalAddress(c.D + offset)
}

// dataBank returns an absolute address in the data bank.
func (c *CPU) dataBank(abs uint16) mapper.LogicalAddress {
	return mapper.LogicalAddress(c.DBR)<<16 | mapper.LogicalAddress(abs)
}

// address fetches the operand of a memory addressing mode and returns the
// effective address.
func (c *CPU) address(mode disasm.AddressingMode) mapper.LogicalAddress {
	var addr mapper.LogicalAddress

	switch mode {
	case disasm.DirectPage:
		addr = c.direct(uint16(c.fetch8()))
	case disasm.DirectPageXIndex:
		addr = c.direct(uint16(c.fetch8()) + c.X)
	case disasm.DirectPageYIndex:
		addr = c.direct(uint16(c.fetch8()) + c.Y)
	case disasm.DirectPageSIndex:
		addr = mapper.LogicalAddress(c.S + uint16(c.fetch8()))
	case disasm.DirectPageIndirect:
		ptr := c.direct(uint16(c.fetch8()))
		addr = c.dataBank(c.mem.Load16(ptr))
	case disasm.DirectPageXIndexIndirect:
		ptr := c.direct(uint16(c.fetch8()) + c.X)
		addr = c.dataBank(c.mem.Load16(ptr))
	case disasm.DirectPageIndirectYIndex:
		ptr := c.direct(uint16(c.fetch8()))
		addr = c.dataBank(c.mem.Load16(ptr)) + mapper.LogicalAddress(c.Y)
	case disasm.DirectPageLongIndirect:
		ptr := c.direct(uint16(c.fetch8()))
		addr = c.mem.Load24(ptr)
	case disasm.DirectPageLongIndirectYIndex:
		ptr := c.direct(uint16(c.fetch8()))
		addr = c.mem.Load24(ptr) + mapper.LogicalAddress(c.Y)
	case disasm.DirectPageSIndexIndirectYIndex:
		ptr := mapper.LogicalAddress(c.S + uint16(c.fetch8()))
		addr = c.dataBank(c.mem.Load16(ptr)) + mapper.LogicalAddress(c.Y)
	case disasm.Address:
		addr = c.dataBank(c.fetch16())
	case disasm.AddressXIndex:
		addr = c.dataBank(c.fetch16()) + mapper.LogicalAddress(c.X)
	case disasm.AddressYIndex:
		addr = c.dataBank(c.fetch16()) + mapper.LogicalAddress(c.Y)
	case disasm.Long:
		addr = c.fetch24()
	case disasm.LongXIndex:
		addr = c.fetch24() + mapper.LogicalAddress(c.X)
	}
	return addr & 0xFFFFFF
}

// operand returns the value of an immediate or memory operand.
func (c *CPU) operand(mode disasm.AddressingMode, wide bool) uint16 {
	switch mode {
	case disasm.Immediate8:
		return uint16(c.fetch8())
	case disasm.Immediate16:
		return c.fetch16()
	default:
		return c.read(c.address(mode), wide)
	}
}

// modify applies op to the accumulator or to the memory operand.
func (c *CPU) modify(mode disasm.AddressingMode, op func(value uint16, wide bool) uint16) {
	wide := !c.m8()
	if mode == disasm.Accumulator {
		c.setAccumulator(op(c.accumulator(), wide))
		return
	}

	addr := c.address(mode)
	value := op(c.read(addr, wide), wide)
	c.write(addr, value, wide)
	c.setNZ(value, wide)
}

func widthMask(wide bool) (mask, sign uint16) {
	if wide {
		return 0xFFFF, 0x8000
	}
	return 0xFF, 0x80
}
