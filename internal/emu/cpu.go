package emu

import (
	"errors"
	"fmt"

	"github.com/SMW-Editor/smw-editor-sub001/internal/disasm"
	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
)

// ErrStopped is returned by Step once the processor executed STP or WAI.
// Nothing raises interrupts in this emulator, so both halt execution.
var ErrStopped = errors.New("processor stopped")

// Interrupt vectors in bank 0.
const (
	vectorNativeCOP    = 0xFFE4
	vectorNativeBRK    = 0xFFE6
	vectorEmulationCOP = 0xFFF4
	vectorEmulationBRK = 0xFFFE
)

// Registers is a snapshot of the processor registers.
type Registers struct {
	A   uint16
	X   uint16
	Y   uint16
	S   uint16
	D   uint16
	PC  uint16
	PBR uint8
	DBR uint8
	P   disasm.PRegister

	Emulation bool
}

// ProgramCounter returns the full address of the next instruction.
func (r Registers) ProgramCounter() mapper.LogicalAddress {
	return mapper.LogicalAddress(r.PBR)<<16 | mapper.LogicalAddress(r.PC)
}

func (r Registers) String() string {
	e := 0
	if r.Emulation {
		e = 1
	}
	return fmt.Sprintf("A=%04X X=%04X Y=%04X S=%04X D=%04X DB=%02X PC=%02X:%04X P=%s E=%d",
		r.A, r.X, r.Y, r.S, r.D, r.DBR, r.PBR, r.PC, r.P, e)
}

// CPU is a 65816 interpreter working on a Memory.
type CPU struct {
	Registers

	mem          *Memory
	instructions uint64
	stopped      bool
}

// NewCPU returns a processor in the reset state: emulation mode, 8-bit
// registers, interrupts disabled and the stack at $01FF.
func NewCPU(mem *Memory) *CPU {
	c := &CPU{mem: mem}
	c.Reset()
	return c
}

// Reset puts the processor into the reset state without touching memory.
// The program counter is not loaded from the reset vector.
func (c *CPU) Reset() {
	c.Registers = Registers{
		S:         0x01FF,
		P:         disasm.InitialPRegister | disasm.FlagIRQDisable,
		Emulation: true,
	}
	c.stopped = false
}

// Memory returns the address space the processor works on.
func (c *CPU) Memory() *Memory {
	return c.mem
}

// Snapshot returns a copy of the registers.
func (c *CPU) Snapshot() Registers {
	return c.Registers
}

// Instructions returns the number of executed instructions.
func (c *CPU) Instructions() uint64 {
	return c.instructions
}

// Stopped returns whether the processor executed STP or WAI.
func (c *CPU) Stopped() bool {
	return c.stopped
}

// SetNative switches between native and emulation mode.
func (c *CPU) SetNative(native bool) {
	c.Emulation = !native
	c.setP(c.P)
	if c.Emulation {
		c.S = 0x0100 | c.S&0xFF
	}
}

// Step executes one instruction.
func (c *CPU) Step() error {
	if c.stopped {
		return ErrStopped
	}

	code := c.fetch8()
	opcode := disasm.Opcodes[code]
	exec := handlers[opcode.Mnemonic]
	exec(c, opcode.Mode.Resolve(c.P))
	c.instructions++

	if c.stopped {
		return ErrStopped
	}
	return nil
}

// StepN executes up to n instructions and returns the number executed.
func (c *CPU) StepN(n int) (int, error) {
	for i := range n {
		if err := c.Step(); err != nil {
			return i, err
		}
	}
	return n, nil
}

func (c *CPU) m8() bool { return c.P.M() }
func (c *CPU) x8() bool { return c.P.X() }

// setP sets the status register and applies the width side effects.
func (c *CPU) setP(p disasm.PRegister) {
	if c.Emulation {
		p |= disasm.FlagAccumulator8 | disasm.FlagIndex8
	}
	c.P = p
	if c.x8() {
		c.X &= 0xFF
		c.Y &= 0xFF
	}
}

func (c *CPU) setFlag(flag disasm.PRegister, set bool) {
	if set {
		c.P |= flag
	} else {
		c.P &^= flag
	}
}

func (c *CPU) setNZ(value uint16, wide bool) {
	if wide {
		c.setFlag(disasm.FlagZero, value == 0)
		c.setFlag(disasm.FlagNegative, value&0x8000 != 0)
		return
	}
	c.setFlag(disasm.FlagZero, value&0xFF == 0)
	c.setFlag(disasm.FlagNegative, value&0x80 != 0)
}

// accumulator returns A in the current accumulator width.
func (c *CPU) accumulator() uint16 {
	if c.m8() {
		return c.A & 0xFF
	}
	return c.A
}

// setAccumulator writes A in the current width, the high byte B is kept in
// 8-bit mode.
func (c *CPU) setAccumulator(value uint16) {
	if c.m8() {
		c.A = c.A&0xFF00 | value&0xFF
	} else {
		c.A = value
	}
	c.setNZ(value, !c.m8())
}

func (c *CPU) setIndex(reg *uint16, value uint16) {
	if c.x8() {
		value &= 0xFF
	}
	*reg = value
	c.setNZ(value, !c.x8())
}

func (c *CPU) fetch8() uint8 {
	value := c.mem.Load(c.ProgramCounter())
	c.PC++
	return value
}

func (c *CPU) fetch16() uint16 {
	l := c.fetch8()
	h := c.fetch8()
	return uint16(l) | uint16(h)<<8
}

func (c *CPU) fetch24() mapper.LogicalAddress {
	abs := c.fetch16()
	bank := c.fetch8()
	return mapper.LogicalAddress(bank)<<16 | mapper.LogicalAddress(abs)
}

func (c *CPU) push8(value uint8) {
	c.mem.Store(mapper.LogicalAddress(c.S), value)
	c.S--
	if c.Emulation {
		c.S = 0x0100 | c.S&0xFF
	}
}

func (c *CPU) push16(value uint16) {
	c.push8(uint8(value >> 8))
	c.push8(uint8(value))
}

func (c *CPU) pull8() uint8 {
	c.S++
	if c.Emulation {
		c.S = 0x0100 | c.S&0xFF
	}
	return c.mem.Load(mapper.LogicalAddress(c.S))
}

func (c *CPU) pull16() uint16 {
	l := c.pull8()
	h := c.pull8()
	return uint16(l) | uint16(h)<<8
}

func (c *CPU) read(addr mapper.LogicalAddress, wide bool) uint16 {
	if wide {
		return c.mem.Load16(addr)
	}
	return uint16(c.mem.Load(addr))
}

func (c *CPU) write(addr mapper.LogicalAddress, value uint16, wide bool) {
	if wide {
		c.mem.Store16(addr, value)
		return
	}
	c.mem.Store(addr, uint8(value))
}
