// Package emu implements a memory-mapped 65816 interpreter used to run ROM
// routines against emulated work RAM, hardware registers and video memory.
package emu

import (
	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
)

// Sizes of the emulated memory regions.
const (
	WRAMSize   = 0x20000
	RegsSize   = 0x6000
	VRAMSize   = 0x10000
	CGRAMSize  = 0x200
	ExtRAMSize = 0x10000
)

// Hardware registers with emulated side effects.
const (
	RegCGRAMAddress = 0x2121
	RegCGRAMData    = 0x2122
	RegVRAMAddress  = 0x2116
	RegVRAMDataLow  = 0x2118
	RegVRAMDataHigh = 0x2119
	RegDMAEnable    = 0x420B
	RegDMAParams    = 0x4300
	RegDMAPort      = 0x4301
	RegDMASource    = 0x4302
	RegDMASize      = 0x4305

	regsBase = 0x2000
)

const (
	wramBank   = 0x7E
	extRAMBank = 0x60
)

// Cartridge provides read access to the ROM by logical address.
type Cartridge interface {
	Read8(addr mapper.LogicalAddress) (uint8, error)
}

// Memory is the emulated address space of the console.
type Memory struct {
	cart Cartridge

	wram   []byte
	regs   []byte
	vram   []byte
	cgram  []byte
	extram []byte

	tracker *Tracker

	fault     mapper.LogicalAddress
	hasFault  bool
	lastStore mapper.LogicalAddress
}

// NewMemory returns a zeroed address space backed by the given cartridge.
func NewMemory(cart Cartridge) *Memory {
	return &Memory{
		cart:   cart,
		wram:   make([]byte, WRAMSize),
		regs:   make([]byte, RegsSize),
		vram:   make([]byte, VRAMSize),
		cgram:  make([]byte, CGRAMSize),
		extram: make([]byte, ExtRAMSize),
	}
}

// SetTracker installs an access tracker, nil removes it.
func (m *Memory) SetTracker(t *Tracker) {
	m.tracker = t
}

// WRAM returns the work RAM buffer.
func (m *Memory) WRAM() []byte { return m.wram }

// VRAM returns the video RAM mirror.
func (m *Memory) VRAM() []byte { return m.vram }

// CGRAM returns the palette RAM mirror.
func (m *Memory) CGRAM() []byte { return m.cgram }

// ExtRAM returns the extended RAM buffer.
func (m *Memory) ExtRAM() []byte { return m.extram }

// Fault returns the last address that could not be resolved to any backing
// memory. Such reads return 0.
func (m *Memory) Fault() (mapper.LogicalAddress, bool) {
	return m.fault, m.hasFault
}

// ClearFault resets the recorded fault address.
func (m *Memory) ClearFault() {
	m.hasFault = false
}

// LastStore returns the address of the last store.
func (m *Memory) LastStore() mapper.LogicalAddress {
	return m.lastStore
}

// Load reads a byte.
func (m *Memory) Load(addr mapper.LogicalAddress) uint8 {
	addr &= 0xFFFFFF
	offset := addr.Absolute()

	switch {
	case addr.Bank()&0xFE == wramBank:
		ptr := uint32(addr) & (WRAMSize - 1)
		m.tracker.read(ptr)
		return m.wram[ptr]

	case addr.Bank() == extRAMBank:
		return m.extram[offset]

	case offset < regsBase:
		ptr := uint32(offset)
		m.tracker.read(ptr)
		return m.wram[ptr]

	case offset < uint16(mapper.MinLogical):
		return m.regs[offset-regsBase]

	default:
		value, err := m.cart.Read8(addr)
		if err != nil {
			m.fault = addr
			m.hasFault = true
			return 0
		}
		return value
	}
}

// Store writes a byte. Writes to the cartridge are recorded as faults.
func (m *Memory) Store(addr mapper.LogicalAddress, value uint8) {
	addr &= 0xFFFFFF
	offset := addr.Absolute()
	m.lastStore = addr

	switch {
	case addr.Bank()&0xFE == wramBank:
		ptr := uint32(addr) & (WRAMSize - 1)
		m.tracker.write(ptr)
		m.wram[ptr] = value

	case addr.Bank() == extRAMBank:
		m.extram[offset] = value

	case offset < regsBase:
		ptr := uint32(offset)
		m.tracker.write(ptr)
		m.wram[ptr] = value

	case offset < uint16(mapper.MinLogical):
		m.storeRegister(offset, value)

	default:
		m.fault = addr
		m.hasFault = true
	}
}

func (m *Memory) storeRegister(reg uint16, value uint8) {
	switch reg {
	case RegVRAMDataLow:
		m.vram[vramIndex(m.register16(RegVRAMAddress), 0)] = value
	case RegVRAMDataHigh:
		word := m.register16(RegVRAMAddress)
		m.vram[vramIndex(word, 1)] = value
		m.setRegister16(RegVRAMAddress, word+1)
	}
	m.regs[reg-regsBase] = value
}

func (m *Memory) register16(reg uint16) uint16 {
	return uint16(m.regs[reg-regsBase]) | uint16(m.regs[reg+1-regsBase])<<8
}

func (m *Memory) setRegister16(reg, value uint16) {
	m.regs[reg-regsBase] = uint8(value)
	m.regs[reg+1-regsBase] = uint8(value >> 8)
}

// vramIndex returns the byte index of a VRAM word address.
func vramIndex(word uint16, high int) int {
	return (int(word)*2 + high) & (VRAMSize - 1)
}

// Load16 reads a little-endian word.
func (m *Memory) Load16(addr mapper.LogicalAddress) uint16 {
	l := m.Load(addr)
	h := m.Load(addr + 1)
	return uint16(l) | uint16(h)<<8
}

// Load24 reads a little-endian long address.
func (m *Memory) Load24(addr mapper.LogicalAddress) mapper.LogicalAddress {
	l := m.Load(addr)
	h := m.Load(addr + 1)
	b := m.Load(addr + 2)
	return mapper.LogicalAddress(l) | mapper.LogicalAddress(h)<<8 | mapper.LogicalAddress(b)<<16
}

// Store16 writes a little-endian word.
func (m *Memory) Store16(addr mapper.LogicalAddress, value uint16) {
	m.Store(addr, uint8(value))
	m.Store(addr+1, uint8(value>>8))
}

// Store24 writes a little-endian long address.
func (m *Memory) Store24(addr mapper.LogicalAddress, value mapper.LogicalAddress) {
	m.Store(addr, uint8(value))
	m.Store(addr+1, uint8(value>>8))
	m.Store(addr+2, uint8(value>>16))
}
