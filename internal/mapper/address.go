package mapper

import "fmt"

// Masks for the parts of a 24-bit logical address.
const (
	MaskBank     = 0xFF0000
	MaskHigh     = 0x00FF00
	MaskLow      = 0x0000FF
	MaskAbsolute = MaskHigh | MaskLow
)

// MinLogical is the lowest logical address of cartridge code in bank 0.
const MinLogical LogicalAddress = 0x8000

// PhysicalAddress is an offset into the raw cartridge buffer.
type PhysicalAddress uint32

func (a PhysicalAddress) String() string {
	return fmt.Sprintf("0x%06X", uint32(a))
}

// LogicalAddress is a 24-bit CPU address made of a bank byte and an in-bank offset.
type LogicalAddress uint32

func (a LogicalAddress) String() string {
	return fmt.Sprintf("$%06X", uint32(a)&0xFFFFFF)
}

// Bank returns the bank byte.
func (a LogicalAddress) Bank() uint8 {
	return uint8(uint32(a) >> 16)
}

// High returns the high byte of the in-bank offset.
func (a LogicalAddress) High() uint8 {
	return uint8((uint32(a) & MaskHigh) >> 8)
}

// Low returns the low byte of the in-bank offset.
func (a LogicalAddress) Low() uint8 {
	return uint8(uint32(a) & MaskLow)
}

// Absolute returns the 16-bit in-bank offset.
func (a LogicalAddress) Absolute() uint16 {
	return uint16(uint32(a) & MaskAbsolute)
}

// WithBank returns the address with the bank byte replaced.
func (a LogicalAddress) WithBank(bank uint8) LogicalAddress {
	return LogicalAddress(uint32(bank)<<16 | uint32(a)&MaskAbsolute)
}

// WithAbsolute returns the address with the in-bank offset replaced.
func (a LogicalAddress) WithAbsolute(absolute uint16) LogicalAddress {
	return LogicalAddress(uint32(a)&MaskBank | uint32(absolute))
}
