// Package mapper translates between physical ROM file offsets and the banked
// logical address space seen by the CPU.
package mapper

import (
	"fmt"
	"strings"
)

// Scheme is the cartridge mapping scheme used for address translation.
type Scheme int

const (
	// None maps every address onto itself.
	None Scheme = iota
	// LoROM folds the bank number into half of the physical range, using the upper 32KB of every bank.
	LoROM
	// HiROM passes the low 22 bits through, using full 64KB banks.
	HiROM
)

// romLimit is the highest physical offset (exclusive) addressable through LoROM or HiROM.
const romLimit = 0x400000

var schemeNames = map[Scheme]string{
	None:  "none",
	LoROM: "lorom",
	HiROM: "hirom",
}

func (s Scheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("scheme(%d)", int(s))
}

// ParseScheme returns the scheme matching the given case-insensitive name.
func ParseScheme(name string) (Scheme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for scheme, schemeName := range schemeNames {
		if schemeName == name {
			return scheme, nil
		}
	}
	return None, fmt.Errorf("unsupported mapping scheme '%s'", name)
}

// ToPhysical converts a logical address to an offset into the ROM file.
// Addresses inside work RAM, hardware register or save RAM windows have no
// physical counterpart and return an *AddressError.
func ToPhysical(addr LogicalAddress, scheme Scheme) (PhysicalAddress, error) {
	a := uint32(addr)
	switch scheme {
	case None:
		return PhysicalAddress(a), nil

	case LoROM:
		if !IsValidLoROM(addr) {
			return 0, &AddressError{Address: a, Scheme: scheme, Logical: true}
		}
		return PhysicalAddress(((a & 0x7F0000) >> 1) | (a & 0x7FFF)), nil

	case HiROM:
		if !IsValidHiROM(addr) {
			return 0, &AddressError{Address: a, Scheme: scheme, Logical: true}
		}
		return PhysicalAddress(a & 0x3FFFFF), nil

	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownScheme, scheme)
	}
}

// ToLogical converts a ROM file offset to the canonical logical address.
func ToLogical(addr PhysicalAddress, scheme Scheme) (LogicalAddress, error) {
	a := uint32(addr)
	switch scheme {
	case None:
		return LogicalAddress(a), nil

	case LoROM:
		if a >= romLimit {
			return 0, &AddressError{Address: a, Scheme: scheme}
		}
		return LogicalAddress(((a << 1) & 0x7F0000) | (a & 0x7FFF) | 0x8000), nil

	case HiROM:
		if a >= romLimit {
			return 0, &AddressError{Address: a, Scheme: scheme}
		}
		return LogicalAddress(a | 0xC00000), nil

	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownScheme, scheme)
	}
}

// IsValidLoROM returns whether the logical address is backed by the cartridge under LoROM.
func IsValidLoROM(addr LogicalAddress) bool {
	a := uint32(addr)
	wram := a&0xFE0000 == 0x7E0000
	junk := a&0x408000 == 0
	sram := a&0x708000 == 0x700000
	return !wram && !junk && !sram
}

// IsValidHiROM returns whether the logical address is backed by the cartridge under HiROM.
func IsValidHiROM(addr LogicalAddress) bool {
	a := uint32(addr)
	wram := a&0xFE0000 == 0x7E0000
	junk := a&0x408000 == 0
	return !wram && !junk
}
