package rom

import (
	"fmt"
	"strings"

	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
)

// Internal header locations and layout.
const (
	HeaderOffsetLoROM mapper.PhysicalAddress = 0x7FC0
	HeaderOffsetHiROM mapper.PhysicalAddress = 0xFFC0

	HeaderSize = 64
	NameLength = 21

	offsetMapMode     = 0x15
	offsetRomType     = 0x16
	offsetRomSize     = 0x17
	offsetSramSize    = 0x18
	offsetRegion      = 0x19
	offsetDeveloperID = 0x1A
	offsetVersion     = 0x1B
	offsetComplement  = 0x1C
	offsetChecksum    = 0x1E
	offsetNative      = 0x24
	offsetEmulation   = 0x34
	vectorsPerMode    = 6
)

// MapMode is the memory map and speed byte of the internal header.
type MapMode uint8

var mapModeNames = map[MapMode]string{
	0x20: "LoROM",
	0x21: "HiROM",
	0x22: "ExLoROM",
	0x24: "ExHiROM",
	0x30: "FastROM LoROM",
	0x31: "FastROM HiROM",
	0x32: "FastROM ExLoROM",
	0x34: "FastROM ExHiROM",
}

func (m MapMode) String() string {
	if name, ok := mapModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("unknown ($%02X)", uint8(m))
}

// Scheme returns the address mapping scheme described by the map mode.
func (m MapMode) Scheme() mapper.Scheme {
	if m&0x01 != 0 {
		return mapper.HiROM
	}
	return mapper.LoROM
}

// Region is the destination code of the internal header.
type Region uint8

var regionNames = []string{
	"Japan", "North America", "Europe", "Sweden", "Finland", "Denmark", "France", "Netherlands", "Spain",
	"Germany", "Italy", "China", "Indonesia", "Korea", "Global", "Canada", "Brazil", "Australia",
}

func (r Region) String() string {
	if int(r) < len(regionNames) {
		return regionNames[r]
	}
	return fmt.Sprintf("other ($%02X)", uint8(r))
}

// InternalHeader is the cartridge information block near the end of the first bank.
type InternalHeader struct {
	Offset      mapper.PhysicalAddress
	Name        string
	MapMode     MapMode
	RomType     uint8
	RomSize     uint8
	SramSize    uint8
	Region      Region
	DeveloperID uint8
	Version     uint8
	Complement  uint16
	Checksum    uint16

	// Interrupt vectors, native mode COP, BRK, ABORT, NMI, unused, IRQ
	// followed by emulation mode COP, unused, ABORT, NMI, RESET, IRQ/BRK.
	Vectors []mapper.LogicalAddress
}

// ParseHeader parses the internal header located at the given image offset.
func ParseHeader(data []byte, offset mapper.PhysicalAddress) (*InternalHeader, error) {
	end := int(offset) + HeaderSize
	if end > len(data) {
		return nil, fmt.Errorf("%w: header at %s exceeds image size %d", ErrOutOfRange, offset, len(data))
	}
	b := data[offset:end]

	h := &InternalHeader{
		Offset:      offset,
		Name:        strings.TrimRight(string(b[:NameLength]), " \x00"),
		MapMode:     MapMode(b[offsetMapMode]),
		RomType:     b[offsetRomType],
		RomSize:     b[offsetRomSize],
		SramSize:    b[offsetSramSize],
		Region:      Region(b[offsetRegion]),
		DeveloperID: b[offsetDeveloperID],
		Version:     b[offsetVersion],
		Complement:  word(b, offsetComplement),
		Checksum:    word(b, offsetChecksum),
	}

	for _, base := range []int{offsetNative, offsetEmulation} {
		for i := range vectorsPerMode {
			h.Vectors = append(h.Vectors, mapper.LogicalAddress(word(b, base+2*i)))
		}
	}
	return h, nil
}

// FindHeader locates the internal header by its checksum and complement pair
// and returns it together with the mapping scheme implied by its location.
func FindHeader(data []byte) (*InternalHeader, mapper.Scheme, error) {
	candidates := []struct {
		offset mapper.PhysicalAddress
		scheme mapper.Scheme
	}{
		{HeaderOffsetLoROM, mapper.LoROM},
		{HeaderOffsetHiROM, mapper.HiROM},
	}

	for _, candidate := range candidates {
		h, err := ParseHeader(data, candidate.offset)
		if err != nil {
			continue
		}
		if h.IsValid() {
			return h, candidate.scheme, nil
		}
	}
	return nil, mapper.None, ErrHeaderNotFound
}

// Header parses the internal header at the location matching the ROM's scheme.
func (r *Rom) Header() (*InternalHeader, error) {
	offset := HeaderOffsetLoROM
	if r.scheme == mapper.HiROM {
		offset = HeaderOffsetHiROM
	}
	return ParseHeader(r.data, offset)
}

// IsValid returns whether checksum and complement complement each other.
func (h *InternalHeader) IsValid() bool {
	return h.Checksum^h.Complement == 0xFFFF
}

// RomSizeBytes returns the ROM size declared by the header.
func (h *InternalHeader) RomSizeBytes() int {
	return 0x400 << h.RomSize
}

// SramSizeBytes returns the save RAM size declared by the header.
func (h *InternalHeader) SramSizeBytes() int {
	if h.SramSize == 0 {
		return 0
	}
	return 0x400 << h.SramSize
}

// CodeVectors returns the interrupt vectors that point at code, skipping
// unused entries.
func (h *InternalHeader) CodeVectors() []mapper.LogicalAddress {
	var vectors []mapper.LogicalAddress
	for _, v := range h.Vectors {
		if v == 0xFFFF || v == 0 {
			continue
		}
		vectors = append(vectors, v)
	}
	return vectors
}

func word(b []byte, offset int) uint16 {
	return uint16(b[offset]) | uint16(b[offset+1])<<8
}
