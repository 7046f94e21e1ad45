package emu

import (
	"errors"
	"fmt"

	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
)

// DMA destination ports, as the low byte of the $21xx register.
const (
	PortVRAMLow  = 0x18
	PortVRAMHigh = 0x19
	PortCGRAM    = 0x22
)

const (
	dmaChannels      = 8
	dmaChannelStride = 0x10
	dmaFixedSource   = 0x08
)

// EmulationGap is returned for hardware behavior that is recognized but not
// emulated. The transfer it describes was skipped.
type EmulationGap struct {
	Channel int
	Port    uint8
	Source  mapper.LogicalAddress
	Size    int
	Feature string
}

func (e *EmulationGap) Error() string {
	return fmt.Sprintf("emulation gap: %s (DMA channel %d, port $21%02X, source %s, size $%04X)",
		e.Feature, e.Channel, e.Port, e.Source, e.Size)
}

// ProcessDMA runs all channels enabled in the DMA enable register in
// ascending order and clears the register afterwards. Skipped transfers are
// returned joined as EmulationGap errors.
func (m *Memory) ProcessDMA() error {
	enabled := m.Load(RegDMAEnable)
	if enabled == 0 {
		return nil
	}

	var gaps []error
	for ch := range dmaChannels {
		if enabled&(1<<ch) == 0 {
			continue
		}
		if err := m.processChannel(ch); err != nil {
			gaps = append(gaps, err)
		}
	}
	m.Store(RegDMAEnable, 0)
	return errors.Join(gaps...)
}

func (m *Memory) processChannel(ch int) error {
	base := mapper.LogicalAddress(ch * dmaChannelStride)
	source := m.Load24(RegDMASource + base)
	size := int(m.Load16(RegDMASize + base))
	port := m.Load(RegDMAPort + base)
	params := m.Load(RegDMAParams + base)

	gap := func(feature string) error {
		return &EmulationGap{Channel: ch, Port: port, Source: source, Size: size, Feature: feature}
	}

	switch port {
	case PortVRAMLow:
		if params&dmaFixedSource != 0 {
			return gap("fixed value fill")
		}
		dest := m.Load16(RegVRAMAddress)
		for i := range size {
			m.vram[(int(dest)*2+i)&(VRAMSize-1)] = m.Load(source + mapper.LogicalAddress(i))
		}
		m.Store16(RegVRAMAddress, dest+uint16(size))

	case PortVRAMHigh:
		if params&dmaFixedSource != 0 {
			return gap("fixed value fill")
		}
		dest := m.Load16(RegVRAMAddress)
		for i := range size {
			m.vram[vramIndex(dest+uint16(i), 1)] = m.Load(source + mapper.LogicalAddress(i))
		}
		m.Store16(RegVRAMAddress, dest+uint16(size))

	case PortCGRAM:
		if params&dmaFixedSource != 0 {
			return gap("fixed value fill")
		}
		dest := m.Load(RegCGRAMAddress)
		for i := range size {
			m.cgram[(int(dest)*2+i)&(CGRAMSize-1)] = m.Load(source + mapper.LogicalAddress(i))
		}
		m.Store(RegCGRAMAddress, dest+uint8(size/2))

	default:
		return gap("unsupported destination port")
	}
	return nil
}
