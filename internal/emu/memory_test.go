package emu

import (
	"errors"
	"testing"

	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/SMW-Editor/smw-editor-sub001/internal/rom"
	"github.com/retroenv/retrogolib/assert"
)

// testMemory returns a memory backed by a two bank LoROM image with the
// given bytes placed at $00:8000.
func testMemory(t *testing.T, code ...byte) *Memory {
	t.Helper()
	data := make([]byte, 0x10000)
	copy(data, code)
	r, err := rom.New(data, mapper.LoROM)
	assert.NoError(t, err)
	return NewMemory(r)
}

func TestMemoryRouting(t *testing.T) {
	mem := testMemory(t, 0xEA, 0x42)

	tests := []struct {
		name   string
		store  mapper.LogicalAddress
		load   mapper.LogicalAddress
		buffer func() []byte
		index  int
	}{
		{"work RAM", 0x7E0010, 0x7E0010, mem.WRAM, 0x10},
		{"work RAM high bank", 0x7F1234, 0x7F1234, mem.WRAM, 0x11234},
		{"low RAM mirror", 0x000020, 0x7E0020, mem.WRAM, 0x20},
		{"low RAM mirror in other bank", 0x3F1FFF, 0x001FFF, mem.WRAM, 0x1FFF},
		{"extended RAM", 0x604000, 0x604000, mem.ExtRAM, 0x4000},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := uint8(0x80 + i)
			mem.Store(tt.store, value)
			assert.Equal(t, value, mem.Load(tt.load))
			assert.Equal(t, value, tt.buffer()[tt.index])
		})
	}

	t.Run("hardware registers", func(t *testing.T) {
		mem.Store(0x004300, 0x01)
		assert.Equal(t, uint8(0x01), mem.Load(0x804300))
	})

	t.Run("cartridge", func(t *testing.T) {
		assert.Equal(t, uint8(0xEA), mem.Load(0x008000))
		assert.Equal(t, uint16(0x42EA), mem.Load16(0x808000))
		_, faulted := mem.Fault()
		assert.False(t, faulted)
	})

	t.Run("unmapped access faults", func(t *testing.T) {
		assert.Equal(t, uint8(0), mem.Load(0x208000))
		addr, faulted := mem.Fault()
		assert.True(t, faulted)
		assert.Equal(t, mapper.LogicalAddress(0x208000), addr)

		mem.ClearFault()
		mem.Store(0x008000, 0x00)
		addr, faulted = mem.Fault()
		assert.True(t, faulted)
		assert.Equal(t, mapper.LogicalAddress(0x008000), addr)
		assert.Equal(t, uint8(0xEA), mem.Load(0x008000))
	})
}

func TestMemoryWords(t *testing.T) {
	mem := testMemory(t)
	mem.Store24(0x7E0100, 0x05801E)
	assert.Equal(t, mapper.LogicalAddress(0x05801E), mem.Load24(0x7E0100))
	assert.Equal(t, uint16(0x801E), mem.Load16(0x7E0100))
	assert.Equal(t, mapper.LogicalAddress(0x7E0102), mem.LastStore())
}

func TestVRAMPortWrites(t *testing.T) {
	mem := testMemory(t)
	mem.Store16(RegVRAMAddress, 0x0010)
	mem.Store(RegVRAMDataLow, 0xAA)
	mem.Store(RegVRAMDataHigh, 0xBB)
	mem.Store(RegVRAMDataLow, 0xCC)

	vram := mem.VRAM()
	assert.Equal(t, uint8(0xAA), vram[0x20])
	assert.Equal(t, uint8(0xBB), vram[0x21])
	assert.Equal(t, uint8(0xCC), vram[0x22])
	assert.Equal(t, uint16(0x0011), mem.Load16(RegVRAMAddress))
}

func TestTracker(t *testing.T) {
	mem := testMemory(t)
	tracker := NewTracker(0x7E0000)
	mem.SetTracker(tracker)

	mem.Load(0x7E0000)
	mem.Store(0x000010, 1)
	mem.Load(0x7E0010)
	mem.Load(0x7E0020)
	mem.Load(0x000020)
	mem.Load(0x7F0000)

	assert.Equal(t, []mapper.LogicalAddress{0x7E0020, 0x7F0000}, tracker.UninitializedReads())

	mem.SetTracker(nil)
	mem.Load(0x7E0030)
	assert.Len(t, tracker.UninitializedReads(), 2)
}

func setupChannel(mem *Memory, ch int, params, port uint8, source mapper.LogicalAddress, size uint16) {
	base := mapper.LogicalAddress(ch * 0x10)
	mem.Store(RegDMAParams+base, params)
	mem.Store(RegDMAPort+base, port)
	mem.Store24(RegDMASource+base, source)
	mem.Store16(RegDMASize+base, size)
}

func TestDMAToVRAM(t *testing.T) {
	mem := testMemory(t)
	for i := range 0x20 {
		mem.Store(0x7E2000+mapper.LogicalAddress(i), uint8(i+1))
	}
	mem.Store16(RegVRAMAddress, 0x1000)
	setupChannel(mem, 0, 0x01, PortVRAMLow, 0x7E2000, 0x20)
	mem.Store(RegDMAEnable, 0x01)

	assert.NoError(t, mem.ProcessDMA())
	assert.Equal(t, uint8(0), mem.Load(RegDMAEnable))

	vram := mem.VRAM()
	for i := range 0x20 {
		assert.Equal(t, uint8(i+1), vram[0x2000+i])
	}
	assert.Equal(t, uint8(0), vram[0x1FFF])
	assert.Equal(t, uint8(0), vram[0x2020])
	assert.Equal(t, uint16(0x1020), mem.Load16(RegVRAMAddress))
}

func TestDMAHighBytePortAndCGRAM(t *testing.T) {
	mem := testMemory(t, 0x11, 0x22, 0x33, 0x44)
	mem.Store16(RegVRAMAddress, 0x0008)
	mem.Store(RegCGRAMAddress, 0x10)
	setupChannel(mem, 1, 0x00, PortVRAMHigh, 0x008000, 2)
	setupChannel(mem, 2, 0x00, PortCGRAM, 0x008000, 4)
	mem.Store(RegDMAEnable, 0x06)

	assert.NoError(t, mem.ProcessDMA())

	vram := mem.VRAM()
	assert.Equal(t, uint8(0x11), vram[0x11])
	assert.Equal(t, uint8(0x22), vram[0x13])
	assert.Equal(t, uint8(0), vram[0x12])

	cgram := mem.CGRAM()
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x44}, cgram[0x20:0x24])
	assert.Equal(t, uint8(0x12), mem.Load(RegCGRAMAddress))
}

func TestDMAEmulationGaps(t *testing.T) {
	mem := testMemory(t)
	mem.Store(0x7E0000, 0x55)
	setupChannel(mem, 0, 0x01, PortVRAMLow, 0x7E0000, 4)
	setupChannel(mem, 1, 0x09, PortVRAMLow, 0x7E0000, 4)
	setupChannel(mem, 7, 0x00, 0x04, 0x7E0000, 4)
	mem.Store(RegDMAEnable, 0x83)

	err := mem.ProcessDMA()
	assert.Error(t, err)

	var gap *EmulationGap
	assert.True(t, errors.As(err, &gap))
	assert.Equal(t, 1, gap.Channel)
	assert.ErrorContains(t, err, "fixed value fill")
	assert.ErrorContains(t, err, "port $2104")

	// the supported channel still ran and the register is cleared
	assert.Equal(t, uint8(0x55), mem.VRAM()[0])
	assert.Equal(t, uint8(0), mem.Load(RegDMAEnable))
	assert.NoError(t, mem.ProcessDMA())
}
