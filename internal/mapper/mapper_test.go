package mapper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestToPhysical(t *testing.T) {
	tests := []struct {
		name    string
		addr    LogicalAddress
		scheme  Scheme
		want    PhysicalAddress
		wantErr bool
	}{
		{name: "lorom first byte", addr: 0x008000, scheme: LoROM, want: 0x000000},
		{name: "lorom bank 1", addr: 0x018000, scheme: LoROM, want: 0x008000},
		{name: "lorom fast mirror", addr: 0x808000, scheme: LoROM, want: 0x000000},
		{name: "lorom bank 5", addr: 0x05D796, scheme: LoROM, want: 0x02D796},
		{name: "lorom wram", addr: 0x7E0010, scheme: LoROM, wantErr: true},
		{name: "lorom registers", addr: 0x002118, scheme: LoROM, wantErr: true},
		{name: "lorom sram", addr: 0x700010, scheme: LoROM, wantErr: true},
		{name: "hirom bank c0", addr: 0xC00000, scheme: HiROM, want: 0x000000},
		{name: "hirom bank c1", addr: 0xC1ABCD, scheme: HiROM, want: 0x01ABCD},
		{name: "hirom wram", addr: 0x7F0000, scheme: HiROM, wantErr: true},
		{name: "hirom registers", addr: 0x004200, scheme: HiROM, wantErr: true},
		{name: "no mapping", addr: 0x123456, scheme: None, want: 0x123456},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToPhysical(tt.addr, tt.scheme)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrNonCartridge))

				var addrErr *AddressError
				assert.True(t, errors.As(err, &addrErr))
				assert.Equal(t, uint32(tt.addr), addrErr.Address)
				assert.Equal(t, tt.scheme, addrErr.Scheme)
				assert.True(t, addrErr.Logical)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToLogical(t *testing.T) {
	tests := []struct {
		name    string
		addr    PhysicalAddress
		scheme  Scheme
		want    LogicalAddress
		wantErr bool
	}{
		{name: "lorom start", addr: 0x000000, scheme: LoROM, want: 0x008000},
		{name: "lorom bank 1", addr: 0x008000, scheme: LoROM, want: 0x018000},
		{name: "lorom last", addr: 0x3FFFFF, scheme: LoROM, want: 0x7FFFFF},
		{name: "lorom out of range", addr: 0x400000, scheme: LoROM, wantErr: true},
		{name: "hirom start", addr: 0x000000, scheme: HiROM, want: 0xC00000},
		{name: "hirom middle", addr: 0x123456, scheme: HiROM, want: 0xD23456},
		{name: "hirom out of range", addr: 0x400000, scheme: HiROM, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToLogical(tt.addr, tt.scheme)
			if tt.wantErr {
				var addrErr *AddressError
				assert.True(t, errors.As(err, &addrErr))
				assert.False(t, addrErr.Logical)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundTripLoROM(t *testing.T) {
	for bank := uint32(0x00); bank <= 0x7D; bank++ {
		for _, offset := range []uint32{0x8000, 0x8001, 0xABCD, 0xFFFF} {
			addr := LogicalAddress(bank<<16 | offset)
			pc, err := ToPhysical(addr, LoROM)
			assert.NoError(t, err)
			back, err := ToLogical(pc, LoROM)
			assert.NoError(t, err)
			assert.Equal(t, addr, back, fmt.Sprintf("bank %02X offset %04X", bank, offset))
		}
	}
}

func TestRoundTripHiROM(t *testing.T) {
	for bank := uint32(0xC0); bank <= 0xFF; bank++ {
		for _, offset := range []uint32{0x0000, 0x1234, 0x8000, 0xFFFF} {
			addr := LogicalAddress(bank<<16 | offset)
			pc, err := ToPhysical(addr, HiROM)
			assert.NoError(t, err)
			back, err := ToLogical(pc, HiROM)
			assert.NoError(t, err)
			assert.Equal(t, addr, back, fmt.Sprintf("bank %02X offset %04X", bank, offset))
		}
	}
}

func TestRoundTripPhysical(t *testing.T) {
	for _, scheme := range []Scheme{LoROM, HiROM} {
		for pc := PhysicalAddress(0); pc < romLimit; pc += 0x1357 {
			addr, err := ToLogical(pc, scheme)
			assert.NoError(t, err)
			back, err := ToPhysical(addr, scheme)
			assert.NoError(t, err)
			assert.Equal(t, pc, back, scheme.String())
		}
	}
}

func TestParseScheme(t *testing.T) {
	scheme, err := ParseScheme(" LoROM ")
	assert.NoError(t, err)
	assert.Equal(t, LoROM, scheme)

	scheme, err = ParseScheme("hirom")
	assert.NoError(t, err)
	assert.Equal(t, HiROM, scheme)

	_, err = ParseScheme("exhirom")
	assert.ErrorContains(t, err, "unsupported mapping scheme")
}

func TestLogicalAddressParts(t *testing.T) {
	addr := LogicalAddress(0x05D796)
	assert.Equal(t, uint8(0x05), addr.Bank())
	assert.Equal(t, uint8(0xD7), addr.High())
	assert.Equal(t, uint8(0x96), addr.Low())
	assert.Equal(t, uint16(0xD796), addr.Absolute())
	assert.Equal(t, LogicalAddress(0x0CD796), addr.WithBank(0x0C))
	assert.Equal(t, LogicalAddress(0x051234), addr.WithAbsolute(0x1234))
	assert.Equal(t, "$05D796", addr.String())
}
