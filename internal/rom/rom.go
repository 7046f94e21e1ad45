// Package rom provides access to a cartridge image by logical address.
package rom

import (
	"errors"
	"fmt"

	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
)

// CopierHeaderSize is the size of the header some copier devices prepend to
// the image. It is detected by the file size modulo 1KB.
const CopierHeaderSize = 0x200

var (
	ErrEmpty          = errors.New("empty ROM image")
	ErrInfiniteSlice  = errors.New("slice has unknown size")
	ErrOutOfRange     = errors.New("read outside of ROM image")
	ErrHeaderNotFound = errors.New("internal header not found")
)

// Rom is a cartridge image without copier header.
type Rom struct {
	data         []byte
	scheme       mapper.Scheme
	copierHeader bool
}

// StripCopierHeader removes a copier header if the image size indicates one.
func StripCopierHeader(data []byte) ([]byte, bool) {
	if len(data)%0x400 == CopierHeaderSize {
		return data[CopierHeaderSize:], true
	}
	return data, false
}

// New returns a ROM for the raw file contents. A copier header is stripped
// before any address translation happens.
func New(data []byte, scheme mapper.Scheme) (*Rom, error) {
	data, stripped := StripCopierHeader(data)
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	return &Rom{
		data:         data,
		scheme:       scheme,
		copierHeader: stripped,
	}, nil
}

// Bytes returns the image contents. The returned buffer must not be modified.
func (r *Rom) Bytes() []byte {
	return r.data
}

// Len returns the image size in bytes.
func (r *Rom) Len() int {
	return len(r.data)
}

// Scheme returns the mapping scheme used for address translation.
func (r *Rom) Scheme() mapper.Scheme {
	return r.scheme
}

// HasCopierHeader returns whether a copier header was stripped from the file.
func (r *Rom) HasCopierHeader() bool {
	return r.copierHeader
}

// Physical translates a logical address to an image offset inside the ROM.
func (r *Rom) Physical(addr mapper.LogicalAddress) (mapper.PhysicalAddress, error) {
	offset, err := mapper.ToPhysical(addr, r.scheme)
	if err != nil {
		return 0, fmt.Errorf("translating address %s: %w", addr, err)
	}
	if int(offset) >= len(r.data) {
		return 0, fmt.Errorf("%w: %s maps to %s", ErrOutOfRange, addr, offset)
	}
	return offset, nil
}

// ReadSlice returns the bytes covered by the slice.
func (r *Rom) ReadSlice(slice mapper.RomSlice) ([]byte, error) {
	if slice.IsInfinite() {
		return nil, fmt.Errorf("%w: %s", ErrInfiniteSlice, slice)
	}
	offset, err := r.Physical(slice.Begin)
	if err != nil {
		return nil, err
	}
	end := int(offset) + slice.Size
	if end > len(r.data) {
		return nil, fmt.Errorf("%w: %s ends at %s", ErrOutOfRange, slice, mapper.PhysicalAddress(end))
	}
	return r.data[offset:end], nil
}

// ReadFrom returns all bytes from the address to the end of the image. It is
// used for data of unknown size, like compressed streams.
func (r *Rom) ReadFrom(addr mapper.LogicalAddress) ([]byte, error) {
	offset, err := r.Physical(addr)
	if err != nil {
		return nil, err
	}
	return r.data[offset:], nil
}

// Read8 reads a byte.
func (r *Rom) Read8(addr mapper.LogicalAddress) (uint8, error) {
	b, err := r.ReadSlice(mapper.NewSlice(addr, 1))
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Read16 reads a little-endian word.
func (r *Rom) Read16(addr mapper.LogicalAddress) (uint16, error) {
	b, err := r.ReadSlice(mapper.NewSlice(addr, 2))
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

// Read24 reads a little-endian long address.
func (r *Rom) Read24(addr mapper.LogicalAddress) (mapper.LogicalAddress, error) {
	b, err := r.ReadSlice(mapper.NewSlice(addr, 3))
	if err != nil {
		return 0, err
	}
	return mapper.LogicalAddress(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16), nil
}

// Checksum returns the 16-bit sum of all image bytes. Images whose size is
// not a power of two have their upper part mirrored up to the next power of
// two, the way the cartridge is seen by the console.
func (r *Rom) Checksum() uint16 {
	return checksum(r.data)
}

func checksum(data []byte) uint16 {
	size := len(data)
	if size == 0 {
		return 0
	}

	base := 1
	for base*2 <= size {
		base *= 2
	}

	sum := sumBytes(data[:base])
	if rest := data[base:]; len(rest) > 0 {
		// mirror the remainder until it fills another base sized area
		restSum := sumBytes(rest)
		for filled := 0; filled < base; filled += len(rest) {
			if remaining := base - filled; remaining < len(rest) {
				sum += sumBytes(rest[:remaining])
				break
			}
			sum += restSum
		}
	}
	return uint16(sum)
}

func sumBytes(data []byte) uint32 {
	var sum uint32
	for _, b := range data {
		sum += uint32(b)
	}
	return sum
}
