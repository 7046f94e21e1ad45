package mapper

import (
	"fmt"
	"math"
)

// Infinite marks a slice with unknown extent.
const Infinite = math.MaxInt

// RomSlice is a logical address range. A slice with Infinite size is only a
// scan starting point and can not be used to read ROM contents.
type RomSlice struct {
	Begin LogicalAddress
	Size  int
}

// NewSlice returns a slice of size bytes starting at begin.
func NewSlice(begin LogicalAddress, size int) RomSlice {
	return RomSlice{Begin: begin, Size: size}
}

func (s RomSlice) String() string {
	if s.IsInfinite() {
		return fmt.Sprintf("%s..", s.Begin)
	}
	return fmt.Sprintf("%s..%s", s.Begin, s.Begin+LogicalAddress(s.Size))
}

// IsInfinite returns whether the slice has an unknown extent.
func (s RomSlice) IsInfinite() bool {
	return s.Size == Infinite
}

// IsEmpty returns whether the slice covers no bytes.
func (s RomSlice) IsEmpty() bool {
	return s.Size == 0
}

// End returns the first address after the slice. The second return value is
// false for infinite slices.
func (s RomSlice) End() (LogicalAddress, bool) {
	if s.IsInfinite() {
		return 0, false
	}
	return s.Begin + LogicalAddress(s.Size), true
}

// OffsetForward moves the start of the slice forward by offset bytes.
func (s RomSlice) OffsetForward(offset int) RomSlice {
	s.Begin += LogicalAddress(offset)
	return s
}

// OffsetBackward moves the start of the slice backward by offset bytes.
func (s RomSlice) OffsetBackward(offset int) RomSlice {
	s.Begin -= LogicalAddress(offset)
	return s
}

// SkipForward moves the slice forward by the given number of its own lengths.
func (s RomSlice) SkipForward(lengths int) RomSlice {
	if s.IsInfinite() {
		return s
	}
	s.Begin += LogicalAddress(s.Size * lengths)
	return s
}

// SkipBackward moves the slice backward by the given number of its own lengths.
func (s RomSlice) SkipBackward(lengths int) RomSlice {
	if s.IsInfinite() {
		return s
	}
	s.Begin -= LogicalAddress(s.Size * lengths)
	return s
}

// MoveTo returns the slice starting at a new address.
func (s RomSlice) MoveTo(addr LogicalAddress) RomSlice {
	s.Begin = addr
	return s
}

// Expand grows the slice by diff bytes.
func (s RomSlice) Expand(diff int) RomSlice {
	if s.IsInfinite() {
		return s
	}
	s.Size += diff
	return s
}

// Shrink reduces the slice by diff bytes, stopping at empty.
func (s RomSlice) Shrink(diff int) RomSlice {
	if s.IsInfinite() {
		return s
	}
	s.Size = max(s.Size-diff, 0)
	return s
}

// Resize sets the size of the slice, clearing the infinite marker.
func (s RomSlice) Resize(size int) RomSlice {
	s.Size = size
	return s
}

// ToInfinite marks the slice as having an unknown extent.
func (s RomSlice) ToInfinite() RomSlice {
	s.Size = Infinite
	return s
}

// Contains returns whether addr lies inside the slice. Infinite slices contain nothing.
func (s RomSlice) Contains(addr LogicalAddress) bool {
	end, ok := s.End()
	if !ok {
		return false
	}
	return addr >= s.Begin && addr < end
}
