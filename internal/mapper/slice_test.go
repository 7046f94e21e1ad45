package mapper

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestRomSlice(t *testing.T) {
	s := NewSlice(0x008000, 0x10)

	end, ok := s.End()
	assert.True(t, ok)
	assert.Equal(t, LogicalAddress(0x008010), end)

	assert.Equal(t, LogicalAddress(0x008004), s.OffsetForward(4).Begin)
	assert.Equal(t, LogicalAddress(0x007FFC), s.OffsetBackward(4).Begin)
	assert.Equal(t, LogicalAddress(0x008020), s.SkipForward(2).Begin)
	assert.Equal(t, LogicalAddress(0x007FF0), s.SkipBackward(1).Begin)
	assert.Equal(t, 0x18, s.Expand(8).Size)
	assert.Equal(t, 0x0C, s.Shrink(4).Size)
	assert.Equal(t, 0, s.Shrink(0x20).Size)
	assert.Equal(t, 3, s.Resize(3).Size)
	assert.Equal(t, LogicalAddress(0x0C8000), s.MoveTo(0x0C8000).Begin)

	assert.True(t, s.Contains(0x008000))
	assert.True(t, s.Contains(0x00800F))
	assert.False(t, s.Contains(0x008010))
	assert.False(t, s.Resize(0).Contains(0x008000))
	assert.True(t, s.Resize(0).IsEmpty())
}

func TestRomSliceInfinite(t *testing.T) {
	s := NewSlice(0x018000, 4).ToInfinite()
	assert.True(t, s.IsInfinite())

	_, ok := s.End()
	assert.False(t, ok)
	assert.False(t, s.Contains(0x018000))

	assert.Equal(t, s, s.SkipForward(3))
	assert.Equal(t, s, s.SkipBackward(3))
	assert.Equal(t, s, s.Expand(1))
	assert.Equal(t, s, s.Shrink(1))
	assert.True(t, s.OffsetForward(2).IsInfinite())
	assert.True(t, s.MoveTo(0x028000).IsInfinite())
	assert.False(t, s.Resize(2).IsInfinite())
}
