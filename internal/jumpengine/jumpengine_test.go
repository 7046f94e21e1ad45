package jumpengine

import (
	"testing"

	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/retroenv/retrogolib/assert"
)

type sliceReader struct {
	base mapper.LogicalAddress
	data []byte
}

func (r sliceReader) ReadSlice(slice mapper.RomSlice) ([]byte, error) {
	start := int(slice.Begin - r.base)
	return r.data[start : start+slice.Size], nil
}

func TestResolveShortPointers(t *testing.T) {
	view := TableView{Begin: 0x05BC87, Length: 3}
	r := sliceReader{base: 0x05BC87, data: []byte{0x34, 0x12, 0x00, 0x80, 0xFF, 0xBC}}

	addresses, err := Resolve(r, view)
	assert.NoError(t, err)
	assert.Equal(t, []mapper.LogicalAddress{0x051234, 0x058000, 0x05BCFF}, addresses)
	for _, addr := range addresses {
		assert.Equal(t, uint8(0x05), addr.Bank())
	}
}

func TestResolveLongPointers(t *testing.T) {
	view := TableView{Begin: 0x0DA10F, Length: 2, LongPointers: true}
	r := sliceReader{base: 0x0DA10F, data: []byte{0x00, 0x80, 0x0D, 0x56, 0x34, 0x12}}

	addresses, err := Resolve(r, view)
	assert.NoError(t, err)
	assert.Equal(t, []mapper.LogicalAddress{0x0D8000, 0x123456}, addresses)
	assert.Equal(t, 6, view.Slice().Size)
}

func TestDecodeTooShort(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3}, TableView{Begin: 0x018000, Length: 2})
	assert.ErrorContains(t, err, "too short")
}

func TestCodeTargetsFiltersNonCode(t *testing.T) {
	view := TableView{Begin: 0x028000, Length: 4}
	r := sliceReader{base: 0x028000, data: []byte{
		0x00, 0x90, // code
		0x00, 0x00, // null entry
		0x00, 0xA0, // registered as data
		0x00, 0xB0, // code
	}}

	j := New([]TableView{view}, 0x02A000)
	targets, err := j.CodeTargets(r, view)
	assert.NoError(t, err)
	assert.Equal(t, []mapper.LogicalAddress{0x029000, 0x02B000}, targets)
}

func TestDefaultCatalog(t *testing.T) {
	j := Default()

	view, ok := j.Table(0x0DA10F)
	assert.True(t, ok)
	assert.True(t, view.LongPointers)
	assert.Equal(t, 0x100, view.Length)

	_, ok = j.Table(0x008000)
	assert.False(t, ok)

	assert.True(t, IsTrampoline(ExecutePtr))
	assert.True(t, IsTrampoline(ExecutePtrLong))
	assert.False(t, IsTrampoline(0x0086E0))
}
