package disasm

import (
	"errors"
	"slices"
	"testing"

	"github.com/SMW-Editor/smw-editor-sub001/internal/jumpengine"
	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/SMW-Editor/smw-editor-sub001/internal/rom"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func dataBlock(begin mapper.LogicalAddress, size int, kind DataKind) DataBlock {
	return DataBlock{Slice: mapper.NewSlice(begin, size), Kind: kind}
}

func unsizedDataBlock(begin mapper.LogicalAddress, kind DataKind) DataBlock {
	return DataBlock{Slice: mapper.NewSlice(begin, 0).ToInfinite(), Kind: kind}
}

//nolint:funlen // sequence of dependent requests
func TestRequestData(t *testing.T) {
	d := testDisassembly(t, nil)

	block, err := d.RequestData(dataBlock(0x008100, 0x10, GfxFile))
	assert.NoError(t, err)
	assert.Equal(t, 0x10, block.Slice.Size)
	assert.Equal(t, []mapper.PhysicalAddress{0, 0x100, 0x110, 0x10000}, chunkOffsets(d))

	t.Run("unknown size is resolved by a later request", func(t *testing.T) {
		block, err := d.RequestData(unsizedDataBlock(0x008200, Tileset))
		assert.NoError(t, err)
		assert.True(t, block.Slice.IsInfinite())
		assert.Equal(t, []mapper.PhysicalAddress{0, 0x100, 0x110, 0x10000}, chunkOffsets(d))

		block, err = d.RequestData(dataBlock(0x008200, 0x20, Tileset))
		assert.NoError(t, err)
		assert.Equal(t, 0x20, block.Slice.Size)
		assert.Equal(t, []mapper.PhysicalAddress{0, 0x100, 0x110, 0x200, 0x220, 0x10000}, chunkOffsets(d))

		block, err = d.RequestData(unsizedDataBlock(0x008200, Tileset))
		assert.NoError(t, err)
		assert.Equal(t, 0x20, block.Slice.Size)
	})

	t.Run("larger request replaces block", func(t *testing.T) {
		block, err := d.RequestData(dataBlock(0x008100, 0x20, GfxFile))
		assert.NoError(t, err)
		assert.Equal(t, 0x20, block.Slice.Size)
		assert.Equal(t, []mapper.PhysicalAddress{0, 0x100, 0x120, 0x200, 0x220, 0x10000}, chunkOffsets(d))

		block, err = d.RequestData(dataBlock(0x008100, 0x08, GfxFile))
		assert.NoError(t, err)
		assert.Equal(t, 0x20, block.Slice.Size)
	})

	t.Run("split at start of unknown block", func(t *testing.T) {
		_, err := d.RequestData(dataBlock(0x008120, 0x10, CreditsText))
		assert.NoError(t, err)
		assert.Equal(t, []mapper.PhysicalAddress{0, 0x100, 0x120, 0x130, 0x200, 0x220, 0x10000}, chunkOffsets(d))

		chunk, err := d.BlockAt(0x008125)
		assert.NoError(t, err)
		assert.Equal(t, CreditsText, chunk.Block.Data.Kind)
	})

	t.Run("conflicts", func(t *testing.T) {
		_, err := d.RequestData(dataBlock(0x008100, 0x20, Tileset))
		assert.True(t, errors.Is(err, ErrDataMismatch))

		_, err = d.RequestData(dataBlock(0x0081F0, 0x20, MessageText))
		assert.True(t, errors.Is(err, ErrDataOverlap))

		_, err = d.RequestData(dataBlock(0x008108, 0x04, MessageText))
		assert.True(t, errors.Is(err, ErrDataMismatch))

		_, err = d.RequestData(dataBlock(0x7E0000, 0x04, MessageText))
		assert.True(t, errors.Is(err, ErrDataBlockNotFound))
	})

	assert.Len(t, d.DataBlocks(), 3)
}

func TestRequestDataInsideCode(t *testing.T) {
	d := testDisassembly(t, nil, subroutineImage()...)
	d.Analyse([]mapper.LogicalAddress{0x008000})

	_, err := d.RequestData(dataBlock(0x008001, 2, MessageText))
	assert.True(t, errors.Is(err, ErrDataInsideCode))

	data, err := d.ReadData(dataBlock(0x008008, 8, MessageText))
	assert.NoError(t, err)
	assert.Len(t, data, 8)
}

func TestMarkDataRecordsConflicts(t *testing.T) {
	d := testDisassembly(t, nil)
	d.MarkData([]DataBlock{
		dataBlock(0x008100, 0x10, GfxFile),
		dataBlock(0x008108, 0x10, Tileset),
	})

	assert.Len(t, d.DataBlocks(), 1)
	errs := d.Errors()
	assert.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], ErrDataMismatch))
	assert.Equal(t, mapper.PhysicalAddress(0x108), errs[0].Begin)
}

func TestKnownDataFitsLoROM(t *testing.T) {
	const romSize = 0x80000
	for _, block := range KnownData {
		offset, err := mapper.ToPhysical(block.Slice.Begin, mapper.LoROM)
		assert.NoError(t, err)
		assert.True(t, int(offset) < romSize, block.String())
	}
}

func TestKnownDataDoesNotOverlap(t *testing.T) {
	type span struct {
		begin, end mapper.PhysicalAddress
		block      DataBlock
	}
	var spans []span
	for _, block := range KnownData {
		begin, err := mapper.ToPhysical(block.Slice.Begin, mapper.LoROM)
		assert.NoError(t, err)
		end := begin + 1
		if !block.Slice.IsInfinite() {
			end = begin + mapper.PhysicalAddress(block.Slice.Size)
		}
		spans = append(spans, span{begin: begin, end: end, block: block})
	}
	slices.SortFunc(spans, func(a, b span) int {
		return int(a.begin) - int(b.begin)
	})

	for i := 1; i < len(spans); i++ {
		assert.True(t, spans[i-1].end <= spans[i].begin, spans[i].block.String())
	}
}

func TestMarkKnownData(t *testing.T) {
	r, err := rom.New(make([]byte, 0x80000), mapper.LoROM)
	assert.NoError(t, err)
	d := New(log.NewTestLogger(t), r, jumpengine.New(nil))

	d.MarkData(KnownData)
	assert.Len(t, d.Errors(), 0)
	assert.Len(t, d.DataBlocks(), len(KnownData))
}

