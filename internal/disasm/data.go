package disasm

import (
	"errors"
	"fmt"
	"slices"

	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/retroenv/retrogolib/log"
)

var (
	ErrDataBlockNotFound = errors.New("data block not found")
	ErrDataOverlap       = errors.New("data block overlaps the next block")
	ErrDataInsideCode    = errors.New("data block inside code")
	ErrDataMismatch      = errors.New("data block differs from established block")
)

type splitType uint8

const (
	splitNone splitType = iota
	splitStart
	splitMiddle
)

// RequestData establishes a data block in the block map and returns the block
// as recorded. A block of infinite size marks the location only; a later
// request with a known size at the same location sets its extent. Of two
// requests with different sizes the larger one is kept.
func (d *Disassembly) RequestData(block DataBlock) (DataBlock, error) {
	old, ok := d.dataBlocks[block.Slice.Begin]
	switch {
	case !ok:
		if err := d.splitUnknownWith(block); err != nil {
			return DataBlock{}, err
		}

	case old == block:
		return block, nil

	case old.Kind != block.Kind:
		return DataBlock{}, fmt.Errorf("%w: requested %s, established %s", ErrDataMismatch, block, old)

	case block.Slice.IsInfinite():
		return old, nil

	case old.Slice.IsInfinite():
		if err := d.splitUnknownWith(block); err != nil {
			return DataBlock{}, err
		}

	case block.Slice.Size > old.Slice.Size:
		if err := d.removeDataChunk(old); err != nil {
			return DataBlock{}, err
		}
		if err := d.splitUnknownWith(block); err != nil {
			return DataBlock{}, err
		}

	default:
		return old, nil
	}

	d.dataBlocks[block.Slice.Begin] = block
	return block, nil
}

// ReadData requests the data block and returns its ROM contents. Blocks of
// unknown size return the remaining image from their start.
func (d *Disassembly) ReadData(block DataBlock) ([]byte, error) {
	block, err := d.RequestData(block)
	if err != nil {
		return nil, err
	}
	if block.Slice.IsInfinite() {
		return d.rom.ReadFrom(block.Slice.Begin)
	}
	return d.rom.ReadSlice(block.Slice)
}

// DataBlocks returns all established data blocks ordered by address.
func (d *Disassembly) DataBlocks() []DataBlock {
	blocks := make([]DataBlock, 0, len(d.dataBlocks))
	for _, block := range d.dataBlocks {
		blocks = append(blocks, block)
	}
	slices.SortFunc(blocks, func(a, b DataBlock) int {
		return int(a.Slice.Begin) - int(b.Slice.Begin)
	})
	return blocks
}

// MarkData establishes all catalog entries in the block map. Conflicting
// entries are logged and recorded as range errors.
func (d *Disassembly) MarkData(catalog []DataBlock) {
	for _, block := range catalog {
		if _, err := d.RequestData(block); err != nil {
			offset, _ := mapper.ToPhysical(block.Slice.Begin, d.rom.Scheme())
			d.logger.Warn("Marking data block failed",
				log.Stringer("block", block),
				log.Err(err))
			d.addError(RangeError{Begin: offset, End: offset, Err: err})
		}
	}
}

func (d *Disassembly) splitUnknownWith(block DataBlock) error {
	begin, err := mapper.ToPhysical(block.Slice.Begin, d.rom.Scheme())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDataBlockNotFound, block, err)
	}

	index := d.chunkIndex(begin)
	if index+1 >= len(d.chunks) || begin >= d.chunks[len(d.chunks)-1].Offset {
		return fmt.Errorf("%w: %s", ErrDataBlockNotFound, block)
	}

	chunk := d.chunks[index]
	next := d.chunks[index+1]

	var split splitType
	switch chunk.Block.Kind {
	case KindCode, KindEndOfRom:
		return fmt.Errorf("%w: %s at %s", ErrDataInsideCode, block, chunk.Offset)

	case KindData:
		if chunk.Offset != begin || !dataMatches(*chunk.Block.Data, block) {
			return fmt.Errorf("%w: %s, found %s", ErrDataMismatch, block, chunk.Block.Data)
		}

	case KindUnknown:
		if !block.Slice.IsInfinite() {
			end := begin + mapper.PhysicalAddress(block.Slice.Size)
			if end > next.Offset {
				return fmt.Errorf("%w: %s overlaps %s block at %s",
					ErrDataOverlap, block, next.Block.TypeName(), next.Offset)
			}
			if chunk.Offset == begin {
				split = splitStart
			} else {
				split = splitMiddle
			}
		}
	}

	data := Chunk{Offset: begin, Block: DataBinaryBlock(block)}
	end := begin + mapper.PhysicalAddress(block.Slice.Size)

	switch split {
	case splitStart:
		if end == next.Offset {
			d.chunks[index] = data
		} else {
			d.chunks[index].Offset = end
			d.chunks = slices.Insert(d.chunks, index, data)
		}

	case splitMiddle:
		inserted := []Chunk{data}
		if end < next.Offset {
			inserted = append(inserted, Chunk{Offset: end, Block: UnknownBlock()})
		}
		d.chunks = slices.Insert(d.chunks, index+1, inserted...)

	case splitNone:
	}
	return nil
}

// removeDataChunk turns an established data block back into Unknown space,
// merging it with Unknown neighbours.
func (d *Disassembly) removeDataChunk(block DataBlock) error {
	begin, err := mapper.ToPhysical(block.Slice.Begin, d.rom.Scheme())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDataBlockNotFound, block, err)
	}

	index := d.chunkIndex(begin)
	if d.chunks[index].Offset != begin || d.chunks[index].Block.Kind != KindData {
		return fmt.Errorf("%w: %s", ErrDataBlockNotFound, block)
	}

	d.chunks[index].Block = UnknownBlock()
	if index+1 < len(d.chunks) && d.chunks[index+1].Block.Kind == KindUnknown {
		d.chunks = slices.Delete(d.chunks, index+1, index+2)
	}
	if index > 0 && d.chunks[index-1].Block.Kind == KindUnknown {
		d.chunks = slices.Delete(d.chunks, index, index+1)
	}
	return nil
}

// dataMatches compares blocks, treating an infinite request as matching any size.
func dataMatches(established, requested DataBlock) bool {
	if established.Kind != requested.Kind || established.Slice.Begin != requested.Slice.Begin {
		return false
	}
	return requested.Slice.IsInfinite() || established.Slice.Size == requested.Slice.Size
}
