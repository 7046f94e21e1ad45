// Package disasm decodes 65816 code and classifies a ROM image into code,
// data and unknown blocks.
package disasm

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/SMW-Editor/smw-editor-sub001/internal/jumpengine"
	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/SMW-Editor/smw-editor-sub001/internal/rom"
	"github.com/retroenv/retrogolib/log"
)

var (
	ErrSubroutineWithoutReturn = errors.New("cannot find a block that returns from subroutine")
	ErrInvalidTarget           = errors.New("invalid next address in code block")
	ErrInvalidEntry            = errors.New("entry point outside of ROM")
	ErrDuplicateChunk          = errors.New("multiple blocks at the same address")
	ErrMiddleOfInstruction     = errors.New("jump into the middle of an instruction")
)

// RangeError is a failure that is limited to one address range. The range
// stays Unknown and the analysis continues.
type RangeError struct {
	Begin mapper.PhysicalAddress
	End   mapper.PhysicalAddress
	Err   error
}

func (e RangeError) Error() string {
	return fmt.Sprintf("%s..%s: %v", e.Begin, e.End, e.Err)
}

func (e RangeError) Unwrap() error {
	return e.Err
}

// Disassembly is the block map of one ROM image.
type Disassembly struct {
	logger *log.Logger
	rom    *rom.Rom
	jumps  *jumpengine.JumpEngine

	chunks     []Chunk // sorted by offset after Analyse
	errs       []RangeError
	dataBlocks map[mapper.LogicalAddress]DataBlock
}

// New returns a disassembly whose block map covers the whole image as Unknown.
func New(logger *log.Logger, r *rom.Rom, jumps *jumpengine.JumpEngine) *Disassembly {
	return &Disassembly{
		logger: logger,
		rom:    r,
		jumps:  jumps,
		chunks: []Chunk{
			{Offset: 0, Block: UnknownBlock()},
			{Offset: mapper.PhysicalAddress(r.Len()), Block: EndOfRomBlock()},
		},
		dataBlocks: map[mapper.LogicalAddress]DataBlock{},
	}
}

// EntryPoints returns the default analysis starting points: the reset code,
// both pointer table trampolines and the used interrupt vectors.
func EntryPoints(vectors []mapper.LogicalAddress) []mapper.LogicalAddress {
	entries := []mapper.LogicalAddress{mapper.MinLogical, jumpengine.ExecutePtr, jumpengine.ExecutePtrLong}
	for _, v := range vectors {
		if v.Absolute() == 0xFFFF {
			continue
		}
		entries = append(entries, v)
	}
	return entries
}

// Analyse walks all code reachable from the entry points and builds the block map.
func (d *Disassembly) Analyse(entries []mapper.LogicalAddress) {
	w := newWalker(d)
	for _, entry := range entries {
		start, err := w.toPhysical(entry)
		if err != nil {
			d.logger.Warn("Skipping entry point", log.Stringer("address", entry), log.Err(err))
			d.addError(RangeError{Err: fmt.Errorf("%w: %s", ErrInvalidEntry, entry)})
			continue
		}
		w.enqueueBasicBlock(blockStep{start: start, processor: NewProcessor(), entrance: entry}, false)
	}

	w.run()
	d.cleanup()

	d.logger.Debug("Code analysis finished",
		log.Int("chunks", len(d.chunks)),
		log.Int("errors", len(d.errs)))
}

// Chunks returns the block map ordered by offset. The last chunk is the End of ROM marker.
func (d *Disassembly) Chunks() []Chunk {
	return d.chunks
}

// Errors returns the range errors collected during analysis.
func (d *Disassembly) Errors() []RangeError {
	return d.errs
}

// Rom returns the analysed image.
func (d *Disassembly) Rom() *rom.Rom {
	return d.rom
}

// ChunkEnd returns the offset following the chunk at the given index.
func (d *Disassembly) ChunkEnd(index int) mapper.PhysicalAddress {
	if index+1 < len(d.chunks) {
		return d.chunks[index+1].Offset
	}
	return d.chunks[index].Offset
}

// BlockAt returns the chunk containing the logical address.
func (d *Disassembly) BlockAt(addr mapper.LogicalAddress) (Chunk, error) {
	offset, err := mapper.ToPhysical(addr, d.rom.Scheme())
	if err != nil {
		return Chunk{}, fmt.Errorf("looking up block at %s: %w", addr, err)
	}
	return d.chunks[d.chunkIndex(offset)], nil
}

// SliceAt returns the ROM bytes of the slice.
func (d *Disassembly) SliceAt(slice mapper.RomSlice) ([]byte, error) {
	return d.rom.ReadSlice(slice)
}

// chunkIndex returns the index of the last chunk starting at or before offset.
func (d *Disassembly) chunkIndex(offset mapper.PhysicalAddress) int {
	i, found := slices.BinarySearchFunc(d.chunks, offset, func(c Chunk, target mapper.PhysicalAddress) int {
		return cmp.Compare(c.Offset, target)
	})
	if found {
		return i
	}
	return max(i-1, 0)
}

func (d *Disassembly) addError(err RangeError) {
	d.errs = append(d.errs, err)
}

// cleanup sorts the chunks and merges chunks at the same offset, dropping
// Unknown markers in favour of classified blocks.
func (d *Disassembly) cleanup() {
	slices.SortStableFunc(d.chunks, func(a, b Chunk) int {
		return cmp.Compare(a.Offset, b.Offset)
	})

	merged := make([]Chunk, 0, len(d.chunks))
	for _, chunk := range d.chunks {
		n := len(merged)
		if n == 0 || merged[n-1].Offset != chunk.Offset {
			merged = append(merged, chunk)
			continue
		}

		last := &merged[n-1]
		switch {
		case chunk.Block.Kind == KindUnknown:
		case last.Block.Kind == KindUnknown:
			*last = chunk
		default:
			d.logger.Error("Multiple chunks generated at one address",
				log.Stringer("offset", chunk.Offset),
				log.String("kept", last.Block.TypeName()),
				log.String("dropped", chunk.Block.TypeName()))
			d.addError(RangeError{Begin: chunk.Offset, End: chunk.Offset, Err: ErrDuplicateChunk})
		}
	}
	d.chunks = merged
}
