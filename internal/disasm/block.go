package disasm

import (
	"fmt"

	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
)

// BlockKind is the classification of a binary block.
type BlockKind uint8

const (
	KindUnknown BlockKind = iota
	KindCode
	KindData
	KindEndOfRom
)

var blockKindNames = map[BlockKind]string{
	KindUnknown:  "Unknown",
	KindCode:     "Code",
	KindData:     "Data",
	KindEndOfRom: "End of ROM",
}

func (k BlockKind) String() string {
	return blockKindNames[k]
}

// BinaryBlock is a classified address range. Only the field matching the
// kind is set.
type BinaryBlock struct {
	Kind BlockKind
	Code *CodeBlock
	Data *DataBlock
}

// UnknownBlock returns an unclassified block.
func UnknownBlock() BinaryBlock {
	return BinaryBlock{Kind: KindUnknown}
}

// EndOfRomBlock returns the sentinel block at the end of the image.
func EndOfRomBlock() BinaryBlock {
	return BinaryBlock{Kind: KindEndOfRom}
}

// CodeBinaryBlock wraps a code block.
func CodeBinaryBlock(code *CodeBlock) BinaryBlock {
	return BinaryBlock{Kind: KindCode, Code: code}
}

// DataBinaryBlock wraps a data block.
func DataBinaryBlock(data DataBlock) BinaryBlock {
	return BinaryBlock{Kind: KindData, Data: &data}
}

// TypeName returns the block kind as displayed in listings.
func (b BinaryBlock) TypeName() string {
	return b.Kind.String()
}

// Chunk is a block together with the image offset it starts at. A chunk
// extends up to the start of the following chunk.
type Chunk struct {
	Offset mapper.PhysicalAddress
	Block  BinaryBlock
}

// CodeBlock is a basic block: a run of instructions that ends with the first
// instruction that can change the program counter.
type CodeBlock struct {
	Instructions        []Instruction
	Exits               []mapper.LogicalAddress
	Entrances           []mapper.LogicalAddress
	EntryProcessorState Processor
	FinalProcessorState Processor
}

// CodeBlockFromBytes decodes a basic block from the start of data, which
// begins at the given image offset. The processor state is updated by every
// decoded instruction. It returns the offset following the block.
func CodeBlockFromBytes(data []byte, offset mapper.PhysicalAddress, scheme mapper.Scheme,
	processor *Processor) (*CodeBlock, mapper.PhysicalAddress, error) {

	block := &CodeBlock{
		EntryProcessorState: processor.Clone(),
	}

	pos := 0
	for pos < len(data) {
		insOffset := offset + mapper.PhysicalAddress(pos)
		addr, err := mapper.ToLogical(insOffset, scheme)
		if err != nil {
			return nil, insOffset, fmt.Errorf("mapping instruction offset: %w", err)
		}

		ins, err := Decode(data[pos:], insOffset, addr, processor.P)
		if err != nil {
			return nil, insOffset, err
		}

		processor.Execute(ins)
		block.Instructions = append(block.Instructions, ins)
		pos += ins.Size()

		if ins.CanChangeProgramCounter() {
			break
		}
	}

	if len(block.Instructions) == 0 {
		return nil, offset, &DecodeError{Offset: offset, Err: ErrInputEmpty}
	}

	block.FinalProcessorState = processor.Clone()
	return block, offset + mapper.PhysicalAddress(pos), nil
}

// LastInstruction returns the final instruction of the block.
func (c *CodeBlock) LastInstruction() Instruction {
	return c.Instructions[len(c.Instructions)-1]
}

// RecalculateFinalProcessorState replays the instructions starting from the
// entry state.
func (c *CodeBlock) RecalculateFinalProcessorState() {
	p := c.EntryProcessorState.Clone()
	for _, ins := range c.Instructions {
		p.Execute(ins)
	}
	c.FinalProcessorState = p
}

// DataBlock is a ROM area holding data of a known kind.
type DataBlock struct {
	Slice mapper.RomSlice
	Kind  DataKind
}

func (d DataBlock) String() string {
	return fmt.Sprintf("%s %s", d.Kind, d.Slice)
}

// DataKind is the category of a data block.
type DataKind uint8

// Data categories.
const (
	DataUnknownKind DataKind = iota
	AnimatedTileData
	ColorPaletteBackground
	ColorPaletteForeground
	ColorPaletteLevel
	ColorPaletteOverworld
	ColorPaletteOverworldLayer2Indirect1
	ColorPaletteOverworldLayer2Indirect2
	ColorPaletteSprite
	CreditsText
	GfxFile
	GfxListObjects
	GfxListSprites
	InternalRomHeader
	JumpTableLong
	JumpTableShort
	LevelHeaderPrimary
	LevelHeaderSecondaryByteTable
	LevelHeaderSprites
	LevelLayer1Objects
	LevelLayer2Background
	LevelLayer2Objects
	LevelPointersLayer1
	LevelPointersLayer2
	LevelPointersSprite
	LevelSpriteLayer
	MessageText
	OverworldLayer1Tiles
	OverworldLayer2Tiles
	SecondaryEntranceTable
	Tileset
)

var dataKindNames = map[DataKind]string{
	DataUnknownKind:                      "Unknown",
	AnimatedTileData:                     "AnimatedTileData",
	ColorPaletteBackground:               "ColorPaletteBackground",
	ColorPaletteForeground:               "ColorPaletteForeground",
	ColorPaletteLevel:                    "ColorPaletteLevel",
	ColorPaletteOverworld:                "ColorPaletteOverworld",
	ColorPaletteOverworldLayer2Indirect1: "ColorPaletteOverworldLayer2Indirect1",
	ColorPaletteOverworldLayer2Indirect2: "ColorPaletteOverworldLayer2Indirect2",
	ColorPaletteSprite:                   "ColorPaletteSprite",
	CreditsText:                          "CreditsText",
	GfxFile:                              "GfxFile",
	GfxListObjects:                       "GfxListObjects",
	GfxListSprites:                       "GfxListSprites",
	InternalRomHeader:                    "InternalRomHeader",
	JumpTableLong:                        "JumpTableLong",
	JumpTableShort:                       "JumpTableShort",
	LevelHeaderPrimary:                   "LevelHeaderPrimary",
	LevelHeaderSecondaryByteTable:        "LevelHeaderSecondaryByteTable",
	LevelHeaderSprites:                   "LevelHeaderSprites",
	LevelLayer1Objects:                   "LevelLayer1Objects",
	LevelLayer2Background:                "LevelLayer2Background",
	LevelLayer2Objects:                   "LevelLayer2Objects",
	LevelPointersLayer1:                  "LevelPointersLayer1",
	LevelPointersLayer2:                  "LevelPointersLayer2",
	LevelPointersSprite:                  "LevelPointersSprite",
	LevelSpriteLayer:                     "LevelSpriteLayer",
	MessageText:                          "MessageText",
	OverworldLayer1Tiles:                 "OverworldLayer1Tiles",
	OverworldLayer2Tiles:                 "OverworldLayer2Tiles",
	SecondaryEntranceTable:               "SecondaryEntranceTable",
	Tileset:                              "Tileset",
}

func (k DataKind) String() string {
	if name, ok := dataKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("DataKind(%d)", uint8(k))
}
