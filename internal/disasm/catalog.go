package disasm

import "github.com/SMW-Editor/smw-editor-sub001/internal/mapper"

// KnownData is the catalog of data regions with a fixed location. Regions
// whose size depends on their contents are listed with an infinite size.
var KnownData = []DataBlock{
	{Slice: mapper.NewSlice(0x00A92B, 104), Kind: GfxListObjects},
	{Slice: mapper.NewSlice(0x00AD1E, 7), Kind: ColorPaletteOverworldLayer2Indirect1},
	{Slice: mapper.NewSlice(0x00B170, 0x20), Kind: ColorPaletteLevel},    // layer 3
	{Slice: mapper.NewSlice(0x00B250, 120), Kind: ColorPaletteLevel},     // misc
	{Slice: mapper.NewSlice(0x00B2C8, 80), Kind: ColorPaletteLevel},      // players
	{Slice: mapper.NewSlice(0x00B3D8, 336), Kind: ColorPaletteOverworld}, // layer 2 normal
	{Slice: mapper.NewSlice(0x00B528, 84), Kind: ColorPaletteLevel},      // overworld layer 1
	{Slice: mapper.NewSlice(0x00B58A, 98), Kind: ColorPaletteLevel},      // overworld sprites
	{Slice: mapper.NewSlice(0x00B5EC, 32), Kind: ColorPaletteLevel},      // overworld layer 3
	{Slice: mapper.NewSlice(0x00B60C, 16), Kind: ColorPaletteLevel},      // animated color
	{Slice: mapper.NewSlice(0x00B674, 42), Kind: ColorPaletteLevel},      // berries
	{Slice: mapper.NewSlice(0x00B732, 336), Kind: ColorPaletteOverworld}, // layer 2 special
	{Slice: mapper.NewSlice(0x00FFC0, 64), Kind: InternalRomHeader},
	{Slice: mapper.NewSlice(0x05B93B, 48), Kind: AnimatedTileData},  // destinations
	{Slice: mapper.NewSlice(0x05B96B, 46), Kind: AnimatedTileData},  // behaviours
	{Slice: mapper.NewSlice(0x05B999, 416), Kind: AnimatedTileData}, // sources
	{Slice: mapper.NewSlice(0x05E000, 0x600), Kind: LevelPointersLayer1},
	{Slice: mapper.NewSlice(0x05E600, 0x600), Kind: LevelPointersLayer2},
	{Slice: mapper.NewSlice(0x05EC00, 0x400), Kind: LevelPointersSprite},
	{Slice: mapper.NewSlice(0x05F000, 512).ToInfinite(), Kind: LevelHeaderSecondaryByteTable},
	{Slice: mapper.NewSlice(0x05F800, 512), Kind: SecondaryEntranceTable},
	{Slice: mapper.NewSlice(0x08D9F9, 2104), Kind: GfxFile},  // GFX00
	{Slice: mapper.NewSlice(0x08E231, 2698), Kind: GfxFile},  // GFX01
	{Slice: mapper.NewSlice(0x08ECBB, 2199), Kind: GfxFile},  // GFX02
	{Slice: mapper.NewSlice(0x08F552, 2603), Kind: GfxFile},  // GFX03
	{Slice: mapper.NewSlice(0x08FF7D, 2534), Kind: GfxFile},  // GFX04
	{Slice: mapper.NewSlice(0x098963, 2569), Kind: GfxFile},  // GFX05
	{Slice: mapper.NewSlice(0x09936C, 2468), Kind: GfxFile},  // GFX06
	{Slice: mapper.NewSlice(0x099D10, 2375), Kind: GfxFile},  // GFX07
	{Slice: mapper.NewSlice(0x09A657, 2378), Kind: GfxFile},  // GFX08
	{Slice: mapper.NewSlice(0x09AFA1, 2676), Kind: GfxFile},  // GFX09
	{Slice: mapper.NewSlice(0x09BA15, 2439), Kind: GfxFile},  // GFX0A
	{Slice: mapper.NewSlice(0x09C39C, 2503), Kind: GfxFile},  // GFX0B
	{Slice: mapper.NewSlice(0x09CD63, 2159), Kind: GfxFile},  // GFX0C
	{Slice: mapper.NewSlice(0x09D5D2, 2041), Kind: GfxFile},  // GFX0D
	{Slice: mapper.NewSlice(0x09DDCB, 2330), Kind: GfxFile},  // GFX0E
	{Slice: mapper.NewSlice(0x09E6E5, 2105), Kind: GfxFile},  // GFX0F
	{Slice: mapper.NewSlice(0x09EF1E, 2193), Kind: GfxFile},  // GFX10
	{Slice: mapper.NewSlice(0x09F7AF, 2062), Kind: GfxFile},  // GFX11
	{Slice: mapper.NewSlice(0x09FFBD, 2387), Kind: GfxFile},  // GFX12
	{Slice: mapper.NewSlice(0x0A8910, 2616), Kind: GfxFile},  // GFX13
	{Slice: mapper.NewSlice(0x0A9348, 1952), Kind: GfxFile},  // GFX14
	{Slice: mapper.NewSlice(0x0A9AE8, 2188), Kind: GfxFile},  // GFX15
	{Slice: mapper.NewSlice(0x0AA374, 1600), Kind: GfxFile},  // GFX16
	{Slice: mapper.NewSlice(0x0AA9B4, 2297), Kind: GfxFile},  // GFX17
	{Slice: mapper.NewSlice(0x0AB2AD, 2359), Kind: GfxFile},  // GFX18
	{Slice: mapper.NewSlice(0x0ABBE4, 1948), Kind: GfxFile},  // GFX19
	{Slice: mapper.NewSlice(0x0AC380, 2278), Kind: GfxFile},  // GFX1A
	{Slice: mapper.NewSlice(0x0ACC66, 2072), Kind: GfxFile},  // GFX1B
	{Slice: mapper.NewSlice(0x0AD47E, 2058), Kind: GfxFile},  // GFX1C
	{Slice: mapper.NewSlice(0x0ADC88, 2551), Kind: GfxFile},  // GFX1D
	{Slice: mapper.NewSlice(0x0AE67F, 1988), Kind: GfxFile},  // GFX1E
	{Slice: mapper.NewSlice(0x0AEE43, 2142), Kind: GfxFile},  // GFX1F
	{Slice: mapper.NewSlice(0x0AF6A1, 2244), Kind: GfxFile},  // GFX20
	{Slice: mapper.NewSlice(0x0AFF65, 2408), Kind: GfxFile},  // GFX21
	{Slice: mapper.NewSlice(0x0B88CD, 2301), Kind: GfxFile},  // GFX22
	{Slice: mapper.NewSlice(0x0B91CA, 2331), Kind: GfxFile},  // GFX23
	{Slice: mapper.NewSlice(0x0B9AE5, 2256), Kind: GfxFile},  // GFX24
	{Slice: mapper.NewSlice(0x0BA3B5, 2668), Kind: GfxFile},  // GFX25
	{Slice: mapper.NewSlice(0x0BAE21, 2339), Kind: GfxFile},  // GFX26
	{Slice: mapper.NewSlice(0x0BB744, 2344), Kind: GfxFile},  // GFX27
	{Slice: mapper.NewSlice(0x0BC06C, 1591), Kind: GfxFile},  // GFX28
	{Slice: mapper.NewSlice(0x0BC6A3, 1240), Kind: GfxFile},  // GFX29
	{Slice: mapper.NewSlice(0x0BCB7B, 1397), Kind: GfxFile},  // GFX2A
	{Slice: mapper.NewSlice(0x0BD0F0, 1737), Kind: GfxFile},  // GFX2B
	{Slice: mapper.NewSlice(0x0BD7B9, 2125), Kind: GfxFile},  // GFX2C
	{Slice: mapper.NewSlice(0x0BE006, 2352), Kind: GfxFile},  // GFX2D
	{Slice: mapper.NewSlice(0x0BE936, 2127), Kind: GfxFile},  // GFX2E
	{Slice: mapper.NewSlice(0x0BF185, 566), Kind: GfxFile},   // GFX2F
	{Slice: mapper.NewSlice(0x0BF3BB, 1093), Kind: GfxFile},  // GFX30
	{Slice: mapper.NewSlice(0x0BF800, 1293), Kind: GfxFile},  // GFX31
	{Slice: mapper.NewSlice(0x088000, 16320), Kind: GfxFile}, // GFX32
	{Slice: mapper.NewSlice(0x08BFC0, 6713), Kind: GfxFile},  // GFX33
}
