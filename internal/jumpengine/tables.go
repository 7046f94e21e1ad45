package jumpengine

// KnownTables lists the pointer tables that directly follow a call to one of
// the dispatch trampolines.
var KnownTables = []TableView{
	// Game mode loaders
	{Begin: 0x009329, Length: 0x30, LongPointers: false},
	{Begin: 0x009B8D, Length: 0x02, LongPointers: false},
	// Tile generators
	{Begin: 0x00BFC9, Length: 0x1B, LongPointers: false},
	// Animation sequences
	{Begin: 0x00C599, Length: 0x0E, LongPointers: false},
	// Sprite statuses
	{Begin: 0x018137, Length: 0x0D, LongPointers: false},
	// Sprite inits
	{Begin: 0x01817D, Length: 0xC9, LongPointers: false},
	// Sprite mains
	{Begin: 0x0185CC, Length: 0xC9, LongPointers: false},
	// Thwomp states
	{Begin: 0x01AEBD, Length: 0x03, LongPointers: false},
	// Magikoopa states
	{Begin: 0x01BDEA, Length: 0x04, LongPointers: false},
	// Power up handlers
	{Begin: 0x01C554, Length: 0x06, LongPointers: false},
	// Morton 1
	{Begin: 0x01CE12, Length: 0x06, LongPointers: false},
	// Morton 2
	{Begin: 0x01CE65, Length: 0x03, LongPointers: false},
	{Begin: 0x01CE72, Length: 0x03, LongPointers: false},
	// Morton 3
	{Begin: 0x01D11D, Length: 0x02, LongPointers: false},
	{Begin: 0x01D762, Length: 0x03, LongPointers: false},
	{Begin: 0x01E2D8, Length: 0x04, LongPointers: false},
	{Begin: 0x01F0CB, Length: 0x04, LongPointers: false},
	// Koopa kids
	{Begin: 0x01FAC7, Length: 0x07, LongPointers: false},
	{Begin: 0x028B98, Length: 0x0C, LongPointers: false},
	// Bounce sprite
	{Begin: 0x029062, Length: 0x08, LongPointers: false},
	{Begin: 0x0296CB, Length: 0x06, LongPointers: false},
	// Extended sprites
	{Begin: 0x029B2B, Length: 0x13, LongPointers: false},
	// Generator sprites
	{Begin: 0x02B00C, Length: 0x0F, LongPointers: false},
	// Shooter sprites
	{Begin: 0x02B3B0, Length: 0x03, LongPointers: false},
	// Urchin pointers (maybe?)
	{Begin: 0x02BD64, Length: 0x02, LongPointers: false},
	// Rip Van Fish
	{Begin: 0x02C02A, Length: 0x02, LongPointers: false},
	// Chuck pointers
	{Begin: 0x02C33C, Length: 0x0D, LongPointers: false},
	// Green peas
	{Begin: 0x02CDF8, Length: 0x03, LongPointers: false},
	// Layer3 smash
	{Begin: 0x02D40F, Length: 0x05, LongPointers: false},
	// Sumo Bro
	{Begin: 0x02DCE1, Length: 0x04, LongPointers: false},
	// Volcano Lotus
	{Begin: 0x02DFC2, Length: 0x03, LongPointers: false},
	// Jumping Piranha
	{Begin: 0x02E136, Length: 0x03, LongPointers: false},
	// Fish
	{Begin: 0x02E136, Length: 0x02, LongPointers: false},
	// Pipe Lakitu
	{Begin: 0x02E963, Length: 0x05, LongPointers: false},
	// Super Koopa
	{Begin: 0x02EB83, Length: 0x03, LongPointers: false},
	// Birds
	{Begin: 0x02F337, Length: 0x02, LongPointers: false},
	{Begin: 0x02F825, Length: 0x09, LongPointers: false},
	// Boo Boss
	{Begin: 0x0380B0, Length: 0x07, LongPointers: false},
	// Swooper (bat)
	{Begin: 0x0388D9, Length: 0x03, LongPointers: false},
	// Bowser Statue
	{Begin: 0x038A4C, Length: 0x04, LongPointers: false},
	// Falling Spike
	{Begin: 0x039248, Length: 0x02, LongPointers: false},
	// Wooden Spike (a.k.a. 'Pencil')
	{Begin: 0x039438, Length: 0x04, LongPointers: false},
	// Fishbone
	{Begin: 0x039726, Length: 0x02, LongPointers: false},
	// Rhino state
	{Begin: 0x039C66, Length: 0x04, LongPointers: false},
	// Blargg
	{Begin: 0x039F4C, Length: 0x05, LongPointers: false},
	// Bowser boss fight
	{Begin: 0x03A32C, Length: 0x0A, LongPointers: false},
	// Princess Peach
	{Begin: 0x03AD27, Length: 0x08, LongPointers: false},
	// Fireworks
	{Begin: 0x03C81C, Length: 0x04, LongPointers: false},
	// Pipe Koopa
	{Begin: 0x03CC29, Length: 0x07, LongPointers: false},
	{Begin: 0x04857D, Length: 0x0D, LongPointers: true},
	{Begin: 0x04DAF8, Length: 0x08, LongPointers: false},
	{Begin: 0x045577, Length: 0x08, LongPointers: false},
	{Begin: 0x04F3EA, Length: 0x08, LongPointers: false},
	// Overworld sprites (?)
	{Begin: 0x04F85F, Length: 0x0B, LongPointers: false},
	{Begin: 0x058823, Length: 0x20, LongPointers: true},
	{Begin: 0x05888C, Length: 0x20, LongPointers: true},
	{Begin: 0x0588F5, Length: 0x20, LongPointers: true},
	{Begin: 0x05895E, Length: 0x20, LongPointers: true},
	// Screen scrolling modes, Layer2 behaviour
	{Begin: 0x05BC87, Length: 0x0F, LongPointers: false},
	{Begin: 0x05BCB8, Length: 0x0F, LongPointers: false},
	// Screen scrolling modes, Layer2 behaviour (data is different from that in table at $05BC87...)
	{Begin: 0x05BCF0, Length: 0x0F, LongPointers: false},
	{Begin: 0x05BD17, Length: 0x0F, LongPointers: false},
	{Begin: 0x05CC0E, Length: 0x04, LongPointers: false},
	{Begin: 0x05DAFF, Length: 0x03, LongPointers: true},
	{Begin: 0x0CA1DE, Length: 0x05, LongPointers: true},
	{Begin: 0x0CC9A5, Length: 0x07, LongPointers: false},
	{Begin: 0x0CC9C0, Length: 0x06, LongPointers: false},
	{Begin: 0x0CC9D6, Length: 0x05, LongPointers: false},
	{Begin: 0x0CC9F0, Length: 0x0A, LongPointers: false},
	{Begin: 0x0CCA1F, Length: 0x08, LongPointers: false},
	{Begin: 0x0CCA49, Length: 0x04, LongPointers: false},
	{Begin: 0x0CCA6E, Length: 0x02, LongPointers: false},
	{Begin: 0x0CCA79, Length: 0x05, LongPointers: false},
	// Loaders for non-tileset-specific objects
	{Begin: 0x0DA10F, Length: 0x100, LongPointers: true},
	// Loaders for objects in given tilesets
	{Begin: 0x0DA41E, Length: 0x0F, LongPointers: true},
	// Loaders for objects in Tileset 0 (Normal or Cloud/Forest)
	{Begin: 0x0DA455, Length: 0x3F, LongPointers: true},
	// Loaders for slope objects
	{Begin: 0x0DAB50, Length: 0x0A, LongPointers: true},
	// Loaders for objects in Tileset 1 (Castle)
	{Begin: 0x0DC19A, Length: 0x3F, LongPointers: true},
	// Loaders for conveyor objects
	{Begin: 0x0DC34A, Length: 0x02, LongPointers: true},
	// Loaders for objects in Tileset 2 (Rope)
	{Begin: 0x0DCD9A, Length: 0x3F, LongPointers: true},
	// Loaders for track objects
	{Begin: 0x0DCF5C, Length: 0x06, LongPointers: true},
	// Loaders for very steep track objects
	{Begin: 0x0DD07A, Length: 0x02, LongPointers: true},
	// Loaders for objects in Tileset 3 (Underground)
	{Begin: 0x0DD99A, Length: 0x3F, LongPointers: true},
	// Loaders for mud/lava slope objects
	{Begin: 0x0DDAFA, Length: 0x04, LongPointers: true},
	// Loaders for very steep slope objects
	{Begin: 0x0DDD93, Length: 0x02, LongPointers: true},
	// Loaders for objects in Tileset 4 (Ghost House or Switch Palace)
	{Begin: 0x0DE89A, Length: 0x3F, LongPointers: true},
}
