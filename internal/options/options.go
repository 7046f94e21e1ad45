// Package options contains the program options.
package options

// Scheme names accepted by the mapping flag.
const (
	SchemeAuto  = "auto"
	SchemeLoROM = "lorom"
	SchemeHiROM = "hirom"
	SchemeNone  = "none"
)

// Parameters contains file path options.
type Parameters struct {
	Input   string `flag:"i" usage:"input ROM file"`
	Output  string `flag:"o" usage:"output listing file (default: stdout)"`
	Symbols string `flag:"sym" usage:"symbol file with '<hex address> <name>' lines"`
	Batch   string `flag:"batch" usage:"batch process files matching pattern (e.g. *.sfc)"`
	Script  string `flag:"script" usage:"Lua script to run instead of the interactive monitor"`
}

// Flags contains behavior options.
type Flags struct {
	Mapping string `flag:"m" usage:"mapping scheme: auto, lorom, hirom, none" default:"auto"`
	Verify  bool   `flag:"verify" usage:"verify the ROM checksum against the internal header"`
	Debug   bool   `flag:"debug" usage:"enable debug logging"`
	Quiet   bool   `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex opcode bytes in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit file offsets in comments"`
	NoCatalog     bool `flag:"nocatalog" usage:"do not annotate the known data catalog"`
	DataBytes     bool `flag:"data" usage:"output the contents of data blocks"`
}

// Program options of the disassembler.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Disassembler defines options to control the analysis and the listing.
type Disassembler struct {
	Catalog        bool // annotate the known data catalog
	DataBytes      bool
	HexComments    bool
	OffsetComments bool
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler() Disassembler {
	return Disassembler{
		Catalog:        true,
		HexComments:    true,
		OffsetComments: true,
	}
}
