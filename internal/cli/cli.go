// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/SMW-Editor/smw-editor-sub001/internal/options"
)

var validSchemes = []string{options.SchemeAuto, options.SchemeLoROM, options.SchemeHiROM, options.SchemeNone}

// ParseFlags parses the disassembler command line flags and returns program and disassembler options
func ParseFlags() (options.Program, options.Disassembler, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)
	readDisasmOptionFlags(flags, &opts)
	disasmOptions := options.NewDisassembler()

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "") {
		return opts, disasmOptions, &UsageError{flags: flags, command: "smwdisasm", argument: "<file to disassemble>"}
	}

	if err := validateArgs(args); err != nil {
		err.flags, err.command, err.argument = flags, "smwdisasm", "<file to disassemble>"
		return opts, disasmOptions, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, disasmOptions, err
	}

	if opts.Batch == "" {
		opts.Input = args[0]
	}
	applyDisasmOptions(opts, &disasmOptions)

	return opts, disasmOptions, nil
}

// ParseEmulatorFlags parses the emulator command line flags.
func ParseEmulatorFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	flags.StringVar(&opts.Symbols, "sym", "", "symbol file with '<hex address> <name>' lines")
	flags.StringVar(&opts.Script, "script", "", "Lua script to run instead of the interactive monitor")
	flags.StringVar(&opts.Mapping, "m", options.SchemeAuto, "mapping scheme (auto/lorom/hirom/none)")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags, command: "smwemu", argument: "<rom file>"}
	}

	if err := validateArgs(args); err != nil {
		err.flags, err.command, err.argument = flags, "smwemu", "<rom file>"
		return opts, err
	}
	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags    *flag.FlagSet
	command  string
	argument string
	msg      string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: %s [options] %s\n\n", e.command, e.argument)
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) *UsageError {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after input file, please pass the input file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Mapping = strings.ToLower(strings.TrimSpace(opts.Mapping))
	switch opts.Mapping {
	case "":
		opts.Mapping = options.SchemeAuto
	case "a":
		opts.Mapping = options.SchemeLoROM
	case "b":
		opts.Mapping = options.SchemeHiROM
	}

	if slices.Contains(validSchemes, opts.Mapping) {
		return nil
	}
	return fmt.Errorf("unsupported mapping scheme: %s. Valid options: %s",
		opts.Mapping, strings.Join(validSchemes, ", "))
}

// applyDisasmOptions applies the inverse output flags to the disassembler options.
func applyDisasmOptions(opts options.Program, disasmOptions *options.Disassembler) {
	disasmOptions.HexComments = !opts.NoHexComments
	disasmOptions.OffsetComments = !opts.NoOffsets
	disasmOptions.Catalog = !opts.NoCatalog
	disasmOptions.DataBytes = opts.DataBytes
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Output, "o", "", "name of the output listing file, printed on console if no name given")
	flags.StringVar(&opts.Symbols, "sym", "", "symbol file with '<hex address> <name>' lines used to label the listing")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically .txt file naming, for example *.sfc")
	flags.StringVar(&opts.Mapping, "m", options.SchemeAuto, "mapping scheme (auto/lorom/hirom/none), auto detects it from the internal header")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Verify, "verify", false, "verify the ROM checksum against the internal header")
}

func readDisasmOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output offsets in comments")
	flags.BoolVar(&opts.NoCatalog, "nocatalog", false, "do not annotate the known data catalog")
	flags.BoolVar(&opts.DataBytes, "data", false, "output the contents of data blocks")
}
