package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/SMW-Editor/smw-editor-sub001/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags_DisasmOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Disassembler
	}{
		{
			name: "default flags",
			args: []string{"prog", "test.sfc"},
			want: options.Disassembler{Catalog: true, HexComments: true, OffsetComments: true},
		},
		{
			name: "nohexcomments flag",
			args: []string{"prog", "-nohexcomments", "test.sfc"},
			want: options.Disassembler{Catalog: true, OffsetComments: true},
		},
		{
			name: "nooffsets flag",
			args: []string{"prog", "-nooffsets", "test.sfc"},
			want: options.Disassembler{Catalog: true, HexComments: true},
		},
		{
			name: "data flag",
			args: []string{"prog", "-data", "test.sfc"},
			want: options.Disassembler{Catalog: true, DataBytes: true, HexComments: true, OffsetComments: true},
		},
		{
			name: "all disasm flags",
			args: []string{"prog", "-nohexcomments", "-nooffsets", "-nocatalog", "-data", "test.sfc"},
			want: options.Disassembler{DataBytes: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			opts, got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "test.sfc", opts.Input)
			assert.Equal(t, options.SchemeAuto, opts.Mapping)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantUsage bool
	}{
		{"missing input", []string{"prog"}, true},
		{"flag after input", []string{"prog", "test.sfc", "-q"}, true},
		{"unknown scheme", []string{"prog", "-m", "exhirom", "test.sfc"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			_, _, err := ParseFlags()
			assert.Error(t, err)
			var usageErr *UsageError
			assert.Equal(t, tt.wantUsage, errors.As(err, &usageErr))
		})
	}
}

func TestParseFlags_Batch(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"prog", "-batch", "*.sfc", "-m", "LoROM"}

	opts, _, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "*.sfc", opts.Batch)
	assert.Equal(t, "", opts.Input)
	assert.Equal(t, options.SchemeLoROM, opts.Mapping)
}

func TestParseEmulatorFlags(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"prog", "-sym", "smw.sym", "-script", "run.lua", "-m", "a", "smw.sfc"}

	opts, err := ParseEmulatorFlags()
	assert.NoError(t, err)
	assert.Equal(t, "smw.sfc", opts.Input)
	assert.Equal(t, "smw.sym", opts.Symbols)
	assert.Equal(t, "run.lua", opts.Script)
	assert.Equal(t, options.SchemeLoROM, opts.Mapping)
}

func TestNormalizeOptions(t *testing.T) {
	tests := []struct {
		mapping  string
		expected string
		wantErr  bool
	}{
		{"", options.SchemeAuto, false},
		{"AUTO", options.SchemeAuto, false},
		{" hirom ", options.SchemeHiROM, false},
		{"b", options.SchemeHiROM, false},
		{"none", options.SchemeNone, false},
		{"sa1", "sa1", true},
	}

	for _, tt := range tests {
		t.Run(tt.mapping, func(t *testing.T) {
			opts := options.Program{Flags: options.Flags{Mapping: tt.mapping}}
			err := normalizeOptions(&opts)
			if tt.wantErr {
				assert.ErrorContains(t, err, "unsupported mapping scheme")
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, opts.Mapping)
		})
	}
}
