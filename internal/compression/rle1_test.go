package compression

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecompressRLE1(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		want     []byte
		consumed int
	}{
		{
			name:     "record followed by unrelated bytes",
			input:    []byte{0x02, 1, 2, 3, 0x81, 9, 0xFF, 0xFF, 0xAA, 0xBB, 0xCC},
			want:     []byte{1, 2, 3, 9, 9},
			consumed: 8,
		},
		{
			name:     "single terminator at end of input",
			input:    []byte{0x80, 5, 0xFF},
			want:     []byte{5},
			consumed: 3,
		},
		{
			name:     "lone 0xFF header is a long byte fill",
			input:    []byte{0xFF, 0x01, 0xFF, 0xFF},
			want:     bytes.Repeat([]byte{0x01}, 128),
			consumed: 4,
		},
		{
			name:     "input ends without terminator",
			input:    []byte{0x00, 0x42},
			want:     []byte{0x42},
			consumed: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, consumed, err := DecompressRLE1(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.consumed, consumed)
		})
	}
}

func TestDecompressRLE1Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantErr error
		command string
	}{
		{name: "empty input", input: nil, wantErr: ErrEmptyInput, command: "header"},
		{name: "direct copy past input", input: []byte{0x05, 1, 2}, wantErr: ErrTruncated, command: "direct copy"},
		{name: "byte fill without value", input: []byte{0x00, 7, 0x83}, wantErr: ErrTruncated, command: "byte fill"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecompressRLE1(tt.input)
			assert.True(t, errors.Is(err, tt.wantErr))

			var codecErr *CodecError
			assert.True(t, errors.As(err, &codecErr))
			assert.Equal(t, tt.command, codecErr.Command)
		})
	}
}
