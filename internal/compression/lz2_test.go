package compression

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecompressLZ2(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		want     []byte
		consumed int
	}{
		{
			name:     "byte fill of length one",
			input:    []byte{0x20, 0xAB},
			want:     []byte{0xAB},
			consumed: 2,
		},
		{
			name:     "byte fill of length two",
			input:    []byte{0x21, 0xAB, 0xFF},
			want:     []byte{0xAB, 0xAB},
			consumed: 3,
		},
		{
			name:     "terminator only",
			input:    []byte{0xFF},
			want:     []byte{},
			consumed: 1,
		},
		{
			name:     "terminator stops before trailing data",
			input:    []byte{0x00, 0x42, 0xFF, 0x01, 0x02},
			want:     []byte{0x42},
			consumed: 3,
		},
		{
			name:     "direct copy",
			input:    []byte{0x02, 1, 2, 3, 0xFF},
			want:     []byte{1, 2, 3},
			consumed: 5,
		},
		{
			name:     "word fill",
			input:    []byte{0x44, 1, 2, 0xFF},
			want:     []byte{1, 2, 1, 2, 1},
			consumed: 4,
		},
		{
			name:     "increasing fill wraps",
			input:    []byte{0x62, 0xFE, 0xFF},
			want:     []byte{0xFE, 0xFF, 0x00},
			consumed: 3,
		},
		{
			name:     "overlapping repeat",
			input:    []byte{(0b011 << 5) | 3, 1, (0b100 << 5) | 6, 0, 1},
			want:     []byte{1, 2, 3, 4, 2, 3, 4, 2, 3, 4, 2},
			consumed: 5,
		},
		{
			name:     "long length repeat",
			input:    []byte{(0b011 << 5) | 3, 1, (0b111 << 5) | (0b100 << 2), 1, 0, 1},
			want:     []byte{1, 2, 3, 4, 2, 3},
			consumed: 6,
		},
		{
			name:     "long length byte fill",
			input:    []byte{(0b111 << 5) | (0b001 << 2) | 0b01, 0x00, 0x77, 0xFF},
			want:     bytes.Repeat([]byte{0x77}, 0x101),
			consumed: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, consumed, err := DecompressLZ2(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.consumed, consumed)
		})
	}
}

func TestDecompressLZ2LittleEndianRepeat(t *testing.T) {
	input := []byte{(0b011 << 5) | 3, 1, (0b100 << 5) | 1, 2, 0, 0xFF}

	got, _, err := LZ2Options{LittleEndianRepeat: true}.Decompress(input)
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 3, 4}, got)

	// the same offset bytes read big-endian point far outside the output
	_, _, err = DecompressLZ2(input)
	assert.True(t, errors.Is(err, ErrRepeatOutOfBounds))
}

func TestDecompressLZ2OverlapMatchesReference(t *testing.T) {
	input := []byte{
		0x01, 0x10, 0x20, // direct copy 2 bytes
		(0b100 << 5) | 0x1F, 0x00, 0x00, // repeat 32 bytes from offset 0
		(0b100 << 5) | 0x0A, 0x00, 0x05, // repeat 11 bytes from offset 5
		(0b001 << 5) | 0x02, 0x99, // byte fill
		(0b100 << 5) | 0x07, 0x00, 0x2C, // repeat starting inside the fill
		0xFF,
	}

	got, consumed, err := DecompressLZ2(input)
	assert.NoError(t, err)
	assert.Equal(t, len(input), consumed)
	assert.Equal(t, referenceLZ2(input), got)
}

func TestDecompressLZ2Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantErr error
		command string
	}{
		{name: "empty input", input: []byte{}, wantErr: ErrEmptyInput, command: "header"},
		{name: "unknown short command", input: []byte{0xA0, 0x00}, wantErr: ErrInvalidCommand, command: "command 101"},
		{name: "unknown long command", input: []byte{(0b111 << 5) | (0b110 << 2), 0x00}, wantErr: ErrInvalidCommand, command: "command 110"},
		{name: "nested long length", input: []byte{0xFC, 0x00, 0x00}, wantErr: ErrNestedLongLength, command: "long length"},
		{name: "long length without second byte", input: []byte{0xE0}, wantErr: ErrTruncated, command: "long length"},
		{name: "direct copy past input", input: []byte{0x03, 1, 2}, wantErr: ErrTruncated, command: "direct copy"},
		{name: "byte fill without value", input: []byte{0x25}, wantErr: ErrTruncated, command: "byte fill"},
		{name: "word fill with one value", input: []byte{0x45, 1}, wantErr: ErrTruncated, command: "word fill"},
		{name: "increasing fill without value", input: []byte{0x65}, wantErr: ErrTruncated, command: "increasing fill"},
		{name: "repeat without offset", input: []byte{0x00, 1, 0x80, 0}, wantErr: ErrTruncated, command: "repeat"},
		{name: "repeat before any output", input: []byte{0x80, 0, 0}, wantErr: ErrRepeatOutOfBounds, command: "repeat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecompressLZ2(tt.input)
			assert.True(t, errors.Is(err, tt.wantErr))

			var codecErr *CodecError
			assert.True(t, errors.As(err, &codecErr))
			assert.Equal(t, "LC-LZ2", codecErr.Codec)
			assert.Equal(t, tt.command, codecErr.Command)
		})
	}
}

// referenceLZ2 is a direct single-byte-at-a-time decoder covering the commands
// used by the overlap test.
func referenceLZ2(input []byte) []byte {
	var out []byte
	for i := 0; i < len(input) && input[i] != 0xFF; {
		cmd, n := input[i]>>5, int(input[i]&0x1F)+1
		i++
		switch cmd {
		case 0:
			for k := 0; k < n; k++ {
				out = append(out, input[i+k])
			}
			i += n
		case 1:
			for k := 0; k < n; k++ {
				out = append(out, input[i])
			}
			i++
		case 4:
			src := int(input[i])<<8 | int(input[i+1])
			for k := 0; k < n; k++ {
				out = append(out, out[src+k])
			}
			i += 2
		}
	}
	return out
}
