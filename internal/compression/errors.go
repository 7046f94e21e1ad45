// Package compression implements the two decompressors used for graphics and
// level data in the cartridge: LC-LZ2 and LC-RLE1.
package compression

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput        = errors.New("empty input")
	ErrTruncated         = errors.New("input truncated")
	ErrInvalidCommand    = errors.New("invalid command")
	ErrNestedLongLength  = errors.New("nested long length command")
	ErrRepeatOutOfBounds = errors.New("repeat range out of bounds")
)

// CodecError describes a failed chunk of a compressed stream.
type CodecError struct {
	Codec   string // LC-LZ2 or LC-RLE1
	Command string // name of the command being decoded
	Offset  int    // input offset of the chunk header
	Length  int    // chunk length, 0 if not known yet
	Err     error
}

func (e *CodecError) Error() string {
	msg := fmt.Sprintf("%s: %s at input offset %d", e.Codec, e.Command, e.Offset)
	if e.Length > 0 {
		msg += fmt.Sprintf(" (length %d)", e.Length)
	}
	return msg + ": " + e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}
