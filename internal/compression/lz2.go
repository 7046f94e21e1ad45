package compression

import "fmt"

// LZ2Command is the 3-bit command of an LC-LZ2 chunk header.
type LZ2Command uint8

const (
	DirectCopy     LZ2Command = 0b000 // (L+1) literal bytes follow
	ByteFill       LZ2Command = 0b001 // one byte repeated (L+1) times
	WordFill       LZ2Command = 0b010 // two bytes alternated for (L+1) bytes
	IncreasingFill LZ2Command = 0b011 // one byte, incremented after each write
	Repeat         LZ2Command = 0b100 // copy (L+1) bytes from an offset into the output
	LongLength     LZ2Command = 0b111 // 111CCCLL LLLLLLLL, 10-bit length for command CCC
)

const lz2Terminator = 0xFF

var lz2CommandNames = map[LZ2Command]string{
	DirectCopy:     "direct copy",
	ByteFill:       "byte fill",
	WordFill:       "word fill",
	IncreasingFill: "increasing fill",
	Repeat:         "repeat",
	LongLength:     "long length",
}

func (c LZ2Command) String() string {
	if name, ok := lz2CommandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command %03b", uint8(c))
}

// LZ2Options controls format variations between LC-LZ2 users.
type LZ2Options struct {
	// LittleEndianRepeat reads the repeat offset low byte first.
	LittleEndianRepeat bool
}

// DecompressLZ2 decompresses an LC-LZ2 stream using a big-endian repeat offset.
func DecompressLZ2(input []byte) ([]byte, int, error) {
	return LZ2Options{}.Decompress(input)
}

// Decompress decodes input until the terminator byte or the end of input.
// It returns the decompressed bytes and the number of input bytes consumed,
// including the terminator.
func (o LZ2Options) Decompress(input []byte) ([]byte, int, error) {
	if len(input) == 0 {
		return nil, 0, &CodecError{Codec: "LC-LZ2", Command: "header", Err: ErrEmptyInput}
	}

	output := make([]byte, 0, len(input)*2)
	pos := 0
	for pos < len(input) {
		header := input[pos]
		if header == lz2Terminator {
			return output, pos + 1, nil
		}
		chunkStart := pos
		pos++

		command := LZ2Command(header >> 5)
		var length int
		switch {
		case command == LongLength:
			command = LZ2Command((header >> 2) & 0b111)
			if command == LongLength {
				return nil, 0, lz2Error(LongLength, chunkStart, 0, ErrNestedLongLength)
			}
			if command > Repeat {
				return nil, 0, lz2Error(command, chunkStart, 0, ErrInvalidCommand)
			}
			if pos >= len(input) {
				return nil, 0, lz2Error(LongLength, chunkStart, 0, ErrTruncated)
			}
			length = int(header&0b11)<<8 | int(input[pos])
			pos++

		case command <= Repeat:
			length = int(header & 0x1F)

		default:
			return nil, 0, lz2Error(command, chunkStart, 0, ErrInvalidCommand)
		}
		length++

		var err error
		output, pos, err = o.decodeChunk(command, input, pos, output, length)
		if err != nil {
			return nil, 0, lz2Error(command, chunkStart, length, err)
		}
	}

	return output, pos, nil
}

func (o LZ2Options) decodeChunk(command LZ2Command, input []byte, pos int, output []byte, length int) ([]byte, int, error) {
	remaining := len(input) - pos

	switch command {
	case DirectCopy:
		if remaining < length {
			return nil, 0, ErrTruncated
		}
		output = append(output, input[pos:pos+length]...)
		return output, pos + length, nil

	case ByteFill:
		if remaining < 1 {
			return nil, 0, ErrTruncated
		}
		for range length {
			output = append(output, input[pos])
		}
		return output, pos + 1, nil

	case WordFill:
		if remaining < 2 {
			return nil, 0, ErrTruncated
		}
		for i := range length {
			output = append(output, input[pos+i%2])
		}
		return output, pos + 2, nil

	case IncreasingFill:
		if remaining < 1 {
			return nil, 0, ErrTruncated
		}
		value := input[pos]
		for range length {
			output = append(output, value)
			value++
		}
		return output, pos + 1, nil

	case Repeat:
		if remaining < 2 {
			return nil, 0, ErrTruncated
		}
		start := int(input[pos])<<8 | int(input[pos+1])
		if o.LittleEndianRepeat {
			start = int(input[pos+1])<<8 | int(input[pos])
		}
		if start >= len(output) {
			return nil, 0, fmt.Errorf("%w: reading %d..%d from %d bytes",
				ErrRepeatOutOfBounds, start, start+length, len(output))
		}
		// the source range may overlap the bytes being written
		for i := start; i < start+length; i++ {
			output = append(output, output[i])
		}
		return output, pos + 2, nil

	default:
		return nil, 0, ErrInvalidCommand
	}
}

func lz2Error(command LZ2Command, offset, length int, err error) error {
	return &CodecError{
		Codec:   "LC-LZ2",
		Command: command.String(),
		Offset:  offset,
		Length:  length,
		Err:     err,
	}
}
