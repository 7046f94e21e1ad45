package compression

const rle1Terminator = 0xFF

// DecompressRLE1 decompresses an LC-RLE1 stream. Every chunk header holds the
// command in bit 7 (0 direct copy, 1 byte fill) and the length minus one in
// the low 7 bits. The stream ends with two terminator bytes, or a single
// terminator byte at the end of input.
//
// The returned count covers the chunks and the terminator, so callers can
// locate the record that follows inside a larger table. Decoders that stop
// in front of the terminator report a count smaller by the terminator length.
func DecompressRLE1(input []byte) ([]byte, int, error) {
	if len(input) == 0 {
		return nil, 0, &CodecError{Codec: "LC-RLE1", Command: "header", Err: ErrEmptyInput}
	}

	output := make([]byte, 0, len(input)*2)
	pos := 0
	for pos < len(input) {
		header := input[pos]
		if header == rle1Terminator {
			if pos+1 == len(input) {
				return output, pos + 1, nil
			}
			if input[pos+1] == rle1Terminator {
				return output, pos + 2, nil
			}
		}
		chunkStart := pos
		pos++

		length := int(header&0x7F) + 1
		remaining := len(input) - pos

		if header&0x80 == 0 {
			if remaining < length {
				return nil, 0, rle1Error("direct copy", chunkStart, length)
			}
			output = append(output, input[pos:pos+length]...)
			pos += length
			continue
		}

		if remaining < 1 {
			return nil, 0, rle1Error("byte fill", chunkStart, length)
		}
		for range length {
			output = append(output, input[pos])
		}
		pos++
	}

	return output, pos, nil
}

func rle1Error(command string, offset, length int) error {
	return &CodecError{
		Codec:   "LC-RLE1",
		Command: command,
		Offset:  offset,
		Length:  length,
		Err:     ErrTruncated,
	}
}
