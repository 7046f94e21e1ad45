// Package writer writes the textual block listing of a disassembly.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/SMW-Editor/smw-editor-sub001/internal/disasm"
	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/SMW-Editor/smw-editor-sub001/internal/rom"
	"github.com/SMW-Editor/smw-editor-sub001/internal/symbols"
)

const dataBytesPerLine = 16

type lineWriterFunc func(line string, byteCount int) error

// Writer writes the block listing of a disassembly.
type Writer struct {
	dis     *disasm.Disassembly
	symbols *symbols.Table
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	HexComments    bool // raw instruction bytes
	OffsetComments bool // file offsets of instructions and data lines
	DataBytes      bool // contents of data blocks
}

// New creates a new writer. The symbol table may be nil.
func New(dis *disasm.Disassembly, table *symbols.Table, writer io.Writer, options Options) *Writer {
	if table == nil {
		table = symbols.New()
	}
	return &Writer{
		dis:     dis,
		symbols: table,
		options: options,
		writer:  writer,
	}
}

// Write writes the header comments, all chunks and the error log.
func (w Writer) Write() error {
	if err := w.WriteCommentHeader(); err != nil {
		return err
	}

	chunks := w.dis.Chunks()
	for i := range len(chunks) - 1 {
		if err := w.writeChunk(chunks[i], w.dis.ChunkEnd(i)); err != nil {
			return err
		}
	}
	return w.writeErrors()
}

// WriteCommentHeader writes the internal header information as comments.
func (w Writer) WriteCommentHeader() error {
	r := w.dis.Rom()
	if _, err := fmt.Fprintf(w.writer, "; ROM size: $%06X, mapping: %s, checksum: $%04X\n",
		r.Len(), r.Scheme(), r.Checksum()); err != nil {
		return fmt.Errorf("writing rom info: %w", err)
	}
	if r.HasCopierHeader() {
		if _, err := fmt.Fprintf(w.writer, "; copier header of $%03X bytes stripped\n", rom.CopierHeaderSize); err != nil {
			return fmt.Errorf("writing copier header info: %w", err)
		}
	}

	header, err := r.Header()
	if err == nil && header.IsValid() {
		if _, err := fmt.Fprintf(w.writer, "; title: %s, map mode: %s, region: %s, version: %d\n",
			header.Name, header.MapMode, header.Region, header.Version); err != nil {
			return fmt.Errorf("writing header info: %w", err)
		}
		if _, err := fmt.Fprintf(w.writer, "; header checksum: $%04X, complement: $%04X\n",
			header.Checksum, header.Complement); err != nil {
			return fmt.Errorf("writing header checksum: %w", err)
		}
	}

	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

func (w Writer) writeChunk(chunk disasm.Chunk, end mapper.PhysicalAddress) error {
	if _, err := fmt.Fprintf(w.writer, " #### CHUNK %s .. %s\n", chunk.Offset, end); err != nil {
		return fmt.Errorf("writing chunk header: %w", err)
	}

	block := chunk.Block
	switch block.Kind {
	case disasm.KindCode:
		return w.writeCode(block.Code)
	case disasm.KindData:
		return w.writeData(*block.Data, chunk.Offset, end)
	default:
		if _, err := fmt.Fprintf(w.writer, "# %s\n", block.TypeName()); err != nil {
			return fmt.Errorf("writing block marker: %w", err)
		}
	}
	return nil
}

func (w Writer) writeCode(code *disasm.CodeBlock) error {
	for _, exit := range code.Exits {
		if _, err := fmt.Fprintf(w.writer, "# Exit: %s\n", w.addressName(exit)); err != nil {
			return fmt.Errorf("writing exit: %w", err)
		}
	}

	data := w.dis.Rom().Bytes()
	for _, ins := range code.Instructions {
		if err := w.writeLabel(ins.Address); err != nil {
			return err
		}
		if err := w.writeInstruction(ins, data); err != nil {
			return err
		}
	}
	return nil
}

func (w Writer) writeLabel(addr mapper.LogicalAddress) error {
	name, ok := w.symbols.Name(addr)
	if !ok {
		return nil
	}
	w.symbols.MarkUsed(addr)
	if _, err := fmt.Fprintf(w.writer, "%s:\n", name); err != nil {
		return fmt.Errorf("writing label: %w", err)
	}
	return nil
}

func (w Writer) writeInstruction(ins disasm.Instruction, data []byte) error {
	code := ins.StringWithFlags()
	if ins.CanChangeProgramCounter() && ins.Opcode.Mode.IsImmediateJumpTarget() {
		if name, ok := w.symbols.Name(ins.Target()); ok {
			code = fmt.Sprintf("%-24s ; %s", code, name)
		}
	}

	line := &strings.Builder{}
	fmt.Fprintf(line, "%s   %-32s", ins.Address, code)

	var comments []string
	if w.options.OffsetComments {
		comments = append(comments, ins.Offset.String())
	}
	if w.options.HexComments {
		raw := data[ins.Offset : int(ins.Offset)+ins.Size()]
		comments = append(comments, fmt.Sprintf("% x", raw))
	}
	if len(comments) > 0 {
		fmt.Fprintf(line, " # %s", strings.Join(comments, "  "))
	}

	if _, err := fmt.Fprintln(w.writer, strings.TrimRight(line.String(), " ")); err != nil {
		return fmt.Errorf("writing instruction: %w", err)
	}
	return nil
}

func (w Writer) writeData(block disasm.DataBlock, start, end mapper.PhysicalAddress) error {
	if _, err := fmt.Fprintf(w.writer, "# Data %s\n", block); err != nil {
		return fmt.Errorf("writing data marker: %w", err)
	}
	if !w.options.DataBytes {
		return nil
	}

	data := w.dis.Rom().Bytes()[start:end]
	offset := block.Slice.Begin
	lineWriter := func(line string, byteCount int) error {
		if w.options.OffsetComments {
			line = fmt.Sprintf("%-80s ; %s", line, offset)
		}
		if _, err := fmt.Fprintln(w.writer, line); err != nil {
			return fmt.Errorf("writing data line: %w", err)
		}
		offset += mapper.LogicalAddress(byteCount)
		return nil
	}
	return w.BundleDataWrites(data, lineWriter)
}

// BundleDataWrites bundles writes of data bytes to print dataBytesPerLine bytes per line.
func (w Writer) BundleDataWrites(data []byte, lineWriter lineWriterFunc) error {
	remaining := len(data)
	for i := 0; remaining > 0; {
		toWrite := min(remaining, dataBytesPerLine)

		buf := &strings.Builder{}
		buf.WriteString("  .byte ")
		for j := range toWrite {
			if _, err := fmt.Fprintf(buf, "$%02X, ", data[i+j]); err != nil {
				return fmt.Errorf("writing data byte: %w", err)
			}
		}

		line := strings.TrimRight(buf.String(), ", ")

		if lineWriter != nil {
			if err := lineWriter(line, toWrite); err != nil {
				return fmt.Errorf("writing data line using custom writer: %w", err)
			}
		} else {
			if _, err := fmt.Fprintf(w.writer, "%s\n", line); err != nil {
				return fmt.Errorf("writing data line: %w", err)
			}
		}

		i += toWrite
		remaining -= toWrite
	}

	return nil
}

func (w Writer) writeErrors() error {
	errs := w.dis.Errors()
	if len(errs) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w.writer, "\n; %d analysis errors\n", len(errs)); err != nil {
		return fmt.Errorf("writing error count: %w", err)
	}
	for _, rangeErr := range errs {
		if _, err := fmt.Fprintf(w.writer, "; %s\n", rangeErr.Error()); err != nil {
			return fmt.Errorf("writing error: %w", err)
		}
	}
	return nil
}

func (w Writer) addressName(addr mapper.LogicalAddress) string {
	if name, ok := w.symbols.Name(addr); ok {
		return fmt.Sprintf("%s (%s)", addr, name)
	}
	return addr.String()
}
