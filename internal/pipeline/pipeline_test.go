package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/SMW-Editor/smw-editor-sub001/internal/disasm"
	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/SMW-Editor/smw-editor-sub001/internal/options"
	"github.com/SMW-Editor/smw-editor-sub001/internal/rom"
	"github.com/SMW-Editor/smw-editor-sub001/internal/symbols"
	"github.com/SMW-Editor/smw-editor-sub001/internal/verification"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// createTestImage returns a LoROM image with a valid internal header, a
// reset routine calling a subroutine and an NMI handler.
func createTestImage() []byte {
	data := make([]byte, 0x10000)
	copy(data, []byte{
		0x78,             // $8000 SEI
		0x18,             // $8001 CLC
		0xFB,             // $8002 XCE
		0x20, 0x10, 0x80, // $8003 JSR $8010
		0x80, 0xFE, //       $8006 BRA $8006
	})
	data[0x10] = 0x60 // $8010 RTS
	data[0x20] = 0x40 // $8020 RTI

	h := data[rom.HeaderOffsetLoROM:]
	copy(h, "PIPELINE TEST        ")
	h[0x15] = 0x20
	h[0x2A], h[0x2B] = 0x20, 0x80 // native NMI
	h[0x3C], h[0x3D] = 0x00, 0x80 // emulation RESET

	// a checksum and complement pair always adds $1FE to the sum
	h[0x1C], h[0x1D] = 0xFF, 0xFF
	r, _ := rom.New(data, mapper.LoROM)
	sum := r.Checksum()
	h[0x1C], h[0x1D] = byte(^sum), byte(^sum>>8)
	h[0x1E], h[0x1F] = byte(sum), byte(sum>>8)
	return data
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

//nolint:funlen // test functions can be long
func TestExecute(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	romFile := createTempFile(t, "test.sfc", createTestImage())
	symFile := createTempFile(t, "test.sym", []byte("008010 InitSub\n008020 NMIHandler\nbad line\n"))

	t.Run("execute pipeline successfully", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: romFile, Symbols: symFile},
			Flags:      options.Flags{Mapping: options.SchemeAuto, Verify: true, Quiet: true},
		}

		var buf bytes.Buffer
		dis, err := p.Execute(context.Background(), opts, options.NewDisassembler(), &buf)
		assert.NoError(t, err)
		assert.NotNil(t, dis)
		assert.Equal(t, mapper.LoROM, dis.Rom().Scheme())

		out := buf.String()
		assert.Contains(t, out, "; title: PIPELINE TEST")
		assert.Contains(t, out, "[MX] SEI")
		assert.Contains(t, out, "InitSub:\n")
		assert.Contains(t, out, "NMIHandler:\n")
		assert.Contains(t, out, "# Data InternalRomHeader $00FFC0..$010000\n")

		chunk, err := dis.BlockAt(0x008020)
		assert.NoError(t, err)
		assert.Equal(t, disasm.KindCode, chunk.Block.Kind)
	})

	t.Run("catalog disabled", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: romFile},
			Flags:      options.Flags{Mapping: options.SchemeLoROM, Quiet: true},
		}
		disasmOpts := options.NewDisassembler()
		disasmOpts.Catalog = false

		var buf bytes.Buffer
		dis, err := p.Execute(context.Background(), opts, disasmOpts, &buf)
		assert.NoError(t, err)
		assert.Len(t, dis.DataBlocks(), 0)
	})

	t.Run("execute with non-existent file", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: "/nonexistent/file.sfc"},
		}

		var buf bytes.Buffer
		_, err := p.Execute(context.Background(), opts, options.NewDisassembler(), &buf)
		assert.Error(t, err)
	})

	t.Run("execute with invalid mapping", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: romFile},
			Flags:      options.Flags{Mapping: "exhirom"},
		}

		var buf bytes.Buffer
		_, err := p.Execute(context.Background(), opts, options.NewDisassembler(), &buf)
		assert.Error(t, err)
	})
}

func TestExecuteWithRomVerifyFailure(t *testing.T) {
	data := createTestImage()
	data[0x100]++
	r, err := rom.New(data, mapper.LoROM)
	assert.NoError(t, err)

	p := New(log.NewTestLogger(t))
	opts := options.Program{Flags: options.Flags{Verify: true, Quiet: true}}

	var buf bytes.Buffer
	dis, err := p.ExecuteWithRom(context.Background(), r, symbols.New(), opts, options.NewDisassembler(), &buf)
	assert.True(t, errors.Is(err, verification.ErrChecksumMismatch))
	assert.NotNil(t, dis)
}

func TestExecuteWithRomCancelled(t *testing.T) {
	r, err := rom.New(createTestImage(), mapper.LoROM)
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(log.NewTestLogger(t))
	var buf bytes.Buffer
	_, err = p.ExecuteWithRom(ctx, r, symbols.New(), options.Program{}, options.NewDisassembler(), &buf)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, buf.Len())
}
