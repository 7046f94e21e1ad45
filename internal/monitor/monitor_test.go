package monitor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/SMW-Editor/smw-editor-sub001/internal/emu"
	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/SMW-Editor/smw-editor-sub001/internal/rom"
	"github.com/SMW-Editor/smw-editor-sub001/internal/symbols"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func testMonitor(t *testing.T) *Monitor {
	t.Helper()
	data := make([]byte, 0x10000)
	copy(data, []byte{
		0xA9, 0x42, //             $8000 LDA #$42
		0x8F, 0x00, 0x01, 0x7E, // $8002 STA $7E0100
		0x6B, //                   $8006 RTL
	})
	r, err := rom.New(data, mapper.LoROM)
	assert.NoError(t, err)

	table := symbols.New()
	table.Set("StoreValue", 0x008000)
	logger := log.NewTestLogger(t)
	return New(logger, emu.NewRunner(logger, emu.NewCPU(emu.NewMemory(r)), table, 1000))
}

//nolint:funlen // test functions can be long
func TestExecute(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected string
	}{
		{"registers", []string{"r"}, "S=01FF"},
		{"call by symbol", []string{"c StoreValue"}, "executed 4 instructions"},
		{"call by address", []string{"c $008000"}, "executed 4 instructions"},
		{"memory dump", []string{"c StoreValue", "m 7E0100 4"}, "$7E0100: 42 00 00 00\n"},
		{"memory dump default size", []string{"m $008000"}, "$008030:"},
		{"vram dump", []string{"v 0 2"}, "$000000: 00 00\n"},
		{"dma", []string{"d"}, "DMA done"},
		{"help", []string{"h"}, "call sequence"},
		{"step", []string{"c StoreValue", "s 2"}, "PC=00:0000"},
		{"empty line", []string{""}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testMonitor(t)
			var buf bytes.Buffer
			for _, line := range tt.lines {
				quit, err := m.Execute(context.Background(), &buf, line)
				assert.NoError(t, err)
				assert.False(t, quit)
			}
			assert.Contains(t, buf.String(), tt.expected)
		})
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		line     string
		expected error
		message  string
	}{
		{"x", ErrUnknownCommand, "unknown command: x"},
		{"m", ErrMissingArgument, "missing argument: address"},
		{"v", ErrMissingArgument, "missing argument: offset"},
		{"c", ErrMissingArgument, "missing argument: routine"},
		{"c Missing", emu.ErrUnknownSymbol, "unknown symbol: Missing"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			m := testMonitor(t)
			_, err := m.Execute(context.Background(), io.Discard, tt.line)
			assert.True(t, errors.Is(err, tt.expected))
			assert.ErrorContains(t, err, tt.message)
		})
	}

	m := testMonitor(t)
	for _, line := range []string{"s 0", "s x", "m zz", "v 10000", "m 0 zz"} {
		_, err := m.Execute(context.Background(), io.Discard, line)
		assert.Error(t, err, line)
	}
}

func TestRun(t *testing.T) {
	m := testMonitor(t)
	var out bytes.Buffer
	rw := struct {
		io.Reader
		io.Writer
	}{strings.NewReader("c StoreValue\rbogus\rq\rr\r"), &out}

	assert.NoError(t, m.Run(context.Background(), rw))
	output := out.String()
	assert.Contains(t, output, "executed 4 instructions")
	assert.Contains(t, output, "error: unknown command: bogus")
	assert.False(t, strings.Contains(output, "S=01FF"))
}

func TestRunStopsAtEndOfInput(t *testing.T) {
	m := testMonitor(t)
	rw := struct {
		io.Reader
		io.Writer
	}{strings.NewReader("r\r"), io.Discard}
	assert.NoError(t, m.Run(context.Background(), rw))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.Run(ctx, rw)
	assert.True(t, errors.Is(err, context.Canceled))
}
