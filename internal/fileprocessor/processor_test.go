package fileprocessor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SMW-Editor/smw-editor-sub001/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func createTestCode() []byte {
	data := make([]byte, 0x8000)
	copy(data, []byte{
		0xA9, 0x00, //       $8000 LDA #$00
		0x8D, 0x00, 0x02, // $8002 STA $0200
		0x60, //             $8005 RTS
	})
	return data
}

func testOptions() options.Program {
	return options.Program{
		Flags: options.Flags{Mapping: options.SchemeLoROM, Quiet: true},
	}
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "game.sfc")
	assert.NoError(t, os.WriteFile(input, createTestCode(), 0o600))

	opts := testOptions()
	opts.Input = input
	opts.Output = filepath.Join(dir, "game.txt")

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, options.NewDisassembler())
	assert.NoError(t, err)

	listing, err := os.ReadFile(opts.Output)
	assert.NoError(t, err)
	assert.Contains(t, string(listing), "[MX] LDA #$00")
	assert.Contains(t, string(listing), "[MX] STA $0200")
}

func TestProcessFiles(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for _, name := range []string{"a.sfc", "b.sfc", "c.sfc"} {
		path := filepath.Join(dir, name)
		assert.NoError(t, os.WriteFile(path, createTestCode(), 0o600))
		files = append(files, path)
	}

	t.Run("all files succeed", func(t *testing.T) {
		err := ProcessFiles(context.Background(), log.NewTestLogger(t), testOptions(), options.NewDisassembler(), files, 2)
		assert.NoError(t, err)
		for _, file := range files {
			_, err := os.Stat(GenerateOutputFilename(file))
			assert.NoError(t, err)
		}
	})

	t.Run("failing file does not stop the batch", func(t *testing.T) {
		empty := filepath.Join(dir, "empty.sfc")
		assert.NoError(t, os.WriteFile(empty, nil, 0o600))

		err := ProcessFiles(context.Background(), log.NewTestLogger(t), testOptions(), options.NewDisassembler(),
			append([]string{empty}, files...), 0)
		assert.True(t, errors.Is(err, ErrBatchFailed))
		assert.ErrorContains(t, err, "1 of 4 files")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := ProcessFiles(ctx, log.NewTestLogger(t), testOptions(), options.NewDisassembler(), files, 1)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.sfc", "b.sfc", "notes.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{0}, 0o600))
	}

	opts := options.Program{Parameters: options.Parameters{Batch: filepath.Join(dir, "*.sfc")}}
	files, err := GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Len(t, files, 2)
	for _, file := range files {
		assert.True(t, strings.HasSuffix(file, ".sfc"))
	}

	opts = options.Program{Parameters: options.Parameters{Input: "smw.sfc"}}
	files, err = GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Equal(t, []string{"smw.sfc"}, files)

	opts = options.Program{Parameters: options.Parameters{Batch: "["}}
	_, err = GetFilesToProcess(&opts)
	assert.Error(t, err)
}

func TestGenerateOutputFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"smw.sfc", "smw.txt"},
		{"roms/smw.smc", "roms/smw.txt"},
		{"noext", "noext.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateOutputFilename(tt.input))
		})
	}
}
