package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/SMW-Editor/smw-editor-sub001/internal/rom"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load rom file", func(t *testing.T) {
		tmpFile := createTempFile(t, "game.sfc", make([]byte, 0x8000))

		r, err := New().Load(tmpFile, mapper.LoROM)
		assert.NoError(t, err)
		assert.Equal(t, 0x8000, r.Len())
		assert.False(t, r.HasCopierHeader())
		assert.Equal(t, mapper.LoROM, r.Scheme())
	})

	t.Run("strip copier header", func(t *testing.T) {
		data := make([]byte, rom.CopierHeaderSize+0x8000)
		data[rom.CopierHeaderSize] = 0x78
		tmpFile := createTempFile(t, "game.smc", data)

		r, err := New().Load(tmpFile, mapper.LoROM)
		assert.NoError(t, err)
		assert.True(t, r.HasCopierHeader())
		value, err := r.Read8(0x008000)
		assert.NoError(t, err)
		assert.Equal(t, uint8(0x78), value)
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, "empty.sfc", nil)

		_, err := New().Load(tmpFile, mapper.LoROM)
		assert.True(t, errors.Is(err, rom.ErrEmpty))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := New().Load("/nonexistent/file.sfc", mapper.LoROM)
		assert.Error(t, err)
	})
}

func TestLoadSymbols(t *testing.T) {
	t.Run("no symbol file", func(t *testing.T) {
		table, skipped, err := New().LoadSymbols("")
		assert.NoError(t, err)
		assert.Equal(t, 0, skipped)
		assert.Equal(t, 0, table.Len())
	})

	t.Run("symbol file", func(t *testing.T) {
		tmpFile := createTempFile(t, "smw.sym", []byte("; symbols\n0086DF ExecutePtr\nzz bad\n0586F1 LoadLevel\n"))

		table, skipped, err := New().LoadSymbols(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, 1, skipped)
		assert.Equal(t, 2, table.Len())
		addr, ok := table.Resolve("LoadLevel")
		assert.True(t, ok)
		assert.Equal(t, mapper.LogicalAddress(0x0586F1), addr)
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, _, err := New().LoadSymbols("/nonexistent/smw.sym")
		assert.Error(t, err)
	})
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}
