// Package loader handles ROM and symbol file loading operations.
package loader

import (
	"fmt"
	"os"

	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/SMW-Editor/smw-editor-sub001/internal/rom"
	"github.com/SMW-Editor/smw-editor-sub001/internal/symbols"
)

// Loader handles loading ROM and symbol files from disk.
type Loader struct{}

// New creates a new loader.
func New() *Loader {
	return &Loader{}
}

// Read reads the raw contents of a ROM file.
func (l *Loader) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("file %s: %w", path, rom.ErrEmpty)
	}
	return data, nil
}

// Load reads a ROM file and wraps it using the given mapping scheme.
// A copier header is stripped.
func (l *Loader) Load(path string, scheme mapper.Scheme) (*rom.Rom, error) {
	data, err := l.Read(path)
	if err != nil {
		return nil, err
	}
	r, err := rom.New(data, scheme)
	if err != nil {
		return nil, fmt.Errorf("loading rom %s: %w", path, err)
	}
	return r, nil
}

// LoadSymbols loads a symbol file. An empty path returns an empty table.
// The number of skipped malformed lines is returned.
func (l *Loader) LoadSymbols(path string) (*symbols.Table, int, error) {
	table := symbols.New()
	if path == "" {
		return table, 0, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening symbol file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	skipped, err := table.Load(file)
	if err != nil {
		return nil, 0, fmt.Errorf("loading symbol file %s: %w", path, err)
	}
	return table, skipped, nil
}
