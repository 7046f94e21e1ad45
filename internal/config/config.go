// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/SMW-Editor/smw-editor-sub001/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// ForcedScheme returns the mapping scheme selected by the mapping option.
// The second return value is false when the scheme is to be detected from
// the ROM header.
func ForcedScheme(mapping string) (mapper.Scheme, bool, error) {
	if mapping == "" || mapping == options.SchemeAuto {
		return mapper.None, false, nil
	}
	scheme, err := mapper.ParseScheme(mapping)
	if err != nil {
		return mapper.None, false, fmt.Errorf("parsing mapping scheme: %w", err)
	}
	return scheme, true, nil
}
