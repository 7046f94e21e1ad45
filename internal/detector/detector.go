// Package detector handles mapping scheme detection.
package detector

import (
	"fmt"

	"github.com/SMW-Editor/smw-editor-sub001/internal/config"
	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/SMW-Editor/smw-editor-sub001/internal/rom"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles mapping scheme detection from options and the internal header.
type Detector struct {
	logger *log.Logger
}

// New creates a new scheme detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the mapping scheme of a ROM image. A scheme forced by
// the mapping option wins, otherwise the location of a valid internal header
// decides. Images without a valid header default to LoROM.
func (d *Detector) Detect(mapping string, data []byte) (mapper.Scheme, error) {
	scheme, forced, err := config.ForcedScheme(mapping)
	if err != nil {
		return mapper.None, fmt.Errorf("detecting scheme: %w", err)
	}
	if forced {
		return scheme, nil
	}

	data, _ = rom.StripCopierHeader(data)
	header, scheme, err := rom.FindHeader(data)
	if err != nil {
		d.logger.Warn("No valid internal header found, assuming LoROM", log.Err(err))
		return mapper.LoROM, nil
	}

	d.logger.Debug("Auto-detected mapping scheme",
		log.Stringer("scheme", scheme),
		log.String("title", header.Name),
		log.Stringer("map_mode", header.MapMode))
	return scheme, nil
}
