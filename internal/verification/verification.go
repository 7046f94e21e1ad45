// Package verification verifies that a ROM image matches its internal header.
package verification

import (
	"errors"
	"fmt"

	"github.com/SMW-Editor/smw-editor-sub001/internal/rom"
	"github.com/retroenv/retrogolib/log"
)

var (
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrComplementMismatch = errors.New("checksum complement mismatch")
)

// VerifyChecksum computes the checksum of the image and compares it with
// the checksum and complement stored in the internal header.
func VerifyChecksum(logger *log.Logger, r *rom.Rom) error {
	header, err := r.Header()
	if err != nil {
		return fmt.Errorf("reading internal header: %w", err)
	}

	computed := r.Checksum()
	logger.Debug("Verifying checksum",
		log.Hex("computed", computed),
		log.Hex("header", header.Checksum),
		log.Hex("complement", header.Complement))

	if !header.IsValid() {
		return fmt.Errorf("%w: checksum $%04X, complement $%04X",
			ErrComplementMismatch, header.Checksum, header.Complement)
	}
	if computed != header.Checksum {
		return fmt.Errorf("%w: expected $%04X but got $%04X",
			ErrChecksumMismatch, header.Checksum, computed)
	}
	return nil
}
