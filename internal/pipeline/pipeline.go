// Package pipeline orchestrates the disassembly workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/SMW-Editor/smw-editor-sub001/internal/detector"
	"github.com/SMW-Editor/smw-editor-sub001/internal/disasm"
	"github.com/SMW-Editor/smw-editor-sub001/internal/jumpengine"
	"github.com/SMW-Editor/smw-editor-sub001/internal/loader"
	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/SMW-Editor/smw-editor-sub001/internal/options"
	"github.com/SMW-Editor/smw-editor-sub001/internal/rom"
	"github.com/SMW-Editor/smw-editor-sub001/internal/symbols"
	"github.com/SMW-Editor/smw-editor-sub001/internal/verification"
	"github.com/SMW-Editor/smw-editor-sub001/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete disassembly workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new disassembly pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute runs the complete disassembly pipeline for the input file of the options.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, disasmOpts options.Disassembler,
	w io.Writer) (*disasm.Disassembly, error) {

	data, err := p.loader.Read(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading rom: %w", err)
	}

	scheme, err := p.detector.Detect(opts.Mapping, data)
	if err != nil {
		return nil, err
	}

	r, err := rom.New(data, scheme)
	if err != nil {
		return nil, fmt.Errorf("loading rom: %w", err)
	}

	table, skipped, err := p.loader.LoadSymbols(opts.Symbols)
	if err != nil {
		return nil, fmt.Errorf("loading symbols: %w", err)
	}
	if skipped > 0 {
		p.logger.Warn("Skipped malformed symbol lines",
			log.String("file", opts.Symbols),
			log.Int("lines", skipped))
	}

	return p.ExecuteWithRom(ctx, r, table, opts, disasmOpts, w)
}

// ExecuteWithRom runs the disassembly pipeline with a pre-loaded ROM.
// This is useful for testing and programmatic usage where the ROM is already in memory.
func (p *Pipeline) ExecuteWithRom(ctx context.Context, r *rom.Rom, table *symbols.Table, opts options.Program,
	disasmOpts options.Disassembler, w io.Writer) (*disasm.Disassembly, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysing: %w", err)
	}

	vectors := p.printInfo(opts, r)

	dis := disasm.New(p.logger, r, jumpengine.Default())
	dis.Analyse(disasm.EntryPoints(vectors))
	if disasmOpts.Catalog && r.Scheme() == mapper.LoROM {
		dis.MarkData(disasm.KnownData)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("writing listing: %w", err)
	}

	listing := writer.New(dis, table, w, writer.Options{
		HexComments:    disasmOpts.HexComments,
		OffsetComments: disasmOpts.OffsetComments,
		DataBytes:      disasmOpts.DataBytes,
	})
	if err := listing.Write(); err != nil {
		return nil, fmt.Errorf("writing listing: %w", err)
	}

	if errs := dis.Errors(); len(errs) > 0 {
		p.logger.Warn("Analysis finished with errors",
			log.String("file", opts.Input),
			log.Int("errors", len(errs)))
	}

	if opts.Verify {
		if err := verification.VerifyChecksum(p.logger, r); err != nil {
			return dis, fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful", log.String("file", opts.Input))
	}

	return dis, nil
}

// printInfo prints information about the ROM being processed and returns
// the code vectors of its internal header.
func (p *Pipeline) printInfo(opts options.Program, r *rom.Rom) []mapper.LogicalAddress {
	header, err := r.Header()
	if err != nil || !header.IsValid() {
		p.logger.Warn("Internal header is missing or invalid, only default entry points are used",
			log.String("file", opts.Input))
		return nil
	}

	if !opts.Quiet {
		p.logger.Info("Processing SNES ROM",
			log.String("file", opts.Input),
			log.String("title", header.Name),
			log.Stringer("scheme", r.Scheme()),
			log.Stringer("map_mode", header.MapMode),
			log.Stringer("region", header.Region),
		)
	}
	return header.CodeVectors()
}
