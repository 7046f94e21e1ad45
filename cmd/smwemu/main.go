// Package main implements the SNES emulation command that runs routines of a
// ROM from a Lua script or an interactive monitor.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/SMW-Editor/smw-editor-sub001/internal/cli"
	"github.com/SMW-Editor/smw-editor-sub001/internal/config"
	"github.com/SMW-Editor/smw-editor-sub001/internal/detector"
	"github.com/SMW-Editor/smw-editor-sub001/internal/emu"
	"github.com/SMW-Editor/smw-editor-sub001/internal/fileprocessor"
	"github.com/SMW-Editor/smw-editor-sub001/internal/loader"
	"github.com/SMW-Editor/smw-editor-sub001/internal/monitor"
	"github.com/SMW-Editor/smw-editor-sub001/internal/options"
	"github.com/SMW-Editor/smw-editor-sub001/internal/rom"
	"github.com/SMW-Editor/smw-editor-sub001/internal/script"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// instructionLimit bounds a single call sequence.
const instructionLimit = 50_000_000

func main() {
	ctx := app.Context()

	opts, err := cli.ParseEmulatorFlags()
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, "smwemu", opts.Quiet, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	fileprocessor.PrintBanner(logger, "smwemu", opts.Quiet, version, commit, date)

	if err := run(ctx, logger, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	runner, err := newRunner(logger, opts)
	if err != nil {
		return err
	}

	if opts.Script != "" {
		file, err := os.Open(opts.Script)
		if err != nil {
			return fmt.Errorf("opening script %s: %w", opts.Script, err)
		}
		defer func() { _ = file.Close() }()

		return script.New(logger, runner).Run(ctx, opts.Script, file)
	}

	return monitor.New(logger, runner).RunTerminal(ctx, os.Stdin, os.Stdout)
}

func newRunner(logger *log.Logger, opts options.Program) (*emu.Runner, error) {
	l := loader.New()
	data, err := l.Read(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading rom: %w", err)
	}

	scheme, err := detector.New(logger).Detect(opts.Mapping, data)
	if err != nil {
		return nil, err
	}
	r, err := rom.New(data, scheme)
	if err != nil {
		return nil, fmt.Errorf("loading rom: %w", err)
	}

	table, skipped, err := l.LoadSymbols(opts.Symbols)
	if err != nil {
		return nil, fmt.Errorf("loading symbols: %w", err)
	}
	if skipped > 0 {
		logger.Warn("Skipped malformed symbol lines",
			log.String("file", opts.Symbols),
			log.Int("lines", skipped))
	}

	logger.Info("Loaded ROM",
		log.String("file", opts.Input),
		log.Stringer("scheme", scheme),
		log.Int("symbols", table.Len()))

	cpu := emu.NewCPU(emu.NewMemory(r))
	return emu.NewRunner(logger, cpu, table, instructionLimit), nil
}
