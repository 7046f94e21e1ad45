// Package main implements the main entry point for the SNES ROM block disassembler
package main

import (
	"context"
	"errors"
	"os"

	"github.com/SMW-Editor/smw-editor-sub001/internal/cli"
	"github.com/SMW-Editor/smw-editor-sub001/internal/config"
	"github.com/SMW-Editor/smw-editor-sub001/internal/fileprocessor"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, disasmOptions, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, "smwdisasm", opts.Quiet, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, "smwdisasm", opts.Quiet, version, commit, date)

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	if opts.Batch != "" {
		err = fileprocessor.ProcessFiles(ctx, logger, opts, disasmOptions, files, 0)
	} else {
		err = fileprocessor.ProcessFile(ctx, logger, opts, disasmOptions)
	}

	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		// Handle context cancellation (Ctrl+C) gracefully
		logger.Info("Operation cancelled")
	default:
		logger.Error("Disassembling failed", log.Err(err))
		os.Exit(1)
	}
}
