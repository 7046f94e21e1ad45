// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/SMW-Editor/smw-editor-sub001/internal/options"
	"github.com/SMW-Editor/smw-editor-sub001/internal/pipeline"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

// ErrBatchFailed is returned when at least one file of a batch failed.
var ErrBatchFailed = errors.New("batch processing failed")

// ProcessFile handles the complete file processing workflow
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, disasmOptions options.Disassembler) error {
	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}

	_, err = pipeline.New(logger).Execute(ctx, opts, disasmOptions, writer)
	if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
		if closeErr := closer.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", closeErr)
		}
	}
	if err != nil {
		return fmt.Errorf("disassembling %s: %w", opts.Input, err)
	}
	return nil
}

// ProcessFiles processes all given files concurrently, using at most limit
// workers. A limit of 0 uses one worker per CPU. Each file is written to an
// output file named after it. Failing files are logged and do not stop the
// batch, a cancelled context does.
func ProcessFiles(ctx context.Context, logger *log.Logger, opts options.Program, disasmOptions options.Disassembler,
	files []string, limit int) error {

	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var failed atomic.Int32
	for _, file := range files {
		fileOpts := opts
		fileOpts.Input = file
		fileOpts.Output = GenerateOutputFilename(file)

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			err := ProcessFile(ctx, logger, fileOpts, disasmOptions)
			switch {
			case err == nil:
				logger.Debug("File processed", log.String("file", file), log.String("output", fileOpts.Output))
				return nil
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return err
			default:
				failed.Add(1)
				logger.Error("Disassembling failed", log.String("file", file), log.Err(err))
				return nil
			}
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("processing batch: %w", err)
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrBatchFailed, n, len(files))
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".txt"
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, name string, quiet bool, version, commit, date string) {
	if quiet {
		return
	}

	logger.Info(name, log.String("version", buildinfo.Version(version, commit, "")))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
