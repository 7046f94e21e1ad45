// Package monitor implements an interactive stepping monitor for the emulator.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/SMW-Editor/smw-editor-sub001/internal/emu"
	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

const (
	prompt          = "smwemu> "
	defaultDumpSize = 0x40
	bytesPerLine    = 16
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
)

const help = `commands:
  s [n]          step n instructions
  r              show registers
  m addr [len]   dump memory
  v off [len]    dump VRAM
  c sym|addr...  run a call sequence
  d              process pending DMA
  q              quit
`

// Monitor reads commands from a terminal and drives an emulator runner.
type Monitor struct {
	logger *log.Logger
	runner *emu.Runner
}

// New returns a monitor for the given runner.
func New(logger *log.Logger, runner *emu.Runner) *Monitor {
	return &Monitor{
		logger: logger,
		runner: runner,
	}
}

// RunTerminal runs the monitor on the given input file, switching it into
// raw mode while the monitor runs if it is a terminal.
func (m *Monitor) RunTerminal(ctx context.Context, in *os.File, out io.Writer) error {
	rw := struct {
		io.Reader
		io.Writer
	}{in, out}

	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return m.Run(ctx, rw)
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting terminal raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, state)
	}()
	return m.Run(ctx, rw)
}

// Run processes command lines until the quit command, the end of the input
// or the cancellation of the context.
func (m *Monitor) Run(ctx context.Context, rw io.ReadWriter) error {
	t := term.NewTerminal(rw, prompt)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := t.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading command: %w", err)
		}

		quit, err := m.Execute(ctx, t, line)
		if err != nil {
			_, _ = fmt.Fprintf(t, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// Execute runs a single command line and writes its output to w. It returns
// whether the monitor should quit.
func (m *Monitor) Execute(ctx context.Context, w io.Writer, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]

	var err error
	switch cmd {
	case "q", "quit":
		return true, nil
	case "s", "step":
		err = m.step(w, args)
	case "r", "regs":
		_, err = fmt.Fprintln(w, m.runner.CPU().Snapshot())
	case "m", "mem":
		err = m.dumpMemory(w, args)
	case "v", "vram":
		err = m.dumpVRAM(w, args)
	case "c", "call":
		err = m.call(ctx, w, args)
	case "d", "dma":
		err = m.dma(w)
	case "h", "help", "?":
		_, err = io.WriteString(w, help)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
	return false, err
}

func (m *Monitor) step(w io.Writer, args []string) error {
	count := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid step count '%s'", args[0])
		}
		count = n
	}

	cpu := m.runner.CPU()
	for range count {
		if err := cpu.Step(); err != nil {
			return fmt.Errorf("stepping at %s: %w", cpu.ProgramCounter(), err)
		}
		if err := cpu.Memory().ProcessDMA(); err != nil {
			m.logger.Warn("DMA transfer skipped", log.Err(err))
		}
	}
	_, err := fmt.Fprintln(w, cpu.Snapshot())
	return err
}

func (m *Monitor) dumpMemory(w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: address", ErrMissingArgument)
	}
	start, err := parseNumber(args[0])
	if err != nil {
		return err
	}
	size, err := parseSize(args[1:])
	if err != nil {
		return err
	}

	mem := m.runner.CPU().Memory()
	data := make([]byte, size)
	for i := range data {
		data[i] = mem.Load(mapper.LogicalAddress(start + uint32(i)))
	}
	return dump(w, start, data)
}

func (m *Monitor) dumpVRAM(w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: offset", ErrMissingArgument)
	}
	start, err := parseNumber(args[0])
	if err != nil {
		return err
	}
	size, err := parseSize(args[1:])
	if err != nil {
		return err
	}

	vram := m.runner.CPU().Memory().VRAM()
	if int(start) >= len(vram) {
		return fmt.Errorf("VRAM offset $%04X out of range", start)
	}
	end := min(int(start)+size, len(vram))
	return dump(w, start, vram[start:end])
}

func (m *Monitor) call(ctx context.Context, w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: routine", ErrMissingArgument)
	}

	routines := make([]mapper.LogicalAddress, 0, len(args))
	for _, arg := range args {
		if addrs, err := m.runner.Resolve(arg); err == nil {
			routines = append(routines, addrs...)
			continue
		}
		addr, err := parseNumber(arg)
		if err != nil {
			return fmt.Errorf("%w: %s", emu.ErrUnknownSymbol, arg)
		}
		routines = append(routines, mapper.LogicalAddress(addr))
	}

	executed, err := m.runner.Call(ctx, nil, routines...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "executed %d instructions\n", executed)
	return err
}

func (m *Monitor) dma(w io.Writer) error {
	if err := m.runner.CPU().Memory().ProcessDMA(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "DMA done")
	return err
}

// parseNumber parses a hexadecimal number with an optional $ or 0x prefix.
func parseNumber(s string) (uint32, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "$"), "0x")
	value, err := strconv.ParseUint(trimmed, 16, 24)
	if err != nil {
		return 0, fmt.Errorf("invalid number '%s'", s)
	}
	return uint32(value), nil
}

func parseSize(args []string) (int, error) {
	if len(args) == 0 {
		return defaultDumpSize, nil
	}
	size, err := parseNumber(args[0])
	if err != nil {
		return 0, err
	}
	return int(size), nil
}

func dump(w io.Writer, start uint32, data []byte) error {
	var sb strings.Builder
	for i := 0; i < len(data); i += bytesPerLine {
		fmt.Fprintf(&sb, "$%06X:", start+uint32(i))
		for _, b := range data[i:min(i+bytesPerLine, len(data))] {
			fmt.Fprintf(&sb, " %02X", b)
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
