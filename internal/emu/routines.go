package emu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/SMW-Editor/smw-editor-sub001/internal/symbols"
	"github.com/retroenv/retrogolib/log"
)

// Call sequences are assembled as JSL chains in bank 0 at this address.
const callBase mapper.LogicalAddress = 0x002000

const (
	opcodeJSL          = 0x22
	callStackPointer   = 0x01FF
	contextCheckPeriod = 0x1000
)

var (
	ErrUnknownSymbol = errors.New("unknown symbol")
	ErrLimitReached  = errors.New("instruction limit reached")
	ErrEmptySequence = errors.New("empty call sequence")
)

// Hook is run after the instruction that ends at its address.
type Hook func(cpu *CPU)

// Runner executes call sequences of ROM routines.
type Runner struct {
	logger  *log.Logger
	cpu     *CPU
	symbols *symbols.Table
	limit   uint64
}

// NewRunner returns a runner for the given processor. A limit of 0 runs
// sequences without an instruction limit.
func NewRunner(logger *log.Logger, cpu *CPU, table *symbols.Table, limit uint64) *Runner {
	if table == nil {
		table = symbols.New()
	}
	return &Runner{
		logger:  logger,
		cpu:     cpu,
		symbols: table,
		limit:   limit,
	}
}

// CPU returns the processor the runner drives.
func (r *Runner) CPU() *CPU {
	return r.cpu
}

// Step executes up to n instructions at the current program counter. The
// context is checked every contextCheckPeriod instructions.
func (r *Runner) Step(ctx context.Context, n int) (int, error) {
	executed := 0
	for executed < n {
		if err := ctx.Err(); err != nil {
			return executed, fmt.Errorf("stepping interrupted: %w", err)
		}
		done, err := r.cpu.StepN(min(contextCheckPeriod, n-executed))
		executed += done
		if err != nil {
			return executed, err
		}
	}
	return executed, nil
}

// Symbols returns the symbol table used to resolve routine names.
func (r *Runner) Symbols() *symbols.Table {
	return r.symbols
}

// Resolve returns the addresses of the named routines.
func (r *Runner) Resolve(names ...string) ([]mapper.LogicalAddress, error) {
	addrs := make([]mapper.LogicalAddress, 0, len(names))
	for _, name := range names {
		addr, ok := r.symbols.Resolve(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, name)
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

// CallSymbols runs the named routines in order.
func (r *Runner) CallSymbols(ctx context.Context, names ...string) (uint64, error) {
	addrs, err := r.Resolve(names...)
	if err != nil {
		return 0, err
	}
	return r.Call(ctx, nil, addrs...)
}

// Call runs the routines in order and returns the number of executed
// instructions. DMA is processed after every instruction. Hooks are keyed by
// the program counter reached after an instruction.
func (r *Runner) Call(ctx context.Context, hooks map[mapper.LogicalAddress]Hook, routines ...mapper.LogicalAddress) (uint64, error) {
	if len(routines) == 0 {
		return 0, ErrEmptySequence
	}

	start := time.Now()
	end := r.prepare(routines)
	mem := r.cpu.Memory()
	var executed uint64

	for {
		if executed%contextCheckPeriod == 0 {
			if err := ctx.Err(); err != nil {
				return executed, fmt.Errorf("call sequence interrupted: %w", err)
			}
		}
		if r.limit > 0 && executed >= r.limit {
			return executed, fmt.Errorf("%w: %d", ErrLimitReached, r.limit)
		}

		pc := r.cpu.ProgramCounter()
		if err := r.cpu.Step(); err != nil {
			return executed, fmt.Errorf("executing instruction at %s: %w", pc, err)
		}
		executed++

		pc = r.cpu.ProgramCounter()
		if hook, ok := hooks[pc]; ok {
			hook(r.cpu)
		}
		if pc == end {
			break
		}

		if err := mem.ProcessDMA(); err != nil {
			r.logger.Warn("DMA transfer skipped", log.Stringer("pc", pc), log.Err(err))
		}
	}

	if addr, ok := mem.Fault(); ok {
		r.logger.Debug("Unmapped memory access", log.Stringer("address", addr))
	}
	r.logger.Debug("Call sequence finished",
		log.Int("routines", len(routines)),
		log.Int("instructions", int(executed)),
		log.String("duration", time.Since(start).String()))
	return executed, nil
}

// prepare writes the JSL chain and resets the processor to run it. It returns
// the address following the last call.
func (r *Runner) prepare(routines []mapper.LogicalAddress) mapper.LogicalAddress {
	mem := r.cpu.Memory()
	addr := callBase
	for _, routine := range routines {
		mem.Store(addr, opcodeJSL)
		mem.Store24(addr+1, routine)
		addr += 4
	}

	r.cpu.SetNative(true)
	r.cpu.S = callStackPointer
	r.cpu.PC = callBase.Absolute()
	r.cpu.PBR = 0
	r.cpu.DBR = 0
	r.cpu.stopped = false
	return addr
}

// Sublevel loading routines of Super Mario World.
var sublevelRoutines = []string{
	"CODE_00A993",     // init layer 3 / sprite 0
	"CODE_00B888",     // init GFX32/33
	"CODE_05D796",     // init pointers
	"CODE_05801E",     // decompress level
	"UploadSpriteGFX", // upload graphics
	"LoadPalette",     // init palette
	"CODE_00922F",     // upload palette
}

var animFrameRoutines = []string{
	"CODE_05BB39", // set up frames
	"CODE_00A390", // upload them
}

var spriteRoutines = []string{
	"CODE_01808C",
}

const (
	ramSublevelHigh    = 0x1F11
	ramLoadingSubmap   = 0x141A
	ramScratchSublevel = 0x000E

	// after the pointer setup reads the level number
	sublevelNumberHook mapper.LogicalAddress = 0x05D8B7
)

// DecompressSublevel loads the sublevel with the given id into work RAM,
// VRAM and CGRAM.
func (r *Runner) DecompressSublevel(ctx context.Context, id uint16) (uint64, error) {
	addrs, err := r.Resolve(sublevelRoutines...)
	if err != nil {
		return 0, err
	}

	mem := r.cpu.Memory()
	mem.Store(ramSublevelHigh, uint8(id>>8))
	mem.Store(ramLoadingSubmap, 1)
	hooks := map[mapper.LogicalAddress]Hook{
		sublevelNumberHook: func(cpu *CPU) {
			cpu.Memory().Store16(ramScratchSublevel, id)
		},
	}
	return r.Call(ctx, hooks, addrs...)
}

// FetchAnimFrame runs the animated tile update and uploads the frames.
func (r *Runner) FetchAnimFrame(ctx context.Context) (uint64, error) {
	return r.CallSymbols(ctx, animFrameRoutines...)
}

// ExecSprites runs the sprite handler once.
func (r *Runner) ExecSprites(ctx context.Context) (uint64, error) {
	return r.CallSymbols(ctx, spriteRoutines...)
}
