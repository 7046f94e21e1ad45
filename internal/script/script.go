// Package script runs Lua scripts that drive the emulator.
package script

import (
	"context"
	"fmt"
	"io"

	"github.com/SMW-Editor/smw-editor-sub001/internal/emu"
	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/retroenv/retrogolib/log"
	lua "github.com/yuin/gopher-lua"
)

// Host exposes an emulator runner to Lua scripts.
type Host struct {
	logger *log.Logger
	runner *emu.Runner
}

// New returns a script host for the given runner.
func New(logger *log.Logger, runner *emu.Runner) *Host {
	return &Host{
		logger: logger,
		runner: runner,
	}
}

// Run executes the script read from r. The script is aborted when the
// context is cancelled.
func (h *Host) Run(ctx context.Context, name string, r io.Reader) error {
	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)
	h.register(ctx, L)

	fn, err := L.Load(r, name)
	if err != nil {
		return fmt.Errorf("loading script %s: %w", name, err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("running script %s: %w", name, ctxErr)
		}
		return fmt.Errorf("running script %s: %w", name, err)
	}
	return nil
}

func (h *Host) register(ctx context.Context, L *lua.LState) {
	mem := h.runner.CPU().Memory()

	functions := map[string]lua.LGFunction{
		"load": func(L *lua.LState) int {
			L.Push(lua.LNumber(mem.Load(checkAddress(L, 1))))
			return 1
		},
		"load16": func(L *lua.LState) int {
			L.Push(lua.LNumber(mem.Load16(checkAddress(L, 1))))
			return 1
		},
		"store": func(L *lua.LState) int {
			mem.Store(checkAddress(L, 1), uint8(L.CheckInt(2)))
			return 0
		},
		"store16": func(L *lua.LState) int {
			mem.Store16(checkAddress(L, 1), uint16(L.CheckInt(2)))
			return 0
		},
		"vram": func(L *lua.LState) int {
			index := L.CheckInt(1)
			vram := mem.VRAM()
			if index < 0 || index >= len(vram) {
				L.ArgError(1, "VRAM index out of range")
			}
			L.Push(lua.LNumber(vram[index]))
			return 1
		},
		"resolve": func(L *lua.LState) int {
			addr, ok := h.runner.Symbols().Resolve(L.CheckString(1))
			if !ok {
				L.Push(lua.LNil)
				return 1
			}
			L.Push(lua.LNumber(addr))
			return 1
		},
		"regs":     h.regs,
		"dma":      h.dma,
		"step":     func(L *lua.LState) int { return h.step(ctx, L) },
		"call":     func(L *lua.LState) int { return h.call(ctx, L) },
		"sublevel": func(L *lua.LState) int { return h.sublevel(ctx, L) },
		"log": func(L *lua.LState) int {
			h.logger.Info("Script", log.String("message", L.CheckString(1)))
			return 0
		},
	}
	for name, fn := range functions {
		L.SetGlobal(name, L.NewFunction(fn))
	}
}

func checkAddress(L *lua.LState, n int) mapper.LogicalAddress {
	return mapper.LogicalAddress(L.CheckInt(n)) & 0xFFFFFF
}

func (h *Host) regs(L *lua.LState) int {
	regs := h.runner.CPU().Snapshot()
	t := L.NewTable()
	L.SetField(t, "A", lua.LNumber(regs.A))
	L.SetField(t, "X", lua.LNumber(regs.X))
	L.SetField(t, "Y", lua.LNumber(regs.Y))
	L.SetField(t, "S", lua.LNumber(regs.S))
	L.SetField(t, "D", lua.LNumber(regs.D))
	L.SetField(t, "PC", lua.LNumber(regs.PC))
	L.SetField(t, "PBR", lua.LNumber(regs.PBR))
	L.SetField(t, "DBR", lua.LNumber(regs.DBR))
	L.SetField(t, "P", lua.LNumber(regs.P))
	L.SetField(t, "E", lua.LBool(regs.Emulation))
	L.Push(t)
	return 1
}

// dma processes pending DMA transfers and returns the skipped transfers as
// an error string, or nil.
func (h *Host) dma(L *lua.LState) int {
	if err := h.runner.CPU().Memory().ProcessDMA(); err != nil {
		L.Push(lua.LString(err.Error()))
		return 1
	}
	L.Push(lua.LNil)
	return 1
}

// step executes up to n instructions and returns the executed count, plus an
// error string when the processor stopped.
func (h *Host) step(ctx context.Context, L *lua.LState) int {
	n := L.OptInt(1, 1)
	executed, err := h.runner.Step(ctx, n)
	L.Push(lua.LNumber(executed))
	if err != nil {
		L.Push(lua.LString(err.Error()))
		return 2
	}
	return 1
}

// call runs a call sequence of symbol names or numeric addresses and returns
// the executed instruction count.
func (h *Host) call(ctx context.Context, L *lua.LState) int {
	var routines []mapper.LogicalAddress
	for i := 1; i <= L.GetTop(); i++ {
		switch v := L.Get(i).(type) {
		case lua.LNumber:
			routines = append(routines, mapper.LogicalAddress(v)&0xFFFFFF)
		case lua.LString:
			addrs, err := h.runner.Resolve(string(v))
			if err != nil {
				L.RaiseError("%s", err.Error())
				return 0
			}
			routines = append(routines, addrs...)
		default:
			L.ArgError(i, "symbol name or address expected")
			return 0
		}
	}

	executed, err := h.runner.Call(ctx, nil, routines...)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(executed))
	return 1
}

func (h *Host) sublevel(ctx context.Context, L *lua.LState) int {
	executed, err := h.runner.DecompressSublevel(ctx, uint16(L.CheckInt(1)))
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(executed))
	return 1
}
