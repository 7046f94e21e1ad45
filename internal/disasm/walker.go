package disasm

import (
	"fmt"
	"slices"

	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

type blockStep struct {
	start     mapper.PhysicalAddress
	processor Processor
	entrance  mapper.LogicalAddress
}

type subroutineStep struct {
	start    mapper.PhysicalAddress
	entrance mapper.LogicalAddress
	caller   *subroutineStep
}

// existsInCallHierarchy returns whether the subroutine is this one or one of its callers.
func (s *subroutineStep) existsInCallHierarchy(start mapper.PhysicalAddress) bool {
	for step := s; step != nil; step = step.caller {
		if step.start == start {
			return true
		}
	}
	return false
}

// step is either a basic block or a subroutine to analyse.
type step struct {
	block      *blockStep
	subroutine *subroutineStep
}

type subroutineState struct {
	codeBlocks     []int
	analysedBlocks set.Set[mapper.PhysicalAddress]
	remaining      []mapper.PhysicalAddress
	final          Processor
}

func (s *subroutineState) complete() bool {
	return len(s.remaining) == 0
}

type analysedRange struct {
	start mapper.PhysicalAddress
	index int // chunk index
}

type findResult uint8

const (
	rangeMissing findResult = iota
	rangeMissingWithNext
	rangeFound
)

// walker holds the state of one code analysis run.
type walker struct {
	*Disassembly
	data   []byte
	scheme mapper.Scheme

	// code ranges keyed by end offset, ends is kept sorted
	analysed map[mapper.PhysicalAddress]analysedRange
	ends     []mapper.PhysicalAddress

	front []step // pushed to the front, popped from the end
	back  []step

	codeStarts        set.Set[mapper.PhysicalAddress]
	subroutineReturns map[mapper.PhysicalAddress][]mapper.PhysicalAddress
	subroutines       map[mapper.PhysicalAddress]*subroutineState

	stalled int // consecutive deferred subroutine steps
}

func newWalker(d *Disassembly) *walker {
	return &walker{
		Disassembly:       d,
		data:              d.rom.Bytes(),
		scheme:            d.rom.Scheme(),
		analysed:          map[mapper.PhysicalAddress]analysedRange{},
		codeStarts:        set.New[mapper.PhysicalAddress](),
		subroutineReturns: map[mapper.PhysicalAddress][]mapper.PhysicalAddress{},
		subroutines:       map[mapper.PhysicalAddress]*subroutineState{},
	}
}

func (w *walker) run() {
	for {
		st, ok := w.pop()
		if !ok {
			return
		}
		if st.block != nil {
			w.analyseBasicBlock(*st.block)
			w.stalled = 0
			continue
		}

		if w.analyseSubroutine(st.subroutine) {
			w.stalled = 0
			continue
		}

		// The subroutine waits for a block that no queued step will produce.
		w.stalled++
		if w.stalled > len(w.front)+len(w.back) {
			w.abandonDeferredSubroutines()
			return
		}
	}
}

func (w *walker) pop() (step, bool) {
	if n := len(w.front); n > 0 {
		st := w.front[n-1]
		w.front = w.front[:n-1]
		return st, true
	}
	if len(w.back) > 0 {
		st := w.back[0]
		w.back = w.back[1:]
		return st, true
	}
	return step{}, false
}

func (w *walker) pushFront(st step) {
	w.front = append(w.front, st)
}

func (w *walker) pushBack(st step) {
	w.back = append(w.back, st)
}

func (w *walker) abandonDeferredSubroutines() {
	for {
		st, ok := w.pop()
		if !ok {
			return
		}
		if st.subroutine == nil {
			continue
		}
		entry, _ := mapper.ToLogical(st.subroutine.start, w.scheme)
		w.logger.Warn("Subroutine analysis incomplete",
			log.Stringer("subroutine", entry),
			log.Stringer("entrance", st.subroutine.entrance))
		w.addError(RangeError{
			Begin: st.subroutine.start,
			End:   st.subroutine.start,
			Err:   fmt.Errorf("%w at %s", ErrSubroutineWithoutReturn, entry),
		})
	}
}

func (w *walker) toPhysical(addr mapper.LogicalAddress) (mapper.PhysicalAddress, error) {
	offset, err := mapper.ToPhysical(addr, w.scheme)
	if err != nil {
		return 0, fmt.Errorf("translating address: %w", err)
	}
	return offset, nil
}

func (w *walker) toLogical(offset mapper.PhysicalAddress) mapper.LogicalAddress {
	addr, _ := mapper.ToLogical(offset, w.scheme)
	return addr
}

// ReadSlice returns ROM bytes for the jump engine.
func (w *walker) ReadSlice(slice mapper.RomSlice) ([]byte, error) {
	return w.rom.ReadSlice(slice)
}

// findAnalysedChunk returns the analysed code range containing the offset,
// or the start of the next analysed range.
func (w *walker) findAnalysedChunk(offset mapper.PhysicalAddress) (findResult, mapper.PhysicalAddress, mapper.PhysicalAddress, int) {
	i, _ := slices.BinarySearch(w.ends, offset+1)
	if i == len(w.ends) {
		return rangeMissing, 0, 0, 0
	}

	end := w.ends[i]
	r := w.analysed[end]
	if offset >= r.start && offset < end {
		return rangeFound, r.start, end, r.index
	}
	return rangeMissingWithNext, r.start, 0, 0
}

func (w *walker) setAnalysed(end, start mapper.PhysicalAddress, index int) {
	if _, ok := w.analysed[end]; !ok {
		i, _ := slices.BinarySearch(w.ends, end)
		w.ends = slices.Insert(w.ends, i, end)
	}
	w.analysed[end] = analysedRange{start: start, index: index}
}

// enqueueBasicBlock queues a block that was not queued before. Blocks found
// during analysis are processed before older steps.
func (w *walker) enqueueBasicBlock(st blockStep, front bool) bool {
	if w.codeStarts.Contains(st.start) {
		return false
	}
	w.codeStarts.Add(st.start)
	if front {
		w.pushFront(step{block: &st})
	} else {
		w.pushBack(step{block: &st})
	}
	return true
}

func (w *walker) enqueueSubroutine(st *subroutineStep) bool {
	if _, ok := w.subroutines[st.start]; ok {
		return false
	}
	w.pushFront(step{subroutine: st})
	return true
}

func (w *walker) pushChunk(offset mapper.PhysicalAddress, block BinaryBlock) int {
	w.chunks = append(w.chunks, Chunk{Offset: offset, Block: block})
	return len(w.chunks) - 1
}

func (w *walker) analyseBasicBlock(st blockStep) {
	start := st.start
	nextKnown := mapper.PhysicalAddress(len(w.data))

	switch result, rangeStart, rangeEnd, index := w.findAnalysedChunk(start); result {
	case rangeFound:
		if start != rangeStart {
			w.splitBlockAt(rangeStart, rangeEnd, index, start, st.entrance)
		}
		return
	case rangeMissingWithNext:
		nextKnown = rangeStart
	case rangeMissing:
	}

	if start >= nextKnown {
		w.addError(RangeError{Begin: start, End: start, Err: fmt.Errorf("%w: %s", ErrInvalidEntry, st.entrance)})
		return
	}

	processor := st.processor.Clone()
	code, after, err := CodeBlockFromBytes(w.data[start:nextKnown], start, w.scheme, &processor)
	if err != nil {
		w.logger.Warn("Decoding code block failed",
			log.Stringer("offset", start),
			log.Stringer("entrance", st.entrance),
			log.Err(err))
		w.addError(RangeError{Begin: start, End: after, Err: err})
		return
	}
	code.Entrances = append(code.Entrances, st.entrance)

	blockAddr := w.toLogical(start)
	last := code.LastInstruction()
	nextCovered := false

	if last.CanChangeProgramCounter() {
		next := last.NextInstructions()
		isJumpTable := last.UsesJumpTable()

		switch {
		case isJumpTable:
			next = w.resolveJumpTable(after, &processor)

		case last.IsSubroutineCall():
			following := blockStep{start: after, processor: processor.Clone(), entrance: blockAddr}
			if len(next) == 0 {
				// indirect call, assume an unchanged processor state
				w.enqueueBasicBlock(following, true)
				break
			}

			subStart, err := w.toPhysical(next[0])
			if err != nil {
				// The subroutine is located in RAM, assume an unchanged processor state.
				w.enqueueBasicBlock(following, true)
				break
			}
			w.subroutineReturns[subStart] = append(w.subroutineReturns[subStart], after)
			if sub, ok := w.subroutines[subStart]; ok && sub.complete() {
				following.processor = sub.final.Clone()
				w.enqueueBasicBlock(following, true)
			}
		}

		for _, target := range next {
			targetStart, err := w.toPhysical(target)
			if err != nil {
				w.logger.Debug("Skipping next target outside of ROM",
					log.Stringer("target", target),
					log.Stringer("instruction", last.Address))
				continue
			}
			if int(targetStart) >= len(w.data) {
				w.logger.Warn("Invalid next address in code block",
					log.Stringer("block", blockAddr),
					log.String("instruction", last.StringWithFlags()))
				w.addError(RangeError{
					Begin: start,
					End:   after,
					Err:   fmt.Errorf("%w: %s targets %s", ErrInvalidTarget, last, target),
				})
				return
			}

			if targetStart == after {
				nextCovered = true
			}
			code.Exits = append(code.Exits, target)
			w.enqueueBasicBlock(blockStep{start: targetStart, processor: processor.Clone(), entrance: blockAddr}, true)
		}

		if isJumpTable || last.IsSubroutineCall() {
			for _, target := range next {
				subStart, err := w.toPhysical(target)
				if err != nil {
					continue
				}
				w.enqueueSubroutine(&subroutineStep{start: subStart, entrance: last.Address})
			}
		}
	}

	index := w.pushChunk(start, CodeBinaryBlock(code))
	w.setAnalysed(after, start, index)
	if !nextCovered {
		w.pushChunk(after, UnknownBlock())
	}
}

// resolveJumpTable returns the code targets of the pointer table following a
// trampoline call and marks the table as data.
func (w *walker) resolveJumpTable(tableOffset mapper.PhysicalAddress, processor *Processor) []mapper.LogicalAddress {
	// the trampolines switch to 8-bit accumulator and index registers
	processor.P |= InitialPRegister

	tableAddr := w.toLogical(tableOffset)
	view, ok := w.jumps.Table(tableAddr)
	if !ok {
		w.logger.Warn("Could not find jump table", log.Stringer("address", tableAddr))
		return nil
	}

	targets, err := w.jumps.CodeTargets(w, view)
	if err != nil {
		w.addError(RangeError{Begin: tableOffset, End: tableOffset, Err: err})
		return nil
	}

	kind := JumpTableShort
	if view.LongPointers {
		kind = JumpTableLong
	}
	block := DataBlock{Slice: view.Slice(), Kind: kind}
	w.pushChunk(tableOffset, DataBinaryBlock(block))
	w.pushChunk(tableOffset+mapper.PhysicalAddress(block.Slice.Size), UnknownBlock())
	w.dataBlocks[block.Slice.Begin] = block
	return targets
}

// analyseSubroutine follows the blocks of a subroutine to find the processor
// state it returns with. It returns false if the step was deferred because a
// block of the subroutine was not analysed yet.
func (w *walker) analyseSubroutine(st *subroutineStep) bool {
	sub, ok := w.subroutines[st.start]
	if !ok {
		sub = &subroutineState{
			analysedBlocks: set.New[mapper.PhysicalAddress](),
			remaining:      []mapper.PhysicalAddress{st.start},
			final:          NewProcessor(),
		}
		w.subroutines[st.start] = sub
	}

	for len(sub.remaining) > 0 {
		n := len(sub.remaining)
		current := sub.remaining[n-1]
		sub.remaining = sub.remaining[:n-1]

		result, _, _, index := w.findAnalysedChunk(current)
		if result != rangeFound {
			sub.remaining = append(sub.remaining, current)
			w.pushBack(step{subroutine: st})
			return false
		}

		sub.codeBlocks = append(sub.codeBlocks, index)
		block := w.chunks[index].Block.Code
		last := block.LastInstruction()
		if last.UsesJumpTable() {
			continue
		}

		after := last.Offset + mapper.PhysicalAddress(last.Size())

		// no exits happen when a call targets RAM
		if len(block.Exits) > 0 {
			switch {
			case last.IsSubroutineCall():
				callee, err := w.toPhysical(block.Exits[0])
				if err != nil {
					break
				}
				w.subroutineReturns[callee] = append(w.subroutineReturns[callee], after)

				if st.existsInCallHierarchy(callee) {
					w.enqueueBasicBlock(blockStep{start: after, processor: sub.final.Clone(), entrance: st.entrance}, true)
				} else {
					next := &subroutineStep{start: callee, entrance: last.Address, caller: st}
					if w.enqueueSubroutine(next) {
						sub.remaining = append(sub.remaining, after)
						return true
					}
				}

			case !last.IsSubroutineReturn():
				for _, exit := range block.Exits {
					offset, err := w.toPhysical(exit)
					if err != nil || sub.analysedBlocks.Contains(offset) {
						continue
					}
					sub.analysedBlocks.Add(offset)
					sub.remaining = append(sub.remaining, offset)
				}
			}
		}

		if !last.IsSinglePathLeap() && !sub.analysedBlocks.Contains(after) {
			sub.analysedBlocks.Add(after)
			sub.remaining = append(sub.remaining, after)
		}
	}

	returning := -1
	for _, index := range sub.codeBlocks {
		last := w.chunks[index].Block.Code.LastInstruction()
		if last.IsSubroutineReturn() || last.UsesJumpTable() {
			returning = index
			break
		}
	}
	if returning < 0 {
		entry := w.toLogical(st.start)
		w.logger.Debug("Subroutine without return", log.Stringer("subroutine", entry))
		w.addError(RangeError{
			Begin: st.start,
			End:   st.start,
			Err:   fmt.Errorf("%w at %s", ErrSubroutineWithoutReturn, entry),
		})
		return true
	}
	sub.final = w.chunks[returning].Block.Code.FinalProcessorState.Clone()

	if st.caller != nil {
		w.enqueueSubroutine(st.caller)
	}

	for _, ret := range w.subroutineReturns[st.start] {
		w.enqueueBasicBlock(blockStep{start: ret, processor: sub.final.Clone(), entrance: st.entrance}, true)
	}
	return true
}

// splitBlockAt splits the analysed code range at a jump into its middle. The
// second half keeps the chunk index, the first half is appended.
func (w *walker) splitBlockAt(rangeStart, rangeEnd mapper.PhysicalAddress, index int,
	middle mapper.PhysicalAddress, entrance mapper.LogicalAddress) {

	original := w.chunks[index].Block.Code
	middleAddr := w.toLogical(middle)

	if !slices.ContainsFunc(original.Instructions, func(ins Instruction) bool { return ins.Offset == middle }) {
		w.logger.Warn("Jump into the middle of an instruction",
			log.Stringer("target", middleAddr),
			log.Stringer("entrance", entrance))
		w.addError(RangeError{Begin: middle, End: middle, Err: fmt.Errorf("%w: %s", ErrMiddleOfInstruction, entrance)})
		return
	}

	first := &CodeBlock{
		Exits:               []mapper.LogicalAddress{middleAddr},
		Entrances:           original.Entrances,
		EntryProcessorState: original.EntryProcessorState,
	}
	second := &CodeBlock{
		Exits:               original.Exits,
		Entrances:           []mapper.LogicalAddress{entrance},
		FinalProcessorState: original.FinalProcessorState,
	}
	for _, ins := range original.Instructions {
		if ins.Offset < middle {
			first.Instructions = append(first.Instructions, ins)
		} else {
			second.Instructions = append(second.Instructions, ins)
		}
	}

	second.Entrances = append(second.Entrances, first.LastInstruction().Address)
	first.RecalculateFinalProcessorState()
	second.EntryProcessorState = first.FinalProcessorState.Clone()

	firstIndex := w.pushChunk(rangeStart, CodeBinaryBlock(first))
	w.chunks[index] = Chunk{Offset: middle, Block: CodeBinaryBlock(second)}
	w.setAnalysed(rangeEnd, middle, index)
	w.setAnalysed(middle, rangeStart, firstIndex)
	w.codeStarts.Add(middle)
}
