package emu

import (
	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/retroenv/retrogolib/set"
)

// Tracker records reads of work RAM bytes that were never written.
// A nil tracker records nothing.
type Tracker struct {
	written set.Set[uint32]
	seen    set.Set[uint32]
	reads   []mapper.LogicalAddress
}

// NewTracker returns an empty tracker. Bytes listed in initialized count as
// written.
func NewTracker(initialized ...mapper.LogicalAddress) *Tracker {
	t := &Tracker{
		written: set.New[uint32](),
		seen:    set.New[uint32](),
	}
	for _, addr := range initialized {
		t.written.Add(uint32(addr) & (WRAMSize - 1))
	}
	return t
}

// UninitializedReads returns the work RAM addresses read before being
// written, in the order they were first read.
func (t *Tracker) UninitializedReads() []mapper.LogicalAddress {
	return t.reads
}

func (t *Tracker) read(ptr uint32) {
	if t == nil || t.written.Contains(ptr) || t.seen.Contains(ptr) {
		return
	}
	t.seen.Add(ptr)
	t.reads = append(t.reads, mapper.LogicalAddress(wramBank<<16+ptr))
}

func (t *Tracker) write(ptr uint32) {
	if t == nil {
		return
	}
	t.written.Add(ptr)
}
