// Package jumpengine resolves the pointer tables dispatched through the
// ExecutePtr and ExecutePtrLong trampolines.
package jumpengine

import (
	"errors"
	"fmt"

	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/retroenv/retrogolib/set"
)

// Addresses of the dispatch trampolines. A JSL/JSR to one of them is followed
// by a table of pointers indexed by the accumulator.
const (
	ExecutePtr     mapper.LogicalAddress = 0x0086DF
	ExecutePtrLong mapper.LogicalAddress = 0x0086FA
)

var errTableTooShort = errors.New("jump table data too short")

// TableView describes a pointer table in ROM.
type TableView struct {
	Begin        mapper.LogicalAddress
	Length       int  // number of pointers, not bytes
	LongPointers bool // 24-bit pointers, otherwise 16-bit pointers into the table's own bank
}

// PointerSize returns the size of a single table entry in bytes.
func (v TableView) PointerSize() int {
	if v.LongPointers {
		return 3
	}
	return 2
}

// Slice returns the ROM area covered by the table.
func (v TableView) Slice() mapper.RomSlice {
	return mapper.NewSlice(v.Begin, v.Length*v.PointerSize())
}

// Reader provides the raw bytes of a ROM area.
type Reader interface {
	ReadSlice(slice mapper.RomSlice) ([]byte, error)
}

// Decode converts the raw table bytes to logical addresses in table order.
// Short pointers take the bank of the table itself.
func Decode(data []byte, view TableView) ([]mapper.LogicalAddress, error) {
	size := view.PointerSize()
	if len(data) < view.Length*size {
		return nil, fmt.Errorf("%w: %d bytes for %d pointers at %s", errTableTooShort, len(data), view.Length, view.Begin)
	}

	addresses := make([]mapper.LogicalAddress, 0, view.Length)
	bank := uint32(view.Begin) & mapper.MaskBank
	for i := range view.Length {
		entry := data[i*size:]
		value := uint32(entry[0]) | uint32(entry[1])<<8
		if view.LongPointers {
			value |= uint32(entry[2]) << 16
		} else {
			value |= bank
		}
		addresses = append(addresses, mapper.LogicalAddress(value))
	}
	return addresses, nil
}

// Resolve reads the table from ROM and returns its pointers.
func Resolve(r Reader, view TableView) ([]mapper.LogicalAddress, error) {
	data, err := r.ReadSlice(view.Slice())
	if err != nil {
		return nil, fmt.Errorf("reading jump table at %s: %w", view.Begin, err)
	}
	return Decode(data, view)
}

// JumpEngine holds the catalog of known tables and of table entries that do
// not point at code.
type JumpEngine struct {
	tables  []TableView
	nonCode set.Set[mapper.LogicalAddress]
}

// New returns a jump engine for the given tables.
func New(tables []TableView, nonCode ...mapper.LogicalAddress) *JumpEngine {
	j := &JumpEngine{
		tables:  tables,
		nonCode: set.New[mapper.LogicalAddress](),
	}
	for _, addr := range nonCode {
		j.nonCode.Add(addr)
	}
	return j
}

// Default returns a jump engine using the known table catalog.
func Default() *JumpEngine {
	return New(KnownTables)
}

// IsTrampoline returns whether the address is one of the dispatch trampolines.
func IsTrampoline(addr mapper.LogicalAddress) bool {
	return addr == ExecutePtr || addr == ExecutePtrLong
}

// Table returns the known table starting at the given address.
func (j *JumpEngine) Table(begin mapper.LogicalAddress) (TableView, bool) {
	for _, view := range j.tables {
		if view.Begin == begin {
			return view, true
		}
	}
	return TableView{}, false
}

// Tables returns all known tables.
func (j *JumpEngine) Tables() []TableView {
	return j.tables
}

// CodeTargets resolves a table and drops entries that can not be code:
// null pointers and addresses registered as non-code.
func (j *JumpEngine) CodeTargets(r Reader, view TableView) ([]mapper.LogicalAddress, error) {
	addresses, err := Resolve(r, view)
	if err != nil {
		return nil, err
	}

	targets := addresses[:0]
	for _, addr := range addresses {
		if addr.Absolute() == 0 || j.nonCode.Contains(addr) {
			continue
		}
		targets = append(targets, addr)
	}
	return targets, nil
}
