// Package symbols provides the symbol table used to name ROM addresses.
package symbols

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/SMW-Editor/smw-editor-sub001/internal/mapper"
	"github.com/retroenv/retrogolib/set"
)

// Symbol is a named logical address.
type Symbol struct {
	Name    string
	Address mapper.LogicalAddress
}

// Table maps symbol names to logical addresses and back.
// When several names share an address, the first one loaded names it.
type Table struct {
	names     map[string]mapper.LogicalAddress
	addresses map[mapper.LogicalAddress]string
	used      set.Set[mapper.LogicalAddress]
}

// New creates an empty symbol table.
func New() *Table {
	return &Table{
		names:     make(map[string]mapper.LogicalAddress),
		addresses: make(map[mapper.LogicalAddress]string),
		used:      set.New[mapper.LogicalAddress](),
	}
}

// Load reads symbols in the `<hex address> <name>` line format. Text after a
// ';' is a comment. Lines whose address does not parse are skipped and counted.
func (t *Table) Load(r io.Reader) (int, error) {
	skipped := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		addr, name, ok := strings.Cut(line, " ")
		name = strings.TrimSpace(name)
		value, err := strconv.ParseUint(addr, 16, 32)
		if !ok || name == "" || err != nil {
			skipped++
			continue
		}
		t.Set(name, mapper.LogicalAddress(value))
	}
	if err := scanner.Err(); err != nil {
		return skipped, fmt.Errorf("reading symbols: %w", err)
	}
	return skipped, nil
}

// Set adds or replaces a symbol.
func (t *Table) Set(name string, addr mapper.LogicalAddress) {
	if old, ok := t.names[name]; ok && t.addresses[old] == name {
		delete(t.addresses, old)
	}
	t.names[name] = addr
	if _, ok := t.addresses[addr]; !ok {
		t.addresses[addr] = name
	}
}

// Resolve returns the address of the named symbol.
func (t *Table) Resolve(name string) (mapper.LogicalAddress, bool) {
	addr, ok := t.names[name]
	return addr, ok
}

// Name returns the symbol naming the given address.
func (t *Table) Name(addr mapper.LogicalAddress) (string, bool) {
	name, ok := t.addresses[addr]
	return name, ok
}

// Has returns whether a symbol names the given address.
func (t *Table) Has(addr mapper.LogicalAddress) bool {
	_, ok := t.addresses[addr]
	return ok
}

// Len returns the number of symbol names in the table.
func (t *Table) Len() int {
	return len(t.names)
}

// Sorted returns all symbols ordered by address, then by name.
func (t *Table) Sorted() []Symbol {
	symbols := make([]Symbol, 0, len(t.names))
	for name, addr := range t.names {
		symbols = append(symbols, Symbol{Name: name, Address: addr})
	}
	slices.SortFunc(symbols, func(a, b Symbol) int {
		if a.Address != b.Address {
			return int(a.Address) - int(b.Address)
		}
		return strings.Compare(a.Name, b.Name)
	})
	return symbols
}

// Bank returns the symbols of one bank ordered by address.
func (t *Table) Bank(bank uint8) []Symbol {
	var symbols []Symbol
	for _, sym := range t.Sorted() {
		if sym.Address.Bank() == bank {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

// MarkUsed marks an address as referenced by the listing.
func (t *Table) MarkUsed(addr mapper.LogicalAddress) {
	t.used.Add(addr)
}

// IsUsed returns whether an address is marked as used.
func (t *Table) IsUsed(addr mapper.LogicalAddress) bool {
	return t.used.Contains(addr)
}
