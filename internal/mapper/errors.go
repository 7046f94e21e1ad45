package mapper

import (
	"errors"
	"fmt"
)

var (
	// ErrNonCartridge is matched by every *AddressError.
	ErrNonCartridge = errors.New("non-cartridge address")
	// ErrUnknownScheme is returned for scheme values outside the supported set.
	ErrUnknownScheme = errors.New("unknown mapping scheme")
)

// AddressError reports an address that has no counterpart under a mapping scheme.
type AddressError struct {
	Address uint32
	Scheme  Scheme
	Logical bool // the address is a logical one, otherwise a physical offset
}

func (e *AddressError) Error() string {
	if e.Logical {
		return fmt.Sprintf("invalid logical %s address %s", e.Scheme, LogicalAddress(e.Address))
	}
	return fmt.Sprintf("invalid physical %s address %s", e.Scheme, PhysicalAddress(e.Address))
}

// Unwrap allows errors.Is(err, ErrNonCartridge).
func (e *AddressError) Unwrap() error {
	return ErrNonCartridge
}
