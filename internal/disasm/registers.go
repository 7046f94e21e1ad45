package disasm

// PRegister is the processor status register. Only the width bits M and X
// influence decoding; the rest are tracked for display.
type PRegister uint8

// Status register bits.
const (
	FlagCarry PRegister = 1 << iota
	FlagZero
	FlagIRQDisable
	FlagDecimal
	FlagIndex8       // X: 8-bit index registers
	FlagAccumulator8 // M: 8-bit accumulator
	FlagOverflow
	FlagNegative
)

// InitialPRegister is the status register state assumed at every entry point.
const InitialPRegister = FlagIndex8 | FlagAccumulator8

func (p PRegister) N() bool { return p&FlagNegative != 0 }
func (p PRegister) V() bool { return p&FlagOverflow != 0 }
func (p PRegister) M() bool { return p&FlagAccumulator8 != 0 }
func (p PRegister) X() bool { return p&FlagIndex8 != 0 }
func (p PRegister) D() bool { return p&FlagDecimal != 0 }
func (p PRegister) I() bool { return p&FlagIRQDisable != 0 }
func (p PRegister) Z() bool { return p&FlagZero != 0 }
func (p PRegister) C() bool { return p&FlagCarry != 0 }

// String renders the register as NVMXDIZC with lowercase letters for cleared bits.
func (p PRegister) String() string {
	const names = "NVMXDIZC"
	b := []byte("nvmxdizc")
	for i := range 8 {
		if p&(0x80>>i) != 0 {
			b[i] = names[i]
		}
	}
	return string(b)
}
