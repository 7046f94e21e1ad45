package disasm

// FlagEffect classifies how an instruction changes the status register
// during static analysis. Arithmetic side effects on N/V/Z/C are not modelled.
type FlagEffect uint8

const (
	EffectNone       FlagEffect = iota
	EffectSetOperand            // SEP: set the bits given by the operand
	EffectClearOperand          // REP: clear the bits given by the operand
	EffectSetFixed              // SEC, SED, SEI
	EffectClearFixed            // CLC, CLD, CLI, CLV
	EffectPush                  // PHP
	EffectPull                  // PLP
)

type flagRule struct {
	effect FlagEffect
	mask   PRegister
}

var flagRules = map[Mnemonic]flagRule{
	SEP: {effect: EffectSetOperand},
	REP: {effect: EffectClearOperand},
	SEC: {effect: EffectSetFixed, mask: FlagCarry},
	SED: {effect: EffectSetFixed, mask: FlagDecimal},
	SEI: {effect: EffectSetFixed, mask: FlagIRQDisable},
	CLC: {effect: EffectClearFixed, mask: FlagCarry},
	CLD: {effect: EffectClearFixed, mask: FlagDecimal},
	CLI: {effect: EffectClearFixed, mask: FlagIRQDisable},
	CLV: {effect: EffectClearFixed, mask: FlagOverflow},
	PHP: {effect: EffectPush},
	PLP: {effect: EffectPull},
}

// FlagEffectOf returns the status register effect of a mnemonic.
func FlagEffectOf(m Mnemonic) FlagEffect {
	return flagRules[m].effect
}

// Processor is the status register state tracked while decoding code blocks.
type Processor struct {
	P     PRegister
	stack []PRegister
}

// NewProcessor returns the state assumed at entry points: 8-bit accumulator and index registers.
func NewProcessor() Processor {
	return Processor{P: InitialPRegister}
}

// Clone returns an independent copy of the state.
func (p Processor) Clone() Processor {
	p.stack = append([]PRegister(nil), p.stack...)
	return p
}

// Equal returns whether both states have the same register and stack contents.
func (p Processor) Equal(other Processor) bool {
	if p.P != other.P || len(p.stack) != len(other.stack) {
		return false
	}
	for i := range p.stack {
		if p.stack[i] != other.stack[i] {
			return false
		}
	}
	return true
}

// StackDepth returns the number of pushed status values.
func (p Processor) StackDepth() int {
	return len(p.stack)
}

// Execute applies the status register effect of an instruction.
// A pull from an empty stack leaves the register unchanged.
func (p *Processor) Execute(ins Instruction) {
	rule := flagRules[ins.Opcode.Mnemonic]
	switch rule.effect {
	case EffectSetOperand:
		p.P |= PRegister(ins.Operands[0])
	case EffectClearOperand:
		p.P &^= PRegister(ins.Operands[0])
	case EffectSetFixed:
		p.P |= rule.mask
	case EffectClearFixed:
		p.P &^= rule.mask
	case EffectPush:
		p.stack = append(p.stack, p.P)
	case EffectPull:
		if n := len(p.stack); n > 0 {
			p.P = p.stack[n-1]
			p.stack = p.stack[:n-1]
		}
	case EffectNone:
	}
}
