package ir

import (
	"github.com/evanacox/dawn/internal/types"
)

// Instruction is any value computed at runtime inside a basic block. The
// operand sequence is ordered; operands are non-owning references into the
// Module's tables.
type Instruction interface {
	Value

	// Operands returns the ordered operand sequence.
	Operands() []Value

	// Uses reports whether v appears among the operands.
	Uses(v Value) bool

	// UseCount counts occurrences of v among the operands.
	UseCount(v Value) int

	// ReplaceOperandWith swaps every occurrence of old for new. The
	// replacement must have the same type as the operand it replaces.
	ReplaceOperandWith(old, new Value)
}

// Terminator is an instruction that must end a basic block.
type Terminator interface {
	Instruction

	// PossibleBranchTargets returns the blocks control may transfer to.
	PossibleBranchTargets() []*BasicBlock

	// CanBranchTo reports whether b is among the branch targets.
	CanBranchTo(b *BasicBlock) bool

	// ReplaceBranchTarget swaps every occurrence of old for new.
	ReplaceBranchTarget(old, new *BasicBlock)
}

// BinaryInstruction is implemented by every two-operand arithmetic, logic
// and comparison instruction.
type BinaryInstruction interface {
	Instruction
	Lhs() Value
	Rhs() Value
}

// ConversionInstruction is implemented by every conversion instruction.
type ConversionInstruction interface {
	Instruction

	// From returns the value being converted.
	From() Value

	// Into returns the result type of the conversion.
	Into() *types.Type
}

type instBase struct {
	valueBase
	ops []Value
}

func (i *instBase) Operands() []Value { return i.ops }

func (i *instBase) Uses(v Value) bool { return i.UseCount(v) > 0 }

func (i *instBase) UseCount(v Value) int {
	n := 0
	for _, op := range i.ops {
		if op == v {
			n++
		}
	}
	return n
}

func (i *instBase) ReplaceOperandWith(old, new Value) {
	replaceOperands(i.ops, old, new)
}

func replaceOperands(ops []Value, old, new Value) {
	for idx, op := range ops {
		if op == old {
			if old.Type() != new.Type() {
				violated("replacement operand type '%s' differs from '%s'",
					new.Type(), old.Type())
			}
			ops[idx] = new
		}
	}
}

type termBase struct {
	instBase
	targets []*BasicBlock
}

func (t *termBase) PossibleBranchTargets() []*BasicBlock { return t.targets }

func (t *termBase) CanBranchTo(b *BasicBlock) bool {
	for _, target := range t.targets {
		if target == b {
			return true
		}
	}
	return false
}

func (t *termBase) ReplaceBranchTarget(old, new *BasicBlock) {
	for i, target := range t.targets {
		if target == old {
			t.targets[i] = new
		}
	}
}

type binBase struct {
	instBase
}

func (b *binBase) Lhs() Value { return b.ops[0] }
func (b *binBase) Rhs() Value { return b.ops[1] }

type convBase struct {
	instBase
}

func (c *convBase) From() Value        { return c.ops[0] }
func (c *convBase) Into() *types.Type  { return c.ty }
