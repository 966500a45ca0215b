package ir

import "sort"

// Incoming is one (block, value) pair of a phi.
type Incoming struct {
	Block *BasicBlock
	Value Value
}

// Phi merges values flowing in from predecessor blocks. The incoming list
// is kept sorted by (block, value) after every addition, so two phis with
// identical incoming sets compare and hash identically regardless of
// insertion order.
type Phi struct {
	valueBase
	incoming []Incoming
}

func (*Phi) Kind() ValueKind { return KindPhi }

// Incoming returns the sorted incoming list.
func (p *Phi) Incoming() []Incoming { return p.incoming }

// AddIncoming inserts a (block, value) pair at its sorted position. The
// value's type must match the phi's declared type.
func (p *Phi) AddIncoming(from *BasicBlock, value Value) {
	if from == nil {
		violated("phi incoming block must not be nil")
	}
	if value.Type() != p.ty {
		violated("phi of type '%s' cannot accept incoming value of type '%s'",
			p.ty, value.Type())
	}
	entry := Incoming{Block: from, Value: value}
	at := sort.Search(len(p.incoming), func(i int) bool {
		return incomingLess(entry, p.incoming[i])
	})
	p.incoming = append(p.incoming, Incoming{})
	copy(p.incoming[at+1:], p.incoming[at:])
	p.incoming[at] = entry
}

// ReplaceBlockRef swaps every incoming reference to old for new, then
// restores sort order.
func (p *Phi) ReplaceBlockRef(old, new *BasicBlock) {
	for i := range p.incoming {
		if p.incoming[i].Block == old {
			p.incoming[i].Block = new
		}
	}
	p.resort()
}

// Operands projects the incoming values, in incoming order.
func (p *Phi) Operands() []Value {
	ops := make([]Value, len(p.incoming))
	for i, in := range p.incoming {
		ops[i] = in.Value
	}
	return ops
}

func (p *Phi) Uses(v Value) bool { return p.UseCount(v) > 0 }

func (p *Phi) UseCount(v Value) int {
	n := 0
	for _, in := range p.incoming {
		if in.Value == v {
			n++
		}
	}
	return n
}

func (p *Phi) ReplaceOperandWith(old, new Value) {
	for i := range p.incoming {
		if p.incoming[i].Value == old {
			if old.Type() != new.Type() {
				violated("replacement operand type '%s' differs from '%s'",
					new.Type(), old.Type())
			}
			p.incoming[i].Value = new
		}
	}
	p.resort()
}

func (p *Phi) resort() {
	sort.SliceStable(p.incoming, func(i, j int) bool {
		return incomingLess(p.incoming[i], p.incoming[j])
	})
}

// incomingLess orders by (block insertion ordinal, value creation id); both
// components are insertion-stable so iteration is deterministic.
func incomingLess(a, b Incoming) bool {
	if a.Block != b.Block {
		return a.Block.ID() < b.Block.ID()
	}
	return a.Value.seq() < b.Value.seq()
}
