package ir

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/evanacox/dawn/internal/types"
)

// Equal is deep structural value equality: two values are equal iff they
// have the same kind, the same type, the same extra fields (comparison
// order, volatile bit, phi incomings) and pairwise equal operands. For
// hash-consed constants this coincides with pointer identity inside one
// module; across modules it recurses structurally.
func Equal(a, b Value) bool {
	return equalValues(a, b, make(map[valuePair]bool))
}

type valuePair struct{ a, b Value }

func equalValues(a, b Value, seen map[valuePair]bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if !typeEqual(a.Type(), b.Type()) {
		return false
	}

	// operand graphs may cycle through phis; a pair already under
	// comparison is taken as equal
	pair := valuePair{a, b}
	if seen[pair] {
		return true
	}
	seen[pair] = true

	switch av := a.(type) {
	case *Argument:
		return av.index == b.(*Argument).index
	case *ConstantInt:
		return av.value == b.(*ConstantInt).value
	case *ConstantBool:
		return av.value == b.(*ConstantBool).value
	case *ConstantFloat:
		return av.Bits() == b.(*ConstantFloat).Bits()
	case *ConstantNull, *ConstantUndef:
		return true
	case *ConstantArray:
		return equalConstants(av.elems, b.(*ConstantArray).elems, seen)
	case *ConstantStruct:
		return equalConstants(av.elems, b.(*ConstantStruct).elems, seen)
	case *ConstantString:
		return av.data == b.(*ConstantString).data
	case *Phi:
		bv := b.(*Phi)
		if len(av.incoming) != len(bv.incoming) {
			return false
		}
		for i := range av.incoming {
			if !blockMatches(av.incoming[i].Block, bv.incoming[i].Block) {
				return false
			}
			if !equalValues(av.incoming[i].Value, bv.incoming[i].Value, seen) {
				return false
			}
		}
		return true
	case *Call:
		bv := b.(*Call)
		if !signatureMatches(av.target, bv.target) {
			return false
		}
		return equalOperands(av, bv, seen)
	case *ICmp:
		return av.order == b.(*ICmp).order && equalOperands(av, b.(*ICmp), seen)
	case *FCmp:
		return av.order == b.(*FCmp).order && equalOperands(av, b.(*FCmp), seen)
	case *Load:
		return av.volatile == b.(*Load).volatile && equalOperands(av, b.(*Load), seen)
	case *Store:
		return av.volatile == b.(*Store).volatile && equalOperands(av, b.(*Store), seen)
	case *Alloca:
		return typeEqual(av.allocated, b.(*Alloca).allocated) && equalOperands(av, b.(*Alloca), seen)
	case *Offset:
		return typeEqual(av.elem, b.(*Offset).elem) && equalOperands(av, b.(*Offset), seen)
	case *ElemPtr:
		return typeEqual(av.aggregate, b.(*ElemPtr).aggregate) && equalOperands(av, b.(*ElemPtr), seen)
	default:
		ai := a.(Instruction)
		bi := b.(Instruction)
		if !equalOperands(ai, bi, seen) {
			return false
		}
		if at, ok := a.(Terminator); ok {
			bt := b.(Terminator)
			aTargets, bTargets := at.PossibleBranchTargets(), bt.PossibleBranchTargets()
			if len(aTargets) != len(bTargets) {
				return false
			}
			for i := range aTargets {
				if !blockMatches(aTargets[i], bTargets[i]) {
					return false
				}
			}
		}
		return true
	}
}

func equalOperands(a, b Instruction, seen map[valuePair]bool) bool {
	aOps, bOps := a.Operands(), b.Operands()
	if len(aOps) != len(bOps) {
		return false
	}
	for i := range aOps {
		if !equalValues(aOps[i], bOps[i], seen) {
			return false
		}
	}
	return true
}

func equalConstants(a, b []Constant, seen map[valuePair]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalValues(a[i], b[i], seen) {
			return false
		}
	}
	return true
}

func typeEqual(a, b *types.Type) bool {
	if a == b {
		return true
	}
	return a != nil && b != nil && a.String() == b.String()
}

// blockMatches compares block references positionally: same identity, or
// same insertion ordinal and declared name for cross-module comparison.
func blockMatches(a, b *BasicBlock) bool {
	if a == b {
		return true
	}
	return a != nil && b != nil && a.id == b.id && a.name == b.name
}

func signatureMatches(a, b *Function) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.name != b.name || !typeEqual(a.ret, b.ret) {
		return false
	}
	if len(a.args) != len(b.args) {
		return false
	}
	for i := range a.args {
		if !typeEqual(a.args[i].Type(), b.args[i].Type()) {
			return false
		}
	}
	return true
}

// Hash digests a value consistently with Equal: Equal(v1, v2) implies
// Hash(v1) == Hash(v2).
func Hash(v Value) uint64 {
	d := xxhash.New()
	hashValue(d, v, make(map[Value]bool))
	return d.Sum64()
}

func hashValue(d *xxhash.Digest, v Value, onPath map[Value]bool) {
	if v == nil {
		d.Write([]byte{0xFE})
		return
	}
	if onPath[v] {
		// revisiting a value on the current path (a phi cycle); mix a
		// marker instead of recursing forever
		d.Write([]byte{0xFF})
		return
	}
	onPath[v] = true
	defer delete(onPath, v)

	d.Write([]byte{byte(v.Kind())})
	d.WriteString(v.Type().String())

	switch vv := v.(type) {
	case *Argument:
		hashU64(d, uint64(vv.index))
	case *ConstantInt:
		hashU64(d, vv.value.Value())
	case *ConstantBool:
		if vv.value {
			d.Write([]byte{1})
		} else {
			d.Write([]byte{0})
		}
	case *ConstantFloat:
		hashU64(d, vv.Bits())
	case *ConstantNull, *ConstantUndef:
	case *ConstantArray:
		for _, e := range vv.elems {
			hashValue(d, e, onPath)
		}
	case *ConstantStruct:
		for _, e := range vv.elems {
			hashValue(d, e, onPath)
		}
	case *ConstantString:
		d.WriteString(vv.data)
	case *Phi:
		for _, in := range vv.incoming {
			hashBlock(d, in.Block)
			hashValue(d, in.Value, onPath)
		}
	case *Call:
		d.WriteString(vv.target.name)
		hashOperands(d, vv, onPath)
	case *ICmp:
		d.Write([]byte{byte(vv.order)})
		hashOperands(d, vv, onPath)
	case *FCmp:
		d.Write([]byte{byte(vv.order)})
		hashOperands(d, vv, onPath)
	case *Load:
		hashBool(d, vv.volatile)
		hashOperands(d, vv, onPath)
	case *Store:
		hashBool(d, vv.volatile)
		hashOperands(d, vv, onPath)
	case *Alloca:
		d.WriteString(vv.allocated.String())
		hashOperands(d, vv, onPath)
	case *Offset:
		d.WriteString(vv.elem.String())
		hashOperands(d, vv, onPath)
	case *ElemPtr:
		d.WriteString(vv.aggregate.String())
		hashOperands(d, vv, onPath)
	default:
		inst := v.(Instruction)
		hashOperands(d, inst, onPath)
		if term, ok := v.(Terminator); ok {
			for _, target := range term.PossibleBranchTargets() {
				hashBlock(d, target)
			}
		}
	}
}

func hashOperands(d *xxhash.Digest, inst Instruction, onPath map[Value]bool) {
	for _, op := range inst.Operands() {
		hashValue(d, op, onPath)
	}
}

func hashBlock(d *xxhash.Digest, bb *BasicBlock) {
	hashU64(d, uint64(bb.id))
	d.WriteString(bb.name)
}

func hashU64(d *xxhash.Digest, x uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], x)
	d.Write(buf[:])
}

func hashBool(d *xxhash.Digest, b bool) {
	if b {
		d.Write([]byte{1})
	} else {
		d.Write([]byte{0})
	}
}

// DeepEquals checks that two modules are equivalent, not binary equal:
// functions are compared pairwise in insertion order, cascading through
// blocks and instructions with a cross-module value correspondence.
func (m *Module) DeepEquals(o *Module) bool {
	if o == nil || len(m.funcs) != len(o.funcs) {
		return false
	}
	for i := range m.funcs {
		if !funcDeepEqual(m.funcs[i], o.funcs[i]) {
			return false
		}
	}
	return true
}

func funcDeepEqual(a, b *Function) bool {
	if a.name != b.name || !typeEqual(a.ret, b.ret) {
		return false
	}
	if len(a.args) != len(b.args) || len(a.blocks) != len(b.blocks) {
		return false
	}
	for i := range a.args {
		if !typeEqual(a.args[i].Type(), b.args[i].Type()) {
			return false
		}
	}

	valueMap := make(map[Value]Value)
	blockMap := make(map[*BasicBlock]*BasicBlock)
	for i := range a.args {
		valueMap[a.args[i]] = b.args[i]
	}

	// map every block and instruction up front so forward references
	// (phi incomings, branch targets) resolve during comparison
	for i := range a.blocks {
		ab, bb := a.blocks[i], b.blocks[i]
		if ab.name != bb.name || len(ab.insts) != len(bb.insts) {
			return false
		}
		blockMap[ab] = bb
		for j := range ab.insts {
			valueMap[ab.insts[j]] = bb.insts[j]
		}
	}

	for i := range a.blocks {
		ab, bb := a.blocks[i], b.blocks[i]
		for j := range ab.insts {
			if !instDeepEqual(ab.insts[j], bb.insts[j], valueMap, blockMap) {
				return false
			}
		}
	}
	return true
}

func instDeepEqual(a, b Instruction, vm map[Value]Value, bm map[*BasicBlock]*BasicBlock) bool {
	if a.Kind() != b.Kind() || !typeEqual(a.Type(), b.Type()) {
		return false
	}

	switch av := a.(type) {
	case *Phi:
		bv := b.(*Phi)
		if len(av.incoming) != len(bv.incoming) {
			return false
		}
		for i := range av.incoming {
			if bm[av.incoming[i].Block] != bv.incoming[i].Block {
				return false
			}
			if !operandCorresponds(av.incoming[i].Value, bv.incoming[i].Value, vm) {
				return false
			}
		}
		return true
	case *Call:
		if !signatureMatches(av.target, b.(*Call).target) {
			return false
		}
	case *ICmp:
		if av.order != b.(*ICmp).order {
			return false
		}
	case *FCmp:
		if av.order != b.(*FCmp).order {
			return false
		}
	case *Load:
		if av.volatile != b.(*Load).volatile {
			return false
		}
	case *Store:
		if av.volatile != b.(*Store).volatile {
			return false
		}
	case *Alloca:
		if !typeEqual(av.allocated, b.(*Alloca).allocated) {
			return false
		}
	case *Offset:
		if !typeEqual(av.elem, b.(*Offset).elem) {
			return false
		}
	case *ElemPtr:
		if !typeEqual(av.aggregate, b.(*ElemPtr).aggregate) {
			return false
		}
	}

	aOps, bOps := a.Operands(), b.Operands()
	if len(aOps) != len(bOps) {
		return false
	}
	for i := range aOps {
		if !operandCorresponds(aOps[i], bOps[i], vm) {
			return false
		}
	}

	if at, ok := a.(Terminator); ok {
		bt := b.(Terminator)
		aTargets, bTargets := at.PossibleBranchTargets(), bt.PossibleBranchTargets()
		if len(aTargets) != len(bTargets) {
			return false
		}
		for i := range aTargets {
			if bm[aTargets[i]] != bTargets[i] {
				return false
			}
		}
	}
	return true
}

func operandCorresponds(a, b Value, vm map[Value]Value) bool {
	if mapped, ok := vm[a]; ok {
		return mapped == b
	}
	// not function-local, so a constant: compare structurally
	return Equal(a, b)
}
