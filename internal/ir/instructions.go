package ir

import (
	"fmt"

	"github.com/evanacox/dawn/internal/types"
)

// ICmpOrdering enumerates integer comparison predicates.
type ICmpOrdering uint8

const (
	ICmpEQ ICmpOrdering = iota
	ICmpNE
	ICmpULT
	ICmpUGT
	ICmpULE
	ICmpUGE
	ICmpSLT
	ICmpSGT
	ICmpSLE
	ICmpSGE
)

var icmpNames = [...]string{"eq", "ne", "ult", "ugt", "ule", "uge", "slt", "sgt", "sle", "sge"}

func (o ICmpOrdering) String() string {
	if int(o) < len(icmpNames) {
		return icmpNames[o]
	}
	return fmt.Sprintf("ICmpOrdering(%d)", o)
}

// FCmpOrdering enumerates float comparison predicates. The `o` forms are
// ordered (neither operand NaN), the `u` forms unordered.
type FCmpOrdering uint8

const (
	FCmpORD FCmpOrdering = iota
	FCmpUNO
	FCmpOEQ
	FCmpONE
	FCmpOGT
	FCmpOLT
	FCmpOGE
	FCmpOLE
	FCmpUEQ
	FCmpUNE
	FCmpUGT
	FCmpULT
	FCmpUGE
	FCmpULE
)

var fcmpNames = [...]string{
	"ord", "uno", "oeq", "one", "ogt", "olt", "oge", "ole",
	"ueq", "une", "ugt", "ult", "uge", "ule",
}

func (o FCmpOrdering) String() string {
	if int(o) < len(fcmpNames) {
		return fcmpNames[o]
	}
	return fmt.Sprintf("FCmpOrdering(%d)", o)
}

// Bitwise and shift instructions, legal on integers and bools.

type And struct{ binBase }
type Or struct{ binBase }
type Xor struct{ binBase }
type Shl struct{ binBase }
type LShr struct{ binBase }
type AShr struct{ binBase }

func (*And) Kind() ValueKind  { return KindAnd }
func (*Or) Kind() ValueKind   { return KindOr }
func (*Xor) Kind() ValueKind  { return KindXor }
func (*Shl) Kind() ValueKind  { return KindShl }
func (*LShr) Kind() ValueKind { return KindLShr }
func (*AShr) Kind() ValueKind { return KindAShr }

// Integer arithmetic.

type IAdd struct{ binBase }
type ISub struct{ binBase }
type IMul struct{ binBase }
type UDiv struct{ binBase }
type SDiv struct{ binBase }
type URem struct{ binBase }
type SRem struct{ binBase }

func (*IAdd) Kind() ValueKind { return KindIAdd }
func (*ISub) Kind() ValueKind { return KindISub }
func (*IMul) Kind() ValueKind { return KindIMul }
func (*UDiv) Kind() ValueKind { return KindUDiv }
func (*SDiv) Kind() ValueKind { return KindSDiv }
func (*URem) Kind() ValueKind { return KindURem }
func (*SRem) Kind() ValueKind { return KindSRem }

// Float arithmetic.

type FNeg struct{ binBase }
type FAdd struct{ binBase }
type FSub struct{ binBase }
type FMul struct{ binBase }
type FDiv struct{ binBase }
type FRem struct{ binBase }

func (*FNeg) Kind() ValueKind { return KindFNeg }
func (*FAdd) Kind() ValueKind { return KindFAdd }
func (*FSub) Kind() ValueKind { return KindFSub }
func (*FMul) Kind() ValueKind { return KindFMul }
func (*FDiv) Kind() ValueKind { return KindFDiv }
func (*FRem) Kind() ValueKind { return KindFRem }

// ICmp compares two integer or bool operands of the same type.
type ICmp struct {
	binBase
	order ICmpOrdering
}

func (*ICmp) Kind() ValueKind       { return KindICmp }
func (i *ICmp) Order() ICmpOrdering { return i.order }

// FCmp compares two float operands of the same type.
type FCmp struct {
	binBase
	order FCmpOrdering
}

func (*FCmp) Kind() ValueKind       { return KindFCmp }
func (f *FCmp) Order() FCmpOrdering { return f.order }

// Sel picks between two same-typed values based on a bool condition.
type Sel struct{ instBase }

func (*Sel) Kind() ValueKind   { return KindSel }
func (s *Sel) Cond() Value     { return s.ops[0] }
func (s *Sel) IfTrue() Value   { return s.ops[1] }
func (s *Sel) IfFalse() Value  { return s.ops[2] }

// Call transfers control to a function, passing arguments matching its
// signature, and produces its return value.
type Call struct {
	instBase
	target *Function
}

func (*Call) Kind() ValueKind      { return KindCall }
func (c *Call) Target() *Function  { return c.target }
func (c *Call) Args() []Value      { return c.ops }

// Br branches unconditionally.
type Br struct{ termBase }

func (*Br) Kind() ValueKind        { return KindBr }
func (b *Br) Target() *BasicBlock  { return b.targets[0] }

// CondBr branches on a bool condition.
type CondBr struct{ termBase }

func (*CondBr) Kind() ValueKind             { return KindCondBr }
func (c *CondBr) Cond() Value               { return c.ops[0] }
func (c *CondBr) TrueBranch() *BasicBlock   { return c.targets[0] }
func (c *CondBr) FalseBranch() *BasicBlock  { return c.targets[1] }

// Ret returns from the enclosing function, with a value unless the
// function returns void.
type Ret struct{ termBase }

func (*Ret) Kind() ValueKind { return KindRet }

// ReturnValue returns the returned value, or nil for a void return.
func (r *Ret) ReturnValue() Value {
	if len(r.ops) == 0 {
		return nil
	}
	return r.ops[0]
}

// Unreachable marks a point control never reaches.
type Unreachable struct{ termBase }

func (*Unreachable) Kind() ValueKind { return KindUnreachable }

// Alloca reserves stack storage for count objects of the element type and
// produces a ptr to the storage.
type Alloca struct {
	instBase
	allocated *types.Type
}

func (*Alloca) Kind() ValueKind               { return KindAlloca }
func (a *Alloca) AllocatedType() *types.Type  { return a.allocated }
func (a *Alloca) NumberOfObjects() Value      { return a.ops[0] }

// Load reads a value of the result type through a ptr.
type Load struct {
	instBase
	volatile bool
}

func (*Load) Kind() ValueKind   { return KindLoad }
func (l *Load) Target() Value   { return l.ops[0] }
func (l *Load) IsVolatile() bool { return l.volatile }

// Store writes a value through a ptr.
type Store struct {
	instBase
	volatile bool
}

func (*Store) Kind() ValueKind    { return KindStore }
func (s *Store) Stored() Value    { return s.ops[0] }
func (s *Store) Target() Value    { return s.ops[1] }
func (s *Store) IsVolatile() bool { return s.volatile }

// Offset computes base + index * sizeof(element type).
type Offset struct {
	instBase
	elem *types.Type
}

func (*Offset) Kind() ValueKind             { return KindOffset }
func (o *Offset) OffsetType() *types.Type   { return o.elem }
func (o *Offset) Base() Value               { return o.ops[0] }
func (o *Offset) Index() Value              { return o.ops[1] }

// Extract reads the element of an aggregate selected by an index. Struct
// access requires a constant index; array access may be dynamic.
type Extract struct{ instBase }

func (*Extract) Kind() ValueKind     { return KindExtract }
func (e *Extract) Aggregate() Value  { return e.ops[0] }
func (e *Extract) Index() Value      { return e.ops[1] }

// Insert produces a copy of an aggregate with one element replaced.
type Insert struct{ instBase }

func (*Insert) Kind() ValueKind     { return KindInsert }
func (i *Insert) Aggregate() Value  { return i.ops[0] }
func (i *Insert) Inserted() Value   { return i.ops[1] }
func (i *Insert) Index() Value      { return i.ops[2] }

// ElemPtr computes a ptr to the element of an aggregate selected by an
// index, given a ptr to the aggregate.
type ElemPtr struct {
	instBase
	aggregate *types.Type
}

func (*ElemPtr) Kind() ValueKind                { return KindElemPtr }
func (e *ElemPtr) AggregateType() *types.Type   { return e.aggregate }
func (e *ElemPtr) Base() Value                  { return e.ops[0] }
func (e *ElemPtr) Index() Value                 { return e.ops[1] }

// Conversions.

type Sext struct{ convBase }
type Zext struct{ convBase }
type Trunc struct{ convBase }
type IToB struct{ convBase }
type BToI struct{ convBase }
type SIToF struct{ convBase }
type UIToF struct{ convBase }
type FToSI struct{ convBase }
type FToUI struct{ convBase }
type IToP struct{ convBase }
type PToI struct{ convBase }

func (*Sext) Kind() ValueKind  { return KindSext }
func (*Zext) Kind() ValueKind  { return KindZext }
func (*Trunc) Kind() ValueKind { return KindTrunc }
func (*IToB) Kind() ValueKind  { return KindIToB }
func (*BToI) Kind() ValueKind  { return KindBToI }
func (*SIToF) Kind() ValueKind { return KindSIToF }
func (*UIToF) Kind() ValueKind { return KindUIToF }
func (*FToSI) Kind() ValueKind { return KindFToSI }
func (*FToUI) Kind() ValueKind { return KindFToUI }
func (*IToP) Kind() ValueKind  { return KindIToP }
func (*PToI) Kind() ValueKind  { return KindPToI }
