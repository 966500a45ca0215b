package ir

import (
	"github.com/evanacox/dawn/internal/types"
)

// ValueKind enumerates every value variant. The ordering groups the
// instruction ranges so the predicate helpers below stay single
// comparisons, mirroring the textual opcode set.
type ValueKind uint8

const (
	KindPhi ValueKind = iota
	KindCall
	KindSel
	KindBr
	KindCondBr
	KindRet
	KindUnreachable
	KindAnd
	KindOr
	KindXor
	KindShl
	KindLShr
	KindAShr
	KindIAdd
	KindISub
	KindIMul
	KindUDiv
	KindSDiv
	KindURem
	KindSRem
	KindFNeg
	KindFAdd
	KindFSub
	KindFMul
	KindFDiv
	KindFRem
	KindICmp
	KindFCmp
	KindAlloca
	KindLoad
	KindStore
	KindOffset
	KindExtract
	KindInsert
	KindElemPtr
	KindSext
	KindZext
	KindTrunc
	KindIToB
	KindBToI
	KindSIToF
	KindUIToF
	KindFToSI
	KindFToUI
	KindIToP
	KindPToI
	KindConstInt
	KindConstFloat
	KindConstArray
	KindConstStruct
	KindConstNull
	KindConstBool
	KindConstUndef
	KindConstString
	KindArgument
)

// IsInstruction reports whether the kind is any instruction variant.
func (k ValueKind) IsInstruction() bool { return k <= KindPToI }

// IsTerminator reports whether the kind must end a basic block.
func (k ValueKind) IsTerminator() bool { return k >= KindBr && k <= KindUnreachable }

// IsBinary reports whether the kind is a two-operand arithmetic, logic or
// comparison instruction.
func (k ValueKind) IsBinary() bool { return k >= KindAnd && k <= KindFCmp }

// IsConversion reports whether the kind is a conversion instruction.
func (k ValueKind) IsConversion() bool { return k >= KindSext && k <= KindPToI }

// IsConstant reports whether the kind is a constant variant.
func (k ValueKind) IsConstant() bool { return k >= KindConstInt && k <= KindConstString }

var kindNames = [...]string{
	KindPhi:         "phi",
	KindCall:        "call",
	KindSel:         "sel",
	KindBr:          "br",
	KindCondBr:      "cbr",
	KindRet:         "ret",
	KindUnreachable: "unreachable",
	KindAnd:         "and",
	KindOr:          "or",
	KindXor:         "xor",
	KindShl:         "shl",
	KindLShr:        "lshr",
	KindAShr:        "ashr",
	KindIAdd:        "iadd",
	KindISub:        "isub",
	KindIMul:        "imul",
	KindUDiv:        "udiv",
	KindSDiv:        "sdiv",
	KindURem:        "urem",
	KindSRem:        "srem",
	KindFNeg:        "fneg",
	KindFAdd:        "fadd",
	KindFSub:        "fsub",
	KindFMul:        "fmul",
	KindFDiv:        "fdiv",
	KindFRem:        "frem",
	KindICmp:        "icmp",
	KindFCmp:        "fcmp",
	KindAlloca:      "alloca",
	KindLoad:        "load",
	KindStore:       "store",
	KindOffset:      "index",
	KindExtract:     "extract",
	KindInsert:      "insert",
	KindElemPtr:     "elemptr",
	KindSext:        "sext",
	KindZext:        "zext",
	KindTrunc:       "trunc",
	KindIToB:        "itob",
	KindBToI:        "btoi",
	KindSIToF:       "sitof",
	KindUIToF:       "uitof",
	KindFToSI:       "ftosi",
	KindFToUI:       "ftoui",
	KindIToP:        "itop",
	KindPToI:        "ptoi",
	KindConstInt:    "const-int",
	KindConstFloat:  "const-float",
	KindConstArray:  "const-array",
	KindConstStruct: "const-struct",
	KindConstNull:   "null",
	KindConstBool:   "const-bool",
	KindConstUndef:  "undef",
	KindConstString: "const-string",
	KindArgument:    "argument",
}

func (k ValueKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is the polymorphic root of the value universe. Every value has a
// kind tag and a type (Void included, for terminators and stores).
//
// Values are owned by their Module; holders keep non-owning references.
type Value interface {
	Kind() ValueKind
	Type() *types.Type

	// seq is the module-scoped creation id, used to order values
	// deterministically (phi incoming sort, interning keys).
	seq() uint64
}

// valueBase is the common header embedded by every value variant.
type valueBase struct {
	ty  *types.Type
	vid uint64
}

func (v *valueBase) Type() *types.Type { return v.ty }
func (v *valueBase) seq() uint64       { return v.vid }

// Argument is a positional function parameter.
type Argument struct {
	valueBase
	index int
}

func (a *Argument) Kind() ValueKind { return KindArgument }

// Index returns the zero-based position in the function's parameter list.
func (a *Argument) Index() int { return a.index }
