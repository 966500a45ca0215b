package match

import (
	"testing"

	"github.com/evanacox/dawn/internal/analysis"
	"github.com/evanacox/dawn/internal/ir"
	"github.com/evanacox/dawn/internal/parser"
	"github.com/evanacox/dawn/internal/types"
)

func setup(t *testing.T) (*analysis.Manager, *ir.Function) {
	t.Helper()
	src := `func i32 @f(i32 $0) {
%entry:
    $1 = iadd i32 $0, 42
    $2 = icmp eq i32 $1, 0
    $3 = sel i32, bool $2, if $1, else 0
    ret i32 $3
}`
	mod, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	fn, _ := mod.FindFunc("f")
	return analysis.NewManager(mod), fn
}

func TestClassAndBinaryMatchers(t *testing.T) {
	am, fn := setup(t)
	insts := fn.Entry().Instructions()
	iadd, icmp := insts[0], insts[1]

	if !Matches(iadd, am, IAdd(Any(), Any())) {
		t.Fatalf("iadd should match the iadd pattern")
	}
	if Matches(icmp, am, IAdd(Any(), Any())) {
		t.Fatalf("icmp is not an iadd")
	}
	if !Matches(iadd, am, IAdd(Arg(), ConstInt())) {
		t.Fatalf("operand sub-patterns should match")
	}
	if Matches(iadd, am, IAdd(ConstInt(), ConstInt())) {
		t.Fatalf("lhs is an argument, not a constant")
	}
	if !Matches(icmp, am, ICmpWithOrder(ir.ICmpEQ, Any(), Zero())) {
		t.Fatalf("the comparison is an eq against zero")
	}
	if Matches(icmp, am, ICmpWithOrder(ir.ICmpNE, Any(), Any())) {
		t.Fatalf("ordering must be part of the match")
	}
}

func TestCaptures(t *testing.T) {
	am, fn := setup(t)
	iadd := fn.Entry().Instructions()[0]

	var captured *ir.IAdd
	var rhs *ir.ConstantInt
	pattern := BinaryAs(&captured, Any(), ConstIntAs(&rhs))
	if !Matches(iadd, am, pattern) {
		t.Fatalf("pattern should match")
	}
	if captured == nil || ir.Value(captured) != iadd {
		t.Fatalf("capture should receive the matched instruction")
	}
	if rhs == nil || rhs.RealValue() != 42 {
		t.Fatalf("sub-capture should receive the constant")
	}
}

func TestTypeClassMatchers(t *testing.T) {
	am, fn := setup(t)
	insts := fn.Entry().Instructions()
	iadd, icmp := insts[0], insts[1]

	if !Matches(iadd, am, OfIntTy()) || Matches(iadd, am, OfFloatTy()) {
		t.Fatalf("iadd has integer type")
	}
	if !Matches(icmp, am, OfBoolTy()) {
		t.Fatalf("icmp has bool type")
	}

	var ty *types.Type
	if !Matches(iadd, am, TyAs(&ty)) || ty == nil || !ty.IsInt() {
		t.Fatalf("type capture should receive i32")
	}
}

func TestCombinators(t *testing.T) {
	am, fn := setup(t)
	iadd := fn.Entry().Instructions()[0]

	if !Matches(iadd, am, Both(OfIntTy(), IAdd(Any(), Any()))) {
		t.Fatalf("both conditions hold")
	}
	if Matches(iadd, am, Both(OfFloatTy(), IAdd(Any(), Any()))) {
		t.Fatalf("both requires both")
	}
	if !Matches(iadd, am, OneOf(FAdd(Any(), Any()), IAdd(Any(), Any()))) {
		t.Fatalf("one alternative matches")
	}
	if Matches(iadd, am, OneOf(FAdd(Any(), Any()), ISub(Any(), Any()))) {
		t.Fatalf("no alternative matches")
	}
	if !Matches(iadd, am, All(Any(), OfIntTy(), Class[*ir.IAdd]())) {
		t.Fatalf("all conditions hold")
	}
}
