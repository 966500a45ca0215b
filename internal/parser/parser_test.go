package parser

import (
	"strings"
	"testing"

	"github.com/evanacox/dawn/internal/ir"
)

const canonicalIfElse = `func i32 @f(i32 $0) {
%entry:
    $1 = icmp eq i32 $0, 0
    cbr bool $1, if %if.true, else %if.false
%if.true:
    br %merge
%if.false:
    br %merge
%merge:
    ret i32 $0
}`

func mustParse(t *testing.T, src string) *ir.Module {
	t.Helper()
	mod, err := Parse(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return mod
}

func expectError(t *testing.T, src string, line int, fragment string) {
	t.Helper()
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("parse should have failed with %q", fragment)
	}
	if line != 0 && err.Line != line {
		t.Fatalf("error on line %d, want line %d (%v)", err.Line, line, err)
	}
	if !strings.Contains(err.Message, fragment) {
		t.Fatalf("error %q does not mention %q", err.Message, fragment)
	}
}

func TestParseCanonicalIfElse(t *testing.T) {
	mod := mustParse(t, canonicalIfElse)

	fn, ok := mod.FindFunc("f")
	if !ok {
		t.Fatalf("function '@f' not found")
	}
	blocks := fn.Blocks()
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(blocks))
	}
	wantOrder := []string{"entry", "if.true", "if.false", "merge"}
	for i, name := range wantOrder {
		if blocks[i].Name() != name {
			t.Fatalf("block %d is %q, want %q", i, blocks[i].Name(), name)
		}
	}
	if blocks[0].Instructions()[0].Kind() != ir.KindICmp {
		t.Fatalf("entry should start with the icmp")
	}
}

func TestRoundTrip(t *testing.T) {
	first := mustParse(t, canonicalIfElse)

	printed := ir.PrintModule(first)
	if !strings.Contains(printed, "func i32 @f(i32 $0) {") {
		t.Fatalf("print lost the signature:\n%s", printed)
	}

	second := mustParse(t, printed)
	if !first.DeepEquals(second) {
		t.Fatalf("parse(print(m)) must deep-equal m:\n%s", printed)
	}
	if ir.PrintModule(second) != printed {
		t.Fatalf("printing must be a fixed point after one round trip")
	}
}

func TestParseDeclAndCall(t *testing.T) {
	src := `decl i32 @ext(i32 $0, i8 $1)
func i32 @f(i32 $0) {
%entry:
    $1 = call i32 @ext(i32 $0, i8 3)
    ret i32 $1
}`
	mod := mustParse(t, src)
	ext, ok := mod.FindFunc("ext")
	if !ok || !ext.Opaque() {
		t.Fatalf("'@ext' should be an opaque declaration")
	}
	fn, _ := mod.FindFunc("f")
	call := fn.Entry().Instructions()[0].(*ir.Call)
	if call.Target() != ext || len(call.Args()) != 2 {
		t.Fatalf("call should target the declaration with two arguments")
	}
}

func TestCallCreatesDeclarationLazily(t *testing.T) {
	src := `func void @f() {
%entry:
    call void @later()
    ret void
}`
	mod := mustParse(t, src)
	if fn, ok := mod.FindFunc("later"); !ok || !fn.Opaque() {
		t.Fatalf("call should create an opaque '@later'")
	}
}

func TestCallSignatureMismatch(t *testing.T) {
	src := `decl i32 @ext(i32 $0)
func void @f() {
%entry:
    call i64 @ext(i32 1)
    ret void
}`
	expectError(t, src, 4, "wrong return type")
}

func TestPhiForwardReferences(t *testing.T) {
	src := `func void @f() {
%entry:
    br %bb0
%bb0:
    $0 = phi i32 [ 0, %entry ],
                 [ $2, %bb1 ]
    $1 = icmp eq i32 $0, 128
    cbr bool $1, if %bb2, else %bb1
%bb1:
    $2 = iadd i32 $0, 1
    br %bb0
%bb2:
    ret void
}`
	mod := mustParse(t, src)
	fn, _ := mod.FindFunc("f")
	phi := fn.Blocks()[1].Instructions()[0].(*ir.Phi)
	incoming := phi.Incoming()
	if len(incoming) != 2 {
		t.Fatalf("phi should have two incomings, got %d", len(incoming))
	}
	if incoming[0].Block.Name() != "entry" {
		t.Fatalf("incomings should sort with the entry block first")
	}
	if incoming[1].Value.Kind() != ir.KindIAdd {
		t.Fatalf("forward reference should resolve to the iadd")
	}
}

func TestPhiUnresolvedReferenceNamesLine(t *testing.T) {
	src := `func void @f() {
%entry:
    br %bb0
%bb0:
    $0 = phi i32 [ $9, %nowhere ]
    ret void
}`
	expectError(t, src, 5, "not found")
}

func TestValueNumberingMustBeContiguous(t *testing.T) {
	src := `func i32 @f(i32 $0) {
%entry:
    $3 = iadd i32 $0, 1
    ret i32 $3
}`
	expectError(t, src, 3, "expected next numbered value")
}

func TestArgumentNumberingMustStartAtZero(t *testing.T) {
	expectError(t, `decl void @f(i32 $1)`, 1, "expected next numbered value")
}

func TestNamedValuesAndBlocks(t *testing.T) {
	src := `func i32 @sum(i32 $lhs, i32 $rhs) {
%start:
    $result = iadd i32 $lhs, $rhs
    ret i32 $result
}`
	mod := mustParse(t, src)
	fn, _ := mod.FindFunc("sum")
	if fn.Entry().Name() != "start" {
		t.Fatalf("declared block name should be preserved")
	}
	if fn.Entry().Instructions()[0].Kind() != ir.KindIAdd {
		t.Fatalf("named values should resolve")
	}
}

func TestIntegerLiteralBases(t *testing.T) {
	src := `func void @f() {
%entry:
    $0 = iadd i32 0b101, 0o17
    $1 = iadd i32 0x2A, 42
    $2 = iadd i64 -1, 0
    ret void
}`
	mod := mustParse(t, src)
	fn, _ := mod.FindFunc("f")
	insts := fn.Entry().Instructions()

	first := insts[0].(*ir.IAdd)
	if first.Lhs().(*ir.ConstantInt).RealValue() != 5 {
		t.Fatalf("0b101 should be 5")
	}
	if first.Rhs().(*ir.ConstantInt).RealValue() != 15 {
		t.Fatalf("0o17 should be 15")
	}
	second := insts[1].(*ir.IAdd)
	if second.Lhs() != second.Rhs() {
		t.Fatalf("0x2A and 42 must intern to the same constant")
	}
	third := insts[2].(*ir.IAdd)
	if third.Lhs().(*ir.ConstantInt).RealValue() != ^uint64(0) {
		t.Fatalf("-1 at width 64 is all ones")
	}
}

func TestFloatLiteralForms(t *testing.T) {
	src := `func void @f() {
%entry:
    $0 = fadd f64 1.5, 1.0e+1
    $1 = fadd f64 0xfp3ff0000000000000, 0x1.8p1
    $2 = fadd f32 0xfp3f800000, 2.0
    ret void
}`
	mod := mustParse(t, src)
	fn, _ := mod.FindFunc("f")
	insts := fn.Entry().Instructions()

	first := insts[0].(*ir.FAdd)
	if first.Lhs().(*ir.ConstantFloat).Value() != 1.5 {
		t.Fatalf("1.5 should parse exactly")
	}
	if first.Rhs().(*ir.ConstantFloat).Value() != 10.0 {
		t.Fatalf("1.0e+1 should be 10")
	}
	second := insts[1].(*ir.FAdd)
	if second.Lhs().(*ir.ConstantFloat).Value() != 1.0 {
		t.Fatalf("bit pattern 0x3ff0000000000000 is 1.0")
	}
	if second.Rhs().(*ir.ConstantFloat).Value() != 3.0 {
		t.Fatalf("C hex float 0x1.8p1 is 3.0")
	}
	third := insts[2].(*ir.FAdd)
	if third.Lhs().(*ir.ConstantFloat).Value() != 1.0 {
		t.Fatalf("bit pattern 0x3f800000 is 1.0f")
	}
}

func TestStringEscapes(t *testing.T) {
	src := `func void @f() {
%entry:
    store [i8; 6] "a\tb\n\x7f\0", ptr null
    ret void
}`
	mod := mustParse(t, src)
	fn, _ := mod.FindFunc("f")
	store := fn.Entry().Instructions()[0].(*ir.Store)
	str := store.Stored().(*ir.ConstantString)
	if str.StringData() != "a\tb\n\x7f\x00" {
		t.Fatalf("escapes decoded to %q", str.StringData())
	}
}

func TestAggregateConstants(t *testing.T) {
	src := `func void @f() {
%entry:
    store [i8; 3] [1, 2, 3], ptr null
    store { i32 bool } { 7, true }, ptr null
    ret void
}`
	mod := mustParse(t, src)
	fn, _ := mod.FindFunc("f")
	arr := fn.Entry().Instructions()[0].(*ir.Store).Stored().(*ir.ConstantArray)
	if len(arr.Values()) != 3 {
		t.Fatalf("array constant should have 3 elements")
	}
	st := fn.Entry().Instructions()[1].(*ir.Store).Stored().(*ir.ConstantStruct)
	if len(st.Values()) != 2 {
		t.Fatalf("struct constant should have 2 elements")
	}
}

func TestMemoryOpsRoundTrip(t *testing.T) {
	src := `func void @f() {
%entry:
    $0 = alloca i32, i64 4
    $1 = index i32, ptr $0, i64 2
    store volatile i32 1, ptr $1
    $2 = load volatile i32, ptr $1
    $3 = elemptr { i32 f64 }, ptr $0, i64 1
    $4 = extract [i8; 2] [1, 2], i64 0
    $5 = insert [i8; 2] [1, 2], i8 9, i64 1
    ret void
}`
	first := mustParse(t, src)
	second := mustParse(t, ir.PrintModule(first))
	if !first.DeepEquals(second) {
		t.Fatalf("memory ops must round-trip:\n%s", ir.PrintModule(first))
	}
}

func TestConversionsRoundTrip(t *testing.T) {
	src := `func void @f(i32 $0, f64 $1, ptr $2, bool $3) {
%entry:
    $4 = sext i64, i32 $0
    $5 = zext i64, i32 $0
    $6 = trunc i8, i32 $0
    $7 = itob bool, i32 $0
    $8 = btoi i32, bool $3
    $9 = sitof f32, i32 $0
    $10 = uitof f64, i32 $0
    $11 = ftosi i32, f64 $1
    $12 = ftoui i64, f64 $1
    $13 = itop ptr, i32 $0
    $14 = ptoi i64, ptr $2
    ret void
}`
	first := mustParse(t, src)
	second := mustParse(t, ir.PrintModule(first))
	if !first.DeepEquals(second) {
		t.Fatalf("conversions must round-trip:\n%s", ir.PrintModule(first))
	}
}

func TestSextWidthErrorIsParseError(t *testing.T) {
	src := `func void @f(i32 $0) {
%entry:
    $1 = sext i32, i32 $0
    ret void
}`
	expectError(t, src, 3, "must expand the integer")
}

func TestTypeMismatchNamesLine(t *testing.T) {
	src := `func i32 @f(i32 $0) {
%entry:
    $1 = iadd i64 $0, 1
    ret i32 $1
}`
	expectError(t, src, 3, "expected to be of type")
}

func TestUnlabeledValueInstructionRejected(t *testing.T) {
	src := `func void @f() {
%entry:
    iadd i32 1, 2
    ret void
}`
	expectError(t, src, 3, "expected instruction to be labeled")
}

func TestUnknownTokenNamesLine(t *testing.T) {
	src := "func void @f() {\n%entry:\n    bogus\n}"
	expectError(t, src, 3, "unexpected token")
}

func TestCommentsAreIgnored(t *testing.T) {
	src := `; leading comment
func i32 @f(i32 $0) { ; trailing
%entry: ; block comment
    ret i32 $0
}`
	mod := mustParse(t, src)
	if _, ok := mod.FindFunc("f"); !ok {
		t.Fatalf("comments should not affect parsing")
	}
}

func TestSelAndCbr(t *testing.T) {
	src := `func i32 @f(i32 $0, bool $1) {
%entry:
    $2 = sel i32, bool $1, if $0, else 9
    cbr bool $1, if %a, else %b
%a:
    ret i32 $2
%b:
    unreachable
}`
	mod := mustParse(t, src)
	fn, _ := mod.FindFunc("f")
	sel := fn.Entry().Instructions()[0].(*ir.Sel)
	if sel.IfFalse().(*ir.ConstantInt).RealValue() != 9 {
		t.Fatalf("sel else-value should be the constant 9")
	}
	second := mustParse(t, ir.PrintModule(mod))
	if !mod.DeepEquals(second) {
		t.Fatalf("sel/cbr must round-trip")
	}
}
