package ir

import (
	"testing"

	"github.com/evanacox/dawn/internal/types"
)

func TestPrintCanonicalIfElse(t *testing.T) {
	mod := NewModule()
	b := NewBuilder(mod)
	fn := b.CreateFunc("f", mod.I32(), []*types.Type{mod.I32()})
	b.SetInsertFn(fn)
	entry := b.CreateNamedBlock("entry")
	ifTrue := b.CreateNamedBlock("if.true")
	ifFalse := b.CreateNamedBlock("if.false")
	merge := b.CreateNamedBlock("merge")

	b.SetInsertPoint(entry)
	cond := b.CreateICmp(ICmpEQ, fn.Args()[0], b.ConstI32(0))
	b.CreateCondBr(cond, ifTrue, ifFalse)
	b.SetInsertPoint(ifTrue)
	b.CreateBr(merge)
	b.SetInsertPoint(ifFalse)
	b.CreateBr(merge)
	b.SetInsertPoint(merge)
	b.CreateRet(fn.Args()[0])

	want := `func i32 @f(i32 $0) {
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
	if got := PrintFunction(mod, fn); got != want {
		t.Fatalf("printed:\n%s\nwant:\n%s", got, want)
	}
	if got := PrintModule(mod); got != want+"\n\n" {
		t.Fatalf("module print should end each function with a blank line")
	}
}

func TestPrintPhiAlignment(t *testing.T) {
	mod := NewModule()
	b := NewBuilder(mod)
	bb1, bb2, _ := buildDiamond(t, b)

	phi := b.CreatePhi(mod.I64())
	phi.AddIncoming(bb1, b.ConstI64(3))
	phi.AddIncoming(bb2, b.ConstI64(1))
	b.CreateRet(phi)

	fn := b.Module().Functions()[0]
	want := `func i64 @f(i32 $0) {
%entry:
    $1 = icmp eq i32 $0, 0
    cbr bool $1, if %bb1, else %bb2
%bb1:
    br %bb3
%bb2:
    br %bb3
%bb3:
    $2 = phi i64 [ 3, %bb1 ],
                 [ 1, %bb2 ]
    ret i64 $2
}`
	if got := PrintFunction(mod, fn); got != want {
		t.Fatalf("printed:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintDeclAndBlockNaming(t *testing.T) {
	mod := NewModule()
	b := NewBuilder(mod)
	decl := b.CreateFunc("g", mod.I32(), []*types.Type{mod.I8(), mod.Ptr()})
	if got := PrintFunction(mod, decl); got != "decl i32 @g(i8 $0, ptr $1)" {
		t.Fatalf("decl printed as %q", got)
	}

	fn := b.CreateFunc("f", mod.Void(), nil)
	b.SetInsertFn(fn)
	entry := b.CreateBlock()
	other := b.CreateBlock()
	b.SetInsertPoint(entry)
	b.CreateBr(other)
	b.SetInsertPoint(other)
	b.CreateRetVoid()

	want := `func void @f() {
%entry:
    br %bb0
%bb0:
    ret void
}`
	if got := PrintFunction(mod, fn); got != want {
		t.Fatalf("unnamed blocks should number from bb0:\n%s", got)
	}
}

func TestPrintConstants(t *testing.T) {
	mod := NewModule()
	b := NewBuilder(mod)
	testFunc(t, b, "f", mod.Void(), nil)

	store := func(v Value) string {
		inst := b.CreateStore(v, b.ConstNull(), false)
		return PrintValue(mod, inst)
	}

	tests := []struct {
		val  Value
		want string
	}{
		{b.ConstI32(42), "store i32 42, ptr null"},
		{b.ConstTrue(), "store bool true, ptr null"},
		{b.ConstUndef(mod.I8()), "store i8 undef, ptr null"},
		{b.ConstF64(1.0), "store f64 0xfp3ff0000000000000, ptr null"},
		{b.ConstF32(1.0), "store f32 0xfp3f800000, ptr null"},
		{
			b.ConstArray([]Constant{b.ConstI8(1), b.ConstI8(2)}),
			"store [i8; 2] [1, 2], ptr null",
		},
		{
			b.ConstStruct([]Constant{b.ConstI32(1), b.ConstTrue()}),
			"store { i32 bool } { 1, true }, ptr null",
		},
		{b.ConstString("hi\n"), `store [i8; 3] "hi\n", ptr null`},
	}
	for _, tt := range tests {
		if got := store(tt.val); got != tt.want {
			t.Fatalf("printed %q, want %q", got, tt.want)
		}
	}
}

func TestPrintMemoryOps(t *testing.T) {
	mod := NewModule()
	b := NewBuilder(mod)
	testFunc(t, b, "f", mod.Void(), nil)

	alloca := b.CreateAlloca(mod.I32())
	if got := PrintValue(mod, alloca); got != "$0 = alloca i32" {
		t.Fatalf("alloca with count 1 hides the count, got %q", got)
	}
	sized := b.CreateAllocaCount(mod.I32(), b.ConstI64(4))
	if got := PrintValue(mod, sized); got != "$1 = alloca i32, i64 4" {
		t.Fatalf("sized alloca printed as %q", got)
	}
	load := b.CreateLoad(mod.I32(), alloca, true)
	if got := PrintValue(mod, load); got != "$2 = load volatile i32, ptr $0" {
		t.Fatalf("volatile load printed as %q", got)
	}
	offset := b.CreateOffset(mod.I32(), alloca, b.ConstI64(2))
	if got := PrintValue(mod, offset); got != "$3 = index i32, ptr $0, i64 2" {
		t.Fatalf("offset printed as %q", got)
	}
}
