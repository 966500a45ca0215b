package ir

import (
	"testing"

	"github.com/evanacox/dawn/internal/types"
)

func testFunc(t *testing.T, b *Builder, name string, ret *types.Type, params []*types.Type) *Function {
	t.Helper()
	fn := b.CreateFunc(name, ret, params)
	b.SetInsertFn(fn)
	b.SetInsertPoint(b.CreateNamedBlock("entry"))
	return fn
}

func expectAbort(t *testing.T, what string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s should abort", what)
		}
	}()
	f()
}

func TestBuilderNoInsertPointReturnsNil(t *testing.T) {
	mod := NewModule()
	b := NewBuilder(mod)

	// validation still runs, insertion is a no-op
	if inst := b.CreateIAdd(b.ConstI32(1), b.ConstI32(2)); inst != nil {
		t.Fatalf("creation without a block should return nil")
	}
	expectAbort(t, "iadd of mismatched types", func() {
		b.CreateIAdd(b.ConstI32(1), b.ConstI64(2))
	})
}

func TestBinaryOperandClasses(t *testing.T) {
	mod := NewModule()
	b := NewBuilder(mod)
	testFunc(t, b, "f", mod.Void(), nil)

	if b.CreateAnd(b.ConstTrue(), b.ConstFalse()) == nil {
		t.Fatalf("bool is legal for and")
	}
	if b.CreateIAdd(b.ConstI32(1), b.ConstI32(2)) == nil {
		t.Fatalf("int is legal for iadd")
	}
	if b.CreateFAdd(b.ConstF64(1), b.ConstF64(2)) == nil {
		t.Fatalf("float is legal for fadd")
	}

	expectAbort(t, "iadd over bools", func() { b.CreateIAdd(b.ConstTrue(), b.ConstFalse()) })
	expectAbort(t, "fadd over ints", func() { b.CreateFAdd(b.ConstI32(1), b.ConstI32(2)) })
	expectAbort(t, "and over floats", func() { b.CreateAnd(b.ConstF32(1), b.ConstF32(1)) })
}

func TestComparisonInvariants(t *testing.T) {
	mod := NewModule()
	b := NewBuilder(mod)
	testFunc(t, b, "f", mod.Void(), nil)

	cmp := b.CreateICmp(ICmpEQ, b.ConstI32(1), b.ConstI32(2))
	if !cmp.Type().IsBool() {
		t.Fatalf("icmp result must be bool")
	}
	fcmp := b.CreateFCmp(FCmpOLT, b.ConstF64(1), b.ConstF64(2))
	if !fcmp.Type().IsBool() {
		t.Fatalf("fcmp result must be bool")
	}

	expectAbort(t, "icmp over floats", func() { b.CreateICmp(ICmpEQ, b.ConstF64(1), b.ConstF64(1)) })
	expectAbort(t, "fcmp over ints", func() { b.CreateFCmp(FCmpOEQ, b.ConstI8(1), b.ConstI8(1)) })
}

func TestExtensionWidthsMustIncrease(t *testing.T) {
	mod := NewModule()
	b := NewBuilder(mod)
	testFunc(t, b, "f", mod.Void(), nil)

	if b.CreateSext(mod.I64(), b.ConstI32(1)) == nil {
		t.Fatalf("widening sext is legal")
	}
	expectAbort(t, "sext to same width", func() { b.CreateSext(mod.I32(), b.ConstI32(1)) })
	expectAbort(t, "sext to narrower width", func() { b.CreateSext(mod.I8(), b.ConstI32(1)) })
	expectAbort(t, "zext to same width", func() { b.CreateZext(mod.I32(), b.ConstI32(1)) })

	// trunc only requires the operand class
	if b.CreateTrunc(mod.I8(), b.ConstI32(1)) == nil {
		t.Fatalf("trunc is legal")
	}
}

func TestCallSignatureChecks(t *testing.T) {
	mod := NewModule()
	b := NewBuilder(mod)
	callee := b.CreateFunc("callee", mod.I32(), []*types.Type{mod.I32(), mod.I8()})
	testFunc(t, b, "f", mod.Void(), nil)

	call := b.CreateCall(callee, []Value{b.ConstI32(1), b.ConstI8(2)})
	if call.Type() != mod.I32() {
		t.Fatalf("call type must be the target's return type")
	}

	expectAbort(t, "call with wrong arity", func() {
		b.CreateCall(callee, []Value{b.ConstI32(1)})
	})
	expectAbort(t, "call with wrong argument type", func() {
		b.CreateCall(callee, []Value{b.ConstI32(1), b.ConstI16(2)})
	})
}

func TestFindOrCreateFuncSignatureMismatchAborts(t *testing.T) {
	mod := NewModule()
	mod.CreateFunc("f", mod.I32(), []*types.Type{mod.I32()})

	if mod.FindOrCreateFunc("f", mod.I32(), []*types.Type{mod.I32()}) == nil {
		t.Fatalf("matching signature should return the existing function")
	}
	expectAbort(t, "wrong return type", func() {
		mod.FindOrCreateFunc("f", mod.I64(), []*types.Type{mod.I32()})
	})
	expectAbort(t, "wrong argument types", func() {
		mod.FindOrCreateFunc("f", mod.I32(), []*types.Type{mod.I64()})
	})
	expectAbort(t, "duplicate create", func() {
		mod.CreateFunc("f", mod.I32(), []*types.Type{mod.I32()})
	})
}

func TestStructIndexingInvariants(t *testing.T) {
	mod := NewModule()
	b := NewBuilder(mod)
	fn := testFunc(t, b, "f", mod.Void(), []*types.Type{mod.I64()})
	dynamic := fn.Args()[0]

	structTy := mod.StructType([]*types.Type{mod.I32(), mod.F64()})
	agg := b.ConstUndef(structTy)

	extract := b.CreateExtract(agg, b.ConstI64(1))
	if extract.Type() != mod.F64() {
		t.Fatalf("extract should select field 1's type, got '%s'", extract.Type())
	}

	expectAbort(t, "dynamic struct index", func() { b.CreateExtract(agg, dynamic) })
	expectAbort(t, "out-of-range struct index", func() { b.CreateExtract(agg, b.ConstI64(2)) })
	expectAbort(t, "dynamic struct elemptr", func() {
		b.CreateElemPtr(structTy, b.ConstNull(), dynamic)
	})

	arrTy := mod.ArrayType(mod.I32(), 4)
	arr := b.ConstUndef(arrTy)
	if b.CreateExtract(arr, dynamic) == nil {
		t.Fatalf("dynamic array index is legal")
	}
	expectAbort(t, "constant array index out of bounds", func() {
		b.CreateExtract(arr, b.ConstI64(4))
	})

	expectAbort(t, "insert with wrong element type", func() {
		b.CreateInsert(agg, b.ConstI8(0), b.ConstI64(0))
	})
	insert := b.CreateInsert(agg, b.ConstI32(7), b.ConstI64(0))
	if insert.Type() != structTy {
		t.Fatalf("insert result keeps the aggregate type")
	}
}

func TestTerminatorInvariant(t *testing.T) {
	mod := NewModule()
	b := NewBuilder(mod)
	fn := testFunc(t, b, "f", mod.I32(), []*types.Type{mod.I32()})
	entry := fn.Entry()

	iadd := b.CreateIAdd(fn.Args()[0], b.ConstI32(1))
	if entry.Terminated() {
		t.Fatalf("block is not yet terminated")
	}
	b.CreateRet(iadd)
	if !entry.Terminated() {
		t.Fatalf("block should now be terminated")
	}
	term := entry.Terminator()
	if term == nil || term.Kind() != KindRet {
		t.Fatalf("terminator should be the ret")
	}
	count := 0
	for _, inst := range entry.Instructions() {
		if inst.Kind().IsTerminator() {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("exactly one terminator expected, found %d", count)
	}
}

func TestRetTypeMustMatchFunction(t *testing.T) {
	mod := NewModule()
	b := NewBuilder(mod)
	testFunc(t, b, "f", mod.I32(), nil)

	expectAbort(t, "ret of wrong type", func() { b.CreateRet(b.ConstI64(1)) })
	expectAbort(t, "ret void in non-void function", func() { b.CreateRetVoid() })
}

func TestUseCounts(t *testing.T) {
	mod := NewModule()
	b := NewBuilder(mod)
	fn := testFunc(t, b, "f", mod.I32(), []*types.Type{mod.I32()})
	arg := fn.Args()[0]

	first := b.CreateIAdd(arg, arg)
	second := b.CreateIAdd(arg, first)
	ret := b.CreateRet(second)

	if got := mod.UseCount(arg); got != 3 {
		t.Fatalf("arg used 3 times across the store, got %d", got)
	}
	counts := mod.InstructionUseCounts()
	if counts[first] != 1 || counts[second] != 1 || counts[ret] != 0 {
		t.Fatalf("unexpected use counts: %v %v %v", counts[first], counts[second], counts[ret])
	}
}

func TestReplaceOperandWith(t *testing.T) {
	mod := NewModule()
	b := NewBuilder(mod)
	fn := testFunc(t, b, "f", mod.I32(), []*types.Type{mod.I32()})
	arg := fn.Args()[0]

	first := b.CreateIAdd(arg, arg)
	second := b.CreateIAdd(arg, first)
	b.CreateRet(second)

	second.ReplaceOperandWith(arg, first)
	if got := mod.UseCount(arg); got != 2 {
		t.Fatalf("arg should be used 2 times after replacement, got %d", got)
	}
	if second.Lhs() != first || second.Rhs() != first {
		t.Fatalf("both operand slots should now reference the first iadd")
	}

	expectAbort(t, "replacement with a different type", func() {
		second.ReplaceOperandWith(first, b.ConstI64(0))
	})
}

func TestTerminatorBranchTargets(t *testing.T) {
	mod := NewModule()
	b := NewBuilder(mod)
	fn := testFunc(t, b, "f", mod.Void(), nil)
	entry := fn.Entry()

	left := b.CreateNamedBlock("left")
	right := b.CreateNamedBlock("right")
	other := b.CreateNamedBlock("other")

	b.SetInsertPoint(entry)
	cbr := b.CreateCondBr(b.ConstTrue(), left, right)

	if !cbr.CanBranchTo(left) || !cbr.CanBranchTo(right) || cbr.CanBranchTo(other) {
		t.Fatalf("branch target queries disagree with construction")
	}
	cbr.ReplaceBranchTarget(right, other)
	if cbr.CanBranchTo(right) || !cbr.CanBranchTo(other) {
		t.Fatalf("replacement did not take")
	}
	if targets := cbr.PossibleBranchTargets(); len(targets) != 2 {
		t.Fatalf("cbr always has two targets")
	}
}

func TestAllocaCountDefaultsToOne(t *testing.T) {
	mod := NewModule()
	b := NewBuilder(mod)
	testFunc(t, b, "f", mod.Void(), nil)

	one := b.CreateAlloca(mod.I32())
	if !one.Type().IsPtr() || one.AllocatedType() != mod.I32() {
		t.Fatalf("alloca shape wrong")
	}
	c, ok := one.NumberOfObjects().(*ConstantInt)
	if !ok || c.RealValue() != 1 {
		t.Fatalf("default count must be the constant 1")
	}
	expectAbort(t, "alloca with float count", func() {
		b.CreateAllocaCount(mod.I32(), b.ConstF64(2))
	})
}
