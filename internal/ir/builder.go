package ir

import (
	"github.com/evanacox/dawn/internal/types"
)

// Builder constructs IR against a Module through an insertion cursor. Every
// create method validates its instruction's invariants, allocates the
// instruction, and appends it to the current block. When no block is set
// the call is a no-op returning nil, an affordance for tests that only
// exercise validation.
type Builder struct {
	mod *Module
	fn  *Function
	blk *BasicBlock
}

// NewBuilder creates a builder with an empty insertion cursor.
func NewBuilder(mod *Module) *Builder {
	return &Builder{mod: mod}
}

// Module returns the module being built.
func (b *Builder) Module() *Module { return b.mod }

// Type accessors, mirroring the Module's.

func (b *Builder) I8() *types.Type          { return b.mod.I8() }
func (b *Builder) I16() *types.Type         { return b.mod.I16() }
func (b *Builder) I32() *types.Type         { return b.mod.I32() }
func (b *Builder) I64() *types.Type         { return b.mod.I64() }
func (b *Builder) F32() *types.Type         { return b.mod.F32() }
func (b *Builder) F64() *types.Type         { return b.mod.F64() }
func (b *Builder) BoolTy() *types.Type      { return b.mod.Bool() }
func (b *Builder) PtrTy() *types.Type       { return b.mod.Ptr() }
func (b *Builder) VoidTy() *types.Type      { return b.mod.Void() }
func (b *Builder) EmptyStruct() *types.Type { return b.mod.EmptyStruct() }

func (b *Builder) IntType(width uint64) *types.Type   { return b.mod.IntType(width) }
func (b *Builder) FloatType(width uint64) *types.Type { return b.mod.FloatType(width) }

func (b *Builder) ArrayType(elem *types.Type, length uint64) *types.Type {
	return b.mod.ArrayType(elem, length)
}

func (b *Builder) StructType(fields []*types.Type) *types.Type {
	return b.mod.StructType(fields)
}

// Constant helpers.

func (b *Builder) ConstI8(v uint8) *ConstantInt {
	return b.mod.IntConstant(NewAPInt(uint64(v), types.Width8), b.I8())
}

func (b *Builder) ConstI16(v uint16) *ConstantInt {
	return b.mod.IntConstant(NewAPInt(uint64(v), types.Width16), b.I16())
}

func (b *Builder) ConstI32(v uint32) *ConstantInt {
	return b.mod.IntConstant(NewAPInt(uint64(v), types.Width32), b.I32())
}

func (b *Builder) ConstI64(v uint64) *ConstantInt {
	return b.mod.IntConstant(NewAPInt(v, types.Width64), b.I64())
}

// ConstInt builds an integer constant of an arbitrary enumerated width.
func (b *Builder) ConstInt(value APInt, ty *types.Type) *ConstantInt {
	return b.mod.IntConstant(value, ty)
}

func (b *Builder) ConstTrue() *ConstantBool      { return b.mod.BoolConstant(true) }
func (b *Builder) ConstFalse() *ConstantBool     { return b.mod.BoolConstant(false) }
func (b *Builder) ConstBool(v bool) *ConstantBool { return b.mod.BoolConstant(v) }
func (b *Builder) ConstNull() *ConstantNull      { return b.mod.NullConstant() }

func (b *Builder) ConstUndef(ty *types.Type) *ConstantUndef { return b.mod.UndefConstant(ty) }

func (b *Builder) ConstF32(v float32) *ConstantFloat {
	return b.mod.FloatConstant(float64(v), b.F32())
}

func (b *Builder) ConstF64(v float64) *ConstantFloat { return b.mod.FloatConstant(v, b.F64()) }

func (b *Builder) ConstFloat(v float64, ty *types.Type) *ConstantFloat {
	return b.mod.FloatConstant(v, ty)
}

func (b *Builder) ConstArray(elems []Constant) *ConstantArray { return b.mod.ArrayConstant(elems) }

// ConstArrayFill builds an array constant of length copies of elem.
func (b *Builder) ConstArrayFill(elem Constant, length uint64) *ConstantArray {
	if length == 0 {
		violated("array constant requires at least one element")
	}
	elems := make([]Constant, length)
	for i := range elems {
		elems[i] = elem
	}
	return b.mod.ArrayConstant(elems)
}

func (b *Builder) ConstStruct(elems []Constant) *ConstantStruct {
	return b.mod.StructConstant(elems)
}

func (b *Builder) ConstString(data string) *ConstantString { return b.mod.StringConstant(data) }

// Function and block management.

// CreateFunc creates a new function; the name must be unused.
func (b *Builder) CreateFunc(name string, ret *types.Type, params []*types.Type) *Function {
	return b.mod.CreateFunc(name, ret, params)
}

// FindOrCreateFunc returns the existing function, whose signature must
// match, or creates it.
func (b *Builder) FindOrCreateFunc(name string, ret *types.Type, params []*types.Type) *Function {
	return b.mod.FindOrCreateFunc(name, ret, params)
}

// SetInsertFn points the cursor at fn with no current block.
func (b *Builder) SetInsertFn(fn *Function) {
	b.fn = fn
	b.blk = nil
}

// CreateBlock appends a new unnamed empty block to the current function.
func (b *Builder) CreateBlock() *BasicBlock {
	return b.CreateNamedBlock("")
}

// CreateNamedBlock appends a new empty block with a declared name.
func (b *Builder) CreateNamedBlock(name string) *BasicBlock {
	if b.fn == nil {
		violated("cannot create block without a current function")
	}
	if name != "" {
		name = b.mod.pool.internString(name)
	}
	return b.fn.appendBlock(name)
}

// FindBlockWithName searches the current function for a block with the
// declared name.
func (b *Builder) FindBlockWithName(name string) (*BasicBlock, bool) {
	if b.fn == nil {
		return nil, false
	}
	for _, bb := range b.fn.blocks {
		if bb.name == name && name != "" {
			return bb, true
		}
	}
	return nil, false
}

// SetInsertPoint moves the cursor to the end of bb.
func (b *Builder) SetInsertPoint(bb *BasicBlock) {
	b.blk = bb
	if bb != nil {
		b.fn = bb.Parent()
	}
}

// InsertBlock returns the block the cursor points at, or nil.
func (b *Builder) InsertBlock() *BasicBlock { return b.blk }

// attach appends inst to the current block and records ownership.
func (b *Builder) attach(inst Instruction) {
	b.blk.Append(inst)
	b.mod.store.insert(inst)
}

func (b *Builder) header(ty *types.Type) valueBase {
	return valueBase{ty: ty, vid: b.mod.nextValueID()}
}

// Validation helpers. Violations abort with a message naming the invariant.

func checkSameType(op string, lhs, rhs Value) {
	if lhs.Type() != rhs.Type() {
		violated("`lhs` and `rhs` for `%s` must have the same type, got '%s' and '%s'",
			op, lhs.Type(), rhs.Type())
	}
}

func checkIntOrBool(op string, v Value) {
	if !v.Type().IsInt() && !v.Type().IsBool() {
		violated("`%s` operands must be integers or booleans, got '%s'", op, v.Type())
	}
}

func checkInt(op string, v Value) {
	if !v.Type().IsInt() {
		violated("`%s` operand must be an integer, got '%s'", op, v.Type())
	}
}

func checkFloat(op string, v Value) {
	if !v.Type().IsFloat() {
		violated("`%s` operand must be a float, got '%s'", op, v.Type())
	}
}

func checkBool(op string, v Value) {
	if !v.Type().IsBool() {
		violated("`%s` condition must be a bool, got '%s'", op, v.Type())
	}
}

func checkPtr(op string, v Value) {
	if !v.Type().IsPtr() {
		violated("`%s` operand must be a ptr, got '%s'", op, v.Type())
	}
}

func checkIntTy(op string, ty *types.Type) {
	if !ty.IsInt() {
		violated("`%s` result type must be an integer, got '%s'", op, ty)
	}
}

func checkFloatTy(op string, ty *types.Type) {
	if !ty.IsFloat() {
		violated("`%s` result type must be a float, got '%s'", op, ty)
	}
}

// aggregateElem resolves the element type an index selects within an
// aggregate. Struct access requires a constant in-range index; a constant
// array index is bounds-checked too.
func aggregateElem(op string, aggTy *types.Type, index Value) *types.Type {
	checkInt(op, index)
	switch {
	case aggTy.IsArray():
		if c, ok := index.(*ConstantInt); ok && c.RealValue() >= aggTy.Len() {
			violated("`%s` index %d is out of bounds for '%s'", op, c.RealValue(), aggTy)
		}
		return aggTy.Elem()
	case aggTy.IsStruct():
		c, ok := index.(*ConstantInt)
		if !ok {
			violated("`%s` index must be a constant integer when given a structure", op)
		}
		fields := aggTy.Fields()
		if c.RealValue() >= uint64(len(fields)) {
			violated("`%s` index %d is out of bounds for '%s'", op, c.RealValue(), aggTy)
		}
		return fields[c.RealValue()]
	default:
		violated("`%s` only operates on arrays or structures, got '%s'", op, aggTy)
		return nil
	}
}

// Binary instruction creation.

func (b *Builder) intBoolBinary(op string, lhs, rhs Value) (binBase, bool) {
	checkSameType(op, lhs, rhs)
	checkIntOrBool(op, lhs)
	if b.blk == nil {
		return binBase{}, false
	}
	return b.binary(lhs, rhs), true
}

func (b *Builder) intBinary(op string, lhs, rhs Value) (binBase, bool) {
	checkSameType(op, lhs, rhs)
	checkInt(op, lhs)
	if b.blk == nil {
		return binBase{}, false
	}
	return b.binary(lhs, rhs), true
}

func (b *Builder) floatBinary(op string, lhs, rhs Value) (binBase, bool) {
	checkSameType(op, lhs, rhs)
	checkFloat(op, lhs)
	if b.blk == nil {
		return binBase{}, false
	}
	return b.binary(lhs, rhs), true
}

func (b *Builder) binary(lhs, rhs Value) binBase {
	return binBase{instBase{valueBase: b.header(lhs.Type()), ops: []Value{lhs, rhs}}}
}

func (b *Builder) CreateAnd(lhs, rhs Value) *And {
	base, ok := b.intBoolBinary("and", lhs, rhs)
	if !ok {
		return nil
	}
	inst := &And{base}
	b.attach(inst)
	return inst
}

func (b *Builder) CreateOr(lhs, rhs Value) *Or {
	base, ok := b.intBoolBinary("or", lhs, rhs)
	if !ok {
		return nil
	}
	inst := &Or{base}
	b.attach(inst)
	return inst
}

func (b *Builder) CreateXor(lhs, rhs Value) *Xor {
	base, ok := b.intBoolBinary("xor", lhs, rhs)
	if !ok {
		return nil
	}
	inst := &Xor{base}
	b.attach(inst)
	return inst
}

func (b *Builder) CreateShl(lhs, rhs Value) *Shl {
	base, ok := b.intBoolBinary("shl", lhs, rhs)
	if !ok {
		return nil
	}
	inst := &Shl{base}
	b.attach(inst)
	return inst
}

func (b *Builder) CreateLShr(lhs, rhs Value) *LShr {
	base, ok := b.intBoolBinary("lshr", lhs, rhs)
	if !ok {
		return nil
	}
	inst := &LShr{base}
	b.attach(inst)
	return inst
}

func (b *Builder) CreateAShr(lhs, rhs Value) *AShr {
	base, ok := b.intBoolBinary("ashr", lhs, rhs)
	if !ok {
		return nil
	}
	inst := &AShr{base}
	b.attach(inst)
	return inst
}

func (b *Builder) CreateIAdd(lhs, rhs Value) *IAdd {
	base, ok := b.intBinary("iadd", lhs, rhs)
	if !ok {
		return nil
	}
	inst := &IAdd{base}
	b.attach(inst)
	return inst
}

func (b *Builder) CreateISub(lhs, rhs Value) *ISub {
	base, ok := b.intBinary("isub", lhs, rhs)
	if !ok {
		return nil
	}
	inst := &ISub{base}
	b.attach(inst)
	return inst
}

func (b *Builder) CreateIMul(lhs, rhs Value) *IMul {
	base, ok := b.intBinary("imul", lhs, rhs)
	if !ok {
		return nil
	}
	inst := &IMul{base}
	b.attach(inst)
	return inst
}

func (b *Builder) CreateUDiv(lhs, rhs Value) *UDiv {
	base, ok := b.intBinary("udiv", lhs, rhs)
	if !ok {
		return nil
	}
	inst := &UDiv{base}
	b.attach(inst)
	return inst
}

func (b *Builder) CreateSDiv(lhs, rhs Value) *SDiv {
	base, ok := b.intBinary("sdiv", lhs, rhs)
	if !ok {
		return nil
	}
	inst := &SDiv{base}
	b.attach(inst)
	return inst
}

func (b *Builder) CreateURem(lhs, rhs Value) *URem {
	base, ok := b.intBinary("urem", lhs, rhs)
	if !ok {
		return nil
	}
	inst := &URem{base}
	b.attach(inst)
	return inst
}

func (b *Builder) CreateSRem(lhs, rhs Value) *SRem {
	base, ok := b.intBinary("srem", lhs, rhs)
	if !ok {
		return nil
	}
	inst := &SRem{base}
	b.attach(inst)
	return inst
}

func (b *Builder) CreateFNeg(lhs, rhs Value) *FNeg {
	base, ok := b.floatBinary("fneg", lhs, rhs)
	if !ok {
		return nil
	}
	inst := &FNeg{base}
	b.attach(inst)
	return inst
}

func (b *Builder) CreateFAdd(lhs, rhs Value) *FAdd {
	base, ok := b.floatBinary("fadd", lhs, rhs)
	if !ok {
		return nil
	}
	inst := &FAdd{base}
	b.attach(inst)
	return inst
}

func (b *Builder) CreateFSub(lhs, rhs Value) *FSub {
	base, ok := b.floatBinary("fsub", lhs, rhs)
	if !ok {
		return nil
	}
	inst := &FSub{base}
	b.attach(inst)
	return inst
}

func (b *Builder) CreateFMul(lhs, rhs Value) *FMul {
	base, ok := b.floatBinary("fmul", lhs, rhs)
	if !ok {
		return nil
	}
	inst := &FMul{base}
	b.attach(inst)
	return inst
}

func (b *Builder) CreateFDiv(lhs, rhs Value) *FDiv {
	base, ok := b.floatBinary("fdiv", lhs, rhs)
	if !ok {
		return nil
	}
	inst := &FDiv{base}
	b.attach(inst)
	return inst
}

func (b *Builder) CreateFRem(lhs, rhs Value) *FRem {
	base, ok := b.floatBinary("frem", lhs, rhs)
	if !ok {
		return nil
	}
	inst := &FRem{base}
	b.attach(inst)
	return inst
}

// CreateICmp compares two integer or bool operands; the result is bool.
func (b *Builder) CreateICmp(order ICmpOrdering, lhs, rhs Value) *ICmp {
	checkSameType("icmp", lhs, rhs)
	checkIntOrBool("icmp", lhs)
	if b.blk == nil {
		return nil
	}
	inst := &ICmp{
		binBase: binBase{instBase{valueBase: b.header(b.BoolTy()), ops: []Value{lhs, rhs}}},
		order:   order,
	}
	b.attach(inst)
	return inst
}

// CreateFCmp compares two float operands; the result is bool.
func (b *Builder) CreateFCmp(order FCmpOrdering, lhs, rhs Value) *FCmp {
	checkSameType("fcmp", lhs, rhs)
	checkFloat("fcmp", lhs)
	if b.blk == nil {
		return nil
	}
	inst := &FCmp{
		binBase: binBase{instBase{valueBase: b.header(b.BoolTy()), ops: []Value{lhs, rhs}}},
		order:   order,
	}
	b.attach(inst)
	return inst
}

// CreateSel picks ifTrue when cond holds, ifFalse otherwise.
func (b *Builder) CreateSel(cond, ifTrue, ifFalse Value) *Sel {
	checkBool("sel", cond)
	if ifTrue.Type() != ifFalse.Type() {
		violated("`lhs` and `rhs` for `sel` must have the same type, got '%s' and '%s'",
			ifTrue.Type(), ifFalse.Type())
	}
	if b.blk == nil {
		return nil
	}
	inst := &Sel{instBase{valueBase: b.header(ifTrue.Type()), ops: []Value{cond, ifTrue, ifFalse}}}
	b.attach(inst)
	return inst
}

// CreatePhi creates an empty phi of the declared type; incomings are added
// through Phi.AddIncoming.
func (b *Builder) CreatePhi(ty *types.Type) *Phi {
	if ty.IsVoid() {
		violated("phi cannot have void type")
	}
	if b.blk == nil {
		return nil
	}
	inst := &Phi{valueBase: b.header(ty)}
	b.attach(inst)
	return inst
}

// CreateCall calls target with arguments matching its signature
// elementwise.
func (b *Builder) CreateCall(target *Function, args []Value) *Call {
	if target == nil {
		violated("call target must not be nil")
	}
	if len(args) != len(target.args) {
		violated("call to '@%s' requires %d arguments, got %d",
			target.name, len(target.args), len(args))
	}
	for i, arg := range args {
		if arg.Type() != target.args[i].Type() {
			violated("call to '@%s' argument %d must have type '%s', got '%s'",
				target.name, i, target.args[i].Type(), arg.Type())
		}
	}
	if b.blk == nil {
		return nil
	}
	copied := make([]Value, len(args))
	copy(copied, args)
	inst := &Call{
		instBase: instBase{valueBase: b.header(target.ret), ops: copied},
		target:   target,
	}
	b.attach(inst)
	return inst
}

// Terminators. A terminator's result type is always void.

func (b *Builder) terminator(blocks []*BasicBlock, values []Value) termBase {
	return termBase{
		instBase: instBase{valueBase: b.header(b.VoidTy()), ops: values},
		targets:  blocks,
	}
}

// CreateBr branches unconditionally to target.
func (b *Builder) CreateBr(target *BasicBlock) *Br {
	if target == nil {
		violated("`br` target must not be nil")
	}
	if b.blk == nil {
		return nil
	}
	inst := &Br{b.terminator([]*BasicBlock{target}, nil)}
	b.attach(inst)
	return inst
}

// CreateCondBr branches to ifTrue when cond holds, ifFalse otherwise.
func (b *Builder) CreateCondBr(cond Value, ifTrue, ifFalse *BasicBlock) *CondBr {
	checkBool("cbr", cond)
	if ifTrue == nil || ifFalse == nil {
		violated("`cbr` targets must not be nil")
	}
	if b.blk == nil {
		return nil
	}
	inst := &CondBr{b.terminator([]*BasicBlock{ifTrue, ifFalse}, []Value{cond})}
	b.attach(inst)
	return inst
}

// CreateRet returns value from the current function; its type must match
// the function's return type.
func (b *Builder) CreateRet(value Value) *Ret {
	if value == nil {
		violated("`ret` with a value requires a non-nil value")
	}
	if b.fn != nil && value.Type() != b.fn.ret {
		violated("`ret` value type '%s' must match function return type '%s'",
			value.Type(), b.fn.ret)
	}
	if b.blk == nil {
		return nil
	}
	inst := &Ret{b.terminator(nil, []Value{value})}
	b.attach(inst)
	return inst
}

// CreateRetVoid returns from a void function.
func (b *Builder) CreateRetVoid() *Ret {
	if b.fn != nil && !b.fn.ret.IsVoid() {
		violated("`ret void` requires a void function, return type is '%s'", b.fn.ret)
	}
	if b.blk == nil {
		return nil
	}
	inst := &Ret{b.terminator(nil, nil)}
	b.attach(inst)
	return inst
}

// CreateUnreachable marks the current point as never reached.
func (b *Builder) CreateUnreachable() *Unreachable {
	if b.blk == nil {
		return nil
	}
	inst := &Unreachable{b.terminator(nil, nil)}
	b.attach(inst)
	return inst
}

// Memory.

// CreateAlloca reserves storage for one object of ty.
func (b *Builder) CreateAlloca(ty *types.Type) *Alloca {
	return b.CreateAllocaCount(ty, b.ConstI64(1))
}

// CreateAllocaCount reserves storage for count objects of ty.
func (b *Builder) CreateAllocaCount(ty *types.Type, count Value) *Alloca {
	if ty.IsVoid() {
		violated("`alloca` cannot allocate void")
	}
	checkInt("alloca", count)
	if b.blk == nil {
		return nil
	}
	inst := &Alloca{
		instBase:  instBase{valueBase: b.header(b.PtrTy()), ops: []Value{count}},
		allocated: ty,
	}
	b.attach(inst)
	return inst
}

// CreateLoad reads a ty through target.
func (b *Builder) CreateLoad(ty *types.Type, target Value, volatile bool) *Load {
	if ty.IsVoid() {
		violated("`load` cannot load void")
	}
	checkPtr("load", target)
	if b.blk == nil {
		return nil
	}
	inst := &Load{
		instBase: instBase{valueBase: b.header(ty), ops: []Value{target}},
		volatile: volatile,
	}
	b.attach(inst)
	return inst
}

// CreateStore writes value through target.
func (b *Builder) CreateStore(value, target Value, volatile bool) *Store {
	checkPtr("store", target)
	if value.Type().IsVoid() {
		violated("`store` cannot store void")
	}
	if b.blk == nil {
		return nil
	}
	inst := &Store{
		instBase: instBase{valueBase: b.header(b.VoidTy()), ops: []Value{value, target}},
		volatile: volatile,
	}
	b.attach(inst)
	return inst
}

// CreateOffset computes base + index * sizeof(ty).
func (b *Builder) CreateOffset(ty *types.Type, base, index Value) *Offset {
	checkPtr("index", base)
	checkInt("index", index)
	if b.blk == nil {
		return nil
	}
	inst := &Offset{
		instBase: instBase{valueBase: b.header(b.PtrTy()), ops: []Value{base, index}},
		elem:     ty,
	}
	b.attach(inst)
	return inst
}

// CreateExtract reads the element of aggregate selected by index.
func (b *Builder) CreateExtract(aggregate, index Value) *Extract {
	elem := aggregateElem("extract", aggregate.Type(), index)
	if b.blk == nil {
		return nil
	}
	inst := &Extract{instBase{valueBase: b.header(elem), ops: []Value{aggregate, index}}}
	b.attach(inst)
	return inst
}

// CreateInsert copies aggregate with the element selected by index
// replaced by value.
func (b *Builder) CreateInsert(aggregate, value, index Value) *Insert {
	elem := aggregateElem("insert", aggregate.Type(), index)
	if value.Type() != elem {
		violated("`insert` value type '%s' must match element type '%s'",
			value.Type(), elem)
	}
	if b.blk == nil {
		return nil
	}
	inst := &Insert{instBase{
		valueBase: b.header(aggregate.Type()),
		ops:       []Value{aggregate, value, index},
	}}
	b.attach(inst)
	return inst
}

// CreateElemPtr computes a ptr to the element of an aggregate of type
// aggTy selected by index, given base pointing at the aggregate.
func (b *Builder) CreateElemPtr(aggTy *types.Type, base, index Value) *ElemPtr {
	checkPtr("elemptr", base)
	aggregateElem("elemptr", aggTy, index)
	if b.blk == nil {
		return nil
	}
	inst := &ElemPtr{
		instBase:  instBase{valueBase: b.header(b.PtrTy()), ops: []Value{base, index}},
		aggregate: aggTy,
	}
	b.attach(inst)
	return inst
}

// Conversions.

func (b *Builder) conversion(into *types.Type, from Value) convBase {
	return convBase{instBase{valueBase: b.header(into), ops: []Value{from}}}
}

// CreateSext sign-extends an integer; the width must strictly increase.
func (b *Builder) CreateSext(into *types.Type, from Value) *Sext {
	checkIntTy("sext", into)
	checkInt("sext", from)
	if from.Type().Width() >= into.Width() {
		violated("`sext` must expand the integer, cannot go from '%s' to '%s'",
			from.Type(), into)
	}
	if b.blk == nil {
		return nil
	}
	inst := &Sext{b.conversion(into, from)}
	b.attach(inst)
	return inst
}

// CreateZext zero-extends an integer; the width must strictly increase.
func (b *Builder) CreateZext(into *types.Type, from Value) *Zext {
	checkIntTy("zext", into)
	checkInt("zext", from)
	if from.Type().Width() >= into.Width() {
		violated("`zext` must expand the integer, cannot go from '%s' to '%s'",
			from.Type(), into)
	}
	if b.blk == nil {
		return nil
	}
	inst := &Zext{b.conversion(into, from)}
	b.attach(inst)
	return inst
}

// CreateTrunc truncates an integer.
func (b *Builder) CreateTrunc(into *types.Type, from Value) *Trunc {
	checkIntTy("trunc", into)
	checkInt("trunc", from)
	if b.blk == nil {
		return nil
	}
	inst := &Trunc{b.conversion(into, from)}
	b.attach(inst)
	return inst
}

// CreateIToB converts an integer to bool.
func (b *Builder) CreateIToB(from Value) *IToB {
	checkInt("itob", from)
	if b.blk == nil {
		return nil
	}
	inst := &IToB{b.conversion(b.BoolTy(), from)}
	b.attach(inst)
	return inst
}

// CreateBToI converts a bool to an integer.
func (b *Builder) CreateBToI(into *types.Type, from Value) *BToI {
	checkIntTy("btoi", into)
	checkBool("btoi", from)
	if b.blk == nil {
		return nil
	}
	inst := &BToI{b.conversion(into, from)}
	b.attach(inst)
	return inst
}

// CreateIToP converts an integer to ptr.
func (b *Builder) CreateIToP(from Value) *IToP {
	checkInt("itop", from)
	if b.blk == nil {
		return nil
	}
	inst := &IToP{b.conversion(b.PtrTy(), from)}
	b.attach(inst)
	return inst
}

// CreatePToI converts a ptr to an integer.
func (b *Builder) CreatePToI(into *types.Type, from Value) *PToI {
	checkIntTy("ptoi", into)
	checkPtr("ptoi", from)
	if b.blk == nil {
		return nil
	}
	inst := &PToI{b.conversion(into, from)}
	b.attach(inst)
	return inst
}

// CreateSIToF converts a signed integer to float.
func (b *Builder) CreateSIToF(into *types.Type, from Value) *SIToF {
	checkFloatTy("sitof", into)
	checkInt("sitof", from)
	if b.blk == nil {
		return nil
	}
	inst := &SIToF{b.conversion(into, from)}
	b.attach(inst)
	return inst
}

// CreateUIToF converts an unsigned integer to float.
func (b *Builder) CreateUIToF(into *types.Type, from Value) *UIToF {
	checkFloatTy("uitof", into)
	checkInt("uitof", from)
	if b.blk == nil {
		return nil
	}
	inst := &UIToF{b.conversion(into, from)}
	b.attach(inst)
	return inst
}

// CreateFToSI converts a float to a signed integer.
func (b *Builder) CreateFToSI(into *types.Type, from Value) *FToSI {
	checkIntTy("ftosi", into)
	checkFloat("ftosi", from)
	if b.blk == nil {
		return nil
	}
	inst := &FToSI{b.conversion(into, from)}
	b.attach(inst)
	return inst
}

// CreateFToUI converts a float to an unsigned integer.
func (b *Builder) CreateFToUI(into *types.Type, from Value) *FToUI {
	checkIntTy("ftoui", into)
	checkFloat("ftoui", from)
	if b.blk == nil {
		return nil
	}
	inst := &FToUI{b.conversion(into, from)}
	b.attach(inst)
	return inst
}
