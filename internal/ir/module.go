package ir

import (
	"fmt"

	"github.com/evanacox/dawn/internal/types"
)

// Module is the root container: it owns the type universe, the constant
// pool, the function table and the instruction store. Everything reachable
// from a Module forms one ownership tree released together; a Module may
// be handed off but never copied.
type Module struct {
	types  *types.Interner
	pool   constantPool
	funcs  []*Function
	byName map[string]*Function
	store  instructionStore
	nextID uint64
}

// NewModule creates an empty module.
func NewModule() *Module {
	m := &Module{
		types:  types.NewInterner(),
		byName: make(map[string]*Function),
		store:  newInstructionStore(),
	}
	m.pool = newConstantPool(m)
	return m
}

func (m *Module) nextValueID() uint64 {
	m.nextID++
	return m.nextID
}

// violated reports a structural invariant violation. All IR built through
// the Builder is well-formed by construction; a violation is a programming
// error, not a recoverable condition.
func violated(format string, args ...any) {
	panic("ir: " + fmt.Sprintf(format, args...))
}

// Type queries; all results are structurally unique within the module.

func (m *Module) I8() *types.Type          { return m.types.I8() }
func (m *Module) I16() *types.Type         { return m.types.I16() }
func (m *Module) I32() *types.Type         { return m.types.I32() }
func (m *Module) I64() *types.Type         { return m.types.I64() }
func (m *Module) F32() *types.Type         { return m.types.F32() }
func (m *Module) F64() *types.Type         { return m.types.F64() }
func (m *Module) Bool() *types.Type        { return m.types.Bool() }
func (m *Module) Ptr() *types.Type         { return m.types.Ptr() }
func (m *Module) Void() *types.Type        { return m.types.Void() }
func (m *Module) EmptyStruct() *types.Type { return m.types.EmptyStruct() }

// IntType returns the integer type of one of the widths 8, 16, 32, 64.
func (m *Module) IntType(width uint64) *types.Type { return m.types.IntOfWidth(width) }

// FloatType returns the float type of width 32 or 64.
func (m *Module) FloatType(width uint64) *types.Type { return m.types.FloatOfWidth(width) }

// ArrayType returns the unique [elem; length] type.
func (m *Module) ArrayType(elem *types.Type, length uint64) *types.Type {
	return m.types.Array(elem, length)
}

// StructType returns the unique struct type with the given fields.
func (m *Module) StructType(fields []*types.Type) *types.Type {
	return m.types.Struct(fields)
}

// Constant queries; all results are hash-consed, so two structurally equal
// constants are the same object.

func (m *Module) IntConstant(value APInt, ty *types.Type) *ConstantInt {
	return m.pool.constInt(value, ty)
}

func (m *Module) BoolConstant(value bool) *ConstantBool { return m.pool.constBool(value) }

func (m *Module) FloatConstant(value float64, ty *types.Type) *ConstantFloat {
	return m.pool.constFloat(value, ty)
}

func (m *Module) NullConstant() *ConstantNull { return m.pool.constNull() }

func (m *Module) UndefConstant(ty *types.Type) *ConstantUndef { return m.pool.constUndef(ty) }

func (m *Module) ArrayConstant(elems []Constant) *ConstantArray { return m.pool.constArray(elems) }

func (m *Module) StructConstant(elems []Constant) *ConstantStruct {
	return m.pool.constStruct(elems)
}

func (m *Module) StringConstant(data string) *ConstantString { return m.pool.constString(data) }

// ConstantCount reports how many distinct constants of a kind the pool
// holds; a testing and introspection hook.
func (m *Module) ConstantCount(kind ValueKind) int { return m.pool.count(kind) }

// FindFunc looks a function up by name.
func (m *Module) FindFunc(name string) (*Function, bool) {
	fn, ok := m.byName[name]
	return fn, ok
}

// CreateFunc creates a function with the given signature. The name must be
// unused.
func (m *Module) CreateFunc(name string, ret *types.Type, params []*types.Type) *Function {
	if _, exists := m.byName[name]; exists {
		violated("function '@%s' already exists", name)
	}
	if ret == nil {
		violated("function '@%s' requires a return type", name)
	}
	fn := &Function{name: m.pool.internString(name), ret: ret, mod: m}
	fn.args = make([]*Argument, len(params))
	for i, ty := range params {
		if ty == nil || ty.IsVoid() {
			violated("function '@%s' argument %d has invalid type", name, i)
		}
		fn.args[i] = &Argument{
			valueBase: valueBase{ty: ty, vid: m.nextValueID()},
			index:     i,
		}
	}
	m.funcs = append(m.funcs, fn)
	m.byName[fn.name] = fn
	return fn
}

// FindOrCreateFunc returns the existing function with the given name,
// which must carry an identical signature, or creates it.
func (m *Module) FindOrCreateFunc(name string, ret *types.Type, params []*types.Type) *Function {
	fn, ok := m.byName[name]
	if !ok {
		return m.CreateFunc(name, ret, params)
	}
	if fn.ret != ret {
		violated("function '@%s' exists with return type '%s', requested '%s'",
			name, fn.ret, ret)
	}
	if len(fn.args) != len(params) {
		violated("function '@%s' exists with %d arguments, requested %d",
			name, len(fn.args), len(params))
	}
	for i, arg := range fn.args {
		if arg.Type() != params[i] {
			violated("function '@%s' argument %d has type '%s', requested '%s'",
				name, i, arg.Type(), params[i])
		}
	}
	return fn
}

// Functions returns every function in insertion order.
func (m *Module) Functions() []*Function { return m.funcs }

// UseCount sums operand occurrences of v across every instruction the
// module owns.
func (m *Module) UseCount(v Value) int { return m.store.useCount(v) }

// InstructionUseCounts maps every owned instruction to its operand
// occurrence count across the module.
func (m *Module) InstructionUseCounts() map[Instruction]int { return m.store.useCounts() }

// RemoveInstruction drops an instruction from the store. The instruction
// must be owned by this module.
func (m *Module) RemoveInstruction(inst Instruction) { m.store.remove(inst) }
