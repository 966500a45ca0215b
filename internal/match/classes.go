package match

import (
	"github.com/evanacox/dawn/internal/analysis"
	"github.com/evanacox/dawn/internal/ir"
)

// Named matchers for the common instruction and constant classes. These
// are thin wrappers over the generic bases so patterns read close to the
// textual opcodes.

func IAdd(lhs, rhs Pattern) Pattern { return Binary[*ir.IAdd](lhs, rhs) }
func ISub(lhs, rhs Pattern) Pattern { return Binary[*ir.ISub](lhs, rhs) }
func IMul(lhs, rhs Pattern) Pattern { return Binary[*ir.IMul](lhs, rhs) }
func UDiv(lhs, rhs Pattern) Pattern { return Binary[*ir.UDiv](lhs, rhs) }
func SDiv(lhs, rhs Pattern) Pattern { return Binary[*ir.SDiv](lhs, rhs) }
func URem(lhs, rhs Pattern) Pattern { return Binary[*ir.URem](lhs, rhs) }
func SRem(lhs, rhs Pattern) Pattern { return Binary[*ir.SRem](lhs, rhs) }
func And(lhs, rhs Pattern) Pattern  { return Binary[*ir.And](lhs, rhs) }
func Or(lhs, rhs Pattern) Pattern   { return Binary[*ir.Or](lhs, rhs) }
func Xor(lhs, rhs Pattern) Pattern  { return Binary[*ir.Xor](lhs, rhs) }
func Shl(lhs, rhs Pattern) Pattern  { return Binary[*ir.Shl](lhs, rhs) }
func LShr(lhs, rhs Pattern) Pattern { return Binary[*ir.LShr](lhs, rhs) }
func AShr(lhs, rhs Pattern) Pattern { return Binary[*ir.AShr](lhs, rhs) }
func FAdd(lhs, rhs Pattern) Pattern { return Binary[*ir.FAdd](lhs, rhs) }
func FSub(lhs, rhs Pattern) Pattern { return Binary[*ir.FSub](lhs, rhs) }
func FMul(lhs, rhs Pattern) Pattern { return Binary[*ir.FMul](lhs, rhs) }
func FDiv(lhs, rhs Pattern) Pattern { return Binary[*ir.FDiv](lhs, rhs) }
func FRem(lhs, rhs Pattern) Pattern { return Binary[*ir.FRem](lhs, rhs) }

// ICmp matches any integer comparison over the sub-patterns.
func ICmp(lhs, rhs Pattern) Pattern { return Binary[*ir.ICmp](lhs, rhs) }

// ICmpWithOrder matches an integer comparison with a specific predicate.
func ICmpWithOrder(order ir.ICmpOrdering, lhs, rhs Pattern) Pattern {
	var cmp *ir.ICmp
	inner := BinaryAs(&cmp, lhs, rhs)
	return predicate(func(am *analysis.Manager, v ir.Value) bool {
		return inner.Matches(am, v) && cmp.Order() == order
	})
}

// FCmp matches any float comparison over the sub-patterns.
func FCmp(lhs, rhs Pattern) Pattern { return Binary[*ir.FCmp](lhs, rhs) }

func Sext(operand Pattern) Pattern  { return Unary[*ir.Sext](operand) }
func Zext(operand Pattern) Pattern  { return Unary[*ir.Zext](operand) }
func Trunc(operand Pattern) Pattern { return Unary[*ir.Trunc](operand) }

func ConstInt() Pattern                      { return Class[*ir.ConstantInt]() }
func ConstIntAs(out **ir.ConstantInt) Pattern { return ClassAs(out) }
func ConstFloat() Pattern                    { return Class[*ir.ConstantFloat]() }
func ConstBool() Pattern                     { return Class[*ir.ConstantBool]() }
func Null() Pattern                          { return Class[*ir.ConstantNull]() }
func Undef() Pattern                         { return Class[*ir.ConstantUndef]() }
func Arg() Pattern                           { return Class[*ir.Argument]() }
func Phi() Pattern                           { return Class[*ir.Phi]() }
func Load() Pattern                          { return Class[*ir.Load]() }
func Store() Pattern                         { return Class[*ir.Store]() }

// Zero matches any constant that is the zero value of its type.
func Zero() Pattern {
	return predicate(func(_ *analysis.Manager, v ir.Value) bool {
		c, ok := v.(ir.Constant)
		return ok && c.IsZero()
	})
}
