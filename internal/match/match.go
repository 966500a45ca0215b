// Package match provides composable predicates over IR values for writing
// peephole patterns. Matchers may capture the matched value or type
// through an output pointer supplied at construction.
package match

import (
	"github.com/evanacox/dawn/internal/analysis"
	"github.com/evanacox/dawn/internal/ir"
	"github.com/evanacox/dawn/internal/types"
)

// Pattern is a predicate over values. The analysis manager is threaded
// through so patterns can consult cached analyses.
type Pattern interface {
	Matches(am *analysis.Manager, v ir.Value) bool
}

// Matches evaluates pattern against v; the top-level entry point.
func Matches(v ir.Value, am *analysis.Manager, pattern Pattern) bool {
	return pattern.Matches(am, v)
}

type predicate func(am *analysis.Manager, v ir.Value) bool

func (f predicate) Matches(am *analysis.Manager, v ir.Value) bool { return f(am, v) }

// Any matches every value.
func Any() Pattern {
	return predicate(func(*analysis.Manager, ir.Value) bool { return true })
}

// Class matches values of the concrete variant T.
func Class[T ir.Value]() Pattern {
	return predicate(func(_ *analysis.Manager, v ir.Value) bool {
		_, ok := v.(T)
		return ok
	})
}

// ClassAs is Class with a capture: on a match, *out receives the value.
func ClassAs[T ir.Value](out *T) Pattern {
	return predicate(func(_ *analysis.Manager, v ir.Value) bool {
		matched, ok := v.(T)
		if ok && out != nil {
			*out = matched
		}
		return ok
	})
}

// Binary matches a binary instruction of variant T whose operands match
// the sub-patterns.
func Binary[T ir.BinaryInstruction](lhs, rhs Pattern) Pattern {
	return predicate(func(am *analysis.Manager, v ir.Value) bool {
		matched, ok := v.(T)
		return ok && lhs.Matches(am, matched.Lhs()) && rhs.Matches(am, matched.Rhs())
	})
}

// BinaryAs is Binary with a capture.
func BinaryAs[T ir.BinaryInstruction](out *T, lhs, rhs Pattern) Pattern {
	return predicate(func(am *analysis.Manager, v ir.Value) bool {
		matched, ok := v.(T)
		if !ok || !lhs.Matches(am, matched.Lhs()) || !rhs.Matches(am, matched.Rhs()) {
			return false
		}
		if out != nil {
			*out = matched
		}
		return true
	})
}

// Unary matches a conversion instruction of variant T whose operand
// matches the sub-pattern.
func Unary[T ir.ConversionInstruction](operand Pattern) Pattern {
	return predicate(func(am *analysis.Manager, v ir.Value) bool {
		matched, ok := v.(T)
		return ok && operand.Matches(am, matched.From())
	})
}

// UnaryAs is Unary with a capture.
func UnaryAs[T ir.ConversionInstruction](out *T, operand Pattern) Pattern {
	return predicate(func(am *analysis.Manager, v ir.Value) bool {
		matched, ok := v.(T)
		if !ok || !operand.Matches(am, matched.From()) {
			return false
		}
		if out != nil {
			*out = matched
		}
		return true
	})
}

// Combinators.

// Both requires two patterns to match the same value.
func Both(a, b Pattern) Pattern {
	return predicate(func(am *analysis.Manager, v ir.Value) bool {
		return a.Matches(am, v) && b.Matches(am, v)
	})
}

// OneOf matches when any pattern matches.
func OneOf(patterns ...Pattern) Pattern {
	return predicate(func(am *analysis.Manager, v ir.Value) bool {
		for _, p := range patterns {
			if p.Matches(am, v) {
				return true
			}
		}
		return false
	})
}

// All matches when every pattern matches.
func All(patterns ...Pattern) Pattern {
	return predicate(func(am *analysis.Manager, v ir.Value) bool {
		for _, p := range patterns {
			if !p.Matches(am, v) {
				return false
			}
		}
		return true
	})
}

// Type-class matchers.

func ofTypeClass(check func(*types.Type) bool) Pattern {
	return predicate(func(_ *analysis.Manager, v ir.Value) bool {
		return check(v.Type())
	})
}

func OfIntTy() Pattern    { return ofTypeClass((*types.Type).IsInt) }
func OfFloatTy() Pattern  { return ofTypeClass((*types.Type).IsFloat) }
func OfBoolTy() Pattern   { return ofTypeClass((*types.Type).IsBool) }
func OfPtrTy() Pattern    { return ofTypeClass((*types.Type).IsPtr) }
func OfVoidTy() Pattern   { return ofTypeClass((*types.Type).IsVoid) }
func OfArrayTy() Pattern  { return ofTypeClass((*types.Type).IsArray) }
func OfStructTy() Pattern { return ofTypeClass((*types.Type).IsStruct) }

// OfTy matches values of exactly ty.
func OfTy(ty *types.Type) Pattern {
	return ofTypeClass(func(t *types.Type) bool { return t == ty })
}

// TyAs captures the matched value's type; always matches.
func TyAs(out **types.Type) Pattern {
	return predicate(func(_ *analysis.Manager, v ir.Value) bool {
		if out != nil {
			*out = v.Type()
		}
		return true
	})
}
