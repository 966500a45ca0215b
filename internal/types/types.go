package types

import (
	"fmt"
	"strings"
)

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindBool
	KindPtr
	KindVoid
	KindArray
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindPtr:
		return "ptr"
	case KindVoid:
		return "void"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the precision of integers and floats, in bits.
type Width uint8

const (
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64
)

// Type is an immutable descriptor for any supported type. Types are
// hash-consed by an Interner: within one interner two structurally equal
// types are always the same *Type, so pointer comparison is type equality.
type Type struct {
	kind   Kind
	width  Width
	elem   *Type
	count  uint64
	fields []*Type
	uid    uint32
}

// Kind returns the kind tag.
func (t *Type) Kind() Kind { return t.kind }

// Width returns the bit width for integer and float types.
func (t *Type) Width() Width {
	if t.kind != KindInt && t.kind != KindFloat {
		panic("types: Width called on non-numeric type " + t.String())
	}
	return t.width
}

// Elem returns the element type of an array.
func (t *Type) Elem() *Type {
	if t.kind != KindArray {
		panic("types: Elem called on non-array type " + t.String())
	}
	return t.elem
}

// Len returns the length of an array.
func (t *Type) Len() uint64 {
	if t.kind != KindArray {
		panic("types: Len called on non-array type " + t.String())
	}
	return t.count
}

// Fields returns the field types of a struct, in declaration order.
func (t *Type) Fields() []*Type {
	if t.kind != KindStruct {
		panic("types: Fields called on non-struct type " + t.String())
	}
	return t.fields
}

// UID returns the interner-assigned id, usable as a stable hash seed.
func (t *Type) UID() uint32 { return t.uid }

func (t *Type) IsInt() bool    { return t.kind == KindInt }
func (t *Type) IsFloat() bool  { return t.kind == KindFloat }
func (t *Type) IsBool() bool   { return t.kind == KindBool }
func (t *Type) IsPtr() bool    { return t.kind == KindPtr }
func (t *Type) IsVoid() bool   { return t.kind == KindVoid }
func (t *Type) IsArray() bool  { return t.kind == KindArray }
func (t *Type) IsStruct() bool { return t.kind == KindStruct }

// String renders the type in the textual IR grammar: i8..i64, f32, f64,
// bool, ptr, void, [T; N] and { T U ... }. The rendering is structurally
// unique, so the interner uses it as its lookup key.
func (t *Type) String() string {
	switch t.kind {
	case KindInt:
		return fmt.Sprintf("i%d", t.width)
	case KindFloat:
		return fmt.Sprintf("f%d", t.width)
	case KindBool:
		return "bool"
	case KindPtr:
		return "ptr"
	case KindVoid:
		return "void"
	case KindArray:
		return fmt.Sprintf("[%s; %d]", t.elem.String(), t.count)
	case KindStruct:
		var sb strings.Builder
		sb.WriteString("{ ")
		for _, f := range t.fields {
			sb.WriteString(f.String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('}')
		return sb.String()
	default:
		return "invalid"
	}
}
