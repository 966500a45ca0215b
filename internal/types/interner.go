package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Interner hash-conses type descriptors: any two structurally equal types
// requested from the same interner are the same *Type identity.
type Interner struct {
	index map[string]*Type

	i8, i16, i32, i64 *Type
	f32, f64          *Type
	boolean           *Type
	ptr               *Type
	void              *Type
	emptyStruct       *Type
}

// NewInterner constructs an interner seeded with the predefined singletons.
func NewInterner() *Interner {
	in := &Interner{index: make(map[string]*Type, 64)}
	in.i8 = in.intern(&Type{kind: KindInt, width: Width8})
	in.i16 = in.intern(&Type{kind: KindInt, width: Width16})
	in.i32 = in.intern(&Type{kind: KindInt, width: Width32})
	in.i64 = in.intern(&Type{kind: KindInt, width: Width64})
	in.f32 = in.intern(&Type{kind: KindFloat, width: Width32})
	in.f64 = in.intern(&Type{kind: KindFloat, width: Width64})
	in.boolean = in.intern(&Type{kind: KindBool})
	in.ptr = in.intern(&Type{kind: KindPtr})
	in.void = in.intern(&Type{kind: KindVoid})
	in.emptyStruct = in.intern(&Type{kind: KindStruct})
	return in
}

func (in *Interner) I8() *Type          { return in.i8 }
func (in *Interner) I16() *Type         { return in.i16 }
func (in *Interner) I32() *Type         { return in.i32 }
func (in *Interner) I64() *Type         { return in.i64 }
func (in *Interner) F32() *Type         { return in.f32 }
func (in *Interner) F64() *Type         { return in.f64 }
func (in *Interner) Bool() *Type        { return in.boolean }
func (in *Interner) Ptr() *Type         { return in.ptr }
func (in *Interner) Void() *Type        { return in.void }
func (in *Interner) EmptyStruct() *Type { return in.emptyStruct }

// IntOfWidth returns the integer singleton for one of the widths 8, 16, 32
// or 64. Any other width is a programming error.
func (in *Interner) IntOfWidth(width uint64) *Type {
	switch width {
	case 8:
		return in.i8
	case 16:
		return in.i16
	case 32:
		return in.i32
	case 64:
		return in.i64
	default:
		panic(fmt.Sprintf("types: invalid integer width %d", width))
	}
}

// FloatOfWidth returns the float singleton for width 32 or 64. Any other
// width is a programming error.
func (in *Interner) FloatOfWidth(width uint64) *Type {
	switch width {
	case 32:
		return in.f32
	case 64:
		return in.f64
	default:
		panic(fmt.Sprintf("types: invalid float width %d", width))
	}
}

// Array returns the unique [elem; length] type.
func (in *Interner) Array(elem *Type, length uint64) *Type {
	if elem == nil {
		panic("types: array element type must not be nil")
	}
	return in.intern(&Type{kind: KindArray, elem: elem, count: length})
}

// Struct returns the unique struct type with the given fields. The field
// slice is copied; callers may reuse theirs.
func (in *Interner) Struct(fields []*Type) *Type {
	if len(fields) == 0 {
		return in.emptyStruct
	}
	copied := make([]*Type, len(fields))
	copy(copied, fields)
	return in.intern(&Type{kind: KindStruct, fields: copied})
}

// intern consults the index by structural key, storing t when absent.
func (in *Interner) intern(t *Type) *Type {
	key := t.String()
	if existing, ok := in.index[key]; ok {
		return existing
	}
	uid, err := safecast.Conv[uint32](len(in.index))
	if err != nil {
		panic(fmt.Errorf("types: interner overflow: %w", err))
	}
	t.uid = uid
	in.index[key] = t
	return t
}
