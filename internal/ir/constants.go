package ir

import (
	"math"

	"github.com/evanacox/dawn/internal/types"
)

// Constant is a value known at compile time. Constants are hash-consed by
// the Module's pool: two structurally equal constants from the same Module
// are the same object, so pointer identity implies structural identity.
type Constant interface {
	Value

	// IsZero reports whether the constant is the zero/null/empty
	// element of its type.
	IsZero() bool
}

type constBase struct {
	valueBase
	zero bool
}

func (c *constBase) IsZero() bool { return c.zero }

// ConstantInt is an integer constant of one of the enumerated widths.
type ConstantInt struct {
	constBase
	value APInt
}

func (c *ConstantInt) Kind() ValueKind { return KindConstInt }

// Value returns the width-masked payload.
func (c *ConstantInt) Value() APInt { return c.value }

// RealValue returns the payload as a bare uint64.
func (c *ConstantInt) RealValue() uint64 { return c.value.Value() }

// ConstantBool is true or false.
type ConstantBool struct {
	constBase
	value bool
}

func (c *ConstantBool) Kind() ValueKind { return KindConstBool }
func (c *ConstantBool) Value() bool     { return c.value }

// ConstantFloat is an f32 or f64 constant. The payload is always held as a
// float64; f32 constants round through float32 on construction.
type ConstantFloat struct {
	constBase
	value float64
}

func (c *ConstantFloat) Kind() ValueKind { return KindConstFloat }
func (c *ConstantFloat) Value() float64  { return c.value }

// Bits returns the IEEE bit pattern used for hashing and printing.
func (c *ConstantFloat) Bits() uint64 {
	if c.ty.Width() == types.Width32 {
		return uint64(math.Float32bits(float32(c.value)))
	}
	return math.Float64bits(c.value)
}

// ConstantNull is the null pointer.
type ConstantNull struct {
	constBase
}

func (c *ConstantNull) Kind() ValueKind { return KindConstNull }

// ConstantUndef is an unspecified value of a given type.
type ConstantUndef struct {
	constBase
}

func (c *ConstantUndef) Kind() ValueKind { return KindConstUndef }

// ConstantArray is a fixed-length array of uniformly-typed constants.
type ConstantArray struct {
	constBase
	elems []Constant
}

func (c *ConstantArray) Kind() ValueKind { return KindConstArray }

// Values returns the element constants in index order.
func (c *ConstantArray) Values() []Constant { return c.elems }

// ConstantStruct is an aggregate constant whose elements match the struct
// type's fields in order.
type ConstantStruct struct {
	constBase
	elems []Constant
}

func (c *ConstantStruct) Kind() ValueKind { return KindConstStruct }

// Values returns the field constants in declaration order.
func (c *ConstantStruct) Values() []Constant { return c.elems }

// ConstantString is a byte string viewed as an [i8; len] array. The
// per-byte ConstantInt values are materialized so the string can be used
// anywhere an array constant can.
type ConstantString struct {
	constBase
	data  string
	bytes []*ConstantInt
}

func (c *ConstantString) Kind() ValueKind { return KindConstString }

// StringData returns the raw bytes.
func (c *ConstantString) StringData() string { return c.data }

// Bytes returns the per-byte i8 constants.
func (c *ConstantString) Bytes() []*ConstantInt { return c.bytes }
