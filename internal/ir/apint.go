package ir

import (
	"fmt"

	"github.com/evanacox/dawn/internal/types"
)

// APInt is an arbitrary-width integer restricted to the widths the type
// universe supports. The stored value is always masked to the width, so it
// lies in [0, 2^width).
type APInt struct {
	value uint64
	width types.Width
}

// NewAPInt masks value to width and pairs the two. A width outside
// {8, 16, 32, 64} is a programming error.
func NewAPInt(value uint64, width types.Width) APInt {
	switch width {
	case types.Width8, types.Width16, types.Width32, types.Width64:
	default:
		panic(fmt.Sprintf("ir: invalid integer width %d", width))
	}
	return APInt{value: value & maskForWidth(width), width: width}
}

// Value returns the raw value with bits above the width shaved off.
func (a APInt) Value() uint64 { return a.value }

// Width returns the width in bits.
func (a APInt) Width() types.Width { return a.width }

func maskForWidth(width types.Width) uint64 {
	return ^uint64(0) >> (64 - uint64(width))
}
