package ir

import (
	"github.com/evanacox/dawn/internal/types"
)

// Function has a name, a return type, ordered arguments and ordered basic
// blocks. A function with no blocks is opaque: a declaration of external
// linkage.
type Function struct {
	name   string
	ret    *types.Type
	args   []*Argument
	blocks []*BasicBlock
	mod    *Module
}

// Name returns the function's name, without the textual '@' sigil.
func (f *Function) Name() string { return f.name }

// ReturnType returns the declared return type (possibly void).
func (f *Function) ReturnType() *types.Type { return f.ret }

// Args returns the arguments in declaration order.
func (f *Function) Args() []*Argument { return f.args }

// Blocks returns the basic blocks in insertion order.
func (f *Function) Blocks() []*BasicBlock { return f.blocks }

// Entry returns the first block, or nil for an opaque function.
func (f *Function) Entry() *BasicBlock {
	if len(f.blocks) == 0 {
		return nil
	}
	return f.blocks[0]
}

// Opaque reports whether the function is a bodyless declaration.
func (f *Function) Opaque() bool { return len(f.blocks) == 0 }

// Parent returns the owning module.
func (f *Function) Parent() *Module { return f.mod }

// appendBlock creates an empty block parented by f. name may be "".
func (f *Function) appendBlock(name string) *BasicBlock {
	bb := &BasicBlock{name: name, fn: f, id: len(f.blocks)}
	f.blocks = append(f.blocks, bb)
	return bb
}
