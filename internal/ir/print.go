package ir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/evanacox/dawn/internal/types"
)

// The printer assigns numeric labels to every argument and every
// result-producing instruction per function, in traversal order. Blocks
// print under their declared name, `entry` for an unnamed entry block, or
// `bb0, bb1, ...` in insertion order. Output is fully deterministic and
// the parser reads it back exactly.

// PrintModule renders every function of m.
func PrintModule(m *Module) string {
	w := newWriter(m)
	var sb strings.Builder
	for _, fn := range m.funcs {
		w.dumpFunction(&sb, fn)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// PrintFunction renders a single function of m.
func PrintFunction(m *Module, fn *Function) string {
	w := newWriter(m)
	var sb strings.Builder
	w.dumpFunction(&sb, fn)
	return sb.String()
}

// PrintValue renders a single value the way it appears inside a block,
// without the leading indentation.
func PrintValue(m *Module, v Value) string {
	w := newWriter(m)
	var sb strings.Builder
	w.dumpInst(&sb, v, "")
	return strings.TrimSuffix(sb.String(), "\n")
}

// PrintType renders a type in the textual grammar.
func PrintType(t *types.Type) string { return t.String() }

type writer struct {
	names      map[Value]int
	blockNames map[*BasicBlock]string
}

func newWriter(m *Module) *writer {
	w := &writer{
		names:      make(map[Value]int),
		blockNames: make(map[*BasicBlock]string),
	}
	for _, fn := range m.funcs {
		w.labelFunction(fn)
	}
	return w
}

func (w *writer) labelFunction(fn *Function) {
	curr := 0
	for _, arg := range fn.args {
		w.names[arg] = curr
		curr++
	}
	if fn.Opaque() {
		return
	}

	unnamed := 0
	for i, bb := range fn.blocks {
		name := bb.name
		if name == "" {
			if i == 0 {
				name = "entry"
			} else {
				name = "bb" + strconv.Itoa(unnamed)
				unnamed++
			}
		}
		w.blockNames[bb] = name

		for _, inst := range bb.insts {
			if !inst.Type().IsVoid() {
				w.names[inst] = curr
				curr++
			}
		}
	}
}

func (w *writer) dumpFunction(sb *strings.Builder, fn *Function) {
	if fn.Opaque() {
		sb.WriteString("decl ")
	} else {
		sb.WriteString("func ")
	}
	sb.WriteString(fn.ret.String())
	sb.WriteString(" @")
	sb.WriteString(fn.name)
	sb.WriteByte('(')
	for i, arg := range fn.args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.Type().String())
		fmt.Fprintf(sb, " $%d", w.names[arg])
	}
	sb.WriteByte(')')

	if fn.Opaque() {
		return
	}

	sb.WriteString(" {\n")
	for _, bb := range fn.blocks {
		w.dumpBlock(sb, bb)
	}
	sb.WriteByte('}')
}

func (w *writer) dumpBlock(sb *strings.Builder, bb *BasicBlock) {
	sb.WriteByte('%')
	sb.WriteString(w.blockNames[bb])
	sb.WriteString(":\n")
	for _, inst := range bb.insts {
		w.dumpInst(sb, inst, "    ")
	}
}

func (w *writer) dumpInst(sb *strings.Builder, v Value, indent string) {
	line := indent
	if n, ok := w.names[v]; ok {
		line += "$" + strconv.Itoa(n) + " = "
	}
	sb.WriteString(line)
	w.dumpRawValue(sb, v, len(line))
	sb.WriteByte('\n')
}

// dumpRawValue emits a value without label or newline. col is the column
// the opcode starts at; phis use it to align their incoming list.
func (w *writer) dumpRawValue(sb *strings.Builder, v Value, col int) {
	switch vv := v.(type) {
	case *Phi:
		prefix := "phi " + vv.Type().String() + " "
		sb.WriteString(prefix)
		indent := strings.Repeat(" ", col+len(prefix))
		for i, in := range vv.incoming {
			if i > 0 {
				sb.WriteString(",\n")
				sb.WriteString(indent)
			}
			sb.WriteString("[ ")
			w.ref(sb, in.Value)
			sb.WriteString(", %")
			sb.WriteString(w.blockNames[in.Block])
			sb.WriteString(" ]")
		}
	case *Call:
		sb.WriteString("call ")
		sb.WriteString(vv.target.ret.String())
		sb.WriteString(" @")
		sb.WriteString(vv.target.name)
		sb.WriteByte('(')
		for i, arg := range vv.ops {
			if i > 0 {
				sb.WriteString(", ")
			}
			w.tyRef(sb, arg)
		}
		sb.WriteByte(')')
	case *Sel:
		sb.WriteString("sel ")
		sb.WriteString(vv.Type().String())
		sb.WriteString(", bool ")
		w.ref(sb, vv.Cond())
		sb.WriteString(", if ")
		w.ref(sb, vv.IfTrue())
		sb.WriteString(", else ")
		w.ref(sb, vv.IfFalse())
	case *ICmp:
		sb.WriteString("icmp ")
		sb.WriteString(vv.order.String())
		sb.WriteByte(' ')
		w.tyRef(sb, vv.Lhs())
		sb.WriteString(", ")
		w.ref(sb, vv.Rhs())
	case *FCmp:
		sb.WriteString("fcmp ")
		sb.WriteString(vv.order.String())
		sb.WriteByte(' ')
		w.tyRef(sb, vv.Lhs())
		sb.WriteString(", ")
		w.ref(sb, vv.Rhs())
	case *Br:
		sb.WriteString("br %")
		sb.WriteString(w.blockNames[vv.Target()])
	case *CondBr:
		sb.WriteString("cbr bool ")
		w.ref(sb, vv.Cond())
		sb.WriteString(", if %")
		sb.WriteString(w.blockNames[vv.TrueBranch()])
		sb.WriteString(", else %")
		sb.WriteString(w.blockNames[vv.FalseBranch()])
	case *Ret:
		sb.WriteString("ret ")
		if val := vv.ReturnValue(); val != nil {
			w.tyRef(sb, val)
		} else {
			sb.WriteString("void")
		}
	case *Unreachable:
		sb.WriteString("unreachable")
	case *Load:
		sb.WriteString("load ")
		if vv.volatile {
			sb.WriteString("volatile ")
		}
		sb.WriteString(vv.Type().String())
		sb.WriteString(", ptr ")
		w.ref(sb, vv.Target())
	case *Store:
		sb.WriteString("store ")
		if vv.volatile {
			sb.WriteString("volatile ")
		}
		w.tyRef(sb, vv.Stored())
		sb.WriteString(", ")
		w.tyRef(sb, vv.Target())
	case *Alloca:
		sb.WriteString("alloca ")
		sb.WriteString(vv.allocated.String())
		if c, ok := vv.NumberOfObjects().(*ConstantInt); !ok || c.RealValue() != 1 {
			sb.WriteString(", ")
			w.tyRef(sb, vv.NumberOfObjects())
		}
	case *Offset:
		sb.WriteString("index ")
		sb.WriteString(vv.elem.String())
		sb.WriteString(", ")
		w.tyRef(sb, vv.Base())
		sb.WriteString(", ")
		w.tyRef(sb, vv.Index())
	case *Extract:
		sb.WriteString("extract ")
		w.tyRef(sb, vv.Aggregate())
		sb.WriteString(", ")
		w.tyRef(sb, vv.Index())
	case *Insert:
		sb.WriteString("insert ")
		w.tyRef(sb, vv.Aggregate())
		sb.WriteString(", ")
		w.tyRef(sb, vv.Inserted())
		sb.WriteString(", ")
		w.tyRef(sb, vv.Index())
	case *ElemPtr:
		sb.WriteString("elemptr ")
		sb.WriteString(vv.aggregate.String())
		sb.WriteString(", ")
		w.tyRef(sb, vv.Base())
		sb.WriteString(", ")
		w.tyRef(sb, vv.Index())
	case ConversionInstruction:
		sb.WriteString(v.Kind().String())
		sb.WriteByte(' ')
		sb.WriteString(vv.Into().String())
		sb.WriteString(", ")
		w.tyRef(sb, vv.From())
	case BinaryInstruction:
		sb.WriteString(v.Kind().String())
		sb.WriteByte(' ')
		w.tyRef(sb, vv.Lhs())
		sb.WriteString(", ")
		w.ref(sb, vv.Rhs())
	case Constant:
		sb.WriteString(constText(vv))
	case *Argument:
		fmt.Fprintf(sb, "$%d", w.names[v])
	default:
		violated("cannot print value of kind '%s'", v.Kind())
	}
}

// tyRef emits "type ref".
func (w *writer) tyRef(sb *strings.Builder, v Value) {
	sb.WriteString(v.Type().String())
	sb.WriteByte(' ')
	w.ref(sb, v)
}

// ref emits "$N" for instructions and arguments, the canonical constant
// form otherwise.
func (w *writer) ref(sb *strings.Builder, v Value) {
	if c, ok := v.(Constant); ok {
		sb.WriteString(constText(c))
		return
	}
	if n, ok := w.names[v]; ok {
		fmt.Fprintf(sb, "$%d", n)
		return
	}
	violated("cannot reference unlabeled value of kind '%s'", v.Kind())
}

// constText renders a constant in canonical form: integers in decimal,
// floats as the raw 0xfp bit pattern, keywords for true/false/null/undef,
// strings double-quoted with C escapes.
func constText(c Constant) string {
	switch cv := c.(type) {
	case *ConstantInt:
		return strconv.FormatUint(cv.RealValue(), 10)
	case *ConstantFloat:
		if cv.Type().Width() == types.Width32 {
			return fmt.Sprintf("0xfp%08x", uint32(cv.Bits()))
		}
		return fmt.Sprintf("0xfp%016x", cv.Bits())
	case *ConstantBool:
		if cv.value {
			return "true"
		}
		return "false"
	case *ConstantNull:
		return "null"
	case *ConstantUndef:
		return "undef"
	case *ConstantArray:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, e := range cv.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(constText(e))
		}
		sb.WriteByte(']')
		return sb.String()
	case *ConstantStruct:
		var sb strings.Builder
		sb.WriteString("{ ")
		for i, e := range cv.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(constText(e))
		}
		sb.WriteString(" }")
		return sb.String()
	case *ConstantString:
		return quoteString(cv.data)
	default:
		violated("cannot print constant of kind '%s'", c.Kind())
		return ""
	}
}

func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '"':
			sb.WriteString(`\"`)
		case ch == '\\':
			sb.WriteString(`\\`)
		case ch == '\n':
			sb.WriteString(`\n`)
		case ch == '\t':
			sb.WriteString(`\t`)
		case ch == '\r':
			sb.WriteString(`\r`)
		case ch == 0:
			sb.WriteString(`\0`)
		case ch >= 0x20 && ch < 0x7f:
			sb.WriteByte(ch)
		default:
			fmt.Fprintf(&sb, `\x%02x`, ch)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
