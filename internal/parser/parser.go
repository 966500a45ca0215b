// Package parser reads the textual IR format back into a Module. Parsing
// is two-phase per function: the lexer produces tokens, and a recursive
// descent pass builds IR through the validating Builder, with phi incomings
// that mention later values resolved from a worklist at function end.
//
// The parser is the one boundary that turns errors into values: internally
// it unwinds with a panic that Parse converts to a *ParseError.
package parser

import (
	"fmt"
	"strings"

	"github.com/evanacox/dawn/internal/ir"
	"github.com/evanacox/dawn/internal/lexer"
	"github.com/evanacox/dawn/internal/token"
	"github.com/evanacox/dawn/internal/types"
)

// ParseError describes a syntactic or type error in the source text.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

type bailout struct {
	err *ParseError
}

// Parse reads src and builds the module it describes.
func Parse(src string) (mod *ir.Module, perr *ParseError) {
	p := &parser{
		lex:    lexer.New(src),
		mod:    ir.NewModule(),
		blocks: make(map[string]*ir.BasicBlock),
		values: make(map[string]ir.Value),
	}
	p.ib = ir.NewBuilder(p.mod)

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			mod, perr = nil, b.err
		}
	}()

	p.parseModule()
	return p.mod, nil
}

// phiEntry defers one phi incoming until the whole function is parsed, so
// the pair may reference values and blocks defined later.
type phiEntry struct {
	phi       *ir.Phi
	constant  ir.Constant
	valueName string
	blockName string
	line      int
}

type parser struct {
	lex *lexer.Lexer
	mod *ir.Module
	ib  *ir.Builder

	fn       *ir.Function
	worklist []phiEntry
	blocks   map[string]*ir.BasicBlock
	values   map[string]ir.Value
	numbered int
	line     int
}

func (p *parser) errorf(format string, args ...any) {
	p.errorAt(p.line, format, args...)
}

func (p *parser) errorAt(line int, format string, args ...any) {
	panic(bailout{&ParseError{Line: line, Message: fmt.Sprintf(format, args...)}})
}

// next consumes one token; EOF is an error here since callers asking for a
// token always need one.
func (p *parser) next(expected string) token.Token {
	tok, err := p.lex.Next()
	if err != nil {
		p.errorAt(err.Line, "%s", err.Message)
	}
	p.line = tok.Line
	if tok.IsEOF() {
		p.errorf("expected a %s, but got eof", expected)
	}
	return tok
}

func (p *parser) peek(expected string) token.Token {
	tok, err := p.lex.Peek()
	if err != nil {
		p.errorAt(err.Line, "%s", err.Message)
	}
	if tok.IsEOF() {
		p.line = tok.Line
		p.errorf("expected a %s, but got eof", expected)
	}
	return tok
}

func (p *parser) expect(kind token.Kind, expected string) token.Token {
	tok := p.next(expected)
	if tok.Kind != kind {
		p.errorf("expected a %s, but got '%s' instead", expected, tok.Text)
	}
	return tok
}

func (p *parser) parseModule() {
	for {
		tok, err := p.lex.Next()
		if err != nil {
			p.errorAt(err.Line, "%s", err.Message)
		}
		p.line = tok.Line
		switch tok.Kind {
		case token.EOF:
			return
		case token.KwDecl:
			p.parseDecl()
		case token.KwFunc:
			p.parseFunc()
		default:
			p.errorf("unexpected token '%s', expected 'decl' or 'func'", tok.Text)
		}
	}
}

func (p *parser) resetFnState() {
	p.worklist = p.worklist[:0]
	p.blocks = make(map[string]*ir.BasicBlock)
	p.values = make(map[string]ir.Value)
	p.numbered = 0
}

// parseDecl parses the signature shared by `decl` and `func`, returning
// the (possibly pre-created) function.
func (p *parser) parseDecl() *ir.Function {
	p.resetFnState()

	ret := p.parseTy()
	name := p.expect(token.GlobalName, "function name")
	fnName := strings.TrimPrefix(name.Text, "@")

	p.expect(token.LParen, "opening '(' for argument list")

	var params []*types.Type
	var argNames []string
	for p.peek("argument list").Kind != token.RParen {
		ty := p.parseTy()
		argName := p.parseDefName()
		params = append(params, ty)
		argNames = append(argNames, argName)
		if p.peek("argument list").Kind == token.Comma {
			p.next("','")
		}
	}
	p.expect(token.RParen, "closing ')' for argument list")

	fn := p.resolveFunc(fnName, ret, params)
	for i, arg := range fn.Args() {
		p.values[argNames[i]] = arg
	}
	return fn
}

// resolveFunc creates the function, or binds to a declaration created
// earlier (by a call or a `decl`) whose signature must match.
func (p *parser) resolveFunc(name string, ret *types.Type, params []*types.Type) *ir.Function {
	existing, ok := p.mod.FindFunc(name)
	if !ok {
		return p.mod.CreateFunc(name, ret, params)
	}
	if !existing.Opaque() {
		p.errorf("function '@%s' is already defined", name)
	}
	if existing.ReturnType() != ret {
		p.errorf("function '@%s' was declared with return type '%s', not '%s'",
			name, existing.ReturnType(), ret)
	}
	args := existing.Args()
	if len(args) != len(params) {
		p.errorf("function '@%s' was declared with %d arguments, not %d",
			name, len(args), len(params))
	}
	for i, arg := range args {
		if arg.Type() != params[i] {
			p.errorf("function '@%s' argument %d was declared as '%s', not '%s'",
				name, i, arg.Type(), params[i])
		}
	}
	return existing
}

func (p *parser) parseFunc() {
	fn := p.parseDecl()
	p.fn = fn

	p.expect(token.LBrace, "opening '{' for function body")
	p.ib.SetInsertFn(fn)

	for p.peek("function body").Kind != token.RBrace {
		p.parseBlock()
	}
	p.expect(token.RBrace, "closing '}' for function body")

	// resolve deferred phi incomings now that every value and block of
	// the function is known
	for _, entry := range p.worklist {
		bb, ok := p.blocks[entry.blockName]
		if !ok {
			p.errorAt(entry.line, "basic block '%%%s' not found", entry.blockName)
		}
		value := ir.Value(entry.constant)
		if entry.constant == nil {
			named, ok := p.values[entry.valueName]
			if !ok {
				p.errorAt(entry.line, "value '%s' not found", entry.valueName)
			}
			if named.Type() != entry.phi.Type() {
				p.errorAt(entry.line,
					"phi of type '%s' cannot accept incoming value of type '%s'",
					entry.phi.Type(), named.Type())
			}
			value = named
		}
		entry.phi.AddIncoming(bb, value)
	}
}

func (p *parser) parseBlock() {
	label := p.expect(token.BlockLabel, "block label")
	block := p.createOrGetBlock(label.Text)
	p.ib.SetInsertPoint(block)
	p.expect(token.Colon, "':' following block label")

	for {
		tok := p.peek("instruction or block label")
		if tok.Kind == token.BlockLabel || tok.Kind == token.RBrace {
			return
		}
		p.parseInst()
	}
}

// createOrGetBlock looks the label up, creating the block lazily so
// branches can target labels that have not been seen yet.
func (p *parser) createOrGetBlock(label string) *ir.BasicBlock {
	name := strings.TrimPrefix(label, "%")
	if bb, ok := p.blocks[name]; ok {
		return bb
	}
	bb := p.ib.CreateNamedBlock(name)
	p.blocks[name] = bb
	return bb
}

func (p *parser) parseTy() *types.Type {
	tok := p.next("type")
	switch tok.Kind {
	case token.KwBool:
		return p.ib.BoolTy()
	case token.KwVoid:
		return p.ib.VoidTy()
	case token.KwPtr:
		return p.ib.PtrTy()
	case token.KwI8:
		return p.ib.I8()
	case token.KwI16:
		return p.ib.I16()
	case token.KwI32:
		return p.ib.I32()
	case token.KwI64:
		return p.ib.I64()
	case token.KwF32:
		return p.ib.F32()
	case token.KwF64:
		return p.ib.F64()
	case token.LBracket:
		inner := p.parseTy()
		p.expect(token.Semicolon, "';' between array element type and length")
		length := p.parseArrayLen()
		p.expect(token.RBracket, "closing ']' for array type")
		return p.ib.ArrayType(inner, length)
	case token.LBrace:
		var fields []*types.Type
		for p.peek("struct type").Kind != token.RBrace {
			fields = append(fields, p.parseTy())
		}
		p.expect(token.RBrace, "closing '}' for struct type")
		return p.ib.StructType(fields)
	default:
		p.errorf("expected a type, got '%s'", tok.Text)
		return nil
	}
}

// parseDefName reads a value label used as a definition. Numeric labels
// must form the contiguous sequence of result-producing definitions.
func (p *parser) parseDefName() string {
	name := p.expect(token.ValLabel, "val name")
	actual := strings.TrimPrefix(name.Text, "$")

	if actual != "" && allDigits(actual) {
		val := decimalValue(actual)
		if val < 0 {
			p.errorf("invalid integer label '%s'", name.Text)
		}
		if val != p.numbered {
			p.errorf("expected next numbered value to be named '$%d' but got '$%d'",
				p.numbered, val)
		}
		p.numbered++
	}
	return name.Text
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func decimalValue(s string) int {
	val := 0
	for i := 0; i < len(s); i++ {
		if val > (1<<31)/10 {
			return -1
		}
		val = val*10 + int(s[i]-'0')
	}
	return val
}
