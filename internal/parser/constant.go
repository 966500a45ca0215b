package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/evanacox/dawn/internal/ir"
	"github.com/evanacox/dawn/internal/token"
	"github.com/evanacox/dawn/internal/types"
)

func (p *parser) parseArrayLen() uint64 {
	lit := p.expect(token.DecimalLit, "array length")
	length, err := strconv.ParseUint(lit.Text, 10, 64)
	if err != nil {
		p.errorf("invalid integer constant '%s'", lit.Text)
	}
	return length
}

// parseConstant reads one constant literal of the expected type.
func (p *parser) parseConstant(expected *types.Type) ir.Constant {
	tok := p.next("a constant")
	switch tok.Kind {
	case token.BinaryLit:
		return p.parseIntConstant(expected, tok.Text, 2, 2)
	case token.OctalLit:
		return p.parseIntConstant(expected, tok.Text, 2, 8)
	case token.DecimalLit:
		return p.parseIntConstant(expected, tok.Text, 0, 10)
	case token.HexLit:
		return p.parseIntConstant(expected, tok.Text, 2, 16)
	case token.FloatLit, token.ScientificLit, token.CHexFloatLit:
		return p.parseFloatConstant(expected, tok.Text)
	case token.ByteHexFloatLit:
		return p.parseBitPatternFloat(expected, tok.Text)
	case token.KwTrue, token.KwFalse:
		if !expected.IsBool() {
			p.errorf("bool literal should be of type 'bool' but was '%s'", expected)
		}
		return p.ib.ConstBool(tok.Kind == token.KwTrue)
	case token.KwNull:
		if !expected.IsPtr() {
			p.errorf("'null' should be of type 'ptr' but was '%s'", expected)
		}
		return p.ib.ConstNull()
	case token.KwUndef:
		return p.ib.ConstUndef(expected)
	case token.LBrace:
		return p.parseConstantStruct(expected)
	case token.LBracket:
		return p.parseConstantArray(expected)
	case token.StringLit:
		c := p.ib.ConstString(p.decodeString(tok.Text))
		if c.Type() != expected {
			p.errorf("string literal has type '%s' but '%s' was expected",
				c.Type(), expected)
		}
		return c
	default:
		p.errorf("unexpected token '%s', expected constant", tok.Text)
		return nil
	}
}

func (p *parser) parseIntConstant(expected *types.Type, raw string, offset, base int) *ir.ConstantInt {
	if !expected.IsInt() {
		p.errorf("integer literal should be of integer type but was '%s'", expected)
	}
	value := p.parseRawInteger(raw, offset, base)
	return p.ib.ConstInt(ir.NewAPInt(value, expected.Width()), expected)
}

// parseRawInteger decodes an optionally negative literal in the given
// base; negative values are stored as their two's complement bits.
func (p *parser) parseRawInteger(raw string, offset, base int) uint64 {
	negative := strings.HasPrefix(raw, "-")
	digits := strings.TrimPrefix(raw, "-")
	digits = digits[offset:]

	value, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		p.errorf("unable to parse integer '%s', literal values must fit within 64 bits", raw)
	}
	if negative {
		return -value
	}
	return value
}

func (p *parser) parseFloatConstant(expected *types.Type, raw string) *ir.ConstantFloat {
	ty := p.floatType(expected)
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.errorf("unable to parse float literal '%s'", raw)
	}
	return p.ib.ConstFloat(value, ty)
}

// parseBitPatternFloat decodes the raw 0xfp form: the hex digits are the
// IEEE bit pattern at the expected type's width.
func (p *parser) parseBitPatternFloat(expected *types.Type, raw string) *ir.ConstantFloat {
	ty := p.floatType(expected)
	digits := strings.TrimPrefix(raw, "0xfp")
	bits, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		p.errorf("unable to parse float bit pattern '%s'", raw)
	}
	if ty.Width() == types.Width32 {
		if bits > math.MaxUint32 {
			p.errorf("float bit pattern '%s' does not fit in 32 bits", raw)
		}
		return p.ib.ConstFloat(float64(math.Float32frombits(uint32(bits))), ty)
	}
	return p.ib.ConstFloat(math.Float64frombits(bits), ty)
}

func (p *parser) floatType(expected *types.Type) *types.Type {
	if !expected.IsFloat() {
		p.errorf("float literal should be of float type but was '%s'", expected)
	}
	return expected
}

func (p *parser) parseConstantArray(expected *types.Type) *ir.ConstantArray {
	if !expected.IsArray() {
		p.errorf("array literal should be of array type but was '%s'", expected)
	}
	if expected.Len() == 0 {
		p.errorf("array constant requires at least one element")
	}
	vals := make([]ir.Constant, 0, expected.Len())
	for i := uint64(0); i < expected.Len(); i++ {
		vals = append(vals, p.parseConstant(expected.Elem()))
		if i+1 < expected.Len() {
			p.expect(token.Comma, "',' between array literal elements")
		}
	}
	p.expect(token.RBracket, "']' after correct number of array elements")
	return p.ib.ConstArray(vals)
}

func (p *parser) parseConstantStruct(expected *types.Type) *ir.ConstantStruct {
	if !expected.IsStruct() {
		p.errorf("struct literal should be of struct type but was '%s'", expected)
	}
	fields := expected.Fields()
	vals := make([]ir.Constant, 0, len(fields))
	for i, field := range fields {
		vals = append(vals, p.parseConstant(field))
		if i+1 < len(fields) {
			p.expect(token.Comma, "',' between struct literal elements")
		}
	}
	p.expect(token.RBrace, "'}' after correct number of struct constant elements")
	return p.ib.ConstStruct(vals)
}

// decodeString translates the C-style escapes of a raw quoted literal.
func (p *parser) decodeString(raw string) string {
	body := raw[1 : len(raw)-1]
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' {
			sb.WriteByte(ch)
			continue
		}
		i++
		if i >= len(body) {
			p.errorf("unexpected end of string literal, expected escape sequence after '\\'")
		}
		switch body[i] {
		case '\'':
			sb.WriteByte('\'')
		case '"':
			sb.WriteByte('"')
		case '?':
			sb.WriteByte('?')
		case '\\':
			sb.WriteByte('\\')
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)
		case 'x':
			if i+2 >= len(body) {
				p.errorf("invalid hex escape sequence '%s'", body[i:])
			}
			value, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				p.errorf("invalid hex escape sequence '%s'", body[i+1:i+3])
			}
			sb.WriteByte(byte(value))
			i += 2
		default:
			p.errorf("unknown escape sequence '\\%c'", body[i])
		}
	}
	return sb.String()
}

// parseRefValue reads either a known value label or a constant of the
// expected type.
func (p *parser) parseRefValue(expected *types.Type) ir.Value {
	tok, err := p.lex.Peek()
	if err == nil && tok.Kind == token.ValLabel {
		if known, ok := p.values[tok.Text]; ok {
			p.next("value reference")
			if known.Type() != expected {
				p.errorf("value expected to be of type '%s' but got '%s'",
					expected, known.Type())
			}
			return known
		}
	}
	return p.parseConstant(expected)
}

// parseTyValPair reads "type value-ref".
func (p *parser) parseTyValPair() (*types.Type, ir.Value) {
	ty := p.parseTy()
	val := p.parseRefValue(ty)
	return ty, val
}

// parseBinopOperands reads "ty lhs, rhs"; the rhs shares the lhs type.
func (p *parser) parseBinopOperands() (ir.Value, ir.Value) {
	ty, lhs := p.parseTyValPair()
	p.expect(token.Comma, "comma between binary instruction operands")
	rhs := p.parseRefValue(ty)
	return lhs, rhs
}
