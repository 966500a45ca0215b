package token

// Kind enumerates every token of the textual IR format.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	// `@name`, `%label` and `$label` sigils
	GlobalName
	BlockLabel
	ValLabel

	// literals; the numeric kinds record the base or float form so the
	// parser can decode without re-inspecting the text
	BinaryLit
	OctalLit
	DecimalLit
	HexLit
	FloatLit
	ScientificLit
	ByteHexFloatLit
	CHexFloatLit
	StringLit

	// reserved punctuation
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Semicolon
	Eq

	// type keywords
	KwBool
	KwVoid
	KwPtr
	KwI8
	KwI16
	KwI32
	KwI64
	KwF32
	KwF64

	// structural keywords
	KwIf
	KwElse
	KwTrue
	KwFalse
	KwUndef
	KwNull
	KwVolatile
	KwDecl
	KwFunc

	// opcodes
	KwPhi
	KwCall
	KwSel
	KwBr
	KwCbr
	KwRet
	KwUnreachable
	KwAnd
	KwOr
	KwXor
	KwShl
	KwLShr
	KwAShr
	KwIAdd
	KwISub
	KwIMul
	KwUDiv
	KwSDiv
	KwURem
	KwSRem
	KwFNeg
	KwFAdd
	KwFSub
	KwFMul
	KwFDiv
	KwFRem
	KwICmp
	KwFCmp
	KwLoad
	KwStore
	KwAlloca
	KwIndex
	KwExtract
	KwInsert
	KwElemPtr
	KwSext
	KwZext
	KwTrunc
	KwItob
	KwBtoi
	KwSitof
	KwUitof
	KwFtosi
	KwFtoui
	KwItop
	KwPtoi

	// comparison orderings
	KwEq
	KwNe
	KwUgt
	KwUlt
	KwUge
	KwUle
	KwSgt
	KwSlt
	KwSge
	KwSle
	KwOrd
	KwUno
	KwOeq
	KwOne
	KwOgt
	KwOlt
	KwOge
	KwOle
	KwUeq
	KwUne
)

// IsLiteral reports whether the token is a numeric or string literal; the
// `true`/`false` keywords are not included.
func (k Kind) IsLiteral() bool {
	return k >= BinaryLit && k <= StringLit
}

// IsType reports whether the token begins a scalar type.
func (k Kind) IsType() bool {
	return k >= KwBool && k <= KwF64
}
