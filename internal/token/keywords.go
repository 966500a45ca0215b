package token

var keywords = map[string]Kind{
	"bool":        KwBool,
	"void":        KwVoid,
	"ptr":         KwPtr,
	"i8":          KwI8,
	"i16":         KwI16,
	"i32":         KwI32,
	"i64":         KwI64,
	"f32":         KwF32,
	"f64":         KwF64,
	"if":          KwIf,
	"else":        KwElse,
	"true":        KwTrue,
	"false":       KwFalse,
	"undef":       KwUndef,
	"null":        KwNull,
	"volatile":    KwVolatile,
	"decl":        KwDecl,
	"func":        KwFunc,
	"phi":         KwPhi,
	"call":        KwCall,
	"sel":         KwSel,
	"br":          KwBr,
	"cbr":         KwCbr,
	"ret":         KwRet,
	"unreachable": KwUnreachable,
	"and":         KwAnd,
	"or":          KwOr,
	"xor":         KwXor,
	"shl":         KwShl,
	"lshr":        KwLShr,
	"ashr":        KwAShr,
	"iadd":        KwIAdd,
	"isub":        KwISub,
	"imul":        KwIMul,
	"udiv":        KwUDiv,
	"sdiv":        KwSDiv,
	"urem":        KwURem,
	"srem":        KwSRem,
	"fneg":        KwFNeg,
	"fadd":        KwFAdd,
	"fsub":        KwFSub,
	"fmul":        KwFMul,
	"fdiv":        KwFDiv,
	"frem":        KwFRem,
	"icmp":        KwICmp,
	"fcmp":        KwFCmp,
	"load":        KwLoad,
	"store":       KwStore,
	"alloca":      KwAlloca,
	"index":       KwIndex,
	"extract":     KwExtract,
	"insert":      KwInsert,
	"elemptr":     KwElemPtr,
	"sext":        KwSext,
	"zext":        KwZext,
	"trunc":       KwTrunc,
	"itob":        KwItob,
	"btoi":        KwBtoi,
	"sitof":       KwSitof,
	"uitof":       KwUitof,
	"ftosi":       KwFtosi,
	"ftoui":       KwFtoui,
	"itop":        KwItop,
	"ptoi":        KwPtoi,
	"eq":          KwEq,
	"ne":          KwNe,
	"ugt":         KwUgt,
	"ult":         KwUlt,
	"uge":         KwUge,
	"ule":         KwUle,
	"sgt":         KwSgt,
	"slt":         KwSlt,
	"sge":         KwSge,
	"sle":         KwSle,
	"ord":         KwOrd,
	"uno":         KwUno,
	"oeq":         KwOeq,
	"one":         KwOne,
	"ogt":         KwOgt,
	"olt":         KwOlt,
	"oge":         KwOge,
	"ole":         KwOle,
	"ueq":         KwUeq,
	"une":         KwUne,
}

// Lookup resolves a bare word to its keyword kind.
func Lookup(word string) (Kind, bool) {
	k, ok := keywords[word]
	return k, ok
}

var keywordNames = func() map[Kind]string {
	names := make(map[Kind]string, len(keywords))
	for word, kind := range keywords {
		names[kind] = word
	}
	return names
}()

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "eof"
	case GlobalName:
		return "global-name"
	case BlockLabel:
		return "block-label"
	case ValLabel:
		return "val-label"
	case BinaryLit:
		return "binary-lit"
	case OctalLit:
		return "octal-lit"
	case DecimalLit:
		return "decimal-lit"
	case HexLit:
		return "hex-lit"
	case FloatLit:
		return "float-lit"
	case ScientificLit:
		return "scientific-float-lit"
	case ByteHexFloatLit:
		return "byte-float-lit"
	case CHexFloatLit:
		return "hex-float-lit"
	case StringLit:
		return "string-lit"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case Comma:
		return ","
	case Colon:
		return ":"
	case Semicolon:
		return ";"
	case Eq:
		return "="
	default:
		if name, ok := keywordNames[k]; ok {
			return name
		}
		return "unknown"
	}
}
