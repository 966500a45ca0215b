package lexer

import (
	"testing"

	"github.com/evanacox/dawn/internal/token"
)

func collect(t *testing.T, src string) []token.Token {
	t.Helper()
	lx := New(src)
	var toks []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("lex failed: %v", err)
		}
		if tok.Kind == token.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestTokenClassification(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"@main", token.GlobalName},
		{"%entry", token.BlockLabel},
		{"$0", token.ValLabel},
		{"$result", token.ValLabel},
		{"0b101", token.BinaryLit},
		{"0o17", token.OctalLit},
		{"42", token.DecimalLit},
		{"-42", token.DecimalLit},
		{"0x2A", token.HexLit},
		{"1.5", token.FloatLit},
		{"1.0e+10", token.ScientificLit},
		{"2.5e-3", token.ScientificLit},
		{"0xfp3ff0000000000000", token.ByteHexFloatLit},
		{"0x1.8p1", token.CHexFloatLit},
		{`"hi"`, token.StringLit},
		{"iadd", token.KwIAdd},
		{"volatile", token.KwVolatile},
		{"i32", token.KwI32},
		{"eq", token.KwEq},
	}
	for _, tt := range tests {
		toks := collect(t, tt.src)
		if len(toks) != 1 || toks[0].Kind != tt.kind {
			t.Fatalf("%q lexed as %v, want one %v", tt.src, toks, tt.kind)
		}
		if toks[0].Text != tt.src {
			t.Fatalf("%q text not preserved: %q", tt.src, toks[0].Text)
		}
	}
}

func TestReservedCharactersAreSingleTokens(t *testing.T) {
	toks := collect(t, "func(i32,bool)")
	want := []token.Kind{
		token.KwFunc, token.LParen, token.KwI32, token.Comma, token.KwBool, token.RParen,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, kind := range want {
		if toks[i].Kind != kind {
			t.Fatalf("token %d is %v, want %v", i, toks[i].Kind, kind)
		}
	}
}

func TestCommentsAndArraySemicolons(t *testing.T) {
	toks := collect(t, "[i8; 4] ; this is a comment\ni64")
	want := []token.Kind{
		token.LBracket, token.KwI8, token.Semicolon, token.DecimalLit,
		token.RBracket, token.KwI64,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %v, want %d tokens", toks, len(want))
	}
	for i, kind := range want {
		if toks[i].Kind != kind {
			t.Fatalf("token %d is %v, want %v", i, toks[i].Kind, kind)
		}
	}
}

func TestStringsKeepWhitespaceAndEscapes(t *testing.T) {
	toks := collect(t, `"hello world" "with \" quote"`)
	if len(toks) != 2 {
		t.Fatalf("expected 2 strings, got %v", toks)
	}
	if toks[0].Text != `"hello world"` {
		t.Fatalf("whitespace inside strings must be preserved: %q", toks[0].Text)
	}
	if toks[1].Text != `"with \" quote"` {
		t.Fatalf("escaped quotes must not end the literal: %q", toks[1].Text)
	}
}

func TestLineTracking(t *testing.T) {
	lx := New("iadd\n\nisub")
	first, _ := lx.Next()
	second, _ := lx.Next()
	if first.Line != 1 || second.Line != 3 {
		t.Fatalf("lines %d and %d, want 1 and 3", first.Line, second.Line)
	}
}

func TestUnknownTokenFails(t *testing.T) {
	lx := New("iadd\nbogus!")
	if _, err := lx.Next(); err != nil {
		t.Fatalf("first token is fine: %v", err)
	}
	_, err := lx.Next()
	if err == nil || err.Line != 2 {
		t.Fatalf("unknown token should fail on line 2, got %v", err)
	}
}
