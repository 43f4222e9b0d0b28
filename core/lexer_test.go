package core

import (
	"testing"
)

// TestTokenTypeString tests the String method on TokenType
func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		token TokenType
		want  string
	}{
		{TokenEOF, "EOF"},
		{TokenComment, "Comment"},
		{TokenKeyword, "Keyword"},
		{TokenInteger, "Integer"},
		{TokenReal, "Real"},
		{TokenString, "String"},
		{TokenHexString, "HexString"},
		{TokenName, "Name"},
		{TokenArrayStart, "ArrayStart"},
		{TokenArrayEnd, "ArrayEnd"},
		{TokenDictStart, "DictStart"},
		{TokenDictEnd, "DictEnd"},
		{TokenIndirectRef, "IndirectRef"},
		{TokenType(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.token.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestLexerEOF tests EOF handling
func TestLexerEOF(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"whitespace only", "   \t\n\r\f\x00  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input))
			token, err := lexer.NextToken()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if token.Type != TokenEOF {
				t.Errorf("expected TokenEOF, got %v", token.Type)
			}
			if token.Pos != len(tt.input) {
				t.Errorf("EOF position = %d, want %d", token.Pos, len(tt.input))
			}
		})
	}
}

// TestLexerTokens tests single-token inputs
func TestLexerTokens(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantType  TokenType
		wantValue string
	}{
		{"array start", "[", TokenArrayStart, "["},
		{"array end", "]", TokenArrayEnd, "]"},
		{"dict start", "<<", TokenDictStart, "<<"},
		{"dict end", ">>", TokenDictEnd, ">>"},
		{"integer", "123", TokenInteger, "123"},
		{"negative integer", "-42", TokenInteger, "-42"},
		{"real", "3.14", TokenReal, "3.14"},
		{"leading dot real", ".5", TokenReal, ".5"},
		{"name", "/Type", TokenName, "Type"},
		{"name with escape", "/A#20B", TokenName, "A B"},
		{"keyword", "endobj", TokenKeyword, "endobj"},
		{"reference", "R", TokenIndirectRef, "R"},
		{"comment", "% note", TokenComment, "% note"},
		{"string", "(hello)", TokenString, "hello"},
		{"nested string", "(a (b) c)", TokenString, "a (b) c"},
		{"escaped string", `(a\)b\n)`, TokenString, "a)b\n"},
		{"octal string", `(\101\102)`, TokenString, "AB"},
		{"hex string", "<48 65 6C>", TokenHexString, "48656C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input))
			token, err := lexer.NextToken()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if token.Type != tt.wantType {
				t.Errorf("type = %v, want %v", token.Type, tt.wantType)
			}
			if string(token.Value) != tt.wantValue {
				t.Errorf("value = %q, want %q", token.Value, tt.wantValue)
			}
		})
	}
}

// TestLexerPositionTracking tests that token spans cover the source bytes
func TestLexerPositionTracking(t *testing.T) {
	input := "<< /W [1 2 1] >>"
	lexer := NewLexer([]byte(input))

	want := []struct {
		pos, end int
		text     string
	}{
		{0, 2, "<<"},
		{3, 5, "/W"},
		{6, 7, "["},
		{7, 8, "1"},
		{9, 10, "2"},
		{11, 12, "1"},
		{12, 13, "]"},
		{14, 16, ">>"},
	}

	for i, w := range want {
		token, err := lexer.NextToken()
		if err != nil {
			t.Fatalf("token %d: unexpected error: %v", i, err)
		}
		if token.Pos != w.pos || token.End != w.end {
			t.Errorf("token %d span = [%d,%d), want [%d,%d)", i, token.Pos, token.End, w.pos, w.end)
		}
		if got := input[token.Pos:token.End]; got != w.text {
			t.Errorf("token %d text = %q, want %q", i, got, w.text)
		}
	}
}

// TestLexerNoWhitespaceBetweenTokens tests the compact syntax PDF writers emit
func TestLexerNoWhitespaceBetweenTokens(t *testing.T) {
	lexer := NewLexer([]byte("/Filter/FlateDecode/W[1 2 1]"))

	var types []TokenType
	for {
		token, err := lexer.NextToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token.Type == TokenEOF {
			break
		}
		types = append(types, token.Type)
	}

	want := []TokenType{TokenName, TokenName, TokenName, TokenArrayStart, TokenInteger, TokenInteger, TokenInteger, TokenArrayEnd}
	if len(types) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(types), types, len(want))
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, types[i], want[i])
		}
	}
}

// TestLexerErrors tests malformed input
func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"lone close angle", ">"},
		{"unterminated string", "(abc"},
		{"unterminated hex string", "<414"},
		{"bad hex digit", "<4G>"},
		{"bad name escape", "/A#Z1"},
		{"stray brace", ")"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input))
			if _, err := lexer.NextToken(); err == nil {
				t.Errorf("expected error for %q", tt.input)
			}
		})
	}
}

// TestLexerSetPos tests repositioning the lexer
func TestLexerSetPos(t *testing.T) {
	lexer := NewLexer([]byte("1 0 obj"))
	lexer.SetPos(4)
	token, err := lexer.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(token.Value) != "obj" {
		t.Errorf("after SetPos(4) got %q, want obj", token.Value)
	}

	lexer.SetPos(100)
	if lexer.Pos() != 7 {
		t.Errorf("SetPos past end = %d, want 7", lexer.Pos())
	}
}
