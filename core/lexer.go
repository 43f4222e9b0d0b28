package core

import (
	"bytes"

	"github.com/pkg/errors"
)

// TokenType represents the type of token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenComment
	TokenKeyword     // true, false, null, obj, endobj, stream, endstream, etc.
	TokenInteger     // 123
	TokenReal        // 3.14
	TokenString      // (hello)
	TokenHexString   // <48656C6C6F>
	TokenName        // /Type
	TokenArrayStart  // [
	TokenArrayEnd    // ]
	TokenDictStart   // <<
	TokenDictEnd     // >>
	TokenIndirectRef // R (after two numbers)
)

var tokenNames = [...]string{
	TokenEOF:         "EOF",
	TokenComment:     "Comment",
	TokenKeyword:     "Keyword",
	TokenInteger:     "Integer",
	TokenReal:        "Real",
	TokenString:      "String",
	TokenHexString:   "HexString",
	TokenName:        "Name",
	TokenArrayStart:  "ArrayStart",
	TokenArrayEnd:    "ArrayEnd",
	TokenDictStart:   "DictStart",
	TokenDictEnd:     "DictEnd",
	TokenIndirectRef: "IndirectRef",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenNames) {
		return "Unknown"
	}
	return tokenNames[t]
}

// Token represents a lexical token. Pos and End delimit the token's bytes in
// the input; Value holds the decoded content (escapes resolved for names and
// strings, raw bytes otherwise).
type Token struct {
	Type  TokenType
	Value []byte
	Pos   int
	End   int
}

// Lexer tokenizes PDF syntax from an in-memory buffer, tracking the byte
// position of every token so callers can slice the original text.
type Lexer struct {
	data []byte
	pos  int
}

// NewLexer creates a new lexer over data
func NewLexer(data []byte) *Lexer {
	return &Lexer{data: data}
}

// Pos returns the offset of the next unread byte
func (l *Lexer) Pos() int {
	return l.pos
}

// SetPos moves the lexer to an absolute offset
func (l *Lexer) SetPos(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(l.data) {
		pos = len(l.data)
	}
	l.pos = pos
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.data) {
		return Token{Type: TokenEOF, Pos: l.pos, End: l.pos}, nil
	}

	b := l.data[l.pos]
	switch b {
	case '%':
		return l.readComment(), nil
	case '[':
		return l.single(TokenArrayStart), nil
	case ']':
		return l.single(TokenArrayEnd), nil
	case '(':
		return l.readString()
	case '<':
		if l.at(1) == '<' {
			return l.double(TokenDictStart), nil
		}
		return l.readHexString()
	case '>':
		if l.at(1) == '>' {
			return l.double(TokenDictEnd), nil
		}
		return Token{}, errors.Errorf("unexpected '>' at position %d", l.pos)
	case '/':
		return l.readName()
	}

	if isDigit(b) || b == '-' || b == '+' || b == '.' {
		return l.readNumber(), nil
	}
	if isRegular(b) {
		return l.readKeyword(), nil
	}
	return Token{}, errors.Errorf("unexpected character %q at position %d", b, l.pos)
}

// at returns the byte n positions ahead, or 0 past the end
func (l *Lexer) at(n int) byte {
	if l.pos+n < len(l.data) {
		return l.data[l.pos+n]
	}
	return 0
}

func (l *Lexer) single(t TokenType) Token {
	tok := Token{Type: t, Value: l.data[l.pos : l.pos+1], Pos: l.pos, End: l.pos + 1}
	l.pos++
	return tok
}

func (l *Lexer) double(t TokenType) Token {
	tok := Token{Type: t, Value: l.data[l.pos : l.pos+2], Pos: l.pos, End: l.pos + 2}
	l.pos += 2
	return tok
}

// skipWhitespace skips PDF whitespace: NUL, TAB, LF, FF, CR and space
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.data) && IsWhitespace(l.data[l.pos]) {
		l.pos++
	}
}

// readComment reads from % to the end of the line
func (l *Lexer) readComment() Token {
	start := l.pos
	for l.pos < len(l.data) && l.data[l.pos] != '\r' && l.data[l.pos] != '\n' {
		l.pos++
	}
	return Token{Type: TokenComment, Value: l.data[start:l.pos], Pos: start, End: l.pos}
}

// readString reads a literal string with balanced parentheses and escapes
func (l *Lexer) readString() (Token, error) {
	start := l.pos
	l.pos++ // (

	var buf bytes.Buffer
	depth := 1
	for depth > 0 {
		if l.pos >= len(l.data) {
			return Token{}, errors.Errorf("unterminated string starting at position %d", start)
		}
		b := l.data[l.pos]
		l.pos++

		switch b {
		case '(':
			depth++
			buf.WriteByte(b)
		case ')':
			depth--
			if depth > 0 {
				buf.WriteByte(b)
			}
		case '\\':
			if l.pos >= len(l.data) {
				return Token{}, errors.Errorf("unterminated escape at position %d", l.pos-1)
			}
			next := l.data[l.pos]
			l.pos++
			switch next {
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			case 't':
				buf.WriteByte('\t')
			case 'b':
				buf.WriteByte('\b')
			case 'f':
				buf.WriteByte('\f')
			case '\r':
				// line continuation
				if l.pos < len(l.data) && l.data[l.pos] == '\n' {
					l.pos++
				}
			case '\n':
			case '0', '1', '2', '3', '4', '5', '6', '7':
				val := next - '0'
				for i := 0; i < 2 && l.pos < len(l.data) && isOctalDigit(l.data[l.pos]); i++ {
					val = val*8 + (l.data[l.pos] - '0')
					l.pos++
				}
				buf.WriteByte(val)
			default:
				buf.WriteByte(next)
			}
		default:
			buf.WriteByte(b)
		}
	}

	return Token{Type: TokenString, Value: buf.Bytes(), Pos: start, End: l.pos}, nil
}

// readHexString reads a hexadecimal string <48656C6C6F>, keeping only the digits
func (l *Lexer) readHexString() (Token, error) {
	start := l.pos
	l.pos++ // <

	var buf bytes.Buffer
	for {
		if l.pos >= len(l.data) {
			return Token{}, errors.Errorf("unterminated hex string starting at position %d", start)
		}
		b := l.data[l.pos]
		l.pos++
		if b == '>' {
			break
		}
		if IsWhitespace(b) {
			continue
		}
		if !isHexDigit(b) {
			return Token{}, errors.Errorf("invalid hex digit %q at position %d", b, l.pos-1)
		}
		buf.WriteByte(b)
	}

	return Token{Type: TokenHexString, Value: buf.Bytes(), Pos: start, End: l.pos}, nil
}

// readName reads a name object /Type, resolving #xx escapes
func (l *Lexer) readName() (Token, error) {
	start := l.pos
	l.pos++ // /

	var buf bytes.Buffer
	for l.pos < len(l.data) && isRegular(l.data[l.pos]) {
		b := l.data[l.pos]
		l.pos++
		if b == '#' {
			if l.pos+1 >= len(l.data) || !isHexDigit(l.data[l.pos]) || !isHexDigit(l.data[l.pos+1]) {
				return Token{}, errors.Errorf("invalid hex escape in name at position %d", l.pos-1)
			}
			buf.WriteByte(hexValue(l.data[l.pos])<<4 | hexValue(l.data[l.pos+1]))
			l.pos += 2
			continue
		}
		buf.WriteByte(b)
	}

	return Token{Type: TokenName, Value: buf.Bytes(), Pos: start, End: l.pos}, nil
}

// readNumber reads an integer or real number
func (l *Lexer) readNumber() Token {
	start := l.pos
	hasDecimal := false

	for l.pos < len(l.data) {
		b := l.data[l.pos]
		if b == '.' {
			if hasDecimal {
				break
			}
			hasDecimal = true
		} else if !isDigit(b) && !(l.pos == start && (b == '-' || b == '+')) {
			break
		}
		l.pos++
	}

	tokenType := TokenInteger
	if hasDecimal {
		tokenType = TokenReal
	}
	return Token{Type: tokenType, Value: l.data[start:l.pos], Pos: start, End: l.pos}
}

// readKeyword reads a bare keyword (true, false, null, R, obj, endobj, etc.)
func (l *Lexer) readKeyword() Token {
	start := l.pos
	for l.pos < len(l.data) && isRegular(l.data[l.pos]) {
		l.pos++
	}

	value := l.data[start:l.pos]
	if len(value) == 1 && value[0] == 'R' {
		return Token{Type: TokenIndirectRef, Value: value, Pos: start, End: l.pos}
	}
	return Token{Type: TokenKeyword, Value: value, Pos: start, End: l.pos}
}

// IsWhitespace reports whether b is one of the six PDF whitespace bytes
func IsWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

func isDelimiter(b byte) bool {
	return b == '(' || b == ')' || b == '<' || b == '>' || b == '[' || b == ']' || b == '{' || b == '}' || b == '/' || b == '%'
}

func isRegular(b byte) bool {
	return !IsWhitespace(b) && !isDelimiter(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isOctalDigit(b byte) bool {
	return b >= '0' && b <= '7'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexValue(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	}
	return 0
}
