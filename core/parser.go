package core

import (
	"github.com/pkg/errors"
	"github.com/tdewolff/parse/v2/strconv"
)

// DictEntry is one top-level key/value pair of a parsed dictionary together
// with its byte span in the input. KeyPos is the offset of the key's slash and
// ValueEnd the offset just past the value's last byte.
type DictEntry struct {
	Key      string
	Value    Object
	KeyPos   int
	ValueEnd int
}

// DictLayout records where a dictionary and its entries sit in the input.
// Start is the offset of "<<", End the offset just past ">>", and Close the
// offset of ">>".
type DictLayout struct {
	Start   int
	Close   int
	End     int
	Entries []DictEntry
}

// Entry returns the layout entry for key
func (d *DictLayout) Entry(key string) (DictEntry, bool) {
	for _, e := range d.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return DictEntry{}, false
}

// Parser parses PDF objects from an in-memory buffer. Comments are skipped.
type Parser struct {
	lexer *Lexer
	queue []Token
	last  int // end offset of the most recently consumed token
}

// NewParser creates a parser positioned at the start of data
func NewParser(data []byte) *Parser {
	return NewParserAt(data, 0)
}

// NewParserAt creates a parser positioned at offset pos of data
func NewParserAt(data []byte, pos int) *Parser {
	lexer := NewLexer(data)
	lexer.SetPos(pos)
	return &Parser{lexer: lexer, last: lexer.Pos()}
}

// Offset returns the offset just past the last consumed token
func (p *Parser) Offset() int {
	return p.last
}

// peek returns the token n positions ahead without consuming it
func (p *Parser) peek(n int) (Token, error) {
	for len(p.queue) <= n {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return Token{}, err
		}
		if tok.Type == TokenComment {
			continue
		}
		p.queue = append(p.queue, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	if n >= len(p.queue) {
		return p.queue[len(p.queue)-1], nil
	}
	return p.queue[n], nil
}

// next consumes and returns the current token
func (p *Parser) next() (Token, error) {
	tok, err := p.peek(0)
	if err != nil {
		return Token{}, err
	}
	if tok.Type != TokenEOF {
		p.queue = p.queue[1:]
	}
	p.last = tok.End
	return tok, nil
}

// ParseObject parses the next PDF object
func (p *Parser) ParseObject() (Object, error) {
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case TokenEOF:
		return nil, errors.New("unexpected end of input")

	case TokenKeyword:
		p.next()
		switch string(tok.Value) {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		case "null":
			return Null{}, nil
		}
		return nil, errors.Errorf("unexpected keyword %q at position %d", tok.Value, tok.Pos)

	case TokenInteger:
		return p.parseNumber()

	case TokenReal:
		p.next()
		val, n := strconv.ParseFloat(tok.Value)
		if n != len(tok.Value) {
			return nil, errors.Errorf("invalid real number %q at position %d", tok.Value, tok.Pos)
		}
		return Real(val), nil

	case TokenString:
		p.next()
		return String(tok.Value), nil

	case TokenHexString:
		p.next()
		digits := tok.Value
		result := make([]byte, (len(digits)+1)/2)
		for i := 0; i < len(digits); i++ {
			v := hexValue(digits[i])
			if i%2 == 0 {
				v <<= 4
			}
			result[i/2] |= v
		}
		return String(result), nil

	case TokenName:
		p.next()
		return Name(tok.Value), nil

	case TokenArrayStart:
		return p.parseArray()

	case TokenDictStart:
		dict, _, err := p.ParseDict()
		return dict, err
	}

	return nil, errors.Errorf("unexpected %v at position %d", tok.Type, tok.Pos)
}

// parseNumber parses an integer or an indirect reference "num gen R"
func (p *Parser) parseNumber() (Object, error) {
	first, err := p.next()
	if err != nil {
		return nil, err
	}
	num, ok := parseInt(first.Value)
	if !ok {
		return nil, errors.Errorf("invalid integer %q at position %d", first.Value, first.Pos)
	}

	second, err := p.peek(0)
	if err != nil || second.Type != TokenInteger {
		return Int(num), nil
	}
	third, err := p.peek(1)
	if err != nil || third.Type != TokenIndirectRef {
		return Int(num), nil
	}
	gen, ok := parseInt(second.Value)
	if !ok {
		return Int(num), nil
	}

	p.next()
	p.next()
	return IndirectRef{Number: int(num), Generation: int(gen)}, nil
}

// parseArray parses a PDF array "[obj1 obj2 ...]"
func (p *Parser) parseArray() (Object, error) {
	open, err := p.next()
	if err != nil {
		return nil, err
	}

	arr := Array{}
	for {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case TokenArrayEnd:
			p.next()
			return arr, nil
		case TokenEOF:
			return nil, errors.Errorf("unterminated array starting at position %d", open.Pos)
		}

		obj, err := p.ParseObject()
		if err != nil {
			return nil, errors.Wrap(err, "array element")
		}
		arr = append(arr, obj)
	}
}

// ParseDict parses a dictionary "<< /Key value ... >>" at the current
// position and reports the byte span of each top-level entry.
func (p *Parser) ParseDict() (Dict, *DictLayout, error) {
	open, err := p.next()
	if err != nil {
		return nil, nil, err
	}
	if open.Type != TokenDictStart {
		return nil, nil, errors.Errorf("expected '<<' at position %d, got %v", open.Pos, open.Type)
	}

	dict := make(Dict)
	layout := &DictLayout{Start: open.Pos}
	for {
		tok, err := p.next()
		if err != nil {
			return nil, nil, err
		}
		switch tok.Type {
		case TokenDictEnd:
			layout.Close = tok.Pos
			layout.End = tok.End
			return dict, layout, nil
		case TokenEOF:
			return nil, nil, errors.Errorf("unterminated dictionary starting at position %d", open.Pos)
		case TokenName:
		default:
			return nil, nil, errors.Errorf("expected name for dictionary key at position %d, got %v", tok.Pos, tok.Type)
		}

		key := string(tok.Value)
		value, err := p.ParseObject()
		if err != nil {
			return nil, nil, errors.Wrapf(err, "value for key /%s", key)
		}
		dict[key] = value
		layout.Entries = append(layout.Entries, DictEntry{
			Key:      key,
			Value:    value,
			KeyPos:   tok.Pos,
			ValueEnd: p.last,
		})
	}
}

// ParseDictBytes parses data as a single dictionary
func ParseDictBytes(data []byte) (Dict, *DictLayout, error) {
	p := NewParser(data)
	dict, layout, err := p.ParseDict()
	if err != nil {
		return nil, nil, errors.Wrap(ErrMalformedDictionary, err.Error())
	}
	return dict, layout, nil
}

// parseInt converts a whole token to an integer
func parseInt(b []byte) (int64, bool) {
	v, n := strconv.ParseInt(b)
	return v, n > 0 && n == len(b)
}
