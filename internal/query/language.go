package query

import (
	"fmt"
	"strings"
	"unicode"
)

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenError

	TokenField
	TokenValue

	TokenColon // :
	TokenAt    // @
	TokenTilde // ~
	TokenMinus // -
	TokenLT    // <
	TokenLE    // <=
	TokenGT    // >
	TokenGE    // >=
)

// Fields the home query understands.
var fields = []string{"priority", "tag", "match", "category", "context", "energy", "due", "has", "is", "project"}

type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "end of query"
	case TokenError:
		return fmt.Sprintf("error(%s)", t.Value)
	case TokenField:
		return fmt.Sprintf("field %q", t.Value)
	case TokenValue:
		return fmt.Sprintf("value %q", t.Value)
	default:
		return fmt.Sprintf("%q", t.Value)
	}
}

type Lexer struct {
	input []rune
	pos   int
	ch    rune
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: []rune(input)}
	if len(l.input) > 0 {
		l.ch = l.input[0]
	}
	return l
}

func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.nextToken()
		tokens = append(tokens, tok)
		switch tok.Type {
		case TokenEOF:
			return tokens, nil
		case TokenError:
			return tokens, fmt.Errorf("lexer error at position %d: %s", tok.Pos, tok.Value)
		}
	}
}

func (l *Lexer) nextToken() Token {
	l.skipWhitespace()

	if l.ch == 0 {
		return Token{Type: TokenEOF, Pos: l.pos}
	}

	pos := l.pos

	switch l.ch {
	case ':':
		l.advance()
		return Token{Type: TokenColon, Value: ":", Pos: pos}
	case '@':
		l.advance()
		return Token{Type: TokenAt, Value: "@", Pos: pos}
	case '~':
		l.advance()
		return Token{Type: TokenTilde, Value: "~", Pos: pos}
	case '-':
		if unicode.IsLetter(l.peek()) {
			l.advance()
			return Token{Type: TokenMinus, Value: "-", Pos: pos}
		}
		return l.readIdentifier()
	case '<', '>':
		op := string(l.ch)
		l.advance()
		if l.ch == '=' {
			op += "="
			l.advance()
		}
		types := map[string]TokenType{"<": TokenLT, "<=": TokenLE, ">": TokenGT, ">=": TokenGE}
		return Token{Type: types[op], Value: op, Pos: pos}
	case '"', '\'':
		return l.readQuotedValue()
	}

	if isValueRune(l.ch) {
		return l.readIdentifier()
	}

	ch := l.ch
	l.advance()
	return Token{
		Type:  TokenError,
		Value: fmt.Sprintf("unexpected character: %c", ch),
		Pos:   pos,
	}
}

func isValueRune(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || strings.ContainsRune("_-.+,/", ch)
}

// readIdentifier reads a field name or a bare value. A word is a field only
// when a colon or comparison follows it directly.
func (l *Lexer) readIdentifier() Token {
	pos := l.pos
	var sb strings.Builder

	for l.ch != 0 && isValueRune(l.ch) {
		sb.WriteRune(l.ch)
		l.advance()
	}

	value := sb.String()
	lower := strings.ToLower(value)
	if l.ch == ':' || l.ch == '<' || l.ch == '>' {
		for _, f := range fields {
			if f == lower {
				return Token{Type: TokenField, Value: lower, Pos: pos}
			}
		}
	}

	return Token{Type: TokenValue, Value: value, Pos: pos}
}

func (l *Lexer) readQuotedValue() Token {
	pos := l.pos
	quote := l.ch
	l.advance()

	var sb strings.Builder
	for l.ch != 0 && l.ch != quote {
		if l.ch == '\\' && l.peek() == quote {
			l.advance()
		}
		sb.WriteRune(l.ch)
		l.advance()
	}

	if l.ch != quote {
		return Token{Type: TokenError, Value: "unterminated quoted string", Pos: pos}
	}
	l.advance()

	return Token{Type: TokenValue, Value: sb.String(), Pos: pos}
}

func (l *Lexer) skipWhitespace() {
	for l.ch != 0 && unicode.IsSpace(l.ch) {
		l.advance()
	}
}

func (l *Lexer) advance() {
	l.pos++
	if l.pos < len(l.input) {
		l.ch = l.input[l.pos]
	} else {
		l.ch = 0
	}
}

func (l *Lexer) peek() rune {
	if l.pos+1 < len(l.input) {
		return l.input[l.pos+1]
	}
	return 0
}
