package query

import (
	"fmt"
	"strings"
)

// Term is one field:value predicate of a query.
type Term struct {
	Field    string
	Operator string // ":", "<", "<=", ">", ">="
	Value    string
	IsNot    bool // prefixed with -
	IsFuzzy  bool // @~name
}

func (t Term) String() string {
	value := t.Value
	if strings.ContainsAny(value, " \t\"") {
		value = fmt.Sprintf("%q", value)
	}
	if t.Field == "project" && !t.IsNot {
		if t.IsFuzzy {
			return "@~" + value
		}
		return "@" + value
	}
	prefix := ""
	if t.IsNot {
		prefix = "-"
	}
	op := t.Operator
	if op != ":" {
		op = ":" + op
	}
	return prefix + t.Field + op + value
}

type ParsedQuery struct {
	Terms []Term
}

type ParseError struct {
	Message string
	Pos     int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Message)
}

type Parser struct {
	tokens []Token
	pos    int
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseQuery reads a space separated list of terms such as
// "priority:high,max tag:deep -has:due @~work due:today..+7d".
func ParseQuery(input string) (*ParsedQuery, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return &ParsedQuery{}, nil
	}

	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}

	return NewParser(tokens).parse()
}

func (p *Parser) parse() (*ParsedQuery, error) {
	q := &ParsedQuery{}
	for !p.isAtEnd() {
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		q.Terms = append(q.Terms, term)
	}
	return q, nil
}

func (p *Parser) parseTerm() (Term, error) {
	switch tok := p.current(); tok.Type {
	case TokenAt:
		return p.parseAtMention()
	case TokenMinus:
		p.advance()
		if p.current().Type != TokenField {
			return Term{}, p.errorf("expected field name after -")
		}
		term, err := p.parseFieldTerm()
		term.IsNot = true
		return term, err
	case TokenField:
		return p.parseFieldTerm()
	case TokenValue:
		return Term{}, p.errorf("unexpected %s, use field:value", tok)
	default:
		return Term{}, p.errorf("unexpected %s", tok)
	}
}

func (p *Parser) parseAtMention() (Term, error) {
	p.advance() // @

	fuzzy := false
	if p.current().Type == TokenTilde {
		fuzzy = true
		p.advance()
	}

	if tok := p.current(); tok.Type != TokenValue && tok.Type != TokenField {
		return Term{}, p.errorf("expected project name after @")
	}
	value := p.current().Value
	p.advance()

	return Term{Field: "project", Operator: ":", Value: value, IsFuzzy: fuzzy}, nil
}

func (p *Parser) parseFieldTerm() (Term, error) {
	field := p.current().Value
	p.advance()

	hasColon := false
	if p.current().Type == TokenColon {
		hasColon = true
		p.advance()
	}

	operator := ":"
	switch tok := p.current(); tok.Type {
	case TokenLT, TokenLE, TokenGT, TokenGE:
		operator = tok.Value
		p.advance()
	default:
		if !hasColon {
			return Term{}, p.errorf("expected operator after field name '%s'", field)
		}
	}

	tok := p.current()
	if tok.Type != TokenValue && tok.Type != TokenField {
		return Term{}, p.errorf("expected value for %s, got %s", field, tok)
	}
	p.advance()

	return Term{Field: field, Operator: operator, Value: tok.Value}, nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return ParseError{Message: fmt.Sprintf(format, args...), Pos: p.current().Pos}
}

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *Parser) isAtEnd() bool {
	return p.current().Type == TokenEOF
}

// Fields returns every term on field, negated ones included.
func (q *ParsedQuery) Fields(field string) []Term {
	var terms []Term
	for _, t := range q.Terms {
		if t.Field == field {
			terms = append(terms, t)
		}
	}
	return terms
}

func (q *ParsedQuery) String() string {
	parts := make([]string, len(q.Terms))
	for i, t := range q.Terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
