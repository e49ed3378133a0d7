package compiler

import (
	"fmt"
	"strings"
)

// Parser consumes the flat token slice produced by the Lexer and builds a
// single expression tree.
//
// Grammar:
//
//	expression = operand ("=" expression)?
//	operand    = any token except "=" and EOF, taken verbatim
//
// Only one expression is parsed. "+" and "-" have no grammar rule and are
// read as plain operands; statements, blocks and "if" are not parsed. The
// lexer turns "==" into a single EQUALS token, so "a == b" is the operand a
// followed by trailing tokens, never a chain of two assignments.
type Parser struct {
	tokens      []Token
	pos         int
	sourceLines []string
}

func NewParser(tokens []Token, rawSource string) *Parser {
	return &Parser{tokens: tokens, sourceLines: strings.Split(rawSource, "\n")}
}

// errorAt wraps err with the position of tok and the source line it sits on.
func (p *Parser) errorAt(err error, tok Token, format string, args ...any) *SourceError {
	snippet := ""
	if idx := tok.Line - 1; idx >= 0 && idx < len(p.sourceLines) {
		snippet = strings.TrimSpace(p.sourceLines[idx])
	}
	return &SourceError{Err: err, Tok: tok, Detail: fmt.Sprintf(format, args...), Snippet: snippet}
}

// peek returns the current token without consuming it. Past the end of the
// slice it reports a synthetic EOF.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return p.endToken()
	}
	return p.tokens[p.pos]
}

// endToken is the EOF placeholder used when the cursor is past the last
// token. It carries the position of the last real token, if any.
func (p *Parser) endToken() Token {
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		return Token{Type: EOF, Line: last.Line, Col: last.Col}
	}
	return Token{Type: EOF, Line: 1, Col: 1}
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// Pos returns the cursor: the index of the next unconsumed token.
func (p *Parser) Pos() int { return p.pos }

// parseOperand reads the token at the cursor as a leaf.
func (p *Parser) parseOperand() (*Node, error) {
	tok := p.peek()
	switch tok.Type {
	case EOF:
		return nil, p.errorAt(ErrUnexpectedEOF, tok, "expected operand")
	case ASSIGN:
		return nil, p.errorAt(ErrUnexpectedToken, tok, "expected operand")
	}
	p.advance()
	return Leaf(tok), nil
}

// ParseExpression parses one right-associative assignment chain starting at
// the cursor and leaves the cursor on the first token it did not consume.
//
// The chain is collected iteratively and folded from the right, so
// "a = b = c = 1" becomes (= a (= b (= c 1))) without recursion.
func (p *Parser) ParseExpression() (*Node, error) {
	var targets []*Node
	for {
		operand, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		if p.peek().Type != ASSIGN {
			node := operand
			for i := len(targets) - 1; i >= 0; i-- {
				node = Assign(targets[i], node)
			}
			return node, nil
		}
		p.advance() // =
		targets = append(targets, operand)
	}
}

// Parse parses the first expression in tokens. Tokens left between the end of
// the expression and EOF are not an error; they are reported as a single
// ErrTrailingTokens warning.
func Parse(tokens []Token, rawSource string) (*Node, []*SourceError, error) {
	p := NewParser(tokens, rawSource)
	root, err := p.ParseExpression()
	if err != nil {
		return nil, nil, err
	}

	var warnings []*SourceError
	if first := p.peek(); first.Type != EOF {
		count := 0
		for p.peek().Type != EOF {
			p.advance()
			count++
		}
		warnings = append(warnings, p.errorAt(ErrTrailingTokens, first, "%d token(s) ignored", count))
	}
	return root, warnings, nil
}
