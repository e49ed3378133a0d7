package compiler

import (
	"fmt"
	"strings"
)

// keywords maps source text to its keyword TokenType.
var keywords = map[string]TokenType{
	"int": INT,
	"if":  IF,
}

// LexConfig holds lexer policy. The zero value means no limits.
type LexConfig struct {
	// MaxTokenLen bounds the length in runes of identifiers and numbers.
	// Zero disables the check. Longer tokens fail with ErrTokenTooLong.
	MaxTokenLen int
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src  []rune
	raw  string
	cfg  LexConfig
	pos  int // index of the next rune to consume
	line int // current 1-based source line
	col  int // 1-based column of the next rune
}

// NewLexer returns a lexer positioned at the start of src.
func NewLexer(src string, cfg LexConfig) *Lexer {
	return &Lexer{src: []rune(src), raw: src, cfg: cfg, line: 1, col: 1}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

// isSpace matches ASCII whitespace only. Other Unicode spaces are unknown
// characters.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && isSpace(l.peek()) {
		l.advance()
	}
}

func isLetter(r rune) bool { return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }

func (l *Lexer) errorAt(err error, tok Token) error {
	return &SourceError{Err: err, Tok: tok, Snippet: sourceLine(l.raw, tok.Line)}
}

// scan collects runes while accept holds. The first rune must still be at
// l.peek() and must satisfy accept.
func (l *Lexer) scan(accept func(rune) bool) (string, int, int) {
	line, col := l.line, l.col
	start := l.pos
	for l.pos < len(l.src) && accept(l.peek()) {
		l.advance()
	}
	return string(l.src[start:l.pos]), line, col
}

// checkLength enforces LexConfig.MaxTokenLen on a scanned token.
func (l *Lexer) checkLength(tok Token) error {
	if l.cfg.MaxTokenLen <= 0 {
		return nil
	}
	if n := len([]rune(tok.Lexeme)); n > l.cfg.MaxTokenLen {
		return &SourceError{
			Err:     ErrTokenTooLong,
			Tok:     tok,
			Detail:  fmt.Sprintf("%d runes, limit %d", n, l.cfg.MaxTokenLen),
			Snippet: sourceLine(l.raw, tok.Line),
		}
	}
	return nil
}

// scanWord collects an identifier or keyword token.
func (l *Lexer) scanWord() (Token, error) {
	lexeme, line, col := l.scan(func(r rune) bool { return isLetter(r) || isDigit(r) })
	tt := IDENTIFIER
	if kw, ok := keywords[lexeme]; ok {
		tt = kw
	}
	tok := Token{Type: tt, Lexeme: lexeme, Line: line, Col: col}
	return tok, l.checkLength(tok)
}

// scanNumber collects a decimal digit sequence. Magnitude is not checked.
func (l *Lexer) scanNumber() (Token, error) {
	lexeme, line, col := l.scan(isDigit)
	tok := Token{Type: NUMBER, Lexeme: lexeme, Line: line, Col: col}
	return tok, l.checkLength(tok)
}

// NextToken skips whitespace and returns the next Token. Once the input is
// exhausted every call returns an EOF token.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()
	if l.pos >= len(l.src) {
		return Token{Type: EOF, Lexeme: "", Line: l.line, Col: l.col}, nil
	}

	ch := l.peek()
	if isLetter(ch) {
		return l.scanWord()
	}
	if isDigit(ch) {
		return l.scanNumber()
	}

	line, col := l.line, l.col
	l.advance() // consume the character before the switch
	switch ch {
	case '=':
		if l.peek() == '=' { // lookahead: distinguish = vs ==
			l.advance()
			return Token{EQUALS, "==", line, col}, nil
		}
		return Token{ASSIGN, "=", line, col}, nil
	case '+':
		return Token{PLUS, "+", line, col}, nil
	case '-':
		return Token{MINUS, "-", line, col}, nil
	case '{':
		return Token{LBRACE, "{", line, col}, nil
	case '}':
		return Token{RBRACE, "}", line, col}, nil
	case ';':
		return Token{SEMICOLON, ";", line, col}, nil
	default:
		tok := Token{Type: UNKNOWN, Lexeme: string(ch), Line: line, Col: col}
		return tok, l.errorAt(ErrUnknownCharacter, tok)
	}
}

// Lex tokenises src and returns all tokens including the final EOF token.
// It stops at the first unknown character or over-long token.
func Lex(src string) ([]Token, error) {
	return LexWithConfig(src, LexConfig{})
}

// LexWithConfig is Lex with an explicit lexer policy.
func LexWithConfig(src string, cfg LexConfig) ([]Token, error) {
	l := NewLexer(src, cfg)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// sourceLine returns the trimmed text of the given 1-based line of src, or ""
// when the line does not exist.
func sourceLine(src string, line int) string {
	if line < 1 {
		return ""
	}
	for i := 1; i < line; i++ {
		nl := strings.IndexByte(src, '\n')
		if nl < 0 {
			return ""
		}
		src = src[nl+1:]
	}
	if nl := strings.IndexByte(src, '\n'); nl >= 0 {
		src = src[:nl]
	}
	return strings.TrimSpace(src)
}
