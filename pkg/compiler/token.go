package compiler

import "fmt"

// TokenType identifies the category of a lexed token. AST nodes reuse the
// same vocabulary for their Kind.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Keywords
	INT // "int"
	IF  // "if"

	// Literals
	IDENTIFIER // variable name
	NUMBER     // decimal digit sequence

	// Operators
	ASSIGN // =
	EQUALS // ==
	PLUS   // +
	MINUS  // -

	// Punctuation
	LBRACE    // {
	RBRACE    // }
	SEMICOLON // ;

	UNKNOWN // any character the lexer does not recognise
)

var tokenNames = [...]string{
	EOF:        "EOF",
	INT:        "INT",
	IF:         "IF",
	IDENTIFIER: "IDENTIFIER",
	NUMBER:     "NUMBER",
	ASSIGN:     "ASSIGN",
	EQUALS:     "EQUALS",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	LBRACE:     "LBRACE",
	RBRACE:     "RBRACE",
	SEMICOLON:  "SEMICOLON",
	UNKNOWN:    "UNKNOWN",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
	Line   int    // 1-based source line
	Col    int    // 1-based column of the first rune
}

func (t Token) String() string {
	return fmt.Sprintf("%-10s %-14q  line %d:%d", t.Type, t.Lexeme, t.Line, t.Col)
}
