package compiler

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCharacter = errors.New("unknown character")
	ErrTokenTooLong     = errors.New("token too long")
	ErrUnexpectedEOF    = errors.New("unexpected end of input")
	ErrUnexpectedToken  = errors.New("unexpected token")
	ErrTrailingTokens   = errors.New("trailing tokens after expression")
	ErrInvalidTarget    = errors.New("invalid assignment target")
	ErrUnsupportedNode  = errors.New("unsupported node")
)

// SourceError ties one of the sentinel errors above to a position in the
// source text. Lexer and parser failures, and parser warnings, are all
// reported as *SourceError.
type SourceError struct {
	Err     error
	Tok     Token
	Detail  string // optional extra context, e.g. "expected operand"
	Snippet string // trimmed source line, empty when unavailable
}

func (e *SourceError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Tok.Type != EOF || e.Tok.Lexeme != "" {
		msg += fmt.Sprintf(" %q", e.Tok.Lexeme)
	}
	out := fmt.Sprintf("line %d:%d: %s", e.Tok.Line, e.Tok.Col, msg)
	if e.Snippet != "" {
		out += "\n  |> " + e.Snippet
	}
	return out
}

func (e *SourceError) Unwrap() error { return e.Err }
