// Package compiler provides the lexer, parser, tree printer and code
// generator for a one-expression assignment language that targets a three
// instruction accumulator machine.
//
// Pipeline: source → Lex → Parse → PrintTree / Generate → assembly text
package compiler
