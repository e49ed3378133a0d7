package compiler

import (
	"errors"
	"fmt"

	"minicc/pkg/asm"
	"minicc/pkg/cpu"
)

// Options configures a full Compile run.
type Options struct {
	MaxTokenLen        int  // see LexConfig.MaxTokenLen
	ReloadChainTargets bool // see GenConfig.ReloadChainTargets
}

// Result holds every artifact of a successful Compile.
type Result struct {
	Tokens   []Token
	Root     *Node
	Warnings []*SourceError
	Symbols  *SymbolTable
	Assembly string
	Program  []cpu.Instruction
}

// Compile runs the whole pipeline on src. Errors carry a stage prefix and
// wrap the package sentinels, so errors.Is works on them. A tree that is a
// single non-value leaf, such as the "int" of "int x = 5;", is not an error:
// Result.Assembly is empty and Warnings carries an ErrUnsupportedNode entry.
func Compile(src string, opts Options) (*Result, error) {
	tokens, err := LexWithConfig(src, LexConfig{MaxTokenLen: opts.MaxTokenLen})
	if err != nil {
		return nil, fmt.Errorf("lex: %w", err)
	}

	root, warnings, err := Parse(tokens, src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	syms := NewSymbolTable()
	assembly, err := Generate(root, syms, GenConfig{ReloadChainTargets: opts.ReloadChainTargets})
	switch {
	case err == nil:
	case root.IsLeaf() && errors.Is(err, ErrUnsupportedNode):
		// A lone keyword, brace or operator parses but has no value. It
		// compiles to an empty listing with a warning.
		warnings = append(warnings, &SourceError{
			Err:     ErrUnsupportedNode,
			Tok:     tokens[0],
			Detail:  "no code emitted",
			Snippet: sourceLine(src, tokens[0].Line),
		})
		assembly = ""
	default:
		return nil, fmt.Errorf("codegen: %w", err)
	}

	program, _, err := asm.Assemble(assembly)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}

	return &Result{
		Tokens:   tokens,
		Root:     root,
		Warnings: warnings,
		Symbols:  syms,
		Assembly: assembly,
		Program:  program,
	}, nil
}
