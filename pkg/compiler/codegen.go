package compiler

import (
	"fmt"
	"strings"
)

// GenConfig controls code generation.
type GenConfig struct {
	// ReloadChainTargets makes a nested assignment reload its target before
	// the enclosing store:
	//
	//	a = b = 7    LOADI 7 / MOV b, ACC / LOAD b / MOV a, ACC
	//
	// When false the value still in the accumulator is stored again:
	//
	//	a = b = 7    LOADI 7 / MOV b, ACC / MOV a, ACC
	ReloadChainTargets bool
}

// CodeGen walks an expression tree and emits accumulator-machine assembly.
//
// Instruction set:
//
//	LOADI <literal>   ACC = literal
//	LOAD <name>       ACC = name
//	MOV <name>, ACC   name = ACC
type CodeGen struct {
	syms *SymbolTable
	cfg  GenConfig
	out  strings.Builder
}

func newCodeGen(syms *SymbolTable, cfg GenConfig) *CodeGen {
	if syms == nil {
		syms = NewSymbolTable()
	}
	return &CodeGen{syms: syms, cfg: cfg}
}

func (cg *CodeGen) line(format string, args ...any) {
	fmt.Fprintf(&cg.out, format+"\n", args...)
}

func nodeError(err error, n *Node) error {
	return fmt.Errorf("line %d: %w: %s %q", n.Line, err, n.Kind, n.Text)
}

// genValue emits code leaving the value of a leaf in ACC.
func (cg *CodeGen) genValue(n *Node) error {
	if !n.IsLeaf() {
		return nodeError(ErrUnsupportedNode, n)
	}
	switch n.Kind {
	case NUMBER:
		cg.line("LOADI %s", n.Text)
	case IDENTIFIER:
		cg.line("LOAD %s", n.Text)
		cg.syms.Reference(n.Text, n.Line)
	default:
		return nodeError(ErrUnsupportedNode, n)
	}
	return nil
}

// genExpr emits code for n. An assignment chain is flattened along its right
// spine: the innermost value is loaded once and stored into each target from
// the innermost outwards.
func (cg *CodeGen) genExpr(n *Node) error {
	var targets []*Node
	for n.Kind == ASSIGN {
		if n.Left == nil || n.Right == nil {
			return nodeError(ErrUnsupportedNode, n)
		}
		if n.Left.Kind != IDENTIFIER || !n.Left.IsLeaf() {
			return nodeError(ErrInvalidTarget, n.Left)
		}
		targets = append(targets, n.Left)
		n = n.Right
	}

	if err := cg.genValue(n); err != nil {
		return err
	}

	for i := len(targets) - 1; i >= 0; i-- {
		t := targets[i]
		cg.line("MOV %s, ACC", t.Text)
		cg.syms.Assign(t.Text, t.Line)
		if cg.cfg.ReloadChainTargets && i > 0 {
			cg.line("LOAD %s", t.Text)
			cg.syms.Reference(t.Text, t.Line)
		}
	}
	return nil
}

// Generate lowers the tree rooted at root to assembly text, one instruction
// per line. syms may be nil.
func Generate(root *Node, syms *SymbolTable, cfg GenConfig) (string, error) {
	if root == nil {
		return "", fmt.Errorf("%w: empty tree", ErrUnsupportedNode)
	}
	cg := newCodeGen(syms, cfg)
	if err := cg.genExpr(root); err != nil {
		return "", err
	}
	return cg.out.String(), nil
}
