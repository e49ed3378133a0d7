package compiler

import (
	"fmt"
	"strings"
)

// Node is one vertex of the binary expression tree built by the parser.
//
// Leaves (identifiers, numbers, or any other token the parser met in operand
// position) have no children. An ASSIGN node always has both:
//
//	a = b = 7
//
//	    =            Node{Kind: ASSIGN, Left: a, Right: (=)}
//	   / \
//	  a   =          Node{Kind: ASSIGN, Left: b, Right: 7}
//	     / \
//	    b   7
type Node struct {
	Kind  TokenType
	Text  string
	Line  int
	Left  *Node
	Right *Node
}

// Leaf builds a childless node from a token, copying its kind and text.
func Leaf(tok Token) *Node {
	return &Node{Kind: tok.Type, Text: tok.Lexeme, Line: tok.Line}
}

// Assign builds an ASSIGN node storing value into target.
func Assign(target, value *Node) *Node {
	line := 0
	if target != nil {
		line = target.Line
	}
	return &Node{Kind: ASSIGN, Text: "=", Line: line, Left: target, Right: value}
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return n.Left == nil && n.Right == nil }

// String renders the tree as an s-expression, e.g. (= a (= b 7)).
// Assignment chains are walked along the right spine without recursion.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var sb strings.Builder
	depth := 0
	for n != nil && n.Kind == ASSIGN && !n.IsLeaf() {
		fmt.Fprintf(&sb, "(%s %s ", n.Text, n.Left)
		depth++
		n = n.Right
	}
	if n == nil {
		sb.WriteString("<nil>")
	} else {
		sb.WriteString(n.Text)
	}
	sb.WriteString(strings.Repeat(")", depth))
	return sb.String()
}
