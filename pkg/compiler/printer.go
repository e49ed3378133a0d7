package compiler

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// indentUnit is written once per tree level in front of a node's text.
const indentUnit = "  "

// Preorder yields every node of the tree rooted at root together with its
// depth (root = 0), visiting a node before its left subtree and the left
// subtree before the right one. It uses an explicit stack.
func Preorder(root *Node) iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		type frame struct {
			n     *Node
			depth int
		}
		if root == nil {
			return
		}
		stack := []frame{{root, 0}}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(top.depth, top.n) {
				return
			}
			if top.n.Right != nil {
				stack = append(stack, frame{top.n.Right, top.depth + 1})
			}
			if top.n.Left != nil {
				stack = append(stack, frame{top.n.Left, top.depth + 1})
			}
		}
	}
}

// PrintTree writes one line per node: its text indented by depth.
func PrintTree(w io.Writer, root *Node) error {
	bw := bufio.NewWriter(w)
	for depth, n := range Preorder(root) {
		for range depth {
			bw.WriteString(indentUnit)
		}
		bw.WriteString(n.Text)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// FormatTree returns the PrintTree output as a string.
func FormatTree(root *Node) string {
	var sb strings.Builder
	_ = PrintTree(&sb, root)
	return sb.String()
}
