package ast

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownToken reports an Unknown token inside a parsed tree.
var ErrUnknownToken = errors.New("unknown token in parse result")

// Position is the location of the first character of a node's source span.
// Offset is in bytes, Line and Column are 1-based and Column counts UTF-8
// code points.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Node is a positioned token. Nodes are never modified after construction
// and may be shared between parents.
type Node struct {
	Position
	Token Token
}

// Tree is the ordered list of top-level nodes of a program.
type Tree []*Node

func NewNode(tok Token, pos Position) *Node {
	return &Node{Position: pos, Token: tok}
}

// FromNode builds a node that inherits the position of from.
func FromNode(tok Token, from *Node) *Node {
	return &Node{Position: from.Position, Token: tok}
}

// Children returns the direct child nodes in source order.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	switch t := n.Token.(type) {
	case Option:
		return []*Node{t.Key, t.Value}
	case Function:
		return appendNonNil(appendNonNil(nil, t.Name, t.Subfunction), t.Args...)
	case Conditional:
		return appendNonNil(nil, t.Condition, t.IfTrue, t.IfFalse)
	case BinaryOp:
		return []*Node{t.Left, t.Operator, t.Right}
	case UnaryOp:
		return []*Node{t.Operator, t.Operand}
	case List:
		return append([]*Node(nil), t...)
	case TupleForLoop:
		return appendNonNil(append([]*Node(nil), t.Binds...), t.Expr, t.Body, t.Cond)
	case ObjectForLoop:
		return appendNonNil(append([]*Node(nil), t.Binds...), t.Expr, t.Key, t.Value, t.Cond)
	case Attribute:
		return []*Node{t.Ident, t.Expr}
	}
	return nil
}

func appendNonNil(dst []*Node, nodes ...*Node) []*Node {
	for _, n := range nodes {
		if n != nil {
			dst = append(dst, n)
		}
	}
	return dst
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of the current node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// Validate checks that no node in the tree is nil or carries Unknown.
func (t Tree) Validate() error {
	var err error
	for _, root := range t {
		if root == nil {
			return fmt.Errorf("%w: nil top-level node", ErrUnknownToken)
		}
		Walk(root, func(n *Node) bool {
			if err != nil {
				return false
			}
			if n.Token == nil || n.Token.Kind() == KindUnknown {
				err = fmt.Errorf("%w at %s", ErrUnknownToken, n.Position)
				return false
			}
			return true
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// String renders the node as an s-expression without positions. It is
// meant for test failure messages and debugging.
func (n *Node) String() string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

func (t Tree) String() string {
	parts := make([]string, len(t))
	for i, n := range t {
		parts[i] = n.String()
	}
	return strings.Join(parts, "\n")
}

func writeNode(sb *strings.Builder, n *Node) {
	if n == nil {
		sb.WriteString("nil")
		return
	}
	switch t := n.Token.(type) {
	case Identifier:
		sb.WriteString(string(t))
	case Address:
		sb.WriteString(string(t))
	case Boolean:
		fmt.Fprintf(sb, "%t", bool(t))
	case Number:
		sb.WriteString(t.Value.String())
	case Percentage:
		sb.WriteString(t.Value.String())
		sb.WriteByte('%')
	case String:
		fmt.Fprintf(sb, "%q", string(t))
	case None:
		sb.WriteString("none")
	case Operator:
		sb.WriteString(t.String())
	case LineComment:
		fmt.Fprintf(sb, "#%s", string(t))
	case Option:
		writeList(sb, "option", t.Key, t.Value)
	case Function:
		head := "call"
		if t.Subfunction != nil {
			writeList(sb, head, append([]*Node{t.Name, t.Subfunction}, t.Args...)...)
			return
		}
		writeList(sb, head, append([]*Node{t.Name}, t.Args...)...)
	case Conditional:
		writeList(sb, "if", appendNonNil(nil, t.Condition, t.IfTrue, t.IfFalse)...)
	case BinaryOp:
		sb.WriteByte('(')
		writeNode(sb, t.Operator)
		sb.WriteByte(' ')
		writeNode(sb, t.Left)
		sb.WriteByte(' ')
		writeNode(sb, t.Right)
		sb.WriteByte(')')
	case UnaryOp:
		sb.WriteByte('(')
		writeNode(sb, t.Operator)
		sb.WriteByte(' ')
		writeNode(sb, t.Operand)
		sb.WriteByte(')')
	case List:
		writeList(sb, "list", t...)
	case TupleForLoop, ObjectForLoop, Attribute:
		writeList(sb, n.Token.Kind().String(), n.Children()...)
	default:
		sb.WriteString("<unknown>")
	}
}

func writeList(sb *strings.Builder, head string, nodes ...*Node) {
	sb.WriteByte('(')
	sb.WriteString(head)
	for _, c := range nodes {
		sb.WriteByte(' ')
		writeNode(sb, c)
	}
	sb.WriteByte(')')
}
