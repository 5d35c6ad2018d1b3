package ast

// SameToken reports whether two nodes describe the same syntax, ignoring
// positions. Numbers compare by variant and value.
func SameToken(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}

	switch x := a.Token.(type) {
	case Number:
		y, ok := b.Token.(Number)
		return ok && x.Value.Equal(y.Value)
	case Percentage:
		y, ok := b.Token.(Percentage)
		return ok && x.Value.Equal(y.Value)
	case Option:
		y, ok := b.Token.(Option)
		return ok && SameToken(x.Key, y.Key) && SameToken(x.Value, y.Value)
	case Function:
		y, ok := b.Token.(Function)
		return ok && SameToken(x.Name, y.Name) && SameToken(x.Subfunction, y.Subfunction) && sameNodes(x.Args, y.Args)
	case Conditional:
		y, ok := b.Token.(Conditional)
		return ok && SameToken(x.Condition, y.Condition) && SameToken(x.IfTrue, y.IfTrue) && SameToken(x.IfFalse, y.IfFalse)
	case BinaryOp:
		y, ok := b.Token.(BinaryOp)
		return ok && SameToken(x.Operator, y.Operator) && SameToken(x.Left, y.Left) && SameToken(x.Right, y.Right)
	case UnaryOp:
		y, ok := b.Token.(UnaryOp)
		return ok && SameToken(x.Operator, y.Operator) && SameToken(x.Operand, y.Operand)
	case List:
		y, ok := b.Token.(List)
		return ok && sameNodes(x, y)
	case TupleForLoop:
		y, ok := b.Token.(TupleForLoop)
		return ok && sameNodes(x.Binds, y.Binds) && SameToken(x.Expr, y.Expr) &&
			SameToken(x.Body, y.Body) && SameToken(x.Cond, y.Cond)
	case ObjectForLoop:
		y, ok := b.Token.(ObjectForLoop)
		return ok && x.Grouping == y.Grouping && sameNodes(x.Binds, y.Binds) && SameToken(x.Expr, y.Expr) &&
			SameToken(x.Key, y.Key) && SameToken(x.Value, y.Value) && SameToken(x.Cond, y.Cond)
	case Attribute:
		y, ok := b.Token.(Attribute)
		return ok && SameToken(x.Ident, y.Ident) && SameToken(x.Expr, y.Expr)
	}

	// Remaining variants are comparable scalars.
	return a.Token == b.Token
}

// SameTree is SameToken applied pairwise.
func SameTree(a, b Tree) bool {
	return sameNodes(a, b)
}

func sameNodes(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !SameToken(a[i], b[i]) {
			return false
		}
	}
	return true
}
