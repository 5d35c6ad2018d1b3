package ast

import "github.com/shopspring/decimal"

// Helpers below build position-less nodes. They exist for fixtures and for
// comparing parse results with SameToken.

func IdentNode(name string) *Node { return &Node{Token: Identifier(name)} }

func IntNode(i int64) *Node { return &Node{Token: Number{Value: NewInt(i)}} }

// DecimalNode parses s as a decimal and panics if it is malformed.
func DecimalNode(s string) *Node {
	return &Node{Token: Number{Value: NewDecimal(decimal.RequireFromString(s))}}
}

func NumberNode(n N) *Node { return &Node{Token: Number{Value: n}} }

func PercentNode(n N) *Node { return &Node{Token: Percentage{Value: n}} }

func BoolNode(b bool) *Node { return &Node{Token: Boolean(b)} }

func StringNode(s string) *Node { return &Node{Token: String(s)} }

func NoneNode() *Node { return &Node{Token: None{}} }

func AddressNode(addr string) *Node { return &Node{Token: Address(addr)} }

func OperatorNode(symbol string) *Node { return &Node{Token: MustParseOperator(symbol)} }

// FunctionNode builds name(args...) or, when sub is not empty,
// name.sub(args...).
func FunctionNode(name, sub string, args ...*Node) *Node {
	fn := Function{Name: IdentNode(name), Args: args}
	if sub != "" {
		fn.Subfunction = IdentNode(sub)
	}
	return &Node{Token: fn}
}

func OptionNode(key string, value *Node) *Node {
	return &Node{Token: Option{Key: IdentNode(key), Value: value}}
}

func BinaryNode(left *Node, symbol string, right *Node) *Node {
	return &Node{Token: BinaryOp{Operator: OperatorNode(symbol), Left: left, Right: right}}
}

func UnaryNode(symbol string, operand *Node) *Node {
	return &Node{Token: UnaryOp{Operator: OperatorNode(symbol), Operand: operand}}
}

func ListNode(items ...*Node) *Node { return &Node{Token: List(items)} }

func ConditionalNode(cond, ifTrue, ifFalse *Node) *Node {
	return &Node{Token: Conditional{Condition: cond, IfTrue: ifTrue, IfFalse: ifFalse}}
}
