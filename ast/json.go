package ast

import (
	"encoding/json"
	"fmt"
)

// The wire form mirrors an externally tagged union: unit variants encode as
// their tag string, every other variant as {"<tag>": payload}.

type nodeJSON struct {
	Offset int             `json:"offset"`
	Line   int             `json:"line"`
	Column int             `json:"column"`
	Token  json.RawMessage `json:"token"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	tok, err := MarshalToken(n.Token)
	if err != nil {
		return nil, err
	}
	return json.Marshal(nodeJSON{
		Offset: n.Offset,
		Line:   n.Line,
		Column: n.Column,
		Token:  tok,
	})
}

type optionJSON struct {
	Key   *Node `json:"key"`
	Value *Node `json:"value"`
}

type functionJSON struct {
	Name        *Node   `json:"name"`
	Subfunction *Node   `json:"subfunction"`
	Args        []*Node `json:"args"`
}

type conditionalJSON struct {
	Condition *Node `json:"condition"`
	IfTrue    *Node `json:"if_true"`
	IfFalse   *Node `json:"if_false"`
}

type binaryOpJSON struct {
	Operator *Node `json:"operator"`
	Left     *Node `json:"left"`
	Right    *Node `json:"right"`
}

type unaryOpJSON struct {
	Operator *Node `json:"operator"`
	Operand  *Node `json:"operand"`
}

type tupleForLoopJSON struct {
	Binds []*Node `json:"binds"`
	Expr  *Node   `json:"expr"`
	Body  *Node   `json:"body"`
	Cond  *Node   `json:"cond"`
}

type objectForLoopJSON struct {
	Binds    []*Node  `json:"binds"`
	Expr     *Node    `json:"expr"`
	Body     [2]*Node `json:"body"`
	Cond     *Node    `json:"cond"`
	Grouping bool     `json:"grouping"`
}

type attributeJSON struct {
	Ident *Node `json:"ident"`
	Expr  *Node `json:"expr"`
}

// MarshalToken encodes a single token in its tagged wire form.
func MarshalToken(tok Token) ([]byte, error) {
	if tok == nil {
		return json.Marshal(KindUnknown.String())
	}

	var payload any
	switch t := tok.(type) {
	case Unknown, None:
		return json.Marshal(t.Kind().String())
	case Identifier:
		payload = string(t)
	case Address:
		payload = string(t)
	case Boolean:
		payload = bool(t)
	case Number:
		payload = t.Value
	case Percentage:
		payload = t.Value
	case String:
		payload = string(t)
	case LineComment:
		payload = string(t)
	case Operator:
		payload = t.String()
	case Option:
		payload = optionJSON{Key: t.Key, Value: t.Value}
	case Function:
		args := t.Args
		if args == nil {
			args = []*Node{}
		}
		payload = functionJSON{Name: t.Name, Subfunction: t.Subfunction, Args: args}
	case Conditional:
		payload = conditionalJSON{Condition: t.Condition, IfTrue: t.IfTrue, IfFalse: t.IfFalse}
	case BinaryOp:
		payload = binaryOpJSON{Operator: t.Operator, Left: t.Left, Right: t.Right}
	case UnaryOp:
		payload = unaryOpJSON{Operator: t.Operator, Operand: t.Operand}
	case List:
		items := []*Node(t)
		if items == nil {
			items = []*Node{}
		}
		payload = items
	case TupleForLoop:
		payload = map[string]any{"tuple": tupleForLoopJSON{
			Binds: nonNilNodes(t.Binds), Expr: t.Expr, Body: t.Body, Cond: t.Cond,
		}}
	case ObjectForLoop:
		payload = map[string]any{"object": objectForLoopJSON{
			Binds: nonNilNodes(t.Binds), Expr: t.Expr, Body: [2]*Node{t.Key, t.Value},
			Cond: t.Cond, Grouping: t.Grouping,
		}}
	case Attribute:
		payload = attributeJSON{Ident: t.Ident, Expr: t.Expr}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownToken, tok)
	}

	return json.Marshal(map[string]any{tok.Kind().String(): payload})
}

func nonNilNodes(nodes []*Node) []*Node {
	if nodes == nil {
		return []*Node{}
	}
	return nodes
}
