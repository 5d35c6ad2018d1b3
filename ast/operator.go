package ast

import (
	"errors"
	"fmt"
)

// ErrUnknownOperator is returned when a symbol does not name any operator.
var ErrUnknownOperator = errors.New("unrecognized operator")

// Operator is the closed set of operators known to the language. It is also
// the payload of the operator token, so an Operator can be stored directly
// in a Node.
type Operator int

const (
	// Arithmetic
	Plus Operator = iota
	Minus
	Multiply
	Divide
	Modulus
	Exponent

	// Logical
	And
	Or
	Not

	// Comparison
	Equal
	NotEqual
	Greater
	Less
	GreaterEqual
	LessEqual

	// Membership
	In
	NotIn

	// Postfix
	AttrAccess
	IndexAccess
	AttrSplat
	FullSplat
	Elipsis

	// List
	Concatenate
	Subtract

	Pipe
)

var operatorSymbols = [...]string{
	Plus:         "+",
	Minus:        "-",
	Multiply:     "*",
	Divide:       "/",
	Modulus:      "%",
	Exponent:     "^",
	And:          "&&",
	Or:           "||",
	Not:          "!",
	Equal:        "==",
	NotEqual:     "!=",
	Greater:      ">",
	Less:         "<",
	GreaterEqual: ">=",
	LessEqual:    "<=",
	In:           "in",
	NotIn:        "not in",
	AttrAccess:   ".",
	IndexAccess:  "[",
	AttrSplat:    ".*",
	FullSplat:    "[*]",
	Elipsis:      "...",
	Concatenate:  "++",
	Subtract:     "--",
	Pipe:         "|>",
}

var symbolOperators = func() map[string]Operator {
	m := make(map[string]Operator, len(operatorSymbols))
	for op, sym := range operatorSymbols {
		m[sym] = Operator(op)
	}
	return m
}()

// String returns the canonical display symbol.
func (o Operator) String() string {
	if o < 0 || int(o) >= len(operatorSymbols) {
		return fmt.Sprintf("Operator(%d)", int(o))
	}
	return operatorSymbols[o]
}

// ParseOperator maps a display symbol back to its Operator.
func ParseOperator(symbol string) (Operator, error) {
	if op, ok := symbolOperators[symbol]; ok {
		return op, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, symbol)
}

// MustParseOperator is like ParseOperator but panics on unknown symbols.
// It is meant for building expected trees in tests and fixtures.
func MustParseOperator(symbol string) Operator {
	op, err := ParseOperator(symbol)
	if err != nil {
		panic(err)
	}
	return op
}

func (Operator) Kind() Kind { return KindOperator }
func (Operator) token()     {}
