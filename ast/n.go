package ast

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ErrInvalidNumber is returned when a numeric string cannot be converted to N.
var ErrInvalidNumber = errors.New("invalid number")

// NKind tells which variant an N holds.
type NKind int

const (
	IntKind NKind = iota
	DecimalKind
)

func (k NKind) String() string {
	if k == DecimalKind {
		return "decimal"
	}
	return "int"
}

// N is an exact numeric value: either a 64-bit integer or an arbitrary
// precision decimal. Decimals keep the scale they were written with, so
// 1.0 and 1.00 serialize differently while comparing equal.
type N struct {
	kind NKind
	i    int64
	d    decimal.Decimal
}

func NewInt(i int64) N {
	return N{kind: IntKind, i: i}
}

func NewDecimal(d decimal.Decimal) N {
	return N{kind: DecimalKind, d: d}
}

// ParseN converts digits (optionally signed, optionally with a fractional
// part) to N. Text that fits an int64 becomes Int, anything else Decimal.
func ParseN(s string) (N, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewInt(i), nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return N{}, fmt.Errorf("%w: %q: %w", ErrInvalidNumber, s, err)
	}
	return NewDecimal(d), nil
}

// MustParseN is ParseN for fixtures; it panics on malformed input.
func MustParseN(s string) N {
	n, err := ParseN(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n N) Kind() NKind { return n.kind }

func (n N) IsInt() bool     { return n.kind == IntKind }
func (n N) IsDecimal() bool { return n.kind == DecimalKind }

func (n N) AsInt() (int64, bool) {
	return n.i, n.kind == IntKind
}

func (n N) AsDecimal() (decimal.Decimal, bool) {
	return n.d, n.kind == DecimalKind
}

// Decimal returns the value as a decimal regardless of variant.
func (n N) Decimal() decimal.Decimal {
	if n.kind == IntKind {
		return decimal.NewFromInt(n.i)
	}
	return n.d
}

func (n N) Negate() N {
	if n.kind == IntKind {
		return NewInt(-n.i)
	}
	return NewDecimal(n.d.Neg())
}

// Equal reports whether both values have the same variant and numeric value.
// The written scale of decimals is ignored.
func (n N) Equal(o N) bool {
	if n.kind != o.kind {
		return false
	}
	if n.kind == IntKind {
		return n.i == o.i
	}
	return n.d.Equal(o.d)
}

// String renders the exact decimal form. Decimals with a fractional
// exponent keep every written digit, including trailing zeros.
func (n N) String() string {
	if n.kind == IntKind {
		return strconv.FormatInt(n.i, 10)
	}
	if exp := n.d.Exponent(); exp < 0 {
		return n.d.StringFixed(-exp)
	}
	return n.d.String()
}

func (n N) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{n.kind.String(): n.String()})
}

func (n *N) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("%w: expected a single tagged value, got %s", ErrInvalidNumber, data)
	}
	for tag, value := range raw {
		switch tag {
		case "int":
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidNumber, err)
			}
			*n = NewInt(i)
		case "decimal":
			d, err := decimal.NewFromString(value)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidNumber, err)
			}
			*n = NewDecimal(d)
		default:
			return fmt.Errorf("%w: unknown tag %q", ErrInvalidNumber, tag)
		}
	}
	return nil
}
