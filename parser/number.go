package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vxl-lang/vxl/ast"
)

// Exponents are limited to the 28 digit scale of 96-bit decimals.
const maxExponent = 28

var (
	// ErrExponentRange is returned for exponents outside [-28, 28].
	ErrExponentRange = errors.New("exponent out of range")
	// ErrNumberOverflow is returned when an integer literal, or a mantissa
	// scaled by its exponent, does not fit in an int64.
	ErrNumberOverflow = errors.New("number does not fit a 64-bit integer")
)

// numberValue converts the raw text of a NUMBER token to N. Underscores
// are digit separators. The sign is handled by the caller so that it is
// applied after the exponent.
func numberValue(raw string) (ast.N, error) {
	text := strings.ReplaceAll(raw, "_", "")

	mantissa, exponent, hasExponent := strings.Cut(strings.ToLower(text), "e")

	base, err := ast.ParseN(mantissa)
	if err != nil {
		return ast.N{}, err
	}
	if !base.IsInt() && !strings.Contains(mantissa, ".") {
		return ast.N{}, fmt.Errorf("%w: %q", ErrNumberOverflow, raw)
	}
	if !hasExponent {
		return base, nil
	}

	exp, err := strconv.Atoi(exponent)
	if err != nil || exp > maxExponent || exp < -maxExponent {
		return ast.N{}, fmt.Errorf("%w: %q", ErrExponentRange, raw)
	}

	return applyExponent(base, exp, raw)
}

func applyExponent(base ast.N, exp int, raw string) (ast.N, error) {
	shifted := base.Decimal().Shift(int32(exp))

	if exp < 0 {
		return ast.NewDecimal(shifted), nil
	}

	fits := shifted.IsInteger() && shifted.BigInt().IsInt64()
	if base.IsInt() {
		if !fits {
			return ast.N{}, fmt.Errorf("%w: %q", ErrNumberOverflow, raw)
		}
		return ast.NewInt(shifted.IntPart()), nil
	}

	// Decimal base narrows only when nothing is lost.
	if fits {
		return ast.NewInt(shifted.IntPart()), nil
	}
	return ast.NewDecimal(shifted), nil
}
