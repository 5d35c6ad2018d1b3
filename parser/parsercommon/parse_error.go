package parsercommon

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	tok "github.com/vxl-lang/vxl/tokenizer"
)

// ParseError reports the furthest position the grammar reached and the
// rules that were tried there.
type ParseError struct {
	Pos      tok.Position
	Found    string
	Expected []string
	Err      error
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	var sb strings.Builder
	if e.Err != nil {
		sb.WriteString(e.Err.Error())
	} else {
		sb.WriteString("parse error")
	}
	fmt.Fprintf(&sb, " at %s", e.Pos)
	if e.Found != "" {
		fmt.Fprintf(&sb, " near %q", e.Found)
	}
	if len(e.Expected) > 0 {
		sb.WriteString(" (expected ")
		sb.WriteString(strings.Join(e.Expected, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Expect records a rule name attempted at the current position. Names are
// kept unique and in first-seen order.
func (e *ParseError) Expect(names ...string) {
	for _, name := range names {
		if !slices.Contains(e.Expected, name) {
			e.Expected = append(e.Expected, name)
		}
	}
}

// AsParseError is a helper to extract *ParseError from error using errors.As.
func AsParseError(err error) (*ParseError, bool) {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}
