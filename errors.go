package vxl

import (
	"errors"

	"github.com/vxl-lang/vxl/ast"
	"github.com/vxl-lang/vxl/parser"
	"github.com/vxl-lang/vxl/parser/parsercommon"
	"github.com/vxl-lang/vxl/tokenizer"
)

// Common errors used throughout the VXL package
var (
	// ErrParse is wrapped by every error caused by malformed source,
	// including lexical errors.
	ErrParse = parser.ErrParse
	// ErrMaxDepth indicates the source nests deeper than Options.MaxDepth.
	ErrMaxDepth = parser.ErrMaxDepth
	// ErrUnknownToken indicates an internal defect: an Unknown token was
	// left in a parse result.
	ErrUnknownToken = ast.ErrUnknownToken
)

// ErrorPosition returns the source position carried by a parse or lexical
// error returned from Parse.
func ErrorPosition(err error) (tokenizer.Position, bool) {
	if perr, ok := parsercommon.AsParseError(err); ok {
		return perr.Pos, true
	}

	var lexErr *tokenizer.LexError
	if errors.As(err, &lexErr) {
		return lexErr.Pos, true
	}

	return tokenizer.Position{}, false
}
