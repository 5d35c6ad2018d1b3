// Package vxl parses source text of the VXL configuration language into an
// ordered tree of position-tagged AST nodes.
package vxl

import (
	"fmt"

	"github.com/vxl-lang/vxl/ast"
	"github.com/vxl-lang/vxl/parser"
	"github.com/vxl-lang/vxl/tokenizer"
)

// Parse parses a whole program with default options.
func Parse(src string) (ast.Tree, error) {
	return ParseWithOptions(src, parser.Options{})
}

// ParseWithOptions parses a whole program. Every failure wraps ErrParse;
// lexical failures also wrap the tokenizer's *LexError.
func ParseWithOptions(src string, opts parser.Options) (ast.Tree, error) {
	tokens, err := tokenizer.NewTokenizer(src).AllTokens()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return parser.Execute(tokens, opts)
}

// ParseAttribute parses a single "key = value" line.
func ParseAttribute(src string) (*ast.Node, error) {
	tokens, err := tokenizer.NewTokenizer(src).AllTokens()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return parser.ParseAttribute(tokens, parser.Options{})
}
