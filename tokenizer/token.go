package tokenizer

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrUnterminatedString  = errors.New("unterminated string literal")
	ErrInvalidEscape       = errors.New("invalid escape sequence")
	ErrInvalidNumber       = errors.New("invalid number format")
)

// TokenType represents the type of a token
type TokenType int

const (
	// Basic tokens
	EOF TokenType = iota
	WHITESPACE
	NEWLINE
	IDENTIFIER   // identifiers and keywords
	NUMBER       // raw numeric text, underscores and exponent included
	ADDRESS      // 0x + 40 hex digits
	STRING       // "text", quotes included
	LINE_COMMENT // # text

	// Punctuation
	OPENED_PARENS  // (
	CLOSED_PARENS  // )
	OPENED_BRACKET // [
	CLOSED_BRACKET // ]
	OPENED_BRACE   // {
	CLOSED_BRACE   // }
	COMMA          // ,
	SEMICOLON      // ;
	DOT            // .
	ELIPSIS        // ...
	COLON          // :
	QUESTION       // ?
	ASSIGN         // =
	ARROW          // =>

	// Operators
	PLUS          // +
	MINUS         // -
	MULTIPLY      // *
	DIVIDE        // /
	PERCENT       // %
	CARET         // ^
	CONCAT        // ++
	SUBTRACT      // --
	PIPE          // |>
	EQUAL         // ==
	NOT_EQUAL     // !=
	LESS_THAN     // <
	GREATER_THAN  // >
	LESS_EQUAL    // <=
	GREATER_EQUAL // >=
	AND           // &&
	OR            // ||
	BANG          // !
)

var tokenTypeNames = map[TokenType]string{
	EOF:            "EOF",
	WHITESPACE:     "WHITESPACE",
	NEWLINE:        "NEWLINE",
	IDENTIFIER:     "IDENTIFIER",
	NUMBER:         "NUMBER",
	ADDRESS:        "ADDRESS",
	STRING:         "STRING",
	LINE_COMMENT:   "LINE_COMMENT",
	OPENED_PARENS:  "OPENED_PARENS",
	CLOSED_PARENS:  "CLOSED_PARENS",
	OPENED_BRACKET: "OPENED_BRACKET",
	CLOSED_BRACKET: "CLOSED_BRACKET",
	OPENED_BRACE:   "OPENED_BRACE",
	CLOSED_BRACE:   "CLOSED_BRACE",
	COMMA:          "COMMA",
	SEMICOLON:      "SEMICOLON",
	DOT:            "DOT",
	ELIPSIS:        "ELIPSIS",
	COLON:          "COLON",
	QUESTION:       "QUESTION",
	ASSIGN:         "ASSIGN",
	ARROW:          "ARROW",
	PLUS:           "PLUS",
	MINUS:          "MINUS",
	MULTIPLY:       "MULTIPLY",
	DIVIDE:         "DIVIDE",
	PERCENT:        "PERCENT",
	CARET:          "CARET",
	CONCAT:         "CONCAT",
	SUBTRACT:       "SUBTRACT",
	PIPE:           "PIPE",
	EQUAL:          "EQUAL",
	NOT_EQUAL:      "NOT_EQUAL",
	LESS_THAN:      "LESS_THAN",
	GREATER_THAN:   "GREATER_THAN",
	LESS_EQUAL:     "LESS_EQUAL",
	GREATER_EQUAL:  "GREATER_EQUAL",
	AND:            "AND",
	OR:             "OR",
	BANG:           "BANG",
}

// String returns the string representation of TokenType
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Position represents a position in the source. Offset is in bytes, Column
// counts code points. Both Line and Column start at 1.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns the string representation of Position
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Token represents a token
type Token struct {
	Type     TokenType
	Value    string // exact source text
	Position Position
}

// String returns the string representation of Token
func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %s", t.Type, t.Value, t.Position)
}

// IsSpace reports whether the token is whitespace or a line break.
func (t Token) IsSpace() bool {
	return t.Type == WHITESPACE || t.Type == NEWLINE
}

// LexError reports where lexing stopped.
type LexError struct {
	Pos Position
	Err error
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at %s", e.Err, e.Pos)
}

func (e *LexError) Unwrap() error {
	return e.Err
}
