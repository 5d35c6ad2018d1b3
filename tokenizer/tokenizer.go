package tokenizer

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// Tokenizer splits VXL source into position-tagged tokens.
type Tokenizer struct {
	input   string
	options TokenizerOptions
}

// TokenizerOptions are options for the tokenizer. The grammar relies on
// whitespace tokens for adjacency rules, so skipping is only meant for
// tooling that inspects the token stream.
type TokenizerOptions struct {
	SkipWhitespace bool
	SkipComments   bool
}

// NewTokenizer creates a new Tokenizer
func NewTokenizer(input string, options ...TokenizerOptions) *Tokenizer {
	var opts TokenizerOptions
	if len(options) > 0 {
		opts = options[0]
	}

	return &Tokenizer{
		input:   input,
		options: opts,
	}
}

// Tokens returns an iterator of tokens. Iteration stops after the first
// error because lexing cannot resynchronize reliably.
func (t *Tokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		tokenizer := &tokenizer{
			input:  t.input,
			line:   1,
			column: 1,
		}

		tokenizer.readChar()

		for {
			token, err := tokenizer.nextToken()
			if err != nil {
				yield(Token{}, err)
				return
			}

			if token.Type == EOF {
				yield(token, nil)
				return
			}

			// Filtering based on options
			if t.options.SkipWhitespace && token.IsSpace() {
				continue
			}
			if t.options.SkipComments && token.Type == LINE_COMMENT {
				continue
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice, EOF included.
func (t *Tokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 64)

	for token, err := range t.Tokens() {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}

	return tokens, nil
}

// Internal tokenizer implementation
type tokenizer struct {
	input   string
	offset  int // byte offset of current
	line    int
	column  int
	current rune
	width   int // byte width of current, 0 at end of input
}

func (t *tokenizer) atEOF() bool {
	return t.offset >= len(t.input)
}

// nextToken gets the next token
func (t *tokenizer) nextToken() (Token, error) {
	if t.atEOF() {
		return Token{Type: EOF, Position: t.pos()}, nil
	}

	switch t.current {
	case ' ', '\t':
		return t.readWhitespace(), nil
	case '\n':
		return t.consume(NEWLINE, 1), nil
	case '\r':
		if t.hasPrefix("\r\n") {
			return t.consume(NEWLINE, 2), nil
		}
		return t.consume(NEWLINE, 1), nil
	case '#':
		return t.readLineComment(), nil
	case '"':
		return t.readString()
	case '(':
		return t.consume(OPENED_PARENS, 1), nil
	case ')':
		return t.consume(CLOSED_PARENS, 1), nil
	case '[':
		return t.consume(OPENED_BRACKET, 1), nil
	case ']':
		return t.consume(CLOSED_BRACKET, 1), nil
	case '{':
		return t.consume(OPENED_BRACE, 1), nil
	case '}':
		return t.consume(CLOSED_BRACE, 1), nil
	case ',':
		return t.consume(COMMA, 1), nil
	case ';':
		return t.consume(SEMICOLON, 1), nil
	case ':':
		return t.consume(COLON, 1), nil
	case '?':
		return t.consume(QUESTION, 1), nil
	case '*':
		return t.consume(MULTIPLY, 1), nil
	case '/':
		return t.consume(DIVIDE, 1), nil
	case '%':
		return t.consume(PERCENT, 1), nil
	case '^':
		return t.consume(CARET, 1), nil
	case '.':
		if t.hasPrefix("...") {
			return t.consume(ELIPSIS, 3), nil
		}
		return t.consume(DOT, 1), nil
	case '+':
		if t.hasPrefix("++") {
			return t.consume(CONCAT, 2), nil
		}
		return t.consume(PLUS, 1), nil
	case '-':
		if t.hasPrefix("--") {
			return t.consume(SUBTRACT, 2), nil
		}
		return t.consume(MINUS, 1), nil
	case '=':
		if t.hasPrefix("==") {
			return t.consume(EQUAL, 2), nil
		} else if t.hasPrefix("=>") {
			return t.consume(ARROW, 2), nil
		}
		return t.consume(ASSIGN, 1), nil
	case '!':
		if t.hasPrefix("!=") {
			return t.consume(NOT_EQUAL, 2), nil
		}
		return t.consume(BANG, 1), nil
	case '<':
		if t.hasPrefix("<=") {
			return t.consume(LESS_EQUAL, 2), nil
		}
		return t.consume(LESS_THAN, 1), nil
	case '>':
		if t.hasPrefix(">=") {
			return t.consume(GREATER_EQUAL, 2), nil
		}
		return t.consume(GREATER_THAN, 1), nil
	case '&':
		if t.hasPrefix("&&") {
			return t.consume(AND, 2), nil
		}
	case '|':
		if t.hasPrefix("||") {
			return t.consume(OR, 2), nil
		} else if t.hasPrefix("|>") {
			return t.consume(PIPE, 2), nil
		}
	default:
		if isIdentStart(t.current) {
			return t.readWord(), nil
		} else if isDigit(t.current) {
			return t.readDigitWord()
		}
	}

	return Token{}, &LexError{Pos: t.pos(), Err: ErrUnexpectedCharacter}
}

// readChar moves past the current rune and decodes the next one.
func (t *tokenizer) readChar() {
	if t.width > 0 {
		if t.current == '\n' {
			t.line++
			t.column = 1
		} else {
			t.column++
		}
		t.offset += t.width
	}

	if t.atEOF() {
		t.current = 0
		t.width = 0
		return
	}

	t.current, t.width = utf8.DecodeRuneInString(t.input[t.offset:])
}

func (t *tokenizer) hasPrefix(s string) bool {
	return strings.HasPrefix(t.input[t.offset:], s)
}

func (t *tokenizer) pos() Position {
	return Position{Line: t.line, Column: t.column, Offset: t.offset}
}

// advanceTo reads runes until the byte offset end is reached.
func (t *tokenizer) advanceTo(end int) {
	for t.offset < end && !t.atEOF() {
		t.readChar()
	}
}

// consume emits the next n bytes as a single token.
func (t *tokenizer) consume(tokenType TokenType, n int) Token {
	start := t.pos()
	t.advanceTo(start.Offset + n)
	return t.tokenFrom(tokenType, start)
}

func (t *tokenizer) tokenFrom(tokenType TokenType, start Position) Token {
	return Token{
		Type:     tokenType,
		Value:    t.input[start.Offset:t.offset],
		Position: start,
	}
}

// readWhitespace reads spaces and tabs; line breaks are separate tokens
func (t *tokenizer) readWhitespace() Token {
	start := t.pos()
	for !t.atEOF() && (t.current == ' ' || t.current == '\t') {
		t.readChar()
	}
	return t.tokenFrom(WHITESPACE, start)
}

// readLineComment reads from '#' up to, not including, the line break
func (t *tokenizer) readLineComment() Token {
	start := t.pos()
	for !t.atEOF() && t.current != '\n' && t.current != '\r' {
		t.readChar()
	}
	return t.tokenFrom(LINE_COMMENT, start)
}

// readWord reads identifiers starting with a letter or '_'. Keywords are
// plain identifiers here; the grammar decides by value.
func (t *tokenizer) readWord() Token {
	start := t.pos()
	for !t.atEOF() && isIdentChar(t.current) {
		t.readChar()
	}
	return t.tokenFrom(IDENTIFIER, start)
}

// readString reads a single line string literal. Escapes are validated but
// kept as written.
func (t *tokenizer) readString() (Token, error) {
	start := t.pos()
	t.readChar() // opening quote

	for {
		if t.atEOF() || t.current == '\n' || t.current == '\r' {
			return Token{}, &LexError{Pos: start, Err: ErrUnterminatedString}
		}
		switch t.current {
		case '"':
			t.readChar()
			return t.tokenFrom(STRING, start), nil
		case '\\':
			escapePos := t.pos()
			t.readChar()
			if t.atEOF() || !strings.ContainsRune(`rnt"\`, t.current) {
				return Token{}, &LexError{Pos: escapePos, Err: ErrInvalidEscape}
			}
			t.readChar()
		default:
			t.readChar()
		}
	}
}

// readDigitWord handles every token that starts with a digit: addresses,
// numbers and digit-led identifiers such as 1inch.
func (t *tokenizer) readDigitWord() (Token, error) {
	start := t.pos()
	rest := t.input[t.offset:]

	if n, ok := scanAddress(rest); ok {
		t.advanceTo(start.Offset + n)
		return t.tokenFrom(ADDRESS, start), nil
	}

	if n, ok := scanNumber(rest); ok {
		next, _ := utf8.DecodeRuneInString(rest[n:])
		if n == len(rest) || !unicode.IsLetter(next) {
			t.advanceTo(start.Offset + n)
			return t.tokenFrom(NUMBER, start), nil
		}
	}

	if n, ok := scanDigitIdentifier(rest); ok {
		t.advanceTo(start.Offset + n)
		return t.tokenFrom(IDENTIFIER, start), nil
	}

	return Token{}, &LexError{Pos: start, Err: ErrInvalidNumber}
}

// scanAddress matches 0x followed by exactly 40 hex digits.
func scanAddress(s string) (int, bool) {
	const size = 42
	if len(s) < size || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return 0, false
	}
	for i := 2; i < size; i++ {
		if !isHexDigit(s[i]) {
			return 0, false
		}
	}
	if len(s) > size {
		next, _ := utf8.DecodeRuneInString(s[size:])
		if unicode.IsLetter(next) || unicode.IsDigit(next) || next == '_' {
			return 0, false
		}
	}
	return size, true
}

// scanNumber matches digits, an optional fraction and an optional exponent.
// Underscores separate digits but may not end a group.
func scanNumber(s string) (int, bool) {
	i, ok := scanDigits(s, 0)
	if !ok {
		return 0, false
	}

	if i+1 < len(s) && s[i] == '.' && isDigit(rune(s[i+1])) {
		if i, ok = scanDigits(s, i+1); !ok {
			return 0, false
		}
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(rune(s[j])) {
			if i, ok = scanDigits(s, j); !ok {
				return 0, false
			}
		}
	}

	return i, true
}

func scanDigits(s string, i int) (int, bool) {
	if i >= len(s) || !isDigit(rune(s[i])) {
		return i, false
	}
	for i < len(s) && (isDigit(rune(s[i])) || s[i] == '_') {
		i++
	}
	return i, s[i-1] != '_'
}

// scanDigitIdentifier matches one digit and at least one letter, followed
// by the usual identifier characters, as in "1inch" or "1foo_v1".
func scanDigitIdentifier(s string) (int, bool) {
	i := 1
	for i < len(s) {
		r, w := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsLetter(r) {
			break
		}
		i += w
	}
	if i == 1 {
		return 0, false
	}
	for i < len(s) {
		r, w := utf8.DecodeRuneInString(s[i:])
		if !isIdentChar(r) {
			break
		}
		i += w
	}
	return i, true
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(rune(c)) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
