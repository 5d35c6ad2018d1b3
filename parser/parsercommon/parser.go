package parsercommon

import (
	"slices"
	"strings"

	pc "github.com/shibukawa/parsercombinator"
	tok "github.com/vxl-lang/vxl/tokenizer"
)

var (
	Space   = PrimitiveType("space", tok.WHITESPACE)
	Newline = PrimitiveType("newline", tok.NEWLINE)
	Comment = PrimitiveType("comment", tok.LINE_COMMENT)
	EOF     = PrimitiveType("eof", tok.EOF)

	ParenOpen    = PrimitiveType("parenOpen", tok.OPENED_PARENS)
	ParenClose   = PrimitiveType("parenClose", tok.CLOSED_PARENS)
	BracketOpen  = PrimitiveType("bracketOpen", tok.OPENED_BRACKET)
	BracketClose = PrimitiveType("bracketClose", tok.CLOSED_BRACKET)
	BraceOpen    = PrimitiveType("braceOpen", tok.OPENED_BRACE)
	BraceClose   = PrimitiveType("braceClose", tok.CLOSED_BRACE)
	Comma        = PrimitiveType("comma", tok.COMMA)
	Semicolon    = PrimitiveType("semicolon", tok.SEMICOLON)
	Dot          = PrimitiveType("dot", tok.DOT)
	Elipsis      = PrimitiveType("elipsis", tok.ELIPSIS)
	Colon        = PrimitiveType("colon", tok.COLON)
	Question     = PrimitiveType("question", tok.QUESTION)
	Assign       = PrimitiveType("assign", tok.ASSIGN)
	Arrow        = PrimitiveType("arrow", tok.ARROW)
	Star         = PrimitiveType("star", tok.MULTIPLY)
	Percent      = PrimitiveType("percent", tok.PERCENT)

	// Primitives
	Number     = PrimitiveType("number", tok.NUMBER)
	String     = PrimitiveType("string", tok.STRING)
	Address    = PrimitiveType("address", tok.ADDRESS)
	Identifier = PrimitiveType("identifier", tok.IDENTIFIER)
	Sign       = PrimitiveType("sign", tok.PLUS, tok.MINUS)

	// SP skips spaces and tabs on the current line.
	SP = pc.Drop(pc.ZeroOrMore("space", Space))
	// MSP skips spaces, tabs and line breaks.
	MSP = pc.Drop(pc.ZeroOrMore("space or newline", pc.Or(Space, Newline)))
	// SP1 requires at least one space.
	SP1 = pc.Drop(pc.Seq(Space, SP))
	// MSP1 requires at least one space or line break.
	MSP1 = pc.Drop(pc.Seq(pc.Or(Space, Newline), MSP))
)

// PrimitiveType matches one token of the given types.
func PrimitiveType(typeName string, types ...tok.TokenType) pc.Parser[Entity] {
	return func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) (int, []pc.Token[Entity], error) {
		if len(tokens) > 0 && slices.Contains(types, tokens[0].Val.Original.Type) {
			return 1, tokens[:1], nil
		}
		return 0, nil, pc.ErrNotMatch
	}
}

// Keyword matches an identifier token spelled as one of words, ignoring
// case. Keywords are not reserved by the tokenizer, so "trueish" stays an
// ordinary identifier.
func Keyword(typeName string, words ...string) pc.Parser[Entity] {
	return func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) (int, []pc.Token[Entity], error) {
		if len(tokens) > 0 && tokens[0].Val.Original.Type == tok.IDENTIFIER {
			value := tokens[0].Val.Original.Value
			if slices.ContainsFunc(words, func(w string) bool { return strings.EqualFold(w, value) }) {
				return 1, tokens[:1], nil
			}
		}
		return 0, nil, pc.ErrNotMatch
	}
}

// ExactKeyword is Keyword without case folding.
func ExactKeyword(typeName string, words ...string) pc.Parser[Entity] {
	return func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) (int, []pc.Token[Entity], error) {
		if len(tokens) > 0 && tokens[0].Val.Original.Type == tok.IDENTIFIER &&
			slices.Contains(words, tokens[0].Val.Original.Value) {
			return 1, tokens[:1], nil
		}
		return 0, nil, pc.ErrNotMatch
	}
}

// NotKeyword matches an identifier that is none of the reserved words.
func NotKeyword(typeName string, reserved ...string) pc.Parser[Entity] {
	return func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) (int, []pc.Token[Entity], error) {
		if len(tokens) > 0 && tokens[0].Val.Original.Type == tok.IDENTIFIER {
			value := tokens[0].Val.Original.Value
			if !slices.ContainsFunc(reserved, func(w string) bool { return strings.EqualFold(w, value) }) {
				return 1, tokens[:1], nil
			}
		}
		return 0, nil, pc.ErrNotMatch
	}
}

// WS matches token followed by optional spaces, keeping only the token.
func WS(token pc.Parser[Entity]) pc.Parser[Entity] {
	return pc.Seq(token, SP)
}

// MWS is WS that also skips line breaks.
func MWS(token pc.Parser[Entity]) pc.Parser[Entity] {
	return pc.Seq(token, MSP)
}
