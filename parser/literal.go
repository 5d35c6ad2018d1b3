package parser

import (
	"strings"

	pc "github.com/shibukawa/parsercombinator"
	"github.com/vxl-lang/vxl/ast"
	cmn "github.com/vxl-lang/vxl/parser/parsercommon"
	tok "github.com/vxl-lang/vxl/tokenizer"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// literal = boolean | none | string | number | percentage
func (g *grammar) literal() pc.Parser[cmn.Entity] {
	return pc.Trace("literal", pc.Or(g.boolean(), g.none(), g.str(), g.number()))
}

func (g *grammar) boolean() pc.Parser[cmn.Entity] {
	return pc.Trace("boolean", pc.Trans(
		g.expect("boolean", cmn.Keyword("boolean", "true", "false")),
		func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) ([]pc.Token[cmn.Entity], error) {
			value := strings.EqualFold(tokens[0].Val.Original.Value, "true")
			return single("boolean", ast.Boolean(value), tokens[0]), nil
		},
	))
}

// none is lower case only.
func (g *grammar) none() pc.Parser[cmn.Entity] {
	return pc.Trace("none", pc.Trans(
		g.expect("none", cmn.ExactKeyword("none", "none")),
		func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) ([]pc.Token[cmn.Entity], error) {
			return single("none", ast.None{}, tokens[0]), nil
		},
	))
}

func (g *grammar) str() pc.Parser[cmn.Entity] {
	return pc.Trace("string", pc.Trans(
		g.match("string", tok.STRING),
		func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) ([]pc.Token[cmn.Entity], error) {
			raw := tokens[0].Val.Original.Value
			return single("string", ast.String(raw[1:len(raw)-1]), tokens[0]), nil
		},
	))
}

// number = sign? NUMBER '%'?
//
// The sign and the percent mark must touch the digits. A sign separated by
// a space is left to the unary operation.
func (g *grammar) number() pc.Parser[cmn.Entity] {
	return pc.Trace("number", pc.Trans(
		pc.Seq(
			pc.Optional(cmn.Sign),
			g.match("number", tok.NUMBER),
			pc.Optional(cmn.Percent),
		),
		func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) ([]pc.Token[cmn.Entity], error) {
			first := tokens[0]
			negative := false
			if t := first.Val.Original.Type; t == tok.MINUS || t == tok.PLUS {
				negative = t == tok.MINUS
				tokens = tokens[1:]
			}

			value, err := numberValue(tokens[0].Val.Original.Value)
			if err != nil {
				return nil, g.fail(tokens[0], err)
			}
			if negative {
				value = value.Negate()
			}

			if len(tokens) > 1 {
				return single("percentage", ast.Percentage{Value: value}, first), nil
			}
			return single("number", ast.Number{Value: value}, first), nil
		},
	))
}

func (g *grammar) address() pc.Parser[cmn.Entity] {
	return pc.Trace("address", pc.Trans(
		g.match("address", tok.ADDRESS),
		func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) ([]pc.Token[cmn.Entity], error) {
			return single("address", ast.Address(tokens[0].Val.Original.Value), tokens[0]), nil
		},
	))
}

func (g *grammar) identifier() pc.Parser[cmn.Entity] {
	return pc.Trace("identifier", pc.Trans(
		g.match("identifier", tok.IDENTIFIER),
		func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) ([]pc.Token[cmn.Entity], error) {
			return single("identifier", identifierToken(tokens[0]), tokens[0]), nil
		},
	))
}

// identifierToken folds the token text to lower case. A Caser keeps state,
// so one is made per call.
func identifierToken(t pc.Token[cmn.Entity]) ast.Identifier {
	return ast.Identifier(cases.Lower(language.Und).String(t.Val.Original.Value))
}

func (g *grammar) comment() pc.Parser[cmn.Entity] {
	return pc.Trace("line-comment", pc.Trans(
		g.match("comment", tok.LINE_COMMENT),
		func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) ([]pc.Token[cmn.Entity], error) {
			text := strings.TrimPrefix(tokens[0].Val.Original.Value, "#")
			return single("comment", ast.LineComment(text), tokens[0]), nil
		},
	))
}
