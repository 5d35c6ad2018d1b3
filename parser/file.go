package parser

import (
	pc "github.com/shibukawa/parsercombinator"
	"github.com/vxl-lang/vxl/ast"
	cmn "github.com/vxl-lang/vxl/parser/parsercommon"
	tok "github.com/vxl-lang/vxl/tokenizer"
)

// statement = multispace0 (expression | line-comment) terminator
//
// terminator = space0 (';'? space0 line-comment newline? | ';' | end of input | newline+)
//
// A comment that follows the statement on its line belongs to the
// terminator, so it is tried before a bare ';'.
func (g *grammar) statementRule() pc.Parser[cmn.Entity] {
	semicolon := g.match("';'", tok.SEMICOLON)
	terminator := pc.Drop(pc.Seq(cmn.SP, pc.Or(
		pc.Seq(pc.Optional(semicolon), cmn.SP, g.comment(), pc.Optional(cmn.Newline)),
		semicolon,
		g.endOfInput,
		pc.Seq(g.match("newline", tok.NEWLINE), pc.ZeroOrMore("newlines", cmn.Newline)),
	)))

	return pc.Trace("statement", pc.Seq(
		cmn.MSP,
		pc.Or(lazy(&g.expression), g.comment()),
		terminator,
	))
}

// file parses one or more statements and requires the whole input to be
// consumed. Comment statements are dropped.
func (g *grammar) file(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) (int, []pc.Token[cmn.Entity], error) {
	var (
		consumed int
		results  []pc.Token[cmn.Entity]
		count    int
	)

	for {
		n, out, err := g.statement(pctx, tokens[consumed:])
		if err != nil {
			if g.isCritical(err) {
				return 0, nil, err
			}
			break
		}
		consumed += n
		count++
		for _, token := range out {
			if token.Val.Node == nil {
				continue
			}
			if _, ok := token.Val.Node.Token.(ast.LineComment); ok {
				continue
			}
			results = append(results, token)
		}
	}
	if count == 0 {
		return 0, nil, pc.ErrNotMatch
	}

	n, _, err := pc.Seq(cmn.MSP, g.endOfInput)(pctx, tokens[consumed:])
	if err != nil {
		return 0, nil, err
	}

	return consumed + n, results, nil
}

// endOfInput matches without consuming when only the EOF token is left.
func (g *grammar) endOfInput(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) (int, []pc.Token[cmn.Entity], error) {
	if len(tokens) == 0 || tokens[0].Val.Original.Type == tok.EOF {
		return 0, nil, nil
	}
	g.miss("end of input", tokens[0])
	return 0, nil, pc.ErrNotMatch
}
