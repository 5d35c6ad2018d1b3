package parser

import (
	pc "github.com/shibukawa/parsercombinator"
	"github.com/vxl-lang/vxl/ast"
	cmn "github.com/vxl-lang/vxl/parser/parsercommon"
	tok "github.com/vxl-lang/vxl/tokenizer"
)

// exprTerm = head postfix*
//
// head = address | literal | for-loop | list | if | function | identifier | '(' expression ')'
//
// The order matters: keywords are ordinary identifier tokens, so literals
// and the if form have to be tried before function and identifier.
func (g *grammar) exprTerm() pc.Parser[cmn.Entity] {
	head := pc.Or(
		g.address(),
		g.literal(),
		g.forLoop(),
		g.list(),
		g.ifStatement(),
		g.function(),
		g.identifier(),
		g.subExpression(),
	)
	index := pc.Seq(
		pc.Drop(cmn.BracketOpen), cmn.MSP,
		lazy(&g.expression),
		cmn.MSP, pc.Drop(g.match("']'", tok.CLOSED_BRACKET)),
	)
	attr := g.identifier()

	return func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) (int, []pc.Token[cmn.Entity], error) {
		consumed, out, err := head(pctx, tokens)
		if err != nil {
			return 0, nil, err
		}
		acc := out[0]

		for {
			n, next, err := g.postfix(pctx, tokens[consumed:], acc, index, attr)
			if err != nil {
				if g.isCritical(err) {
					return 0, nil, err
				}
				break
			}
			consumed += n
			acc = next
		}

		return consumed, []pc.Token[cmn.Entity]{acc}, nil
	}
}

// postfix folds one accessor onto acc. Accessors must touch the term:
//
//	.ident   attribute access
//	.*       attribute splat
//	[expr]   index access
//	[*]      full splat
//
// The new node takes the position of acc.
func (g *grammar) postfix(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity], acc pc.Token[cmn.Entity], index, attr pc.Parser[cmn.Entity]) (int, pc.Token[cmn.Entity], error) {
	if len(tokens) < 2 {
		return 0, acc, pc.ErrNotMatch
	}

	left := acc.Val.Node
	opAt := func(op ast.Operator) *ast.Node {
		return ast.NewNode(op, tokens[0].Val.Position())
	}
	binary := func(op ast.Operator, right *ast.Node) pc.Token[cmn.Entity] {
		return wrap("postfix", ast.FromNode(ast.BinaryOp{Operator: opAt(op), Left: left, Right: right}, left), acc)[0]
	}
	unary := func(op ast.Operator) pc.Token[cmn.Entity] {
		return wrap("postfix", ast.FromNode(ast.UnaryOp{Operator: opAt(op), Operand: left}, left), acc)[0]
	}

	first, second := tokens[0].Val.Original.Type, tokens[1].Val.Original.Type
	switch {
	case first == tok.DOT && second == tok.MULTIPLY:
		return 2, unary(ast.AttrSplat), nil
	case first == tok.DOT:
		n, out, err := attr(pctx, tokens[1:])
		if err != nil {
			return 0, acc, err
		}
		return 1 + n, binary(ast.AttrAccess, out[0].Val.Node), nil
	case first == tok.OPENED_BRACKET && second == tok.MULTIPLY &&
		len(tokens) > 2 && tokens[2].Val.Original.Type == tok.CLOSED_BRACKET:
		return 3, unary(ast.FullSplat), nil
	case first == tok.OPENED_BRACKET:
		n, out, err := index(pctx, tokens)
		if err != nil {
			return 0, acc, err
		}
		return n, binary(ast.IndexAccess, out[0].Val.Node), nil
	}

	return 0, acc, pc.ErrNotMatch
}

// sub-expression = '(' multispace0 expression multispace0 ')'
func (g *grammar) subExpression() pc.Parser[cmn.Entity] {
	return pc.Trace("sub-expression", pc.Seq(
		pc.Drop(g.match("'('", tok.OPENED_PARENS)), cmn.MSP,
		lazy(&g.expression),
		cmn.MSP, pc.Drop(g.match("')'", tok.CLOSED_PARENS)),
	))
}
