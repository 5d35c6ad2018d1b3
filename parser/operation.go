package parser

import (
	"strings"

	pc "github.com/shibukawa/parsercombinator"
	"github.com/vxl-lang/vxl/ast"
	cmn "github.com/vxl-lang/vxl/parser/parsercommon"
	tok "github.com/vxl-lang/vxl/tokenizer"
)

// operatorOf maps the tokens of an operator to its kind. Symbol tokens are
// spelled like the canonical symbols; keyword forms are translated.
func operatorOf(tokens []pc.Token[cmn.Entity]) (ast.Operator, error) {
	first := tokens[0].Val.Original
	if first.Type != tok.IDENTIFIER {
		return ast.ParseOperator(first.Value)
	}
	switch strings.ToLower(first.Value) {
	case "and":
		return ast.And, nil
	case "or":
		return ast.Or, nil
	case "in":
		return ast.In, nil
	case "not":
		if len(tokens) > 1 {
			return ast.NotIn, nil
		}
		return ast.Not, nil
	}
	return ast.ParseOperator(first.Value)
}

// operatorNode builds the operator node positioned at its first token.
func operatorNode(typeName string, p pc.Parser[cmn.Entity]) pc.Parser[cmn.Entity] {
	return pc.Trans(p, func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) ([]pc.Token[cmn.Entity], error) {
		op, err := operatorOf(tokens)
		if err != nil {
			return nil, err
		}
		return single(typeName, op, tokens[0]), nil
	})
}

// sign matches '+' or '-' unless it is glued to a number, in which case
// it belongs to the number literal.
func (g *grammar) sign() pc.Parser[cmn.Entity] {
	return g.expect("sign", func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) (int, []pc.Token[cmn.Entity], error) {
		if len(tokens) == 0 {
			return 0, nil, pc.ErrNotMatch
		}
		if t := tokens[0].Val.Original.Type; t != tok.PLUS && t != tok.MINUS {
			return 0, nil, pc.ErrNotMatch
		}
		if len(tokens) > 1 && tokens[1].Val.Original.Type == tok.NUMBER {
			return 0, nil, pc.ErrNotMatch
		}
		return 1, tokens[:1], nil
	})
}

// unary-operator = sign | '!' | 'not' multispace1
func (g *grammar) unaryOperator() pc.Parser[cmn.Entity] {
	return pc.Trace("unary-operator", operatorNode("operator", pc.Or(
		g.sign(),
		g.match("'!'", tok.BANG),
		pc.Seq(g.kw("not"), cmn.MSP1),
	)))
}

// binary-operator tries the longer and keyword spellings first:
// other, membership, arithmetic, comparison, logic.
func (g *grammar) binaryOperator() pc.Parser[cmn.Entity] {
	return pc.Trace("binary-operator", operatorNode("operator", pc.Or(
		g.match("'++', '--' or '|>'", tok.CONCAT, tok.SUBTRACT, tok.PIPE),
		g.kw("in"),
		pc.Seq(g.kw("not"), cmn.SP1, g.kw("in")),
		g.match("arithmetic operator", tok.PLUS, tok.MINUS, tok.MULTIPLY, tok.DIVIDE, tok.PERCENT, tok.CARET),
		g.match("comparison operator", tok.EQUAL, tok.NOT_EQUAL, tok.LESS_THAN, tok.GREATER_THAN, tok.LESS_EQUAL, tok.GREATER_EQUAL),
		g.match("'&&' or '||'", tok.AND, tok.OR),
		g.kw("and", "or"),
	)))
}

// unary-operation = unary-operator space0 expr-term
func (g *grammar) unaryOperation() pc.Parser[cmn.Entity] {
	return pc.Trace("unary-operation", pc.Trans(
		pc.Seq(g.unaryOperator(), cmn.SP, lazy(&g.term)),
		func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) ([]pc.Token[cmn.Entity], error) {
			op, operand := tokens[0].Val.Node, tokens[1].Val.Node
			return wrap("unary-operation", ast.FromNode(ast.UnaryOp{Operator: op, Operand: operand}, op), tokens[0]), nil
		},
	))
}

// binary-tail = space0 binary-operator space0 expr-term
func (g *grammar) binaryTailRule() pc.Parser[cmn.Entity] {
	return pc.Trace("binary-operation", pc.Seq(cmn.SP, g.binaryOperator(), cmn.SP, lazy(&g.term)))
}

// ternary-tail = space0 '?' space0 expr-term space0 ':' space0 expr-term
func (g *grammar) ternaryTailRule() pc.Parser[cmn.Entity] {
	return pc.Trace("ternary-operation", pc.Seq(
		cmn.SP, pc.Drop(g.match("'?'", tok.QUESTION)), cmn.SP, lazy(&g.term),
		cmn.SP, pc.Drop(g.match("':'", tok.COLON)), cmn.SP, lazy(&g.term),
	))
}

// operationOrTerm parses an expr-term once and then tries the binary and
// ternary continuations on it. This accepts exactly what
// binary | ternary | expr-term accepts, without re-parsing the left term
// for every alternative.
func (g *grammar) operationOrTerm(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) (int, []pc.Token[cmn.Entity], error) {
	consumed, head, err := g.term(pctx, tokens)
	if err != nil {
		return 0, nil, err
	}
	left := head[0]
	rest := tokens[consumed:]

	n, tail, err := g.binaryTail(pctx, rest)
	if err == nil {
		binop := ast.BinaryOp{Operator: tail[0].Val.Node, Left: left.Val.Node, Right: tail[1].Val.Node}
		return consumed + n, wrap("binary-operation", ast.FromNode(binop, left.Val.Node), left), nil
	} else if g.isCritical(err) {
		return 0, nil, err
	}

	n, tail, err = g.ternaryTail(pctx, rest)
	if err == nil {
		cond := ast.Conditional{Condition: left.Val.Node, IfTrue: tail[0].Val.Node, IfFalse: tail[1].Val.Node}
		return consumed + n, wrap("ternary-operation", ast.FromNode(cond, left.Val.Node), left), nil
	} else if g.isCritical(err) {
		return 0, nil, err
	}

	return consumed, head, nil
}
