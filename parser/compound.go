package parser

import (
	pc "github.com/shibukawa/parsercombinator"
	"github.com/vxl-lang/vxl/ast"
	cmn "github.com/vxl-lang/vxl/parser/parsercommon"
	tok "github.com/vxl-lang/vxl/tokenizer"
)

// option = identifier space0 '=' space0 expr-term
func (g *grammar) option() pc.Parser[cmn.Entity] {
	return pc.Trace("option", pc.Trans(
		pc.Seq(g.identifier(), cmn.SP, pc.Drop(g.match("'='", tok.ASSIGN)), cmn.SP, lazy(&g.term)),
		func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) ([]pc.Token[cmn.Entity], error) {
			key, value := tokens[0].Val.Node, tokens[1].Val.Node
			return wrap("option", ast.FromNode(ast.Option{Key: key, Value: value}, key), tokens[0]), nil
		},
	))
}

// attribute = identifier space0 '=' space0 expr-term newline?
func (g *grammar) attributeRule() pc.Parser[cmn.Entity] {
	return pc.Trace("attribute", pc.Trans(
		pc.Seq(
			g.identifier(), cmn.SP, pc.Drop(g.match("'='", tok.ASSIGN)), cmn.SP, lazy(&g.term),
			pc.Drop(pc.Optional(cmn.Newline)),
		),
		func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) ([]pc.Token[cmn.Entity], error) {
			ident, expr := tokens[0].Val.Node, tokens[1].Val.Node
			return wrap("attribute", ast.FromNode(ast.Attribute{Ident: ident, Expr: expr}, ident), tokens[0]), nil
		},
	))
}

// function = identifier ('.' identifier)? '(' args? ')'
//
// args = function-arg (',' function-arg)* '...'?
//
// A trailing '...' spreads the last argument.
func (g *grammar) function() pc.Parser[cmn.Entity] {
	args := pc.Seq(
		retag("arg", lazy(&g.functionArg)),
		pc.ZeroOrMore("function-args", pc.Seq(
			cmn.MSP, pc.Drop(g.match("','", tok.COMMA)), cmn.MSP,
			retag("arg", lazy(&g.functionArg)),
		)),
		pc.Optional(pc.Seq(cmn.MSP, g.match("'...'", tok.ELIPSIS))),
	)

	return pc.Trace("function", pc.Trans(
		pc.Seq(
			retag("name", g.identifier()),
			pc.Optional(pc.Seq(pc.Drop(cmn.Dot), retag("sub", g.identifier()))),
			pc.Drop(g.match("'('", tok.OPENED_PARENS)), cmn.MSP,
			pc.Optional(args),
			cmn.MSP, pc.Drop(g.match("')'", tok.CLOSED_PARENS)),
		),
		func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) ([]pc.Token[cmn.Entity], error) {
			name := tokens[0].Val.Node
			fn := ast.Function{Name: name}
			for _, token := range tokens[1:] {
				switch {
				case token.Type == "sub":
					fn.Subfunction = token.Val.Node
				case token.Type == "arg":
					fn.Args = append(fn.Args, token.Val.Node)
				case token.Val.Original.Type == tok.ELIPSIS:
					last := fn.Args[len(fn.Args)-1]
					op := ast.NewNode(ast.Elipsis, token.Val.Position())
					fn.Args[len(fn.Args)-1] = ast.FromNode(ast.UnaryOp{Operator: op, Operand: last}, last)
				}
			}
			return wrap("function", ast.FromNode(fn, name), tokens[0]), nil
		},
	))
}

// if = 'if' '(' expression ',' expression (',' expression)? ')'
//
// The keyword has to touch the parenthesis.
func (g *grammar) ifStatement() pc.Parser[cmn.Entity] {
	comma := pc.Seq(cmn.MSP, pc.Drop(g.match("','", tok.COMMA)), cmn.MSP)
	return pc.Trace("if-statement", pc.Trans(
		pc.Seq(
			g.kw("if"),
			pc.Drop(g.match("'('", tok.OPENED_PARENS)), cmn.MSP,
			lazy(&g.expression),
			comma, lazy(&g.expression),
			pc.Optional(pc.Seq(comma, lazy(&g.expression))),
			cmn.MSP, pc.Drop(g.match("')'", tok.CLOSED_PARENS)),
		),
		func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) ([]pc.Token[cmn.Entity], error) {
			cond := ast.Conditional{Condition: tokens[1].Val.Node, IfTrue: tokens[2].Val.Node}
			if len(tokens) > 3 {
				cond.IfFalse = tokens[3].Val.Node
			}
			return single("if-statement", cond, tokens[0]), nil
		},
	))
}

// for-loop = tuple-for-loop | object-for-loop
func (g *grammar) forLoop() pc.Parser[cmn.Entity] {
	return pc.Trace("for-loop", pc.Or(g.tupleForLoop(), g.objectForLoop()))
}

// for-intro = 'for' bind (',' bind)* 'in' expression ':'
//
// Binds are expr-terms; a full expression would read "x in xs" as a
// membership test.
func (g *grammar) forIntro() pc.Parser[cmn.Entity] {
	bind := retag("bind", lazy(&g.term))
	return pc.Seq(
		cmn.SP, pc.Drop(g.kw("for")), cmn.SP1,
		bind,
		pc.ZeroOrMore("for-binds", pc.Seq(pc.Drop(g.match("','", tok.COMMA)), cmn.SP, bind)),
		cmn.SP1, pc.Drop(g.kw("in")), cmn.SP1,
		retag("source", lazy(&g.expression)),
		cmn.SP1, pc.Drop(g.match("':'", tok.COLON)), cmn.SP1,
	)
}

// for-cond = 'if' expression
func (g *grammar) forCond() pc.Parser[cmn.Entity] {
	return pc.Optional(pc.Seq(
		cmn.SP1, pc.Drop(g.kw("if")), cmn.SP1,
		retag("cond", lazy(&g.expression)),
	))
}

// tuple-for-loop = '[' for-intro expression for-cond? ']'
func (g *grammar) tupleForLoop() pc.Parser[cmn.Entity] {
	return pc.Trace("tuple-for-loop", pc.Trans(
		pc.Seq(
			cmn.BracketOpen,
			g.forIntro(),
			retag("body", lazy(&g.expression)),
			g.forCond(),
			cmn.SP, pc.Drop(g.match("']'", tok.CLOSED_BRACKET)),
		),
		func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) ([]pc.Token[cmn.Entity], error) {
			var loop ast.TupleForLoop
			for _, token := range tokens[1:] {
				switch token.Type {
				case "bind":
					loop.Binds = append(loop.Binds, token.Val.Node)
				case "source":
					loop.Expr = token.Val.Node
				case "body":
					loop.Body = token.Val.Node
				case "cond":
					loop.Cond = token.Val.Node
				}
			}
			return single("tuple-for-loop", loop, tokens[0]), nil
		},
	))
}

// object-for-loop = '{' for-intro expression '=>' expression '...'? for-cond? '}'
//
// A '...' right after the value groups values by key.
func (g *grammar) objectForLoop() pc.Parser[cmn.Entity] {
	return pc.Trace("object-for-loop", pc.Trans(
		pc.Seq(
			cmn.BraceOpen,
			g.forIntro(),
			retag("key", lazy(&g.expression)),
			cmn.SP, pc.Drop(g.match("'=>'", tok.ARROW)), cmn.SP,
			retag("value", lazy(&g.expression)),
			pc.Optional(cmn.Elipsis),
			g.forCond(),
			cmn.SP, pc.Drop(g.match("'}'", tok.CLOSED_BRACE)),
		),
		func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) ([]pc.Token[cmn.Entity], error) {
			var loop ast.ObjectForLoop
			for _, token := range tokens[1:] {
				switch token.Type {
				case "bind":
					loop.Binds = append(loop.Binds, token.Val.Node)
				case "source":
					loop.Expr = token.Val.Node
				case "key":
					loop.Key = token.Val.Node
				case "value":
					loop.Value = token.Val.Node
				case "cond":
					loop.Cond = token.Val.Node
				default:
					loop.Grouping = loop.Grouping || token.Val.Original.Type == tok.ELIPSIS
				}
			}
			return single("object-for-loop", loop, tokens[0]), nil
		},
	))
}

// list = '[' (expression (',' expression)*)? ','? ']'
//
// Line breaks are allowed around items and separators.
func (g *grammar) list() pc.Parser[cmn.Entity] {
	item := retag("item", lazy(&g.expression))
	return pc.Trace("list", pc.Trans(
		pc.Seq(
			cmn.BracketOpen, cmn.MSP,
			pc.Optional(pc.Seq(
				item,
				pc.ZeroOrMore("list-items", pc.Seq(cmn.MSP, pc.Drop(g.match("','", tok.COMMA)), cmn.MSP, item)),
			)),
			cmn.MSP, pc.Drop(pc.Optional(cmn.Comma)),
			cmn.MSP, pc.Drop(g.match("']'", tok.CLOSED_BRACKET)),
		),
		func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) ([]pc.Token[cmn.Entity], error) {
			items := ast.List{}
			for _, token := range tokens[1:] {
				if token.Type == "item" {
					items = append(items, token.Val.Node)
				}
			}
			return single("list", items, tokens[0]), nil
		},
	))
}
