package parser

import (
	"errors"
	"fmt"
	"slices"

	pc "github.com/shibukawa/parsercombinator"
	"github.com/vxl-lang/vxl/ast"
	cmn "github.com/vxl-lang/vxl/parser/parsercommon"
	tok "github.com/vxl-lang/vxl/tokenizer"
)

// DefaultMaxDepth is the nesting limit used when Options.MaxDepth is zero.
const DefaultMaxDepth = 256

var (
	// ErrParse is wrapped by every error returned for malformed input.
	ErrParse = errors.New("parse error")
	// ErrMaxDepth is returned when expressions nest deeper than allowed.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")
)

// Options controls a single parse.
type Options struct {
	MaxDepth int
	Trace    bool
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// Execute parses a full token stream, EOF token included, into a tree.
// Top-level comments are dropped.
func Execute(tokens []tok.Token, opts Options) (ast.Tree, error) {
	g := newGrammar(opts)
	pctx := newParseContext(opts)

	_, parsed, err := g.file(pctx, cmn.ToParserToken(tokens))
	if err != nil || g.critical != nil {
		return nil, g.error(err)
	}

	tree := ast.Tree(cmn.Nodes(parsed))
	if err := tree.Validate(); err != nil {
		return nil, err
	}
	return tree, nil
}

// ParseAttribute parses a single top-level "key = value" binding. The file
// grammar does not accept attributes; this entry point exists for tools
// that read attribute lists line by line.
func ParseAttribute(tokens []tok.Token, opts Options) (*ast.Node, error) {
	g := newGrammar(opts)
	pctx := newParseContext(opts)

	_, parsed, err := pc.Seq(g.attribute, cmn.MSP, g.endOfInput)(pctx, cmn.ToParserToken(tokens))
	if err != nil || g.critical != nil {
		return nil, g.error(err)
	}

	nodes := cmn.Nodes(parsed)
	if len(nodes) != 1 {
		return nil, fmt.Errorf("%w: %w", ErrParse, pc.ErrNotMatch)
	}
	if err := (ast.Tree{nodes[0]}).Validate(); err != nil {
		return nil, err
	}
	return nodes[0], nil
}

// newParseContext runs the alternatives of every Or in order and stops at
// the first match. Nesting is bounded by grammar.guard, so the library's
// own recursion limit is turned off.
func newParseContext(opts Options) *pc.ParseContext[cmn.Entity] {
	pctx := pc.NewParseContext[cmn.Entity]()
	pctx.OrMode = pc.OrModeFast
	pctx.MaxDepth = 0
	pctx.TraceEnable = opts.Trace
	return pctx
}

// grammar holds the rules for one parse together with the state they share:
// nesting depth, the first unrecoverable failure and the furthest token any
// rule failed on.
type grammar struct {
	opts  Options
	depth int

	critical error
	furthest *pc.Token[cmn.Entity]
	expected []string

	terms map[termKey]termResult

	expression  pc.Parser[cmn.Entity]
	term        pc.Parser[cmn.Entity]
	functionArg pc.Parser[cmn.Entity]
	binaryTail  pc.Parser[cmn.Entity]
	ternaryTail pc.Parser[cmn.Entity]
	attribute   pc.Parser[cmn.Entity]
	statement   pc.Parser[cmn.Entity]
}

func newGrammar(opts Options) *grammar {
	g := &grammar{opts: opts, terms: map[termKey]termResult{}}

	g.term = pc.Trace("expr-term", g.memoize(g.guard(g.exprTerm())))
	g.expression = pc.Trace("expression", pc.Or(g.unaryOperation(), g.operationOrTerm))
	g.functionArg = pc.Trace("function-arg", pc.Or(g.option(), g.expression))
	g.binaryTail = g.binaryTailRule()
	g.ternaryTail = g.ternaryTailRule()
	g.attribute = g.attributeRule()
	g.statement = g.statementRule()

	return g
}

// lazy defers reading a rule field until the first call, which lets rules
// refer to each other before all of them are built.
func lazy(p *pc.Parser[cmn.Entity]) pc.Parser[cmn.Entity] {
	return pc.Lazy(func() pc.Parser[cmn.Entity] { return *p })
}

// guard bounds the nesting depth of p. Every recursive path of the
// grammar passes through expr-term, so guarding it is enough.
func (g *grammar) guard(p pc.Parser[cmn.Entity]) pc.Parser[cmn.Entity] {
	return func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) (int, []pc.Token[cmn.Entity], error) {
		if len(tokens) == 0 {
			return 0, nil, pc.ErrNotMatch
		}
		g.depth++
		defer func() { g.depth-- }()
		if g.depth > g.opts.maxDepth() {
			return 0, nil, g.fail(tokens[0], ErrMaxDepth)
		}
		n, out, err := p(pctx, tokens)
		if errors.Is(err, pc.ErrStackOverflow) {
			return 0, nil, g.fail(tokens[0], ErrMaxDepth)
		}
		return n, out, err
	}
}

// termKey identifies an expr-term attempt. Every token slice handed to a
// rule is a suffix of the same stream, so its length names the position.
type termKey struct {
	rest  int
	depth int
}

type termResult struct {
	consumed int
	out      []pc.Token[cmn.Entity]
	err      error
}

// memoize remembers the outcome of p for each position and depth, so a
// failed "if(" re-read by the function rule parses its arguments once.
func (g *grammar) memoize(p pc.Parser[cmn.Entity]) pc.Parser[cmn.Entity] {
	return func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) (int, []pc.Token[cmn.Entity], error) {
		key := termKey{rest: len(tokens), depth: g.depth}
		if r, ok := g.terms[key]; ok {
			return r.consumed, slices.Clone(r.out), r.err
		}
		n, out, err := p(pctx, tokens)
		g.terms[key] = termResult{consumed: n, out: slices.Clone(out), err: err}
		return n, out, err
	}
}

// fail records an unrecoverable error. Only the first one is kept; it is
// reported even if an alternative further up swallowed it.
func (g *grammar) fail(at pc.Token[cmn.Entity], cause error) error {
	if g.critical == nil {
		g.critical = &cmn.ParseError{
			Pos:   at.Val.Original.Position,
			Found: at.Val.Original.Value,
			Err:   fmt.Errorf("%w: %w", ErrParse, cause),
		}
	}
	return fmt.Errorf("%w: %w", pc.ErrCritical, cause)
}

// isCritical reports whether err must stop the enclosing alternatives.
func (g *grammar) isCritical(err error) bool {
	return g.critical != nil || errors.Is(err, pc.ErrCritical) || errors.Is(err, pc.ErrStackOverflow)
}

// expect wraps p so that a mismatch is remembered as the furthest failure.
func (g *grammar) expect(name string, p pc.Parser[cmn.Entity]) pc.Parser[cmn.Entity] {
	return func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) (int, []pc.Token[cmn.Entity], error) {
		n, out, err := p(pctx, tokens)
		if err != nil && len(tokens) > 0 {
			g.miss(name, tokens[0])
		}
		return n, out, err
	}
}

func (g *grammar) miss(name string, at pc.Token[cmn.Entity]) {
	offset := at.Val.Original.Position.Offset
	switch {
	case g.furthest == nil || offset > g.furthest.Val.Original.Position.Offset:
		g.furthest = &at
		g.expected = []string{name}
	case offset == g.furthest.Val.Original.Position.Offset:
		for _, e := range g.expected {
			if e == name {
				return
			}
		}
		g.expected = append(g.expected, name)
	}
}

// error converts the result of a failed parse into a *ParseError.
func (g *grammar) error(err error) error {
	if g.critical != nil {
		return g.critical
	}

	perr := &cmn.ParseError{Err: ErrParse}
	if !errors.Is(err, pc.ErrNotMatch) {
		perr.Err = fmt.Errorf("%w: %w", ErrParse, err)
	}
	if g.furthest != nil {
		perr.Pos = g.furthest.Val.Original.Position
		perr.Found = g.furthest.Val.Original.Value
		perr.Expect(g.expected...)
	}
	return perr
}

// match matches one token of the given types and records misses.
func (g *grammar) match(name string, types ...tok.TokenType) pc.Parser[cmn.Entity] {
	return g.expect(name, cmn.PrimitiveType(name, types...))
}

// kw matches a case-insensitive keyword and records misses.
func (g *grammar) kw(words ...string) pc.Parser[cmn.Entity] {
	return g.expect(fmt.Sprintf("%q", words[0]), cmn.Keyword(words[0], words...))
}

// single wraps a new node positioned at the first token of a rule.
func single(typeName string, token ast.Token, first pc.Token[cmn.Entity]) []pc.Token[cmn.Entity] {
	return []pc.Token[cmn.Entity]{
		cmn.NodeToken(typeName, ast.NewNode(token, first.Val.Position()), first),
	}
}

// wrap is single for a node that was already built.
func wrap(typeName string, node *ast.Node, first pc.Token[cmn.Entity]) []pc.Token[cmn.Entity] {
	return []pc.Token[cmn.Entity]{cmn.NodeToken(typeName, node, first)}
}

// retag renames the output tokens of p so that a later Trans can tell
// them apart.
func retag(typeName string, p pc.Parser[cmn.Entity]) pc.Parser[cmn.Entity] {
	return pc.Trans(p, func(pctx *pc.ParseContext[cmn.Entity], tokens []pc.Token[cmn.Entity]) ([]pc.Token[cmn.Entity], error) {
		results := make([]pc.Token[cmn.Entity], len(tokens))
		for i, token := range tokens {
			token.Type = typeName
			results[i] = token
		}
		return results, nil
	})
}
