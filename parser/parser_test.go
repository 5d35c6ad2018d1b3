package parser

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
	"github.com/vxl-lang/vxl/ast"
	cmn "github.com/vxl-lang/vxl/parser/parsercommon"
	tok "github.com/vxl-lang/vxl/tokenizer"
)

func parse(t *testing.T, src string, opts Options) (ast.Tree, error) {
	t.Helper()
	tokens, err := tok.NewTokenizer(src).AllTokens()
	assert.NoError(t, err)
	return Execute(tokens, opts)
}

func assertTree(t *testing.T, expected, actual ast.Tree) {
	t.Helper()
	assert.True(t, ast.SameTree(expected, actual), "expected:\n%s\nactual:\n%s", expected, actual)
}

func dec(s string) ast.N {
	return ast.NewDecimal(decimal.RequireFromString(s))
}

var (
	ident = ast.IdentNode
	num   = ast.IntNode
	fn    = ast.FunctionNode
	bin   = ast.BinaryNode
	unary = ast.UnaryNode
)

func TestNumbers(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected *ast.Node
	}{
		{name: "int", src: "47", expected: num(47)},
		{name: "decimal", src: "17.3809", expected: ast.DecimalNode("17.3809")},
		{name: "decimal keeps variant", src: "1.0", expected: ast.DecimalNode("1.0")},
		{name: "grouped int", src: "1_000_000_00", expected: num(100000000)},
		{name: "grouped decimal", src: "1_000.0_100_001", expected: ast.DecimalNode("1000.0100001")},
		{name: "negative int", src: "-38", expected: num(-38)},
		{name: "negative decimal", src: "-471.399", expected: ast.DecimalNode("-471.399")},
		{name: "decimal narrowed by exponent", src: "1.7e8", expected: num(170000000)},
		{name: "upper case exponent", src: "-17E10", expected: num(-170000000000)},
		{name: "negative exponent", src: "8.6e-6", expected: ast.DecimalNode("0.0000086")},
		{name: "int with negative exponent", src: "1e-4", expected: ast.DecimalNode("0.0001")},
		{name: "sign applied after exponent", src: "-1e-4", expected: ast.DecimalNode("-0.0001")},
		{name: "grouped exponent", src: "-1e0_1", expected: num(-10)},
		{name: "explicit plus", src: "+5", expected: num(5)},
		{name: "percentage", src: "3%", expected: ast.PercentNode(ast.NewInt(3))},
		{name: "decimal percentage", src: "1.23%", expected: ast.PercentNode(dec("1.23"))},
		{name: "negative percentage", src: "-1_000e-4%", expected: ast.PercentNode(dec("-0.1"))},
		{name: "percentage with exponent", src: "-1e0_1%", expected: ast.PercentNode(ast.NewInt(-10))},
		{name: "long fraction", src: "0.3333333333333333%", expected: ast.PercentNode(dec("0.3333333333333333"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := parse(t, tt.src, Options{})
			assert.NoError(t, err)
			assertTree(t, ast.Tree{tt.expected}, tree)
		})
	}
}

func TestNumberErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected error
	}{
		{name: "exponent too large", src: "1e29", expected: ErrExponentRange},
		{name: "exponent too small", src: "1e-29", expected: ErrExponentRange},
		{name: "int overflow", src: "9223372036854775808", expected: ErrNumberOverflow},
		{name: "int overflow by exponent", src: "1e19", expected: ErrNumberOverflow},
		{name: "inside function", src: "fun(1, 2e30)", expected: ErrExponentRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.src, Options{})
			assert.IsError(t, err, tt.expected)
			assert.IsError(t, err, ErrParse)
		})
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected *ast.Node
	}{
		{name: "true", src: "true", expected: ast.BoolNode(true)},
		{name: "upper case false", src: "FALSE", expected: ast.BoolNode(false)},
		{name: "none", src: "none", expected: ast.NoneNode()},
		{name: "capitalized none is an identifier", src: "None", expected: ident("none")},
		{name: "empty string", src: `""`, expected: ast.StringNode("")},
		{name: "string keeps escapes", src: `"a \"quoted\"\tstring"`, expected: ast.StringNode(`a \"quoted\"\tstring`)},
		{name: "address", src: "0xcac725bef4f114f728cbcfd744a731c2a463c3fc", expected: ast.AddressNode("0xcac725bef4f114f728cbcfd744a731c2a463c3fc")},
		{name: "short hex is an identifier", src: "0x", expected: ident("0x")},
		{name: "identifier", src: "foo_bar", expected: ident("foo_bar")},
		{name: "identifier is lower cased", src: "FooBar", expected: ident("foobar")},
		{name: "digit led identifier", src: "1inch", expected: ident("1inch")},
		{name: "digit led identifier with suffix", src: "1foo_v1", expected: ident("1foo_v1")},
		{name: "keyword prefix is an identifier", src: "trueish", expected: ident("trueish")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := parse(t, tt.src, Options{})
			assert.NoError(t, err)
			assertTree(t, ast.Tree{tt.expected}, tree)
		})
	}
}

func TestOperations(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected *ast.Node
	}{
		{name: "addition", src: "1 + 2", expected: bin(num(1), "+", num(2))},
		{name: "no spaces", src: "1+2", expected: bin(num(1), "+", num(2))},
		{name: "subtraction of literal", src: "a - 1", expected: bin(ident("a"), "-", num(1))},
		{name: "modulus", src: "3 % 2", expected: bin(num(3), "%", num(2))},
		{name: "exponent", src: "2 ^ 8", expected: bin(num(2), "^", num(8))},
		{name: "keyword or", src: "true or false", expected: bin(ast.BoolNode(true), "||", ast.BoolNode(false))},
		{name: "keyword and", src: "a AND b", expected: bin(ident("a"), "&&", ident("b"))},
		{name: "symbol and", src: "a && b", expected: bin(ident("a"), "&&", ident("b"))},
		{name: "comparison", src: "fun() >= 1", expected: bin(fn("fun", ""), ">=", num(1))},
		{name: "not equal", src: "a != b", expected: bin(ident("a"), "!=", ident("b"))},
		{name: "membership", src: "x in xs", expected: bin(ident("x"), "in", ident("xs"))},
		{name: "negated membership", src: "x not in xs", expected: bin(ident("x"), "not in", ident("xs"))},
		{name: "concatenate", src: "[1] ++ [2]", expected: bin(ast.ListNode(num(1)), "++", ast.ListNode(num(2)))},
		{name: "list subtract", src: "a -- b", expected: bin(ident("a"), "--", ident("b"))},
		{name: "pipe", src: "a |> b()", expected: bin(ident("a"), "|>", fn("b", ""))},
		{name: "parenthesized chain", src: "(a + b) + c", expected: bin(bin(ident("a"), "+", ident("b")), "+", ident("c"))},
		{name: "bang", src: "! false", expected: unary("!", ast.BoolNode(false))},
		{name: "bang without space", src: "!x", expected: unary("!", ident("x"))},
		{name: "not keyword", src: "not x", expected: unary("!", ident("x"))},
		{name: "negated identifier", src: "-a", expected: unary("-", ident("a"))},
		{name: "sign with space", src: "- 1", expected: unary("-", num(1))},
		{name: "ternary", src: "a ? b : c", expected: ast.ConditionalNode(ident("a"), ident("b"), ident("c"))},
		{name: "ternary without spaces", src: "foo()?true:false", expected: ast.ConditionalNode(fn("foo", ""), ast.BoolNode(true), ast.BoolNode(false))},
		{
			name:     "list concatenation with mixed numbers",
			src:      "[1, 2.0, 3%] ++ [1, 2.0, 3%]",
			expected: bin(
				ast.ListNode(num(1), ast.DecimalNode("2.0"), ast.PercentNode(ast.NewInt(3))),
				"++",
				ast.ListNode(num(1), ast.DecimalNode("2.0"), ast.PercentNode(ast.NewInt(3))),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := parse(t, tt.src, Options{})
			assert.NoError(t, err)
			assertTree(t, ast.Tree{tt.expected}, tree)
		})
	}
}

func TestPostfix(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected *ast.Node
	}{
		{name: "attribute", src: "var.foo", expected: bin(ident("var"), ".", ident("foo"))},
		{name: "left associative", src: "var.foo.bar", expected: bin(bin(ident("var"), ".", ident("foo")), ".", ident("bar"))},
		{name: "index", src: "items[0]", expected: bin(ident("items"), "[", num(0))},
		{name: "index expression", src: "items[ i + 1 ]", expected: bin(ident("items"), "[", bin(ident("i"), "+", num(1)))},
		{name: "attribute splat", src: "var.*", expected: unary(".*", ident("var"))},
		{name: "attribute splat chained", src: "var.*.foo", expected: bin(unary(".*", ident("var")), ".", ident("foo"))},
		{name: "full splat", src: "list[*]", expected: unary("[*]", ident("list"))},
		{name: "full splat chained", src: "list[*].name[0]", expected: bin(bin(unary("[*]", ident("list")), ".", ident("name")), "[", num(0))},
		{name: "on function result", src: "fun().foo", expected: bin(fn("fun", ""), ".", ident("foo"))},
		{name: "on sub expression", src: "(a).b", expected: bin(ident("a"), ".", ident("b"))},
		{name: "in binary operation", src: "a.b + c[1]", expected: bin(bin(ident("a"), ".", ident("b")), "+", bin(ident("c"), "[", num(1)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := parse(t, tt.src, Options{})
			assert.NoError(t, err)
			assertTree(t, ast.Tree{tt.expected}, tree)
		})
	}
}

func TestFunctions(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected *ast.Node
	}{
		{name: "no args", src: "fun()", expected: fn("fun", "")},
		{name: "underscore", src: "_fun()", expected: fn("_fun", "")},
		{name: "subfunction", src: "fun.sub()", expected: fn("fun", "sub")},
		{name: "case folded", src: "FuN.sUB()", expected: fn("fun", "sub")},
		{name: "digit led arg", src: "fun(1foo_v1)", expected: fn("fun", "", ident("1foo_v1"))},
		{name: "args", src: "fun.sub(1, 2, 3)", expected: fn("fun", "sub", num(1), num(2), num(3))},
		{name: "spaced args", src: "fun.sub( 1 , 2 , 3 )", expected: fn("fun", "sub", num(1), num(2), num(3))},
		{name: "percentage arg", src: "_fun.sub(1, 2%, 3)", expected: fn("_fun", "sub", num(1), ast.PercentNode(ast.NewInt(2)), num(3))},
		{name: "unary arg", src: "foo(!false)", expected: fn("foo", "", unary("!", ast.BoolNode(false)))},
		{name: "option", src: "fun(1, foo=123)", expected: fn("fun", "", num(1), ast.OptionNode("foo", num(123)))},
		{name: "option with spaces", src: "fun(foo = -193.5)", expected: fn("fun", "", ast.OptionNode("foo", ast.DecimalNode("-193.5")))},
		{name: "option case folded", src: "fun(TEST_1=true)", expected: fn("fun", "", ast.OptionNode("test_1", ast.BoolNode(true)))},
		{name: "option with attribute", src: "fun(testing=var.foo)", expected: fn("fun", "", ast.OptionNode("testing", bin(ident("var"), ".", ident("foo"))))},
		{
			name: "nested",
			src:  `fun.sub(1.0, foo=fun2.sub("thing", foo2=fun3(false)))`,
			expected: fn("fun", "sub",
				ast.DecimalNode("1.0"),
				ast.OptionNode("foo", fn("fun2", "sub",
					ast.StringNode("thing"),
					ast.OptionNode("foo2", fn("fun3", "", ast.BoolNode(false))),
				)),
			),
		},
		{
			name:     "address and hex identifier",
			src:      "fun.sub(123, 0xcac725bef4f114f728cbcfd744a731c2a463c3fc, 0x)",
			expected: fn("fun", "sub", num(123), ast.AddressNode("0xcac725bef4f114f728cbcfd744a731c2a463c3fc"), ident("0x")),
		},
		{name: "double parens", src: "fun((1 + 1))", expected: fn("fun", "", bin(num(1), "+", num(1)))},
		{name: "operation arg", src: "fun(1 < 2)", expected: fn("fun", "", bin(num(1), "<", num(2)))},
		{
			name: "nested operation",
			src:  "fun.sub(fun2.sub(1 * 100.01) > 100.0)",
			expected: fn("fun", "sub", bin(
				fn("fun2", "sub", bin(num(1), "*", ast.DecimalNode("100.01"))),
				">",
				ast.DecimalNode("100.0"),
			)),
		},
		{
			name:     "if arg",
			src:      "fun.sub(if(foo(), true, false))",
			expected: fn("fun", "sub", ast.ConditionalNode(fn("foo", ""), ast.BoolNode(true), ast.BoolNode(false))),
		},
		{
			name:     "ternary arg",
			src:      "fun.sub(foo() ? true : false)",
			expected: fn("fun", "sub", ast.ConditionalNode(fn("foo", ""), ast.BoolNode(true), ast.BoolNode(false))),
		},
		{
			name:     "multiline",
			src:      "fun.sub(\n\t123,\n\tfalse,\n\t\"vektor\",\n\tfoo() ? true : false)",
			expected: fn("fun", "sub", num(123), ast.BoolNode(false), ast.StringNode("vektor"), ast.ConditionalNode(fn("foo", ""), ast.BoolNode(true), ast.BoolNode(false))),
		},
		{name: "keyword prefixed identifiers", src: "fun(not_or_my_label, and_label, in_my_label)", expected: fn("fun", "", ident("not_or_my_label"), ident("and_label"), ident("in_my_label"))},
		{name: "function named not", src: "fun(not(not_my_label))", expected: fn("fun", "", fn("not", "", ident("not_my_label")))},
		{name: "elipsis", src: "bar([1,2,3]...)", expected: fn("bar", "", unary("...", ast.ListNode(num(1), num(2), num(3))))},
		{name: "elipsis on last arg", src: "bar(a, b ...)", expected: fn("bar", "", ident("a"), unary("...", ident("b")))},
		{
			name:     "end to end",
			src:      "fun.sub(123, foo=321, bar=false)",
			expected: fn("fun", "sub", num(123), ast.OptionNode("foo", num(321)), ast.OptionNode("bar", ast.BoolNode(false))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := parse(t, tt.src, Options{})
			assert.NoError(t, err)
			assertTree(t, ast.Tree{tt.expected}, tree)
		})
	}
}

func TestConditionals(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected *ast.Node
	}{
		{name: "three args", src: "if(fun(), foo(), bar())", expected: ast.ConditionalNode(fn("fun", ""), fn("foo", ""), fn("bar", ""))},
		{name: "capitalized", src: "If(fun(), foo())", expected: ast.ConditionalNode(fn("fun", ""), fn("foo", ""), nil)},
		{name: "literal condition", src: "if(true, foo(), bar())", expected: ast.ConditionalNode(ast.BoolNode(true), fn("foo", ""), fn("bar", ""))},
		{name: "two args", src: "if(foo(), false)", expected: ast.ConditionalNode(fn("foo", ""), ast.BoolNode(false), nil)},
		{
			name: "nested parens",
			src:  "if(((1 + 1) >= 2), foo(123))",
			expected: ast.ConditionalNode(
				bin(bin(num(1), "+", num(1)), ">=", num(2)),
				fn("foo", "", num(123)),
				nil,
			),
		},
		{name: "multiline", src: "if(true,\n  1,\n    2\n)", expected: ast.ConditionalNode(ast.BoolNode(true), num(1), num(2))},
		{name: "tabs", src: "if(\n\ttrue,\n\tfoo(),\n\tnone)", expected: ast.ConditionalNode(ast.BoolNode(true), fn("foo", ""), ast.NoneNode())},
		{
			name: "end to end",
			src:  "if(2 >= 1, fun2(), fun3(opt=1))",
			expected: ast.ConditionalNode(
				bin(num(2), ">=", num(1)),
				fn("fun2", ""),
				fn("fun3", "", ast.OptionNode("opt", num(1))),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := parse(t, tt.src, Options{})
			assert.NoError(t, err)
			assertTree(t, ast.Tree{tt.expected}, tree)
		})
	}
}

func TestLists(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected *ast.Node
	}{
		{name: "empty", src: "[]", expected: ast.ListNode()},
		{name: "empty with space", src: "[ ]", expected: ast.ListNode()},
		{name: "items", src: "[1,2,3]", expected: ast.ListNode(num(1), num(2), num(3))},
		{name: "trailing comma", src: "[1,2,3,]", expected: ast.ListNode(num(1), num(2), num(3))},
		{name: "spaced", src: "[ 1 , 2 ]", expected: ast.ListNode(num(1), num(2))},
		{name: "multiline", src: "[\n  1,\n  \"two\",\n]", expected: ast.ListNode(num(1), ast.StringNode("two"))},
		{name: "nested", src: "[[1], []]", expected: ast.ListNode(ast.ListNode(num(1)), ast.ListNode())},
		{name: "expression items", src: "[a + 1, !b, c ? d : e]", expected: ast.ListNode(
			bin(ident("a"), "+", num(1)),
			unary("!", ident("b")),
			ast.ConditionalNode(ident("c"), ident("d"), ident("e")),
		)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := parse(t, tt.src, Options{})
			assert.NoError(t, err)
			assertTree(t, ast.Tree{tt.expected}, tree)
		})
	}
}

func TestForLoops(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected *ast.Node
	}{
		{
			name: "tuple",
			src:  "[for x in xs : x * 2]",
			expected: &ast.Node{Token: ast.TupleForLoop{
				Binds: []*ast.Node{ident("x")},
				Expr:  ident("xs"),
				Body:  bin(ident("x"), "*", num(2)),
			}},
		},
		{
			name: "tuple with condition",
			src:  "[ for i, v in items() : v.amount if v.amount > 0 ]",
			expected: &ast.Node{Token: ast.TupleForLoop{
				Binds: []*ast.Node{ident("i"), ident("v")},
				Expr:  fn("items", ""),
				Body:  bin(ident("v"), ".", ident("amount")),
				Cond:  bin(bin(ident("v"), ".", ident("amount")), ">", num(0)),
			}},
		},
		{
			name: "object",
			src:  "{for k, v in pairs : k => v}",
			expected: &ast.Node{Token: ast.ObjectForLoop{
				Binds: []*ast.Node{ident("k"), ident("v")},
				Expr:  ident("pairs"),
				Key:   ident("k"),
				Value: ident("v"),
			}},
		},
		{
			name: "object grouping with condition",
			src:  "{for k, v in pairs : k => v... if v > 0}",
			expected: &ast.Node{Token: ast.ObjectForLoop{
				Binds:    []*ast.Node{ident("k"), ident("v")},
				Expr:     ident("pairs"),
				Key:      ident("k"),
				Value:    ident("v"),
				Grouping: true,
				Cond:     bin(ident("v"), ">", num(0)),
			}},
		},
		{
			name: "keyword case",
			src:  "[FOR x IN xs : x IF x]",
			expected: &ast.Node{Token: ast.TupleForLoop{
				Binds: []*ast.Node{ident("x")},
				Expr:  ident("xs"),
				Body:  ident("x"),
				Cond:  ident("x"),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := parse(t, tt.src, Options{})
			assert.NoError(t, err)
			assertTree(t, ast.Tree{tt.expected}, tree)
		})
	}
}

func TestFile(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected ast.Tree
	}{
		{name: "single", src: "false", expected: ast.Tree{ast.BoolNode(false)}},
		{name: "trailing comment", src: "fun() # comment", expected: ast.Tree{fn("fun", "")}},
		{name: "comment on next line", src: "fun()\n            # comment", expected: ast.Tree{fn("fun", "")}},
		{name: "trailing spaces", src: "fun()    ", expected: ast.Tree{fn("fun", "")}},
		{name: "semicolon and comment", src: "fun(); # comment", expected: ast.Tree{fn("fun", "")}},
		{name: "semicolon and tight comment", src: "fun();#comment", expected: ast.Tree{fn("fun", "")}},
		{name: "semicolon then comment line", src: "fun();\n            #comment", expected: ast.Tree{fn("fun", "")}},
		{name: "spaced semicolon", src: "fun()    ;", expected: ast.Tree{fn("fun", "")}},
		{name: "blank lines", src: "\n\n fun() \n\n", expected: ast.Tree{fn("fun", "")}},
		{name: "semicolons", src: "fun(); fun2();", expected: ast.Tree{fn("fun", ""), fn("fun2", "")}},
		{name: "newline", src: "fun()\nfun2()", expected: ast.Tree{fn("fun", ""), fn("fun2", "")}},
		{name: "windows newline", src: "fun()\r\nfun2()", expected: ast.Tree{fn("fun", ""), fn("fun2", "")}},
		{name: "semicolon and newline", src: "fun();\nfun2();", expected: ast.Tree{fn("fun", ""), fn("fun2", "")}},
		{name: "mixed terminators", src: "fun();\nfun2()", expected: ast.Tree{fn("fun", ""), fn("fun2", "")}},
		{name: "only comment", src: "# nothing here", expected: ast.Tree{}},
		{
			name: "program",
			src: `fun.sub(1, true) # comment 1

          1dentifier

          1 + 3_000.0_0_01 # comment 2

          # comment 3

          if(2 >= 1, fun2(), fun3(opt=1))#comment 4`,
			expected: ast.Tree{
				fn("fun", "sub", num(1), ast.BoolNode(true)),
				ident("1dentifier"),
				bin(num(1), "+", ast.DecimalNode("3000.0001")),
				ast.ConditionalNode(bin(num(2), ">=", num(1)), fn("fun2", ""), fn("fun3", "", ast.OptionNode("opt", num(1)))),
			},
		},
		{
			name: "multiline program",
			src: `fun.sub(
            1,
            true,
            1foo_v1
          )

          1 + 3%

          if(
            2 >= 1,
            fun2(),
            fun3(opt=1)
          )`,
			expected: ast.Tree{
				fn("fun", "sub", num(1), ast.BoolNode(true), ident("1foo_v1")),
				bin(num(1), "+", ast.PercentNode(ast.NewInt(3))),
				ast.ConditionalNode(bin(num(2), ">=", num(1)), fn("fun2", ""), fn("fun3", "", ast.OptionNode("opt", num(1)))),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := parse(t, tt.src, Options{})
			assert.NoError(t, err)
			assertTree(t, tt.expected, tree)
		})
	}
}

func TestFileInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "two calls on one line", src: "fun() fun2()"},
		{name: "chained binary operation", src: "a + b + c"},
		{name: "space before percent", src: "3 %"},
		{name: "empty input", src: ""},
		{name: "only spaces", src: "  \n "},
		{name: "unclosed call", src: "fun(1, 2"},
		{name: "unclosed list", src: "[1, 2"},
		{name: "space before paren", src: "fun ()"},
		{name: "spaced postfix", src: "var .foo"},
		{name: "missing ternary branch", src: "a ? b"},
		{name: "elipsis without args", src: "fun(...)"},
		{name: "for without colon", src: "[for x in xs x]"},
		{name: "attribute at top level", src: "a = 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.src, Options{})
			assert.Error(t, err)
			assert.IsError(t, err, ErrParse)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := parse(t, "fun() fun2()", Options{})
	assert.Error(t, err)

	perr, ok := cmn.AsParseError(err)
	assert.True(t, ok)
	assert.Equal(t, 6, perr.Pos.Offset)
	assert.Equal(t, 1, perr.Pos.Line)
	assert.Equal(t, 7, perr.Pos.Column)
	assert.Equal(t, "fun2", perr.Found)
	assert.SliceContains(t, perr.Expected, "end of input")
	assert.SliceContains(t, perr.Expected, "';'")
}

func TestPositions(t *testing.T) {
	src := "foo\n  bar.baz\nif(x, 1)\n  [1] ++ y"
	tree, err := parse(t, src, Options{})
	assert.NoError(t, err)
	assert.Equal(t, 4, len(tree))

	tests := []struct {
		node     *ast.Node
		expected ast.Position
	}{
		{node: tree[0], expected: ast.Position{Offset: 0, Line: 1, Column: 1}},
		{node: tree[1], expected: ast.Position{Offset: 6, Line: 2, Column: 3}},
		{node: tree[1].Token.(ast.BinaryOp).Right, expected: ast.Position{Offset: 10, Line: 2, Column: 7}},
		{node: tree[1].Token.(ast.BinaryOp).Operator, expected: ast.Position{Offset: 9, Line: 2, Column: 6}},
		{node: tree[2], expected: ast.Position{Offset: 14, Line: 3, Column: 1}},
		{node: tree[2].Token.(ast.Conditional).Condition, expected: ast.Position{Offset: 17, Line: 3, Column: 4}},
		{node: tree[3], expected: ast.Position{Offset: 25, Line: 4, Column: 3}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.node.Position)
	}
}

func TestMaxDepth(t *testing.T) {
	_, err := parse(t, "((((1))))", Options{MaxDepth: 3})
	assert.IsError(t, err, ErrMaxDepth)
	assert.IsError(t, err, ErrParse)

	tree, err := parse(t, "((1))", Options{MaxDepth: 3})
	assert.NoError(t, err)
	assertTree(t, ast.Tree{num(1)}, tree)

	_, err = parse(t, "[[[[[[x]]]]]]", Options{MaxDepth: 4})
	assert.IsError(t, err, ErrMaxDepth)
}

func TestDefaultMaxDepth(t *testing.T) {
	nest := func(open, close string, n int) string {
		return strings.Repeat(open, n) + "1" + strings.Repeat(close, n)
	}

	tests := []struct {
		name    string
		src     string
		tooDeep bool
	}{
		{name: "200 parens", src: nest("(", ")", 200)},
		{name: "200 lists", src: nest("[", "]", 200)},
		{name: "200 calls", src: nest("f(", ")", 200)},
		{name: "300 parens", src: nest("(", ")", 300), tooDeep: true},
		{name: "300 lists", src: nest("[", "]", 300), tooDeep: true},
		{name: "5000 parens", src: nest("(", ")", 5000), tooDeep: true},
		{name: "5000 unclosed parens", src: strings.Repeat("(", 5000), tooDeep: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.src, Options{})
			if tt.tooDeep {
				assert.IsError(t, err, ErrMaxDepth)
				assert.IsError(t, err, ErrParse)
				return
			}
			assert.NoError(t, err)
		})
	}

	tree, err := parse(t, nest("(", ")", DefaultMaxDepth-1), Options{})
	assert.NoError(t, err)
	assertTree(t, ast.Tree{num(1)}, tree)

	_, err = parse(t, nest("(", ")", 600), Options{MaxDepth: 1000})
	assert.NoError(t, err)
}

func TestNestedConditionals(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		valid bool
	}{
		{name: "closed", src: strings.Repeat("if(c, ", 40) + "x" + strings.Repeat(", y)", 40), valid: true},
		{name: "closed in arguments", src: strings.Repeat("f(if(c, ", 30) + "x" + strings.Repeat(", y))", 30), valid: true},
		{name: "unclosed", src: strings.Repeat("if(1, ", 40) + "x"},
		{name: "unclosed without else", src: strings.Repeat("if(a, b, if(c, ", 20) + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()
			tree, err := parse(t, tt.src, Options{})
			elapsed := time.Since(start)

			assert.True(t, elapsed < 2*time.Second, "took %s", elapsed)
			if !tt.valid {
				assert.IsError(t, err, ErrParse)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 1, len(tree))
		})
	}

	tree, err := parse(t, "if(c, if(d, x, y), z)", Options{})
	assert.NoError(t, err)
	expected := ast.Tree{ast.ConditionalNode(
		ident("c"),
		ast.ConditionalNode(ident("d"), ident("x"), ident("y")),
		ident("z"),
	)}
	assertTree(t, expected, tree)
}

func TestParseIsSilent(t *testing.T) {
	sources := []string{
		"a; # note",
		"true(1)",
		"fee(none)\n[1, 2]\n",
		"if(c, x) + 1",
		"a = 1",
	}

	r, w, err := os.Pipe()
	assert.NoError(t, err)
	stderr := os.Stderr
	os.Stderr = w
	for _, src := range sources {
		tokens, err := tok.NewTokenizer(src).AllTokens()
		if err == nil {
			_, _ = Execute(tokens, Options{})
		}
	}
	os.Stderr = stderr
	assert.NoError(t, w.Close())

	output, err := io.ReadAll(r)
	assert.NoError(t, err)
	assert.Equal(t, "", string(output))
}

func TestParseAttribute(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected *ast.Node
	}{
		{name: "boolean", src: "test_1=true", expected: &ast.Node{Token: ast.Attribute{Ident: ident("test_1"), Expr: ast.BoolNode(true)}}},
		{name: "spaced decimal", src: "another_test = -193.5", expected: &ast.Node{Token: ast.Attribute{Ident: ident("another_test"), Expr: ast.DecimalNode("-193.5")}}},
		{name: "attribute access with newline", src: "testing = var.foo\n", expected: &ast.Node{Token: ast.Attribute{Ident: ident("testing"), Expr: bin(ident("var"), ".", ident("foo"))}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := tok.NewTokenizer(tt.src).AllTokens()
			assert.NoError(t, err)

			node, err := ParseAttribute(tokens, Options{})
			assert.NoError(t, err)
			assert.True(t, ast.SameToken(tt.expected, node), "actual: %s", node)
		})
	}

	tokens, err := tok.NewTokenizer("a = 1 + 2").AllTokens()
	assert.NoError(t, err)
	_, err = ParseAttribute(tokens, Options{})
	assert.IsError(t, err, ErrParse)
}
