package parsercommon

import (
	pc "github.com/shibukawa/parsercombinator"
	"github.com/vxl-lang/vxl/ast"
	tok "github.com/vxl-lang/vxl/tokenizer"
)

// Entity is the value carried through the grammar. Raw tokens only have
// Original; tokens produced by a rule also carry the built Node.
type Entity struct {
	Original tok.Token
	Node     *ast.Node
}

// Position converts the original token position to an AST position.
func (e Entity) Position() ast.Position {
	return ast.Position{
		Offset: e.Original.Position.Offset,
		Line:   e.Original.Position.Line,
		Column: e.Original.Position.Column,
	}
}

// ToParserToken wraps tokenizer output for the parser combinators. The EOF
// token is kept so that grammars can anchor on it.
func ToParserToken(tokens []tok.Token) []pc.Token[Entity] {
	results := make([]pc.Token[Entity], len(tokens))
	for i, token := range tokens {
		results[i] = pc.Token[Entity]{
			Type: "raw",
			Pos: &pc.Pos{
				Line:  token.Position.Line,
				Col:   token.Position.Column,
				Index: token.Position.Offset,
			},
			Val: Entity{Original: token},
			Raw: token.Value,
		}
	}
	return results
}

// NodeToken wraps a built node. The first source token of the rule is kept
// as Original so error reporting can point back into the source.
func NodeToken(typeName string, node *ast.Node, first pc.Token[Entity]) pc.Token[Entity] {
	return pc.Token[Entity]{
		Type: typeName,
		Pos:  first.Pos,
		Val:  Entity{Original: first.Val.Original, Node: node},
		Raw:  first.Raw,
	}
}

// Nodes collects the nodes of rule outputs, skipping raw tokens.
func Nodes(tokens []pc.Token[Entity]) []*ast.Node {
	results := make([]*ast.Node, 0, len(tokens))
	for _, token := range tokens {
		if token.Val.Node != nil {
			results = append(results, token.Val.Node)
		}
	}
	return results
}

// ToSrc rebuilds the source text covered by raw tokens.
func ToSrc(tokens []pc.Token[Entity]) string {
	src := make([]byte, 0, 256)
	for _, token := range tokens {
		src = append(src, token.Val.Original.Value...)
	}
	return string(src)
}
