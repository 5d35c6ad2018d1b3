package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/vxl-lang/vxl/ast"
)

// formatAsXML writes one element per node. The element name is the token
// kind, child elements carry their role in the parent as a "role" attribute.
func (f *Formatter) formatAsXML(tree ast.Tree, output io.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("tree")
	for _, node := range tree {
		if err := appendNode(root, "", node); err != nil {
			return err
		}
	}

	if strings.Contains(f.Indent, "\t") {
		doc.IndentTabs()
	} else {
		doc.Indent(len(f.Indent))
	}

	if _, err := doc.WriteTo(output); err != nil {
		return fmt.Errorf("failed to write XML: %w", err)
	}

	return nil
}

func appendNode(parent *etree.Element, role string, node *ast.Node) error {
	if node == nil {
		return nil
	}

	elem := parent.CreateElement(node.Token.Kind().String())
	if role != "" {
		elem.CreateAttr("role", role)
	}

	elem.CreateAttr("offset", strconv.Itoa(node.Offset))
	elem.CreateAttr("line", strconv.Itoa(node.Line))
	elem.CreateAttr("column", strconv.Itoa(node.Column))

	switch t := node.Token.(type) {
	case ast.Identifier:
		elem.CreateAttr("value", string(t))
	case ast.Address:
		elem.CreateAttr("value", string(t))
	case ast.String:
		elem.CreateAttr("value", string(t))
	case ast.LineComment:
		elem.SetText(string(t))
	case ast.Operator:
		elem.CreateAttr("value", t.String())
	case ast.Boolean:
		elem.CreateAttr("value", strconv.FormatBool(bool(t)))
	case ast.Number:
		elem.CreateAttr("type", t.Value.Kind().String())
		elem.CreateAttr("value", t.Value.String())
	case ast.Percentage:
		elem.CreateAttr("type", t.Value.Kind().String())
		elem.CreateAttr("value", t.Value.String())
	case ast.None:
	case ast.Option:
		return appendChildren(elem, "key", t.Key, "value", t.Value)
	case ast.Attribute:
		return appendChildren(elem, "ident", t.Ident, "expr", t.Expr)
	case ast.Function:
		if err := appendChildren(elem, "name", t.Name, "subfunction", t.Subfunction); err != nil {
			return err
		}
		return appendAll(elem, "arg", t.Args)
	case ast.Conditional:
		return appendChildren(elem, "condition", t.Condition, "if_true", t.IfTrue, "if_false", t.IfFalse)
	case ast.BinaryOp:
		return appendChildren(elem, "operator", t.Operator, "left", t.Left, "right", t.Right)
	case ast.UnaryOp:
		return appendChildren(elem, "operator", t.Operator, "operand", t.Operand)
	case ast.List:
		return appendAll(elem, "item", t)
	case ast.TupleForLoop:
		elem.CreateAttr("type", "tuple")
		if err := appendAll(elem, "bind", t.Binds); err != nil {
			return err
		}
		return appendChildren(elem, "expr", t.Expr, "body", t.Body, "cond", t.Cond)
	case ast.ObjectForLoop:
		elem.CreateAttr("type", "object")
		elem.CreateAttr("grouping", strconv.FormatBool(t.Grouping))
		if err := appendAll(elem, "bind", t.Binds); err != nil {
			return err
		}
		return appendChildren(elem, "expr", t.Expr, "key", t.Key, "value", t.Value, "cond", t.Cond)
	default:
		return fmt.Errorf("%w at %s", ast.ErrUnknownToken, node.Position)
	}

	return nil
}

// appendChildren takes alternating role/node pairs. Nil nodes are skipped.
func appendChildren(parent *etree.Element, pairs ...any) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		role, _ := pairs[i].(string)
		node, _ := pairs[i+1].(*ast.Node)

		if err := appendNode(parent, role, node); err != nil {
			return err
		}
	}

	return nil
}

func appendAll(parent *etree.Element, role string, nodes []*ast.Node) error {
	for _, n := range nodes {
		if err := appendNode(parent, role, n); err != nil {
			return err
		}
	}

	return nil
}
