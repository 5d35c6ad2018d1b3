// Package render serializes parse trees for the command line front end.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/vxl-lang/vxl/ast"
)

// ErrInvalidOutputFormat is returned for an unsupported output format
var ErrInvalidOutputFormat = errors.New("invalid output format")

// OutputFormat represents the tree output format
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatXML  OutputFormat = "xml"
)

// ParseFormat converts a configured format name to OutputFormat.
func ParseFormat(name string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(name)); f {
	case FormatJSON, FormatYAML, FormatXML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidOutputFormat, name)
	}
}

// Formatter formats parse trees
type Formatter struct {
	OutputFormat OutputFormat
	Indent       string
}

// NewFormatter creates a new tree formatter
func NewFormatter(format OutputFormat, indent string) *Formatter {
	return &Formatter{
		OutputFormat: format,
		Indent:       indent,
	}
}

// Format writes tree to output in the configured format
func (f *Formatter) Format(tree ast.Tree, output io.Writer) error {
	if err := tree.Validate(); err != nil {
		return err
	}

	switch f.OutputFormat {
	case FormatJSON:
		return f.formatAsJSON(tree, output)
	case FormatYAML:
		return f.formatAsYAML(tree, output)
	case FormatXML:
		return f.formatAsXML(tree, output)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidOutputFormat, f.OutputFormat)
	}
}

// formatAsJSON writes the canonical wire form
func (f *Formatter) formatAsJSON(tree ast.Tree, output io.Writer) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", f.Indent)

	if err := encoder.Encode(nonNilTree(tree)); err != nil {
		return fmt.Errorf("failed to marshal tree to JSON: %w", err)
	}

	return nil
}

// formatAsYAML converts the wire form to YAML keeping key order
func (f *Formatter) formatAsYAML(tree ast.Tree, output io.Writer) error {
	data, err := json.Marshal(nonNilTree(tree))
	if err != nil {
		return fmt.Errorf("failed to marshal tree to JSON: %w", err)
	}

	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return fmt.Errorf("failed to convert tree to YAML: %w", err)
	}

	out, err := yaml.MarshalWithOptions(doc, yaml.Indent(f.indentWidth()), yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("failed to marshal tree to YAML: %w", err)
	}

	_, err = output.Write(out)

	return err
}

func (f *Formatter) indentWidth() int {
	if f.Indent == "" || strings.Contains(f.Indent, "\t") {
		return 2
	}

	return len(f.Indent)
}

func nonNilTree(tree ast.Tree) ast.Tree {
	if tree == nil {
		return ast.Tree{}
	}

	return tree
}
