// Package markdownparser extracts VXL programs from fenced code blocks of
// Markdown documents and parses each of them.
package markdownparser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/vxl-lang/vxl"
	vast "github.com/vxl-lang/vxl/ast"
	vparser "github.com/vxl-lang/vxl/parser"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Sentinel errors
var (
	ErrInvalidFrontMatter = errors.New("invalid front matter")
	ErrNoCodeBlock        = errors.New("no VXL code block found")
)

// Options selects the code blocks to parse and the parser limits.
type Options struct {
	Languages []string
	Parser    vparser.Options
}

// Document represents a parsed Markdown document
type Document struct {
	Metadata map[string]any
	Title    string
	Blocks   []Block
}

// Block is one fenced code block. Err is set when the block failed to parse.
type Block struct {
	Section   string // heading text of the enclosing section, empty before the first heading
	Language  string
	Source    string
	StartLine int // document line of the first source line
	Tree      vast.Tree
	Err       error
}

// BlockError locates a block parse failure in the Markdown document.
type BlockError struct {
	Section string
	Line    int
	Column  int
	Err     error
}

func (e *BlockError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
	}

	return fmt.Sprintf("%s (line %d, column %d): %v", e.Section, e.Line, e.Column, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

// Err joins the errors of all failed blocks, or returns nil.
func (d *Document) Err() error {
	var err error
	for _, b := range d.Blocks {
		err = errors.Join(err, b.Err)
	}

	return err
}

// Parse reads a Markdown document and parses every fenced block whose info
// string names one of the configured languages. Front matter may override
// the options under the "vxl" key. A document without any matching block
// is returned together with ErrNoCodeBlock.
func Parse(reader io.Reader, opts Options) (*Document, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	frontMatter, body, err := parseFrontMatter(string(content))
	if err != nil {
		return nil, err
	}

	settings, err := parseSettings(frontMatter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
	}

	if len(settings.Languages) > 0 {
		opts.Languages = settings.Languages
	}

	if settings.MaxDepth > 0 {
		opts.Parser.MaxDepth = settings.MaxDepth
	}

	if len(opts.Languages) == 0 {
		opts.Languages = []string{"vxl"}
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	source := []byte(body)
	doc := md.Parser().Parse(text.NewReader(source))

	lines := newLineIndex(content, len(content)-len(body))

	document := &Document{
		Metadata: frontMatter,
	}

	var section string

	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			section = extractTextFromHeadingNode(node, source)
			if node.Level == 1 && document.Title == "" {
				document.Title = section
			}

			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			lang := getCodeBlockLanguage(node, source)
			if !slices.Contains(opts.Languages, lang) {
				return ast.WalkSkipChildren, nil
			}

			src := extractCodeBlockContent(node, source)
			if strings.TrimSpace(src) == "" {
				return ast.WalkSkipChildren, nil
			}

			block := Block{
				Section:   section,
				Language:  lang,
				Source:    src,
				StartLine: lines.lineOf(node.Lines().At(0).Start),
			}
			block.Tree, block.Err = parseBlock(&block, opts.Parser)
			document.Blocks = append(document.Blocks, block)

			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	if _, ok := frontMatter["title"]; !ok && document.Title != "" {
		document.Metadata["title"] = document.Title
	}

	if len(document.Blocks) == 0 {
		return document, ErrNoCodeBlock
	}

	return document, nil
}

func parseBlock(block *Block, opts vparser.Options) (vast.Tree, error) {
	tree, err := vxl.ParseWithOptions(block.Source, opts)
	if err == nil {
		return tree, nil
	}

	blockErr := &BlockError{Section: block.Section, Line: block.StartLine, Column: 1, Err: err}

	if pos, ok := vxl.ErrorPosition(err); ok && pos.Line > 0 {
		blockErr.Line = block.StartLine + pos.Line - 1
		blockErr.Column = pos.Column
	}

	return nil, blockErr
}

// extractTextFromHeadingNode extracts the plain text of a heading
func extractTextFromHeadingNode(heading ast.Node, content []byte) string {
	var result strings.Builder

	_ = ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			segment := node.Segment
			result.Write(content[segment.Start:segment.Stop])
		case *ast.String:
			result.Write(node.Value)
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(result.String())
}

// getCodeBlockLanguage returns the first word of the info string, lower cased
func getCodeBlockLanguage(codeBlock *ast.FencedCodeBlock, content []byte) string {
	if codeBlock.Info == nil {
		return ""
	}

	segment := codeBlock.Info.Segment
	fields := strings.Fields(string(content[segment.Start:segment.Stop]))

	if len(fields) == 0 {
		return ""
	}

	return strings.ToLower(fields[0])
}

// extractCodeBlockContent extracts the actual content from a code block AST node
func extractCodeBlockContent(codeBlock ast.Node, content []byte) string {
	var result strings.Builder

	for i := 0; i < codeBlock.Lines().Len(); i++ {
		line := codeBlock.Lines().At(i)
		result.Write(content[line.Start:line.Stop])
	}

	return result.String()
}

// lineIndex maps byte offsets of the Markdown body back to document lines.
type lineIndex struct {
	content    []byte
	bodyOffset int
}

func newLineIndex(content []byte, bodyOffset int) lineIndex {
	return lineIndex{content: content, bodyOffset: bodyOffset}
}

func (l lineIndex) lineOf(bodyPos int) int {
	end := min(l.bodyOffset+bodyPos, len(l.content))
	return bytes.Count(l.content[:end], []byte("\n")) + 1
}
