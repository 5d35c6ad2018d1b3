package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/vxl-lang/vxl"
	"github.com/vxl-lang/vxl/markdownparser"
	"github.com/vxl-lang/vxl/render"
)

// ErrBlocksFailed is returned when any code block failed to parse.
var ErrBlocksFailed = errors.New("some code blocks failed to parse")

// MarkdownCmd represents the markdown command
type MarkdownCmd struct {
	Files  []string `arg:"" help:"Markdown files to read" type:"existingfile"`
	Format string   `short:"o" help:"Output format (json, yaml, xml)"`
	Lang   []string `help:"Fence languages treated as VXL (default from config)"`
}

// Run executes the markdown command
func (cmd *MarkdownCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(config, cmd.Format)
	if err != nil {
		return err
	}

	opts := markdownOptions(config, cmd.Lang)
	failed := 0

	for _, file := range cmd.Files {
		n, err := cmd.processFile(ctx, formatter, opts, file)
		if err != nil {
			return err
		}

		failed += n
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d block(s)", ErrBlocksFailed, failed)
	}

	return nil
}

// processFile renders every block of file and returns the number of failures
func (cmd *MarkdownCmd) processFile(ctx *Context, formatter *render.Formatter, opts markdownparser.Options, file string) (int, error) {
	doc, err := parseMarkdownFile(file, opts)
	if errors.Is(err, markdownparser.ErrNoCodeBlock) {
		ctx.warn("%s: no VXL code blocks", file)
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", file, err)
	}

	failed := 0

	for _, block := range doc.Blocks {
		if block.Err != nil {
			ctx.failure("%s: %v", file, block.Err)
			failed++

			continue
		}

		ctx.info("%s:%d %s", file, block.StartLine, block.Section)

		if err := formatter.Format(block.Tree, ctx.Stdout); err != nil {
			return failed, err
		}
	}

	return failed, nil
}

func markdownOptions(config *vxl.Config, langs []string) markdownparser.Options {
	if len(langs) == 0 {
		langs = config.Markdown.Languages
	}

	return markdownparser.Options{
		Languages: langs,
		Parser:    config.ParserOptions(),
	}
}

func parseMarkdownFile(path string, opts markdownparser.Options) (*markdownparser.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return markdownparser.Parse(f, opts)
}
