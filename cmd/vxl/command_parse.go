package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vxl-lang/vxl"
)

// ErrConflictingInput is returned when both a program argument and a file are given.
var ErrConflictingInput = errors.New("give either a program argument or --file, not both")

// ParseCmd represents the parse command
type ParseCmd struct {
	Source   string `arg:"" optional:"" help:"Program text (default: stdin)"`
	File     string `short:"f" help:"Read the program from a file" type:"existingfile"`
	Format   string `short:"o" help:"Output format (json, yaml, xml)"`
	MaxDepth int    `help:"Maximum expression nesting depth"`
	Trace    bool   `help:"Trace grammar rules while parsing"`
	Profile  bool   `help:"Print parse and serialization time"`
}

// Run executes the parse command
func (cmd *ParseCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(config, cmd.Format)
	if err != nil {
		return err
	}

	name, src, err := cmd.readSource(ctx)
	if err != nil {
		return err
	}

	opts := config.ParserOptions()
	if cmd.MaxDepth > 0 {
		opts.MaxDepth = cmd.MaxDepth
	}

	if cmd.Trace {
		opts.Trace = true
	}

	ctx.info("Parsing %s", name)

	start := time.Now()
	tree, err := vxl.ParseWithOptions(src, opts)
	parseTime := time.Since(start)

	if err != nil {
		ctx.reportSourceError(name, src, err)
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}

	start = time.Now()
	if err := formatter.Format(tree, ctx.Stdout); err != nil {
		return err
	}
	renderTime := time.Since(start)

	if cmd.Profile {
		ctx.info("Parsed %d statement(s)", len(tree))
		fmt.Fprintf(ctx.Stderr, "parse: %s, serialize: %s\n", formatDuration(parseTime), formatDuration(renderTime))
	}

	return nil
}

// readSource returns a display name and the program text
func (cmd *ParseCmd) readSource(ctx *Context) (string, string, error) {
	switch {
	case cmd.File != "" && cmd.Source != "":
		return "", "", ErrConflictingInput
	case cmd.File != "":
		data, err := os.ReadFile(cmd.File)
		if err != nil {
			return "", "", fmt.Errorf("failed to read input: %w", err)
		}

		return cmd.File, string(data), nil
	case cmd.Source != "":
		return "<arg>", cmd.Source, nil
	default:
		data, err := io.ReadAll(ctx.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read input: %w", err)
		}

		return "<stdin>", string(data), nil
	}
}
