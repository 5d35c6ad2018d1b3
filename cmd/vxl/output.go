package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/vxl-lang/vxl"
	"github.com/vxl-lang/vxl/render"
	"github.com/vxl-lang/vxl/tokenizer"
)

func (ctx *Context) info(format string, args ...any) {
	if ctx.Verbose && !ctx.Quiet {
		color.New(color.FgBlue).Fprintf(ctx.Stderr, format+"\n", args...)
	}
}

func (ctx *Context) success(format string, args ...any) {
	if !ctx.Quiet {
		color.New(color.FgGreen).Fprintf(ctx.Stderr, format+"\n", args...)
	}
}

func (ctx *Context) warn(format string, args ...any) {
	if !ctx.Quiet {
		color.New(color.FgYellow).Fprintf(ctx.Stderr, format+"\n", args...)
	}
}

func (ctx *Context) failure(format string, args ...any) {
	color.New(color.FgRed).Fprintf(ctx.Stderr, format+"\n", args...)
}

// newFormatter builds a formatter from the configuration. A non-empty
// format flag overrides the configured one.
func newFormatter(config *vxl.Config, format string) (*render.Formatter, error) {
	if format == "" {
		format = config.Output.Format
	}

	outputFormat, err := render.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	return render.NewFormatter(outputFormat, config.Output.Indent), nil
}

// reportSourceError prints a parse failure with the offending source line
func (ctx *Context) reportSourceError(name, src string, err error) {
	pos, ok := vxl.ErrorPosition(err)
	if !ok {
		ctx.failure("%s: %v", name, err)
		return
	}

	ctx.failure("%s:%d:%d: %v", name, pos.Line, pos.Column, err)

	if snippet := sourceContext(src, pos); snippet != "" {
		fmt.Fprint(ctx.Stderr, snippet)
	}
}

// sourceContext renders the line at pos with a caret under its column.
func sourceContext(src string, pos tokenizer.Position) string {
	lines := strings.Split(src, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return ""
	}

	line := strings.TrimRight(lines[pos.Line-1], "\r")
	gutter := fmt.Sprintf("%d", pos.Line)

	var pad strings.Builder
	for i, r := range []rune(line) {
		if i >= pos.Column-1 {
			break
		}

		if r == '\t' {
			pad.WriteRune('\t')
		} else {
			pad.WriteRune(' ')
		}
	}

	return fmt.Sprintf("%s | %s\n%s | %s^\n", gutter, line, strings.Repeat(" ", len(gutter)), pad.String())
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}

	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d/time.Microsecond)
	}

	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	}

	return d.Round(time.Millisecond).String()
}
