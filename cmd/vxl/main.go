package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/vxl-lang/vxl"
)

const version = "v0.1.0"

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CLI represents the command-line interface
type CLI struct {
	Config   string      `help:"Configuration file path" default:"vxl.yaml"`
	Verbose  bool        `help:"Enable verbose output" short:"v"`
	Quiet    bool        `help:"Suppress output" short:"q"`
	Parse    ParseCmd    `cmd:"" help:"Parse a VXL program and print its syntax tree"`
	Markdown MarkdownCmd `cmd:"" help:"Parse VXL code blocks in Markdown documents"`
	Validate ValidateCmd `cmd:"" help:"Check VXL and Markdown files for syntax errors"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintf(ctx.Stdout, "vxl %s (%s %s/%s)\n", buildVersion(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return err
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return version
}

// loadConfig loads the configuration and applies its color setting
func loadConfig(ctx *Context) (*vxl.Config, error) {
	config, err := vxl.LoadConfig(ctx.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if !config.Output.UseColor() {
		color.NoColor = true
	}

	return config, nil
}

func main() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("vxl"),
		kong.Description("Parser for the VXL configuration language"),
		kong.UsageOnError(),
	)

	appCtx := &Context{
		Config:  cli.Config,
		Verbose: cli.Verbose,
		Quiet:   cli.Quiet,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
