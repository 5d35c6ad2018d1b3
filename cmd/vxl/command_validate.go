package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vxl-lang/vxl"
	"github.com/vxl-lang/vxl/markdownparser"
)

// ErrValidationFailed is returned when any file has syntax errors.
var ErrValidationFailed = errors.New("validation failed")

// ValidateCmd represents the validate command
type ValidateCmd struct {
	Input string   `short:"i" help:"Input directory" default:"." type:"path"`
	Files []string `arg:"" help:"Specific files to validate" optional:""`
}

// Run executes the validate command
func (v *ValidateCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	files := v.Files
	if len(files) == 0 {
		ctx.info("Validating files in %s", v.Input)

		files, err = collectFiles(v.Input)
		if err != nil {
			return err
		}
	}

	failed := 0

	for _, file := range files {
		if !v.validateFile(ctx, config, file) {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s) have errors", ErrValidationFailed, failed, len(files))
	}

	ctx.success("Validated %d file(s)", len(files))

	return nil
}

func (v *ValidateCmd) validateFile(ctx *Context, config *vxl.Config, file string) bool {
	if isMarkdownFile(file) {
		doc, err := parseMarkdownFile(file, markdownOptions(config, nil))
		if errors.Is(err, markdownparser.ErrNoCodeBlock) {
			return true
		}

		if err != nil {
			ctx.failure("%s: %v", file, err)
			return false
		}

		ok := true

		for _, block := range doc.Blocks {
			if block.Err != nil {
				ctx.failure("%s: %v", file, block.Err)
				ok = false
			}
		}

		return ok
	}

	data, err := os.ReadFile(file)
	if err != nil {
		ctx.failure("%s: %v", file, err)
		return false
	}

	if _, err := vxl.ParseWithOptions(string(data), config.ParserOptions()); err != nil {
		ctx.reportSourceError(file, string(data), err)
		return false
	}

	ctx.info("%s: ok", file)

	return true
}

// collectFiles finds .vxl and Markdown files under root
func collectFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if strings.EqualFold(filepath.Ext(path), ".vxl") || isMarkdownFile(path) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return files, nil
}

func isMarkdownFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}
