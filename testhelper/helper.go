package testhelper

import (
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"
)

var (
	leadingSpaces = regexp.MustCompile(`^[ \t]+`)
	leadingTabs   = regexp.MustCompile(`^\t+`)
)

// TrimIndent removes the indentation of the first content line from every
// line of a raw string literal. The opening line break and a closing line
// that holds only indentation are dropped; remaining leading tabs become
// four spaces each.
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(src, "\n")
	if len(lines) > 1 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if n := len(lines); n > 1 && strings.TrimSpace(lines[n-1]) == "" {
		lines = lines[:n-1]
	}

	indent := leadingSpaces.FindString(lines[0])
	for i, line := range lines {
		line = strings.TrimPrefix(line, indent)
		lines[i] = leadingTabs.ReplaceAllStringFunc(line, func(tabs string) string {
			return strings.Repeat("    ", len(tabs))
		})
	}

	return strings.Join(lines, "\n") + "\n"
}

// GetCaller returns "(file.go:line)" of the caller, for use in test case
// names.
func GetCaller(t *testing.T) string {
	t.Helper()

	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return "unknown"
	}

	return fmt.Sprintf("(%s:%d)", filepath.Base(file), line)
}
