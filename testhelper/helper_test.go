package testhelper

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTrimIndent(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name: "tabs",
			src: `
		fun(
			1
		)
		`,
			expected: "fun(\n    1\n)\n",
		},
		{
			name:     "spaces",
			src:      "\n    a\n      b\n  ",
			expected: "a\n  b\n",
		},
		{
			name:     "single line",
			src:      "x",
			expected: "x\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TrimIndent(t, tt.src))
		})
	}
}

func TestGetCaller(t *testing.T) {
	caller := GetCaller(t)
	assert.True(t, strings.HasPrefix(caller, "(helper_test.go:"), caller)
}
