package vxl

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/vxl-lang/vxl/parser"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// DefaultConfigFile is the file name the CLI looks for when no path is given.
const DefaultConfigFile = "vxl.yaml"

// Config represents the VXL tool configuration
type Config struct {
	Parser   ParserConfig   `yaml:"parser"`
	Output   OutputConfig   `yaml:"output"`
	Markdown MarkdownConfig `yaml:"markdown"`
}

// ParserConfig holds the limits passed to the grammar.
type ParserConfig struct {
	MaxDepth int  `yaml:"max_depth"`
	Trace    bool `yaml:"trace"`
}

// OutputConfig controls how trees are rendered.
type OutputConfig struct {
	Format string `yaml:"format"`
	Indent string `yaml:"indent"`
	Color  *bool  `yaml:"color"` // nil means enabled
}

// UseColor reports whether colored messages are enabled.
func (o OutputConfig) UseColor() bool {
	return o.Color == nil || *o.Color
}

// MarkdownConfig selects the fenced code blocks treated as VXL source.
type MarkdownConfig struct {
	Languages []string `yaml:"languages"`
}

var validFormats = map[string]bool{
	"json": true,
	"yaml": true,
	"xml":  true,
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		// Return default configuration if file doesn't exist
		return getDefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	// Values may come from the environment, so validate last
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ParserOptions converts the parser section to grammar options.
func (c *Config) ParserOptions() parser.Options {
	return parser.Options{
		MaxDepth: c.Parser.MaxDepth,
		Trace:    c.Parser.Trace,
	}
}

// IsVXLLanguage reports whether a fenced block info string names VXL.
func (c *Config) IsVXLLanguage(lang string) bool {
	for _, l := range c.Markdown.Languages {
		if l == lang {
			return true
		}
	}

	return false
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	if config.Parser.MaxDepth < 0 {
		return fmt.Errorf("%w: parser.max_depth must be non-negative, got %d", ErrConfigValidation, config.Parser.MaxDepth)
	}

	if config.Output.Format != "" && !validFormats[config.Output.Format] {
		return fmt.Errorf("%w: output.format '%s' is invalid: must be one of json, yaml, xml", ErrConfigValidation, config.Output.Format)
	}

	for i, lang := range config.Markdown.Languages {
		if lang == "" {
			return fmt.Errorf("%w: markdown.languages[%d] must not be empty", ErrConfigValidation, i)
		}
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			MaxDepth: parser.DefaultMaxDepth,
		},
		Output: OutputConfig{
			Format: "json",
			Indent: "  ",
		},
		Markdown: MarkdownConfig{
			Languages: []string{"vxl"},
		},
	}
}

// applyDefaults applies default values to missing configuration fields
func applyDefaults(config *Config) {
	defaults := getDefaultConfig()

	if config.Parser.MaxDepth == 0 {
		config.Parser.MaxDepth = defaults.Parser.MaxDepth
	}

	if config.Output.Format == "" {
		config.Output.Format = defaults.Output.Format
	}

	if config.Output.Indent == "" {
		config.Output.Indent = defaults.Output.Indent
	}

	if len(config.Markdown.Languages) == 0 {
		config.Markdown.Languages = defaults.Markdown.Languages
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// expandConfigEnvVars expands environment variables in string settings
func expandConfigEnvVars(config *Config) {
	config.Output.Format = expandEnvVars(config.Output.Format)

	for i, lang := range config.Markdown.Languages {
		config.Markdown.Languages[i] = expandEnvVars(lang)
	}
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
