package markdownparser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

var (
	errSettingsMapType = errors.New("vxl must be a map with string keys")
	errLanguagesType   = errors.New("vxl.languages must be a list of strings")
	errMaxDepthType    = errors.New("vxl.max_depth must be a positive integer")
	errUnknownSetting  = errors.New("unknown setting")
)

// Settings are the per-document overrides read from the "vxl" key of the
// front matter.
type Settings struct {
	Languages []string
	MaxDepth  int
}

// parseFrontMatter extracts YAML front matter from markdown content
func parseFrontMatter(content string) (map[string]any, string, error) {
	// Check if content starts with front matter delimiter
	if !strings.HasPrefix(content, "---\n") {
		return make(map[string]any), content, nil
	}

	// Find the closing delimiter
	endIndex := strings.Index(content[4:], "\n---")
	if endIndex == -1 {
		return nil, "", ErrInvalidFrontMatter
	}

	endIndex += 4 // Adjust for the initial slice

	frontMatterContent := content[4:endIndex]
	remainingContent := content[endIndex+4:]

	var frontMatter map[string]any

	err := yaml.Unmarshal([]byte(frontMatterContent), &frontMatter)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
	}

	if frontMatter == nil {
		frontMatter = make(map[string]any)
	}

	return frontMatter, remainingContent, nil
}

func parseSettings(frontMatter map[string]any) (Settings, error) {
	var settings Settings

	raw, ok := frontMatter["vxl"]
	if !ok || raw == nil {
		return settings, nil
	}

	settingsMap, ok := normalizeStringMap(raw)
	if !ok {
		return settings, errSettingsMapType
	}

	for key, value := range settingsMap {
		switch key {
		case "languages":
			langs, ok := value.([]any)
			if !ok {
				return settings, errLanguagesType
			}

			for _, l := range langs {
				lang, ok := l.(string)
				if !ok || strings.TrimSpace(lang) == "" {
					return settings, errLanguagesType
				}

				settings.Languages = append(settings.Languages, strings.ToLower(strings.TrimSpace(lang)))
			}
		case "max_depth":
			depth, ok := toInt(value)
			if !ok || depth <= 0 {
				return settings, errMaxDepthType
			}

			settings.MaxDepth = depth
		default:
			return settings, fmt.Errorf("%w: vxl.%s", errUnknownSetting, key)
		}
	}

	return settings, nil
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	default:
		return 0, false
	}
}

func normalizeStringMap(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}

			out[key] = v
		}

		return out, true
	default:
		return nil, false
	}
}
