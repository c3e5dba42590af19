// Package prompt fills {{key}} placeholders in system prompt templates.
package prompt

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

//go:embed system_prompt.txt
var DefaultSystemPrompt string

// Load returns the template at path, or the embedded default when path is
// empty.
func Load(path string) (string, error) {
	if path == "" {
		return DefaultSystemPrompt, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read system prompt: %w", err)
	}
	return string(raw), nil
}

// Render replaces every literal {{key}} with its value in a single pass.
// Unknown placeholders are left untouched.
func Render(template string, vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{{"+k+"}}", vars[k])
	}
	// one pass, so placeholders inside substituted values stay literal
	return strings.NewReplacer(pairs...).Replace(template)
}

// Stringify converts a decoded JSON value into prompt text.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, Stringify(item))
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(val, ", ")
	case bool, float64, int, int64:
		return fmt.Sprint(val)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(raw)
	}
}
