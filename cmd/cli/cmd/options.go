package cmd

import (
	"strings"

	"gopkg.in/yaml.v3"

	cerrors "cldurl/internal/errors"
)

// parseAssignments turns key=value flags into a map. Values are read as YAML
// scalars or flow collections, so width=100 is a number and
// transformation='{crop: fill, width: 10}' is a map.
func parseAssignments(pairs []string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, cerrors.Inputf("expected key=value, got %q", pair)
		}
		out[key] = parseValue(raw)
	}
	return out, nil
}

func parseValue(raw string) interface{} {
	if raw == "" {
		return ""
	}
	var v interface{}
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		return raw
	}
	return v
}
