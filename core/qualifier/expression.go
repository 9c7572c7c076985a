package qualifier

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
)

var operators = map[string]string{
	"=":  "eq",
	"!=": "ne",
	"<":  "lt",
	">":  "gt",
	"<=": "lte",
	">=": "gte",
	"&&": "and",
	"||": "or",
	"*":  "mul",
	"/":  "div",
	"+":  "add",
	"-":  "sub",
	"^":  "pow",
}

var predefinedVars = map[string]string{
	"aspect_ratio":         "ar",
	"aspectRatio":          "ar",
	"current_page":         "cp",
	"currentPage":          "cp",
	"duration":             "du",
	"face_count":           "fc",
	"faceCount":            "fc",
	"height":               "h",
	"illustration_score":   "ils",
	"initial_aspect_ratio": "iar",
	"initialAspectRatio":   "iar",
	"initial_duration":     "idu",
	"initialDuration":      "idu",
	"initial_height":       "ih",
	"initialHeight":        "ih",
	"initial_width":        "iw",
	"initialWidth":         "iw",
	"page_count":           "pc",
	"pageCount":            "pc",
	"page_x":               "px",
	"pageX":                "px",
	"page_y":               "py",
	"pageY":                "py",
	"tags":                 "tags",
	"width":                "w",
	"context":              "ctx",
}

var (
	expressionPattern = regexp2.MustCompile(buildExpressionPattern(), regexp2.None)
	separatorRun      = regexp.MustCompile(`[ _]+`)
)

// buildExpressionPattern matches an operator followed by a separator, a
// $user_variable, or a predefined variable name not preceded by $ or by the
// : that starts an effect parameter.
// Longer names are listed first so that initial_width wins over width.
func buildExpressionPattern() string {
	names := make([]string, 0, len(predefinedVars))
	for name := range predefinedVars {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	return `((\|\||>=|<=|&&|!=|>|=|<|/|-|\+|\*|\^)(?=[ _])|(\$_*[^_ ]+)|(?<![\$:])(` +
		strings.Join(names, "|") + `))`
}

// NormalizeExpression rewrites a user expression into the compact form used in
// URLs: "width > 100" becomes "w_gt_100". Values wrapped in !...! are literals
// and pass through unchanged, as do non string values after formatting.
func NormalizeExpression(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return Format(v, BoolWords)
	}
	if s == "" {
		return ""
	}
	if len(s) >= 2 && strings.HasPrefix(s, "!") && strings.HasSuffix(s, "!") {
		return s
	}

	replaced, err := expressionPattern.ReplaceFunc(s, func(m regexp2.Match) string {
		text := m.String()
		if op, ok := operators[text]; ok {
			return op
		}
		if short, ok := predefinedVars[text]; ok {
			return short
		}
		return text
	}, -1, -1)
	if err != nil {
		// regexp2 only fails on match timeouts, which are not configured
		replaced = s
	}
	return separatorRun.ReplaceAllString(replaced, "_")
}
