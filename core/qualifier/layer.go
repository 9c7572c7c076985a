package qualifier

import (
	"encoding/base64"
	"net/url"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"

	"cldurl/core/escape"
	cerrors "cldurl/internal/errors"
)

// Layer describes an overlay or underlay source
type Layer struct {
	ResourceType string `mapstructure:"resource_type"`
	DeliveryType string `mapstructure:"type"`
	PublicID     string `mapstructure:"public_id"`
	Format       string `mapstructure:"format"`
	Text         string `mapstructure:"text"`
	URL          string `mapstructure:"url"`

	TextStyle `mapstructure:",squash"`

	// raw is a pre-built layer string used verbatim
	raw string
}

// TextStyle holds the font options of a text layer
type TextStyle struct {
	FontFamily       string      `mapstructure:"font_family"`
	FontSize         interface{} `mapstructure:"font_size"`
	FontWeight       string      `mapstructure:"font_weight"`
	FontStyle        string      `mapstructure:"font_style"`
	TextDecoration   string      `mapstructure:"text_decoration"`
	TextAlign        string      `mapstructure:"text_align"`
	Stroke           string      `mapstructure:"stroke"`
	LetterSpacing    interface{} `mapstructure:"letter_spacing"`
	LineSpacing      interface{} `mapstructure:"line_spacing"`
	FontAntialiasing string      `mapstructure:"font_antialiasing"`
	FontHinting      string      `mapstructure:"font_hinting"`
}

// RawLayer wraps an already serialized layer value
func RawLayer(s string) Layer {
	return Layer{raw: s}
}

// ParseLayer accepts a Layer, a string or a map of layer options.
// Strings starting with fetch: become remote fetch layers; other strings are
// used as is.
func ParseLayer(v interface{}) (Layer, error) {
	switch x := v.(type) {
	case nil:
		return Layer{}, nil
	case Layer:
		return x, nil
	case *Layer:
		if x == nil {
			return Layer{}, nil
		}
		return *x, nil
	case string:
		if strings.HasPrefix(x, "fetch:") {
			return Layer{URL: strings.TrimPrefix(x, "fetch:")}, nil
		}
		return RawLayer(x), nil
	}

	var l Layer
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &l,
	})
	if err != nil {
		return Layer{}, cerrors.Internal("creating layer decoder", err)
	}
	if err := decoder.Decode(v); err != nil {
		return Layer{}, cerrors.Wrap(cerrors.TypeInput, "invalid layer options", err)
	}
	return l, nil
}

var textVariable = regexp.MustCompile(`\$\([a-zA-Z]\w+\)`)

// Serialize builds the layer parameter value. param names the qualifier in
// error messages.
func (l Layer) Serialize(param string) (string, error) {
	if l.raw != "" {
		return l.raw, nil
	}
	if l.isZero() {
		return "", nil
	}

	resourceType := l.ResourceType
	if resourceType == "" && l.Text != "" {
		resourceType = "text"
	}
	if resourceType == "" && l.URL != "" {
		resourceType = "fetch"
	}

	publicID := l.PublicID
	if publicID != "" && l.Format != "" {
		publicID += "." + l.Format
	}
	if publicID == "" && resourceType != "text" && resourceType != "fetch" {
		return "", cerrors.Input("must supply public_id for non-text " + param)
	}

	var components []string
	if resourceType != "" && resourceType != "image" {
		components = append(components, resourceType)
	}
	if l.DeliveryType != "" && l.DeliveryType != "upload" {
		components = append(components, l.DeliveryType)
	}

	switch resourceType {
	case "text", "subtitles":
		if publicID == "" && l.Text == "" {
			return "", cerrors.Input("must supply either text or public_id in " + param)
		}
		style, err := l.TextStyle.serialize(param)
		if err != nil {
			return "", err
		}
		if style != "" {
			components = append(components, style)
		}
		if publicID != "" {
			components = append(components, strings.ReplaceAll(publicID, "/", ":"))
		}
		if l.Text != "" {
			components = append(components, escapeText(l.Text))
		}
	case "fetch":
		components = append(components, encodeFetchURL(l.URL))
	default:
		components = append(components, strings.ReplaceAll(publicID, "/", ":"))
	}
	return strings.Join(components, ":"), nil
}

func (l Layer) isZero() bool {
	return l.ResourceType == "" && l.DeliveryType == "" && l.PublicID == "" &&
		l.Format == "" && l.Text == "" && l.URL == ""
}

// escapeText escapes layer separators and then unsafe characters, leaving
// $(variable) references intact
func escapeText(text string) string {
	var b strings.Builder
	last := 0
	for _, loc := range textVariable.FindAllStringIndex(text, -1) {
		b.WriteString(escape.Smart(escape.Smart(text[last:loc[0]], escape.Separators), escape.Layer))
		b.WriteString(text[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(escape.Smart(escape.Smart(text[last:], escape.Separators), escape.Layer))
	return b.String()
}

func encodeFetchURL(raw string) string {
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return base64.URLEncoding.EncodeToString([]byte(escape.Smart(raw, escape.Layer)))
}

var styleKeywords = []struct {
	value func(TextStyle) string
	def   string
}{
	{func(s TextStyle) string { return s.FontWeight }, "normal"},
	{func(s TextStyle) string { return s.FontStyle }, "normal"},
	{func(s TextStyle) string { return s.TextDecoration }, "none"},
	{func(s TextStyle) string { return s.TextAlign }, ""},
	{func(s TextStyle) string { return s.Stroke }, "none"},
}

func (s TextStyle) serialize(param string) (string, error) {
	var keywords []string
	for _, kw := range styleKeywords {
		if v := kw.value(s); v != "" && v != kw.def {
			keywords = append(keywords, v)
		}
	}
	if v := Format(s.LetterSpacing, BoolWords); v != "" {
		keywords = append(keywords, "letter_spacing_"+v)
	}
	if v := Format(s.LineSpacing, BoolWords); v != "" {
		keywords = append(keywords, "line_spacing_"+v)
	}
	if s.FontAntialiasing != "" {
		keywords = append(keywords, "antialias_"+s.FontAntialiasing)
	}
	if s.FontHinting != "" {
		keywords = append(keywords, "hinting_"+s.FontHinting)
	}

	size := Format(s.FontSize, BoolWords)
	if size == "" && s.FontFamily == "" && len(keywords) == 0 {
		return "", nil
	}
	if s.FontFamily == "" {
		return "", cerrors.Input("must supply font_family in " + param)
	}
	if size == "" {
		return "", cerrors.Input("must supply font_size in " + param)
	}
	return strings.Join(append([]string{s.FontFamily, size}, keywords...), "_"), nil
}
