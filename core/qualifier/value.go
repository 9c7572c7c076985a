// Package qualifier models single transformation instructions: a short key
// plus a normalized value, serialized as key_value.
package qualifier

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// BoolStyle selects how booleans are rendered
type BoolStyle int

const (
	// BoolWords renders true/false
	BoolWords BoolStyle = iota
	// BoolDigits renders 1/0
	BoolDigits
)

// DefaultDelimiter joins the components of a value
const DefaultDelimiter = ":"

// Value is an ordered list of normalized scalar components
type Value struct {
	components []string
	delimiter  string
}

// NewValue normalizes values into a Value using BoolWords
func NewValue(values ...interface{}) Value {
	return NewValueWith(BoolWords, values...)
}

// NewValueWith normalizes values rendering booleans in the given style.
// Nil and empty components are dropped.
func NewValueWith(style BoolStyle, values ...interface{}) Value {
	v := Value{delimiter: DefaultDelimiter}
	for _, raw := range values {
		if s := Format(raw, style); s != "" {
			v.components = append(v.components, s)
		}
	}
	return v
}

// WithDelimiter returns a copy joined by delimiter
func (v Value) WithDelimiter(delimiter string) Value {
	v.components = append([]string(nil), v.components...)
	v.delimiter = delimiter
	return v
}

// Components returns a copy of the normalized components
func (v Value) Components() []string {
	return append([]string(nil), v.components...)
}

// IsEmpty reports whether no component survived normalization
func (v Value) IsEmpty() bool {
	return len(v.components) == 0
}

// String joins the components
func (v Value) String() string {
	delimiter := v.delimiter
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return strings.Join(v.components, delimiter)
}

// Format normalizes one scalar, slice, Value or Qualifier into a string
func Format(raw interface{}, style BoolStyle) string {
	switch x := raw.(type) {
	case nil:
		return ""
	case string:
		return x
	case Value:
		return x.String()
	case Qualifier:
		return x.Value.String()
	case bool:
		return formatBool(x, style)
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat32(x)
	case decimal.Decimal:
		return withPointZero(x)
	case []interface{}:
		return joinList(x, style)
	case []string:
		return strings.Join(dropEmpty(x), DefaultDelimiter)
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		items := make([]interface{}, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return joinList(items, style)
	}

	if s, err := cast.ToStringE(raw); err == nil {
		return s
	}
	return ""
}

func joinList(items []interface{}, style BoolStyle) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if s := Format(item, style); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, DefaultDelimiter)
}

func dropEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func formatBool(b bool, style BoolStyle) string {
	if style == BoolDigits {
		if b {
			return "1"
		}
		return "0"
	}
	return strconv.FormatBool(b)
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return withPointZero(decimal.NewFromFloat(f))
}

func formatFloat32(f float32) string {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return strconv.FormatFloat(float64(f), 'g', -1, 32)
	}
	return withPointZero(decimal.NewFromFloat32(f))
}

// withPointZero keeps the float-ness of integral values visible (1.0 stays "1.0")
func withPointZero(d decimal.Decimal) string {
	s := d.String()
	if d.Equal(d.Truncate(0)) && !strings.Contains(s, ".") {
		return s + ".0"
	}
	return s
}
