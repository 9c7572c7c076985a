package qualifier

import (
	"encoding/base64"
	"regexp"
	"strings"
)

// Overlay places a layer above the asset. layer is a Layer, a map accepted by
// ParseLayer or a pre-built string.
func Overlay(layer interface{}) (Qualifier, error) {
	return layerQualifier(KindOverlay, layer)
}

// Underlay places a layer below the asset
func Underlay(layer interface{}) (Qualifier, error) {
	return layerQualifier(KindUnderlay, layer)
}

func layerQualifier(kind Kind, layer interface{}) (Qualifier, error) {
	l, err := ParseLayer(layer)
	if err != nil {
		return Qualifier{}, err
	}
	s, err := l.Serialize(string(kind))
	if err != nil {
		return Qualifier{}, err
	}
	return New(kind, s), nil
}

// NamedTransformation references transformations stored server side, joined with '.'
func NamedTransformation(names ...string) Qualifier {
	values := make([]interface{}, len(names))
	for i, n := range names {
		values[i] = n
	}
	return Qualifier{Key: KeyFor(KindNamedTransformation), Value: NewValue(values...).WithDelimiter(".")}
}

// Function types accepted by CustomFunction
const (
	FunctionWasm   = "wasm"
	FunctionRemote = "remote"
)

// Function is a user supplied processing function
type Function struct {
	Type   string `mapstructure:"function_type"`
	Source string `mapstructure:"source"`
}

func (f Function) String() string {
	if f.Type == "" && f.Source == "" {
		return ""
	}
	source := f.Source
	if f.Type == FunctionRemote {
		source = base64.URLEncoding.EncodeToString([]byte(source))
	}
	return f.Type + ":" + source
}

func CustomFunction(fn Function) Qualifier {
	return New(KindCustomFunction, fn.String())
}

// CustomPreFunction runs the function before the transformation pipeline
func CustomPreFunction(fn Function) Qualifier {
	s := fn.String()
	if s == "" {
		return Qualifier{Key: KeyFor(KindCustomFunction)}
	}
	return New(KindCustomFunction, "pre:"+s)
}

var variableName = regexp.MustCompile(`^\$[a-zA-Z][a-zA-Z0-9]*$`)

// IsVariableName reports whether name is a user variable name such as $img
func IsVariableName(name string) bool {
	return variableName.MatchString(name)
}

// Variable assigns an expression to a user variable. The leading $ is added
// when missing.
func Variable(name string, value interface{}) Qualifier {
	if !strings.HasPrefix(name, "$") {
		name = "$" + name
	}
	return Qualifier{Key: name, Value: NewValue(NormalizeExpression(value))}
}

// If starts a conditional stage
func If(condition interface{}) Qualifier {
	return expression(KindIf, condition)
}
