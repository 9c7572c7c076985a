// Package legacy translates flat option maps, the pre-typed calling
// convention, into transformations.
package legacy

import (
	"strings"

	q "cldurl/core/qualifier"
	"cldurl/core/transformation"
	cerrors "cldurl/internal/errors"
)

// Options is a flat map of option names to values, e.g.
// {"width": 100, "crop": "fill", "transformation": [...]}
type Options map[string]interface{}

// Clone returns a shallow copy
func (o Options) Clone() Options {
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Settings carries configuration defaults that influence translation
type Settings struct {
	// ResponsiveWidth adds the responsive stage ahead of the caller's stages
	ResponsiveWidth bool

	// ResponsiveWidthTransformation replaces the default responsive stage
	ResponsiveWidthTransformation Options

	// DPR is used when the options carry no dpr
	DPR interface{}
}

// DefaultResponsiveWidthTransformation is the stage injected in responsive width mode
var DefaultResponsiveWidthTransformation = Options{"crop": "limit", "width": "auto"}

// Translate converts options into a transformation using zero settings
func Translate(opts Options) (*transformation.Transformation, error) {
	return TranslateWith(opts, Settings{})
}

// TranslateWith converts options into a transformation. Keys that are not
// transformation options are ignored.
func TranslateWith(opts Options, settings Settings) (*transformation.Transformation, error) {
	opts = opts.Clone()

	responsive := settings.ResponsiveWidth
	if v, ok := opts["responsive_width"]; ok {
		responsive = truthy(v)
	}

	t, err := translate(opts, settings.DPR)
	if err != nil {
		return nil, err
	}

	if responsive {
		stage := settings.ResponsiveWidthTransformation
		if len(stage) == 0 {
			stage = DefaultResponsiveWidthTransformation
		}
		rt, err := translate(stage.Clone(), nil)
		if err != nil {
			return nil, err
		}
		t.Prepend(rt)
	}
	return t, nil
}

func translate(opts Options, dpr interface{}) (*transformation.Transformation, error) {
	for alias, name := range aliases {
		if v, ok := opts[alias]; ok {
			if _, set := opts[name]; !set {
				opts[name] = v
			}
			delete(opts, alias)
		}
	}

	if size, ok := opts["size"]; ok && size != nil {
		w, h, err := q.Size(size)
		if err != nil {
			return nil, err
		}
		opts["width"], opts["height"] = w, h
	}
	if offset, ok := opts["offset"]; ok && offset != nil {
		start, end, ok := q.SplitRange(offset)
		if !ok {
			return nil, cerrors.Inputf("offset should be a range or a two element list, got %v", offset)
		}
		opts["start_offset"], opts["end_offset"] = start, end
	}

	action := transformation.NewAction()

	width, height := opts["width"], opts["height"]
	crop := q.Format(opts["crop"], q.BoolWords)
	hasLayer := present(opts["overlay"]) || present(opts["underlay"])
	if crop == "" && !hasLayer && !strings.HasPrefix(q.Format(width, q.BoolWords), "auto") {
		width, height = nil, nil
	}
	action.Add(q.Crop(crop), q.Width(width), q.Height(height))

	if _, ok := opts["dpr"]; !ok && dpr != nil {
		opts["dpr"] = dpr
	}

	for name, build := range simpleParams {
		if v, ok := opts[name]; ok {
			action.Add(build(v))
		}
	}
	for name, build := range complexParams {
		v, ok := opts[name]
		if !ok || v == nil {
			continue
		}
		qual, err := build(v)
		if err != nil {
			return nil, err
		}
		action.Add(qual)
	}

	base, named, err := baseTransformations(opts["transformation"])
	if err != nil {
		return nil, err
	}
	if len(named) > 0 {
		action.Add(q.NamedTransformation(named...))
	}

	if cond, ok := opts["if"]; ok {
		action.If(cond)
	}
	for key, v := range opts {
		if q.IsVariableName(key) {
			action.Add(q.Variable(key, v))
		}
	}
	vars, err := variables(opts["variables"])
	if err != nil {
		return nil, err
	}
	action.Variables(vars...)

	if raw, ok := opts["raw_transformation"]; ok {
		action.Raw(q.Format(raw, q.BoolWords))
	}

	return transformation.New(base, action), nil
}

// baseTransformations expands the transformation option. Lists holding any
// map become preceding stages; lists of strings name stored transformations.
func baseTransformations(v interface{}) (*transformation.Transformation, []string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil, nil
	case *transformation.Transformation:
		return x, nil, nil
	case string:
		if x == "" {
			return nil, nil, nil
		}
		return nil, []string{x}, nil
	}

	if m, ok := asMap(v); ok {
		t, err := translate(Options(m).Clone(), nil)
		return t, nil, err
	}

	items := list(v)
	expand := false
	for _, item := range items {
		if _, ok := asMap(item); ok {
			expand = true
			break
		}
	}

	if !expand {
		names := make([]string, 0, len(items))
		for _, item := range items {
			if s := q.Format(item, q.BoolWords); s != "" {
				names = append(names, s)
			}
		}
		return nil, names, nil
	}

	out := transformation.New()
	for _, item := range items {
		var (
			t   *transformation.Transformation
			err error
		)
		if m, ok := asMap(item); ok {
			t, err = translate(Options(m).Clone(), nil)
		} else {
			t, err = translate(Options{"transformation": item}, nil)
		}
		if err != nil {
			return nil, nil, err
		}
		out.Append(t)
	}
	return out, nil, nil
}

// variables accepts an ordered list of [name, value] pairs, a list of
// qualifiers, or a map (applied in name order)
func variables(v interface{}) ([]q.Qualifier, error) {
	if v == nil {
		return nil, nil
	}
	if m, ok := asMap(v); ok {
		out := make([]q.Qualifier, 0, len(m))
		for _, name := range sortedKeys(m) {
			out = append(out, q.Variable(name, m[name]))
		}
		return out, nil
	}
	if qs, ok := v.([]q.Qualifier); ok {
		return qs, nil
	}

	var out []q.Qualifier
	for _, item := range list(v) {
		pair := list(item)
		if len(pair) != 2 {
			return nil, cerrors.Inputf("variables must be [name, value] pairs, got %v", item)
		}
		name := q.Format(pair[0], q.BoolWords)
		if name == "" {
			return nil, cerrors.Input("variable name must not be empty")
		}
		out = append(out, q.Variable(name, pair[1]))
	}
	return out, nil
}

func present(v interface{}) bool {
	return q.Format(v, q.BoolWords) != "" || isLayer(v)
}

func isLayer(v interface{}) bool {
	switch v.(type) {
	case q.Layer, *q.Layer, map[string]interface{}, Options:
		return true
	}
	return false
}

func truthy(v interface{}) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x == "true" || x == "1"
	case nil:
		return false
	}
	return q.Format(v, q.BoolWords) != "0"
}
