package legacy

import (
	"reflect"
	"sort"

	"github.com/mitchellh/mapstructure"

	q "cldurl/core/qualifier"
	cerrors "cldurl/internal/errors"
)

// simple options map straight to one qualifier constructor
var simpleParams = map[string]func(interface{}) q.Qualifier{
	"aspect_ratio":      q.AspectRatio,
	"audio_codec":       q.AudioCodec,
	"audio_frequency":   q.AudioFrequency,
	"background":        q.Background,
	"bit_rate":          q.BitRate,
	"color":             q.Color,
	"color_space":       q.ColorSpace,
	"default_image":     q.DefaultImage,
	"delay":             q.Delay,
	"density":           q.Density,
	"dpr":               q.DPR,
	"fetch_format":      q.FetchFormat,
	"gravity":           q.Gravity,
	"opacity":           q.Opacity,
	"page":              q.Page,
	"prefix":            q.Prefix,
	"quality":           q.Quality,
	"streaming_profile": q.StreamingProfile,
	"video_sampling":    q.VideoSampling,
	"x":                 q.X,
	"y":                 q.Y,
	"zoom":              q.Zoom,
	"start_offset":      q.StartOffset,
	"end_offset":        q.EndOffset,
	"duration":          q.Duration,
}

// complex options parse their own value shape and may fail
var complexParams = map[string]func(interface{}) (q.Qualifier, error){
	"angle":               angle,
	"border":              border,
	"custom_function":     customFunction,
	"custom_pre_function": customPreFunction,
	"effect":              effect,
	"flags":               flags,
	"fps":                 fps,
	"keyframe_interval":   q.KeyframeInterval,
	"overlay":             q.Overlay,
	"underlay":            q.Underlay,
	"radius":              radius,
	"video_codec":         videoCodec,
}

// aliases lets the short CDN keys stand in for simple option names
var aliases = func() map[string]string {
	out := make(map[string]string)
	for name := range simpleParams {
		key := q.KeyFor(q.Kind(name))
		if key != name {
			out[key] = name
		}
	}
	return out
}()

// list returns v as a slice of items; scalars become a one element list.
// Byte slices are scalars.
func list(v interface{}) []interface{} {
	switch x := v.(type) {
	case nil:
		return nil
	case []interface{}:
		return x
	case []byte:
		return []interface{}{v}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []interface{}{v}
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func angle(v interface{}) (q.Qualifier, error) {
	return q.Angle(list(v)...), nil
}

func flags(v interface{}) (q.Qualifier, error) {
	return q.Flags(list(v)...), nil
}

func radius(v interface{}) (q.Qualifier, error) {
	corners := list(v)
	if len(corners) > 4 {
		return q.Qualifier{}, cerrors.Inputf("radius accepts up to 4 values, got %d", len(corners))
	}
	return q.Radius(corners...), nil
}

func border(v interface{}) (q.Qualifier, error) {
	m, ok := asMap(v)
	if !ok {
		return q.Border(v), nil
	}
	return q.BorderOf(m["width"], m["color"]), nil
}

// effect accepts a name, a [name, args...] list or a single entry map
func effect(v interface{}) (q.Qualifier, error) {
	if m, ok := asMap(v); ok {
		keys := sortedKeys(m)
		if len(keys) == 0 {
			return q.Qualifier{}, nil
		}
		return q.Effect(keys[0], m[keys[0]]), nil
	}
	items := list(v)
	if len(items) == 0 {
		return q.Qualifier{}, nil
	}
	return q.Effect(items[0], items[1:]...), nil
}

func fps(v interface{}) (q.Qualifier, error) {
	items := list(v)
	switch len(items) {
	case 0:
		return q.Qualifier{}, nil
	case 1:
		return q.FPS(items[0]), nil
	case 2:
		return q.FPSRange(items[0], items[1]), nil
	}
	return q.Qualifier{}, cerrors.Inputf("fps accepts a value or a [min, max] range, got %d values", len(items))
}

func videoCodec(v interface{}) (q.Qualifier, error) {
	if _, ok := asMap(v); !ok {
		return q.VideoCodec(v), nil
	}
	var spec q.VideoCodecSpec
	if err := decode(v, &spec); err != nil {
		return q.Qualifier{}, err
	}
	return q.VideoCodecOf(spec), nil
}

func customFunction(v interface{}) (q.Qualifier, error) {
	if _, ok := asMap(v); !ok {
		return q.New(q.KindCustomFunction, v), nil
	}
	var fn q.Function
	if err := decode(v, &fn); err != nil {
		return q.Qualifier{}, err
	}
	return q.CustomFunction(fn), nil
}

func customPreFunction(v interface{}) (q.Qualifier, error) {
	if _, ok := asMap(v); !ok {
		s := q.Format(v, q.BoolWords)
		if s == "" {
			return q.Qualifier{}, nil
		}
		return q.New(q.KindCustomFunction, "pre:"+s), nil
	}
	var fn q.Function
	if err := decode(v, &fn); err != nil {
		return q.Qualifier{}, err
	}
	return q.CustomPreFunction(fn), nil
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case Options:
		return m, true
	case map[string]string:
		out := make(map[string]interface{}, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func decode(input interface{}, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return cerrors.Internal("creating option decoder", err)
	}
	if err := decoder.Decode(input); err != nil {
		return cerrors.Wrap(cerrors.TypeInput, "invalid option value", err)
	}
	return nil
}
