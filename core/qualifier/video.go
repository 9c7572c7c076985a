package qualifier

import (
	"regexp"
	"strings"

	"github.com/spf13/cast"

	cerrors "cldurl/internal/errors"
)

var rangeValue = regexp.MustCompile(`^((\d+\.)?\d+)([%pP])?$`)

// NormalizeRange accepts N, N.N, N% and Np, returning Np for percentages.
// Anything else is treated as an expression.
func NormalizeRange(v interface{}) string {
	s := Format(v, BoolWords)
	if s == "" {
		return ""
	}
	if m := rangeValue.FindStringSubmatch(s); m != nil {
		if m[3] != "" {
			return m[1] + "p"
		}
		return m[1]
	}
	return NormalizeExpression(v)
}

// VideoCodecSpec describes a codec with an optional profile, level and B-frame setting
type VideoCodecSpec struct {
	Codec   string `mapstructure:"codec"`
	Profile string `mapstructure:"profile"`
	Level   string `mapstructure:"level"`
	// BFrames false appends bframes_no; only honoured with a level
	BFrames *bool `mapstructure:"b_frames"`
}

// String returns codec[:profile[:level[:bframes_no]]]
func (s VideoCodecSpec) String() string {
	out := s.Codec
	if s.Profile == "" {
		return out
	}
	out += ":" + s.Profile
	if s.Level == "" {
		return out
	}
	out += ":" + s.Level
	if s.BFrames != nil && !*s.BFrames {
		out += ":bframes_no"
	}
	return out
}

func VideoCodec(codec interface{}) Qualifier {
	return New(KindVideoCodec, codec)
}

func VideoCodecOf(spec VideoCodecSpec) Qualifier {
	return New(KindVideoCodec, spec.String())
}

func AudioCodec(v interface{}) Qualifier {
	return New(KindAudioCodec, v)
}

func AudioFrequency(v interface{}) Qualifier {
	return New(KindAudioFrequency, v)
}

func BitRate(v interface{}) Qualifier {
	return New(KindBitRate, v)
}

func VideoSampling(v interface{}) Qualifier {
	return New(KindVideoSampling, v)
}

func StreamingProfile(v interface{}) Qualifier {
	return New(KindStreamingProfile, v)
}

func Duration(v interface{}) Qualifier {
	return New(KindDuration, NormalizeRange(v))
}

// StartOffset accepts a range value or "auto"
func StartOffset(v interface{}) Qualifier {
	if s, ok := v.(string); ok && s == "auto" {
		return New(KindStartOffset, s)
	}
	return New(KindStartOffset, NormalizeRange(v))
}

func EndOffset(v interface{}) Qualifier {
	return New(KindEndOffset, NormalizeRange(v))
}

// FPS takes a single frame rate or expression
func FPS(v interface{}) Qualifier {
	return expression(KindFPS, v)
}

// FPSRange builds min-max; a nil max leaves the range open (24-)
func FPSRange(min, max interface{}) Qualifier {
	return New(KindFPS, NormalizeExpression(min)+"-"+NormalizeExpression(max))
}

// KeyframeInterval accepts a positive number (rendered as a float) or a string
func KeyframeInterval(v interface{}) (Qualifier, error) {
	switch x := v.(type) {
	case nil:
		return Qualifier{}, nil
	case string:
		return New(KindKeyframeInterval, x), nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return Qualifier{}, cerrors.Inputf("keyframe interval should be a number or a string, got %T", v)
	}
	if f <= 0 {
		return Qualifier{}, cerrors.Input("keyframe interval should be greater than zero")
	}
	return New(KindKeyframeInterval, f), nil
}

// SplitRange splits "a..b" or a two element list into start and end
func SplitRange(v interface{}) (start, end interface{}, ok bool) {
	switch x := v.(type) {
	case string:
		start, end, found := strings.Cut(x, "..")
		if !found {
			return nil, nil, false
		}
		return start, end, true
	case []interface{}:
		if len(x) != 2 {
			return nil, nil, false
		}
		return x[0], x[1], true
	case []string:
		if len(x) != 2 {
			return nil, nil, false
		}
		return x[0], x[1], true
	case []float64:
		if len(x) != 2 {
			return nil, nil, false
		}
		return x[0], x[1], true
	case []int:
		if len(x) != 2 {
			return nil, nil, false
		}
		return x[0], x[1], true
	}
	return nil, nil, false
}

// Offset splits a range ("2..3", [2, 3]) into start and end offset qualifiers
func Offset(v interface{}) (start, end Qualifier, err error) {
	s, e, ok := SplitRange(v)
	if !ok {
		return Qualifier{}, Qualifier{}, cerrors.Inputf("offset should be a range or a two element list, got %v", v)
	}
	return StartOffset(s), EndOffset(e), nil
}

// Size splits "WxH" into width and height values
func Size(v interface{}) (width, height string, err error) {
	s := Format(v, BoolWords)
	w, h, found := strings.Cut(s, "x")
	if !found {
		return "", "", cerrors.Inputf("size should be WIDTHxHEIGHT, got %q", s)
	}
	return w, h, nil
}
