package qualifier

import "sort"

// Kind names a qualifier semantically
type Kind string

// Qualifier kinds
const (
	KindAngle               Kind = "angle"
	KindAspectRatio         Kind = "aspect_ratio"
	KindAudioCodec          Kind = "audio_codec"
	KindAudioFrequency      Kind = "audio_frequency"
	KindBackground          Kind = "background"
	KindBitRate             Kind = "bit_rate"
	KindBorder              Kind = "border"
	KindColor               Kind = "color"
	KindColorSpace          Kind = "color_space"
	KindCrop                Kind = "crop"
	KindCustomFunction      Kind = "custom_function"
	KindDefaultImage        Kind = "default_image"
	KindDelay               Kind = "delay"
	KindDensity             Kind = "density"
	KindDPR                 Kind = "dpr"
	KindDuration            Kind = "duration"
	KindEffect              Kind = "effect"
	KindEndOffset           Kind = "end_offset"
	KindFetchFormat         Kind = "fetch_format"
	KindFlags               Kind = "flags"
	KindFPS                 Kind = "fps"
	KindGravity             Kind = "gravity"
	KindHeight              Kind = "height"
	KindIf                  Kind = "if"
	KindKeyframeInterval    Kind = "keyframe_interval"
	KindNamedTransformation Kind = "named_transformation"
	KindOpacity             Kind = "opacity"
	KindOverlay             Kind = "overlay"
	KindPage                Kind = "page"
	KindPrefix              Kind = "prefix"
	KindQuality             Kind = "quality"
	KindRadius              Kind = "radius"
	KindStartOffset         Kind = "start_offset"
	KindStreamingProfile    Kind = "streaming_profile"
	KindUnderlay            Kind = "underlay"
	KindVideoCodec          Kind = "video_codec"
	KindVideoSampling       Kind = "video_sampling"
	KindWidth               Kind = "width"
	KindX                   Kind = "x"
	KindY                   Kind = "y"
	KindZoom                Kind = "zoom"
)

// keys maps every kind to the short key understood by the delivery CDN.
// The map is never written after package initialization.
var keys = map[Kind]string{
	KindAngle:               "a",
	KindAspectRatio:         "ar",
	KindAudioCodec:          "ac",
	KindAudioFrequency:      "af",
	KindBackground:          "b",
	KindBitRate:             "br",
	KindBorder:              "bo",
	KindColor:               "co",
	KindColorSpace:          "cs",
	KindCrop:                "c",
	KindCustomFunction:      "fn",
	KindDefaultImage:        "d",
	KindDelay:               "dl",
	KindDensity:             "dn",
	KindDPR:                 "dpr",
	KindDuration:            "du",
	KindEffect:              "e",
	KindEndOffset:           "eo",
	KindFetchFormat:         "f",
	KindFlags:               "fl",
	KindFPS:                 "fps",
	KindGravity:             "g",
	KindHeight:              "h",
	KindIf:                  "if",
	KindKeyframeInterval:    "ki",
	KindNamedTransformation: "t",
	KindOpacity:             "o",
	KindOverlay:             "l",
	KindPage:                "pg",
	KindPrefix:              "p",
	KindQuality:             "q",
	KindRadius:              "r",
	KindStartOffset:         "so",
	KindStreamingProfile:    "sp",
	KindUnderlay:            "u",
	KindVideoCodec:          "vc",
	KindVideoSampling:       "vs",
	KindWidth:               "w",
	KindX:                   "x",
	KindY:                   "y",
	KindZoom:                "z",
}

// KeyFor returns the short key for a kind. Unknown kinds use their own name.
func KeyFor(kind Kind) string {
	if key, ok := keys[kind]; ok {
		return key
	}
	return string(kind)
}

// Registered reports whether kind has a registered short key
func Registered(kind Kind) bool {
	_, ok := keys[kind]
	return ok
}

// Kinds returns all registered kinds in sorted order
func Kinds() []Kind {
	out := make([]Kind, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
