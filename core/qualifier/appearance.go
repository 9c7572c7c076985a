package qualifier

import (
	"strings"
)

// NormalizeColor rewrites #rrggbb to the rgb:rrggbb form used in URLs
func NormalizeColor(v interface{}) string {
	s := Format(v, BoolWords)
	if strings.HasPrefix(s, "#") {
		return "rgb:" + s[1:]
	}
	return s
}

func Quality(v interface{}) Qualifier {
	return expression(KindQuality, v)
}

// Radius takes one to four corner values joined with ':'
func Radius(values ...interface{}) Qualifier {
	parts := make([]interface{}, 0, len(values))
	for _, v := range values {
		parts = append(parts, NormalizeExpression(v))
	}
	return New(KindRadius, parts...)
}

// Angle takes a degree value, an expression or rotation modes joined with '.'
func Angle(values ...interface{}) Qualifier {
	parts := make([]interface{}, 0, len(values))
	for _, v := range values {
		parts = append(parts, NormalizeExpression(v))
	}
	return Qualifier{Key: KeyFor(KindAngle), Value: NewValue(parts...).WithDelimiter(".")}
}

func Opacity(v interface{}) Qualifier {
	return expression(KindOpacity, v)
}

func Background(v interface{}) Qualifier {
	return New(KindBackground, NormalizeColor(v))
}

func Color(v interface{}) Qualifier {
	return New(KindColor, NormalizeColor(v))
}

// Border takes a pre-built border value such as 3px_solid_black
func Border(v interface{}) Qualifier {
	return New(KindBorder, v)
}

// BorderOf builds a solid border; width defaults to 2 and color to black
func BorderOf(width interface{}, color interface{}) Qualifier {
	w := Format(width, BoolWords)
	if w == "" {
		w = "2"
	}
	c := NormalizeColor(color)
	if c == "" {
		c = "black"
	}
	return New(KindBorder, w+"px_solid_"+c)
}

// Effect joins an effect name with its arguments using ':'
func Effect(name interface{}, args ...interface{}) Qualifier {
	joined := NewValue(append([]interface{}{name}, args...)...).String()
	return expression(KindEffect, joined)
}

// Flags joins flags with '.'
func Flags(flags ...interface{}) Qualifier {
	return Qualifier{Key: KeyFor(KindFlags), Value: NewValue(flags...).WithDelimiter(".")}
}

func Prefix(v interface{}) Qualifier {
	return New(KindPrefix, v)
}

func DefaultImage(v interface{}) Qualifier {
	return New(KindDefaultImage, v)
}

func Density(v interface{}) Qualifier {
	return New(KindDensity, v)
}

func Page(v interface{}) Qualifier {
	return New(KindPage, v)
}

func ColorSpace(v interface{}) Qualifier {
	return New(KindColorSpace, v)
}

func FetchFormat(v interface{}) Qualifier {
	return New(KindFetchFormat, v)
}

func Delay(v interface{}) Qualifier {
	return New(KindDelay, v)
}
