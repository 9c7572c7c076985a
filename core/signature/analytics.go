package signature

import (
	"regexp"
	"runtime"
	"strconv"
	"strings"

	cerrors "cldurl/internal/errors"
)

// AnalyticsParam is the query parameter carrying the analytics signature
const AnalyticsParam = "_a"

const (
	analyticsAlgorithm = "B"
	analyticsProduct   = "A"
	base64Chars        = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
)

// Analytics identifies the library in delivery URLs
type Analytics struct {
	SDKCode     string
	SDKVersion  string
	TechVersion string
	Feature     string
}

var goVersion = regexp.MustCompile(`^go(\d+)\.(\d+)`)

// DefaultAnalytics returns the marker of this library on the running Go version
func DefaultAnalytics(version string) Analytics {
	tech := "0.0"
	if m := goVersion.FindStringSubmatch(runtime.Version()); m != nil {
		tech = m[1] + "." + m[2]
	}
	return Analytics{SDKCode: "G", SDKVersion: version, TechVersion: tech, Feature: "0"}
}

// Signature returns the _a value: algorithm, product, sdk code, encoded sdk
// and tech versions and the feature code
func (a Analytics) Signature() (string, error) {
	sdk, err := EncodeVersion(a.SDKVersion)
	if err != nil {
		return "", err
	}
	tech, err := EncodeVersion(a.TechVersion)
	if err != nil {
		return "", err
	}
	feature := a.Feature
	if feature == "" {
		feature = "0"
	}
	return analyticsAlgorithm + analyticsProduct + a.SDKCode + sdk + tech + feature, nil
}

// EncodeVersion packs a dotted version into base64 characters: segments are
// reversed and zero padded to two digits, the resulting number is written in
// binary padded to six bits per segment, then split into 6 bit characters.
func EncodeVersion(version string) (string, error) {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return "", cerrors.Inputf("version %q must have at least two segments", version)
	}

	var digits strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		if len(parts[i]) < 2 {
			digits.WriteString(strings.Repeat("0", 2-len(parts[i])))
		}
		digits.WriteString(parts[i])
	}
	n, err := strconv.ParseUint(digits.String(), 10, 64)
	if err != nil {
		return "", cerrors.Inputf("version %q is not numeric", version)
	}

	bits := strconv.FormatUint(n, 2)
	width := len(parts) * 6
	if len(bits) > width {
		return "", cerrors.Inputf("version %q is too large to encode", version)
	}
	bits = strings.Repeat("0", width-len(bits)) + bits

	out := make([]byte, 0, len(bits)/6)
	for i := 0; i < len(bits); i += 6 {
		v, _ := strconv.ParseUint(bits[i:i+6], 2, 8)
		out = append(out, base64Chars[v])
	}
	return string(out), nil
}
