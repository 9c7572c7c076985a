package asset

import (
	"net/url"
	"regexp"
	"strings"

	"cldurl/core/escape"
	cerrors "cldurl/internal/errors"
)

var (
	repeatedSlashes = regexp.MustCompile(`([^:])/+`)
	absoluteURL     = regexp.MustCompile(`^https?:/`)
	versionPrefix   = regexp.MustCompile(`^v[0-9]+`)
)

// FinalizeAssetType returns the asset type segment: assetType/deliveryType,
// the SEO segment when a suffix is set, "iu" when shortened, or "" for the
// root path.
func FinalizeAssetType(d Descriptor, shorten, useRootPath bool) (string, error) {
	assetType, deliveryType := d.assetType(), d.deliveryType()

	if d.Suffix != "" {
		seg, ok := SuffixSegment(assetType, deliveryType)
		if !ok {
			return "", cerrors.UnsupportedSuffix(assetType, deliveryType, AllowedSuffixDeliveryTypes(assetType))
		}
		assetType, deliveryType = seg, ""
	}

	if useRootPath {
		rootable := (assetType == "image" && deliveryType == "upload") ||
			(assetType == "images" && deliveryType == "")
		if !rootable {
			return "", cerrors.NotSupported("root path for " + makeKey(d.assetType(), d.deliveryType()))
		}
		return "", nil
	}

	if shorten && assetType == "image" && deliveryType == "upload" {
		return "iu", nil
	}

	if deliveryType == "" {
		return assetType, nil
	}
	return assetType + "/" + deliveryType, nil
}

// FinalizeSource returns the escaped source path and the string covered by
// the URL signature. Absolute URLs (fetch) are escaped but otherwise kept as
// is; public ids are decoded first and receive the suffix and format.
func FinalizeSource(d Descriptor) (source, toSign string, err error) {
	source = repeatedSlashes.ReplaceAllString(d.PublicID, "${1}/")

	if absoluteURL.MatchString(source) {
		source = escape.Smart(source, escape.Source)
		return source, source, nil
	}

	if decoded, decodeErr := url.PathUnescape(source); decodeErr == nil {
		source = decoded
	}
	source = escape.Smart(source, escape.Source)
	toSign = source

	if d.Suffix != "" {
		if strings.ContainsAny(d.Suffix, "./") {
			return "", "", cerrors.Input("url suffix should not include . or /")
		}
		source += "/" + d.Suffix
	}

	ext := d.Format
	if ext == "" {
		ext = d.Extension
	}
	if ext != "" {
		source += "." + ext
		toSign += "." + ext
	}
	return source, toSign, nil
}

// FinalizeVersion returns the version segment. Without an explicit version,
// v1 is forced for public ids in folders unless they already start with a
// version or are absolute URLs.
func FinalizeVersion(d Descriptor, forceVersion bool) string {
	version := d.Version
	if version == "" && forceVersion &&
		strings.Contains(d.PublicID, "/") &&
		!versionPrefix.MatchString(d.PublicID) &&
		!absoluteURL.MatchString(d.PublicID) {
		version = "1"
	}
	if version == "" {
		return ""
	}
	if versionPrefix.MatchString(version) {
		return version
	}
	return "v" + version
}
