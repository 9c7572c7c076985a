package asset

import (
	"sort"
	"strings"
)

// suffixSegments maps asset/delivery type pairs that accept an SEO suffix to
// the asset type segment used in their place
var suffixSegments = map[string]string{
	makeKey("image", "upload"):        "images",
	makeKey("image", "private"):       "private_images",
	makeKey("image", "authenticated"): "authenticated_images",
	makeKey("raw", "upload"):          "files",
	makeKey("video", "upload"):        "videos",
}

// SuffixSegment returns the segment replacing assetType/deliveryType when an
// SEO suffix is used
func SuffixSegment(assetType, deliveryType string) (string, bool) {
	seg, ok := suffixSegments[makeKey(assetType, deliveryType)]
	return seg, ok
}

// AllowedSuffixDeliveryTypes returns the delivery types accepting a suffix for assetType
func AllowedSuffixDeliveryTypes(assetType string) []string {
	prefix := assetType + "/"
	var out []string
	for key := range suffixSegments {
		if strings.HasPrefix(key, prefix) {
			out = append(out, key[len(prefix):])
		}
	}
	sort.Strings(out)
	return out
}

func makeKey(assetType, deliveryType string) string {
	return assetType + "/" + deliveryType
}
