// Package signature computes URL signatures, auth tokens and the analytics
// marker appended to delivery URLs.
package signature

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"hash"

	cerrors "cldurl/internal/errors"
)

// Signature algorithms
const (
	SHA1   = "sha1"
	SHA256 = "sha256"
)

const (
	shortLength = 8
	longLength  = 32
)

// SimpleSignature signs toSign with secret and returns the s--<sig>-- path
// segment. Long signatures always use SHA-256 and keep 32 characters.
func SimpleSignature(toSign, secret, algorithm string, long bool) (string, error) {
	if secret == "" {
		return "", cerrors.MissingSecret()
	}

	length := shortLength
	if long {
		algorithm = SHA256
		length = longLength
	}

	var h hash.Hash
	switch algorithm {
	case "", SHA1:
		h = sha1.New()
	case SHA256:
		h = sha256.New()
	default:
		return "", cerrors.Inputf("unsupported signature algorithm %q", algorithm)
	}

	h.Write([]byte(toSign + secret))
	encoded := base64.URLEncoding.EncodeToString(h.Sum(nil))
	if len(encoded) > length {
		encoded = encoded[:length]
	}
	return "s--" + encoded + "--", nil
}
