// Package escape implements the percent-escaping variants used in delivery URLs.
//
// Each variant keeps a different set of bytes verbatim; everything else is
// written as %XX. The sets differ between public ids, layer text and auth
// token fragments, and the CDN compares signatures over the escaped form, so
// the sets must not be unified.
package escape

import "strings"

const upperHex = "0123456789ABCDEF"
const lowerHex = "0123456789abcdef"

// Keep reports whether a byte is written verbatim
type Keep func(c byte) bool

func isUnreserved(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c == '-' || c == '_' || c == '.' || c == '~'
}

// Source keeps RFC 3986 unreserved characters plus !*'():/
func Source(c byte) bool {
	if isUnreserved(c) {
		return true
	}
	return strings.IndexByte("!*'():/", c) >= 0
}

// Layer keeps [a-zA-Z0-9_.-/:], the set accepted inside layer parameters
func Layer(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c == '_' || c == '.' || c == '-' || c == '/' || c == ':'
}

// Separators keeps everything except the layer separators , and /
func Separators(c byte) bool {
	return c != ',' && c != '/'
}

// Smart escapes every byte of s not kept by keep using upper case hex
func Smart(s string, keep Keep) string {
	return escape(s, keep, upperHex)
}

const tokenUnsafe = " \"#%&'/:;<=>?@[\\]^`{|}~"

// TokenLower escapes the auth token unsafe set with lower case hex
func TokenLower(s string) string {
	return escape(s, func(c byte) bool { return strings.IndexByte(tokenUnsafe, c) < 0 }, lowerHex)
}

func escape(s string, keep Keep, hex string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if keep(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}
