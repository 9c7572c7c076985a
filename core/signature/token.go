package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"cldurl/core/escape"
	cerrors "cldurl/internal/errors"
)

// TokenName is the query parameter carrying the token
const TokenName = "__cld_token__"

// StartNow resolves the token start time to the current time
const StartNow = "now"

// AuthToken holds the settings of a time limited access token
type AuthToken struct {
	// Key is hex encoded
	Key string
	IP  string
	ACL []string

	// StartTime is a unix timestamp, StartNow or empty
	StartTime string

	// Expiration is a unix timestamp; when zero it is start + Duration
	Expiration int64
	Duration   int64

	// Clock returns the current time; time.Now when nil
	Clock func() time.Time
}

func (t AuthToken) now() int64 {
	if t.Clock != nil {
		return t.Clock().Unix()
	}
	return time.Now().Unix()
}

// Generate builds "__cld_token__=..." for path. The path is signed only when
// no ACL is set, and is never part of the emitted token.
func (t AuthToken) Generate(path string) (string, error) {
	key, err := hex.DecodeString(t.Key)
	if err != nil || len(key) == 0 {
		return "", cerrors.InvalidAuthToken("auth token key must be a non-empty hex string")
	}

	var (
		start    int64
		hasStart bool
	)
	switch t.StartTime {
	case "":
	case StartNow:
		start, hasStart = t.now(), true
	default:
		start, err = strconv.ParseInt(t.StartTime, 10, 64)
		if err != nil {
			return "", cerrors.InvalidAuthToken("start time must be a unix timestamp or " + StartNow)
		}
		hasStart = true
	}

	expiration := t.Expiration
	if expiration == 0 {
		if t.Duration == 0 {
			return "", cerrors.InvalidAuthToken("must provide expiration or duration")
		}
		base := start
		if !hasStart {
			base = t.now()
		}
		expiration = base + t.Duration
	}

	if path == "" && len(t.ACL) == 0 {
		return "", cerrors.InvalidAuthToken("must provide acl or url")
	}

	var parts []string
	if t.IP != "" {
		parts = append(parts, "ip="+t.IP)
	}
	if hasStart {
		parts = append(parts, "st="+strconv.FormatInt(start, 10))
	}
	parts = append(parts, "exp="+strconv.FormatInt(expiration, 10))
	if len(t.ACL) > 0 {
		parts = append(parts, "acl="+escape.TokenLower(strings.Join(t.ACL, "!")))
	}

	toSign := parts
	if len(t.ACL) == 0 {
		toSign = append(append([]string(nil), parts...), "url="+escape.TokenLower(path))
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(strings.Join(toSign, "~")))
	parts = append(parts, "hmac="+hex.EncodeToString(mac.Sum(nil)))

	return TokenName + "=" + strings.Join(parts, "~"), nil
}
