package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTypeFollowsWrapping(t *testing.T) {
	base := MissingSecret()
	wrapped := fmt.Errorf("building url: %w", base)

	assert.True(t, IsType(wrapped, TypeMissingSecret))
	assert.False(t, IsType(wrapped, TypeMissingCloudName))
	assert.Equal(t, TypeMissingSecret, TypeOf(wrapped))
	assert.Equal(t, TypeInternal, TypeOf(stderrors.New("plain")))
}

func TestUnsupportedSuffixListsAllowedTypes(t *testing.T) {
	err := UnsupportedSuffix("image", "fetch", []string{"upload", "private", "authenticated"})

	assert.Equal(t, TypeUnsupportedSuffix, err.Type)
	assert.Contains(t, err.Error(), "upload, private, authenticated")
	assert.Equal(t, "image", err.Context["asset_type"])
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("unexpected EOF")
	err := MalformedConfiguration("parsing config.json", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[MALFORMED_CONFIGURATION] parsing config.json: unexpected EOF", err.Error())
}
