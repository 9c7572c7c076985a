package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "cldurl/internal/errors"
)

func TestKinds(t *testing.T) {
	k, ok := ParseKind("video")
	require.True(t, ok)
	assert.Equal(t, KindVideo, k)
	assert.Equal(t, "video", k.AssetType())

	_, ok = ParseKind("document")
	assert.False(t, ok)

	assert.True(t, KindImage.IsTransformable())
	assert.True(t, KindAuto.IsTransformable())
	assert.False(t, KindRaw.IsTransformable())
}

func TestDescriptorSetters(t *testing.T) {
	d := New("sample")
	v := d.WithFormat("jpg").WithVersion("123").As(KindVideo)

	assert.Equal(t, "", d.Format)
	assert.Equal(t, "image", d.AssetType)
	assert.Equal(t, "jpg", v.Format)
	assert.Equal(t, "video", v.AssetType)
	assert.Equal(t, "upload", v.DeliveryType)
	assert.False(t, New("file.zip").As(KindRaw).IsTransformable())
}

func TestFinalizeAssetType(t *testing.T) {
	tests := []struct {
		name      string
		d         Descriptor
		shorten   bool
		useRoot   bool
		want      string
		errorType cerrors.Type
	}{
		{"default", New("a"), false, false, "image/upload", ""},
		{"empty types default", Descriptor{PublicID: "a"}, false, false, "image/upload", ""},
		{"video private", New("a").WithAssetType("video").WithDeliveryType("private"), false, false, "video/private", ""},
		{"shorten", New("a"), true, false, "iu", ""},
		{"shorten other types untouched", New("a").WithDeliveryType("private"), true, false, "image/private", ""},
		{"suffix image upload", New("a").WithSuffix("hello"), false, false, "images", ""},
		{"suffix image private", New("a").WithDeliveryType("private").WithSuffix("hello"), false, false, "private_images", ""},
		{"suffix authenticated", New("a").WithDeliveryType("authenticated").WithSuffix("hello"), false, false, "authenticated_images", ""},
		{"suffix raw", New("a").WithAssetType("raw").WithSuffix("hello"), false, false, "files", ""},
		{"suffix video", New("a").WithAssetType("video").WithSuffix("hello"), false, false, "videos", ""},
		{"suffix wins over shorten", New("a").WithSuffix("hello"), true, false, "images", ""},
		{"root path", New("a"), false, true, "", ""},
		{"root path with suffix", New("a").WithSuffix("hello"), false, true, "", ""},
		{"root path not for video", New("a").WithAssetType("video"), false, true, "", cerrors.TypeNotSupported},
		{"suffix on fetch", New("a").WithDeliveryType("fetch").WithSuffix("hello"), false, false, "", cerrors.TypeUnsupportedSuffix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FinalizeAssetType(tt.d, tt.shorten, tt.useRoot)
			if tt.errorType != "" {
				require.Error(t, err)
				assert.True(t, cerrors.IsType(err, tt.errorType))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnsupportedSuffixListsAllowedTypes(t *testing.T) {
	_, err := FinalizeAssetType(New("a").WithDeliveryType("facebook").WithSuffix("x"), false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authenticated, private, upload")
	assert.Equal(t, []string{"upload"}, AllowedSuffixDeliveryTypes("video"))
}

func TestFinalizeSource(t *testing.T) {
	tests := []struct {
		name   string
		d      Descriptor
		source string
		toSign string
	}{
		{"plain", New("test"), "test", "test"},
		{"format", New("test").WithFormat("jpg"), "test.jpg", "test.jpg"},
		{"extension fallback", New("test").WithExtension("png"), "test.png", "test.png"},
		{"format beats extension", New("test").WithFormat("jpg").WithExtension("png"), "test.jpg", "test.jpg"},
		{"suffix not signed", New("test").WithSuffix("hello").WithFormat("jpg"), "test/hello.jpg", "test.jpg"},
		{"escapes unsafe", New("my image,1"), "my%20image%2C1", "my%20image%2C1"},
		{"decodes first", New("my%20image"), "my%20image", "my%20image"},
		{"keeps reserved", New("folder/a(1)!*'"), "folder/a(1)!*'", "folder/a(1)!*'"},
		{"collapses slashes", New("folder//sub///test"), "folder/sub/test", "folder/sub/test"},
		{
			"absolute url kept",
			New("http://google.com/path/to/image.png").WithFormat("jpg"),
			"http://google.com/path/to/image.png",
			"http://google.com/path/to/image.png",
		},
		{"absolute url escaped", New("http://x.com/a b.png"), "http://x.com/a%20b.png", "http://x.com/a%20b.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, toSign, err := FinalizeSource(tt.d)
			require.NoError(t, err)
			assert.Equal(t, tt.source, source)
			assert.Equal(t, tt.toSign, toSign)
		})
	}
}

func TestFinalizeSourceRejectsBadSuffix(t *testing.T) {
	for _, suffix := range []string{"a.b", "a/b"} {
		_, _, err := FinalizeSource(New("test").WithSuffix(suffix))
		require.Error(t, err)
		assert.True(t, cerrors.IsType(err, cerrors.TypeInput))
	}
}

func TestFinalizeVersion(t *testing.T) {
	tests := []struct {
		name  string
		d     Descriptor
		force bool
		want  string
	}{
		{"no version", New("test"), true, ""},
		{"explicit", New("test").WithVersion("1234"), true, "v1234"},
		{"explicit prefixed", New("test").WithVersion("v1234"), false, "v1234"},
		{"folder forced", New("folder/test"), true, "v1"},
		{"folder not forced", New("folder/test"), false, ""},
		{"folder already versioned", New("v1234/test"), true, ""},
		{"url not forced", New("http://google.com/a/b.png"), true, ""},
		{"explicit wins over folder", New("folder/test").WithVersion("5"), true, "v5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FinalizeVersion(tt.d, tt.force))
		})
	}
}
