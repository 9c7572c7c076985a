package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "cldurl/internal/errors"
)

func boolPtr(b bool) *bool { return &b }

func TestShard(t *testing.T) {
	tests := map[string]int{
		"test":        2,
		"sample":      1,
		"folder/test": 5,
		"image.jpg":   5,
		"sample.jpg":  4,
		"":            1,
	}
	for source, want := range tests {
		assert.Equal(t, want, Shard(source), source)
	}

	for i := 0; i < 500; i++ {
		s := Shard(string(rune('a'+i%26)) + string(rune(i)))
		assert.GreaterOrEqual(t, s, 1)
		assert.LessOrEqual(t, s, 5)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		in     Input
		source string
		want   string
	}{
		{"shared", Input{CloudName: "test123"}, "test", "http://res.cloudinary.com/test123"},
		{"shared sharded", Input{CloudName: "test123", CDNSubdomain: true}, "test", "http://res-2.cloudinary.com/test123"},
		{"private cdn", Input{CloudName: "test123", PrivateCDN: true}, "test", "http://test123-res.cloudinary.com"},
		{"private cdn sharded", Input{CloudName: "test123", PrivateCDN: true, CDNSubdomain: true}, "test", "http://test123-res-2.cloudinary.com"},
		{"cname", Input{CloudName: "test123", CNAME: "hello.com"}, "test", "http://hello.com/test123"},
		{"cname sharded", Input{CloudName: "test123", CNAME: "hello.com", CDNSubdomain: true}, "test", "http://a2.hello.com/test123"},
		{"secure shared", Input{CloudName: "test123", Secure: true}, "test", "https://res.cloudinary.com/test123"},
		{"secure inherits sharding on shared host", Input{CloudName: "test123", Secure: true, CDNSubdomain: true}, "test", "https://res-2.cloudinary.com/test123"},
		{
			"secure explicit no sharding",
			Input{CloudName: "test123", Secure: true, CDNSubdomain: true, SecureCDNSubdomain: boolPtr(false)},
			"test", "https://res.cloudinary.com/test123",
		},
		{"secure private cdn synthesized", Input{CloudName: "test123", Secure: true, PrivateCDN: true}, "test", "https://test123-res.cloudinary.com"},
		{
			"secure private cdn does not inherit sharding",
			Input{CloudName: "test123", Secure: true, PrivateCDN: true, CDNSubdomain: true},
			"test", "https://test123-res.cloudinary.com",
		},
		{
			"secure private cdn explicit sharding",
			Input{CloudName: "test123", Secure: true, PrivateCDN: true, SecureCDNSubdomain: boolPtr(true)},
			"test", "https://test123-res-2.cloudinary.com",
		},
		{
			"secure cname with private cdn",
			Input{CloudName: "test123", Secure: true, PrivateCDN: true, SecureCNAME: "something.else.com"},
			"test", "https://something.else.com",
		},
		{
			"secure cname on shared plan keeps cloud name",
			Input{CloudName: "test123", Secure: true, SecureCNAME: "something.else.com"},
			"test", "https://something.else.com/test123",
		},
		{
			"legacy akamai host is ignored",
			Input{CloudName: "test123", Secure: true, SecureCNAME: LegacySharedHost},
			"test", "https://res.cloudinary.com/test123",
		},
		{"secure ignores plain cname", Input{CloudName: "test123", Secure: true, CNAME: "hello.com"}, "test", "https://res.cloudinary.com/test123"},
		{"local proxy", Input{CloudName: "/proxy"}, "test", "/res/proxy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewResolver(tt.in).Resolve(tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveMissingCloudName(t *testing.T) {
	_, err := NewResolver(Input{Secure: true, PrivateCDN: true}).Resolve("test")
	require.Error(t, err)
	assert.True(t, cerrors.IsType(err, cerrors.TypeMissingCloudName))
}

func TestResolverCopiesInput(t *testing.T) {
	flag := true
	in := Input{CloudName: "test123", Secure: true, SecureCDNSubdomain: &flag}
	r := NewResolver(in)
	flag = false

	got, err := r.Resolve("test")
	require.NoError(t, err)
	assert.Equal(t, "https://res-2.cloudinary.com/test123", got)
}
