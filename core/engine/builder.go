// Package engine assembles delivery URLs.
// This is the primary API; CLI and HTTP are thin wrappers around it.
package engine

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"cldurl/core/asset"
	"cldurl/core/distribution"
	"cldurl/core/legacy"
	"cldurl/core/signature"
	"cldurl/core/transformation"
	"cldurl/internal/config"
	cerrors "cldurl/internal/errors"
	"cldurl/internal/logging"
)

// Version is the library version reported in the analytics marker
const Version = "1.0.0"

var absoluteURL = regexp.MustCompile(`^https?:`)

// Builder assembles URLs for one configuration. It holds a copy of the
// configuration and is safe for concurrent use.
type Builder struct {
	cfg       config.Config
	logger    *zap.Logger
	clock     func() time.Time
	analytics signature.Analytics
}

// Option configures a Builder
type Option func(*Builder)

// WithLogger sets the logger used for debug output
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithClock sets the time source used for "now" token start times
func WithClock(clock func() time.Time) Option {
	return func(b *Builder) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// WithAnalytics overrides the analytics marker
func WithAnalytics(a signature.Analytics) Option {
	return func(b *Builder) {
		b.analytics = a
	}
}

// NewBuilder creates a builder over a copy of cfg
func NewBuilder(cfg config.Config, opts ...Option) *Builder {
	b := &Builder{
		cfg:       cfg.Clone(),
		logger:    logging.Named("engine"),
		clock:     time.Now,
		analytics: signature.DefaultAnalytics(Version),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Config returns a copy of the builder's configuration
func (b *Builder) Config() config.Config {
	return b.cfg.Clone()
}

// Build returns the delivery URL of d with transformation t applied.
// t may be nil.
func (b *Builder) Build(d asset.Descriptor, t *transformation.Transformation) (string, error) {
	if b.cfg.URL.ResponsiveWidth && d.IsTransformable() {
		stage, err := legacy.TranslateWith(legacy.Options{}, legacy.Settings{
			ResponsiveWidth:               true,
			ResponsiveWidthTransformation: legacy.Options(b.cfg.URL.ResponsiveWidthTransformation),
		})
		if err != nil {
			return "", err
		}
		t = t.Clone()
		if t == nil {
			t = transformation.New()
		}
		t.Prepend(stage)
	}
	return b.build(d, t)
}

// BuildURI is Build returning a parsed URL
func (b *Builder) BuildURI(d asset.Descriptor, t *transformation.Transformation) (*url.URL, error) {
	s, err := b.Build(d, t)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, cerrors.Internal("parsing assembled url", err)
	}
	return u, nil
}

func (b *Builder) build(d asset.Descriptor, t *transformation.Transformation) (string, error) {
	deliveryType := d.DeliveryType
	if deliveryType == "" {
		deliveryType = asset.DefaultDeliveryType
	}
	// Already delivered URLs pass through untouched
	if (deliveryType == "upload" || deliveryType == "asset") && absoluteURL.MatchString(d.PublicID) {
		b.logger.Debug("public id is an absolute url, returned as is")
		return d.PublicID, nil
	}

	source, toSign, err := asset.FinalizeSource(d)
	if err != nil {
		return "", err
	}

	assetType, err := asset.FinalizeAssetType(d, b.cfg.URL.Shorten, b.cfg.URL.UseRootPath)
	if err != nil {
		return "", err
	}

	var transformationPart string
	if d.IsTransformable() {
		transformationPart = t.String()
	}

	version := asset.FinalizeVersion(d, b.cfg.URL.ForceVersion)

	useToken := b.cfg.AuthToken.Enabled() && b.cfg.URL.SignURL

	var signaturePart string
	if b.cfg.URL.SignURL && !useToken {
		signed := join(transformationPart, toSign)
		signaturePart, err = signature.SimpleSignature(signed, b.cfg.Cloud.APISecret,
			b.cfg.Cloud.SignatureAlgorithm, b.cfg.URL.LongURLSignature)
		if err != nil {
			return "", err
		}
		b.logger.Debug("signed url",
			zap.String("algorithm", b.cfg.Cloud.SignatureAlgorithm),
			zap.Bool("long", b.cfg.URL.LongURLSignature))
	}

	prefix, err := distribution.NewResolver(b.distributionInput()).Resolve(source)
	if err != nil {
		return "", err
	}
	b.logger.Debug("resolved distribution", zap.String("prefix", prefix))

	out := join(prefix, assetType, signaturePart, transformationPart, version, source)

	switch {
	case useToken:
		token, err := b.token().Generate(urlPath(out))
		if err != nil {
			return "", err
		}
		b.logger.Debug("appended auth token", zap.Bool("acl", len(b.cfg.AuthToken.ACL) > 0))
		out += "?" + token
	case b.cfg.URL.Analytics && !strings.Contains(d.PublicID, "?"):
		marker, err := b.analytics.Signature()
		if err != nil {
			return "", err
		}
		out += "?" + signature.AnalyticsParam + "=" + marker
	}
	return out, nil
}

func (b *Builder) distributionInput() distribution.Input {
	u := b.cfg.URL
	return distribution.Input{
		CloudName:          b.cfg.Cloud.CloudName,
		Secure:             u.Secure,
		PrivateCDN:         u.PrivateCDN,
		CNAME:              u.CNAME,
		SecureCNAME:        u.SecureCNAME,
		CDNSubdomain:       u.CDNSubdomain,
		SecureCDNSubdomain: u.SecureCDNSubdomain,
	}
}

func (b *Builder) token() signature.AuthToken {
	a := b.cfg.AuthToken
	return signature.AuthToken{
		Key:        a.Key,
		IP:         a.IP,
		ACL:        a.ACL,
		StartTime:  a.StartTime,
		Expiration: a.Expiration,
		Duration:   a.Duration,
		Clock:      b.clock,
	}
}

// Token generates a standalone auth token from the configured token settings,
// overridden by the non-zero fields of override
func (b *Builder) Token(override config.AuthTokenConfig, path string) (string, error) {
	t := b.token()
	if override.Key != "" {
		t.Key = override.Key
	}
	if override.IP != "" {
		t.IP = override.IP
	}
	if len(override.ACL) > 0 {
		t.ACL = override.ACL
	}
	if override.StartTime != "" {
		t.StartTime = override.StartTime
	}
	if override.Expiration != 0 || override.Duration != 0 {
		t.Expiration, t.Duration = override.Expiration, override.Duration
	}
	return t.Generate(path)
}

// urlPath returns the path of an assembled url, without scheme and host
func urlPath(s string) string {
	i := strings.Index(s, "://")
	if i < 0 {
		return s
	}
	rest := s[i+3:]
	if j := strings.Index(rest, "/"); j >= 0 {
		return rest[j:]
	}
	return "/"
}

func join(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "/")
}
