package engine

import (
	"github.com/spf13/cast"

	"cldurl/core/asset"
	"cldurl/core/legacy"
	"cldurl/internal/config"
	cerrors "cldurl/internal/errors"
)

// Descriptor option keys consumed by URL before translation
var descriptorKeys = []string{
	"resource_type", "type", "format", "version", "url_suffix",
}

// URL builds a delivery URL from a flat option map. Configuration keys in
// options override cfg for this call, descriptor keys select the asset and
// every other key is translated into the transformation.
func URL(cfg config.Config, publicID string, options legacy.Options, opts ...Option) (string, error) {
	options = options.Clone()

	cfg, err := cfg.Apply(options)
	if err != nil {
		return "", err
	}

	d, err := descriptor(publicID, options)
	if err != nil {
		return "", err
	}

	// Fetched assets are converted on the fly
	if d.DeliveryType == "fetch" && d.Format != "" {
		if _, ok := options["fetch_format"]; !ok {
			options["fetch_format"] = d.Format
		}
		d.Format = ""
	}

	for _, k := range append(descriptorKeys, config.Keys...) {
		if k != "responsive_width" {
			delete(options, k)
		}
	}

	var settings legacy.Settings
	if d.IsTransformable() {
		settings = legacy.Settings{
			ResponsiveWidth:               cfg.URL.ResponsiveWidth,
			ResponsiveWidthTransformation: legacy.Options(cfg.URL.ResponsiveWidthTransformation),
		}
	} else {
		delete(options, "responsive_width")
	}
	t, err := legacy.TranslateWith(options, settings)
	if err != nil {
		return "", err
	}

	return NewBuilder(cfg, opts...).build(d, t)
}

func descriptor(publicID string, options legacy.Options) (asset.Descriptor, error) {
	d := asset.New(publicID)

	str := func(key string) (string, error) {
		v, ok := options[key]
		if !ok || v == nil {
			return "", nil
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			return "", cerrors.Inputf("option %s must be a string, got %T", key, v)
		}
		return s, nil
	}

	fields := []struct {
		key    string
		target *string
	}{
		{"resource_type", &d.AssetType},
		{"type", &d.DeliveryType},
		{"format", &d.Format},
		{"url_suffix", &d.Suffix},
		{"version", &d.Version},
	}
	for _, f := range fields {
		s, err := str(f.key)
		if err != nil {
			return asset.Descriptor{}, err
		}
		if s != "" {
			*f.target = s
		}
	}
	return d, nil
}
