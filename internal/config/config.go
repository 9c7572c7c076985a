// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	cerrors "cldurl/internal/errors"
	"cldurl/internal/logging"
)

// Signature algorithms accepted by CloudConfig.SignatureAlgorithm
const (
	AlgorithmSHA1   = "sha1"
	AlgorithmSHA256 = "sha256"
)

// Config is the main application configuration
type Config struct {
	// Cloud identifies the account and its credentials
	Cloud CloudConfig `json:"cloud" yaml:"cloud"`

	// URL contains delivery URL settings
	URL URLConfig `json:"url" yaml:"url"`

	// AuthToken contains token based authentication settings
	AuthToken AuthTokenConfig `json:"auth_token" yaml:"auth_token"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`
}

// CloudConfig contains account settings
type CloudConfig struct {
	// CloudName is the account's cloud name
	CloudName string `json:"cloud_name" yaml:"cloud_name" mapstructure:"cloud_name"`

	// APIKey is the public API key
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// APISecret signs URLs
	APISecret string `json:"api_secret,omitempty" yaml:"api_secret,omitempty" mapstructure:"api_secret"`

	// OAuthToken is used by API clients instead of key/secret
	OAuthToken string `json:"oauth_token,omitempty" yaml:"oauth_token,omitempty" mapstructure:"oauth_token"`

	// SignatureAlgorithm is sha1 (default) or sha256
	SignatureAlgorithm string `json:"signature_algorithm" yaml:"signature_algorithm" mapstructure:"signature_algorithm"`
}

// URLConfig contains delivery URL settings
type URLConfig struct {
	Secure      bool   `json:"secure" yaml:"secure" mapstructure:"secure"`
	PrivateCDN  bool   `json:"private_cdn" yaml:"private_cdn" mapstructure:"private_cdn"`
	CNAME       string `json:"cname,omitempty" yaml:"cname,omitempty" mapstructure:"cname"`
	SecureCNAME string `json:"secure_cname,omitempty" yaml:"secure_cname,omitempty" mapstructure:"secure_cname"`

	// CDNSubdomain shards non-secure hosts across a1..a5 / res-1..res-5
	CDNSubdomain bool `json:"cdn_subdomain" yaml:"cdn_subdomain" mapstructure:"cdn_subdomain"`

	// SecureCDNSubdomain is nil when not set explicitly. Unset values
	// inherit CDNSubdomain on the shared host only.
	SecureCDNSubdomain *bool `json:"secure_cdn_subdomain,omitempty" yaml:"secure_cdn_subdomain,omitempty" mapstructure:"secure_cdn_subdomain"`

	Shorten          bool `json:"shorten" yaml:"shorten" mapstructure:"shorten"`
	UseRootPath      bool `json:"use_root_path" yaml:"use_root_path" mapstructure:"use_root_path"`
	ForceVersion     bool `json:"force_version" yaml:"force_version" mapstructure:"force_version"`
	Analytics        bool `json:"analytics" yaml:"analytics" mapstructure:"analytics"`
	SignURL          bool `json:"sign_url" yaml:"sign_url" mapstructure:"sign_url"`
	LongURLSignature bool `json:"long_url_signature" yaml:"long_url_signature" mapstructure:"long_url_signature"`
	ResponsiveWidth  bool `json:"responsive_width" yaml:"responsive_width" mapstructure:"responsive_width"`

	// ResponsiveWidthTransformation replaces the default c_limit,w_auto stage
	ResponsiveWidthTransformation map[string]interface{} `json:"responsive_width_transformation,omitempty" yaml:"responsive_width_transformation,omitempty" mapstructure:"responsive_width_transformation"`
}

// AuthTokenConfig contains token based authentication settings
type AuthTokenConfig struct {
	// Key is the hex encoded token key
	Key string `json:"key,omitempty" yaml:"key,omitempty" mapstructure:"key"`

	IP  string   `json:"ip,omitempty" yaml:"ip,omitempty" mapstructure:"ip"`
	ACL []string `json:"acl,omitempty" yaml:"acl,omitempty" mapstructure:"acl"`

	// StartTime is a unix timestamp or the literal "now"
	StartTime string `json:"start_time,omitempty" yaml:"start_time,omitempty" mapstructure:"start_time"`

	// Expiration is a unix timestamp
	Expiration int64 `json:"expiration,omitempty" yaml:"expiration,omitempty" mapstructure:"expiration"`

	// Duration in seconds, used when Expiration is zero
	Duration int64 `json:"duration,omitempty" yaml:"duration,omitempty" mapstructure:"duration"`
}

// Enabled reports whether token authentication is configured
func (a AuthTokenConfig) Enabled() bool {
	return a.Key != ""
}

// Default returns a default configuration
func Default() Config {
	return Config{
		Cloud: CloudConfig{
			SignatureAlgorithm: AlgorithmSHA1,
		},
		URL: URLConfig{
			ForceVersion: true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Clone returns a deep copy, so that the copy shares no mutable state with c
func (c Config) Clone() Config {
	out := c
	if c.URL.SecureCDNSubdomain != nil {
		v := *c.URL.SecureCDNSubdomain
		out.URL.SecureCDNSubdomain = &v
	}
	if c.URL.ResponsiveWidthTransformation != nil {
		out.URL.ResponsiveWidthTransformation = make(map[string]interface{}, len(c.URL.ResponsiveWidthTransformation))
		for k, v := range c.URL.ResponsiveWidthTransformation {
			out.URL.ResponsiveWidthTransformation[k] = v
		}
	}
	if c.AuthToken.ACL != nil {
		out.AuthToken.ACL = append([]string(nil), c.AuthToken.ACL...)
	}
	return out
}

// Redacted returns a copy with secrets masked for display
func (c Config) Redacted() Config {
	out := c.Clone()
	out.Cloud.APISecret = mask(out.Cloud.APISecret)
	out.Cloud.OAuthToken = mask(out.Cloud.OAuthToken)
	out.AuthToken.Key = mask(out.AuthToken.Key)
	return out
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}

// Load loads configuration from a JSON, JSONC or YAML file.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, err
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes configuration data; ext selects the format (".yaml", ".yml",
// otherwise JSON with comments and trailing commas allowed)
func Parse(data []byte, ext string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, cerrors.MalformedConfiguration("parsing yaml configuration", err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return Config{}, cerrors.MalformedConfiguration("parsing json configuration", err)
		}
	}
	return cfg, nil
}

// Save saves configuration to a file
func (c Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// Global configuration instance, used only as a default source
var (
	globalMu     sync.RWMutex
	globalConfig = Default()
)

// Get returns a copy of the global configuration
func Get() Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalConfig.Clone()
}

// Set sets the global configuration
func Set(config Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = config.Clone()
}
