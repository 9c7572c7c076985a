// Package api - API types for URL generation
// These types define the contract for the /v1 endpoints.
// The API is stateless and deterministic for a given configuration.
package api

// URLRequest is the input to POST /v1/url
type URLRequest struct {
	// PublicID identifies the asset, or is the remote URL for fetch delivery
	PublicID string `json:"public_id"`

	// Options are flat legacy options: transformation parameters, asset
	// selection (resource_type, type, format, version, url_suffix) and
	// per-call configuration overrides (secure, sign_url, ...)
	Options map[string]interface{} `json:"options,omitempty"`
}

// URLResponse is the output of POST /v1/url
type URLResponse struct {
	URL       string `json:"url"`
	RequestID string `json:"request_id"`
}

// TransformationRequest is the input to POST /v1/transformation
type TransformationRequest struct {
	Options map[string]interface{} `json:"options"`
}

// TransformationResponse is the output of POST /v1/transformation
type TransformationResponse struct {
	Transformation string   `json:"transformation"`
	Stages         []string `json:"stages"`
	RequestID      string   `json:"request_id"`
}

// TokenRequest is the input to POST /v1/token. Zero fields fall back to the
// server's configured token settings.
type TokenRequest struct {
	ACL        []string `json:"acl,omitempty"`
	URL        string   `json:"url,omitempty"`
	IP         string   `json:"ip,omitempty"`
	StartTime  string   `json:"start_time,omitempty"`
	Expiration int64    `json:"expiration,omitempty"`
	Duration   int64    `json:"duration,omitempty"`
}

// TokenResponse is the output of POST /v1/token
type TokenResponse struct {
	Token     string `json:"token"`
	RequestID string `json:"request_id"`
}

// ErrorResponse wraps an error
type ErrorResponse struct {
	Error     ErrorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorDetail describes an error
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
