package onetimesecret

import (
	"net/http"
	"time"
)

// TTL bounds enforced when client-side TTL validation is enabled.
const (
	MinTTL int64 = 1      // 1 second
	MaxTTL int64 = 604800 // 7 days
)

const defaultUserAgent = "otsdesk-go/" + Version

// clientConfig holds configuration for the client.
type clientConfig struct {
	httpClient     *http.Client
	timeout        time.Duration
	userAgent      string
	validateTTL    bool
	allowHTTP      bool
	identityPolicy IdentityPolicy
}

// createConfig holds the optional fields of a create call.
type createConfig struct {
	passphrase string
	ttl        int64
	recipient  string
}

// Option configures the client.
type Option func(*clientConfig)

// CreateOption configures secret creation.
type CreateOption func(*createConfig)

// WithHTTPClient sets a custom HTTP client, replacing the default
// transport and its timeouts.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request deadline.
// Default: 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithUserAgent overrides the identifying User-Agent tag.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithTTLValidation controls whether the client enforces TTL bounds
// [MinTTL, MaxTTL] before sending, or leaves validation to the server.
// Default: enabled.
func WithTTLValidation(enabled bool) Option {
	return func(c *clientConfig) {
		c.validateTTL = enabled
	}
}

// WithIdentityPolicy sets the credential identity validation policy.
// Default: IdentityAny.
func WithIdentityPolicy(policy IdentityPolicy) Option {
	return func(c *clientConfig) {
		c.identityPolicy = policy
	}
}

// WithInsecureHTTP permits plaintext http endpoints. Intended for local
// test servers only; production endpoints are HTTPS.
func WithInsecureHTTP() Option {
	return func(c *clientConfig) {
		c.allowHTTP = true
	}
}

// WithPassphrase protects the secret with an additional passphrase that
// the recipient must supply to retrieve it.
func WithPassphrase(passphrase string) CreateOption {
	return func(c *createConfig) {
		c.passphrase = passphrase
	}
}

// WithTTL sets the secret lifetime in seconds. Zero leaves the lifetime
// to the server default.
func WithTTL(seconds int64) CreateOption {
	return func(c *createConfig) {
		c.ttl = seconds
	}
}

// WithRecipient asks the server to email the secret link to recipient.
func WithRecipient(recipient string) CreateOption {
	return func(c *createConfig) {
		c.recipient = recipient
	}
}
