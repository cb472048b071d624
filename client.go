package onetimesecret

import (
	"context"
	"errors"

	"github.com/onetimesecret/desktop-go/internal/api"
)

// Version is the client version, reported in the User-Agent.
const Version = "0.1.0"

// Secret metadata states reported by the server.
const (
	StateNew      = "new"
	StateViewed   = "viewed"
	StateReceived = "received"
	StateBurned   = "burned"
)

// CreateResult is the outcome of sharing a secret. Timestamps are epoch
// seconds.
type CreateResult struct {
	// SecretKey is the consumer-facing, single-use fetch token.
	SecretKey string
	// MetadataKey is the owner-facing key for status checks and burning.
	MetadataKey string
	// Link is the shareable URL, "{endpoint}/secret/{secret_key}".
	Link string
	// TTL is the secret lifetime in seconds as confirmed by the server.
	TTL       int64
	Created   int64
	Updated   int64
	Recipient []string
}

// RetrieveResult is the outcome of fetching a secret. Retrieval is
// destructive: the server deletes the secret on a successful fetch, and
// the client never caches Value.
type RetrieveResult struct {
	Value       string
	SecretKey   string
	MetadataKey string
}

// Metadata is the owner-facing state of a secret. Timestamps are epoch
// seconds; Received is zero until the secret has been fetched.
type Metadata struct {
	SecretKey   string
	MetadataKey string
	CustID      string
	State       string
	TTL         int64
	Created     int64
	Updated     int64
	Received    int64
	Recipient   []string
}

// Client issues OneTimeSecret API operations for exactly one validated
// Credential. All fields are set at construction and never mutated, so
// a single Client may be shared across goroutines without locking. To
// switch credentials, build a new Client.
type Client struct {
	api         *api.Client
	endpoint    string
	validateTTL bool
}

// New builds a Client from a validated credential. The Basic auth
// header is computed here, once, and reused verbatim on every request.
func New(cred Credential, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		userAgent:   defaultUserAgent,
		validateTTL: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cred.Validate(cfg.identityPolicy); err != nil {
		return nil, err
	}

	apiClient, err := api.NewClient(api.Config{
		BaseURL:    cred.Endpoint,
		AuthHeader: cred.authHeader(),
		UserAgent:  cfg.userAgent,
		HTTPClient: cfg.httpClient,
		Timeout:    cfg.timeout,
		AllowHTTP:  cfg.allowHTTP,
	})
	if err != nil {
		return nil, &Error{Kind: KindConfiguration, Message: err.Error(), Err: err}
	}

	return &Client{
		api:         apiClient,
		endpoint:    apiClient.BaseURL(),
		validateTTL: cfg.validateTTL,
	}, nil
}

// Endpoint returns the normalized server base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// CreateSecret shares a new secret and returns its keys and shareable
// link. The plaintext is validated before any request is issued.
func (c *Client) CreateSecret(ctx context.Context, secret string, opts ...CreateOption) (*CreateResult, error) {
	if secret == "" {
		return nil, invalidInputf("secret cannot be empty")
	}

	var cfg createConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if c.validateTTL && cfg.ttl != 0 && (cfg.ttl < MinTTL || cfg.ttl > MaxTTL) {
		return nil, invalidInputf("TTL must be between %d second and %d seconds (7 days)", MinTTL, MaxTTL)
	}

	resp, err := c.api.CreateSecret(ctx, api.CreateSecretRequest{
		Secret:     secret,
		Passphrase: cfg.passphrase,
		TTL:        cfg.ttl,
		Recipient:  cfg.recipient,
	})
	if err != nil {
		return nil, wrapError(err)
	}

	return &CreateResult{
		SecretKey:   resp.SecretKey,
		MetadataKey: resp.MetadataKey,
		Link:        c.endpoint + "/secret/" + resp.SecretKey,
		TTL:         resp.TTL,
		Created:     resp.Created,
		Updated:     resp.Updated,
		Recipient:   resp.Recipient,
	}, nil
}

// RetrieveSecret fetches a secret by its single-use key, consuming it
// server-side. Pass an empty passphrase when the secret has none.
//
// This operation is destructive and is never retried by the client: a
// retry after an unacknowledged success would come back NotFound and be
// indistinguishable from a secret that never existed.
func (c *Client) RetrieveSecret(ctx context.Context, secretKey, passphrase string) (*RetrieveResult, error) {
	if secretKey == "" {
		return nil, invalidInputf("secret key cannot be empty")
	}

	resp, err := c.api.RetrieveSecret(ctx, secretKey, passphrase)
	if err != nil {
		return nil, wrapError(err)
	}

	return &RetrieveResult{
		Value:       resp.Value,
		SecretKey:   resp.SecretKey,
		MetadataKey: resp.MetadataKey,
	}, nil
}

// GetMetadata fetches the owner-facing state of a secret without
// consuming it.
func (c *Client) GetMetadata(ctx context.Context, metadataKey string) (*Metadata, error) {
	if metadataKey == "" {
		return nil, invalidInputf("metadata key cannot be empty")
	}

	resp, err := c.api.GetMetadata(ctx, metadataKey)
	if err != nil {
		return nil, wrapError(err)
	}
	return metadataFromAPI(resp), nil
}

// BurnSecret invalidates a secret before it has been read and returns
// the final metadata with State = StateBurned.
func (c *Client) BurnSecret(ctx context.Context, metadataKey string) (*Metadata, error) {
	if metadataKey == "" {
		return nil, invalidInputf("metadata key cannot be empty")
	}

	resp, err := c.api.BurnSecret(ctx, metadataKey)
	if err != nil {
		return nil, wrapError(err)
	}
	return metadataFromAPI(resp), nil
}

// TestConnection probes the service. It reports false without error on
// any non-2xx response, and an error only for transport-level failures.
func (c *Client) TestConnection(ctx context.Context) (bool, error) {
	err := c.api.Status(ctx)
	if err == nil {
		return true, nil
	}

	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return false, nil
	}
	return false, wrapError(err)
}

func metadataFromAPI(m *api.Metadata) *Metadata {
	return &Metadata{
		SecretKey:   m.SecretKey,
		MetadataKey: m.MetadataKey,
		CustID:      m.CustID,
		State:       m.State,
		TTL:         m.TTL,
		Created:     m.Created,
		Updated:     m.Updated,
		Received:    m.Received,
		Recipient:   m.Recipient,
	}
}
