package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Default transport deadlines. SendTimeout bounds the whole request;
// ConnectTimeout bounds dialing alone.
const (
	DefaultSendTimeout    = 30 * time.Second
	DefaultConnectTimeout = 10 * time.Second

	// maxErrorBody caps how much of an error response body is read.
	maxErrorBody = 1 << 20
)

// Config configures the API client.
type Config struct {
	// BaseURL is the server endpoint, e.g. "https://onetimesecret.com".
	// A trailing slash is stripped. HTTPS is required unless AllowHTTP
	// is set.
	BaseURL string
	// AuthHeader is the prebuilt "Basic ..." Authorization value sent on
	// authenticated requests. May be empty for unauthenticated clients.
	AuthHeader string
	// UserAgent identifies the client on every request.
	UserAgent string
	// HTTPClient overrides the default transport when set.
	HTTPClient *http.Client
	// Timeout overrides DefaultSendTimeout when positive.
	Timeout time.Duration
	// AllowHTTP permits plaintext endpoints. Local test servers only.
	AllowHTTP bool
}

// Client is the HTTP API client. It is immutable after construction and
// safe for concurrent use: every request is independent and stateless.
type Client struct {
	baseURL    string
	authHeader string
	userAgent  string
	httpClient *http.Client
}

// NewClient validates the endpoint and builds the transport. Plaintext
// endpoints are rejected here, at construction, not at send time.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("base URL %q is not an absolute URL", base)
	}
	if u.Scheme != "https" && !cfg.AllowHTTP {
		return nil, fmt.Errorf("base URL %q is not https", base)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultSendTimeout
		}
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: DefaultConnectTimeout,
				}).DialContext,
				TLSHandshakeTimeout: DefaultConnectTimeout,
				ForceAttemptHTTP2:   true,
			},
			CheckRedirect: checkRedirect,
		}
	}

	return &Client{
		baseURL:    base,
		authHeader: cfg.AuthHeader,
		userAgent:  cfg.UserAgent,
		httpClient: httpClient,
	}, nil
}

// BaseURL returns the normalized endpoint without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// checkRedirect follows at most 10 redirects and drops the Authorization
// header when a redirect leaves the original host, so credentials are
// never replayed to a third party. net/http strips sensitive headers on
// cross-domain redirects already; this makes the invariant local and
// explicit.
func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= 10 {
		return errors.New("stopped after 10 redirects")
	}
	if req.URL.Host != via[0].URL.Host {
		req.Header.Del("Authorization")
	}
	return nil
}

// Do sends a single request and decodes the response into result when
// result is non-nil. There are no retries at this layer: a destructive
// operation must never be reissued on an ambiguous failure.
func (c *Client) Do(ctx context.Context, method, path string, authenticated bool, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	fullURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if authenticated && c.authHeader != "" {
		req.Header.Set("Authorization", c.authHeader)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{
			Err:     err,
			URL:     fullURL,
			Timeout: isTimeout(ctx, err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseStatusError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return &DecodeError{Err: err}
		}
	}

	return nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func parseStatusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	statusErr := &StatusError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(body)),
	}

	// The server reports errors as {"message": "..."}; fall back to the
	// raw body text when the shape differs.
	var errResp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		statusErr.Message = errResp.Message
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
			statusErr.RetryAfter = time.Duration(secs) * time.Second
		}
	}

	return statusErr
}
