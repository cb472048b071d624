package api

import (
	"context"
	"fmt"
	"net/url"
)

// CreateSecret shares a new secret.
func (c *Client) CreateSecret(ctx context.Context, req CreateSecretRequest) (*CreateSecretResponse, error) {
	var result CreateSecretResponse
	if err := c.Do(ctx, "POST", "/api/v2/share", true, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RetrieveSecret fetches and destroys a secret. The call is
// unauthenticated: the secret key in the path is the credential. The
// body is always a JSON object, {} when no passphrase is supplied.
func (c *Client) RetrieveSecret(ctx context.Context, secretKey, passphrase string) (*RetrieveSecretResponse, error) {
	path := fmt.Sprintf("/api/v2/secret/%s", url.PathEscape(secretKey))
	var result RetrieveSecretResponse
	req := retrieveSecretRequest{Passphrase: passphrase}
	if err := c.Do(ctx, "POST", path, false, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMetadata fetches the owner-facing state of a secret without
// consuming it.
func (c *Client) GetMetadata(ctx context.Context, metadataKey string) (*Metadata, error) {
	path := fmt.Sprintf("/api/v2/private/%s", url.PathEscape(metadataKey))
	var result Metadata
	if err := c.Do(ctx, "POST", path, true, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// BurnSecret invalidates a secret and returns its final metadata.
func (c *Client) BurnSecret(ctx context.Context, metadataKey string) (*Metadata, error) {
	path := fmt.Sprintf("/api/v2/private/%s", url.PathEscape(metadataKey))
	var result Metadata
	if err := c.Do(ctx, "POST", path, true, burnRequest{Action: "burn"}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Status probes the service. It succeeds on any 2xx response regardless
// of body shape.
func (c *Client) Status(ctx context.Context) error {
	return c.Do(ctx, "GET", "/api/v2/status", true, nil, nil)
}
