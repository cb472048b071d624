package onetimesecret

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// IdentityPolicy controls how the identity field is validated. The wire
// protocol does not require email-shaped identities; the email policy
// exists for deployments that enforce it.
type IdentityPolicy int

const (
	// IdentityAny accepts any non-empty identity.
	IdentityAny IdentityPolicy = iota
	// IdentityEmail additionally requires the identity to contain "@".
	IdentityEmail
)

// Credential identifies an account against a OneTimeSecret server. A
// Credential is validated at construction or load time; an invalid
// Credential is never handed to a Client. It is immutable once a Client
// is built from it — changing credentials means building a new Client.
type Credential struct {
	// Identity is the account name, conventionally an email address.
	Identity string
	// APIKey is the bearer key paired with Identity.
	APIKey string
	// Endpoint is the server base URL, e.g. "https://onetimesecret.com".
	Endpoint string
}

// Validate checks the credential against the given identity policy. All
// failures are KindConfiguration errors.
func (c Credential) Validate(policy IdentityPolicy) error {
	if c.Identity == "" {
		return newError(KindConfiguration, "identity cannot be empty")
	}
	if policy == IdentityEmail && !strings.Contains(c.Identity, "@") {
		return newError(KindConfiguration, "identity must be an email address")
	}
	if c.APIKey == "" {
		return newError(KindConfiguration, "API key cannot be empty")
	}
	if err := validateEndpoint(c.Endpoint); err != nil {
		return err
	}
	return nil
}

func validateEndpoint(endpoint string) error {
	if endpoint == "" {
		return newError(KindConfiguration, "endpoint cannot be empty")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return &Error{
			Kind:    KindConfiguration,
			Message: fmt.Sprintf("invalid endpoint URL %q: %v", endpoint, err),
			Err:     err,
		}
	}
	if !u.IsAbs() || u.Host == "" {
		return newError(KindConfiguration, fmt.Sprintf("endpoint %q is not an absolute URL", endpoint))
	}
	return nil
}

// authHeader builds the Basic Authorization value. It is computed once
// at Client construction and reused verbatim on every request.
func (c Credential) authHeader() string {
	pair := c.Identity + ":" + c.APIKey
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(pair))
}
