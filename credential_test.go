package onetimesecret

import (
	"encoding/base64"
	"errors"
	"testing"
)

func TestCredentialValidate(t *testing.T) {
	tests := []struct {
		name    string
		cred    Credential
		policy  IdentityPolicy
		wantErr bool
	}{
		{
			name:   "valid",
			cred:   Credential{Identity: "user@example.test", APIKey: "abc", Endpoint: "https://example.test"},
			policy: IdentityAny,
		},
		{
			name:   "valid non-email identity under any policy",
			cred:   Credential{Identity: "apiuser", APIKey: "abc", Endpoint: "https://example.test"},
			policy: IdentityAny,
		},
		{
			name:    "empty identity",
			cred:    Credential{Identity: "", APIKey: "abc", Endpoint: "https://example.test"},
			policy:  IdentityAny,
			wantErr: true,
		},
		{
			name:    "empty API key",
			cred:    Credential{Identity: "user@example.test", APIKey: "", Endpoint: "https://example.test"},
			policy:  IdentityAny,
			wantErr: true,
		},
		{
			name:    "empty endpoint",
			cred:    Credential{Identity: "user@example.test", APIKey: "abc", Endpoint: ""},
			policy:  IdentityAny,
			wantErr: true,
		},
		{
			name:    "relative endpoint",
			cred:    Credential{Identity: "user@example.test", APIKey: "abc", Endpoint: "not-a-url"},
			policy:  IdentityAny,
			wantErr: true,
		},
		{
			name:    "endpoint without host",
			cred:    Credential{Identity: "user@example.test", APIKey: "abc", Endpoint: "https://"},
			policy:  IdentityAny,
			wantErr: true,
		},
		{
			name:    "non-email identity under email policy",
			cred:    Credential{Identity: "apiuser", APIKey: "abc", Endpoint: "https://example.test"},
			policy:  IdentityEmail,
			wantErr: true,
		},
		{
			name:   "email identity under email policy",
			cred:   Credential{Identity: "user@example.test", APIKey: "abc", Endpoint: "https://example.test"},
			policy: IdentityEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cred.Validate(tt.policy)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				var e *Error
				if !errors.As(err, &e) {
					t.Fatalf("error type = %T, want *Error", err)
				}
				if e.Kind != KindConfiguration {
					t.Errorf("Kind = %s, want %s", e.Kind, KindConfiguration)
				}
			} else if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
		})
	}
}

func TestCredentialAuthHeader(t *testing.T) {
	cred := Credential{Identity: "user@example.test", APIKey: "abc", Endpoint: "https://example.test"}

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("user@example.test:abc"))
	if got := cred.authHeader(); got != want {
		t.Errorf("authHeader() = %q, want %q", got, want)
	}
}
