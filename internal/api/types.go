package api

// CreateSecretRequest represents the POST /api/v2/share request body.
// Optional fields are omitted rather than sent as null, matching the
// server's documented contract.
type CreateSecretRequest struct {
	Secret     string `json:"secret"`
	Passphrase string `json:"passphrase,omitempty"`
	TTL        int64  `json:"ttl,omitempty"`
	Recipient  string `json:"recipient,omitempty"`
}

// CreateSecretResponse represents the POST /api/v2/share response.
// Timestamps are epoch seconds.
type CreateSecretResponse struct {
	SecretKey   string   `json:"secret_key"`
	MetadataKey string   `json:"metadata_key"`
	TTL         int64    `json:"ttl"`
	Created     int64    `json:"created"`
	Updated     int64    `json:"updated"`
	Recipient   []string `json:"recipient,omitempty"`
}

// retrieveSecretRequest represents the POST /api/v2/secret/{key} body.
// The server expects a JSON object even without a passphrase, so this
// type marshals to {} rather than being omitted.
type retrieveSecretRequest struct {
	Passphrase string `json:"passphrase,omitempty"`
}

// RetrieveSecretResponse represents the POST /api/v2/secret/{key}
// response. Value is the secret plaintext; it is never persisted.
type RetrieveSecretResponse struct {
	Value       string `json:"value"`
	SecretKey   string `json:"secret_key"`
	MetadataKey string `json:"metadata_key,omitempty"`
}

// Metadata represents the /api/v2/private/{metadata_key} response.
type Metadata struct {
	CustID      string   `json:"custid,omitempty"`
	MetadataKey string   `json:"metadata_key"`
	SecretKey   string   `json:"secret_key"`
	TTL         int64    `json:"ttl"`
	State       string   `json:"state,omitempty"`
	Created     int64    `json:"created"`
	Updated     int64    `json:"updated"`
	Received    int64    `json:"received,omitempty"`
	Recipient   []string `json:"recipient,omitempty"`
}

// burnRequest represents the burn action body.
type burnRequest struct {
	Action string `json:"action"`
}
