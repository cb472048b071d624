// Package api implements the HTTP transport for the OneTimeSecret API
// v2: request construction, the HTTPS-only client, and classification of
// transport failures and non-2xx responses into typed errors. The public
// package converts these into the user-facing error taxonomy.
package api
