// Package onetimesecret provides the desktop client core for the
// OneTimeSecret API: an authenticated HTTP client for creating,
// retrieving and burning one-time secrets, and a credential vault over
// the platform secure store.
//
// Basic usage:
//
//	cred := onetimesecret.Credential{
//	    Identity: "user@example.com",
//	    APIKey:   "your-api-key",
//	    Endpoint: "https://onetimesecret.com",
//	}
//	client, err := onetimesecret.New(cred)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.CreateSecret(ctx, "the secret",
//	    onetimesecret.WithTTL(3600))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Share this link:", result.Link)
//
// Credentials persist across runs through the Vault:
//
//	vault := onetimesecret.NewKeyringVault()
//	if err := vault.Save(cred); err != nil {
//	    log.Fatal(err)
//	}
//
// Every error returned by this package is an *Error carrying a stable
// machine-readable Kind; callers branch with errors.Is against the
// package sentinels or inspect Kind directly.
package onetimesecret
