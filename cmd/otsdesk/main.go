package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	onetimesecret "github.com/onetimesecret/desktop-go"
)

// Output palette.
var (
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
	warn   = color.New(color.FgYellow)
	subtle = color.New(color.FgHiBlack)
)

// vaultPassphraseEnv names the environment variable holding the
// passphrase for the file-backed vault.
const vaultPassphraseEnv = "OTSDESK_VAULT_PASSPHRASE"

var keystoreFile string

var rootCmd = &cobra.Command{
	Use:   "otsdesk",
	Short: "Share one-time secrets from your desktop",
	Long: "otsdesk creates, retrieves and burns ephemeral secrets against a\n" +
		"OneTimeSecret server. Credentials are kept in the platform secure store.",
	Version:       onetimesecret.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&keystoreFile, "keystore-file", "",
		"store credentials in a passphrase-sealed file instead of the system keyring ("+vaultPassphraseEnv+" supplies the passphrase)")
}

// openVault selects the credential store: the system keyring by default,
// or a sealed file when --keystore-file is set.
func openVault() *onetimesecret.Vault {
	if keystoreFile != "" {
		return onetimesecret.NewFileVault(keystoreFile, []byte(os.Getenv(vaultPassphraseEnv)))
	}
	return onetimesecret.NewKeyringVault()
}

// newClient loads the stored credential and builds an API client.
func newClient(opts ...onetimesecret.Option) (*onetimesecret.Client, error) {
	cfg, err := openVault().Load()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, &onetimesecret.Error{
			Kind:    onetimesecret.KindConfiguration,
			Message: "not configured, run 'otsdesk configure' first",
		}
	}
	cred, err := cfg.Credential()
	if err != nil {
		return nil, err
	}
	return onetimesecret.New(cred, opts...)
}

// renderError prints taxonomy errors as "CODE: message" so scripts can
// branch on the code.
func renderError(err error) {
	resp := onetimesecret.AsResponse(err)
	bad.Fprintf(os.Stderr, "%s: %s\n", resp.Code, resp.Message)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		renderError(err)
		os.Exit(1)
	}
}
