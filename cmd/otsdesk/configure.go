package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	onetimesecret "github.com/onetimesecret/desktop-go"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Set up API credentials",
	Long:  "Prompt for identity, endpoint and API key, validate them, and save to the credential vault.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(os.Stdin)

		identity, err := promptLine(reader, "Identity (email): ")
		if err != nil {
			return err
		}
		endpoint, err := promptLine(reader, "Endpoint [https://onetimesecret.com]: ")
		if err != nil {
			return err
		}
		if endpoint == "" {
			endpoint = "https://onetimesecret.com"
		}
		apiKey, err := promptSecret("API key: ")
		if err != nil {
			return err
		}

		cred := onetimesecret.Credential{
			Identity: identity,
			APIKey:   apiKey,
			Endpoint: endpoint,
		}
		if err := openVault().Save(cred); err != nil {
			return err
		}
		good.Println("Credentials saved")
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or clear stored credentials",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored configuration (never the API key)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, warnErr := openVault().LoadStartup()
		if warnErr != nil {
			warn.Fprintf(os.Stderr, "warning: %v\n", warnErr)
		}
		if cfg == nil {
			subtle.Println("Not configured")
			return nil
		}
		fmt.Printf("Identity: %s\n", cfg.Identity)
		fmt.Printf("Endpoint: %s\n", cfg.Endpoint)
		if cfg.APIKey == "" {
			warn.Println("API key:  (not set)")
		} else {
			fmt.Println("API key:  (set)")
		}
		return nil
	},
}

var configClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete stored credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := openVault().Delete(); err != nil {
			return err
		}
		good.Println("Credentials deleted")
		return nil
	},
}

func promptLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptSecret(prompt string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		reader := bufio.NewReader(os.Stdin)
		return promptLine(reader, prompt)
	}
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configClearCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(configCmd)
}
