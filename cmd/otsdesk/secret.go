package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	onetimesecret "github.com/onetimesecret/desktop-go"
)

var (
	shareTTL        int64
	sharePassphrase bool
	shareRecipient  string
	getPassphrase   bool
)

var shareCmd = &cobra.Command{
	Use:   "share [secret]",
	Short: "Create a one-time secret and print its link",
	Long:  "Share a secret. If the argument is omitted, the secret is read from stdin.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var secret string
		if len(args) == 1 {
			secret = args[0]
		} else {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			secret = strings.TrimRight(string(b), "\n")
		}

		opts := []onetimesecret.CreateOption{onetimesecret.WithTTL(shareTTL)}
		if sharePassphrase {
			pass, err := promptSecret("Passphrase: ")
			if err != nil {
				return err
			}
			opts = append(opts, onetimesecret.WithPassphrase(pass))
		}
		if shareRecipient != "" {
			opts = append(opts, onetimesecret.WithRecipient(shareRecipient))
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.CreateSecret(cmd.Context(), secret, opts...)
		if err != nil {
			return err
		}

		fmt.Println(result.Link)
		subtle.Printf("metadata key: %s\n", result.MetadataKey)
		subtle.Printf("expires: %s\n", time.Unix(result.Created, 0).Add(time.Duration(result.TTL)*time.Second).Format(time.RFC3339))
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <secret-key>",
	Short: "Retrieve (and destroy) a secret",
	Long:  "Fetch a secret by its key. The secret is destroyed server-side on a successful fetch.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var pass string
		if getPassphrase {
			p, err := promptSecret("Passphrase: ")
			if err != nil {
				return err
			}
			pass = p
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.RetrieveSecret(cmd.Context(), args[0], pass)
		if err != nil {
			return err
		}
		fmt.Println(result.Value)
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info <metadata-key>",
	Short: "Show the state of a secret without consuming it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		md, err := client.GetMetadata(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printMetadata(md)
		return nil
	},
}

var burnCmd = &cobra.Command{
	Use:   "burn <metadata-key>",
	Short: "Destroy a secret before it is read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		md, err := client.BurnSecret(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		good.Println("Secret burned")
		printMetadata(md)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check connectivity and authentication",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		ok, err := client.TestConnection(cmd.Context())
		if err != nil {
			return err
		}
		if !ok {
			bad.Println("Service unhealthy")
			os.Exit(1)
		}
		good.Println("Service healthy")
		return nil
	},
}

func printMetadata(md *onetimesecret.Metadata) {
	fmt.Printf("state:   %s\n", md.State)
	fmt.Printf("created: %s\n", time.Unix(md.Created, 0).Format(time.RFC3339))
	fmt.Printf("updated: %s\n", time.Unix(md.Updated, 0).Format(time.RFC3339))
	if md.Received != 0 {
		fmt.Printf("received: %s\n", time.Unix(md.Received, 0).Format(time.RFC3339))
	}
	if len(md.Recipient) > 0 {
		fmt.Printf("recipient: %s\n", strings.Join(md.Recipient, ", "))
	}
}

func init() {
	shareCmd.Flags().Int64Var(&shareTTL, "ttl", 3600, "secret lifetime in seconds (0 = server default)")
	shareCmd.Flags().BoolVar(&sharePassphrase, "passphrase", false, "prompt for a protecting passphrase")
	shareCmd.Flags().StringVar(&shareRecipient, "recipient", "", "email the secret link to this address")
	getCmd.Flags().BoolVar(&getPassphrase, "passphrase", false, "prompt for the secret's passphrase")

	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(burnCmd)
	rootCmd.AddCommand(statusCmd)
}
