package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cldurl/core/engine"
	"cldurl/internal/config"
)

var tokenFlags config.AuthTokenConfig
var tokenURL string

// tokenCmd prints an auth token
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Generate an auth token",
	Long: `Generate a time limited access token.

Flags override the auth_token section of the configuration. Either --acl or
--url must be given, and either --expiration or --duration.

Examples:
  cldurl token --acl '/image/*' --duration 300
  cldurl token --url /image/authenticated/sample.jpg --start-time now --duration 60`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := engine.NewBuilder(config.Get()).Token(tokenFlags, tokenURL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	f := tokenCmd.Flags()
	f.StringVar(&tokenFlags.Key, "key", "", "hex encoded token key")
	f.StringSliceVar(&tokenFlags.ACL, "acl", nil, "access control list pattern (repeatable)")
	f.StringVar(&tokenURL, "url", "", "URL path to sign when no acl is given")
	f.StringVar(&tokenFlags.IP, "ip", "", "restrict the token to an IP address")
	f.StringVar(&tokenFlags.StartTime, "start-time", "", "unix timestamp or \"now\"")
	f.Int64Var(&tokenFlags.Expiration, "expiration", 0, "expiration unix timestamp")
	f.Int64Var(&tokenFlags.Duration, "duration", 0, "validity in seconds, from the start time")
}
