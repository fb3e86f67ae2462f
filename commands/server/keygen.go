package server

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iov-one/swap/crypto"
)

// KeygenCmd derives a key from the configured mnemonic, or from a freshly
// generated one, and prints its address.
func KeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Derive a key from a mnemonic",
		Long: `Derive an ed25519 key using the configured mnemonic and derivation path.
When no mnemonic is configured a new one is generated and printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mnemonic := viper.GetString(flagMnemonic)
			if mnemonic == "" {
				m, err := crypto.NewMnemonic()
				if err != nil {
					return err
				}
				mnemonic = m
			}
			key, err := crypto.KeyFromMnemonic(mnemonic, viper.GetString(flagPassphrase), viper.GetString(flagPath))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "address:  %s\n", key.PublicKey())
			fmt.Fprintf(out, "path:     %s\n", viper.GetString(flagPath))
			fmt.Fprintf(out, "mnemonic: %s\n", mnemonic)
			return nil
		},
	}
}
