package server

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/app"
	"github.com/iov-one/swap/crypto"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/std"
)

// Configuration keys. Each can be set with a flag, in the swapd.yaml file
// found in the home directory or as an environment variable prefixed with
// SWAPD_, ie. SWAPD_CHAIN_ID.
const (
	flagHome       = "home"
	flagLogLevel   = "log_level"
	flagChainID    = "chain_id"
	flagMnemonic   = "mnemonic"
	flagPassphrase = "passphrase"
	flagPath       = "path"
	flagLamports   = "lamports"
	flagProgram    = "program"
)

const (
	configName  = "swapd"
	envPrefix   = "SWAPD"
	genesisFile = "genesis.json"
	dataDir     = "data"
	appName     = "swapd"
)

// RootCmd returns the swapd command with all subcommands attached.
func RootCmd(logger log.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "swapd",
		Short:         "Token escrow ledger",
		Version:       swap.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig()
		},
	}
	root.PersistentFlags().String(flagHome, defaultHome(), "directory to store files under")
	root.PersistentFlags().String(flagLogLevel, "info", "log level (debug, info, error or none)")
	root.PersistentFlags().String(flagMnemonic, "", "mnemonic of the funding key")
	root.PersistentFlags().String(flagPassphrase, "", "passphrase of the funding mnemonic")
	root.PersistentFlags().String(flagPath, crypto.DefaultDerivationPath, "key derivation path")
	for _, name := range []string{flagHome, flagLogLevel, flagMnemonic, flagPassphrase, flagPath} {
		// Only fails for a nil flag.
		_ = viper.BindPFlag(name, root.PersistentFlags().Lookup(name))
	}

	root.AddCommand(
		KeygenCmd(),
		InitCmd(logger),
		ValidateCmd(),
		DemoCmd(logger),
		InspectCmd(logger),
		PDACmd(),
	)
	return root
}

func defaultHome() string {
	return filepath.Join(os.ExpandEnv("$HOME"), ".swapd")
}

// loadConfig reads the swapd.yaml file from the home directory, if one
// exists, and enables environment overrides.
func loadConfig() error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(configName)
	viper.AddConfigPath(viper.GetString(flagHome))
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return errors.Wrapf(errors.ErrInvalidInput, "config: %s", err)
	}
	return nil
}

func homeDir() string {
	return viper.GetString(flagHome)
}

// commandLogger applies the configured log level to the logger.
func commandLogger(logger log.Logger) (log.Logger, error) {
	opt, err := log.AllowLevel(viper.GetString(flagLogLevel))
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}

// fundingKey derives the key configured with the mnemonic option.
func fundingKey() (*crypto.PrivateKey, error) {
	mnemonic := viper.GetString(flagMnemonic)
	if mnemonic == "" {
		return nil, errors.ErrInvalidInput.New("mnemonic not configured")
	}
	return crypto.KeyFromMnemonic(mnemonic, viper.GetString(flagPassphrase), viper.GetString(flagPath))
}

// openApp opens the application stored in the home directory.
func openApp(logger log.Logger) (*app.App, error) {
	return std.Application(appName, filepath.Join(homeDir(), dataDir), logger, nil)
}
