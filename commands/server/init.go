package server

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/app"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/runtime"
	"github.com/iov-one/swap/std"
	"github.com/iov-one/swap/x/rent"
)

// DefaultChainID is used when no chain id is configured.
const DefaultChainID = "swap-devnet"

// InitCmd writes the genesis file to the home directory, unless one is
// present already, and loads it into a new state database.
//
// Every address given as an argument is funded, as well as the key of the
// configured mnemonic.
func InitCmd(logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [address...]",
		Short: "Initialize genesis and state",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := commandLogger(logger)
			if err != nil {
				return err
			}
			return initChain(logger, args)
		},
	}
	cmd.Flags().String(flagChainID, DefaultChainID, "chain id written to genesis")
	cmd.Flags().Uint64(flagLamports, 1000000000000, "lamports given to every funded address")
	_ = viper.BindPFlag(flagChainID, cmd.Flags().Lookup(flagChainID))
	_ = viper.BindPFlag(flagLamports, cmd.Flags().Lookup(flagLamports))
	return cmd
}

func initChain(logger log.Logger, args []string) error {
	if err := os.MkdirAll(homeDir(), 0755); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	genFile := filepath.Join(homeDir(), genesisFile)
	var gen app.Genesis
	if fileExists(genFile) {
		g, err := app.LoadGenesis(genFile)
		if err != nil {
			return err
		}
		gen = g
		logger.Info("Found genesis file", "path", genFile)
	} else {
		g, err := newGenesis(args)
		if err != nil {
			return err
		}
		if err := g.Save(genFile); err != nil {
			return err
		}
		gen = g
		logger.Info("Generated genesis file", "path", genFile)
	}

	a, err := openApp(logger)
	if err != nil {
		return err
	}
	defer a.Close()
	if a.ChainID() != "" {
		logger.Info("Found initialized state", "chain_id", a.ChainID())
		return nil
	}
	if err := a.InitChain(gen); err != nil {
		return err
	}
	_, err = a.Commit()
	return err
}

func newGenesis(args []string) (app.Genesis, error) {
	chainID := viper.GetString(flagChainID)
	if !app.IsValidChainID(chainID) {
		return app.Genesis{}, errors.ErrInvalidInput.Newf("invalid chain id %q", chainID)
	}
	lamports := viper.GetUint64(flagLamports)

	var funded []swap.Address
	if viper.GetString(flagMnemonic) != "" {
		key, err := fundingKey()
		if err != nil {
			return app.Genesis{}, err
		}
		funded = append(funded, key.PublicKey())
	}
	for _, arg := range args {
		addr, err := swap.ParseAddress(arg)
		if err != nil {
			return app.Genesis{}, err
		}
		funded = append(funded, addr)
	}

	accounts := make([]runtime.GenesisAccount, 0, len(funded))
	for _, addr := range funded {
		accounts = append(accounts, runtime.GenesisAccount{Address: addr, Lamports: lamports})
	}
	opts, err := std.GenInitOptions(rent.Default(), accounts)
	if err != nil {
		return app.Genesis{}, err
	}
	return app.Genesis{ChainID: chainID, AppState: opts}, nil
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}
