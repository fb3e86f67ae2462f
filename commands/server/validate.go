package server

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/app"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/std"
	"github.com/iov-one/swap/store"
)

// ValidateCmd loads genesis files into a throwaway store to check they
// can be used. Without arguments the genesis file of the home directory is
// validated.
func ValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [genesis.json...]",
		Short: "Validate genesis files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{filepath.Join(homeDir(), genesisFile)}
			}
			exec, err := std.Executor(nil)
			if err != nil {
				return err
			}
			if err := ValidateGenesis(std.Initializers(exec), args); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d genesis file(s) valid\n", len(args))
			return nil
		},
	}
}

// ValidateGenesis runs the initializer on the application state of every
// genesis file.
func ValidateGenesis(ini swap.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini swap.Initializer, genesisPath string) error {
	gen, err := app.LoadGenesis(genesisPath)
	if err != nil {
		return err
	}
	if !app.IsValidChainID(gen.ChainID) {
		return errors.ErrInvalidInput.Newf("invalid chain id %q", gen.ChainID)
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()

	if err := ini.FromGenesis(gen.AppState, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
