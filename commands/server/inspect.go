package server

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/x/escrow"
	"github.com/iov-one/swap/x/token"
)

const flagData = "data"

// InspectCmd decodes account data. With --data the argument is the raw
// escrow record, base58 or hex: prefixed. Otherwise the argument is an
// address loaded from the state of the home directory.
func InspectCmd(logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <address|data>",
		Short: "Decode an escrow record or account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if viper.GetBool(flagData) {
				raw, err := decodeData(args[0])
				if err != nil {
					return err
				}
				e, err := escrow.UnmarshalEscrow(raw)
				if err != nil {
					return err
				}
				printEscrow(out, e)
				return nil
			}

			addr, err := swap.ParseAddress(args[0])
			if err != nil {
				return err
			}
			logger, err := commandLogger(logger)
			if err != nil {
				return err
			}
			a, err := openApp(logger)
			if err != nil {
				return err
			}
			defer a.Close()
			acct, err := a.Account(addr)
			if err != nil {
				return err
			}
			return printAccount(out, addr, acct)
		},
	}
	cmd.Flags().Bool(flagData, false, "argument is raw account data")
	_ = viper.BindPFlag(flagData, cmd.Flags().Lookup(flagData))
	return cmd
}

func decodeData(enc string) ([]byte, error) {
	if strings.HasPrefix(enc, "hex:") {
		raw, err := hex.DecodeString(strings.TrimPrefix(enc, "hex:"))
		if err != nil {
			return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
		}
		return raw, nil
	}
	raw, err := base58.Decode(enc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return raw, nil
}

func printAccount(out io.Writer, addr swap.Address, acct *swap.Account) error {
	fmt.Fprintf(out, "address:     %s\n", addr)
	fmt.Fprintf(out, "owner:       %s\n", acct.Owner)
	fmt.Fprintf(out, "lamports:    %d\n", acct.Lamports)
	fmt.Fprintf(out, "executable:  %t\n", acct.Executable)
	fmt.Fprintf(out, "data length: %d\n", len(acct.Data))

	switch {
	case acct.Owner.Equals(escrow.ProgramID):
		e, err := escrow.UnmarshalEscrow(acct.Data)
		if err != nil {
			return err
		}
		printEscrow(out, e)
	case acct.Owner.Equals(swap.TokenProgramID) && len(acct.Data) == token.AccountSize:
		t, err := token.UnmarshalAccount(acct.Data)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "mint:        %s\n", t.Mint)
		fmt.Fprintf(out, "token owner: %s\n", t.Owner)
		fmt.Fprintf(out, "amount:      %d\n", t.Amount)
	case acct.Owner.Equals(swap.TokenProgramID) && len(acct.Data) == token.MintSize:
		m, err := token.UnmarshalMint(acct.Data)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "supply:      %d\n", m.Supply)
		fmt.Fprintf(out, "decimals:    %d\n", m.Decimals)
	}
	return nil
}

func printEscrow(out io.Writer, e *escrow.Escrow) {
	fmt.Fprintf(out, "initialized:           %t\n", e.IsInitialized)
	fmt.Fprintf(out, "initializer:           %s\n", e.Initializer)
	fmt.Fprintf(out, "temp token account:    %s\n", e.TempTokenAccount)
	fmt.Fprintf(out, "initializer receiving: %s\n", e.InitializerReceiving)
	fmt.Fprintf(out, "expected amount:       %d\n", e.ExpectedAmount)
}

// PDACmd prints the derived authority of an escrow program.
func PDACmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pda",
		Short: "Print the escrow derived authority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			programID := escrow.ProgramID
			if enc := viper.GetString(flagProgram); enc != "" {
				id, err := swap.ParseAddress(enc)
				if err != nil {
					return err
				}
				programID = id
			}
			addr, bump, err := escrow.Authority(programID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "program:   %s\nauthority: %s\nbump:      %d\n", programID, addr, bump)
			return nil
		},
	}
	cmd.Flags().String(flagProgram, "", "escrow program id (default builtin escrow program)")
	_ = viper.BindPFlag(flagProgram, cmd.Flags().Lookup(flagProgram))
	return cmd
}
