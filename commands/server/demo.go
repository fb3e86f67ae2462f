package server

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/app"
	"github.com/iov-one/swap/crypto"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/runtime"
	"github.com/iov-one/swap/x/escrow"
	"github.com/iov-one/swap/x/rent"
	"github.com/iov-one/swap/x/system"
	"github.com/iov-one/swap/x/token"
)

const (
	flagOffered  = "offered"
	flagExpected = "expected"
)

// DemoCmd runs a complete trade between two fresh parties against the
// state stored in the home directory. The key of the configured mnemonic
// pays for everything and must be funded at genesis.
func DemoCmd(logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run an escrow trade",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := commandLogger(logger)
			if err != nil {
				return err
			}
			payer, err := fundingKey()
			if err != nil {
				return err
			}
			a, err := openApp(logger)
			if err != nil {
				return err
			}
			defer a.Close()

			offered, expected := viper.GetUint64(flagOffered), viper.GetUint64(flagExpected)
			d, err := newDemo(a, payer)
			if err != nil {
				return err
			}
			return d.run(cmd.OutOrStdout(), offered, expected)
		},
	}
	cmd.Flags().Uint64(flagOffered, 100, "X tokens offered by the initializer")
	cmd.Flags().Uint64(flagExpected, 50, "Y tokens expected in exchange")
	_ = viper.BindPFlag(flagOffered, cmd.Flags().Lookup(flagOffered))
	_ = viper.BindPFlag(flagExpected, cmd.Flags().Lookup(flagExpected))
	return cmd
}

// party lamports, enough to open an escrow
const partyFunds = 10000000

type demo struct {
	app   *app.App
	payer *crypto.PrivateKey
	rent  rent.Rent
	nonce uint64

	mintAuthority *crypto.PrivateKey
	initializer   *crypto.PrivateKey
	taker         *crypto.PrivateKey

	mintX, mintY   swap.Address
	initX, initY   swap.Address
	takerX, takerY swap.Address
}

func newDemo(a *app.App, payer *crypto.PrivateKey) (*demo, error) {
	if a.ChainID() == "" {
		return nil, errors.ErrInvalidInput.New("state not initialized, run init first")
	}
	sysvar, err := a.Account(swap.RentSysvarID)
	if err != nil {
		return nil, err
	}
	r, err := rent.Unmarshal(sysvar.Data)
	if err != nil {
		return nil, errors.Wrap(err, "rent sysvar")
	}
	d := &demo{
		app:   a,
		payer: payer,
		rent:  r,
		nonce: uint64(time.Now().UnixNano()),
	}
	for _, k := range []**crypto.PrivateKey{&d.mintAuthority, &d.initializer, &d.taker} {
		if *k, err = crypto.GenPrivateKey(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// send delivers and commits a single transaction.
func (d *demo) send(step string, signers []*crypto.PrivateKey, ixs ...swap.Instruction) error {
	d.nonce++
	tx := runtime.NewTransaction(d.nonce, ixs...)
	if err := tx.Sign(signers...); err != nil {
		return err
	}
	if err := d.app.Deliver(tx); err != nil {
		return errors.Wrap(err, step)
	}
	res, err := d.app.Commit()
	if err != nil {
		return err
	}
	d.app.Logger().Info("Demo step", "step", step, "version", res.Version)
	return nil
}

func (d *demo) createMint() (swap.Address, error) {
	mint, err := crypto.GenPrivateKey()
	if err != nil {
		return swap.Address{}, err
	}
	err = d.send("create mint", []*crypto.PrivateKey{d.payer, mint},
		system.NewCreateAccountInstruction(d.payer.PublicKey(), mint.PublicKey(),
			d.rent.MinimumBalance(token.MintSize), token.MintSize, swap.TokenProgramID),
		token.NewInitializeMintInstruction(mint.PublicKey(), d.mintAuthority.PublicKey(), 0),
	)
	return mint.PublicKey(), err
}

func (d *demo) createTokenAccount(mint, owner swap.Address) (swap.Address, error) {
	acct, err := crypto.GenPrivateKey()
	if err != nil {
		return swap.Address{}, err
	}
	err = d.send("create token account", []*crypto.PrivateKey{d.payer, acct},
		system.NewCreateAccountInstruction(d.payer.PublicKey(), acct.PublicKey(),
			d.rent.MinimumBalance(token.AccountSize), token.AccountSize, swap.TokenProgramID),
		token.NewInitializeAccountInstruction(acct.PublicKey(), mint, owner),
	)
	return acct.PublicKey(), err
}

func (d *demo) setup(offered, expected uint64) error {
	err := d.send("fund initializer", []*crypto.PrivateKey{d.payer},
		system.NewTransferInstruction(d.payer.PublicKey(), d.initializer.PublicKey(), partyFunds))
	if err != nil {
		return err
	}
	if d.mintX, err = d.createMint(); err != nil {
		return err
	}
	if d.mintY, err = d.createMint(); err != nil {
		return err
	}
	init, taker := d.initializer.PublicKey(), d.taker.PublicKey()
	accounts := []struct {
		dst         *swap.Address
		mint, owner swap.Address
	}{
		{&d.initX, d.mintX, init},
		{&d.initY, d.mintY, init},
		{&d.takerX, d.mintX, taker},
		{&d.takerY, d.mintY, taker},
	}
	for _, a := range accounts {
		if *a.dst, err = d.createTokenAccount(a.mint, a.owner); err != nil {
			return err
		}
	}
	return d.send("mint", []*crypto.PrivateKey{d.mintAuthority},
		token.NewMintToInstruction(d.mintX, d.initX, d.mintAuthority.PublicKey(), offered),
		token.NewMintToInstruction(d.mintY, d.takerY, d.mintAuthority.PublicKey(), expected),
	)
}

// open creates the temp token account and the escrow account and hands
// both to the escrow program in one transaction.
func (d *demo) open(offered, expected uint64) (temp, escrowAcct swap.Address, err error) {
	tempKey, err := crypto.GenPrivateKey()
	if err != nil {
		return temp, escrowAcct, err
	}
	escrowKey, err := crypto.GenPrivateKey()
	if err != nil {
		return temp, escrowAcct, err
	}
	init := d.initializer.PublicKey()
	err = d.send("initialize escrow", []*crypto.PrivateKey{d.initializer, tempKey, escrowKey},
		system.NewCreateAccountInstruction(init, tempKey.PublicKey(),
			d.rent.MinimumBalance(token.AccountSize), token.AccountSize, swap.TokenProgramID),
		token.NewInitializeAccountInstruction(tempKey.PublicKey(), d.mintX, init),
		token.NewTransferInstruction(d.initX, tempKey.PublicKey(), init, offered),
		system.NewCreateAccountInstruction(init, escrowKey.PublicKey(),
			d.rent.MinimumBalance(escrow.RecordSize), escrow.RecordSize, escrow.ProgramID),
		escrow.NewInitializeInstruction(escrow.ProgramID, init, tempKey.PublicKey(), d.initY, escrowKey.PublicKey(), expected),
	)
	return tempKey.PublicKey(), escrowKey.PublicKey(), err
}

func (d *demo) exchange(temp, escrowAcct swap.Address, expected uint64) error {
	ix, err := escrow.NewExchangeInstruction(escrow.ProgramID, escrow.ExchangeAccounts{
		Taker:                d.taker.PublicKey(),
		TakerSending:         d.takerY,
		TakerReceiving:       d.takerX,
		Temp:                 temp,
		Initializer:          d.initializer.PublicKey(),
		InitializerReceiving: d.initY,
		Escrow:               escrowAcct,
	}, expected)
	if err != nil {
		return err
	}
	return d.send("exchange", []*crypto.PrivateKey{d.taker}, ix)
}

func (d *demo) balance(addr swap.Address) (uint64, error) {
	acct, err := d.app.Account(addr)
	if err != nil {
		return 0, err
	}
	t, err := token.UnmarshalAccount(acct.Data)
	if err != nil {
		return 0, errors.Wrapf(err, "token account %s", addr)
	}
	return t.Amount, nil
}

func (d *demo) run(out io.Writer, offered, expected uint64) error {
	if err := d.setup(offered, expected); err != nil {
		return err
	}
	temp, escrowAcct, err := d.open(offered, expected)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "escrow %s holds %d X in %s\n", escrowAcct, offered, temp)

	if err := d.exchange(temp, escrowAcct, expected); err != nil {
		return err
	}

	for _, row := range []struct {
		name string
		addr swap.Address
	}{
		{"initializer X", d.initX},
		{"initializer Y", d.initY},
		{"taker X", d.takerX},
		{"taker Y", d.takerY},
	} {
		amount, err := d.balance(row.addr)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-14s %s %d\n", row.name, row.addr, amount)
	}
	init, err := d.app.Account(d.initializer.PublicKey())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "initializer lamports %d\n", init.Lamports)
	return nil
}
