package std

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/app"
	"github.com/iov-one/swap/crypto"
	"github.com/iov-one/swap/runtime"
	"github.com/iov-one/swap/x/rent"
	"github.com/iov-one/swap/x/system"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func genesis(t *testing.T, accounts ...runtime.GenesisAccount) app.Genesis {
	t.Helper()
	opts, err := GenInitOptions(rent.Default(), accounts)
	require.NoError(t, err)
	return app.Genesis{ChainID: "test-net-22", AppState: opts}
}

func TestApp(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := Application("demo", "", log.NewNopLogger(), reg)
	require.NoError(t, err)

	pk, err := crypto.GenPrivateKey()
	require.NoError(t, err)
	addr := pk.PublicKey()

	require.NoError(t, a.InitChain(genesis(t, runtime.GenesisAccount{Address: addr, Lamports: 50000})))
	assert.Equal(t, "test-net-22", a.ChainID())

	// Genesis can be loaded only once.
	assert.Error(t, a.InitChain(genesis(t)))

	// Programs and the rent sysvar exist.
	for _, id := range []swap.Address{swap.SystemProgramID, swap.TokenProgramID, swap.RentSysvarID} {
		acct, err := a.Account(id)
		require.NoError(t, err)
		assert.NotZero(t, acct.Lamports, id.String())
	}

	res, err := a.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Version)
	assert.NotEmpty(t, res.Hash)

	// Send some lamports.
	dest := swap.ProgramIDFromName("destination")
	tx := runtime.NewTransaction(1, system.NewTransferInstruction(addr, dest, 1234))
	require.NoError(t, tx.Sign(pk))
	raw, err := tx.Marshal()
	require.NoError(t, err)
	require.NoError(t, a.DeliverTx(raw))

	acct, err := a.Account(dest)
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), acct.Lamports)

	// A failed transaction leaves the state unchanged.
	tx = runtime.NewTransaction(2, system.NewTransferInstruction(addr, dest, 1000000))
	require.NoError(t, tx.Sign(pk))
	assert.Error(t, a.Deliver(tx))
	acct, err = a.Account(addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(50000-1234), acct.Lamports)

	res, err = a.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Version)
	info, err := a.Info()
	require.NoError(t, err)
	assert.Equal(t, res, info)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["swap_runtime_transactions_total"])
	assert.True(t, names["swap_runtime_instructions_total"])
}

func TestAppUninitialized(t *testing.T) {
	a, err := Application("demo", "", log.NewNopLogger(), nil)
	require.NoError(t, err)
	tx := runtime.NewTransaction(1)
	assert.Error(t, a.Deliver(tx))
	assert.Error(t, a.InitChain(app.Genesis{ChainID: "x", AppState: swap.Options{}}))
}

func TestAppPersistence(t *testing.T) {
	dir, err := ioutil.TempDir("", "std-app")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	addr := swap.ProgramIDFromName("rich")
	a, err := Application("demo", dir, log.NewNopLogger(), nil)
	require.NoError(t, err)
	require.NoError(t, a.InitChain(genesis(t, runtime.GenesisAccount{Address: addr, Lamports: 7})))
	committed, err := a.Commit()
	require.NoError(t, err)
	a.Close()

	a, err = Application("demo", dir, log.NewNopLogger(), nil)
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, "test-net-22", a.ChainID())
	info, err := a.Info()
	require.NoError(t, err)
	assert.Equal(t, committed, info)
	acct, err := a.Account(addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), acct.Lamports)
}

func TestGenInitOptions(t *testing.T) {
	_, err := GenInitOptions(rent.Rent{BurnPercent: 200}, nil)
	assert.Error(t, err)

	opts, err := GenInitOptions(rent.Default(), nil)
	require.NoError(t, err)
	var accounts []runtime.GenesisAccount
	require.NoError(t, opts.ReadOptions("accounts", &accounts))
	assert.Empty(t, accounts)
	var r rent.Rent
	require.NoError(t, opts.ReadOptions("rent", &r))
	assert.Equal(t, rent.Default(), r)
}
