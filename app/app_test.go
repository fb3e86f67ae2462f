package app

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/runtime"
	"github.com/iov-one/swap/store/iavl"
)

var (
	counterID   = swap.ProgramIDFromName("counter")
	counterAcct = swap.ProgramIDFromName("counter-state")
)

// counterInit creates the counter account, starting at the value stored
// under "counter" in the genesis.
type counterInit struct{}

func (counterInit) FromGenesis(opts swap.Options, kv swap.KVStore) error {
	var start uint8
	if err := opts.ReadOptions("counter", &start); err != nil {
		return err
	}
	acct := swap.NewAccount(1, 1, counterID)
	acct.Data[0] = start
	return runtime.NewAccountsDB(kv).Store(counterAcct, acct)
}

// counter increments the first byte of its only account. Instruction data
// of "fail" makes it fail after the increment.
func counter(ctx swap.Context, programID swap.Address, accounts []*swap.AccountInfo, data []byte) error {
	info, _, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	info.Data[0]++
	if string(data) == "fail" {
		return errors.ErrInvalidInstructionData.New("fail")
	}
	return nil
}

func newTestApp(t *testing.T, kv swap.CommitKVStore) *App {
	t.Helper()
	router := runtime.NewRouter()
	router.Register(counterID, swap.ProgramFunc(counter))
	exec := runtime.NewExecutor(router)
	a, err := NewApp("test", kv, exec, swap.ChainInitializers{exec, counterInit{}})
	require.NoError(t, err)
	return a
}

func increment(data string) *runtime.Transaction {
	return runtime.NewTransaction(1, swap.NewInstruction(counterID, []byte(data), swap.Writable(counterAcct, false)))
}

func counterValue(t *testing.T, a *App) uint8 {
	t.Helper()
	acct, err := a.Account(counterAcct)
	require.NoError(t, err)
	require.Len(t, acct.Data, 1)
	return acct.Data[0]
}

func TestAppLifecycle(t *testing.T) {
	a := newTestApp(t, iavl.MockCommitStore())
	assert.Equal(t, "", a.ChainID())

	// Nothing runs before the chain is initialized.
	assert.Error(t, a.Deliver(increment("")))

	err := a.InitChain(Genesis{ChainID: "counter-chain", AppState: swap.Options{"counter": []byte("7")}})
	require.NoError(t, err)
	assert.Equal(t, "counter-chain", a.ChainID())
	assert.Equal(t, uint8(7), counterValue(t, a))

	require.NoError(t, a.Deliver(increment("")))
	assert.Equal(t, uint8(8), counterValue(t, a))

	err = a.Deliver(increment("fail"))
	assert.True(t, errors.ErrInvalidInstructionData.Is(err))
	assert.Equal(t, uint8(8), counterValue(t, a))

	raw, err := increment("").Marshal()
	require.NoError(t, err)
	require.NoError(t, a.DeliverTx(raw))
	assert.Equal(t, uint8(9), counterValue(t, a))
	assert.Error(t, a.DeliverTx([]byte("not a transaction")))

	res, err := a.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Version)

	err = a.InitChain(Genesis{ChainID: "other-chain", AppState: swap.Options{}})
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestInitChainErrors(t *testing.T) {
	cases := map[string]Genesis{
		"missing app state": {ChainID: "test-chain"},
		"invalid chain id":  {ChainID: "x", AppState: swap.Options{}},
		"broken options":    {ChainID: "test-chain", AppState: swap.Options{"counter": []byte(`"seven"`)}},
	}
	for name, gen := range cases {
		t.Run(name, func(t *testing.T) {
			a := newTestApp(t, iavl.MockCommitStore())
			assert.Error(t, a.InitChain(gen))
			assert.Equal(t, "", a.ChainID())
		})
	}
}

func TestUncommittedStateIsLost(t *testing.T) {
	dir, err := ioutil.TempDir("", "app-commit")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	kv, err := iavl.NewCommitStore(dir, "app")
	require.NoError(t, err)
	a := newTestApp(t, kv)
	require.NoError(t, a.InitChain(Genesis{ChainID: "counter-chain", AppState: swap.Options{}}))
	_, err = a.Commit()
	require.NoError(t, err)
	require.NoError(t, a.Deliver(increment("")))
	assert.Equal(t, uint8(1), counterValue(t, a))
	a.Close()

	kv, err = iavl.NewCommitStore(dir, "app")
	require.NoError(t, err)
	a = newTestApp(t, kv)
	defer a.Close()
	assert.Equal(t, "counter-chain", a.ChainID())
	assert.Equal(t, uint8(0), counterValue(t, a))
	info, err := a.Info()
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.Version)
}

func TestGenesisFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "app-genesis")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "genesis.json")

	gen := Genesis{ChainID: "test-chain-67", AppState: swap.Options{"counter": []byte("3")}}
	require.NoError(t, gen.Save(path))
	loaded, err := LoadGenesis(path)
	require.NoError(t, err)
	assert.Equal(t, gen.ChainID, loaded.ChainID)
	assert.JSONEq(t, "3", string(loaded.AppState["counter"]))

	_, err = LoadGenesis(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.ErrInvalidInput.Is(err))

	require.NoError(t, ioutil.WriteFile(path, []byte("{"), 0644))
	_, err = LoadGenesis(path)
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestIsValidChainID(t *testing.T) {
	cases := map[string]bool{
		"":                      false,
		"abc":                   false,
		"test-chain":            true,
		"swap_net.1":            true,
		"spaces are bad":        false,
		"this-one-is-too-long-": false,
		"exactly-twenty-chars": true,
	}
	for id, want := range cases {
		assert.Equal(t, want, IsValidChainID(id), id)
	}
}
