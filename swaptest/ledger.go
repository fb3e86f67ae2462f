package swaptest

import (
	"context"
	"testing"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/crypto"
	"github.com/iov-one/swap/runtime"
	"github.com/iov-one/swap/store"
	"github.com/tendermint/tendermint/libs/log"
)

// Ledger is an in-memory store with a runtime executing transactions on it.
// Failing helpers stop the test.
type Ledger struct {
	t      testing.TB
	Store  swap.CacheableKVStore
	Router *runtime.Router
	Exec   *runtime.Executor
	nonce  uint64
}

// NewLedger returns an empty ledger without any program.
func NewLedger(t testing.TB) *Ledger {
	router := runtime.NewRouter()
	return &Ledger{
		t:      t,
		Store:  store.MemStore(),
		Router: router,
		Exec:   runtime.NewExecutor(router),
	}
}

// Register adds a program to the runtime.
func (l *Ledger) Register(programID swap.Address, p swap.Program) *Ledger {
	l.Router.Register(programID, p)
	return l
}

// Context returns the context transactions are executed with.
func (l *Ledger) Context() swap.Context {
	return swap.WithLogger(context.Background(), log.TestingLogger())
}

// Fund creates a system account with given balance.
func (l *Ledger) Fund(addr swap.Address, lamports uint64) {
	l.t.Helper()
	l.SetAccount(addr, swap.NewAccount(lamports, 0, swap.SystemProgramID))
}

// SetAccount writes the account bypassing the runtime.
func (l *Ledger) SetAccount(addr swap.Address, acct *swap.Account) {
	l.t.Helper()
	if err := runtime.NewAccountsDB(l.Store).Store(addr, acct); err != nil {
		l.t.Fatalf("cannot store account %s: %s", addr, err)
	}
}

// Account returns the current state of an account.
func (l *Ledger) Account(addr swap.Address) *swap.Account {
	l.t.Helper()
	acct, err := runtime.NewAccountsDB(l.Store).Load(addr)
	if err != nil {
		l.t.Fatalf("cannot load account %s: %s", addr, err)
	}
	return acct
}

// Exists returns true if the account is stored.
func (l *Ledger) Exists(addr swap.Address) bool {
	l.t.Helper()
	ok, err := runtime.NewAccountsDB(l.Store).Exists(addr)
	if err != nil {
		l.t.Fatalf("cannot check account %s: %s", addr, err)
	}
	return ok
}

// Snapshot returns all stored accounts.
func (l *Ledger) Snapshot() map[swap.Address]*swap.Account {
	l.t.Helper()
	res := make(map[swap.Address]*swap.Account)
	err := runtime.NewAccountsDB(l.Store).Each(func(addr swap.Address, acct *swap.Account) error {
		res[addr] = acct
		return nil
	})
	if err != nil {
		l.t.Fatalf("cannot list accounts: %s", err)
	}
	return res
}

// Execute signs a transaction of given instructions with all keys and runs
// it. The returned error is the transaction result.
func (l *Ledger) Execute(signers []*crypto.PrivateKey, ixs ...swap.Instruction) error {
	l.t.Helper()
	l.nonce++
	tx := runtime.NewTransaction(l.nonce, ixs...)
	if err := tx.Sign(signers...); err != nil {
		l.t.Fatalf("cannot sign: %s", err)
	}
	return l.Exec.Execute(l.Context(), l.Store, tx)
}

// Signers is a shortcut for building the signer list of Execute.
func Signers(keys ...*crypto.PrivateKey) []*crypto.PrivateKey {
	return keys
}
