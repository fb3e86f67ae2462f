package app

import (
	"context"
	"fmt"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/runtime"
	"github.com/tendermint/tendermint/libs/log"
)

// App is a ledger stored in a CommitKVStore. Transactions are applied to a
// deliver cache and persisted on Commit.
type App struct {
	logger log.Logger

	// name is used to label log entries
	name string

	store       *CommitStore
	committed   swap.CommitKVStore
	exec        *runtime.Executor
	initializer swap.Initializer

	// chainID is loaded from db in initialization, saved once in InitChain
	chainID string
}

// NewApp loads the latest state of the store.
func NewApp(name string, kv swap.CommitKVStore, exec *runtime.Executor, init swap.Initializer) (*App, error) {
	store, err := NewCommitStore(kv)
	if err != nil {
		return nil, err
	}
	chainID, err := loadChainID(store.DeliverStore())
	if err != nil {
		return nil, err
	}
	return &App{
		logger:      log.NewNopLogger(),
		name:        name,
		store:       store,
		committed:   kv,
		exec:        exec,
		initializer: init,
		chainID:     chainID,
	}, nil
}

// WithLogger sets the logger on the App and returns it, to make it easy
// to chain in initialization.
func (a *App) WithLogger(logger log.Logger) *App {
	a.logger = logger.With("app", a.name)
	return a
}

// Logger returns the application base logger.
func (a *App) Logger() log.Logger {
	return a.logger
}

// ChainID returns the chain id, empty before InitChain.
func (a *App) ChainID() string {
	return a.chainID
}

// InitChain stores the chain id and runs every initializer on the
// application state of the genesis. It can only be called once in the
// lifetime of a store.
func (a *App) InitChain(gen Genesis) error {
	if a.chainID != "" {
		return errors.ErrInvalidInput.Newf("state previously loaded for chain %s", a.chainID)
	}
	if gen.AppState == nil {
		return errors.ErrInvalidInput.New("app_state not set in genesis")
	}
	kv := a.store.DeliverStore()
	if err := saveChainID(kv, gen.ChainID); err != nil {
		return err
	}
	if err := a.initializer.FromGenesis(gen.AppState, kv); err != nil {
		return errors.Wrap(err, "genesis")
	}
	a.chainID = gen.ChainID
	a.logger.Info("Chain initialized", "chain_id", a.chainID)
	return nil
}

// Context returns the context transactions are executed with.
func (a *App) Context() swap.Context {
	ctx := swap.WithLogger(context.Background(), a.logger)
	return swap.WithLogInfo(ctx, "chain_id", a.chainID)
}

// DeliverTx decodes and executes a transaction. A failed transaction
// leaves no trace in the state.
func (a *App) DeliverTx(raw []byte) error {
	tx, err := runtime.UnmarshalTransaction(raw)
	if err != nil {
		return err
	}
	return a.Deliver(tx)
}

// Deliver executes a transaction.
func (a *App) Deliver(tx *runtime.Transaction) error {
	if a.chainID == "" {
		return errors.ErrHuman.New("chain not initialized")
	}
	return a.exec.Execute(a.Context(), a.store.DeliverStore(), tx)
}

// Commit persists all delivered transactions.
func (a *App) Commit() (swap.CommitID, error) {
	res, err := a.store.Commit()
	if err != nil {
		return res, errors.Wrap(err, "commit")
	}
	a.logger.Info("Commit synced",
		"version", res.Version,
		"hash", fmt.Sprintf("%X", res.Hash))
	return res, nil
}

// Info returns the last committed version and hash.
func (a *App) Info() (swap.CommitID, error) {
	return a.store.CommitInfo()
}

// Account returns the current state of an account, including changes not
// yet committed.
func (a *App) Account(addr swap.Address) (*swap.Account, error) {
	return runtime.NewAccountsDB(a.store.DeliverStore()).Load(addr)
}

// Close releases the underlying store if it holds any resources.
func (a *App) Close() {
	if c, ok := a.committed.(interface{ Close() }); ok {
		c.Close()
	}
}
