package runtime

import (
	"time"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

// Executor runs transactions. It holds no state between transactions
// besides the derived address cache, so a single instance may serve any
// number of stores, one transaction at a time per store.
type Executor struct {
	router  *Router
	derived *DerivedCache
	metrics *Metrics
}

// Option configures an Executor.
type Option func(*Executor)

// WithMetrics makes the executor report to given metrics.
func WithMetrics(m *Metrics) Option {
	return func(e *Executor) {
		e.metrics = m
	}
}

// WithDerivedCache replaces the default derived address cache.
func WithDerivedCache(c *DerivedCache) Option {
	return func(e *Executor) {
		e.derived = c
	}
}

// NewExecutor returns an executor dispatching to the programs of router.
func NewExecutor(router *Router, opts ...Option) *Executor {
	e := &Executor{router: router}
	for _, opt := range opts {
		opt(e)
	}
	if e.derived == nil {
		c, err := NewDerivedCache(DefaultCacheSize)
		if err != nil {
			panic(err)
		}
		e.derived = c
	}
	return e
}

// Execute verifies the signatures of tx and runs all of its instructions
// in a savepoint of kv. The savepoint is written only if every instruction
// succeeds.
func (e *Executor) Execute(ctx swap.Context, kv swap.CacheableKVStore, tx *Transaction) (err error) {
	start := time.Now()
	defer func() {
		e.metrics.observeTransaction(start, err)
		logDuration(ctx, start, "transaction", err, false)
	}()

	signers, err := tx.Signers()
	if err != nil {
		return err
	}

	cache := kv.CacheWrap()
	if err := e.execute(ctx, cache, signers, tx.Message.Instructions); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}

func (e *Executor) execute(ctx swap.Context, kv swap.KVStore, signers map[swap.Address]bool, ixs []swap.Instruction) (err error) {
	defer errors.Recover(&err)

	db := NewAccountsDB(kv)
	for i, ix := range ixs {
		if err := e.executeInstruction(ctx, db, signers, ix); err != nil {
			return errors.Wrapf(err, "instruction %d", i)
		}
	}
	return nil
}

func (e *Executor) executeInstruction(ctx swap.Context, db *AccountsDB, signers map[swap.Address]bool, ix swap.Instruction) error {
	program := e.router.Route(ix.ProgramID)
	if program == nil {
		return errors.ErrIncorrectProgramID.Newf("unknown program %s", ix.ProgramID)
	}

	// Every address is loaded once so that duplicated metas share the
	// same account.
	loaded := make(map[swap.Address]*swap.Account, len(ix.Accounts))
	infos := make([]*swap.AccountInfo, len(ix.Accounts))
	for i, meta := range ix.Accounts {
		if meta.IsSigner && !signers[meta.Address] {
			return errors.ErrMissingRequiredSignature.Newf("account %d %s", i, meta.Address)
		}
		acct, ok := loaded[meta.Address]
		if !ok {
			var err error
			if acct, err = db.Load(meta.Address); err != nil {
				return err
			}
			loaded[meta.Address] = acct
		}
		infos[i] = &swap.AccountInfo{
			Key:        meta.Address,
			IsSigner:   meta.IsSigner,
			IsWritable: meta.IsWritable,
			Account:    acct,
		}
	}

	f := newFrame(e, ix.ProgramID, infos, nil)
	pctx := swap.WithInvoker(ctx, f)
	pctx = swap.WithLogInfo(pctx, "program", ix.ProgramID.String(), "depth", f.depth)
	if err := e.process(pctx, program, ix.ProgramID, infos, ix.Data); err != nil {
		return err
	}
	if err := f.verify(); err != nil {
		return err
	}

	for _, key := range f.keys {
		if !f.writable[key] {
			continue
		}
		if err := db.Store(key, f.accounts[key]); err != nil {
			return err
		}
	}
	return nil
}

// process calls the program and records the outcome.
func (e *Executor) process(ctx swap.Context, p swap.Program, programID swap.Address, infos []*swap.AccountInfo, data []byte) error {
	start := time.Now()
	err := p.Process(ctx, programID, infos, data)
	e.metrics.observeInstruction(programID, err)
	logDuration(ctx, start, "instruction", err, true)
	return err
}
