package runtime

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

// NativeLoaderID owns the accounts of all builtin programs.
var NativeLoaderID = swap.MustParseAddress("NativeLoader1111111111111111111111111111111")

// GenesisAccount is a funded system account created at genesis.
type GenesisAccount struct {
	Address  swap.Address `json:"address"`
	Lamports uint64       `json:"lamports"`
}

var _ swap.Initializer = (*Executor)(nil)

// FromGenesis creates an executable account for every registered program
// and the system accounts listed under "accounts".
func (e *Executor) FromGenesis(opts swap.Options, kv swap.KVStore) error {
	db := NewAccountsDB(kv)
	for _, id := range e.router.ProgramIDs() {
		acct := swap.NewAccount(1, 0, NativeLoaderID)
		acct.Executable = true
		if err := db.Store(id, acct); err != nil {
			return errors.Wrapf(err, "program %s", id)
		}
	}

	var accounts []GenesisAccount
	if err := opts.ReadOptions("accounts", &accounts); err != nil {
		return err
	}
	for _, a := range accounts {
		if a.Lamports == 0 {
			return errors.ErrInvalidInput.Newf("genesis account %s without lamports", a.Address)
		}
		if err := db.Store(a.Address, swap.NewAccount(a.Lamports, 0, swap.SystemProgramID)); err != nil {
			return errors.Wrapf(err, "account %s", a.Address)
		}
	}
	return nil
}
