package rent

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/runtime"
)

const optKey = "rent"

// Initializer fulfils the Initializer interface to create the rent sysvar
// from the genesis file. Missing options result in the default parameters.
type Initializer struct{}

var _ swap.Initializer = Initializer{}

// FromGenesis stores the rent sysvar account.
func (Initializer) FromGenesis(opts swap.Options, kv swap.KVStore) error {
	r := Default()
	if err := opts.ReadOptions(optKey, &r); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return errors.Wrap(err, "rent")
	}
	return runtime.NewAccountsDB(kv).Store(swap.RentSysvarID, r.Account())
}
