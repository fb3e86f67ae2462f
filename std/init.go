package std

import (
	"encoding/json"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/runtime"
	"github.com/iov-one/swap/x/rent"
)

// GenInitOptions produces the application state for a new chain with
// given rent parameters and funded accounts.
func GenInitOptions(r rent.Rent, accounts []runtime.GenesisAccount) (swap.Options, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	opts := swap.Options{}
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "rent: %s", err)
	}
	opts["rent"] = raw
	if accounts == nil {
		accounts = []runtime.GenesisAccount{}
	}
	if raw, err = json.Marshal(accounts); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "accounts: %s", err)
	}
	opts["accounts"] = raw
	return opts, nil
}
