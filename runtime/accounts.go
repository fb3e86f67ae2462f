package runtime

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

var (
	accountPrefix    = []byte("acct:")
	accountPrefixEnd = []byte("acct;")
)

func accountKey(addr swap.Address) []byte {
	key := make([]byte, 0, len(accountPrefix)+swap.AddressLength)
	key = append(key, accountPrefix...)
	return append(key, addr[:]...)
}

// storedAccount is the persisted form of an account.
type storedAccount struct {
	Lamports   uint64
	Data       []byte
	Owner      []byte
	Executable bool
}

// AccountsDB reads and writes accounts in a KVStore.
type AccountsDB struct {
	kv swap.KVStore
}

// NewAccountsDB returns a database working on given store.
func NewAccountsDB(kv swap.KVStore) *AccountsDB {
	return &AccountsDB{kv: kv}
}

// Load returns the account stored under addr. An unknown address is an
// empty account with no lamports owned by the system program.
func (db *AccountsDB) Load(addr swap.Address) (*swap.Account, error) {
	raw, err := db.kv.Get(accountKey(addr))
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", addr)
	}
	if raw == nil {
		return swap.NewAccount(0, 0, swap.SystemProgramID), nil
	}
	return decodeAccount(raw)
}

// Exists returns true if an account is stored under addr.
func (db *AccountsDB) Exists(addr swap.Address) (bool, error) {
	ok, err := db.kv.Has(accountKey(addr))
	if err != nil {
		return false, errors.Wrapf(err, "has %s", addr)
	}
	return ok, nil
}

// Store persists the account. An account without lamports is deleted.
func (db *AccountsDB) Store(addr swap.Address, acct *swap.Account) error {
	if acct.Lamports == 0 {
		return db.kv.Delete(accountKey(addr))
	}
	raw, err := cdc.MarshalBinaryBare(storedAccount{
		Lamports:   acct.Lamports,
		Data:       acct.Data,
		Owner:      acct.Owner.Bytes(),
		Executable: acct.Executable,
	})
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "encode %s: %s", addr, err)
	}
	return db.kv.Set(accountKey(addr), raw)
}

// Each calls fn for every stored account in address order. Iteration stops
// at the first error, which is returned.
func (db *AccountsDB) Each(fn func(swap.Address, *swap.Account) error) error {
	it, err := db.kv.Iterator(accountPrefix, accountPrefixEnd)
	if err != nil {
		return errors.Wrap(err, "iterate accounts")
	}
	defer it.Close()
	for it.Valid() {
		addr, err := swap.NewAddress(it.Key()[len(accountPrefix):])
		if err != nil {
			return errors.Wrap(errors.ErrDatabase, "malformed account key")
		}
		acct, err := decodeAccount(it.Value())
		if err != nil {
			return err
		}
		if err := fn(addr, acct); err != nil {
			return err
		}
		if err := it.Next(); err != nil {
			return err
		}
	}
	return nil
}

func decodeAccount(raw []byte) (*swap.Account, error) {
	var s storedAccount
	if err := cdc.UnmarshalBinaryBare(raw, &s); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "decode account: %s", err)
	}
	owner, err := swap.NewAddress(s.Owner)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "decode account owner")
	}
	data := s.Data
	if data == nil {
		data = []byte{}
	}
	return &swap.Account{
		Lamports:   s.Lamports,
		Data:       data,
		Owner:      owner,
		Executable: s.Executable,
	}, nil
}
