package escrow

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/runtime"
	"github.com/iov-one/swap/x/rent"
)

const optKey = "escrow"

// GenesisEscrow is an open escrow created with the ledger.
type GenesisEscrow struct {
	Address              swap.Address `json:"address"`
	Lamports             uint64       `json:"lamports"`
	Initializer          swap.Address `json:"initializer"`
	TempTokenAccount     swap.Address `json:"temp_token_account"`
	InitializerReceiving swap.Address `json:"initializer_receiving"`
	ExpectedAmount       uint64       `json:"expected_amount"`
}

// Initializer fulfils the Initializer interface to load escrows from the
// genesis file. The rent sysvar, if present, must be created before.
type Initializer struct{}

var _ swap.Initializer = Initializer{}

// FromGenesis stores every escrow listed under "escrow" as an account of
// the escrow program.
func (Initializer) FromGenesis(opts swap.Options, kv swap.KVStore) error {
	var escrows []GenesisEscrow
	if err := opts.ReadOptions(optKey, &escrows); err != nil {
		return err
	}
	if len(escrows) == 0 {
		return nil
	}

	db := runtime.NewAccountsDB(kv)
	r := rent.Default()
	if sysvar, err := db.Load(swap.RentSysvarID); err != nil {
		return err
	} else if len(sysvar.Data) != 0 {
		if r, err = rent.Unmarshal(sysvar.Data); err != nil {
			return errors.Wrap(err, "rent sysvar")
		}
	}

	for i, e := range escrows {
		if !r.IsExempt(e.Lamports, RecordSize) {
			return errors.Wrapf(ErrNotRentExempt, "escrow at position %d", i)
		}
		if ok, err := db.Exists(e.Address); err != nil {
			return err
		} else if ok {
			return errors.ErrAccountAlreadyInitialized.Newf("escrow at position %d", i)
		}
		record := Escrow{
			IsInitialized:        true,
			Initializer:          e.Initializer,
			TempTokenAccount:     e.TempTokenAccount,
			InitializerReceiving: e.InitializerReceiving,
			ExpectedAmount:       e.ExpectedAmount,
		}
		acct := swap.NewAccount(e.Lamports, 0, ProgramID)
		acct.Data = record.Marshal()
		if err := db.Store(e.Address, acct); err != nil {
			return errors.Wrapf(err, "escrow at position %d", i)
		}
	}
	return nil
}
