package system

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

// Program is the system program.
type Program struct{}

var _ swap.Program = Program{}

// RegisterRoutes adds the system program to the registry.
func RegisterRoutes(r swap.Registry) {
	r.Register(swap.SystemProgramID, Program{})
}

// Process decodes the instruction and applies it.
func (p Program) Process(ctx swap.Context, programID swap.Address, accounts []*swap.AccountInfo, data []byte) error {
	msg, err := Decode(data)
	if err != nil {
		return err
	}
	switch m := msg.(type) {
	case CreateAccount:
		return p.createAccount(ctx, accounts, m)
	case Assign:
		return p.assign(ctx, accounts, m)
	case Transfer:
		return p.transfer(ctx, accounts, m)
	default:
		return errors.ErrHuman.Newf("unhandled message %T", msg)
	}
}

func (p Program) createAccount(ctx swap.Context, accounts []*swap.AccountInfo, m CreateAccount) error {
	from, accounts, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	to, _, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	if !to.IsSigner {
		return errors.ErrMissingRequiredSignature.Newf("new account %s", to.Key)
	}
	if to.Lamports != 0 || len(to.Data) != 0 || to.Owner != swap.SystemProgramID {
		return ErrAccountAlreadyInUse.Newf("account %s", to.Key)
	}
	if m.Space > MaxPermittedDataLength {
		return ErrInvalidAccountDataLength.Newf("space %d", m.Space)
	}
	if err := debit(from, m.Lamports); err != nil {
		return err
	}
	to.Lamports = m.Lamports
	to.Data = make([]byte, m.Space)
	to.Owner = m.Owner

	swap.GetLogger(ctx).Debug("account created", "account", to.Key.String(), "owner", m.Owner.String(), "space", m.Space)
	return nil
}

func (p Program) assign(ctx swap.Context, accounts []*swap.AccountInfo, m Assign) error {
	acct, _, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	if !acct.IsSigner {
		return errors.ErrMissingRequiredSignature.Newf("account %s", acct.Key)
	}
	if acct.Owner == m.Owner {
		return nil
	}
	if acct.Owner != swap.SystemProgramID {
		return errors.ErrIncorrectProgramID.Newf("account %s is owned by %s", acct.Key, acct.Owner)
	}
	if m.Owner == swap.SysvarOwnerID {
		return ErrInvalidProgramID.Newf("owner %s", m.Owner)
	}
	acct.Owner = m.Owner
	return nil
}

func (p Program) transfer(ctx swap.Context, accounts []*swap.AccountInfo, m Transfer) error {
	from, accounts, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	to, _, err := swap.NextAccount(accounts)
	if err != nil {
		return err
	}
	if err := debit(from, m.Lamports); err != nil {
		return err
	}
	to.Lamports += m.Lamports
	return nil
}

// debit takes lamports from a signing wallet.
func debit(from *swap.AccountInfo, lamports uint64) error {
	if !from.IsSigner {
		return errors.ErrMissingRequiredSignature.Newf("funding account %s", from.Key)
	}
	if from.Owner != swap.SystemProgramID || len(from.Data) != 0 {
		return errors.ErrInvalidArgument.Newf("funding account %s must not carry data", from.Key)
	}
	if from.Lamports < lamports {
		return ErrResultWithNegativeLamports.Newf("has %d, needs %d", from.Lamports, lamports)
	}
	from.Lamports -= lamports
	return nil
}
