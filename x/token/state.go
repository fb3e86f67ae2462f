package token

import (
	"encoding/binary"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

const (
	// MintSize is the data length of a mint account.
	MintSize = 42
	// AccountSize is the data length of a token account.
	AccountSize = 73
)

// Mint describes a token.
type Mint struct {
	Authority     swap.Address
	Supply        uint64
	Decimals      uint8
	IsInitialized bool
}

// Marshal writes the mint into dst, which must be MintSize long.
func (m *Mint) Marshal(dst []byte) error {
	if len(dst) != MintSize {
		return errors.ErrInvalidAccountData.Newf("mint data of %d bytes", len(dst))
	}
	copy(dst[0:32], m.Authority[:])
	binary.LittleEndian.PutUint64(dst[32:40], m.Supply)
	dst[40] = m.Decimals
	dst[41] = boolByte(m.IsInitialized)
	return nil
}

// UnmarshalMint decodes mint account data.
func UnmarshalMint(raw []byte) (*Mint, error) {
	if len(raw) != MintSize {
		return nil, errors.ErrInvalidAccountData.Newf("mint data of %d bytes", len(raw))
	}
	initialized, err := byteBool(raw[41])
	if err != nil {
		return nil, err
	}
	m := Mint{
		Supply:        binary.LittleEndian.Uint64(raw[32:40]),
		Decimals:      raw[40],
		IsInitialized: initialized,
	}
	copy(m.Authority[:], raw[0:32])
	return &m, nil
}

// AccountState tells if a token account is usable.
type AccountState uint8

const (
	Uninitialized AccountState = 0
	Initialized   AccountState = 1
)

// Account is a balance of a single mint.
type Account struct {
	Mint   swap.Address
	Owner  swap.Address
	Amount uint64
	State  AccountState
}

// IsInitialized returns true if the account can be used.
func (a *Account) IsInitialized() bool {
	return a.State == Initialized
}

// Marshal writes the account into dst, which must be AccountSize long.
func (a *Account) Marshal(dst []byte) error {
	if len(dst) != AccountSize {
		return errors.ErrInvalidAccountData.Newf("token account data of %d bytes", len(dst))
	}
	copy(dst[0:32], a.Mint[:])
	copy(dst[32:64], a.Owner[:])
	binary.LittleEndian.PutUint64(dst[64:72], a.Amount)
	dst[72] = byte(a.State)
	return nil
}

// UnmarshalAccount decodes token account data.
func UnmarshalAccount(raw []byte) (*Account, error) {
	if len(raw) != AccountSize {
		return nil, errors.ErrInvalidAccountData.Newf("token account data of %d bytes", len(raw))
	}
	a := Account{
		Amount: binary.LittleEndian.Uint64(raw[64:72]),
		State:  AccountState(raw[72]),
	}
	if a.State > Initialized {
		return nil, errors.ErrInvalidAccountData.Newf("account state %d", a.State)
	}
	copy(a.Mint[:], raw[0:32])
	copy(a.Owner[:], raw[32:64])
	return &a, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func byteBool(b byte) (bool, error) {
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.ErrInvalidAccountData.Newf("invalid bool %d", b)
	}
}
