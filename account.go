package swap

import (
	"bytes"

	"github.com/iov-one/swap/errors"
)

// Account is the state the ledger keeps for a single address.
type Account struct {
	// Lamports is the native balance. An account with zero lamports does
	// not outlive the transaction that emptied it.
	Lamports uint64
	// Data is opaque to the runtime and interpreted by the owner.
	Data []byte
	// Owner is the program allowed to change Data and debit Lamports.
	Owner Address
	// Executable marks program accounts.
	Executable bool
}

// NewAccount returns an account with given balance and a zeroed data
// buffer of space bytes.
func NewAccount(lamports uint64, space int, owner Address) *Account {
	return &Account{
		Lamports: lamports,
		Data:     make([]byte, space),
		Owner:    owner,
	}
}

// Clone returns a deep copy.
func (a *Account) Clone() *Account {
	c := *a
	c.Data = append([]byte(nil), a.Data...)
	return &c
}

// Equals compares all fields of two accounts.
func (a *Account) Equals(b *Account) bool {
	return a.Lamports == b.Lamports &&
		a.Owner == b.Owner &&
		a.Executable == b.Executable &&
		bytes.Equal(a.Data, b.Data)
}

// IsDataZeroed returns true if every data byte is zero.
func (a *Account) IsDataZeroed() bool {
	for _, b := range a.Data {
		if b != 0 {
			return false
		}
	}
	return true
}

// AccountInfo is the view of an account handed to a program. The embedded
// Account is shared between all infos of the same address within an
// instruction, so a change made through one is visible through the others.
type AccountInfo struct {
	Key        Address
	IsSigner   bool
	IsWritable bool
	*Account
}

// NextAccount returns the first account of the list and the rest. It fails
// with ErrNotEnoughAccountKeys when the list is empty.
func NextAccount(accounts []*AccountInfo) (*AccountInfo, []*AccountInfo, error) {
	if len(accounts) == 0 {
		return nil, nil, errors.ErrNotEnoughAccountKeys.New("account list exhausted")
	}
	return accounts[0], accounts[1:], nil
}
