package escrow

import (
	"encoding/binary"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

// RecordSize is the data length of an escrow account.
const RecordSize = 105

// Escrow is the record kept in an escrow account.
type Escrow struct {
	IsInitialized bool
	// Initializer opened the escrow and receives the lamports of the
	// closed accounts.
	Initializer swap.Address
	// TempTokenAccount holds the offered tokens. It is owned by the
	// derived authority.
	TempTokenAccount swap.Address
	// InitializerReceiving is the token account the expected tokens are
	// sent to.
	InitializerReceiving swap.Address
	ExpectedAmount       uint64
}

// Marshal returns the account data of the record.
func (e *Escrow) Marshal() []byte {
	raw := make([]byte, RecordSize)
	if e.IsInitialized {
		raw[0] = 1
	}
	copy(raw[1:33], e.Initializer[:])
	copy(raw[33:65], e.TempTokenAccount[:])
	copy(raw[65:97], e.InitializerReceiving[:])
	binary.LittleEndian.PutUint64(raw[97:105], e.ExpectedAmount)
	return raw
}

// UnmarshalEscrow decodes an escrow record. Bytes past RecordSize are
// ignored.
func UnmarshalEscrow(raw []byte) (*Escrow, error) {
	if len(raw) < RecordSize {
		return nil, errors.ErrInvalidAccountData.Newf("escrow data of %d bytes", len(raw))
	}
	var e Escrow
	switch raw[0] {
	case 0:
	case 1:
		e.IsInitialized = true
	default:
		return nil, errors.ErrInvalidAccountData.Newf("initialized flag %d", raw[0])
	}
	copy(e.Initializer[:], raw[1:33])
	copy(e.TempTokenAccount[:], raw[33:65])
	copy(e.InitializerReceiving[:], raw[65:97])
	e.ExpectedAmount = binary.LittleEndian.Uint64(raw[97:105])
	return &e, nil
}
