package system

import (
	"encoding/binary"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

// Instruction tags.
const (
	TagCreateAccount uint32 = 0
	TagAssign        uint32 = 1
	TagTransfer      uint32 = 2
)

// MaxPermittedDataLength is the largest data space an account can be
// created with.
const MaxPermittedDataLength = 10 * 1024 * 1024

// CreateAccount funds a new account and assigns it to a program.
type CreateAccount struct {
	Lamports uint64
	Space    uint64
	Owner    swap.Address
}

// Assign hands an account over to a program.
type Assign struct {
	Owner swap.Address
}

// Transfer moves lamports between two accounts.
type Transfer struct {
	Lamports uint64
}

// Marshal returns the instruction data.
func (m CreateAccount) Marshal() []byte {
	raw := make([]byte, 4+8+8+swap.AddressLength)
	binary.LittleEndian.PutUint32(raw, TagCreateAccount)
	binary.LittleEndian.PutUint64(raw[4:], m.Lamports)
	binary.LittleEndian.PutUint64(raw[12:], m.Space)
	copy(raw[20:], m.Owner[:])
	return raw
}

// Marshal returns the instruction data.
func (m Assign) Marshal() []byte {
	raw := make([]byte, 4+swap.AddressLength)
	binary.LittleEndian.PutUint32(raw, TagAssign)
	copy(raw[4:], m.Owner[:])
	return raw
}

// Marshal returns the instruction data.
func (m Transfer) Marshal() []byte {
	raw := make([]byte, 4+8)
	binary.LittleEndian.PutUint32(raw, TagTransfer)
	binary.LittleEndian.PutUint64(raw[4:], m.Lamports)
	return raw
}

// Decode returns one of CreateAccount, Assign or Transfer.
func Decode(data []byte) (interface{}, error) {
	if len(data) < 4 {
		return nil, errors.ErrInvalidInstructionData.New("missing tag")
	}
	tag, rest := binary.LittleEndian.Uint32(data), data[4:]
	switch tag {
	case TagCreateAccount:
		if len(rest) < 8+8+swap.AddressLength {
			return nil, errors.ErrInvalidInstructionData.New("create account too short")
		}
		m := CreateAccount{
			Lamports: binary.LittleEndian.Uint64(rest),
			Space:    binary.LittleEndian.Uint64(rest[8:]),
		}
		copy(m.Owner[:], rest[16:])
		return m, nil
	case TagAssign:
		if len(rest) < swap.AddressLength {
			return nil, errors.ErrInvalidInstructionData.New("assign too short")
		}
		var m Assign
		copy(m.Owner[:], rest)
		return m, nil
	case TagTransfer:
		if len(rest) < 8 {
			return nil, errors.ErrInvalidInstructionData.New("transfer too short")
		}
		return Transfer{Lamports: binary.LittleEndian.Uint64(rest)}, nil
	default:
		return nil, errors.ErrInvalidInstructionData.Newf("unknown tag %d", tag)
	}
}

// NewCreateAccountInstruction returns an instruction creating newAccount
// funded by from. Both must sign.
func NewCreateAccountInstruction(from, newAccount swap.Address, lamports, space uint64, owner swap.Address) swap.Instruction {
	data := CreateAccount{Lamports: lamports, Space: space, Owner: owner}.Marshal()
	return swap.NewInstruction(swap.SystemProgramID, data,
		swap.Writable(from, true),
		swap.Writable(newAccount, true),
	)
}

// NewAssignInstruction returns an instruction assigning addr to owner.
func NewAssignInstruction(addr, owner swap.Address) swap.Instruction {
	return swap.NewInstruction(swap.SystemProgramID, Assign{Owner: owner}.Marshal(),
		swap.Writable(addr, true),
	)
}

// NewTransferInstruction returns an instruction moving lamports.
func NewTransferInstruction(from, to swap.Address, lamports uint64) swap.Instruction {
	return swap.NewInstruction(swap.SystemProgramID, Transfer{Lamports: lamports}.Marshal(),
		swap.Writable(from, true),
		swap.Writable(to, false),
	)
}
