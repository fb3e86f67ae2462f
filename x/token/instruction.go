package token

import (
	"encoding/binary"

	"github.com/iov-one/swap"
)

// Instruction tags. The numbering leaves gaps for instructions this
// program does not implement.
const (
	TagInitializeMint    uint8 = 0
	TagInitializeAccount uint8 = 1
	TagTransfer          uint8 = 3
	TagSetAuthority      uint8 = 6
	TagMintTo            uint8 = 7
	TagCloseAccount      uint8 = 9
)

// AuthorityType selects the authority SetAuthority changes.
type AuthorityType uint8

const (
	MintTokens AuthorityType = iota
	FreezeAccount
	AccountOwner
	CloseAccountAuthority
)

// InitializeMint sets up a mint account.
//
// Accounts: 0 writable mint, 1 rent sysvar.
type InitializeMint struct {
	Decimals  uint8
	Authority swap.Address
}

// InitializeAccount sets up a token account.
//
// Accounts: 0 writable account, 1 mint, 2 owner, 3 rent sysvar.
type InitializeAccount struct{}

// Transfer moves tokens between two accounts of the same mint.
//
// Accounts: 0 writable source, 1 writable destination, 2 signer owner of
// the source.
type Transfer struct {
	Amount uint64
}

// SetAuthority changes the authority of an account. NewAuthority is nil
// when the authority is to be removed.
//
// Accounts: 0 writable account, 1 signer current authority.
type SetAuthority struct {
	Type         AuthorityType
	NewAuthority *swap.Address
}

// MintTo issues new tokens.
//
// Accounts: 0 writable mint, 1 writable destination, 2 signer mint
// authority.
type MintTo struct {
	Amount uint64
}

// CloseAccount deletes an empty token account, moving its lamports.
//
// Accounts: 0 writable account, 1 writable destination, 2 signer owner.
type CloseAccount struct{}

// Marshal returns the instruction data.
func (m InitializeMint) Marshal() []byte {
	raw := make([]byte, 2+swap.AddressLength)
	raw[0] = TagInitializeMint
	raw[1] = m.Decimals
	copy(raw[2:], m.Authority[:])
	return raw
}

// Marshal returns the instruction data.
func (InitializeAccount) Marshal() []byte {
	return []byte{TagInitializeAccount}
}

// Marshal returns the instruction data.
func (m Transfer) Marshal() []byte {
	return amountData(TagTransfer, m.Amount)
}

// Marshal returns the instruction data.
func (m SetAuthority) Marshal() []byte {
	raw := make([]byte, 3+swap.AddressLength)
	raw[0] = TagSetAuthority
	raw[1] = byte(m.Type)
	if m.NewAuthority != nil {
		raw[2] = 1
		copy(raw[3:], m.NewAuthority[:])
	}
	return raw
}

// Marshal returns the instruction data.
func (m MintTo) Marshal() []byte {
	return amountData(TagMintTo, m.Amount)
}

// Marshal returns the instruction data.
func (CloseAccount) Marshal() []byte {
	return []byte{TagCloseAccount}
}

func amountData(tag uint8, amount uint64) []byte {
	raw := make([]byte, 9)
	raw[0] = tag
	binary.LittleEndian.PutUint64(raw[1:], amount)
	return raw
}

// Decode returns the instruction encoded in data.
func Decode(data []byte) (interface{}, error) {
	if len(data) == 0 {
		return nil, ErrInvalidInstruction.New("empty")
	}
	tag, rest := data[0], data[1:]
	switch tag {
	case TagInitializeMint:
		if len(rest) < 1+swap.AddressLength {
			return nil, ErrInvalidInstruction.New("initialize mint too short")
		}
		m := InitializeMint{Decimals: rest[0]}
		copy(m.Authority[:], rest[1:])
		return m, nil
	case TagInitializeAccount:
		return InitializeAccount{}, nil
	case TagTransfer, TagMintTo:
		if len(rest) < 8 {
			return nil, ErrInvalidInstruction.Newf("instruction %d too short", tag)
		}
		amount := binary.LittleEndian.Uint64(rest)
		if tag == TagTransfer {
			return Transfer{Amount: amount}, nil
		}
		return MintTo{Amount: amount}, nil
	case TagSetAuthority:
		if len(rest) < 2 {
			return nil, ErrInvalidInstruction.New("set authority too short")
		}
		m := SetAuthority{Type: AuthorityType(rest[0])}
		switch rest[1] {
		case 0:
		case 1:
			if len(rest) < 2+swap.AddressLength {
				return nil, ErrInvalidInstruction.New("set authority too short")
			}
			var a swap.Address
			copy(a[:], rest[2:])
			m.NewAuthority = &a
		default:
			return nil, ErrInvalidInstruction.Newf("option flag %d", rest[1])
		}
		return m, nil
	case TagCloseAccount:
		return CloseAccount{}, nil
	default:
		return nil, ErrInvalidInstruction.Newf("unknown tag %d", tag)
	}
}

// NewInitializeMintInstruction returns an instruction setting up mint.
func NewInitializeMintInstruction(mint, authority swap.Address, decimals uint8) swap.Instruction {
	data := InitializeMint{Decimals: decimals, Authority: authority}.Marshal()
	return swap.NewInstruction(swap.TokenProgramID, data,
		swap.Writable(mint, false),
		swap.Readonly(swap.RentSysvarID, false),
	)
}

// NewInitializeAccountInstruction returns an instruction setting up a
// token account of mint held by owner.
func NewInitializeAccountInstruction(account, mint, owner swap.Address) swap.Instruction {
	return swap.NewInstruction(swap.TokenProgramID, InitializeAccount{}.Marshal(),
		swap.Writable(account, false),
		swap.Readonly(mint, false),
		swap.Readonly(owner, false),
		swap.Readonly(swap.RentSysvarID, false),
	)
}

// NewTransferInstruction returns an instruction moving amount tokens.
func NewTransferInstruction(source, destination, owner swap.Address, amount uint64) swap.Instruction {
	return swap.NewInstruction(swap.TokenProgramID, Transfer{Amount: amount}.Marshal(),
		swap.Writable(source, false),
		swap.Writable(destination, false),
		swap.Readonly(owner, true),
	)
}

// NewSetAuthorityInstruction returns an instruction changing the authority
// of account. A nil newAuthority removes it.
func NewSetAuthorityInstruction(account, current swap.Address, typ AuthorityType, newAuthority *swap.Address) swap.Instruction {
	data := SetAuthority{Type: typ, NewAuthority: newAuthority}.Marshal()
	return swap.NewInstruction(swap.TokenProgramID, data,
		swap.Writable(account, false),
		swap.Readonly(current, true),
	)
}

// NewMintToInstruction returns an instruction issuing amount tokens.
func NewMintToInstruction(mint, destination, authority swap.Address, amount uint64) swap.Instruction {
	return swap.NewInstruction(swap.TokenProgramID, MintTo{Amount: amount}.Marshal(),
		swap.Writable(mint, false),
		swap.Writable(destination, false),
		swap.Readonly(authority, true),
	)
}

// NewCloseAccountInstruction returns an instruction closing account.
func NewCloseAccountInstruction(account, destination, owner swap.Address) swap.Instruction {
	return swap.NewInstruction(swap.TokenProgramID, CloseAccount{}.Marshal(),
		swap.Writable(account, false),
		swap.Writable(destination, false),
		swap.Readonly(owner, true),
	)
}
