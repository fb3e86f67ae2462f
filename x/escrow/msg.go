package escrow

import (
	"encoding/binary"

	"github.com/iov-one/swap"
)

// Instruction tags.
const (
	TagInitialize uint8 = 0
	TagExchange   uint8 = 1
)

// MsgSize is the length of encoded instruction data. Decoding ignores
// anything past it.
const MsgSize = 9

// InitializeMsg opens an escrow. Amount is the number of tokens the
// initializer expects in exchange.
type InitializeMsg struct {
	Amount uint64
}

// ExchangeMsg takes an escrow offer. Amount must equal the amount the
// initializer expects.
type ExchangeMsg struct {
	Amount uint64
}

// Marshal returns the instruction data.
func (m InitializeMsg) Marshal() []byte {
	return marshalMsg(TagInitialize, m.Amount)
}

// Marshal returns the instruction data.
func (m ExchangeMsg) Marshal() []byte {
	return marshalMsg(TagExchange, m.Amount)
}

func marshalMsg(tag uint8, amount uint64) []byte {
	raw := make([]byte, MsgSize)
	raw[0] = tag
	binary.LittleEndian.PutUint64(raw[1:], amount)
	return raw
}

// Decode returns either InitializeMsg or ExchangeMsg.
func Decode(data []byte) (interface{}, error) {
	if len(data) < MsgSize {
		return nil, ErrInvalidInstruction.Newf("%d bytes", len(data))
	}
	amount := binary.LittleEndian.Uint64(data[1:MsgSize])
	switch data[0] {
	case TagInitialize:
		return InitializeMsg{Amount: amount}, nil
	case TagExchange:
		return ExchangeMsg{Amount: amount}, nil
	default:
		return nil, ErrInvalidInstruction.Newf("unknown tag %d", data[0])
	}
}

// NewInitializeInstruction returns an instruction opening an escrow in the
// escrow account. temp is a token account owned by initializer that holds
// the offered tokens, receiving is the initializer token account of the
// expected mint.
func NewInitializeInstruction(programID, initializer, temp, receiving, escrowAcct swap.Address, amount uint64) swap.Instruction {
	return swap.NewInstruction(programID, InitializeMsg{Amount: amount}.Marshal(),
		swap.Readonly(initializer, true),
		swap.Writable(temp, false),
		swap.Readonly(receiving, false),
		swap.Writable(escrowAcct, false),
		swap.Readonly(swap.RentSysvarID, false),
		swap.Readonly(swap.TokenProgramID, false),
	)
}

// ExchangeAccounts names the accounts an exchange touches.
type ExchangeAccounts struct {
	Taker                swap.Address
	TakerSending         swap.Address
	TakerReceiving       swap.Address
	Temp                 swap.Address
	Initializer          swap.Address
	InitializerReceiving swap.Address
	Escrow               swap.Address
}

// NewExchangeInstruction returns an instruction taking the offer of an
// escrow. The derived authority is computed for programID.
func NewExchangeInstruction(programID swap.Address, accts ExchangeAccounts, amount uint64) (swap.Instruction, error) {
	authority, _, err := Authority(programID)
	if err != nil {
		return swap.Instruction{}, err
	}
	ix := swap.NewInstruction(programID, ExchangeMsg{Amount: amount}.Marshal(),
		swap.Readonly(accts.Taker, true),
		swap.Writable(accts.TakerSending, false),
		swap.Writable(accts.TakerReceiving, false),
		swap.Writable(accts.Temp, false),
		swap.Writable(accts.Initializer, false),
		swap.Writable(accts.InitializerReceiving, false),
		swap.Writable(accts.Escrow, false),
		swap.Readonly(swap.TokenProgramID, false),
		swap.Readonly(authority, false),
	)
	return ix, nil
}
