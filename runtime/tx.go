package runtime

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/crypto"
	"github.com/iov-one/swap/errors"
)

// Message is the signed part of a transaction. The instructions are
// executed in order and either all succeed or none is applied.
type Message struct {
	// Nonce makes otherwise identical messages distinct.
	Nonce        uint64
	Instructions []swap.Instruction
}

// SignBytes returns the bytes every signer signs.
func (m Message) SignBytes() ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "encode message: %s", err)
	}
	return bz, nil
}

// Signature is an ed25519 signature of the message sign bytes.
type Signature struct {
	PubKey swap.Address
	Sig    []byte
}

// Transaction is a message together with the signatures authorizing it.
type Transaction struct {
	Message    Message
	Signatures []Signature
}

// NewTransaction returns an unsigned transaction.
func NewTransaction(nonce uint64, ixs ...swap.Instruction) *Transaction {
	return &Transaction{
		Message: Message{
			Nonce:        nonce,
			Instructions: ixs,
		},
	}
}

// Sign appends a signature of the message for every key.
func (tx *Transaction) Sign(keys ...*crypto.PrivateKey) error {
	bz, err := tx.Message.SignBytes()
	if err != nil {
		return err
	}
	for _, k := range keys {
		tx.Signatures = append(tx.Signatures, Signature{
			PubKey: k.PublicKey(),
			Sig:    k.Sign(bz),
		})
	}
	return nil
}

// Signers verifies all signatures and returns the set of addresses that
// signed the message.
func (tx *Transaction) Signers() (map[swap.Address]bool, error) {
	bz, err := tx.Message.SignBytes()
	if err != nil {
		return nil, err
	}
	signers := make(map[swap.Address]bool, len(tx.Signatures))
	for i, s := range tx.Signatures {
		if !crypto.Verify(s.PubKey, bz, s.Sig) {
			return nil, errors.ErrInvalidSignature.Newf("signature %d of %s", i, s.PubKey)
		}
		signers[s.PubKey] = true
	}
	return signers, nil
}

// Marshal encodes the transaction for transport or storage.
func (tx *Transaction) Marshal() ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "encode transaction: %s", err)
	}
	return bz, nil
}

// UnmarshalTransaction decodes a transaction created with Marshal.
func UnmarshalTransaction(bz []byte) (*Transaction, error) {
	var tx Transaction
	if err := cdc.UnmarshalBinaryBare(bz, &tx); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "decode transaction: %s", err)
	}
	return &tx, nil
}
