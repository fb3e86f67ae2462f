package crypto

import (
	"crypto/rand"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"golang.org/x/crypto/ed25519"
)

// SignatureSize is the length of every signature.
const SignatureSize = ed25519.SignatureSize

// PrivateKey is an ed25519 key that signs transactions. Its public key is
// the address of the account it controls.
type PrivateKey struct {
	key ed25519.PrivateKey
}

// GenPrivateKey returns a random new private key
func GenPrivateKey() (*PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "generate key")
	}
	return &PrivateKey{key: priv}, nil
}

// PrivateKeyFromSeed will deterministically generate a private key from
// a given 32 byte seed. Use if you have a strong source of external
// randomness, or for deterministic keys in test cases.
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.ErrInvalidInput.Newf("seed of %d bytes", len(seed))
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(p.key, message)
}

// PublicKey returns the address controlled by this key.
func (p *PrivateKey) PublicKey() swap.Address {
	var a swap.Address
	copy(a[:], p.key.Public().(ed25519.PublicKey))
	return a
}

// Seed returns the 32 byte seed the key can be rebuilt from.
func (p *PrivateKey) Seed() []byte {
	return p.key.Seed()
}

// Verify returns true if sig is a valid signature of message created by the
// key of given address.
func Verify(pub swap.Address, message, sig []byte) bool {
	if len(sig) != SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub[:]), message, sig)
}
