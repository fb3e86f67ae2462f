package swaptest

import (
	"crypto/sha256"
	"testing"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/crypto"
)

// NewKey returns a random private key.
func NewKey(t testing.TB) *crypto.PrivateKey {
	t.Helper()
	k, err := crypto.GenPrivateKey()
	if err != nil {
		t.Fatalf("cannot generate key: %s", err)
	}
	return k
}

// SeqKey returns a private key that is always the same for given name.
func SeqKey(t testing.TB, name string) *crypto.PrivateKey {
	t.Helper()
	seed := sha256.Sum256([]byte(name))
	k, err := crypto.PrivateKeyFromSeed(seed[:])
	if err != nil {
		t.Fatalf("cannot create key: %s", err)
	}
	return k
}

// NewAddress returns the address of a random key. Use it for accounts that
// never sign.
func NewAddress(t testing.TB) swap.Address {
	t.Helper()
	return NewKey(t).PublicKey()
}
