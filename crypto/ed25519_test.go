package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/swaptest/assert"
)

func TestEd25519Signing(t *testing.T) {
	private, err := GenPrivateKey()
	assert.Nil(t, err)
	public := private.PublicKey()

	msg := []byte("foobar")
	msg2 := []byte("dingbooms")

	sig := private.Sign(msg)
	sig2 := private.Sign(msg2)
	if bytes.Equal(sig, sig2) {
		t.Fatal("different messages produce the same signature")
	}

	if !Verify(public, msg, sig) {
		t.Fatal("cannot verify a message signed with this public key")
	}
	if !Verify(public, msg2, sig2) {
		t.Fatal("cannot verify a message signed with this public key")
	}

	if Verify(public, msg, sig2) {
		t.Fatal("verified message signature of the wrong message")
	}
	if Verify(public, msg, nil) {
		t.Fatal("verified a nil signature of a message")
	}

	other, err := GenPrivateKey()
	assert.Nil(t, err)
	if Verify(other.PublicKey(), msg, sig) {
		t.Fatal("verified a signature with the wrong key")
	}
}

func TestPublicKeyIsOnCurve(t *testing.T) {
	for i := 0; i < 8; i++ {
		private, err := GenPrivateKey()
		assert.Nil(t, err)
		pub := private.PublicKey()
		if !swap.IsOnCurve(pub[:]) {
			t.Fatalf("public key %s is not on the curve", pub)
		}
	}
}

func TestPrivateKeyFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a, err := PrivateKeyFromSeed(seed)
	assert.Nil(t, err)
	b, err := PrivateKeyFromSeed(seed)
	assert.Nil(t, err)
	assert.Equal(t, a.PublicKey(), b.PublicKey())
	assert.Equal(t, seed, a.Seed())

	_, err = PrivateKeyFromSeed(seed[:10])
	assert.IsErr(t, errors.ErrInvalidInput, err)
}
