package crypto

import (
	"github.com/iov-one/swap/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	bip39 "github.com/tyler-smith/go-bip39"
)

// DefaultDerivationPath is the SLIP-10 path of the first account.
const DefaultDerivationPath = "m/44'/501'/0'/0'"

// NewMnemonic returns a fresh 24 word BIP-39 mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", errors.Wrap(err, "entropy")
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "mnemonic")
	}
	return mnemonic, nil
}

// KeyFromMnemonic derives the private key at path from a BIP-39 mnemonic.
// An empty path uses the first 32 bytes of the BIP-39 seed directly.
func KeyFromMnemonic(mnemonic, passphrase, path string) (*PrivateKey, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.ErrInvalidInput.New("invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, passphrase)
	if path == "" {
		return PrivateKeyFromSeed(seed[:32])
	}
	return KeyFromSeedPath(seed, path)
}

// KeyFromSeedPath derives the ed25519 key at a hardened SLIP-10 path from a
// master seed.
func KeyFromSeedPath(seed []byte, path string) (*PrivateKey, error) {
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "derive %q: %s", path, err)
	}
	return PrivateKeyFromSeed(k.Key)
}
