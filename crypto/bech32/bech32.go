package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/swap/errors"
)

// Decode converts given bech32 encoded representation into raw payload and a
// human readable part.
func Decode(raw string) (string, []byte, error) {
	hrp, payload, err := bech32.Decode(raw)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInvalidInput, "bech32 decode: %s", err)
	}
	payload, err = bech32.ConvertBits(payload, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInvalidInput, "convert bits: %s", err)
	}
	return hrp, payload, nil
}

// DecodeFixed is Decode that additionally requires the payload to be of
// given length, as every account address is.
func DecodeFixed(raw string, size int) (string, []byte, error) {
	hrp, payload, err := Decode(raw)
	if err != nil {
		return "", nil, err
	}
	if len(payload) != size {
		return "", nil, errors.ErrInvalidInput.Newf("payload of %d bytes, want %d", len(payload), size)
	}
	return hrp, payload, nil
}

// Encode converts given bytes into bech32 encoded representation.
func Encode(hrp string, payload []byte) (string, error) {
	payload, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidInput, "convert bits: %s", err)
	}
	raw, err := bech32.Encode(hrp, payload)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidInput, "bech32 encode: %s", err)
	}
	return raw, nil
}
