package swap

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/swap/crypto/bech32"
	"github.com/iov-one/swap/errors"
	"github.com/mr-tron/base58"
)

// AddressLength is the length of all addresses.
const AddressLength = 32

// Address identifies an account. It is either an ed25519 public key or a
// program derived address, which is guaranteed to have no private key.
type Address [AddressLength]byte

var (
	// SystemProgramID owns every account that was not assigned to any
	// other program.
	SystemProgramID = MustParseAddress("11111111111111111111111111111111")

	// SysvarOwnerID owns all sysvar accounts.
	SysvarOwnerID = MustParseAddress("Sysvar1111111111111111111111111111111111111")

	// RentSysvarID is the address of the rent parameters account.
	RentSysvarID = MustParseAddress("SysvarRent111111111111111111111111111111111")

	// TokenProgramID is the address of the fungible token program.
	TokenProgramID = MustParseAddress("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
)

// NewAddress copies given bytes into an address. The input must be exactly
// AddressLength long.
func NewAddress(raw []byte) (Address, error) {
	var a Address
	if len(raw) != AddressLength {
		return a, errors.ErrInvalidInput.Newf("address length %d", len(raw))
	}
	copy(a[:], raw)
	return a, nil
}

// ProgramIDFromName returns a deterministic address for a program that has
// no well known id. It is the sha256 digest of the name.
func ProgramIDFromName(name string) Address {
	return Address(sha256.Sum256([]byte(name)))
}

// ParseAddress decodes a human readable address. Supported formats are
// base58 (default), "hex:<hex>" and "bech32:<bech32>".
func ParseAddress(enc string) (Address, error) {
	chunks := strings.SplitN(enc, ":", 2)
	format := "base58"
	if len(chunks) == 2 {
		format, enc = chunks[0], chunks[1]
	}
	if len(enc) == 0 {
		return Address{}, errors.ErrInvalidInput.New("empty address")
	}

	switch format {
	case "base58":
		raw, err := base58.Decode(enc)
		if err != nil {
			return Address{}, errors.Wrap(errors.ErrInvalidInput, err.Error())
		}
		return NewAddress(raw)
	case "hex":
		raw, err := hex.DecodeString(enc)
		if err != nil {
			return Address{}, errors.Wrap(errors.ErrInvalidInput, err.Error())
		}
		return NewAddress(raw)
	case "bech32":
		_, raw, err := bech32.DecodeFixed(enc, AddressLength)
		if err != nil {
			return Address{}, err
		}
		return NewAddress(raw)
	default:
		return Address{}, errors.ErrInvalidInput.Newf("unknown format %q", format)
	}
}

// MustParseAddress is like ParseAddress but panics on error. Use it only for
// constants.
func MustParseAddress(enc string) Address {
	a, err := ParseAddress(enc)
	if err != nil {
		panic(err)
	}
	return a
}

// Bytes returns a copy of the address as a slice.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressLength)
	copy(b, a[:])
	return b
}

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a[:], b[:])
}

// IsZero returns true for the all zero address, which is also the system
// program id.
func (a Address) IsZero() bool {
	return a == Address{}
}

// String returns the base58 representation.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// Bech32 returns the bech32 representation using given human readable part.
func (a Address) Bech32(hrp string) (string, error) {
	return bech32.Encode(hrp, a[:])
}

// MarshalJSON provides a base58 representation for JSON.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts any format supported by ParseAddress.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
