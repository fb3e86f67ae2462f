package swap

import (
	"crypto/sha256"

	"github.com/agl/ed25519/edwards25519"

	"github.com/iov-one/swap/errors"
)

const (
	// MaxSeeds is the maximum number of seeds used to derive an address.
	MaxSeeds = 16

	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32
)

// pdaMarker separates program derived addresses from any other sha256
// preimage.
var pdaMarker = []byte("ProgramDerivedAddress")

// CreateProgramAddress computes the address that programID controls for the
// given seeds. The result is rejected with ErrInvalidSeeds when it lies on
// the ed25519 curve, because a private key could exist for it.
func CreateProgramAddress(seeds [][]byte, programID Address) (Address, error) {
	if len(seeds) > MaxSeeds {
		return Address{}, errors.ErrMaxSeedLengthExceeded.Newf("%d seeds", len(seeds))
	}
	h := sha256.New()
	for _, s := range seeds {
		if len(s) > MaxSeedLength {
			return Address{}, errors.ErrMaxSeedLengthExceeded.Newf("seed of %d bytes", len(s))
		}
		h.Write(s)
	}
	h.Write(programID[:])
	h.Write(pdaMarker)

	var addr Address
	copy(addr[:], h.Sum(nil))
	if IsOnCurve(addr[:]) {
		return Address{}, errors.ErrInvalidSeeds.New("address on curve")
	}
	return addr, nil
}

// FindProgramAddress searches for the first bump seed, starting at 255 and
// going down, that together with given seeds produces a valid program
// derived address. It returns the address and the bump seed that must be
// appended to the seeds when signing for it.
func FindProgramAddress(seeds [][]byte, programID Address) (Address, uint8, error) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}
		addr, err := CreateProgramAddress(withBump, programID)
		switch {
		case err == nil:
			return addr, uint8(bump), nil
		case errors.ErrInvalidSeeds.Is(err):
			continue
		default:
			return Address{}, 0, err
		}
	}
	return Address{}, 0, errors.ErrInvalidSeeds.New("no viable bump seed")
}

// IsOnCurve returns true if given 32 bytes are the compressed encoding of an
// ed25519 curve point.
func IsOnCurve(compressed []byte) bool {
	if len(compressed) != 32 {
		return false
	}
	var b [32]byte
	copy(b[:], compressed)
	var p edwards25519.ExtendedGroupElement
	return p.FromBytes(&b)
}
