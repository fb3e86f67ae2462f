package escrow

import (
	"github.com/iov-one/swap"
)

// AuthoritySeed is the seed the derived authority of every escrow is
// computed from.
const AuthoritySeed = "escrow"

// Authority returns the address owning the temporary token accounts of all
// escrows of programID, and the bump seed completing its seeds.
func Authority(programID swap.Address) (swap.Address, uint8, error) {
	return swap.FindProgramAddress([][]byte{[]byte(AuthoritySeed)}, programID)
}

// authoritySeeds returns the seeds signing for the derived authority.
func authoritySeeds(bump uint8) [][]byte {
	return [][]byte{[]byte(AuthoritySeed), {bump}}
}
