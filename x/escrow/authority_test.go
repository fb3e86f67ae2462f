package escrow

import (
	"testing"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/swaptest/assert"
)

func TestAuthority(t *testing.T) {
	addr, bump, err := Authority(ProgramID)
	assert.Nil(t, err)

	for i := 0; i < 3; i++ {
		again, againBump, err := Authority(ProgramID)
		assert.Nil(t, err)
		assert.Equal(t, addr, again)
		assert.Equal(t, bump, againBump)
	}

	// The signing seeds derive the same address.
	signed, err := swap.CreateProgramAddress(authoritySeeds(bump), ProgramID)
	assert.Nil(t, err)
	assert.Equal(t, addr, signed)
	assert.Equal(t, false, swap.IsOnCurve(addr[:]))

	other, _, err := Authority(swap.ProgramIDFromName("another escrow"))
	assert.Nil(t, err)
	if other == addr {
		t.Fatal("authorities of two programs must differ")
	}
}
