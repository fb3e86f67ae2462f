package runtime

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/store"
	"github.com/iov-one/swap/swaptest/assert"
)

func TestGenesis(t *testing.T) {
	programID := swap.ProgramIDFromName("genesis")
	router := NewRouter()
	router.Register(programID, swap.ProgramFunc(func(swap.Context, swap.Address, []*swap.AccountInfo, []byte) error {
		return nil
	}))
	exec := NewExecutor(router)

	alice := swap.ProgramIDFromName("alice")
	accounts, err := json.Marshal([]GenesisAccount{{Address: alice, Lamports: 1000}})
	assert.Nil(t, err)

	kv := store.MemStore()
	assert.Nil(t, exec.FromGenesis(swap.Options{"accounts": accounts}, kv))

	db := NewAccountsDB(kv)
	prog, err := db.Load(programID)
	assert.Nil(t, err)
	assert.Equal(t, true, prog.Executable)
	assert.Equal(t, NativeLoaderID, prog.Owner)

	acct, err := db.Load(alice)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1000), acct.Lamports)
	assert.Equal(t, swap.SystemProgramID, acct.Owner)

	empty, err := json.Marshal([]GenesisAccount{{Address: alice}})
	assert.Nil(t, err)
	err = exec.FromGenesis(swap.Options{"accounts": empty}, store.MemStore())
	assert.IsErr(t, errors.ErrInvalidInput, err)
}

func TestRouter(t *testing.T) {
	r := NewRouter()
	a := swap.ProgramIDFromName("a")
	p := swap.ProgramFunc(func(swap.Context, swap.Address, []*swap.AccountInfo, []byte) error { return nil })
	r.Register(a, p)
	assert.Equal(t, 1, len(r.ProgramIDs()))
	if r.Route(a) == nil {
		t.Fatal("registered program not routed")
	}
	if r.Route(swap.ProgramIDFromName("b")) != nil {
		t.Fatal("unknown program routed")
	}
	assert.Panics(t, func() { r.Register(a, p) })
}
