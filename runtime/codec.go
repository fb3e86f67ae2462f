package runtime

import (
	amino "github.com/tendermint/go-amino"
)

// cdc encodes stored accounts, messages and transactions. None of them
// holds interface values, so no types are registered.
var cdc = amino.NewCodec()
