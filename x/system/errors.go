package system

import "github.com/iov-one/swap/errors"

const programName = "system"

var (
	ErrAccountAlreadyInUse        = errors.NewCustom(programName, 0, "account already in use")
	ErrResultWithNegativeLamports = errors.NewCustom(programName, 1, "account does not have enough lamports")
	ErrInvalidProgramID           = errors.NewCustom(programName, 2, "cannot assign account to this program id")
	ErrInvalidAccountDataLength   = errors.NewCustom(programName, 3, "cannot allocate account data of this length")
)
