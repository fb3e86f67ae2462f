package token

import "github.com/iov-one/swap/errors"

const programName = "token"

// Failures of the token program. Ordinals are stable, clients rely on them.
var (
	ErrNotRentExempt             = errors.NewCustom(programName, 0, "lamport balance below rent-exempt threshold")
	ErrInsufficientFunds         = errors.NewCustom(programName, 1, "insufficient funds")
	ErrInvalidMint               = errors.NewCustom(programName, 2, "invalid mint")
	ErrMintMismatch              = errors.NewCustom(programName, 3, "account not associated with this mint")
	ErrOwnerMismatch             = errors.NewCustom(programName, 4, "owner does not match")
	ErrAlreadyInUse              = errors.NewCustom(programName, 6, "account or token already in use")
	ErrUninitializedState        = errors.NewCustom(programName, 9, "state is uninitialized")
	ErrNonNativeHasBalance       = errors.NewCustom(programName, 11, "non-native account can only be closed if its balance is zero")
	ErrInvalidInstruction        = errors.NewCustom(programName, 12, "invalid instruction")
	ErrOverflow                  = errors.NewCustom(programName, 14, "operation overflowed")
	ErrAuthorityTypeNotSupported = errors.NewCustom(programName, 15, "account does not support specified authority type")
)
