package escrow

import "github.com/iov-one/swap/errors"

const programName = "escrow"

// Failures of the escrow program. Ordinals are part of the program
// interface.
var (
	ErrInvalidInstruction     = errors.NewCustom(programName, 0, "invalid instruction")
	ErrNotRentExempt          = errors.NewCustom(programName, 1, "not rent exempt")
	ErrExpectedAmountMismatch = errors.NewCustom(programName, 2, "expected amount mismatch")
)
